package rediscache

import "context"

// Transaction is the proxy's handle for a single object request.
// Everything it returns is borrowed for the duration of one Handle call.
type Transaction interface {
	// CacheKey returns the opaque cache key. It may be nil or empty.
	CacheKey() []byte

	// BufferInfo returns the requested read window.
	BufferInfo() (size, offset uint64)

	// OutgoingBuffer returns the bytes the proxy wants written to the cache.
	OutgoingBuffer() Buffer

	// Report hands the outcome back to the proxy. data is nil for anything but
	// reads and is only valid until Report returns. n is the delivered or
	// written byte count.
	Report(o Outcome, data []byte, n uint64) int
}

// Buffer is a scatter/gather reader over the proxy's cache-write buffer.
type Buffer interface {
	// Available is the total number of unread bytes across all blocks.
	Available() int
	// Start returns the first block, or nil when there is none.
	Start() Block
	// Consume marks n bytes as read.
	Consume(n int)
}

// Block is one contiguous region of a Buffer.
type Block interface {
	// Bytes returns the unread bytes of the block. May be nil.
	Bytes() []byte
	Next() Block
}

// Registrar is the proxy's hook registry.
type Registrar interface {
	AddCacheHook(h Handler) error
}

// Handler is the single entry point the proxy calls for every cache event.
type Handler interface {
	Handle(ctx context.Context, ev Event, txn Transaction) int
}
