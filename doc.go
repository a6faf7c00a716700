// Package rediscache lets an HTTP proxy's cache layer keep object bodies in
// an external key-value store instead of on local disk.
//
// The proxy raises one event per cache operation (lookup, read, write,
// delete, close) together with a Transaction. Adapter.Handle translates the
// event into store calls and always hands exactly one reply back to the
// transaction, even when the store is unreachable.
//
// Components:
//   - Provider: the store client (Redis, BigCache, Ristretto).
//   - Conn: the single connection shared by every transaction; all calls
//     are serialized by one mutex.
//   - Window: byte-range reads emulated on top of whole-value Get.
//   - Consolidate: scatter/gather write buffers merged into one Append.
//
// Reads:
//
//	size == 0            -> EXISTS, reply *Complete with no payload
//	offset >= len(value) -> reply *Complete with no payload
//	otherwise            -> value[offset : offset+min(size, len-offset)],
//	                        *Ready if bytes remain past the window, else *Complete
//
// Writes append to the stored value, so repeated write events accumulate the
// object body. Store failures are logged and reported to Hooks but never
// change the reply.
//
// Activation:
//
//	p := redis.Dial(redis.DialConfig{Host: "127.0.0.1", Port: 6379, Timeout: 10 * time.Second})
//	a, err := rediscache.Init(ctx, proxyHooks, rediscache.Options{Provider: p})
//	if err != nil {
//		// feature disabled: nothing was registered
//	}
package rediscache
