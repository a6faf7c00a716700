package rediscache

// BlockBuffer is a segmented byte buffer that implements Buffer.
// Every Write appends a new block; bytes never move between blocks.
// The zero value is an empty buffer. Not safe for concurrent use.
type BlockBuffer struct {
	blocks [][]byte
	head   int // first block with unread bytes
}

var _ Buffer = (*BlockBuffer)(nil)

// NewBlockBuffer returns a buffer holding blocks in order. The slices are
// referenced, not copied.
func NewBlockBuffer(blocks ...[]byte) *BlockBuffer {
	return &BlockBuffer{blocks: blocks}
}

// Write appends a copy of p as a new block.
func (b *BlockBuffer) Write(p []byte) (int, error) {
	blk := make([]byte, len(p))
	copy(blk, p)
	b.blocks = append(b.blocks, blk)
	return len(p), nil
}

func (b *BlockBuffer) Available() int {
	n := 0
	for _, blk := range b.blocks[b.head:] {
		n += len(blk)
	}
	return n
}

func (b *BlockBuffer) Start() Block {
	if b.head >= len(b.blocks) {
		return nil
	}
	return &bufBlock{buf: b, idx: b.head}
}

func (b *BlockBuffer) Consume(n int) {
	for n > 0 && b.head < len(b.blocks) {
		blk := b.blocks[b.head]
		k := min(n, len(blk))
		b.blocks[b.head] = blk[k:]
		n -= k
		if len(b.blocks[b.head]) == 0 {
			b.head++
		}
	}
}

type bufBlock struct {
	buf *BlockBuffer
	idx int
}

func (k *bufBlock) Bytes() []byte { return k.buf.blocks[k.idx] }

func (k *bufBlock) Next() Block {
	if k.idx+1 >= len(k.buf.blocks) {
		return nil
	}
	return &bufBlock{buf: k.buf, idx: k.idx + 1}
}

// Consolidate drains b into one contiguous slice. The destination is sized
// from Available before walking the blocks, and every copied byte is consumed
// from b. Returns nil when nothing is available.
func Consolidate(b Buffer) []byte {
	n := b.Available()
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	off := 0
	for blk := b.Start(); blk != nil && off < n; blk = blk.Next() {
		data := blk.Bytes()
		if data == nil {
			continue
		}
		c := copy(out[off:], data)
		b.Consume(c)
		off += c
	}
	return out[:off]
}
