package rediscache

// Window is the byte range a lookup or read event asks for.
// Size == 0 means existence check only.
type Window struct {
	Offset uint64
	Size   uint64
}

// ReadResult is the part of a stored value delivered for one window.
// Data aliases the value it was sliced from and must not outlive the
// handling step that produced it.
type ReadResult struct {
	Data []byte
	More bool // the value continues past the delivered bytes
}

func (r ReadResult) Len() uint64 { return uint64(len(r.Data)) }

// Slice cuts the window out of value. A window starting at or beyond the end
// of value delivers nothing and reports no more data.
func (w Window) Slice(value []byte) ReadResult {
	l := uint64(len(value))
	if w.Size == 0 || w.Offset >= l {
		return ReadResult{}
	}
	n := min(w.Size, l-w.Offset)
	end := w.Offset + n
	return ReadResult{
		Data: value[w.Offset:end:end],
		More: end < l,
	}
}
