package rediscache

import (
	"bytes"
	"testing"
)

func TestWindowSlice(t *testing.T) {
	value := []byte("HELLOWORLD")
	cases := []struct {
		name   string
		w      Window
		want   string
		more   bool
		hasNil bool
	}{
		{"middle leaves more", Window{Offset: 5, Size: 3}, "WOR", true, false},
		{"tail clipped", Window{Offset: 8, Size: 5}, "LD", false, false},
		{"exact end", Window{Offset: 0, Size: 10}, "HELLOWORLD", false, false},
		{"oversized", Window{Offset: 0, Size: 1 << 40}, "HELLOWORLD", false, false},
		{"first byte", Window{Offset: 0, Size: 1}, "H", true, false},
		{"offset at end", Window{Offset: 10, Size: 4}, "", false, true},
		{"offset past end", Window{Offset: 99, Size: 4}, "", false, true},
		{"existence only", Window{Offset: 0, Size: 0}, "", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.w.Slice(value)
			if string(got.Data) != tc.want {
				t.Fatalf("data=%q want %q", got.Data, tc.want)
			}
			if got.More != tc.more {
				t.Fatalf("more=%v want %v", got.More, tc.more)
			}
			if tc.hasNil && got.Data != nil {
				t.Fatalf("expected nil payload, got %q", got.Data)
			}
			if got.Len() != uint64(len(tc.want)) {
				t.Fatalf("len=%d want %d", got.Len(), len(tc.want))
			}
		})
	}
}

// Exhaustive over small sizes: delivered == min(size, L-offset) and
// more == offset+delivered < L whenever offset < L; nothing otherwise.
func TestWindowSliceExhaustive(t *testing.T) {
	for l := 0; l <= 12; l++ {
		value := bytes.Repeat([]byte{'x'}, l)
		for off := 0; off <= l+2; off++ {
			for size := 0; size <= l+2; size++ {
				w := Window{Offset: uint64(off), Size: uint64(size)}
				got := w.Slice(value)
				if size == 0 || off >= l {
					if got.Len() != 0 || got.More {
						t.Fatalf("L=%d %+v: got len=%d more=%v, want empty", l, w, got.Len(), got.More)
					}
					continue
				}
				want := uint64(min(size, l-off))
				if got.Len() != want {
					t.Fatalf("L=%d %+v: len=%d want %d", l, w, got.Len(), want)
				}
				if got.More != (uint64(off)+want < uint64(l)) {
					t.Fatalf("L=%d %+v: more=%v", l, w, got.More)
				}
			}
		}
	}
}

func TestWindowSliceDoesNotExposeTail(t *testing.T) {
	value := []byte("abcdef")
	got := Window{Offset: 1, Size: 2}.Slice(value)
	if cap(got.Data) != 2 {
		t.Fatalf("cap=%d want 2; appending would overwrite the value", cap(got.Data))
	}
}
