// Package pool provides bucketed sync.Pool instances for plane and staging
// buffers. Buffers are grouped by power-of-four size class so a buffer
// released after one image can serve the next image of similar size.
package pool

import "sync"

// Size classes for bucketed pools.
const (
	Size4K   = 4 << 10
	Size16K  = 16 << 10
	Size64K  = 64 << 10
	Size256K = 256 << 10
	Size1M   = 1 << 20
	Size4M   = 4 << 20
	Size16M  = 16 << 20
)

var sizes = [...]int{Size4K, Size16K, Size64K, Size256K, Size1M, Size4M, Size16M}

var pools [len(sizes)]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i].New = func() any {
			b := make([]byte, sz)
			return &b
		}
	}
}

// class returns the pool index for a buffer of n bytes, or -1 when n is
// larger than the biggest class.
func class(n int) int {
	for i, sz := range sizes {
		if n <= sz {
			return i
		}
	}
	return -1
}

// Get returns a byte slice of length n. Its contents are unspecified; callers
// that do not overwrite every byte must clear it. Buffers larger than the
// biggest size class are allocated directly and never pooled.
func Get(n int) []byte {
	idx := class(n)
	if idx < 0 {
		return make([]byte, n)
	}
	bp := pools[idx].Get().(*[]byte)
	return (*bp)[:n]
}

// Put returns b to its size class. Slices that did not come from Get, or
// whose capacity is not exactly a class size, are dropped.
func Put(b []byte) {
	c := cap(b)
	idx := class(c)
	if idx < 0 || sizes[idx] != c {
		return
	}
	b = b[:c]
	pools[idx].Put(&b)
}
