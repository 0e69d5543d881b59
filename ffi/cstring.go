package ffi

import "unsafe"

// maxCStringLen bounds C string scans so a missing NUL terminator cannot
// walk off into unmapped memory indefinitely.
const maxCStringLen = 1 << 20

// GoString copies a NUL-terminated C string into a Go string. A nil
// pointer yields "".
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for n < maxCStringLen && *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// CString returns s as a NUL-terminated byte slice. The caller owns the
// backing array and must keep it alive (and pinned, if handed to the
// frontend beyond a single call) for as long as the C side may read it.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// StringPtr returns a pointer to the first byte of a NUL-terminated
// slice produced by CString.
func StringPtr(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return &b[0]
}

// GoBytes copies n bytes of C memory into a fresh Go slice.
func GoBytes(p unsafe.Pointer, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(p), n))
	return out
}

// ByteView returns the C memory at p as a Go slice without copying. The
// view is only valid while the C allocation is; callers must not retain
// it past the call that produced p.
func ByteView(p unsafe.Pointer, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}
