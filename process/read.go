package process

import (
	"unsafe"
)

// Read copies sizeof(T) bytes at addr out of the target process into a fixed-width T.
// T must be a plain value type (integers, floats, arrays of them).
func Read[T any](proc MemoryReader, addr ProcessMemoryAddress) (T, error) {
	var t T
	size := ProcessMemorySize(unsafe.Sizeof(t))
	if size == 0 {
		return t, nil
	}

	data, err := proc.ReadMemory(addr, size)
	if err != nil {
		return t, err
	}
	if ProcessMemorySize(len(data)) < size {
		return t, NewReadError(addr, size, ProcessMemorySize(len(data)), 0)
	}

	copyTo(&t, data)
	return t, nil
}

// copyTo copies bytes to *T
func copyTo[T any](dst *T, src []byte) {
	size := int(unsafe.Sizeof(*dst))
	dstBytes := unsafe.Slice((*byte)(unsafe.Pointer(dst)), size)
	copy(dstBytes, src)
}
