// Package process provides interfaces and types for reading another process's memory
package process

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrProcessNotOpen is returned when an operation requiring an open process is attempted
	// before the process has been successfully opened or after it has been closed.
	ErrProcessNotOpen = errors.New("process not open")

	// ErrProcessOpen is returned when a handle to the target process cannot be acquired.
	ErrProcessOpen = errors.New("cannot open process")

	// ErrProcessNotFound is returned when no running process matches a name.
	ErrProcessNotFound = errors.New("process not found")

	// ErrModuleNotFound is returned when module enumeration succeeds but no module matches.
	ErrModuleNotFound = errors.New("module not found")

	// ErrEnumeration is returned when the module enumeration call itself fails.
	ErrEnumeration = errors.New("module enumeration failed")

	// ErrShortRead marks a read that copied fewer bytes than requested.
	ErrShortRead = errors.New("short read")
)

// ReadError describes a failed copy out of the target process.
// Code carries the last platform error number (errno or GetLastError), zero for short reads.
type ReadError struct {
	Address ProcessMemoryAddress
	Size    ProcessMemorySize
	Read    ProcessMemorySize
	Code    syscall.Errno
	Err     error
}

func (e *ReadError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("read %s (%d of %d bytes): %v (code %d)", e.Address.ToString(), e.Read, e.Size, e.Err, uintptr(e.Code))
	}
	return fmt.Sprintf("read %s (%d of %d bytes): %v", e.Address.ToString(), e.Read, e.Size, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError builds a ReadError from a raw platform result.
func NewReadError(addr ProcessMemoryAddress, size, read ProcessMemorySize, code syscall.Errno) *ReadError {
	if code == 0 {
		return &ReadError{Address: addr, Size: size, Read: read, Err: ErrShortRead}
	}
	return &ReadError{Address: addr, Size: size, Read: read, Code: code, Err: code}
}
