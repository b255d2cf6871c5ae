//go:build linux

package process_linux

import (
	"syscall"
	"unsafe"

	"gofish/process"

	"golang.org/x/sys/unix"
)

// process_vm_readv uses the process_vm_readv syscall to read memory from another process
func process_vm_readv(
	pid process.ProcessID,
	localBuf []byte,
	remoteAddr process.ProcessMemoryAddress,
) (int, syscall.Errno) {
	// Create iovec for local buffer
	localIov := unix.Iovec{Base: &localBuf[0]}
	localIov.SetLen(len(localBuf))

	// Create iovec for remote buffer
	remoteIov := unix.RemoteIovec{
		Base: uintptr(remoteAddr),
		Len:  len(localBuf),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_READV,
		uintptr(pid),                        // Remote process PID
		uintptr(unsafe.Pointer(&localIov)),  // Local iovec
		uintptr(1),                          // Number of local iovecs
		uintptr(unsafe.Pointer(&remoteIov)), // Remote iovec
		uintptr(1),                          // Number of remote iovecs
		uintptr(0),                          // Flags (reserved for future use)
	)
	if errno != 0 {
		return 0, errno
	}

	return int(n), 0
}

// ReadMemory reads exactly size bytes from the process at the specified address.
// The lock is held across the syscall so reads never interleave with Close.
func (p *LinuxProcess) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pidfd < 0 {
		return nil, process.ErrProcessNotOpen
	}

	buf := make([]byte, size)
	n, errno := process_vm_readv(p.pid, buf, addr)
	if errno != 0 || process.ProcessMemorySize(n) != size {
		return nil, process.NewReadError(addr, size, process.ProcessMemorySize(n), errno)
	}

	return buf, nil
}
