//go:build windows

package process_windows

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"gofish/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/windows"
)

const maxModuleName = 260

// WindowsProcess implements the process.Process interface for Windows systems
type WindowsProcess struct {
	pid    process.ProcessID
	handle windows.Handle
	log    *logger.Logger
	mu     sync.Mutex
}

// New creates a new WindowsProcess instance
func New() process.Process {
	return &WindowsProcess{
		log: logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
}

// NewWithPID creates a new WindowsProcess instance and opens it with the given PID
func NewWithPID(pid process.ProcessID) (process.Process, error) {
	p := New()
	if err := p.Open(pid); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *WindowsProcess) Open(pid process.ProcessID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle != 0 {
		return fmt.Errorf("%w: already open on pid %d", process.ErrProcessOpen, p.pid)
	}

	handle, err := windows.OpenProcess(windows.PROCESS_ALL_ACCESS, false, uint32(pid))
	if err != nil {
		return fmt.Errorf("%w: pid %d: %v", process.ErrProcessOpen, pid, err)
	}

	p.pid = pid
	p.handle = handle
	p.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid)))
	p.log.Infoln("Process opened")
	return nil
}

func (p *WindowsProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == 0 {
		return nil
	}

	err := windows.CloseHandle(p.handle)
	p.handle = 0
	p.pid = 0
	p.log.Infoln("Process closed")
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))

	if err != nil {
		return fmt.Errorf("CloseHandle failed: %w", err)
	}
	return nil
}

func (p *WindowsProcess) GetPID() process.ProcessID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// FindModuleBase enumerates every loaded module and matches its base name exactly.
func (p *WindowsProcess) FindModuleBase(name string) (process.ProcessMemoryAddress, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == 0 {
		return 0, process.ErrProcessNotOpen
	}

	modules := make([]windows.Handle, 256)
	for {
		var needed uint32
		size := uint32(len(modules)) * uint32(unsafe.Sizeof(modules[0]))
		if err := windows.EnumProcessModules(p.handle, &modules[0], size, &needed); err != nil {
			return 0, fmt.Errorf("%w: %v", process.ErrEnumeration, err)
		}
		count := int(needed / uint32(unsafe.Sizeof(modules[0])))
		if count <= len(modules) {
			modules = modules[:count]
			break
		}
		modules = make([]windows.Handle, count)
	}

	var buf [maxModuleName]uint16
	for _, module := range modules {
		if err := windows.GetModuleBaseName(p.handle, module, &buf[0], maxModuleName); err != nil {
			continue
		}
		if windows.UTF16ToString(buf[:]) == name {
			p.log.Debugln("Module", name, "at", process.ProcessMemoryAddress(module).ToString())
			return process.ProcessMemoryAddress(module), nil
		}
	}

	return 0, fmt.Errorf("%w: %s", process.ErrModuleNotFound, name)
}

// ReadMemory reads exactly size bytes. The lock is held across the call so a concurrent
// Close cannot invalidate the handle mid-read.
func (p *WindowsProcess) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == 0 {
		return nil, process.ErrProcessNotOpen
	}

	buf := make([]byte, size)
	var bytesRead uintptr
	err := windows.ReadProcessMemory(p.handle, uintptr(addr), &buf[0], uintptr(size), &bytesRead)
	if err != nil {
		var errno syscall.Errno
		if !errors.As(err, &errno) {
			errno = syscall.Errno(windows.ERROR_PARTIAL_COPY)
		}
		return nil, process.NewReadError(addr, size, process.ProcessMemorySize(bytesRead), errno)
	}
	if bytesRead != uintptr(size) {
		return nil, process.NewReadError(addr, size, process.ProcessMemorySize(bytesRead), 0)
	}

	return buf, nil
}
