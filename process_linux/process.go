//go:build linux

package process_linux

import (
	"fmt"
	"sync"

	"gofish/process"
	"gofish/process/memory_map"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/unix"
)

// LinuxProcess implements the process.Process interface for Linux systems.
// The handle is a pidfd, which pins the identity of the process for as long as it is open.
type LinuxProcess struct {
	pid   process.ProcessID
	pidfd int
	log   *logger.Logger
	mu    sync.Mutex
}

// New creates a new LinuxProcess instance
func New() process.Process {
	return &LinuxProcess{
		pidfd: -1,
		log:   logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
}

// NewWithPID creates a new LinuxProcess instance and opens it with the given PID
func NewWithPID(pid process.ProcessID) (process.Process, error) {
	p := New()
	if err := p.Open(pid); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *LinuxProcess) Open(pid process.ProcessID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pidfd >= 0 {
		return fmt.Errorf("%w: already open on pid %d", process.ErrProcessOpen, p.pid)
	}

	fd, err := unix.PidfdOpen(int(pid), 0)
	if err != nil {
		return fmt.Errorf("%w: pid %d: %v", process.ErrProcessOpen, pid, err)
	}

	// Reading the maps needs the same ptrace access check as reading memory
	if _, err := memory_map.ReadMemoryMap(int(pid)); err != nil {
		unix.Close(fd)
		return fmt.Errorf("%w: pid %d: %v", process.ErrProcessOpen, pid, err)
	}

	p.pid = pid
	p.pidfd = fd
	p.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid)))
	p.log.Infoln("Process opened")

	return nil
}

func (p *LinuxProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pidfd < 0 {
		return nil
	}

	err := unix.Close(p.pidfd)
	p.pidfd = -1
	p.pid = 0
	p.log.Infoln("Process closed")
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))

	if err != nil {
		return fmt.Errorf("close pidfd: %w", err)
	}
	return nil
}

// GetPID returns the process ID
func (p *LinuxProcess) GetPID() process.ProcessID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// FindModuleBase returns the lowest mapping whose backing file is named name.
func (p *LinuxProcess) FindModuleBase(name string) (process.ProcessMemoryAddress, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pidfd < 0 {
		return 0, process.ErrProcessNotOpen
	}

	mm, err := memory_map.ReadMemoryMap(int(p.pid))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", process.ErrEnumeration, err)
	}

	base, ok := memory_map.FindModuleBase(name, mm)
	if !ok {
		return 0, fmt.Errorf("%w: %s", process.ErrModuleNotFound, name)
	}

	p.log.Debugln("Module", name, "at", process.ProcessMemoryAddress(base).ToString())
	return process.ProcessMemoryAddress(base), nil
}
