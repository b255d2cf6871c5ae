package process

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	ps "github.com/shirou/gopsutil/v3/process"
)

// Finder discovers running processes by executable name.
type Finder struct {
	// MaxWaitInterval caps the backoff between polls in WaitForProcess
	MaxWaitInterval time.Duration
}

// NewFinder creates a Finder with default settings
func NewFinder() *Finder {
	return &Finder{MaxWaitInterval: 5 * time.Second}
}

// FindProcessID returns the lowest PID whose name equals name exactly.
// The bool is false when no process matches.
func (f *Finder) FindProcessID(name string) (ProcessID, bool, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, false, fmt.Errorf("list processes: %w", err)
	}

	found := false
	var best int32
	for _, p := range procs {
		procName, err := p.Name()
		if err != nil || procName != name {
			continue
		}
		if !found || p.Pid < best {
			best = p.Pid
			found = true
		}
	}
	return ProcessID(best), found, nil
}

// Exists reports whether pid is still running.
func (f *Finder) Exists(pid ProcessID) bool {
	ok, err := ps.PidExists(int32(pid))
	return err == nil && ok
}

// WaitForProcess polls with exponential backoff until a process named name is running
// or ctx is done.
func (f *Finder) WaitForProcess(ctx context.Context, name string) (ProcessID, error) {
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = 0
	if f.MaxWaitInterval > 0 {
		eb.MaxInterval = f.MaxWaitInterval
	}

	var pid ProcessID
	err := backoff.Retry(func() error {
		id, ok, err := f.FindProcessID(name)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrProcessNotFound, name)
		}
		pid = id
		return nil
	}, backoff.WithContext(eb, ctx))
	if err != nil {
		return 0, err
	}
	return pid, nil
}
