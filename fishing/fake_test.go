package fishing

import (
	"errors"
	"sync"
	"time"

	"gofish/process"
)

var testChain = process.NewPointerChain("Game.exe", 0x10, 0x8)

func fastTimings() Timings {
	return Timings{
		Settle:       time.Millisecond,
		CastDelay:    time.Millisecond,
		Poll:         time.Millisecond,
		CycleTimeout: 30 * time.Millisecond,
		Cooldown:     time.Millisecond,
	}
}

// fakeProcess replays script forever from ReadUINT32.
type fakeProcess struct {
	mu      sync.Mutex
	script  []uint32
	pos     int
	readErr error
	noChain bool
	closed  int
	reads   int
}

func (p *fakeProcess) Open(pid process.ProcessID) error { return nil }
func (p *fakeProcess) GetPID() process.ProcessID { return 1 }

func (p *fakeProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

func (p *fakeProcess) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeProcess) FindModuleBase(name string) (process.ProcessMemoryAddress, error) {
	if name != "Game.exe" {
		return 0, process.ErrModuleNotFound
	}
	return 0x1000, nil
}

func (p *fakeProcess) ReadPOINTER(addr process.ProcessMemoryAddress) (process.ProcessMemoryAddress, error) {
	if p.noChain || addr != 0x1010 {
		return 0, process.NewReadError(addr, process.PointerSize, 0, 14)
	}
	return 0x2000, nil
}

func (p *fakeProcess) ReadUINT64(addr process.ProcessMemoryAddress) (uint64, error) {
	v, err := p.ReadUINT32(addr)
	return uint64(v), err
}

func (p *fakeProcess) ReadUINT32(addr process.ProcessMemoryAddress) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reads++
	if p.readErr != nil {
		return 0, p.readErr
	}
	if addr != 0x2008 {
		return 0, process.NewReadError(addr, 4, 0, 14)
	}
	if len(p.script) == 0 {
		return 0, nil
	}
	v := p.script[p.pos%len(p.script)]
	p.pos++
	return v, nil
}

func (p *fakeProcess) closeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

type fakeInput struct {
	mu    sync.Mutex
	count int
	err   error
}

func (f *fakeInput) Trigger(kind ActionKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	return f.err
}

func (f *fakeInput) triggers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

type recorder struct {
	mu     sync.Mutex
	events []Event
	hook   func(Event)
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	hook := r.hook
	r.mu.Unlock()
	if hook != nil {
		hook(e)
	}
}

func (r *recorder) count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fakeFinder struct {
	pid   process.ProcessID
	found bool
	err   error
	dead  bool
}

func (f *fakeFinder) FindProcessID(name string) (process.ProcessID, bool, error) {
	return f.pid, f.found, f.err
}

func (f *fakeFinder) Exists(pid process.ProcessID) bool {
	return !f.dead
}

// biteScript produces one bite per cycle: cast lands on 1, peaks at 5, falls three times.
var biteScript = []uint32{0, 0, 1, 3, 5, 4, 3, 2}
