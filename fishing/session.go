// Package fishing drives cast, detect and reel cycles against a target process.
package fishing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gofish/bite"
	"gofish/process"
)

var (
	ErrSetupFailed  = errors.New("session setup failed")
	ErrNotSetup     = errors.New("session not set up")
	ErrTargetExited = errors.New("target process exited")
)

// ActionKind is an input action the session asks the injector to perform.
type ActionKind int

const (
	// PrimaryAction casts when idle and reels when a fish is hooked.
	PrimaryAction ActionKind = iota
)

func (a ActionKind) String() string {
	if a == PrimaryAction {
		return "primary"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Injector simulates input in the target. Trigger blocks for the press and release.
type Injector interface {
	Trigger(kind ActionKind) error
}

// Memory is what a session needs from the target process.
type Memory interface {
	process.ModuleLocator
	process.PointerReader
	ReadUINT32(addr process.ProcessMemoryAddress) (uint32, error)
}

// Stats counts what a session did.
type Stats struct {
	Casts        int
	Reels        int
	Timeouts     int
	ReadFailures int
}

// SessionOptions are the collaborators of a session. Zero values get defaults.
type SessionOptions struct {
	Timings  Timings
	Observer Observer
	// Alive reports whether the target is still running; nil means always alive
	Alive func() bool
}

type cycleOutcome int

const (
	outcomeReeled cycleOutcome = iota
	outcomeTimedOut
	outcomeCancelled
	outcomeExited
)

// Session runs cycles on the calling goroutine. It is not safe for concurrent use;
// one worker owns it for its whole life.
type Session struct {
	mem      Memory
	chain    process.PointerChain
	cfg      Config
	input    Injector
	timings  Timings
	observer Observer
	alive    func() bool

	addr     process.ProcessMemoryAddress
	resolved bool
	stats    Stats
}

func NewSession(mem Memory, chain process.PointerChain, cfg Config, input Injector, opts SessionOptions) *Session {
	s := &Session{
		mem:      mem,
		chain:    chain,
		cfg:      cfg,
		input:    input,
		timings:  opts.Timings,
		observer: opts.Observer,
		alive:    opts.Alive,
	}
	if s.timings == (Timings{}) {
		s.timings = DefaultTimings()
	}
	if s.observer == nil {
		s.observer = NopObserver{}
	}
	return s
}

// Setup resolves the rod state address once. Resolution is all-or-nothing; nothing is
// cached on failure.
func (s *Session) Setup() error {
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSetupFailed, err)
	}

	addr, err := s.chain.Resolve(s.mem)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %w", ErrSetupFailed, s.chain.String(), err)
	}

	s.addr = addr
	s.resolved = true
	s.emit(Event{Kind: EventSetup, Address: addr})
	return nil
}

// Address is the resolved rod state address.
func (s *Session) Address() (process.ProcessMemoryAddress, bool) {
	return s.addr, s.resolved
}

// Stats returns the counters so far. Only call it from the worker or after Run returned.
func (s *Session) Stats() Stats {
	return s.stats
}

// Run settles, then cycles until ctx is cancelled, the cast limit is reached or the target
// exits. Cancellation is not an error. EventFinished is emitted exactly once.
func (s *Session) Run(ctx context.Context) (err error) {
	if !s.resolved {
		return ErrNotSetup
	}
	defer func() {
		s.emit(Event{Kind: EventFinished, Err: err})
	}()

	s.emit(Event{Kind: EventSettle})
	if !sleep(ctx, s.timings.Settle) {
		return nil
	}

	for cycle := 1; ctx.Err() == nil; cycle++ {
		outcome := s.cycle(ctx, cycle)
		s.stats.Casts++

		switch outcome {
		case outcomeCancelled:
			return nil
		case outcomeExited:
			s.emit(Event{Kind: EventTargetExited, Cycle: cycle})
			return ErrTargetExited
		}

		if !sleep(ctx, s.timings.Cooldown) {
			return nil
		}

		if s.cfg.CastLimit > 0 && s.stats.Casts >= s.cfg.CastLimit {
			return nil
		}
	}
	return nil
}

func (s *Session) cycle(ctx context.Context, n int) cycleOutcome {
	det := bite.New(s.cfg.Threshold)
	start := time.Now()

	s.emit(Event{Kind: EventCast, Cycle: n})
	s.trigger(n)
	if !sleep(ctx, s.timings.CastDelay) {
		return outcomeCancelled
	}

	for {
		if ctx.Err() != nil {
			return outcomeCancelled
		}

		if v, err := s.mem.ReadUINT32(s.addr); err != nil {
			s.stats.ReadFailures++
			s.emit(Event{Kind: EventReadFailed, Cycle: n, Address: s.addr, Err: err})
		} else {
			prev := det.State()
			state := det.Feed(v)
			s.emit(Event{Kind: EventSample, Cycle: n, State: state, Sample: v})
			if state != prev {
				s.emit(Event{Kind: EventStateChanged, Cycle: n, State: state, Sample: v})
			}
			if state == bite.Reeling {
				s.stats.Reels++
				s.emit(Event{Kind: EventReel, Cycle: n})
				s.trigger(n)
				return outcomeReeled
			}
		}

		if time.Since(start) > s.timings.CycleTimeout {
			s.stats.Timeouts++
			s.emit(Event{Kind: EventTimeout, Cycle: n, State: det.State()})
			if s.alive != nil && !s.alive() {
				return outcomeExited
			}
			return outcomeTimedOut
		}

		if !sleep(ctx, s.timings.Poll) {
			return outcomeCancelled
		}
	}
}

// trigger is best-effort: failures are reported and the cycle goes on.
func (s *Session) trigger(n int) {
	if s.input == nil {
		return
	}
	if err := s.input.Trigger(PrimaryAction); err != nil {
		s.emit(Event{Kind: EventActionFailed, Cycle: n, Err: err})
	}
}

func (s *Session) emit(e Event) {
	s.observer.OnEvent(e)
}

// sleep waits for d or until ctx is done, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
