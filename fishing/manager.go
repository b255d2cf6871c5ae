package fishing

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"gofish/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// ProcessFinder discovers the target and checks that it is still running.
type ProcessFinder interface {
	FindProcessID(name string) (process.ProcessID, bool, error)
	Exists(pid process.ProcessID) bool
}

// Manager starts sessions against the process named ProcessName.
type Manager struct {
	ProcessName string
	Chain       process.PointerChain
	Finder      ProcessFinder
	Open        process.Opener
	Input       Injector
	Timings     Timings
	// Observer receives events of every session in addition to its log observer
	Observer Observer

	log *logger.Logger
}

func NewManager(processName string, chain process.PointerChain, finder ProcessFinder, open process.Opener, input Injector) *Manager {
	return &Manager{
		ProcessName: processName,
		Chain:       chain,
		Finder:      finder,
		Open:        open,
		Input:       input,
		Timings:     DefaultTimings(),
		log:         logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "fishing")),
	}
}

// Handle is the caller's side of a running session.
type Handle struct {
	ID  string
	PID process.ProcessID

	cancel   context.CancelFunc
	done     chan struct{}
	reported atomic.Bool

	mu    sync.Mutex
	stats Stats
	err   error
}

// StartSession finds the target, opens it, resolves the rod address and starts the worker.
// Setup errors are returned here and no worker is started.
func (m *Manager) StartSession(cfg Config) (*Handle, error) {
	if m.log == nil {
		m.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "fishing"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pid, ok, err := m.Finder.FindProcessID(m.ProcessName)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", m.ProcessName, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", process.ErrProcessNotFound, m.ProcessName)
	}

	mem, err := m.Open(pid)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	session := NewSession(mem, m.Chain, cfg, m.Input, SessionOptions{
		Timings:  m.Timings,
		Observer: Observers(NewLogObserver("session-"+id[:8]), m.Observer),
		Alive:    func() bool { return m.Finder.Exists(pid) },
	})
	if err := session.Setup(); err != nil {
		return nil, multierr.Append(err, mem.Close())
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		ID:     id,
		PID:    pid,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	m.log.Infoln("Session", id, "started on pid", pid, "limit", cfg.CastLimit, "threshold", cfg.Threshold)
	go m.work(ctx, h, session, mem)
	return h, nil
}

// work owns mem and releases it only after the session loop has returned.
func (m *Manager) work(ctx context.Context, h *Handle, session *Session, mem process.Process) {
	defer close(h.done)
	defer h.cancel()

	err := session.Run(ctx)
	err = multierr.Append(err, mem.Close())

	h.mu.Lock()
	h.stats = session.Stats()
	h.err = err
	h.mu.Unlock()

	m.log.Infoln("Session", h.ID, "finished after", h.stats.Casts, "casts")
}

// StopSession requests cancellation. It is idempotent and safe after completion.
func (m *Manager) StopSession(h *Handle) {
	if h != nil {
		h.Stop()
	}
}

// Stop requests cancellation of the worker.
func (h *Handle) Stop() {
	h.cancel()
}

// PollCompletion never blocks. It returns true exactly once, the first time it observes
// that the worker has finished.
func (h *Handle) PollCompletion() bool {
	select {
	case <-h.done:
		return h.reported.CompareAndSwap(false, true)
	default:
		return false
	}
}

// Done is closed when the worker has finished and released the process.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the worker has finished and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.Err()
}

// Err is the worker's terminal error; nil for a limit or cancellation exit.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}
