package fishing

import (
	"fmt"

	"gofish/bite"
	"gofish/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// EventKind identifies what happened inside a session.
type EventKind int

const (
	EventSetup EventKind = iota
	EventSettle
	EventCast
	EventStateChanged
	EventSample
	EventReadFailed
	EventTimeout
	EventReel
	EventActionFailed
	EventTargetExited
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventSetup:
		return "setup"
	case EventSettle:
		return "settle"
	case EventCast:
		return "cast"
	case EventStateChanged:
		return "state-changed"
	case EventSample:
		return "sample"
	case EventReadFailed:
		return "read-failed"
	case EventTimeout:
		return "timeout"
	case EventReel:
		return "reel"
	case EventActionFailed:
		return "action-failed"
	case EventTargetExited:
		return "target-exited"
	case EventFinished:
		return "finished"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is emitted by a session's worker. Fields not relevant to Kind are zero.
type Event struct {
	Kind    EventKind
	Cycle   int
	State   bite.State
	Sample  uint32
	Address process.ProcessMemoryAddress
	Err     error
}

// Observer receives session events on the worker goroutine. It must not block.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// NopObserver drops every event.
type NopObserver struct{}

func (NopObserver) OnEvent(Event) {}

// LogObserver writes events to a gologger logger.
type LogObserver struct {
	log *logger.Logger
}

func NewLogObserver(name string) *LogObserver {
	return &LogObserver{
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, name)),
	}
}

func (o *LogObserver) OnEvent(e Event) {
	switch e.Kind {
	case EventSetup:
		o.log.Infoln("Rod state address", e.Address.ToString())
	case EventSettle:
		o.log.Infoln("Starting fishing loop, settling first")
	case EventCast:
		o.log.Infoln("Cycle", e.Cycle, "casting rod")
	case EventStateChanged:
		o.log.Infoln("Cycle", e.Cycle, "state", e.State.String())
	case EventSample:
		o.log.Debugln("Cycle", e.Cycle, "rod state", e.Sample)
	case EventReadFailed:
		o.log.Debugln("Cycle", e.Cycle, "missed sample:", e.Err)
	case EventTimeout:
		o.log.Infoln("Cycle", e.Cycle, "timed out, recasting")
	case EventReel:
		o.log.Infoln("Cycle", e.Cycle, "fish on, reeling in")
	case EventActionFailed:
		o.log.Warn("Cycle ", e.Cycle, " input action failed: ", e.Err)
	case EventTargetExited:
		o.log.Warn("Target process exited")
	case EventFinished:
		if e.Err != nil {
			o.log.Warn("Fishing stopped: ", e.Err)
			return
		}
		o.log.Infoln("Fishing stopped")
	}
}

// multiObserver fans out to several observers in order.
type multiObserver []Observer

func (m multiObserver) OnEvent(e Event) {
	for _, o := range m {
		o.OnEvent(e)
	}
}

// Observers combines observers, skipping nils.
func Observers(list ...Observer) Observer {
	out := make(multiObserver, 0, len(list))
	for _, o := range list {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}
