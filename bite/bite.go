// Package bite classifies the watched rod signal into cast, wait and reel decisions.
//
// The signal rises while a catch is pending and falls once it is safe to reel. A bite is
// a run of at least three consecutive falling samples after a peak above 2, extended by
// Threshold further falling observations. Detector is pure: it never logs, sleeps or reads
// a clock, so it can be driven from a literal sample slice.
package bite

// State is the per-cycle detector state.
type State int

const (
	// Casting is the initial state; left on the first sample above zero.
	Casting State = iota
	// WaitingForBite tracks peaks and falling runs.
	WaitingForBite
	// Reeling is terminal for the cycle.
	Reeling
)

func (s State) String() string {
	switch s {
	case Casting:
		return "casting"
	case WaitingForBite:
		return "waiting-for-bite"
	case Reeling:
		return "reeling"
	}
	return "unknown"
}

// minPeak and minFalling filter jitter near zero.
const (
	minPeak    = 2
	minFalling = 2
)

// Snapshot is the carried state of a Detector.
type Snapshot struct {
	State    State
	Peak     uint32
	Last     uint32
	Falling  uint32
	PostPeak uint32
}

// Detector holds one cycle's worth of state. Use a fresh Detector (or Reset) per cycle.
type Detector struct {
	threshold uint32
	state     State
	peak      uint32
	last      uint32
	falling   uint32
	postPeak  uint32
}

// New returns a Detector in Casting with zeroed carried state.
func New(threshold uint32) *Detector {
	return &Detector{threshold: threshold}
}

// Reset returns the detector to Casting and zeroes the carried state.
func (d *Detector) Reset() {
	*d = Detector{threshold: d.threshold}
}

func (d *Detector) State() State {
	return d.state
}

func (d *Detector) Threshold() uint32 {
	return d.threshold
}

func (d *Detector) Snapshot() Snapshot {
	return Snapshot{
		State:    d.state,
		Peak:     d.peak,
		Last:     d.last,
		Falling:  d.falling,
		PostPeak: d.postPeak,
	}
}

// Feed evaluates one sample and returns the resulting state.
func (d *Detector) Feed(v uint32) State {
	switch d.state {
	case Casting:
		if v > 0 {
			d.state = WaitingForBite
		}
	case WaitingForBite:
		d.state = d.classify(v)
	}
	return d.state
}

func (d *Detector) classify(v uint32) State {
	defer func() { d.last = v }()

	switch {
	case v > d.peak:
		d.peak = v
		d.falling = 0
		d.postPeak = 0
	case v < d.last:
		d.falling++
		if d.falling > minFalling && d.peak > minPeak {
			d.postPeak++
			if d.postPeak > d.threshold {
				return Reeling
			}
		}
	default:
		// a plateau or uptick below the peak breaks the falling run
		d.falling = 0
	}
	return WaitingForBite
}
