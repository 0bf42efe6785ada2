package services

// State is the per-route progress of the pipeline.
type State int

const (
	StateStart State = iota
	StateSearching
	StateScraping
	StateReporting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateSearching:
		return "searching"
	case StateScraping:
		return "scraping"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Machine tracks one route through search, scrape and report. Failed
// attempts loop back to Searching until the attempt bound is spent, then
// the machine lands in Failed.
type Machine struct {
	state       State
	attempts    int
	maxAttempts int
}

func NewMachine(maxAttempts int) *Machine {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Machine{state: StateStart, maxAttempts: maxAttempts}
}

func (m *Machine) Current() State { return m.state }

// Attempts reports how many attempts have started.
func (m *Machine) Attempts() int { return m.attempts }

// Begin starts the first attempt.
func (m *Machine) Begin() {
	m.state = StateSearching
	m.attempts = 1
}

func (m *Machine) SearchOK() {
	if m.state == StateSearching {
		m.state = StateScraping
	}
}

func (m *Machine) ScrapeOK() {
	if m.state == StateScraping {
		m.state = StateReporting
	}
}

func (m *Machine) Reported() {
	if m.state == StateReporting {
		m.state = StateDone
	}
}

// Fail records a failed attempt and reports whether another one remains.
// When it does, the machine is back in Searching; otherwise it is Failed.
func (m *Machine) Fail() bool {
	if m.state != StateSearching && m.state != StateScraping {
		return false
	}

	if m.attempts >= m.maxAttempts {
		m.state = StateFailed

		return false
	}

	m.attempts++
	m.state = StateSearching

	return true
}

// Terminal reports whether the route has finished, either way.
func (m *Machine) Terminal() bool {
	return m.state == StateDone || m.state == StateFailed
}
