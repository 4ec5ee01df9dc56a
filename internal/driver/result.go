package driver

// State is the driver's position in the repair loop.
type State uint8

const (
	Running State = iota
	Succeeded
	FailedNoProgress
	FailedBudgetExhausted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case FailedNoProgress:
		return "no progress"
	case FailedBudgetExhausted:
		return "budget exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the loop has stopped.
func (s State) Terminal() bool {
	return s != Running
}

// Result is the status a repair reports to its caller. The driver fills
// Success, RepairCount and State; the lifetime flags come from elision.
type Result struct {
	Success                bool
	RepairCount            int
	HasNonElidibleLifetime bool
	HasStructLifetime      bool
	State                  State
}
