package engine

// Phase is the month cycle position. The three phases are strictly
// ordered and never interleave within a month: plans are accepted only in
// Planning, all monetary mutation happens in Execution, and Review is
// read-only. AdvanceMonth runs Execution and Review back to back, so
// between engine calls a session always rests in Planning.
type Phase int

const (
	PhasePlanning Phase = iota
	PhaseExecution
	PhaseReview
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseExecution:
		return "execution"
	case PhaseReview:
		return "review"
	default:
		return "unknown"
	}
}
