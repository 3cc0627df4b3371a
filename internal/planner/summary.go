package planner

import "github.com/cordia-hr/leave-planner-go/internal/domain/leave"

// Summary tallies the current validation run. It is derived wholesale from
// the result list on every call; no aggregate state survives between runs.
type Summary struct {
	Valid    int
	Warning  int
	Conflict int
}

func Summarize(results []leave.ValidationResult) Summary {
	var s Summary
	for _, res := range results {
		switch res.Status {
		case leave.ValidationStatusValid:
			s.Valid++
		case leave.ValidationStatusWarning:
			s.Warning++
		case leave.ValidationStatusConflict:
			s.Conflict++
		}
	}
	return s
}

// CanSubmit is the submission gate: a successful validation for the current
// input, nothing in flight, and either no conflicts or an explicit
// partial-success override.
func CanSubmit(s State) bool {
	if s.Phase != PhaseValidated || s.Busy || len(s.Selection) == 0 {
		return false
	}
	summary := Summarize(s.Results)
	return summary.Conflict == 0 || s.AllowPartialSuccess
}

// OverAllocated reports whether the projected balance goes negative. The
// host flags this distinctly; it warns, it does not block.
func OverAllocated(s State) bool {
	return s.Impact != nil && s.Impact.RemainingBalance < 0
}

// Tone is the user-facing severity of a finished submission.
type Tone int

const (
	ToneSuccess Tone = iota
	ToneWarning
	ToneError
)

func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneError:
		return "error"
	}
	return "unknown"
}

// SubmissionTone maps a store summary to its message tone: all succeeded,
// mixed, or all failed.
func SubmissionTone(summary leave.BulkStoreSummary) Tone {
	switch {
	case summary.Failed == 0:
		return ToneSuccess
	case summary.Successful == 0:
		return ToneError
	default:
		return ToneWarning
	}
}
