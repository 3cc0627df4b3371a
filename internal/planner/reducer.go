package planner

import (
	"github.com/cordia-hr/leave-planner-go/internal/calendar"
	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
)

// Reduce advances the state by one event. It is pure: the input state is
// never modified, and the same (state, event) pair always yields the same
// result.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case Opened:
		next := State{
			Open:    true,
			UserID:  ev.UserID,
			Year:    ev.Year,
			Month:   ev.Month,
			Today:   ev.Today,
			MinDate: ev.MinDate,
			MaxDate: ev.MaxDate,
			// The guard counter survives reopen so completions from an
			// abandoned dialog can never be mistaken for fresh ones.
			Generation: s.Generation,
		}
		// Reuse the cached year only for the same user.
		if s.LoadedUser == ev.UserID && s.LoadedUser != "" {
			next.ExistingLeaves = s.ExistingLeaves
			next.Holidays = s.Holidays
			next.LoadedUser = s.LoadedUser
			next.LoadedYear = s.LoadedYear
		}
		return next

	case Closed:
		s.Open = false
		s.Busy = false
		s.Phase = PhaseIdle
		return s

	case MonthChanged:
		s.Year = ev.Year
		s.Month = ev.Month
		return s

	case DayClicked:
		return reduceDayClicked(s, ev)

	case LeaveTypeChanged:
		if s.LeaveTypeID != ev.ID {
			s.LeaveTypeID = ev.ID
			s.Phase = PhaseIdle
		}
		return s

	case ReasonChanged:
		if s.Reason != ev.Reason {
			s.Reason = ev.Reason
			s.Phase = PhaseIdle
		}
		return s

	case PartialSuccessToggled:
		s.AllowPartialSuccess = ev.Allowed
		return s

	case CalendarFetchStarted:
		s.Generation = ev.Gen
		s.Busy = true
		s.LastError = ""
		return s

	case CalendarFetched:
		if stale(s, ev.Gen) {
			return s
		}
		s.Busy = false
		s.ExistingLeaves = toRanges(ev.Data.ExistingLeaves)
		s.Holidays = calendar.NewDateSet(ev.Data.PublicHolidays...)
		s.LoadedUser = s.UserID
		s.LoadedYear = s.Year
		return s

	case CalendarFetchFailed:
		if stale(s, ev.Gen) {
			return s
		}
		s.Busy = false
		s.LastError = ev.Err
		return s

	case ValidationStarted:
		s.Generation = ev.Gen
		s.Busy = true
		s.LastError = ""
		return s

	case ValidationSucceeded:
		if stale(s, ev.Gen) {
			return s
		}
		s.Busy = false
		s.Results = ev.Results
		impact := ev.Impact
		s.Impact = &impact
		s.Phase = PhaseValidated
		return s

	case ValidationFailed:
		// The previous successful run stays visible; only the error is new.
		if stale(s, ev.Gen) {
			return s
		}
		s.Busy = false
		s.LastError = ev.Err
		return s

	case SubmissionStarted:
		s.Generation = ev.Gen
		s.Busy = true
		s.Phase = PhaseSubmitting
		s.LastError = ""
		return s

	case SubmissionFinished:
		if stale(s, ev.Gen) {
			return s
		}
		resp := ev.Resp
		s.Busy = false
		s.Outcome = &resp
		s.Open = false
		s.Phase = PhaseIdle
		return s

	case SubmissionFailed:
		if stale(s, ev.Gen) {
			return s
		}
		s.Busy = false
		s.Phase = PhaseValidated
		s.LastError = ev.Err
		return s
	}

	return s
}

// stale reports whether a network completion belongs to an abandoned or
// superseded round trip and must be discarded without touching the state.
func stale(s State, gen int) bool {
	return !s.Open || gen != s.Generation
}

func reduceDayClicked(s State, ev DayClicked) State {
	if !s.Open || s.Busy || s.Phase == PhaseSubmitting {
		return s
	}

	cell := cellFor(s, ev.Date)
	st := calendar.Classify(cell, classifyContext(s))
	if !st.Selectable && !st.Selected {
		return s
	}

	s.Selection = s.Selection.Toggle(ev.Date)
	// Any change to the dates invalidates a previous validation run.
	s.Phase = PhaseIdle
	return s
}

// cellFor reconstructs the grid cell a click refers to. Only dates inside
// the visible month are ever current-month cells.
func cellFor(s State, date string) calendar.DayCell {
	cell := calendar.DayCell{Date: date}
	if t, err := calendar.ParseDate(date); err == nil {
		cell.Day = t.Day()
		cell.CurrentMonth = t.Year() == s.Year && t.Month() == s.Month
	}
	return cell
}

func classifyContext(s State) calendar.Context {
	return calendar.Context{
		Selection:      s.Selection,
		ExistingLeaves: s.ExistingLeaves,
		Holidays:       s.Holidays,
		MinDate:        s.MinDate,
		MaxDate:        s.MaxDate,
		Today:          s.Today,
		Loading:        s.Busy,
	}
}

// Grid returns the visible month's cells with their derived status, ready
// for rendering.
func Grid(s State) []ClassifiedCell {
	cells := calendar.MonthGrid(s.Year, s.Month)
	cx := classifyContext(s)

	out := make([]ClassifiedCell, 0, len(cells))
	for _, cell := range cells {
		out = append(out, ClassifiedCell{Cell: cell, Status: calendar.Classify(cell, cx)})
	}
	return out
}

type ClassifiedCell struct {
	Cell   calendar.DayCell
	Status calendar.DayStatus
}

func toRanges(in []leave.ExternalLeaveRange) []calendar.DateRange {
	out := make([]calendar.DateRange, 0, len(in))
	for _, r := range in {
		out = append(out, calendar.DateRange{From: r.FromDate, To: r.ToDate})
	}
	return out
}
