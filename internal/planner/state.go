// Package planner holds the client-side engine of the bulk leave flow: an
// explicit state object advanced by a pure reducer, plus a thin HTTP client
// for the three server calls. Nothing in here depends on any UI framework,
// so the whole flow is testable in isolation.
package planner

import (
	"time"

	"github.com/cordia-hr/leave-planner-go/internal/calendar"
	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
)

// Phase is the submission lifecycle of the flow.
type Phase int

const (
	// PhaseIdle: no successful validation for the current input yet.
	PhaseIdle Phase = iota
	// PhaseValidated: validation succeeded at least once for the current
	// dates, leave type and reason.
	PhaseValidated
	// PhaseSubmitting: the store call is in flight.
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidated:
		return "validated"
	case PhaseSubmitting:
		return "submitting"
	}
	return "unknown"
}

// State is the complete state of one open planner dialog. It is advanced
// only through Reduce; every field is treated as immutable once placed here.
type State struct {
	Open   bool
	UserID string

	// Visible month
	Year  int
	Month time.Month

	// Form fields
	LeaveTypeID         string
	Reason              string
	AllowPartialSuccess bool

	Selection calendar.Selection
	MinDate   string
	MaxDate   string
	Today     string

	// Year-cache: backend facts for (LoadedUser, LoadedYear). A single slot
	// is enough because only one month is ever displayed at a time.
	ExistingLeaves []calendar.DateRange
	Holidays       calendar.DateSet
	LoadedUser     string
	LoadedYear     int

	// Single-flight guard. Generation stamps every network round trip;
	// completions carrying a stale generation are discarded.
	Busy       bool
	Generation int

	Phase   Phase
	Results []leave.ValidationResult
	Impact  *leave.BalanceImpact

	// Outcome of the last finished submission, kept for the closing report.
	Outcome *leave.BulkStoreResponse

	LastError string
}

// ValidateRequest builds the validate payload from the current input.
func (s State) ValidateRequest() leave.BulkValidateRequest {
	return leave.BulkValidateRequest{
		UserID:      s.UserID,
		Dates:       append([]string(nil), s.Selection...),
		LeaveTypeID: s.LeaveTypeID,
		Reason:      s.Reason,
	}
}

// StoreRequest builds the store payload from the current input.
func (s State) StoreRequest() leave.BulkStoreRequest {
	return leave.BulkStoreRequest{
		UserID:              s.UserID,
		Dates:               append([]string(nil), s.Selection...),
		LeaveTypeID:         s.LeaveTypeID,
		Reason:              s.Reason,
		AllowPartialSuccess: s.AllowPartialSuccess,
	}
}

// Event is a reducer input. UI events come from the host; the *Started /
// *Fetched / *Failed events are dispatched by the Planner around its network
// calls.
type Event interface{ isEvent() }

// Opened starts a fresh dialog for a user. Opening for a different user
// resets the year-cache marker so the next load is forced to refetch.
type Opened struct {
	UserID  string
	Year    int
	Month   time.Month
	Today   string
	MinDate string
	MaxDate string
}

// Closed abandons the dialog; any in-flight results are discarded on
// arrival.
type Closed struct{}

// MonthChanged navigates the visible month without touching the selection.
type MonthChanged struct {
	Year  int
	Month time.Month
}

// DayClicked toggles a date. Clicks on non-selectable cells and clicks
// while a fetch is in flight are no-ops.
type DayClicked struct{ Date string }

type LeaveTypeChanged struct{ ID string }

type ReasonChanged struct{ Reason string }

type PartialSuccessToggled struct{ Allowed bool }

type CalendarFetchStarted struct{ Gen int }

type CalendarFetched struct {
	Gen  int
	Data leave.CalendarData
}

type CalendarFetchFailed struct {
	Gen int
	Err string
}

type ValidationStarted struct{ Gen int }

type ValidationSucceeded struct {
	Gen     int
	Results []leave.ValidationResult
	Impact  leave.BalanceImpact
}

type ValidationFailed struct {
	Gen int
	Err string
}

type SubmissionStarted struct{ Gen int }

// SubmissionFinished carries a server response, success or mixed. The
// dialog closes on it.
type SubmissionFinished struct {
	Gen  int
	Resp leave.BulkStoreResponse
}

// SubmissionFailed is a transport-level failure; the flow stays validated
// so the user can retry without re-validating.
type SubmissionFailed struct {
	Gen int
	Err string
}

func (Opened) isEvent()                {}
func (Closed) isEvent()                {}
func (MonthChanged) isEvent()          {}
func (DayClicked) isEvent()            {}
func (LeaveTypeChanged) isEvent()      {}
func (ReasonChanged) isEvent()         {}
func (PartialSuccessToggled) isEvent() {}
func (CalendarFetchStarted) isEvent()  {}
func (CalendarFetched) isEvent()       {}
func (CalendarFetchFailed) isEvent()   {}
func (ValidationStarted) isEvent()     {}
func (ValidationSucceeded) isEvent()   {}
func (ValidationFailed) isEvent()      {}
func (SubmissionStarted) isEvent()     {}
func (SubmissionFinished) isEvent()    {}
func (SubmissionFailed) isEvent()      {}
