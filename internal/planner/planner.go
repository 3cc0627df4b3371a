package planner

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNoSelection         = errors.New("no dates selected")
	ErrNoLeaveType         = errors.New("leave type is required")
	ErrNoReason            = errors.New("reason is required")
	ErrNotValidated        = errors.New("selection has not been validated")
	ErrUnresolvedConflicts = errors.New("selection has unresolved conflicts")
	ErrRequestInFlight     = errors.New("another request is in flight")
	ErrClosed              = errors.New("planner is not open")
)

// Planner drives one dialog's flow: it owns the State, feeds every change
// through Reduce, and wraps the three network calls with the single-flight
// guard. All methods must be called from a single goroutine, mirroring the
// event-loop model of the hosting UI.
type Planner struct {
	api   API
	state State
}

func New(api API) *Planner {
	return &Planner{api: api}
}

// State returns the current state snapshot.
func (p *Planner) State() State {
	return p.state
}

// Dispatch applies one event.
func (p *Planner) Dispatch(ev Event) {
	p.state = Reduce(p.state, ev)
}

// EnsureCalendar loads existing leaves and holidays for the visible year.
// A loaded (user, year) slot is served from the cache with no network call;
// navigating months within the same year therefore never refetches.
func (p *Planner) EnsureCalendar(ctx context.Context) error {
	s := p.state
	if !s.Open {
		return ErrClosed
	}
	if s.Busy {
		return ErrRequestInFlight
	}
	if s.LoadedUser == s.UserID && s.LoadedYear == s.Year {
		return nil // cache hit
	}

	gen := s.Generation + 1
	p.Dispatch(CalendarFetchStarted{Gen: gen})

	data, err := p.api.CalendarData(ctx, s.UserID, s.Year)
	if err != nil {
		p.Dispatch(CalendarFetchFailed{Gen: gen, Err: err.Error()})
		return err
	}
	p.Dispatch(CalendarFetched{Gen: gen, Data: data})
	return nil
}

// Validate submits the current selection for a server verdict. Input
// preconditions are enforced before any network traffic.
func (p *Planner) Validate(ctx context.Context) error {
	s := p.state
	if !s.Open {
		return ErrClosed
	}
	if s.Busy {
		return ErrRequestInFlight
	}
	if err := checkInput(s); err != nil {
		return err
	}

	gen := s.Generation + 1
	p.Dispatch(ValidationStarted{Gen: gen})

	resp, err := p.api.Validate(ctx, s.ValidateRequest())
	if err != nil {
		p.Dispatch(ValidationFailed{Gen: gen, Err: err.Error()})
		return err
	}
	p.Dispatch(ValidationSucceeded{Gen: gen, Results: resp.ValidationResults, Impact: resp.EstimatedBalanceImpact})
	return nil
}

// Submit posts the batch. It refuses to run unless the gate holds: a
// successful validation for the current input and no unresolved conflicts
// (or the partial-success override).
func (p *Planner) Submit(ctx context.Context) error {
	s := p.state
	if !s.Open {
		return ErrClosed
	}
	if s.Busy {
		return ErrRequestInFlight
	}
	if s.Phase != PhaseValidated {
		return ErrNotValidated
	}
	if !CanSubmit(s) {
		return ErrUnresolvedConflicts
	}

	gen := s.Generation + 1
	p.Dispatch(SubmissionStarted{Gen: gen})

	resp, err := p.api.Store(ctx, s.StoreRequest())
	if err != nil {
		p.Dispatch(SubmissionFailed{Gen: gen, Err: err.Error()})
		return err
	}
	p.Dispatch(SubmissionFinished{Gen: gen, Resp: resp})
	return nil
}

func checkInput(s State) error {
	if len(s.Selection) == 0 {
		return ErrNoSelection
	}
	if s.LeaveTypeID == "" {
		return ErrNoLeaveType
	}
	if strings.TrimSpace(s.Reason) == "" {
		return ErrNoReason
	}
	return nil
}
