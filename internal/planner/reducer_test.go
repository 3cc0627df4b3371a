package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordia-hr/leave-planner-go/internal/calendar"
	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
)

func openState() State {
	return Reduce(State{}, Opened{
		UserID: "user-a",
		Year:   2025,
		Month:  time.March,
		Today:  "2025-03-10",
	})
}

func TestReduce_DayClickedTogglesSelection(t *testing.T) {
	s := openState()

	s = Reduce(s, DayClicked{Date: "2025-03-12"})
	require.True(t, s.Selection.Contains("2025-03-12"))

	s = Reduce(s, DayClicked{Date: "2025-03-12"})
	assert.False(t, s.Selection.Contains("2025-03-12"))
	assert.Empty(t, s.Selection)
}

func TestReduce_DayClickedInvalidatesValidation(t *testing.T) {
	s := openState()
	s = Reduce(s, DayClicked{Date: "2025-03-12"})
	s.Phase = PhaseValidated

	s = Reduce(s, DayClicked{Date: "2025-03-13"})
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestReduce_DayClickedIgnoresHoliday(t *testing.T) {
	s := openState()
	s.Holidays = calendar.NewDateSet("2025-03-17")

	s = Reduce(s, DayClicked{Date: "2025-03-17"})
	assert.Empty(t, s.Selection)
}

func TestReduce_DayClickedIgnoresExistingLeave(t *testing.T) {
	s := openState()
	s.ExistingLeaves = []calendar.DateRange{{From: "2025-03-05", To: "2025-03-07"}}

	s = Reduce(s, DayClicked{Date: "2025-03-06"})
	assert.Empty(t, s.Selection)
}

func TestReduce_DayClickedIgnoredWhileBusy(t *testing.T) {
	s := openState()
	s = Reduce(s, CalendarFetchStarted{Gen: 1})

	s = Reduce(s, DayClicked{Date: "2025-03-12"})
	assert.Empty(t, s.Selection)
}

func TestReduce_DayClickedIgnoresOtherMonth(t *testing.T) {
	s := openState()

	// 2025-04-02 is visible in the March grid as an overflow cell.
	s = Reduce(s, DayClicked{Date: "2025-04-02"})
	assert.Empty(t, s.Selection)
}

func TestReduce_DeselectAllowedOnNoLongerSelectableDate(t *testing.T) {
	s := openState()
	s = Reduce(s, DayClicked{Date: "2025-03-17"})
	require.True(t, s.Selection.Contains("2025-03-17"))

	// The date turns into a holiday after a refetch; removing it must
	// still work even though reselecting would not.
	s.Holidays = calendar.NewDateSet("2025-03-17")
	s = Reduce(s, DayClicked{Date: "2025-03-17"})
	assert.False(t, s.Selection.Contains("2025-03-17"))
}

func TestReduce_MonthChangedKeepsSelection(t *testing.T) {
	s := openState()
	s = Reduce(s, DayClicked{Date: "2025-03-12"})

	s = Reduce(s, MonthChanged{Year: 2025, Month: time.April})
	assert.Equal(t, 2025, s.Year)
	assert.Equal(t, time.April, s.Month)
	assert.True(t, s.Selection.Contains("2025-03-12"))
}

func TestReduce_ReasonChangeInvalidatesValidation(t *testing.T) {
	s := openState()
	s.Phase = PhaseValidated

	s = Reduce(s, ReasonChanged{Reason: "family matters"})
	assert.Equal(t, PhaseIdle, s.Phase)

	// Setting the same value again is not a change.
	s.Phase = PhaseValidated
	s = Reduce(s, ReasonChanged{Reason: "family matters"})
	assert.Equal(t, PhaseValidated, s.Phase)
}

func TestReduce_LeaveTypeChangeInvalidatesValidation(t *testing.T) {
	s := openState()
	s.Phase = PhaseValidated

	s = Reduce(s, LeaveTypeChanged{ID: "annual"})
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestReduce_StaleCompletionDiscarded(t *testing.T) {
	s := openState()
	s = Reduce(s, CalendarFetchStarted{Gen: 1})
	s = Reduce(s, CalendarFetchStarted{Gen: 2})

	// The first round trip lands late and must not touch the state.
	s = Reduce(s, CalendarFetched{Gen: 1, Data: leave.CalendarData{
		PublicHolidays: []string{"2025-03-17"},
	}})
	assert.True(t, s.Busy)
	assert.Empty(t, s.Holidays)

	s = Reduce(s, CalendarFetched{Gen: 2, Data: leave.CalendarData{
		PublicHolidays: []string{"2025-12-25"},
	}})
	assert.False(t, s.Busy)
	assert.True(t, s.Holidays.Contains("2025-12-25"))
}

func TestReduce_CompletionAfterCloseDiscarded(t *testing.T) {
	s := openState()
	s = Reduce(s, ValidationStarted{Gen: 1})
	s = Reduce(s, Closed{})

	s = Reduce(s, ValidationSucceeded{Gen: 1, Results: []leave.ValidationResult{
		{Date: "2025-03-12", Status: leave.ValidationStatusValid},
	}})
	assert.False(t, s.Open)
	assert.Empty(t, s.Results)
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestReduce_ReopenSameUserKeepsCache(t *testing.T) {
	s := openState()
	s = Reduce(s, CalendarFetchStarted{Gen: 1})
	s = Reduce(s, CalendarFetched{Gen: 1, Data: leave.CalendarData{
		PublicHolidays: []string{"2025-03-17"},
	}})
	s = Reduce(s, Closed{})

	s = Reduce(s, Opened{UserID: "user-a", Year: 2025, Month: time.May})
	assert.Equal(t, "user-a", s.LoadedUser)
	assert.Equal(t, 2025, s.LoadedYear)
	assert.True(t, s.Holidays.Contains("2025-03-17"))
}

func TestReduce_ReopenOtherUserDropsCache(t *testing.T) {
	s := openState()
	s = Reduce(s, CalendarFetchStarted{Gen: 1})
	s = Reduce(s, CalendarFetched{Gen: 1, Data: leave.CalendarData{
		PublicHolidays: []string{"2025-03-17"},
	}})
	s = Reduce(s, Closed{})

	s = Reduce(s, Opened{UserID: "user-b", Year: 2025, Month: time.March})
	assert.Empty(t, s.LoadedUser)
	assert.Zero(t, s.LoadedYear)
	assert.Empty(t, s.Holidays)
}

func TestReduce_ValidationFailureKeepsPriorResults(t *testing.T) {
	s := openState()
	s = Reduce(s, ValidationStarted{Gen: 1})
	s = Reduce(s, ValidationSucceeded{Gen: 1, Results: []leave.ValidationResult{
		{Date: "2025-03-12", Status: leave.ValidationStatusValid},
	}})
	require.Equal(t, PhaseValidated, s.Phase)

	s = Reduce(s, ValidationStarted{Gen: 2})
	s = Reduce(s, ValidationFailed{Gen: 2, Err: "connection refused"})
	assert.False(t, s.Busy)
	assert.Equal(t, "connection refused", s.LastError)
	assert.Len(t, s.Results, 1)
}

func TestReduce_SubmissionFinishedClosesDialog(t *testing.T) {
	s := openState()
	s = Reduce(s, SubmissionStarted{Gen: 1})
	require.Equal(t, PhaseSubmitting, s.Phase)

	s = Reduce(s, SubmissionFinished{Gen: 1, Resp: leave.BulkStoreResponse{
		Success: true,
		Summary: leave.BulkStoreSummary{Successful: 3},
	}})
	assert.False(t, s.Open)
	require.NotNil(t, s.Outcome)
	assert.Equal(t, 3, s.Outcome.Summary.Successful)
}

func TestReduce_SubmissionFailureStaysValidated(t *testing.T) {
	s := openState()
	s = Reduce(s, SubmissionStarted{Gen: 1})

	s = Reduce(s, SubmissionFailed{Gen: 1, Err: "gateway timeout"})
	assert.True(t, s.Open)
	assert.Equal(t, PhaseValidated, s.Phase)
	assert.Equal(t, "gateway timeout", s.LastError)
}

func TestGrid_ReturnsClassifiedCells(t *testing.T) {
	s := openState()
	s = Reduce(s, DayClicked{Date: "2025-03-12"})
	s.Holidays = calendar.NewDateSet("2025-03-17")

	cells := Grid(s)
	require.Len(t, cells, calendar.GridSize)

	byDate := make(map[string]calendar.DayStatus, len(cells))
	for _, c := range cells {
		byDate[c.Cell.Date] = c.Status
	}
	assert.True(t, byDate["2025-03-12"].Selected)
	assert.True(t, byDate["2025-03-17"].Holiday)
	assert.True(t, byDate["2025-03-10"].Today)
	assert.False(t, byDate["2025-02-25"].CurrentMonth)
}
