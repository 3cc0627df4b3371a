package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
	"github.com/cordia-hr/leave-planner-go/internal/domain/user"
)

// In-memory repositories covering the read and verdict paths. The
// transactional insert path needs a live pool and is left to integration
// runs.

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmployeeCode(_ context.Context, code string) (user.User, error) {
	for _, u := range f.users {
		if u.EmployeeCode == code {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeLeaveTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) List(_ context.Context) ([]leave.LeaveType, error) {
	out := make([]leave.LeaveType, 0, len(f.types))
	for _, lt := range f.types {
		out = append(out, lt)
	}
	return out, nil
}

type fakeQuotaRepo struct {
	quota leave.LeaveQuota
	err   error
}

func (f *fakeQuotaRepo) GetByEmployeeTypeYear(_ context.Context, _, _ string, _ int) (leave.LeaveQuota, error) {
	if f.err != nil {
		return leave.LeaveQuota{}, f.err
	}
	return f.quota, nil
}

func (f *fakeQuotaRepo) AddPending(_ context.Context, _ string, days decimal.Decimal) error {
	f.quota.PendingQuota = f.quota.PendingQuota.Add(days)
	return nil
}

type fakeRequestRepo struct {
	requests []leave.LeaveRequest
}

func (f *fakeRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.requests = append(f.requests, request)
	return request, nil
}

func (f *fakeRequestRepo) GetActiveByEmployeeYear(_ context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	out := make([]leave.LeaveRequest, 0)
	for _, lr := range f.requests {
		if lr.EmployeeID != employeeID {
			continue
		}
		if lr.Status != leave.LeaveRequestStatusWaitingApproval && lr.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if lr.StartDate.Year() > year || lr.EndDate.Year() < year {
			continue
		}
		out = append(out, lr)
	}
	return out, nil
}

func (f *fakeRequestRepo) ExistsOverlapping(_ context.Context, employeeID string, date time.Time) (bool, error) {
	for _, lr := range f.requests {
		if lr.EmployeeID != employeeID {
			continue
		}
		if lr.Status != leave.LeaveRequestStatusWaitingApproval && lr.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if !date.Before(lr.StartDate) && !date.After(lr.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

// fakeTx runs fn directly; the fakes have no transactional state.
type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeHolidayRepo struct {
	holidays []leave.Holiday
}

func (f *fakeHolidayRepo) GetByYear(_ context.Context, year int) ([]leave.Holiday, error) {
	out := make([]leave.Holiday, 0)
	for _, h := range f.holidays {
		if h.Date.Year() == year {
			out = append(out, h)
		}
	}
	return out, nil
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	users    *fakeUserRepo
	types    *fakeLeaveTypeRepo
	quotas   *fakeQuotaRepo
	requests *fakeRequestRepo
	holidays *fakeHolidayRepo
	svc      leave.BulkService
}

func newFixture() *fixture {
	f := &fixture{
		users: &fakeUserRepo{users: map[string]user.User{
			"emp-1": {ID: "emp-1", EmployeeCode: "1000-0001", Role: user.RoleEmployee},
		}},
		types: &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
			"lt-annual": {
				ID: "lt-annual", Name: "Annual Leave",
				IsActive: true, HasQuota: true, AllowBackdate: true,
			},
			"lt-retired": {ID: "lt-retired", Name: "Retired Type"},
		}},
		quotas: &fakeQuotaRepo{quota: leave.LeaveQuota{
			ID:         "q-1",
			TotalQuota: decimal.NewFromInt(12),
		}},
		requests: &fakeRequestRepo{requests: []leave.LeaveRequest{
			{
				EmployeeID: "emp-1", LeaveTypeID: "lt-annual",
				StartDate: day("2030-03-05"), EndDate: day("2030-03-07"),
				Status: leave.LeaveRequestStatusApproved,
			},
			{
				EmployeeID: "emp-1", LeaveTypeID: "lt-annual",
				StartDate: day("2030-06-02"), EndDate: day("2030-06-02"),
				Status: leave.LeaveRequestStatusRejected,
			},
		}},
		holidays: &fakeHolidayRepo{holidays: []leave.Holiday{
			{ID: "h-1", Name: "Independence Day", Date: day("2030-08-17")},
			{ID: "h-2", Name: "Christmas Day", Date: day("2030-12-25")},
		}},
	}
	f.svc = NewBulkService(fakeTx{}, f.types, f.quotas, f.requests, f.holidays, f.users)
	return f
}

func TestBulkService_CalendarData(t *testing.T) {
	f := newFixture()

	data, err := f.svc.CalendarData(context.Background(), leave.CalendarDataRequest{
		UserID: "emp-1",
		Year:   2030,
	})
	require.NoError(t, err)

	// Rejected requests never reach the calendar.
	require.Len(t, data.ExistingLeaves, 1)
	assert.Equal(t, "2030-03-05", data.ExistingLeaves[0].FromDate)
	assert.Equal(t, "2030-03-07", data.ExistingLeaves[0].ToDate)
	assert.Equal(t, []string{"2030-08-17", "2030-12-25"}, data.PublicHolidays)
}

func TestBulkService_CalendarData_UnknownUser(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CalendarData(context.Background(), leave.CalendarDataRequest{
		UserID: "nobody",
		Year:   2030,
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestBulkService_ValidateBulk(t *testing.T) {
	f := newFixture()

	results, impact, err := f.svc.ValidateBulk(context.Background(), leave.BulkValidateRequest{
		UserID:      "emp-1",
		LeaveTypeID: "lt-annual",
		Reason:      "year-end break",
		Dates: []string{
			"2030-03-06", // inside the approved range
			"2030-08-17", // public holiday
			"2030-12-23", // Monday, bookable
			"2030-12-28", // Saturday
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, leave.ValidationStatusConflict, results[0].Status)
	assert.Equal(t, leave.ValidationStatusConflict, results[1].Status)
	assert.Equal(t, leave.ValidationStatusValid, results[2].Status)
	assert.Equal(t, leave.ValidationStatusWarning, results[3].Status)

	assert.Equal(t, "Annual Leave", impact.LeaveType)
	assert.InDelta(t, 12, impact.CurrentBalance, 0.001)
	assert.InDelta(t, 4, impact.RequestedDays, 0.001)
	assert.InDelta(t, 8, impact.RemainingBalance, 0.001)
}

func TestBulkService_ValidateBulk_InactiveType(t *testing.T) {
	f := newFixture()

	_, _, err := f.svc.ValidateBulk(context.Background(), leave.BulkValidateRequest{
		UserID:      "emp-1",
		LeaveTypeID: "lt-retired",
		Reason:      "whatever",
		Dates:       []string{"2030-12-23"},
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeInactive)
}

func TestBulkService_ValidateBulk_UnknownType(t *testing.T) {
	f := newFixture()

	_, _, err := f.svc.ValidateBulk(context.Background(), leave.BulkValidateRequest{
		UserID:      "emp-1",
		LeaveTypeID: "lt-ghost",
		Reason:      "whatever",
		Dates:       []string{"2030-12-23"},
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestBulkService_StoreBulk_RejectsConflictsWithoutOverride(t *testing.T) {
	f := newFixture()

	summary, err := f.svc.StoreBulk(context.Background(), leave.BulkStoreRequest{
		UserID:      "emp-1",
		LeaveTypeID: "lt-annual",
		Reason:      "year-end break",
		Dates:       []string{"2030-03-06", "2030-12-23"},
	})
	assert.ErrorIs(t, err, leave.ErrUnresolvedConflicts)
	assert.Equal(t, leave.BulkStoreSummary{Successful: 0, Failed: 2}, summary)
	assert.Len(t, f.requests.requests, 2, "nothing may be persisted on rejection")
}

func TestBulkService_LeaveTypes(t *testing.T) {
	f := newFixture()

	options, err := f.svc.LeaveTypes(context.Background())
	require.NoError(t, err)

	// The inactive type is filtered out of the dropdown.
	require.Len(t, options, 1)
	assert.Equal(t, "lt-annual", options[0].ID)
	assert.Equal(t, "Annual Leave", options[0].Name)
	assert.True(t, options[0].HasQuota)
	assert.True(t, options[0].AllowBackdate)
}

func TestBulkService_StoreBulk_AllValid(t *testing.T) {
	f := newFixture()

	summary, err := f.svc.StoreBulk(context.Background(), leave.BulkStoreRequest{
		UserID:      "emp-1",
		LeaveTypeID: "lt-annual",
		Reason:      "year-end break",
		Dates:       []string{"2030-12-23", "2030-12-24"},
	})
	require.NoError(t, err)
	assert.Equal(t, leave.BulkStoreSummary{Successful: 2, Failed: 0}, summary)

	created := f.requests.requests[2:]
	require.Len(t, created, 2)
	for _, lr := range created {
		assert.Equal(t, "emp-1", lr.EmployeeID)
		assert.Equal(t, "lt-annual", lr.LeaveTypeID)
		assert.Equal(t, leave.LeaveRequestStatusWaitingApproval, lr.Status)
		assert.Equal(t, lr.StartDate, lr.EndDate, "bulk rows are single-day")
		require.NotNil(t, lr.BatchID)
	}
	assert.Equal(t, *created[0].BatchID, *created[1].BatchID, "one batch id per submission")

	assert.True(t, f.quotas.quota.PendingQuota.Equal(decimal.NewFromInt(2)), "pending quota reserves one day per row")
}

func TestBulkService_StoreBulk_PartialSuccess(t *testing.T) {
	f := newFixture()

	summary, err := f.svc.StoreBulk(context.Background(), leave.BulkStoreRequest{
		UserID:              "emp-1",
		LeaveTypeID:         "lt-annual",
		Reason:              "year-end break",
		AllowPartialSuccess: true,
		Dates: []string{
			"2030-03-06", // inside the approved range
			"2030-12-23",
			"2030-12-24",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, leave.BulkStoreSummary{Successful: 2, Failed: 1}, summary)

	created := f.requests.requests[2:]
	require.Len(t, created, 2, "only conflict-free dates are persisted")
	assert.Equal(t, "2030-12-23", created[0].StartDate.Format("2006-01-02"))
	assert.Equal(t, "2030-12-24", created[1].StartDate.Format("2006-01-02"))

	assert.True(t, f.quotas.quota.PendingQuota.Equal(decimal.NewFromInt(2)), "failed dates reserve no quota")
}

// injectingTx plants a competing row right before the transaction body runs,
// simulating a request that landed between the verdict read and the store.
type injectingTx struct {
	before func()
}

func (t injectingTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.before != nil {
		t.before()
	}
	return fn(ctx)
}

func TestBulkService_StoreBulk_RaceReCheckSkipsLateOverlap(t *testing.T) {
	f := newFixture()
	tx := injectingTx{before: func() {
		f.requests.requests = append(f.requests.requests, leave.LeaveRequest{
			EmployeeID: "emp-1", LeaveTypeID: "lt-annual",
			StartDate: day("2030-12-23"), EndDate: day("2030-12-23"),
			Status: leave.LeaveRequestStatusApproved,
		})
	}}
	svc := NewBulkService(tx, f.types, f.quotas, f.requests, f.holidays, f.users)

	summary, err := svc.StoreBulk(context.Background(), leave.BulkStoreRequest{
		UserID:              "emp-1",
		LeaveTypeID:         "lt-annual",
		Reason:              "year-end break",
		AllowPartialSuccess: true,
		Dates:               []string{"2030-12-23", "2030-12-24"},
	})
	require.NoError(t, err)
	assert.Equal(t, leave.BulkStoreSummary{Successful: 1, Failed: 1}, summary)

	created := f.requests.requests[3:]
	require.Len(t, created, 1)
	assert.Equal(t, "2030-12-24", created[0].StartDate.Format("2006-01-02"))
}

func TestBulkService_StoreBulk_RaceReCheckAbortsStrictBatch(t *testing.T) {
	f := newFixture()
	tx := injectingTx{before: func() {
		f.requests.requests = append(f.requests.requests, leave.LeaveRequest{
			EmployeeID: "emp-1", LeaveTypeID: "lt-annual",
			StartDate: day("2030-12-23"), EndDate: day("2030-12-23"),
			Status: leave.LeaveRequestStatusApproved,
		})
	}}
	svc := NewBulkService(tx, f.types, f.quotas, f.requests, f.holidays, f.users)

	_, err := svc.StoreBulk(context.Background(), leave.BulkStoreRequest{
		UserID:      "emp-1",
		LeaveTypeID: "lt-annual",
		Reason:      "year-end break",
		Dates:       []string{"2030-12-23", "2030-12-24"},
	})
	assert.ErrorIs(t, err, leave.ErrUnresolvedConflicts)
	assert.Len(t, f.requests.requests, 3, "nothing beyond the competing row is persisted")
}

func TestBulkService_StoreBulk_EmptyBatch(t *testing.T) {
	f := newFixture()

	_, err := f.svc.StoreBulk(context.Background(), leave.BulkStoreRequest{
		UserID:      "emp-1",
		LeaveTypeID: "lt-annual",
		Reason:      "year-end break",
		Dates:       nil,
	})
	assert.ErrorIs(t, err, leave.ErrNothingToSubmit)
}
