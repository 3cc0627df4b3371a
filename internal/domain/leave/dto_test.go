package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordia-hr/leave-planner-go/internal/pkg/validator"
)

func TestBulkValidateRequest_Validate(t *testing.T) {
	valid := BulkValidateRequest{
		UserID:      "emp-1",
		Dates:       []string{"2025-03-12", "2025-03-13"},
		LeaveTypeID: "lt-annual",
		Reason:      "annual leave",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *BulkValidateRequest)
		field  string
	}{
		{"missing user", func(r *BulkValidateRequest) { r.UserID = "" }, "user_id"},
		{"no dates", func(r *BulkValidateRequest) { r.Dates = nil }, "dates"},
		{"malformed date", func(r *BulkValidateRequest) { r.Dates = []string{"12/03/2025"} }, "dates"},
		{"missing leave type", func(r *BulkValidateRequest) { r.LeaveTypeID = "" }, "leave_type_id"},
		{"blank reason", func(r *BulkValidateRequest) { r.Reason = "   " }, "reason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.field)
		})
	}
}

func TestBulkStoreRequest_ValidateDelegates(t *testing.T) {
	req := BulkStoreRequest{
		UserID:              "emp-1",
		Dates:               []string{"2025-03-12"},
		LeaveTypeID:         "lt-annual",
		Reason:              "annual leave",
		AllowPartialSuccess: true,
	}
	assert.NoError(t, req.Validate())

	req.Dates = []string{"not-a-date"}
	assert.Error(t, req.Validate())
}

func TestCalendarDataRequest_Validate(t *testing.T) {
	ok := CalendarDataRequest{UserID: "emp-1", Year: 2025}
	assert.NoError(t, ok.Validate())

	bad := CalendarDataRequest{Year: 123}
	err := bad.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "user_id")
	assert.Contains(t, m, "year")
}
