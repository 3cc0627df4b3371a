package leave

import "github.com/cordia-hr/leave-planner-go/internal/pkg/validator"

// ValidationStatus is the per-date verdict of a bulk validation run.
type ValidationStatus string

const (
	ValidationStatusValid    ValidationStatus = "valid"
	ValidationStatusWarning  ValidationStatus = "warning"
	ValidationStatusConflict ValidationStatus = "conflict"
)

// LeaveTypeOption is one entry of the leave-type dropdown: the active types
// an employee may request against.
type LeaveTypeOption struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Code          *string `json:"code,omitempty"`
	Color         *string `json:"color,omitempty"`
	HasQuota      bool    `json:"has_quota"`
	AllowBackdate bool    `json:"allow_backdate"`
}

// ExternalLeaveRange is an inclusive booked range as exposed to the calendar.
type ExternalLeaveRange struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

// CalendarData is the payload of the calendar-data endpoint: everything the
// calendar needs to paint one year for one user.
type CalendarData struct {
	ExistingLeaves []ExternalLeaveRange `json:"existingLeaves"`
	PublicHolidays []string             `json:"publicHolidays"`
}

type CalendarDataRequest struct {
	UserID string
	Year   int
}

func (r *CalendarDataRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.Year < 1970 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkValidateRequest asks for a per-date verdict and a balance projection
// for the current selection, before anything is persisted.
type BulkValidateRequest struct {
	UserID      string   `json:"user_id"`
	Dates       []string `json:"dates"`
	LeaveTypeID string   `json:"leave_type_id"`
	Reason      string   `json:"reason"`
}

func (r *BulkValidateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if len(r.Dates) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "dates",
			Message: "at least one date is required",
		})
	}
	for _, d := range r.Dates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dates",
				Message: "dates must use the YYYY-MM-DD format",
			})
			break
		}
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidationResult is the verdict for one requested date. The whole list is
// replaced on every validation run; entries are never mutated individually.
type ValidationResult struct {
	Date     string           `json:"date"`
	Status   ValidationStatus `json:"status"`
	Errors   []string         `json:"errors"`
	Warnings []string         `json:"warnings"`
}

// BalanceImpact projects the effect of the requested days on the employee's
// remaining entitlement. A negative remaining balance is a display fact, not
// an error, until submission time.
type BalanceImpact struct {
	LeaveType        string  `json:"leave_type"`
	CurrentBalance   float64 `json:"current_balance"`
	RequestedDays    float64 `json:"requested_days"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// BulkValidateResponse is the top-level wire shape of the validate endpoint.
type BulkValidateResponse struct {
	Success                bool               `json:"success"`
	ValidationResults      []ValidationResult `json:"validation_results"`
	EstimatedBalanceImpact BalanceImpact      `json:"estimated_balance_impact"`
}

// BulkStoreRequest submits the batch. With allow_partial_success set, dates
// that fail server-side are skipped instead of failing the whole batch.
type BulkStoreRequest struct {
	UserID              string   `json:"user_id"`
	Dates               []string `json:"dates"`
	LeaveTypeID         string   `json:"leave_type_id"`
	Reason              string   `json:"reason"`
	AllowPartialSuccess bool     `json:"allow_partial_success"`
}

func (r *BulkStoreRequest) Validate() error {
	v := BulkValidateRequest{
		UserID:      r.UserID,
		Dates:       r.Dates,
		LeaveTypeID: r.LeaveTypeID,
		Reason:      r.Reason,
	}
	return v.Validate()
}

// BulkStoreSummary is the immutable result snapshot of one submission.
type BulkStoreSummary struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BulkStoreResponse is the top-level wire shape of the store endpoint.
type BulkStoreResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Summary BulkStoreSummary `json:"summary"`
}
