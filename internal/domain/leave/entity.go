package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	Name        string
	Code        *string
	Description *string
	Color       *string

	IsActive      bool
	HasQuota      bool
	AllowBackdate bool
	DefaultQuota  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveQuota entity. Day amounts are decimals so half-day bookkeeping from
// other flows never loses precision here.
type LeaveQuota struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	TotalQuota   decimal.Decimal
	UsedQuota    decimal.Decimal
	PendingQuota decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available returns the quota still open for new requests.
func (q LeaveQuota) Available() decimal.Decimal {
	return q.TotalQuota.Sub(q.UsedQuota).Sub(q.PendingQuota)
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusWaitingApproval LeaveRequestStatus = "waiting_approval"
	LeaveRequestStatusApproved        LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected        LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled       LeaveRequestStatus = "cancelled"
)

// LeaveRequest entity. Bulk submissions create one single-day row per
// requested date (StartDate == EndDate), tied together by BatchID; ranged
// rows come from the regular request flow.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time

	Reason  string
	Status  LeaveRequestStatus
	BatchID *string

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for responses
	LeaveTypeName *string
}

// Holiday entity
type Holiday struct {
	ID   string
	Name string
	Date time.Time
}
