package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Transactor runs fn inside one database transaction. Repository calls made
// with the context fn receives are routed through that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

// LeaveQuotaRepository - interface for leave_quotas table
type LeaveQuotaRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveQuota, error)
	AddPending(ctx context.Context, quotaID string, days decimal.Decimal) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetActiveByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error)
	ExistsOverlapping(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

// HolidayRepository - interface for public_holidays table
type HolidayRepository interface {
	GetByYear(ctx context.Context, year int) ([]Holiday, error)
}
