package leave

import "context"

// BulkService is the server side of the bulk leave flow: one call per
// endpoint, no state kept between calls.
type BulkService interface {
	LeaveTypes(ctx context.Context) ([]LeaveTypeOption, error)
	CalendarData(ctx context.Context, req CalendarDataRequest) (CalendarData, error)
	ValidateBulk(ctx context.Context, req BulkValidateRequest) ([]ValidationResult, BalanceImpact, error)
	StoreBulk(ctx context.Context, req BulkStoreRequest) (BulkStoreSummary, error)
}
