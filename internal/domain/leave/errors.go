package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("Leave type not found")
	ErrLeaveTypeInactive    = errors.New("Leave type is inactive")
	ErrQuotaNotFound        = errors.New("Leave quota not found")
	ErrUnresolvedConflicts  = errors.New("Batch contains unresolved conflicts")
	ErrNothingToSubmit      = errors.New("No dates to submit")
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
)
