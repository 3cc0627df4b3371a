package response

import (
	"errors"
	"net/http"

	"github.com/cordia-hr/leave-planner-go/internal/domain/auth"
	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
	"github.com/cordia-hr/leave-planner-go/internal/domain/user"
	"github.com/cordia-hr/leave-planner-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		BadRequest(w, "Leave type is inactive", nil)
	case errors.Is(err, leave.ErrQuotaNotFound):
		NotFound(w, "Leave quota not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrUnresolvedConflicts):
		Conflict(w, "Batch contains unresolved conflicts")
	case errors.Is(err, leave.ErrNothingToSubmit):
		BadRequest(w, "No dates to submit", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
