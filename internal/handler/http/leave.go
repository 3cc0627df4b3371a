package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
	"github.com/cordia-hr/leave-planner-go/internal/domain/user"
	"github.com/cordia-hr/leave-planner-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveHandler interface {
	LeaveTypes(w http.ResponseWriter, r *http.Request)
	CalendarData(w http.ResponseWriter, r *http.Request)
	ValidateBulk(w http.ResponseWriter, r *http.Request)
	StoreBulk(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	bulkService leave.BulkService
}

func NewLeaveHandler(bulkService leave.BulkService) LeaveHandler {
	return &LeaveHandlerImpl{bulkService: bulkService}
}

// resolveUserID returns the effective user for the call: admins may act on
// any user_id in the request, everyone else is pinned to their own token.
func resolveUserID(r *http.Request, requested string) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing")
	}

	role, _ := claims["role"].(string)
	if requested != "" && requested != userID && role == string(user.RoleAdmin) {
		return requested, nil
	}
	return userID, nil
}

// LeaveTypes implements LeaveHandler. It backs the leave-type dropdown of
// the planner dialog.
func (l *LeaveHandlerImpl) LeaveTypes(w http.ResponseWriter, r *http.Request) {
	options, err := l.bulkService.LeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, options)
}

// CalendarData implements LeaveHandler.
func (l *LeaveHandlerImpl) CalendarData(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveUserID(r, r.URL.Query().Get("user_id"))
	if err != nil {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = y
	}

	req := leave.CalendarDataRequest{UserID: userID, Year: year}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := l.bulkService.CalendarData(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}

// ValidateBulk implements LeaveHandler.
func (l *LeaveHandlerImpl) ValidateBulk(w http.ResponseWriter, r *http.Request) {
	var req leave.BulkValidateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ValidateBulk decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, impact, err := l.bulkService.ValidateBulk(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, leave.BulkValidateResponse{
		Success:                true,
		ValidationResults:      results,
		EstimatedBalanceImpact: impact,
	})
}

// StoreBulk implements LeaveHandler.
func (l *LeaveHandlerImpl) StoreBulk(w http.ResponseWriter, r *http.Request) {
	var req leave.BulkStoreRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("StoreBulk decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := l.bulkService.StoreBulk(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, leave.BulkStoreResponse{
		Success: summary.Successful > 0,
		Message: storeMessage(summary),
		Summary: summary,
	})
}

func storeMessage(summary leave.BulkStoreSummary) string {
	switch {
	case summary.Failed == 0:
		return fmt.Sprintf("All %d leave requests submitted successfully", summary.Successful)
	case summary.Successful == 0:
		return fmt.Sprintf("All %d leave dates failed", summary.Failed)
	default:
		return fmt.Sprintf("%d leave requests submitted, %d failed", summary.Successful, summary.Failed)
	}
}
