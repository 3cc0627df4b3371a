package postgresql

import (
	"context"
	"time"

	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
	"github.com/cordia-hr/leave-planner-go/internal/pkg/database"
	"github.com/google/uuid"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id,
			start_date, end_date, reason, status, batch_id,
			submitted_at, created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8,
			NOW(), NOW(), NOW()
		)
		RETURNING submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.LeaveTypeID,
		request.StartDate,
		request.EndDate,
		request.Reason,
		request.Status,
		request.BatchID,
	).Scan(&request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// GetActiveByEmployeeYear implements leave.LeaveRequestRepository. Only
// pending and approved rows block the calendar; rejected and cancelled ones
// free their dates again.
func (r *leaveRequestRepositoryImpl) GetActiveByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.reason, lr.status, lr.batch_id,
			   lr.approved_by, lr.approved_at, lr.rejection_reason,
			   lr.submitted_at, lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1
		  AND lr.status IN ('waiting_approval', 'approved')
		  AND lr.end_date >= make_date($2, 1, 1)
		  AND lr.start_date <= make_date($2, 12, 31)
		ORDER BY lr.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := rows.Scan(
			&lr.ID,
			&lr.EmployeeID,
			&lr.LeaveTypeID,
			&lr.StartDate,
			&lr.EndDate,
			&lr.Reason,
			&lr.Status,
			&lr.BatchID,
			&lr.ApprovedBy,
			&lr.ApprovedAt,
			&lr.RejectionReason,
			&lr.SubmittedAt,
			&lr.CreatedAt,
			&lr.UpdatedAt,
			&lr.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

// ExistsOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ExistsOverlapping(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests lr
			WHERE lr.employee_id = $1
			  AND lr.status IN ('waiting_approval', 'approved')
			  AND $2::date BETWEEN lr.start_date AND lr.end_date
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
