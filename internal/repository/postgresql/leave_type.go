package postgresql

import (
	"context"
	"errors"

	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
	"github.com/cordia-hr/leave-planner-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lt.id, lt.name, lt.code, lt.description, lt.color,
			   lt.is_active, lt.has_quota, lt.allow_backdate, lt.default_quota,
			   lt.created_at, lt.updated_at
		FROM leave_types lt
		WHERE lt.id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID,
		&lt.Name,
		&lt.Code,
		&lt.Description,
		&lt.Color,
		&lt.IsActive,
		&lt.HasQuota,
		&lt.AllowBackdate,
		&lt.DefaultQuota,
		&lt.CreatedAt,
		&lt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	if err != nil {
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lt.id, lt.name, lt.code, lt.description, lt.color,
			   lt.is_active, lt.has_quota, lt.allow_backdate, lt.default_quota,
			   lt.created_at, lt.updated_at
		FROM leave_types lt
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID,
			&lt.Name,
			&lt.Code,
			&lt.Description,
			&lt.Color,
			&lt.IsActive,
			&lt.HasQuota,
			&lt.AllowBackdate,
			&lt.DefaultQuota,
			&lt.CreatedAt,
			&lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}

	return types, rows.Err()
}
