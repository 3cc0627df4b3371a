package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
	"github.com/cordia-hr/leave-planner-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveQuotaRepositoryImpl struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.LeaveQuotaRepository {
	return &leaveQuotaRepositoryImpl{db: db}
}

// GetByEmployeeTypeYear implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lq.id, lq.employee_id, lq.leave_type_id, lq.year,
			   lq.total_quota, lq.used_quota, lq.pending_quota,
			   lq.created_at, lq.updated_at
		FROM leave_quotas lq
		WHERE lq.employee_id = $1 AND lq.leave_type_id = $2 AND lq.year = $3
	`

	var quota leave.LeaveQuota
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&quota.ID,
		&quota.EmployeeID,
		&quota.LeaveTypeID,
		&quota.Year,
		&quota.TotalQuota,
		&quota.UsedQuota,
		&quota.PendingQuota,
		&quota.CreatedAt,
		&quota.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveQuota{}, leave.ErrQuotaNotFound
	}
	if err != nil {
		return leave.LeaveQuota{}, err
	}
	return quota, nil
}

// AddPending implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) AddPending(ctx context.Context, quotaID string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_quotas
		SET pending_quota = pending_quota + $2,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, quotaID, days)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return fmt.Errorf("leave quota with id %s not found", quotaID)
	}
	return nil
}
