package postgresql

import (
	"context"

	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
	"github.com/cordia-hr/leave-planner-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) leave.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// GetByYear implements leave.HolidayRepository.
func (r *holidayRepositoryImpl) GetByYear(ctx context.Context, year int) ([]leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT h.id, h.name, h.date
		FROM public_holidays h
		WHERE EXTRACT(YEAR FROM h.date) = $1
		ORDER BY h.date
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]leave.Holiday, 0)
	for rows.Next() {
		var h leave.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}
