package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, name, created_at
		FROM company_holidays
		WHERE holiday_date BETWEEN $1 AND $2
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	holidays := []holiday.Holiday{}
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_holidays (holiday_date, name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := q.QueryRow(ctx, query, h.Date, h.Name).Scan(&h.ID, &h.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
		return holiday.Holiday{}, fmt.Errorf("insert holiday: %w", err)
	}
	return h, nil
}

func (r *holidayRepositoryImpl) Upsert(ctx context.Context, h holiday.Holiday) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_holidays (holiday_date, name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (holiday_date) DO UPDATE SET name = EXCLUDED.name
	`

	if _, err := q.Exec(ctx, query, h.Date, h.Name); err != nil {
		return fmt.Errorf("upsert holiday %s: %w", h.Date.Format("2006-01-02"), err)
	}
	return nil
}

func (r *holidayRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM company_holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete holiday %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

func (r *holidayRepositoryImpl) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM company_holidays WHERE holiday_date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check holiday date: %w", err)
	}
	return exists, nil
}
