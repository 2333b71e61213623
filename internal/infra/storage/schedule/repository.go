package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const (
	schedulesTable      = "store_schedules"
	nonWorkingDaysTable = "store_non_working_days"
)

// Repository репозиторий расписаний магазинов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStoreID получает расписание магазина вместе с нерабочими днями.
// Незаполненные колонки возвращаются как nil
func (r *Repository) GetByStoreID(ctx context.Context, storeID string) (*domain.StoreSchedule, error) {
	query, args, err := psqlbuilder.Select(
		"store_id",
		"calendar_id",
		"open_time",
		"close_time",
		"lunch_start",
		"lunch_end",
		"slot_interval_minutes",
	).
		From(schedulesTable).
		Where(squirrel.Eq{"store_id": storeID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		schedule   domain.StoreSchedule
		calendarID sql.NullString
		interval   sql.NullInt64

		openTime, closeTime, lunchStart, lunchEnd types.TimeString
	)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&schedule.StoreID,
		&calendarID,
		&openTime,
		&closeTime,
		&lunchStart,
		&lunchEnd,
		&interval,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreID - scan schedule: %v", ErrScanRow, err)
	}

	schedule.CalendarID = calendarID.String
	schedule.OpenTime = nullableTime(openTime)
	schedule.CloseTime = nullableTime(closeTime)
	schedule.LunchStart = nullableTime(lunchStart)
	schedule.LunchEnd = nullableTime(lunchEnd)
	if interval.Valid {
		minutes := int(interval.Int64)
		schedule.SlotIntervalMinutes = &minutes
	}

	days, err := r.getNonWorkingDays(ctx, storeID)
	if err != nil {
		return nil, err
	}
	schedule.NonWorkingDays = days

	return &schedule, nil
}

// getNonWorkingDays получает нерабочие дни магазина в формате YYYY-MM-DD
func (r *Repository) getNonWorkingDays(ctx context.Context, storeID string) ([]string, error) {
	query, args, err := psqlbuilder.Select("day").
		From(nonWorkingDaysTable).
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("day").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getNonWorkingDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getNonWorkingDays - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]string, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: getNonWorkingDays - scan day: %v", ErrScanRow, err)
		}
		days = append(days, day.Format(domain.DateFormat))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getNonWorkingDays - rows iteration: %v", ErrExecQuery, err)
	}

	return days, nil
}

func nullableTime(t types.TimeString) *types.TimeString {
	if t == "" {
		return nil
	}
	return &t
}
