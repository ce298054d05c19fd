package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
	"locagora-backend/internal/repository"
)

type calendarRepository struct {
	db *sql.DB
}

func NewCalendarRepository(db *sql.DB) repository.CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) GetWeeklySchedule(ctx context.Context) ([]domain.WeeklyScheduleEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT weekday, opens_at, closes_at, closed FROM weekly_schedule ORDER BY weekday`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WeeklyScheduleEntry
	for rows.Next() {
		var e domain.WeeklyScheduleEntry
		var weekday int
		if err := rows.Scan(&weekday, &e.OpensAt, &e.ClosesAt, &e.Closed); err != nil {
			return nil, err
		}
		e.Weekday = time.Weekday(weekday)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *calendarRepository) UpsertWeeklyEntry(ctx context.Context, entry *domain.WeeklyScheduleEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weekly_schedule (weekday, opens_at, closes_at, closed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (weekday) DO UPDATE SET opens_at = $2, closes_at = $3, closed = $4`,
		int(entry.Weekday), entry.OpensAt, entry.ClosesAt, entry.Closed)
	return err
}

func (r *calendarRepository) GetException(ctx context.Context, date dates.Date) (*domain.CalendarException, error) {
	exc := &domain.CalendarException{}
	var day time.Time
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, day, kind, open, description FROM calendar_exceptions WHERE day = $1`,
		date.String()).Scan(&exc.ID, &day, &exc.Kind, &exc.Open, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	exc.Date = dates.FromTime(day)
	exc.Description = desc.String
	return exc, nil
}

func (r *calendarRepository) ListExceptionsInRange(ctx context.Context, start, end dates.Date) ([]domain.CalendarException, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, day, kind, open, description FROM calendar_exceptions
		WHERE day BETWEEN $1 AND $2 ORDER BY day`,
		start.String(), end.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var excs []domain.CalendarException
	for rows.Next() {
		var exc domain.CalendarException
		var day time.Time
		var desc sql.NullString
		if err := rows.Scan(&exc.ID, &day, &exc.Kind, &exc.Open, &desc); err != nil {
			return nil, err
		}
		exc.Date = dates.FromTime(day)
		exc.Description = desc.String
		excs = append(excs, exc)
	}
	return excs, rows.Err()
}

// UpsertException keeps at most one exception per calendar date.
func (r *calendarRepository) UpsertException(ctx context.Context, exc *domain.CalendarException) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO calendar_exceptions (day, kind, open, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day) DO UPDATE SET kind = $2, open = $3, description = $4
		RETURNING id`,
		exc.Date.String(), exc.Kind, exc.Open, exc.Description).Scan(&exc.ID)
}

func (r *calendarRepository) DeleteException(ctx context.Context, date dates.Date) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM calendar_exceptions WHERE day = $1`, date.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "calendar exception", ID: 0}
	}
	return nil
}

func (r *calendarRepository) PublishMonth(ctx context.Context, year, month int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO published_months (year, month) VALUES ($1, $2)
		ON CONFLICT (year, month) DO NOTHING`, year, month)
	return err
}

func (r *calendarRepository) IsMonthPublished(ctx context.Context, year, month int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM published_months WHERE year = $1 AND month = $2)`,
		year, month).Scan(&exists)
	return exists, err
}

func (r *calendarRepository) ListPublishedMonths(ctx context.Context) ([]domain.PublishedMonth, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, year, month FROM published_months ORDER BY year, month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []domain.PublishedMonth
	for rows.Next() {
		var pm domain.PublishedMonth
		if err := rows.Scan(&pm.ID, &pm.Year, &pm.Month); err != nil {
			return nil, err
		}
		months = append(months, pm)
	}
	return months, rows.Err()
}
