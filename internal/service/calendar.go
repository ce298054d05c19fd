package service

import (
	"context"
	"time"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
	"locagora-backend/internal/repository"
)

// ResolveDay combines the weekly default schedule with the sparse per-date
// exception overlay. An exception for the exact date wins outright; otherwise
// the weekday's default applies, and a missing weekly row means closed.
func ResolveDay(date dates.Date, weekly map[time.Weekday]domain.WeeklyScheduleEntry, exceptions map[dates.Date]domain.CalendarException) domain.DayStatus {
	if exc, ok := exceptions[date]; ok {
		return domain.DayStatus{
			Date:        date,
			Open:        exc.Open,
			Source:      domain.DaySourceException,
			Description: exc.Description,
		}
	}

	status := domain.DayStatus{Date: date, Source: domain.DaySourceDefault}
	if entry, ok := weekly[date.Weekday()]; ok {
		status.Open = !entry.Closed
	}
	return status
}

type calendarService struct {
	calendarRepo repository.CalendarRepository
}

func NewCalendarService(calendarRepo repository.CalendarRepository) CalendarService {
	return &calendarService{calendarRepo: calendarRepo}
}

func (s *calendarService) weeklyByWeekday(ctx context.Context) (map[time.Weekday]domain.WeeklyScheduleEntry, error) {
	entries, err := s.calendarRepo.GetWeeklySchedule(ctx)
	if err != nil {
		return nil, err
	}
	weekly := make(map[time.Weekday]domain.WeeklyScheduleEntry, len(entries))
	for _, e := range entries {
		weekly[e.Weekday] = e
	}
	return weekly, nil
}

func (s *calendarService) IsOpen(ctx context.Context, date dates.Date) (*domain.DayStatus, error) {
	weekly, err := s.weeklyByWeekday(ctx)
	if err != nil {
		return nil, err
	}

	exceptions := map[dates.Date]domain.CalendarException{}
	exc, err := s.calendarRepo.GetException(ctx, date)
	if err != nil {
		return nil, err
	}
	if exc != nil {
		exceptions[date] = *exc
	}

	status := ResolveDay(date, weekly, exceptions)
	return &status, nil
}

// RangeStatus resolves every day of the inclusive range in a single pass:
// one weekly schedule fetch, one exception range fetch, then O(1) map
// lookups per day.
func (s *calendarService) RangeStatus(ctx context.Context, start, end dates.Date) ([]domain.DayStatus, error) {
	if end.Before(start) {
		return nil, domain.NewValidationError("end date %s is before start date %s", end, start)
	}

	weekly, err := s.weeklyByWeekday(ctx)
	if err != nil {
		return nil, err
	}

	excList, err := s.calendarRepo.ListExceptionsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	exceptions := make(map[dates.Date]domain.CalendarException, len(excList))
	for _, exc := range excList {
		exceptions[exc.Date] = exc
	}

	statuses := make([]domain.DayStatus, 0, start.DaysUntilInclusive(end))
	for day := start; !day.After(end); day = day.Next() {
		statuses = append(statuses, ResolveDay(day, weekly, exceptions))
	}
	return statuses, nil
}

// MonthStatus is the month view shown to customers. Customers may only view
// published months; admins see any month.
func (s *calendarService) MonthStatus(ctx context.Context, principal domain.Principal, year, month int) ([]domain.DayStatus, error) {
	if month < 1 || month > 12 {
		return nil, domain.NewValidationError("month %d out of range", month)
	}

	if !principal.IsAdmin() {
		published, err := s.calendarRepo.IsMonthPublished(ctx, year, month)
		if err != nil {
			return nil, err
		}
		if !published {
			return nil, domain.NewValidationError("month %04d-%02d is not open for booking yet", year, month)
		}
	}

	first, last := dates.MonthRange(year, month)
	return s.RangeStatus(ctx, first, last)
}

func (s *calendarService) IsMonthPublished(ctx context.Context, year, month int) (bool, error) {
	return s.calendarRepo.IsMonthPublished(ctx, year, month)
}

func (s *calendarService) ListPublishedMonths(ctx context.Context) ([]domain.PublishedMonth, error) {
	return s.calendarRepo.ListPublishedMonths(ctx)
}

func (s *calendarService) PublishMonth(ctx context.Context, principal domain.Principal, year, month int) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	if month < 1 || month > 12 {
		return domain.NewValidationError("month %d out of range", month)
	}
	return s.calendarRepo.PublishMonth(ctx, year, month)
}

func (s *calendarService) SetException(ctx context.Context, principal domain.Principal, exc *domain.CalendarException) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	if exc.Date.IsZero() {
		return domain.NewValidationError("exception date is required")
	}
	switch exc.Kind {
	case domain.ExceptionKindHoliday, domain.ExceptionKindStoppage, domain.ExceptionKindExtra, domain.ExceptionKindOther:
	default:
		return domain.NewValidationError("unknown exception kind %q", exc.Kind)
	}
	return s.calendarRepo.UpsertException(ctx, exc)
}

func (s *calendarService) RemoveException(ctx context.Context, principal domain.Principal, date dates.Date) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.calendarRepo.DeleteException(ctx, date)
}

func (s *calendarService) SetWeeklyEntry(ctx context.Context, principal domain.Principal, entry *domain.WeeklyScheduleEntry) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	if entry.Weekday < time.Sunday || entry.Weekday > time.Saturday {
		return domain.NewValidationError("invalid weekday %d", entry.Weekday)
	}
	return s.calendarRepo.UpsertWeeklyEntry(ctx, entry)
}
