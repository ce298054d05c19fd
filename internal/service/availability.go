package service

import (
	"context"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
	"locagora-backend/internal/repository"
)

type availabilityService struct {
	equipmentRepo repository.EquipmentRepository
	unitRepo      repository.UnitRepository
	orderRepo     repository.OrderRepository
	calendarSvc   CalendarService
}

func NewAvailabilityService(
	equipmentRepo repository.EquipmentRepository,
	unitRepo repository.UnitRepository,
	orderRepo repository.OrderRepository,
	calendarSvc CalendarService,
) AvailabilityService {
	return &availabilityService{
		equipmentRepo: equipmentRepo,
		unitRepo:      unitRepo,
		orderRepo:     orderRepo,
		calendarSvc:   calendarSvc,
	}
}

func validateRange(start, end dates.Date) error {
	if start.IsZero() || end.IsZero() {
		return domain.NewValidationError("start and end dates are required")
	}
	if end.Before(start) {
		return domain.NewValidationError("end date %s is before start date %s", end, start)
	}
	return nil
}

// CheckRange counts the units free across the whole inclusive range: total
// units minus units out for maintenance minus the distinct units held by
// overlapping items of orders in a capacity-holding status. Maintenance units
// are excluded here because allocation never assigns them, so the pre-check
// and its shortfall message agree with what the transaction can actually lock.
func (s *availabilityService) CheckRange(ctx context.Context, equipmentID int32, start, end dates.Date) (int32, error) {
	if err := validateRange(start, end); err != nil {
		return 0, err
	}

	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return 0, err
	}

	maintenance, err := s.unitRepo.CountByStatus(ctx, equipmentID, domain.UnitStatusMaintenance)
	if err != nil {
		return 0, err
	}

	items, err := s.orderRepo.ListOverlappingItems(ctx, equipmentID, start, end, 0)
	if err != nil {
		return 0, err
	}

	reserved := make(map[int32]struct{}, len(items))
	for _, it := range items {
		reserved[it.UnitID] = struct{}{}
	}

	free := eq.TotalUnits - maintenance - int32(len(reserved))
	if free < 0 {
		free = 0
	}
	return free, nil
}

// Daily computes per-day remaining capacity. A closed day is a hard zero no
// matter how many units are in stock; open days subtract the items whose
// range covers that day.
func (s *availabilityService) Daily(ctx context.Context, equipmentID int32, start, end dates.Date, excludeOrderID int32) ([]domain.DayAvailability, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	items, err := s.orderRepo.ListOverlappingItems(ctx, equipmentID, start, end, excludeOrderID)
	if err != nil {
		return nil, err
	}

	statuses, err := s.calendarSvc.RangeStatus(ctx, start, end)
	if err != nil {
		return nil, err
	}

	days := make([]domain.DayAvailability, 0, len(statuses))
	for _, status := range statuses {
		if !status.Open {
			days = append(days, domain.DayAvailability{Date: status.Date, Remaining: 0, Open: false})
			continue
		}

		var held int32
		for _, it := range items {
			if dates.Covers(it.StartDate, it.EndDate, status.Date) {
				held++
			}
		}
		remaining := eq.TotalUnits - held
		if remaining < 0 {
			remaining = 0
		}
		days = append(days, domain.DayAvailability{Date: status.Date, Remaining: remaining, Open: true})
	}
	return days, nil
}
