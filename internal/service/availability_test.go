package service

import (
	"context"
	"math/rand"
	"testing"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityService_CheckRange(t *testing.T) {
	ctx := context.Background()
	start := dates.Date{Year: 2025, Month: 6, Day: 10}
	end := dates.Date{Year: 2025, Month: 6, Day: 12}

	drill := &domain.Equipment{ID: 1, Name: "Rotary Drill", TotalUnits: 2, DailyPriceCents: 1500}

	t.Run("All Units Free", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		unitRepo := new(MockUnitRepo)
		orderRepo := new(MockOrderRepo)
		svc := NewAvailabilityService(equipmentRepo, unitRepo, orderRepo, new(MockCalendarService))

		equipmentRepo.On("GetByID", ctx, int32(1)).Return(drill, nil)
		unitRepo.On("CountByStatus", ctx, int32(1), domain.UnitStatusMaintenance).Return(int32(0), nil)
		orderRepo.On("ListOverlappingItems", ctx, int32(1), start, end, int32(0)).Return([]domain.OrderItem{}, nil)

		free, err := svc.CheckRange(ctx, 1, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), free)
	})

	t.Run("Maintenance Units Do Not Count As Free", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		unitRepo := new(MockUnitRepo)
		orderRepo := new(MockOrderRepo)
		svc := NewAvailabilityService(equipmentRepo, unitRepo, orderRepo, new(MockCalendarService))

		// One of the two units is in the shop; allocation can never assign
		// it, so the range check must not offer it either.
		equipmentRepo.On("GetByID", ctx, int32(1)).Return(drill, nil)
		unitRepo.On("CountByStatus", ctx, int32(1), domain.UnitStatusMaintenance).Return(int32(1), nil)
		orderRepo.On("ListOverlappingItems", ctx, int32(1), start, end, int32(0)).Return([]domain.OrderItem{}, nil)

		free, err := svc.CheckRange(ctx, 1, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), free)
	})

	t.Run("Distinct Units Counted Once", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		unitRepo := new(MockUnitRepo)
		orderRepo := new(MockOrderRepo)
		svc := NewAvailabilityService(equipmentRepo, unitRepo, orderRepo, new(MockCalendarService))

		// Unit 7 appears in two overlapping items; it still blocks only one
		// slot of capacity.
		equipmentRepo.On("GetByID", ctx, int32(1)).Return(drill, nil)
		unitRepo.On("CountByStatus", ctx, int32(1), domain.UnitStatusMaintenance).Return(int32(0), nil)
		orderRepo.On("ListOverlappingItems", ctx, int32(1), start, end, int32(0)).Return([]domain.OrderItem{
			{ID: 1, UnitID: 7, StartDate: start, EndDate: start},
			{ID: 2, UnitID: 7, StartDate: end, EndDate: end},
		}, nil)

		free, err := svc.CheckRange(ctx, 1, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), free)
	})

	t.Run("Fully Booked Floors At Zero", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		unitRepo := new(MockUnitRepo)
		orderRepo := new(MockOrderRepo)
		svc := NewAvailabilityService(equipmentRepo, unitRepo, orderRepo, new(MockCalendarService))

		equipmentRepo.On("GetByID", ctx, int32(1)).Return(drill, nil)
		unitRepo.On("CountByStatus", ctx, int32(1), domain.UnitStatusMaintenance).Return(int32(0), nil)
		orderRepo.On("ListOverlappingItems", ctx, int32(1), start, end, int32(0)).Return([]domain.OrderItem{
			{ID: 1, UnitID: 7, StartDate: start, EndDate: end},
			{ID: 2, UnitID: 8, StartDate: start, EndDate: end},
			{ID: 3, UnitID: 9, StartDate: start, EndDate: end},
		}, nil)

		free, err := svc.CheckRange(ctx, 1, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), free)
	})

	t.Run("Inverted Range Rejected", func(t *testing.T) {
		svc := NewAvailabilityService(new(MockEquipmentRepo), new(MockUnitRepo), new(MockOrderRepo), new(MockCalendarService))
		_, err := svc.CheckRange(ctx, 1, end, start)
		assert.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestAvailabilityService_Daily(t *testing.T) {
	ctx := context.Background()
	start := dates.Date{Year: 2025, Month: 6, Day: 10}
	mid := dates.Date{Year: 2025, Month: 6, Day: 11}
	end := dates.Date{Year: 2025, Month: 6, Day: 12}

	drill := &domain.Equipment{ID: 1, Name: "Rotary Drill", TotalUnits: 2}

	equipmentRepo := new(MockEquipmentRepo)
	orderRepo := new(MockOrderRepo)
	calendarSvc := new(MockCalendarService)
	svc := NewAvailabilityService(equipmentRepo, new(MockUnitRepo), orderRepo, calendarSvc)

	equipmentRepo.On("GetByID", ctx, int32(1)).Return(drill, nil)
	// One unit held on the 10th and 11th only.
	orderRepo.On("ListOverlappingItems", ctx, int32(1), start, end, int32(0)).Return([]domain.OrderItem{
		{ID: 1, UnitID: 7, StartDate: start, EndDate: mid},
	}, nil)
	// The 11th is closed.
	calendarSvc.On("RangeStatus", ctx, start, end).Return([]domain.DayStatus{
		{Date: start, Open: true},
		{Date: mid, Open: false},
		{Date: end, Open: true},
	}, nil)

	days, err := svc.Daily(ctx, 1, start, end, 0)
	assert.NoError(t, err)
	assert.Len(t, days, 3)

	assert.True(t, days[0].Open)
	assert.Equal(t, int32(1), days[0].Remaining)

	// Closed day is a hard zero even though a unit would be free.
	assert.False(t, days[1].Open)
	assert.Equal(t, int32(0), days[1].Remaining)

	assert.True(t, days[2].Open)
	assert.Equal(t, int32(2), days[2].Remaining)
}

func TestAvailabilityService_Daily_ExcludesOwnOrder(t *testing.T) {
	ctx := context.Background()
	day := dates.Date{Year: 2025, Month: 6, Day: 10}

	equipmentRepo := new(MockEquipmentRepo)
	orderRepo := new(MockOrderRepo)
	calendarSvc := new(MockCalendarService)
	svc := NewAvailabilityService(equipmentRepo, new(MockUnitRepo), orderRepo, calendarSvc)

	equipmentRepo.On("GetByID", ctx, int32(1)).Return(&domain.Equipment{ID: 1, TotalUnits: 1}, nil)
	orderRepo.On("ListOverlappingItems", ctx, int32(1), day, day, int32(42)).Return([]domain.OrderItem{}, nil)
	calendarSvc.On("RangeStatus", ctx, day, day).Return([]domain.DayStatus{{Date: day, Open: true}}, nil)

	days, err := svc.Daily(ctx, 1, day, day, 42)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), days[0].Remaining)
	orderRepo.AssertCalled(t, "ListOverlappingItems", ctx, int32(1), day, day, int32(42))
}

// poolOrderRepo keeps accepted reservations in memory so repeated range checks
// see the items committed by earlier iterations.
type poolOrderRepo struct {
	MockOrderRepo
	items []domain.OrderItem
}

func (f *poolOrderRepo) ListOverlappingItems(_ context.Context, equipmentID int32, start, end dates.Date, _ int32) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	for _, it := range f.items {
		if it.EquipmentID == equipmentID && dates.Overlaps(it.StartDate, it.EndDate, start, end) {
			out = append(out, it)
		}
	}
	return out, nil
}

func TestAvailabilityService_RandomizedContentionNeverOversells(t *testing.T) {
	ctx := context.Background()
	const poolSize = 3

	equipmentRepo := new(MockEquipmentRepo)
	unitRepo := new(MockUnitRepo)
	repo := &poolOrderRepo{}
	svc := NewAvailabilityService(equipmentRepo, unitRepo, repo, new(MockCalendarService))

	equipmentRepo.On("GetByID", ctx, int32(1)).Return(&domain.Equipment{ID: 1, Name: "Jackhammer", TotalUnits: poolSize}, nil)
	unitRepo.On("CountByStatus", ctx, int32(1), domain.UnitStatusMaintenance).Return(int32(0), nil)

	rng := rand.New(rand.NewSource(7))
	base := dates.Date{Year: 2025, Month: 6, Day: 1}

	nextItemID := int32(1)
	for i := 0; i < 300; i++ {
		start := base.AddDays(rng.Intn(20))
		end := start.AddDays(rng.Intn(5))
		qty := int32(1 + rng.Intn(2))

		free, err := svc.CheckRange(ctx, 1, start, end)
		assert.NoError(t, err)

		// Replay the allocator's choice: the first units of the pool with no
		// overlapping reservation.
		var freeUnits []int32
		for u := int32(1); u <= poolSize; u++ {
			busy := false
			for _, it := range repo.items {
				if it.UnitID == u && dates.Overlaps(it.StartDate, it.EndDate, start, end) {
					busy = true
					break
				}
			}
			if !busy {
				freeUnits = append(freeUnits, u)
			}
		}
		// The range check and the allocator must agree on what is free.
		assert.Equal(t, int32(len(freeUnits)), free)

		if free < qty {
			continue
		}
		for _, u := range freeUnits[:qty] {
			repo.items = append(repo.items, domain.OrderItem{
				ID: nextItemID, OrderID: nextItemID, UnitID: u, EquipmentID: 1,
				StartDate: start, EndDate: end, Status: domain.OrderItemStatusActive,
			})
			nextItemID++
		}
	}

	assert.NotEmpty(t, repo.items)

	// No unit ever holds two overlapping reservations.
	for i := 0; i < len(repo.items); i++ {
		for j := i + 1; j < len(repo.items); j++ {
			a, b := repo.items[i], repo.items[j]
			if a.UnitID == b.UnitID {
				assert.False(t, dates.Overlaps(a.StartDate, a.EndDate, b.StartDate, b.EndDate),
					"unit %d double-booked: [%s, %s] and [%s, %s]",
					a.UnitID, a.StartDate, a.EndDate, b.StartDate, b.EndDate)
			}
		}
	}
}
