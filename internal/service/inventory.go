package service

import (
	"context"

	"locagora-backend/internal/domain"
	"locagora-backend/internal/repository"
)

type inventoryService struct {
	equipmentRepo repository.EquipmentRepository
	unitRepo      repository.UnitRepository
}

func NewInventoryService(equipmentRepo repository.EquipmentRepository, unitRepo repository.UnitRepository) InventoryService {
	return &inventoryService{equipmentRepo: equipmentRepo, unitRepo: unitRepo}
}

func (s *inventoryService) CreateEquipment(ctx context.Context, principal domain.Principal, eq *domain.Equipment) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	if eq.Name == "" {
		return domain.NewValidationError("equipment name is required")
	}
	if eq.DailyPriceCents <= 0 {
		return domain.NewValidationError("daily price must be positive")
	}
	return s.equipmentRepo.Create(ctx, eq)
}

func (s *inventoryService) UpdateEquipment(ctx context.Context, principal domain.Principal, eq *domain.Equipment) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	if eq.Name == "" {
		return domain.NewValidationError("equipment name is required")
	}
	if eq.DailyPriceCents <= 0 {
		return domain.NewValidationError("daily price must be positive")
	}
	return s.equipmentRepo.Update(ctx, eq)
}

// DeleteEquipment refuses to remove a SKU that still has physical units;
// stock must be drained first so reservation history stays intact.
func (s *inventoryService) DeleteEquipment(ctx context.Context, principal domain.Principal, id int32) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	units, err := s.unitRepo.ListByEquipment(ctx, id)
	if err != nil {
		return err
	}
	if len(units) > 0 {
		return &domain.ConflictError{Message: "equipment still has units; remove them first"}
	}
	return s.equipmentRepo.Delete(ctx, id)
}

func (s *inventoryService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *inventoryService) ListEquipment(ctx context.Context, category string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.equipmentRepo.List(ctx, category, page, pageSize)
}

func (s *inventoryService) ListUnits(ctx context.Context, principal domain.Principal, equipmentID int32) ([]domain.Unit, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.unitRepo.ListByEquipment(ctx, equipmentID)
}

func (s *inventoryService) AddUnits(ctx context.Context, principal domain.Principal, equipmentID, count int32) ([]domain.Unit, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if count < 1 {
		return nil, domain.NewValidationError("unit count must be at least 1")
	}
	return s.unitRepo.CreateBatch(ctx, equipmentID, count)
}

func (s *inventoryService) SetUnitStatus(ctx context.Context, principal domain.Principal, unitID int32, status domain.UnitStatus) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	switch status {
	case domain.UnitStatusAvailable, domain.UnitStatusRented, domain.UnitStatusMaintenance:
	default:
		return domain.NewValidationError("unknown unit status %q", status)
	}
	return s.unitRepo.UpdateStatus(ctx, unitID, status)
}

func (s *inventoryService) RemoveUnit(ctx context.Context, principal domain.Principal, unitID int32) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.unitRepo.Delete(ctx, unitID)
}
