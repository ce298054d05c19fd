package service

import (
	"context"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                             // access, refresh
}

type CalendarService interface {
	IsOpen(ctx context.Context, date dates.Date) (*domain.DayStatus, error)
	// RangeStatus resolves every day of the inclusive range in one pass (one
	// schedule fetch, one exception fetch). No published-month gate; callers
	// that expose it to customers apply the gate themselves.
	RangeStatus(ctx context.Context, start, end dates.Date) ([]domain.DayStatus, error)
	MonthStatus(ctx context.Context, principal domain.Principal, year, month int) ([]domain.DayStatus, error)
	IsMonthPublished(ctx context.Context, year, month int) (bool, error)
	ListPublishedMonths(ctx context.Context) ([]domain.PublishedMonth, error)

	// Admin operations
	PublishMonth(ctx context.Context, principal domain.Principal, year, month int) error
	SetException(ctx context.Context, principal domain.Principal, exc *domain.CalendarException) error
	RemoveException(ctx context.Context, principal domain.Principal, date dates.Date) error
	SetWeeklyEntry(ctx context.Context, principal domain.Principal, entry *domain.WeeklyScheduleEntry) error
}

type AvailabilityService interface {
	// CheckRange returns the number of units of the equipment free across the
	// whole inclusive range.
	CheckRange(ctx context.Context, equipmentID int32, start, end dates.Date) (int32, error)
	// Daily returns per-day remaining counts. Closed days report zero
	// regardless of stock. excludeOrderID (0 = none) skips one order's own
	// items when re-checking an in-place reschedule.
	Daily(ctx context.Context, equipmentID int32, start, end dates.Date, excludeOrderID int32) ([]domain.DayAvailability, error)
}

type InventoryService interface {
	CreateEquipment(ctx context.Context, principal domain.Principal, eq *domain.Equipment) error
	UpdateEquipment(ctx context.Context, principal domain.Principal, eq *domain.Equipment) error
	DeleteEquipment(ctx context.Context, principal domain.Principal, id int32) error
	GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error)
	ListEquipment(ctx context.Context, category string, page, pageSize int32) ([]domain.Equipment, int32, error)

	ListUnits(ctx context.Context, principal domain.Principal, equipmentID int32) ([]domain.Unit, error)
	AddUnits(ctx context.Context, principal domain.Principal, equipmentID, count int32) ([]domain.Unit, error)
	SetUnitStatus(ctx context.Context, principal domain.Principal, unitID int32, status domain.UnitStatus) error
	RemoveUnit(ctx context.Context, principal domain.Principal, unitID int32) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, principal domain.Principal, lines []domain.OrderLine, deliveryType domain.DeliveryType, deliveryAddress string) (*domain.Order, error)
	GetOrder(ctx context.Context, principal domain.Principal, orderID int32) (*domain.Order, error)
	ListOrders(ctx context.Context, principal domain.Principal, status string, page, pageSize int32) ([]domain.Order, int32, error)
	// Transition is the optimistic status-guarded lifecycle primitive; it
	// fails with Conflict when the current status no longer matches expected.
	Transition(ctx context.Context, principal domain.Principal, orderID int32, expected, next domain.OrderStatus) (*domain.Order, error)
	// CancelOwn lets a customer cancel their own order before payment.
	CancelOwn(ctx context.Context, principal domain.Principal, orderID int32) (*domain.Order, error)
	AddFees(ctx context.Context, principal domain.Principal, orderID int32, damage, late, rebooking, cancellation, refunded int32) error
	// CloseItemWithLoss finalizes a single line item after a loss event; the
	// order auto-completes once no active items remain.
	CloseItemWithLoss(ctx context.Context, principal domain.Principal, orderID, itemID int32) error
	MarkItemReturned(ctx context.Context, principal domain.Principal, orderID, itemID int32, returnedOn dates.Date) error
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error
	SendOrderExpired(ctx context.Context, email, name, referenceCode string) error
	SendOrderStatusChanged(ctx context.Context, email, name, referenceCode string, status domain.OrderStatus) error
}
