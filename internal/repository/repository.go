package repository

import (
	"context"
	"time"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, category string, page, pageSize int32) ([]domain.Equipment, int32, error)
}

type UnitRepository interface {
	// CreateBatch inserts count available units and increments the owning
	// equipment's denormalized total inside the same transaction.
	CreateBatch(ctx context.Context, equipmentID, count int32) ([]domain.Unit, error)
	GetByID(ctx context.Context, id int32) (*domain.Unit, error)
	ListByEquipment(ctx context.Context, equipmentID int32) ([]domain.Unit, error)
	UpdateStatus(ctx context.Context, id int32, status domain.UnitStatus) error
	CountByStatus(ctx context.Context, equipmentID int32, status domain.UnitStatus) (int32, error)
	// UpdateStatusForOrder flips every unit assigned to the order's active
	// items, used by lifecycle side effects (pickup, return, cancellation).
	UpdateStatusForOrder(ctx context.Context, orderID int32, status domain.UnitStatus) error
	// Delete removes the unit and decrements the equipment total in one
	// transaction. Fails with Conflict if the unit has reservation history.
	Delete(ctx context.Context, id int32) error
	HasReservationHistory(ctx context.Context, id int32) (bool, error)
}

type OrderRepository interface {
	// CreateWithLines persists the order header and expands each line into
	// per-unit items inside a single transaction. Availability is re-checked
	// per line with row-level locks on the candidate unit rows; on any
	// shortfall the whole transaction rolls back with a ConflictError.
	CreateWithLines(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error)
	// UpdateStatus performs a status-guarded transition. Returns false when
	// the order's current status did not match expected (stale state).
	UpdateStatus(ctx context.Context, id int32, expected, next domain.OrderStatus) (bool, error)
	AddFees(ctx context.Context, id int32, damage, late, rebooking, cancellation, refunded int32) error
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Order, error)
	// CancelWithItems cancels a pending order and its active items in one
	// transaction. Returns false without error when the order is no longer
	// pending, so repeated sweeps are no-ops.
	CancelWithItems(ctx context.Context, orderID int32) (bool, error)

	// CancelActiveItems flips every still-active item of the order to
	// cancelled. Used after an order-level cancellation already applied.
	CancelActiveItems(ctx context.Context, orderID int32) error

	// Items
	ListOverlappingItems(ctx context.Context, equipmentID int32, start, end dates.Date, excludeOrderID int32) ([]domain.OrderItem, error)
	ListItemsByOrder(ctx context.Context, orderID int32) ([]domain.OrderItem, error)
	CloseItemWithLoss(ctx context.Context, itemID int32) (bool, error)
	MarkItemReturned(ctx context.Context, itemID int32, returnedOn dates.Date) error
	CountActiveItems(ctx context.Context, orderID int32) (int32, error)
}

type CalendarRepository interface {
	GetWeeklySchedule(ctx context.Context) ([]domain.WeeklyScheduleEntry, error)
	UpsertWeeklyEntry(ctx context.Context, entry *domain.WeeklyScheduleEntry) error
	GetException(ctx context.Context, date dates.Date) (*domain.CalendarException, error)
	ListExceptionsInRange(ctx context.Context, start, end dates.Date) ([]domain.CalendarException, error)
	UpsertException(ctx context.Context, exc *domain.CalendarException) error
	DeleteException(ctx context.Context, date dates.Date) error
	PublishMonth(ctx context.Context, year, month int) error
	IsMonthPublished(ctx context.Context, year, month int) (bool, error)
	ListPublishedMonths(ctx context.Context) ([]domain.PublishedMonth, error)
}
