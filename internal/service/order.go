package service

import (
	"context"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
	"locagora-backend/internal/logger"
	"locagora-backend/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	orderRepo        repository.OrderRepository
	equipmentRepo    repository.EquipmentRepository
	unitRepo         repository.UnitRepository
	userRepo         repository.UserRepository
	availability     AvailabilityService
	calendarSvc      CalendarService
	emailSvc         EmailService
	deliveryFeeCents int32
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	equipmentRepo repository.EquipmentRepository,
	unitRepo repository.UnitRepository,
	userRepo repository.UserRepository,
	availability AvailabilityService,
	calendarSvc CalendarService,
	emailSvc EmailService,
	deliveryFeeCents int32,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		equipmentRepo:    equipmentRepo,
		unitRepo:         unitRepo,
		userRepo:         userRepo,
		availability:     availability,
		calendarSvc:      calendarSvc,
		emailSvc:         emailSvc,
		deliveryFeeCents: deliveryFeeCents,
	}
}

func (s *orderService) validateLines(lines []domain.OrderLine, deliveryType domain.DeliveryType, deliveryAddress string) error {
	if len(lines) == 0 {
		return domain.NewValidationError("order must contain at least one item")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return domain.NewValidationError("quantity must be positive for equipment %d", line.EquipmentID)
		}
		if err := validateRange(line.StartDate, line.EndDate); err != nil {
			return err
		}
	}
	switch deliveryType {
	case domain.DeliveryTypePickup:
	case domain.DeliveryTypeDelivery:
		if deliveryAddress == "" {
			return domain.NewValidationError("delivery address is required for delivery orders")
		}
	default:
		return domain.NewValidationError("unknown delivery type %q", deliveryType)
	}
	return nil
}

// checkMonthsPublished enforces the booking-visibility gate: every month the
// envelope touches must have been published by an admin.
func (s *orderService) checkMonthsPublished(ctx context.Context, start, end dates.Date) error {
	for y, m := start.Year, start.Month; y < end.Year || (y == end.Year && m <= end.Month); {
		published, err := s.calendarSvc.IsMonthPublished(ctx, y, m)
		if err != nil {
			return err
		}
		if !published {
			return domain.NewValidationError("month %04d-%02d is not open for booking yet", y, m)
		}
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return nil
}

// CreateOrder validates and prices the cart, then persists the order and its
// per-unit items in a single transaction. Availability is checked once here
// for pricing/validation and re-checked inside the transaction with row locks
// before units are assigned, so two concurrent orders can never both take the
// same last unit.
func (s *orderService) CreateOrder(ctx context.Context, principal domain.Principal, lines []domain.OrderLine, deliveryType domain.DeliveryType, deliveryAddress string) (*domain.Order, error) {
	if err := s.validateLines(lines, deliveryType, deliveryAddress); err != nil {
		return nil, err
	}

	var subtotal int32
	var envelopeStart, envelopeEnd dates.Date
	for _, line := range lines {
		eq, err := s.equipmentRepo.GetByID(ctx, line.EquipmentID)
		if err != nil {
			return nil, err
		}

		days := int32(line.StartDate.DaysUntilInclusive(line.EndDate))
		subtotal += eq.DailyPriceCents * line.Quantity * days

		if envelopeStart.IsZero() || line.StartDate.Before(envelopeStart) {
			envelopeStart = line.StartDate
		}
		if envelopeEnd.IsZero() || line.EndDate.After(envelopeEnd) {
			envelopeEnd = line.EndDate
		}
	}

	if !principal.IsAdmin() {
		if err := s.checkMonthsPublished(ctx, envelopeStart, envelopeEnd); err != nil {
			return nil, err
		}
	}

	for _, line := range lines {
		free, err := s.availability.CheckRange(ctx, line.EquipmentID, line.StartDate, line.EndDate)
		if err != nil {
			return nil, err
		}
		if free < line.Quantity {
			eq, err := s.equipmentRepo.GetByID(ctx, line.EquipmentID)
			if err != nil {
				return nil, err
			}
			return nil, domain.NewShortfallError(eq.Name, line.Quantity, free)
		}
	}

	var deliveryFee int32
	if deliveryType == domain.DeliveryTypeDelivery {
		deliveryFee = s.deliveryFeeCents
	}
	total := subtotal + deliveryFee

	order := &domain.Order{
		ReferenceCode:    uuid.NewString(),
		CustomerID:       principal.UserID,
		Status:           domain.OrderStatusPending,
		StartDate:        envelopeStart,
		EndDate:          envelopeEnd,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: deliveryFee,
		DepositCents:     total / 2,
		DeliveryType:     deliveryType,
		DeliveryAddress:  deliveryAddress,
	}

	if err := s.orderRepo.CreateWithLines(ctx, order, lines); err != nil {
		return nil, err
	}

	// Confirmation email is best effort; the order stands either way.
	if customer, err := s.userRepo.GetByID(ctx, principal.UserID); err == nil {
		if err := s.emailSvc.SendOrderConfirmation(ctx, customer.Email, customer.Name, order); err != nil {
			logger.Warn("Failed to send order confirmation", "order_id", order.ID, "error", err)
		}
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, principal domain.Principal, orderID int32) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != principal.UserID && !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, principal domain.Principal, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	if principal.IsAdmin() {
		return s.orderRepo.ListAll(ctx, status, page, pageSize)
	}
	return s.orderRepo.ListByCustomer(ctx, principal.UserID, status, page, pageSize)
}

// Transition moves an order along the lifecycle table, guarded against stale
// expectations. Unit statuses follow as side effects: pickup marks the
// order's units rented, return or cancellation releases them.
func (s *orderService) Transition(ctx context.Context, principal domain.Principal, orderID int32, expected, next domain.OrderStatus) (*domain.Order, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !domain.CanTransition(expected, next) {
		return nil, domain.NewValidationError("transition %s -> %s is not allowed", expected, next)
	}

	applied, err := s.orderRepo.UpdateStatus(ctx, orderID, expected, next)
	if err != nil {
		return nil, err
	}
	if !applied {
		current, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return nil, &domain.ConflictError{Message: "order " + current.ReferenceCode +
			" is in status " + string(current.Status) + ", expected " + string(expected)}
	}

	switch next {
	case domain.OrderStatusInProgress:
		err = s.unitRepo.UpdateStatusForOrder(ctx, orderID, domain.UnitStatusRented)
	case domain.OrderStatusAwaitingFinalPayment:
		err = s.unitRepo.UpdateStatusForOrder(ctx, orderID, domain.UnitStatusAvailable)
	case domain.OrderStatusCancelled:
		// Units must come back before the items flip: the release query only
		// touches units of still-active items.
		err = s.unitRepo.UpdateStatusForOrder(ctx, orderID, domain.UnitStatusAvailable)
		if err == nil {
			err = s.orderRepo.CancelActiveItems(ctx, orderID)
		}
	}
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if customer, err := s.userRepo.GetByID(ctx, order.CustomerID); err == nil {
		if err := s.emailSvc.SendOrderStatusChanged(ctx, customer.Email, customer.Name, order.ReferenceCode, next); err != nil {
			logger.Warn("Failed to send status change notice", "order_id", orderID, "error", err)
		}
	}

	return order, nil
}

// CancelOwn lets the owning customer cancel an order before payment. Once the
// deposit has been charged (APPROVED and beyond) only an admin transition can
// cancel it.
func (s *orderService) CancelOwn(ctx context.Context, principal domain.Principal, orderID int32) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != principal.UserID && !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if order.Status != domain.OrderStatusPending {
		return nil, &domain.ConflictError{Message: "only unpaid pending orders can be cancelled by the customer"}
	}

	if _, err := s.orderRepo.CancelWithItems(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *orderService) AddFees(ctx context.Context, principal domain.Principal, orderID int32, damage, late, rebooking, cancellation, refunded int32) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.orderRepo.AddFees(ctx, orderID, damage, late, rebooking, cancellation, refunded)
}

// CloseItemWithLoss finalizes one line item after a loss event, independent
// of the order-level state. When no active items remain the whole order
// auto-completes.
func (s *orderService) CloseItemWithLoss(ctx context.Context, principal domain.Principal, orderID, itemID int32) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	var found bool
	for _, it := range order.Items {
		if it.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return &domain.NotFoundError{Entity: "order item", ID: itemID}
	}

	closed, err := s.orderRepo.CloseItemWithLoss(ctx, itemID)
	if err != nil {
		return err
	}
	if !closed {
		return &domain.ConflictError{Message: "order item is not active"}
	}

	remaining, err := s.orderRepo.CountActiveItems(ctx, orderID)
	if err != nil {
		return err
	}
	if remaining == 0 {
		if _, err := s.orderRepo.UpdateStatus(ctx, orderID, order.Status, domain.OrderStatusCompleted); err != nil {
			return err
		}
		logger.Info("Order auto-completed, no active items remain", "order_id", orderID)
	}
	return nil
}

func (s *orderService) MarkItemReturned(ctx context.Context, principal domain.Principal, orderID, itemID int32, returnedOn dates.Date) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	for _, it := range order.Items {
		if it.ID == itemID {
			return s.orderRepo.MarkItemReturned(ctx, itemID, returnedOn)
		}
	}
	return &domain.NotFoundError{Entity: "order item", ID: itemID}
}
