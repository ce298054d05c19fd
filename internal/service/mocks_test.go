package service

import (
	"context"
	"time"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) List(ctx context.Context, category string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, category, page, pageSize)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}

// MockUnitRepo
type MockUnitRepo struct {
	mock.Mock
}

func (m *MockUnitRepo) CreateBatch(ctx context.Context, equipmentID, count int32) ([]domain.Unit, error) {
	args := m.Called(ctx, equipmentID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}
func (m *MockUnitRepo) GetByID(ctx context.Context, id int32) (*domain.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}
func (m *MockUnitRepo) ListByEquipment(ctx context.Context, equipmentID int32) ([]domain.Unit, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).([]domain.Unit), args.Error(1)
}
func (m *MockUnitRepo) UpdateStatus(ctx context.Context, id int32, status domain.UnitStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockUnitRepo) CountByStatus(ctx context.Context, equipmentID int32, status domain.UnitStatus) (int32, error) {
	args := m.Called(ctx, equipmentID, status)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockUnitRepo) UpdateStatusForOrder(ctx context.Context, orderID int32, status domain.UnitStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
func (m *MockUnitRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUnitRepo) HasReservationHistory(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateWithLines(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error {
	args := m.Called(ctx, order, lines)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int32, expected, next domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}
func (m *MockOrderRepo) AddFees(ctx context.Context, id int32, damage, late, rebooking, cancellation, refunded int32) error {
	args := m.Called(ctx, id, damage, late, rebooking, cancellation, refunded)
	return args.Error(0)
}
func (m *MockOrderRepo) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) CancelWithItems(ctx context.Context, orderID int32) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}
func (m *MockOrderRepo) CancelActiveItems(ctx context.Context, orderID int32) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
func (m *MockOrderRepo) ListOverlappingItems(ctx context.Context, equipmentID int32, start, end dates.Date, excludeOrderID int32) ([]domain.OrderItem, error) {
	args := m.Called(ctx, equipmentID, start, end, excludeOrderID)
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}
func (m *MockOrderRepo) ListItemsByOrder(ctx context.Context, orderID int32) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}
func (m *MockOrderRepo) CloseItemWithLoss(ctx context.Context, itemID int32) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}
func (m *MockOrderRepo) MarkItemReturned(ctx context.Context, itemID int32, returnedOn dates.Date) error {
	args := m.Called(ctx, itemID, returnedOn)
	return args.Error(0)
}
func (m *MockOrderRepo) CountActiveItems(ctx context.Context, orderID int32) (int32, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int32), args.Error(1)
}

// MockCalendarRepo
type MockCalendarRepo struct {
	mock.Mock
}

func (m *MockCalendarRepo) GetWeeklySchedule(ctx context.Context) ([]domain.WeeklyScheduleEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WeeklyScheduleEntry), args.Error(1)
}
func (m *MockCalendarRepo) UpsertWeeklyEntry(ctx context.Context, entry *domain.WeeklyScheduleEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockCalendarRepo) GetException(ctx context.Context, date dates.Date) (*domain.CalendarException, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarException), args.Error(1)
}
func (m *MockCalendarRepo) ListExceptionsInRange(ctx context.Context, start, end dates.Date) ([]domain.CalendarException, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.CalendarException), args.Error(1)
}
func (m *MockCalendarRepo) UpsertException(ctx context.Context, exc *domain.CalendarException) error {
	args := m.Called(ctx, exc)
	return args.Error(0)
}
func (m *MockCalendarRepo) DeleteException(ctx context.Context, date dates.Date) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}
func (m *MockCalendarRepo) PublishMonth(ctx context.Context, year, month int) error {
	args := m.Called(ctx, year, month)
	return args.Error(0)
}
func (m *MockCalendarRepo) IsMonthPublished(ctx context.Context, year, month int) (bool, error) {
	args := m.Called(ctx, year, month)
	return args.Bool(0), args.Error(1)
}
func (m *MockCalendarRepo) ListPublishedMonths(ctx context.Context) ([]domain.PublishedMonth, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PublishedMonth), args.Error(1)
}

// MockCalendarService
type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) IsOpen(ctx context.Context, date dates.Date) (*domain.DayStatus, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DayStatus), args.Error(1)
}
func (m *MockCalendarService) RangeStatus(ctx context.Context, start, end dates.Date) ([]domain.DayStatus, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.DayStatus), args.Error(1)
}
func (m *MockCalendarService) MonthStatus(ctx context.Context, principal domain.Principal, year, month int) ([]domain.DayStatus, error) {
	args := m.Called(ctx, principal, year, month)
	return args.Get(0).([]domain.DayStatus), args.Error(1)
}
func (m *MockCalendarService) IsMonthPublished(ctx context.Context, year, month int) (bool, error) {
	args := m.Called(ctx, year, month)
	return args.Bool(0), args.Error(1)
}
func (m *MockCalendarService) ListPublishedMonths(ctx context.Context) ([]domain.PublishedMonth, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PublishedMonth), args.Error(1)
}
func (m *MockCalendarService) PublishMonth(ctx context.Context, principal domain.Principal, year, month int) error {
	args := m.Called(ctx, principal, year, month)
	return args.Error(0)
}
func (m *MockCalendarService) SetException(ctx context.Context, principal domain.Principal, exc *domain.CalendarException) error {
	args := m.Called(ctx, principal, exc)
	return args.Error(0)
}
func (m *MockCalendarService) RemoveException(ctx context.Context, principal domain.Principal, date dates.Date) error {
	args := m.Called(ctx, principal, date)
	return args.Error(0)
}
func (m *MockCalendarService) SetWeeklyEntry(ctx context.Context, principal domain.Principal, entry *domain.WeeklyScheduleEntry) error {
	args := m.Called(ctx, principal, entry)
	return args.Error(0)
}

// MockAvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) CheckRange(ctx context.Context, equipmentID int32, start, end dates.Date) (int32, error) {
	args := m.Called(ctx, equipmentID, start, end)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockAvailabilityService) Daily(ctx context.Context, equipmentID int32, start, end dates.Date, excludeOrderID int32) ([]domain.DayAvailability, error) {
	args := m.Called(ctx, equipmentID, start, end, excludeOrderID)
	return args.Get(0).([]domain.DayAvailability), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error {
	args := m.Called(ctx, email, name, order)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderExpired(ctx context.Context, email, name, referenceCode string) error {
	args := m.Called(ctx, email, name, referenceCode)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderStatusChanged(ctx context.Context, email, name, referenceCode string, status domain.OrderStatus) error {
	args := m.Called(ctx, email, name, referenceCode, status)
	return args.Error(0)
}
