package jobs

import (
	"context"
	"testing"
	"time"

	"locagora-backend/internal/config"
	"locagora-backend/internal/domain"
	"locagora-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendOrderConfirmation(ctx context.Context, email, name string, order *domain.Order) error {
	args := m.Called(ctx, email, name, order)
	return args.Error(0)
}
func (m *mockEmailService) SendOrderExpired(ctx context.Context, email, name, referenceCode string) error {
	args := m.Called(ctx, email, name, referenceCode)
	return args.Error(0)
}
func (m *mockEmailService) SendOrderStatusChanged(ctx context.Context, email, name, referenceCode string, status domain.OrderStatus) error {
	args := m.Called(ctx, email, name, referenceCode, status)
	return args.Error(0)
}

var orderColumns = []string{"id", "reference_code", "customer_id", "status", "start_date", "end_date",
	"subtotal_cents", "delivery_fee_cents", "deposit_cents",
	"damage_fee_cents", "late_fee_cents", "rebooking_fee_cents", "cancellation_fee_cents", "refunded_cents",
	"delivery_type", "delivery_address", "created_on", "updated_on"}

func staleOrderRow(id int32, ref string) *sqlmock.Rows {
	createdOn := time.Now().Add(-2 * time.Hour)
	return sqlmock.NewRows(orderColumns).
		AddRow(id, ref, 1, "PENDING", time.Now(), time.Now(), 9000, 0, 4500, 0, 0, 0, 0, 0, "PICKUP", nil, createdOn, createdOn)
}

func TestExpireStaleOrders(t *testing.T) {
	cfg := &config.Config{}
	cfg.Rental.StaleOrderExpiryMinutes = 60

	t.Run("Cancels And Notifies", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		emailSvc := new(mockEmailService)
		jr := NewJobRunner(db, postgres.NewStore(db), &Services{Email: emailSvc}, cfg)

		dbmock.ExpectQuery("SELECT (.+) FROM orders WHERE status = \\$1 AND created_on < \\$2").
			WillReturnRows(staleOrderRow(10, "ref-10"))

		dbmock.ExpectBegin()
		dbmock.ExpectExec("UPDATE orders SET status").
			WithArgs(domain.OrderStatusCancelled, sqlmock.AnyArg(), int32(10), domain.OrderStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbmock.ExpectExec("UPDATE order_items SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbmock.ExpectExec("UPDATE units SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))
		dbmock.ExpectCommit()

		dbmock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "password_hash", "role", "created_on"}).
				AddRow(1, "Customer", "c@test.com", nil, "hash", "CUSTOMER", time.Now()))
		emailSvc.On("SendOrderExpired", mock.Anything, "c@test.com", "Customer", "ref-10").Return(nil)

		jr.ExpireStaleOrders()

		assert.NoError(t, dbmock.ExpectationsWereMet())
		emailSvc.AssertExpectations(t)
	})

	t.Run("Skips Order Paid Since Listing", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		emailSvc := new(mockEmailService)
		jr := NewJobRunner(db, postgres.NewStore(db), &Services{Email: emailSvc}, cfg)

		dbmock.ExpectQuery("SELECT (.+) FROM orders WHERE status = \\$1 AND created_on < \\$2").
			WillReturnRows(staleOrderRow(11, "ref-11"))

		// The guard update matches nothing: the order was paid between the
		// listing and the sweep.
		dbmock.ExpectBegin()
		dbmock.ExpectExec("UPDATE orders SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))
		dbmock.ExpectCommit()

		jr.ExpireStaleOrders()

		assert.NoError(t, dbmock.ExpectationsWereMet())
		emailSvc.AssertNotCalled(t, "SendOrderExpired", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
