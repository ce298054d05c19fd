package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
	"locagora-backend/internal/repository"

	"github.com/lib/pq"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func holdingStatuses() pq.StringArray {
	arr := make(pq.StringArray, 0, len(domain.HoldingStatuses))
	for _, s := range domain.HoldingStatuses {
		arr = append(arr, string(s))
	}
	return arr
}

const orderColumns = `id, reference_code, customer_id, status, start_date, end_date,
	subtotal_cents, delivery_fee_cents, deposit_cents,
	damage_fee_cents, late_fee_cents, rebooking_fee_cents, cancellation_fee_cents, refunded_cents,
	delivery_type, delivery_address, created_on, updated_on`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	var start, end, createdOn, updatedOn time.Time
	var address sql.NullString
	err := row.Scan(
		&o.ID, &o.ReferenceCode, &o.CustomerID, &o.Status, &start, &end,
		&o.SubtotalCents, &o.DeliveryFeeCents, &o.DepositCents,
		&o.DamageFeeCents, &o.LateFeeCents, &o.RebookingFeeCents, &o.CancellationFeeCents, &o.RefundedCents,
		&o.DeliveryType, &address, &createdOn, &updatedOn,
	)
	if err != nil {
		return nil, err
	}
	o.StartDate = dates.FromTime(start)
	o.EndDate = dates.FromTime(end)
	o.DeliveryAddress = address.String
	o.CreatedOn = createdOn.Format(time.RFC3339)
	o.UpdatedOn = updatedOn.Format(time.RFC3339)
	return o, nil
}

// lockFreeUnits returns the ids of every unit of the equipment not held by an
// overlapping active item of a capacity-holding order, locking the rows until
// the enclosing transaction ends. The lock closes the window in which two
// concurrent orders could both see the same last unit as free.
func lockFreeUnits(ctx context.Context, tx *sql.Tx, equipmentID int32, start, end dates.Date) ([]int32, error) {
	query := `
		SELECT u.id
		FROM units u
		WHERE u.equipment_id = $1
		  AND u.status <> 'MAINTENANCE'
		  AND u.id NOT IN (
		    SELECT oi.unit_id
		    FROM order_items oi
		    JOIN orders o ON o.id = oi.order_id
		    WHERE oi.equipment_id = $1
		      AND oi.status = 'ACTIVE'
		      AND o.status = ANY($2)
		      AND (oi.start_date BETWEEN $3 AND $4
		        OR oi.end_date BETWEEN $3 AND $4
		        OR (oi.start_date <= $3 AND oi.end_date >= $4))
		  )
		ORDER BY u.id
		FOR UPDATE OF u`

	rows, err := tx.QueryContext(ctx, query, equipmentID, holdingStatuses(), start.String(), end.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateWithLines persists the order header and its items atomically. Each
// line re-checks availability inside the transaction and greedily assigns the
// first N free unit ids; any shortfall rolls everything back so a partial
// order is never observable.
func (r *orderRepository) CreateWithLines(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (reference_code, customer_id, status, start_date, end_date,
			subtotal_cents, delivery_fee_cents, deposit_cents, delivery_type, delivery_address,
			created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING id`,
		order.ReferenceCode, order.CustomerID, domain.OrderStatusPending,
		order.StartDate.String(), order.EndDate.String(),
		order.SubtotalCents, order.DeliveryFeeCents, order.DepositCents,
		order.DeliveryType, order.DeliveryAddress, now,
	).Scan(&order.ID)
	if err != nil {
		return err
	}

	order.Items = order.Items[:0]
	for _, line := range lines {
		freeIDs, err := lockFreeUnits(ctx, tx, line.EquipmentID, line.StartDate, line.EndDate)
		if err != nil {
			return err
		}
		if int32(len(freeIDs)) < line.Quantity {
			var name string
			if err := tx.QueryRowContext(ctx, `SELECT name FROM equipment WHERE id = $1`, line.EquipmentID).Scan(&name); err != nil {
				name = fmt.Sprintf("equipment %d", line.EquipmentID)
			}
			return domain.NewShortfallError(name, line.Quantity, int32(len(freeIDs)))
		}

		for _, unitID := range freeIDs[:line.Quantity] {
			item := domain.OrderItem{
				OrderID:     order.ID,
				UnitID:      unitID,
				EquipmentID: line.EquipmentID,
				StartDate:   line.StartDate,
				EndDate:     line.EndDate,
				Status:      domain.OrderItemStatusActive,
			}
			err := tx.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, unit_id, equipment_id, start_date, end_date, status)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
				item.OrderID, item.UnitID, item.EquipmentID,
				item.StartDate.String(), item.EndDate.String(), item.Status,
			).Scan(&item.ID)
			if err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	order.Status = domain.OrderStatusPending
	order.CreatedOn = now.Format(time.RFC3339)
	order.UpdatedOn = order.CreatedOn
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return nil, err
	}
	items, err := r.ListItemsByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *orderRepository) listOrders(ctx context.Context, where string, args []interface{}, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + where

	argIdx := len(args) + 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, count, rows.Err()
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.listOrders(ctx, "customer_id = $1", []interface{}{customerID}, status, page, pageSize)
}

func (r *orderRepository) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return r.listOrders(ctx, "1 = 1", nil, status, page, pageSize)
}

// UpdateStatus is the optimistic transition primitive: the update applies only
// when the current status still matches the caller's expectation.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int32, expected, next domain.OrderStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
		next, time.Now(), id, expected)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *orderRepository) AddFees(ctx context.Context, id int32, damage, late, rebooking, cancellation, refunded int32) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET
			damage_fee_cents = damage_fee_cents + $1,
			late_fee_cents = late_fee_cents + $2,
			rebooking_fee_cents = rebooking_fee_cents + $3,
			cancellation_fee_cents = cancellation_fee_cents + $4,
			refunded_cents = refunded_cents + $5,
			updated_on = $6
		WHERE id = $7`,
		damage, late, rebooking, cancellation, refunded, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "order", ID: id}
	}
	return nil
}

func (r *orderRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 AND created_on < $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// CancelWithItems cancels a still-pending order and its active items in one
// transaction. The status guard makes repeated calls no-ops, so the sweeper
// can safely revisit an order it already cancelled.
func (r *orderRepository) CancelWithItems(ctx context.Context, orderID int32) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
		domain.OrderStatusCancelled, time.Now(), orderID, domain.OrderStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE order_items SET status = $1 WHERE order_id = $2 AND status = $3`,
		domain.OrderItemStatusCancelled, orderID, domain.OrderItemStatusActive)
	if err != nil {
		return false, err
	}

	// Held units go back to the pool. Pending orders never move units to
	// RENTED, but a sweep after a partial pickup must not strand them.
	_, err = tx.ExecContext(ctx, `
		UPDATE units SET status = $1
		WHERE id IN (SELECT unit_id FROM order_items WHERE order_id = $2)
		  AND status = $3`,
		domain.UnitStatusAvailable, orderID, domain.UnitStatusRented)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *orderRepository) CancelActiveItems(ctx context.Context, orderID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE order_items SET status = $1 WHERE order_id = $2 AND status = $3`,
		domain.OrderItemStatusCancelled, orderID, domain.OrderItemStatusActive)
	return err
}

func (r *orderRepository) ListOverlappingItems(ctx context.Context, equipmentID int32, start, end dates.Date, excludeOrderID int32) ([]domain.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.unit_id, oi.equipment_id, oi.start_date, oi.end_date, oi.status, oi.actual_return_date
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.equipment_id = $1
		  AND oi.status = 'ACTIVE'
		  AND o.status = ANY($2)
		  AND (oi.start_date BETWEEN $3 AND $4
		    OR oi.end_date BETWEEN $3 AND $4
		    OR (oi.start_date <= $3 AND oi.end_date >= $4))`

	args := []interface{}{equipmentID, holdingStatuses(), start.String(), end.String()}
	if excludeOrderID > 0 {
		query += " AND oi.order_id <> $5"
		args = append(args, excludeOrderID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *orderRepository) ListItemsByOrder(ctx context.Context, orderID int32) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, unit_id, equipment_id, start_date, end_date, status, actual_return_date
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		var start, end time.Time
		var returned sql.NullTime
		if err := rows.Scan(&it.ID, &it.OrderID, &it.UnitID, &it.EquipmentID, &start, &end, &it.Status, &returned); err != nil {
			return nil, err
		}
		it.StartDate = dates.FromTime(start)
		it.EndDate = dates.FromTime(end)
		if returned.Valid {
			d := dates.FromTime(returned.Time)
			it.ActualReturnDate = &d
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *orderRepository) CloseItemWithLoss(ctx context.Context, itemID int32) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE order_items SET status = $1 WHERE id = $2 AND status = $3`,
		domain.OrderItemStatusClosedWithLoss, itemID, domain.OrderItemStatusActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *orderRepository) MarkItemReturned(ctx context.Context, itemID int32, returnedOn dates.Date) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE order_items SET actual_return_date = $1 WHERE id = $2`,
		returnedOn.String(), itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "order item", ID: itemID}
	}
	return nil
}

func (r *orderRepository) CountActiveItems(ctx context.Context, orderID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM order_items WHERE order_id = $1 AND status = $2`,
		orderID, domain.OrderItemStatusActive).Scan(&count)
	return count, err
}
