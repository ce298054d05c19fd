package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"locagora-backend/internal/domain"
	"locagora-backend/internal/repository"

	"github.com/lib/pq"
)

type unitRepository struct {
	db *sql.DB
}

func NewUnitRepository(db *sql.DB) repository.UnitRepository {
	return &unitRepository{db: db}
}

// CreateBatch inserts count available units and bumps the equipment's
// denormalized total in the same transaction, keeping the counter invariant.
func (r *unitRepository) CreateBatch(ctx context.Context, equipmentID, count int32) ([]domain.Unit, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE equipment SET total_units = total_units + $1 WHERE id = $2 AND deleted_on IS NULL`,
		count, equipmentID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, &domain.NotFoundError{Entity: "equipment", ID: equipmentID}
	}

	now := time.Now()
	units := make([]domain.Unit, 0, count)
	for i := int32(0); i < count; i++ {
		var u domain.Unit
		err := tx.QueryRowContext(ctx,
			`INSERT INTO units (equipment_id, status, created_on) VALUES ($1, $2, $3) RETURNING id`,
			equipmentID, domain.UnitStatusAvailable, now).Scan(&u.ID)
		if err != nil {
			return nil, err
		}
		u.EquipmentID = equipmentID
		u.Status = domain.UnitStatusAvailable
		u.CreatedOn = now.Format(time.RFC3339)
		units = append(units, u)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return units, nil
}

func (r *unitRepository) GetByID(ctx context.Context, id int32) (*domain.Unit, error) {
	u := &domain.Unit{}
	var serial sql.NullString
	var createdOn time.Time
	query := `SELECT id, equipment_id, serial_code, status, damages, created_on FROM units WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.EquipmentID, &serial, &u.Status, pq.Array(&u.Damages), &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "unit", ID: id}
	}
	if err != nil {
		return nil, err
	}
	u.SerialCode = serial.String
	u.CreatedOn = createdOn.Format(time.RFC3339)
	return u, nil
}

func (r *unitRepository) ListByEquipment(ctx context.Context, equipmentID int32) ([]domain.Unit, error) {
	query := `SELECT id, equipment_id, serial_code, status, damages, created_on
	          FROM units WHERE equipment_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []domain.Unit
	for rows.Next() {
		var u domain.Unit
		var serial sql.NullString
		var createdOn time.Time
		if err := rows.Scan(&u.ID, &u.EquipmentID, &serial, &u.Status, pq.Array(&u.Damages), &createdOn); err != nil {
			return nil, err
		}
		u.SerialCode = serial.String
		u.CreatedOn = createdOn.Format(time.RFC3339)
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *unitRepository) UpdateStatus(ctx context.Context, id int32, status domain.UnitStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE units SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "unit", ID: id}
	}
	return nil
}

func (r *unitRepository) CountByStatus(ctx context.Context, equipmentID int32, status domain.UnitStatus) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM units WHERE equipment_id = $1 AND status = $2`,
		equipmentID, status).Scan(&count)
	return count, err
}

// UpdateStatusForOrder flips every unit assigned to the order's active items,
// used by lifecycle side effects (pickup, return, cancellation).
func (r *unitRepository) UpdateStatusForOrder(ctx context.Context, orderID int32, status domain.UnitStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE units SET status = $1
		WHERE id IN (SELECT unit_id FROM order_items WHERE order_id = $2 AND status = 'ACTIVE')`,
		status, orderID)
	return err
}

// Delete removes the unit and decrements the equipment total in one
// transaction. Units with reservation history are refused.
func (r *unitRepository) Delete(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var hasHistory bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM order_items WHERE unit_id = $1)`, id).Scan(&hasHistory)
	if err != nil {
		return err
	}
	if hasHistory {
		return &domain.ConflictError{Message: "unit has reservation history and cannot be removed"}
	}

	var equipmentID int32
	err = tx.QueryRowContext(ctx, `DELETE FROM units WHERE id = $1 RETURNING equipment_id`, id).Scan(&equipmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Entity: "unit", ID: id}
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE equipment SET total_units = total_units - 1 WHERE id = $1`, equipmentID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *unitRepository) HasReservationHistory(ctx context.Context, id int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM order_items WHERE unit_id = $1)`, id).Scan(&exists)
	return exists, err
}
