package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"locagora-backend/internal/domain"
	"locagora-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (name, description, category, daily_price_cents, total_units, created_on)
	          VALUES ($1, $2, $3, $4, 0, $5) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, eq.Name, eq.Description, eq.Category, eq.DailyPriceCents, now).Scan(&eq.ID); err != nil {
		return err
	}
	eq.TotalUnits = 0
	eq.CreatedOn = now.Format(time.RFC3339)
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	var createdOn time.Time
	query := `SELECT id, name, description, category, daily_price_cents, total_units, created_on
	          FROM equipment WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&eq.ID, &eq.Name, &eq.Description, &eq.Category, &eq.DailyPriceCents, &eq.TotalUnits, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	if err != nil {
		return nil, err
	}
	eq.CreatedOn = createdOn.Format(time.RFC3339)
	return eq, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipment SET name=$1, description=$2, category=$3, daily_price_cents=$4
	          WHERE id=$5 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, eq.Name, eq.Description, eq.Category, eq.DailyPriceCents, eq.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "equipment", ID: eq.ID}
	}
	return nil
}

// Delete soft-deletes the SKU. Equipment with units is refused at the service
// layer; equipment with order history is never hard-deleted.
func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE equipment SET deleted_on = $1 WHERE id = $2 AND deleted_on IS NULL`, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: "equipment", ID: id}
	}
	return nil
}

func (r *equipmentRepository) List(ctx context.Context, category string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, name, description, category, daily_price_cents, total_units, created_on
	          FROM equipment WHERE deleted_on IS NULL`

	args := []interface{}{}
	argIdx := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		var createdOn time.Time
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Description, &eq.Category, &eq.DailyPriceCents, &eq.TotalUnits, &createdOn); err != nil {
			return nil, 0, err
		}
		eq.CreatedOn = createdOn.Format(time.RFC3339)
		list = append(list, eq)
	}
	return list, count, rows.Err()
}
