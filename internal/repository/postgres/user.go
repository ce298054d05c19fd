package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"locagora-backend/internal/domain"
	"locagora-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, phone, password_hash, role, created_on)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.Role, now).Scan(&user.ID)
	if err != nil {
		return err
	}
	user.CreatedOn = now.Format(time.RFC3339)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *userRepository) getBy(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	u := &domain.User{}
	var phone sql.NullString
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, password_hash, role, created_on FROM users `+where, arg).
		Scan(&u.ID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.Role, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "user", ID: 0}
	}
	if err != nil {
		return nil, err
	}
	u.Phone = phone.String
	u.CreatedOn = createdOn.Format(time.RFC3339)
	return u, nil
}
