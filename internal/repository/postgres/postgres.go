package postgres

import (
	"database/sql"

	"locagora-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.EquipmentRepository
	repository.UnitRepository
	repository.OrderRepository
	repository.CalendarRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		UserRepository:      NewUserRepository(db),
		EquipmentRepository: NewEquipmentRepository(db),
		UnitRepository:      NewUnitRepository(db),
		OrderRepository:     NewOrderRepository(db),
		CalendarRepository:  NewCalendarRepository(db),
	}
}
