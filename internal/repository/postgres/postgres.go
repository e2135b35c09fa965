package postgres

import (
	"database/sql"

	"leaningtree-rentals-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ReservationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ReservationRepository: NewReservationRepository(db),
	}
}
