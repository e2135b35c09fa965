package repository

import (
	"context"
	"errors"

	"leaningtree-rentals-backend/internal/domain"
)

// ErrNotFound is returned when a reservation id does not exist, so
// callers can distinguish a 404 from a store failure.
var ErrNotFound = errors.New("reservation not found")

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	Delete(ctx context.Context, id string) error

	// Narrow writes used by the detached notification path. They touch
	// only the email-sent flag so they cannot race the columns written
	// by the primary mutation.
	SetRequestEmailSent(ctx context.Context, id string) error
	SetConfirmationEmailSent(ctx context.Context, id string) error
}
