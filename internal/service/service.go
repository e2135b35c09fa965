package service

import (
	"context"

	"leaningtree-rentals-backend/internal/domain"
)

type ReservationService interface {
	// Create persists a validated request as a pending reservation and
	// dispatches the acknowledgment emails off the request path.
	Create(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error)

	// Transition moves a reservation to newStatus. The transition graph
	// is fully connected: any status may move to any other, including
	// back to pending, so the operator can correct mistakes after the
	// fact. adminNotes, when non-nil, overwrites the stored notes.
	Transition(ctx context.Context, id string, newStatus domain.ReservationStatus, adminNotes *string) (*domain.Reservation, error)

	// UpdateNotes overwrites the admin notes without changing status
	UpdateNotes(ctx context.Context, id string, notes string) (*domain.Reservation, error)

	Get(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)

	// Delete removes a reservation permanently. When notifyCustomer is
	// set, a cancellation email is attempted before the record is gone.
	Delete(ctx context.Context, id string, notifyCustomer bool) error
}

type EmailService interface {
	// Customer notifications
	SendRequestReceived(ctx context.Context, r *domain.Reservation) error
	SendConfirmation(ctx context.Context, r *domain.Reservation) error
	SendDenial(ctx context.Context, r *domain.Reservation, reason string) error
	SendCancellation(ctx context.Context, r *domain.Reservation, reason string) error

	// Operator notifications
	SendNewRequestAlert(ctx context.Context, r *domain.Reservation) error
	SendPendingDigest(ctx context.Context, pending []domain.Reservation) error
}
