package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leaningtree-rentals-backend/internal/domain"
	"leaningtree-rentals-backend/internal/logger"
	"leaningtree-rentals-backend/internal/repository"
)

// ErrInvalidStatus is returned when a transition names a status outside
// the four-value enum.
var ErrInvalidStatus = errors.New("invalid reservation status")

// notifyTimeout bounds each detached email dispatch, which runs on its
// own context after the caller's request has already completed.
const notifyTimeout = 30 * time.Second

type reservationService struct {
	repo     repository.ReservationRepository
	emailSvc EmailService

	// dispatch detaches notification sends from the request path. The
	// default runs them on a goroutine; tests substitute a synchronous
	// dispatch to observe the sends deterministically.
	dispatch func(fn func())

	now func() time.Time
}

type ReservationOption func(*reservationService)

// WithDispatch overrides how notification sends are detached
func WithDispatch(dispatch func(fn func())) ReservationOption {
	return func(s *reservationService) { s.dispatch = dispatch }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) ReservationOption {
	return func(s *reservationService) { s.now = now }
}

func NewReservationService(repo repository.ReservationRepository, emailSvc EmailService, opts ...ReservationOption) ReservationService {
	s := &reservationService{
		repo:     repo,
		emailSvc: emailSvc,
		dispatch: func(fn func()) { go fn() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reservationService) Create(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	rv := &domain.Reservation{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		RentalDate:      req.RentalDate,
		TimeSlot:        domain.TimeSlot(req.TimeSlot),
		CartType:        domain.CartType(req.CartType),
		SpecialRequests: req.SpecialRequests,
		Status:          domain.ReservationStatusPending,
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	// Acknowledgment and operator alert are best effort: the creation
	// already committed and its outcome no longer depends on delivery.
	s.dispatch(func() { s.sendRequestEmails(rv) })

	return rv, nil
}

func (s *reservationService) Transition(ctx context.Context, id string, newStatus domain.ReservationStatus, adminNotes *string) (*domain.Reservation, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rv.Status = newStatus
	if newStatus == domain.ReservationStatusConfirmed && rv.ConfirmedAt == nil {
		// First confirmation time is authoritative; re-confirming later
		// never moves it.
		now := s.now().UTC()
		rv.ConfirmedAt = &now
	}
	if adminNotes != nil {
		rv.AdminNotes = *adminNotes
	}

	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	switch newStatus {
	case domain.ReservationStatusConfirmed:
		s.dispatch(func() { s.sendConfirmationEmail(rv) })
	case domain.ReservationStatusDenied:
		reason := rv.AdminNotes
		s.dispatch(func() { s.sendStatusEmail(rv, "denial", func(ctx context.Context) error { return s.emailSvc.SendDenial(ctx, rv, reason) }) })
	case domain.ReservationStatusCancelled:
		reason := rv.AdminNotes
		s.dispatch(func() { s.sendStatusEmail(rv, "cancellation", func(ctx context.Context) error { return s.emailSvc.SendCancellation(ctx, rv, reason) }) })
	}

	return rv, nil
}

func (s *reservationService) UpdateNotes(ctx context.Context, id string, notes string) (*domain.Reservation, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rv.AdminNotes = notes
	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, fmt.Errorf("update reservation: %w", err)
	}
	return rv, nil
}

func (s *reservationService) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reservationService) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	return s.repo.List(ctx, filter)
}

func (s *reservationService) Delete(ctx context.Context, id string, notifyCustomer bool) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if notifyCustomer {
		reason := rv.AdminNotes
		s.dispatch(func() { s.sendStatusEmail(rv, "cancellation", func(ctx context.Context) error { return s.emailSvc.SendCancellation(ctx, rv, reason) }) })
	}
	return nil
}

// sendRequestEmails attempts the customer acknowledgment and the
// operator alert. The two sends are independent: a failure in one is
// logged and does not stop the other.
func (s *reservationService) sendRequestEmails(rv *domain.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.emailSvc.SendRequestReceived(ctx, rv); err != nil {
		logger.ExternalServiceResult("email", "request_received", err, "reservation_id", rv.ID)
	} else {
		logger.ExternalServiceResult("email", "request_received", nil, "reservation_id", rv.ID)
		if err := s.repo.SetRequestEmailSent(ctx, rv.ID); err != nil {
			logger.Error("Failed to record request email flag", "reservation_id", rv.ID, "error", err)
		}
	}

	if err := s.emailSvc.SendNewRequestAlert(ctx, rv); err != nil {
		logger.ExternalServiceResult("email", "operator_alert", err, "reservation_id", rv.ID)
	} else {
		logger.ExternalServiceResult("email", "operator_alert", nil, "reservation_id", rv.ID)
	}
}

func (s *reservationService) sendConfirmationEmail(rv *domain.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.emailSvc.SendConfirmation(ctx, rv); err != nil {
		logger.ExternalServiceResult("email", "confirmation", err, "reservation_id", rv.ID)
		return
	}
	logger.ExternalServiceResult("email", "confirmation", nil, "reservation_id", rv.ID)
	if err := s.repo.SetConfirmationEmailSent(ctx, rv.ID); err != nil {
		logger.Error("Failed to record confirmation email flag", "reservation_id", rv.ID, "error", err)
	}
}

func (s *reservationService) sendStatusEmail(rv *domain.Reservation, operation string, send func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := send(ctx)
	logger.ExternalServiceResult("email", operation, err, "reservation_id", rv.ID)
}
