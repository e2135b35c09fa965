package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leaningtree-rentals-backend/internal/domain"
	"leaningtree-rentals-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, name, email, phone, rental_date, time_slot, cart_type, special_requests, status, admin_notes, confirmed_at, request_email_sent, confirmation_email_sent, created_at, updated_at`

func (r *reservationRepository) Create(ctx context.Context, rv *domain.Reservation) error {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rv.CreatedAt = now
	rv.UpdatedAt = now

	query := `INSERT INTO reservations (` + reservationColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.ExecContext(ctx, query,
		rv.ID, rv.Name, rv.Email, rv.Phone, rv.RentalDate, rv.TimeSlot, rv.CartType,
		rv.SpecialRequests, rv.Status, rv.AdminNotes, rv.ConfirmedAt,
		rv.RequestEmailSent, rv.ConfirmationEmailSent, rv.CreatedAt, rv.UpdatedAt)
	return err
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	rv, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (r *reservationRepository) Update(ctx context.Context, rv *domain.Reservation) error {
	rv.UpdatedAt = time.Now().UTC()
	query := `UPDATE reservations SET status=$1, admin_notes=$2, confirmed_at=$3, updated_at=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, rv.Status, rv.AdminNotes, rv.ConfirmedAt, rv.UpdatedAt, rv.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reservationRepository) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations`

	var args []interface{}
	var clauses []string
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.RentalDate != "" {
		args = append(args, filter.RentalDate)
		clauses = append(clauses, fmt.Sprintf("rental_date = $%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	if filter.SortBy == domain.SortByRentalDate {
		query += " ORDER BY rental_date ASC, created_at DESC"
	} else {
		query += " ORDER BY created_at DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *rv)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reservationRepository) SetRequestEmailSent(ctx context.Context, id string) error {
	query := `UPDATE reservations SET request_email_sent=true, updated_at=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	return err
}

func (r *reservationRepository) SetConfirmationEmailSent(ctx context.Context, id string) error {
	query := `UPDATE reservations SET confirmation_email_sent=true, updated_at=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	rv := &domain.Reservation{}
	var rentalDate time.Time
	err := row.Scan(&rv.ID, &rv.Name, &rv.Email, &rv.Phone, &rentalDate, &rv.TimeSlot, &rv.CartType,
		&rv.SpecialRequests, &rv.Status, &rv.AdminNotes, &rv.ConfirmedAt,
		&rv.RequestEmailSent, &rv.ConfirmationEmailSent, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rv.RentalDate = rentalDate.Format("2006-01-02")
	return rv, nil
}
