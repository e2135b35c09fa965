package jobs

import (
	"context"
	"time"

	"leaningtree-rentals-backend/internal/domain"
	"leaningtree-rentals-backend/internal/logger"
)

// ExpirePastPending cancels reservations that were still pending after
// their rental date passed. The customer never picked up a cart, so no
// email is sent; the record stays visible under the cancelled filter.
func (jr *JobRunner) ExpirePastPending() {
	jr.runWithRecovery("ExpirePastPending", func() {
		ctx := context.Background()

		query := `
			UPDATE reservations
			SET status = 'cancelled',
			    updated_at = NOW()
			WHERE status = 'pending'
			  AND rental_date < $1
			RETURNING id, name, rental_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to expire past pending reservations", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, name string
			var rentalDate time.Time
			if err := rows.Scan(&id, &name, &rentalDate); err != nil {
				logger.Error("Failed to scan expired reservation", "error", err)
				continue
			}
			count++
			logger.Debug("Cancelled stale pending reservation",
				"reservation_id", id,
				"name", name,
				"rental_date", rentalDate.Format("2006-01-02"))
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired reservations", "error", err)
			return
		}

		logger.Info("Expired past pending reservations", "count", count)
	})
}

// SendPendingDigest emails the operator a summary of reservations
// awaiting review. Nothing is sent when the queue is empty.
func (jr *JobRunner) SendPendingDigest() {
	jr.runWithRecovery("SendPendingDigest", func() {
		ctx := context.Background()

		pending, err := jr.store.List(ctx, domain.ReservationFilter{
			Status: domain.ReservationStatusPending,
			SortBy: domain.SortByRentalDate,
		})
		if err != nil {
			logger.Error("Failed to list pending reservations", "error", err)
			return
		}

		if len(pending) == 0 {
			logger.Info("No pending reservations, skipping digest")
			return
		}

		if err := jr.email.SendPendingDigest(ctx, pending); err != nil {
			logger.ExternalServiceResult("email", "pending_digest", err, "count", len(pending))
			return
		}
		logger.Info("Sent pending reservation digest", "count", len(pending))
	})
}
