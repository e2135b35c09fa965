package utils

import (
	"regexp"
	"strings"
	"time"

	"leaningtree-rentals-backend/internal/domain"
)

// FieldErrors maps a form field name to a human-readable message.
// General errors not tied to one field go under GeneralErrorKey.
type FieldErrors map[string]string

const GeneralErrorKey = "_"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phonePattern permits digits, whitespace, hyphens, and parentheses
var phonePattern = regexp.MustCompile(`^[0-9\s()\-]+$`)

// ValidateReservationRequest checks a public reservation request
// against field format rules and date eligibility. It is pure over
// (request, today, show windows): all field errors are collected in one
// pass and the returned request has its text fields trimmed. A nil
// error map means the request is accepted.
func ValidateReservationRequest(req domain.ReservationRequest, today time.Time, windows []domain.ShowWindow) (domain.ReservationRequest, FieldErrors) {
	errs := FieldErrors{}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.RentalDate = strings.TrimSpace(req.RentalDate)
	req.SpecialRequests = strings.TrimSpace(req.SpecialRequests)

	if len(req.Name) < 2 {
		errs["name"] = "Please enter your full name."
	}

	if req.Email == "" || !emailPattern.MatchString(req.Email) {
		errs["email"] = "Please enter a valid email address."
	}

	if req.Phone == "" || !phonePattern.MatchString(req.Phone) || countDigits(req.Phone) < 10 {
		errs["phone"] = "Please enter a valid phone number with at least 10 digits."
	}

	if req.RentalDate == "" {
		errs["rental_date"] = "Please select a rental date."
	} else if _, err := time.Parse("2006-01-02", req.RentalDate); err != nil {
		errs["rental_date"] = "Please enter a valid date."
	} else if req.RentalDate < today.Format("2006-01-02") {
		errs["rental_date"] = "The rental date cannot be in the past."
	} else if !insideAnyWindow(req.RentalDate, windows) {
		errs["rental_date"] = "Online reservations are only available during show dates. Please contact us directly to book this date."
	}

	if !domain.TimeSlot(req.TimeSlot).Valid() {
		errs["time_slot"] = "Please choose a rental time."
	}

	if !domain.CartType(req.CartType).Valid() {
		errs["cart_type"] = "Please choose a cart type."
	}

	if !req.PolicyAcknowledged {
		errs["policy_acknowledged"] = "You must acknowledge the rental policies to continue."
	}

	if len(errs) == 0 {
		return req, nil
	}
	return req, errs
}

func insideAnyWindow(date string, windows []domain.ShowWindow) bool {
	for _, w := range windows {
		if w.Contains(date) {
			return true
		}
	}
	return false
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
