package domain

import "time"

type TimeSlot string

const (
	TimeSlotAllDay    TimeSlot = "all_day"
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
)

func (s TimeSlot) Valid() bool {
	switch s {
	case TimeSlotAllDay, TimeSlotMorning, TimeSlotAfternoon:
		return true
	}
	return false
}

type CartType string

const (
	CartTypeFourPassenger CartType = "4_passenger"
	CartTypeSixPassenger  CartType = "6_passenger"
)

func (c CartType) Valid() bool {
	return c == CartTypeFourPassenger || c == CartTypeSixPassenger
}

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusDenied    ReservationStatus = "denied"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusDenied, ReservationStatusCancelled:
		return true
	}
	return false
}

// Reservation is a single customer's request to rent one golf cart for
// one date and time slot. RentalDate is a yyyy-mm-dd calendar date;
// price is never stored, it is looked up from the pricing table at
// read time.
type Reservation struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	RentalDate      string   `json:"rental_date"`
	TimeSlot        TimeSlot `json:"time_slot"`
	CartType        CartType `json:"cart_type"`
	SpecialRequests string   `json:"special_requests,omitempty"`

	Status     ReservationStatus `json:"status"`
	AdminNotes string            `json:"admin_notes,omitempty"`
	// ConfirmedAt records the first transition into confirmed and is
	// never cleared or overwritten afterwards.
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`

	RequestEmailSent      bool `json:"request_email_sent"`
	ConfirmationEmailSent bool `json:"confirmation_email_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReservationRequest is the raw public form payload, prior to
// validation and normalization.
type ReservationRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	RentalDate         string `json:"rental_date"`
	TimeSlot           string `json:"time_slot"`
	CartType           string `json:"cart_type"`
	SpecialRequests    string `json:"special_requests,omitempty"`
	PolicyAcknowledged bool   `json:"policy_acknowledged"`
}

// ShowWindow is an inclusive yyyy-mm-dd date range during which online
// booking is permitted.
type ShowWindow struct {
	Name  string
	Start string
	End   string
}

// Contains reports whether date (yyyy-mm-dd) falls inside the window,
// endpoints included. Lexicographic comparison is correct for ISO dates.
func (w ShowWindow) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

type ReservationSort string

const (
	SortByCreatedAt  ReservationSort = "created_at"
	SortByRentalDate ReservationSort = "rental_date"
)

// ReservationFilter narrows List results. Zero values mean "no filter".
type ReservationFilter struct {
	Status     ReservationStatus
	RentalDate string
	SortBy     ReservationSort
}
