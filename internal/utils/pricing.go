package utils

import (
	"fmt"
	"strings"
	"time"

	"leaningtree-rentals-backend/internal/domain"
)

// PricingOption is one bookable slot for a cart class
type PricingOption struct {
	TimeSlot domain.TimeSlot
	Label    string
	Hours    string
	Price    int32 // whole dollars, paid in person at pickup
}

// CartPricing groups the slot options for one cart class
type CartPricing struct {
	CartType            domain.CartType
	Label               string
	Capacity            int
	Options             []PricingOption
	LimitedAvailability bool
}

// PricingTable maps (cart type, time slot) to a price. It is injected
// read-only configuration, not persisted per reservation.
type PricingTable []CartPricing

// DefaultPricing returns the published rate card
func DefaultPricing() PricingTable {
	return PricingTable{
		{
			CartType: domain.CartTypeFourPassenger,
			Label:    "4 Passenger Cart",
			Capacity: 4,
			Options: []PricingOption{
				{TimeSlot: domain.TimeSlotAllDay, Label: "All Day", Hours: "9am - 6pm", Price: 175},
				{TimeSlot: domain.TimeSlotMorning, Label: "Morning", Hours: "9am - 1:30pm", Price: 125},
				{TimeSlot: domain.TimeSlotAfternoon, Label: "Afternoon", Hours: "1:30pm - 6pm", Price: 125},
			},
		},
		{
			CartType: domain.CartTypeSixPassenger,
			Label:    "6 Passenger Cart",
			Capacity: 6,
			Options: []PricingOption{
				{TimeSlot: domain.TimeSlotAllDay, Label: "All Day", Hours: "9am - 6pm", Price: 325},
				{TimeSlot: domain.TimeSlotMorning, Label: "Morning", Hours: "9am - 1:30pm", Price: 225},
				{TimeSlot: domain.TimeSlotAfternoon, Label: "Afternoon", Hours: "1:30pm - 6pm", Price: 225},
			},
			LimitedAvailability: true,
		},
	}
}

// Price returns the rate for a cart and slot, or 0 when the pair is not
// in the table. It never panics: it is also called for display on rows
// stored before a pricing change.
func (t PricingTable) Price(cart domain.CartType, slot domain.TimeSlot) int32 {
	for _, c := range t {
		if c.CartType != cart {
			continue
		}
		for _, o := range c.Options {
			if o.TimeSlot == slot {
				return o.Price
			}
		}
	}
	return 0
}

// TimeSlotLabel returns the customer-facing label for a time slot
func TimeSlotLabel(slot domain.TimeSlot) string {
	switch slot {
	case domain.TimeSlotAllDay:
		return "All Day (9am - 6pm)"
	case domain.TimeSlotMorning:
		return "Morning (9am - 1:30pm)"
	case domain.TimeSlotAfternoon:
		return "Afternoon (1:30pm - 6pm)"
	}
	return string(slot)
}

// CartTypeLabel returns the customer-facing label for a cart class
func CartTypeLabel(cart domain.CartType) string {
	switch cart {
	case domain.CartTypeFourPassenger:
		return "4 Passenger Cart"
	case domain.CartTypeSixPassenger:
		return "6 Passenger Cart"
	}
	return string(cart)
}

// FormatPrice renders a whole-dollar price for display
func FormatPrice(price int32) string {
	return fmt.Sprintf("$%d", price)
}

// FormatDate renders a yyyy-mm-dd date as "Saturday, March 14, 2026".
// A trailing timestamp (as returned by some drivers) is stripped first.
// Unparseable input is returned as-is.
func FormatDate(dateStr string) string {
	datePart, _, _ := strings.Cut(dateStr, "T")
	d, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return dateStr
	}
	return d.Format("Monday, January 2, 2006")
}

// FormatPhone normalizes a 10-digit phone number to XXX-XXX-XXXX.
// Anything else is returned unchanged.
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()
	if len(cleaned) != 10 {
		return phone
	}
	return cleaned[0:3] + "-" + cleaned[3:6] + "-" + cleaned[6:]
}
