package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"leaningtree-rentals-backend/internal/domain"
	"leaningtree-rentals-backend/internal/repository"
	"leaningtree-rentals-backend/internal/security"
	"leaningtree-rentals-backend/internal/service"
	"leaningtree-rentals-backend/internal/utils"
)

// Handler exposes the public reservation endpoint and the admin review
// endpoints over HTTP.
type Handler struct {
	reservations service.ReservationService
	tokens       security.TokenManager
	adminEmail   string
	adminHash    string
	windows      []domain.ShowWindow
	pricing      utils.PricingTable
	now          func() time.Time
}

func NewHandler(
	reservations service.ReservationService,
	tokens security.TokenManager,
	adminEmail, adminPasswordHash string,
	windows []domain.ShowWindow,
	pricing utils.PricingTable,
) *Handler {
	return &Handler{
		reservations: reservations,
		tokens:       tokens,
		adminEmail:   adminEmail,
		adminHash:    adminPasswordHash,
		windows:      windows,
		pricing:      pricing,
		now:          time.Now,
	}
}

func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.handleHealth).Methods("GET")

	// Public surface
	r.HandleFunc("/api/reservations", h.handleCreateReservation).Methods("POST")
	r.HandleFunc("/api/admin/login", h.handleAdminLogin).Methods("POST")

	// Admin surface
	r.HandleFunc("/api/reservations", h.requireAdmin(h.handleListReservations)).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.requireAdmin(h.handleGetReservation)).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.requireAdmin(h.handleUpdateReservation)).Methods("PATCH")
	r.HandleFunc("/api/reservations/{id}", h.requireAdmin(h.handleDeleteReservation)).Methods("DELETE")

	return r
}

// reservationPayload decorates a stored reservation with its price,
// which is derived from the pricing table at read time rather than
// persisted.
type reservationPayload struct {
	domain.Reservation
	Price int32 `json:"price"`
}

func (h *Handler) payload(rv domain.Reservation) reservationPayload {
	return reservationPayload{Reservation: rv, Price: h.pricing.Price(rv.CartType, rv.TimeSlot)}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req domain.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	normalized, fieldErrs := utils.ValidateReservationRequest(req, h.now(), h.windows)
	if fieldErrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": fieldErrs})
		return
	}

	rv, err := h.reservations.Create(r.Context(), normalized)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create reservation. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      rv.ID,
		"message": "Reservation request submitted successfully",
	})
}

func (h *Handler) handleListReservations(w http.ResponseWriter, r *http.Request) {
	filter := domain.ReservationFilter{SortBy: domain.SortByCreatedAt}

	if status := r.URL.Query().Get("status"); status != "" && status != "all" {
		if !domain.ReservationStatus(status).Valid() {
			writeError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = domain.ReservationStatus(status)
	}

	if date := r.URL.Query().Get("date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date filter")
			return
		}
		filter.RentalDate = date
	}

	if r.URL.Query().Get("sort") == string(domain.SortByRentalDate) {
		filter.SortBy = domain.SortByRentalDate
	}

	reservations, err := h.reservations.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}

	payloads := make([]reservationPayload, 0, len(reservations))
	for _, rv := range reservations {
		payloads = append(payloads, h.payload(rv))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reservations": payloads})
}

func (h *Handler) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rv, err := h.reservations.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Reservation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch reservation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reservation": h.payload(*rv)})
}

type updateReservationRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

func (h *Handler) handleUpdateReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var rv *domain.Reservation
	var err error
	switch {
	case req.Status != nil:
		rv, err = h.reservations.Transition(r.Context(), id, domain.ReservationStatus(*req.Status), req.AdminNotes)
	case req.AdminNotes != nil:
		rv, err = h.reservations.UpdateNotes(r.Context(), id, *req.AdminNotes)
	default:
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Reservation not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update reservation. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "reservation": h.payload(*rv)})
}

func (h *Handler) handleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	notify := r.URL.Query().Get("notify") == "true"

	if err := h.reservations.Delete(r.Context(), id, notify); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Reservation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete reservation. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
