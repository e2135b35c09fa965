package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpapi "leaningtree-rentals-backend/internal/api/http"
	"leaningtree-rentals-backend/internal/domain"
	"leaningtree-rentals-backend/internal/repository"
	"leaningtree-rentals-backend/internal/security"
	"leaningtree-rentals-backend/internal/service"
	"leaningtree-rentals-backend/internal/utils"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Create(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) Transition(ctx context.Context, id string, newStatus domain.ReservationStatus, adminNotes *string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, newStatus, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) UpdateNotes(ctx context.Context, id string, notes string) (*domain.Reservation, error) {
	args := m.Called(ctx, id, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationService) Delete(ctx context.Context, id string, notifyCustomer bool) error {
	args := m.Called(ctx, id, notifyCustomer)
	return args.Error(0)
}

const (
	testAdminEmail    = "admin@leaningtreerentals.com"
	testAdminPassword = "correct horse battery staple"
)

// testWindow covers the next two weeks so requests built against the
// real clock stay inside a bookable range
func testWindow() domain.ShowWindow {
	start := time.Now().UTC()
	return domain.ShowWindow{
		Name:  "Test Show",
		Start: start.Format("2006-01-02"),
		End:   start.AddDate(0, 0, 13).Format("2006-01-02"),
	}
}

func newTestHandler(t *testing.T, svc service.ReservationService) http.Handler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := security.NewTokenManager("test-secret-key-with-enough-length-for-hs256", 60)
	h := httpapi.NewHandler(svc, tokens, testAdminEmail, string(hash), []domain.ShowWindow{testWindow()}, utils.DefaultPricing())
	return h.Routes()
}

func adminToken(t *testing.T) string {
	t.Helper()
	tokens := security.NewTokenManager("test-secret-key-with-enough-length-for-hs256", 60)
	token, err := tokens.GenerateAdminToken(testAdminEmail)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func bookableRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"name":                "Jane Doe",
		"email":               "jane@example.com",
		"phone":               "979-208-7250",
		"rental_date":         time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02"),
		"time_slot":           "all_day",
		"cart_type":           "6_passenger",
		"policy_acknowledged": true,
	}
}

func TestHandler_CreateReservation(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Create", mock.Anything, mock.AnythingOfType("domain.ReservationRequest")).
			Return(&domain.Reservation{ID: "res-1", Status: domain.ReservationStatusPending}, nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "POST", "/api/reservations", "", bookableRequestBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "res-1", resp["id"])
	})

	t.Run("Validation Errors", func(t *testing.T) {
		svc := new(MockReservationService)
		router := newTestHandler(t, svc)

		body := bookableRequestBody()
		body["email"] = "not-an-email"
		body["policy_acknowledged"] = false

		rec := doJSON(t, router, "POST", "/api/reservations", "", body)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors, "email")
		assert.Contains(t, resp.Errors, "policy_acknowledged")
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		svc := new(MockReservationService)
		router := newTestHandler(t, svc)

		req := httptest.NewRequest("POST", "/api/reservations", bytes.NewBufferString("{broken"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_AdminLogin(t *testing.T) {
	svc := new(MockReservationService)
	router := newTestHandler(t, svc)

	t.Run("Success", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/admin/login", "", map[string]string{
			"email":    testAdminEmail,
			"password": testAdminPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["token"])
	})

	t.Run("Email Case Insensitive", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/admin/login", "", map[string]string{
			"email":    "Admin@LeaningTreeRentals.com",
			"password": testAdminPassword,
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/admin/login", "", map[string]string{
			"email":    testAdminEmail,
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Wrong Email", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/admin/login", "", map[string]string{
			"email":    "someone@else.com",
			"password": testAdminPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_AdminEndpointsRequireToken(t *testing.T) {
	svc := new(MockReservationService)
	router := newTestHandler(t, svc)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/reservations"},
		{"GET", "/api/reservations/res-1"},
		{"PATCH", "/api/reservations/res-1"},
		{"DELETE", "/api/reservations/res-1"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := doJSON(t, router, p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = doJSON(t, router, p.method, p.path, "bogus-token", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
	svc.AssertExpectations(t)
}

func TestHandler_ListReservations(t *testing.T) {
	t.Run("Success With Derived Price", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("List", mock.Anything, domain.ReservationFilter{SortBy: domain.SortByCreatedAt}).
			Return([]domain.Reservation{
				{ID: "res-1", CartType: domain.CartTypeSixPassenger, TimeSlot: domain.TimeSlotAllDay, Status: domain.ReservationStatusPending},
			}, nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "GET", "/api/reservations", adminToken(t), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Reservations []struct {
				ID    string `json:"id"`
				Price int32  `json:"price"`
			} `json:"reservations"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Reservations, 1)
		assert.Equal(t, int32(325), resp.Reservations[0].Price)
	})

	t.Run("Status Filter", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("List", mock.Anything, domain.ReservationFilter{Status: domain.ReservationStatusPending, SortBy: domain.SortByCreatedAt}).
			Return([]domain.Reservation{}, nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "GET", "/api/reservations?status=pending", adminToken(t), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Invalid Status Filter", func(t *testing.T) {
		svc := new(MockReservationService)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "GET", "/api/reservations?status=archived", adminToken(t), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid Date Filter", func(t *testing.T) {
		svc := new(MockReservationService)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "GET", "/api/reservations?date=03-14-2026", adminToken(t), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Sort By Rental Date", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("List", mock.Anything, domain.ReservationFilter{SortBy: domain.SortByRentalDate}).
			Return([]domain.Reservation{}, nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "GET", "/api/reservations?sort=rental_date", adminToken(t), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestHandler_GetReservation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Get", mock.Anything, "res-1").
			Return(&domain.Reservation{ID: "res-1", CartType: domain.CartTypeFourPassenger, TimeSlot: domain.TimeSlotMorning}, nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "GET", "/api/reservations/res-1", adminToken(t), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Reservation struct {
				ID    string `json:"id"`
				Price int32  `json:"price"`
			} `json:"reservation"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "res-1", resp.Reservation.ID)
		assert.Equal(t, int32(125), resp.Reservation.Price)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Get", mock.Anything, "missing").Return(nil, repository.ErrNotFound)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "GET", "/api/reservations/missing", adminToken(t), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_UpdateReservation(t *testing.T) {
	t.Run("Status Transition", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Transition", mock.Anything, "res-1", domain.ReservationStatusConfirmed, (*string)(nil)).
			Return(&domain.Reservation{ID: "res-1", Status: domain.ReservationStatusConfirmed}, nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "PATCH", "/api/reservations/res-1", adminToken(t),
			map[string]string{"status": "confirmed"})
		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Status With Notes", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Transition", mock.Anything, "res-1", domain.ReservationStatusDenied, mock.AnythingOfType("*string")).
			Return(&domain.Reservation{ID: "res-1", Status: domain.ReservationStatusDenied, AdminNotes: "fully booked"}, nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "PATCH", "/api/reservations/res-1", adminToken(t),
			map[string]string{"status": "denied", "admin_notes": "fully booked"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Notes Only", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("UpdateNotes", mock.Anything, "res-1", "follow up Monday").
			Return(&domain.Reservation{ID: "res-1", AdminNotes: "follow up Monday"}, nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "PATCH", "/api/reservations/res-1", adminToken(t),
			map[string]string{"admin_notes": "follow up Monday"})
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No Fields", func(t *testing.T) {
		svc := new(MockReservationService)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "PATCH", "/api/reservations/res-1", adminToken(t), map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid Status", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Transition", mock.Anything, "res-1", domain.ReservationStatus("archived"), (*string)(nil)).
			Return(nil, service.ErrInvalidStatus)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "PATCH", "/api/reservations/res-1", adminToken(t),
			map[string]string{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Transition", mock.Anything, "missing", domain.ReservationStatusConfirmed, (*string)(nil)).
			Return(nil, repository.ErrNotFound)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "PATCH", "/api/reservations/missing", adminToken(t),
			map[string]string{"status": "confirmed"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_DeleteReservation(t *testing.T) {
	t.Run("Without Notify", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Delete", mock.Anything, "res-1", false).Return(nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "DELETE", "/api/reservations/res-1", adminToken(t), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("With Notify", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Delete", mock.Anything, "res-1", true).Return(nil)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "DELETE", "/api/reservations/res-1?notify=true", adminToken(t), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := new(MockReservationService)
		svc.On("Delete", mock.Anything, "missing", false).Return(repository.ErrNotFound)
		router := newTestHandler(t, svc)

		rec := doJSON(t, router, "DELETE", "/api/reservations/missing", adminToken(t), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_Healthz(t *testing.T) {
	svc := new(MockReservationService)
	router := newTestHandler(t, svc)

	rec := doJSON(t, router, "GET", "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
