package ginserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gin "github.com/gin-gonic/gin"

	bookingservice "realty/internal/app/services/booking"
	domainproperty "realty/internal/domain/property"
	"realty/internal/infra/storage/memory"
)

func newBookingRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	properties := memory.NewPropertyRepository()
	p, err := domainproperty.New(domainproperty.CreateParams{
		ID:           "prop-1",
		Host:         "host-1",
		Title:        "Canal-side loft",
		Address:      domainproperty.Address{Line1: "Prinsengracht 12", City: "Amsterdam", Country: "NL"},
		PriceCents:   150_00,
		ListingType:  domainproperty.ListingRent,
		RentDuration: domainproperty.DurationFlexible,
	})
	if err != nil {
		t.Fatalf("build property: %v", err)
	}
	if err := p.Publish(time.Time{}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := properties.Save(context.Background(), p); err != nil {
		t.Fatalf("save property: %v", err)
	}

	service := &bookingservice.Service{
		UoW: memory.Factory{PropertyRepo: properties, BookingRepo: memory.NewBookingRepository()},
		Now: func() time.Time {
			return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		},
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setPrincipal(c, principal{ID: "guest-1", Email: "guest@example.com", Roles: []string{"guest"}})
		c.Next()
	})
	router.POST("/bookings", BookingHandler{Service: service}.Create)
	return router
}

func postBooking(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeReason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Accepted bool   `json:"accepted"`
		Reason   string `json:"reason"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Reason
}

func TestCreateBookingRejectionStatuses(t *testing.T) {
	router := newBookingRouter(t)

	// Zero-length stay is the guest's mistake, not a calendar conflict.
	rec := postBooking(t, router, `{"property_id":"prop-1","check_in":"2025-02-10","check_out":"2025-02-10"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid range: expected 400, got %d body %s", rec.Code, rec.Body.String())
	}
	if reason := decodeReason(t, rec); reason != "INVALID_RANGE" {
		t.Fatalf("expected INVALID_RANGE, got %q", reason)
	}

	rec = postBooking(t, router, `{"property_id":"prop-1","check_in":"not-a-date","check_out":"2025-02-14"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed date: expected 400, got %d", rec.Code)
	}
	if reason := decodeReason(t, rec); reason != "MALFORMED_INPUT" {
		t.Fatalf("expected MALFORMED_INPUT, got %q", reason)
	}

	rec = postBooking(t, router, `{"property_id":"prop-1","check_in":"2025-02-10","check_out":"2025-02-14"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid stay: expected 201, got %d body %s", rec.Code, rec.Body.String())
	}

	// Same guest, same property: an outstanding request is a conflict.
	rec = postBooking(t, router, `{"property_id":"prop-1","check_in":"2025-03-01","check_out":"2025-03-05"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate request: expected 409, got %d body %s", rec.Code, rec.Body.String())
	}
	if reason := decodeReason(t, rec); reason != "DUPLICATE_REQUEST" {
		t.Fatalf("expected DUPLICATE_REQUEST, got %q", reason)
	}
}
