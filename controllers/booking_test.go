package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookingsJSON = `[
	{"id":"b1","status":"CONFIRMED","startTime":"2024-05-10T09:00:00Z","user":{"name":"Anna"},"service":{"title":"Haircut"}},
	{"id":"b2","status":"PENDING","startTime":"2024-05-10T08:00:00Z","user":{"name":"Ben"},"service":{"title":"Coloring"}},
	{"id":"b3","status":"CONFIRMED","startTime":"2024-05-11T10:00:00Z","user":{"name":"Cara"},"service":{"title":"Manicure"}}
]`

func bookingEnv(t *testing.T) *testEnv {
	env := newTestEnv(t)
	bc := BookingController{Backend: env.backend.client(), Location: time.UTC}
	env.api.GET("/bookings", bc.ListBookings)
	env.api.POST("/bookings/:id/confirm", bc.ConfirmBooking)
	env.api.POST("/bookings/:id/cancel", bc.CancelBooking)
	env.backend.handle(http.MethodGet, "/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s1", r.URL.Query().Get("salonId"))
		assert.Equal(t, "Bearer "+testUpstream, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(bookingsJSON))
	})
	return env
}

func bookingIDs(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	var ids []string
	for _, b := range body["bookings"].([]interface{}) {
		ids = append(ids, b.(map[string]interface{})["id"].(string))
	}
	return ids
}

func TestListBookingsStatusFilter(t *testing.T) {
	env := bookingEnv(t)

	w := env.do(t, http.MethodGet, "/api/bookings?status=CONFIRMED", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, []string{"b1", "b3"}, bookingIDs(t, body))
	assert.Equal(t, float64(2), body["counts"].(map[string]interface{})["CONFIRMED"])

	w = env.do(t, http.MethodGet, "/api/bookings?status=confirmed", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookingsDateAndQuery(t *testing.T) {
	env := bookingEnv(t)

	w := env.do(t, http.MethodGet, "/api/bookings?date=2024-05-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"b2", "b1"}, bookingIDs(t, decodeBody(t, w)))

	w = env.do(t, http.MethodGet, "/api/bookings?q=manicure", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"b3"}, bookingIDs(t, decodeBody(t, w)))

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/bookings?date=10-05-2024", nil).Code)
}

func TestBookingTransitionsForwardBackendErrors(t *testing.T) {
	env := bookingEnv(t)
	env.backend.respond(http.MethodPatch, "/api/bookings/b1/confirm", http.StatusOK, `{"id":"b1","status":"CONFIRMED"}`)
	env.backend.respond(http.MethodPatch, "/api/bookings/b2", http.StatusBadRequest,
		`{"message":"Booking cannot be cancelled less than 2 hours before start"}`)

	w := env.do(t, http.MethodPost, "/api/bookings/b1/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CONFIRMED", decodeBody(t, w)["status"])

	w = env.do(t, http.MethodPost, "/api/bookings/b2/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Booking cannot be cancelled less than 2 hours before start", decodeBody(t, w)["error"])
}
