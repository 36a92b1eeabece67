// controllers/booking.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Backend  *services.BackendClient
	Location *time.Location
}

// ListBookings fetches the salon's bookings and narrows them by status,
// free-text query and day.
func (bc *BookingController) ListBookings(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}

	filter := utils.BookingFilter{
		Status: models.BookingStatus(c.Query("status")),
		Query:  c.Query("q"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status: "+string(filter.Status))
		return
	}
	if day := c.Query("date"); day != "" {
		loc := bc.Location
		if loc == nil {
			loc = time.Local
		}
		t, err := utils.ParseDay(day, loc)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		filter.Day = t
	}

	bookings, err := bc.Backend.ListBookings(c.Request.Context(), utils.BackendToken(c), salonID)
	if err != nil {
		respondBackendError(c, err, "Failed to retrieve bookings")
		return
	}

	filtered := utils.FilterBookings(bookings, filter)
	c.JSON(http.StatusOK, gin.H{
		"bookings": filtered,
		"total":    len(filtered),
		"counts":   utils.CountByStatus(bookings),
	})
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	booking, err := bc.Backend.GetBooking(c.Request.Context(), utils.BackendToken(c), c.Param("id"))
	if err != nil {
		respondBackendError(c, err, "Failed to retrieve booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	bc.transition(c, bc.Backend.ConfirmBooking, "Failed to confirm booking")
}

func (bc *BookingController) CompleteBooking(c *gin.Context) {
	bc.transition(c, bc.Backend.CompleteBooking, "Failed to complete booking")
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	bc.transition(c, bc.Backend.CancelBooking, "Failed to cancel booking")
}

type bookingTransition func(ctx context.Context, token, bookingID string) (*models.Booking, error)

func (bc *BookingController) transition(c *gin.Context, call bookingTransition, failure string) {
	booking, err := call(c.Request.Context(), utils.BackendToken(c), c.Param("id"))
	if err != nil {
		respondBackendError(c, err, failure)
		return
	}
	c.JSON(http.StatusOK, booking)
}
