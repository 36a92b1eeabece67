// controllers/customer.go
package controllers

import (
	"net/http"

	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	Backend *services.BackendClient
}

// ListCustomers returns the salon's customers matching q, with totals over
// the filtered list.
func (cc *CustomerController) ListCustomers(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}

	customers, err := cc.Backend.ListCustomers(c.Request.Context(), utils.BackendToken(c), salonID)
	if err != nil {
		respondBackendError(c, err, "Failed to retrieve customers")
		return
	}

	filtered := utils.FilterCustomers(customers, c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"customers": filtered,
		"summary":   SummarizeCustomers(filtered),
	})
}

func SummarizeCustomers(customers []models.Customer) models.CustomerSummary {
	var spent float64
	var bookings int
	for _, cu := range customers {
		spent += cu.TotalSpent.Float64()
		bookings += cu.TotalBookings
	}
	average := 0.0
	if len(customers) > 0 {
		average = spent / float64(len(customers))
	}
	return models.CustomerSummary{
		TotalCustomers: len(customers),
		TotalSpent:     utils.FormatCurrency(spent),
		AverageSpent:   utils.FormatCurrency(average),
		TotalBookings:  bookings,
	}
}
