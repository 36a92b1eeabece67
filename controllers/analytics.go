// controllers/analytics.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Backend  *services.BackendClient
	Location *time.Location
}

// GetAnalytics answers the analytics page for a named period or a custom
// from/to range, with growth against the period before.
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}

	query := services.PeriodQuery{
		Period:  c.DefaultQuery("period", "week"),
		From:    c.Query("from"),
		To:      c.Query("to"),
		Compare: c.DefaultQuery("compare", "true") != "false",
	}
	result, err := ac.Backend.GetPeriodAnalytics(c.Request.Context(), utils.BackendToken(c), salonID, query, ac.Location)
	if err != nil {
		var rangeErr *services.RangeError
		if errors.As(err, &rangeErr) {
			utils.RespondWithError(c, http.StatusBadRequest, rangeErr.Error())
			return
		}
		respondBackendError(c, err, "Failed to retrieve analytics")
		return
	}

	c.JSON(http.StatusOK, services.BuildAnalyticsReport(query.Period, result.Range, result.Current, result.Previous))
}
