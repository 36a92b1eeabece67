package controllers

import (
	"context"
	"errors"
	"net/http"

	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondBackendError forwards a backend-reported failure with its status and
// verbatim message. Transport and decoding failures are logged and answered
// with a generic 502.
func respondBackendError(c *gin.Context, err error, fallback string) {
	if apiErr, ok := services.AsAPIError(err); ok {
		status := apiErr.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		utils.RespondWithError(c, status, apiErr.Message)
		return
	}
	zap.S().Errorw(fallback, "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	_ = c.Error(err)
	if errors.Is(err, context.DeadlineExceeded) {
		utils.RespondWithError(c, http.StatusGatewayTimeout, fallback)
		return
	}
	utils.RespondWithError(c, http.StatusBadGateway, fallback)
}

// requireSalon returns the salon of the signed-in owner.
func requireSalon(c *gin.Context) (string, bool) {
	salonID := utils.SalonID(c)
	if salonID == "" {
		utils.RespondWithError(c, http.StatusNotFound, "No salon found for this account")
		return "", false
	}
	return salonID, true
}
