// controllers/settings.go
package controllers

import (
	"net/http"

	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Backend *services.BackendClient
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	snapshot, err := sc.Backend.FetchSettings(c.Request.Context(), utils.BackendToken(c), salonID)
	if err != nil {
		respondBackendError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, services.MergeBusinessInfo(snapshot))
}

// UpdateSettings PATCHes only the records whose fields changed and answers
// with the re-read view.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var patch models.BusinessInfoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	for _, phone := range []*string{patch.Phone, patch.OwnerPhone} {
		if phone != nil && *phone != "" && !utils.ValidatePhone(*phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
			return
		}
	}

	ctx := c.Request.Context()
	token := utils.BackendToken(c)

	snapshot, err := sc.Backend.FetchSettings(ctx, token, salonID)
	if err != nil {
		respondBackendError(c, err, "Failed to load settings")
		return
	}
	current := services.MergeBusinessInfo(snapshot)

	plan := services.PlanSettingsUpdate(snapshot, patch)
	if plan.Empty() {
		c.JSON(http.StatusOK, current)
		return
	}
	if err := sc.Backend.ApplySettings(ctx, token, current, plan); err != nil {
		respondBackendError(c, err, "Failed to update settings")
		return
	}

	snapshot, err = sc.Backend.FetchSettings(ctx, token, salonID)
	if err != nil {
		respondBackendError(c, err, "Settings saved but could not be reloaded")
		return
	}
	c.JSON(http.StatusOK, services.MergeBusinessInfo(snapshot))
}
