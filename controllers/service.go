// controllers/service.go
package controllers

import (
	"net/http"
	"strconv"

	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type ServiceController struct {
	Backend *services.BackendClient
}

func (sc *ServiceController) ListServices(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}

	var active *bool
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "active must be true or false")
			return
		}
		active = &v
	}

	list, err := sc.Backend.ListServices(c.Request.Context(), utils.BackendToken(c), salonID)
	if err != nil {
		respondBackendError(c, err, "Failed to retrieve services")
		return
	}

	filtered := utils.FilterServices(list, c.Query("q"), c.Query("category"), active)
	c.JSON(http.StatusOK, gin.H{"services": filtered, "total": len(filtered)})
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	body := gin.H{
		"salonId":         salonID,
		"title":           input.Title,
		"description":     input.Description,
		"price":           input.Price,
		"durationMinutes": input.DurationMinutes,
		"category":        input.Category,
	}
	service, err := sc.Backend.CreateService(c.Request.Context(), utils.BackendToken(c), body)
	if err != nil {
		respondBackendError(c, err, "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	var input models.UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := sc.Backend.UpdateService(c.Request.Context(), utils.BackendToken(c), c.Param("id"), input)
	if err != nil {
		respondBackendError(c, err, "Failed to update service")
		return
	}
	c.JSON(http.StatusOK, service)
}

// ToggleService flips the service's active flag. The current value is read
// from the salon's service list since the backend has no single-service read.
func (sc *ServiceController) ToggleService(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	token := utils.BackendToken(c)
	serviceID := c.Param("id")

	list, err := sc.Backend.ListServices(ctx, token, salonID)
	if err != nil {
		respondBackendError(c, err, "Failed to retrieve services")
		return
	}
	var current *models.Service
	for i := range list {
		if list[i].ID == serviceID {
			current = &list[i]
			break
		}
	}
	if current == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	service, err := sc.Backend.UpdateService(ctx, token, serviceID, gin.H{"isActive": !current.IsActive})
	if err != nil {
		respondBackendError(c, err, "Failed to update service")
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	if err := sc.Backend.DeleteService(c.Request.Context(), utils.BackendToken(c), c.Param("id")); err != nil {
		respondBackendError(c, err, "Failed to delete service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
