// controllers/reminder.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"salonpro-dashboard/config"
	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type ReminderController struct {
	// Reminders is nil when no SMS provider is configured.
	Reminders *services.ReminderService
}

type ReminderTemplateInput struct {
	Message  string `json:"message" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

type reminderTemplateResponse struct {
	Message      string   `json:"message"`
	IsActive     bool     `json:"isActive"`
	Placeholders []string `json:"placeholders"`
}

var reminderPlaceholders = []string{"[CustomerName]", "[ServiceName]", "[SalonName]", "[Date]", "[Time]"}

func (rc *ReminderController) GetTemplate(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	template, err := services.LoadReminderTemplate(config.DB, salonID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load reminder template")
		return
	}
	c.JSON(http.StatusOK, reminderTemplateResponse{
		Message:      template.Message,
		IsActive:     template.IsActive,
		Placeholders: reminderPlaceholders,
	})
}

func (rc *ReminderController) UpdateTemplate(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var input ReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	template := models.ReminderTemplate{SalonID: salonID, Message: message, IsActive: true}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}
	err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "salon_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"message", "is_active", "updated_at"}),
	}).Create(&template).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save reminder template")
		return
	}
	c.JSON(http.StatusOK, reminderTemplateResponse{
		Message:      template.Message,
		IsActive:     template.IsActive,
		Placeholders: reminderPlaceholders,
	})
}

func (rc *ReminderController) ListLogs(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		utils.RespondWithError(c, http.StatusBadRequest, "limit must be between 1 and 500")
		return
	}

	var logs []models.ReminderLog
	query := config.DB.Where("salon_id = ?", salonID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("sent_at desc").Limit(limit).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load reminder logs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": len(logs)})
}

// RunNow sends tomorrow's reminders for the signed-in salon immediately.
func (rc *ReminderController) RunNow(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	if rc.Reminders == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Reminders are not configured")
		return
	}
	salonName := ""
	if salon := utils.CurrentSession(c).Salon(); salon != nil {
		salonName = salon.Name
	}

	sent, err := rc.Reminders.ProcessSalonReminders(c.Request.Context(), salonID, salonName, utils.BackendToken(c))
	if err != nil {
		respondBackendError(c, err, "Failed to send reminders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}
