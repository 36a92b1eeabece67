// controllers/staff.go
package controllers

import (
	"net/http"

	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
)

type StaffController struct {
	Backend *services.BackendClient
}

func (sc *StaffController) ListStaff(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}

	staff, err := sc.Backend.ListStaff(c.Request.Context(), utils.BackendToken(c), salonID)
	if err != nil {
		respondBackendError(c, err, "Failed to retrieve staff")
		return
	}

	filtered := utils.FilterStaff(staff, c.Query("q"), c.Query("role"))
	c.JSON(http.StatusOK, gin.H{"staff": filtered, "total": len(filtered)})
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var input models.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	body := gin.H{
		"salonId":      salonID,
		"name":         input.Name,
		"email":        input.Email,
		"phone":        input.Phone,
		"role":         input.Role,
		"availability": input.Availability,
	}
	member, err := sc.Backend.CreateStaff(c.Request.Context(), utils.BackendToken(c), body)
	if err != nil {
		respondBackendError(c, err, "Failed to create staff member")
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (sc *StaffController) UpdateStaff(c *gin.Context) {
	var input models.UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	member, err := sc.Backend.UpdateStaff(c.Request.Context(), utils.BackendToken(c), c.Param("id"), input)
	if err != nil {
		respondBackendError(c, err, "Failed to update staff member")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (sc *StaffController) DeleteStaff(c *gin.Context) {
	if err := sc.Backend.DeleteStaff(c.Request.Context(), utils.BackendToken(c), c.Param("id")); err != nil {
		respondBackendError(c, err, "Failed to delete staff member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}
