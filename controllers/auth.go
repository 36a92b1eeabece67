// controllers/auth.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"salonpro-dashboard/config"
	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type AuthController struct {
	Backend      *services.BackendClient
	Secret       string
	Sealer       *utils.Sealer
	TTL          time.Duration
	CookieSecure bool
}

// Login proxies the credentials to the fixed upstream login URL and opens a
// dashboard session on success.
func (ac *AuthController) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	input.Email = strings.TrimSpace(input.Email)

	result, err := ac.Backend.Login(c.Request.Context(), input)
	if err != nil {
		respondBackendError(c, err, "Login failed")
		return
	}
	ac.startSession(c, result, http.StatusOK)
}

func (ac *AuthController) Signup(c *gin.Context) {
	var input models.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}
	if input.Role == "" {
		input.Role = models.RoleOwner
	}

	result, err := ac.Backend.Signup(c.Request.Context(), input)
	if err != nil {
		respondBackendError(c, err, "Signup failed")
		return
	}
	ac.startSession(c, result, http.StatusCreated)
}

func (ac *AuthController) startSession(c *gin.Context, result *models.AuthResult, status int) {
	bearer := result.Bearer()
	if bearer == "" {
		utils.RespondWithError(c, http.StatusBadGateway, "Login response did not include a token")
		return
	}
	if !result.User.IsOwner() {
		utils.RespondWithError(c, http.StatusForbidden, "Only salon owners can use the dashboard")
		return
	}

	salons, err := ac.Backend.MySalons(c.Request.Context(), bearer)
	if err != nil {
		respondBackendError(c, err, "Failed to load salons")
		return
	}
	var salon *models.Salon
	if len(salons) > 0 {
		salon = &salons[0]
	}

	sealed, err := ac.Sealer.Seal(bearer)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}
	session := models.Session{
		UserID:      result.User.ID,
		Role:        strings.ToUpper(result.User.Role),
		SealedToken: sealed,
		UserData:    datatypes.NewJSONType(result.User),
		SalonData:   datatypes.NewJSONType(salon),
		ExpiresAt:   time.Now().Add(ac.TTL),
	}
	if salon != nil {
		session.SalonID = salon.ID
	}

	if err := config.DB.Create(&session).Error; err != nil {
		zap.S().Errorf("create session for user %s: %v", result.User.ID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	token, err := utils.GenerateSessionToken(ac.Secret, &session)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetCookie(utils.SessionCookie, token, int(ac.TTL.Seconds()), "/", "", ac.CookieSecure, true)

	c.JSON(status, gin.H{
		"token": token,
		"user":  result.User,
		"salon": salon,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if session := utils.CurrentSession(c); session != nil {
		if err := config.DB.Delete(&models.Session{}, "id = ?", session.ID).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to end session")
			return
		}
	}
	c.SetCookie(utils.SessionCookie, "", -1, "/", "", ac.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (ac *AuthController) Me(c *gin.Context) {
	session := utils.CurrentSession(c)
	if session == nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Session not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  session.User(),
		"salon": session.Salon(),
	})
}
