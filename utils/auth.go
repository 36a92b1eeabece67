// utils/auth.go
package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"salonpro-dashboard/config"
	"salonpro-dashboard/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionCookie = "token"

	ctxUserID       = "userId"
	ctxSalonID      = "salonId"
	ctxSession      = "session"
	ctxBackendToken = "backendToken"
)

// SessionClaims is the payload of the dashboard token. It only points at a
// stored session; the upstream bearer never leaves the server.
type SessionClaims struct {
	SessionID string `json:"sid"`
	SalonID   string `json:"salonId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(secret string, s *models.Session) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	claims := SessionClaims{
		SessionID: s.ID.String(),
		SalonID:   s.SalonID,
		Role:      s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseSessionToken(secret, tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// bearerToken reads the dashboard token from the Authorization header, then
// from the session cookie used for route gating.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware gates the dashboard to signed-in owners.
func AuthMiddleware(secret string, sealer *Sealer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			RespondWithError(c, http.StatusUnauthorized, "Authorization required")
			return
		}

		claims, err := ParseSessionToken(secret, tokenString)
		if err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		sessionID, err := uuid.Parse(claims.SessionID)
		if err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		var session models.Session
		if err := config.DB.First(&session, "id = ?", sessionID).Error; err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Session not found")
			return
		}
		if session.Expired(time.Now()) {
			RespondWithError(c, http.StatusUnauthorized, "Session expired")
			return
		}
		if !strings.EqualFold(session.Role, models.RoleOwner) {
			RespondWithError(c, http.StatusForbidden, "Only salon owners can use the dashboard")
			return
		}

		backendToken, err := sealer.Open(session.SealedToken)
		if err != nil {
			zap.S().Errorf("session %s: %v", session.ID, err)
			RespondWithError(c, http.StatusUnauthorized, "Invalid session")
			return
		}

		c.Set(ctxUserID, session.UserID)
		c.Set(ctxSalonID, session.SalonID)
		c.Set(ctxSession, &session)
		c.Set(ctxBackendToken, backendToken)
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(ctxSession); ok {
		if s, ok := v.(*models.Session); ok {
			return s
		}
	}
	return nil
}

func BackendToken(c *gin.Context) string {
	return c.GetString(ctxBackendToken)
}

func SalonID(c *gin.Context) string {
	return c.GetString(ctxSalonID)
}
