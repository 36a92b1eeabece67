package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonpro-dashboard/config"
	"salonpro-dashboard/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func setupAuthDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	config.DB = db
	return db
}

func createSession(t *testing.T, db *gorm.DB, sealer *Sealer, role string, expires time.Time) (*models.Session, string) {
	t.Helper()
	sealed, err := sealer.Seal("upstream-token")
	require.NoError(t, err)
	session := &models.Session{
		UserID:      "user-1",
		SalonID:     "salon-1",
		Role:        role,
		SealedToken: sealed,
		UserData:    datatypes.NewJSONType(models.User{ID: "user-1", Name: "Olivia", Role: models.RoleOwner}),
		ExpiresAt:   expires,
	}
	require.NoError(t, db.Create(session).Error)
	token, err := GenerateSessionToken(testSecret, session)
	require.NoError(t, err)
	return session, token
}

func protectedRouter(sealer *Sealer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret, sealer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"salonId": SalonID(c),
			"backend": BackendToken(c),
		})
	})
	return r
}

func TestAuthMiddlewareAcceptsHeaderAndCookie(t *testing.T) {
	db := setupAuthDB(t)
	sealer := NewSealer("seal")
	_, token := createSession(t, db, sealer, models.RoleOwner, time.Now().Add(time.Hour))
	r := protectedRouter(sealer)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"backend":"upstream-token"`)
	assert.Contains(t, w.Body.String(), `"salonId":"salon-1"`)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	db := setupAuthDB(t)
	sealer := NewSealer("seal")
	r := protectedRouter(sealer)

	_, staffToken := createSession(t, db, sealer, "STAFF", time.Now().Add(time.Hour))
	_, expiredToken := createSession(t, db, sealer, models.RoleOwner, time.Now().Add(-time.Minute))
	orphan := &models.Session{ID: uuid.New(), UserID: "u", Role: models.RoleOwner, ExpiresAt: time.Now().Add(time.Hour)}
	orphanToken, err := GenerateSessionToken(testSecret, orphan)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"non owner", "Bearer " + staffToken, http.StatusForbidden},
		{"expired", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"unknown session", "Bearer " + orphanToken, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	session := &models.Session{ID: uuid.New(), UserID: "u", ExpiresAt: time.Now().Add(time.Hour)}
	token, err := GenerateSessionToken(testSecret, session)
	require.NoError(t, err)

	_, err = ParseSessionToken("other", token)
	assert.Error(t, err)

	claims, err := ParseSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, session.ID.String(), claims.SessionID)
	assert.Equal(t, "u", claims.Subject)
}
