package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"salonpro-dashboard/config"
	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret   = "controller-test-secret"
	testUpstream = "upstream-bearer"
)

type backendCall struct {
	Method string
	Path   string
	Body   string
}

// fakeBackend records every call and answers from per-route handlers.
type fakeBackend struct {
	mu     sync.Mutex
	calls  []backendCall
	routes map[string]http.HandlerFunc
	srv    *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{routes: map[string]http.HandlerFunc{}}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		fb.mu.Lock()
		fb.calls = append(fb.calls, backendCall{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		h, ok := fb.routes[r.Method+" "+r.URL.Path]
		fb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not found"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) handle(method, path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" "+path] = h
}

func (fb *fakeBackend) respond(method, path string, status int, body string) {
	fb.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (fb *fakeBackend) callsTo(method, path string) []backendCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var out []backendCall
	for _, c := range fb.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (fb *fakeBackend) client() *services.BackendClient {
	return services.NewBackendClient(fb.srv.URL, "", 5*time.Second)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	config.DB = db
	return db
}

// ownerToken stores a live owner session for salon s1 and returns its
// dashboard token.
func ownerToken(t *testing.T, db *gorm.DB, sealer *utils.Sealer) string {
	t.Helper()
	sealed, err := sealer.Seal(testUpstream)
	require.NoError(t, err)
	session := &models.Session{
		UserID:      "u1",
		SalonID:     "s1",
		Role:        models.RoleOwner,
		SealedToken: sealed,
		UserData:    datatypes.NewJSONType(models.User{ID: "u1", Name: "Olivia", Role: models.RoleOwner}),
		SalonData:   datatypes.NewJSONType(&models.Salon{ID: "s1", Name: "Glow"}),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(session).Error)
	token, err := utils.GenerateSessionToken(testSecret, session)
	require.NoError(t, err)
	return token
}

type testEnv struct {
	db      *gorm.DB
	backend *fakeBackend
	sealer  *utils.Sealer
	router  *gin.Engine
	api     *gin.RouterGroup
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		db:      setupTestDB(t),
		backend: newFakeBackend(t),
		sealer:  utils.NewSealer("seal-key"),
		router:  gin.New(),
	}
	env.api = env.router.Group("/api", utils.AuthMiddleware(testSecret, env.sealer))
	env.token = ownerToken(t, env.db, env.sealer)
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+env.token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
