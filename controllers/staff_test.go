package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffEnv(t *testing.T) *testEnv {
	env := newTestEnv(t)
	sc := StaffController{Backend: env.backend.client()}
	env.api.GET("/staff", sc.ListStaff)
	env.backend.respond(http.MethodGet, "/api/staff/salon/s1", http.StatusOK, `[
		{"id":"st1","name":"Maya","role":"Stylist"},
		{"id":"st2","user":{"id":"u9","name":"Jon Reyes"},"role":"Colorist"},
		{"id":"st3","name":"Ana Reyes","role":"stylist"}
	]`)
	return env
}

func staffIDs(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	var ids []string
	for _, s := range body["staff"].([]interface{}) {
		ids = append(ids, s.(map[string]interface{})["id"].(string))
	}
	return ids
}

func TestStaffListFiltersByRoleAndName(t *testing.T) {
	env := staffEnv(t)

	w := env.do(t, http.MethodGet, "/api/staff", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeBody(t, w)["total"])

	w = env.do(t, http.MethodGet, "/api/staff?role=STYLIST", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"st1", "st3"}, staffIDs(t, decodeBody(t, w)))

	w = env.do(t, http.MethodGet, "/api/staff?q=reyes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"st2", "st3"}, staffIDs(t, decodeBody(t, w)))

	w = env.do(t, http.MethodGet, "/api/staff?q=reyes&role=colorist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"st2"}, staffIDs(t, decodeBody(t, w)))
}

func TestStaffListPassesBackendFailure(t *testing.T) {
	env := newTestEnv(t)
	sc := StaffController{Backend: env.backend.client()}
	env.api.GET("/staff", sc.ListStaff)
	env.backend.respond(http.MethodGet, "/api/staff/salon/s1", http.StatusForbidden, `{"message":"Forbidden"}`)

	w := env.do(t, http.MethodGet, "/api/staff", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
