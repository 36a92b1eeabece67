package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"salonpro-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeBusinessInfoFallsBackToOwner(t *testing.T) {
	info := MergeBusinessInfo(&SettingsSnapshot{
		Salon:   &models.Salon{ID: "s1", Name: "Glow", Phone: ""},
		User:    &models.User{Name: "Olivia", Email: "olivia@glow.co", Phone: "+15550001"},
		Address: &models.Address{ID: "a1", Street: "1 Main St", City: "Springfield"},
	})

	assert.Equal(t, "Glow", info.Name)
	assert.Equal(t, "+15550001", info.Phone)
	assert.Equal(t, "olivia@glow.co", info.Email)
	assert.Equal(t, "Olivia", info.OwnerName)
	assert.Equal(t, "a1", info.AddressID)
	assert.Equal(t, "Springfield", info.City)
}

func TestPickSalonAddress(t *testing.T) {
	addresses := []models.Address{
		{ID: "home", UserID: "u1"},
		{ID: "shop", SalonID: "s1"},
		{ID: "linked"},
	}
	assert.Equal(t, "linked", PickSalonAddress(&models.Salon{ID: "s1", AddressID: "linked"}, addresses).ID)
	assert.Equal(t, "shop", PickSalonAddress(&models.Salon{ID: "s1"}, addresses).ID)
	assert.Equal(t, "home", PickSalonAddress(&models.Salon{ID: "s9"}, addresses).ID)
	assert.Nil(t, PickSalonAddress(&models.Salon{ID: "s1"}, nil))
}

func TestPlanSettingsUpdateKeepsOnlyChanges(t *testing.T) {
	snapshot := &SettingsSnapshot{
		Salon:   &models.Salon{ID: "s1", Name: "Glow"},
		User:    &models.User{ID: "u1", Name: "Olivia"},
		Address: &models.Address{ID: "a1", City: "Springfield"},
	}

	plan := PlanSettingsUpdate(snapshot, models.BusinessInfoPatch{
		Name:      strPtr("Glow"),
		OwnerName: strPtr("Olivia Stone"),
		City:      strPtr("Shelbyville"),
	})

	assert.Empty(t, plan.Salon)
	assert.Equal(t, map[string]interface{}{"name": "Olivia Stone"}, plan.User)
	assert.Equal(t, map[string]interface{}{"city": "Shelbyville"}, plan.Address)
	assert.False(t, plan.CreateAddress)

	assert.True(t, PlanSettingsUpdate(snapshot, models.BusinessInfoPatch{Name: strPtr(" Glow ")}).Empty())
}

func TestPlanSettingsUpdateStoresContactShownFromOwner(t *testing.T) {
	snapshot := &SettingsSnapshot{
		Salon: &models.Salon{ID: "s1", Name: "Glow"},
		User:  &models.User{ID: "u1", Name: "Olivia", Email: "olivia@glow.co", Phone: "+15550001"},
	}
	require.Equal(t, "+15550001", MergeBusinessInfo(snapshot).Phone)

	plan := PlanSettingsUpdate(snapshot, models.BusinessInfoPatch{
		Phone: strPtr("+15550001"),
		Email: strPtr("olivia@glow.co"),
	})

	assert.Equal(t, map[string]interface{}{"phone": "+15550001", "email": "olivia@glow.co"}, plan.Salon)
	assert.Empty(t, plan.User)

	snapshot.Salon.Phone = "+15550001"
	assert.NotContains(t, PlanSettingsUpdate(snapshot, models.BusinessInfoPatch{Phone: strPtr("+15550001")}).Salon, "phone")
}

func TestPlanSettingsUpdateCreatesMissingAddress(t *testing.T) {
	snapshot := &SettingsSnapshot{Salon: &models.Salon{ID: "s1", Name: "Glow"}}

	plan := PlanSettingsUpdate(snapshot, models.BusinessInfoPatch{Street: strPtr("2 Side St")})

	assert.True(t, plan.CreateAddress)
	assert.Equal(t, "2 Side St", plan.Address["street"])
	assert.Equal(t, "s1", plan.Address["salonId"])
	assert.Contains(t, plan.Address, "city")
}

func TestApplySettingsOnlyPatchesChangedRecords(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]map[string]interface{}{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		_ = json.Unmarshal(body, &payload)
		mu.Lock()
		hits[r.Method+" "+r.URL.Path] = payload
		mu.Unlock()
		switch r.URL.Path {
		case "/api/addresses":
			_, _ = w.Write([]byte(`{"id":"new-addr"}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})

	snapshot := &SettingsSnapshot{Salon: &models.Salon{ID: "s1", Name: "Glow"}}
	current := MergeBusinessInfo(snapshot)
	plan := PlanSettingsUpdate(snapshot, models.BusinessInfoPatch{Street: strPtr("2 Side St")})
	require.NoError(t, client.ApplySettings(context.Background(), "tok", current, plan))

	assert.Contains(t, hits, "POST /api/addresses")
	assert.Equal(t, "new-addr", hits["PATCH /api/salons/s1"]["addressId"])
	assert.NotContains(t, hits, "PATCH /api/users/me")
}

func TestFetchSettingsFailsWhenAnyCallFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/me" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"s1"}`))
	})

	_, err := client.FetchSettings(context.Background(), "tok", "s1")
	require.Error(t, err)
}
