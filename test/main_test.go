package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vantage-Outdoor-LLC/argus/internal/db"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api"
	authapi "github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/control/endpoints"
	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
	"github.com/Vantage-Outdoor-LLC/argus/internal/scheduler"
)

const testSecret = "supersecret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(store db.Store) *gin.Engine {
	r := gin.New()

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
	},
		authapi.AuthPublicModule(testSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: testSecret,
		Store:     store,
	},
		adminapi.GroupModule(store),
		adminapi.DisplayModule(store),
		adminapi.CampaignModule(store),
		adminapi.SlotModule(store),
		authapi.AuthSessionModule(testSecret, store),
	)

	return r
}

// newTestEnv builds a router over a fresh in-memory store and signs up an
// admin, returning the bearer token for authed calls.
func newTestEnv(t *testing.T) (*gin.Engine, *memStore, string) {
	t.Helper()
	store := newMemStore()
	router := setupRouter(store)

	w := doJSON(router, http.MethodPost, "/api/admin/auth/signup", "", map[string]any{
		"email":    "admin@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup failed: %s", w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("signup returned no token: %s", w.Body.String())
	}
	return router, store, resp.Token
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}
	return out
}

func today() time.Time {
	return scheduler.CivilDay(time.Now())
}

// seedForest installs a two-level forest:
//
//	GP-001
//	└── S1GP-001-001
//	GP-002
//
// with one display in S1GP-001-001 and one in GP-002.
func seedForest(t *testing.T, store *memStore) {
	t.Helper()
	err := store.SaveGroupForest([]model.Group{
		{ID: "GP-001", Name: "Downtown", Subgroups: []model.Group{
			{ID: "S1GP-001-001", Name: "Downtown North"},
		}},
		{ID: "GP-002", Name: "Airport"},
	})
	if err != nil {
		t.Fatalf("seed forest: %v", err)
	}
	seedDisplay(t, store, "DS-010124-001", "S1GP-001-001")
	seedDisplay(t, store, "DS-010124-002", "GP-002")
}

func seedDisplay(t *testing.T, store *memStore, id, groupID string) {
	t.Helper()
	err := store.CreateDisplay(model.Display{
		ID:            id,
		GroupID:       groupID,
		InstalledDate: today(),
		Status:        "active",
		Impressions:   100000,
		CreatedBy:     "ADMIN-001",
		CreatedAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("seed display: %v", err)
	}
}
