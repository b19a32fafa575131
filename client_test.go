package boltdriver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boltdriver "github.com/boltdriver/boltdriver-go"
	"github.com/boltdriver/boltdriver-go/tokenstore"
	"github.com/boltdriver/boltdriver-go/types"
)

// fakeBackend serves both the auth host and the driver-data host for
// client-level tests.
type fakeBackend struct {
	router       *chi.Mux
	dataRequests atomic.Int32
	accessToken  string
	rejectData   bool
}

func signAccessToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"driver_id":       float64(123456),
		"partner_id":      float64(654321),
		"company_id":      float64(42),
		"company_city_id": float64(7),
		"session_id":      "sess-abc",
		"exp":             float64(time.Now().Add(time.Hour).Unix()),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	b := &fakeBackend{
		router:      chi.NewRouter(),
		accessToken: signAccessToken(t),
	}

	b.router.Post("/startAuthentication", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"code": 0, "message": "OK",
			"data": map[string]any{
				"verification_token":          "verif-token-1",
				"verification_code_channel":   "sms",
				"verification_code_target":    "+4812*****89",
				"verification_code_length":    6,
				"resend_wait_time_in_seconds": 20,
			},
		})
	})

	b.router.Post("/confirmAuthentication", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Code string `json:"verification_code"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Code != "123456" {
			writeJSON(w, map[string]any{"code": 298, "message": "INVALID_CODE"})
			return
		}
		writeJSON(w, map[string]any{
			"code": 0, "message": "OK",
			"data": map[string]any{
				"token": map[string]any{
					"refresh_token": "refresh-token-1",
					"access_token":  b.accessToken,
					"token_type":    "bearer",
					"expires_in":    int64(3600),
				},
			},
		})
	})

	dataHandler := func(payload any) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			b.dataRequests.Add(1)
			if b.rejectData || r.Header.Get("Authorization") != "Bearer "+b.accessToken {
				writeJSON(w, map[string]any{"code": 503, "message": "NOT_AUTHORIZED"})
				return
			}
			writeJSON(w, map[string]any{"code": 0, "message": "OK", "data": payload})
		}
	}

	b.router.Get("/getNavBarBadges", dataHandler(map[string]any{"news": 2}))
	b.router.Get("/getDriverState", dataHandler(map[string]any{
		"driver_status":     "inactive",
		"poll_interval_sec": 3,
	}))
	b.router.Get("/getOrderHistory", dataHandler(map[string]any{
		"list": []map[string]any{{
			"order_handle": "order-1",
			"created":      int64(1700000000),
			"state":        "finished",
		}},
		"total_count": 1,
	}))
	b.router.Post("/logout", dataHandler(nil))

	return b
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, backend *fakeBackend, store tokenstore.Store) *boltdriver.Client {
	t.Helper()

	server := httptest.NewServer(backend.router)
	t.Cleanup(server.Close)

	if store == nil {
		store = tokenstore.NewMemoryStore()
	}

	nop := zerolog.Nop()
	client, err := boltdriver.NewClient(boltdriver.ClientConfig{
		AuthBaseURL:   server.URL,
		DriverBaseURL: server.URL,
		Store:         store,
		Logger:        &nop,
		HTTPClient:    http.DefaultClient,
	})
	require.NoError(t, err)
	return client
}

func seededStore(t *testing.T, accessToken string, expiresAt time.Time) tokenstore.Store {
	t.Helper()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Save("refresh-token-1", &types.SessionInfo{
		SessionID:    "sess-abc",
		DriverID:     123456,
		AccessToken:  accessToken,
		RefreshToken: "refresh-token-1",
		TokenType:    "bearer",
		ExpiresAt:    expiresAt,
	}))
	return store
}

func TestClient_FailFastWithoutSession(t *testing.T) {
	backend := newFakeBackend(t)
	client := newTestClient(t, backend, nil)

	require.False(t, client.IsAuthenticated())

	_, err := client.GetDriverState(context.Background(), types.GPSInfo{})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindNotAuthorized))
	assert.Equal(t, int32(0), backend.dataRequests.Load(), "no unauthenticated request may leave the client")
}

func TestClient_PhoneFlowThenEndpoints(t *testing.T) {
	backend := newFakeBackend(t)
	store := tokenstore.NewMemoryStore()
	client := newTestClient(t, backend, store)

	result, err := client.StartPhoneAuth(context.Background(), "+48123456789")
	require.NoError(t, err)
	require.NotNil(t, result.Challenge)

	session, err := client.ConfirmPhoneAuth(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-1", session.RefreshToken)
	assert.True(t, client.IsAuthenticated())
	assert.True(t, store.HasValid())

	state, err := client.GetDriverState(context.Background(), types.GPSInfo{Latitude: 52.23, Longitude: 21.01})
	require.NoError(t, err)
	assert.Equal(t, "inactive", state.DriverStatus)
	assert.Equal(t, 3, state.PollIntervalSec)

	history, err := client.GetOrderHistory(context.Background(), types.GPSInfo{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, history.Orders, 1)
	assert.Equal(t, "order-1", history.Orders[0].OrderHandle)
}

func TestClient_ConfirmWithoutStart(t *testing.T) {
	backend := newFakeBackend(t)
	client := newTestClient(t, backend, nil)

	_, err := client.ConfirmPhoneAuth(context.Background(), "123456")
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindValidation))
}

func TestClient_LoadsStoredSessionOnConstruction(t *testing.T) {
	backend := newFakeBackend(t)
	store := seededStore(t, backend.accessToken, time.Now().Add(time.Hour))
	client := newTestClient(t, backend, store)

	assert.True(t, client.IsAuthenticated())
	require.NotNil(t, client.Session())
	assert.Equal(t, int64(123456), client.Session().DriverID)
}

func TestClient_ValidateExistingToken(t *testing.T) {
	backend := newFakeBackend(t)
	store := seededStore(t, backend.accessToken, time.Now().Add(time.Hour))
	client := newTestClient(t, backend, store)

	assert.True(t, client.ValidateExistingToken(context.Background()))
}

func TestClient_ValidateExistingToken_RejectedTokenCleared(t *testing.T) {
	backend := newFakeBackend(t)
	backend.rejectData = true
	store := seededStore(t, backend.accessToken, time.Now().Add(time.Hour))
	client := newTestClient(t, backend, store)

	assert.False(t, client.ValidateExistingToken(context.Background()))
	assert.False(t, client.IsAuthenticated())
	assert.False(t, store.HasValid(), "rejected token must be cleared from the store")
}

func TestClient_ValidateExistingToken_NoStoredToken(t *testing.T) {
	backend := newFakeBackend(t)
	client := newTestClient(t, backend, nil)

	assert.False(t, client.ValidateExistingToken(context.Background()))
	assert.Equal(t, int32(0), backend.dataRequests.Load())
}

func TestClient_Logout(t *testing.T) {
	backend := newFakeBackend(t)
	store := seededStore(t, backend.accessToken, time.Now().Add(time.Hour))
	client := newTestClient(t, backend, store)

	require.NoError(t, client.Logout(context.Background()))
	assert.False(t, client.IsAuthenticated())
	assert.False(t, store.HasValid())
}

func TestClient_ExpiredStoredSessionNotTrusted(t *testing.T) {
	backend := newFakeBackend(t)
	store := seededStore(t, backend.accessToken, time.Now().Add(-time.Minute))
	client := newTestClient(t, backend, store)

	assert.False(t, client.IsAuthenticated())

	_, err := client.GetNavBarBadges(context.Background(), types.GPSInfo{})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindNotAuthorized))
}
