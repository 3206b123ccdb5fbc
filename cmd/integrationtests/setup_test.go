package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"moto-auction/internal/broadcaster"
	"moto-auction/internal/config"
	model "moto-auction/internal/models"
	"moto-auction/internal/repository"
	"moto-auction/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// testEnv is a fully wired server behind httptest, with a few seeded users
type testEnv struct {
	app    *server.App
	srv    *httptest.Server
	users  map[string]model.User
	tokens map[string]string
}

// SetupTestEnv initializes the router with in-memory repository for integration testing.
func SetupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config.Defaults()
	cfg.SeedDemoData = false
	cfg.HeartbeatInterval = time.Minute

	env := &testEnv{
		app:    server.NewApp(ctx, cfg, repository.NewMemoryRepo()),
		users:  map[string]model.User{},
		tokens: map[string]string{},
	}
	env.srv = httptest.NewServer(env.app.Router)
	t.Cleanup(env.srv.Close)

	for _, u := range []model.User{
		{Username: "dealer", Role: model.RoleSeller},
		{Username: "other-dealer", Role: model.RoleSeller},
		{Username: "alex", Role: model.RoleBuyer},
		{Username: "sam", Role: model.RoleBuyer},
		{Username: "jo", Role: model.RoleBuyer},
	} {
		row, err := env.app.Repo.CreateUser(u)
		require.NoError(t, err)
		env.users[u.Username] = row

		resp, w := env.Do(t, http.MethodPost, "/auth/token", "", map[string]any{"user_id": row.UserID})
		require.Equal(t, http.StatusOK, w.Code, resp)
		env.tokens[u.Username] = resp["data"].(map[string]any)["token"].(string)
	}
	return env
}

// Do executes an HTTP request as the named user ("" for anonymous) and parses the envelope
func (e *testEnv) Do(t *testing.T, method, url, as string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token, ok := e.tokens[as]; ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.app.Router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// Data executes a request that must succeed with want and returns its data object
func (e *testEnv) Data(t *testing.T, want int, method, url, as string, body any) map[string]any {
	t.Helper()
	resp, w := e.Do(t, method, url, as, body)
	require.Equal(t, want, w.Code, resp)
	data, _ := resp["data"].(map[string]any)
	return data
}

// ListAuction registers a motorcycle for seller and opens an auction ending in an hour
func (e *testEnv) ListAuction(t *testing.T, seller string, edit func(req map[string]any)) int64 {
	t.Helper()
	moto := e.Data(t, http.StatusCreated, http.MethodPost, "/motorcycles", seller, map[string]any{
		"make": "Triumph", "model": "Bonneville T120", "year": 2019, "mileage": 8400,
	})
	req := map[string]any{
		"motorcycle_id":  moto["motorcycle_id"],
		"starting_price": 3500,
		"end_time":       time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
	}
	if edit != nil {
		edit(req)
	}
	a := e.Data(t, http.StatusCreated, http.MethodPost, "/auctions", seller, req)
	require.Equal(t, string(model.StatusActive), a["status"])
	return int64(a["auction_id"].(float64))
}

// Dial opens a websocket as the named user on the given topics
func (e *testEnv) Dial(t *testing.T, as string, topics ...string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/ws?topics=" + strings.Join(topics, ",")
	if token, ok := e.tokens[as]; ok {
		url += "&token=" + token
	}
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

// ReadEnvelope reads the next envelope, skipping heartbeats
func ReadEnvelope(t *testing.T, conn *websocket.Conn) broadcaster.Envelope {
	t.Helper()
	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var env broadcaster.Envelope
		require.NoError(t, conn.ReadJSON(&env))
		if env.Type != broadcaster.EventHeartbeat {
			return env
		}
	}
}

func auctionPath(id int64, suffix string) string {
	return fmt.Sprintf("/auctions/%d%s", id, suffix)
}
