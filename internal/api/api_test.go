package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlin/browsercraft-go/internal/api"
	"github.com/avlin/browsercraft-go/internal/api/apierr"
	"github.com/avlin/browsercraft-go/internal/dependencies/clock"
	"github.com/avlin/browsercraft-go/internal/dependencies/random"
	"github.com/avlin/browsercraft-go/internal/factory"
	"github.com/avlin/browsercraft-go/internal/model"
	"github.com/avlin/browsercraft-go/internal/services/session"
	"github.com/avlin/browsercraft-go/internal/storage/memory"
	"github.com/avlin/browsercraft-go/internal/ws"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use real random/clock
	app := factory.NewForTest(memory.New(), clock.New(), random.New(), session.Config{}, logger)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		SessionStore:   app.SessionStore,
		Coordinator:    app.Coordinator,
		WSHandler:      app.WSHandler,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

type sessionResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

func decodeSession(t *testing.T, rr *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.ErrorResponse {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	registered := decodeSession(t, rr)
	assert.Equal(t, "alice", registered.Username)
	assert.Len(t, registered.Token, session.TokenLength)

	rr = ts.request(http.MethodPost, "/login", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	loggedIn := decodeSession(t, rr)
	assert.Equal(t, "alice", loggedIn.Username)
	assert.NotEmpty(t, loggedIn.Token)
	assert.NotEqual(t, registered.Token, loggedIn.Token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeUsernameTaken, decodeError(t, rr).Error.Code)
}

func TestRegisterInvalidUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "not valid!", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidUsername, decodeError(t, rr).Error.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "abc"}
	rr := ts.request(http.MethodPost, "/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidPassword, decodeError(t, rr).Error.Code)
}

func TestRegisterMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/register", map[string]string{"username": "alice", "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/login", map[string]string{"username": "alice", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, decodeError(t, rr).Error.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/login", map[string]string{"username": "ghost", "password": "secret123"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, decodeError(t, rr).Error.Code)
}

func TestLobbyRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/lobby", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/lobby", nil, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLobbySnapshot(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/register", map[string]string{"username": "alice", "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	token := decodeSession(t, rr).Token

	_, _, err := ts.app.Coordinator.Connect("alice-conn", "alice")
	require.NoError(t, err)
	_, err = ts.app.Coordinator.CreateRoom("alice-conn", "castle")
	require.NoError(t, err)

	rr = ts.request(http.MethodGet, "/lobby", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var snapshot model.LobbySnapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
	require.Len(t, snapshot.Players, 1)
	assert.Equal(t, "alice", snapshot.Players[0].Username)
	require.Len(t, snapshot.Rooms, 1)
	assert.Equal(t, model.RoomName("castle"), snapshot.Rooms[0].Name)
}

func TestSessionCookieAccepted(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/register", map[string]string{"username": "alice", "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	token := decodeSession(t, rr).Token

	req := httptest.NewRequest(http.MethodGet, "/lobby", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	cookieRR := httptest.NewRecorder()
	ts.handler.ServeHTTP(cookieRR, req)

	assert.Equal(t, http.StatusOK, cookieRR.Code)
}

func TestWebsocketUpgradeThroughRouter(t *testing.T) {
	ts := newTestServer(t)

	go ts.app.Hub.Run()
	defer ts.app.Hub.Stop()

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	// The upgrade must succeed behind the full middleware chain, which
	// wraps the response writer
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "websocket dial through router failed")
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ws.ClientMessage{Type: ws.EventClaimName, Username: "alice"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var result ws.ResultMessage
	require.NoError(t, conn.ReadJSON(&result))
	assert.Equal(t, ws.MessageResult, result.Type)
	assert.True(t, result.Success)

	var state ws.StateMessage
	require.NoError(t, conn.ReadJSON(&state))
	assert.Equal(t, ws.MessageLobbyState, state.Type)
	require.NotNil(t, state.State)
	require.Len(t, state.State.Players, 1)
	assert.Equal(t, "alice", state.State.Players[0].Username)
}

func TestLogoutRevokesSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/register", map[string]string{"username": "alice", "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	token := decodeSession(t, rr).Token

	rr = ts.request(http.MethodPost, "/logout", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/lobby", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
