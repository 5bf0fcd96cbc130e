package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/forceteam/internal/api"
	"github.com/mcoot/forceteam/internal/api/apierr"
	"github.com/mcoot/forceteam/internal/api/response"
	"github.com/mcoot/forceteam/internal/factory"
	"github.com/mcoot/forceteam/internal/services/auth"
)

const adminToken = "ft_test-admin-token"

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T, withAuth bool) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = app.Loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		app.Close()
	})

	authService := app.AuthService
	if withAuth {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
		require.NoError(t, err)
		authService, err = auth.New(app.MockClock, auth.Config{TokenHash: string(hash), VerifiedTTL: time.Minute})
		require.NoError(t, err)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: authService,
		Commands:    app.Commands,
		Journal:     app.Journal,
		Hub:         app.Hub,
		Sim:         app.Sim,
		HostMode:    "sim",
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

func (ts *testServer) playerTeam(t *testing.T, playerID string) string {
	t.Helper()

	rr := ts.request(http.MethodGet, "/api/v1/sim/players", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SimPlayers
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	for _, p := range resp.Players {
		if p.PlayerID == playerID {
			return p.Team
		}
	}
	return ""
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()

	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, true)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "sim", resp.HostMode)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t, true)

	rr := ts.request(http.MethodGet, "/api/v1/rosters", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/rosters", nil, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rosters", nil, adminToken)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestTokenQueryParameter(t *testing.T) {
	ts := newTestServer(t, true)

	rr := ts.request(http.MethodGet, "/api/v1/reports?token="+adminToken, nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSetAndListRosters(t *testing.T) {
	ts := newTestServer(t, false)

	rr := ts.request(http.MethodPut, "/api/v1/rosters/76561198000000001", map[string]string{"team": "CT"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var entry response.RosterEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))
	assert.Equal(t, "76561198000000001", entry.PlayerID)
	assert.Equal(t, "ct", entry.Team)

	rr = ts.request(http.MethodGet, "/api/v1/rosters", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var list response.Rosters
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Rosters, 1)
	assert.Equal(t, "76561198000000001", list.Rosters[0].PlayerID)
	assert.Equal(t, 0, list.KnownPlayers)
}

func TestSetRosterRejectsBadInput(t *testing.T) {
	ts := newTestServer(t, false)

	rr := ts.request(http.MethodPut, "/api/v1/rosters/abc", map[string]string{"team": "ct"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidPlayerID, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPut, "/api/v1/rosters/76561198000000001", map[string]string{"team": "spec"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidTeam, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPut, "/api/v1/rosters/76561198000000001", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestSetRosterSwitchesConnectedPlayer(t *testing.T) {
	ts := newTestServer(t, false)

	rr := ts.request(http.MethodPost, "/api/v1/sim/players", map[string]any{
		"player_id": "76561198000000001",
		"team":      "t",
		"alive":     true,
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/rosters/76561198000000001", map[string]string{"team": "ct"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Eventually(t, func() bool {
		return ts.playerTeam(t, "76561198000000001") == "ct"
	}, time.Second, 10*time.Millisecond)
}

func TestForceTeamMovesSpectator(t *testing.T) {
	ts := newTestServer(t, false)

	rr := ts.request(http.MethodPost, "/api/v1/sim/players", map[string]any{
		"player_id": "76561198000000001",
		"team":      "spec",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rosters/76561198000000001/force", map[string]string{"team": "t"}, "")
	require.Equal(t, http.StatusAccepted, rr.Code)

	assert.Eventually(t, func() bool {
		return ts.playerTeam(t, "76561198000000001") == "t"
	}, time.Second, 10*time.Millisecond)
}

func TestClearAndApplyRosters(t *testing.T) {
	ts := newTestServer(t, false)

	for _, id := range []string{"76561198000000001", "76561198000000002"} {
		rr := ts.request(http.MethodPut, "/api/v1/rosters/"+id, map[string]string{"team": "t"}, "")
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := ts.request(http.MethodPost, "/api/v1/rosters/apply", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var sweep response.Sweep
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sweep))
	assert.Equal(t, 0, sweep.Moved)
	assert.Equal(t, 0, sweep.Correct)

	rr = ts.request(http.MethodDelete, "/api/v1/rosters", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var cleared response.Cleared
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cleared))
	assert.Equal(t, 2, cleared.Removed)
}

func TestConsoleCommands(t *testing.T) {
	ts := newTestServer(t, false)

	rr := ts.request(http.MethodPost, "/api/v1/console", map[string]string{
		"command": "css_set_roster 76561198000000001 t",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Console
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "set_roster", resp.Command)
	assert.Equal(t, "76561198000000001 pinned to t", resp.Message)

	rr = ts.request(http.MethodPost, "/api/v1/console", map[string]string{"command": "css_set_roster 1"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUsage, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/console", map[string]string{"command": "css_kick 1"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUnknownCommand, decodeError(t, rr).Code)
}

func TestReportsJournal(t *testing.T) {
	ts := newTestServer(t, false)

	rr := ts.request(http.MethodGet, "/api/v1/reports", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"reports":[]}`, rr.Body.String())

	rr = ts.request(http.MethodPut, "/api/v1/rosters/76561198000000001", map[string]string{"team": "ct"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/reports?limit=1", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Reports []struct {
			Kind     string `json:"kind"`
			PlayerID string `json:"player_id"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 1)
	assert.Equal(t, "roster_set", resp.Reports[0].Kind)
	assert.Equal(t, "76561198000000001", resp.Reports[0].PlayerID)

	rr = ts.request(http.MethodGet, "/api/v1/reports?limit=zero", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSimJoinVeto(t *testing.T) {
	ts := newTestServer(t, false)

	rr := ts.request(http.MethodPost, "/api/v1/sim/players", map[string]any{
		"player_id": "76561198000000001",
		"team":      "spec",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/rosters/76561198000000001", map[string]string{"team": "t"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/sim/players/76561198000000001/join", map[string]string{"token": "ct"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var join response.Join
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &join))
	assert.Equal(t, "handled", join.Result)
	assert.Equal(t, "spec", join.Team)

	assert.Eventually(t, func() bool {
		return ts.playerTeam(t, "76561198000000001") == "t"
	}, time.Second, 10*time.Millisecond)
}

func TestSimPlayerErrors(t *testing.T) {
	ts := newTestServer(t, false)

	body := map[string]any{"player_id": "76561198000000001", "team": "t"}
	rr := ts.request(http.MethodPost, "/api/v1/sim/players", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/sim/players", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/sim/players/76561198000000001", nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/sim/players/76561198000000001", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSimPhase(t *testing.T) {
	ts := newTestServer(t, false)

	rr := ts.request(http.MethodPut, "/api/v1/sim/phase", map[string]bool{"warmup": true}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var phase response.Phase
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &phase))
	assert.True(t, phase.Warmup)
	assert.False(t, phase.FreezeTime)

	rr = ts.request(http.MethodPost, "/api/v1/sim/round-start", nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
