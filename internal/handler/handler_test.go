package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/lineup-service/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrTeamNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUserExists, http.StatusConflict, "ALREADY_EXISTS"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{fmt.Errorf("check league: %w", domain.ErrServiceUnavailable), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{fmt.Errorf("generate: %w", domain.ErrServiceRejected), http.StatusBadGateway, "BAD_GATEWAY"},
		{errors.New(`pq: relation "users" does not exist`), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/teams", nil)
			w := httptest.NewRecorder()

			HandleError(w, r, discardLogger(), tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotContains(t, resp.Error.Message, "relation")
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com","password":"pw"}`))
		var req LoginRequest
		require.NoError(t, decodeAndValidate(r, &req))
		assert.Equal(t, "a@example.com", req.Email)
	})

	t.Run("bad email", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","password":"pw"}`))
		var req LoginRequest
		err := decodeAndValidate(r, &req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email")
	})

	t.Run("nested league info", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"league_info":{"team_name":"Sharks"}}`))
		var req AddTeamRequest
		require.Error(t, decodeAndValidate(r, &req))
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var req LoginRequest
		require.EqualError(t, decodeAndValidate(r, &req), "invalid request body")
	})
}

func TestQueryInt64(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/teams/view?team_id=12", nil)
	v, err := queryInt64(r, "team_id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), v)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		r := httptest.NewRequest(http.MethodGet, "/teams/view?team_id="+raw, nil)
		_, err := queryInt64(r, "team_id")
		assert.Error(t, err, raw)
	}
}

func TestHandlers_RejectInvalidInputBeforeServiceCall(t *testing.T) {
	logger := discardLogger()
	// Сервисы nil: до них запрос доходить не должен
	auth := NewAuthHandler(nil, nil, logger)
	users := NewUserHandler(nil, logger)
	teams := NewTeamHandler(nil, logger)
	lineups := NewLineupHandler(nil, logger)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		target  string
		body    string
	}{
		{"send-email without password", auth.VerifyEmail, http.MethodPost, "/users/verify/send-email", `{"email":"a@example.com"}`},
		{"check-code without code", auth.CheckCode, http.MethodPost, "/users/verify/check-code", `{"email":"a@example.com"}`},
		{"login with bad email", auth.Login, http.MethodPost, "/users/login", `{"email":"x","password":"p"}`},
		{"update with bad email", users.Update, http.MethodPost, "/users/update", `{"email":"x"}`},
		{"delete without password", users.Delete, http.MethodPost, "/users/delete", `{}`},
		{"remove team without id", teams.RemoveTeam, http.MethodDelete, "/teams/remove", `{}`},
		{"view team without id", teams.ViewTeam, http.MethodGet, "/teams/view", ``},
		{"generate without week", lineups.GenerateLineup, http.MethodPost, "/lineups/generate", `{"selected_team":1}`},
		{"save without lineup", lineups.SaveLineup, http.MethodPut, "/lineups/save", `{"selected_team":1}`},
		{"save null lineup", lineups.SaveLineup, http.MethodPut, "/lineups/save", `{"selected_team":1,"lineup_info":null}`},
		{"save scalar lineup", lineups.SaveLineup, http.MethodPut, "/lineups/save", `{"selected_team":1,"lineup_info":"QB"}`},
		{"list without team", lineups.GetLineups, http.MethodGet, "/lineups", ``},
		{"remove lineup with bad id", lineups.RemoveLineup, http.MethodDelete, "/lineups/remove?lineup_id=x", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			tt.handler(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthCheck(t *testing.T) {
	h := NewAuthHandler(nil, nil, discardLogger())
	w := httptest.NewRecorder()

	h.AuthCheck(w, httptest.NewRequest(http.MethodGet, "/users/verify/auth-check", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	ok := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), discardLogger())
	w := httptest.NewRecorder()
	ok.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down := NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("down") }), discardLogger())
	w = httptest.NewRecorder()
	down.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
