package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aidar/lineup-service/internal/config"
)

// TestEnvironment содержит все ресурсы необходимые для интеграционных тестов
type TestEnvironment struct {
	PostgresContainer *tcpostgres.PostgresContainer
	App               *App
	Server            *httptest.Server
	Mailer            *captureMailer
	Upstream          *upstreamStub
}

// captureMailer запоминает последний код по адресу
type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
	fail  bool
}

var codePattern = regexp.MustCompile(`\d{6}`)

func (m *captureMailer) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return io.ErrUnexpectedEOF
	}
	m.codes[to] = codePattern.FindString(body)
	return nil
}

func (m *captureMailer) Code(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

// upstreamStub подменяет сервис данных лиг и сервис генерации составов
type upstreamStub struct {
	server *httptest.Server

	mu           sync.Mutex
	validLeagues map[int64]bool
	down         bool
}

func newUpstreamStub() *upstreamStub {
	s := &upstreamStub{validLeagues: map[int64]bool{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/data/check_league", func(w http.ResponseWriter, r *http.Request) {
		if s.isDown() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var req struct {
			LeagueID int64 `json:"league_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		valid := s.validLeagues[req.LeagueID]
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]bool{"valid": valid})
	})
	mux.HandleFunc("/data/get_roster_data", func(w http.ResponseWriter, r *http.Request) {
		if s.isDown() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"players":[{"name":"Josh Allen","position":"QB"}]}`)
	})
	mux.HandleFunc("/generate-lineup", func(w http.ResponseWriter, r *http.Request) {
		if s.isDown() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"QB":"Josh Allen","RB":["Henry","Barkley"]}`)
	})
	s.server = httptest.NewServer(mux)
	return s
}

func (s *upstreamStub) isDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.down
}

func (s *upstreamStub) AllowLeague(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validLeagues[id] = true
}

func (s *upstreamStub) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

// SetupTestEnvironment создает и инициализирует полное тестовое окружение
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	// Запускаем PostgreSQL контейнер
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("lineups_test"),
		tcpostgres.WithUsername("test_user"),
		tcpostgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	upstream := newUpstreamStub()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port.Port(),
			User:     "test_user",
			Password: "test_password",
			Name:     "lineups_test",
			SSLMode:  "disable",
			MaxConns: 10,
			MinConns: 1,
		},
		JWT: config.JWTConfig{
			Secret:          "test-jwt-secret-key-for-integration-tests",
			ExpirationHours: 24,
		},
		Services: config.ServicesConfig{
			FeaturesEndpoint: upstream.server.URL,
			DataEndpoint:     upstream.server.URL,
			Timeout:          5 * time.Second,
		},
		HTTP: config.HTTPConfig{
			CORSAllowedOrigins: []string{"*"},
			RateLimitRPS:       1000,
			RateLimitBurst:     1000,
		},
	}

	mailer := &captureMailer{codes: map[string]string{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Создаем и инициализируем приложение
	application, err := New(cfg, WithMailer(mailer), WithLogger(logger))
	require.NoError(t, err, "Failed to create application")
	require.NoError(t, application.Initialize(ctx), "Failed to initialize application")

	return &TestEnvironment{
		PostgresContainer: pgContainer,
		App:               application,
		Server:            httptest.NewServer(application.Handler()),
		Mailer:            mailer,
		Upstream:          upstream,
	}
}

// Cleanup очищает все тестовые ресурсы
func (te *TestEnvironment) Cleanup(t *testing.T) {
	t.Helper()

	te.Server.Close()
	te.Upstream.server.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = te.App.Shutdown(shutdownCtx)

	if te.PostgresContainer != nil {
		_ = te.PostgresContainer.Terminate(context.Background())
	}
}

// Do выполняет запрос и декодирует JSON ответ в out (если out не nil)
func (te *TestEnvironment) Do(t *testing.T, method, path string, body any, token string, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req, err := http.NewRequest(method, te.Server.URL+path, reader)
	require.NoError(t, err, "Failed to create request")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := te.Server.Client().Do(req)
	require.NoError(t, err, "Failed to make request")
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// Signup проходит регистрацию через код подтверждения и возвращает токен
func (te *TestEnvironment) Signup(t *testing.T, email, password string) string {
	t.Helper()

	var sent struct {
		Success      bool `json:"success"`
		AlreadyInUse bool `json:"already_in_use"`
	}
	status := te.Do(t, http.MethodPost, "/users/verify/send-email", map[string]string{"email": email, "password": password}, "", &sent)
	require.Equal(t, http.StatusOK, status)
	require.True(t, sent.Success)
	require.False(t, sent.AlreadyInUse)

	var checked struct {
		AccessToken string `json:"access_token"`
		Valid       bool   `json:"valid"`
	}
	status = te.Do(t, http.MethodPost, "/users/verify/check-code", map[string]string{"email": email, "code": te.Mailer.Code(email)}, "", &checked)
	require.Equal(t, http.StatusOK, status)
	require.True(t, checked.Valid)
	require.NotEmpty(t, checked.AccessToken)
	return checked.AccessToken
}
