package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/aidar/lineup-service/internal/client"
	"github.com/aidar/lineup-service/internal/config"
	"github.com/aidar/lineup-service/internal/handler"
	"github.com/aidar/lineup-service/internal/mailer"
	"github.com/aidar/lineup-service/internal/middleware"
	"github.com/aidar/lineup-service/internal/repository/postgres"
	"github.com/aidar/lineup-service/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config  *config.Config
	db      *postgres.Pool
	server  *http.Server
	limiter *middleware.RateLimiter
	mailer  service.Mailer
	logger  *slog.Logger
}

// Option настраивает App при создании
type Option func(*App)

// WithMailer подменяет отправку писем (используется в тестах)
func WithMailer(m service.Mailer) Option {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger подменяет логгер приложения
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New создает новый экземпляр приложения
func New(cfg *config.Config, opts ...Option) (*App, error) {
	app := &App{
		config: cfg,
	}
	for _, opt := range opts {
		opt(app)
	}

	// Инициализируем структурированный логгер (JSON формат)
	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
	}
	if app.mailer == nil {
		app.mailer = mailer.New(cfg.SMTP, app.logger)
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Применяем миграции до создания пула
	if err := postgres.Migrate(ctx, a.config.Database.DSN()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Подключаемся к базе данных
	pool, err := postgres.NewPool(ctx, a.config.Database, a.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = pool

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой репозиториев (работа с БД)
	userRepo := postgres.NewUserRepository(a.db)
	verificationRepo := postgres.NewVerificationRepository(a.db)
	teamRepo := postgres.NewTeamRepository(a.db)
	lineupRepo := postgres.NewLineupRepository(a.db)

	// Клиенты внешних сервисов
	httpClient := client.NewHTTPClient(a.config.Services.Timeout)
	dataClient := client.NewDataClient(a.config.Services.DataEndpoint, httpClient)
	featuresClient := client.NewFeaturesClient(a.config.Services.FeaturesEndpoint, httpClient)

	// Инициализируем слой сервисов (бизнес-логика)
	hasher := service.NewBcryptHasher(0)
	authService := service.NewAuthService(a.config.JWT.Secret, a.config.JWT.GetExpiration())
	accountService := service.NewAccountService(a.db, userRepo, teamRepo, hasher, authService, a.logger)
	verificationService := service.NewVerificationService(
		a.db, verificationRepo, userRepo, accountService, hasher, a.mailer, a.logger,
	)
	teamService := service.NewTeamService(a.db, teamRepo, dataClient, a.logger)
	lineupService := service.NewLineupService(a.db, teamRepo, lineupRepo, featuresClient, a.logger)

	// Инициализируем HTTP обработчики
	authHandler := handler.NewAuthHandler(verificationService, accountService, a.logger)
	userHandler := handler.NewUserHandler(accountService, a.logger)
	teamHandler := handler.NewTeamHandler(teamService, a.logger)
	lineupHandler := handler.NewLineupHandler(lineupService, a.logger)
	healthHandler := handler.NewHealthHandler(a.db, a.logger)

	// Инициализируем middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(authService)

	// Ограничение частоты для эндпоинтов без авторизации
	a.limiter = middleware.NewRateLimiter(rate.Limit(a.config.HTTP.RateLimitRPS), a.config.HTTP.RateLimitBurst)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.HTTP.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check для мониторинга
	r.Get("/health", healthHandler.Health)

	// Публичные эндпоинты (без авторизации, с rate limit)
	r.Group(func(r chi.Router) {
		r.Use(a.limiter.Limit)

		r.Post("/users/verify/send-email", authHandler.VerifyEmail)
		r.Post("/users/verify/check-code", authHandler.CheckCode)
		r.Post("/users/login", authHandler.Login)
	})

	// Защищенные эндпоинты (требуют JWT токен в заголовке Authorization)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		// Эндпоинты аккаунта
		r.Get("/users/verify/auth-check", authHandler.AuthCheck)
		r.Post("/users/update", userHandler.Update)
		r.Post("/users/delete", userHandler.Delete)

		// Эндпоинты команд
		r.Get("/teams", teamHandler.GetTeams)
		r.Post("/teams/add", teamHandler.AddTeam)
		r.Delete("/teams/remove", teamHandler.RemoveTeam)
		r.Put("/teams/update", teamHandler.UpdateTeam)
		r.Get("/teams/view", teamHandler.ViewTeam)

		// Эндпоинты составов
		r.Get("/lineups", lineupHandler.GetLineups)
		r.Post("/lineups/generate", lineupHandler.GenerateLineup)
		r.Put("/lineups/save", lineupHandler.SaveLineup)
		r.Delete("/lineups/remove", lineupHandler.RemoveLineup)
	})

	// Создаем HTTP сервер с настройками таймаутов.
	// WriteTimeout больше таймаута внешних сервисов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.config.Services.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// Handler возвращает корневой HTTP обработчик
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if a.limiter != nil {
		a.limiter.Stop()
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
