package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/lineup-service/internal/config"
)

// Pool владеет пулом соединений с PostgreSQL.
// Acquire блокируется, пока все MaxConns соединений выданы, до освобождения
// соединения или отмены контекста.
type Pool struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPool создает пул соединений с заданными границами и проверяет подключение
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connection pool created", "min_conns", cfg.MinConns, "max_conns", cfg.MaxConns)

	return &Pool{pool: pool, logger: logger}, nil
}

// Acquire выдает соединение из пула. Вызывающий обязан вернуть его через Release
func (p *Pool) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// Release возвращает соединение в пул
func (p *Pool) Release(conn *pgxpool.Conn) {
	conn.Release()
}

// Ping проверяет доступность БД
func (p *Pool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// AcquiredConns возвращает число выданных в данный момент соединений
func (p *Pool) AcquiredConns() int32 {
	return p.pool.Stat().AcquiredConns()
}

// Close закрывает все соединения пула
func (p *Pool) Close() {
	p.pool.Close()
	p.logger.Info("Connection pool closed")
}
