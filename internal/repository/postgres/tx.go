package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type txKey struct{}

// querier - общий набор методов pgx.Tx, которым пользуются репозитории
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WithTx берет одно соединение из пула, открывает транзакцию и выполняет fn.
// Коммит выполняется если fn вернула nil, иначе откат. Соединение возвращается
// в пул на любом пути выхода, в том числе при панике.
// Вложенный вызов с контекстом, уже несущим транзакцию, выполняется в ней же.
func (p *Pool) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(conn)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			p.rollback(ctx, conn, tx)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

// rollback откатывает транзакцию; на закрытом соединении откат пропускается
func (p *Pool) rollback(ctx context.Context, conn *pgxpool.Conn, tx pgx.Tx) {
	if conn.Conn().IsClosed() {
		p.logger.Warn("Skipping rollback on closed connection")
		return
	}

	// Откат должен дойти до сервера даже если контекст запроса уже отменен
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		p.logger.Error("Failed to rollback transaction", "error", err)
	}
}

// run выполняет fn в транзакции из контекста, либо в собственной короткой транзакции
func (p *Pool) run(ctx context.Context, fn func(q querier) error) error {
	if tx, ok := txFromContext(ctx); ok {
		return fn(tx)
	}
	return p.WithTx(ctx, func(ctx context.Context) error {
		tx, _ := txFromContext(ctx)
		return fn(tx)
	})
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}
