package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// SQLExecutor - общий интерфейс *sql.DB и *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxFunc - единица работы внутри транзакции. Транзакция передаётся через ctx.
type TxFunc func(ctx context.Context) error

type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

type txKey struct{}

// txState держит открытую транзакцию. Одно соединение не умеет выполнять
// несколько запросов одновременно, поэтому параллельные обращения
// из горутин сериализуются мьютексом (запрос + чтение строк).
type txState struct {
	tx *sql.Tx
	mu sync.Mutex
}

type sqlTxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

func (m *sqlTxManager) WithinTx(ctx context.Context, fn TxFunc) error {
	// Вложенный вызов присоединяется к внешней транзакции.
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, &txState{tx: tx})); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

// InTx сообщает, выполняется ли ctx внутри WithinTx.
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*txState)
	return ok
}

// run выполняет fn на транзакции из контекста, если она есть, иначе на пуле.
func run(ctx context.Context, db *sql.DB, fn func(exec SQLExecutor) error) error {
	if st, ok := ctx.Value(txKey{}).(*txState); ok && st != nil {
		st.mu.Lock()
		defer st.mu.Unlock()
		return fn(st.tx)
	}
	return fn(db)
}
