package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/manmitra25/MM-BookingService/pkg/dbmetrics"
)

// maxSerializableRetries максимальное число повторов сериализуемой
// транзакции при serialization failure (SQLSTATE 40001)
const maxSerializableRetries = 3

// ErrTransaction возвращается при ошибках управления транзакцией
var ErrTransaction = errors.New("txmanager: transaction error")

// TransactionManager менеджер транзакций с метриками.
// Транзакция передается в репозитории через context (см. pkg/dbmetrics).
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает менеджер транзакций поверх обёрнутой БД
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, "default", fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, "read_only", fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// При serialization failure транзакция автоматически повторяется:
// конкурирующие бронирования штатно приводят к 40001, и повтор
// позволяет проигравшему запросу увидеть актуальное состояние.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 0; attempt <= maxSerializableRetries; attempt++ {
		if attempt > 0 {
			m.db.Metrics().TxRetries.WithLabelValues("serializable").Inc()
		}

		lastErr = m.run(ctx, opts, "serializable", fn)
		if lastErr == nil || !isRetryable(lastErr) {
			return lastErr
		}

		if ctx.Err() != nil {
			return fmt.Errorf("%w: context cancelled during retry: %v", ErrTransaction, ctx.Err())
		}
	}

	return fmt.Errorf("%w: serializable transaction failed after %d retries: %v",
		ErrTransaction, maxSerializableRetries, lastErr)
}

// run выполняет fn в одной транзакции с фиксацией метрик
func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, isolation string, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		m.db.Metrics().TxTotal.WithLabelValues(isolation, "begin_error").Inc()
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err = fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			m.db.Metrics().TxTotal.WithLabelValues(isolation, "rollback_error").Inc()
			return fmt.Errorf("%w: rollback after %v: %v", ErrTransaction, err, rbErr)
		}
		m.db.Metrics().TxTotal.WithLabelValues(isolation, "rolled_back").Inc()
		return err
	}

	if err = tx.Commit(); err != nil {
		m.db.Metrics().TxTotal.WithLabelValues(isolation, "commit_error").Inc()
		if isRetryable(err) {
			return err
		}
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	m.db.Metrics().TxTotal.WithLabelValues(isolation, "committed").Inc()
	return nil
}

// isRetryable определяет, стоит ли повторять транзакцию.
// Повторяем только serialization failure и deadlock, остальные ошибки
// бизнесовые и должны быть возвращены вызывающему как есть.
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	code := string(pqErr.Code)
	return code == pgerrcode.SerializationFailure || code == pgerrcode.DeadlockDetected
}
