package stats

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	"github.com/manmitra25/MM-BookingService/pkg/dbmetrics"
	"github.com/manmitra25/MM-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий счётчиков сессий консультанта
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// IncrementTotal увеличивает счётчик всех сессий консультанта.
// Вызывается в транзакции создания бронирования: счётчики меняются
// атомарно с породившим их переходом.
func (r *Repository) IncrementTotal(ctx context.Context, counselorID string) error {
	return r.increment(ctx, counselorID, "total_sessions")
}

// IncrementCompleted увеличивает счётчик завершённых сессий консультанта
func (r *Repository) IncrementCompleted(ctx context.Context, counselorID string) error {
	return r.increment(ctx, counselorID, "completed_sessions")
}

// IncrementCancelled увеличивает счётчик отменённых сессий консультанта
func (r *Repository) IncrementCancelled(ctx context.Context, counselorID string) error {
	return r.increment(ctx, counselorID, "cancelled_sessions")
}

// increment выполняет upsert строки статистики с приращением колонки.
// Первый инкремент консультанта создаёт строку с нулями, дальнейшие
// накапливают значение.
func (r *Repository) increment(ctx context.Context, counselorID string, column string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("counselor_session_stats").
		Columns("counselor_id", column, "updated_at").
		Values(counselorID, 1, squirrel.Expr("NOW()")).
		Suffix(fmt.Sprintf(
			"ON CONFLICT (counselor_id) DO UPDATE SET %s = counselor_session_stats.%s + 1, updated_at = NOW()",
			column, column,
		)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: increment %s - build upsert query: %v", ErrBuildQuery, column, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: increment %s - execute upsert: %v", ErrExecQuery, column, err)
	}

	return nil
}

// GetByCounselor получает счётчики сессий консультанта
func (r *Repository) GetByCounselor(ctx context.Context, counselorID string) (*domain.CounselorSessionStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"counselor_id",
		"total_sessions",
		"completed_sessions",
		"cancelled_sessions",
		"updated_at",
	).
		From("counselor_session_stats").
		Where(squirrel.Eq{"counselor_id": counselorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCounselor - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.CounselorSessionStats
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.CounselorID,
		&stats.TotalSessions,
		&stats.CompletedSessions,
		&stats.CancelledSessions,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStatsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCounselor - scan stats: %v", ErrScanRow, err)
	}

	stats.UpdatedAt = updatedAt.Time

	return &stats, nil
}
