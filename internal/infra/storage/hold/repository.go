package hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	"github.com/manmitra25/MM-BookingService/pkg/dbmetrics"
	"github.com/manmitra25/MM-BookingService/pkg/psqlbuilder"
)

// holdColumns полный список колонок таблицы booking_holds
var holdColumns = []string{
	"id",
	"counselor_id",
	"start_time",
	"end_time",
	"owner_session_id",
	"expires_at",
	"created_at",
}

// Repository репозиторий временных удержаний слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория удержаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новое удержание слота.
// Exclusion constraint на booking_holds не может учитывать expires_at
// (now() не immutable), поэтому перед вставкой usecase в той же
// транзакции вычищает истёкшие строки консультанта через
// DeleteExpiredForCounselor. Конфликт интервалов на уровне БД
// транслируется в ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, hold *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_holds").
		Columns(
			"id",
			"counselor_id",
			"start_time",
			"end_time",
			"owner_session_id",
			"expires_at",
		).
		Values(
			hold.ID,
			hold.CounselorID,
			hold.StartTime,
			hold.EndTime,
			hold.OwnerSessionID,
			hold.ExpiresAt,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		if isIntervalConflict(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	hold.CreatedAt = createdAt.Time

	return hold, nil
}

// GetOverlapping получает живые удержания консультанта, пересекающиеся
// с интервалом. Фильтр expires_at > now обязателен на всех путях
// чтения: истёкшая строка невидима независимо от того, успел ли её
// удалить фоновый уборщик.
func (r *Repository) GetOverlapping(ctx context.Context, counselorID string, rng domain.TimeRange, now time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holdColumns...).
		From("booking_holds").
		Where(squirrel.Eq{"counselor_id": counselorID}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.Lt{"start_time": rng.End}).
		Where(squirrel.Gt{"end_time": rng.Start}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanHolds(rows)
}

// ListLiveBetween получает живые удержания консультанта, начинающиеся
// в указанном периоде. Используется генератором слотов для разметки
// занятых интервалов.
func (r *Repository) ListLiveBetween(ctx context.Context, counselorID string, from, to time.Time, now time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holdColumns...).
		From("booking_holds").
		Where(squirrel.Eq{"counselor_id": counselorID}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanHolds(rows)
}

// DeleteExpiredForCounselor удаляет истёкшие удержания консультанта.
// Вызывается в транзакции создания удержания, чтобы освободить место
// под exclusion constraint до вставки новой строки.
func (r *Repository) DeleteExpiredForCounselor(ctx context.Context, counselorID string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_holds").
		Where(squirrel.Eq{"counselor_id": counselorID}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteExpiredForCounselor - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteExpiredForCounselor - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет все истёкшие удержания и возвращает число
// удалённых строк. Фоновая гигиена: корректность не зависит от того,
// как часто и успешно она выполняется.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// isIntervalConflict определяет, является ли ошибка нарушением
// ограничения исключения интервала
func isIntervalConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	code := string(pqErr.Code)
	return code == pgerrcode.ExclusionViolation || code == pgerrcode.UniqueViolation
}

// scanHolds сканирует результаты запроса в слайс удержаний
func scanHolds(rows *sql.Rows) ([]*domain.Hold, error) {
	holds := make([]*domain.Hold, 0)

	for rows.Next() {
		var hold domain.Hold
		var expiresAt, createdAt sql.NullTime

		err := rows.Scan(
			&hold.ID,
			&hold.CounselorID,
			&hold.StartTime,
			&hold.EndTime,
			&hold.OwnerSessionID,
			&expiresAt,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanHolds - scan row: %v", ErrScanRow, err)
		}

		hold.ExpiresAt = expiresAt.Time
		hold.CreatedAt = createdAt.Time

		holds = append(holds, &hold)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanHolds - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}
