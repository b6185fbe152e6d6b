package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	"github.com/manmitra25/MM-BookingService/pkg/dbmetrics"
	"github.com/manmitra25/MM-BookingService/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"student_id",
	"counselor_id",
	"start_time",
	"end_time",
	"status",
	"session_type",
	"user_notes",
	"counselor_notes",
	"meeting_link",
	"student_rating",
	"counselor_rating",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"rescheduled_from",
	"rescheduled_to",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Таблица bookings несёт exclusion constraint по (counselor_id,
// пересечение интервала) для confirmed/completed строк: проигравший
// конкурентную гонку insert завершается ошибкой 23P01/23505, которая
// транслируется в ErrSlotConflict. Предварительная проверка в usecase
// нужна только для дружелюбного отказа без попытки записи.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"student_id",
			"counselor_id",
			"start_time",
			"end_time",
			"status",
			"session_type",
			"user_notes",
			"meeting_link",
		).
		Values(
			booking.StudentID,
			booking.CounselorID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.SessionType,
			booking.UserNotes,
			booking.MeetingLink,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isIntervalConflict(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции берёт блокировку строки (FOR UPDATE), чтобы
// переходы статуса не гонялись между собой.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetOverlapping получает бронирования консультанта со статусом
// confirmed/completed, пересекающиеся с указанным интервалом.
// Полуоткрытая семантика интервалов: границы не считаются пересечением.
func (r *Repository) GetOverlapping(ctx context.Context, counselorID string, rng domain.TimeRange) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatuses := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		blockingStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"counselor_id": counselorID}).
		Where(squirrel.Eq{"status": blockingStatuses}).
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

	return scanBookings(rows)
}

// ListWithFilter получает бронирования с гибкой фильтрацией по
// студенту, консультанту, статусу и периоду
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("start_time DESC")

	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.CounselorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"counselor_id": *filter.CounselorID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyBlocking {
		blockingStatuses := make([]string, len(domain.BlockingStatuses))
		for i, s := range domain.BlockingStatuses {
			blockingStatuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": blockingStatuses})
	}
	if filter.StartAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartAfter})
	}
	if filter.StartBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.StartBefore})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel переводит бронирование в статус cancelled с фиксацией
// инициатора и причины. Условие status = confirmed в WHERE повторяет
// проверку usecase на стороне записи: проигравший гонку переход
// не затронет ни одной строки.
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledBy string, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Complete переводит бронирование в статус completed с опциональными
// заметками консультанта и оценкой
func (r *Repository) Complete(ctx context.Context, id int64, counselorNotes *string, counselorRating *int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed})

	if counselorNotes != nil {
		updateBuilder = updateBuilder.Set("counselor_notes", *counselorNotes)
	}
	if counselorRating != nil {
		updateBuilder = updateBuilder.Set("counselor_rating", *counselorRating)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// isIntervalConflict определяет, является ли ошибка нарушением
// ограничения уникальности/исключения интервала
func isIntervalConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	code := string(pqErr.Code)
	return code == pgerrcode.ExclusionViolation || code == pgerrcode.UniqueViolation
}

// scanBooking сканирует одну строку результата в бронирование
func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.StudentID,
		&booking.CounselorID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.SessionType,
		&booking.UserNotes,
		&booking.CounselorNotes,
		&booking.MeetingLink,
		&booking.StudentRating,
		&booking.CounselorRating,
		&booking.CancelledBy,
		&booking.CancellationReason,
		&cancelledAt,
		&booking.RescheduledFrom,
		&booking.RescheduledTo,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var cancelledAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.StudentID,
			&booking.CounselorID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.SessionType,
			&booking.UserNotes,
			&booking.CounselorNotes,
			&booking.MeetingLink,
			&booking.StudentRating,
			&booking.CounselorRating,
			&booking.CancelledBy,
			&booking.CancellationReason,
			&cancelledAt,
			&booking.RescheduledFrom,
			&booking.RescheduledTo,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if cancelledAt.Valid {
			booking.CancelledAt = &cancelledAt.Time
		}
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
