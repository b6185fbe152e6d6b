package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	bookingRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/booking"
	statsRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/stats"
	"github.com/manmitra25/MM-BookingService/internal/service/bookings/models"
	"github.com/manmitra25/MM-BookingService/pkg/ptr"
)

// Service сервис чтения записей на консультации
type Service struct {
	bookingRepo BookingRepository
	statsRepo   StatsRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(bookingRepo BookingRepository, statsRepo StatsRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		statsRepo:   statsRepo,
		logger:      logger,
	}
}

// GetByID получает запись по ID.
// Запись видят её студент, её консультант и администраторы.
func (s *Service) GetByID(ctx context.Context, id int64, actorID string, actorRole string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%s role=%s", id, actorID, actorRole)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := checkBookingAccess(booking, actorID, domain.ActorRole(actorRole)); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%s to booking id=%d", actorID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю записей пользователя.
// Студент и консультант видят только собственные записи,
// администраторы произвольного пользователя. Роль актора определяет,
// по какой стороне записи фильтровать.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, actor=%s role=%s",
		req.UserID, req.ActorID, req.ActorRole)

	role := domain.ActorRole(req.ActorRole)
	if !role.IsAdmin() && req.ActorID != req.UserID {
		s.logger.Warn("GetUserBookings: actor=%s denied for user=%s", req.ActorID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.BookingsFilter{}
	switch role {
	case domain.RoleCounselor:
		filter.CounselorID = ptr.Ptr(req.UserID)
	default:
		filter.StudentID = ptr.Ptr(req.UserID)
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCounselorStats получает счётчики сессий консультанта.
// Консультант видит собственные счётчики, администраторы любые.
// Отсутствие строки означает, что сессий ещё не было: возвращаются
// нулевые счётчики, а не ошибка.
func (s *Service) GetCounselorStats(ctx context.Context, counselorID string, actorID string, actorRole string) (*models.SessionStatsResponse, error) {
	s.logger.Info("GetCounselorStats: fetching stats for counselor=%s, actor=%s role=%s",
		counselorID, actorID, actorRole)

	role := domain.ActorRole(actorRole)
	if !role.IsAdmin() && !(role == domain.RoleCounselor && actorID == counselorID) {
		s.logger.Warn("GetCounselorStats: actor=%s denied for counselor=%s", actorID, counselorID)
		return nil, ErrAccessDenied
	}

	stats, err := s.statsRepo.GetByCounselor(ctx, counselorID)
	if err != nil {
		if errors.Is(err, statsRepo.ErrStatsNotFound) {
			return models.FromDomainSessionStats(&domain.CounselorSessionStats{CounselorID: counselorID}), nil
		}
		s.logger.Error("GetCounselorStats: repository error for counselor=%s: %v", counselorID, err)
		return nil, fmt.Errorf("%w: GetCounselorStats - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCounselorStats: successfully fetched stats for counselor=%s", counselorID)
	return models.FromDomainSessionStats(stats), nil
}

// checkBookingAccess проверяет право актора видеть запись
func checkBookingAccess(booking *domain.Booking, actorID string, role domain.ActorRole) error {
	if role.IsAdmin() {
		return nil
	}
	if booking.StudentID == actorID || booking.CounselorID == actorID {
		return nil
	}
	return ErrAccessDenied
}
