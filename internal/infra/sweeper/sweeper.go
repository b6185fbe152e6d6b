package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// HoldRepository интерфейс репозитория удержаний слотов
type HoldRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновая уборка истёкших удержаний.
// Гигиена таблицы, не механизм корректности: все пути чтения и так
// фильтруют истёкшие строки по expires_at.
type Sweeper struct {
	holdRepo HoldRepository
	cron     *cron.Cron
	interval int
	logger   Logger
}

// New создает новый экземпляр уборщика
func New(holdRepo HoldRepository, intervalMinutes int, logger Logger) *Sweeper {
	if intervalMinutes <= 0 {
		intervalMinutes = 1
	}
	return &Sweeper{
		holdRepo: holdRepo,
		cron:     cron.New(),
		interval: intervalMinutes,
		logger:   logger,
	}
}

// Start запускает периодическую уборку
func (s *Sweeper) Start() error {
	spec := fmt.Sprintf("@every %dm", s.interval)

	_, err := s.cron.AddFunc(spec, s.sweep)
	if err != nil {
		return fmt.Errorf("sweeper: failed to schedule job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Sweeper started, interval=%dm", s.interval)
	return nil
}

// Stop останавливает уборку и дожидается завершения текущего прохода
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.holdRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("Sweeper: failed to delete expired holds: %v", err)
		return
	}

	if deleted > 0 {
		s.logger.Info("Sweeper: deleted %d expired hold(s)", deleted)
	}
}
