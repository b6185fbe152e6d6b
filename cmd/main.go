package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/manmitra25/MM-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/manmitra25/MM-BookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/manmitra25/MM-BookingService/internal/api/handlers/create_booking"
	createHoldHandler "github.com/manmitra25/MM-BookingService/internal/api/handlers/create_hold"
	getAvailableSlotsHandler "github.com/manmitra25/MM-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/manmitra25/MM-BookingService/internal/api/handlers/get_booking"
	getCounselorStatsHandler "github.com/manmitra25/MM-BookingService/internal/api/handlers/get_counselor_stats"
	getUserBookingsHandler "github.com/manmitra25/MM-BookingService/internal/api/handlers/get_user_bookings"
	"github.com/manmitra25/MM-BookingService/internal/api/middleware"
	"github.com/manmitra25/MM-BookingService/internal/config"
	bookingRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/booking"
	holdRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/hold"
	statsRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/stats"
	"github.com/manmitra25/MM-BookingService/internal/infra/sweeper"
	auditClient "github.com/manmitra25/MM-BookingService/internal/integrations/auditsink"
	directoryClient "github.com/manmitra25/MM-BookingService/internal/integrations/counselordirectory"
	notifierClient "github.com/manmitra25/MM-BookingService/internal/integrations/notifier"
	bookingsService "github.com/manmitra25/MM-BookingService/internal/service/bookings"
	cancelBookingUC "github.com/manmitra25/MM-BookingService/internal/usecase/cancel_booking"
	completeBookingUC "github.com/manmitra25/MM-BookingService/internal/usecase/complete_booking"
	createBookingUC "github.com/manmitra25/MM-BookingService/internal/usecase/create_booking"
	createHoldUC "github.com/manmitra25/MM-BookingService/internal/usecase/create_hold"
	getAvailableSlotsUC "github.com/manmitra25/MM-BookingService/internal/usecase/get_available_slots"
	"github.com/manmitra25/MM-BookingService/pkg/dbmetrics"
	"github.com/manmitra25/MM-BookingService/pkg/logger"
	"github.com/manmitra25/MM-BookingService/pkg/metrics"
	"github.com/manmitra25/MM-BookingService/pkg/simpletxmanager"
	"github.com/manmitra25/MM-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MM-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(
		cfg.CounselorService.URL,
		time.Duration(cfg.CounselorService.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.NotifierService.URL,
		time.Duration(cfg.NotifierService.Timeout)*time.Second,
		log,
	)
	audit := auditClient.NewClient(
		cfg.AuditService.URL,
		time.Duration(cfg.AuditService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CounselorService=%s, NotifierService=%s, AuditService=%s)",
		cfg.CounselorService.URL, cfg.NotifierService.URL, cfg.AuditService.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		holdRepository    *holdRepo.Repository
		statsRepository   *statsRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		holdRepository = holdRepo.NewRepository(wrappedDB)
		statsRepository = statsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		holdRepository = holdRepo.NewRepository(db)
		statsRepository = statsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, statsRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		holdRepository,
		directory,
		cfg.Booking.SessionSlotMinutes,
		log,
	)

	createHoldUseCase := createHoldUC.NewUseCase(
		holdRepository,
		bookingRepository,
		txMgr,
		cfg.Booking.HoldDurationMinutes,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		holdRepository,
		statsRepository,
		directory,
		notifier,
		audit,
		txMgr,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		statsRepository,
		notifier,
		audit,
		txMgr,
		cfg.Booking.CancellationCutoffHours,
		log,
	)

	completeBookingUseCase := completeBookingUC.NewUseCase(
		bookingRepository,
		statsRepository,
		notifier,
		audit,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	completeBooking := completeBookingHandler.NewHandler(completeBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCounselorStats := getCounselorStatsHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)

	// Запускаем фоновую уборку истёкших удержаний
	if cfg.Sweeper.Enabled {
		holdSweeper := sweeper.New(holdRepository, cfg.Sweeper.IntervalMinutes, log)
		if err := holdSweeper.Start(); err != nil {
			log.Fatal("Failed to start sweeper: %v", err)
		}
		defer holdSweeper.Stop()
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов консультанта
	api.HandleFunc("/counselors/{counselorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Удержание слота доступно и анонимным сессиям
	holds := api.PathPrefix("/holds").Subrouter()
	holds.Use(middleware.OptionalAuth)
	holds.HandleFunc("", createHold.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание записи
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Завершение сессии консультантом
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Счётчики сессий консультанта
	protected.HandleFunc("/counselors/{counselorId}/stats", getCounselorStats.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
