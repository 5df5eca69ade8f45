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

	confirmHoldHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/confirm_hold"
	createHoldHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_hold"
	getCapacityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_capacity"
	getSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_slots"
	releaseHoldHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/release_hold"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	blockRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/block"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/hold"
	serviceConfigRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/serviceconfig"
	windowRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/window"
	directoryClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/directoryservice"
	capacityService "github.com/m04kA/SMC-ScheduleService/internal/service/capacity"
	holdsService "github.com/m04kA/SMC-ScheduleService/internal/service/holds"
	createHoldUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_hold"
	generateSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_slots"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
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

	// Инициализируем клиент справочника ресурсов
	directory := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (DirectoryService=%s timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository       *bookingRepo.Repository
		holdRepository          *holdRepo.Repository
		windowRepository        *windowRepo.Repository
		blockRepository         *blockRepo.Repository
		serviceConfigRepository *serviceConfigRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		holdRepository = holdRepo.NewRepository(wrappedDB)
		windowRepository = windowRepo.NewRepository(wrappedDB)
		blockRepository = blockRepo.NewRepository(wrappedDB)
		serviceConfigRepository = serviceConfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		holdRepository = holdRepo.NewRepository(db)
		windowRepository = windowRepo.NewRepository(db)
		blockRepository = blockRepo.NewRepository(db)
		serviceConfigRepository = serviceConfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Метрики бизнес-событий для сервисов и use cases
	var holdsMetrics holdsService.MetricsRecorder = &holdsService.NopMetrics{}
	var createHoldMetrics createHoldUC.MetricsRecorder = &createHoldUC.NopMetrics{}
	var slotsMetrics generateSlotsUC.MetricsRecorder = &generateSlotsUC.NopMetrics{}
	if cfg.Metrics.Enabled {
		holdsMetrics = metricsCollector
		createHoldMetrics = metricsCollector
		slotsMetrics = metricsCollector
	}

	// Инициализируем сервисы
	holdsSvc := holdsService.NewService(
		holdRepository,
		bookingRepository,
		txMgr,
		log,
		holdsMetrics,
	)
	capacitySvc := capacityService.NewService(
		bookingRepository,
		holdRepository,
		serviceConfigRepository,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		windowRepository,
		bookingRepository,
		holdRepository,
		blockRepository,
		serviceConfigRepository,
		directory,
		log,
		slotsMetrics,
	)

	createHoldUseCase := createHoldUC.NewUseCase(
		holdRepository,
		bookingRepository,
		blockRepository,
		serviceConfigRepository,
		directory,
		txMgr,
		log,
		createHoldMetrics,
		time.Duration(cfg.Holds.TTLMinutes)*time.Minute,
	)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(generateSlotsUseCase, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	releaseHold := releaseHoldHandler.NewHandler(holdsSvc, log)
	confirmHold := confirmHoldHandler.NewHandler(holdsSvc, log)
	getCapacity := getCapacityHandler.NewHandler(capacitySvc, log)

	// Фоновая очистка истекших холдов
	sweeperCtx, cancelSweeper := context.WithCancel(context.Background())
	stopSweeperCh := make(chan struct{})
	go holdsSvc.RunSweeper(
		sweeperCtx,
		time.Duration(cfg.Holds.SweepIntervalMinutes)*time.Minute,
		stopSweeperCh,
	)
	log.Info("Hold sweeper started (interval=%dm, ttl=%dm)",
		cfg.Holds.SweepIntervalMinutes, cfg.Holds.TTLMinutes)

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

	// Генерация доступных слотов для ресурса
	api.HandleFunc("/resources/{resourceId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// Проверка вместимости интервала
	api.HandleFunc("/capacity", getCapacity.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Owner-Token header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.OwnerToken)

	// Создание холда
	protected.HandleFunc("/holds", createHold.Handle).Methods(http.MethodPost)

	// Освобождение холда (идемпотентно)
	protected.HandleFunc("/holds/{holdId}", releaseHold.Handle).Methods(http.MethodDelete)

	// Подтверждение холда (холд -> бронирование)
	protected.HandleFunc("/holds/{holdId}/confirm", confirmHold.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновую очистку холдов
	close(stopSweeperCh)
	cancelSweeper()

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
