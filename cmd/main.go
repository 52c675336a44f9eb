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

	applyTemplatesHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/apply_templates"
	cleanupTemplateHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/cleanup_template"
	createReservationHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/create_reservation"
	createTemplateHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/create_template"
	deleteReservationHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/delete_reservation"
	deleteTemplateHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/delete_template"
	getReservationHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/get_reservation"
	getRoomReservationsHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/get_room_reservations"
	listTemplatesHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/list_templates"
	moveReservationHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/move_reservation"
	updateTemplateHandler "github.com/m04kA/SRS-RoomReservationService/internal/api/handlers/update_template"
	"github.com/m04kA/SRS-RoomReservationService/internal/api/middleware"
	"github.com/m04kA/SRS-RoomReservationService/internal/config"
	"github.com/m04kA/SRS-RoomReservationService/internal/infra/audit"
	reservationRepo "github.com/m04kA/SRS-RoomReservationService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SRS-RoomReservationService/internal/infra/storage/slot"
	templateRepo "github.com/m04kA/SRS-RoomReservationService/internal/infra/storage/template"
	campusServiceClient "github.com/m04kA/SRS-RoomReservationService/internal/integrations/campusservice"
	periodCalendarClient "github.com/m04kA/SRS-RoomReservationService/internal/integrations/periodcalendar"
	reservationsService "github.com/m04kA/SRS-RoomReservationService/internal/service/reservations"
	templatesService "github.com/m04kA/SRS-RoomReservationService/internal/service/templates"
	applyTemplatesUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/apply_templates"
	cleanupTemplateUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/cleanup_template"
	createReservationUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/create_reservation"
	createTemplateUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/create_template"
	deleteReservationUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/delete_reservation"
	deleteTemplateUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/delete_template"
	getReservationUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/get_reservation"
	getRoomReservationsUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/get_room_reservations"
	listTemplatesUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/list_templates"
	moveReservationUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/move_reservation"
	updateTemplateUC "github.com/m04kA/SRS-RoomReservationService/internal/usecase/update_template"
	"github.com/m04kA/SRS-RoomReservationService/pkg/dbmetrics"
	"github.com/m04kA/SRS-RoomReservationService/pkg/logger"
	"github.com/m04kA/SRS-RoomReservationService/pkg/metrics"
	"github.com/m04kA/SRS-RoomReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SRS-RoomReservationService/pkg/txmanager"
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

	log.Info("Starting SRS-RoomReservationService...")
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
	campusClient := campusServiceClient.NewClient(
		cfg.CampusService.URL,
		time.Duration(cfg.CampusService.Timeout)*time.Second,
		log,
	)
	calendarClient := periodCalendarClient.NewClient(
		cfg.PeriodService.URL,
		time.Duration(cfg.PeriodService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CampusService=%s timeout=%ds, PeriodService=%s timeout=%ds)",
		cfg.CampusService.URL, cfg.CampusService.Timeout, cfg.PeriodService.URL, cfg.PeriodService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		slotRepository        *slotRepo.Repository
		templateRepository    *templateRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		templateRepository = templateRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		templateRepository = templateRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationEngine := reservationsService.NewService(
		reservationRepository,
		slotRepository,
		txMgr,
		log,
	)
	templateSvc := templatesService.NewService(templateRepository, log)
	auditSink := audit.NewSink(log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(reservationEngine, campusClient, calendarClient, log)
	getReservationUseCase := getReservationUC.NewUseCase(reservationEngine, log)
	deleteReservationUseCase := deleteReservationUC.NewUseCase(reservationEngine, campusClient, log)
	moveReservationUseCase := moveReservationUC.NewUseCase(reservationEngine, campusClient, calendarClient, log)
	getRoomReservationsUseCase := getRoomReservationsUC.NewUseCase(reservationEngine, log)
	createTemplateUseCase := createTemplateUC.NewUseCase(templateSvc, campusClient, log)
	listTemplatesUseCase := listTemplatesUC.NewUseCase(templateSvc, log)
	updateTemplateUseCase := updateTemplateUC.NewUseCase(templateSvc, campusClient, log)
	deleteTemplateUseCase := deleteTemplateUC.NewUseCase(templateSvc, campusClient, log)
	applyTemplatesUseCase := applyTemplatesUC.NewUseCase(
		templateSvc,
		reservationEngine,
		slotRepository,
		campusClient,
		calendarClient,
		auditSink,
		log,
	)
	cleanupTemplateUseCase := cleanupTemplateUC.NewUseCase(reservationEngine, campusClient, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(getReservationUseCase, log)
	deleteReservation := deleteReservationHandler.NewHandler(deleteReservationUseCase, log)
	moveReservation := moveReservationHandler.NewHandler(moveReservationUseCase, log)
	getRoomReservations := getRoomReservationsHandler.NewHandler(getRoomReservationsUseCase, log)
	createTemplate := createTemplateHandler.NewHandler(createTemplateUseCase, log)
	listTemplates := listTemplatesHandler.NewHandler(listTemplatesUseCase, log)
	updateTemplate := updateTemplateHandler.NewHandler(updateTemplateUseCase, log)
	deleteTemplate := deleteTemplateHandler.NewHandler(deleteTemplateUseCase, log)
	applyTemplates := applyTemplatesHandler.NewHandler(applyTemplatesUseCase, log)
	cleanupTemplate := cleanupTemplateHandler.NewHandler(cleanupTemplateUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание аудитории на дату
	api.HandleFunc("/rooms/{id}/reservations", getRoomReservations.Handle).Methods(http.MethodGet)

	// Список шаблонов
	api.HandleFunc("/templates", listTemplates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}", deleteReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/reservations/{id}/move", moveReservation.Handle).Methods(http.MethodPost)

	// --- Шаблоны (административные операции) ---
	protected.HandleFunc("/templates", createTemplate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/templates/apply", applyTemplates.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/templates/{id}", updateTemplate.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/templates/{id}", deleteTemplate.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/templates/{id}/cleanup", cleanupTemplate.Handle).Methods(http.MethodPost)

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
