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

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	createScheduleExceptionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_schedule_exception"
	deleteScheduleExceptionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_schedule_exception"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getSalonScheduleHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_salon_schedule"
	getStaffAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_staff_appointments"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment_status"
	updateSalonSettingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_salon_settings"
	updateWorkingHoursHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_working_hours"
	validateBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	scheduleService "github.com/m04kA/SMC-SalonService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	validateBookingUC "github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
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

	log.Info("Starting SMC-SalonService...")
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

	// Инициализируем интеграционного клиента
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		salonRepository       *salonRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		salonRepository = salonRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		salonRepository = salonRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		salonRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		salonRepository,
		catalogClient,
		log,
	)

	validateBookingUseCase := validateBookingUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		salonRepository,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		salonRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSalonSchedule := getSalonScheduleHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	createScheduleException := createScheduleExceptionHandler.NewHandler(scheduleSvc, log)
	deleteScheduleException := deleteScheduleExceptionHandler.NewHandler(scheduleSvc, log)
	updateSalonSettings := updateSalonSettingsHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Получение доступных слотов для записи к мастеру
	api.HandleFunc("/salons/{salonId}/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Предварительная проверка интервала записи
	api.HandleFunc("/salons/{salonId}/appointments/validate",
		validateBooking.Handle).Methods(http.MethodPost)

	// Эффективное недельное расписание салона/мастера
	api.HandleFunc("/salons/{salonId}/schedule",
		getSalonSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (completed / no_show)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Календарь мастера
	protected.HandleFunc("/salons/{salonId}/staff/{staffId}/appointments",
		getStaffAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для менеджеров) ---
	// Замена недельного шаблона рабочих часов
	protected.HandleFunc("/salons/{salonId}/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)

	// Создание исключения расписания
	protected.HandleFunc("/salons/{salonId}/schedule-exceptions",
		createScheduleException.Handle).Methods(http.MethodPost)

	// Удаление исключения расписания
	protected.HandleFunc("/salons/{salonId}/schedule-exceptions/{exceptionId}",
		deleteScheduleException.Handle).Methods(http.MethodDelete)

	// Обновление настроек салона (таймзона, шаг слотов, буфер)
	protected.HandleFunc("/salons/{salonId}/settings", updateSalonSettings.Handle).Methods(http.MethodPut)

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
