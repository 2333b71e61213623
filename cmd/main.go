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

	"cloud.google.com/go/firestore"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_available_slots"
	getBusyIntervalsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_busy_intervals"
	getStoreScheduleHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_store_schedule"
	healthHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/health"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	scheduleRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/memcalendar"
	calendarService "github.com/m04kA/SMC-SalonBookingService/internal/service/calendar"
	scheduleService "github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
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

	log.Info("Starting SMC-SalonBookingService...")

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Schedule.Timezone, err)
	}
	log.Info("Store timezone: %s", location)

	// Инициализируем метрики (если включены).
	// nil *metrics.Metrics безопасен: методы ничего не делают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Логгеры компонентов с полем component
	calendarLog := log.With("component", "calendar")
	scheduleLog := log.With("component", "schedule")

	ctx := context.Background()
	healthChecks := make(map[string]healthHandler.Pinger)

	// Источник расписаний магазинов
	var scheduleRepository scheduleService.ScheduleRepository

	switch cfg.Schedule.Backend {
	case config.ScheduleBackendFirestore:
		var opts []option.ClientOption
		if cfg.Firestore.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firestore.CredentialsFile))
		}
		fsClient, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, opts...)
		if err != nil {
			log.Fatal("Failed to create firestore client: %v", err)
		}
		defer fsClient.Close()

		scheduleRepository = scheduleRepo.NewFirestoreRepository(fsClient, cfg.Firestore.Collection)
		log.Info("Schedules are read from firestore (project=%s, collection=%s)",
			cfg.Firestore.ProjectID, cfg.Firestore.Collection)

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Расписание деградирует до значений по умолчанию, поэтому недоступная БД не мешает старту
		if err := db.PingContext(ctx); err != nil {
			log.Warn("Database is not reachable, default schedules will be used: %v", err)
		} else {
			log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
				cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
		}
		healthChecks["postgres"] = db.PingContext

		if cfg.Metrics.Enabled {
			scheduleRepository = scheduleRepo.NewRepository(dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh))
			log.Info("Database metrics collection started")
		} else {
			scheduleRepository = scheduleRepo.NewRepository(db)
		}
	}

	// Внешний календарь
	var calendarClient calendarService.CalendarClient

	switch cfg.Calendar.Provider {
	case config.CalendarProviderMemory:
		calendarClient = memcalendar.New()
		log.Warn("Using in-memory calendar, bookings are not persisted")

	default:
		googleClient, err := googlecalendar.NewClient(ctx, cfg.Calendar.CredentialsFile, location, calendarLog)
		if err != nil {
			log.Fatal("Failed to create Google Calendar client: %v", err)
		}
		calendarClient = googleClient
		log.Info("Google Calendar client initialized (read timeout=%s, write timeout=%s)",
			cfg.Calendar.ReadTimeout(), cfg.Calendar.WriteTimeout())
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		cfg.Schedule.LookupTimeout(),
		cfg.Schedule.DefaultCalendarID,
		metricsCollector,
		scheduleLog,
	)
	calendarSvc := calendarService.NewService(
		calendarClient,
		calendarService.Options{
			ReadTimeout:        cfg.Calendar.ReadTimeout(),
			WriteTimeout:       cfg.Calendar.WriteTimeout(),
			InsertAttempts:     cfg.Calendar.InsertAttempts,
			BreakerMaxFailures: uint32(cfg.Calendar.BreakerMaxFailures),
			BreakerOpenTimeout: cfg.Calendar.BreakerOpenTimeout(),
		},
		metricsCollector,
		calendarLog,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleSvc,
		calendarSvc,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		scheduleSvc,
		calendarSvc,
		metricsCollector,
		cfg.Schedule.MaxBookingMinutes,
		log,
	)

	// Ограничитель частоты бронирований: Redis, если доступен, иначе в памяти процесса
	var limiter middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewLocalRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())

		if cfg.Redis.Enabled {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer rdb.Close()

			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Warn("Redis is not reachable (%s), using in-process rate limiter: %v", cfg.Redis.Addr, err)
			} else {
				limiter = middleware.NewRedisRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window(), cfg.RateLimit.KeyPrefix)
				log.Info("Redis rate limiter enabled (%s)", cfg.Redis.Addr)
			}
			healthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	getStoreSchedule := getStoreScheduleHandler.NewHandler(scheduleSvc, log)
	getBusyIntervals := getBusyIntervalsHandler.NewHandler(scheduleSvc, calendarSvc, location, log)
	health := healthHandler.NewHandler(calendarSvc, healthChecks)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Слоты и расписание
	api.HandleFunc("/stores/{storeId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stores/{storeId}/schedule", getStoreSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stores/{storeId}/busy-intervals", getBusyIntervals.Handle).Methods(http.MethodGet)

	// Бронирование (с ограничением частоты)
	var createBookingRoute http.Handler = http.HandlerFunc(createBooking.Handle)
	if limiter != nil {
		clientKeys, err := middleware.NewClientKeyResolver(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Failed to configure rate limiter: %v", err)
		}
		createBookingRoute = middleware.RateLimit(limiter, clientKeys, metricsCollector, log)(createBookingRoute)
		log.Info("Rate limit for bookings: %d requests per %s", cfg.RateLimit.Requests, cfg.RateLimit.Window())
	}
	api.Handle("/stores/{storeId}/bookings", createBookingRoute).Methods(http.MethodPost)

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
	close(stopMetricsCh)

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
