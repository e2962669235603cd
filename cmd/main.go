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
	"github.com/redis/go-redis/v9"

	createServiceHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/create_service"
	getCalendarHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_calendar"
	getRequestHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_request"
	getServiceHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_service"
	getServiceRequestsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_service_requests"
	getUserRequestsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_user_requests"
	listOwnerServicesHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/list_owner_services"
	reviewRequestHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/review_request"
	submitRequestHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/submit_request"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/config"
	servicesCache "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/cache/services"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
	requestRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/request"
	servicesRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/services"
	paymentClient "github.com/m04kA/SMC-MarketplaceBooking/internal/integrations/payment"
	catalogService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/catalog"
	requestsService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/requests"
	getCalendarUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/get_calendar"
	reviewRequestUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/review_request"
	submitRequestUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/submit_request"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/metrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/txmanager"
)

// businessMetrics бизнес-счетчики use case: *metrics.Metrics или metrics.Nop
type businessMetrics interface {
	IncBookingRequest(outcome string)
	IncRequestDecision(decision, outcome string)
	IncPaymentHandoff(operation, result string)
}

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

	log.Info("Starting SMC-MarketplaceBooking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		bizMetrics       businessMetrics = metrics.Nop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		bizMetrics = metricsCollector
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

	// Без метрик обертка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	servicesRepository := servicesRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	requestRepository := requestRepo.NewRepository(wrappedDB)

	// Кэш определений услуг (опционален)
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш деградирует до чтения из БД на каждом запросе
			log.Warn("Redis at %s is not reachable: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Service cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
		}
		cancel()
	}
	serviceStore := servicesCache.NewCachedRepository(servicesRepository, redisClient, cfg.Redis.TTL(), log)

	// Платежный провайдер
	payments := paymentClient.NewClient(
		cfg.Payment.URL,
		time.Duration(cfg.Payment.Timeout)*time.Second,
		log,
	)
	log.Info("Payment client initialized (url=%s timeout=%ds)", cfg.Payment.URL, cfg.Payment.Timeout)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		serviceStore,
		availabilityRepository,
		txMgr,
		cfg.Booking.MaxWindowDays,
		log,
	)
	requestsSvc := requestsService.NewService(
		requestRepository,
		serviceStore,
		log,
	)

	// Инициализируем use cases
	submitRequestUseCase := submitRequestUC.NewUseCase(
		serviceStore,
		availabilityRepository,
		requestRepository,
		payments,
		txMgr,
		bizMetrics,
		log,
		cfg.Booking.SubmitTimeout(),
	)
	reviewRequestUseCase := reviewRequestUC.NewUseCase(
		serviceStore,
		availabilityRepository,
		requestRepository,
		payments,
		txMgr,
		bizMetrics,
		log,
	)
	getCalendarUseCase := getCalendarUC.NewUseCase(
		serviceStore,
		availabilityRepository,
		requestRepository,
		cfg.Booking.MaxCalendarDays,
		log,
	)

	// Инициализируем handlers
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	listOwnerServices := listOwnerServicesHandler.NewHandler(catalogSvc, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	submitRequest := submitRequestHandler.NewHandler(submitRequestUseCase, log)
	reviewRequest := reviewRequestHandler.NewHandler(reviewRequestUseCase, log)
	getRequest := getRequestHandler.NewHandler(requestsSvc, log)
	getUserRequests := getUserRequestsHandler.NewHandler(requestsSvc, log)
	getServiceRequests := getServiceRequestsHandler.NewHandler(requestsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (X-User-ID опционален)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Карточка услуги
	public.HandleFunc("/services/{serviceId:[0-9]+}", getService.Handle).Methods(http.MethodGet)

	// Календарь доступности (со своими pending заявками, если пользователь известен)
	public.HandleFunc("/services/{serviceId:[0-9]+}/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Витрина провайдера
	public.HandleFunc("/users/{userId:[0-9]+}/services", listOwnerServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	if cfg.RateLimit.Enabled {
		protected.Use(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Middleware())
		log.Info("Rate limit enabled: %.1f rps, burst %d per user", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Услуги ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)

	// --- Заявки ---
	// Подача заявки
	protected.HandleFunc("/services/{serviceId:[0-9]+}/requests", submitRequest.Handle).Methods(http.MethodPost)

	// Входящие заявки услуги (для владельца)
	protected.HandleFunc("/services/{serviceId:[0-9]+}/requests", getServiceRequests.Handle).Methods(http.MethodGet)

	// Заявка по ID
	protected.HandleFunc("/requests/{requestId:[0-9]+}", getRequest.Handle).Methods(http.MethodGet)

	// Решение провайдера
	protected.HandleFunc("/requests/{requestId:[0-9]+}/confirm", reviewRequest.HandleConfirm).Methods(http.MethodPatch)
	protected.HandleFunc("/requests/{requestId:[0-9]+}/reject", reviewRequest.HandleReject).Methods(http.MethodPatch)

	// История заявок пользователя
	protected.HandleFunc("/users/{userId:[0-9]+}/requests", getUserRequests.Handle).Methods(http.MethodGet)

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
