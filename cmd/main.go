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

	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_calendar"
	hasConflictHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/has_conflict"
	listWorkersHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_workers"
	resolveDurationHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/resolve_duration"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/canceltoken"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	calendarCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/calendar"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	priceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/price"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/service"
	workerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/worker"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notification"
	"github.com/m04kA/SMC-SalonBooking/internal/jobs"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	cancelBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	sendRemindersUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("SALON_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s (timezone=%s)", configPath, cfg.Booking.Location())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Обертка с метриками; без метрик запросы идут напрямую, транзакции через контекст работают так же
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	workerRepository := workerRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	priceRepository := priceRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	timeProvider := &availability.RealTimeProvider{Location: cfg.Booking.Location()}

	// Кэш календаря в Redis (опционально)
	var (
		redisClient *redis.Client
		monthCache  *calendarCache.Cache
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, calendar cache will miss until it recovers: %v", cfg.Redis.Addr, err)
		}
		cancel()

		monthCache = calendarCache.NewCache(redisClient, cfg.Redis.KeyPrefix,
			time.Duration(cfg.Redis.CalendarTTL)*time.Second)
		log.Info("Calendar cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CalendarTTL)
	}

	// Интерфейсы с nil должны оставаться nil, а не типизированным nil-указателем
	var (
		availabilityCache availability.CalendarCache
		createInvalidator createBookingUC.CalendarInvalidator
		cancelInvalidator cancelBookingUC.CalendarInvalidator
	)
	if monthCache != nil {
		availabilityCache = monthCache
		createInvalidator = monthCache
		cancelInvalidator = monthCache
	}

	// Токены отмены
	tokenCodec, err := canceltoken.NewWithNamespace(cfg.Booking.TokenSecret, cfg.Booking.TokenNamespace)
	if err != nil {
		log.Fatal("Failed to initialize cancellation tokens: %v", err)
	}

	// Уведомления и события
	emailSender := notification.NewSMTPSender(notification.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	smsClient := notification.NewSMSClient(notification.SMSConfig{
		URL:        cfg.SMS.URL,
		Token:      cfg.SMS.Token,
		FromNumber: cfg.SMS.FromNumber,
		Timeout:    time.Duration(cfg.SMS.Timeout) * time.Second,
	})
	notifier := notification.NewNotifier(emailSender, smsClient, log)
	log.Info("Notifications initialized (email=%t, sms=%t)", emailSender.Enabled(), smsClient.Enabled())

	publisher := events.NewPublisher(events.Config{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: time.Duration(cfg.Kafka.WriteTimeout) * time.Second,
	})
	defer publisher.Close()
	log.Info("Event publisher initialized (enabled=%t, topic=%s)", publisher.Enabled(), cfg.Kafka.Topic)

	// Инициализируем сервисы
	availabilitySvc := availability.NewService(
		workerRepository,
		serviceRepository,
		priceRepository,
		bookingRepository,
		availabilityCache,
		metricsCollector,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		workerRepository,
		serviceRepository,
		priceRepository,
		bookingRepository,
		txMgr,
		tokenCodec,
		createBookingUC.Dependencies{
			Notifier:  notifier,
			Publisher: publisher,
			Cache:     createInvalidator,
			Metrics:   metricsCollector,
		},
		createBookingUC.Config{
			PublicBaseURL:      cfg.Booking.PublicBaseURL,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
		},
		timeProvider,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		workerRepository,
		serviceRepository,
		txMgr,
		tokenCodec,
		cancelBookingUC.Dependencies{
			Notifier:  notifier,
			Publisher: publisher,
			Cache:     cancelInvalidator,
			Metrics:   metricsCollector,
		},
		timeProvider,
		log,
	)

	// Напоминания по расписанию
	var reminderScheduler *jobs.ReminderScheduler
	if cfg.Reminders.Enabled {
		sendRemindersUseCase := sendRemindersUC.NewUseCase(
			bookingRepository,
			workerRepository,
			serviceRepository,
			notifier,
			metricsCollector,
			cfg.Reminders.Window(),
			timeProvider,
			log,
		)

		reminderScheduler, err = jobs.NewReminderScheduler(
			sendRemindersUseCase,
			cfg.Reminders.Schedule,
			cfg.Booking.Location(),
			time.Duration(cfg.Reminders.Timeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize reminder scheduler: %v", err)
		}
		reminderScheduler.Start()
	}

	// Инициализируем handlers
	listWorkers := listWorkersHandler.NewHandler(availabilitySvc, log)
	resolveDuration := resolveDurationHandler.NewHandler(availabilitySvc, log)
	hasConflict := hasConflictHandler.NewHandler(availabilitySvc, cfg.Booking.Location(), log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilitySvc, cfg.Booking.Location(), log)
	getCalendar := getCalendarHandler.NewHandler(availabilitySvc, timeProvider, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, cfg.Booking.Location(), log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// READ ROUTES
	// ============================================================

	// Мастера с услугами и ценами
	api.HandleFunc("/workers", listWorkers.Handle).Methods(http.MethodGet)

	// Длительность услуги у мастера
	api.HandleFunc("/workers/{workerId}/duration", resolveDuration.Handle).Methods(http.MethodGet)

	// Проверка пересечения с записями мастера
	api.HandleFunc("/workers/{workerId}/conflicts", hasConflict.Handle).Methods(http.MethodGet)

	// Слоты мастера на день
	api.HandleFunc("/workers/{workerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Календарь месяца
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Страница отмены
	api.HandleFunc("/cancellations/{token}", cancelBooking.HandlePreview).Methods(http.MethodGet)

	// ============================================================
	// WRITE ROUTES (ограничены по частоте, если включен Redis)
	// ============================================================

	writes := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled && redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.Window)*time.Second, cfg.Redis.KeyPrefix+":rl", log)
		if err := limiter.TrustProxies(cfg.RateLimit.TrustedProxies); err != nil {
			log.Fatal("Failed to configure trusted proxies: %v", err)
		}
		writes.Use(limiter.Middleware())
		log.Info("Rate limit enabled for write routes (%d per %ds)", cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	// Создание записи
	writes.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена записи по ссылке
	writes.HandleFunc("/cancellations/{token}", cancelBooking.HandleCancel).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся текущего прогона напоминаний
	if reminderScheduler != nil {
		if err := reminderScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Reminder scheduler did not stop in time: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
