package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"petstore/internal/app/store/config"
	"petstore/internal/app/store/handler"
	"petstore/internal/app/store/processor"
	"petstore/internal/app/store/repository"
	"petstore/internal/app/store/service"
	"petstore/internal/app/store/util"
	"petstore/pkg/logger"
)

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		logger.Init("store-service", "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init("store-service", cfg.Log.Level)

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL (pgx pool) ===
	// Pool используется репозиториями каталога и покупок
	pool, err := connectPool(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("Successfully connected to PostgreSQL (pgx pool)")

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL (GORM) ===
	// GORM используется репозиториями клиентов и корзин
	gormDB, err := connectGorm(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database via GORM")
	}
	logger.Info().Msg("Successfully connected to PostgreSQL (GORM)")

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Redis кеширует отчет топ-продаж и список категорий
	redisClient, err := util.NewRedisClient(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Successfully connected to Redis")

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER ===
	// Producer отправляет события PURCHASE_COMPLETED в топик purchase_events
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Msg("Successfully initialized Kafka producer")

	// === ИНИЦИАЛИЗАЦИЯ СЛОЯ РЕПОЗИТОРИЕВ ===
	categoryRepo := repository.NewCategoryRepository(pool)
	itemRepo := repository.NewItemRepository(pool)
	purchaseRepo := repository.NewPurchaseRepository(pool)
	clientRepo := repository.NewClientRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)

	// === ИНИЦИАЛИЗАЦИЯ БИЗНЕС-ЛОГИКИ ===
	catalogService := service.NewCatalogService(
		categoryRepo,
		itemRepo,
		purchaseRepo,
		redisClient,
		cfg.Catalog.AutoCreateCategories,
	)
	cartService := service.NewCartService(cartRepo, itemRepo)
	clientService := service.NewClientService(clientRepo, cartRepo, purchaseRepo)
	purchaseService := service.NewPurchaseService(
		cartRepo,
		purchaseRepo,
		redisClient,
		kafkaProducer,
	)

	// === ИНИЦИАЛИЗАЦИЯ HTTP HANDLERS ===
	itemHandler := handler.NewItemHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	clientHandler := handler.NewClientHandler(clientService)

	// === НАСТРОЙКА МАРШРУТОВ ===
	router := handler.SetupRoutes(itemHandler, cartHandler, purchaseHandler, clientHandler)

	// === ЗАПУСК ФОНОВОГО ПЕРЕСЧЕТА КЕША КЛИЕНТОВ ===
	// Cron периодически обновляет last_purchase_date и last_item_bought
	scheduler := processor.NewCronScheduler(clientService)
	if err := scheduler.Start(context.Background(), cfg.Worker.RefreshSchedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start cron scheduler")
	}
	defer scheduler.Stop()

	// === НАСТРОЙКА HTTP СЕРВЕРА ===
	// Production-ready настройки с таймаутами
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second, // Таймаут чтения запроса
		WriteTimeout: 15 * time.Second, // Таймаут записи ответа
		IdleTimeout:  60 * time.Second, // Таймаут idle соединений
	}

	// === ЗАПУСК HTTP СЕРВЕРА ===
	// Запускаем сервер в отдельной горутине для graceful shutdown
	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Store Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	// Ожидаем сигнала завершения (SIGINT или SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Store Service...")

	// Даем серверу 30 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Store Service stopped gracefully")
}

// connectPool устанавливает соединение с PostgreSQL через pgx connection pool
// Использует retry logic с 10 попытками для устойчивости при запуске в Docker
func connectPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, err
	}

	// Оптимальные настройки пула для production
	poolConfig.MaxConns = 25                       // Максимум соединений в пуле
	poolConfig.MinConns = 5                        // Минимум соединений (держим открытыми)
	poolConfig.MaxConnLifetime = 5 * time.Minute   // Время жизни соединения
	poolConfig.MaxConnIdleTime = 1 * time.Minute   // Время простоя перед закрытием
	poolConfig.HealthCheckPeriod = 1 * time.Minute // Периодичность health checks

	// Пробуем подключиться с повторными попытками:
	// при запуске в Docker PostgreSQL может быть еще не готов
	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}

// connectGorm открывает GORM-соединение с включенным TranslateError,
// чтобы нарушение уникального ключа отображалось в gorm.ErrDuplicatedKey
func connectGorm(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database via GORM, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}
