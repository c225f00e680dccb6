package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config содержит все настройки Store Service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Catalog  CatalogConfig
	Worker   WorkerConfig
	Log      LogConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string // disable/require/verify-full
}

// RedisConfig - настройки подключения к Redis для кеширования
// Кешируются отчет топ-продаж и список категорий
type RedisConfig struct {
	Host     string
	Port     string
	Password string // опционально
	DB       int    // Номер БД Redis (0-15)
}

// KafkaConfig - настройки Kafka для отправки событий покупок
type KafkaConfig struct {
	Brokers []string // Список брокеров (формат: host:port)
	Topic   string   // Топик для событий PURCHASE_COMPLETED
}

// CatalogConfig - политики каталога
type CatalogConfig struct {
	// AutoCreateCategories включает автосоздание неизвестной категории
	// при создании/обновлении товара. По умолчанию выключено: неизвестная
	// категория отклоняется с ошибкой валидации.
	AutoCreateCategories bool
}

// WorkerConfig - настройки фонового пересчета кеша покупок клиентов
type WorkerConfig struct {
	RefreshSchedule string // cron-выражение
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level string // debug/info/warn/error
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	autoCreate, err := strconv.ParseBool(getEnv("CATALOG_AUTO_CREATE_CATEGORIES", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_AUTO_CREATE_CATEGORIES value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "pet_store_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "purchase_events"),
		},
		Catalog: CatalogConfig{
			AutoCreateCategories: autoCreate,
		},
		Worker: WorkerConfig{
			// каждые 10 минут
			RefreshSchedule: getEnv("WORKER_REFRESH_SCHEDULE", "*/10 * * * *"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq (для GORM)
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// ConnString возвращает строку подключения для pgx pool
func (c *DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
