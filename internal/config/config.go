package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken    string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN            string        `mapstructure:"DB_DSN"`
	Environment      string        `mapstructure:"ENV"`
	AdminTelegramID  int64         `mapstructure:"ADMIN_TELEGRAM_ID"` // кому слать уведомления о новых пользователях
	SlotStep         time.Duration `mapstructure:"SLOT_STEP_MINUTES"`
	BookingDaysAhead int           `mapstructure:"BOOKING_DAYS_AHEAD"`
	MetricsAddr      string        `mapstructure:"METRICS_ADDR"`
}

const (
	defaultSlotStepMinutes  = 30
	defaultBookingDaysAhead = 7
	defaultMetricsAddr      = ":9090"
)

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию только из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   os.Getenv("ENV"),
		MetricsAddr:   defaultMetricsAddr,
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if addr, ok := os.LookupEnv("METRICS_ADDR"); ok {
		cfg.MetricsAddr = addr // пустая строка отключает сервер метрик
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	if raw := os.Getenv("ADMIN_TELEGRAM_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID must be an integer: %w", err)
		}
		cfg.AdminTelegramID = id
	}

	step, err := positiveInt("SLOT_STEP_MINUTES", defaultSlotStepMinutes)
	if err != nil {
		return nil, err
	}
	cfg.SlotStep = time.Duration(step) * time.Minute

	if cfg.BookingDaysAhead, err = positiveInt("BOOKING_DAYS_AHEAD", defaultBookingDaysAhead); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsProduction проверяет production окружение
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func positiveInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return v, nil
}
