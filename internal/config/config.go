package config

import (
	// Стандартные библиотеки
	"fmt"
	"log"
	"os"
	"strconv"

	// Сторонние библиотеки
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultUploadPassword - общий пароль для загрузки и удаления, если UPLOAD_PASSWORD не задан.
const DefaultUploadPassword = "rast2611"

type Config struct {
	ListenPort         string `validate:"required,numeric"`
	PhotoDir           string `validate:"required"`
	VideoDir           string `validate:"required,nefield=PhotoDir"`
	DBPath             string
	UploadPassword     string `validate:"required_without=UploadPasswordHash"`
	UploadPasswordHash string
	CookieSecret       string
	SessionMaxAge      int `validate:"gt=0"`
	SessionSecure      bool
	SessionRedisAddr   string `validate:"omitempty,hostname_port"`
	SessionRedisUser   string
	SessionRedisPass   string
	BatchMode          string `validate:"oneof=best-effort all-or-nothing"`
	MaxUploadBytes     int64  `validate:"gt=0"`
}

// Load читает .env (если есть) и переменные окружения, затем проверяет результат.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не загружен, используются переменные окружения")
	}

	maxAge, err := strconv.Atoi(getEnv("SESSION_MAX_AGE", "604800"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_MAX_AGE: %w", err)
	}
	secure, err := strconv.ParseBool(getEnv("SESSION_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_SECURE: %w", err)
	}
	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", strconv.Itoa(512<<20)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
	}

	cfg := &Config{
		ListenPort:         getEnv("LISTEN_PORT", "8080"),
		PhotoDir:           getEnv("PHOTO_DIR", "media/photos"),
		VideoDir:           getEnv("VIDEO_DIR", "media/videos"),
		DBPath:             getEnv("DB_PATH", "media/activity.db"),
		UploadPassword:     getEnv("UPLOAD_PASSWORD", DefaultUploadPassword),
		UploadPasswordHash: getEnv("UPLOAD_PASSWORD_HASH", ""),
		CookieSecret:       getEnv("COOKIE_SECRET", ""),
		SessionMaxAge:      maxAge,
		SessionSecure:      secure,
		SessionRedisAddr:   getEnv("SESSION_REDIS_ADDR", ""),
		SessionRedisUser:   getEnv("SESSION_REDIS_USERNAME", ""),
		SessionRedisPass:   getEnv("SESSION_REDIS_PASSWORD", ""),
		BatchMode:          getEnv("UPLOAD_BATCH_MODE", "best-effort"),
		MaxUploadBytes:     maxUpload,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения по тегам validate.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("некорректная конфигурация: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
