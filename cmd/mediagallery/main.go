package main

import (
	// Стандартные библиотеки
	"fmt"
	"log"
	"path/filepath"

	// Внутренние пакеты
	"mediagallery/internal/auth"
	"mediagallery/internal/config"
	"mediagallery/internal/database"
	"mediagallery/internal/handlers"
	"mediagallery/internal/services"

	// Сторонние библиотеки
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

// newSessionStore выбирает хранилище сессий: Redis, если задан адрес, иначе cookie.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	secret := cfg.CookieSecret
	if secret == "" {
		// Без заданного секрета сессии живут до перезапуска процесса
		token, err := services.GenerateSecureToken(32)
		if err != nil {
			return nil, fmt.Errorf("не удалось сгенерировать ключ сессий: %w", err)
		}
		log.Println("ПРЕДУПРЕЖДЕНИЕ: COOKIE_SECRET не задан, используется случайный ключ. Сессии не переживут перезапуск.")
		secret = token
	}

	var store sessions.Store
	if cfg.SessionRedisAddr != "" {
		// Размер пула 10; имя пользователя Redis нужно только при включенных ACL
		redisStore, err := redis.NewStore(10, "tcp", cfg.SessionRedisAddr, cfg.SessionRedisUser, cfg.SessionRedisPass, []byte(secret))
		if err != nil {
			return nil, fmt.Errorf("не удалось подключиться к Redis %s: %w", cfg.SessionRedisAddr, err)
		}
		log.Printf("Сессии хранятся в Redis: %s", cfg.SessionRedisAddr)
		store = redisStore
	} else {
		store = cookie.NewStore([]byte(secret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SessionSecure,
	})
	return store, nil
}

func main() {
	// --- 1. Конфигурация ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	// Папки создаются до инициализации остальных компонентов.
	storage := services.NewStorage(cfg.PhotoDir, cfg.VideoDir)
	if err := storage.EnsureDirs(); err != nil {
		log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: %v", err)
	}

	// --- 2. Зависимости ---
	h := &handlers.Handler{
		Storage:        storage,
		Gate:           auth.NewGate(cfg.UploadPassword, cfg.UploadPasswordHash),
		BatchMode:      services.BatchMode(cfg.BatchMode),
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	if cfg.UploadPasswordHash != "" {
		log.Println("Пароль загрузки проверяется по bcrypt-хешу из UPLOAD_PASSWORD_HASH")
	}

	if cfg.DBPath != "" {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := services.EnsureDir(dir); err != nil {
				log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: %v", err)
			}
		}
		events, err := database.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("Ошибка инициализации базы данных: %v", err)
		}
		defer events.Close()
		h.Events = events
	} else {
		log.Println("DB_PATH пуст, журнал действий отключен")
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Ошибка инициализации хранилища сессий: %v", err)
	}

	// --- 3. Роутер ---
	gin.SetMode(gin.ReleaseMode)
	router, err := handlers.NewRouter(h, store)
	if err != nil {
		log.Fatalf("Ошибка инициализации роутера: %v", err)
	}
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatalf("Ошибка установки доверенных прокси: %v", err)
	}

	// --- 4. Запуск ---
	listenAddr := ":" + cfg.ListenPort
	log.Printf("Сервер запускается на %s (фото: %s, видео: %s)", listenAddr, cfg.PhotoDir, cfg.VideoDir)
	if err := router.Run(listenAddr); err != nil {
		log.Fatalf("Не удалось запустить сервер: %v", err)
	}
}
