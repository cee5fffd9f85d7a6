package handlers

import (
	// Стандартные библиотеки
	"fmt"
	"net/http"
	"strings"

	// Внутренние пакеты
	"mediagallery/internal/middleware"
	"mediagallery/internal/models"
	"mediagallery/web"

	// Сторонние библиотеки
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// SessionCookie - имя cookie сессии.
const SessionCookie = "mediasession"

// NewRouter собирает gin engine: сессии, шаблоны, статика и маршруты.
func NewRouter(h *Handler, store sessions.Store) (*gin.Engine, error) {
	// gin.Default(): логгер запросов и восстановление после паник.
	router := gin.Default()

	// Максимальный размер multipart-формы в памяти (остальное во временные файлы).
	router.MaxMultipartMemory = 10 << 20

	// Шаблоны встроены в бинарник, LoadHTMLGlob не нужен.
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблонов: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	assets, err := web.Static()
	if err != nil {
		return nil, err
	}

	// Сессии нужны всем маршрутам: флаг аутентификации читается и на вкладке Uploads.
	router.Use(sessions.Sessions(SessionCookie, store))

	// Статика (CSS) из встроенной папки.
	router.GET("/static/*filepath", serveAssets(assets))

	// Публичные маршруты: галерея, ввод пароля, отдача файлов.
	public := router.Group("/")
	{
		public.GET("/", h.ShowIndex)
		public.POST("/unlock", h.HandleUnlock)
		public.GET("/media/:folder/:name", h.ServeMedia)
	}

	// Маршруты, требующие введенного пароля.
	protected := router.Group("/")
	protected.Use(middleware.AuthRequired())
	{
		protected.POST("/upload/photos", h.HandleUpload(models.FolderPhotos))
		protected.POST("/upload/videos", h.HandleUpload(models.FolderVideos))
		protected.POST("/delete", h.HandleDelete)
	}

	return router, nil
}

// serveAssets отдает файлы из встроенной статики. Листинг директорий не отдается.
func serveAssets(assets static.ServeFileSystem) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filepath")
		if name == "" || strings.HasSuffix(name, "/") {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.FileFromFS(name, assets)
	}
}
