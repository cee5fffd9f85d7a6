package handlers

import (
	// Стандартные библиотеки
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	// Внутренние пакеты
	"mediagallery/internal/auth"
	"mediagallery/internal/middleware"
	"mediagallery/internal/models"
	"mediagallery/internal/services"

	// Сторонние библиотеки
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	pageTitle    = "Photo Video Album"
	recentEvents = 10
)

// EventRecorder - журнал действий. Handler работает и без него (nil).
type EventRecorder interface {
	Record(ev models.Event) (int64, error)
	Recent(limit int) ([]models.Event, error)
}

// Handler обслуживает обе вкладки страницы и действия загрузки/удаления.
type Handler struct {
	Storage        *services.Storage
	Gate           *auth.Gate
	Events         EventRecorder
	BatchMode      services.BatchMode
	MaxUploadBytes int64
}

// pageData - данные шаблона index.html. Заполняется только активная вкладка.
type pageData struct {
	Title  string
	Tab    string
	Errors []string

	// Gallery
	Videos services.Section
	Photos services.Section

	// Uploads
	Authenticated bool
	Success       string
	Warnings      []string
	PhotoAccept   string
	VideoAccept   string
	DeleteType    string
	DeleteFiles   []models.MediaFile
	Events        []models.Event
}

// ShowIndex рендерит страницу с вкладкой из ?tab= (по умолчанию галерея).
func (h *Handler) ShowIndex(c *gin.Context) {
	if c.Query("tab") == "uploads" {
		h.renderUploads(c, http.StatusOK, c.DefaultQuery("type", "Photo"), nil)
		return
	}
	h.renderGallery(c)
}

// renderGallery: сначала видео, затем фото. Проблемный файл дает предупреждение, страница рендерится всегда.
func (h *Handler) renderGallery(c *gin.Context) {
	data := pageData{Title: pageTitle, Tab: "gallery"}

	var err error
	data.Videos, err = services.BuildSection(h.Storage, models.FolderVideos)
	if err != nil {
		log.Printf("Ошибка чтения папки видео: %v", err)
		data.Errors = append(data.Errors, "Could not list videos.")
	}
	data.Photos, err = services.BuildSection(h.Storage, models.FolderPhotos)
	if err != nil {
		log.Printf("Ошибка чтения папки фото: %v", err)
		data.Errors = append(data.Errors, "Could not list photos.")
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// renderUploads рендерит вкладку Uploads. fill дописывает результат действия (успех, предупреждения).
func (h *Handler) renderUploads(c *gin.Context, status int, deleteType string, fill func(*pageData)) {
	data := pageData{
		Title:         pageTitle,
		Tab:           "uploads",
		Authenticated: auth.IsAuthenticated(sessions.Default(c)),
		PhotoAccept:   services.AcceptAttr(models.FolderPhotos),
		VideoAccept:   services.AcceptAttr(models.FolderVideos),
	}
	if fill != nil {
		fill(&data)
	}

	if data.Authenticated {
		folder, err := models.ParseFolder(deleteType)
		if err != nil {
			folder = models.FolderPhotos
		}
		data.DeleteType = folder.Label()

		files, err := h.Storage.List(folder)
		if err != nil {
			log.Printf("Ошибка чтения папки %s для формы удаления: %v", folder, err)
			data.Errors = append(data.Errors, fmt.Sprintf("Could not list %ss.", folder.Label()))
		}
		data.DeleteFiles = files

		if h.Events != nil {
			events, err := h.Events.Recent(recentEvents)
			if err != nil {
				log.Printf("Ошибка чтения журнала действий: %v", err)
			}
			data.Events = events
		}
	}

	c.HTML(status, "index.html", data)
}

// HandleUnlock обрабатывает форму пароля. Непустой ввод записывает в сессию результат сравнения,
// пустой ничего не меняет. Ни блокировок, ни счетчика попыток нет.
func (h *Handler) HandleUnlock(c *gin.Context) {
	// Получаем введенный пароль и текущую сессию
	input := c.PostForm("password")
	session := sessions.Default(c)

	ok, err := h.Gate.Submit(session, input)
	if err != nil {
		log.Printf("Ошибка сохранения сессии после ввода пароля с IP %s: %v", c.ClientIP(), err)
		h.renderUploads(c, http.StatusInternalServerError, "Photo", func(d *pageData) {
			d.Errors = append(d.Errors, "Could not save session.")
		})
		return
	}
	if input != "" && !ok {
		log.Printf("Неверный пароль с IP %s", c.ClientIP())
	}
	// Post/Redirect/Get: обновление страницы не отправит форму повторно
	c.Redirect(http.StatusSeeOther, middleware.UploadsPage)
}

// HandleUpload возвращает обработчик пакетной загрузки в папку. Файлы берутся из поля "files".
func (h *Handler) HandleUpload(folder models.Folder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Ограничиваем размер тела запроса до парсинга формы
		if h.MaxUploadBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
		}

		// 2. Парсим multipart-форму
		form, err := c.MultipartForm()
		if err != nil {
			log.Printf("Ошибка парсинга multipart формы (%s): %v", folder, err)
			msg := "Could not read the upload request."
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				msg = fmt.Sprintf("Upload is too large (limit %d MB).", h.MaxUploadBytes>>20)
			}
			h.renderUploads(c, http.StatusBadRequest, folder.Label(), func(d *pageData) {
				d.Errors = append(d.Errors, msg)
			})
			return
		}

		// 3. Получаем список файлов из поля "files"
		headers := form.File["files"]
		if len(headers) == 0 {
			h.renderUploads(c, http.StatusBadRequest, folder.Label(), func(d *pageData) {
				d.Warnings = append(d.Warnings, "No files selected.")
			})
			return
		}

		// 4. Сохраняем пакет и пишем в журнал только реально сохраненные файлы
		res := services.SaveBatch(h.Storage, folder, services.FromFileHeaders(headers), h.BatchMode)
		for _, s := range res.Saved {
			h.record(models.Event{
				Action:           models.ActionUpload,
				Folder:           folder,
				StoredFilename:   s.StoredName,
				OriginalFilename: s.OriginalName,
				Size:             s.Size,
			})
		}
		log.Printf("Завершена загрузка %d файлов в %s. Успешно: %d, ошибок: %d, откатано: %d.",
			len(headers), folder, len(res.Saved), len(res.Failed), len(res.RolledBack))

		// 5. Формируем ответ. 500 - только если не сохранилось ничего
		status := http.StatusOK
		if !res.OK() && len(res.Saved) == 0 {
			status = http.StatusInternalServerError
		}
		h.renderUploads(c, status, folder.Label(), func(d *pageData) {
			if res.OK() {
				d.Success = fmt.Sprintf("%ss uploaded successfully.", folder.Label())
				return
			}
			for _, f := range res.Failed {
				d.Errors = append(d.Errors, fmt.Sprintf("Could not save '%s'.", f.OriginalName))
			}
			if h.BatchMode == services.BatchAllOrNothing {
				d.Warnings = append(d.Warnings, fmt.Sprintf("Upload cancelled: %d file(s) already written were removed.", len(res.RolledBack)))
			} else if len(res.Saved) > 0 {
				d.Warnings = append(d.Warnings, fmt.Sprintf("%d of %d file(s) uploaded.", len(res.Saved), len(headers)))
			}
		})
	}
}

// HandleDelete удаляет выбранные файлы категории по очереди.
// Уже отсутствующий файл не считается ошибкой.
func (h *Handler) HandleDelete(c *gin.Context) {
	// 1. Определяем категорию по подписи из формы ("Photo" / "Video")
	typ := c.PostForm("type")
	folder, err := models.ParseFolder(typ)
	if err != nil {
		h.renderUploads(c, http.StatusBadRequest, "Photo", func(d *pageData) {
			d.Errors = append(d.Errors, "Unknown file type.")
		})
		return
	}

	// 2. Получаем выбранные имена файлов
	names := c.PostFormArray("files")
	if len(names) == 0 {
		h.renderUploads(c, http.StatusOK, folder.Label(), func(d *pageData) {
			d.Warnings = append(d.Warnings, "No files selected.")
		})
		return
	}

	// 3. Удаляем по одному: ошибка одного файла не останавливает остальные
	var warnings []string
	for _, name := range names {
		if err := h.Storage.Remove(folder, name); err != nil {
			log.Printf("Ошибка удаления %s/%s: %v", folder, name, err)
			warnings = append(warnings, fmt.Sprintf("Could not delete '%s'.", name))
			continue
		}
		log.Printf("Файл %s/%s удален", folder, name)
		h.record(models.Event{Action: models.ActionDelete, Folder: folder, StoredFilename: name})
	}

	h.renderUploads(c, http.StatusOK, folder.Label(), func(d *pageData) {
		d.Warnings = warnings
		if len(warnings) < len(names) {
			d.Success = "Selected file(s) deleted successfully."
		}
	})
}

// ServeMedia отдает байты файла из папки photos или videos.
func (h *Handler) ServeMedia(c *gin.Context) {
	folder, err := models.ParseFolder(c.Param("folder"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	// Path отклоняет пути и скрытые файлы (в т.ч. временные ".upload-*")
	name := c.Param("name")
	filePath, err := h.Storage.Path(folder, name)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	// Проверяем существование файла
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if ct := services.ContentType(name); ct != "application/octet-stream" {
		c.Header("Content-Type", ct)
	}
	c.File(filePath)
}

// record пишет событие в журнал. Ошибка журнала на действие не влияет.
func (h *Handler) record(ev models.Event) {
	if h.Events == nil {
		return
	}
	if _, err := h.Events.Record(ev); err != nil {
		log.Printf("ПРЕДУПРЕЖДЕНИЕ: не удалось записать событие %s для %s/%s: %v", ev.Action, ev.Folder, ev.StoredFilename, err)
	}
}
