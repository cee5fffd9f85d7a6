package models

import (
	// Стандартные библиотеки
	"fmt"
	"net/url"
	"time"
)

// Folder - категория медиафайла. Каждой категории соответствует своя папка на диске.
type Folder string

const (
	FolderPhotos Folder = "photos"
	FolderVideos Folder = "videos"
)

// ParseFolder принимает как имя папки ("photos"), так и подпись из формы удаления ("Photo").
func ParseFolder(s string) (Folder, error) {
	switch s {
	case "photos", "Photo", "photo":
		return FolderPhotos, nil
	case "videos", "Video", "video":
		return FolderVideos, nil
	}
	return "", fmt.Errorf("неизвестная категория файлов: %q", s)
}

// Label возвращает подпись категории для формы ("Photo" / "Video").
func (f Folder) Label() string {
	if f == FolderVideos {
		return "Video"
	}
	return "Photo"
}

// Columns - число колонок галереи для категории.
func (f Folder) Columns() int {
	if f == FolderVideos {
		return 2
	}
	return 4
}

// MediaFile - файл в одной из папок. Кроме имени и папки ничего не хранится.
type MediaFile struct {
	Name   string `json:"name"`
	Folder Folder `json:"folder"`
}

// URL - путь, по которому браузер получает содержимое файла. Имя экранируется:
// расширение приходит из имени загруженного файла и может содержать '#' или '?'.
func (m MediaFile) URL() string {
	return "/media/" + string(m.Folder) + "/" + url.PathEscape(m.Name)
}

// GalleryItem - элемент галереи, прошедший проверку чтения/декодирования.
type GalleryItem struct {
	MediaFile
	ContentType string
}

// Event - запись журнала действий (таблица media_events).
type Event struct {
	ID               int64     `json:"id"`
	Action           string    `json:"action"` // 'upload' или 'delete'
	Folder           Folder    `json:"folder"`
	StoredFilename   string    `json:"stored_filename"`
	OriginalFilename string    `json:"original_filename"` // пусто для удалений
	Size             int64     `json:"size"`
	CreatedAt        time.Time `json:"created_at"`
}

const (
	ActionUpload = "upload"
	ActionDelete = "delete"
)
