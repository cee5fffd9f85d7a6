package services

import (
	// Стандартные библиотеки
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	// Внутренние пакеты
	"mediagallery/internal/models"
)

// Расширения, которые объявляет поле выбора файлов. На сервере они повторно не проверяются:
// фото все равно проходят декодирование при показе галереи.
var (
	PhotoExtensions = []string{"jpg", "jpeg", "png"}
	VideoExtensions = []string{"mp4", "mov"}
)

// ErrEmptyMedia - файл нулевой длины.
var ErrEmptyMedia = errors.New("пустой файл")

// AcceptAttr формирует значение атрибута accept для <input type="file">.
func AcceptAttr(folder models.Folder) string {
	exts := PhotoExtensions
	if folder == models.FolderVideos {
		exts = VideoExtensions
	}
	parts := make([]string, len(exts))
	for i, e := range exts {
		parts[i] = "." + e
	}
	return strings.Join(parts, ",")
}

// ValidateImage декодирует содержимое целиком. Ошибка означает, что файл
// поврежден или не является изображением.
func ValidateImage(r io.Reader) (format string, err error) {
	_, format, err = image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("не удалось декодировать изображение: %w", err)
	}
	return format, nil
}

// CheckVideo читает начало файла и проверяет, что его вообще можно прочитать.
// Возвращает Content-Type по расширению, а если оно неизвестно - по сигнатуре.
func CheckVideo(r io.Reader, name string) (string, error) {
	buffer := make([]byte, 512)
	n, err := io.ReadFull(r, buffer)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("не удалось прочитать видео %s: %w", name, err)
	}
	if n == 0 {
		return "", fmt.Errorf("видео %s: %w", name, ErrEmptyMedia)
	}
	if ct := ContentType(name); ct != "application/octet-stream" {
		return ct, nil
	}
	return http.DetectContentType(buffer[:n]), nil
}

// ContentType определяет Content-Type по расширению для ответа клиенту.
func ContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream" // неизвестный тип файла
	}
}
