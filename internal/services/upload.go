package services

import (
	// Стандартные библиотеки
	"fmt"
	"io"
	"log"
	"mime/multipart"

	// Внутренние пакеты
	"mediagallery/internal/models"
)

// BatchMode - поведение пакетной загрузки, когда один из файлов не записался.
type BatchMode string

const (
	// BatchBestEffort оставляет уже записанные файлы и продолжает с остальными.
	BatchBestEffort BatchMode = "best-effort"
	// BatchAllOrNothing останавливается на первой ошибке и удаляет файлы, уже записанные этим пакетом.
	BatchAllOrNothing BatchMode = "all-or-nothing"
)

// UploadFile - один файл из формы загрузки.
type UploadFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// FromFileHeaders оборачивает файлы multipart-формы.
func FromFileHeaders(headers []*multipart.FileHeader) []UploadFile {
	files := make([]UploadFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, UploadFile{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}

// MediaStore - то, что нужно пакетной загрузке от хранилища.
type MediaStore interface {
	Save(r io.Reader, originalName string, folder models.Folder) (string, int64, error)
	Remove(folder models.Folder, name string) error
}

// SavedFile - успешно записанный файл пакета.
type SavedFile struct {
	OriginalName string
	StoredName   string
	Size         int64
}

// FileError - ошибка записи одного файла пакета.
type FileError struct {
	OriginalName string
	Err          error
}

func (e FileError) Error() string {
	return fmt.Sprintf("файл '%s': %v", e.OriginalName, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// BatchResult - итог пакета. В режиме all-or-nothing при ошибке Saved пуст, а
// RolledBack перечисляет удаленные имена.
type BatchResult struct {
	Saved      []SavedFile
	Failed     []FileError
	RolledBack []string
}

// OK - все файлы пакета записаны.
func (r BatchResult) OK() bool { return len(r.Failed) == 0 }

// SaveBatch по очереди записывает файлы пакета в папку.
func SaveBatch(store MediaStore, folder models.Folder, files []UploadFile, mode BatchMode) BatchResult {
	var res BatchResult
	for _, f := range files {
		saved, err := saveOne(store, folder, f)
		if err != nil {
			log.Printf("Ошибка сохранения файла '%s' в %s: %v", f.Filename, folder, err)
			res.Failed = append(res.Failed, FileError{OriginalName: f.Filename, Err: err})
			if mode == BatchAllOrNothing {
				res.RolledBack = rollback(store, folder, res.Saved)
				res.Saved = nil
				return res
			}
			continue
		}
		log.Printf("Файл '%s' сохранен как %s/%s (%d байт)", f.Filename, folder, saved.StoredName, saved.Size)
		res.Saved = append(res.Saved, saved)
	}
	return res
}

func saveOne(store MediaStore, folder models.Folder, f UploadFile) (SavedFile, error) {
	rc, err := f.Open()
	if err != nil {
		return SavedFile{}, fmt.Errorf("не удалось открыть загруженный файл: %w", err)
	}
	defer rc.Close()

	name, n, err := store.Save(rc, f.Filename, folder)
	if err != nil {
		return SavedFile{}, err
	}
	return SavedFile{OriginalName: f.Filename, StoredName: name, Size: n}, nil
}

func rollback(store MediaStore, folder models.Folder, saved []SavedFile) []string {
	removed := make([]string, 0, len(saved))
	for _, s := range saved {
		if err := store.Remove(folder, s.StoredName); err != nil {
			log.Printf("ПРЕДУПРЕЖДЕНИЕ: не удалось откатить файл %s/%s: %v", folder, s.StoredName, err)
			continue
		}
		log.Printf("Файл %s/%s удален при откате пакета", folder, s.StoredName)
		removed = append(removed, s.StoredName)
	}
	return removed
}
