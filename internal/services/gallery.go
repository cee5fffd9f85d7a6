package services

import (
	// Стандартные библиотеки
	"fmt"
	"log"

	// Внутренние пакеты
	"mediagallery/internal/models"
)

// Section - одна секция галереи: элементы, разложенные по колонкам, и
// предупреждения по файлам, которые показать не удалось.
type Section struct {
	Folder   models.Folder
	Columns  [][]models.GalleryItem
	Warnings []string
	Count    int
}

// BuildSection читает папку и проверяет каждый файл. Ошибка одного файла
// превращается в предупреждение и не мешает остальным.
// Ошибка возвращается только если не удалось прочитать саму папку.
func BuildSection(s *Storage, folder models.Folder) (Section, error) {
	sec := Section{Folder: folder, Columns: make([][]models.GalleryItem, folder.Columns())}

	files, err := s.List(folder)
	if err != nil {
		return sec, err
	}

	// Колонка выбирается по индексу в листинге, включая пропущенные файлы
	for i, f := range files {
		item, err := inspect(s, f)
		if err != nil {
			log.Printf("Пропущен файл %s/%s: %v", folder, f.Name, err)
			sec.Warnings = append(sec.Warnings, warningFor(folder, f.Name))
			continue
		}
		col := i % len(sec.Columns)
		sec.Columns[col] = append(sec.Columns[col], item)
		sec.Count++
	}
	return sec, nil
}

func inspect(s *Storage, f models.MediaFile) (models.GalleryItem, error) {
	file, err := s.Open(f.Folder, f.Name)
	if err != nil {
		return models.GalleryItem{}, err
	}
	defer file.Close()

	if f.Folder == models.FolderVideos {
		ct, err := CheckVideo(file, f.Name)
		if err != nil {
			return models.GalleryItem{}, err
		}
		return models.GalleryItem{MediaFile: f, ContentType: ct}, nil
	}

	if _, err := ValidateImage(file); err != nil {
		return models.GalleryItem{}, err
	}
	return models.GalleryItem{MediaFile: f, ContentType: ContentType(f.Name)}, nil
}

func warningFor(folder models.Folder, name string) string {
	if folder == models.FolderVideos {
		return fmt.Sprintf("Could not load video: %s", name)
	}
	return fmt.Sprintf("Skipped invalid image file: %s", name)
}
