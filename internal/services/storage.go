package services

import (
	// Стандартные библиотеки
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	// Внутренние пакеты
	"mediagallery/internal/models"

	// Сторонние библиотеки
	"github.com/google/uuid"
)

var (
	// ErrInvalidName - имя не является простым именем файла внутри папки (пути, скрытые файлы).
	ErrInvalidName = errors.New("недопустимое имя файла")
	// ErrUnknownFolder - запрошена папка, которой нет в хранилище.
	ErrUnknownFolder = errors.New("неизвестная папка")
)

// fileMode - права сохраненных файлов, как у os.Create: их читают и другие процессы (прокси, бэкапы).
const fileMode = 0644

// tempPrefix - префикс временных файлов при записи. Начинается с точки,
// поэтому List никогда не показывает недописанный файл.
const tempPrefix = ".upload-"

// Storage - доступ к двум папкам с медиафайлами. Содержимое папок и есть
// единственный источник правды: индекса или манифеста нет.
type Storage struct {
	dirs map[models.Folder]string
}

// NewStorage создает хранилище поверх папок для фото и видео.
func NewStorage(photoDir, videoDir string) *Storage {
	return &Storage{dirs: map[models.Folder]string{
		models.FolderPhotos: photoDir,
		models.FolderVideos: videoDir,
	}}
}

// Dir возвращает путь к папке категории.
func (s *Storage) Dir(folder models.Folder) (string, error) {
	dir, ok := s.dirs[folder]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFolder, folder)
	}
	return dir, nil
}

// EnsureDirs создает обе папки, если их еще нет.
func (s *Storage) EnsureDirs() error {
	for _, folder := range []models.Folder{models.FolderPhotos, models.FolderVideos} {
		if err := EnsureDir(s.dirs[folder]); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir проверяет, что путь - директория, и создает ее со всеми родителями при отсутствии.
func EnsureDir(dirPath string) error {
	// Предотвращаем случайное использование корня или текущей директории
	if dirPath == "" || dirPath == "/" || dirPath == "." {
		return fmt.Errorf("небезопасный путь для папки хранилища: %q", dirPath)
	}

	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		log.Printf("Папка %s не найдена, создаем...", dirPath)
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return fmt.Errorf("не удалось создать папку %s: %w", dirPath, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("ошибка при проверке папки %s: %w", dirPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("путь %s существует, но не является директорией", dirPath)
	}
	return nil
}

// StoredName формирует имя "<uuid>.<ext>". Расширение - текст после последней
// точки исходного имени, регистр сохраняется. Имя без точки целиком становится расширением.
func StoredName(originalName string) string {
	base := path.Base(strings.ReplaceAll(originalName, `\`, "/"))
	ext := base[strings.LastIndex(base, ".")+1:]
	return uuid.NewString() + "." + ext
}

// Save записывает содержимое r в папку под новым случайным именем и возвращает
// это имя и число записанных байт. Файл сначала пишется во временный и затем
// переименовывается, так что параллельные читатели видят его только целиком.
// Повтора при коллизии нет.
func (s *Storage) Save(r io.Reader, originalName string, folder models.Folder) (storedName string, written int64, err error) {
	dir, err := s.Dir(folder)
	if err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return "", 0, fmt.Errorf("не удалось создать временный файл в %s: %w", dir, err)
	}
	// Если что-то пошло не так, временный файл удаляем
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	written, err = io.Copy(tmp, r)
	if err != nil {
		return "", 0, fmt.Errorf("не удалось записать файл %q: %w", originalName, err)
	}
	// CreateTemp создает файл с правами 0600, rename их сохранит
	if err = tmp.Chmod(fileMode); err != nil {
		return "", 0, fmt.Errorf("не удалось выставить права файла %q: %w", originalName, err)
	}
	if err = tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("не удалось закрыть временный файл для %q: %w", originalName, err)
	}

	storedName = StoredName(originalName)
	if err = os.Rename(tmp.Name(), filepath.Join(dir, storedName)); err != nil {
		return "", 0, fmt.Errorf("не удалось сохранить файл %s: %w", storedName, err)
	}
	return storedName, written, nil
}

// List возвращает все нескрытые записи папки в порядке, который отдает ОС (сортировка не гарантируется).
func (s *Storage) List(folder models.Folder) ([]models.MediaFile, error) {
	dir, err := s.Dir(folder)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать папку %s: %w", dir, err)
	}

	files := make([]models.MediaFile, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, models.MediaFile{Name: e.Name(), Folder: folder})
	}
	return files, nil
}

// Path возвращает полный путь к файлу, проверив, что name - простое имя внутри папки.
func (s *Storage) Path(folder models.Folder, name string) (string, error) {
	dir, err := s.Dir(folder)
	if err != nil {
		return "", err
	}
	if !validName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(dir, name), nil
}

// Open открывает файл для чтения.
func (s *Storage) Open(folder models.Folder, name string) (*os.File, error) {
	p, err := s.Path(folder, name)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Remove удаляет файл. Отсутствие файла ошибкой не считается.
func (s *Storage) Remove(folder models.Folder, name string) error {
	p, err := s.Path(folder, name)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("не удалось удалить файл %s: %w", p, err)
	}
	return nil
}

func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
