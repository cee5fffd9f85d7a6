package database

import (
	// Стандартные библиотеки
	"database/sql"
	"fmt"
	"log"
	"time"

	// Внутренние пакеты
	"mediagallery/internal/models"

	// Драйвер SQLite. Пустой импорт регистрирует драйвер "sqlite" в database/sql.
	_ "modernc.org/sqlite"
)

// EventLog - журнал загрузок и удалений в SQLite. Списки файлов из него не строятся:
// источник правды - содержимое папок, журнал только фиксирует историю действий.
type EventLog struct {
	db *sql.DB
}

// Open открывает (или создает) файл БД и таблицу журнала.
func Open(dataSourceName string) (*EventLog, error) {
	// Параметры modernc.org/sqlite:
	// - journal_mode(WAL): читатели не блокируют писателя.
	// - busy_timeout(5000): ждем снятия блокировки до 5 секунд.
	// - synchronous(NORMAL): компромисс между скоростью и надежностью.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dataSourceName)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии %s: %w", dataSourceName, err)
	}

	// Для SQLite ограничиваем пул одним соединением.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка при проверке соединения с %s: %w", dataSourceName, err)
	}
	log.Println("Успешно подключились к базе данных:", dataSourceName)

	if err = createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка при создании таблиц: %w", err)
	}
	return &EventLog{db: db}, nil
}

// createTables создает таблицу media_events и индекс по времени, если их нет.
func createTables(db *sql.DB) error {
	eventsTableSQL := `
	CREATE TABLE IF NOT EXISTS media_events (
		id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,              -- 'upload' или 'delete'
		folder TEXT NOT NULL,              -- 'photos' или 'videos'
		stored_filename TEXT NOT NULL,     -- имя файла на диске
		original_filename TEXT NOT NULL DEFAULT '',
		size INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);`
	if _, err := db.Exec(eventsTableSQL); err != nil {
		return fmt.Errorf("ошибка при создании таблицы media_events: %w", err)
	}

	indexSQL := `CREATE INDEX IF NOT EXISTS idx_media_events_created_at ON media_events (created_at);`
	if _, err := db.Exec(indexSQL); err != nil {
		return fmt.Errorf("ошибка при создании индекса media_events: %w", err)
	}
	return nil
}

// Close закрывает соединение с БД.
func (l *EventLog) Close() error {
	return l.db.Close()
}

// Record добавляет запись в журнал и возвращает ее ID.
func (l *EventLog) Record(ev models.Event) (int64, error) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	res, err := l.db.Exec(`
		INSERT INTO media_events(action, folder, stored_filename, original_filename, size, created_at)
		VALUES(?, ?, ?, ?, ?, ?)
	`, ev.Action, string(ev.Folder), ev.StoredFilename, ev.OriginalFilename, ev.Size, ev.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("ошибка при выполнении запроса Record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID записи журнала: %w", err)
	}
	return id, nil
}

// Recent возвращает последние limit записей, новые первыми.
func (l *EventLog) Recent(limit int) ([]models.Event, error) {
	rows, err := l.db.Query(`
		SELECT id, action, folder, stored_filename, original_filename, size, created_at
		FROM media_events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выполнении запроса Recent: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var ev models.Event
		var folder string
		if err := rows.Scan(&ev.ID, &ev.Action, &folder, &ev.StoredFilename, &ev.OriginalFilename, &ev.Size, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования результата Recent: %w", err)
		}
		ev.Folder = models.Folder(folder)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения результата Recent: %w", err)
	}
	return events, nil
}
