// Package web хранит HTML-шаблоны и статику, встроенные в бинарник.
package web

import (
	// Стандартные библиотеки
	"embed"
	"fmt"
	"html/template"
	"strings"

	// Сторонние библиотеки
	"github.com/gin-contrib/static"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates разбирает встроенные шаблоны. Имена шаблонов - имена файлов ("index.html").
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"lower": strings.ToLower, // для "No photos available to delete."
	}).ParseFS(templatesFS, "templates/*.html")
}

// Static возвращает содержимое папки static. Пути внутри начинаются от корня папки ("/app.css").
func Static() (static.ServeFileSystem, error) {
	fsys, err := static.EmbedFolder(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения встроенной статики: %w", err)
	}
	return fsys, nil
}
