package middleware

import (
	// Стандартные библиотеки
	"log"
	"net/http"

	// Внутренние пакеты
	"mediagallery/internal/auth"

	// Сторонние библиотеки
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UploadsPage - куда отправляем неаутентифицированного пользователя.
const UploadsPage = "/?tab=uploads"

// AuthRequired пропускает запрос дальше только если в сессии поднят флаг аутентификации.
// Применяется к маршрутам загрузки и удаления.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		raw := session.Get(auth.SessionKey)
		if raw == nil {
			log.Printf("Доступ запрещен (не аутентифицирован) к %s с IP %s", c.Request.URL.Path, c.ClientIP())
			// 303, чтобы браузер после POST перешел на страницу через GET
			c.Redirect(http.StatusSeeOther, UploadsPage)
			c.Abort()
			return
		}

		ok, isBool := raw.(bool)
		if !isBool {
			// Некорректный тип в сессии: очищаем флаг и отправляем на ввод пароля
			log.Printf("ОШИБКА ТИПА ДАННЫХ СЕССИИ: некорректный тип флага (%T) для IP %s. Флаг будет очищен.", raw, c.ClientIP())
			session.Delete(auth.SessionKey)
			if err := session.Save(); err != nil {
				log.Printf("Ошибка сохранения сессии при очистке флага: %v", err)
			}
		}
		if !ok {
			c.Redirect(http.StatusSeeOther, UploadsPage)
			c.Abort()
			return
		}

		c.Set(auth.SessionKey, true)
		c.Next()
	}
}
