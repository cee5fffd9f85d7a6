package auth

import (
	// Стандартные библиотеки
	"crypto/subtle"
	"fmt"

	// Сторонние библиотеки
	"github.com/gin-contrib/sessions"
	"golang.org/x/crypto/bcrypt"
)

// SessionKey - ключ флага аутентификации в данных сессии.
const SessionKey = "authenticated"

// HashPassword принимает пароль в виде строки и возвращает его bcrypt-хеш.
// Используем bcrypt.DefaultCost - это рекомендуемое значение по умолчанию.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("Ошибка хэширования пароля: %w", err)
	}
	return string(bytes), nil
}

func CheckPasswordHash(password, hash string) bool {
	// Соль встроена в сам bcrypt-хеш.
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Gate сравнивает введенную строку с общим секретом. Если задан bcrypt-хеш,
// сравнение идет по нему, иначе - точное совпадение с открытым паролем.
type Gate struct {
	password string
	hash     string
}

func NewGate(password, hash string) *Gate {
	return &Gate{password: password, hash: hash}
}

// Verify возвращает true только при точном совпадении с секретом.
func (g *Gate) Verify(input string) bool {
	if g.hash != "" {
		return CheckPasswordHash(input, g.hash)
	}
	return subtle.ConstantTimeCompare([]byte(input), []byte(g.password)) == 1
}

// Submit обрабатывает ввод формы пароля. Пустой ввод состояние сессии не меняет,
// любой непустой записывает в сессию результат сравнения.
// Возвращает текущее значение флага.
func (g *Gate) Submit(session sessions.Session, input string) (bool, error) {
	if input == "" {
		return IsAuthenticated(session), nil
	}
	ok := g.Verify(input)
	session.Set(SessionKey, ok)
	if err := session.Save(); err != nil {
		return false, fmt.Errorf("не удалось сохранить сессию: %w", err)
	}
	return ok, nil
}

// IsAuthenticated читает флаг из сессии. Отсутствие значения означает false.
func IsAuthenticated(session sessions.Session) bool {
	ok, _ := session.Get(SessionKey).(bool)
	return ok
}
