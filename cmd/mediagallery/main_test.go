package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mediagallery/internal/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewSessionStore_CookieWithGeneratedSecret(t *testing.T) {
	cfg := &config.Config{SessionMaxAge: 3600}

	store, err := newSessionStore(cfg)
	require.NoError(t, err)
	require.NotNil(t, store)

	router := gin.New()
	router.Use(sessions.Sessions("mediasession", store))
	router.GET("/", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("authenticated", true)
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "mediasession", c.Name)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
}

func TestNewSessionStore_SecureFlagFromConfig(t *testing.T) {
	cfg := &config.Config{CookieSecret: "0123456789abcdef0123456789abcdef", SessionMaxAge: 60, SessionSecure: true}

	store, err := newSessionStore(cfg)
	require.NoError(t, err)

	router := gin.New()
	router.Use(sessions.Sessions("mediasession", store))
	router.GET("/", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("authenticated", true)
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, 60, cookies[0].MaxAge)
}

func TestNewSessionStore_UnreachableRedis(t *testing.T) {
	// На порту 1 никто не слушает: хранилище проверяет соединение при создании
	cfg := &config.Config{CookieSecret: "secret", SessionRedisAddr: "127.0.0.1:1", SessionMaxAge: 60}

	store, err := newSessionStore(cfg)
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
