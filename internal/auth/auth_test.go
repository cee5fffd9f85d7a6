package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("rast2611")
	require.NoError(t, err)
	assert.NotEqual(t, "rast2611", hash)
	assert.True(t, CheckPasswordHash("rast2611", hash))
	assert.False(t, CheckPasswordHash("rast2612", hash))
}

func TestGate_VerifyPlaintext(t *testing.T) {
	g := NewGate("rast2611", "")
	assert.True(t, g.Verify("rast2611"))
	assert.False(t, g.Verify("RAST2611"))
	assert.False(t, g.Verify("rast2611 "))
	assert.False(t, g.Verify("wrong"))
}

func TestGate_VerifyHashOverridesPlaintext(t *testing.T) {
	hash, err := HashPassword("hardened")
	require.NoError(t, err)
	g := NewGate("rast2611", hash)
	assert.True(t, g.Verify("hardened"))
	assert.False(t, g.Verify("rast2611"))
}

// gateRouter: POST /submit вызывает Gate.Submit, GET /state отдает флаг сессии.
func gateRouter(g *Gate) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("test-secret"))))
	r.POST("/submit", func(c *gin.Context) {
		ok, err := g.Submit(sessions.Default(c), c.PostForm("password"))
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, strconv.FormatBool(ok))
	})
	r.GET("/state", func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatBool(IsAuthenticated(sessions.Default(c))))
	})
	return r
}

type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func (cl *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)
	if got := w.Result().Cookies(); len(got) > 0 {
		cl.cookies = got
	}
	return w
}

func (cl *client) submit(password string) string {
	form := url.Values{"password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := cl.do(req)
	require.Equal(cl.t, http.StatusOK, w.Code)
	return w.Body.String()
}

func (cl *client) state() string {
	return cl.do(httptest.NewRequest(http.MethodGet, "/state", nil)).Body.String()
}

func TestGate_SubmitSessionFlag(t *testing.T) {
	cl := &client{t: t, router: gateRouter(NewGate("rast2611", ""))}

	// Без ввода пользователь не аутентифицирован
	assert.Equal(t, "false", cl.state())

	assert.Equal(t, "true", cl.submit("rast2611"))
	assert.Equal(t, "true", cl.state())

	// Пустой ввод не меняет состояние
	assert.Equal(t, "true", cl.submit(""))
	assert.Equal(t, "true", cl.state())

	// Любая другая непустая строка сбрасывает флаг
	assert.Equal(t, "false", cl.submit("guess"))
	assert.Equal(t, "false", cl.state())

	assert.Equal(t, "false", cl.submit(""))
	assert.Equal(t, "false", cl.state())
}

func TestGate_SessionsAreIndependent(t *testing.T) {
	router := gateRouter(NewGate("rast2611", ""))
	alice := &client{t: t, router: router}
	bob := &client{t: t, router: router}

	alice.submit("rast2611")
	assert.Equal(t, "true", alice.state())
	assert.Equal(t, "false", bob.state())
}
