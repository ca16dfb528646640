package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetThenPop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Set writes the cookie on one response...
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	Set(ctx, LevelWarning, "You do not have permission to access this page.")

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	// ...and Pop consumes it on the next request.
	w2 := httptest.NewRecorder()
	ctx2, _ := gin.CreateTestContext(w2)
	ctx2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx2.Request.AddCookie(cookie)

	msg := Pop(ctx2)
	require.NotNil(t, msg)
	assert.Equal(t, LevelWarning, msg.Level)
	assert.Equal(t, "You do not have permission to access this page.", msg.Text)

	// Pop cleared the cookie.
	var cleared bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPopWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, Pop(ctx))
}

func TestPopGarbageCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.AddCookie(&http.Cookie{Name: "flash", Value: "not-base64!"})

	assert.Nil(t, Pop(ctx))
}
