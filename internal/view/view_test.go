package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/josetomecore/P6-Quiz/internal/models"
	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := session.NewStore("memory", []byte("test-secret"))
	require.NoError(t, err)

	r := gin.New()
	r.Use(session.Middleware(store))
	return r
}

func TestRenderResultWithLayout(t *testing.T) {
	v := New()
	r := newEngine(t)
	r.GET("/check", func(c *gin.Context) {
		session.Flash(c, session.FlashSuccess, "Well done.")
		v.HTML(c, http.StatusOK, "quizzes/result", gin.H{
			"quiz":   &models.Quiz{ID: 1, Question: "Capital of Spain", Answer: "Madrid"},
			"result": true,
			"answer": "madrid",
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Capital of Spain")
	assert.Contains(t, body, "is right")
	assert.Contains(t, body, "Well done.")
	assert.Contains(t, body, "Login")
}

func TestRenderFormPartialAndUser(t *testing.T) {
	v := New()
	r := newEngine(t)
	r.GET("/edit", func(c *gin.Context) {
		c.Set(session.ContextUserKey, &services.Identity{ID: 1, Username: "admin", IsAdmin: true})
		v.HTML(c, http.StatusUnprocessableEntity, "quizzes/edit", gin.H{
			"quiz": &models.Quiz{ID: 9, Question: "Capital of Italy", Answer: ""},
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/edit", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `action="/quizzes/9?_method=PUT"`)
	assert.Contains(t, body, `value="Capital of Italy"`)
	assert.Contains(t, body, "admin (admin)")
}
