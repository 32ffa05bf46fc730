package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/josetomecore/P6-Quiz/internal/services"

	"github.com/gin-gonic/gin"
)

type Renderer interface {
	HTML(c *gin.Context, status int, name string, data gin.H)
}

// ErrorReporter is the single sink for errors pushed with c.Error. It
// renders the error page when nothing else was written.
func ErrorReporter(view Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrNotFound) {
			status = http.StatusNotFound
		}
		log.Printf("request %s %s %s: %v", c.GetString(RequestIDKey), c.Request.Method, c.Request.URL.Path, err)

		if c.Writer.Written() {
			return
		}
		view.HTML(c, status, "error", gin.H{
			"status":  status,
			"message": err.Error(),
		})
	}
}
