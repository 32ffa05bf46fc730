package middleware

import (
	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/gin-gonic/gin"
)

// RememberPage records the page as the target of /goback. It is mounted
// on list pages only.
func RememberPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		session.SetBackURL(c, c.Request.URL.RequestURI())
		c.Next()
	}
}
