package handlers

import (
	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/gin-gonic/gin"
)

// GoBack handles GET /goback, returning to the last remembered list page.
func GoBack(c *gin.Context) {
	location := session.BackURL(c)
	if location == "" {
		location = "/"
	}
	redirect(c, location)
}
