package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/josetomecore/P6-Quiz/internal/models"
	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/gin-gonic/gin"
)

// CurrentUser resolves the request's user from a bearer token or, when
// no Authorization header is sent, from the session.
func CurrentUser(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if user := session.StoredUser(c); user != nil {
				c.Set(session.ContextUserKey, user)
			}
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		user, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(session.ContextUserKey, user)
		c.Next()
	}
}

func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.CurrentUser(c) != nil {
			c.Next()
			return
		}

		if strings.Contains(c.GetHeader("Accept"), "application/json") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Redirect(http.StatusFound, "/session?redir="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// AdminOrAuthorRequired lets the request through only for admins and the
// author of the loaded tip. Must run after LoadTip.
func AdminOrAuthorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tip, _ := c.MustGet(TipKey).(*models.Tip)
		user := session.CurrentUser(c)

		if services.AuthorizeTip(user, tip) == services.Allow {
			c.Next()
			return
		}

		log.Println("Prohibited operation: The logged in user is not the author of the tip, nor an administrator.")
		c.AbortWithStatus(http.StatusForbidden)
	}
}
