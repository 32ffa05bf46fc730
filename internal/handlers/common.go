package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/josetomecore/P6-Quiz/internal/middleware"
	"github.com/josetomecore/P6-Quiz/internal/models"
	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// View renders a named template with its data bag.
type View interface {
	HTML(c *gin.Context, status int, name string, data gin.H)
}

func loadedQuiz(c *gin.Context) *models.Quiz {
	return c.MustGet(middleware.QuizKey).(*models.Quiz)
}

func loadedTip(c *gin.Context) *models.Tip {
	return c.MustGet(middleware.TipKey).(*models.Tip)
}

// redirect saves the session first so flashes survive the redirect.
func redirect(c *gin.Context, location string) {
	if err := session.Save(c); err != nil {
		log.Printf("session save error: %v", err)
	}
	c.Redirect(http.StatusFound, location)
}

// redirectBack follows the Referer header, like a browser "back", as
// long as it points at this host.
func redirectBack(c *gin.Context, fallback string) {
	redirect(c, backTarget(c.Request, fallback))
}

func backTarget(r *http.Request, fallback string) string {
	if r.Referer() == "" {
		return fallback
	}
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Opaque != "" {
		return fallback
	}
	if ref.Host != "" && !strings.EqualFold(ref.Host, r.Host) {
		return fallback
	}
	return safeRedirect(ref.RequestURI(), fallback)
}

// safeRedirect only follows local paths.
func safeRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}

// flashValidation reports a validation failure as flashes. It returns
// false for any other error.
func flashValidation(c *gin.Context, err error) bool {
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	session.Flash(c, session.FlashError, "There are errors in the form:")
	for _, msg := range verr.Messages() {
		session.Flash(c, session.FlashError, msg)
	}
	return true
}

// fail flashes message and hands err to the error reporter.
func fail(c *gin.Context, message string, err error) {
	session.Flash(c, session.FlashError, message+err.Error())
	_ = c.Error(err)
}
