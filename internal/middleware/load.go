package middleware

import (
	"fmt"
	"strconv"

	"github.com/josetomecore/P6-Quiz/internal/models"
	"github.com/josetomecore/P6-Quiz/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	QuizKey = "quiz"
	TipKey  = "tip"
)

// LoadQuiz resolves :quizId into the context. A missing quiz goes to the
// error reporter.
func LoadQuiz(quizService *services.QuizService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("quizId"))
		if err != nil {
			abortWithError(c, fmt.Errorf("there is no quiz with id=%s: %w", c.Param("quizId"), services.ErrNotFound))
			return
		}

		quiz, err := quizService.GetQuiz(id)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(QuizKey, quiz)
		c.Next()
	}
}

// LoadTip resolves :tipId into the context. When a quiz is already loaded
// the tip must belong to it.
func LoadTip(tipService *services.TipService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("tipId"))
		if err != nil {
			abortWithError(c, fmt.Errorf("there is no tip with tipId=%s: %w", c.Param("tipId"), services.ErrNotFound))
			return
		}

		tip, err := tipService.GetTip(id)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if quiz, ok := c.Get(QuizKey); ok && quiz.(*models.Quiz).ID != tip.QuizID {
			abortWithError(c, fmt.Errorf("there is no tip with tipId=%d in quiz %d: %w", tip.ID, quiz.(*models.Quiz).ID, services.ErrNotFound))
			return
		}

		c.Set(TipKey, tip)
		c.Next()
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
