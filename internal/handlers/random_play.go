package handlers

import (
	"errors"
	"net/http"

	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/gin-gonic/gin"
)

type RandomPlayHandler struct {
	game *services.RandomPlayService
	view View
}

func NewRandomPlayHandler(game *services.RandomPlayService, view View) *RandomPlayHandler {
	return &RandomPlayHandler{game: game, view: view}
}

// Play handles GET /quizzes/randomplay.
func (h *RandomPlayHandler) Play(c *gin.Context) {
	state := session.LoadGame(c)

	turn, err := h.game.Play(state)
	if errors.Is(err, services.ErrNoQuizzes) {
		h.view.HTML(c, http.StatusOK, "quizzes/random_nomore", gin.H{"score": 0})
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := session.SaveGame(c, state); err != nil {
		_ = c.Error(err)
		return
	}
	h.view.HTML(c, http.StatusOK, "quizzes/random_play", gin.H{
		"score": turn.Score,
		"quiz":  turn.Quiz,
	})
}

// Check handles GET /quizzes/randomcheck. The pool reload on a wrong
// answer or an emptied pool is finished and saved before rendering.
func (h *RandomPlayHandler) Check(c *gin.Context) {
	state := session.LoadGame(c)
	answer := c.Query("answer")

	out, err := h.game.Check(state, answer)
	if errors.Is(err, services.ErrNotPlaying) {
		redirect(c, "/quizzes/randomplay")
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := session.SaveGame(c, state); err != nil {
		_ = c.Error(err)
		return
	}

	if out.Exhausted {
		h.view.HTML(c, http.StatusOK, "quizzes/random_nomore", gin.H{"score": out.Score})
		return
	}
	h.view.HTML(c, http.StatusOK, "quizzes/random_result", gin.H{
		"score":  out.Score,
		"answer": out.Answer,
		"result": out.Result,
	})
}
