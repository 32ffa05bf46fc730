package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/josetomecore/P6-Quiz/internal/models"
	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
	view        View
}

func NewQuizHandler(quizService *services.QuizService, view View) *QuizHandler {
	return &QuizHandler{quizService: quizService, view: view}
}

type QuizForm struct {
	Question string `form:"question"`
	Answer   string `form:"answer"`
}

// Index handles GET /quizzes.
func (h *QuizHandler) Index(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes()
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.view.HTML(c, http.StatusOK, "quizzes/index", gin.H{"quizzes": quizzes})
}

// Show handles GET /quizzes/:quizId.
func (h *QuizHandler) Show(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "quizzes/show", gin.H{"quiz": loadedQuiz(c)})
}

// New handles GET /quizzes/new.
func (h *QuizHandler) New(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "quizzes/new", gin.H{"quiz": &models.Quiz{}})
}

// Create handles POST /quizzes.
func (h *QuizHandler) Create(c *gin.Context) {
	var form QuizForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(form.Question, form.Answer)
	if err != nil {
		if flashValidation(c, err) {
			h.view.HTML(c, http.StatusUnprocessableEntity, "quizzes/new", gin.H{"quiz": quiz})
			return
		}
		fail(c, "Error creating a new Quiz: ", err)
		return
	}

	session.Flash(c, session.FlashSuccess, "Quiz created successfully.")
	redirect(c, fmt.Sprintf("/quizzes/%d", quiz.ID))
}

// Edit handles GET /quizzes/:quizId/edit.
func (h *QuizHandler) Edit(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "quizzes/edit", gin.H{"quiz": loadedQuiz(c)})
}

// Update handles PUT /quizzes/:quizId.
func (h *QuizHandler) Update(c *gin.Context) {
	quiz := loadedQuiz(c)

	var form QuizForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.quizService.UpdateQuiz(quiz, form.Question, form.Answer); err != nil {
		if flashValidation(c, err) {
			h.view.HTML(c, http.StatusUnprocessableEntity, "quizzes/edit", gin.H{"quiz": quiz})
			return
		}
		fail(c, "Error editing the Quiz: ", err)
		return
	}

	session.Flash(c, session.FlashSuccess, "Quiz edited successfully.")
	redirect(c, fmt.Sprintf("/quizzes/%d", quiz.ID))
}

// Destroy handles DELETE /quizzes/:quizId.
func (h *QuizHandler) Destroy(c *gin.Context) {
	if err := h.quizService.DeleteQuiz(loadedQuiz(c)); err != nil {
		fail(c, "Error deleting the Quiz: ", err)
		return
	}

	session.Flash(c, session.FlashSuccess, "Quiz deleted successfully.")
	redirect(c, "/quizzes")
}

// Play handles GET /quizzes/:quizId/play. A previous answer is echoed
// back as is.
func (h *QuizHandler) Play(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "quizzes/play", gin.H{
		"quiz":   loadedQuiz(c),
		"answer": c.Query("answer"),
	})
}

// Check handles GET /quizzes/:quizId/check.
func (h *QuizHandler) Check(c *gin.Context) {
	quiz := loadedQuiz(c)
	answer := c.Query("answer")

	h.view.HTML(c, http.StatusOK, "quizzes/result", gin.H{
		"quiz":   quiz,
		"result": CheckAnswer(quiz.Answer, answer),
		"answer": answer,
	})
}

// CheckAnswer compares ignoring case and surrounding whitespace.
func CheckAnswer(expected, given string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}
