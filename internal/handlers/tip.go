package handlers

import (
	"fmt"
	"net/http"

	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"
	"github.com/josetomecore/P6-Quiz/internal/ws"

	"github.com/gin-gonic/gin"
)

type TipHandler struct {
	tipService *services.TipService
	hub        *ws.Hub
	view       View
}

func NewTipHandler(tipService *services.TipService, hub *ws.Hub, view View) *TipHandler {
	return &TipHandler{tipService: tipService, hub: hub, view: view}
}

type TipForm struct {
	Text string `form:"text"`
}

func quizPath(quizID uint) string {
	return fmt.Sprintf("/quizzes/%d", quizID)
}

// Create handles POST /quizzes/:quizId/tips. Anonymous visitors may post
// tips, they are stored with author 0.
func (h *TipHandler) Create(c *gin.Context) {
	quiz := loadedQuiz(c)

	var form TipForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var authorID uint
	if user := session.CurrentUser(c); user != nil {
		authorID = user.ID
	}

	tip, err := h.tipService.CreateTip(quiz.ID, authorID, form.Text)
	if err != nil {
		if flashValidation(c, err) {
			redirectBack(c, quizPath(quiz.ID))
			return
		}
		fail(c, "Error creating the new tip: ", err)
		return
	}

	h.hub.Publish(ws.TipCreated, tip)
	session.Flash(c, session.FlashSuccess, "Tip created successfully.")
	redirectBack(c, quizPath(quiz.ID))
}

// Edit handles GET /quizzes/:quizId/tips/:tipId/edit.
func (h *TipHandler) Edit(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "tips/edit", gin.H{
		"tip":  loadedTip(c),
		"quiz": loadedQuiz(c),
	})
}

// Update handles PUT /quizzes/:quizId/tips/:tipId.
func (h *TipHandler) Update(c *gin.Context) {
	quiz := loadedQuiz(c)
	tip := loadedTip(c)

	var form TipForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.tipService.UpdateTipText(tip, form.Text); err != nil {
		if flashValidation(c, err) {
			h.view.HTML(c, http.StatusUnprocessableEntity, "tips/edit", gin.H{"tip": tip, "quiz": quiz})
			return
		}
		fail(c, "Error editing the Tip: ", err)
		return
	}

	h.hub.Publish(ws.TipUpdated, tip)
	session.Flash(c, session.FlashSuccess, "Tip edited successfully.")
	redirect(c, "/goback")
}

// Accept handles GET /quizzes/:quizId/tips/:tipId/accept.
func (h *TipHandler) Accept(c *gin.Context) {
	quiz := loadedQuiz(c)
	tip := loadedTip(c)

	if err := h.tipService.AcceptTip(tip); err != nil {
		fail(c, "Error accepting the tip: ", err)
		return
	}

	h.hub.Publish(ws.TipAccepted, tip)
	session.Flash(c, session.FlashSuccess, "Tip accepted successfully.")
	redirect(c, quizPath(quiz.ID))
}

// Destroy handles DELETE /quizzes/:quizId/tips/:tipId.
func (h *TipHandler) Destroy(c *gin.Context) {
	quiz := loadedQuiz(c)
	tip := loadedTip(c)

	if err := h.tipService.DeleteTip(tip); err != nil {
		_ = c.Error(err)
		return
	}

	h.hub.Publish(ws.TipDeleted, tip)
	session.Flash(c, session.FlashSuccess, "tip deleted successfully.")
	redirect(c, quizPath(quiz.ID))
}
