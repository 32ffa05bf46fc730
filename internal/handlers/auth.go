package handlers

import (
	"errors"
	"net/http"

	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	view        View
}

func NewAuthHandler(authService *services.AuthService, view View) *AuthHandler {
	return &AuthHandler{authService: authService, view: view}
}

type CredentialsForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Redir    string `form:"redir" json:"-"`
}

type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// NewSession handles GET /session.
func (h *AuthHandler) NewSession(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "session/new", gin.H{"redir": c.Query("redir")})
}

// CreateSession handles POST /session.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.authService.Authenticate(form.Username, form.Password)
	if err != nil {
		session.Flash(c, session.FlashError, "Authentication has failed. Retry it again.")
		h.view.HTML(c, http.StatusUnauthorized, "session/new", gin.H{
			"redir":    form.Redir,
			"username": form.Username,
		})
		return
	}

	session.SetUser(c, services.IdentityOf(user))
	redirect(c, safeRedirect(form.Redir, "/goback"))
}

// DestroySession handles DELETE /session.
func (h *AuthHandler) DestroySession(c *gin.Context) {
	session.ClearUser(c)
	session.ClearGame(c)
	redirect(c, "/session")
}

// NewUser handles GET /users/new.
func (h *AuthHandler) NewUser(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "users/new", gin.H{})
}

// CreateUser handles POST /users and logs the new user in.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.authService.Register(form.Username, form.Password)
	if err != nil {
		if !flashValidation(c, err) {
			if !errors.Is(err, services.ErrUsernameTaken) {
				fail(c, "Error creating a new User: ", err)
				return
			}
			session.Flash(c, session.FlashError, "Username already taken.")
		}
		h.view.HTML(c, http.StatusUnprocessableEntity, "users/new", gin.H{"username": form.Username})
		return
	}

	session.SetUser(c, services.IdentityOf(user))
	session.Flash(c, session.FlashSuccess, "User created successfully.")
	redirect(c, "/quizzes")
}

// Token handles POST /api/token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
