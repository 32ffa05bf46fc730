package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/josetomecore/P6-Quiz/internal/middleware"
	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"
	"github.com/josetomecore/P6-Quiz/internal/testdb"
	"github.com/josetomecore/P6-Quiz/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type rendered struct {
	status  int
	name    string
	data    gin.H
	flashes map[string][]string
}

// recordingView keeps every render instead of executing templates.
type recordingView struct {
	renders []rendered
}

func (v *recordingView) HTML(c *gin.Context, status int, name string, data gin.H) {
	flashes := session.Flashes(c)
	_ = session.Save(c)
	v.renders = append(v.renders, rendered{status: status, name: name, data: data, flashes: flashes})
	c.String(status, name)
}

func (v *recordingView) last() rendered {
	if len(v.renders) == 0 {
		return rendered{}
	}
	return v.renders[len(v.renders)-1]
}

type testApp struct {
	t       *testing.T
	db      *gorm.DB
	view    *recordingView
	router  *gin.Engine
	cookies []*http.Cookie
	user    *services.Identity

	quizzes *services.QuizService
	tips    *services.TipService
	auth    *services.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithStore(t, "memory")
}

func newTestAppWithStore(t *testing.T, storeKind string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	store, err := session.NewStore(storeKind, []byte("test-secret"))
	require.NoError(t, err)

	app := &testApp{
		t:       t,
		db:      db,
		view:    &recordingView{},
		quizzes: services.NewQuizService(db),
		tips:    services.NewTipService(db),
		auth:    services.NewAuthService(db, "test-secret"),
	}

	game := services.NewRandomPlayService(app.quizzes).WithRand(func(int) int { return 0 })
	quizHandler := NewQuizHandler(app.quizzes, app.view)
	randomPlayHandler := NewRandomPlayHandler(game, app.view)
	tipHandler := NewTipHandler(app.tips, ws.NewHub(), app.view)
	authHandler := NewAuthHandler(app.auth, app.view)

	r := gin.New()
	r.Use(session.Middleware(store), middleware.CurrentUser(app.auth), func(c *gin.Context) {
		if app.user != nil {
			c.Set(session.ContextUserKey, app.user)
		}
	}, middleware.ErrorReporter(app.view))

	r.GET("/goback", GoBack)
	r.POST("/session", authHandler.CreateSession)
	r.DELETE("/session", authHandler.DestroySession)
	r.POST("/users", authHandler.CreateUser)
	r.POST("/api/token", authHandler.Token)
	r.GET("/quizzes", middleware.RememberPage(), quizHandler.Index)
	r.GET("/quizzes/new", quizHandler.New)
	r.POST("/quizzes", quizHandler.Create)
	r.GET("/quizzes/randomplay", randomPlayHandler.Play)
	r.GET("/quizzes/randomcheck", randomPlayHandler.Check)
	r.GET("/game", func(c *gin.Context) {
		c.JSON(http.StatusOK, session.LoadGame(c))
	})

	quiz := r.Group("/quizzes/:quizId", middleware.LoadQuiz(app.quizzes))
	quiz.GET("", quizHandler.Show)
	quiz.GET("/edit", quizHandler.Edit)
	quiz.PUT("", quizHandler.Update)
	quiz.DELETE("", quizHandler.Destroy)
	quiz.GET("/play", quizHandler.Play)
	quiz.GET("/check", quizHandler.Check)
	quiz.POST("/tips", tipHandler.Create)

	tip := quiz.Group("/tips/:tipId", middleware.LoadTip(app.tips), middleware.AdminOrAuthorRequired())
	tip.GET("/edit", tipHandler.Edit)
	tip.PUT("", tipHandler.Update)
	tip.GET("/accept", tipHandler.Accept)
	tip.DELETE("", tipHandler.Destroy)

	app.router = r
	return app
}

// do sends a request with the cookies collected so far.
func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		a.cookies = cookies
	}
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) form(method, path string, values url.Values) *httptest.ResponseRecorder {
	return a.do(newFormRequest(method, path, values))
}

// flashes renders a page to collect the flashes left by the last redirect.
func (a *testApp) flashes() map[string][]string {
	a.get("/quizzes")
	return a.view.last().flashes
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func newFormRequest(method, path string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
