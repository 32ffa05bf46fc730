package main

import (
	"net/http"

	"github.com/josetomecore/P6-Quiz/internal/config"
	"github.com/josetomecore/P6-Quiz/internal/handlers"
	"github.com/josetomecore/P6-Quiz/internal/middleware"
	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"
	"github.com/josetomecore/P6-Quiz/internal/view"
	"github.com/josetomecore/P6-Quiz/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newServer(cfg *config.Config, db *gorm.DB, store sessions.Store) http.Handler {
	renderer := view.New()
	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	quizService := services.NewQuizService(db)
	tipService := services.NewTipService(db)
	gameService := services.NewRandomPlayService(quizService)

	authHandler := handlers.NewAuthHandler(authService, renderer)
	quizHandler := handlers.NewQuizHandler(quizService, renderer)
	randomPlayHandler := handlers.NewRandomPlayHandler(gameService, renderer)
	tipHandler := handlers.NewTipHandler(tipService, hub, renderer)
	wsHandler := handlers.NewWSHandler(hub, cfg.CORSOrigins)

	loadQuiz := middleware.LoadQuiz(quizService)
	loadTip := middleware.LoadTip(tipService)
	loginRequired := middleware.LoginRequired()

	r := gin.Default()
	r.Use(
		session.Middleware(store),
		middleware.RequestID(),
		middleware.CurrentUser(authService),
		middleware.ErrorReporter(renderer),
	)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/quizzes") })
	r.GET("/goback", handlers.GoBack)

	r.GET("/session", authHandler.NewSession)
	r.POST("/session", authHandler.CreateSession)
	r.DELETE("/session", authHandler.DestroySession)
	r.GET("/users/new", authHandler.NewUser)
	r.POST("/users", authHandler.CreateUser)

	api := r.Group("/api")
	api.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	api.POST("/token", authHandler.Token)

	r.GET("/ws/quizzes/:quizId", loadQuiz, wsHandler.HandleQuizWebSocket)

	quizzes := r.Group("/quizzes")
	{
		quizzes.GET("", middleware.RememberPage(), quizHandler.Index)
		quizzes.GET("/new", loginRequired, quizHandler.New)
		quizzes.POST("", loginRequired, quizHandler.Create)
		quizzes.GET("/randomplay", randomPlayHandler.Play)
		quizzes.GET("/randomcheck", randomPlayHandler.Check)
	}

	quiz := quizzes.Group("/:quizId", loadQuiz)
	{
		quiz.GET("", middleware.RememberPage(), quizHandler.Show)
		quiz.GET("/edit", loginRequired, quizHandler.Edit)
		quiz.PUT("", loginRequired, quizHandler.Update)
		quiz.DELETE("", loginRequired, quizHandler.Destroy)
		quiz.GET("/play", quizHandler.Play)
		quiz.GET("/check", quizHandler.Check)
		quiz.POST("/tips", tipHandler.Create)
	}

	tip := quiz.Group("/tips/:tipId", loadTip, loginRequired, middleware.AdminOrAuthorRequired())
	{
		tip.GET("/edit", tipHandler.Edit)
		tip.PUT("", tipHandler.Update)
		tip.GET("/accept", tipHandler.Accept)
		tip.DELETE("", tipHandler.Destroy)
	}

	return middleware.MethodOverride(r)
}

func corsConfig(origins []string) cors.Config {
	conf := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	for _, origin := range origins {
		if origin == "*" {
			conf.AllowAllOrigins = true
			return conf
		}
	}
	conf.AllowOrigins = origins
	conf.AllowCredentials = true
	return conf
}
