package app

import (
	"jlpt_backend/docs"
	"jlpt_backend/internal/config"
	"jlpt_backend/internal/middleware"

	"jlpt_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.Use(func(ctx *gin.Context) {
		ctx.Set("config", cfg)
		ctx.Next()
	})

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearningRoutes(authGroup, c)
		a.registerPracticeRoutes(authGroup, c)
		a.registerToolRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerLearningRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.PATCH("/auth/me", c.auth.UpdateMe)
	rg.POST("/auth/me/avatar", c.auth.UploadAvatar)

	vocab := rg.Group("/vocabulary")
	{
		vocab.GET("/lessons", c.vocab.ListLessons)
		vocab.GET("/lessons/:id", c.vocab.GetLesson)
		vocab.POST("/lessons/:id/progress", c.vocab.UpdateProgress)
		vocab.POST("/words/:id/progress", c.vocab.MarkWord)
		vocab.POST("/words/:id/favorite", c.vocab.ToggleFavorite)
	}

	kanji := rg.Group("/kanji")
	{
		kanji.GET("/units", c.kanji.ListUnits)
		kanji.GET("/units/:id", c.kanji.GetUnit)
		kanji.GET("/lessons/:id", c.kanji.GetLesson)
		kanji.GET("/search", c.kanji.Search)
		kanji.GET("/progress", c.kanji.ListProgress)
		kanji.POST("/progress", c.kanji.UpsertProgress)
		kanji.DELETE("/progress/:id", c.kanji.DeleteProgress)
		kanji.GET("/favorites", c.kanji.ListFavorites)
		kanji.POST("/favorites", c.kanji.AddFavorite)
		kanji.DELETE("/favorites/:id", c.kanji.RemoveFavorite)
		kanji.GET("/:id", c.kanji.GetKanji)
	}

	grammar := rg.Group("/grammar")
	{
		grammar.GET("/lessons", c.grammar.ListLessons)
		grammar.GET("/lessons/:id", c.grammar.GetLesson)
		grammar.POST("/submit", c.grammar.Submit)
		grammar.POST("/progress", c.grammar.UpdateProgress)
	}

	reading := rg.Group("/reading")
	{
		reading.GET("/lessons", c.reading.ListLessons)
		reading.GET("/lessons/:id", c.reading.GetLesson)
		reading.POST("/answer", c.reading.Answer)
		reading.POST("/lessons/:id/submit", c.reading.Submit)
	}

	listening := rg.Group("/listening")
	{
		listening.GET("/lessons", c.listening.ListLessons)
		listening.GET("/lessons/:id", c.listening.GetLesson)
		listening.POST("/lessons/:id/submit", c.listening.Submit)
	}
}

func (a *App) registerPracticeRoutes(rg *gin.RouterGroup, c *controllers) {
	jlpt := rg.Group("/jlpt-practice")
	{
		jlpt.GET("/tests", c.jlpt.ListTests)
		jlpt.GET("/tests/:id", c.jlpt.GetTest)
		jlpt.POST("/tests/:id/submit", c.jlpt.Submit)
		jlpt.GET("/attempts/:id", c.jlpt.GetAttempt)
	}

	notebook := rg.Group("/notebook")
	{
		notebook.GET("/categories", c.notebook.Summary)
		notebook.GET("/categories/:category", c.notebook.CategoryDetail)
	}
}

func (a *App) registerToolRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/dictionary/search", c.dictionary.Search)

	chatbot := rg.Group("/chatbot")
	{
		chatbot.POST("", c.chat.Send)
		chatbot.GET("/sessions", c.chat.ListSessions)
		chatbot.GET("/sessions/:id", c.chat.GetSession)
	}

	shadowing := rg.Group("/shadowing")
	{
		shadowing.GET("/voices", c.shadowing.ListVoices)
		shadowing.POST("/create", c.shadowing.Create)
		shadowing.POST("/upload", c.shadowing.UploadImage)
		shadowing.GET("/sessions", c.shadowing.ListSessions)
		shadowing.GET("/sessions/:id", c.shadowing.GetSession)
		shadowing.GET("/sessions/:id/download", c.shadowing.Download)
	}
}
