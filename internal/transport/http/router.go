package http

import (
	"log/slog"
	"net/http"
	"time"

	"trivia-service/internal/app"
	"trivia-service/internal/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the REST API and the live play websocket.
func NewRouter(log *slog.Logger, play *app.PlayService, catalog *app.CatalogService, tick time.Duration) *gin.Engine {
	log = logger.WithComponent(log, "http")

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	catalogHandler := NewCatalogHandler(catalog)
	playHandler := NewPlayHandler(play)
	wsHandler := NewWSHandler(play, tick, log)

	v1 := r.Group("/v1")
	{
		quizzes := v1.Group("/quizzes")
		quizzes.GET("", catalogHandler.ListQuizzes)
		quizzes.POST("", catalogHandler.CreateQuiz)
		quizzes.GET("/:id", catalogHandler.GetQuiz)
		quizzes.PUT("/:id", catalogHandler.UpdateQuiz)
		quizzes.DELETE("/:id", catalogHandler.DeleteQuiz)
		quizzes.POST("/:id/bulk", catalogHandler.ImportBulk)

		v1.GET("/plays", catalogHandler.ListPlays)
		v1.GET("/plays/:id", catalogHandler.GetPlay)

		sessions := v1.Group("/sessions")
		sessions.POST("", playHandler.Start)
		sessions.GET("/:id", playHandler.Get)
		sessions.POST("/:id/answers", playHandler.Answer)
		sessions.POST("/:id/end", playHandler.End)
		sessions.DELETE("/:id", playHandler.Discard)
	}

	r.GET("/ws", gin.WrapF(wsHandler.ServeWS))
	return r
}
