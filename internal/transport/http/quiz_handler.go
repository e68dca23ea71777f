package http

import (
	"net/http"
	"time"

	"trivia-service/internal/app"
	"trivia-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves quiz authoring and play history.
type CatalogHandler struct {
	catalog *app.CatalogService
}

func NewCatalogHandler(catalog *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type bulkRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *CatalogHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.catalog.ListQuizzes(c.Request.Context())
	if err != nil {
		fromError(c, err)
		return
	}
	writeOK(c, quizzes)
}

func (h *CatalogHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.catalog.GetQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		fromError(c, err)
		return
	}
	writeOK(c, quiz)
}

func (h *CatalogHandler) CreateQuiz(c *gin.Context) {
	var quiz domain.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		badRequest(c, "invalid quiz payload")
		return
	}
	quiz.ID = ""
	quiz.CreatedAt, quiz.UpdatedAt = time.Time{}, time.Time{}

	saved, err := h.catalog.SaveQuiz(c.Request.Context(), quiz)
	if err != nil {
		fromError(c, err)
		return
	}
	writeCreated(c, saved)
}

func (h *CatalogHandler) UpdateQuiz(c *gin.Context) {
	var quiz domain.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		badRequest(c, "invalid quiz payload")
		return
	}
	id := c.Param("id")
	if _, err := h.catalog.GetQuiz(c.Request.Context(), id); err != nil {
		fromError(c, err)
		return
	}
	quiz.ID = id

	saved, err := h.catalog.SaveQuiz(c.Request.Context(), quiz)
	if err != nil {
		fromError(c, err)
		return
	}
	writeOK(c, saved)
}

func (h *CatalogHandler) DeleteQuiz(c *gin.Context) {
	if err := h.catalog.DeleteQuiz(c.Request.Context(), c.Param("id")); err != nil {
		fromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportBulk appends items pasted one per line as "prompt | answer | alias; alias".
func (h *CatalogHandler) ImportBulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "text is required")
		return
	}
	quiz, err := h.catalog.ImportBulk(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		fromError(c, err)
		return
	}
	writeOK(c, quiz)
}

func (h *CatalogHandler) ListPlays(c *gin.Context) {
	plays, err := h.catalog.ListPlays(c.Request.Context(), c.Query("quizId"))
	if err != nil {
		fromError(c, err)
		return
	}
	views := make([]resultView, 0, len(plays))
	for _, p := range plays {
		views = append(views, newResultView(p))
	}
	writeOK(c, views)
}

func (h *CatalogHandler) GetPlay(c *gin.Context) {
	result, err := h.catalog.GetPlay(c.Request.Context(), c.Param("id"))
	if err != nil {
		fromError(c, err)
		return
	}
	writeOK(c, newResultView(result))
}
