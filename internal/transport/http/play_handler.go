package http

import (
	"net/http"

	"trivia-service/internal/app"
	"trivia-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// PlayHandler drives play sessions over plain request/response. Clients poll
// GET /v1/sessions/:id, which also samples the timer.
type PlayHandler struct {
	service *app.PlayService
}

func NewPlayHandler(service *app.PlayService) *PlayHandler {
	return &PlayHandler{service: service}
}

type startRequest struct {
	QuizID     string `json:"quizId" binding:"required"`
	PlayerName string `json:"playerName"`
}

type answerRequest struct {
	Input string `json:"input"`
}

type endRequest struct {
	Reason domain.EndReason `json:"reason" binding:"required"`
}

type sessionState struct {
	Session app.View    `json:"session"`
	Result  *resultView `json:"result,omitempty"`
}

func (h *PlayHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quizId is required")
		return
	}
	view, err := h.service.Start(c.Request.Context(), req.QuizID, req.PlayerName)
	if err != nil {
		fromError(c, err)
		return
	}
	writeCreated(c, view)
}

func (h *PlayHandler) Get(c *gin.Context) {
	view, result, err := h.service.Tick(c.Request.Context(), c.Param("id"))
	if err != nil {
		fromError(c, err)
		return
	}
	writeOK(c, sessionState{Session: view, Result: optionalResultView(result)})
}

func (h *PlayHandler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid answer payload")
		return
	}
	reply, err := h.service.Submit(c.Request.Context(), c.Param("id"), req.Input)
	if err != nil {
		fromError(c, err)
		return
	}
	writeOK(c, reply)
}

func (h *PlayHandler) End(c *gin.Context) {
	var req endRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "reason is required")
		return
	}
	result, err := h.service.End(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		fromError(c, err)
		return
	}
	writeOK(c, newResultView(result))
}

func (h *PlayHandler) Discard(c *gin.Context) {
	h.service.Discard(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}
