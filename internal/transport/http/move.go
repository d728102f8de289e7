package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-agent/internal/domain"
	"github.com/iamasit07/connect4-agent/internal/service/bot"
	"github.com/iamasit07/connect4-agent/internal/service/decision"
)

type Decider interface {
	Decide(ctx context.Context, req decision.Request) (decision.Response, error)
}

type MoveHandler struct {
	Decider Decider
}

func NewMoveHandler(d Decider) *MoveHandler {
	return &MoveHandler{Decider: d}
}

// Move answers POST /api/move with the chosen column.
func (h *MoveHandler) Move(c *gin.Context) {
	var req decision.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, decision.Response{Move: domain.NoMove, Error: "invalid JSON body"})
		return
	}

	resp, err := h.Decider.Decide(c.Request.Context(), req)
	if err != nil {
		c.JSON(StatusFor(err), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StatusFor maps decision errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, decision.ErrInvalidRequest), errors.Is(err, bot.ErrInvalidPlayer):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGameOver), errors.Is(err, bot.ErrNoLegalMove):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
