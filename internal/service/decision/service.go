package decision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iamasit07/connect4-agent/internal/domain"
	"github.com/iamasit07/connect4-agent/internal/service/bot"
	"github.com/iamasit07/connect4-agent/pkg/uid"
)

const ErrInvalidRequest domain.Error = "invalid decision request"

// Request is one position to decide on. Grid is column-major: Grid[c][r]
// is column c, row r counted from the top. An empty grid asks for an
// opening move on an empty board.
type Request struct {
	Grid      [][]int `json:"grid" validate:"max=16,dive,max=16,dive,oneof=0 1 2"`
	Width     int     `json:"width" validate:"gte=0,lte=16"`
	Height    int     `json:"height" validate:"gte=0,lte=16"`
	Player    int     `json:"player" validate:"oneof=1 2"`
	RequestID string  `json:"request_id,omitempty" validate:"max=64"`
}

type Response struct {
	Move      int    `json:"move"`
	RequestID string `json:"request_id,omitempty"`
	Agent     string `json:"agent,omitempty"`
	Score     int    `json:"score,omitempty"`
	Nodes     int64  `json:"nodes,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Error     string `json:"error,omitempty"`
}

// searcher is implemented by agents that report search statistics.
type searcher interface {
	Search(ctx context.Context, board *domain.Board, player domain.PlayerID) (bot.Result, error)
}

type Service struct {
	agent       bot.Agent
	defaultRows int
	defaultCols int
	validate    *validator.Validate
	tracer      trace.Tracer
}

func NewService(agent bot.Agent, defaultRows, defaultCols int) *Service {
	return &Service{
		agent:       agent,
		defaultRows: defaultRows,
		defaultCols: defaultCols,
		validate:    validator.New(),
		tracer:      otel.Tracer("github.com/iamasit07/connect4-agent/internal/service/decision"),
	}
}

func (s *Service) Agent() bot.Agent {
	return s.agent
}

// Board turns a request into a board, starting an empty one when the
// request carries no grid.
func (s *Service) Board(req Request) (*domain.Board, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if len(req.Grid) == 0 {
		rows, cols := req.Height, req.Width
		if rows == 0 {
			rows = s.defaultRows
		}
		if cols == 0 {
			cols = s.defaultCols
		}
		board, err := domain.NewBoard(rows, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return board, nil
	}

	board, err := domain.FromColumnMajor(req.Grid, req.Width, req.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return board, nil
}

// Decide answers one request. When the position has no move the response
// still carries NoMove alongside the error.
func (s *Service) Decide(ctx context.Context, req Request) (Response, error) {
	requestID := req.RequestID
	if requestID == "" {
		requestID = uid.NewRequestID()
	}

	ctx, span := s.tracer.Start(ctx, "decision.Decide", trace.WithAttributes(
		attribute.String("request.id", requestID),
		attribute.String("agent", s.agent.Name()),
		attribute.Int("player", req.Player),
	))
	defer span.End()

	resp := Response{Move: domain.NoMove, RequestID: requestID, Agent: s.agent.Name()}
	start := time.Now()

	board, err := s.Board(req)
	if err != nil {
		return s.finish(span, resp, start, err)
	}
	span.SetAttributes(attribute.Int("board.rows", board.Rows()), attribute.Int("board.columns", board.Columns()))

	player := domain.PlayerID(req.Player)
	if engine, ok := s.agent.(searcher); ok {
		var res bot.Result
		res, err = engine.Search(ctx, board, player)
		resp.Move = res.Column
		resp.Score = res.Score
		resp.Nodes = res.Stats.Nodes
		span.SetAttributes(attribute.Int("search.depth", res.Depth), attribute.Int64("search.nodes", res.Stats.Nodes))
	} else {
		resp.Move, err = s.agent.ChooseMove(ctx, board, player)
	}
	if err != nil {
		resp.Move = domain.NoMove
	}
	return s.finish(span, resp, start, err)
}

func (s *Service) finish(span trace.Span, resp Response, start time.Time, err error) (Response, error) {
	resp.ElapsedMs = time.Since(start).Milliseconds()
	outcome := outcomeOf(err)
	decisionsTotal.WithLabelValues(resp.Agent, outcome).Inc()
	span.SetAttributes(attribute.Int("move", resp.Move), attribute.String("outcome", outcome))

	event := log.Info()
	if err != nil {
		resp.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		event = log.Warn().Err(err)
	}
	event.Str("component", "decision").
		Str("request_id", resp.RequestID).
		Str("agent", resp.Agent).
		Int("move", resp.Move).
		Str("outcome", outcome).
		Int64("nodes", resp.Nodes).
		Int64("elapsed_ms", resp.ElapsedMs).
		Msg("decision")

	return resp, err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "move"
	case errors.Is(err, bot.ErrNoLegalMove):
		return "draw"
	case errors.Is(err, domain.ErrGameOver):
		return "game_over"
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, bot.ErrInvalidPlayer):
		return "invalid"
	default:
		return "error"
	}
}
