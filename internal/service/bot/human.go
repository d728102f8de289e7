package bot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-agent/internal/domain"
)

const DefaultHumanTimeout = 30 * time.Second

type inputLine struct {
	text string
	err  error
}

// HumanAgent asks a person for a column. Lines are read in the background
// so a pending read never outlives the move's deadline; a line typed after
// a timeout is offered to the next request.
type HumanAgent struct {
	in      io.Reader
	out     io.Writer
	timeout time.Duration

	once    sync.Once
	lines   chan inputLine
	stopped chan struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// NewHumanAgent prompts on out and reads answers from in. A zero timeout
// waits until the context is done.
func NewHumanAgent(in io.Reader, out io.Writer, timeout time.Duration) *HumanAgent {
	return &HumanAgent{
		in:      in,
		out:     out,
		timeout: timeout,
		stopped: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Close stops the background reader. It does not close the input; the
// reader exits at its next line or at EOF. Later moves fail with
// ErrInputClosed.
func (h *HumanAgent) Close() error {
	h.closeOnce.Do(func() { close(h.done) })
	return nil
}

func (h *HumanAgent) Name() string { return StrategyHuman }

func (h *HumanAgent) startReader() {
	h.once.Do(func() {
		h.lines = make(chan inputLine)
		go func() {
			defer close(h.stopped)
			defer close(h.lines)
			scanner := bufio.NewScanner(h.in)
			for scanner.Scan() {
				if !h.send(inputLine{text: scanner.Text()}) {
					return
				}
			}
			if err := scanner.Err(); err != nil {
				h.send(inputLine{err: err})
			}
		}()
	})
}

func (h *HumanAgent) send(line inputLine) bool {
	select {
	case h.lines <- line:
		return true
	case <-h.done:
		return false
	}
}

func (h *HumanAgent) ChooseMove(ctx context.Context, board *domain.Board, player domain.PlayerID) (int, error) {
	validMoves, err := checkPosition(board, player)
	if err != nil {
		return domain.NoMove, err
	}
	select {
	case <-h.done:
		return domain.NoMove, ErrInputClosed
	default:
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	h.startReader()

	fmt.Fprintf(h.out, "%s\nYou are %c. ", board, player.Symbol())
	for {
		fmt.Fprintf(h.out, "Available moves: %s\n", joinColumns(validMoves))

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return domain.NoMove, fmt.Errorf("%w after %s", ErrInputTimeout, h.timeout)
			}
			return domain.NoMove, ctx.Err()

		case <-h.done:
			return domain.NoMove, ErrInputClosed

		case line, ok := <-h.lines:
			if !ok {
				return domain.NoMove, ErrInputClosed
			}
			if line.err != nil {
				return domain.NoMove, fmt.Errorf("read move: %w", line.err)
			}
			col, err := strconv.Atoi(strings.TrimSpace(line.text))
			if err == nil && slices.Contains(validMoves, col) {
				return col, nil
			}
			log.Debug().Str("component", "human").Str("input", line.text).Msg("rejected move")
			fmt.Fprintf(h.out, "Invalid move %q. ", strings.TrimSpace(line.text))
		}
	}
}

func joinColumns(cols []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}
