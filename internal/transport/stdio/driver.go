// Package stdio runs the line protocol: one JSON position per input line,
// one {"move": c} line per answer.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-agent/internal/domain"
	"github.com/iamasit07/connect4-agent/internal/service/decision"
)

const maxLineBytes = 1 << 20

type Decider interface {
	Decide(ctx context.Context, req decision.Request) (decision.Response, error)
}

// Action is the only thing written to the output stream.
type Action struct {
	Move  int    `json:"move"`
	Error string `json:"error,omitempty"`
}

type Driver struct {
	decider Decider
	in      io.Reader
	out     *bufio.Writer
}

func NewDriver(decider Decider, in io.Reader, out io.Writer) *Driver {
	return &Driver{decider: decider, in: in, out: bufio.NewWriter(out)}
}

// Run answers every line until EOF or ctx is done. A bad line gets a
// NoMove answer and the loop keeps going.
func (d *Driver) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(d.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lines := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines++

		action := d.handle(ctx, line)
		if err := d.write(action); err != nil {
			return fmt.Errorf("write move: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	log.Debug().Str("component", "stdio").Int("lines", lines).Msg("input closed")
	return nil
}

func (d *Driver) handle(ctx context.Context, line string) Action {
	log.Debug().Str("component", "stdio").Str("request", line).Msg("received")

	var req decision.Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		log.Warn().Str("component", "stdio").Err(err).Msg("malformed line")
		return Action{Move: domain.NoMove, Error: fmt.Sprintf("%s: %v", decision.ErrInvalidRequest, err)}
	}

	resp, err := d.decider.Decide(ctx, req)
	if err != nil {
		return Action{Move: domain.NoMove, Error: err.Error()}
	}
	return Action{Move: resp.Move}
}

func (d *Driver) write(action Action) error {
	data, err := json.Marshal(action)
	if err != nil {
		return err
	}
	log.Debug().Str("component", "stdio").RawJSON("response", data).Msg("sent")

	if _, err := d.out.Write(append(data, '\n')); err != nil {
		return err
	}
	return d.out.Flush()
}
