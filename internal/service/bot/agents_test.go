package bot

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-agent/internal/domain"
)

func TestNewAgentStrategies(t *testing.T) {
	opts := Options{
		Search:      DefaultSearchConfig(),
		Rand:        rand.New(rand.NewSource(1)),
		HumanInput:  strings.NewReader(""),
		HumanOutput: io.Discard,
	}

	for _, strategy := range []string{StrategyAlphaBeta, StrategyMinimax, StrategyRandom, StrategyHuman} {
		agent, err := NewAgent(strategy, opts)
		require.NoError(t, err, strategy)
		assert.Equal(t, strategy, agent.Name())
	}

	agent, err := NewAgent("", opts)
	require.NoError(t, err)
	assert.Equal(t, StrategyAlphaBeta, agent.Name())

	_, err = NewAgent("montecarlo", opts)
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = NewAgent(StrategyHuman, Options{})
	assert.ErrorIs(t, err, ErrMissingHumanPipe)
}

func TestRandomAgentOnlyPlaysLegalColumns(t *testing.T) {
	b := board(t,
		"X.O.X.O",
		"O.X.O.X",
		"X.O.X.O",
		"O.X.O.X",
		"X.O.X.O",
		"O.X.O.X",
	)
	agent := NewRandomAgent(rand.New(rand.NewSource(3)))

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		col, err := agent.ChooseMove(context.Background(), b, domain.Player1)
		require.NoError(t, err)
		seen[col] = true
	}
	assert.Equal(t, map[int]bool{1: true, 3: true, 5: true}, seen)
}

func TestRandomAgentOnFullBoard(t *testing.T) {
	b := board(t,
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
	)
	col, err := NewRandomAgent(nil).ChooseMove(context.Background(), b, domain.Player1)
	assert.ErrorIs(t, err, ErrNoLegalMove)
	assert.Equal(t, domain.NoMove, col)
}

func TestHumanAgentRepromptsOnInvalidInput(t *testing.T) {
	b := board(t,
		"X......",
		"O......",
		"X......",
		"O......",
		"X......",
		"O......",
	)
	var out bytes.Buffer
	agent := NewHumanAgent(strings.NewReader("0\nseven\n9\n 4 \n"), &out, time.Second)

	col, err := agent.ChooseMove(context.Background(), b, domain.Player1)
	require.NoError(t, err)
	assert.Equal(t, 4, col)

	prompt := out.String()
	assert.Equal(t, 4, strings.Count(prompt, "Available moves: 1, 2, 3, 4, 5, 6"))
	assert.Contains(t, prompt, `Invalid move "0"`)
	assert.Contains(t, prompt, `Invalid move "seven"`)
	assert.Contains(t, prompt, `Invalid move "9"`)
}

func TestHumanAgentReportsClosedInput(t *testing.T) {
	agent := NewHumanAgent(strings.NewReader("x\n"), io.Discard, time.Second)
	_, err := agent.ChooseMove(context.Background(), domain.NewDefaultBoard(), domain.Player1)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestHumanAgentTimesOut(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	agent := NewHumanAgent(pr, io.Discard, 20*time.Millisecond)
	start := time.Now()
	col, err := agent.ChooseMove(context.Background(), domain.NewDefaultBoard(), domain.Player2)
	assert.ErrorIs(t, err, ErrInputTimeout)
	assert.Equal(t, domain.NoMove, col)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestHumanAgentHonoursCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	agent := NewHumanAgent(pr, io.Discard, 0)
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := agent.ChooseMove(ctx, domain.NewDefaultBoard(), domain.Player1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHumanAgentKeepsLateInputForNextMove(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	agent := NewHumanAgent(pr, io.Discard, 20*time.Millisecond)
	_, err := agent.ChooseMove(context.Background(), domain.NewDefaultBoard(), domain.Player1)
	require.ErrorIs(t, err, ErrInputTimeout)

	go func() {
		_, _ = pw.Write([]byte("2\n"))
	}()
	agent.timeout = time.Second
	col, err := agent.ChooseMove(context.Background(), domain.NewDefaultBoard(), domain.Player1)
	require.NoError(t, err)
	assert.Equal(t, 2, col)
}

func TestHumanAgentCloseStopsReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	agent := NewHumanAgent(pr, io.Discard, 20*time.Millisecond)
	_, err := agent.ChooseMove(context.Background(), domain.NewDefaultBoard(), domain.Player1)
	require.ErrorIs(t, err, ErrInputTimeout)

	require.NoError(t, agent.Close())
	require.NoError(t, agent.Close())

	// a line nobody asks for must not pin the reader
	go func() {
		_, _ = pw.Write([]byte("4\n"))
	}()
	select {
	case <-agent.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("reader still blocked after Close")
	}

	_, err = agent.ChooseMove(context.Background(), domain.NewDefaultBoard(), domain.Player1)
	assert.ErrorIs(t, err, ErrInputClosed)
}
