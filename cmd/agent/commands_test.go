package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-agent/internal/service/bot"
	"github.com/iamasit07/connect4-agent/pkg/auth"
)

// run executes the root command with args and returns what it printed.
// Flag values live in package variables, so they are reset first.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"AGENT_STRATEGY", "SEARCH_DEPTH", "WEIGHTS_PRESET", "WEIGHTS_FILE", "BOARD_ROWS", "BOARD_COLUMNS"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}

func TestMatchCommand(t *testing.T) {
	out, err := run(t, "match", "--p1", "random", "--p2", "random", "--games", "3", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, lastLine(out), "in 3 games")
	assert.Equal(t, 3, countPrefixed(out, "game "))

	again, err := run(t, "match", "--p1", "random", "--p2", "random", "--games", "3", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, lastLine(out), lastLine(again), "same seed, same series")
}

func TestMatchCommandShowsMoves(t *testing.T) {
	out, err := run(t, "match", "--p1", "alphabeta", "--p1-depth", "2", "--p2", "random", "--seed", "3", "--show")
	require.NoError(t, err)
	assert.Contains(t, out, "player 1 (X) -> column")
	assert.Contains(t, lastLine(out), "in 1 games")
}

func TestMatchCommandRejectsBadInput(t *testing.T) {
	_, err := run(t, "match", "--games", "0")
	assert.ErrorContains(t, err, "--games must be at least 1")

	_, err = run(t, "match", "--p1", "oracle")
	assert.ErrorIs(t, err, bot.ErrUnknownStrategy)

	_, err = run(t, "match", "--p2-depth", "99")
	assert.ErrorIs(t, err, bot.ErrInvalidDepth)
}

func TestServeRefusesHumanStrategy(t *testing.T) {
	_, err := run(t, "serve", "--strategy", "human")
	assert.ErrorIs(t, err, bot.ErrUnknownStrategy)
	assert.ErrorContains(t, err, "human")
}

func TestPlayCommand(t *testing.T) {
	rootCmd.SetIn(strings.NewReader(`{"player": 1}` + "\n" + "garbage\n"))
	defer rootCmd.SetIn(nil)

	out, err := run(t, "play", "--depth", "4")
	require.NoError(t, err)
	assert.Equal(t, `{"move":3}`, strings.Split(out, "\n")[0])
	assert.Contains(t, lastLine(out), `"move":-1`)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	out, err := run(t, "token", "--subject", "arena")
	require.NoError(t, err)
	claims, err := auth.ValidateToken("s3cret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "arena", claims.Subject)

	t.Setenv("JWT_SECRET", "")
	_, err = run(t, "token", "--subject", "arena")
	assert.ErrorIs(t, err, auth.ErrMissingSecret)
}

func countPrefixed(s, prefix string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}
