package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iamasit07/connect4-agent/internal/config"
)

var cfg *config.Config

var (
	strategyFlag    string
	depthFlag       int
	weightsFlag     string
	weightsFileFlag string
	logLevelFlag    string
	logFormatFlag   string
)

var (
	rootCmd = &cobra.Command{
		Use:           "agent",
		Short:         "Connect Four decision engine",
		Long:          "agent picks Connect Four moves with a depth-limited alpha-beta search.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Answer one JSON position per stdin line with {\"move\": c} on stdout",
		Args:  cobra.NoArgs,
		RunE:  runPlay, // Defined in cmd_play.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve decisions over HTTP and websocket",
		Args:  cobra.NoArgs,
		RunE:  runServe, // Defined in cmd_serve.go
	}

	matchCmd = &cobra.Command{
		Use:   "match",
		Short: "Play two agents against each other",
		Args:  cobra.NoArgs,
		RunE:  runMatch, // Defined in cmd_match.go
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint a service token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runToken, // Defined in cmd_token.go
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&strategyFlag, "strategy", "", "agent strategy: alphabeta, minimax, random, human (env AGENT_STRATEGY)")
	pf.IntVar(&depthFlag, "depth", 0, "search depth in plies (env SEARCH_DEPTH)")
	pf.StringVar(&weightsFlag, "weights", "", "weight preset: default, defensive, positional (env WEIGHTS_PRESET)")
	pf.StringVar(&weightsFileFlag, "weights-file", "", "YAML weight table (env WEIGHTS_FILE)")
	pf.StringVar(&logLevelFlag, "log-level", "", "log level (env LOG_LEVEL)")
	pf.StringVar(&logFormatFlag, "log-format", "", "console or json (env LOG_FORMAT)")

	initMatchFlags()
	initTokenFlags()

	rootCmd.AddCommand(playCmd, serveCmd, matchCmd, tokenCmd)
}

// loadConfig reads .env, the environment and then flags, later ones winning.
func loadConfig(cmd *cobra.Command) error {
	envErr := godotenv.Load()

	cfg = config.LoadConfig()
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Strategy = strategyFlag
	}
	if flags.Changed("depth") {
		cfg.SearchDepth = depthFlag
	}
	if flags.Changed("weights") {
		cfg.WeightsPreset = weightsFlag
	}
	if flags.Changed("weights-file") {
		cfg.WeightsFile = weightsFileFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormatFlag
	}

	config.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		return envErr
	}
	if envErr != nil {
		log.Debug().Str("component", "config").Msg("no .env file found")
	}
	return nil
}
