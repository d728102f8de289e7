package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/iamasit07/connect4-agent/internal/service/decision"
	"github.com/iamasit07/connect4-agent/internal/transport/stdio"
)

func runPlay(cmd *cobra.Command, _ []string) error {
	search, err := cfg.Search()
	if err != nil {
		return err
	}

	agent, release, err := newAgent(cfg.Strategy, search, time.Now().UnixNano())
	if err != nil {
		return err
	}
	defer release()

	svc := decision.NewService(agent, cfg.BoardRows, cfg.BoardColumns)
	return stdio.NewDriver(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}
