package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iamasit07/connect4-agent/pkg/auth"
)

var (
	tokenSubject string
	tokenScope   string
	tokenTTL     time.Duration
)

func initTokenFlags() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "who the token is for")
	tokenCmd.Flags().StringVar(&tokenScope, "scope", "move", "token scope")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default TOKEN_TTL_MINUTES)")
	tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, _ []string) error {
	ttl := tokenTTL
	if ttl == 0 {
		ttl = cfg.TokenTTL
	}
	token, err := auth.IssueToken(cfg.JWTSecret, tokenSubject, tokenScope, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
