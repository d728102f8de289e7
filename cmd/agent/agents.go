package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/iamasit07/connect4-agent/internal/service/bot"
)

// newAgent builds an agent from the loaded config. The returned func stops
// the agent's background reader and releases the human input file, if
// one was opened.
func newAgent(strategy string, search bot.SearchConfig, seed int64) (bot.Agent, func(), error) {
	opts := bot.Options{
		Search:       search,
		Rand:         rand.New(rand.NewSource(seed)),
		HumanTimeout: cfg.HumanTimeout,
	}

	release := func() {}
	if strategy == bot.StrategyHuman {
		f, err := os.Open(cfg.HumanInput)
		if err != nil {
			return nil, nil, fmt.Errorf("open human input %s: %w", cfg.HumanInput, err)
		}
		opts.HumanInput, opts.HumanOutput = f, os.Stderr
		release = func() { f.Close() }
	}

	agent, err := bot.NewAgent(strategy, opts)
	if err != nil {
		release()
		return nil, nil, err
	}
	if closer, ok := agent.(io.Closer); ok {
		closeFile := release
		release = func() {
			closer.Close()
			closeFile()
		}
	}
	return agent, release, nil
}
