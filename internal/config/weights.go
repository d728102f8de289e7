package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iamasit07/connect4-agent/internal/service/bot"
)

// LoadWeights reads an evaluation table from YAML. A "preset" key selects
// the starting table and the remaining keys override it:
//
//	preset: defensive
//	opp_three: 15
func LoadWeights(path string) (bot.Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return bot.Weights{}, fmt.Errorf("read weights file: %w", err)
	}
	return ParseWeights(data)
}

func ParseWeights(data []byte) (bot.Weights, error) {
	var header struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return bot.Weights{}, fmt.Errorf("parse weights: %w", err)
	}

	weights, err := bot.PresetByName(header.Preset)
	if err != nil {
		return bot.Weights{}, err
	}
	// fields missing from the document keep their preset values
	if err := yaml.Unmarshal(data, &weights); err != nil {
		return bot.Weights{}, fmt.Errorf("parse weights: %w", err)
	}
	if err := weights.Validate(); err != nil {
		return bot.Weights{}, err
	}
	return weights, nil
}
