package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/decisionlab/benders/core/benders"
	"github.com/decisionlab/benders/core/metrics"
)

// Config is the full runtime configuration.
type Config struct {
	Problem ProblemConfig  `json:"problem"`
	Metrics metrics.Config `json:"metrics"`
	Logging LoggingConfig  `json:"logging"`
}

// ProblemConfig describes one allocation instance.
type ProblemConfig struct {
	// FundReturns is the return coefficient of each fund, in order.
	FundReturns []float64 `json:"fund_returns"`
	// SavingsReturn is the return rate of the savings account.
	SavingsReturn float64 `json:"savings_return"`
	// TotalBudget is the overall amount available for allocation.
	TotalBudget float64 `json:"total_budget"`
	// Epsilon is the convergence tolerance on the bound gap.
	Epsilon float64 `json:"epsilon"`
	// InitialDecision seeds the loop with a candidate savings amount.
	InitialDecision float64 `json:"initial_decision"`
}

// SetDefaults applies sane defaults.
func (c *ProblemConfig) SetDefaults() {
	if c.Epsilon == 0 {
		c.Epsilon = 0.1
	}
}

// ToProblem converts the configuration into a run definition.
func (c ProblemConfig) ToProblem() benders.Problem {
	return benders.Problem{
		FundReturns:     c.FundReturns,
		SavingsReturn:   c.SavingsReturn,
		TotalBudget:     c.TotalBudget,
		Epsilon:         c.Epsilon,
		InitialDecision: c.InitialDecision,
	}
}

// Load reads a yaml or json configuration file, applies BENDERS_
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("BENDERS_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "benders_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Problem.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Problem.ToProblem().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
