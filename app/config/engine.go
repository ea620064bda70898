package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"banrai-schools/app/services"
)

// EngineConfig holds the tunable parameters of the assignment engine and the
// reconciliation gate.
type EngineConfig struct {
	// DailyCap is the hard limit on periods (regular + substitute) a teacher
	// may hold on one date.
	DailyCap int `yaml:"daily_cap"`
	// PendingExpiryDays is the window after which unfinalized pending
	// assignments are marked expired.
	PendingExpiryDays int `yaml:"pending_expiry_days"`
	// FairnessWindow selects the history window for the fairness penalty:
	// "all_time" or "term".
	FairnessWindow string `yaml:"fairness_window"`

	Weights  services.ScoreWeights   `yaml:"weights"`
	Resolver services.ResolverConfig `yaml:"resolver"`
	Gate     services.GateThresholds `yaml:"gate"`
	AI       AIConfig                `yaml:"ai"`
}

// AIConfig configures the optional Tier-4 external name-matching service.
// The API key comes from the AI_API_KEY environment variable, never the file.
type AIConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DefaultEngineConfig returns an EngineConfig with production defaults.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		DailyCap:          4,
		PendingExpiryDays: 7,
		FairnessWindow:    string(services.WindowAllTime),
		Weights:           services.DefaultScoreWeights(),
		Resolver:          services.DefaultResolverConfig(),
		Gate:              services.DefaultGateThresholds(),
		AI: AIConfig{
			Enabled:  false,
			Endpoint: "https://openrouter.ai/api/v1/chat/completions",
			Model:    "anthropic/claude-3.5-sonnet",
			Timeout:  10 * time.Second,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *EngineConfig) Validate() error {
	if c.DailyCap < 1 {
		return fmt.Errorf("daily_cap must be at least 1")
	}
	if c.PendingExpiryDays < 1 {
		return fmt.Errorf("pending_expiry_days must be at least 1")
	}
	if w := services.FairnessWindow(c.FairnessWindow); w != services.WindowAllTime && w != services.WindowTerm {
		return fmt.Errorf("fairness_window must be %q or %q", services.WindowAllTime, services.WindowTerm)
	}
	if c.Resolver.FuzzyThreshold <= 0 || c.Resolver.FuzzyThreshold > 1 {
		return fmt.Errorf("resolver.fuzzy_threshold must be in (0,1]")
	}
	if c.Resolver.MinConfidence < 0 || c.Resolver.MinConfidence > 1 {
		return fmt.Errorf("resolver.min_confidence must be in [0,1]")
	}
	if c.Gate.AutoApply < c.Gate.Suggest {
		return fmt.Errorf("gate.auto_apply must not be below gate.suggest")
	}
	if c.AI.Enabled {
		if c.AI.Endpoint == "" || c.AI.Model == "" {
			return fmt.Errorf("ai.endpoint and ai.model are required when ai.enabled is true")
		}
		if c.AI.Timeout <= 0 {
			return fmt.Errorf("ai.timeout must be positive")
		}
	}
	return nil
}

// LoadEngineConfig loads the engine configuration from a YAML file, layered
// over the defaults. A missing file is not an error: defaults apply.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	cfg := DefaultEngineConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
