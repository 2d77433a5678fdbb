package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

// FileName is the configuration file at the data root.
const FileName = "famfin.yaml"

// Config represents the top-level famfin.yaml configuration.
type Config struct {
	Household   string            `yaml:"household"`
	Accounts    []AccountConfig   `yaml:"accounts,omitempty"`
	Period      PeriodConfig      `yaml:"period"`
	Propagation PropagationConfig `yaml:"propagation"`
	AI          AIConfig          `yaml:"ai"`
	Git         GitConfig         `yaml:"git"`
}

// AccountConfig maps a statement feed to an institution.
type AccountConfig struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Institution string `yaml:"institution"` // "bank" or "card"
	LastFour    string `yaml:"last_four,omitempty"`
}

// Account converts the config entry to a model.Account.
func (a AccountConfig) Account() model.Account {
	inst := model.InstitutionKind(a.Institution)
	if inst != model.InstitutionCard {
		inst = model.InstitutionBank
	}
	return model.Account{ID: a.ID, Name: a.Name, Institution: inst, LastFour: a.LastFour}
}

// PeriodConfig selects the accounting-period boundaries for reports.
type PeriodConfig struct {
	Mode  string `yaml:"mode"` // "calendar" or "billing"; anything else falls back to calendar
	Count int    `yaml:"count"`
}

// PropagationConfig controls what a manual correction triggers.
type PropagationConfig struct {
	ApplyToSimilar bool `yaml:"apply_to_similar"`
	LearnKeywords  bool `yaml:"learn_keywords"`
}

// AIConfig controls the external AI classifier.
type AIConfig struct {
	Model          string `yaml:"model,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the classifier call budget.
func (c AIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GitConfig controls git integration for the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a famfin.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data
// directory.
func Default(household string) *Config {
	return &Config{
		Household: household,
		Period: PeriodConfig{
			Mode:  "calendar",
			Count: 6,
		},
		Propagation: PropagationConfig{
			ApplyToSimilar: true,
			LearnKeywords:  true,
		},
		AI: AIConfig{
			TimeoutSeconds: 30,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "famfin",
			AuthorEmail: "famfin@localhost",
		},
	}
}
