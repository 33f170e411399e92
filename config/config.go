package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/rustyeddy/stratreport/artifact"
	"gopkg.in/yaml.v3"
)

// Config is the complete report configuration
type Config struct {
	// StartingCapital is the per-asset capital each backtest started with.
	// Realized P/L is final_equity - StartingCapital.
	StartingCapital float64 `json:"starting_capital" yaml:"starting_capital" default:"100000" validate:"gt=0"`

	Artifacts ArtifactsConfig `json:"artifacts" yaml:"artifacts"`
	Compare   CompareConfig   `json:"compare" yaml:"compare"`
	Report    ReportConfig    `json:"report" yaml:"report"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// ArtifactsConfig locates the four input tables
type ArtifactsConfig struct {
	Source string `json:"source" yaml:"source" default:"csv" validate:"oneof=csv sqlite"`
	Dir    string `json:"dir" yaml:"dir" default:"."`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`

	Names artifact.Names `json:"names" yaml:"names"`
}

// CompareConfig contains comparison parameters
type CompareConfig struct {
	StrictAlignment bool `json:"strict_alignment" yaml:"strict_alignment" default:"true"`
}

// ReportConfig controls the rendered image
type ReportConfig struct {
	Output   string  `json:"output" yaml:"output" default:"hft_backtest_analysis.png" validate:"required"`
	WidthIn  float64 `json:"width_in" yaml:"width_in" default:"16" validate:"gt=0"`
	HeightIn float64 `json:"height_in" yaml:"height_in" default:"12" validate:"gt=0"`
	DPI      int     `json:"dpi" yaml:"dpi" default:"150" validate:"gt=0,lte=1200"`
	Show     bool    `json:"show" yaml:"show"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" default:"console" validate:"oneof=console json"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report yaml key paths ("report.dpi") rather than Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	cfg.Artifacts.Names = artifact.DefaultNames()
	return cfg
}

// LoadFromFile loads configuration from a file (YAML or JSON). Fields the
// file leaves out keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s failed %q check", fieldPath(verrs[0].Namespace()), verrs[0].Tag())
		}
		return err
	}

	if c.Artifacts.Source == "sqlite" && c.Artifacts.DBPath == "" {
		return fmt.Errorf("artifacts.db_path required for sqlite source")
	}

	n := c.Artifacts.Names
	for _, f := range []struct{ key, value string }{
		{"momentum_equity", n.MomentumEquity},
		{"meanreversion_equity", n.MeanReversionEquity},
		{"momentum_summary", n.MomentumSummary},
		{"meanreversion_summary", n.MeanReversionSummary},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("artifacts.names.%s is required", f.key)
		}
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
