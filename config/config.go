package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/uyouii/ocean-profiles/exchange"
	"github.com/uyouii/ocean-profiles/model"
	"github.com/uyouii/ocean-profiles/output"
	"github.com/uyouii/ocean-profiles/profile"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PROFILEGRID_GRID_STEP.
const EnvPrefix = "PROFILEGRID"

type Config struct {
	Grid       GridConfig       `yaml:"grid" envconfig:"GRID"`
	Gaps       GapConfig        `yaml:"gaps" envconfig:"GAPS"`
	Comparison ComparisonConfig `yaml:"comparison" envconfig:"COMPARISON"`
	Exchange   ExchangeConfig   `yaml:"exchange" envconfig:"EXCHANGE"`
	Output     OutputConfig     `yaml:"output" envconfig:"OUTPUT"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
}

type GridConfig struct {
	Dimension string  `yaml:"dimension" envconfig:"DIMENSION" validate:"required"`
	Step      float64 `yaml:"step" envconfig:"STEP" validate:"gt=0"`
	Method    string  `yaml:"method" envconfig:"METHOD" validate:"oneof=pchip linear"`
	Workers   int     `yaml:"workers" envconfig:"WORKERS" validate:"min=1"`
}

type GapConfig struct {
	Enabled    bool          `yaml:"enabled" envconfig:"ENABLED"`
	Thresholds ThresholdList `yaml:"thresholds" envconfig:"THRESHOLDS" validate:"required_if=Enabled true,dive"`
}

type ComparisonConfig struct {
	Dimension string `yaml:"dimension" envconfig:"DIMENSION" validate:"required"`
	Additive  bool   `yaml:"additive" envconfig:"ADDITIVE"`
}

type ExchangeConfig struct {
	Encodings []string `yaml:"encodings" envconfig:"ENCODINGS" validate:"min=1,dive,oneof=utf-8 iso-8859-1 windows-1252"`
}

type OutputConfig struct {
	// decimals kept in written values
	Precision int32 `yaml:"precision" envconfig:"PRECISION" validate:"min=0,max=15"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// ThresholdList decodes from "500:300,1500:600" in the environment.
type ThresholdList []model.Threshold

func (l *ThresholdList) Decode(value string) error {
	res := ThresholdList{}
	for _, pair := range strings.Split(value, ",") {
		bound, limit, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			return fmt.Errorf("threshold %q: want <upper_bound>:<max_gap>", pair)
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(bound), 64)
		if err != nil {
			return fmt.Errorf("threshold %q: %w", pair, err)
		}
		g, err := strconv.ParseFloat(strings.TrimSpace(limit), 64)
		if err != nil {
			return fmt.Errorf("threshold %q: %w", pair, err)
		}
		res = append(res, model.Threshold{UpperBound: b, MaxGap: g})
	}
	*l = res
	return nil
}

func Default() Config {
	return Config{
		Grid: GridConfig{
			Dimension: exchange.DepthColumn,
			Step:      profile.DefaultStep,
			Method:    string(model.InterpPchip),
			Workers:   profile.DefaultWorkers,
		},
		Gaps: GapConfig{
			Enabled:    true,
			Thresholds: ThresholdList(model.DefaultThresholds()),
		},
		Comparison: ComparisonConfig{
			Dimension: exchange.DepthColumn,
		},
		Exchange: ExchangeConfig{
			Encodings: append([]string{}, exchange.DefaultEncodings...),
		},
		Output: OutputConfig{
			Precision: output.DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then the environment, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %v: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Gaps.Enabled {
		if err := model.Thresholds(c.Gaps.Thresholds).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ResampleOptions converts the grid and gap settings.
func (c *Config) ResampleOptions() profile.Options {
	return profile.Options{
		Step:           c.Grid.Step,
		Method:         model.InterpMethod(c.Grid.Method),
		Thresholds:     model.Thresholds(c.Gaps.Thresholds),
		DisableGapMask: !c.Gaps.Enabled,
		Workers:        c.Grid.Workers,
	}
}

// IsValidationError reports whether err came from field validation.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
