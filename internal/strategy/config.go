package strategy

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds every tunable strategy threshold. Defaults mirror the
// published rule sets; a YAML file can override them for backtesting.
type Thresholds struct {
	Mizan  MizanConfig  `yaml:"mizan"`
	Graham GrahamConfig `yaml:"graham"`
	Lynch  LynchConfig  `yaml:"lynch"`
}

// MizanConfig holds Quality Growth thresholds.
type MizanConfig struct {
	MaxPE            float64 `yaml:"max_pe"`
	MinMargin        float64 `yaml:"min_margin"`
	MaxNetDebtEBITDA float64 `yaml:"max_net_debt_ebitda"`

	// Dynamic FCF yield target: companies growing revenue faster than
	// GrowthThreshold get the lower bar.
	FCFYieldGrowth  float64 `yaml:"fcf_yield_growth"`
	FCFYieldMature  float64 `yaml:"fcf_yield_mature"`
	GrowthThreshold float64 `yaml:"growth_threshold"`
}

// GrahamConfig holds Modern Value thresholds.
type GrahamConfig struct {
	MaxPE               float64 `yaml:"max_pe"`
	MinCurrentRatio     float64 `yaml:"min_current_ratio"`
	MaxDebtEquity       float64 `yaml:"max_debt_equity"`
	MinInterestCoverage float64 `yaml:"min_interest_coverage"`
	MinROE              float64 `yaml:"min_roe"`
}

// LynchConfig holds GARP thresholds.
type LynchConfig struct {
	MaxPEG        float64 `yaml:"max_peg"`
	MinGrowth     float64 `yaml:"min_growth"`
	MaxDebtEquity float64 `yaml:"max_debt_equity"`
	MaxPE         float64 `yaml:"max_pe"`
}

// DefaultThresholds returns the canonical rule-set thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Mizan: MizanConfig{
			MaxPE:            25.0,
			MinMargin:        15.0,
			MaxNetDebtEBITDA: 3.0,
			FCFYieldGrowth:   2.5,
			FCFYieldMature:   5.0,
			GrowthThreshold:  10.0,
		},
		Graham: GrahamConfig{
			MaxPE:               15.0,
			MinCurrentRatio:     1.5,
			MaxDebtEquity:       50.0,
			MinInterestCoverage: 3.0,
			MinROE:              8.0,
		},
		Lynch: LynchConfig{
			MaxPEG:        1.0,
			MinGrowth:     15.0,
			MaxDebtEquity: 80.0,
			MaxPE:         25.0,
		},
	}
}

// LoadThresholds reads a YAML override file. Unknown fields fail immediately
// so typos never silently fall back to defaults.
func LoadThresholds(path string) (Thresholds, error) {
	cfg := DefaultThresholds()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read thresholds file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode thresholds file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (t Thresholds) validate() error {
	if t.Mizan.MaxPE <= 0 || t.Graham.MaxPE <= 0 || t.Lynch.MaxPE <= 0 {
		return fmt.Errorf("max_pe thresholds must be positive")
	}
	if t.Lynch.MaxPEG <= 0 {
		return fmt.Errorf("max_peg threshold must be positive")
	}
	if t.Mizan.FCFYieldGrowth > t.Mizan.FCFYieldMature {
		return fmt.Errorf("fcf_yield_growth must not exceed fcf_yield_mature")
	}
	return nil
}
