// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/iwvelando/captable/pkg/captable"
	"github.com/iwvelando/captable/pkg/numeric"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for captable.
type Configuration struct {
	Company Company        `yaml:"company"`
	Notes   []NoteConfig   `yaml:"notes,omitempty"`
	Series  []SeriesConfig `yaml:"series,omitempty"`
	Round   RoundConfig    `yaml:"round"`
	Policy  PolicyConfig   `yaml:"policy,omitempty"`
	Logging LoggingConfig  `yaml:"logging,omitempty"`
	Output  OutputConfig   `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Company holds the company name and its existing stock holdings, including
// any unallocated option pool.
type Company struct {
	Name     string          `yaml:"name,omitempty"`
	Holdings []HoldingConfig `yaml:"holdings"`
}

// HoldingConfig is one existing block of common stock.
type HoldingConfig struct {
	ID       string  `yaml:"id,omitempty"`
	Name     string  `yaml:"name"`
	Category string  `yaml:"category,omitempty"`
	Shares   float64 `yaml:"shares"`
}

// NoteConfig is one SAFE-style convertible note.
type NoteConfig struct {
	ID         string   `yaml:"id,omitempty"`
	Name       string   `yaml:"name"`
	Investment float64  `yaml:"investment"`
	Cap        float64  `yaml:"cap,omitempty"`
	Discount   float64  `yaml:"discount,omitempty"`
	Style      string   `yaml:"style,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
}

// SeriesConfig is one priced-round investment.
type SeriesConfig struct {
	ID         string  `yaml:"id,omitempty"`
	Name       string  `yaml:"name"`
	Investment float64 `yaml:"investment"`
}

// RoundConfig holds the terms of the priced round.
type RoundConfig struct {
	PreMoneyValuation float64 `yaml:"preMoneyValuation"`
	TargetOptionPct   float64 `yaml:"targetOptionPct,omitempty"`
}

// PolicyConfig holds the rounding rules. Pointer fields distinguish
// "unset" from an explicit false/zero so defaults can be applied.
type PolicyConfig struct {
	RoundShares     *bool `yaml:"roundShares,omitempty"`
	RoundSharesDown bool  `yaml:"roundSharesDown,omitempty"`
	PricePlaces     *int  `yaml:"pricePlaces,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source, e.g. an HTTP upload.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults backfills a generated id for every row that lacks one. The
// engine keys its validation map by note id, so every row needs a stable
// identifier for the lifetime of one load.
func (conf *Configuration) ApplyDefaults() {
	for i := range conf.Company.Holdings {
		if conf.Company.Holdings[i].ID == "" {
			conf.Company.Holdings[i].ID = uuid.NewString()
		}
	}
	for i := range conf.Notes {
		if conf.Notes[i].ID == "" {
			conf.Notes[i].ID = uuid.NewString()
		}
	}
	for i := range conf.Series {
		if conf.Series[i].ID == "" {
			conf.Series[i].ID = uuid.NewString()
		}
	}
}

// NumericPolicy resolves the configured rounding rules against defaults.
func (conf *Configuration) NumericPolicy() numeric.Policy {
	policy := numeric.DefaultPolicy()
	if conf.Policy.RoundShares != nil {
		policy.RoundShares = *conf.Policy.RoundShares
	}
	policy.RoundSharesDown = conf.Policy.RoundSharesDown
	if conf.Policy.PricePlaces != nil {
		policy.PricePlaces = *conf.Policy.PricePlaces
	}
	return policy
}

// Deal converts the configuration into the immutable input snapshot consumed
// by the engine.
func (conf *Configuration) Deal() captable.Deal {
	deal := captable.Deal{
		PreMoneyValuation: conf.Round.PreMoneyValuation,
		TargetOptionPct:   conf.Round.TargetOptionPct,
		Policy:            conf.NumericPolicy(),
	}

	for _, h := range conf.Company.Holdings {
		deal.Holdings = append(deal.Holdings, captable.Holding{
			ID:       h.ID,
			Name:     h.Name,
			Category: h.Category,
			Shares:   h.Shares,
		})
	}
	for _, n := range conf.Notes {
		deal.Notes = append(deal.Notes, captable.Note{
			ID:         n.ID,
			Name:       n.Name,
			Investment: n.Investment,
			Cap:        n.Cap,
			Discount:   n.Discount,
			Style:      captable.ParseStyle(n.Style),
			Tags:       append([]string(nil), n.Tags...),
		})
	}
	for _, s := range conf.Series {
		deal.Series = append(deal.Series, captable.Series{
			ID:         s.ID,
			Name:       s.Name,
			Investment: s.Investment,
		})
	}

	return deal
}
