package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

const configFileName = "allocator_config.yaml"

// PeakSeason defines a recurring high-demand window: an RRULE for the
// season start plus its length in days. Peak-season boundaries are
// operator configuration, never hard-coded.
type PeakSeason struct {
	RRule        string `yaml:"rrule" validate:"required"`
	DurationDays int    `yaml:"durationDays" validate:"required,min=1"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// Currency conversion: rates are base units per one unit of the
	// keyed currency, as decimal strings.
	BaseCurrency  string            `yaml:"baseCurrency" validate:"required,len=3"`
	CurrencyRates map[string]string `yaml:"currencyRates" validate:"required"`

	DefaultStrategy  string       `yaml:"defaultStrategy,omitempty" validate:"omitempty,oneof=optimize_occupancy vip_first group_by_type distribute_wear"`
	WearLookbackDays int          `yaml:"wearLookbackDays,omitempty" validate:"omitempty,min=1"`
	RoomTypeOrder    []string     `yaml:"roomTypeOrder,omitempty"`
	PeakSeasons      []PeakSeason `yaml:"peakSeasons,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from allocator_config.yaml.
// It looks for the config file in the current directory first, then in
// the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration struct, the rate table, and the
// rrule syntax of each peak season.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for code, rate := range cfg.CurrencyRates {
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return fmt.Errorf("invalid rate for currency %s: %w", code, err)
		}
		if !d.IsPositive() {
			return fmt.Errorf("invalid rate for currency %s: must be positive, got %s", code, rate)
		}
	}

	for i, season := range cfg.PeakSeasons {
		if _, err := rrule.StrToRRule(season.RRule); err != nil {
			return fmt.Errorf("invalid rrule in peakSeasons[%d]: %w", i, err)
		}
	}
	return nil
}

// Rates parses the configured rate table into decimals.
func (c *Config) Rates() (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal, len(c.CurrencyRates))
	for code, raw := range c.CurrencyRates {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid rate for currency %s: %w", code, err)
		}
		rates[code] = d
	}
	return rates, nil
}

// PeakSeasonWindows expands the configured seasons into concrete date
// ranges overlapping [from, to).
func (c *Config) PeakSeasonWindows(from, to time.Time) ([]model.DateRange, error) {
	var windows []model.DateRange
	for i, season := range c.PeakSeasons {
		r, err := rrule.StrToRRule(season.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in peakSeasons[%d]: %w", i, err)
		}
		// widen the search so a season already underway at `from` is
		// still picked up
		searchFrom := from.AddDate(0, 0, -season.DurationDays)
		r.DTStart(model.DateOf(searchFrom).AddDate(-1, 0, 0))
		for _, start := range r.Between(searchFrom, to, true) {
			windows = append(windows, model.DateRange{
				Start: model.DateOf(start),
				End:   model.DateOf(start).AddDate(0, 0, season.DurationDays),
			})
		}
	}
	return windows, nil
}

// WearLookback returns the configured lookback window in days with the
// 90-day default applied.
func (c *Config) WearLookback() int {
	if c.WearLookbackDays > 0 {
		return c.WearLookbackDays
	}
	return 90
}

// Strategy returns the configured default strategy name.
func (c *Config) Strategy() model.StrategyName {
	if c.DefaultStrategy == "" {
		return model.StrategyOptimizeOccupancy
	}
	return model.StrategyName(c.DefaultStrategy)
}

// findConfigFile looks for the config file in the current directory,
// then the user's home directory.
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	homePath := filepath.Join(home, configFileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or %s", configFileName, home)
}
