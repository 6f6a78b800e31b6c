// Package config defines the data structures related to portfolio
// configuration and includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/finance-tools/loan-schedule/pkg/constants"
	"github.com/finance-tools/loan-schedule/pkg/cpiseries"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for loan-schedule.
type Configuration struct {
	Currency      string               `yaml:"currency,omitempty"`
	Plans         []PlanConfig         `yaml:"plans"`
	RateChanges   []RateChangeConfig   `yaml:"rateChanges,omitempty"`
	GracePeriods  []GracePeriodConfig  `yaml:"gracePeriods,omitempty"`
	ExtraPayments []ExtraPaymentConfig `yaml:"extraPayments,omitempty"`
	CPI           CPIConfig            `yaml:"cpi,omitempty"`
	Logging       LoggingConfig        `yaml:"logging,omitempty"`
	Output        OutputConfig         `yaml:"output,omitempty"`
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

// PlanConfig indicates a loan/mortgage plan and its parameters.
type PlanConfig struct {
	ID            string  `yaml:"id,omitempty"` // assigned during normalization when absent
	Name          string  `yaml:"name,omitempty"`
	StartDate     string  `yaml:"startDate"`
	Principal     float64 `yaml:"principal,omitempty"`
	InitialAmount float64 `yaml:"initialAmount,omitempty"` // display alias of principal
	AnnualRate    float64 `yaml:"annualRate"`
	TermMonths    int     `yaml:"termMonths"`
	CPILinked     bool    `yaml:"cpiLinked,omitempty"`
}

// RateChangeConfig schedules a change to a plan's nominal annual rate.
type RateChangeConfig struct {
	Plan          string  `yaml:"plan"`
	EffectiveDate string  `yaml:"effectiveDate"`
	AnnualRate    float64 `yaml:"annualRate"`
}

// GracePeriodConfig declares an interval of suspended amortization.
type GracePeriodConfig struct {
	Plan        string `yaml:"plan"`
	StartPeriod int    `yaml:"startPeriod"`
	EndPeriod   int    `yaml:"endPeriod"`
	Mode        string `yaml:"mode"` // interest-only, deferred
}

// ExtraPaymentConfig declares a one-time additional principal payment, due
// either at a 1-based period or on a date.
type ExtraPaymentConfig struct {
	Plan     string  `yaml:"plan"`
	Period   int     `yaml:"period,omitempty"`
	Date     string  `yaml:"date,omitempty"`
	Amount   float64 `yaml:"amount"`
	Strategy string  `yaml:"strategy"` // reduce-term, reduce-payment
}

// CPIConfig declares the consumer-price-index series for CPI-linked plans.
type CPIConfig struct {
	Source       string           `yaml:"source,omitempty"` // static (default), redis
	RedisAddress string           `yaml:"redisAddress,omitempty"`
	CacheKey     string           `yaml:"cacheKey,omitempty"`
	Series       []cpiseries.Point `yaml:"series,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ParseConfiguration decodes an in-memory YAML (or JSON) document into a
// Configuration. Used by the HTTP API for uploaded and posted configs.
func ParseConfiguration(data []byte) (*Configuration, error) {
	var configuration Configuration
	if err := yaml.Unmarshal(data, &configuration); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &configuration, nil
}
