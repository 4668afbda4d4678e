package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration. Values resolve
// defaults -> config file -> BANKIMPORT_* environment variables.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Currency struct {
		Base string `mapstructure:"base" yaml:"base"`
	} `mapstructure:"currency" yaml:"currency"`

	Company struct {
		BIN  string `mapstructure:"bin" yaml:"bin"`
		IBAN string `mapstructure:"iban" yaml:"iban"`
	} `mapstructure:"company" yaml:"company"`

	Matching struct {
		FuzzyEnabled bool `mapstructure:"fuzzy_enabled" yaml:"fuzzy_enabled"`
		MaxDistance  int  `mapstructure:"max_distance" yaml:"max_distance"`
	} `mapstructure:"matching" yaml:"matching"`

	Reconcile struct {
		DateToleranceDays      int     `mapstructure:"date_tolerance_days" yaml:"date_tolerance_days"`
		AmountTolerancePercent float64 `mapstructure:"amount_tolerance_percent" yaml:"amount_tolerance_percent"`
	} `mapstructure:"reconcile" yaml:"reconcile"`

	Aliases struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"aliases" yaml:"aliases"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// InitializeConfig loads the hierarchical configuration from bankimport.yaml
// (working directory, ./config, or ~/.config/bankimport) and the environment.
func InitializeConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("bankimport")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("$HOME/.config/bankimport")

	v.SetEnvPrefix("BANKIMPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("currency.base", "KZT")
	v.SetDefault("matching.fuzzy_enabled", false)
	v.SetDefault("matching.max_distance", 2)
	v.SetDefault("reconcile.date_tolerance_days", 5)
	v.SetDefault("reconcile.amount_tolerance_percent", 10.0)
	v.SetDefault("aliases.file", "aliases.yaml")
	v.SetDefault("csv.delimiter", ",")
}
