package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config carries everything the pipeline needs: the keyword tables driving
// the heuristics plus output naming. Keeping the tables here instead of as
// package globals lets tests and config files substitute them.
type Config struct {
	SectionHeaders []string `mapstructure:"section_headers"`
	NegativeWords  []string `mapstructure:"negative_words"`
	PositiveWords  []string `mapstructure:"positive_words"`
	NoiseWords     []string `mapstructure:"noise_words"`

	WorkbookName string `mapstructure:"workbook_name"`
	CSVName      string `mapstructure:"csv_name"`

	OCREnabled bool `mapstructure:"ocr"`

	// Passwords maps statement file names (base name, lowercased) to PDF
	// passwords, for runs without a terminal to prompt on.
	Passwords map[string]string `mapstructure:"passwords"`
}

// Build loads configuration from defaults, an optional YAML config file and
// flag overrides, in that precedence order.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// The password map is keyed by file names like "Bank-March.pdf";
	// viper's default "." delimiter would flatten those into nested keys.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))

	v.SetDefault("section_headers", []string{
		"Account Summary", "Deposits & Other Credits", "Deposits",
		"ATM Withdrawals & Debits", "ATM Withdrawals",
		"Withdrawals & Other Debits", "Checks Paid", "Checks",
		"Payments", "Transactions",
	})
	v.SetDefault("negative_words", []string{
		"withdrawal", "debit", "paid", "purchase", "atm", "payment", "check",
	})
	v.SetDefault("positive_words", []string{
		"deposit", "credit", "interest", "refund",
	})
	v.SetDefault("noise_words", []string{
		"date", "description", "debit", "credit", "balance",
		"invoice", "amount", "customer", "check", "paid", "account",
		"statement", "summary", "opening", "closing",
	})
	v.SetDefault("workbook_name", "Merged_Extracted_Data.xlsx")
	v.SetDefault("csv_name", "Merged_Master_Data.csv")
	v.SetDefault("ocr", true)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("bankstat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if flags != nil {
		binds := map[string]string{
			"ocr":           "ocr",
			"workbook_name": "workbook",
			"csv_name":      "csv",
		}
		for key, name := range binds {
			if fl := flags.Lookup(name); fl != nil {
				if err := v.BindPFlag(key, fl); err != nil {
					return nil, fmt.Errorf("error binding flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	lowered := make(map[string]string, len(cfg.Passwords))
	for name, pw := range cfg.Passwords {
		lowered[strings.ToLower(name)] = pw
	}
	cfg.Passwords = lowered

	return &cfg, nil
}

// PasswordFor returns the configured password for a statement file name,
// or empty when none is set.
func (c *Config) PasswordFor(filename string) string {
	return c.Passwords[strings.ToLower(filename)]
}
