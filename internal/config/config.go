package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/example/transaction-analyzer/pkg/transaction"
)

// EnvPrefix prefixes environment overrides, e.g. TXA_PAGE_SIZE
const EnvPrefix = "TXA"

// Config represents the application configuration
type Config struct {
	Source   string       `mapstructure:"source"` // empty uses the built-in sample
	PageSize int          `mapstructure:"page_size"`
	Strict   bool         `mapstructure:"strict"` // reject malformed query specs
	Sort     SortConfig   `mapstructure:"sort"`
	Log      LogConfig    `mapstructure:"log"`
	Export   ExportConfig `mapstructure:"export"`
}

// SortConfig is the initial ordering of the transaction table
type SortConfig struct {
	Field     string `mapstructure:"field"`
	Direction string `mapstructure:"direction"`
}

// LogConfig controls logger output
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// ExportConfig holds export defaults
type ExportConfig struct {
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "")
	v.SetDefault("page_size", transaction.DefaultPageSize)
	v.SetDefault("strict", false)
	v.SetDefault("sort.field", string(transaction.SortByDate))
	v.SetDefault("sort.direction", string(transaction.Desc))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("export.format", "csv")
}

// LoadConfig loads configuration from file and environment variables.
// An empty path yields defaults plus environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the values that feed the query pipeline
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d: %w", c.PageSize, transaction.ErrInvalidArgument)
	}
	if _, err := c.DefaultSort(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// DefaultSort converts the sort section to a SortSpec
func (c *Config) DefaultSort() (transaction.SortSpec, error) {
	field, err := transaction.ParseSortField(c.Sort.Field)
	if err != nil {
		return transaction.SortSpec{}, fmt.Errorf("sort.field: %w", err)
	}
	dir, err := transaction.ParseDirection(c.Sort.Direction)
	if err != nil {
		return transaction.SortSpec{}, fmt.Errorf("sort.direction: %w", err)
	}
	return transaction.SortSpec{Field: field, Direction: dir}, nil
}
