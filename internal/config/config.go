// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/gervasio-autos/financing-simulator/pkg/constants"
	"github.com/gervasio-autos/financing-simulator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the financing simulator.
type Configuration struct {
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
	Inventory InventoryConfig `yaml:"inventory,omitempty"`
	Contact   ContactConfig   `yaml:"contact,omitempty"`
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

// ServerConfig holds the HTTP listener options.
type ServerConfig struct {
	Address     string `yaml:"address,omitempty"`
	MaxBodySize string `yaml:"maxBodySize,omitempty"` // e.g. "64K"
}

// InventoryConfig selects where vehicles are read from.
type InventoryConfig struct {
	Source      string      `yaml:"source,omitempty"` // file, redis
	CatalogFile string      `yaml:"catalogFile,omitempty"`
	Redis       RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig holds the redis connection for the redis inventory source.
type RedisConfig struct {
	Address   string `yaml:"address,omitempty"`
	KeyPrefix string `yaml:"keyPrefix,omitempty"`
}

// ContactConfig configures the chat hand-off link.
type ContactConfig struct {
	Phone   string `yaml:"phone,omitempty"`
	BaseURL string `yaml:"baseURL,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make every key known to viper so env overrides apply even
	// when the file omits them.
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", "64K")
	v.SetDefault("inventory.source", constants.InventorySourceFile)
	v.SetDefault("inventory.catalogFile", constants.DefaultCatalogFile)
	v.SetDefault("inventory.redis.address", constants.DefaultRedisAddress)
	v.SetDefault("inventory.redis.keyPrefix", constants.DefaultRedisKeyPrefix)
	v.SetDefault("contact.phone", constants.DefaultContactPhone)
	v.SetDefault("contact.baseURL", constants.DefaultContactBaseURL)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Normalize()
	return &configuration, nil
}

// Normalize trims values and lower-cases enumerations.
func (c *Configuration) Normalize() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Inventory.Source = strings.ToLower(strings.TrimSpace(c.Inventory.Source))
	c.Contact.Phone = strings.TrimSpace(c.Contact.Phone)
	if c.Contact.BaseURL != "" && !strings.HasSuffix(c.Contact.BaseURL, "/") {
		c.Contact.BaseURL += "/"
	}
}

// Validate reports the first configuration problem found.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}

	switch c.Inventory.Source {
	case constants.InventorySourceFile:
		if c.Inventory.CatalogFile == "" {
			return fmt.Errorf("inventory source %s requires catalogFile", constants.InventorySourceFile)
		}
	case constants.InventorySourceRedis:
		if c.Inventory.Redis.Address == "" {
			return fmt.Errorf("inventory source %s requires redis.address", constants.InventorySourceRedis)
		}
	default:
		return fmt.Errorf("expected inventory source of %s or %s, got %s",
			constants.InventorySourceFile, constants.InventorySourceRedis, c.Inventory.Source)
	}

	if c.Contact.Phone == "" {
		return fmt.Errorf("contact phone must not be empty")
	}
	for _, r := range c.Contact.Phone {
		if r < '0' || r > '9' {
			return fmt.Errorf("contact phone must contain only digits, got %s", c.Contact.Phone)
		}
	}
	return nil
}
