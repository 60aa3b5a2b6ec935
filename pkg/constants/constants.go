// Package constants provides shared constants for the financing simulator.
package constants

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultCatalogFile is the default vehicle catalog file name
	DefaultCatalogFile = "catalog.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "SIMULATOR"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// Inventory source constants
const (
	// InventorySourceFile loads vehicles from a YAML catalog file
	InventorySourceFile = "file"

	// InventorySourceRedis reads vehicles from redis
	InventorySourceRedis = "redis"

	// DefaultRedisAddress is the default redis address
	DefaultRedisAddress = "localhost:6379"

	// DefaultRedisKeyPrefix namespaces vehicle keys in redis
	DefaultRedisKeyPrefix = "vehicle:"
)

// Contact hand-off defaults
const (
	// DefaultContactBaseURL is the chat deep-link base
	DefaultContactBaseURL = "https://wa.me/"

	// DefaultContactPhone is the dealership's chat number
	DefaultContactPhone = "5493407123456"
)
