package server

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/gervasio-autos/financing-simulator/internal/config"
	"github.com/gervasio-autos/financing-simulator/pkg/constants"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address      string
	MaxBodyBytes int64
	Version      string
}

// ConfigFrom resolves the server section of the configuration, applying
// defaults for empty values.
func ConfigFrom(sc config.ServerConfig, version string) (Config, error) {
	cfg := Config{
		Address:      strings.TrimSpace(sc.Address),
		MaxBodyBytes: constants.DefaultMaxBodySizeBytes,
		Version:      strings.TrimSpace(version),
	}
	if cfg.Address == "" {
		cfg.Address = constants.DefaultServerAddress
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	size, err := ParseSize(sc.MaxBodySize)
	if err != nil {
		return Config{}, err
	}
	if size > 0 {
		cfg.MaxBodyBytes = size
	}
	return cfg, nil
}

// ParseSize converts a human-friendly byte string (e.g., "64K", "1M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
