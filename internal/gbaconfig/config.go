// Package gbaconfig loads runtime configuration for the cmd/gbacoredx
// binary from a .env file plus process
// environment variables, the way the pack's task-manager example wires
// godotenv ahead of reading individual settings.
package gbaconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the renderer/driver settings a CLI run needs beyond
// what's passed as flags: defaults usable without any .env file at
// all, the way the pack example falls back to hardcoded defaults when
// godotenv.Load fails to find one.
type Config struct {
	Scale             int
	Turbo             bool
	Frameskip         int
	LogLevel          string
	ComponentsEnabled []string
}

// Load reads a .env file if present (continuing without one after a
// note on stderr)
// and returns a Config seeded from GBACOREDX_* environment variables,
// falling back to sane defaults for anything unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "gbaconfig: no .env file found, using environment/defaults")
	}

	scale, err := getEnvInt("GBACOREDX_SCALE", 3)
	if err != nil {
		return nil, fmt.Errorf("gbaconfig: invalid GBACOREDX_SCALE: %w", err)
	}
	frameskip, err := getEnvInt("GBACOREDX_FRAMESKIP", 0)
	if err != nil {
		return nil, fmt.Errorf("gbaconfig: invalid GBACOREDX_FRAMESKIP: %w", err)
	}

	return &Config{
		Scale:             scale,
		Turbo:             getEnvBool("GBACOREDX_TURBO", false),
		Frameskip:         frameskip,
		LogLevel:          getEnv("GBACOREDX_LOG_LEVEL", "none"),
		ComponentsEnabled: getEnvList("GBACOREDX_COMPONENTS", []string{"ppu", "bus", "clock", "system"}),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func getEnvList(key string, fallback []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
