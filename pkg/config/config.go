package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/thebyteslayer/sodium/pkg/log"
)

// DefaultPath is where the server looks for its configuration file.
const DefaultPath = "sodium.toml"

// Config holds the server configuration loaded from sodium.toml.
type Config struct {
	BindIP         string `toml:"bind-ip"`
	BindPort       int    `toml:"bind-port"`
	ClusterEnabled bool   `toml:"cluster_enabled"`
	WhisperTimeout int    `toml:"whisper_timeout"`
}

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		BindIP:         "0.0.0.0",
		BindPort:       1123,
		ClusterEnabled: false,
		WhisperTimeout: 1,
	}
}

// BindAddress returns the ip:port string the server listens on.
func (c Config) BindAddress() string {
	return fmt.Sprintf("%s:%d", c.BindIP, c.BindPort)
}

// LoadOrCreate reads the configuration file at path, creating it with
// defaults when missing. A file that fails to decode cleanly is healed:
// recognized keys are salvaged field-by-field from the top-level table,
// everything else reverts to defaults, and the healed file is written back.
func LoadOrCreate(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.save(path); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	return loadAndHeal(path)
}

func loadAndHeal(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		log.WithComponent("config").Warn().Err(err).Str("path", path).Msg("Config failed to parse, healing")
		cfg = salvage(string(data))
	}

	// Write back so hand-edits and healed fields converge on a clean file.
	if err := cfg.save(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// salvage pulls recognized keys out of the top-level table one at a time,
// keeping whichever decode with the right type and defaulting the rest.
func salvage(content string) Config {
	cfg := Default()

	var table map[string]interface{}
	if _, err := toml.Decode(content, &table); err != nil {
		return cfg
	}

	if ip, ok := table["bind-ip"].(string); ok {
		cfg.BindIP = ip
	}
	if port, ok := table["bind-port"].(int64); ok {
		cfg.BindPort = int(port)
	}
	if enabled, ok := table["cluster_enabled"].(bool); ok {
		cfg.ClusterEnabled = enabled
	}
	if timeout, ok := table["whisper_timeout"].(int64); ok {
		cfg.WhisperTimeout = int(timeout)
	}

	return cfg
}

func (c Config) save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
