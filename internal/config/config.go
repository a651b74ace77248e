package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dyluth/makemusic/internal/tune"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "makemusic.yml"

// DefaultNamespace isolates archive keys when none is configured.
const DefaultNamespace = "default"

// MakemusicConfig represents the top-level makemusic.yml configuration
type MakemusicConfig struct {
	Version string         `yaml:"version"`
	Seed    string         `yaml:"seed,omitempty"`    // Used when no seed argument is given
	Layout  *tune.Layout   `yaml:"layout,omitempty"`  // Phrase count and repeats
	Archive *ArchiveConfig `yaml:"archive,omitempty"` // Optional Redis archive
}

// ArchiveConfig points the CLI at a Redis server used to keep generated tunes
type ArchiveConfig struct {
	RedisURL  string `yaml:"redis_url"`
	Namespace string `yaml:"namespace,omitempty"` // Key prefix segment, default "default"
}

// Default returns the configuration used when no makemusic.yml exists.
func Default() *MakemusicConfig {
	layout := tune.DefaultLayout
	return &MakemusicConfig{
		Version: "1.0",
		Seed:    tune.DefaultSeed,
		Layout:  &layout,
	}
}

// Validate performs strict validation on the configuration and fills in
// defaults for omitted fields
func (c *MakemusicConfig) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Seed == "" {
		c.Seed = tune.DefaultSeed
	}

	// Missing layout fields fall back to the AABB default individually
	if c.Layout == nil {
		layout := tune.DefaultLayout
		c.Layout = &layout
	} else {
		if c.Layout.Phrases == 0 {
			c.Layout.Phrases = tune.DefaultLayout.Phrases
		}
		if c.Layout.Repeats == 0 {
			c.Layout.Repeats = tune.DefaultLayout.Repeats
		}
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	if c.Archive != nil {
		if err := c.Archive.Validate(); err != nil {
			return fmt.Errorf("archive: %w", err)
		}
	}

	return nil
}

// Validate checks the Redis URL and namespace
func (a *ArchiveConfig) Validate() error {
	if a.RedisURL == "" {
		return fmt.Errorf("redis_url is required")
	}
	if _, err := redis.ParseURL(a.RedisURL); err != nil {
		return fmt.Errorf("invalid redis_url: %w", err)
	}

	if a.Namespace == "" {
		a.Namespace = DefaultNamespace
	}
	// Namespaces are embedded in colon-separated keys
	if strings.ContainsAny(a.Namespace, ": \t\n*") {
		return fmt.Errorf("invalid namespace '%s': must not contain ':', '*' or whitespace", a.Namespace)
	}

	return nil
}

// Load reads and validates makemusic.yml from the specified path
func Load(path string) (*MakemusicConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config MakemusicConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads path if it exists and returns Default otherwise.
// Any other read or validation failure is returned.
func LoadOrDefault(path string) (*MakemusicConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}
