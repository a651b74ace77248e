package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/makemusic/internal/config"
	"github.com/dyluth/makemusic/internal/printer"
	"github.com/dyluth/makemusic/pkg/archive"
	"github.com/redis/go-redis/v9"
)

// loadConfig reads --config. The default path may be absent, in which case
// built-in defaults apply; an explicitly named file must exist.
func loadConfig() (*config.MakemusicConfig, error) {
	var (
		cfg *config.MakemusicConfig
		err error
	)
	if configPath == config.FileName {
		cfg, err = config.LoadOrDefault(configPath)
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return nil, printer.Error(
			"invalid configuration",
			fmt.Sprintf("Could not load %s: %v", configPath, err),
			[]string{"Fix the file, or create a fresh one:\n  makemusic init --force"},
		)
	}

	debugf("Loaded config from %s (seed=%q layout=%dx%d)", configPath, cfg.Seed, cfg.Layout.Phrases, cfg.Layout.Repeats)
	return cfg, nil
}

// connectArchive opens and pings the archive named in cfg.
func connectArchive(ctx context.Context, cfg *config.MakemusicConfig) (*archive.Client, error) {
	if cfg.Archive == nil {
		return nil, printer.Error(
			"archive not configured",
			fmt.Sprintf("%s has no archive section.", configPath),
			[]string{"Add one to your config:\n  archive:\n    redis_url: redis://localhost:6379/0"},
		)
	}

	redisOpts, err := redis.ParseURL(cfg.Archive.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client, err := archive.NewClient(redisOpts, cfg.Archive.Namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis: %v", err),
			map[string]string{"URL": cfg.Archive.RedisURL},
			[]string{
				"Check that Redis is running and reachable",
				fmt.Sprintf("Fix archive.redis_url in %s", configPath),
			},
		)
	}

	debugf("Connected to archive at %s (namespace=%s)", cfg.Archive.RedisURL, cfg.Archive.Namespace)
	return client, nil
}
