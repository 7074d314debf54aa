package cliparse

import (
	"errors"
	"flag"
	"os"
)

type Config struct {
	Token        string
	DatabasePath string
}

// ParseFlags validates flags and resolves the configuration
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("leetcode-daily", flag.ContinueOnError)

	// Database path (can be CLI arg or env)
	fs.StringVar(&cfg.DatabasePath, "d", "", "Database file path")

	// Secrets (env only in production, but allow CLI for dev)
	fs.StringVar(&cfg.Token, "token", "", "Discord bot token (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = os.Getenv("DATABASE_PATH")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "database.json" // default
	}

	// Token - MUST be provided
	if cfg.Token == "" {
		cfg.Token = os.Getenv("DISCORD_TOKEN")
	}
	if cfg.Token == "" {
		return Config{}, errors.New("DISCORD_TOKEN required")
	}

	return cfg, nil
}
