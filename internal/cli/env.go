package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that provide flag defaults.
const (
	EnvSprite   = "SCRAPEC_SPRITE"
	EnvRules    = "SCRAPEC_RULES"
	EnvLogLevel = "SCRAPEC_LOG_LEVEL"
)

// LoadEnv loads the given dotenv files, or .env when none are named.
// Variables already set in the process environment win, and a missing file
// is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
