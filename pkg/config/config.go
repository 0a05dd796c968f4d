// Package config loads runtime settings from the environment. A .env
// file in the working directory is honored when present, so local runs
// can keep the bot token out of the shell history.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/benbot/benbot/pkg/catalog"
)

// Config holds everything the process needs at startup. Token is only
// required when running the Discord surface; the offline CLI commands
// work without it.
type Config struct {
	Token          string
	GuildID        string
	ModeratorRoles []string
	JokesPath      string
	UsageDBPath    string
	CatalogBaseURL string
	Debug          bool
}

// Load reads configuration from the environment (after merging in .env,
// which may be absent).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Token:          strings.TrimSpace(os.Getenv("BENBOT_TOKEN")),
		GuildID:        strings.TrimSpace(os.Getenv("BENBOT_GUILD_ID")),
		ModeratorRoles: splitList(os.Getenv("BENBOT_MOD_ROLES")),
		JokesPath:      firstNonEmpty(strings.TrimSpace(os.Getenv("BENBOT_JOKES_PATH")), "dad_jokes.yaml"),
		UsageDBPath:    firstNonEmpty(strings.TrimSpace(os.Getenv("BENBOT_USAGE_DB")), "benbot_usage.db"),
		CatalogBaseURL: firstNonEmpty(strings.TrimSpace(os.Getenv("BENBOT_CATALOG_BASE_URL")), catalog.DefaultBaseURL),
		Debug:          parseBool(os.Getenv("BENBOT_DEBUG")),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
