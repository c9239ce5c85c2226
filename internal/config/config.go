package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Cloudbet (hierarchical feed)
	CloudbetBaseURL string
	CloudbetAPIKey  string

	// TheOddsAPI (flat feed), keys rotated on 401/429
	OddsAPIBaseURL string
	OddsAPIKeys    []string

	// Fetch
	FetchTimeout   time.Duration
	LookaheadHours int
	CatalogTTL     time.Duration

	// Merge
	MergePrimary string // "cloudbet" or "theoddsapi"
	MergeStrict  bool

	// Pricing
	MarginPct         float64
	PricingConfigPath string
	PlayerStatsPath   string

	// Archive: DSN wins over the sqlite path when both are set
	ArchiveDBPath    string
	ArchiveDSN       string
	ArchiveMaxSheets int

	// Fanout
	FanoutPort int

	// Alerts
	DiscordWebhookURL string

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		CloudbetBaseURL: envStr("CLOUDBET_BASE_URL", "https://sports-api.cloudbet.com/pub/v2/odds"),
		CloudbetAPIKey:  envStr("CLOUDBET_API_KEY", ""),

		OddsAPIBaseURL: envStr("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4/sports"),
		OddsAPIKeys:    envList("THE_ODDS_API_KEYS"),

		FetchTimeout:   time.Duration(envInt("FETCH_TIMEOUT_SEC", 20)) * time.Second,
		LookaheadHours: envInt("LOOKAHEAD_HOURS", 72),
		CatalogTTL:     time.Duration(envInt("CATALOG_TTL_SEC", 300)) * time.Second,

		MergePrimary: envStr("MERGE_PRIMARY", "cloudbet"),
		MergeStrict:  envBool("MERGE_STRICT", false),

		MarginPct:         envFloat("MARGIN_PCT", 5),
		PricingConfigPath: envStr("PRICING_CONFIG_PATH", ""),
		PlayerStatsPath:   envStr("PLAYER_STATS_PATH", "data/merged_player_stats.json"),

		ArchiveDBPath:    envStr("ARCHIVE_DB_PATH", "data/sheets.db"),
		ArchiveDSN:       envStr("ARCHIVE_DSN", ""),
		ArchiveMaxSheets: envInt("ARCHIVE_MAX_SHEETS", 5000),

		FanoutPort: envInt("FANOUT_PORT", 8790),

		DiscordWebhookURL: envStr("DISCORD_WEBHOOK_URL", ""),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envList splits a comma-separated value, dropping blanks.
func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
