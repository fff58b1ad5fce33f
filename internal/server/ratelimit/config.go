package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Tier is a named request budget shared by the routes it covers.
type Tier struct {
	Name   string
	Limit  int // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // defaults to Limit
}

// Route assigns requests matching Pattern ("METHOD /path/{param}") to a tier.
type Route struct {
	Pattern string
	Tier    string
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Default         Tier
	Tiers           map[string]Tier
	Routes          []Route
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Allowlist       map[string]bool
	Blocklist       map[string]bool
}

// Tier names
const (
	TierDefault   = "default"
	TierUnlimited = "unlimited"
	TierCompute   = "compute"
	TierWrite     = "write"
	TierScore     = "score"
)

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Default:         Tier{Name: TierDefault, Limit: 1000, Window: time.Minute},
		Tiers:           DefaultTiers(),
		Routes:          DefaultRoutes(),
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Allowlist:       map[string]bool{},
		Blocklist:       map[string]bool{},
	}
}

// DefaultTiers returns the built-in tiers.
func DefaultTiers() map[string]Tier {
	return map[string]Tier{
		TierUnlimited: {Name: TierUnlimited},
		// ranking, resume parsing and page fetches
		TierCompute: {Name: TierCompute, Limit: 30, Window: time.Hour, Burst: 5},
		TierWrite:   {Name: TierWrite, Limit: 100, Window: time.Minute, Burst: 10},
		TierScore:   {Name: TierScore, Limit: 300, Window: time.Minute, Burst: 30},
	}
}

// DefaultRoutes maps the API's routes to tiers. Unlisted routes use the default tier.
func DefaultRoutes() []Route {
	return []Route{
		{Pattern: "GET /health", Tier: TierUnlimited},

		{Pattern: "POST /users/{id}/recommendations/refresh", Tier: TierCompute},
		{Pattern: "POST /users/{id}/resume", Tier: TierCompute},
		{Pattern: "POST /jobs/import", Tier: TierCompute},

		{Pattern: "POST /score", Tier: TierScore},
		{Pattern: "POST /chat", Tier: TierScore},

		{Pattern: "POST /users", Tier: TierWrite},
		{Pattern: "DELETE /users/{id}", Tier: TierWrite},
		{Pattern: "PUT /users/{id}/profile", Tier: TierWrite},
		{Pattern: "DELETE /users/{id}/profile", Tier: TierWrite},
		{Pattern: "POST /jobs", Tier: TierWrite},
		{Pattern: "PUT /jobs/{id}", Tier: TierWrite},
		{Pattern: "DELETE /jobs/{id}", Tier: TierWrite},
		{Pattern: "POST /courses", Tier: TierWrite},
		{Pattern: "PUT /courses/{id}", Tier: TierWrite},
		{Pattern: "DELETE /courses/{id}", Tier: TierWrite},
		{Pattern: "POST /videos", Tier: TierWrite},
		{Pattern: "DELETE /videos/{id}", Tier: TierWrite},
		{Pattern: "POST /trends", Tier: TierWrite},
		{Pattern: "DELETE /trends/{id}", Tier: TierWrite},
	}
}

// LoadConfig builds the configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envBool("RATE_LIMIT_ENABLED", true)
	cfg.Default.Limit = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.Default.Limit)
	cfg.Default.Window = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.Default.Window)
	cfg.CleanupInterval = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Allowlist = parseIPList(os.Getenv("RATE_LIMIT_ALLOWLIST"))
	cfg.Blocklist = parseIPList(os.Getenv("RATE_LIMIT_BLOCKLIST"))

	if compute, ok := cfg.Tiers[TierCompute]; ok {
		compute.Limit = envInt("RATE_LIMIT_COMPUTE_LIMIT", compute.Limit)
		cfg.Tiers[TierCompute] = compute
	}
	return cfg
}

// TierFor returns the tier of the first route matching method and path.
func (c *Config) TierFor(method, path string) Tier {
	for _, r := range c.Routes {
		if MatchPattern(r.Pattern, method, path) {
			if tier, ok := c.Tiers[r.Tier]; ok {
				return tier
			}
		}
	}
	return c.Default
}

func envInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func envBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
