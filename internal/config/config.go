// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server      ServerConfig                `mapstructure:"server"`
	Logging     LoggingConfig               `mapstructure:"logging"`
	Session     SessionConfig               `mapstructure:"session"`
	HTTP        HTTPConfig                  `mapstructure:"http"`
	Proxy       ProxyConfig                 `mapstructure:"proxy"`
	Browser     BrowserConfig               `mapstructure:"browser"`
	Tournaments map[string]TournamentConfig `mapstructure:"tournaments"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// SessionConfig governs the anti-detection session table.
type SessionConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	MaxSessions    int `mapstructure:"max_sessions"`
}

// HTTPConfig configures outbound request and retry behavior.
type HTTPConfig struct {
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	MaxRetries     int     `mapstructure:"max_retries"`
	DelayMinMs     int     `mapstructure:"delay_min_ms"`
	DelayMaxMs     int     `mapstructure:"delay_max_ms"`
	RequestQPS     float64 `mapstructure:"request_qps"`
}

// ProxyConfig holds outbound proxy credentials. A structured host/port pair
// and a plain URL list are both accepted; all resolved proxies join one pool.
type ProxyConfig struct {
	Host     string   `mapstructure:"host"`
	Port     string   `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	URLs     []string `mapstructure:"urls"`
}

// BrowserConfig configures the headless rendering fallback.
type BrowserConfig struct {
	Enabled              bool `mapstructure:"enabled"`
	Headless             bool `mapstructure:"headless"`
	NavTimeoutSeconds    int  `mapstructure:"nav_timeout_seconds"`
	WaitTimeoutMs        int  `mapstructure:"wait_timeout_ms"`
	BehavioralSimulation bool `mapstructure:"behavioral_simulation"`
}

// TournamentConfig describes a national-team competition: its URL slug, the
// expected participant count used to drop not-yet-qualified rows, and the
// offset between the tournament year and the saison_id in page URLs.
type TournamentConfig struct {
	Slug         string `mapstructure:"slug"`
	Size         int    `mapstructure:"size"`
	SeasonOffset int    `mapstructure:"season_offset"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 60)
	v.SetDefault("logging.development", true)
	v.SetDefault("session.timeout_seconds", 3600)
	v.SetDefault("session.max_sessions", 50)
	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.delay_min_ms", 1000)
	v.SetDefault("http.delay_max_ms", 3000)
	v.SetDefault("http.request_qps", 2.0)
	v.SetDefault("browser.enabled", true)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.nav_timeout_seconds", 30)
	v.SetDefault("browser.wait_timeout_ms", 5000)
	v.SetDefault("browser.behavioral_simulation", false)
	v.SetDefault("tournaments", defaultTournaments())
}

// defaultTournaments carries the known national-team competitions. Page URLs
// for these use the year before the tournament (saison_id=2005 for the 2006
// World Cup), hence the season offset of 1.
func defaultTournaments() map[string]map[string]any {
	sizes := map[string]struct {
		slug string
		size int
	}{
		"FIWC": {"world-cup", 32},
		"EURO": {"uefa-euro", 24},
		"COPA": {"copa-america", 12},
		"AFAC": {"afc-asian-cup", 24},
		"GOCU": {"gold-cup", 16},
		"AFCN": {"africa-cup", 24},
	}
	out := make(map[string]map[string]any, len(sizes))
	for code, t := range sizes {
		out[code] = map[string]any{
			"slug":          t.slug,
			"size":          t.size,
			"season_offset": 1,
		}
	}
	return out
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Session.TimeoutSeconds <= 0 {
		return fmt.Errorf("session.timeout_seconds must be > 0")
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.max_sessions must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.MaxRetries <= 0 {
		return fmt.Errorf("http.max_retries must be > 0")
	}
	if c.HTTP.DelayMinMs <= 0 || c.HTTP.DelayMaxMs < c.HTTP.DelayMinMs {
		return fmt.Errorf("http.delay_min_ms must be > 0 and <= http.delay_max_ms")
	}
	if c.Browser.Enabled && c.Browser.NavTimeoutSeconds <= 0 {
		return fmt.Errorf("browser.nav_timeout_seconds must be > 0 when browser is enabled")
	}
	for code, t := range c.Tournaments {
		if t.Size < 0 {
			return fmt.Errorf("tournaments.%s.size must be >= 0", code)
		}
		if t.Slug == "" {
			return fmt.Errorf("tournaments.%s.slug must be set", code)
		}
	}
	return nil
}

// RequestTimeout converts the outbound timeout into a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// SessionTimeout converts the session expiry into a duration.
func (c Config) SessionTimeout() time.Duration {
	return time.Duration(c.Session.TimeoutSeconds) * time.Second
}

// DelayMin is the base retry backoff delay.
func (c Config) DelayMin() time.Duration {
	return time.Duration(c.HTTP.DelayMinMs) * time.Millisecond
}

// DelayMax caps the retry backoff delay.
func (c Config) DelayMax() time.Duration {
	return time.Duration(c.HTTP.DelayMaxMs) * time.Millisecond
}

// NavTimeout converts the browser navigation timeout into a duration.
func (c Config) NavTimeout() time.Duration {
	return time.Duration(c.Browser.NavTimeoutSeconds) * time.Second
}

// ProxyURLs resolves the configured proxies into plain URLs.
func (c Config) ProxyURLs() []string {
	urls := make([]string, 0, len(c.Proxy.URLs)+1)
	if c.Proxy.Host != "" && c.Proxy.Port != "" {
		auth := ""
		if c.Proxy.Username != "" {
			auth = c.Proxy.Username + ":" + c.Proxy.Password + "@"
		}
		urls = append(urls, fmt.Sprintf("http://%s%s:%s", auth, c.Proxy.Host, c.Proxy.Port))
	}
	urls = append(urls, c.Proxy.URLs...)
	return urls
}
