package config

import (
	"flag"
	"io"
	"os"
	"time"
)

// Config holds runtime settings for the watchlist CLI.
type Config struct {
	ServerURL      string
	Token          string
	AuthScheme     string
	UserName       string
	Password       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.AuthScheme = "bearer"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the environment and args, and
// returns the positional arguments left after the flags.
func LoadConfig(args []string, stderr io.Writer) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	rest, err := parseFlags(cfg, args, stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("WATCHLIST_SERVER"); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv("WATCHLIST_TOKEN"); ok && v != "" {
		cfg.Token = v
	}
	if v, ok := os.LookupEnv("WATCHLIST_AUTH_SCHEME"); ok && v != "" {
		cfg.AuthScheme = v
	}
}

func parseFlags(cfg *Config, args []string, stderr io.Writer) ([]string, error) {
	fs := flag.NewFlagSet("watchlist", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the watchlist API")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "session token")
	fs.StringVar(&cfg.AuthScheme, "m", cfg.AuthScheme, "authorization scheme")
	fs.StringVar(&cfg.UserName, "u", cfg.UserName, "user name")
	fs.StringVar(&cfg.Password, "p", cfg.Password, "password")
	timeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return fs.Args(), nil
}
