package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/watchlist/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   store DSN
//	-s string   token signing secret
//	-t int      token validity, minutes (0 = never expires)
//	-m string   authorization scheme
//	-o int      store timeout, seconds
//	-l string   log backend (slog|zap)
//
// os.Args is first filtered to these flags with flagx.FilterArgs so that the
// -c/-config flag and foreign flags do not abort parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-m", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes, 0 = no expiry)")
	fs.StringVar(&config.AuthScheme, "m", config.AuthScheme, "authorization header scheme")
	storeTimeout := fs.Int("o", int(config.StoreTimeout.Seconds()), "store timeout (in seconds)")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend: slog or zap")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only explicit flags replace durations, so sub-minute values from a file survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "o":
			config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
		}
	})
}
