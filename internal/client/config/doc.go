// Package config loads runtime configuration for the watchlist CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: WATCHLIST_SERVER, WATCHLIST_TOKEN, WATCHLIST_AUTH_SCHEME.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string       base URL of the watchlist API
//	-token string   session token for list commands
//	-m string       authorization scheme sent with the token
//	-u string       user name for register and login
//	-p string       password for register and login (prompted when empty)
//	-i int          request timeout (seconds); 0 disables it
//
// Arguments after the flags are the command, e.g. "favourites add tt0133093".
package config
