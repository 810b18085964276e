// Package client is a thin HTTP client for the watchlist API. It registers
// and logs in users and reads or edits their favourites and history lists
// with a session token.
package client
