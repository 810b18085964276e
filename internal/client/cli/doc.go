// Package cli implements the watchlist command-line client: account
// registration, login and list editing against a running server.
//
// Commands
//
//	register
//	login
//	favourites get | add <id> | remove <id>
//	history    get | add <id> | remove <id>
package cli
