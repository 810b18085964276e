package models

import "fmt"

// ListKind names one of the per-user item collections.
type ListKind string

const (
	ListFavourites ListKind = "favourites"
	ListHistory    ListKind = "history"
)

// Validate reports whether k is a known list.
func (k ListKind) Validate() error {
	switch k {
	case ListFavourites, ListHistory:
		return nil
	default:
		return fmt.Errorf("unknown list %q", string(k))
	}
}
