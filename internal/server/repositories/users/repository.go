// Package users is the credential store: account records and the per-user
// favourites and history lists.
package users

import (
	"context"

	"github.com/dmitrijs2005/watchlist/internal/server/models"
)

// Repository is the credential store contract.
//
// Create fails with common.ErrorAlreadyExists for a taken user name.
// GetUserByLogin, LockUser and GetList fail with common.ErrorNotFound for an
// unknown user. AddListItem keeps set semantics: adding a present item is a
// no-op. RemoveListItem on an absent item is not an error.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	LockUser(ctx context.Context, userID string) error
	AddListItem(ctx context.Context, userID string, list models.ListKind, itemID string) error
	RemoveListItem(ctx context.Context, userID string, list models.ListKind, itemID string) error
	GetList(ctx context.Context, userID string, list models.ListKind) ([]string, error)

	Ping(ctx context.Context) error
}
