package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/watchlist/internal/common"
	"github.com/dmitrijs2005/watchlist/internal/server/config"
	"github.com/dmitrijs2005/watchlist/internal/server/models"
	"github.com/dmitrijs2005/watchlist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/watchlist/internal/server/repositories/users"
)

// MaxItemIDLength bounds external item identifiers, in characters.
const MaxItemIDLength = 128

// ListService adds, removes and reads items of a user's lists. Every store
// failure, including an unknown user or a timeout, is reported as
// common.ErrOperationFailed wrapping the cause.
type ListService struct {
	repomanager  repomanager.RepositoryManager
	storeTimeout time.Duration
}

func NewListService(m repomanager.RepositoryManager, cfg *config.Config) *ListService {
	return &ListService{
		repomanager:  m,
		storeTimeout: cfg.StoreTimeout,
	}
}

// Add puts itemID on the list and returns the updated list. Adding an item
// that is already present leaves the list unchanged.
func (s *ListService) Add(ctx context.Context, userID string, list models.ListKind, itemID string) ([]string, error) {
	return s.update(ctx, userID, list, itemID, func(ctx context.Context, repo users.Repository) error {
		return repo.AddListItem(ctx, userID, list, itemID)
	})
}

// Remove takes itemID off the list and returns the updated list. Removing an
// absent item is not an error.
func (s *ListService) Remove(ctx context.Context, userID string, list models.ListKind, itemID string) ([]string, error) {
	return s.update(ctx, userID, list, itemID, func(ctx context.Context, repo users.Repository) error {
		return repo.RemoveListItem(ctx, userID, list, itemID)
	})
}

// Get returns the whole list, empty when nothing was added.
func (s *ListService) Get(ctx context.Context, userID string, list models.ListKind) ([]string, error) {
	if err := list.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	items, err := s.repomanager.Users().GetList(ctx, userID, list)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading %s: %w", common.ErrOperationFailed, list, err)
	}
	return items, nil
}

func (s *ListService) update(ctx context.Context, userID string, list models.ListKind, itemID string,
	mutate func(ctx context.Context, repo users.Repository) error) ([]string, error) {

	if err := list.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if err := validateItemID(itemID); err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	var items []string
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		if err := repo.LockUser(ctx, userID); err != nil {
			return err
		}
		if err := mutate(ctx, repo); err != nil {
			return err
		}
		var err error
		items, err = repo.GetList(ctx, userID, list)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: error updating %s: %w", common.ErrOperationFailed, list, err)
	}

	return items, nil
}

func validateItemID(itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return fmt.Errorf("%w: item id is required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(itemID) > MaxItemIDLength {
		return fmt.Errorf("%w: item id longer than %d characters", common.ErrorValidation, MaxItemIDLength)
	}
	return nil
}
