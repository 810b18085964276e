// Package services contains the server-side business logic: UserService
// registers and authenticates accounts, ListService maintains the per-user
// favourites and history lists.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/watchlist/internal/common"
	"github.com/dmitrijs2005/watchlist/internal/server/auth"
	"github.com/dmitrijs2005/watchlist/internal/server/config"
	"github.com/dmitrijs2005/watchlist/internal/server/models"
	"github.com/dmitrijs2005/watchlist/internal/server/repositories/repomanager"
)

// UserService registers users and verifies their credentials.
type UserService struct {
	repomanager  repomanager.RepositoryManager
	storeTimeout time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:  m,
		storeTimeout: cfg.StoreTimeout,
	}
}

// Register creates a user whose secret is stored as a bcrypt hash.
// A taken user name yields common.ErrorAlreadyExists; empty fields yield
// common.ErrorValidation.
func (s *UserService) Register(ctx context.Context, userName, secret string) (*models.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, fmt.Errorf("%w: user name is required", common.ErrorValidation)
	}
	if secret == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	hash, err := auth.HashSecret(secret)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	u, err := s.repomanager.Users().Create(ctx, &models.User{UserName: userName, SecretHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: error creating user: %w", common.ErrOperationFailed, err)
	}

	return u, nil
}

// Login checks the secret against the stored hash and returns the identity
// to put in a session token. An unknown user and a wrong secret both yield
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, userName, secret string) (auth.Identity, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || secret == "" {
		return auth.Identity{}, common.ErrInvalidCredentials
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repomanager.Users().GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// spend the same bcrypt work as for a known user
			_, _ = auth.CompareSecret(dummyHash(), secret)
			return auth.Identity{}, common.ErrInvalidCredentials
		}
		return auth.Identity{}, fmt.Errorf("%w: error searching user: %w", common.ErrOperationFailed, err)
	}

	ok, err := auth.CompareSecret(user.SecretHash, secret)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	if !ok {
		return auth.Identity{}, common.ErrInvalidCredentials
	}

	return auth.Identity{UserID: user.ID, UserName: user.UserName}, nil
}

var dummyHash = sync.OnceValue(func() string {
	h, err := auth.HashSecret("not-a-real-password")
	if err != nil {
		panic(err)
	}
	return h
})

func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
