package users

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/watchlist/internal/common"
	"github.com/dmitrijs2005/watchlist/internal/server/models"
	"github.com/google/uuid"
)

type memoryUser struct {
	user  models.User
	lists map[models.ListKind][]string
}

// MemoryRepository is a process-local Repository. Each call is atomic.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*memoryUser
	byName map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*memoryUser),
		byName: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[user.UserName]; taken {
		return nil, common.ErrorAlreadyExists
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()

	r.byID[user.ID] = &memoryUser{user: *user, lists: make(map[models.ListKind][]string)}
	r.byName[user.UserName] = user.ID

	return user, nil
}

func (r *MemoryRepository) GetUserByLogin(_ context.Context, userName string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.byID[id].user
	return &u, nil
}

func (r *MemoryRepository) LockUser(_ context.Context, userID string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byID[userID]; !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MemoryRepository) AddListItem(_ context.Context, userID string, list models.ListKind, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if !slices.Contains(u.lists[list], itemID) {
		u.lists[list] = append(u.lists[list], itemID)
	}
	return nil
}

func (r *MemoryRepository) RemoveListItem(_ context.Context, userID string, list models.ListKind, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.lists[list] = slices.DeleteFunc(u.lists[list], func(s string) bool { return s == itemID })
	return nil
}

func (r *MemoryRepository) GetList(_ context.Context, userID string, list models.ListKind) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return append(make([]string, 0, len(u.lists[list])), u.lists[list]...), nil
}

func (r *MemoryRepository) Ping(context.Context) error {
	return nil
}
