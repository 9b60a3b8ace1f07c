package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainuser "realty/internal/domain/user"
)

// UserRepository stores users in memory. Not suitable for production.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[domainuser.ID]*domainuser.User
	byEmail map[string]domainuser.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[domainuser.ID]*domainuser.User),
		byEmail: make(map[string]domainuser.ID),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domainuser.NormalizeEmail(email)]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	if u, ok := r.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) Save(ctx context.Context, u *domainuser.User) error {
	if u == nil || strings.TrimSpace(string(u.ID)) == "" {
		return domainuser.ErrIDRequired
	}
	emailKey := domainuser.NormalizeEmail(u.Email)
	if emailKey == "" {
		return domainuser.ErrEmailRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byEmail[emailKey]; ok && existing != u.ID {
		return domainuser.ErrEmailAlreadyUsed
	}
	if prev, ok := r.byID[u.ID]; ok {
		prevKey := domainuser.NormalizeEmail(prev.Email)
		if prevKey != emailKey {
			delete(r.byEmail, prevKey)
		}
	}
	r.byID[u.ID] = cloneUser(u)
	r.byEmail[emailKey] = u.ID
	return nil
}

func (r *UserRepository) List(ctx context.Context, params domainuser.ListParams) ([]*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*domainuser.User
	for _, u := range r.byID {
		if params.Role != "" && !u.HasRole(params.Role) {
			continue
		}
		items = append(items, cloneUser(u))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil, nil
	}
	items = items[offset:]
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func cloneUser(u *domainuser.User) *domainuser.User {
	out := *u
	out.Roles = append([]domainuser.Role(nil), u.Roles...)
	return &out
}
