package user

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepository is the in-memory implementation of the user port,
// used for development and tests. Entities are copied on the way in and
// out so callers never share mutable state with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by user id
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]User)}
}

func (r *MemoryRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.users {
		if strings.ToLower(u.Email) == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) FindByIDUL(ctx context.Context, idul string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.IDUL == idul {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) Save(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(u.Email)
	for id, existing := range r.users {
		if id != u.UserID && strings.ToLower(existing.Email) == email {
			return ErrDuplicateEmail
		}
	}

	r.users[u.UserID] = *u
	return nil
}

func (r *MemoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Count reports the number of stored users.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// Clear empties the store.
func (r *MemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]User)
}
