package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/mesto/internal/domain"
	"github.com/geocoder89/mesto/internal/domain/ids"
	"github.com/geocoder89/mesto/internal/domain/user"
)

type userRecord struct {
	user user.User
	hash string
}

// UsersRepo keeps users in process memory. It is used by tests and by the
// memory store driver.
type UsersRepo struct {
	mu      sync.RWMutex
	items   map[string]userRecord
	byEmail map[string]string
	order   []string
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items:   make(map[string]userRecord),
		byEmail: make(map[string]string),
	}
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id].user)
	}
	return out, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if !ids.Valid(id) {
		return user.User{}, domain.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok {
		return user.User{}, domain.ErrNotFound
	}
	return rec.user, nil
}

func (r *UsersRepo) GetCredentialsByEmail(ctx context.Context, email string) (user.Credentials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.Credentials{}, domain.ErrNotFound
	}
	return user.Credentials{ID: id, PasswordHash: r.items[id].hash}, nil
}

func (r *UsersRepo) Create(ctx context.Context, p user.CreateParams) (user.User, error) {
	if err := domain.Validate(p); err != nil {
		return user.User{}, err
	}

	now := time.Now().UTC()
	u := user.User{
		ID:        ids.New(),
		Email:     p.Email,
		Name:      p.Name,
		About:     p.About,
		Avatar:    p.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return user.User{}, domain.ErrDuplicate
	}

	r.items[u.ID] = userRecord{user: u, hash: p.PasswordHash}
	r.byEmail[u.Email] = u.ID
	r.order = append(r.order, u.ID)

	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, id string, p user.UpdateParams) (user.User, error) {
	if !ids.Valid(id) {
		return user.User{}, domain.ErrInvalidID
	}
	if err := domain.Validate(p); err != nil {
		return user.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return user.User{}, domain.ErrNotFound
	}

	if p.Name != nil {
		rec.user.Name = *p.Name
	}
	if p.About != nil {
		rec.user.About = *p.About
	}
	if p.Avatar != nil {
		rec.user.Avatar = *p.Avatar
	}
	rec.user.UpdatedAt = time.Now().UTC()

	r.items[id] = rec
	return rec.user, nil
}
