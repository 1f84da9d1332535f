package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/geocoder89/mesto/internal/domain"
	"github.com/geocoder89/mesto/internal/domain/card"
	"github.com/geocoder89/mesto/internal/domain/ids"
)

// CardsRepo mirrors the postgres store: every check-and-write happens under
// one lock, the same way the SQL does it in one statement.
type CardsRepo struct {
	mu    sync.RWMutex
	items map[string]card.Card
	order []string
}

func NewCardsRepo() *CardsRepo {
	return &CardsRepo{items: make(map[string]card.Card)}
}

// cloned so callers never share the likes backing array
func cloneCard(c card.Card) card.Card {
	c.Likes = slices.Clone(c.Likes)
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return c
}

func (r *CardsRepo) List(ctx context.Context) ([]card.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]card.Card, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneCard(r.items[id]))
	}
	return out, nil
}

func (r *CardsRepo) GetByID(ctx context.Context, id string) (card.Card, error) {
	if !ids.Valid(id) {
		return card.Card{}, domain.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return card.Card{}, domain.ErrNotFound
	}
	return cloneCard(c), nil
}

func (r *CardsRepo) Create(ctx context.Context, p card.CreateParams) (card.Card, error) {
	if err := domain.Validate(p); err != nil {
		return card.Card{}, err
	}

	c := card.Card{
		ID:        ids.New(),
		Name:      p.Name,
		Link:      p.Link,
		Owner:     p.Owner,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.items[c.ID] = c
	r.order = append(r.order, c.ID)
	r.mu.Unlock()

	return cloneCard(c), nil
}

func (r *CardsRepo) DeleteOwned(ctx context.Context, id, requester string) error {
	if !ids.Valid(id) {
		return domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if c.Owner != requester {
		return domain.ErrNotOwner
	}

	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

func (r *CardsRepo) AddLike(ctx context.Context, id, userID string) (card.Card, error) {
	return r.mutateLikes(id, func(likes []string) []string {
		if slices.Contains(likes, userID) {
			return likes
		}
		return append(likes, userID)
	})
}

func (r *CardsRepo) RemoveLike(ctx context.Context, id, userID string) (card.Card, error) {
	return r.mutateLikes(id, func(likes []string) []string {
		return slices.DeleteFunc(likes, func(s string) bool { return s == userID })
	})
}

func (r *CardsRepo) mutateLikes(id string, fn func([]string) []string) (card.Card, error) {
	if !ids.Valid(id) {
		return card.Card{}, domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return card.Card{}, domain.ErrNotFound
	}

	c.Likes = fn(slices.Clone(c.Likes))
	r.items[id] = c
	return cloneCard(c), nil
}
