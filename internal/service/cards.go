package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/geocoder89/mesto/internal/apperr"
	"github.com/geocoder89/mesto/internal/cache"
	"github.com/geocoder89/mesto/internal/domain"
	"github.com/geocoder89/mesto/internal/domain/card"
	"github.com/geocoder89/mesto/internal/domain/ids"
)

const (
	MsgInvalidCardData = "invalid data creating card"
	MsgInvalidCardID   = "invalid card id"
	MsgCardNotFound    = "card not found"
	MsgNotCardOwner    = "you may delete only your own card"
	MsgCardDeleted     = "card deleted"
)

const cardsListGenKey = "cards:list:gen"

// cardsListKey names the cached list for one generation of the card set.
func cardsListKey(gen int64) string {
	return "cards:list:v1:gen=" + strconv.FormatInt(gen, 10)
}

type CardStore interface {
	List(ctx context.Context) ([]card.Card, error)
	GetByID(ctx context.Context, id string) (card.Card, error)
	Create(ctx context.Context, p card.CreateParams) (card.Card, error)
	DeleteOwned(ctx context.Context, id, requester string) error
	AddLike(ctx context.Context, id, userID string) (card.Card, error)
	RemoveLike(ctx context.Context, id, userID string) (card.Card, error)
}

type Cards struct {
	store CardStore
	cache cache.Store
	log   *slog.Logger
}

// NewCards builds the card service. listCache may be nil.
func NewCards(store CardStore, listCache cache.Store, log *slog.Logger) *Cards {
	if log == nil {
		log = slog.Default()
	}
	return &Cards{store: store, cache: listCache, log: log}
}

var cardMessages = messages{
	invalidID: MsgInvalidCardID,
	notFound:  MsgCardNotFound,
}

// List serves the card list from cache when possible. The generation is read
// before the store, so a list that raced a mutation is stored under a key no
// later List asks for. Cache failures are logged and fall through to the store.
func (s *Cards) List(ctx context.Context) ([]card.Card, error) {
	if s.cache == nil {
		return s.store.List(ctx)
	}

	gen, err := s.cache.Generation(ctx, cardsListGenKey)
	if err != nil {
		s.log.WarnContext(ctx, "cards_cache_generation_failed", "err", err)
		return s.store.List(ctx)
	}
	key := cardsListKey(gen)

	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WarnContext(ctx, "cards_cache_get_failed", "err", err)
	}
	if ok {
		var cached []card.Card
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	cards, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(cards); err == nil {
		if err := s.cache.Set(ctx, key, b); err != nil {
			s.log.WarnContext(ctx, "cards_cache_set_failed", "err", err)
		}
	}

	return cards, nil
}

func (s *Cards) Create(ctx context.Context, owner string, req card.CreateCardRequest) (card.Card, error) {
	owner, err := ids.Normalize(owner)
	if err != nil {
		return card.Card{}, err
	}

	c, err := s.store.Create(ctx, card.CreateParams{Name: req.Name, Link: req.Link, Owner: owner})
	if err != nil {
		return card.Card{}, classify(err, messages{invalidData: MsgInvalidCardData})
	}

	s.invalidate(ctx)
	return c, nil
}

// Delete removes the card if requester owns it. The ownership check and the
// delete are one store operation.
func (s *Cards) Delete(ctx context.Context, cardID, requester string) error {
	cardID, requester, err := normalizePair(cardID, requester)
	if err != nil {
		return err
	}

	err = s.store.DeleteOwned(ctx, cardID, requester)
	if errors.Is(err, domain.ErrNotOwner) {
		return apperr.Wrap(apperr.KindForbidden, MsgNotCardOwner, err)
	}
	if err != nil {
		return classify(err, cardMessages)
	}

	s.invalidate(ctx)
	return nil
}

func (s *Cards) AddLike(ctx context.Context, cardID, userID string) (card.Card, error) {
	return s.mutateLikes(ctx, cardID, userID, s.store.AddLike)
}

func (s *Cards) RemoveLike(ctx context.Context, cardID, userID string) (card.Card, error) {
	return s.mutateLikes(ctx, cardID, userID, s.store.RemoveLike)
}

func (s *Cards) mutateLikes(
	ctx context.Context,
	cardID, userID string,
	op func(ctx context.Context, id, userID string) (card.Card, error),
) (card.Card, error) {
	cardID, userID, err := normalizePair(cardID, userID)
	if err != nil {
		return card.Card{}, err
	}

	c, err := op(ctx, cardID, userID)
	if err != nil {
		return card.Card{}, classify(err, cardMessages)
	}

	s.invalidate(ctx)
	return c, nil
}

func (s *Cards) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	gen, err := s.cache.Bump(ctx, cardsListGenKey)
	if err != nil {
		s.log.WarnContext(ctx, "cards_cache_invalidate_failed", "err", err)
		return
	}
	// no List reads the previous generation any more
	_ = s.cache.Delete(ctx, cardsListKey(gen-1))
}

// normalizePair canonicalises a card id and the acting identity so the store
// compares like with like.
func normalizePair(cardID, actor string) (string, string, error) {
	cardID, err := ids.Normalize(cardID)
	if err != nil {
		return "", "", apperr.Wrap(apperr.KindRequest, MsgInvalidCardID, err)
	}

	actor, err = ids.Normalize(actor)
	if err != nil {
		// actor comes from a verified token, so this is internal
		return "", "", err
	}

	return cardID, actor, nil
}
