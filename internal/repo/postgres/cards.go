package postgres

import (
	"context"

	"github.com/geocoder89/mesto/internal/domain"
	"github.com/geocoder89/mesto/internal/domain/card"
	"github.com/geocoder89/mesto/internal/domain/ids"
	"github.com/geocoder89/mesto/internal/observability"
	"github.com/jackc/pgx/v5"
)

const cardColumns = `id, name, link, owner, likes, created_at`

type CardsRepo struct {
	base
}

func NewCardsRepo(db DB, prom *observability.Prom) *CardsRepo {
	return &CardsRepo{base{db: db, prom: prom}}
}

func scanCard(row pgx.Row) (card.Card, error) {
	var c card.Card
	err := row.Scan(&c.ID, &c.Name, &c.Link, &c.Owner, &c.Likes, &c.CreatedAt)
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return c, err
}

func (r *CardsRepo) List(ctx context.Context) ([]card.Card, error) {
	op := "cards.list"
	out := make([]card.Card, 0)

	err := r.observe(op, func() error {
		rows, err := r.db.Query(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY created_at ASC, id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanCard(rows)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, mapError(op, err)
	}
	return out, nil
}

func (r *CardsRepo) GetByID(ctx context.Context, id string) (card.Card, error) {
	op := "cards.get_by_id"

	if !ids.Valid(id) {
		return card.Card{}, domain.ErrInvalidID
	}

	var c card.Card
	err := r.observe(op, func() error {
		var err error
		c, err = scanCard(r.db.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id))
		return err
	})

	if err != nil {
		return card.Card{}, mapError(op, err)
	}
	return c, nil
}

func (r *CardsRepo) Create(ctx context.Context, p card.CreateParams) (card.Card, error) {
	op := "cards.create"

	if err := domain.Validate(p); err != nil {
		return card.Card{}, err
	}

	c := card.Card{
		ID:    ids.New(),
		Name:  p.Name,
		Link:  p.Link,
		Owner: p.Owner,
		Likes: []string{},
	}

	err := r.observe(op, func() error {
		return r.db.QueryRow(ctx,
			`INSERT INTO cards (id, name, link, owner)
			 VALUES ($1, $2, $3, $4)
			 RETURNING created_at`,
			c.ID, c.Name, c.Link, c.Owner,
		).Scan(&c.CreatedAt)
	})

	if err != nil {
		return card.Card{}, mapError(op, err)
	}
	return c, nil
}

// DeleteOwned removes the card only when requester owns it. The owner lookup
// and the delete run as one statement, so a concurrent owner change or delete
// cannot slip between the check and the write.
func (r *CardsRepo) DeleteOwned(ctx context.Context, id, requester string) error {
	op := "cards.delete_owned"

	if !ids.Valid(id) {
		return domain.ErrInvalidID
	}

	var (
		owner   string
		deleted bool
	)
	err := r.observe(op, func() error {
		return r.db.QueryRow(ctx,
			`WITH target AS (
			     SELECT owner FROM cards WHERE id = $1
			 ), removed AS (
			     DELETE FROM cards WHERE id = $1 AND owner = $2 RETURNING id
			 )
			 SELECT target.owner, EXISTS (SELECT 1 FROM removed)
			   FROM target`,
			id, requester,
		).Scan(&owner, &deleted)
	})

	if err != nil {
		return mapError(op, err)
	}

	switch {
	case owner != requester:
		return domain.ErrNotOwner
	case !deleted:
		// lost a race with another delete of the same card
		return domain.ErrNotFound
	}
	return nil
}

// AddLike inserts userID into the liker set; repeated calls are no-ops.
func (r *CardsRepo) AddLike(ctx context.Context, id, userID string) (card.Card, error) {
	return r.mutateLikes(ctx, "cards.add_like", id, userID,
		`UPDATE cards
		    SET likes = CASE WHEN $2::text = ANY(likes) THEN likes ELSE array_append(likes, $2::text) END
		  WHERE id = $1
		RETURNING `+cardColumns)
}

// RemoveLike drops userID from the liker set, a no-op when absent.
func (r *CardsRepo) RemoveLike(ctx context.Context, id, userID string) (card.Card, error) {
	return r.mutateLikes(ctx, "cards.remove_like", id, userID,
		`UPDATE cards
		    SET likes = array_remove(likes, $2::text)
		  WHERE id = $1
		RETURNING `+cardColumns)
}

func (r *CardsRepo) mutateLikes(ctx context.Context, op, id, userID, query string) (card.Card, error) {
	if !ids.Valid(id) {
		return card.Card{}, domain.ErrInvalidID
	}

	var c card.Card
	err := r.observe(op, func() error {
		var err error
		c, err = scanCard(r.db.QueryRow(ctx, query, id, userID))
		return err
	})

	if err != nil {
		return card.Card{}, mapError(op, err)
	}
	return c, nil
}
