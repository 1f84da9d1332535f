package postgres

import (
	"context"

	"github.com/geocoder89/mesto/internal/domain"
	"github.com/geocoder89/mesto/internal/domain/ids"
	"github.com/geocoder89/mesto/internal/domain/user"
	"github.com/geocoder89/mesto/internal/observability"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, name, about, avatar, created_at, updated_at`

type UsersRepo struct {
	base
}

func NewUsersRepo(db DB, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{base{db: db, prom: prom}}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.About, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	op := "users.list"
	out := make([]user.User, 0)

	err := r.observe(op, func() error {
		rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return err
			}
			out = append(out, u)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, mapError(op, err)
	}
	return out, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	op := "users.get_by_id"

	if !ids.Valid(id) {
		return user.User{}, domain.ErrInvalidID
	}

	var u user.User
	err := r.observe(op, func() error {
		var err error
		u, err = scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
		return err
	})

	if err != nil {
		return user.User{}, mapError(op, err)
	}
	return u, nil
}

// GetCredentialsByEmail is the only query that reads password_hash.
func (r *UsersRepo) GetCredentialsByEmail(ctx context.Context, email string) (user.Credentials, error) {
	op := "users.get_credentials"

	var c user.Credentials
	err := r.observe(op, func() error {
		return r.db.QueryRow(ctx,
			`SELECT id, password_hash FROM users WHERE email = $1`,
			email,
		).Scan(&c.ID, &c.PasswordHash)
	})

	if err != nil {
		return user.Credentials{}, mapError(op, err)
	}
	return c, nil
}

func (r *UsersRepo) Create(ctx context.Context, p user.CreateParams) (user.User, error) {
	op := "users.create"

	if err := domain.Validate(p); err != nil {
		return user.User{}, err
	}

	u := user.User{
		ID:     ids.New(),
		Email:  p.Email,
		Name:   p.Name,
		About:  p.About,
		Avatar: p.Avatar,
	}

	err := r.observe(op, func() error {
		return r.db.QueryRow(ctx,
			`INSERT INTO users (id, email, password_hash, name, about, avatar)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING created_at, updated_at`,
			u.ID, u.Email, p.PasswordHash, u.Name, u.About, u.Avatar,
		).Scan(&u.CreatedAt, &u.UpdatedAt)
	})

	if err != nil {
		return user.User{}, mapError(op, err)
	}
	return u, nil
}

// Update applies only the non-nil fields of p.
func (r *UsersRepo) Update(ctx context.Context, id string, p user.UpdateParams) (user.User, error) {
	op := "users.update"

	if !ids.Valid(id) {
		return user.User{}, domain.ErrInvalidID
	}
	if err := domain.Validate(p); err != nil {
		return user.User{}, err
	}

	var u user.User
	err := r.observe(op, func() error {
		var err error
		u, err = scanUser(r.db.QueryRow(ctx,
			`UPDATE users
			    SET name = COALESCE($2, name),
			        about = COALESCE($3, about),
			        avatar = COALESCE($4, avatar),
			        updated_at = now()
			  WHERE id = $1
			RETURNING `+userColumns,
			id, p.Name, p.About, p.Avatar,
		))
		return err
	})

	if err != nil {
		return user.User{}, mapError(op, err)
	}
	return u, nil
}
