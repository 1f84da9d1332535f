package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geocoder89/mesto/internal/db"
)

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	m, err := db.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up(ctx)
}
