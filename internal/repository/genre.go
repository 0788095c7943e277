package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

// List every genre ordered by name
func (r *Repository) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, updated_at FROM genres ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}
	return genres, nil
}

// Insert or rename genres in one batch
func (r *Repository) UpsertGenres(ctx context.Context, genres []domain.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, g := range genres {
		batch.Queue(
			`INSERT INTO genres (id, name, updated_at) VALUES ($1, $2, NOW())
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()`,
			int64(g.ID), g.Name,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for _, g := range genres {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert genre %d: %w", g.ID, err)
		}
	}
	return nil
}

// Count stored genres
func (r *Repository) CountGenres(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count genres: %w", err)
	}
	return total, nil
}
