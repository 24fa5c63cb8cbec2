package repo

import (
	"context"

	dom "github.com/juarodriguezg/Backend-FilmStack/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MovieRepo provides movie persistence. Every lookup and mutation is scoped by
// the owning user id, so a movie owned by someone else behaves exactly like a
// missing row.
type MovieRepo interface {
	Create(ctx context.Context, m dom.Movie) (dom.Movie, error)
	ListByUser(ctx context.Context, userID int64) ([]dom.Movie, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Movie, error)
	Update(ctx context.Context, userID, id int64, patch dom.Movie) (dom.Movie, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type PGMovieRepo struct {
	db *pgxpool.Pool
}

func NewPGMovieRepo(db *pgxpool.Pool) *PGMovieRepo {
	return &PGMovieRepo{db: db}
}

const movieColumns = `id, title, year, director, genre, poster_url, tmdb_id, user_id, created_at, updated_at`

func (r *PGMovieRepo) Create(ctx context.Context, m dom.Movie) (dom.Movie, error) {
	query := `
		INSERT INTO movies (title, year, director, genre, poster_url, tmdb_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + movieColumns
	var out dom.Movie
	err := r.db.QueryRow(ctx, query,
		m.Title, m.Year, m.Director, m.Genre, m.PosterURL, m.TMDBID, m.UserID,
	).Scan(
		&out.ID, &out.Title, &out.Year, &out.Director, &out.Genre,
		&out.PosterURL, &out.TMDBID, &out.UserID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGMovieRepo) ListByUser(ctx context.Context, userID int64) ([]dom.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Movie
	for rows.Next() {
		var m dom.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Director, &m.Genre,
			&m.PosterURL, &m.TMDBID, &m.UserID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *PGMovieRepo) GetByID(ctx context.Context, userID, id int64) (dom.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies WHERE id = $1 AND user_id = $2`
	var m dom.Movie
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&m.ID, &m.Title, &m.Year, &m.Director, &m.Genre,
		&m.PosterURL, &m.TMDBID, &m.UserID, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (r *PGMovieRepo) Update(ctx context.Context, userID, id int64, patch dom.Movie) (dom.Movie, error) {
	query := `
		UPDATE movies
		SET title = $3, year = $4, director = $5, genre = $6, poster_url = $7, tmdb_id = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + movieColumns
	var m dom.Movie
	err := r.db.QueryRow(ctx, query, id, userID,
		patch.Title, patch.Year, patch.Director, patch.Genre, patch.PosterURL, patch.TMDBID,
	).Scan(
		&m.ID, &m.Title, &m.Year, &m.Director, &m.Genre,
		&m.PosterURL, &m.TMDBID, &m.UserID, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (r *PGMovieRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
