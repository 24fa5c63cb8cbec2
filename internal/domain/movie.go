package domain

import "time"

// Movie is a tracked film owned by exactly one user.
// Free of Gin, Postgres and Redis concerns.
type Movie struct {
	ID        int64
	Title     string
	Year      int
	Director  string
	Genre     string
	PosterURL *string
	TMDBID    *string
	UserID    int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
