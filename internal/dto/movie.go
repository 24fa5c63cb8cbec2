package dto

import "time"

type CreateMovieRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Year     int    `json:"year" binding:"required,min=1800,max=2100"`
	Director string `json:"director" binding:"required,min=1,max=255"`
	Genre    string `json:"genre" binding:"required,min=1,max=255"`
	TMDBID   string `json:"tmdb_id" binding:"omitempty,max=20"`
}

// UpdateMovieRequest is a partial update: nil = leave the field untouched.
type UpdateMovieRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=255"`
	Year     *int    `json:"year" binding:"omitempty,min=1800,max=2100"`
	Director *string `json:"director" binding:"omitempty,min=1,max=255"`
	Genre    *string `json:"genre" binding:"omitempty,min=1,max=255"`
	TMDBID   *string `json:"tmdb_id" binding:"omitempty,max=20"`
}

type MovieResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Director  string    `json:"director"`
	Genre     string    `json:"genre"`
	PosterURL *string   `json:"poster_url"`
	TMDBID    *string   `json:"tmdb_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListMoviesResponse struct {
	Movies []MovieResponse `json:"movies"`
	Total  int             `json:"total"`
}

// SearchResult is one entry from the external metadata search.
type SearchResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
}
