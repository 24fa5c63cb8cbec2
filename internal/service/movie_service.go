package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/juarodriguezg/Backend-FilmStack/internal/cache"
	dom "github.com/juarodriguezg/Backend-FilmStack/internal/domain"
	"github.com/juarodriguezg/Backend-FilmStack/internal/dto"
	"github.com/juarodriguezg/Backend-FilmStack/internal/repo"
	"github.com/juarodriguezg/Backend-FilmStack/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotFound also covers movies owned by another user: ownership is part
	// of every repo predicate, so "not yours" is indistinguishable from "gone".
	ErrNotFound        = errors.New("movie not found")
	ErrDuplicateTMDBID = errors.New("a movie with this tmdb_id already exists")
)

// PosterLookup resolves an external metadata id to a poster URL. Lookups are
// best-effort; ok is false on any failure.
type PosterLookup interface {
	PosterURL(ctx context.Context, tmdbID string) (string, bool)
}

// MovieUpdate is a partial patch: nil fields are left untouched.
type MovieUpdate struct {
	Title    *string
	Year     *int
	Director *string
	Genre    *string
	TMDBID   *string
}

type MovieService struct {
	repo    repo.MovieRepo
	posters PosterLookup
	cache   *cache.MovieCache
	sf      singleflight.Group
}

// NewMovieService creates a MovieService. If c is nil, caching is disabled.
// If posters is nil, enrichment is disabled.
func NewMovieService(r repo.MovieRepo, posters PosterLookup, c *cache.MovieCache) *MovieService {
	return &MovieService{repo: r, posters: posters, cache: c}
}

// Create persists a new movie for the user. When a TMDB id is supplied, a
// poster URL is fetched synchronously and attached; lookup failure is ignored
// and the movie is created without a poster.
func (s *MovieService) Create(ctx context.Context, userID int64, req dto.CreateMovieRequest) (dom.Movie, error) {
	m := dom.Movie{
		Title:    strings.TrimSpace(req.Title),
		Year:     req.Year,
		Director: strings.TrimSpace(req.Director),
		Genre:    strings.TrimSpace(req.Genre),
		UserID:   userID,
	}
	if id := strings.TrimSpace(req.TMDBID); id != "" {
		m.TMDBID = &id
		s.enrich(ctx, &m)
	}

	out, err := s.repo.Create(ctx, m)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Movie{}, ErrDuplicateTMDBID
		}
		return dom.Movie{}, err
	}
	s.invalidateCache(ctx, userID)
	return out, nil
}

// List returns all movies owned by the user, newest first.
func (s *MovieService) List(ctx context.Context, userID int64) ([]dom.Movie, error) {
	if s.cache == nil {
		return s.repo.ListByUser(ctx, userID)
	}
	key := "list:" + strconv.FormatInt(userID, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, userID, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Movie), nil
}

// GetByID returns the user's movie, or ErrNotFound.
func (s *MovieService) GetByID(ctx context.Context, userID, id int64) (dom.Movie, error) {
	m, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Movie{}, ErrNotFound
		}
		return dom.Movie{}, err
	}
	return m, nil
}

// Update applies the non-nil fields of upd to the user's movie. When the TMDB
// id is among the updated fields and non-empty, poster enrichment runs again.
func (s *MovieService) Update(ctx context.Context, userID, id int64, upd MovieUpdate) (dom.Movie, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Movie{}, ErrNotFound
		}
		return dom.Movie{}, err
	}

	patch := existing
	if upd.Title != nil {
		patch.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Year != nil {
		patch.Year = *upd.Year
	}
	if upd.Director != nil {
		patch.Director = strings.TrimSpace(*upd.Director)
	}
	if upd.Genre != nil {
		patch.Genre = strings.TrimSpace(*upd.Genre)
	}
	if upd.TMDBID != nil {
		if tmdbID := strings.TrimSpace(*upd.TMDBID); tmdbID != "" {
			patch.TMDBID = &tmdbID
			s.enrich(ctx, &patch)
		} else {
			patch.TMDBID = nil
		}
	}

	m, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Movie{}, ErrNotFound
		}
		if utils.IsPGUniqueViolation(err) {
			return dom.Movie{}, ErrDuplicateTMDBID
		}
		return dom.Movie{}, err
	}
	s.invalidateCache(ctx, userID)
	return m, nil
}

// Delete removes the user's movie. ErrNotFound when no owned row matched.
func (s *MovieService) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *MovieService) enrich(ctx context.Context, m *dom.Movie) {
	if s.posters == nil || m.TMDBID == nil {
		return
	}
	if posterURL, ok := s.posters.PosterURL(ctx, *m.TMDBID); ok {
		m.PosterURL = &posterURL
	}
}

func (s *MovieService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}
