// Package tmdb is a thin client for TheMovieDB. Lookups are best-effort: any
// network failure, non-2xx status or missing API key degrades to an empty
// result, never an error.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/juarodriguezg/Backend-FilmStack/internal/dto"
)

const defaultTimeout = 5 * time.Second

type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
}

// New returns a TMDB client. An empty apiKey is allowed; every lookup then
// short-circuits to the empty result.
func New(apiKey, baseURL, imageBaseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Results []struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		PosterPath  *string `json:"poster_path"`
		ReleaseDate string  `json:"release_date"`
		Overview    string  `json:"overview"`
		VoteAverage float64 `json:"vote_average"`
	} `json:"results"`
}

type movieDetails struct {
	PosterPath *string `json:"poster_path"`
}

// Search looks up movies by title. Failures are swallowed: the caller always
// gets a (possibly empty) slice.
func (c *Client) Search(ctx context.Context, title string) []dto.SearchResult {
	if c.apiKey == "" {
		return []dto.SearchResult{}
	}
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", title)
	q.Set("include_adult", "false")

	var resp searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/search/movie?"+q.Encode(), &resp); err != nil {
		return []dto.SearchResult{}
	}

	results := make([]dto.SearchResult, 0, len(resp.Results))
	for _, m := range resp.Results {
		results = append(results, dto.SearchResult{
			ID:          m.ID,
			Title:       m.Title,
			PosterPath:  m.PosterPath,
			ReleaseDate: m.ReleaseDate,
			Overview:    m.Overview,
			VoteAverage: m.VoteAverage,
		})
	}
	return results
}

// PosterURL fetches the movie record for the given TMDB id and derives a full
// poster URL. ok is false on any failure or when the record has no poster.
func (c *Client) PosterURL(ctx context.Context, tmdbID string) (string, bool) {
	if c.apiKey == "" || strings.TrimSpace(tmdbID) == "" {
		return "", false
	}
	q := url.Values{}
	q.Set("api_key", c.apiKey)

	var details movieDetails
	endpoint := c.baseURL + "/movie/" + url.PathEscape(tmdbID) + "?" + q.Encode()
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return "", false
	}
	if details.PosterPath == nil || *details.PosterPath == "" {
		return "", false
	}
	return c.imageBaseURL + *details.PosterPath, true
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("tmdb: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
