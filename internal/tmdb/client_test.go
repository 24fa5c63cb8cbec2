package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-api-key", srv.URL, "https://image.tmdb.org/t/p/w500", time.Second)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %q, want /search/movie", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "Inception" {
			t.Errorf("query = %q, want Inception", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-api-key" {
			t.Errorf("api_key = %q, want test-api-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"id": 27205, "title": "Inception", "poster_path": "/inception.jpg",
				 "release_date": "2010-07-15", "overview": "A thief...", "vote_average": 8.4},
				{"id": 64956, "title": "Inception: The Cobol Job", "poster_path": null,
				 "release_date": "2010-12-07", "overview": "Prequel", "vote_average": 7.0}
			]
		}`))
	})

	results := client.Search(context.Background(), "Inception")
	if len(results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(results))
	}
	first := results[0]
	if first.ID != 27205 || first.Title != "Inception" {
		t.Errorf("first result = %+v", first)
	}
	if first.PosterPath == nil || *first.PosterPath != "/inception.jpg" {
		t.Errorf("PosterPath = %v, want /inception.jpg", first.PosterPath)
	}
	if first.VoteAverage != 8.4 {
		t.Errorf("VoteAverage = %v, want 8.4", first.VoteAverage)
	}
	if results[1].PosterPath != nil {
		t.Errorf("second PosterPath = %v, want nil", results[1].PosterPath)
	}
}

func TestSearch_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			results := client.Search(context.Background(), "Inception")
			if results == nil {
				t.Fatal("Search() = nil, want empty slice")
			}
			if len(results) != 0 {
				t.Errorf("Search() returned %d results, want 0", len(results))
			}
		})
	}
}

func TestSearch_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := New("test-api-key", srv.URL, "https://image.tmdb.org/t/p/w500", time.Second)

	results := client.Search(context.Background(), "Inception")
	if len(results) != 0 {
		t.Errorf("Search() returned %d results on network failure, want 0", len(results))
	}
}

func TestSearch_MissingAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	client := New("", srv.URL, "https://image.tmdb.org/t/p/w500", time.Second)

	if results := client.Search(context.Background(), "Inception"); len(results) != 0 {
		t.Errorf("Search() returned %d results without an API key, want 0", len(results))
	}
	if called {
		t.Error("outbound request made without an API key")
	}
}

func TestPosterURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/27205" {
			t.Errorf("path = %q, want /movie/27205", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 27205, "poster_path": "/inception.jpg"}`))
	})

	url, ok := client.PosterURL(context.Background(), "27205")
	if !ok {
		t.Fatal("PosterURL() ok = false, want true")
	}
	if want := "https://image.tmdb.org/t/p/w500/inception.jpg"; url != want {
		t.Errorf("PosterURL() = %q, want %q", url, want)
	}
}

func TestPosterURL_NoPoster(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 27205, "poster_path": null}`))
	})

	if _, ok := client.PosterURL(context.Background(), "27205"); ok {
		t.Error("PosterURL() ok = true for a record without a poster")
	}
}

func TestPosterURL_Failure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if _, ok := client.PosterURL(context.Background(), "999999"); ok {
		t.Error("PosterURL() ok = true on a failed lookup")
	}
}

func TestPosterURL_EmptyID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("outbound request made for an empty id")
	})

	if _, ok := client.PosterURL(context.Background(), "  "); ok {
		t.Error("PosterURL() ok = true for a blank id")
	}
}
