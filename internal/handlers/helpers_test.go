package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juarodriguezg/Backend-FilmStack/internal/auth"
	dom "github.com/juarodriguezg/Backend-FilmStack/internal/domain"
	"github.com/juarodriguezg/Backend-FilmStack/internal/dto"
	"github.com/juarodriguezg/Backend-FilmStack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

// =============================================================================
// In-memory repositories
// =============================================================================

type fakeUserRepo struct {
	nextID int64
	users  map[int64]dom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]dom.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, username, email, passwordHash string) (dom.User, error) {
	u := dom.User{
		ID: r.nextID, Username: username, Email: email,
		PasswordHash: passwordHash, CreatedAt: time.Now().UTC(),
	}
	r.users[u.ID] = u
	r.nextID++
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return dom.User{}, pgx.ErrNoRows
}

type fakeMovieRepo struct {
	nextID int64
	movies map[int64]dom.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{nextID: 1, movies: make(map[int64]dom.Movie)}
}

func (r *fakeMovieRepo) Create(ctx context.Context, m dom.Movie) (dom.Movie, error) {
	m.ID = r.nextID
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	r.movies[m.ID] = m
	r.nextID++
	return m, nil
}

func (r *fakeMovieRepo) ListByUser(ctx context.Context, userID int64) ([]dom.Movie, error) {
	var list []dom.Movie
	// Newest first, matching the SQL ordering.
	for id := r.nextID - 1; id >= 1; id-- {
		if m, ok := r.movies[id]; ok && m.UserID == userID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeMovieRepo) GetByID(ctx context.Context, userID, id int64) (dom.Movie, error) {
	m, ok := r.movies[id]
	if !ok || m.UserID != userID {
		return dom.Movie{}, pgx.ErrNoRows
	}
	return m, nil
}

func (r *fakeMovieRepo) Update(ctx context.Context, userID, id int64, patch dom.Movie) (dom.Movie, error) {
	m, ok := r.movies[id]
	if !ok || m.UserID != userID {
		return dom.Movie{}, pgx.ErrNoRows
	}
	patch.ID = m.ID
	patch.UserID = m.UserID
	patch.CreatedAt = m.CreatedAt
	patch.UpdatedAt = time.Now().UTC()
	r.movies[id] = patch
	return patch, nil
}

func (r *fakeMovieRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	m, ok := r.movies[id]
	if !ok || m.UserID != userID {
		return false, nil
	}
	delete(r.movies, id)
	return true, nil
}

// =============================================================================
// Stub metadata client
// =============================================================================

type stubMetadata struct {
	results   []dto.SearchResult
	posterURL string
}

func (s *stubMetadata) Search(ctx context.Context, title string) []dto.SearchResult {
	if s.results == nil {
		return []dto.SearchResult{}
	}
	return s.results
}

func (s *stubMetadata) PosterURL(ctx context.Context, tmdbID string) (string, bool) {
	if s.posterURL == "" {
		return "", false
	}
	return s.posterURL, true
}

// =============================================================================
// Router under test (mirrors app.Setup without Postgres/Redis)
// =============================================================================

func setupTestRouter(t *testing.T, metadata *stubMetadata) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService(testSecret, time.Hour)
	userSvc := service.NewUserService(newFakeUserRepo())
	movieSvc := service.NewMovieService(newFakeMovieRepo(), metadata, nil)

	authHandler := NewAuthHandler(tokens, userSvc)
	movieHandler := NewMovieHandler(movieSvc, metadata)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", auth.RequireAuth(tokens, userSvc), authHandler.Me)
	api.GET("/movies/search", movieHandler.Search)

	protected := api.Group("", auth.RequireAuth(tokens, userSvc))
	protected.POST("/movies", movieHandler.Create)
	protected.GET("/movies", movieHandler.List)
	protected.GET("/movies/:id", movieHandler.GetByID)
	protected.PUT("/movies/:id", movieHandler.Update)
	protected.DELETE("/movies/:id", movieHandler.Delete)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func registerAndLogin(t *testing.T, r *gin.Engine, username, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username, "email": email, "password": password,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body %s", w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].(map[string]any)
	token, _ := data["access_token"].(string)
	if token == "" {
		t.Fatal("login response has no access_token")
	}
	return token
}
