package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/juarodriguezg/Backend-FilmStack/internal/auth"
	dom "github.com/juarodriguezg/Backend-FilmStack/internal/domain"
	"github.com/juarodriguezg/Backend-FilmStack/internal/dto"
	"github.com/juarodriguezg/Backend-FilmStack/internal/service"

	"github.com/gin-gonic/gin"
)

// MetadataSearcher looks up movies in the external metadata service.
type MetadataSearcher interface {
	Search(ctx context.Context, title string) []dto.SearchResult
}

type MovieHandler struct {
	svc      *service.MovieService
	metadata MetadataSearcher
}

func NewMovieHandler(svc *service.MovieService, metadata MetadataSearcher) *MovieHandler {
	return &MovieHandler{svc: svc, metadata: metadata}
}

// Search godoc
// @Summary      Search movies in TMDB by title
// @Tags         movies
// @Produce      json
// @Param        title  query     string  true  "Movie title"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Router       /movies/search [get]
func (h *MovieHandler) Search(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		respondError(c, http.StatusBadRequest, "title query parameter is required")
		return
	}
	results := h.metadata.Search(c.Request.Context(), title)
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

// Create godoc
// @Summary      Add a movie to the user's list
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateMovieRequest  true  "Movie body"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Router       /movies [post]
func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID := auth.UserIDFromContext(c)
	m, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTMDBID) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create movie")
		return
	}
	respondData(c, http.StatusCreated, "movie created", movieToResponse(m))
}

// List godoc
// @Summary      List the user's movies
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /movies [get]
func (h *MovieHandler) List(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list movies")
		return
	}
	respondData(c, http.StatusOK, "", dto.ListMoviesResponse{
		Movies: moviesToResponses(list),
		Total:  len(list),
	})
}

// GetByID godoc
// @Summary      Get one of the user's movies
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Movie ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /movies/{id} [get]
func (h *MovieHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	m, err := h.svc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, http.StatusNotFound, "movie not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load movie")
		return
	}
	respondData(c, http.StatusOK, "", movieToResponse(m))
}

// Update godoc
// @Summary      Partially update one of the user's movies
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true  "Movie ID"
// @Param        body  body      dto.UpdateMovieRequest  true  "Fields to update"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /movies/{id} [put]
func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID := auth.UserIDFromContext(c)
	m, err := h.svc.Update(c.Request.Context(), userID, id, service.MovieUpdate{
		Title:    req.Title,
		Year:     req.Year,
		Director: req.Director,
		Genre:    req.Genre,
		TMDBID:   req.TMDBID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, http.StatusNotFound, "movie not found")
		case errors.Is(err, service.ErrDuplicateTMDBID):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to update movie")
		}
		return
	}
	respondData(c, http.StatusOK, "movie updated", movieToResponse(m))
}

// Delete godoc
// @Summary      Delete one of the user's movies
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Movie ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /movies/{id} [delete]
func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, http.StatusNotFound, "movie not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete movie")
		return
	}
	respondData(c, http.StatusOK, "movie deleted", nil)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusNotFound, "movie not found")
		return 0, false
	}
	return id, true
}

func movieToResponse(m dom.Movie) dto.MovieResponse {
	return dto.MovieResponse{
		ID:        m.ID,
		Title:     m.Title,
		Year:      m.Year,
		Director:  m.Director,
		Genre:     m.Genre,
		PosterURL: m.PosterURL,
		TMDBID:    m.TMDBID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func moviesToResponses(list []dom.Movie) []dto.MovieResponse {
	out := make([]dto.MovieResponse, len(list))
	for i := range list {
		out[i] = movieToResponse(list[i])
	}
	return out
}
