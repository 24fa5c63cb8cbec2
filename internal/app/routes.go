package app

import (
	"github.com/juarodriguezg/Backend-FilmStack/internal/auth"
	"github.com/juarodriguezg/Backend-FilmStack/internal/cache"
	"github.com/juarodriguezg/Backend-FilmStack/internal/config"
	"github.com/juarodriguezg/Backend-FilmStack/internal/handlers"
	"github.com/juarodriguezg/Backend-FilmStack/internal/ratelimit"
	"github.com/juarodriguezg/Backend-FilmStack/internal/repo"
	"github.com/juarodriguezg/Backend-FilmStack/internal/service"
	"github.com/juarodriguezg/Backend-FilmStack/internal/tmdb"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler)
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	limiter := ratelimit.New(cfg.Rate.RPS, cfg.Rate.Burst)
	api := r.Group("/api", limiter.Middleware())
	api.GET("/health", healthHandler)

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(tokens, userSvc)

	metadata := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.ImageBaseURL, cfg.TMDB.Timeout.Duration())
	movieRepo := repo.NewPGMovieRepo(db)
	movieCache := cache.NewMovieCache(rdb, cfg.Redis.DefaultTTL.Duration())
	movieSvc := service.NewMovieService(movieRepo, metadata, movieCache)
	movieHandler := handlers.NewMovieHandler(movieSvc, metadata)

	registerAuthRoutes(api, authHandler, tokens, userSvc)
	registerMovieRoutes(api, movieHandler, tokens, userSvc)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "FilmStack API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler, tokens *auth.TokenService, users auth.UserLookup) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", auth.RequireAuth(tokens, users), h.Me)
}

func registerMovieRoutes(api *gin.RouterGroup, h *handlers.MovieHandler, tokens *auth.TokenService, users auth.UserLookup) {
	api.GET("/movies/search", h.Search)

	protected := api.Group("", auth.RequireAuth(tokens, users))
	protected.POST("/movies", h.Create)
	protected.GET("/movies", h.List)
	protected.GET("/movies/:id", h.GetByID)
	protected.PUT("/movies/:id", h.Update)
	protected.DELETE("/movies/:id", h.Delete)
}
