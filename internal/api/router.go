package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chirpdex/chirpdex/internal/cache"
	"github.com/chirpdex/chirpdex/internal/curate"
	"github.com/chirpdex/chirpdex/internal/db"
	"github.com/chirpdex/chirpdex/internal/ingest"
	"github.com/chirpdex/chirpdex/internal/source"
	"github.com/chirpdex/chirpdex/pkg/config"
	"github.com/chirpdex/chirpdex/pkg/logging"
)

// Router sets up API routes
type Router struct {
	cfg        *config.Config
	db         *db.DB
	cache      *cache.Cache
	categories *db.CategoryRepository
	posts      *db.PostRepository
	ingestor   *ingest.Service
	curator    *curate.Service
	logger     *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(cfg *config.Config, database *db.DB, redisCache *cache.Cache, sourceClient *source.Client) *Router {
	repo := db.NewRepository(database.DB)
	categories := db.NewCategoryRepository(repo)
	posts := db.NewPostRepository(repo)
	links := db.NewLinkRepository(repo)

	return &Router{
		cfg:        cfg,
		db:         database,
		cache:      redisCache,
		categories: categories,
		posts:      posts,
		ingestor:   ingest.New(sourceClient, posts),
		curator:    curate.New(categories, posts, links),
		logger:     logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Public read endpoints
	engine.GET("/categories", r.listCategories)
	engine.GET("/categories/:id", r.getCategory)
	engine.GET("/categories/:id/posts", r.listCategoryPosts)
	engine.GET("/posts", r.listPosts)
	engine.GET("/posts/:id", r.getPost)

	// Admin endpoints (authn handled upstream)
	admin := engine.Group("/admin")
	admin.POST("/categories", r.createCategory)
	admin.POST("/categories/:id/posts", r.linkCategoryPosts)
	admin.POST("/ingest", r.runIngest)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	if err := r.db.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"service": "chirpdex-api",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "chirpdex-api",
	})
}
