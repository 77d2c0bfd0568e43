package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chirpdex/chirpdex/internal/cache"
	"github.com/chirpdex/chirpdex/internal/models"
)

const categoryPostsTTL = time.Minute

func categoryPostsKey(id int64) string {
	return "category:posts:" + strconv.FormatInt(id, 10)
}

// parseID parses a numeric path parameter
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, http.StatusBadRequest, "BAD_REQUEST", "id must be a number")
		return 0, false
	}
	return id, true
}

// listCategories handles GET /categories
func (r *Router) listCategories(c *gin.Context) {
	categories, err := r.categories.List(c.Request.Context())
	if err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"items": categories,
		"total": len(categories),
	})
}

// getCategory handles GET /categories/:id
func (r *Router) getCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := r.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		r.logger.Error("Failed to get category", zap.Int64("id", id), zap.Error(err))
		renderAppError(c, err)
		return
	}
	if category == nil {
		renderError(c, http.StatusNotFound, "NOT_FOUND", "category not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": category})
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// createCategory handles POST /admin/categories
func (r *Router) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		renderError(c, http.StatusBadRequest, "BAD_REQUEST", "name must not be empty")
		return
	}

	category := &models.Category{Name: req.Name}
	if err := r.categories.Create(c.Request.Context(), category); err != nil {
		r.logger.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		renderAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": category.ID})
}

type linkPostsRequest struct {
	PostIDs []int64 `json:"post_ids"`
}

// linkCategoryPosts handles POST /admin/categories/:id/posts
func (r *Router) linkCategoryPosts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req linkPostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	if len(req.PostIDs) == 0 {
		renderError(c, http.StatusBadRequest, "BAD_REQUEST", "post_ids must not be empty")
		return
	}

	linked, err := r.curator.LinkPosts(c.Request.Context(), id, req.PostIDs)
	if err != nil {
		r.logger.Error("Failed to link posts", zap.Int64("category_id", id), zap.Error(err))
		renderAppError(c, err)
		return
	}

	// Linked set changed, drop the cached listing
	if err := r.cache.Delete(categoryPostsKey(id)); err != nil && err != cache.ErrCacheDisabled {
		r.logger.Warn("Failed to invalidate category posts cache",
			zap.Int64("category_id", id), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "linked": linked})
}

// listCategoryPosts handles GET /categories/:id/posts
func (r *Router) listCategoryPosts(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if cached, err := r.cache.Get(categoryPostsKey(id)); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	category, posts, err := r.curator.PostsForCategory(c.Request.Context(), id)
	if err != nil {
		r.logger.Error("Failed to list category posts", zap.Int64("category_id", id), zap.Error(err))
		renderAppError(c, err)
		return
	}

	payload := gin.H{
		"ok":       true,
		"category": category,
		"items":    posts,
		"total":    len(posts),
	}

	if body, err := json.Marshal(payload); err == nil {
		if err := r.cache.Set(categoryPostsKey(id), body, categoryPostsTTL); err != nil && err != cache.ErrCacheDisabled {
			r.logger.Warn("Failed to cache category posts",
				zap.Int64("category_id", id), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, payload)
}
