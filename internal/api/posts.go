package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// listPosts handles GET /posts
func (r *Router) listPosts(c *gin.Context) {
	posts, err := r.posts.List(c.Request.Context())
	if err != nil {
		r.logger.Error("Failed to list posts", zap.Error(err))
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"items": posts,
		"total": len(posts),
	})
}

// getPost handles GET /posts/:id
func (r *Router) getPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := r.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		r.logger.Error("Failed to get post", zap.Int64("id", id), zap.Error(err))
		renderAppError(c, err)
		return
	}
	if post == nil {
		renderError(c, http.StatusNotFound, "NOT_FOUND", "post not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": post})
}
