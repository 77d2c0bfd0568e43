package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chirpdex/chirpdex/internal/source"
)

type ingestRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// runIngest handles POST /admin/ingest
func (r *Router) runIngest(c *gin.Context) {
	req := ingestRequest{
		Query:      r.cfg.Source.Query,
		MaxResults: r.cfg.Source.MaxResults,
	}
	// Body is optional; defaults come from config
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			renderError(c, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
			return
		}
		if req.Query == "" {
			req.Query = r.cfg.Source.Query
		}
		if req.MaxResults == 0 {
			req.MaxResults = r.cfg.Source.MaxResults
		}
	}
	if req.MaxResults < 10 || req.MaxResults > 100 {
		renderError(c, http.StatusBadRequest, "BAD_REQUEST", "max_results must be between 10 and 100")
		return
	}

	summary, err := r.ingestor.Run(c.Request.Context(), req.Query, req.MaxResults)
	if err != nil {
		var authErr *source.AuthError
		var remoteErr *source.RemoteError
		switch {
		case errors.As(err, &authErr):
			renderError(c, http.StatusInternalServerError, "CONFIG_ERROR", authErr.Reason)
		case errors.As(err, &remoteErr):
			r.logger.Error("Source request failed",
				zap.Int("upstream_status", remoteErr.Status),
				zap.String("upstream_body", remoteErr.Body))
			c.JSON(http.StatusBadGateway, gin.H{
				"ok": false,
				"error": gin.H{
					"code":            "UPSTREAM_ERROR",
					"message":         "external source request failed",
					"upstream_status": remoteErr.Status,
					"upstream_body":   remoteErr.Body,
				},
			})
		default:
			r.logger.Error("Ingestion failed", zap.Error(err))
			renderAppError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"fetched": summary.FetchedCount,
		"saved":   summary.SavedCount,
		"tweets":  summary.Items,
	})
}
