package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clipsight/clipsight/internal/database"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/platform"
	"github.com/clipsight/clipsight/internal/services/resolver"
	"github.com/clipsight/clipsight/internal/utils"
)

type VideoHandler struct {
	resolver *resolver.Resolver
	db       *database.MongoDB
}

// NewVideoHandler wires the resolver and the optional snapshot store; db may
// be nil when snapshots are disabled.
func NewVideoHandler(resolver *resolver.Resolver, db *database.MongoDB) *VideoHandler {
	return &VideoHandler{
		resolver: resolver,
		db:       db,
	}
}

// AnalyzeVideo godoc
// @Summary Extract normalized metadata for a video URL
// @Description Runs the platform's provider fallback chain and returns normalized metadata plus the extraction report
// @Tags video
// @Accept json
// @Produce json
// @Param request body models.AnalyzeVideoRequest true "Video URL to analyze"
// @Success 200 {object} models.AnalyzeVideoResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/video/analyze [post]
func (h *VideoHandler) AnalyzeVideo(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.AnalyzeVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	metadata, report, err := h.resolver.Resolve(ctx, req.URL)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			appErr.Details["report"] = report
			h.errorResponse(c, appErr)
			return
		}
		utils.LogError(ctx, "Unexpected resolver failure", err)
		h.errorResponse(c, utils.NewInternalError())
		return
	}

	h.saveSnapshot(c, metadata)

	c.JSON(http.StatusOK, models.AnalyzeVideoResponse{
		Metadata: metadata,
		Report:   report,
	})
}

// DetectPlatform godoc
// @Summary Classify a video URL
// @Description Detects the platform and the platform-native video ID without any network call
// @Tags video
// @Accept json
// @Produce json
// @Param request body models.DetectPlatformRequest true "Video URL to classify"
// @Success 200 {object} models.DetectPlatformResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/video/detect [post]
func (h *VideoHandler) DetectPlatform(c *gin.Context) {
	var req models.DetectPlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	detected, err := platform.Detect(req.URL)
	if err != nil {
		h.errorResponse(c, err.(*utils.AppError))
		return
	}

	id, err := platform.ExtractPlatformID(req.URL, detected)
	if err != nil {
		h.errorResponse(c, err.(*utils.AppError))
		return
	}

	c.JSON(http.StatusOK, models.DetectPlatformResponse{
		Platform:   detected,
		PlatformID: id,
	})
}

// History godoc
// @Summary List recent extraction snapshots
// @Description Returns the most recent stored extraction snapshots, newest first. Empty when the snapshot store is disabled.
// @Tags video
// @Produce json
// @Param limit query int false "Maximum snapshots to return (default 20)"
// @Success 200 {object} models.HistoryResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/video/history [get]
func (h *VideoHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	if h.db == nil {
		c.JSON(http.StatusOK, models.HistoryResponse{
			Total:     0,
			Enabled:   false,
			Snapshots: []models.ExtractionSnapshot{},
		})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	snapshots, err := h.db.ListRecentSnapshots(ctx, limit)
	if err != nil {
		utils.LogError(ctx, "Failed to list snapshots", err)
		h.errorResponse(c, utils.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, models.HistoryResponse{
		Total:     len(snapshots),
		Enabled:   true,
		Snapshots: snapshots,
	})
}

// saveSnapshot records the resolved metadata in the snapshot log. Failures
// are logged and swallowed: the snapshot store is observability, not part of
// the extraction contract.
func (h *VideoHandler) saveSnapshot(c *gin.Context, metadata *models.VideoMetadata) {
	if h.db == nil {
		return
	}

	ctx := c.Request.Context()
	snapshot := &models.ExtractionSnapshot{
		ID:               uuid.New(),
		SourceURL:        metadata.SourceURL,
		Platform:         metadata.Platform,
		Title:            metadata.Title,
		DataSource:       metadata.Provenance.DataSource,
		ExtractionMethod: metadata.Provenance.ExtractionMethod,
		IsAuthentic:      metadata.Provenance.IsAuthentic,
		Rating:           metadata.Rating,
		Views:            metadata.Engagement.Views,
		CreatedAt:        time.Now().UTC(),
	}

	if err := h.db.SaveSnapshot(ctx, snapshot); err != nil {
		utils.LogWarn(ctx, "Failed to store extraction snapshot", utils.Fields{
			"url":   metadata.SourceURL,
			"error": err.Error(),
		})
	}
}

func (h *VideoHandler) errorResponse(c *gin.Context, err *utils.AppError) {
	c.JSON(err.StatusCode, gin.H{
		"error":      err,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
