package http

import (
	"errors"
	"net/http"
	"strconv"

	"linkedin-content-engine/internal/engine/dto"
	"linkedin-content-engine/internal/engine/repository"
	"linkedin-content-engine/internal/engine/service"
	"linkedin-content-engine/internal/entity"
	"linkedin-content-engine/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FeedbackHandler handles HTTP requests for feedback and batch review.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
	postRepo        repository.GeneratedPostRepository
	logger          *logger.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService service.FeedbackService, postRepo repository.GeneratedPostRepository, logger *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, postRepo: postRepo, logger: logger}
}

// RegisterRoutes registers the feedback and batch routes to the Echo groups.
func (h *FeedbackHandler) RegisterRoutes(feedback *echo.Group, batches *echo.Group) {
	feedback.POST("", h.RecordFeedback)
	feedback.GET("/tags", h.GetFeedbackTags)
	feedback.GET("/history", h.GetFeedbackHistory)

	batches.GET("/current", h.GetCurrentBatch)
	batches.GET("/:id", h.GetBatchStatus)
	batches.GET("/:id/posts", h.GetBatchPosts)
}

// RecordFeedback godoc
// @Summary Record post feedback
// @Description Attach a structured critique to a generated post
// @Tags feedback
// @Accept  json
// @Produce  json
// @Param   feedback  body    dto.RecordFeedbackRequest   true    "Feedback to record"
// @Success 201 {object} dto.RecordFeedbackResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /feedback [post]
func (h *FeedbackHandler) RecordFeedback(c echo.Context) error {
	var req dto.RecordFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.feedbackService.RecordFeedback(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Post not found"})
		}
		// Vocabulary violations surface here as plain errors.
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetFeedbackTags godoc
// @Summary List the feedback tag vocabulary
// @Description List the allowed feedback tags per category
// @Tags feedback
// @Produce  json
// @Success 200 {object} map[string][]string
// @Router /feedback/tags [get]
func (h *FeedbackHandler) GetFeedbackTags(c echo.Context) error {
	return c.JSON(http.StatusOK, entity.FeedbackTagVocabulary)
}

// GetFeedbackHistory godoc
// @Summary List feedback history
// @Description List feedback records joined with their posts
// @Tags feedback
// @Produce  json
// @Param   company_name  query    string false    "Filter by company name"
// @Param   industry  query    string false    "Filter by industry"
// @Success 200 {array} dto.FeedbackHistoryItem
// @Failure 500 {object} dto.ErrorResponse
// @Router /feedback/history [get]
func (h *FeedbackHandler) GetFeedbackHistory(c echo.Context) error {
	items, err := h.feedbackService.History(c.Request().Context(), c.QueryParam("company_name"), c.QueryParam("industry"))
	if err != nil {
		h.logger.Error("Failed to list feedback history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list feedback history"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetCurrentBatch godoc
// @Summary Get the pending batch
// @Description Get the batch currently awaiting feedback, if any
// @Tags batches
// @Produce  json
// @Success 200 {object} dto.BatchStatusResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /batches/current [get]
func (h *FeedbackHandler) GetCurrentBatch(c echo.Context) error {
	status, err := h.feedbackService.CurrentBatch(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get current batch", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if status == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No pending batch"})
	}
	return c.JSON(http.StatusOK, status)
}

// GetBatchStatus godoc
// @Summary Get a batch by ID
// @Description Get the review progress of a batch
// @Tags batches
// @Produce  json
// @Param   id  path    int true    "Batch ID"
// @Success 200 {object} dto.BatchStatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /batches/{id} [get]
func (h *FeedbackHandler) GetBatchStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid batch ID"})
	}

	status, err := h.feedbackService.GetBatchStatus(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Batch not found"})
		}
		h.logger.Error("Failed to get batch", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, status)
}

// GetBatchPosts godoc
// @Summary List the posts of a batch
// @Description List every generated post belonging to a batch
// @Tags batches
// @Produce  json
// @Param   id  path    int true    "Batch ID"
// @Success 200 {array} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /batches/{id}/posts [get]
func (h *FeedbackHandler) GetBatchPosts(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid batch ID"})
	}

	posts, err := h.postRepo.FindByBatchID(c.Request().Context(), uint(id))
	if err != nil {
		h.logger.Error("Failed to list batch posts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list batch posts"})
	}

	resp := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, toPostResponse(&posts[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
