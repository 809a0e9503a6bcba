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

// PostHandler handles HTTP requests for post generation and review.
type PostHandler struct {
	generatorService service.GeneratorService
	postRepo         repository.GeneratedPostRepository
	logger           *logger.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(generatorService service.GeneratorService, postRepo repository.GeneratedPostRepository, logger *logger.Logger) *PostHandler {
	return &PostHandler{generatorService: generatorService, postRepo: postRepo, logger: logger}
}

// RegisterRoutes registers the post routes to the Echo group.
func (h *PostHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/score", h.ScorePost)
	g.POST("/generate", h.GeneratePost)
	g.POST("/generate-batch", h.GenerateBatch)
	g.GET("/pending", h.GetPendingPosts)
	g.GET("/:id", h.GetPostByID)
	g.POST("/:id/approval", h.SetApproval)
}

// ScorePost godoc
// @Summary Score post text
// @Description Compute the quality sub-scores for arbitrary post text
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   post  body    dto.ScorePostRequest   true    "Text to score"
// @Success 200 {object} dto.QualityScores
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/score [post]
func (h *PostHandler) ScorePost(c echo.Context) error {
	var req dto.ScorePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	scores, err := h.generatorService.ScorePost(c.Request().Context(), req.Text, req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Story not found"})
		}
		h.logger.Error("Failed to score post", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, scores)
}

// GeneratePost godoc
// @Summary Generate a post
// @Description Generate, score and store one post from a story
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   request  body    dto.GeneratePostRequest   true    "Generation request"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/generate [post]
func (h *PostHandler) GeneratePost(c echo.Context) error {
	var req dto.GeneratePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	post, err := h.generatorService.GeneratePost(c.Request().Context(), req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Story not found"})
		}
		h.logger.Error("Failed to generate post", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// GenerateBatch godoc
// @Summary Generate a review batch
// @Description Generate a batch of posts; refused while a pending batch awaits feedback
// @Tags posts
// @Produce  json
// @Success 201 {object} dto.GenerateBatchResponse
// @Failure 409 {object} dto.PendingBatchResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/generate-batch [post]
func (h *PostHandler) GenerateBatch(c echo.Context) error {
	batch, posts, err := h.generatorService.GenerateBatch(c.Request().Context(), 0)
	if err != nil {
		var pendingErr *service.PendingBatchError
		if errors.As(err, &pendingErr) {
			return c.JSON(http.StatusConflict, dto.PendingBatchResponse{
				Error: "A pending batch still awaits feedback",
				PendingBatch: &dto.BatchStatusResponse{
					BatchID:           pendingErr.Batch.ID,
					Status:            string(pendingErr.Batch.Status),
					TotalPosts:        pendingErr.Batch.TotalPosts,
					PostsWithFeedback: pendingErr.Batch.PostsWithFeedback,
				},
			})
		}
		h.logger.Error("Failed to generate batch", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	resp := dto.GenerateBatchResponse{BatchID: batch.ID}
	for i := range posts {
		resp.Posts = append(resp.Posts, toPostResponse(&posts[i]))
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetPendingPosts godoc
// @Summary List posts awaiting review
// @Description List generated posts without an approval decision
// @Tags posts
// @Produce  json
// @Param   limit  query    int false    "Maximum number of posts"
// @Success 200 {array} dto.PostResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts/pending [get]
func (h *PostHandler) GetPendingPosts(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 20
	}

	posts, err := h.postRepo.FindPending(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list pending posts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list pending posts"})
	}

	resp := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, toPostResponse(&posts[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPostByID godoc
// @Summary Get a post by ID
// @Description Get a single generated post by its ID
// @Tags posts
// @Produce  json
// @Param   id  path    int true    "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPostByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid post ID"})
	}

	post, err := h.postRepo.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Post not found"})
		}
		h.logger.Error("Failed to get post", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// SetApproval godoc
// @Summary Approve or reject a post
// @Description Record the human approve/reject decision for a post
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Post ID"
// @Param   decision  body    dto.ApprovalRequest   true    "Approval decision"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id}/approval [post]
func (h *PostHandler) SetApproval(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid post ID"})
	}

	var req dto.ApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.postRepo.SetApproval(c.Request().Context(), uint(id), req.Approved); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Post not found"})
		}
		h.logger.Error("Failed to set approval", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	post, err := h.postRepo.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		h.logger.Error("Failed to reload post", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

func toPostResponse(post *entity.GeneratedPost) dto.PostResponse {
	return dto.PostResponse{
		ID:                post.ID,
		StoryID:           post.StoryID,
		Industry:          post.Industry,
		CompanyName:       post.CompanyName,
		PostType:          string(post.PostType),
		Content:           post.Content,
		EngagementScore:   post.EngagementScore,
		RelevanceScore:    post.RelevanceScore,
		ReadabilityScore:  post.ReadabilityScore,
		AuthenticityScore: post.AuthenticityScore,
		Approved:          post.Approved,
		FeedbackReceived:  post.FeedbackReceived,
		BatchID:           post.BatchID,
		Attempts:          post.Attempts,
		CreatedAt:         post.CreatedAt,
	}
}
