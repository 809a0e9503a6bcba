package http

import (
	"net/http"
	"strconv"

	"linkedin-content-engine/internal/engine/service"
	"linkedin-content-engine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RecommendationHandler handles HTTP requests for story recommendations and
// engine statistics.
type RecommendationHandler struct {
	recommenderService service.RecommenderService
	feedbackService    service.FeedbackService
	logger             *logger.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommenderService service.RecommenderService, feedbackService service.FeedbackService, logger *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{recommenderService: recommenderService, feedbackService: feedbackService, logger: logger}
}

// RegisterRoutes registers the recommendation and stats routes to the Echo group.
func (h *RecommendationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/recommendations", h.GetRecommendations)
	g.GET("/stats", h.GetStats)
}

// GetRecommendations godoc
// @Summary Get story recommendations
// @Description Get stories ranked by confidence for the next posts
// @Tags recommendations
// @Produce  json
// @Param   count  query    int false    "Number of recommendations"
// @Success 200 {array} dto.Recommendation
// @Failure 500 {object} dto.ErrorResponse
// @Router /recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	count, _ := strconv.Atoi(c.QueryParam("count"))

	recommendations, err := h.recommenderService.GetRecommendations(c.Request().Context(), count)
	if err != nil {
		h.logger.Error("Failed to get recommendations", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get recommendations"})
	}
	return c.JSON(http.StatusOK, recommendations)
}

// GetStats godoc
// @Summary Get engine statistics
// @Description Get generation volume, review outcomes and feedback patterns
// @Tags stats
// @Produce  json
// @Success 200 {object} dto.SystemStats
// @Failure 500 {object} dto.ErrorResponse
// @Router /stats [get]
func (h *RecommendationHandler) GetStats(c echo.Context) error {
	stats, err := h.feedbackService.SystemStats(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get stats", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get stats"})
	}
	return c.JSON(http.StatusOK, stats)
}
