package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ideaforge/backend/internal/cache"
	"github.com/ideaforge/backend/internal/config"
	"github.com/ideaforge/backend/internal/models"
	"github.com/ideaforge/backend/internal/recommend"
)

const trendingIdeaLimit = 10

type recommendationPayload struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Criteria        recommend.Criteria         `json:"criteria"`
	Total           int                        `json:"total"`
}

type trendingPayload struct {
	Topics     []recommend.TagCount      `json:"topics"`
	Categories []recommend.CategoryCount `json:"categories"`
	Ideas      []models.Idea             `json:"ideas"`
	Period     recommend.Period          `json:"period"`
	Category   string                    `json:"category,omitempty"`
}

type RecommendationHandler struct {
	engine        *recommend.Engine
	trending      *recommend.TrendingCalculator
	recCache      *cache.Cache[recommendationPayload]
	trendingCache *cache.Cache[trendingPayload]
}

func NewRecommendationHandler(engine *recommend.Engine, trending *recommend.TrendingCalculator, cfg *config.Config) *RecommendationHandler {
	return &RecommendationHandler{
		engine:        engine,
		trending:      trending,
		recCache:      cache.New[recommendationPayload](cfg.RecommendCacheTTL),
		trendingCache: cache.New[trendingPayload](cfg.TrendingCacheTTL),
	}
}

// GetRecommendations returns scored idea recommendations for the caller.
// Results are cached per user and filter combination.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID := c.GetInt("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(recommend.DefaultLimit)))
	timeCommitment := c.Query("timeCommitment")
	if timeCommitment == "" {
		timeCommitment = c.Query("time_commitment")
	}
	filters := recommend.RequestFilters{
		Category:       c.Query("category"),
		Difficulty:     c.Query("difficulty"),
		TimeCommitment: timeCommitment,
	}

	key := fmt.Sprintf("%d|%s|%s|%s|%d", userID, filters.Category, filters.Difficulty, filters.TimeCommitment, limit)
	if payload, ok := h.recCache.Get(key); ok {
		c.JSON(http.StatusOK, payload)
		return
	}

	recs, criteria, err := h.engine.Recommend(c.Request.Context(), userID, filters, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	payload := recommendationPayload{
		Recommendations: recs,
		Criteria:        criteria,
		Total:           len(recs),
	}
	h.recCache.Set(key, payload)
	c.JSON(http.StatusOK, payload)
}

// GetTrending returns the tag and category snapshot for a period plus the
// window's top ideas under trending order.
func (h *RecommendationHandler) GetTrending(c *gin.Context) {
	period, err := recommend.ParsePeriod(c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}
	category := c.Query("category")
	if category != "" && !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(trendingIdeaLimit)))
	if limit <= 0 {
		limit = trendingIdeaLimit
	}

	key := fmt.Sprintf("%s|%s|%d", period, category, limit)
	if payload, ok := h.trendingCache.Get(key); ok {
		c.JSON(http.StatusOK, payload)
		return
	}

	snapshot, err := h.trending.Compute(c.Request.Context(), period, category)
	if err != nil {
		respondError(c, err)
		return
	}
	ideas, err := h.trending.TopIdeas(c.Request.Context(), period, category, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if ideas == nil {
		ideas = []models.Idea{}
	}

	payload := trendingPayload{
		Topics:     snapshot.TagCounts,
		Categories: snapshot.CategoryCounts,
		Ideas:      ideas,
		Period:     period,
		Category:   category,
	}
	h.trendingCache.Set(key, payload)
	c.JSON(http.StatusOK, payload)
}
