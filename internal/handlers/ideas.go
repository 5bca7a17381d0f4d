package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ideaforge/backend/internal/models"
	"github.com/ideaforge/backend/internal/ranking"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type IdeaHandler struct {
	db *gorm.DB
}

func NewIdeaHandler(db *gorm.DB) *IdeaHandler {
	return &IdeaHandler{db: db}
}

func pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// GetIdeas lists published ideas under the requested sort mode, with
// optional category, difficulty and time-commitment filters.
func (h *IdeaHandler) GetIdeas(c *gin.Context) {
	mode := ranking.ParseMode(c.Query("sort"))
	page, size := pagination(c)

	q := h.db.Model(&models.Idea{}).Where("published = ?", true)
	if cat := c.Query("category"); cat != "" {
		if !models.ValidCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
		q = q.Where("category = ?", cat)
	}
	if diff := c.Query("difficulty"); diff != "" {
		if !models.ValidDifficulty(diff) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown difficulty"})
			return
		}
		q = q.Where("difficulty = ?", diff)
	}
	if tc := c.Query("time_commitment"); tc != "" {
		if !models.ValidTimeCommitment(tc) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown time commitment"})
			return
		}
		q = q.Where("time_commitment = ?", tc)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ideas"})
		return
	}

	var ideas []models.Idea
	err := q.Preload("Author").
		Order(ranking.OrderClause(mode)).
		Offset((page - 1) * size).
		Limit(size).
		Find(&ideas).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ideas"})
		return
	}
	if ideas == nil {
		ideas = []models.Idea{}
	}

	c.JSON(http.StatusOK, gin.H{
		"ideas":     ideas,
		"total":     total,
		"page":      page,
		"page_size": size,
		"sort":      mode,
	})
}

// GetIdea returns a single idea and records the view. The view counter is
// bumped as an atomic column increment so concurrent reads all land.
func (h *IdeaHandler) GetIdea(c *gin.Context) {
	ideaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid idea id"})
		return
	}

	var idea models.Idea
	if err := h.db.Preload("Author").First(&idea, ideaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}

	h.db.Model(&models.Idea{}).Where("id = ?", ideaID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	idea.ViewCount++

	// Views from authenticated readers feed the recommender's activity log.
	if userID := c.GetInt("user_id"); userID != 0 && userID != idea.AuthorID {
		h.db.Create(&models.ActivityRecord{
			Type:     models.ActivityView,
			UserID:   userID,
			TargetID: idea.ID,
			Payload:  models.TargetIdea,
		})
	}

	c.JSON(http.StatusOK, idea)
}

// CreateIdea creates a new idea (PROTECTED - requires authentication)
func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	var input models.CreateIdeaRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if input.Category != "" && !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	if input.Difficulty != "" && !models.ValidDifficulty(input.Difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown difficulty"})
		return
	}
	if input.TimeCommitment != "" && !models.ValidTimeCommitment(input.TimeCommitment) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown time commitment"})
		return
	}

	idea := models.Idea{
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Difficulty:     input.Difficulty,
		TimeCommitment: input.TimeCommitment,
		TechStack:      input.TechStack,
		AITechStack:    input.AITechStack,
		Tags:           input.Tags,
		AuthorID:       c.GetInt("user_id"),
		Published:      true,
	}

	if err := h.db.Create(&idea).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create idea"})
		return
	}

	h.db.Preload("Author").First(&idea, idea.ID)
	c.JSON(http.StatusCreated, idea)
}

// UpdateIdea updates an idea owned by the caller.
func (h *IdeaHandler) UpdateIdea(c *gin.Context) {
	ideaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid idea id"})
		return
	}

	var idea models.Idea
	if err := h.db.First(&idea, ideaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}
	if idea.AuthorID != c.GetInt("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the idea author"})
		return
	}

	var input models.CreateIdeaRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Category != "" && !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	if input.Difficulty != "" && !models.ValidDifficulty(input.Difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown difficulty"})
		return
	}
	if input.TimeCommitment != "" && !models.ValidTimeCommitment(input.TimeCommitment) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown time commitment"})
		return
	}

	if input.Title != "" {
		idea.Title = input.Title
	}
	if input.Description != "" {
		idea.Description = input.Description
	}
	if input.Category != "" {
		idea.Category = input.Category
	}
	if input.Difficulty != "" {
		idea.Difficulty = input.Difficulty
	}
	if input.TimeCommitment != "" {
		idea.TimeCommitment = input.TimeCommitment
	}
	if input.TechStack != nil {
		idea.TechStack = input.TechStack
	}
	if input.AITechStack != nil {
		idea.AITechStack = input.AITechStack
	}
	if input.Tags != nil {
		idea.Tags = input.Tags
	}

	if err := h.db.Save(&idea).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update idea"})
		return
	}
	c.JSON(http.StatusOK, idea)
}

// DeleteIdea deletes an idea owned by the caller along with its comments,
// bookmarks and votes.
func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	ideaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid idea id"})
		return
	}

	var idea models.Idea
	if err := h.db.First(&idea, ideaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}
	if idea.AuthorID != c.GetInt("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the idea author"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idea_id = ?", ideaID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", ideaID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetIdea, ideaID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Idea{}, ideaID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete idea"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Idea deleted"})
}
