package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ideaforge/backend/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetUserProfile returns a public profile with idea and karma totals.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var ideaCount int64
	h.db.Model(&models.Idea{}).Where("author_id = ? AND published = ?", userID, true).Count(&ideaCount)

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"bio":         user.Bio,
		"avatar":      user.Avatar,
		"skills":      user.Skills,
		"karma_score": user.KarmaScore,
		"idea_count":  ideaCount,
		"created_at":  user.CreatedAt,
	})
}

// UpdateUserProfile updates the caller's own profile.
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	if userID != c.GetInt("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot update another user's profile"})
		return
	}

	var input struct {
		Bio    *string  `json:"bio"`
		Avatar *string  `json:"avatar"`
		Skills []string `json:"skills"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetPreferences returns the caller's recommendation settings, creating
// the default row on first access.
func (h *UserHandler) GetPreferences(c *gin.Context) {
	userID := c.GetInt("user_id")

	prefs, err := h.loadOrCreatePreferences(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences replaces the caller's recommendation settings.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID := c.GetInt("user_id")

	var input struct {
		PreferredCategories     []string `json:"preferred_categories"`
		PreferredTechStack      []string `json:"preferred_tech_stack"`
		PreferredDifficulty     []string `json:"preferred_difficulty"`
		PreferredTimeCommitment []string `json:"preferred_time_commitment"`
		EnableRecommendations   *bool    `json:"enable_recommendations"`
		EnableTrending          *bool    `json:"enable_trending"`
		RecommendationWeight    *float64 `json:"recommendation_weight"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, cat := range input.PreferredCategories {
		if !models.ValidCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
	}
	for _, diff := range input.PreferredDifficulty {
		if !models.ValidDifficulty(diff) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown difficulty"})
			return
		}
	}
	for _, tc := range input.PreferredTimeCommitment {
		if !models.ValidTimeCommitment(tc) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown time commitment"})
			return
		}
	}

	prefs, err := h.loadOrCreatePreferences(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}

	if input.PreferredCategories != nil {
		prefs.PreferredCategories = input.PreferredCategories
	}
	if input.PreferredTechStack != nil {
		prefs.PreferredTechStack = input.PreferredTechStack
	}
	if input.PreferredDifficulty != nil {
		prefs.PreferredDifficulty = input.PreferredDifficulty
	}
	if input.PreferredTimeCommitment != nil {
		prefs.PreferredTimeCommitment = input.PreferredTimeCommitment
	}
	if input.EnableRecommendations != nil {
		prefs.EnableRecommendations = *input.EnableRecommendations
	}
	if input.EnableTrending != nil {
		prefs.EnableTrending = *input.EnableTrending
	}
	if input.RecommendationWeight != nil {
		prefs.RecommendationWeight = *input.RecommendationWeight
	}

	if err := h.db.Save(&prefs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *UserHandler) loadOrCreatePreferences(userID int) (models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := h.db.Where("user_id = ?", userID).First(&prefs).Error
	if err == nil {
		return prefs, nil
	}
	if err != gorm.ErrRecordNotFound {
		return prefs, err
	}

	prefs = models.DefaultPreferences(userID)
	if err := h.db.Create(&prefs).Error; err != nil {
		return prefs, err
	}
	return prefs, nil
}
