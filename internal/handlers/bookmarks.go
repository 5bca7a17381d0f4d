package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ideaforge/backend/internal/models"
)

type BookmarkHandler struct {
	db *gorm.DB
}

func NewBookmarkHandler(db *gorm.DB) *BookmarkHandler {
	return &BookmarkHandler{db: db}
}

// ToggleBookmark saves or removes a bookmark on an idea. The idea's
// bookmark counter moves in the same transaction as the row change.
func (h *BookmarkHandler) ToggleBookmark(c *gin.Context) {
	ideaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid idea id"})
		return
	}
	userID := c.GetInt("user_id")

	var idea models.Idea
	if err := h.db.First(&idea, ideaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}

	var bookmarked bool
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Bookmark
		findErr := tx.Where("user_id = ? AND idea_id = ?", userID, ideaID).First(&existing).Error
		switch {
		case findErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			bookmarked = false
			return tx.Model(&models.Idea{}).Where("id = ?", ideaID).
				UpdateColumn("bookmark_count", gorm.Expr("bookmark_count - 1")).Error
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Bookmark{UserID: userID, IdeaID: ideaID}).Error; err != nil {
				return err
			}
			bookmarked = true
			return tx.Model(&models.Idea{}).Where("id = ?", ideaID).
				UpdateColumn("bookmark_count", gorm.Expr("bookmark_count + 1")).Error
		default:
			return findErr
		}
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle bookmark"})
		return
	}

	if bookmarked {
		h.db.Create(&models.ActivityRecord{
			Type:     models.ActivityBookmark,
			UserID:   userID,
			TargetID: ideaID,
			Payload:  models.TargetIdea,
		})
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

// GetBookmarks lists the caller's bookmarked ideas, newest bookmark first.
func (h *BookmarkHandler) GetBookmarks(c *gin.Context) {
	userID := c.GetInt("user_id")

	var bookmarks []models.Bookmark
	err := h.db.Preload("Idea").Preload("Idea.Author").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&bookmarks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookmarks"})
		return
	}

	ideas := make([]models.Idea, 0, len(bookmarks))
	for _, b := range bookmarks {
		ideas = append(ideas, b.Idea)
	}
	c.JSON(http.StatusOK, gin.H{"ideas": ideas, "total": len(ideas)})
}
