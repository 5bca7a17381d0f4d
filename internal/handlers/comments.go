package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ideaforge/backend/internal/models"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// GetComments returns all comments for an idea, oldest first.
func (h *CommentHandler) GetComments(c *gin.Context) {
	ideaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid idea id"})
		return
	}

	var comments []models.Comment
	err = h.db.Preload("Author").
		Where("idea_id = ?", ideaID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment adds a comment to an idea. The idea's comment counter moves
// in the same transaction as the insert.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	ideaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid idea id"})
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
		return
	}

	var idea models.Idea
	if err := h.db.First(&idea, ideaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}

	if input.ParentCommentID != nil {
		var parent models.Comment
		if err := h.db.First(&parent, *input.ParentCommentID).Error; err != nil || parent.IdeaID != ideaID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment does not belong to this idea"})
			return
		}
	}

	userID := c.GetInt("user_id")
	comment := models.Comment{
		Body:            input.Body,
		AuthorID:        userID,
		IdeaID:          ideaID,
		ParentCommentID: input.ParentCommentID,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Idea{}).Where("id = ?", ideaID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	h.db.Create(&models.ActivityRecord{
		Type:     models.ActivityComment,
		UserID:   userID,
		TargetID: ideaID,
		Payload:  models.TargetIdea,
	})

	h.db.Preload("Author").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment edits a comment owned by the caller.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if comment.AuthorID != c.GetInt("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the comment author"})
		return
	}

	var input struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
		return
	}

	comment.Body = input.Body
	if err := h.db.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment owned by the caller and decrements the
// idea's comment counter.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if comment.AuthorID != c.GetInt("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the comment author"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetComment, commentID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Comment{}, commentID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Idea{}).Where("id = ?", comment.IdeaID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
