package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ideaforge/backend/internal/engagement"
	"github.com/ideaforge/backend/internal/models"
)

type VoteHandler struct {
	ledger *engagement.Ledger
}

func NewVoteHandler(ledger *engagement.Ledger) *VoteHandler {
	return &VoteHandler{ledger: ledger}
}

type voteRequest struct {
	Type string `json:"type" binding:"required"`
}

// VoteIdea casts, switches, or toggles off the caller's vote on an idea.
func (h *VoteHandler) VoteIdea(c *gin.Context) {
	h.vote(c, models.TargetIdea, "id")
}

// VoteComment casts, switches, or toggles off the caller's vote on a
// comment.
func (h *VoteHandler) VoteComment(c *gin.Context) {
	h.vote(c, models.TargetComment, "commentId")
}

func (h *VoteHandler) vote(c *gin.Context, targetType, param string) {
	targetID, err := strconv.Atoi(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target id"})
		return
	}

	var input voteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote type is required"})
		return
	}

	result, err := h.ledger.CastVote(
		c.Request.Context(),
		c.GetInt("user_id"),
		engagement.TargetRef{Type: targetType, ID: targetID},
		engagement.Polarity(input.Type),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	// user_vote is null after a toggle-off.
	var userVote *string
	if result.UserVote != nil {
		v := string(*result.UserVote)
		userVote = &v
	}
	c.JSON(http.StatusOK, gin.H{
		"vote_score": result.VoteScore,
		"user_vote":  userVote,
	})
}
