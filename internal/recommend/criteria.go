// Package recommend builds personalized idea recommendations and trending
// summaries. Criteria assembly and scoring are pure; storage access goes
// through the Store interface and every result is recomputed per request.
// Callers that want caching put it in front of this package.
package recommend

import (
	"sort"

	"github.com/ideaforge/backend/internal/models"
)

const (
	inferredCategoryLimit = 5
	inferredTechLimit     = 10
)

// Criteria is the request-scoped merge of explicit preferences, inferred
// activity, filter overrides, and the skills fallback. Never persisted.
type Criteria struct {
	Categories     []string `json:"categories,omitempty"`
	TechStack      []string `json:"tech_stack,omitempty"`
	Difficulty     []string `json:"difficulty,omitempty"`
	TimeCommitment []string `json:"time_commitment,omitempty"`
}

// RequestFilters are the explicit query parameters of one request. A
// non-empty filter replaces the corresponding criteria dimension outright;
// it does not merge.
type RequestFilters struct {
	Category       string
	Difficulty     string
	TimeCommitment string
}

// BuildCriteria assembles criteria for one user. upvoted must be the
// user's UP-voted ideas in activity-log order; inference tie-breaks depend
// on that ordering being stable.
func BuildCriteria(user models.User, prefs *models.UserPreferences, upvoted []models.Idea, filters RequestFilters) Criteria {
	var c Criteria
	if prefs != nil {
		c.Categories = append(c.Categories, prefs.PreferredCategories...)
		c.TechStack = append(c.TechStack, prefs.PreferredTechStack...)
		c.Difficulty = append(c.Difficulty, prefs.PreferredDifficulty...)
		c.TimeCommitment = append(c.TimeCommitment, prefs.PreferredTimeCommitment...)
	}

	if len(c.Categories) == 0 {
		c.Categories = inferredCategories(upvoted)
	}
	if len(c.TechStack) == 0 {
		c.TechStack = inferredTechTokens(upvoted)
	}

	if filters.Category != "" {
		c.Categories = []string{filters.Category}
	}
	if filters.Difficulty != "" {
		c.Difficulty = []string{filters.Difficulty}
	}
	if filters.TimeCommitment != "" {
		c.TimeCommitment = []string{filters.TimeCommitment}
	}

	if len(c.TechStack) == 0 {
		c.TechStack = append(c.TechStack, user.Skills...)
	}
	return c
}

func inferredCategories(upvoted []models.Idea) []string {
	values := make([]string, 0, len(upvoted))
	for _, idea := range upvoted {
		if idea.Category != "" {
			values = append(values, idea.Category)
		}
	}
	return topByCount(values, inferredCategoryLimit)
}

func inferredTechTokens(upvoted []models.Idea) []string {
	var values []string
	for _, idea := range upvoted {
		values = append(values, idea.TechStack...)
		values = append(values, idea.AITechStack...)
	}
	return topByCount(values, inferredTechLimit)
}

// topByCount tallies values and returns the top k by descending count.
// Ties keep first-seen order, so the result is stable for a given input
// sequence.
func topByCount(values []string, k int) []string {
	counts := make(map[string]int, len(values))
	var seen []string
	for _, v := range values {
		if counts[v] == 0 {
			seen = append(seen, v)
		}
		counts[v]++
	}
	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})
	if len(seen) > k {
		seen = seen[:k]
	}
	return seen
}
