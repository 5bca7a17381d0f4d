package recommend

import (
	"reflect"
	"testing"

	"github.com/ideaforge/backend/internal/models"
)

func prefsWith(cats, tech []string) *models.UserPreferences {
	p := models.DefaultPreferences(1)
	p.PreferredCategories = cats
	p.PreferredTechStack = tech
	return &p
}

func upvotedIdea(category string, tech ...string) models.Idea {
	return models.Idea{Category: category, TechStack: tech}
}

func TestBuildCriteriaUsesExplicitPreferences(t *testing.T) {
	prefs := prefsWith([]string{"WEB", "AI_ML"}, []string{"go", "postgres"})
	upvoted := []models.Idea{upvotedIdea("GAME", "unity")}

	c := BuildCriteria(models.User{}, prefs, upvoted, RequestFilters{})

	if !reflect.DeepEqual(c.Categories, []string{"WEB", "AI_ML"}) {
		t.Errorf("categories = %v", c.Categories)
	}
	if !reflect.DeepEqual(c.TechStack, []string{"go", "postgres"}) {
		t.Errorf("tech stack = %v, activity should not leak in", c.TechStack)
	}
}

func TestBuildCriteriaInfersFromActivity(t *testing.T) {
	// WEB appears twice, GAME and DATA once each. GAME was seen before
	// DATA, so ties keep that order.
	upvoted := []models.Idea{
		upvotedIdea("WEB", "go", "react"),
		upvotedIdea("GAME", "go"),
		upvotedIdea("DATA", "python"),
		upvotedIdea("WEB", "go"),
	}

	c := BuildCriteria(models.User{}, nil, upvoted, RequestFilters{})

	if !reflect.DeepEqual(c.Categories, []string{"WEB", "GAME", "DATA"}) {
		t.Errorf("categories = %v", c.Categories)
	}
	if !reflect.DeepEqual(c.TechStack, []string{"go", "react", "python"}) {
		t.Errorf("tech stack = %v", c.TechStack)
	}
}

func TestBuildCriteriaInferenceCapsTopN(t *testing.T) {
	var upvoted []models.Idea
	cats := []string{"WEB", "MOBILE", "AI_ML", "GAME", "DATA", "DEVTOOLS", "IOT"}
	for _, cat := range cats {
		upvoted = append(upvoted, upvotedIdea(cat))
	}

	c := BuildCriteria(models.User{}, nil, upvoted, RequestFilters{})

	if len(c.Categories) != inferredCategoryLimit {
		t.Fatalf("len(categories) = %d, want %d", len(c.Categories), inferredCategoryLimit)
	}
	if !reflect.DeepEqual(c.Categories, cats[:inferredCategoryLimit]) {
		t.Errorf("categories = %v", c.Categories)
	}
}

func TestBuildCriteriaFilterReplacesDimension(t *testing.T) {
	prefs := prefsWith([]string{"WEB", "AI_ML"}, []string{"go"})
	filters := RequestFilters{Category: "GAME", Difficulty: "ADVANCED"}

	c := BuildCriteria(models.User{}, prefs, nil, filters)

	if !reflect.DeepEqual(c.Categories, []string{"GAME"}) {
		t.Errorf("categories = %v, filter must replace not merge", c.Categories)
	}
	if !reflect.DeepEqual(c.Difficulty, []string{"ADVANCED"}) {
		t.Errorf("difficulty = %v", c.Difficulty)
	}
	if !reflect.DeepEqual(c.TechStack, []string{"go"}) {
		t.Errorf("tech stack = %v, unrelated dimension must survive", c.TechStack)
	}
}

func TestBuildCriteriaSkillsFallback(t *testing.T) {
	user := models.User{Skills: []string{"rust", "wasm"}}

	c := BuildCriteria(user, nil, nil, RequestFilters{})

	if !reflect.DeepEqual(c.TechStack, []string{"rust", "wasm"}) {
		t.Errorf("tech stack = %v, want skills fallback", c.TechStack)
	}
	if len(c.Categories) != 0 {
		t.Errorf("categories = %v, want empty", c.Categories)
	}
}

func TestBuildCriteriaSkillsDoNotOverrideInference(t *testing.T) {
	user := models.User{Skills: []string{"rust"}}
	upvoted := []models.Idea{upvotedIdea("WEB", "go")}

	c := BuildCriteria(user, nil, upvoted, RequestFilters{})

	if !reflect.DeepEqual(c.TechStack, []string{"go"}) {
		t.Errorf("tech stack = %v, inference wins over skills", c.TechStack)
	}
}
