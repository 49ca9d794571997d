package fraud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func categoryCampaign(title, description string, goal float64) CategoryCampaign {
	return CategoryCampaign{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		GoalAmount:  goal,
		CreatedAt:   time.Now().Add(-10 * 24 * time.Hour),
	}
}

func patternSnapshot(title, description string, goal float64) *CampaignSnapshot {
	return &CampaignSnapshot{
		ID:          uuid.New(),
		CreatorID:   uuid.New(),
		Title:       title,
		Description: description,
		Category:    "Animal Welfare",
		GoalAmount:  goal,
	}
}

func TestAnalyzePatternsNoSimilarCampaigns(t *testing.T) {
	store := new(mockCampaignStore)
	store.On("ListByCategorySince", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]CategoryCampaign{}, nil)

	svc := NewService(store, nil)
	snapshot := patternSnapshot("Help our shelter rebuild", "The kennels flooded in spring and need repair.", 7500)
	score, indicators := svc.analyzeCrossCampaignPatterns(context.Background(), snapshot, time.Now())

	assert.Equal(t, 0.0, score)
	assert.Empty(t, indicators)
}

func TestAnalyzePatternsStrongDescriptionOverlap(t *testing.T) {
	snapshot := patternSnapshot(
		"Help our shelter rebuild",
		"rescue shelter animals veterinary treatment supplies donations needed",
		7500,
	)
	others := []CategoryCampaign{
		categoryCampaign(
			"Second chance kennel fund",
			"rescue shelter animals veterinary treatment supplies donations winter",
			3200,
		),
	}
	store := new(mockCampaignStore)
	store.On("ListByCategorySince", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(others, nil)

	svc := NewService(store, nil)
	score, indicators := svc.analyzeCrossCampaignPatterns(context.Background(), snapshot, time.Now())

	assert.Equal(t, patternDescStrongScore, score)
	assert.Len(t, indicators, 1)
	assert.Contains(t, indicators[0].Description, "closely matches")
}

func TestAnalyzePatternsModerateTitleOverlap(t *testing.T) {
	snapshot := patternSnapshot(
		"help rescue shelter dogs winter",
		"Fresh bedding and food for the cold months ahead.",
		7500,
	)
	others := []CategoryCampaign{
		categoryCampaign(
			"rescue shelter dogs spring adoption",
			"Our adoption drive covers vaccination costs entirely.",
			3200,
		),
	}
	store := new(mockCampaignStore)
	store.On("ListByCategorySince", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(others, nil)

	svc := NewService(store, nil)
	score, _ := svc.analyzeCrossCampaignPatterns(context.Background(), snapshot, time.Now())

	assert.Equal(t, patternTitleModerateScore, score)
}

func TestAnalyzePatternsBestMatchCountedOnce(t *testing.T) {
	// Several lookalikes still yield a single best-match score per field.
	snapshot := patternSnapshot(
		"help rescue shelter dogs today",
		"Fresh bedding and food for the cold months ahead.",
		7500,
	)
	clone := func() CategoryCampaign {
		return categoryCampaign(
			"help rescue shelter dogs today",
			"Completely unrelated renovation of the barn roof.",
			50000,
		)
	}
	others := []CategoryCampaign{clone(), clone(), clone()}
	store := new(mockCampaignStore)
	store.On("ListByCategorySince", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(others, nil)

	svc := NewService(store, nil)
	score, _ := svc.analyzeCrossCampaignPatterns(context.Background(), snapshot, time.Now())

	assert.Equal(t, patternTitleStrongScore, score)
}

func TestAnalyzePatternsGoalAmountCluster(t *testing.T) {
	snapshot := patternSnapshot(
		"Help our shelter rebuild",
		"The kennels flooded in spring and need repair.",
		10000,
	)
	others := []CategoryCampaign{
		categoryCampaign("Barn roof for the ponies", "Timber and shingles for the east barn.", 9500),
		categoryCampaign("Vaccination drive downtown", "Vaccines for two hundred strays this autumn.", 10200),
		categoryCampaign("Feral colony winter shelters", "Insulated shelters before the frost arrives.", 10000),
		categoryCampaign("Wildlife rehab enclosure", "A flight cage for recovering raptors.", 10900),
	}
	store := new(mockCampaignStore)
	store.On("ListByCategorySince", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(others, nil)

	svc := NewService(store, nil)
	score, indicators := svc.analyzeCrossCampaignPatterns(context.Background(), snapshot, time.Now())

	assert.Equal(t, patternAmountClusterScore, score)
	assert.Len(t, indicators, 1)
	assert.Contains(t, indicators[0].Description, "clusters")
}

func TestAnalyzePatternsStoreFailureUsesFallback(t *testing.T) {
	store := new(mockCampaignStore)
	store.On("ListByCategorySince", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("query timeout"))

	svc := NewService(store, nil)
	snapshot := patternSnapshot("Help our shelter rebuild", "The kennels flooded in spring and need repair.", 7500)
	score, indicators := svc.analyzeCrossCampaignPatterns(context.Background(), snapshot, time.Now())

	assert.Equal(t, patternFallbackScore, score)
	assert.Len(t, indicators, 1)
}
