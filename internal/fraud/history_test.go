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

func creatorCampaign(status CampaignStatus, goal float64, age time.Duration) CreatorCampaign {
	return CreatorCampaign{
		ID:         uuid.New(),
		Status:     status,
		GoalAmount: goal,
		CreatedAt:  time.Now().Add(-age),
	}
}

func TestAnalyzeCreatorHistoryNewCreator(t *testing.T) {
	store := new(mockCampaignStore)
	store.On("ListByCreatorSince", mock.Anything, mock.Anything, mock.Anything).
		Return([]CreatorCampaign{}, nil)

	svc := NewService(store, nil)
	score, indicators := svc.analyzeCreatorHistory(context.Background(), uuid.New(), time.Now())

	assert.Equal(t, historyNewCreatorScore, score)
	assert.Len(t, indicators, 1)
	assert.Equal(t, "creator", indicators[0].Category)
}

func TestAnalyzeCreatorHistoryBurstWithRejections(t *testing.T) {
	// Four campaigns in the last week, three already rejected: severe
	// rejection rate plus the burst signal.
	campaigns := []CreatorCampaign{
		creatorCampaign(StatusRejected, 5000, 2*24*time.Hour),
		creatorCampaign(StatusRejected, 7000, 3*24*time.Hour),
		creatorCampaign(StatusRejected, 9000, 4*24*time.Hour),
		creatorCampaign(StatusActive, 11000, 5*24*time.Hour),
	}
	store := new(mockCampaignStore)
	store.On("ListByCreatorSince", mock.Anything, mock.Anything, mock.Anything).
		Return(campaigns, nil)

	svc := NewService(store, nil)
	score, _ := svc.analyzeCreatorHistory(context.Background(), uuid.New(), time.Now())

	assert.Equal(t, historyRejectSevereScore+historyBurstScore, score)
}

func TestAnalyzeCreatorHistoryRejectionTiers(t *testing.T) {
	old := 200 * 24 * time.Hour
	build := func(rejected, completed int) []CreatorCampaign {
		campaigns := make([]CreatorCampaign, 0, rejected+completed)
		goal := 1000.0
		for i := 0; i < rejected; i++ {
			campaigns = append(campaigns, creatorCampaign(StatusRejected, goal, old))
			goal += 500
		}
		for i := 0; i < completed; i++ {
			campaigns = append(campaigns, creatorCampaign(StatusCompleted, goal, old))
			goal += 500
		}
		return campaigns
	}

	tests := []struct {
		name     string
		rejected int
		completed int
		expected float64
	}{
		{"over 70 percent rejected", 8, 2, historyRejectSevereScore},
		{"over half rejected", 6, 4, historyRejectHighScore},
		{"over 30 percent rejected", 4, 6, historyRejectModerateScore},
		{"clean record", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockCampaignStore)
			store.On("ListByCreatorSince", mock.Anything, mock.Anything, mock.Anything).
				Return(build(tt.rejected, tt.completed), nil)

			svc := NewService(store, nil)
			score, _ := svc.analyzeCreatorHistory(context.Background(), uuid.New(), time.Now())
			assert.Equal(t, tt.expected, score)
		})
	}
}

func TestAnalyzeCreatorHistoryLowCompletionRate(t *testing.T) {
	old := 100 * 24 * time.Hour
	campaigns := []CreatorCampaign{
		creatorCampaign(StatusActive, 1000, old),
		creatorCampaign(StatusActive, 2000, old),
		creatorCampaign(StatusActive, 3000, old),
		creatorCampaign(StatusActive, 4000, old),
	}
	store := new(mockCampaignStore)
	store.On("ListByCreatorSince", mock.Anything, mock.Anything, mock.Anything).
		Return(campaigns, nil)

	svc := NewService(store, nil)
	score, _ := svc.analyzeCreatorHistory(context.Background(), uuid.New(), time.Now())

	assert.Equal(t, historyCompletionLowScore, score)
}

func TestAnalyzeCreatorHistoryRepeatedGoalAmounts(t *testing.T) {
	old := 200 * 24 * time.Hour
	campaigns := []CreatorCampaign{
		creatorCampaign(StatusCompleted, 5000, old),
		creatorCampaign(StatusCompleted, 5000, old),
	}
	store := new(mockCampaignStore)
	store.On("ListByCreatorSince", mock.Anything, mock.Anything, mock.Anything).
		Return(campaigns, nil)

	svc := NewService(store, nil)
	score, indicators := svc.analyzeCreatorHistory(context.Background(), uuid.New(), time.Now())

	assert.Equal(t, historyRepeatAmountScore, score)
	assert.Len(t, indicators, 1)
}

func TestAnalyzeCreatorHistoryStoreFailureUsesFallback(t *testing.T) {
	store := new(mockCampaignStore)
	store.On("ListByCreatorSince", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	svc := NewService(store, nil)
	score, indicators := svc.analyzeCreatorHistory(context.Background(), uuid.New(), time.Now())

	assert.Equal(t, creatorFallbackScore, score)
	assert.Len(t, indicators, 1)
	assert.Contains(t, indicators[0].Description, "unavailable")
}
