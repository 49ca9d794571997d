package campaigns

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fundhub/crowdfunding/internal/fraud"
)

func TestCampaignSnapshot(t *testing.T) {
	created := time.Now().Add(-48 * time.Hour)
	campaign := &Campaign{
		ID:               uuid.New(),
		CreatorID:        uuid.New(),
		Title:            "Rebuild the village library",
		Description:      "Replacing the flooded children's section.",
		Story:            "The library has served three generations.",
		Category:         CategoryEducation,
		GoalAmount:       25000,
		RaisedAmount:     1200,
		ImageURL:         "campaigns/x/images/cover.jpg",
		AdditionalImages: []string{"campaigns/x/images/inside.jpg"},
		Videos:           []string{"campaigns/x/videos/tour.mp4"},
		Status:           fraud.StatusPending,
		CreatedAt:        created,
	}

	snapshot := campaign.Snapshot()

	assert.Equal(t, campaign.ID, snapshot.ID)
	assert.Equal(t, campaign.CreatorID, snapshot.CreatorID)
	assert.Equal(t, campaign.Title, snapshot.Title)
	assert.Equal(t, campaign.Category, snapshot.Category)
	assert.Equal(t, campaign.GoalAmount, snapshot.GoalAmount)
	assert.Equal(t, campaign.ImageURL, snapshot.ImageURL)
	assert.Equal(t, campaign.AdditionalImages, snapshot.AdditionalImages)
	assert.Equal(t, campaign.Videos, snapshot.Videos)
	assert.Equal(t, created, snapshot.CreatedAt)
	assert.Equal(t, fraud.StatusPending, snapshot.Status)
	assert.True(t, snapshot.HasImages())
}
