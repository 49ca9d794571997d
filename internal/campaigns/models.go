package campaigns

import (
	"time"

	"github.com/fundhub/crowdfunding/internal/fraud"
	"github.com/google/uuid"
)

// Categories recognized by the platform. The fraud scorer keeps its own
// per-category funding ranges; unknown categories get a default range there.
const (
	CategoryMedical         = "Medical"
	CategoryEducation       = "Education"
	CategoryEmergencyRelief = "Emergency Relief"
	CategoryAnimalWelfare   = "Animal Welfare"
	CategoryCommunity       = "Community"
	CategoryCreative        = "Creative"
	CategoryBusiness        = "Business"
	CategorySports          = "Sports"
	CategoryEnvironment     = "Environment"
	CategoryMemorial        = "Memorial"
)

// Campaign is a crowdfunding campaign record
type Campaign struct {
	ID               uuid.UUID            `json:"id" db:"id"`
	CreatorID        uuid.UUID            `json:"creator_id" db:"creator_id"`
	Title            string               `json:"title" db:"title"`
	Description      string               `json:"description" db:"description"`
	Story            string               `json:"story" db:"story"`
	Category         string               `json:"category" db:"category"`
	GoalAmount       float64              `json:"goal_amount" db:"goal_amount"`
	RaisedAmount     float64              `json:"raised_amount" db:"raised_amount"`
	ImageURL         string               `json:"image_url" db:"image_url"`
	AdditionalImages []string             `json:"additional_images" db:"additional_images"`
	Videos           []string             `json:"videos" db:"videos"`
	Status           fraud.CampaignStatus `json:"status" db:"status"`
	CreatedAt        time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at" db:"updated_at"`
}

// Snapshot converts the stored campaign into the immutable analysis input.
func (c *Campaign) Snapshot() *fraud.CampaignSnapshot {
	return &fraud.CampaignSnapshot{
		ID:               c.ID,
		CreatorID:        c.CreatorID,
		Title:            c.Title,
		Description:      c.Description,
		Story:            c.Story,
		Category:         c.Category,
		GoalAmount:       c.GoalAmount,
		ImageURL:         c.ImageURL,
		AdditionalImages: c.AdditionalImages,
		Videos:           c.Videos,
		CreatedAt:        c.CreatedAt,
		Status:           c.Status,
	}
}
