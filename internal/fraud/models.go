package fraud

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus is the lifecycle state of a campaign
type CampaignStatus string

const (
	StatusPending   CampaignStatus = "pending"
	StatusActive    CampaignStatus = "active"
	StatusCompleted CampaignStatus = "completed"
	StatusRejected  CampaignStatus = "rejected"
)

// RiskLevel is a discrete tier derived from the composite fraud score
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "Very Low"
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
	RiskCritical RiskLevel = "Critical"
	RiskUnknown  RiskLevel = "Unknown"
)

// Confidence expresses how much signal backed the final score
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// Severity grades a single indicator
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Indicator is a human-readable explanation tied to one analyzer's findings.
// Indicators are generated fresh on every analysis and never persisted here.
type Indicator struct {
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Score       float64  `json:"score"`
	Description string   `json:"description"`
}

// CampaignSnapshot is the immutable input to one analysis call. The scorer
// never mutates it; the caller supplies it fresh each invocation.
type CampaignSnapshot struct {
	ID               uuid.UUID      `json:"id"`
	CreatorID        uuid.UUID      `json:"creator_id" binding:"required"`
	Title            string         `json:"title" binding:"required"`
	Description      string         `json:"description"`
	Story            string         `json:"story"`
	Category         string         `json:"category" binding:"required"`
	GoalAmount       float64        `json:"goal_amount" binding:"required,gt=0"`
	ImageURL         string         `json:"image_url"`
	AdditionalImages []string       `json:"additional_images"`
	Videos           []string       `json:"videos"`
	CreatedAt        time.Time      `json:"created_at"`
	Status           CampaignStatus `json:"status"`
}

// HasImages reports whether the snapshot carries any scorable image
func (s *CampaignSnapshot) HasImages() bool {
	return s.ImageURL != "" || len(s.AdditionalImages) > 0
}

// CreatorCampaign is the slice of a past campaign the creator-history
// analyzer needs from the store.
type CreatorCampaign struct {
	ID         uuid.UUID      `json:"id"`
	Status     CampaignStatus `json:"status"`
	GoalAmount float64        `json:"goal_amount"`
	CreatedAt  time.Time      `json:"created_at"`
}

// CategoryCampaign is the slice of a same-category campaign the pattern
// analyzer compares against.
type CategoryCampaign struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GoalAmount  float64   `json:"goal_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImageAnalysisResult holds per-image forensics output
type ImageAnalysisResult struct {
	URL           string      `json:"url"`
	Width         int         `json:"width"`
	Height        int         `json:"height"`
	Format        string      `json:"format"`
	ByteSize      int64       `json:"byte_size"`
	RiskScore     float64     `json:"risk_score"`
	IsStockPhoto  bool        `json:"is_stock_photo"`
	IsScreenshot  bool        `json:"is_screenshot"`
	IsEdited      bool        `json:"is_edited"`
	QualityIssues bool        `json:"quality_issues"`
	Indicators    []Indicator `json:"indicators,omitempty"`
}

// CampaignImageAnalysis aggregates per-image results for one campaign.
// Videos are recorded but carry no score.
type CampaignImageAnalysis struct {
	CoverImage       *ImageAnalysisResult  `json:"cover_image,omitempty"`
	AdditionalImages []ImageAnalysisResult `json:"additional_images,omitempty"`
	Videos           []string              `json:"videos,omitempty"`
	OverallRiskScore float64               `json:"overall_risk_score"`
}

// FraudAnalysisResult is the output of one analysis call. It is built once
// and never mutated afterwards; persisting it is the caller's concern.
type FraudAnalysisResult struct {
	FraudScore        int                    `json:"fraud_score"`
	RiskLevel         RiskLevel              `json:"risk_level"`
	Indicators        []Indicator            `json:"indicators"`
	RiskFactors       []string               `json:"risk_factors"`
	Recommendation    string                 `json:"recommendation"`
	NeedsManualReview bool                   `json:"needs_manual_review"`
	AutoApprove       bool                   `json:"auto_approve"`
	Confidence        Confidence             `json:"confidence"`
	ImageAnalysis     *CampaignImageAnalysis `json:"image_analysis,omitempty"`
}
