package fraud

import (
	"context"
	"math"
	"time"

	"github.com/fundhub/crowdfunding/pkg/logger"
	"go.uber.org/zap"
)

// Service runs the fraud analysis for one campaign snapshot. It holds no
// per-call state; every invocation is independent and side-effect free.
type Service struct {
	store        CampaignStore
	images       *ImageAnalyzer
	storeTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithStoreTimeout bounds each campaign store query.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) { s.storeTimeout = d }
}

// NewService creates a fraud analysis service. The image analyzer may be nil
// when the deployment has no media fetcher; snapshots are then scored with
// the no-image weight set.
func NewService(store CampaignStore, images *ImageAnalyzer, opts ...Option) *Service {
	s := &Service{
		store:        store,
		images:       images,
		storeTimeout: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// subScores collects every analyzer output for aggregation.
type subScores struct {
	title       float64
	description float64
	story       float64
	amount      float64
	creator     float64
	pattern     float64
	images      float64
	hasImages   bool
}

// AnalyzeCampaign produces the composite fraud score, risk tier, indicators
// and recommendation for one snapshot. It never fails: collaborator errors
// degrade to documented fallback sub-scores inside each analyzer, and any
// unexpected failure here yields the safe manual-review default. Failure
// never degrades toward auto-approval.
func (s *Service) AnalyzeCampaign(ctx context.Context, snapshot *CampaignSnapshot) (result *FraudAnalysisResult) {
	start := time.Now()
	campaignID := "unknown"
	if snapshot != nil {
		campaignID = snapshot.ID.String()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.WithContext(ctx).Error("fraud analysis panicked, returning safe default",
				zap.String("campaign_id", campaignID),
				zap.Any("panic", r),
			)
			result = safeDefaultResult()
		}
		analysisDuration.Observe(time.Since(start).Seconds())
		analysesTotal.WithLabelValues(string(result.RiskLevel)).Inc()
	}()

	now := time.Now()

	var scores subScores
	var titleInd, descInd, storyInd, amountInd, creatorInd, patternInd []Indicator

	// Pure analyzers run inline; they are cheap and deterministic.
	scores.title, titleInd = AnalyzeTitle(snapshot.Title)
	scores.description, descInd = AnalyzeDescription(snapshot.Description)
	scores.story, storyInd = AnalyzeStory(snapshot.Story)
	scores.amount, amountInd = AnalyzeGoalAmount(snapshot.GoalAmount, snapshot.Category)

	// Store-backed and media-backed analyzers fan out concurrently. Each one
	// converts its own failures to a fallback sub-score, and each goroutine
	// recovers so a panic degrades instead of crashing the process.
	scores.hasImages = snapshot.HasImages() && s.images != nil
	var imageAnalysis *CampaignImageAnalysis

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer recoverToFallback(ctx, "creator_history", &scores.creator, creatorFallbackScore)
		scores.creator, creatorInd = s.analyzeCreatorHistory(ctx, snapshot.CreatorID, now)
	}()

	patternDone := make(chan struct{})
	go func() {
		defer close(patternDone)
		defer recoverToFallback(ctx, "pattern", &scores.pattern, patternFallbackScore)
		scores.pattern, patternInd = s.analyzeCrossCampaignPatterns(ctx, snapshot, now)
	}()

	imagesDone := make(chan struct{})
	go func() {
		defer close(imagesDone)
		if scores.hasImages {
			imageAnalysis = s.images.AnalyzeCampaignImages(ctx, snapshot)
			scores.images = imageAnalysis.OverallRiskScore
		}
	}()

	// Partial results are not an acceptable final state: wait for every
	// analyzer (or its fallback) before aggregating.
	<-done
	<-patternDone
	<-imagesDone

	indicators := make([]Indicator, 0)
	indicators = append(indicators, titleInd...)
	indicators = append(indicators, descInd...)
	indicators = append(indicators, storyInd...)
	indicators = append(indicators, amountInd...)
	indicators = append(indicators, creatorInd...)
	indicators = append(indicators, patternInd...)
	if imageAnalysis != nil {
		if imageAnalysis.CoverImage != nil {
			indicators = append(indicators, imageAnalysis.CoverImage.Indicators...)
		}
		for _, r := range imageAnalysis.AdditionalImages {
			indicators = append(indicators, r.Indicators...)
		}
	}

	result = s.aggregate(scores, indicators)
	result.ImageAnalysis = imageAnalysis
	return result
}

// aggregate combines sub-scores using the fixed weights, applies the
// base-risk floor, amplification and floor rules, and derives every field
// that is a pure function of the final score.
func (s *Service) aggregate(scores subScores, indicators []Indicator) *FraudAnalysisResult {
	weights := weightsNoImages
	if scores.hasImages {
		weights = weightsWithImages
	}

	total := scores.title*weights.Title +
		scores.description*weights.Description +
		scores.story*weights.Story +
		scores.amount*weights.Amount +
		scores.creator*weights.Creator +
		scores.pattern*weights.Pattern
	if scores.hasImages {
		total += scores.images * weights.Images
	}

	total += baseRiskFloor

	significant := countSignificant(scores)
	if significant >= 3 {
		total *= amplifierThreeSignals
	} else if significant >= 2 {
		total *= amplifierTwoSignals
	}

	if (scores.title > textFloorTrigger || scores.description > textFloorTrigger) && total < textFloorValue {
		total = textFloorValue
	}
	if scores.story > storyFloorTrigger &&
		(scores.title > storySupportTrigger || scores.description > storySupportTrigger) &&
		total < storyFloorValue {
		total = storyFloorValue
	}
	if scores.hasImages && scores.images > imageFloorTrigger && total < imageFloorValue {
		total = imageFloorValue
	}

	fraudScore := int(math.Round(clampScore(total)))

	return &FraudAnalysisResult{
		FraudScore:        fraudScore,
		RiskLevel:         RiskLevelForScore(fraudScore),
		Indicators:        indicators,
		RiskFactors:       riskFactors(scores),
		Recommendation:    RecommendationForScore(fraudScore),
		NeedsManualReview: fraudScore >= manualReviewCutoff,
		AutoApprove:       fraudScore < autoApproveCutoff,
		Confidence:        confidenceFor(fraudScore, len(indicators)),
	}
}

func countSignificant(scores subScores) int {
	values := []float64{
		scores.title,
		scores.description,
		scores.story,
		scores.amount,
		scores.creator,
		scores.pattern,
	}
	if scores.hasImages {
		values = append(values, scores.images)
	}
	count := 0
	for _, v := range values {
		if v > significantRiskThreshold {
			count++
		}
	}
	return count
}

func riskFactors(scores subScores) []string {
	factors := make([]string, 0)
	if scores.title > significantRiskThreshold {
		factors = append(factors, "suspicious title")
	}
	if scores.description > significantRiskThreshold {
		factors = append(factors, "suspicious description")
	}
	if scores.story > significantRiskThreshold {
		factors = append(factors, "suspicious story")
	}
	if scores.amount > significantRiskThreshold {
		factors = append(factors, "unusual goal amount")
	}
	if scores.creator > significantRiskThreshold {
		factors = append(factors, "risky creator history")
	}
	if scores.pattern > significantRiskThreshold {
		factors = append(factors, "similar to other campaigns")
	}
	if scores.hasImages && scores.images > significantRiskThreshold {
		factors = append(factors, "suspicious images")
	}
	return factors
}

// RiskLevelForScore maps a composite score to its discrete tier.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= tierCritical:
		return RiskCritical
	case score >= tierVeryHigh:
		return RiskVeryHigh
	case score >= tierHigh:
		return RiskHigh
	case score >= tierMedium:
		return RiskMedium
	case score >= tierLow:
		return RiskLow
	default:
		return RiskVeryLow
	}
}

// RecommendationForScore maps a composite score to reviewer guidance.
func RecommendationForScore(score int) string {
	switch {
	case score >= tierCritical:
		return "REJECT immediately - critical fraud risk"
	case score >= tierVeryHigh:
		return "REJECT - very high fraud risk"
	case score >= tierHigh:
		return "Manual review required"
	case score >= tierMedium:
		return "Detailed review recommended"
	case score >= tierLow:
		return "Standard review"
	case score >= tierQuick:
		return "Quick review"
	default:
		return "Approve"
	}
}

func confidenceFor(score, indicatorCount int) Confidence {
	if indicatorCount >= 3 && (score >= 30 || score <= 15) {
		return ConfidenceHigh
	}
	if indicatorCount >= 1 {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// safeDefaultResult is returned when aggregation itself fails. It always
// routes the campaign to a human.
func safeDefaultResult() *FraudAnalysisResult {
	return &FraudAnalysisResult{
		FraudScore:        failedAnalysisScore,
		RiskLevel:         RiskUnknown,
		Indicators:        []Indicator{},
		RiskFactors:       []string{},
		Recommendation:    "Manual review required - analysis failed",
		NeedsManualReview: true,
		AutoApprove:       false,
		Confidence:        ConfidenceLow,
	}
}

func recoverToFallback(ctx context.Context, analyzer string, score *float64, fallback float64) {
	if r := recover(); r != nil {
		logger.WithContext(ctx).Warn("analyzer panicked, using fallback sub-score",
			zap.String("analyzer", analyzer),
			zap.Any("panic", r),
		)
		analyzerFallbacks.WithLabelValues(analyzer).Inc()
		*score = fallback
	}
}
