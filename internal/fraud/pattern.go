package fraud

import (
	"context"
	"math"
	"time"

	"github.com/fundhub/crowdfunding/pkg/logger"
	"go.uber.org/zap"
)

// analyzeCrossCampaignPatterns compares the snapshot against recent
// same-category campaigns by other creators. A store failure degrades to the
// documented fallback score.
func (s *Service) analyzeCrossCampaignPatterns(ctx context.Context, snapshot *CampaignSnapshot, now time.Time) (float64, []Indicator) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	since := now.AddDate(0, 0, -patternLookbackDays)
	others, err := s.store.ListByCategorySince(ctx, snapshot.Category, snapshot.CreatorID, since)
	if err != nil {
		logger.WithContext(ctx).Warn("cross-campaign lookup failed, using fallback score",
			zap.String("category", snapshot.Category),
			zap.Error(err),
		)
		analyzerFallbacks.WithLabelValues("pattern").Inc()
		return patternFallbackScore, []Indicator{{
			Category:    "pattern",
			Severity:    SeverityLow,
			Score:       patternFallbackScore,
			Description: "similar-campaign lookup unavailable",
		}}
	}

	score := 0.0
	indicators := make([]Indicator, 0)

	titleTokens := tokenSet(snapshot.Title, patternTitleMinWordLength)
	descTokens := tokenSet(snapshot.Description, patternDescMinWordLength)

	// A single best match per field keeps one lookalike from being counted
	// several times.
	bestTitle := 0.0
	bestDesc := 0.0
	amountCluster := 0

	for _, other := range others {
		if r := overlapRatio(titleTokens, tokenSet(other.Title, patternTitleMinWordLength)); r > bestTitle {
			bestTitle = r
		}
		if r := overlapRatio(descTokens, tokenSet(other.Description, patternDescMinWordLength)); r > bestDesc {
			bestDesc = r
		}
		if snapshot.GoalAmount > 0 &&
			math.Abs(other.GoalAmount-snapshot.GoalAmount) <= snapshot.GoalAmount*patternAmountClusterDelta {
			amountCluster++
		}
	}

	if bestTitle > patternTitleStrongRatio {
		score += patternTitleStrongScore
		indicators = append(indicators, Indicator{
			Category:    "pattern",
			Severity:    SeverityHigh,
			Score:       patternTitleStrongScore,
			Description: "title closely matches another recent campaign",
		})
	} else if bestTitle > patternTitleModerateRatio {
		score += patternTitleModerateScore
		indicators = append(indicators, Indicator{
			Category:    "pattern",
			Severity:    SeverityMedium,
			Score:       patternTitleModerateScore,
			Description: "title resembles another recent campaign",
		})
	}

	if bestDesc > patternDescStrongRatio {
		score += patternDescStrongScore
		indicators = append(indicators, Indicator{
			Category:    "pattern",
			Severity:    SeverityHigh,
			Score:       patternDescStrongScore,
			Description: "description closely matches another recent campaign",
		})
	} else if bestDesc > patternDescModerateRatio {
		score += patternDescModerateScore
		indicators = append(indicators, Indicator{
			Category:    "pattern",
			Severity:    SeverityMedium,
			Score:       patternDescModerateScore,
			Description: "description resembles another recent campaign",
		})
	}

	if amountCluster > patternAmountClusterMinCount {
		score += patternAmountClusterScore
		indicators = append(indicators, Indicator{
			Category:    "pattern",
			Severity:    SeverityMedium,
			Score:       patternAmountClusterScore,
			Description: "goal amount clusters with several recent campaigns",
		})
	}

	return clampScore(score), indicators
}

func tokenSet(text string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range tokenize(text, minLen) {
		set[w] = struct{}{}
	}
	return set
}

// overlapRatio is the share of common words relative to the smaller set.
func overlapRatio(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	common := 0
	for w := range small {
		if _, ok := large[w]; ok {
			common++
		}
	}
	return float64(common) / float64(len(small))
}
