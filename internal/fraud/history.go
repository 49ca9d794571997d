package fraud

import (
	"context"
	"time"

	"github.com/fundhub/crowdfunding/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// analyzeCreatorHistory derives a sub-score from the creator's campaigns of
// the last year. A store failure degrades to the documented fallback score
// instead of propagating.
func (s *Service) analyzeCreatorHistory(ctx context.Context, creatorID uuid.UUID, now time.Time) (float64, []Indicator) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	since := now.AddDate(0, 0, -historyLookbackDays)
	campaigns, err := s.store.ListByCreatorSince(ctx, creatorID, since)
	if err != nil {
		logger.WithContext(ctx).Warn("creator history lookup failed, using fallback score",
			zap.String("creator_id", creatorID.String()),
			zap.Error(err),
		)
		analyzerFallbacks.WithLabelValues("creator_history").Inc()
		return creatorFallbackScore, []Indicator{{
			Category:    "creator",
			Severity:    SeverityLow,
			Score:       creatorFallbackScore,
			Description: "creator history unavailable, assuming moderate risk",
		}}
	}

	if len(campaigns) == 0 {
		return historyNewCreatorScore, []Indicator{{
			Category:    "creator",
			Severity:    SeverityLow,
			Score:       historyNewCreatorScore,
			Description: "creator has no prior campaigns",
		}}
	}

	score := 0.0
	indicators := make([]Indicator, 0)

	rejected := 0
	completed := 0
	finishedOrRunning := 0
	last7 := 0
	last30 := 0
	amountCounts := make(map[float64]int)

	weekAgo := now.AddDate(0, 0, -historyBurstWindowDays)
	monthAgo := now.AddDate(0, 0, -historyMonthWindowDays)

	for _, c := range campaigns {
		switch c.Status {
		case StatusRejected:
			rejected++
		case StatusCompleted:
			completed++
			finishedOrRunning++
		case StatusActive:
			finishedOrRunning++
		}
		if c.CreatedAt.After(weekAgo) {
			last7++
		}
		if c.CreatedAt.After(monthAgo) {
			last30++
		}
		amountCounts[c.GoalAmount]++
	}

	rejectionRate := float64(rejected) / float64(len(campaigns))
	switch {
	case rejectionRate > historyRejectSevereRate:
		score += historyRejectSevereScore
		indicators = append(indicators, Indicator{
			Category:    "creator",
			Severity:    SeverityHigh,
			Score:       historyRejectSevereScore,
			Description: "most of the creator's past campaigns were rejected",
		})
	case rejectionRate > historyRejectHighRate:
		score += historyRejectHighScore
		indicators = append(indicators, Indicator{
			Category:    "creator",
			Severity:    SeverityHigh,
			Score:       historyRejectHighScore,
			Description: "over half of the creator's past campaigns were rejected",
		})
	case rejectionRate > historyRejectModerateRate:
		score += historyRejectModerateScore
		indicators = append(indicators, Indicator{
			Category:    "creator",
			Severity:    SeverityMedium,
			Score:       historyRejectModerateScore,
			Description: "a notable share of the creator's past campaigns were rejected",
		})
	}

	if last7 > historyBurstCount {
		score += historyBurstScore
		indicators = append(indicators, Indicator{
			Category:    "creator",
			Severity:    SeverityHigh,
			Score:       historyBurstScore,
			Description: "creator submitted multiple campaigns in the last week",
		})
	} else if last30 > historyMonthHeavyCount {
		score += historyMonthHeavyScore
		indicators = append(indicators, Indicator{
			Category:    "creator",
			Severity:    SeverityMedium,
			Score:       historyMonthHeavyScore,
			Description: "creator submitted many campaigns in the last month",
		})
	} else if last30 > historyMonthModerateCount {
		score += historyMonthModerateScore
		indicators = append(indicators, Indicator{
			Category:    "creator",
			Severity:    SeverityLow,
			Score:       historyMonthModerateScore,
			Description: "creator submits campaigns frequently",
		})
	}

	if finishedOrRunning >= 1 {
		completionRate := float64(completed) / float64(finishedOrRunning)
		if completionRate < historyCompletionLowRate && finishedOrRunning > historyCompletionLowMin {
			score += historyCompletionLowScore
			indicators = append(indicators, Indicator{
				Category:    "creator",
				Severity:    SeverityMedium,
				Score:       historyCompletionLowScore,
				Description: "creator rarely completes campaigns",
			})
		} else if completionRate < historyCompletionMidRate && finishedOrRunning > historyCompletionMidMin {
			score += historyCompletionMidScore
			indicators = append(indicators, Indicator{
				Category:    "creator",
				Severity:    SeverityLow,
				Score:       historyCompletionMidScore,
				Description: "creator completes few campaigns",
			})
		}
	}

	for _, count := range amountCounts {
		if count >= historyRepeatAmountCount {
			score += historyRepeatAmountScore
			indicators = append(indicators, Indicator{
				Category:    "creator",
				Severity:    SeverityLow,
				Score:       historyRepeatAmountScore,
				Description: "creator reuses identical goal amounts across campaigns",
			})
			break
		}
	}

	return clampScore(score), indicators
}
