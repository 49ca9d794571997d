package fraud

import (
	"fmt"
	"math"
	"strconv"
)

// AnalyzeGoalAmount scores a funding goal against the reasonable range for
// its category. Unknown categories fall back to the default range. Pure
// function.
func AnalyzeGoalAmount(amount float64, category string) (float64, []Indicator) {
	score := 0.0
	indicators := make([]Indicator, 0)

	limits, ok := categoryLimits[category]
	if !ok {
		limits = defaultCategoryLimit
	}

	switch {
	case amount > limits.Max*amountExtremeOverMaxFactor:
		score += amountExtremeOverMaxScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityHigh,
			Score:       amountExtremeOverMaxScore,
			Description: fmt.Sprintf("goal %.0f is over triple the %s category maximum", amount, category),
		})
	case amount > limits.Max*amountHighOverMaxFactor:
		score += amountHighOverMaxScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityMedium,
			Score:       amountHighOverMaxScore,
			Description: fmt.Sprintf("goal %.0f far exceeds the %s category maximum", amount, category),
		})
	case amount > limits.Max:
		score += amountOverMaxScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityLow,
			Score:       amountOverMaxScore,
			Description: fmt.Sprintf("goal %.0f exceeds the %s category maximum", amount, category),
		})
	case amount < limits.Min/amountFarBelowMinFactor:
		score += amountFarBelowMinScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityMedium,
			Score:       amountFarBelowMinScore,
			Description: fmt.Sprintf("goal %.0f is far below the %s category minimum", amount, category),
		})
	case amount < limits.Min:
		score += amountBelowMinScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityLow,
			Score:       amountBelowMinScore,
			Description: fmt.Sprintf("goal %.0f is below the %s category minimum", amount, category),
		})
	}

	// Round-number penalty: only the largest applicable tier applies.
	if isMultipleOf(amount, amountRoundHugeMultiple) && amount >= amountRoundHugeMultiple {
		score += amountRoundHugeScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityLow,
			Score:       amountRoundHugeScore,
			Description: "goal is a suspiciously round six-figure amount",
		})
	} else if isMultipleOf(amount, amountRoundLargeMultiple) && amount >= amountRoundLargeMultiple {
		score += amountRoundLargeScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityLow,
			Score:       amountRoundLargeScore,
			Description: "goal is a suspiciously round five-figure amount",
		})
	} else if isMultipleOf(amount, amountRoundMultiple) {
		score += amountRoundScore
	}

	if amount > limits.Typical*amountOverTypicalFactor {
		score += amountOverTypicalScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityMedium,
			Score:       amountOverTypicalScore,
			Description: fmt.Sprintf("goal is over five times the typical %s amount", category),
		})
	} else if amount < limits.Typical/amountUnderTypicalFactor {
		score += amountUnderTypicalScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityLow,
			Score:       amountUnderTypicalScore,
			Description: fmt.Sprintf("goal is under a tenth of the typical %s amount", category),
		})
	}

	if isSuspiciousAmount(amount) {
		score += amountSuspiciousScore
		indicators = append(indicators, Indicator{
			Category:    "amount",
			Severity:    SeverityMedium,
			Score:       amountSuspiciousScore,
			Description: fmt.Sprintf("goal %.0f is a known suspicious figure", amount),
		})
	}

	return clampScore(score), indicators
}

func isMultipleOf(amount float64, multiple int) bool {
	if amount <= 0 {
		return false
	}
	return math.Mod(amount, float64(multiple)) == 0
}

// isSuspiciousAmount flags blacklisted literals and repeated-digit amounts
// like 1111 or 99999.
func isSuspiciousAmount(amount float64) bool {
	if _, ok := suspiciousAmounts[amount]; ok {
		return true
	}
	if amount != math.Trunc(amount) || amount < 100 {
		return false
	}
	digits := strconv.FormatFloat(amount, 'f', 0, 64)
	if len(digits) < 3 {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
