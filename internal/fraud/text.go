package fraud

import (
	"fmt"
	"strings"
	"unicode"
)

// AnalyzeTitle scores a campaign title for fraud signals. It is a pure
// function; the caller must not invoke it with an empty title.
func AnalyzeTitle(title string) (float64, []Indicator) {
	score := 0.0
	indicators := make([]Indicator, 0)
	lower := strings.ToLower(title)

	for _, kw := range titleCriticalKeywords {
		if strings.Contains(lower, kw) {
			score += titleCriticalKeywordScore
			indicators = append(indicators, Indicator{
				Category:    "title",
				Severity:    SeverityHigh,
				Score:       titleCriticalKeywordScore,
				Description: fmt.Sprintf("title contains critical fraud keyword %q", kw),
			})
		}
	}

	for _, kw := range titleHighRiskKeywords {
		if strings.Contains(lower, kw) {
			score += titleHighRiskKeywordScore
			indicators = append(indicators, Indicator{
				Category:    "title",
				Severity:    SeverityHigh,
				Score:       titleHighRiskKeywordScore,
				Description: fmt.Sprintf("title contains high-risk keyword %q", kw),
			})
		}
	}

	emotionalCount := 0
	for _, kw := range titleEmotionalKeywords {
		emotionalCount += strings.Count(lower, kw)
	}
	if emotionalCount > titleEmotionalHeavyCount {
		score += titleEmotionalHeavyScore
		indicators = append(indicators, Indicator{
			Category:    "title",
			Severity:    SeverityMedium,
			Score:       titleEmotionalHeavyScore,
			Description: fmt.Sprintf("title stacks %d emotional appeal phrases", emotionalCount),
		})
	} else if emotionalCount > 0 {
		score += titleEmotionalLightScore
		indicators = append(indicators, Indicator{
			Category:    "title",
			Severity:    SeverityLow,
			Score:       titleEmotionalLightScore,
			Description: "title uses emotional appeal phrasing",
		})
	}

	length := len([]rune(title))
	capsRatio := uppercaseRatio(title)
	switch {
	case capsRatio > titleCapsHeavyRatio && length > titleCapsHeavyMinLength:
		score += titleCapsHeavyScore
		indicators = append(indicators, Indicator{
			Category:    "title",
			Severity:    SeverityMedium,
			Score:       titleCapsHeavyScore,
			Description: "title is mostly uppercase",
		})
	case capsRatio > titleCapsMediumRatio:
		score += titleCapsMediumScore
		indicators = append(indicators, Indicator{
			Category:    "title",
			Severity:    SeverityLow,
			Score:       titleCapsMediumScore,
			Description: "title is heavily uppercase",
		})
	case capsRatio > titleCapsLightRatio:
		score += titleCapsLightScore
		indicators = append(indicators, Indicator{
			Category:    "title",
			Severity:    SeverityLow,
			Score:       titleCapsLightScore,
			Description: "title uses excessive capitalization",
		})
	}

	tripleRuns, doubleRuns := exclamationRuns(title)
	if tripleRuns > 0 {
		score += titleExclamationRunScore
		indicators = append(indicators, Indicator{
			Category:    "title",
			Severity:    SeverityMedium,
			Score:       titleExclamationRunScore,
			Description: "title contains repeated exclamation runs",
		})
	}
	if doubleRuns > 1 {
		score += titleDoubleBangMultiScore
	} else if doubleRuns == 1 {
		score += titleDoubleBangSingleScore
	}

	if length < titleTooShortLength {
		score += titleTooShortScore
		indicators = append(indicators, Indicator{
			Category:    "title",
			Severity:    SeverityLow,
			Score:       titleTooShortScore,
			Description: "title is too vague",
		})
	} else if length > titleTooLongLength {
		score += titleTooLongScore
		indicators = append(indicators, Indicator{
			Category:    "title",
			Severity:    SeverityLow,
			Score:       titleTooLongScore,
			Description: "title is spam-like in length",
		})
	}

	for _, re := range titleScamPatterns {
		if re.MatchString(title) {
			score += titleScamPatternScore
			indicators = append(indicators, Indicator{
				Category:    "title",
				Severity:    SeverityHigh,
				Score:       titleScamPatternScore,
				Description: "title matches a known scam pattern",
			})
		}
	}

	return clampScore(score), indicators
}

// AnalyzeDescription scores the short description text. Pure function.
func AnalyzeDescription(description string) (float64, []Indicator) {
	score := 0.0
	indicators := make([]Indicator, 0)
	lower := strings.ToLower(description)

	for _, phrase := range descSolicitationPhrases {
		if strings.Contains(lower, phrase) {
			score += descSolicitationScore
			indicators = append(indicators, Indicator{
				Category:    "description",
				Severity:    SeverityHigh,
				Score:       descSolicitationScore,
				Description: fmt.Sprintf("description solicits payment directly (%q)", phrase),
			})
		}
	}

	for _, re := range descPaymentHandlePatterns {
		if re.MatchString(description) {
			score += descPaymentHandleScore
			indicators = append(indicators, Indicator{
				Category:    "description",
				Severity:    SeverityHigh,
				Score:       descPaymentHandleScore,
				Description: "description embeds a payment handle or account number",
			})
		}
	}

	length := len([]rune(description))
	if length < descVeryShortLength {
		score += descVeryShortScore
		indicators = append(indicators, Indicator{
			Category:    "description",
			Severity:    SeverityMedium,
			Score:       descVeryShortScore,
			Description: "description is too short to be meaningful",
		})
	} else if length < descShortLength {
		score += descShortScore
		indicators = append(indicators, Indicator{
			Category:    "description",
			Severity:    SeverityLow,
			Score:       descShortScore,
			Description: "description is unusually short",
		})
	}

	words := tokenize(lower, 0)
	maxRepeat := maxWordRepetition(words, descRepeatMinWordLength)
	if maxRepeat > descRepeatHeavyCount {
		score += descRepeatHeavyScore
		indicators = append(indicators, Indicator{
			Category:    "description",
			Severity:    SeverityMedium,
			Score:       descRepeatHeavyScore,
			Description: fmt.Sprintf("a word repeats %d times in the description", maxRepeat),
		})
	} else if maxRepeat > descRepeatModerateCount {
		score += descRepeatModerateScore
		indicators = append(indicators, Indicator{
			Category:    "description",
			Severity:    SeverityLow,
			Score:       descRepeatModerateScore,
			Description: "description repeats the same word heavily",
		})
	}

	if len(words) >= descDiversityMinWords {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) < descDiversityRatio {
			score += descDiversityScore
			indicators = append(indicators, Indicator{
				Category:    "description",
				Severity:    SeverityMedium,
				Score:       descDiversityScore,
				Description: "description has very low lexical diversity",
			})
		}
	}

	for _, phrase := range descTemplatePhrases {
		if strings.Contains(lower, phrase) {
			score += descTemplatePhraseScore
			indicators = append(indicators, Indicator{
				Category:    "description",
				Severity:    SeverityMedium,
				Score:       descTemplatePhraseScore,
				Description: fmt.Sprintf("description uses a share-template phrase (%q)", phrase),
			})
		}
	}

	return clampScore(score), indicators
}

// AnalyzeStory scores the long narrative. Pure function. When the text holds
// no detectable sentences it returns a fixed elevated score instead of
// dividing by zero.
func AnalyzeStory(story string) (float64, []Indicator) {
	score := 0.0
	indicators := make([]Indicator, 0)
	lower := strings.ToLower(story)
	length := len([]rune(story))

	if length < storyTooShortLength {
		score += storyTooShortScore
		indicators = append(indicators, Indicator{
			Category:    "story",
			Severity:    SeverityMedium,
			Score:       storyTooShortScore,
			Description: "story is too short to verify",
		})
	} else if length > storyTooLongLength {
		score += storyTooLongScore
		indicators = append(indicators, Indicator{
			Category:    "story",
			Severity:    SeverityLow,
			Score:       storyTooLongScore,
			Description: "story is unusually long, possible copy-paste bloat",
		})
	}

	sentences := splitSentences(story)
	if len(sentences) == 0 {
		indicators = append(indicators, Indicator{
			Category:    "story",
			Severity:    SeverityMedium,
			Score:       storyNoSentencesScore,
			Description: "story contains no detectable sentences",
		})
		return storyNoSentencesScore, indicators
	}

	short, long := 0, 0
	for _, s := range sentences {
		n := len([]rune(s))
		if n < storyChoppySentenceLength {
			short++
		}
		if n > storyRunOnSentenceLength {
			long++
		}
	}
	total := float64(len(sentences))
	if float64(short)/total > storyChoppyRatio {
		score += storyChoppyScore
		indicators = append(indicators, Indicator{
			Category:    "story",
			Severity:    SeverityLow,
			Score:       storyChoppyScore,
			Description: "story is mostly fragments",
		})
	}
	if float64(long)/total > storyRunOnRatio {
		score += storyRunOnScore
		indicators = append(indicators, Indicator{
			Category:    "story",
			Severity:    SeverityLow,
			Score:       storyRunOnScore,
			Description: "story is dominated by run-on sentences",
		})
	}

	if delta := halvesWordLengthDelta(story); delta > storyStyleShiftDelta {
		score += storyStyleShiftScore
		indicators = append(indicators, Indicator{
			Category:    "story",
			Severity:    SeverityLow,
			Score:       storyStyleShiftScore,
			Description: "writing style shifts between story halves",
		})
	}

	for _, phrase := range storyCopiedPhrases {
		if strings.Contains(lower, phrase) {
			score += storyCopiedPhraseScore
			indicators = append(indicators, Indicator{
				Category:    "story",
				Severity:    SeverityHigh,
				Score:       storyCopiedPhraseScore,
				Description: fmt.Sprintf("story contains a known template phrase (%q)", phrase),
			})
		}
	}

	timeRefs := 0
	for _, ref := range storyRelativeTimeRefs {
		timeRefs += strings.Count(lower, ref)
	}
	if timeRefs > storyTimeRefMaxCount {
		score += storyTimeRefScore
		indicators = append(indicators, Indicator{
			Category:    "story",
			Severity:    SeverityLow,
			Score:       storyTimeRefScore,
			Description: "story leans on vague relative-time references",
		})
	}

	for _, re := range storyManipulationPatterns {
		if re.MatchString(story) {
			score += storyManipulationScore
			indicators = append(indicators, Indicator{
				Category:    "story",
				Severity:    SeverityMedium,
				Score:       storyManipulationScore,
				Description: "story uses pressure or manipulation phrasing",
			})
		}
	}

	if length > storyNoParagraphMinLength && !strings.Contains(story, "\n\n") {
		score += storyNoParagraphScore
		indicators = append(indicators, Indicator{
			Category:    "story",
			Severity:    SeverityLow,
			Score:       storyNoParagraphScore,
			Description: "long story has no paragraph breaks",
		})
	}

	return clampScore(score), indicators
}

// clampScore bounds a sub-score to [0, 100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func uppercaseRatio(s string) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(len(runes))
}

// exclamationRuns counts runs of consecutive '!' characters: runs of three
// or more, and runs of exactly two.
func exclamationRuns(s string) (triple, double int) {
	run := 0
	flush := func() {
		if run >= 3 {
			triple++
		} else if run == 2 {
			double++
		}
		run = 0
	}
	for _, r := range s {
		if r == '!' {
			run++
		} else {
			flush()
		}
	}
	flush()
	return triple, double
}

// tokenize lowercased words longer than minLen from text.
func tokenize(text string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if minLen <= 0 {
		return fields
	}
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > minLen {
			out = append(out, f)
		}
	}
	return out
}

func maxWordRepetition(words []string, minLen int) int {
	counts := make(map[string]int)
	max := 0
	for _, w := range words {
		if len([]rune(w)) <= minLen {
			continue
		}
		counts[w]++
		if counts[w] > max {
			max = counts[w]
		}
	}
	return max
}

// splitSentences treats text without a single terminator as having no
// detectable sentences at all.
func splitSentences(text string) []string {
	if !strings.ContainsAny(text, ".!?") {
		return nil
	}
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s); t != "" {
			sentences = append(sentences, t)
		}
	}
	return sentences
}

// halvesWordLengthDelta measures the average word length difference between
// the first and second halves of the text.
func halvesWordLengthDelta(text string) float64 {
	runes := []rune(text)
	if len(runes) < 2 {
		return 0
	}
	mid := len(runes) / 2
	first := avgWordLength(string(runes[:mid]))
	second := avgWordLength(string(runes[mid:]))
	delta := first - second
	if delta < 0 {
		delta = -delta
	}
	return delta
}

func avgWordLength(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len([]rune(w))
	}
	return float64(total) / float64(len(words))
}
