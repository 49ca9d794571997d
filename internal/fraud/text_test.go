package fraud

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeTitleCriticalKeywordsAddFortyEach(t *testing.T) {
	score, indicators := AnalyzeTitle("Guaranteed money via wire transfer opportunity")
	assert.GreaterOrEqual(t, score, 80.0)
	assert.NotEmpty(t, indicators)
}

func TestAnalyzeTitleMonotonicInCriticalKeywords(t *testing.T) {
	base := "Help fund a community garden project"
	prev := -1.0
	title := base
	for i := 0; i < 3; i++ {
		score, _ := AnalyzeTitle(title)
		assert.GreaterOrEqual(t, score, prev,
			"adding a critical keyword must never decrease the title score")
		prev = score
		title += " guaranteed money"
	}
}

func TestAnalyzeTitleCapsRatioBoundary(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected float64
	}{
		{
			// 3 uppercase over 10 runes is exactly 0.3: the strict > means
			// only the 0.2 tier fires.
			name:     "exactly 0.3 caps ratio",
			title:    "ABCdefghij",
			expected: 6.0,
		},
		{
			// 4 of 10 uppercase crosses 0.3 but the title is not longer
			// than 10, so the 0.5 tier cannot apply.
			name:     "just above 0.3 caps ratio",
			title:    "ABCDefghij",
			expected: 12.0,
		},
		{
			// 2 of 10 is exactly 0.2, below every tier.
			name:     "exactly 0.2 caps ratio",
			title:    "ABcdefghij",
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := AnalyzeTitle(tt.title)
			assert.Equal(t, tt.expected, score)
		})
	}
}

func TestAnalyzeTitleExclamationRuns(t *testing.T) {
	tripleScore, _ := AnalyzeTitle("Save the community garden!!!")
	doubleScore, _ := AnalyzeTitle("Save the community garden!!")
	plainScore, _ := AnalyzeTitle("Save the community garden")

	assert.Equal(t, plainScore+titleExclamationRunScore, tripleScore)
	assert.Equal(t, plainScore+titleDoubleBangSingleScore, doubleScore)
}

func TestAnalyzeTitleLengthSignals(t *testing.T) {
	shortScore, _ := AnalyzeTitle("Help me")
	assert.GreaterOrEqual(t, shortScore, titleTooShortScore)

	longScore, _ := AnalyzeTitle(strings.Repeat("community garden fund ", 12))
	assert.GreaterOrEqual(t, longScore, titleTooLongScore)
}

func TestAnalyzeTitleScamPattern(t *testing.T) {
	score, indicators := AnalyzeTitle("Need $5000 urgent for rent")
	assert.GreaterOrEqual(t, score, titleScamPatternScore)

	found := false
	for _, ind := range indicators {
		if strings.Contains(ind.Description, "scam pattern") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyzeTitleClampsToHundred(t *testing.T) {
	title := "URGENT EMERGENCY guaranteed money wire transfer act fast " +
		"please help cancer homeless dying need $100 urgent!!!"
	score, _ := AnalyzeTitle(title)
	assert.LessOrEqual(t, score, 100.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestAnalyzeDescriptionShortText(t *testing.T) {
	score, _ := AnalyzeDescription("Please donate, thank you.")
	assert.GreaterOrEqual(t, score, descVeryShortScore)
}

func TestAnalyzeDescriptionPaymentHandles(t *testing.T) {
	desc := "We collect donations through this page. " +
		"You can also reach us at venmo: @quickcash99 for direct support " +
		"because the platform takes a cut of every single contribution."
	score, indicators := AnalyzeDescription(desc)
	assert.GreaterOrEqual(t, score, descPaymentHandleScore)

	found := false
	for _, ind := range indicators {
		if strings.Contains(ind.Description, "payment handle") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyzeDescriptionRepetitionAndDiversity(t *testing.T) {
	// 60 words, almost all the same: trips both the repeated-word and the
	// lexical-diversity signals.
	desc := strings.TrimSpace(strings.Repeat("donate today donate quickly ", 15))
	score, _ := AnalyzeDescription(desc)
	assert.GreaterOrEqual(t, score, descRepeatHeavyScore+descDiversityScore)
}

func TestAnalyzeDescriptionTemplatePhrases(t *testing.T) {
	desc := "Our school needs a new roof before the rainy season starts. " +
		"Every contribution goes directly to the construction fund. " +
		"Please like and share with everyone you know."
	score, _ := AnalyzeDescription(desc)
	assert.GreaterOrEqual(t, score, descTemplatePhraseScore)
}

func TestAnalyzeDescriptionCleanTextScoresZero(t *testing.T) {
	desc := "The village library lost most of its collection in last year's " +
		"flood. We are raising funds to replace the children's section, " +
		"repair the reading room, and buy two new computers for the " +
		"homework club that meets every weekday afternoon."
	score, indicators := AnalyzeDescription(desc)
	assert.Equal(t, 0.0, score)
	assert.Empty(t, indicators)
}

func TestAnalyzeStoryNoSentencesReturnsFixedScore(t *testing.T) {
	long := strings.Repeat("words without any terminator keep flowing on ", 10)
	for _, text := range []string{
		"",
		"...", "!!!",
		"just some words with no terminator",
		long,
	} {
		score, indicators := AnalyzeStory(text)
		assert.Equal(t, storyNoSentencesScore, score, "text: %q", text)
		assert.NotEmpty(t, indicators)
	}
}

func TestAnalyzeStoryShortText(t *testing.T) {
	score, _ := AnalyzeStory("We need help. It matters.")
	// Too short plus mostly-fragment sentences.
	assert.GreaterOrEqual(t, score, storyTooShortScore+storyChoppyScore)
}

func TestAnalyzeStoryManipulationAndTimeRefs(t *testing.T) {
	story := "Time is running out for our shelter and we desperately need " +
		"your support. Yesterday we lost a sponsor. Last week the roof " +
		"started leaking. Last month the heating failed. Last year we " +
		"nearly closed. Years ago this place was thriving and days ago " +
		"we got the final notice. " + strings.Repeat(
		"The animals in our care deserve warmth and food through the winter. ", 3)
	score, _ := AnalyzeStory(story)
	// Two manipulation patterns plus the relative-time pile-up.
	assert.GreaterOrEqual(t, score, 2*storyManipulationScore+storyTimeRefScore)
}

func TestAnalyzeStoryMissingParagraphBreaks(t *testing.T) {
	sentence := "The renovation will give the students a safe place to study after class. "
	long := strings.Repeat(sentence, 20)
	assert.Greater(t, len(long), storyNoParagraphMinLength)

	score, _ := AnalyzeStory(long)
	assert.GreaterOrEqual(t, score, storyNoParagraphScore)

	withBreaks := strings.Repeat(sentence+"\n\n", 20)
	scoreBreaks, _ := AnalyzeStory(withBreaks)
	assert.Less(t, scoreBreaks, score)
}

func TestSubScoresAlwaysClamped(t *testing.T) {
	worst := strings.Repeat("guaranteed money wire transfer act fast urgent emergency please help cancer homeless. ", 10)
	for name, fn := range map[string]func(string) (float64, []Indicator){
		"title":       AnalyzeTitle,
		"description": AnalyzeDescription,
		"story":       AnalyzeStory,
	} {
		score, _ := fn(worst)
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 100.0, name)
	}
}
