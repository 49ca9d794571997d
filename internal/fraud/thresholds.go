package fraud

import "regexp"

// All scoring constants live here so they can be tuned without touching
// analyzer logic. They are package-level read-only data, loaded once.

// Aggregation weights. The image-aware set is authoritative; the no-image
// variant is used when the snapshot carries no scorable images.
type weightSet struct {
	Title       float64
	Description float64
	Story       float64
	Amount      float64
	Creator     float64
	Pattern     float64
	Images      float64
}

var (
	weightsWithImages = weightSet{
		Title:       0.20,
		Description: 0.15,
		Story:       0.15,
		Amount:      0.12,
		Creator:     0.10,
		Pattern:     0.08,
		Images:      0.20,
	}
	weightsNoImages = weightSet{
		Title:       0.25,
		Description: 0.20,
		Story:       0.20,
		Amount:      0.15,
		Creator:     0.12,
		Pattern:     0.08,
	}
)

const (
	baseRiskFloor = 5.0

	// A sub-score above this counts as a significant risk for amplification.
	significantRiskThreshold = 20.0

	amplifierThreeSignals = 1.3
	amplifierTwoSignals   = 1.15

	// Floor rules applied after amplification.
	textFloorTrigger    = 30.0 // title or description sub-score
	textFloorValue      = 35.0
	storyFloorTrigger   = 25.0
	storySupportTrigger = 15.0 // title or description support level
	storyFloorValue     = 30.0
	imageFloorTrigger   = 40.0
	imageFloorValue     = 45.0
)

// Risk tier and recommendation cutoffs, descending.
const (
	tierCritical = 50
	tierVeryHigh = 35
	tierHigh     = 25
	tierMedium   = 18
	tierLow      = 12
	tierQuick    = 8
)

const (
	manualReviewCutoff = 25
	autoApproveCutoff  = 12
)

// Fallback sub-scores when a collaborator fails or times out.
const (
	creatorFallbackScore = 20.0
	patternFallbackScore = 5.0
	imageFallbackScore   = 20.0
	failedAnalysisScore  = 50
)

// Title analyzer tunables (4.1).
var (
	titleCriticalKeywords = []string{
		"guaranteed money",
		"wire transfer",
		"act fast",
		"100% guaranteed",
		"double your money",
		"western union",
		"risk free investment",
	}
	titleHighRiskKeywords = []string{
		"urgent",
		"emergency",
		"bankruptcy",
		"desperate",
		"last chance",
		"final hours",
	}
	titleEmotionalKeywords = []string{
		"please help",
		"cancer",
		"homeless",
		"dying",
		"orphan",
		"save my",
		"terminal",
	}
	titleScamPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)need\s+\$?\d+[\d,]*\s+urgent`),
		regexp.MustCompile(`(?i)only\s+\$?\d+[\d,]*\s+left`),
		regexp.MustCompile(`(?i)send\s+\$?\d+[\d,]*\s+(now|today|asap)`),
		regexp.MustCompile(`\$\d+[\d,]*\s+(?i:now|today|asap)`),
	}
)

const (
	titleCriticalKeywordScore  = 40.0
	titleHighRiskKeywordScore  = 25.0
	titleEmotionalHeavyScore   = 20.0 // more than 2 emotional phrases
	titleEmotionalLightScore   = 8.0  // at least one emotional phrase
	titleEmotionalHeavyCount   = 2
	titleCapsHeavyRatio        = 0.5
	titleCapsHeavyScore        = 20.0
	titleCapsHeavyMinLength    = 10
	titleCapsMediumRatio       = 0.3
	titleCapsMediumScore       = 12.0
	titleCapsLightRatio        = 0.2
	titleCapsLightScore        = 6.0
	titleExclamationRunScore   = 15.0 // runs of !!! or longer
	titleDoubleBangMultiScore  = 10.0 // more than one !! run
	titleDoubleBangSingleScore = 5.0
	titleTooShortLength        = 10
	titleTooShortScore         = 15.0
	titleTooLongLength         = 200
	titleTooLongScore          = 12.0
	titleScamPatternScore      = 18.0
)

// Description analyzer tunables (4.2).
var (
	descSolicitationPhrases = []string{
		"send money",
		"cash only",
		"wire transfer",
		"western union",
		"paypal me",
		"bank transfer only",
		"send cash",
		"money order",
	}
	descPaymentHandlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)venmo[:\s]+@?\w+`),
		regexp.MustCompile(`(?i)cash\s?app[:\s]+\$?\w+`),
		regexp.MustCompile(`(?i)paypal\.me/\w+`),
		regexp.MustCompile(`\b\d{10,18}\b`),                  // bare account numbers
		regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`), // IBAN-shaped
	}
	descTemplatePhrases = []string{
		"share this post",
		"like and share",
		"copy and paste this",
		"please share everywhere",
		"share share share",
	}
)

const (
	descSolicitationScore    = 25.0
	descPaymentHandleScore   = 30.0
	descVeryShortLength      = 50
	descVeryShortScore       = 20.0
	descShortLength          = 100
	descShortScore           = 10.0
	descRepeatHeavyCount     = 8
	descRepeatHeavyScore     = 20.0
	descRepeatModerateCount  = 5
	descRepeatModerateScore  = 10.0
	descRepeatMinWordLength  = 3 // repeated-word counting ignores short words
	descDiversityRatio       = 0.3
	descDiversityMinWords    = 50
	descDiversityScore       = 15.0
	descTemplatePhraseScore  = 20.0
)

// Story analyzer tunables (4.3).
var (
	storyCopiedPhrases = []string{
		"once upon a time",
		"lorem ipsum",
		"this is a story about",
		"thank you for reading my story",
	}
	storyRelativeTimeRefs = []string{
		"yesterday",
		"last week",
		"last month",
		"last year",
		"years ago",
		"months ago",
		"days ago",
	}
	storyManipulationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)time (is )?running out`),
		regexp.MustCompile(`(?i)desperate(ly)? need`),
		regexp.MustCompile(`(?i)only you can help`),
		regexp.MustCompile(`(?i)act now`),
		regexp.MustCompile(`(?i)before it'?s too late`),
	}
)

const (
	storyTooShortLength       = 200
	storyTooShortScore        = 20.0
	storyTooLongLength        = 5000
	storyTooLongScore         = 15.0
	storyNoSentencesScore     = 50.0
	storyChoppySentenceLength = 15
	storyChoppyRatio          = 0.8
	storyChoppyScore          = 15.0
	storyRunOnSentenceLength  = 300
	storyRunOnRatio           = 0.3
	storyRunOnScore           = 15.0
	storyStyleShiftDelta      = 3.0
	storyStyleShiftScore      = 10.0
	storyCopiedPhraseScore    = 30.0
	storyTimeRefMaxCount      = 5
	storyTimeRefScore         = 10.0
	storyManipulationScore    = 15.0
	storyNoParagraphMinLength = 1000
	storyNoParagraphScore     = 10.0
)

// Goal-amount analyzer tunables (4.4).
type categoryLimit struct {
	Min     float64
	Max     float64
	Typical float64
}

var categoryLimits = map[string]categoryLimit{
	"Medical":          {Min: 500, Max: 100000, Typical: 15000},
	"Education":        {Min: 500, Max: 100000, Typical: 25000},
	"Emergency Relief": {Min: 1000, Max: 500000, Typical: 50000},
	"Animal Welfare":   {Min: 200, Max: 75000, Typical: 8000},
	"Community":        {Min: 300, Max: 150000, Typical: 20000},
	"Creative":         {Min: 500, Max: 200000, Typical: 25000},
	"Business":         {Min: 1000, Max: 1000000, Typical: 50000},
	"Sports":           {Min: 300, Max: 100000, Typical: 10000},
	"Environment":      {Min: 500, Max: 250000, Typical: 30000},
	"Memorial":         {Min: 500, Max: 50000, Typical: 10000},
}

// defaultCategoryLimit covers categories missing from the table.
var defaultCategoryLimit = categoryLimit{Min: 500, Max: 200000, Typical: 20000}

var suspiciousAmounts = map[float64]struct{}{
	9999:  {},
	99999: {},
}

const (
	amountExtremeOverMaxFactor = 3.0
	amountExtremeOverMaxScore  = 40.0
	amountHighOverMaxFactor    = 1.5
	amountHighOverMaxScore     = 25.0
	amountOverMaxScore         = 15.0
	amountFarBelowMinFactor    = 3.0 // below min/3
	amountFarBelowMinScore     = 25.0
	amountBelowMinScore        = 15.0
	amountRoundHugeMultiple    = 100000
	amountRoundHugeScore       = 15.0
	amountRoundLargeMultiple   = 10000
	amountRoundLargeScore      = 10.0
	amountRoundMultiple        = 1000
	amountRoundScore           = 5.0
	amountOverTypicalFactor    = 5.0
	amountOverTypicalScore     = 20.0
	amountUnderTypicalFactor   = 10.0 // below typical/10
	amountUnderTypicalScore    = 10.0
	amountSuspiciousScore      = 20.0
)

// Creator-history analyzer tunables (4.5).
const (
	historyLookbackDays       = 365
	historyNewCreatorScore    = 15.0
	historyRejectSevereRate   = 0.7
	historyRejectSevereScore  = 50.0
	historyRejectHighRate     = 0.5
	historyRejectHighScore    = 35.0
	historyRejectModerateRate = 0.3
	historyRejectModerateScore = 20.0
	historyBurstWindowDays    = 7
	historyBurstCount         = 2
	historyBurstScore         = 30.0
	historyMonthWindowDays    = 30
	historyMonthHeavyCount    = 5
	historyMonthHeavyScore    = 25.0
	historyMonthModerateCount = 3
	historyMonthModerateScore = 15.0
	historyCompletionLowRate  = 0.2
	historyCompletionLowMin   = 3 // denominator must exceed this
	historyCompletionLowScore = 20.0
	historyCompletionMidRate  = 0.4
	historyCompletionMidMin   = 2
	historyCompletionMidScore = 10.0
	historyRepeatAmountCount  = 2
	historyRepeatAmountScore  = 15.0
)

// Pattern analyzer tunables (4.6).
const (
	patternLookbackDays          = 60
	patternTitleMinWordLength    = 3 // tokens must be longer than this
	patternTitleStrongRatio      = 0.7
	patternTitleStrongScore      = 25.0
	patternTitleModerateRatio    = 0.5
	patternTitleModerateScore    = 15.0
	patternDescMinWordLength     = 4
	patternDescStrongRatio       = 0.6
	patternDescStrongScore       = 30.0
	patternDescModerateRatio     = 0.4
	patternDescModerateScore     = 20.0
	patternAmountClusterDelta    = 0.1 // within 10% of candidate goal
	patternAmountClusterMinCount = 3   // strictly more than this many
	patternAmountClusterScore    = 15.0
)

// Image forensics tunables (4.7).
var (
	stockMetadataMarkers = []string{
		"shutterstock",
		"gettyimages",
		"getty images",
		"istockphoto",
		"alamy",
		"dreamstime",
		"123rf",
		"stock.adobe",
		"depositphotos",
	}
	editingMetadataMarkers = []string{
		"adobe photoshop",
		"photoshop",
		"lightroom",
		"gimp",
		"canva",
		"pixlr",
		"paint.net",
	}
	screenshotMetadataMarkers = []string{
		"screenshot",
		"screen shot",
	}
	// Pixel dimensions matching common stock presets.
	stockDimensionPresets = [][2]int{
		{800, 600},
		{1024, 768},
		{1280, 960},
		{1920, 1080},
		{2400, 1600},
		{5000, 3333},
	}
)

const (
	imageMinDimension          = 400
	imageSmallDimensionScore   = 15.0
	imageStockScore            = 25.0
	imageScreenshotScore       = 20.0
	imageEditedScore           = 30.0
	imageQualityIssueScore     = 10.0
	imageQualityThreshold      = 50.0
	imageBorderSampleInset     = 1    // rows sampled this close to the edge
	imageBorderColorTolerance  = 8    // max per-channel delta for uniform border
	imageELAQuality            = 75   // re-encode quality for the ELA proxy
	imageELADiffThreshold      = 18.0 // mean abs pixel diff above this means edited
	imageBytesPerPixelLowWater = 0.05
	imageLowBytesDeduction     = 15.0
	imageSmallDimsDeduction    = 20.0
	imageModestDimsDeduction   = 10.0
	imageModestDimension       = 800
	imageBlurMaxDeduction      = 50.0
	imageBlurSharpGradient     = 10.0 // average gradient at or above this loses nothing
)

// Image aggregate weighting: cover image dominates, additional images share
// a fixed slice, videos are recorded but unscored.
const (
	imageCoverWeight      = 0.6
	imageAdditionalWeight = 0.3
)
