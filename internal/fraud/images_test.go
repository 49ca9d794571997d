package fraud

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// gradientImage builds a left-to-right luminance ramp. The top row varies, so
// the screenshot border heuristic stays quiet, and smooth gradients survive
// JPEG recompression almost unchanged.
func gradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / width)
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fetcherReturning(ref string, data []byte) *mockMediaFetcher {
	fetcher := new(mockMediaFetcher)
	fetcher.On("FetchImage", mock.Anything, ref).Return(data, nil)
	return fetcher
}

func TestAnalyzeOneCleanImage(t *testing.T) {
	data := encodePNG(t, gradientImage(1600, 1200))
	fetcher := fetcherReturning("cover.png", data)

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	result := analyzer.analyzeOne(context.Background(), "cover.png")

	assert.Equal(t, 1600, result.Width)
	assert.Equal(t, 1200, result.Height)
	assert.Equal(t, "png", result.Format)
	assert.False(t, result.IsStockPhoto)
	assert.False(t, result.IsScreenshot)
	assert.False(t, result.IsEdited)
	// A synthetic gradient has almost no edges, so only the quality signal
	// may fire.
	assert.LessOrEqual(t, result.RiskScore, imageQualityIssueScore)
}

func TestAnalyzeOneStockAgencyMarker(t *testing.T) {
	data := encodePNG(t, gradientImage(640, 480))
	data = append(data, []byte("Shutterstock contributor export")...)
	fetcher := fetcherReturning("cover.png", data)

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	result := analyzer.analyzeOne(context.Background(), "cover.png")

	assert.True(t, result.IsStockPhoto)
	assert.GreaterOrEqual(t, result.RiskScore, imageStockScore)

	found := false
	for _, ind := range result.Indicators {
		if ind.Category == "image" && ind.Score == imageStockScore {
			found = true
		}
	}
	assert.True(t, found, "expected a stock photo indicator")
}

func TestAnalyzeOneStockDimensionPreset(t *testing.T) {
	data := encodePNG(t, gradientImage(800, 600))
	fetcher := fetcherReturning("cover.png", data)

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	result := analyzer.analyzeOne(context.Background(), "cover.png")

	assert.True(t, result.IsStockPhoto)
	assert.GreaterOrEqual(t, result.RiskScore, imageStockScore)
}

func TestAnalyzeOneEditingSoftwareMarker(t *testing.T) {
	data := encodePNG(t, gradientImage(1600, 1200))
	data = append(data, []byte("Adobe Photoshop 25.1")...)
	fetcher := fetcherReturning("cover.png", data)

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	result := analyzer.analyzeOne(context.Background(), "cover.png")

	assert.True(t, result.IsEdited)
	assert.GreaterOrEqual(t, result.RiskScore, imageEditedScore)
}

func TestAnalyzeOneScreenshotMarker(t *testing.T) {
	data := encodePNG(t, gradientImage(1600, 1200))
	data = append(data, []byte("Screenshot 2026-08-12 at 09.15.44")...)
	fetcher := fetcherReturning("cover.png", data)

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	result := analyzer.analyzeOne(context.Background(), "cover.png")

	assert.True(t, result.IsScreenshot)
	assert.GreaterOrEqual(t, result.RiskScore, imageScreenshotScore)
}

func TestAnalyzeOneLowResolution(t *testing.T) {
	data := encodePNG(t, gradientImage(200, 150))
	fetcher := fetcherReturning("thumb.png", data)

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	result := analyzer.analyzeOne(context.Background(), "thumb.png")

	assert.GreaterOrEqual(t, result.RiskScore, imageSmallDimensionScore)
	assert.True(t, result.QualityIssues)
}

func TestAnalyzeOneFetchFailure(t *testing.T) {
	fetcher := new(mockMediaFetcher)
	fetcher.On("FetchImage", mock.Anything, "gone.png").
		Return(nil, errors.New("404"))

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	result := analyzer.analyzeOne(context.Background(), "gone.png")

	assert.Equal(t, imageFallbackScore, result.RiskScore)
	assert.Equal(t, "gone.png", result.URL)
	assert.Len(t, result.Indicators, 1)
}

func TestAnalyzeOneDecodeFailure(t *testing.T) {
	fetcher := fetcherReturning("corrupt.png", []byte("not an image at all"))

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	result := analyzer.analyzeOne(context.Background(), "corrupt.png")

	assert.Equal(t, imageFallbackScore, result.RiskScore)
}

func TestAnalyzeCampaignImagesAggregateWeighting(t *testing.T) {
	data := encodePNG(t, gradientImage(1600, 1200))
	fetcher := new(mockMediaFetcher)
	fetcher.On("FetchImage", mock.Anything, mock.Anything).Return(data, nil)

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	snapshot := &CampaignSnapshot{
		ID:               uuid.New(),
		CreatorID:        uuid.New(),
		ImageURL:         "cover.png",
		AdditionalImages: []string{"extra1.png", "extra2.png"},
		Videos:           []string{"clip.mp4"},
	}

	analysis := analyzer.AnalyzeCampaignImages(context.Background(), snapshot)
	require.NotNil(t, analysis)
	require.NotNil(t, analysis.CoverImage)
	require.Len(t, analysis.AdditionalImages, 2)
	assert.Equal(t, []string{"clip.mp4"}, analysis.Videos)

	// Identical images: overall = cover*0.6 + mean(additional)*0.3.
	per := analysis.CoverImage.RiskScore
	expected := per*imageCoverWeight + per*imageAdditionalWeight
	assert.InDelta(t, expected, analysis.OverallRiskScore, 0.001)
}

func TestAnalyzeCampaignImagesNoImages(t *testing.T) {
	analyzer := NewImageAnalyzer(new(mockMediaFetcher), 2, time.Second)
	snapshot := &CampaignSnapshot{ID: uuid.New(), Videos: []string{"clip.mp4"}}

	analysis := analyzer.AnalyzeCampaignImages(context.Background(), snapshot)
	require.NotNil(t, analysis)
	assert.Nil(t, analysis.CoverImage)
	assert.Empty(t, analysis.AdditionalImages)
	assert.Equal(t, 0.0, analysis.OverallRiskScore)
}

func TestAnalyzeCampaignImagesBrokenImageContributesFallback(t *testing.T) {
	good := encodePNG(t, gradientImage(1600, 1200))
	fetcher := new(mockMediaFetcher)
	fetcher.On("FetchImage", mock.Anything, "cover.png").Return(good, nil)
	fetcher.On("FetchImage", mock.Anything, "broken.png").
		Return(nil, errors.New("connection reset"))

	analyzer := NewImageAnalyzer(fetcher, 2, time.Second)
	snapshot := &CampaignSnapshot{
		ID:               uuid.New(),
		CreatorID:        uuid.New(),
		ImageURL:         "cover.png",
		AdditionalImages: []string{"broken.png"},
	}

	analysis := analyzer.AnalyzeCampaignImages(context.Background(), snapshot)
	require.NotNil(t, analysis)
	require.Len(t, analysis.AdditionalImages, 1)
	assert.Equal(t, imageFallbackScore, analysis.AdditionalImages[0].RiskScore)

	expected := analysis.CoverImage.RiskScore*imageCoverWeight +
		imageFallbackScore*imageAdditionalWeight
	assert.InDelta(t, expected, analysis.OverallRiskScore, 0.001)
}

func TestAnalyzeCampaignWithCleanImagesAutoApproves(t *testing.T) {
	data := encodePNG(t, gradientImage(1600, 1200))
	fetcher := new(mockMediaFetcher)
	fetcher.On("FetchImage", mock.Anything, mock.Anything).Return(data, nil)

	store := emptyHistoryStore()
	svc := NewService(store, NewImageAnalyzer(fetcher, 2, time.Second))

	snapshot := cleanSnapshot()
	snapshot.ImageURL = "cover.png"

	result := svc.AnalyzeCampaign(context.Background(), snapshot)
	require.NotNil(t, result)
	require.NotNil(t, result.ImageAnalysis)

	assert.Less(t, result.FraudScore, tierMedium)
	assert.True(t, result.AutoApprove)
}
