package fraud

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"sync"
	"time"

	// PNG and WEBP decoders registered for image.Decode; JPEG comes in via
	// the named import above. The media fetcher must supply one of the three.
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/fundhub/crowdfunding/pkg/logger"
	"go.uber.org/zap"
)

// ImageAnalyzer runs lightweight forensics over campaign media. The checks
// are explainable proxies, not forensic-grade analysis; each signal is
// individually weak and individually low-weight.
type ImageAnalyzer struct {
	fetcher      MediaFetcher
	workers      int
	fetchTimeout time.Duration
}

// NewImageAnalyzer creates an image analyzer with a bounded worker count.
func NewImageAnalyzer(fetcher MediaFetcher, workers int, fetchTimeout time.Duration) *ImageAnalyzer {
	if workers < 1 {
		workers = 1
	}
	return &ImageAnalyzer{
		fetcher:      fetcher,
		workers:      workers,
		fetchTimeout: fetchTimeout,
	}
}

// AnalyzeCampaignImages scores the cover image and any additional images.
// Videos are recorded but not scored. Failures never propagate: a broken
// image contributes the fallback risk, and a total failure yields the
// fallback aggregate.
func (a *ImageAnalyzer) AnalyzeCampaignImages(ctx context.Context, snapshot *CampaignSnapshot) (result *CampaignImageAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithContext(ctx).Error("image analysis panicked, using fallback",
				zap.Any("panic", r),
			)
			analyzerFallbacks.WithLabelValues("images").Inc()
			result = &CampaignImageAnalysis{
				Videos:           snapshot.Videos,
				OverallRiskScore: imageFallbackScore,
			}
		}
	}()

	analysis := &CampaignImageAnalysis{Videos: snapshot.Videos}

	refs := make([]string, 0, 1+len(snapshot.AdditionalImages))
	if snapshot.ImageURL != "" {
		refs = append(refs, snapshot.ImageURL)
	}
	refs = append(refs, snapshot.AdditionalImages...)
	if len(refs) == 0 {
		return analysis
	}

	results := make([]ImageAnalysisResult, len(refs))
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = a.analyzeOne(ctx, ref)
		}(i, ref)
	}
	wg.Wait()

	idx := 0
	if snapshot.ImageURL != "" {
		cover := results[0]
		analysis.CoverImage = &cover
		idx = 1
	}
	analysis.AdditionalImages = results[idx:]

	overall := 0.0
	if analysis.CoverImage != nil {
		overall += analysis.CoverImage.RiskScore * imageCoverWeight
	}
	if n := len(analysis.AdditionalImages); n > 0 {
		sum := 0.0
		for _, r := range analysis.AdditionalImages {
			sum += r.RiskScore
		}
		overall += sum * imageAdditionalWeight / float64(n)
	}
	analysis.OverallRiskScore = clampScore(overall)

	return analysis
}

// analyzeOne fetches and scores a single image. It never returns an error:
// fetch or decode failures produce the documented fallback result.
func (a *ImageAnalyzer) analyzeOne(ctx context.Context, ref string) (result ImageAnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithContext(ctx).Warn("single-image analysis panicked",
				zap.String("ref", ref),
				zap.Any("panic", r),
			)
			result = failedImageResult(ref)
		}
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	data, err := a.fetcher.FetchImage(fetchCtx, ref)
	if err != nil {
		logger.WithContext(ctx).Warn("image fetch failed",
			zap.String("ref", ref),
			zap.Error(err),
		)
		analyzerFallbacks.WithLabelValues("image_fetch").Inc()
		return failedImageResult(ref)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.WithContext(ctx).Warn("image decode failed",
			zap.String("ref", ref),
			zap.Error(err),
		)
		return failedImageResult(ref)
	}

	bounds := img.Bounds()
	result = ImageAnalysisResult{
		URL:        ref,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     format,
		ByteSize:   int64(len(data)),
		Indicators: make([]Indicator, 0),
	}

	score := 0.0
	lowered := bytes.ToLower(data)

	if result.Width < imageMinDimension || result.Height < imageMinDimension {
		score += imageSmallDimensionScore
		result.Indicators = append(result.Indicators, Indicator{
			Category:    "image",
			Severity:    SeverityLow,
			Score:       imageSmallDimensionScore,
			Description: fmt.Sprintf("image is low resolution (%dx%d)", result.Width, result.Height),
		})
	}

	if marker := findMarker(lowered, stockMetadataMarkers); marker != "" || matchesStockPreset(result.Width, result.Height) {
		score += imageStockScore
		result.IsStockPhoto = true
		desc := "image dimensions match a common stock preset"
		if marker != "" {
			desc = fmt.Sprintf("image metadata references stock agency %q", marker)
		}
		result.Indicators = append(result.Indicators, Indicator{
			Category:    "image",
			Severity:    SeverityMedium,
			Score:       imageStockScore,
			Description: desc,
		})
	}

	if findMarker(lowered, screenshotMetadataMarkers) != "" || hasUniformBorder(img) {
		score += imageScreenshotScore
		result.IsScreenshot = true
		result.Indicators = append(result.Indicators, Indicator{
			Category:    "image",
			Severity:    SeverityMedium,
			Score:       imageScreenshotScore,
			Description: "image looks like a screenshot",
		})
	}

	if marker := findMarker(lowered, editingMetadataMarkers); marker != "" || elaProxyDiff(img) > imageELADiffThreshold {
		score += imageEditedScore
		result.IsEdited = true
		desc := "recompression analysis suggests the image was edited"
		if marker != "" {
			desc = fmt.Sprintf("image metadata references editing software %q", marker)
		}
		result.Indicators = append(result.Indicators, Indicator{
			Category:    "image",
			Severity:    SeverityHigh,
			Score:       imageEditedScore,
			Description: desc,
		})
	}

	if quality := qualityScore(result.Width, result.Height, int64(len(data)), img); quality < imageQualityThreshold {
		score += imageQualityIssueScore
		result.QualityIssues = true
		result.Indicators = append(result.Indicators, Indicator{
			Category:    "image",
			Severity:    SeverityLow,
			Score:       imageQualityIssueScore,
			Description: fmt.Sprintf("image quality is poor (%.0f/100)", quality),
		})
	}

	result.RiskScore = clampScore(score)
	return result
}

func failedImageResult(ref string) ImageAnalysisResult {
	return ImageAnalysisResult{
		URL:       ref,
		RiskScore: imageFallbackScore,
		Indicators: []Indicator{{
			Category:    "image",
			Severity:    SeverityLow,
			Score:       imageFallbackScore,
			Description: "image analysis failed",
		}},
	}
}

// findMarker returns the first marker found in the lowercased byte stream.
func findMarker(lowered []byte, markers []string) string {
	for _, m := range markers {
		if bytes.Contains(lowered, []byte(m)) {
			return m
		}
	}
	return ""
}

func matchesStockPreset(width, height int) bool {
	for _, preset := range stockDimensionPresets {
		if (width == preset[0] && height == preset[1]) ||
			(width == preset[1] && height == preset[0]) {
			return true
		}
	}
	return false
}

// hasUniformBorder samples a pixel row near the top edge. Nearly constant
// color across the row suggests UI chrome from a screenshot.
func hasUniformBorder(img image.Image) bool {
	bounds := img.Bounds()
	if bounds.Dx() < 16 || bounds.Dy() < 4 {
		return false
	}
	y := bounds.Min.Y + imageBorderSampleInset
	step := bounds.Dx() / 64
	if step < 1 {
		step = 1
	}

	var minR, minG, minB uint32 = 1<<32 - 1, 1<<32 - 1, 1<<32 - 1
	var maxR, maxG, maxB uint32
	for x := bounds.Min.X; x < bounds.Max.X; x += step {
		r, g, b, _ := img.At(x, y).RGBA()
		r, g, b = r>>8, g>>8, b>>8
		minR, maxR = minU32(minR, r), maxU32(maxR, r)
		minG, maxG = minU32(minG, g), maxU32(maxG, g)
		minB, maxB = minU32(minB, b), maxU32(maxB, b)
	}

	tol := uint32(imageBorderColorTolerance)
	return maxR-minR <= tol && maxG-minG <= tol && maxB-minB <= tol
}

// elaProxyDiff re-encodes the image at a fixed JPEG quality and measures the
// mean absolute pixel difference against the original. Heavily edited images
// tend to diverge more under recompression.
func elaProxyDiff(img image.Image) float64 {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: imageELAQuality}); err != nil {
		return 0
	}
	reencoded, err := jpeg.Decode(&buf)
	if err != nil {
		return 0
	}

	bounds := img.Bounds()
	stepX := bounds.Dx() / 100
	stepY := bounds.Dy() / 100
	if stepX < 1 {
		stepX = 1
	}
	if stepY < 1 {
		stepY = 1
	}

	var total, samples float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r1, g1, b1, _ := img.At(x, y).RGBA()
			r2, g2, b2, _ := reencoded.At(x, y).RGBA()
			total += absDiff(r1>>8, r2>>8) + absDiff(g1>>8, g2>>8) + absDiff(b1>>8, b2>>8)
			samples += 3
		}
	}
	if samples == 0 {
		return 0
	}
	return total / samples
}

// qualityScore starts at 100 and deducts for small dimensions, low byte size
// relative to the pixel count, and blur estimated from average gradient
// magnitude. The blur deduction is capped.
func qualityScore(width, height int, byteSize int64, img image.Image) float64 {
	quality := 100.0

	if width < imageMinDimension || height < imageMinDimension {
		quality -= imageSmallDimsDeduction
	} else if width < imageModestDimension || height < imageModestDimension {
		quality -= imageModestDimsDeduction
	}

	pixels := float64(width * height)
	if pixels > 0 && float64(byteSize)/pixels < imageBytesPerPixelLowWater {
		quality -= imageLowBytesDeduction
	}

	grad := averageGradient(img)
	if grad < imageBlurSharpGradient {
		deduction := (imageBlurSharpGradient - grad) / imageBlurSharpGradient * imageBlurMaxDeduction
		quality -= deduction
	}

	if quality < 0 {
		quality = 0
	}
	return quality
}

// averageGradient estimates edge strength from sampled luminance deltas.
// Low values indicate blur.
func averageGradient(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Dx() < 3 || bounds.Dy() < 3 {
		return 0
	}
	stepX := bounds.Dx() / 64
	stepY := bounds.Dy() / 64
	if stepX < 1 {
		stepX = 1
	}
	if stepY < 1 {
		stepY = 1
	}

	var total, samples float64
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y += stepY {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x += stepX {
			c := luminance(img, x, y)
			dx := luminance(img, x+1, y) - c
			dy := luminance(img, x, y+1) - c
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			total += dx + dy
			samples++
		}
	}
	if samples == 0 {
		return 0
	}
	return total / samples
}

func luminance(img image.Image, x, y int) float64 {
	r, g, b, _ := img.At(x, y).RGBA()
	return 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
}

func absDiff(a, b uint32) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
