package local

import (
	"context"
	"math"

	"gocv.io/x/gocv"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

// Clipping thresholds on the 8-bit grayscale histogram. Pixels at or above
// the highlight threshold count as blown highlights, at or below the shadow
// threshold as crushed shadows.
const (
	highlightThreshold = 250
	shadowThreshold    = 5
)

// MeasureLuminance computes the brightness/contrast/clipping summary from the
// frame's grayscale statistics.
func (p *Provider) MeasureLuminance(ctx context.Context, f *frame.Frame) (*perception.Luminance, error) {
	img, err := matFromFrame(f)
	if err != nil {
		return nil, perception.WrapCategory(perception.CategoryLuminance, err)
	}
	defer img.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	mean := gocv.NewMat()
	stddev := gocv.NewMat()
	defer mean.Close()
	defer stddev.Close()
	gocv.MeanStdDev(gray, &mean, &stddev)

	brightness := geometry.Clamp01(mean.GetDoubleAt(0, 0) / 255.0)
	contrast := geometry.Clamp01(stddev.GetDoubleAt(0, 0) / 128.0)

	total := float64(gray.Rows() * gray.Cols())
	if total == 0 {
		return nil, perception.WrapCategory(perception.CategoryLuminance, perception.ErrNoFrame)
	}

	highlights := clippedFraction(gray, highlightThreshold, 255, gocv.ThresholdBinary, total)
	shadows := clippedFraction(gray, shadowThreshold, 255, gocv.ThresholdBinaryInv, total)

	// EV relative to a mid-gray scene: log2 of measured vs target brightness.
	ev := 0.0
	if brightness > 0 {
		ev = math.Log2(brightness / 0.5)
	} else {
		ev = -4.0
	}

	return &perception.Luminance{
		EV:                ev,
		Brightness:        &brightness,
		Contrast:          &contrast,
		HighlightClipping: &highlights,
		ShadowClipping:    &shadows,
	}, nil
}

func clippedFraction(gray gocv.Mat, thresh, max float32, typ gocv.ThresholdType, total float64) float64 {
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Threshold(gray, &dst, thresh, max, typ)
	return float64(gocv.CountNonZero(dst)) / total
}
