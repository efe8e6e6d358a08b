// Package local provides an on-device perception backend built on OpenCV.
// It supports the faces and luminance categories; body-pose, object, and
// horizon detection require the external perception service and report
// ErrUnavailable here, which the fusion step treats as an empty contribution.
package local

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

// Config holds local detector configuration.
type Config struct {
	ModelPath        string  // Path to YuNet ONNX model
	ConfidenceThresh float64 // Minimum face confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// Provider runs YuNet face detection and luminance extraction in-process.
type Provider struct {
	detector gocv.FaceDetectorYN
	config   Config
	mu       sync.Mutex // Protects inference
}

// New creates a local provider. The YuNet model file must exist.
func New(cfg Config) (*Provider, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"", // No config file needed for ONNX
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // Top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &Provider{
		detector: detector,
		config:   cfg,
	}, nil
}

// matFromFrame decodes the borrowed frame into a BGR Mat. The caller must
// Close the returned Mat before the analysis call returns.
func matFromFrame(f *frame.Frame) (gocv.Mat, error) {
	if f == nil || len(f.Pixels) == 0 {
		return gocv.Mat{}, perception.ErrNoFrame
	}

	switch f.Format {
	case frame.FormatJPEG:
		img, err := gocv.IMDecode(f.Pixels, gocv.IMReadColor)
		if err != nil {
			return gocv.Mat{}, fmt.Errorf("decode jpeg: %w", err)
		}
		if img.Empty() {
			img.Close()
			return gocv.Mat{}, fmt.Errorf("empty image")
		}
		return img, nil
	case frame.FormatBGR:
		img, err := gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8UC3, f.Pixels)
		if err != nil {
			return gocv.Mat{}, fmt.Errorf("wrap bgr pixels: %w", err)
		}
		return img, nil
	default:
		return gocv.Mat{}, fmt.Errorf("unsupported pixel format %s", f.Format)
	}
}

// DetectFaces finds faces in the frame using YuNet.
func (p *Provider) DetectFaces(ctx context.Context, f *frame.Frame) ([]perception.Face, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	img, err := matFromFrame(f)
	if err != nil {
		return nil, perception.WrapCategory(perception.CategoryFaces, err)
	}
	defer img.Close()

	imgW := float64(img.Cols())
	imgH := float64(img.Rows())

	p.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	p.detector.Detect(img, &faces)

	// YuNet output format (15 columns):
	// 0-3: x, y, w, h (bounding box in pixels)
	// 4-13: 5 facial landmarks (x,y pairs)
	// 14: face score
	var out []perception.Face
	for r := 0; r < faces.Rows(); r++ {
		x := float64(faces.GetFloatAt(r, 0))
		y := float64(faces.GetFloatAt(r, 1))
		w := float64(faces.GetFloatAt(r, 2))
		h := float64(faces.GetFloatAt(r, 3))
		score := float64(faces.GetFloatAt(r, 14))

		out = append(out, perception.Face{
			Box: geometry.Rect{
				X: x / imgW,
				Y: y / imgH,
				W: w / imgW,
				H: h / imgH,
			},
			Confidence: score,
		})
	}

	return out, nil
}

// DetectBodies is not supported locally.
func (p *Provider) DetectBodies(ctx context.Context, f *frame.Frame) ([]perception.BodyPose, error) {
	return nil, perception.WrapCategory(perception.CategoryBodies, perception.ErrUnavailable)
}

// DetectObjects is not supported locally.
func (p *Provider) DetectObjects(ctx context.Context, f *frame.Frame) ([]perception.Object, error) {
	return nil, perception.WrapCategory(perception.CategoryObjects, perception.ErrUnavailable)
}

// DetectHorizon is not supported locally.
func (p *Provider) DetectHorizon(ctx context.Context, f *frame.Frame) (*perception.Horizon, error) {
	return nil, perception.WrapCategory(perception.CategoryHorizon, perception.ErrUnavailable)
}

// Close releases the detector resources.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.detector.Close()
	return nil
}

// Verify Provider implements the perception contract at compile time.
var _ perception.Provider = (*Provider)(nil)
