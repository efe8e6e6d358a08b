package perception

import (
	"context"
	"sync"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
)

// Mock implements Provider for testing. Unset category funcs report
// ErrUnavailable, matching a service that does not support the category.
type Mock struct {
	FacesFunc     func(ctx context.Context, f *frame.Frame) ([]Face, error)
	BodiesFunc    func(ctx context.Context, f *frame.Frame) ([]BodyPose, error)
	ObjectsFunc   func(ctx context.Context, f *frame.Frame) ([]Object, error)
	HorizonFunc   func(ctx context.Context, f *frame.Frame) (*Horizon, error)
	LuminanceFunc func(ctx context.Context, f *frame.Frame) (*Luminance, error)

	mu    sync.Mutex
	calls map[string]int
}

// NewMock creates a mock provider with fixed results for every category.
func NewMock(res Results) *Mock {
	return &Mock{
		FacesFunc: func(ctx context.Context, f *frame.Frame) ([]Face, error) {
			return res.Faces, nil
		},
		BodiesFunc: func(ctx context.Context, f *frame.Frame) ([]BodyPose, error) {
			return res.Bodies, nil
		},
		ObjectsFunc: func(ctx context.Context, f *frame.Frame) ([]Object, error) {
			return res.Objects, nil
		},
		HorizonFunc: func(ctx context.Context, f *frame.Frame) (*Horizon, error) {
			return res.Horizon, nil
		},
		LuminanceFunc: func(ctx context.Context, f *frame.Frame) (*Luminance, error) {
			if res.Luminance == nil {
				return nil, WrapCategory(CategoryLuminance, ErrUnavailable)
			}
			return res.Luminance, nil
		},
	}
}

// DetectFaces calls FacesFunc and records the call.
func (m *Mock) DetectFaces(ctx context.Context, f *frame.Frame) ([]Face, error) {
	m.record(CategoryFaces)
	if m.FacesFunc != nil {
		return m.FacesFunc(ctx, f)
	}
	return nil, WrapCategory(CategoryFaces, ErrUnavailable)
}

// DetectBodies calls BodiesFunc and records the call.
func (m *Mock) DetectBodies(ctx context.Context, f *frame.Frame) ([]BodyPose, error) {
	m.record(CategoryBodies)
	if m.BodiesFunc != nil {
		return m.BodiesFunc(ctx, f)
	}
	return nil, WrapCategory(CategoryBodies, ErrUnavailable)
}

// DetectObjects calls ObjectsFunc and records the call.
func (m *Mock) DetectObjects(ctx context.Context, f *frame.Frame) ([]Object, error) {
	m.record(CategoryObjects)
	if m.ObjectsFunc != nil {
		return m.ObjectsFunc(ctx, f)
	}
	return nil, WrapCategory(CategoryObjects, ErrUnavailable)
}

// DetectHorizon calls HorizonFunc and records the call.
func (m *Mock) DetectHorizon(ctx context.Context, f *frame.Frame) (*Horizon, error) {
	m.record(CategoryHorizon)
	if m.HorizonFunc != nil {
		return m.HorizonFunc(ctx, f)
	}
	return nil, WrapCategory(CategoryHorizon, ErrUnavailable)
}

// MeasureLuminance calls LuminanceFunc and records the call.
func (m *Mock) MeasureLuminance(ctx context.Context, f *frame.Frame) (*Luminance, error) {
	m.record(CategoryLuminance)
	if m.LuminanceFunc != nil {
		return m.LuminanceFunc(ctx, f)
	}
	return nil, WrapCategory(CategoryLuminance, ErrUnavailable)
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}

func (m *Mock) record(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[category]++
}

// CallCount returns how many times a category was requested.
func (m *Mock) CallCount(category string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[category]
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
