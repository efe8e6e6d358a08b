package perception

import (
	"context"
	"sync"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
)

// Detection category names used in errors and logs.
const (
	CategoryFaces     = "faces"
	CategoryBodies    = "bodies"
	CategoryObjects   = "objects"
	CategoryHorizon   = "horizon"
	CategoryLuminance = "luminance"
)

// Provider is the interface perception backends implement. Each method is one
// request/response call for a single category; a backend that does not support
// a category returns ErrUnavailable (wrapped or bare).
type Provider interface {
	// DetectFaces finds faces in the frame, in the provider's own ranked order.
	DetectFaces(ctx context.Context, f *frame.Frame) ([]Face, error)

	// DetectBodies finds body poses in the frame.
	DetectBodies(ctx context.Context, f *frame.Frame) ([]BodyPose, error)

	// DetectObjects finds generic rectangle-like observations.
	DetectObjects(ctx context.Context, f *frame.Frame) ([]Object, error)

	// DetectHorizon measures horizon tilt, or returns nil if none is visible.
	DetectHorizon(ctx context.Context, f *frame.Frame) (*Horizon, error)

	// MeasureLuminance computes the brightness/contrast/clipping summary.
	MeasureLuminance(ctx context.Context, f *frame.Frame) (*Luminance, error)

	// Close releases backend resources.
	Close() error
}

// Gather runs all five category requests against the provider and collects
// whatever succeeded. Categories run concurrently; a failure in one never
// aborts the others. The returned Results is always usable — failed
// categories contribute nothing and are recorded in Results.Partial.
func Gather(ctx context.Context, p Provider, f *frame.Frame) Results {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		res Results
	)

	fail := func(category string, err error) {
		mu.Lock()
		res.Partial = append(res.Partial, WrapCategory(category, err))
		mu.Unlock()
	}

	wg.Add(5)

	go func() {
		defer wg.Done()
		faces, err := p.DetectFaces(ctx, f)
		if err != nil {
			fail(CategoryFaces, err)
			return
		}
		mu.Lock()
		res.Faces = faces
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		bodies, err := p.DetectBodies(ctx, f)
		if err != nil {
			fail(CategoryBodies, err)
			return
		}
		mu.Lock()
		res.Bodies = bodies
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		objects, err := p.DetectObjects(ctx, f)
		if err != nil {
			fail(CategoryObjects, err)
			return
		}
		mu.Lock()
		res.Objects = objects
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		horizon, err := p.DetectHorizon(ctx, f)
		if err != nil {
			fail(CategoryHorizon, err)
			return
		}
		mu.Lock()
		res.Horizon = horizon
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		lum, err := p.MeasureLuminance(ctx, f)
		if err != nil {
			fail(CategoryLuminance, err)
			return
		}
		mu.Lock()
		res.Luminance = lum
		mu.Unlock()
	}()

	wg.Wait()
	return res
}
