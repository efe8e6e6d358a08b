// Package frame defines the borrowed camera-frame handle the assistance
// engine analyzes. The capture layer owns the pixel data; the engine only
// reads it for the duration of a single analysis call and never retains it.
package frame

import "time"

// PixelFormat tags the pixel layout of a frame.
type PixelFormat uint32

const (
	FormatUnknown PixelFormat = iota
	FormatJPEG
	FormatYUV420
	FormatNV12
	FormatBGR
	FormatRGBA
)

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatYUV420:
		return "yuv420"
	case FormatNV12:
		return "nv12"
	case FormatBGR:
		return "bgr"
	case FormatRGBA:
		return "rgba"
	default:
		return "unknown"
	}
}

// Frame is an opaque handle to one camera frame.
type Frame struct {
	Width  int
	Height int
	Format PixelFormat

	// Pixels is borrowed from the capture layer. Callers must not hold a
	// reference past the analysis call that received it.
	Pixels []byte

	// Timestamp is when the capture layer delivered the frame.
	Timestamp time.Time
}

// Clone returns a frame with its own copy of the pixel data, safe to hold
// past the analysis call that borrowed the original.
func (f *Frame) Clone() *Frame {
	c := *f
	c.Pixels = append([]byte(nil), f.Pixels...)
	return &c
}

// Fingerprint is a cheap O(1) identity hash over the frame metadata.
// Deliberately not a pixel hash: the stability estimator only needs to
// notice geometry/format changes without touching pixel data.
func (f *Frame) Fingerprint() uint64 {
	fp := uint64(f.Width)
	fp ^= uint64(f.Height) << 16
	fp ^= uint64(f.Format) << 32
	return fp
}
