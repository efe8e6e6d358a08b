package perception

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
)

const (
	streamHandshakeTimeout = 10 * time.Second
	streamReadWait         = 30 * time.Second
	streamMaxMessageSize   = 1024 * 1024
)

// detectionEvent is the wire format pushed by streaming perception services.
type detectionEvent struct {
	Faces     []Face     `json:"faces"`
	Bodies    []BodyPose `json:"bodies"`
	Objects   []Object   `json:"objects"`
	Horizon   *Horizon   `json:"horizon"`
	Luminance *Luminance `json:"luminance"`
}

// Stream subscribes to a perception service that pushes detection events over
// a websocket instead of answering per-frame requests. It keeps only the most
// recent event (latest-wins) and serves it through the Provider interface, so
// the fusion step treats pushed and polled results identically.
type Stream struct {
	url    string
	logger *slog.Logger

	ws     *websocket.Conn
	wsMu   sync.Mutex
	closed bool

	mu       sync.RWMutex
	latest   detectionEvent
	lastSeen time.Time

	// MaxAge bounds how stale the latest event may be before categories
	// report ErrUnavailable. Zero means no staleness check.
	MaxAge time.Duration
}

// NewStream creates a stream subscriber for the given websocket URL.
func NewStream(url string, logger *slog.Logger) *Stream {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stream{
		url:    url,
		logger: logger.With("component", "perception.stream"),
		MaxAge: 2 * time.Second,
	}
}

// Connect dials the service and starts the read loop.
func (s *Stream) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: streamHandshakeTimeout,
	}

	ws, _, err := dialer.Dial(s.url, nil)
	if err != nil {
		return fmt.Errorf("perception stream connect: %w", err)
	}

	s.wsMu.Lock()
	s.ws = ws
	s.wsMu.Unlock()

	go s.readLoop()
	return nil
}

func (s *Stream) readLoop() {
	s.wsMu.Lock()
	ws := s.ws
	s.wsMu.Unlock()

	ws.SetReadLimit(streamMaxMessageSize)

	for {
		ws.SetReadDeadline(time.Now().Add(streamReadWait))
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if !s.isClosed() {
				s.logger.Warn("detection stream read failed", "error", err)
			}
			return
		}

		var event detectionEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			s.logger.Warn("malformed detection event", "error", err)
			continue
		}

		s.mu.Lock()
		s.latest = event
		s.lastSeen = time.Now()
		s.mu.Unlock()
	}
}

func (s *Stream) isClosed() bool {
	s.wsMu.Lock()
	defer s.wsMu.Unlock()
	return s.closed
}

// snapshot returns the latest event, or an error when none is fresh enough.
func (s *Stream) snapshot(category string) (detectionEvent, error) {
	if s.isClosed() {
		return detectionEvent{}, WrapCategory(category, ErrStreamClosed)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastSeen.IsZero() {
		return detectionEvent{}, WrapCategory(category, ErrUnavailable)
	}
	if s.MaxAge > 0 && time.Since(s.lastSeen) > s.MaxAge {
		return detectionEvent{}, WrapCategory(category, ErrUnavailable)
	}
	return s.latest, nil
}

// DetectFaces returns faces from the most recent pushed event.
func (s *Stream) DetectFaces(ctx context.Context, f *frame.Frame) ([]Face, error) {
	event, err := s.snapshot(CategoryFaces)
	if err != nil {
		return nil, err
	}
	return event.Faces, nil
}

// DetectBodies returns body poses from the most recent pushed event.
func (s *Stream) DetectBodies(ctx context.Context, f *frame.Frame) ([]BodyPose, error) {
	event, err := s.snapshot(CategoryBodies)
	if err != nil {
		return nil, err
	}
	return event.Bodies, nil
}

// DetectObjects returns objects from the most recent pushed event.
func (s *Stream) DetectObjects(ctx context.Context, f *frame.Frame) ([]Object, error) {
	event, err := s.snapshot(CategoryObjects)
	if err != nil {
		return nil, err
	}
	return event.Objects, nil
}

// DetectHorizon returns the horizon from the most recent pushed event.
func (s *Stream) DetectHorizon(ctx context.Context, f *frame.Frame) (*Horizon, error) {
	event, err := s.snapshot(CategoryHorizon)
	if err != nil {
		return nil, err
	}
	return event.Horizon, nil
}

// MeasureLuminance returns luminance from the most recent pushed event.
func (s *Stream) MeasureLuminance(ctx context.Context, f *frame.Frame) (*Luminance, error) {
	event, err := s.snapshot(CategoryLuminance)
	if err != nil {
		return nil, err
	}
	if event.Luminance == nil {
		return nil, WrapCategory(CategoryLuminance, ErrUnavailable)
	}
	return event.Luminance, nil
}

// Close stops the read loop and closes the connection.
func (s *Stream) Close() error {
	s.wsMu.Lock()
	defer s.wsMu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.ws != nil {
		s.ws.WriteMessage(websocket.CloseMessage, []byte{})
		return s.ws.Close()
	}
	return nil
}

// Verify Stream implements Provider at compile time.
var _ Provider = (*Stream)(nil)
