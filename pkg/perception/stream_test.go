package perception

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStream_ReadAfterCloseReportsStreamClosed(t *testing.T) {
	s := NewStream("ws://localhost/detections", nil)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	_, err := s.DetectFaces(context.Background(), testFrame())
	if !errors.Is(err, ErrStreamClosed) {
		t.Errorf("read after Close: got %v, want ErrStreamClosed", err)
	}
}

func TestStream_StaleEventReportsUnavailable(t *testing.T) {
	s := NewStream("ws://localhost/detections", nil)

	s.mu.Lock()
	s.latest = detectionEvent{Faces: []Face{{Confidence: 0.9}}}
	s.lastSeen = time.Now().Add(-5 * time.Second)
	s.mu.Unlock()

	if _, err := s.DetectFaces(context.Background(), testFrame()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("stale event: got %v, want ErrUnavailable", err)
	}

	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()

	faces, err := s.DetectFaces(context.Background(), testFrame())
	if err != nil {
		t.Fatalf("fresh event: unexpected error %v", err)
	}
	if len(faces) != 1 {
		t.Errorf("fresh event: got %d faces, want 1", len(faces))
	}
}
