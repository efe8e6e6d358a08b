package hub

import (
	"testing"
	"time"
)

func newTestClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan Message, 1)}
}

// assertDone fails when fn does not return promptly.
func assertDone(t *testing.T, name string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("%s blocked after Stop", name)
	}
}

func waitClientCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("client count: got %d, want %d", h.ClientCount(), want)
}

func TestStop_UnregisterDoesNotBlock(t *testing.T) {
	h := New("test")
	go h.Run()

	c := newTestClient(h)
	h.registerClient(c)
	waitClientCount(t, h, 1)

	h.Stop()

	// The run loop closes every connected client's send channel on Stop.
	select {
	case _, ok := <-c.send:
		if ok {
			t.Fatal("expected a closed send channel, got a message")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on Stop")
	}

	// The read pump's exit path must return once the run loop is gone,
	// otherwise every client connected at shutdown leaks its goroutine.
	assertDone(t, "unregister", func() { h.unregisterClient(c) })
}

func TestStop_RegisterAfterStopRefusesClient(t *testing.T) {
	h := New("test")
	h.Stop()

	c := newTestClient(h)
	assertDone(t, "register", func() { h.registerClient(c) })

	if _, ok := <-c.send; ok {
		t.Fatal("refused client's send channel should be closed")
	}
	if got := h.ClientCount(); got != 0 {
		t.Errorf("client count after refused register: got %d, want 0", got)
	}
}

func TestBroadcast_EvictsSlowClient(t *testing.T) {
	h := New("test")
	go h.Run()
	defer h.Stop()

	c := newTestClient(h)
	h.registerClient(c)
	waitClientCount(t, h, 1)

	// The test client's buffer holds one message; the second broadcast
	// finds it full and evicts.
	h.Broadcast(NewJSONMessage([]byte(`{"n":1}`)))
	h.Broadcast(NewJSONMessage([]byte(`{"n":2}`)))
	waitClientCount(t, h, 0)
}
