// Package hub provides a thread-safe websocket broadcast hub
// using the idiomatic Go channel-based fan-out pattern.
package hub

// Event names carried in the JSON envelope.
const (
	EventSnapshot     = "snapshot"
	EventCameraConfig = "camera_config"
)

// Envelope wraps every JSON broadcast so clients can dispatch on the event
// name without sniffing payload shapes.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Message is one pre-encoded JSON broadcast.
type Message struct {
	Data []byte
}

// NewJSONMessage creates a message from pre-encoded JSON bytes.
func NewJSONMessage(data []byte) Message {
	return Message{Data: data}
}
