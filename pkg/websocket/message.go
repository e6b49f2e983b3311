package websocket

import "time"

// Envelope wraps every message pushed to clients; Type tells the UI how to read Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
