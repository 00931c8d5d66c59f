package websocket

import "encoding/json"

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventProgress Event = "progress"
	EventComplete Event = "complete"
	EventPing     Event = "ping"
)

// ProgressFrame forwards one diagram progress payload to the client.
// Data is the raw JSON published by the worker, passed through untouched.
type ProgressFrame struct {
	Event Event  `json:"event"`
	Data  string `json:"data"`
}

type PingFrame struct {
	Event Event `json:"event"`
}

// FrameFor wraps a published progress payload in the typed frame matching
// its declared type, so clients can key off the frame event alone. Payloads
// without a recognizable type ride along as progress frames.
func FrameFor(payload string) ProgressFrame {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(payload), &head); err == nil && head.Type == "complete" {
		return ProgressFrame{Event: EventComplete, Data: payload}
	}
	return ProgressFrame{Event: EventProgress, Data: payload}
}
