package websocket

import "encoding/json"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only client-to-server message shape; the stream
// is otherwise server-push.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventSchedule Event = "schedule"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// ScheduleEvent carries a full schedule snapshot (an encoded
// model.ScheduleView). One is sent on connect and another after every
// selection mutation of the planner.
type ScheduleEvent struct {
	Event    Event           `json:"event"`
	Schedule json.RawMessage `json:"schedule"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
