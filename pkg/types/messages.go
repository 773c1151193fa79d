package types

import "github.com/fantalega/market-backend/internal/market"

// ClientMessage is one command over the wire. Type matches the engine's
// command names ("Nominate", "PlaceBid", "MarkReady", ...); the member
// identity comes from the connection, never from the payload.
type ClientMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id,omitempty"`
	Amount   int    `json:"amount,omitempty"`
	Seconds  int    `json:"seconds,omitempty"`
	TargetID string `json:"target_id,omitempty"`
}

// ServerMessage is either a full session snapshot or a command error.
type ServerMessage struct {
	Type     string           `json:"type"` // "StateSnapshot" | "Error"
	Snapshot *market.Snapshot `json:"snapshot,omitempty"`
	Error    string           `json:"error,omitempty"`
}
