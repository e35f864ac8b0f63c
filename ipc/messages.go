package ipc

import "github.com/gitwars/tankbot/model"

// These constants must stay in sync with the engine's bot bridge.
const (
	TypeHello  = "hello"
	TypeAck    = "ack"
	TypeFrame  = "frame"
	TypeAction = "action"
)

type HelloMessage struct {
	TankID int    `json:"tank_id"`
	Name   string `json:"name"`
}

type AckMessage struct {
	Status  string `json:"status"`
	Session string `json:"session,omitempty"`
}

// FrameMessage carries one frame's snapshot. Frame numbers let the engine
// discard late replies.
type FrameMessage struct {
	Frame    uint64         `json:"frame"`
	Snapshot model.Snapshot `json:"snapshot"`
}
