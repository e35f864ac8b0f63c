package ipc

import "github.com/gitwars/tankbot/model"

// ActionMessage is the wire form of a model.Action. DX/DY are set for
// MOVE, Angle for SHOOT.
type ActionMessage struct {
	Frame  uint64  `json:"frame"`
	Action string  `json:"action"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Angle  float64 `json:"angle"`
}

// EncodeAction flattens an action for the wire. A nil action is sent as STOP.
func EncodeAction(frame uint64, a model.Action) ActionMessage {
	msg := ActionMessage{Frame: frame, Action: model.KindStop}
	switch a := a.(type) {
	case model.Move:
		msg.Action = model.KindMove
		msg.DX, msg.DY = a.Direction.X, a.Direction.Y
	case model.Shoot:
		msg.Action = model.KindShoot
		msg.Angle = a.Angle
	case model.Stop, nil:
	}
	return msg
}
