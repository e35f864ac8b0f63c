package ipc

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitwars/tankbot/model"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	env, err := NewEnvelope(TypeHello, HelloMessage{TankID: 3, Name: "rook"})
	require.NoError(t, err)
	require.NoError(t, WriteEnvelope(&buf, env))

	assert.Equal(t, uint32(buf.Len()-4), binary.LittleEndian.Uint32(buf.Bytes()[:4]))

	got, err := ReadEnvelope(&buf)
	require.NoError(t, err)
	assert.Equal(t, TypeHello, got.Type)

	var hello HelloMessage
	require.NoError(t, json.Unmarshal(got.Data, &hello))
	assert.Equal(t, HelloMessage{TankID: 3, Name: "rook"}, hello)
}

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	tests := []struct {
		name   string
		length uint32
	}{
		{"empty", 0},
		{"oversized", MaxMessageSize + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, tt.length))
			_, err := ReadEnvelope(&buf)
			assert.ErrorContains(t, err, "invalid message length")
		})
	}
}

func TestReadEnvelopeTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(50)))
	buf.WriteString(`{"type":"frame"`)

	_, err := ReadEnvelope(&buf)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadEnvelopeEOF(t *testing.T) {
	_, err := ReadEnvelope(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriteEnvelopeTooLarge(t *testing.T) {
	big := bytes.Repeat([]byte("a"), MaxMessageSize)
	env, err := NewEnvelope(TypeFrame, string(big))
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorContains(t, WriteEnvelope(&buf, env), "too large")
	assert.Zero(t, buf.Len())
}

func TestEncodeAction(t *testing.T) {
	tests := []struct {
		name   string
		action model.Action
		want   ActionMessage
	}{
		{"move", model.Move{Direction: model.Vec{X: 1, Y: -2}}, ActionMessage{Frame: 7, Action: "MOVE", DX: 1, DY: -2}},
		{"shoot", model.Shoot{Angle: 135}, ActionMessage{Frame: 7, Action: "SHOOT", Angle: 135}},
		{"stop", model.Stop{}, ActionMessage{Frame: 7, Action: "STOP"}},
		{"nil", nil, ActionMessage{Frame: 7, Action: "STOP"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeAction(7, tt.action))
		})
	}
}

func TestActionMessageWireFormat(t *testing.T) {
	raw, err := json.Marshal(EncodeAction(3, model.Shoot{Angle: 0}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"frame":3,"action":"SHOOT","dx":0,"dy":0,"angle":0}`, string(raw))
}

func TestFrameMessageDecodesEngineJSON(t *testing.T) {
	raw := `{"frame":42,"snapshot":{"me":{"x":10,"y":20,"angle":90,"health":80,"ammo":5,"coins":2},
		"enemies":[{"id":4,"x":100,"y":20}],"coins":[],"walls":[],"bullets":[],
		"sensors":{"front":120,"left":300,"right":40},"game_mode":3,"time_left":55.5}}`

	var msg FrameMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))
	assert.Equal(t, uint64(42), msg.Frame)
	assert.Equal(t, model.Duel, msg.Snapshot.Mode)
	require.NotNil(t, msg.Snapshot.Sensors)
	assert.Equal(t, 40.0, msg.Snapshot.Sensors.Right)
	assert.Len(t, msg.Snapshot.Enemies, 1)
}
