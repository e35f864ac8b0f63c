package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gitwars/tankbot/ipc"
	"github.com/gitwars/tankbot/model"
	"github.com/gitwars/tankbot/rules"
)

// Options tunes how an Agent drives its policy.
type Options struct {
	Budget time.Duration

	// SynthesizeSensors fills in missing sensor readings by casting rays
	// against the snapshot's walls.
	SynthesizeSensors bool
	SensorRange       float64
}

// Agent owns the decision-making for a single tank session.
type Agent struct {
	Session uuid.UUID
	TankID  int
	Name    string

	guard   *Guard
	opts    Options
	ctx     context.Context
	baseLog *slog.Logger // session only
	log     *slog.Logger

	mu   sync.Mutex
	prev *frameSnapshot
}

func New(policy rules.Policy, opts Options) *Agent {
	if opts.SensorRange <= 0 {
		opts.SensorRange = model.SensorRange
	}
	session := uuid.New()
	log := slog.With("session", session.String())
	return &Agent{
		Session: session,
		guard:   NewGuard(policy, opts.Budget),
		opts:    opts,
		ctx:     context.Background(),
		baseLog: log,
		log:     log,
	}
}

// Serve answers hello and frame messages on conn until the stream ends.
func (a *Agent) Serve(ctx context.Context, conn *ipc.Connection) error {
	a.ctx = ctx
	conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	conn.RegisterHandler(ipc.TypeFrame, a.HandleFrame)
	a.log.Info("session started")
	return conn.ReadLoop()
}

// HandleHello completes the handshake so the engine knows the bot is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.mu.Lock()
	a.TankID = hello.TankID
	a.Name = hello.Name
	a.prev = nil
	a.mu.Unlock()

	a.log = a.baseLog.With("tank", hello.TankID)
	a.log.Info("tank identified", "name", hello.Name)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Session: a.Session.String()})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleFrame decides one frame and replies with the action.
func (a *Agent) HandleFrame(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.FrameMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal frame: %w", err)
	}

	action := a.Decide(a.ctx, msg.Frame, msg.Snapshot)

	reply, err := ipc.NewEnvelope(ipc.TypeAction, ipc.EncodeAction(msg.Frame, action))
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// Decide validates s, runs the guarded policy and logs what changed since
// the previous frame. It always returns an action.
func (a *Agent) Decide(ctx context.Context, frame uint64, s model.Snapshot) model.Action {
	if err := s.Validate(); err != nil {
		a.log.Warn("invalid frame, holding position", "frame", frame, "error", err)
		return model.Stop{}
	}

	if a.opts.SynthesizeSensors && s.Sensors == nil {
		sensors := model.CastSensors(s.Me, s.Walls, a.opts.SensorRange)
		s.Sensors = &sensors
	}

	a.trackEvents(frame, s)

	start := time.Now()
	action, err := a.guard.Decide(ctx, s)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, ErrPolicyPanic):
		a.log.Error("policy panic", "frame", frame, "error", err)
	case errors.Is(err, ErrBudgetExceeded):
		a.log.Warn("policy timeout", "frame", frame, "elapsed", elapsed, "error", err)
	case err != nil:
		a.log.Warn("policy aborted", "frame", frame, "error", err)
	}

	a.log.Debug("frame decided",
		"frame", frame,
		"mode", s.Mode,
		"action", action.Kind(),
		"elapsed", elapsed,
	)
	return action
}

func (a *Agent) trackEvents(frame uint64, s model.Snapshot) {
	a.mu.Lock()
	events := detectEvents(s, frame, a.prev)
	cur := takeSnapshot(s)
	a.prev = &cur
	a.mu.Unlock()

	if len(events) > 0 {
		a.log.Info("frame events", "frame", frame, "events", formatEvents(events))
	}
}
