package rules

import (
	"math"
	"testing"

	"github.com/gitwars/tankbot/model"
)

// seqRand replays a fixed sequence of draws, cycling when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func seq(vals ...float64) *seqRand { return &seqRand{vals: vals} }

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultDoctrine())
	if err != nil {
		t.Fatalf("NewEngine(DefaultDoctrine()) failed: %v", err)
	}
	return e
}

func assertMove(t *testing.T, act model.Action, want model.Vec) {
	t.Helper()
	mv, ok := act.(model.Move)
	if !ok {
		t.Fatalf("expected Move toward %v, got %T %+v", want, act, act)
	}
	if math.Abs(mv.Direction.X-want.X) > 1e-9 || math.Abs(mv.Direction.Y-want.Y) > 1e-9 {
		t.Errorf("Move direction = %v, want %v", mv.Direction, want)
	}
}

func assertShoot(t *testing.T, act model.Action, want float64) {
	t.Helper()
	sh, ok := act.(model.Shoot)
	if !ok {
		t.Fatalf("expected Shoot at %v°, got %T %+v", want, act, act)
	}
	if math.Abs(sh.Angle-want) > 1e-9 {
		t.Errorf("Shoot angle = %v, want %v", sh.Angle, want)
	}
}
