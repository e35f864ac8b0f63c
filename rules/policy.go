package rules

//go:generate go run go.uber.org/mock/mockgen -destination=./mocks/policy_mock.go -package=mocks . Policy

import (
	"math/rand/v2"
	"time"

	"github.com/gitwars/tankbot/model"
)

// Policy maps one frame snapshot to one action. Implementations must not
// mutate the snapshot or keep state between calls.
type Policy interface {
	Decide(s model.Snapshot) model.Action
}

// Rand is the random source behind the deliberately noisy branches
// (wander heading, aim jitter, retreat-or-shoot). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source. A zero seed draws one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Tactical is the reference heuristic bound to one tank's random source.
// The engine may be shared between tanks; the random source may not.
type Tactical struct {
	engine *Engine
	rng    Rand
}

// NewTactical binds engine to rng. A nil rng gets a clock-seeded source.
func NewTactical(engine *Engine, rng Rand) *Tactical {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Tactical{engine: engine, rng: rng}
}

func (t *Tactical) Decide(s model.Snapshot) model.Action {
	return t.engine.Decide(s, t.rng)
}
