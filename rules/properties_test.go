package rules

import (
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/gitwars/tankbot/model"
	"pgregory.net/rapid"
)

func coordGen() *rapid.Generator[float64] {
	return rapid.Float64Range(-1500, 1500)
}

func selfGen() *rapid.Generator[model.Self] {
	return rapid.Custom(func(t *rapid.T) model.Self {
		return model.Self{
			X:      coordGen().Draw(t, "x"),
			Y:      coordGen().Draw(t, "y"),
			Angle:  rapid.Float64Range(-360, 360).Draw(t, "angle"),
			Health: rapid.IntRange(0, 100).Draw(t, "health"),
			Ammo:   rapid.IntRange(0, 50).Draw(t, "ammo"),
		}
	})
}

func drawRand(t *rapid.T) *seqRand {
	return seq(rapid.Float64Range(0, 0.999999).Draw(t, "draw"))
}

func TestEmptyScrambleAlwaysMoves(t *testing.T) {
	engine := newTestEngine(t)
	rapid.Check(t, func(t *rapid.T) {
		s := model.Snapshot{Me: selfGen().Draw(t, "me"), Mode: model.Scramble}
		act := engine.Decide(s, drawRand(t))

		mv, ok := act.(model.Move)
		if !ok {
			t.Fatalf("expected Move for an empty scramble frame, got %T", act)
		}
		if math.Abs(mv.Direction.Len()-1) > 1e-9 {
			t.Fatalf("wander heading should be a unit vector, got %v", mv.Direction)
		}
	})
}

func TestDodgeIsPerpendicularToBullet(t *testing.T) {
	engine := newTestEngine(t)
	rapid.Check(t, func(t *rapid.T) {
		me := selfGen().Draw(t, "me")
		approach := rapid.Float64Range(0, 360).Draw(t, "approach")
		r := rapid.Float64Range(0.5, 99.5).Draw(t, "range")
		skew := rapid.Float64Range(-80, 80).Draw(t, "skew")
		speed := rapid.Float64Range(0.1, 25).Draw(t, "speed")

		pos := me.Pos().Add(model.Heading(approach).Scale(r))
		vel := model.Heading(approach + 180 + skew).Scale(speed)
		b := model.Bullet{X: pos.X, Y: pos.Y, VX: vel.X, VY: vel.Y}

		s := model.Snapshot{Me: me, Bullets: []model.Bullet{b}, Mode: model.Duel}
		env := RuleEnv{State: s, Doctrine: engine.Doctrine()}
		if !env.Threatens(b) {
			return
		}

		act := engine.Decide(s, drawRand(t))
		mv, ok := act.(model.Move)
		if !ok {
			t.Fatalf("expected dodge Move, got %T %+v", act, act)
		}
		if dot := mv.Direction.Dot(vel); math.Abs(dot) > 1e-9*vel.Len() {
			t.Fatalf("dodge %v not perpendicular to velocity %v (dot %v)", mv.Direction, vel, dot)
		}
	})
}

func TestCoinChoiceIgnoresOrder(t *testing.T) {
	engine := newTestEngine(t)
	rapid.Check(t, func(t *rapid.T) {
		me := selfGen().Draw(t, "me")
		coin := rapid.Custom(func(t *rapid.T) model.Coin {
			return model.Coin{X: coordGen().Draw(t, "x"), Y: coordGen().Draw(t, "y")}
		})
		coins := rapid.SliceOfNDistinct(coin, 1, 15, func(c model.Coin) float64 {
			return model.Distance(me.Pos(), c.Pos())
		}).Draw(t, "coins")
		shuffled := rapid.Permutation(coins).Draw(t, "shuffled")

		a := engine.Decide(model.Snapshot{Me: me, Coins: coins, Mode: model.Scramble}, seq(0.5))
		b := engine.Decide(model.Snapshot{Me: me, Coins: shuffled, Mode: model.Scramble}, seq(0.5))
		if a != b {
			t.Fatalf("coin choice depends on order: %+v vs %+v", a, b)
		}
	})
}

func TestDecideDoesNotMutateSnapshot(t *testing.T) {
	engine := newTestEngine(t)
	rapid.Check(t, func(t *rapid.T) {
		point := rapid.Custom(func(t *rapid.T) model.Vec {
			return model.Vec{X: coordGen().Draw(t, "x"), Y: coordGen().Draw(t, "y")}
		})
		s := model.Snapshot{
			Me:   selfGen().Draw(t, "me"),
			Mode: model.GameMode(rapid.IntRange(1, 3).Draw(t, "mode")),
		}
		for i, p := range rapid.SliceOfN(point, 0, 5).Draw(t, "enemies") {
			s.Enemies = append(s.Enemies, model.Enemy{ID: i, X: p.X, Y: p.Y})
		}
		for _, p := range rapid.SliceOfN(point, 0, 5).Draw(t, "coins") {
			s.Coins = append(s.Coins, model.Coin{X: p.X, Y: p.Y})
		}
		for _, p := range rapid.SliceOfN(point, 0, 5).Draw(t, "bullets") {
			s.Bullets = append(s.Bullets, model.Bullet{X: p.X, Y: p.Y, VX: -p.X / 100, VY: -p.Y / 100})
		}
		if rapid.Bool().Draw(t, "sensors") {
			s.Sensors = &model.Sensors{
				Front: rapid.Float64Range(0, 300).Draw(t, "front"),
				Left:  rapid.Float64Range(0, 300).Draw(t, "left"),
				Right: rapid.Float64Range(0, 300).Draw(t, "right"),
			}
		}

		before := s
		before.Enemies = slices.Clone(s.Enemies)
		before.Coins = slices.Clone(s.Coins)
		before.Bullets = slices.Clone(s.Bullets)
		if s.Sensors != nil {
			sensors := *s.Sensors
			before.Sensors = &sensors
		}

		act := engine.Decide(s, drawRand(t))
		if act == nil {
			t.Fatal("Decide returned nil action")
		}
		if !reflect.DeepEqual(before, s) {
			t.Fatalf("snapshot mutated:\nbefore %+v\nafter  %+v", before, s)
		}
	})
}
