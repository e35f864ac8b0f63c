package rules

import (
	"math"

	"github.com/gitwars/tankbot/model"
)

// RuleEnv wraps one frame and exposes helper methods callable from expr
// conditions. Methods never fail on empty sequences or missing sensors.
type RuleEnv struct {
	State    model.Snapshot
	Doctrine Doctrine
	Rand     Rand
}

func (e RuleEnv) HasSensors() bool { return e.State.Sensors != nil }

// FrontDistance and its siblings return +Inf when no sensor data is present.
func (e RuleEnv) FrontDistance() float64 {
	if e.State.Sensors == nil {
		return math.Inf(1)
	}
	return e.State.Sensors.Front
}

func (e RuleEnv) LeftDistance() float64 {
	if e.State.Sensors == nil {
		return math.Inf(1)
	}
	return e.State.Sensors.Left
}

func (e RuleEnv) RightDistance() float64 {
	if e.State.Sensors == nil {
		return math.Inf(1)
	}
	return e.State.Sensors.Right
}

func (e RuleEnv) Mode() string     { return e.State.Mode.String() }
func (e RuleEnv) IsScramble() bool { return e.State.Mode == model.Scramble }
func (e RuleEnv) IsCombat() bool   { return e.State.Mode.Combat() }

func (e RuleEnv) Ammo() int { return e.State.Me.Ammo }

func (e RuleEnv) CoinCount() int   { return len(e.State.Coins) }
func (e RuleEnv) EnemyCount() int  { return len(e.State.Enemies) }
func (e RuleEnv) BulletCount() int { return len(e.State.Bullets) }

// NearestCoin returns the closest coin, first in sequence order on ties.
func (e RuleEnv) NearestCoin() (model.Coin, float64, bool) {
	i, d := model.Nearest(e.State.Me.Pos(), e.State.Coins, model.Coin.Pos)
	if i < 0 {
		return model.Coin{}, d, false
	}
	return e.State.Coins[i], d, true
}

// NearestEnemy returns the closest enemy, first in sequence order on ties.
func (e RuleEnv) NearestEnemy() (model.Enemy, float64, bool) {
	i, d := model.Nearest(e.State.Me.Pos(), e.State.Enemies, model.Enemy.Pos)
	if i < 0 {
		return model.Enemy{}, d, false
	}
	return e.State.Enemies[i], d, true
}

// NearestCoinDistance is +Inf when there are no coins.
func (e RuleEnv) NearestCoinDistance() float64 {
	_, d, _ := e.NearestCoin()
	return d
}

// NearestEnemyDistance is +Inf when there are no enemies.
func (e RuleEnv) NearestEnemyDistance() float64 {
	_, d, _ := e.NearestEnemy()
	return d
}

// Threatens applies the closing-distance test: the bullet is dangerous if
// its position Lookahead ticks from now is nearer than it is now, and it
// is currently within twice the danger radius.
func (e RuleEnv) Threatens(b model.Bullet) bool {
	me := e.State.Me.Pos()
	now := model.Distance(me, b.Pos())
	future := model.Distance(me, b.Pos().Add(b.Velocity().Scale(e.Doctrine.Lookahead)))
	return future < now && now < 2*e.Doctrine.DangerRadius
}

// DangerousBullet returns the first threatening bullet in sequence order.
func (e RuleEnv) DangerousBullet() (model.Bullet, bool) {
	for _, b := range e.State.Bullets {
		if e.Threatens(b) {
			return b, true
		}
	}
	return model.Bullet{}, false
}

func (e RuleEnv) HasThreat() bool {
	_, ok := e.DangerousBullet()
	return ok
}

// ArenaCenter is where combat tanks regroup once no enemies remain.
func (e RuleEnv) ArenaCenter() model.Vec {
	return model.Vec{X: e.Doctrine.ArenaWidth / 2, Y: e.Doctrine.ArenaHeight / 2}
}

// roll draws from the injected source. Without one every draw is 0.5:
// no aim jitter, and close-quarters fire rather than retreat.
func (e RuleEnv) roll() float64 {
	if e.Rand == nil {
		return 0.5
	}
	return e.Rand.Float64()
}
