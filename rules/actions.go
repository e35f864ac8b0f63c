package rules

import (
	"github.com/gitwars/tankbot/model"
)

// ActionReverse backs straight away from a wall dead ahead.
func ActionReverse(env RuleEnv) (model.Action, bool) {
	return model.MoveAlong(env.State.Me.Angle + 180), true
}

// ActionSteerClear turns toward whichever side has more room. Left is the
// -30° ray, so turning left subtracts. Ties turn left.
func ActionSteerClear(env RuleEnv) (model.Action, bool) {
	s := env.State.Sensors
	if s == nil {
		return nil, false
	}
	facing := env.State.Me.Angle
	if s.Left >= s.Right {
		return model.MoveAlong(facing - env.Doctrine.TurnAngle), true
	}
	return model.MoveAlong(facing + env.Doctrine.TurnAngle), true
}

func ActionNudgeFromLeft(env RuleEnv) (model.Action, bool) {
	return model.MoveAlong(env.State.Me.Angle + env.Doctrine.NudgeAngle), true
}

func ActionNudgeFromRight(env RuleEnv) (model.Action, bool) {
	return model.MoveAlong(env.State.Me.Angle - env.Doctrine.NudgeAngle), true
}

// ActionDodge sidesteps the first dangerous bullet, perpendicular (+90°) to
// its direction of travel.
func ActionDodge(env RuleEnv) (model.Action, bool) {
	b, ok := env.DangerousBullet()
	if !ok {
		return nil, false
	}
	return model.MoveAlong(model.HeadingOf(b.Velocity()) + 90), true
}

// ActionHarass shoots the first enemy that is closer to our target coin
// than we are and within harass range. Declines if there is none.
func ActionHarass(env RuleEnv) (model.Action, bool) {
	coin, ourDist, ok := env.NearestCoin()
	if !ok {
		return nil, false
	}
	me := env.State.Me.Pos()
	for _, enemy := range env.State.Enemies {
		if model.Distance(enemy.Pos(), coin.Pos()) < ourDist &&
			model.Distance(me, enemy.Pos()) < env.Doctrine.HarassRange {
			return model.Shoot{Angle: model.Bearing(me, enemy.Pos())}, true
		}
	}
	return nil, false
}

func ActionCollectCoin(env RuleEnv) (model.Action, bool) {
	coin, _, ok := env.NearestCoin()
	if !ok {
		return nil, false
	}
	return model.MoveToward(env.State.Me.Pos(), coin.Pos()), true
}

// ActionRegroup heads for the arena center once no enemies remain.
func ActionRegroup(env RuleEnv) (model.Action, bool) {
	return model.MoveToward(env.State.Me.Pos(), env.ArenaCenter()), true
}

// ActionCloseQuarters either fires point blank or backs off, weighted by
// ShootChance.
func ActionCloseQuarters(env RuleEnv) (model.Action, bool) {
	enemy, _, ok := env.NearestEnemy()
	if !ok {
		return nil, false
	}
	bearing := model.Bearing(env.State.Me.Pos(), enemy.Pos())
	if env.roll() < env.Doctrine.ShootChance {
		return model.Shoot{Angle: bearing}, true
	}
	return model.MoveAlong(bearing + 180), true
}

// ActionEngage fires with up to ±AimJitter degrees of spray.
func ActionEngage(env RuleEnv) (model.Action, bool) {
	enemy, _, ok := env.NearestEnemy()
	if !ok {
		return nil, false
	}
	bearing := model.Bearing(env.State.Me.Pos(), enemy.Pos())
	jitter := (env.roll()*2 - 1) * env.Doctrine.AimJitter
	return model.Shoot{Angle: bearing + jitter}, true
}

func ActionPursue(env RuleEnv) (model.Action, bool) {
	enemy, _, ok := env.NearestEnemy()
	if !ok {
		return nil, false
	}
	return model.MoveToward(env.State.Me.Pos(), enemy.Pos()), true
}

// ActionWander picks a uniformly random heading in [0, 360).
func ActionWander(env RuleEnv) (model.Action, bool) {
	return model.MoveAlong(env.roll() * 360), true
}
