package rules

import (
	"fmt"
	"strconv"
)

// CompileDoctrine generates the reference rule set from a doctrine.
// Thresholds are interpolated into the conditions with num, so the
// compiler never generates invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	// --- Obstacle reflex (skipped entirely without sensor data) ---

	rules = append(rules, &Rule{
		Name:         "emergency-reverse",
		Priority:     1000,
		ConditionSrc: fmt.Sprintf(`HasSensors() && FrontDistance() < %s`, num(d.EmergencyDistance)),
		Decide:       ActionReverse,
	})

	rules = append(rules, &Rule{
		Name:         "steer-clear",
		Priority:     990,
		ConditionSrc: fmt.Sprintf(`HasSensors() && FrontDistance() < %s`, num(d.AvoidDistance)),
		Decide:       ActionSteerClear,
	})

	rules = append(rules, &Rule{
		Name:         "nudge-from-left",
		Priority:     980,
		ConditionSrc: fmt.Sprintf(`HasSensors() && LeftDistance() < %s`, num(d.SideDistance)),
		Decide:       ActionNudgeFromLeft,
	})

	rules = append(rules, &Rule{
		Name:         "nudge-from-right",
		Priority:     970,
		ConditionSrc: fmt.Sprintf(`HasSensors() && RightDistance() < %s`, num(d.SideDistance)),
		Decide:       ActionNudgeFromRight,
	})

	// --- Threat avoidance ---

	rules = append(rules, &Rule{
		Name:         "dodge-bullet",
		Priority:     900,
		ConditionSrc: `BulletCount() > 0 && HasThreat()`,
		Decide:       ActionDodge,
	})

	// --- Scramble ---

	if d.Harass {
		rules = append(rules, &Rule{
			Name:         "harass-coin-rival",
			Priority:     800,
			ConditionSrc: fmt.Sprintf(`IsScramble() && CoinCount() > 0 && EnemyCount() > 0 && Ammo() > %d`, d.HarassMinAmmo),
			Decide:       ActionHarass,
		})
	}

	rules = append(rules, &Rule{
		Name:         "collect-coin",
		Priority:     790,
		ConditionSrc: `IsScramble() && CoinCount() > 0`,
		Decide:       ActionCollectCoin,
	})

	// --- Labyrinth and Duel ---

	rules = append(rules, &Rule{
		Name:         "regroup-center",
		Priority:     700,
		ConditionSrc: `IsCombat() && EnemyCount() == 0`,
		Decide:       ActionRegroup,
	})

	rules = append(rules, &Rule{
		Name:         "close-quarters",
		Priority:     690,
		ConditionSrc: fmt.Sprintf(`IsCombat() && EnemyCount() > 0 && Ammo() > 0 && NearestEnemyDistance() < %s`, num(d.CloseRange)),
		Decide:       ActionCloseQuarters,
	})

	rules = append(rules, &Rule{
		Name:     "engage",
		Priority: 680,
		ConditionSrc: fmt.Sprintf(`IsCombat() && EnemyCount() > 0 && Ammo() > 0 && NearestEnemyDistance() >= %s && NearestEnemyDistance() < %s`,
			num(d.CloseRange), num(d.AttackRange)),
		Decide: ActionEngage,
	})

	rules = append(rules, &Rule{
		Name:         "pursue",
		Priority:     670,
		ConditionSrc: fmt.Sprintf(`IsCombat() && EnemyCount() > 0 && NearestEnemyDistance() >= %s`, num(d.AttackRange)),
		Decide:       ActionPursue,
	})

	// --- Fallback ---

	rules = append(rules, &Rule{
		Name:         "wander",
		Priority:     0,
		ConditionSrc: `true`,
		Decide:       ActionWander,
	})

	return rules
}

// DefaultRules compiles the reference doctrine.
func DefaultRules() []*Rule {
	return CompileDoctrine(DefaultDoctrine())
}

// num formats a float as a plain decimal expr literal (no exponent).
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
