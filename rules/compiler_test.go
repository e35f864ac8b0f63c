package rules

import (
	"strings"
	"testing"

	"github.com/expr-lang/expr"
)

func TestCompileDoctrineReference(t *testing.T) {
	rules := DefaultRules()
	if len(rules) == 0 {
		t.Fatal("CompileDoctrine returned no rules")
	}

	// Verify all rules compile with expr
	for _, r := range rules {
		_, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			t.Errorf("rule %q failed to compile: %v\ncondition: %s", r.Name, err, r.ConditionSrc)
		}
	}

	names := map[string]bool{
		"emergency-reverse": false,
		"steer-clear":       false,
		"nudge-from-left":   false,
		"nudge-from-right":  false,
		"dodge-bullet":      false,
		"harass-coin-rival": false,
		"collect-coin":      false,
		"regroup-center":    false,
		"close-quarters":    false,
		"engage":            false,
		"pursue":            false,
		"wander":            false,
	}
	for _, r := range rules {
		if _, ok := names[r.Name]; !ok {
			t.Errorf("unexpected rule %q", r.Name)
		}
		names[r.Name] = true
	}
	for name, found := range names {
		if !found {
			t.Errorf("rule %q missing from compiled doctrine", name)
		}
	}
}

func TestCompileDoctrineInterpolatesThresholds(t *testing.T) {
	d := DefaultDoctrine()
	d.EmergencyDistance = 12.5
	d.CloseRange = 0.000001
	d.AttackRange = 2500
	d.HarassMinAmmo = 4

	want := map[string]string{
		"emergency-reverse": "FrontDistance() < 12.5",
		"close-quarters":    "NearestEnemyDistance() < 0.000001",
		"pursue":            "NearestEnemyDistance() >= 2500",
		"harass-coin-rival": "Ammo() > 4",
	}
	for _, r := range CompileDoctrine(d) {
		if sub, ok := want[r.Name]; ok && !strings.Contains(r.ConditionSrc, sub) {
			t.Errorf("rule %q condition %q missing %q", r.Name, r.ConditionSrc, sub)
		}
	}
}

func TestCompileDoctrineWithoutHarass(t *testing.T) {
	d := DefaultDoctrine()
	d.Harass = false
	for _, r := range CompileDoctrine(d) {
		if r.Name == "harass-coin-rival" {
			t.Error("harass rule present with Harass=false")
		}
	}
}
