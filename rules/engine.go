package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/gitwars/tankbot/model"
)

// Engine runs compiled rules against one snapshot per call. Rules are tried
// in priority order and the first rule that matches and accepts wins.
// Compiled programs are immutable, so one engine can serve many tanks at once.
type Engine struct {
	mu       sync.RWMutex
	rules    []*Rule
	doctrine Doctrine
}

// NewEngine compiles the doctrine into its rule set.
func NewEngine(d Doctrine) (*Engine, error) {
	d.Validate()
	return NewEngineFromRules(d, CompileDoctrine(d))
}

// NewEngineFromRules compiles an explicit rule set. The doctrine is still
// exposed to rules through RuleEnv.
func NewEngineFromRules(d Doctrine, rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled, doctrine: d}, nil
}

// Decide evaluates the rule set for one frame. rng feeds the randomized
// branches. If no rule fires the tank stops.
func (e *Engine) Decide(s model.Snapshot, rng Rand) model.Action {
	e.mu.RLock()
	rules, d := e.rules, e.doctrine
	e.mu.RUnlock()

	env := RuleEnv{State: s, Doctrine: d, Rand: rng}
	for _, r := range rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		act, ok := r.Decide(env)
		if !ok {
			slog.Debug("rule declined", "rule", r.Name)
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "action", act.Kind())
		return act
	}

	slog.Debug("no rule fired", "mode", s.Mode)
	return model.Stop{}
}

// Swap atomically replaces the doctrine and the rules compiled from it
// (called when the doctrine file changes). If compilation fails the old
// rules remain active.
func (e *Engine) Swap(d Doctrine) error {
	d.Validate()
	compiled, err := compileRules(CompileDoctrine(d))
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.rules = compiled
	e.doctrine = d
	e.mu.Unlock()

	slog.Info("doctrine swapped", "name", d.Name, "rules", len(compiled))
	return nil
}

// Doctrine returns the tuning currently in force.
func (e *Engine) Doctrine() Doctrine {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doctrine
}

// RuleNames lists the active rules in evaluation order.
func (e *Engine) RuleNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// compileRules returns compiled copies of rules sorted by priority. The
// caller's slice and rules are left untouched.
func compileRules(rules []*Rule) ([]*Rule, error) {
	compiled := make([]*Rule, 0, len(rules))
	for _, r := range rules {
		if r.Decide == nil {
			return nil, fmt.Errorf("rule %q has no decide func", r.Name)
		}
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		c := *r
		c.program = prog
		compiled = append(compiled, &c)
	}
	// Stable so equal priorities keep their declaration order.
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})
	return compiled, nil
}
