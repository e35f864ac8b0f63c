package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/gitwars/tankbot/model"
)

// DecideFunc turns a matched rule into an action. Returning false declines
// the frame so the engine moves on to the next rule.
type DecideFunc func(env RuleEnv) (model.Action, bool)

// Rule is the atomic unit of tank behavior: a condition → action pair.
// The engine tries rules in priority order and the first one that matches
// and accepts decides the frame.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	ConditionSrc string      // expr source (preserved for logging and tests)
	program      *vm.Program // compiled bytecode
	Decide       DecideFunc
}
