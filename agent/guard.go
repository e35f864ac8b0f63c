package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gitwars/tankbot/model"
	"github.com/gitwars/tankbot/rules"
)

// DefaultBudget is how long a policy may think about one frame.
const DefaultBudget = 100 * time.Millisecond

var (
	ErrPolicyPanic    = errors.New("policy panicked")
	ErrBudgetExceeded = errors.New("policy exceeded frame budget")
)

// Guard isolates the engine from a misbehaving policy. Whatever happens,
// the caller gets an action for the frame: a panic or an overrun yields
// Stop along with the error.
type Guard struct {
	policy rules.Policy
	budget time.Duration

	// busy is set while a policy call is in flight, including one that
	// overran and was abandoned. Policies hold a random source that is not
	// safe for concurrent use, so a new call is refused until it clears.
	busy atomic.Bool
}

func NewGuard(policy rules.Policy, budget time.Duration) *Guard {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Guard{policy: policy, budget: budget}
}

type guardResult struct {
	action model.Action
	err    error
}

// Decide runs the policy on s within the budget.
func (g *Guard) Decide(ctx context.Context, s model.Snapshot) (model.Action, error) {
	if !g.busy.CompareAndSwap(false, true) {
		return model.Stop{}, fmt.Errorf("%w: previous frame still running", ErrBudgetExceeded)
	}

	done := make(chan guardResult, 1)
	go func() {
		res := g.run(s)
		g.busy.Store(false)
		done <- res
	}()

	timer := time.NewTimer(g.budget)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.action == nil {
			res.action = model.Stop{}
		}
		return res.action, res.err
	case <-timer.C:
		slog.Warn("policy overran budget, worker abandoned", "budget", g.budget)
		return model.Stop{}, ErrBudgetExceeded
	case <-ctx.Done():
		return model.Stop{}, ctx.Err()
	}
}

func (g *Guard) run(s model.Snapshot) (res guardResult) {
	defer func() {
		if r := recover(); r != nil {
			res = guardResult{action: model.Stop{}, err: fmt.Errorf("%w: %v", ErrPolicyPanic, r)}
		}
	}()
	return guardResult{action: g.policy.Decide(s)}
}
