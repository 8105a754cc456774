// Package cfr trains Kuhn poker strategies by counterfactual regret
// minimization: repeated traversals of the betting tree that accumulate,
// for every information set, how much better each action would have done
// than the strategy actually played.
package cfr

import (
	"fmt"

	"github.com/deckbound/kuhnsolver/internal/f32"
	"github.com/deckbound/kuhnsolver/kuhn"
)

// CFR performs vanilla CFR traversals over the betting tree of a single
// dealt hand, accumulating regrets and strategy weights into a
// StrategyProfile.
type CFR struct {
	profile StrategyProfile
}

// New returns a CFR traverser that accumulates into profile.
func New(profile StrategyProfile) *CFR {
	return &CFR{profile: profile}
}

// Run traverses the full betting tree for one dealt hand and returns
// the expected payoff vector under the current strategies. The two
// components sum exactly to zero.
func (c *CFR) Run(c0, c1 kuhn.Card) ([2]float32, error) {
	return c.runHelper(kuhn.Root, c0, c1, [2]float32{1, 1})
}

func (c *CFR) runHelper(h kuhn.History, c0, c1 kuhn.Card, reach [2]float32) ([2]float32, error) {
	if h.Terminal() {
		u := h.Payoff(c0, c1)
		return [2]float32{u, -u}, nil
	}

	actions, err := h.LegalActions()
	if err != nil {
		return [2]float32{}, err
	}

	player := h.Player()
	policy := c.profile.GetPolicy(kuhn.NewInfoSetKey(h, c0, c1))
	strategy := policy.GetStrategy()
	if len(strategy) != len(actions) {
		panic(fmt.Errorf("policy has n_actions=%v but %v are legal at %q",
			len(strategy), len(actions), h))
	}

	// Utility of each action, per player.
	var utils [2][kuhn.NumActions]float32
	for i, a := range actions {
		childReach := reach
		childReach[player] *= strategy[i]
		u, err := c.runHelper(h.Append(a), c0, c1, childReach)
		if err != nil {
			return [2]float32{}, err
		}

		utils[0][i] = u[0]
		utils[1][i] = u[1]
	}

	nodeUtil := [2]float32{
		f32.DotUnitary(strategy, utils[0][:]),
		f32.DotUnitary(strategy, utils[1][:]),
	}

	instantaneousRegrets := utils[player]
	f32.AddConst(-nodeUtil[player], instantaneousRegrets[:])

	policy.AddRegret(reach[1-player], instantaneousRegrets[:])
	policy.AddStrategyWeight(reach[player])
	return nodeUtil, nil
}
