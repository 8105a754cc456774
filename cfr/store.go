package cfr

import (
	"sort"

	"github.com/deckbound/kuhnsolver/kuhn"
)

// NodePolicy is the strategy learned for a single information set.
type NodePolicy interface {
	// GetStrategy returns the current regret-matched strategy.
	GetStrategy() []float32
	// GetAverageStrategy returns the average strategy over all iterations.
	GetAverageStrategy() []float32
	// AddRegret accumulates instantaneous regrets, weighted by the
	// opponent's probability of reaching the information set.
	AddRegret(w float32, instantaneousRegrets []float32)
	// AddStrategyWeight accumulates the player's own reach probability
	// toward the average strategy.
	AddStrategyWeight(w float32)
}

// StrategyProfile maintains a NodePolicy for every information set
// encountered during training. Policies are created lazily, zero
// valued, the first time their key is requested; within a run the same
// key always resolves to the same policy.
type StrategyProfile interface {
	// GetPolicy returns the policy for the given information set.
	GetPolicy(key kuhn.InfoSetKey) NodePolicy
	// Update applies end-of-iteration discounting, recomputes current
	// strategies, and advances the iteration counter.
	Update()
	// Iter returns the current iteration, starting at 1.
	Iter() int
	// Visit calls fn for every stored policy, ordered by history and
	// then by card.
	Visit(fn func(key kuhn.InfoSetKey, policy NodePolicy))
	// Close releases any resources held by the profile.
	Close() error
}

// PolicyTable implements StrategyProfile with all policies in memory.
type PolicyTable struct {
	params DiscountParams
	iter   int

	policies    map[kuhn.InfoSetKey]*Node
	needsUpdate map[*Node]struct{}
}

// NewPolicyTable creates a new PolicyTable with the given DiscountParams.
func NewPolicyTable(params DiscountParams) *PolicyTable {
	return &PolicyTable{
		params:      params,
		iter:        1,
		policies:    make(map[kuhn.InfoSetKey]*Node),
		needsUpdate: make(map[*Node]struct{}),
	}
}

// GetPolicy implements StrategyProfile.
func (pt *PolicyTable) GetPolicy(key kuhn.InfoSetKey) NodePolicy {
	n, ok := pt.policies[key]
	if !ok {
		n = NewNode(kuhn.NumActions)
		pt.policies[key] = n
	}

	pt.needsUpdate[n] = struct{}{}
	return n
}

// Update performs regret matching for all nodes within this profile
// that have been touched since the last call to Update.
func (pt *PolicyTable) Update() {
	discountPos, discountNeg, discountSum := pt.params.GetDiscountFactors(pt.iter)
	for n := range pt.needsUpdate {
		n.NextStrategy(discountPos, discountNeg, discountSum)
	}

	pt.needsUpdate = make(map[*Node]struct{})
	pt.iter++
}

// Iter implements StrategyProfile.
func (pt *PolicyTable) Iter() int {
	return pt.iter
}

// Close implements StrategyProfile.
func (pt *PolicyTable) Close() error {
	return nil
}

// Len returns the number of information sets stored.
func (pt *PolicyTable) Len() int {
	return len(pt.policies)
}

// Visit implements StrategyProfile.
func (pt *PolicyTable) Visit(fn func(key kuhn.InfoSetKey, policy NodePolicy)) {
	keys := make([]kuhn.InfoSetKey, 0, len(pt.policies))
	for k := range pt.policies {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].History != keys[j].History {
			return keys[i].History < keys[j].History
		}
		return keys[i].Card < keys[j].Card
	})

	for _, k := range keys {
		fn(k, pt.policies[k])
	}
}
