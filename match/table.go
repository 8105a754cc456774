package match

import (
	"math/rand"

	"github.com/deckbound/kuhnsolver/kuhn"
)

// Table plays hands of Kuhn poker between two strategies.
type Table struct {
	strategies [2]Strategy
	dealer     *kuhn.Dealer
	rng        *rand.Rand
}

// NewTable seats p0 in the first-player position and p1 in the second.
// All randomness, both the deals and the action sampling, derives from
// the given seed, so identical seeds replay identical matches.
func NewTable(p0, p1 Strategy, seed int64) *Table {
	rng := rand.New(rand.NewSource(seed))
	return &Table{
		strategies: [2]Strategy{p0, p1},
		dealer:     kuhn.NewDealerFrom(rng),
		rng:        rng,
	}
}

// Result summarizes a sequence of played hands.
type Result struct {
	Hands       int
	AvgWinnings [2]float64
}

// Play runs n hands and returns the average winnings of both players.
func (t *Table) Play(n int) Result {
	var total float64
	for i := 0; i < n; i++ {
		total += float64(t.playHand())
	}

	r := Result{Hands: n}
	if n > 0 {
		r.AvgWinnings[0] = total / float64(n)
		r.AvgWinnings[1] = -r.AvgWinnings[0]
	}

	return r
}

// playHand deals one hand and walks the betting tree, sampling each
// action from the strategy of the player to act. It returns the payoff
// to the first player.
func (t *Table) playHand() float32 {
	c0, c1 := t.dealer.NextDeal()
	h := kuhn.Root
	for !h.Terminal() {
		key := kuhn.NewInfoSetKey(h, c0, c1)
		probs := t.strategies[h.Player()].ActionProbs(key)
		h = h.Append(t.sampleAction(probs))
	}

	return h.Payoff(c0, c1)
}

// sampleAction returns the first action i where sum(probs[:i+1])
// exceeds a uniform draw.
func (t *Table) sampleAction(probs []float32) kuhn.Action {
	x := t.rng.Float32()
	var cumProb float32
	for i, p := range probs {
		cumProb += p
		if cumProb > x {
			return kuhn.Action(i)
		}
	}

	return kuhn.Action(len(probs) - 1)
}
