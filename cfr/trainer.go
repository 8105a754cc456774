package cfr

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/deckbound/kuhnsolver/kuhn"
)

// DealSource provides the hole cards for each training hand.
type DealSource interface {
	NextDeal() (c0, c1 kuhn.Card)
}

// Trainer drives CFR over randomly dealt hands and tracks the running
// game value.
type Trainer struct {
	cfr     *CFR
	profile StrategyProfile
	deals   DealSource

	totalValue [2]float64
	nHands     int
}

// NewTrainer returns a Trainer accumulating into profile, dealing
// hands from deals.
func NewTrainer(profile StrategyProfile, deals DealSource) *Trainer {
	return &Trainer{
		cfr:     New(profile),
		profile: profile,
		deals:   deals,
	}
}

// Run performs n training iterations: each deals one hand, traverses
// its full betting tree, and updates the profile. It stops at the
// first traversal error; the profile keeps everything accumulated up
// to that point.
func (t *Trainer) Run(n int) error {
	logEvery := n / 10
	for i := 1; i <= n; i++ {
		c0, c1 := t.deals.NextDeal()
		u, err := t.cfr.Run(c0, c1)
		if err != nil {
			return errors.Wrapf(err, "iteration %d", t.profile.Iter())
		}

		t.totalValue[0] += float64(u[0])
		t.totalValue[1] += float64(u[1])
		t.nHands++
		t.profile.Update()

		if logEvery > 0 && i%logEvery == 0 {
			glog.V(1).Infof("[iter=%d] Expected game value: %.4f",
				i, t.totalValue[0]/float64(t.nHands))
		}
	}

	return nil
}

// InfoSetStrategy is the average strategy of one information set.
type InfoSetStrategy struct {
	Key         kuhn.InfoSetKey
	AvgStrategy []float32
}

// Summary is the outcome of a training run: the average game value for
// both players and the average strategy of every information set seen,
// ordered by history and then by card. The two value components are
// exact negations of each other.
type Summary struct {
	Iters    int
	AvgValue [2]float64
	InfoSets []InfoSetStrategy
}

// Summarize captures the trainer's current state. A trainer that has
// not run yet summarizes to zero values and no information sets.
func (t *Trainer) Summarize() *Summary {
	s := &Summary{Iters: t.nHands}
	if t.nHands > 0 {
		s.AvgValue[0] = t.totalValue[0] / float64(t.nHands)
		s.AvgValue[1] = t.totalValue[1] / float64(t.nHands)
	}

	t.profile.Visit(func(key kuhn.InfoSetKey, policy NodePolicy) {
		s.InfoSets = append(s.InfoSets, InfoSetStrategy{
			Key:         key,
			AvgStrategy: policy.GetAverageStrategy(),
		})
	})

	return s
}
