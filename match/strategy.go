// Package match plays head-to-head Kuhn poker hands between two
// strategies and reports their average winnings.
package match

import (
	"fmt"

	"github.com/deckbound/kuhnsolver/cfr"
	"github.com/deckbound/kuhnsolver/kuhn"
)

// Strategy provides action probabilities for the information sets a
// player can face.
type Strategy interface {
	// ActionProbs returns the probability of each legal action at the
	// given infoset, in kuhn action order.
	ActionProbs(key kuhn.InfoSetKey) []float32
}

// FixedStrategy is a Strategy given by a lookup table.
type FixedStrategy map[kuhn.InfoSetKey][2]float32

// ActionProbs implements Strategy. It panics if the table has no entry
// for the infoset, since play cannot meaningfully continue without one.
func (s FixedStrategy) ActionProbs(key kuhn.InfoSetKey) []float32 {
	probs, ok := s[key]
	if !ok {
		panic(fmt.Errorf("fixed strategy has no entry for infoset %v", key))
	}

	return probs[:]
}

// ProfileStrategy plays the average strategy of a trained profile.
type ProfileStrategy struct {
	Profile cfr.StrategyProfile
}

// ActionProbs implements Strategy.
func (s ProfileStrategy) ActionProbs(key kuhn.InfoSetKey) []float32 {
	return s.Profile.GetPolicy(key).GetAverageStrategy()
}

// BaselineStrategies returns a pair of illustrative fixed strategies:
// the first player always opens with a bet holding a jack and never
// calls with one, the second player always bets a king and calls a
// queen half the time. The pair is deliberately exploitable and serves
// as a benchmark opponent for trained profiles.
func BaselineStrategies() (p0, p1 FixedStrategy) {
	p0, p1 = FixedStrategy{}, FixedStrategy{}
	set := func(s FixedStrategy, card kuhn.Card, h kuhn.History, passive, aggressive float32) {
		s[kuhn.InfoSetKey{Card: card, History: h}] = [2]float32{passive, aggressive}
	}

	check := kuhn.Root.Append(kuhn.Check)
	bet := kuhn.Root.Append(kuhn.Bet)
	checkBet := check.Append(kuhn.Bet)

	// First player: the opening action and the decision after a
	// check-bet.
	set(p0, kuhn.King, kuhn.Root, 1.0/3.0, 2.0/3.0)
	set(p0, kuhn.Queen, kuhn.Root, 0.5, 0.5)
	set(p0, kuhn.Jack, kuhn.Root, 0, 1)
	set(p0, kuhn.King, checkBet, 0, 1)
	set(p0, kuhn.Queen, checkBet, 0.5, 0.5)
	set(p0, kuhn.Jack, checkBet, 1, 0)

	// Second player: the decisions after a check and after a bet.
	set(p1, kuhn.King, check, 0, 1)
	set(p1, kuhn.Queen, check, 1.0/3.0, 2.0/3.0)
	set(p1, kuhn.Jack, check, 2.0/3.0, 1.0/3.0)
	set(p1, kuhn.King, bet, 0, 1)
	set(p1, kuhn.Queen, bet, 0.5, 0.5)
	set(p1, kuhn.Jack, bet, 1, 0)

	return p0, p1
}
