package cfr

import (
	"bytes"
	"encoding/gob"

	"github.com/deckbound/kuhnsolver/internal/f32"
)

// Node accumulates regrets and strategy weights for a single
// information set.
type Node struct {
	currentStrategy       []float32
	currentStrategyWeight float32

	regretSum   []float32
	strategySum []float32
}

// NewNode returns a node for an information set with the given number
// of actions. Its initial strategy is uniform.
func NewNode(nActions int) *Node {
	return &Node{
		currentStrategy:       uniformDist(nActions),
		currentStrategyWeight: 0.0,
		regretSum:             make([]float32, nActions),
		strategySum:           make([]float32, nActions),
	}
}

// GetStrategy returns the current regret-matched strategy. The slice is
// owned by the node and is valid until the next call to NextStrategy.
func (n *Node) GetStrategy() []float32 {
	return n.currentStrategy
}

// AddRegret accumulates the instantaneous regrets, weighted by w: the
// probability that the opponent plays to reach this information set.
func (n *Node) AddRegret(w float32, instantaneousRegrets []float32) {
	f32.AxpyUnitary(w, instantaneousRegrets, n.regretSum)
}

// AddStrategyWeight accumulates w, the player's own probability of
// playing to reach this information set. The weight is applied to the
// current strategy on the next call to NextStrategy.
func (n *Node) AddStrategyWeight(w float32) {
	n.currentStrategyWeight += w
}

// NextStrategy flushes the pending strategy weight into the strategy
// sum, applies the given discount factors to the accumulated sums, and
// recomputes the current strategy by regret matching.
func (n *Node) NextStrategy(discountPositiveRegret, discountNegativeRegret, discountStrategySum float32) {
	if discountStrategySum != 1.0 {
		f32.ScalUnitary(discountStrategySum, n.strategySum)
	}

	f32.AxpyUnitary(n.currentStrategyWeight, n.currentStrategy, n.strategySum)

	if discountPositiveRegret != 1.0 {
		for i, x := range n.regretSum {
			if x > 0 {
				n.regretSum[i] *= discountPositiveRegret
			}
		}
	}

	if discountNegativeRegret != 1.0 {
		for i, x := range n.regretSum {
			if x < 0 {
				n.regretSum[i] *= discountNegativeRegret
			}
		}
	}

	n.regretMatching()
	n.currentStrategyWeight = 0.0
}

// GetAverageStrategy returns the strategy sum normalized to a
// distribution. It is the strategy that converges to equilibrium. A
// node that has never been weighted returns the uniform distribution.
func (n *Node) GetAverageStrategy() []float32 {
	total := f32.Sum(n.strategySum)
	if total > 0 {
		avgStrat := make([]float32, len(n.strategySum))
		f32.ScalUnitaryTo(avgStrat, 1.0/total, n.strategySum)
		return avgStrat
	}

	return uniformDist(len(n.regretSum))
}

// NumActions returns the number of actions at this node's information set.
func (n *Node) NumActions() int {
	return len(n.regretSum)
}

func (n *Node) regretMatching() {
	copy(n.currentStrategy, n.regretSum)
	makePositive(n.currentStrategy)
	total := f32.Sum(n.currentStrategy)
	if total > 0 {
		f32.ScalUnitary(1.0/total, n.currentStrategy)
	} else {
		for i := range n.currentStrategy {
			n.currentStrategy[i] = 1.0 / float32(len(n.currentStrategy))
		}
	}
}

// GobEncode implements gob.GobEncoder.
func (n *Node) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(n.NumActions()); err != nil {
		return nil, err
	}

	if err := enc.Encode(n.regretSum); err != nil {
		return nil, err
	}

	if err := enc.Encode(n.strategySum); err != nil {
		return nil, err
	}

	if err := enc.Encode(n.currentStrategyWeight); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (n *Node) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	var nActions int
	if err := dec.Decode(&nActions); err != nil {
		return err
	}

	regretSum := make([]float32, 0, nActions)
	if err := dec.Decode(&regretSum); err != nil {
		return err
	}

	strategySum := make([]float32, 0, nActions)
	if err := dec.Decode(&strategySum); err != nil {
		return err
	}

	var weight float32
	if err := dec.Decode(&weight); err != nil {
		return err
	}

	n.regretSum = regretSum
	n.strategySum = strategySum
	n.currentStrategyWeight = weight
	n.currentStrategy = make([]float32, nActions)
	n.regretMatching()
	return nil
}

func uniformDist(n int) []float32 {
	result := make([]float32, n)
	p := 1.0 / float32(n)
	f32.AddConst(p, result)
	return result
}

func makePositive(v []float32) {
	for i := range v {
		if v[i] < 0 {
			v[i] = 0.0
		}
	}
}
