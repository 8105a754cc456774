// Package report renders training summaries for human consumption,
// either as text or as a bar chart of the learned strategy.
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/deckbound/kuhnsolver/cfr"
)

// Sink consumes a training summary.
type Sink interface {
	Report(s *cfr.Summary) error
}

// Console writes a plain-text summary: the iteration count, the average
// game value of both players, and one line per information set with its
// average action probabilities.
type Console struct {
	W io.Writer
}

// Report implements Sink.
func (c Console) Report(s *cfr.Summary) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "iterations: %d\n", s.Iters)
	fmt.Fprintf(&buf, "average game value: %+.4f (player 0), %+.4f (player 1)\n",
		s.AvgValue[0], s.AvgValue[1])
	for _, is := range s.InfoSets {
		passive, aggressive := is.Key.History.ActionNames()
		fmt.Fprintf(&buf, "%4s: %s=%.2f %s=%.2f\n",
			is.Key, passive, is.AvgStrategy[0], aggressive, is.AvgStrategy[1])
	}

	_, err := c.W.Write(buf.Bytes())
	return err
}
