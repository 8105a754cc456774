// Play head-to-head Kuhn poker matches between trained or baseline
// strategies.
package main

import (
	"encoding/gob"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/golang/glog"
	gzip "github.com/klauspost/pgzip"

	"github.com/deckbound/kuhnsolver/cfr"
	_ "github.com/deckbound/kuhnsolver/ldbstore"
	"github.com/deckbound/kuhnsolver/match"
)

func main() {
	strat0 := flag.String("strategy0", "baseline", `Player 0 strategy: "baseline" or a policy file`)
	strat1 := flag.String("strategy1", "baseline", `Player 1 strategy: "baseline" or a policy file`)
	numHands := flag.Int("num_hands", 100000, "Number of hands to play")
	seed := flag.Int64("seed", 1234, "Random seed")
	flag.Parse()

	go http.ListenAndServe("localhost:6060", nil)

	baseline0, baseline1 := match.BaselineStrategies()
	p0 := mustLoadStrategy(*strat0, baseline0)
	p1 := mustLoadStrategy(*strat1, baseline1)

	glog.Infof("Playing %d hands", *numHands)
	result := match.NewTable(p0, p1, *seed).Play(*numHands)
	glog.Infof("Average winnings: %+.4f (player 0), %+.4f (player 1)",
		result.AvgWinnings[0], result.AvgWinnings[1])
}

// mustLoadStrategy resolves a -strategyN flag value: the name
// "baseline" selects the built-in fixed strategy for that seat, any
// other value is read as a saved policy file.
func mustLoadStrategy(name string, baseline match.FixedStrategy) match.Strategy {
	if name == "baseline" {
		return baseline
	}

	glog.Infof("Loading strategy from: %v", name)
	f, err := os.Open(name)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		glog.Fatal(err)
	}

	var policy cfr.StrategyProfile
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&policy); err != nil {
		glog.Fatal(err)
	}

	return match.ProfileStrategy{Profile: policy}
}
