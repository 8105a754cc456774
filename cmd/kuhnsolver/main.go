// Train a Kuhn poker strategy with CFR and report the result.
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
	"github.com/deckbound/kuhnsolver/kuhn"
	"github.com/deckbound/kuhnsolver/ldbstore"
	"github.com/deckbound/kuhnsolver/report"
)

func main() {
	iter := flag.Int("iter", 1000000, "Number of CFR iterations to run")
	seed := flag.Int64("seed", 123, "Random seed for dealing hands")
	store := flag.String("store", "memory", `Policy store: "memory" or "leveldb"`)
	storePath := flag.String("store.path", "", "Database directory for the leveldb store")
	output := flag.String("output", "", "File to save the trained policy to")
	chart := flag.String("chart", "", "File to write a PNG chart of the learned strategy to")

	var params cfr.DiscountParams
	flag.BoolVar(&params.LinearWeighting, "discount.linear", false,
		"Weight each iteration's strategy contribution linearly (linear CFR)")
	flag.BoolVar(&params.UseRegretMatchingPlus, "discount.rmplus", false,
		"Zero out negative regrets after each iteration (CFR+)")
	alpha := flag.Float64("discount.alpha", 0,
		"Discount exponent for positive regrets (discounted CFR)")
	beta := flag.Float64("discount.beta", 0,
		"Discount exponent for negative regrets (discounted CFR)")
	gamma := flag.Float64("discount.gamma", 0,
		"Discount exponent for strategy sums (discounted CFR)")
	flag.Parse()

	params.DiscountAlpha = float32(*alpha)
	params.DiscountBeta = float32(*beta)
	params.DiscountGamma = float32(*gamma)

	go http.ListenAndServe("localhost:6060", nil)

	profile := mustOpenProfile(*store, *storePath, params)
	defer profile.Close()

	glog.Infof("Training for %d iterations", *iter)
	trainer := cfr.NewTrainer(profile, kuhn.NewDealer(*seed))
	if err := trainer.Run(*iter); err != nil {
		glog.Fatal(err)
	}

	summary := trainer.Summarize()
	if err := (report.Console{W: os.Stdout}).Report(summary); err != nil {
		glog.Fatal(err)
	}

	if *chart != "" {
		mustWriteChart(*chart, summary)
	}

	if *output != "" {
		mustSavePolicy(profile, *output)
	}
}

func mustOpenProfile(store, path string, params cfr.DiscountParams) cfr.StrategyProfile {
	switch store {
	case "memory":
		return cfr.NewPolicyTable(params)
	case "leveldb":
		if path == "" {
			glog.Fatal("-store.path is required with -store=leveldb")
		}
		profile, err := ldbstore.New(path, nil, params)
		if err != nil {
			glog.Fatal(err)
		}
		return profile
	default:
		glog.Fatalf("unknown store type: %v", store)
		return nil
	}
}

func mustWriteChart(filename string, s *cfr.Summary) {
	glog.Infof("Writing strategy chart to: %v", filename)
	f, err := os.Create(filename)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()

	if err := (report.Chart{W: f}).Report(s); err != nil {
		glog.Fatal(err)
	}
}

func mustSavePolicy(policy cfr.StrategyProfile, filename string) {
	glog.Infof("Saving trained policy to: %v", filename)
	f, err := os.Create(filename)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()

	w := gzip.NewWriter(f)
	defer w.Close()

	enc := gob.NewEncoder(w)
	if err := enc.Encode(&policy); err != nil {
		glog.Fatal(err)
	}
}
