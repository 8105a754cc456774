package ldbstore

import (
	"bytes"
	"encoding/gob"

	"github.com/golang/glog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/deckbound/kuhnsolver/cfr"
	"github.com/deckbound/kuhnsolver/kuhn"
)

func init() {
	gob.Register(&PolicyTable{})
}

// PolicyTable is a tabular CFR policy table that keeps all node policies
// on disk in a LevelDB database. PolicyTable implements cfr.StrategyProfile.
//
// It is functionally equivalent to a cfr.PolicyTable. In practice, it is
// significantly slower but will use a constant amount of memory since all
// policies are kept on disk.
type PolicyTable struct {
	path   string
	opts   *opt.Options
	params cfr.DiscountParams
	iter   int

	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

// New creates a new PolicyTable backed by a LevelDB database at the given path.
func New(path string, opts *opt.Options, params cfr.DiscountParams) (*PolicyTable, error) {
	if opts == nil {
		opts = &opt.Options{}
	}

	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, err
	}

	return &PolicyTable{
		path:   path,
		opts:   opts,
		params: params,
		iter:   1,
		db:     db,
	}, nil
}

// GobEncode implements gob.GobEncoder. Only the database location and
// iteration counter are serialized; the node policies stay in LevelDB.
func (pt *PolicyTable) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(pt.path); err != nil {
		return nil, err
	}

	if err := enc.Encode(pt.opts); err != nil {
		return nil, err
	}

	if err := enc.Encode(pt.params); err != nil {
		return nil, err
	}

	if err := enc.Encode(pt.iter); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder, reopening the database the table
// was saved with.
func (pt *PolicyTable) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	if err := dec.Decode(&pt.path); err != nil {
		return err
	}

	if err := dec.Decode(&pt.opts); err != nil {
		return err
	}

	if err := dec.Decode(&pt.params); err != nil {
		return err
	}

	if err := dec.Decode(&pt.iter); err != nil {
		return err
	}

	if pt.opts == nil {
		pt.opts = &opt.Options{}
	}
	pt.opts.ErrorIfMissing = true
	db, err := leveldb.OpenFile(pt.path, pt.opts)
	if err != nil {
		return err
	}

	pt.db = db
	return nil
}

// Close implements io.Closer.
func (pt *PolicyTable) Close() error {
	return pt.db.Close()
}

// Iter implements cfr.StrategyProfile.
func (pt *PolicyTable) Iter() int {
	return pt.iter
}

// Update implements cfr.StrategyProfile.
func (pt *PolicyTable) Update() {
	discountPos, discountNeg, discountSum := pt.params.GetDiscountFactors(pt.iter)
	iter := pt.db.NewIterator(nil, pt.rOpts)
	n := 0
	for iter.Next() {
		n++
		var node cfr.Node
		if err := node.GobDecode(iter.Value()); err != nil {
			panic(err)
		}

		node.NextStrategy(discountPos, discountNeg, discountSum)
		buf, err := node.GobEncode()
		if err != nil {
			panic(err)
		}

		if err := pt.db.Put(iter.Key(), buf, pt.wOpts); err != nil {
			panic(err)
		}
	}

	iter.Release()
	if err := iter.Error(); err != nil {
		panic(err)
	}

	glog.V(1).Infof("Updated %d strategies", n)
	pt.iter++
}

// GetPolicy implements cfr.StrategyProfile.
func (pt *PolicyTable) GetPolicy(key kuhn.InfoSetKey) cfr.NodePolicy {
	keyBuf := key.Bytes()
	buf, err := pt.db.Get(keyBuf, pt.rOpts)
	node := cfr.NewNode(kuhn.NumActions)
	if err != nil {
		if err != leveldb.ErrNotFound {
			panic(err)
		}
	} else {
		if err := node.GobDecode(buf); err != nil {
			panic(err)
		}
	}

	return &ldbPolicy{
		Node:  node,
		db:    pt.db,
		key:   keyBuf,
		wOpts: pt.wOpts,
	}
}

// Visit implements cfr.StrategyProfile. LevelDB iterates keys in byte
// order, which for infoset keys is history order and then card order.
// The policies passed to fn are read-only snapshots; mutating them does
// not write back to the database.
func (pt *PolicyTable) Visit(fn func(key kuhn.InfoSetKey, policy cfr.NodePolicy)) {
	iter := pt.db.NewIterator(nil, pt.rOpts)
	defer iter.Release()
	for iter.Next() {
		var node cfr.Node
		if err := node.GobDecode(iter.Value()); err != nil {
			panic(err)
		}

		fn(kuhn.InfoSetKeyFromBytes(iter.Key()), &node)
	}

	if err := iter.Error(); err != nil {
		panic(err)
	}
}

// ldbPolicy implements cfr.NodePolicy, with all updates immediately persisted
// to the underlying LevelDB database.
type ldbPolicy struct {
	*cfr.Node
	db    *leveldb.DB
	key   []byte
	wOpts *opt.WriteOptions
}

// AddRegret implements cfr.NodePolicy.
func (l *ldbPolicy) AddRegret(w float32, instantaneousRegrets []float32) {
	l.Node.AddRegret(w, instantaneousRegrets)
	l.save()
}

// AddStrategyWeight implements cfr.NodePolicy.
func (l *ldbPolicy) AddStrategyWeight(w float32) {
	l.Node.AddStrategyWeight(w)
	l.save()
}

func (l *ldbPolicy) save() {
	buf, err := l.Node.GobEncode()
	if err != nil {
		panic(err)
	}

	if err := l.db.Put(l.key, buf, l.wOpts); err != nil {
		panic(err)
	}
}
