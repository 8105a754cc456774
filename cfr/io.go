package cfr

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/deckbound/kuhnsolver/kuhn"
)

func init() {
	gob.Register(&PolicyTable{})
}

// LoadPolicyTable reads a PolicyTable from r in the format written by
// MarshalTo.
func LoadPolicyTable(r io.Reader) (*PolicyTable, error) {
	dec := gob.NewDecoder(r)
	var params DiscountParams
	if err := dec.Decode(&params); err != nil {
		return nil, err
	}

	var iter int
	if err := dec.Decode(&iter); err != nil {
		return nil, err
	}

	var nPolicies int
	if err := dec.Decode(&nPolicies); err != nil {
		return nil, err
	}

	policies := make(map[kuhn.InfoSetKey]*Node, nPolicies)
	for i := 0; i < nPolicies; i++ {
		var key kuhn.InfoSetKey
		if err := dec.Decode(&key); err != nil {
			return nil, err
		}

		var node Node
		if err := dec.Decode(&node); err != nil {
			return nil, err
		}

		policies[key] = &node
	}

	return &PolicyTable{
		params:      params,
		iter:        iter,
		policies:    policies,
		needsUpdate: make(map[*Node]struct{}),
	}, nil
}

// MarshalTo writes the table to w so it can be reloaded with
// LoadPolicyTable.
func (pt *PolicyTable) MarshalTo(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(pt.params); err != nil {
		return err
	}

	if err := enc.Encode(pt.iter); err != nil {
		return err
	}

	if err := enc.Encode(len(pt.policies)); err != nil {
		return err
	}

	for key, node := range pt.policies {
		if err := enc.Encode(key); err != nil {
			return err
		}

		if err := enc.Encode(node); err != nil {
			return err
		}
	}

	return nil
}

// GobEncode implements gob.GobEncoder.
func (pt *PolicyTable) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := pt.MarshalTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (pt *PolicyTable) GobDecode(buf []byte) error {
	loaded, err := LoadPolicyTable(bytes.NewReader(buf))
	if err != nil {
		return err
	}

	*pt = *loaded
	return nil
}
