package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// ResultSet contains a list of keys or values returned by a query.
// Both Key and Value of an abci query response are serialized
// ResultSets of the same length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// resultsField is the tag of the repeated Results field, number 1 with
// the length delimited wire type.
const resultsField uint64 = 1<<3 | proto.WireBytes

// Marshal serializes the set in protobuf wire format.
func (m *ResultSet) Marshal() ([]byte, error) {
	var out []byte
	for _, r := range m.Results {
		out = append(out, proto.EncodeVarint(resultsField)...)
		out = append(out, proto.EncodeVarint(uint64(len(r)))...)
		out = append(out, r...)
	}
	return out, nil
}

// Unmarshal loads a serialized set.
func (m *ResultSet) Unmarshal(bz []byte) error {
	m.Reset()
	for len(bz) > 0 {
		tag, n := proto.DecodeVarint(bz)
		if n == 0 {
			return errors.Wrap(errors.ErrInput, "malformed tag")
		}
		if tag != resultsField {
			return errors.Wrapf(errors.ErrInput, "unexpected tag %d", tag)
		}
		bz = bz[n:]
		size, n := proto.DecodeVarint(bz)
		if n == 0 || uint64(len(bz)-n) < size {
			return errors.Wrap(errors.ErrInput, "truncated result")
		}
		bz = bz[n:]
		r := make([]byte, size)
		copy(r, bz[:size])
		m.Results = append(m.Results, r)
		bz = bz[size:]
	}
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []vault.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []vault.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]vault.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]vault.Model, len(kref))
	for i := range mods {
		mods[i] = vault.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o orm.Model) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(res.Results) == 0 {
		return nil
	}
	return orm.Unmarshal(res.Results[0], o)
}
