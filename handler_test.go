package vault

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMsg struct {
	Value string
	err   error
}

func (m *testMsg) Path() string    { return "test/msg" }
func (m *testMsg) Validate() error { return m.err }

type otherMsg struct{}

func (otherMsg) Path() string    { return "test/other" }
func (otherMsg) Validate() error { return nil }

type testTx struct {
	msg Msg
	err error
}

func (tx testTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    func() interface{}
		wantErr *errors.Error
		want    string
	}{
		"pointer destination": {
			tx:   testTx{msg: &testMsg{Value: "a"}},
			dest: func() interface{} { var m *testMsg; return &m },
			want: "a",
		},
		"value destination": {
			tx:   testTx{msg: &testMsg{Value: "b"}},
			dest: func() interface{} { return &testMsg{} },
			want: "b",
		},
		"invalid message": {
			tx:      testTx{msg: &testMsg{err: errors.ErrEmpty}},
			dest:    func() interface{} { var m *testMsg; return &m },
			wantErr: errors.ErrEmpty,
		},
		"no message": {
			tx:      testTx{},
			dest:    func() interface{} { var m *testMsg; return &m },
			wantErr: errors.ErrMsg,
		},
		"broken transaction": {
			tx:      testTx{err: errors.ErrInput},
			dest:    func() interface{} { var m *testMsg; return &m },
			wantErr: errors.ErrInput,
		},
		"wrong type": {
			tx:      testTx{msg: otherMsg{}},
			dest:    func() interface{} { var m *testMsg; return &m },
			wantErr: errors.ErrType,
		},
		"not a pointer": {
			tx:      testTx{msg: &testMsg{}},
			dest:    func() interface{} { return testMsg{} },
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dest := tc.dest()
			err := LoadMsg(tc.tx, dest)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)
			switch d := dest.(type) {
			case **testMsg:
				assert.Equal(t, tc.want, (*d).Value)
			case *testMsg:
				assert.Equal(t, tc.want, d.Value)
			}
		})
	}
}

func TestReadOptions(t *testing.T) {
	opts := Options{
		"wallet": json.RawMessage(`{"required": 2}`),
		"broken": json.RawMessage(`{"required": "two"}`),
	}
	var got struct {
		Required int `json:"required"`
	}

	require.NoError(t, opts.ReadOptions("missing", &got))
	assert.Equal(t, 0, got.Required)

	require.NoError(t, opts.ReadOptions("wallet", &got))
	assert.Equal(t, 2, got.Required)

	err := opts.ReadOptions("broken", &got)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}

type recordingInit struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingInit) FromGenesis(Options, KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	chain := ChainInitializers(
		recordingInit{name: "token", calls: &calls},
		recordingInit{name: "wallet", calls: &calls},
	)
	require.NoError(t, chain.FromGenesis(Options{}, nil))
	assert.Equal(t, []string{"token", "wallet"}, calls)

	calls = nil
	chain = ChainInitializers(
		recordingInit{name: "token", calls: &calls, err: errors.ErrState},
		recordingInit{name: "wallet", calls: &calls},
	)
	err := chain.FromGenesis(Options{}, nil)
	assert.True(t, errors.ErrState.Is(err), "%+v", err)
	assert.Equal(t, []string{"token"}, calls)
}
