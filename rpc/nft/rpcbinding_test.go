package nft

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke

	method string
	params []any
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	t.method, t.params = operation, params
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	t.method, t.params = operation, params
	return t.res, t.err
}
func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, nil
}
func (t *testInv) TerminateSession(uuid.UUID) error {
	return nil
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{
		State: "HALT",
		Stack: items,
	}
}

func seriesItem(id string, creator util.Uint160, price stackitem.Item) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(id),
		stackitem.NewStruct([]stackitem.Item{
			stackitem.Make("cat"),
			stackitem.Null{},
			stackitem.Make("media/cat.png"),
			stackitem.Make([]byte{1, 2, 3}),
			stackitem.Make(5),
			stackitem.Null{},
			stackitem.Null{},
			stackitem.Null{},
		}),
		stackitem.Make(creator.BytesBE()),
		price,
		stackitem.Make(true),
		stackitem.Make(2),
	})
}

func TestGetSeries(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.GetSeries("1")
	require.Error(t, err)

	ti.err = nil
	ti.res = halt(stackitem.Make([]stackitem.Item{}))
	_, err = r.GetSeries("1")
	require.Error(t, err)

	creator := util.Uint160{4, 5, 6}
	ti.res = halt(seriesItem("1", creator, stackitem.Null{}))
	s, err := r.GetSeries("1")
	require.NoError(t, err)
	require.Equal(t, "getSeries", ti.method)
	require.Equal(t, []any{"1"}, ti.params)
	require.Equal(t, &Series{
		ID: "1",
		Metadata: &TokenMetadata{
			Title:     "cat",
			Media:     "media/cat.png",
			MediaHash: []byte{1, 2, 3},
			Copies:    big.NewInt(5),
		},
		Creator:  creator,
		Mintable: true,
		Minted:   big.NewInt(2),
	}, s)

	ti.res = halt(seriesItem("2", creator, stackitem.Make(100)))
	s, err = r.GetSeries("2")
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100), s.Price)

	ti.res = halt(seriesItem("3", creator, stackitem.NewMap()))
	_, err = r.GetSeries("3")
	require.Error(t, err)
}

func TestListSeries(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	creator := util.Uint160{4, 5, 6}
	ti.res = halt(stackitem.Make([]stackitem.Item{
		seriesItem("1", creator, stackitem.Null{}),
		seriesItem("2", creator, stackitem.Make(7)),
	}))
	list, err := r.ListSeries()
	require.NoError(t, err)
	require.Equal(t, 2, len(list))
	require.Equal(t, "2", list[1].ID)
	require.Nil(t, list[0].Price)

	ti.res = halt(stackitem.Make([]stackitem.Item{stackitem.Make(1)}))
	_, err = r.ListSeries()
	require.Error(t, err)

	ti.res = halt(stackitem.Make(1))
	_, err = r.ListSeries()
	require.Error(t, err)
}

func TestIsApproved(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.res = halt(stackitem.Make(true))
	ok, err := r.IsApproved([]byte("1:1"), util.Uint160{7}, big.NewInt(0))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "isApproved", ti.method)

	ti.res = &result.Invoke{State: "FAULT", FaultException: "token not found"}
	_, err = r.IsApproved([]byte("1:1"), util.Uint160{7}, big.NewInt(0))
	require.Error(t, err)
}

func TestPaymentData(t *testing.T) {
	account := util.Uint160{1, 2, 3}

	require.Equal(t, []any{"approve", []byte("1:1"), account, nil}, ApproveData([]byte("1:1"), account, ""))
	require.Equal(t, []any{"approve", []byte("1:1"), account, "hi"}, ApproveData([]byte("1:1"), account, "hi"))
	require.Equal(t, []any{"revoke", []byte("1:1"), account}, RevokeData([]byte("1:1"), account))
	require.Equal(t, []any{"revokeAll", []byte("1:1")}, RevokeAllData([]byte("1:1")))

	_, err := CreateSeriesData(&TokenMetadata{Description: "no title"}, nil)
	require.ErrorIs(t, err, ErrEmptyTitle)

	data, err := CreateSeriesData(&TokenMetadata{Title: "cat", Copies: big.NewInt(3)}, big.NewInt(10))
	require.NoError(t, err)
	require.Equal(t, []any{
		"createSeries",
		[]any{"cat", nil, nil, nil, big.NewInt(3), nil, nil, nil},
		big.NewInt(10),
	}, data)
}
