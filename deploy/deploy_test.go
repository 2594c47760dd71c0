package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// stateBlockchain serves contract states only, any transaction sending
// panics.
type stateBlockchain struct {
	actor.RPCActor

	err   error
	state *state.Contract
}

func (s stateBlockchain) GetContractStateByHash(util.Uint160) (*state.Contract, error) {
	return s.state, s.err
}

func testPrm(t *testing.T, b Blockchain) Prm {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)

	return Prm{
		Logger:       zaptest.NewLogger(t),
		Blockchain:   b,
		LocalAccount: acc,
		NFTContract: NFTContractPrm{
			Common: CommonDeployPrm{
				Manifest: *manifest.NewManifest("NFT Series"),
			},
			ApprovalsEnabled: true,
			Name:             "Series",
			Symbol:           "SRS",
		},
	}
}

func TestDeployExisting(t *testing.T) {
	prm := testPrm(t, stateBlockchain{state: new(state.Contract)})

	addr, err := Deploy(context.Background(), prm)
	require.NoError(t, err)
	require.Equal(t, ContractAddress(prm.LocalAccount.ScriptHash(), prm.NFTContract.Common), addr)
}

func TestDeployErrors(t *testing.T) {
	t.Run("state request", func(t *testing.T) {
		prm := testPrm(t, stateBlockchain{err: errors.New("connection refused")})
		_, err := Deploy(context.Background(), prm)
		require.ErrorContains(t, err, "connection refused")
	})

	t.Run("empty symbol", func(t *testing.T) {
		prm := testPrm(t, stateBlockchain{state: new(state.Contract)})
		prm.NFTContract.Symbol = ""
		_, err := Deploy(context.Background(), prm)
		require.Error(t, err)
	})
}

func TestDeployData(t *testing.T) {
	sender := util.Uint160{1, 2, 3}
	prm := NFTContractPrm{
		ApprovalsEnabled: true,
		Name:             "Series",
		Symbol:           "SRS",
		BaseURI:          "https://example.com/",
	}

	require.Equal(t, []any{sender, true, "Series", "SRS", "https://example.com/"}, deployData(sender, prm))

	prm.MintingAuthority = util.Uint160{4, 5, 6}
	prm.ApprovalsEnabled = false
	require.Equal(t, []any{util.Uint160{4, 5, 6}, false, "Series", "SRS", "https://example.com/"}, deployData(sender, prm))
}

func TestIsErrContractNotFound(t *testing.T) {
	require.True(t, isErrContractNotFound(errors.New("Unknown contract (-102)")))
	require.False(t, isErrContractNotFound(errors.New("connection refused")))
}

// blockingWaiter returns res from Wait once released.
type blockingWaiter struct {
	release chan struct{}
	res     *state.AppExecResult
	err     error
}

func (w blockingWaiter) Wait(util.Uint256, uint32, error) (*state.AppExecResult, error) {
	<-w.release
	return w.res, w.err
}

func TestAwaitHalt(t *testing.T) {
	released := func(res *state.AppExecResult, err error) blockingWaiter {
		w := blockingWaiter{release: make(chan struct{}), res: res, err: err}
		close(w.release)
		return w
	}

	t.Run("halt", func(t *testing.T) {
		res := &state.AppExecResult{Execution: state.Execution{VMState: vmstate.Halt}}
		require.NoError(t, awaitHalt(context.Background(), released(res, nil), util.Uint256{1}, 10))
	})

	t.Run("fault", func(t *testing.T) {
		res := &state.AppExecResult{Execution: state.Execution{
			VMState:        vmstate.Fault,
			FaultException: "invalid deploy arguments",
		}}
		err := awaitHalt(context.Background(), released(res, nil), util.Uint256{1}, 10)
		require.ErrorContains(t, err, "invalid deploy arguments")
	})

	t.Run("wait error", func(t *testing.T) {
		waitErr := errors.New("transaction expired")
		err := awaitHalt(context.Background(), released(nil, waitErr), util.Uint256{1}, 10)
		require.ErrorIs(t, err, waitErr)
	})

	t.Run("context done", func(t *testing.T) {
		w := blockingWaiter{release: make(chan struct{})}
		defer close(w.release)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, awaitHalt(ctx, w, util.Uint256{1}, 10), context.Canceled)
	})
}
