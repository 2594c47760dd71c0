package nft_test

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	nftPath          = "."
	testContractsDir = "../internal/testcontracts"

	// approvalSize is the storage charged for a single approval:
	// prefix + token key + account + approval ID.
	approvalSize = 1 + 20 + 20 + 8

	// oneGAS is more than enough to pay for any series.
	oneGAS = 1_0000_0000
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// newNFTInvoker deploys the contract with the committee as the minting
// authority and returns committee invoker of it.
func newNFTInvoker(t *testing.T, approvals bool) *neotest.ContractInvoker {
	e := newExecutor(t)
	ctr := neotest.CompileFile(t, e.CommitteeHash, nftPath, path.Join(nftPath, "config.yml"))
	e.DeployContract(t, ctr, []any{e.CommitteeHash, approvals, "Series", "SRS", "https://example.com/"})
	return e.CommitteeInvoker(ctr.Hash)
}

// deployTestContract deploys one of the helper contracts and returns its hash.
func deployTestContract(t *testing.T, e *neotest.Executor, name string) util.Uint160 {
	dir := path.Join(testContractsDir, name)
	ctr := neotest.CompileFile(t, e.CommitteeHash, dir, path.Join(dir, "config.yml"))
	e.DeployContract(t, ctr, nil)
	return ctr.Hash
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

// testMetadata returns positional token metadata with the given title and
// copies limit (0 means unlimited).
func testMetadata(title string, copies int64) []any {
	var c any
	if copies > 0 {
		c = copies
	}
	return []any{title, "description of " + title, "media/" + title + ".png", nil, c, nil, "ref/" + title + ".json", nil}
}

// pay transfers GAS from acc to the contract with the given data and returns
// the execution result.
func pay(t *testing.T, c *neotest.ContractInvoker, acc neotest.Signer, amount int64, data any) *state.AppExecResult {
	gasInv := c.NewInvoker(c.NativeHash(t, nativenames.Gas), acc)
	h := gasInv.Invoke(t, true, "transfer", acc.ScriptHash(), c.Hash, amount, data)
	return c.CheckHalt(t, h)
}

// payFail checks that the payment fails with the given message.
func payFail(t *testing.T, c *neotest.ContractInvoker, acc neotest.Signer, amount int64, data any, msg string) {
	gasInv := c.NewInvoker(c.NativeHash(t, nativenames.Gas), acc)
	gasInv.InvokeFail(t, msg, "transfer", acc.ScriptHash(), c.Hash, amount, data)
}

func createSeries(t *testing.T, c *neotest.ContractInvoker, acc neotest.Signer, md []any, price any) *state.AppExecResult {
	return pay(t, c, acc, oneGAS, []any{"createSeries", md, price})
}

// approve approves account for the token attaching exactly the storage price
// of one approval.
func approve(t *testing.T, c *neotest.ContractInvoker, owner neotest.Signer, tokenID []byte, account util.Uint160, msg any) *state.AppExecResult {
	return pay(t, c, owner, approvalSize*storagePrice(c), []any{"approve", tokenID, account, msg})
}

// mint mints a token of the series to the owner and checks its ID.
func mint(t *testing.T, c *neotest.ContractInvoker, seriesID string, owner util.Uint160, expected string) []byte {
	c.InvokeAndCheck(t, func(t testing.TB, stack []stackitem.Item) {
		require.Equal(t, 1, len(stack))
		id, err := stack[0].TryBytes()
		require.NoError(t, err)
		require.Equal(t, expected, string(id))
	}, "mint", seriesID, owner)
	return []byte(expected)
}

// newTokenOwner creates a series and mints its first token to the new account.
func newTokenOwner(t *testing.T, c *neotest.ContractInvoker) (neotest.Signer, []byte) {
	owner := c.NewAccount(t)
	createSeries(t, c, owner, testMetadata("first", 0), nil)
	return owner, mint(t, c, "1", owner.ScriptHash(), "1:1")
}

// eventsByName returns the notifications of the contract with the given name.
func eventsByName(aer *state.AppExecResult, hash util.Uint160, name string) []state.NotificationEvent {
	var res []state.NotificationEvent
	for _, ev := range aer.Events {
		if ev.ScriptHash.Equals(hash) && ev.Name == name {
			res = append(res, ev)
		}
	}
	return res
}

func contractBalance(t *testing.T, c *neotest.ContractInvoker) int64 {
	return c.Chain.GetUtilityTokenBalance(c.Hash).Int64()
}

func storagePrice(c *neotest.ContractInvoker) int64 {
	return c.Chain.GetStoragePrice()
}

func requireBytes(t testing.TB, expected []byte, item stackitem.Item) {
	actual, err := item.TryBytes()
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

func requireInt(t testing.TB, expected int64, item stackitem.Item) {
	actual, err := item.TryInteger()
	require.NoError(t, err)
	require.Equal(t, expected, actual.Int64())
}
