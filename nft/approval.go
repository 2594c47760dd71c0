package nft

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/nft-series-contract/common"
)

// approvalIDSize is the number of bytes every stored approval ID is charged
// for, independently of its actual encoding.
const approvalIDSize = 8

// Exception messages of the approval management.
const (
	ErrApprovalsDisabled = "approval management is disabled"
	ErrDepositRequired   = "at least 1 GAS fraction must be attached"
	ErrOneDatoshi        = "exactly 1 GAS fraction must be attached"
	ErrInvalidAccount    = "invalid account"
)

// IsApproved checks whether account is approved to transfer the token. Zero
// approvalID matches any approval, otherwise the approval must have exactly
// this ID. It panics if there is no such token.
func IsApproved(tokenID []byte, account interop.Hash160, approvalID int) bool {
	ctx := storage.GetReadOnlyContext()
	tokenKey := getTokenKey(tokenID)
	_ = getTokenStateWithKey(ctx, tokenKey) // ensure token exists

	if !approvalsEnabled(ctx) {
		return false
	}
	actual := storage.Get(ctx, getApprovalKey(tokenKey, account))
	if actual == nil {
		return false
	}
	return approvalID == 0 || actual.(int) == approvalID
}

// Approvals returns iterator over (account, approval ID) pairs of the token.
func Approvals(tokenID []byte) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	tokenKey := getTokenKey(tokenID)
	_ = getTokenStateWithKey(ctx, tokenKey) // ensure token exists

	return storage.Find(ctx, append([]byte{prefixApproval}, tokenKey...), storage.RemovePrefix)
}

// ApprovalsEnabled returns true if the contract was deployed with approval
// management.
func ApprovalsEnabled() bool {
	ctx := storage.GetReadOnlyContext()
	return approvalsEnabled(ctx)
}

// approve grants account the right to transfer the token owned by payer. The
// approval gets the next ID of the token, re-approval of the same account
// replaces its ID. Deposit above the storage price of the new record is
// returned to payer. If msg is not nil and account is a contract, its
// onNFTApprove method is called after the approval is stored.
func approve(payer interop.Hash160, deposit int, tokenID []byte, account interop.Hash160, msg any) {
	if deposit < 1 {
		panic(ErrDepositRequired)
	}
	ctx := storage.GetContext()
	checkApprovalsEnabled(ctx)
	if !common.IsValidHash160(account) {
		panic(ErrInvalidAccount)
	}

	tokenKey := getTokenKey(tokenID)
	ts := getTokenStateWithKey(ctx, tokenKey)
	checkTokenOwner(ts, payer)

	nextIDKey := append([]byte{prefixNextApprovalID}, tokenKey...)
	approvalID := 1
	if id := storage.Get(ctx, nextIDKey); id != nil {
		approvalID = id.(int)
	}

	approvalKey := getApprovalKey(tokenKey, account)
	var used int
	if storage.Get(ctx, approvalKey) == nil {
		used = approvalSize(approvalKey)
	}
	storage.Put(ctx, approvalKey, approvalID)
	storage.Put(ctx, nextIDKey, approvalID+1)

	common.ChargeDeposit(payer, deposit, used)
	runtime.Notify("Approve", tokenID, payer, account, approvalID)

	if msg != nil {
		notifyApproved(account, tokenID, payer, approvalID, msg.(string))
	}
}

// revoke removes approval of account for the token owned by payer and refunds
// its storage. Nothing happens if account is not approved.
func revoke(payer interop.Hash160, deposit int, tokenID []byte, account interop.Hash160) {
	if deposit != 1 {
		panic(ErrOneDatoshi)
	}
	ctx := storage.GetContext()
	checkApprovalsEnabled(ctx)

	tokenKey := getTokenKey(tokenID)
	ts := getTokenStateWithKey(ctx, tokenKey)
	checkTokenOwner(ts, payer)

	approvalKey := getApprovalKey(tokenKey, account)
	if common.DeleteMetered(ctx, approvalKey) == 0 {
		return
	}

	common.RefundStorage(payer, approvalSize(approvalKey))
	runtime.Notify("Revoke", tokenID, payer, account)
}

// revokeAll removes all approvals of the token owned by payer and refunds
// their storage. Nothing happens if there are no approvals.
func revokeAll(payer interop.Hash160, deposit int, tokenID []byte) {
	if deposit != 1 {
		panic(ErrOneDatoshi)
	}
	ctx := storage.GetContext()
	checkApprovalsEnabled(ctx)

	tokenKey := getTokenKey(tokenID)
	ts := getTokenStateWithKey(ctx, tokenKey)
	checkTokenOwner(ts, payer)

	released := clearApprovals(ctx, tokenKey)
	if released == 0 {
		return
	}

	common.RefundStorage(payer, released)
	runtime.Notify("RevokeAll", tokenID, payer)
}

// clearApprovals removes all approvals of the token and returns the number of
// storage bytes they were charged for.
func clearApprovals(ctx storage.Context, tokenKey []byte) int {
	var released int
	it := storage.Find(ctx, append([]byte{prefixApproval}, tokenKey...), storage.KeysOnly)
	for iterator.Next(it) {
		key := iterator.Value(it).([]byte)
		storage.Delete(ctx, key)
		released += approvalSize(key)
	}
	return released
}

// notifyApproved calls onNFTApprove of the approved contract. An exception
// thrown by the callee is logged and doesn't affect the approval. ABORT or
// GAS exhaustion in the callee can't be caught and faults the transaction.
func notifyApproved(account interop.Hash160, tokenID []byte, owner interop.Hash160, approvalID int, msg string) {
	if management.GetContract(account) == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			runtime.Log("onNFTApprove call failed")
		}
	}()
	contract.Call(account, "onNFTApprove", contract.All, tokenID, owner, approvalID, msg)
}

func checkApprovalsEnabled(ctx storage.Context) {
	if !approvalsEnabled(ctx) {
		panic(ErrApprovalsDisabled)
	}
}

func checkTokenOwner(ts TokenState, caller interop.Hash160) {
	if !common.BytesEqual(ts.Owner, caller) {
		panic(ErrNotTokenOwner)
	}
}

func approvalsEnabled(ctx storage.Context) bool {
	return storage.Get(ctx, approvalsKey) != nil
}

// getApprovalKey returns the key of account approval for the token.
func getApprovalKey(tokenKey []byte, account interop.Hash160) []byte {
	return append(append([]byte{prefixApproval}, tokenKey...), account...)
}

// approvalSize returns the number of storage bytes an approval is charged for.
func approvalSize(approvalKey []byte) int {
	return len(approvalKey) + approvalIDSize
}
