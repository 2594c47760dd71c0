package nft

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/nft-series-contract/common"
)

// Operations paid with GAS, the first element of the payment data.
const (
	opApprove      = "approve"
	opRevoke       = "revoke"
	opRevokeAll    = "revokeAll"
	opCreateSeries = "createSeries"
)

// ErrInvalidPayment is thrown for payments that can't be accepted.
const ErrInvalidPayment = "invalid payment"

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Payment data is an array with the name of the operation and its arguments,
// the attached GAS is a storage deposit of the operation:
//
//	["approve", tokenID, account, message or null]
//	["revoke", tokenID, account]
//	["revokeAll", tokenID]
//	["createSeries", [8 metadata fields], price or null]
//
// Payment with null data replenishes the refund reserve of the contract.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, []byte(gas.Hash)) {
		panic("onNEP17Payment: only GAS can be accepted")
	}
	if data == nil {
		return
	}
	if !common.IsValidHash160(from) {
		panic(ErrInvalidPayment)
	}

	args := data.([]any)
	if len(args) == 0 {
		panic(ErrInvalidPayment)
	}

	switch args[0].(string) {
	case opApprove:
		checkArgs(args, 4)
		approve(from, amount, args[1].([]byte), args[2].(interop.Hash160), args[3])
	case opRevoke:
		checkArgs(args, 3)
		revoke(from, amount, args[1].([]byte), args[2].(interop.Hash160))
	case opRevokeAll:
		checkArgs(args, 2)
		revokeAll(from, amount, args[1].([]byte))
	case opCreateSeries:
		checkArgs(args, 3)
		createSeries(from, amount, args[1].([]any), args[2])
	default:
		panic("unknown operation")
	}
}

func checkArgs(args []any, n int) {
	if len(args) != n {
		panic("invalid number of arguments")
	}
}
