package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/policy"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

const (
	// ErrInsufficientDeposit is thrown by ChargeDeposit if the attached GAS
	// doesn't cover the storage used by the operation.
	ErrInsufficientDeposit = "insufficient deposit"
	// ErrRefundFailed is thrown when GAS can't be sent back to the payer.
	ErrRefundFailed = "refund failed"
)

// StorageCost returns the price of the given number of storage bytes in GAS
// fractions according to the current network storage price.
func StorageCost(bytes int) int {
	if bytes <= 0 {
		return 0
	}
	return bytes * policy.GetStoragePrice()
}

// ChargeDeposit takes the price of bytesUsed storage bytes from the deposit
// attached by the payer and sends the rest back. It panics if the deposit is
// not enough, so the whole invocation is reverted.
func ChargeDeposit(payer interop.Hash160, deposit, bytesUsed int) {
	cost := StorageCost(bytesUsed)
	if deposit < cost {
		panic(ErrInsufficientDeposit + ": " + std.Itoa10(cost) + " required, " +
			std.Itoa10(deposit) + " attached")
	}
	refund(payer, deposit-cost)
}

// RefundStorage sends the price of the released storage bytes to the payer.
func RefundStorage(payer interop.Hash160, bytesReleased int) {
	refund(payer, StorageCost(bytesReleased))
}

func refund(payer interop.Hash160, amount int) {
	if amount <= 0 {
		return
	}
	if !gas.Transfer(runtime.GetExecutingScriptHash(), payer, amount, nil) {
		panic(ErrRefundFailed)
	}
}
