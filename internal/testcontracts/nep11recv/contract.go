package nep11recv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const lastCallKey = "last"

// Call is the last received NEP-11 payment.
type Call struct {
	From    interop.Hash160
	TokenID []byte
	Data    any
}

// OnNEP11Payment saves the payment, it fails if data is "reject".
func OnNEP11Payment(from interop.Hash160, amount int, tokenID []byte, data any) {
	if amount != 1 {
		panic("wrong amount")
	}
	if data != nil && data.(string) == "reject" {
		panic("payment rejected")
	}
	storage.Put(storage.GetContext(), lastCallKey, std.Serialize(Call{
		From:    from,
		TokenID: tokenID,
		Data:    data,
	}))
}

// Get returns the last received payment.
func Get() Call {
	val := storage.Get(storage.GetReadOnlyContext(), lastCallKey)
	if val == nil {
		return Call{}
	}
	return std.Deserialize(val.([]byte)).(Call)
}
