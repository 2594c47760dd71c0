package approvalrecv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

const lastCallKey = "last"

// Call is the last received approval notification.
type Call struct {
	TokenID    []byte
	Owner      interop.Hash160
	ApprovalID int
	Msg        string
}

// OnNFTApprove saves the approval notification, it fails if msg is "fail"
// and aborts the transaction if msg is "abort".
func OnNFTApprove(tokenID []byte, owner interop.Hash160, approvalID int, msg string) {
	switch msg {
	case "fail":
		panic("approval rejected")
	case "abort":
		util.Abort()
	}
	storage.Put(storage.GetContext(), lastCallKey, std.Serialize(Call{
		TokenID:    tokenID,
		Owner:      owner,
		ApprovalID: approvalID,
		Msg:        msg,
	}))
}

// Get returns the last received approval notification.
func Get() Call {
	val := storage.Get(storage.GetReadOnlyContext(), lastCallKey)
	if val == nil {
		return Call{}
	}
	return std.Deserialize(val.([]byte)).(Call)
}
