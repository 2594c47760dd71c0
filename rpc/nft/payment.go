package nft

import (
	"errors"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ErrEmptyTitle is returned when series metadata has no title.
var ErrEmptyTitle = errors.New("token metadata title is required")

// ToStackArgs returns positional representation of metadata accepted by the
// contract, empty fields are passed as nulls.
func (m *TokenMetadata) ToStackArgs() []any {
	str := func(s string) any {
		if s == "" {
			return nil
		}
		return s
	}
	bts := func(b []byte) any {
		if len(b) == 0 {
			return nil
		}
		return b
	}
	var copies any
	if m.Copies != nil && m.Copies.Sign() > 0 {
		copies = m.Copies
	}
	return []any{
		str(m.Title),
		str(m.Description),
		str(m.Media),
		bts(m.MediaHash),
		copies,
		str(m.Extra),
		str(m.Reference),
		bts(m.ReferenceHash),
	}
}

// ApproveData returns payment data of the `approve` operation. Empty msg
// means no notification of the approved account.
func ApproveData(tokenID []byte, account util.Uint160, msg string) []any {
	var m any
	if msg != "" {
		m = msg
	}
	return []any{"approve", tokenID, account, m}
}

// RevokeData returns payment data of the `revoke` operation.
func RevokeData(tokenID []byte, account util.Uint160) []any {
	return []any{"revoke", tokenID, account}
}

// RevokeAllData returns payment data of the `revokeAll` operation.
func RevokeAllData(tokenID []byte) []any {
	return []any{"revokeAll", tokenID}
}

// CreateSeriesData returns payment data of the `createSeries` operation.
// Nil price means the series has no price.
func CreateSeriesData(md *TokenMetadata, price *big.Int) ([]any, error) {
	if md == nil || md.Title == "" {
		return nil, ErrEmptyTitle
	}
	var p any
	if price != nil {
		p = price
	}
	return []any{"createSeries", md.ToStackArgs(), p}, nil
}

// Approve approves account to transfer the token of the sender. Deposit must
// cover the storage of the approval, the rest is returned by the contract.
// The transaction is signed and immediately sent to the network.
func (c *Contract) Approve(tokenID []byte, account util.Uint160, msg string, deposit *big.Int) (util.Uint256, uint32, error) {
	return c.pay(deposit, ApproveData(tokenID, account, msg))
}

// ApproveTransaction is similar to Approve, but the transaction is returned
// to the caller instead of being sent.
func (c *Contract) ApproveTransaction(tokenID []byte, account util.Uint160, msg string, deposit *big.Int) (*transaction.Transaction, error) {
	return c.gas().TransferTransaction(c.actor.Sender(), c.hash, deposit, ApproveData(tokenID, account, msg))
}

// Revoke revokes the approval of account for the token of the sender, the
// storage price of the approval is returned to the sender.
func (c *Contract) Revoke(tokenID []byte, account util.Uint160) (util.Uint256, uint32, error) {
	return c.pay(big.NewInt(1), RevokeData(tokenID, account))
}

// RevokeAll revokes all approvals of the token of the sender.
func (c *Contract) RevokeAll(tokenID []byte) (util.Uint256, uint32, error) {
	return c.pay(big.NewInt(1), RevokeAllData(tokenID))
}

// CreateSeries creates a new series with the sender as the creator. Deposit
// must cover the storage of the series, the rest is returned by the contract.
func (c *Contract) CreateSeries(md *TokenMetadata, price *big.Int, deposit *big.Int) (util.Uint256, uint32, error) {
	data, err := CreateSeriesData(md, price)
	if err != nil {
		return util.Uint256{}, 0, err
	}
	return c.pay(deposit, data)
}

func (c *Contract) pay(amount *big.Int, data []any) (util.Uint256, uint32, error) {
	return c.gas().Transfer(c.actor.Sender(), c.hash, amount, data)
}

func (c *Contract) gas() *nep17.Token {
	return gas.New(c.actor)
}
