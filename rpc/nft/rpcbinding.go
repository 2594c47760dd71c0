// Package nft contains RPC wrappers for the series NFT contract.
package nft

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep11"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// TokenMetadata is a contract-specific nft.TokenMetadata type used by its methods.
type TokenMetadata struct {
	Title         string
	Description   string
	Media         string
	MediaHash     []byte
	Copies        *big.Int
	Extra         string
	Reference     string
	ReferenceHash []byte
}

// Series is a contract-specific nft.Series type used by its methods.
type Series struct {
	ID       string
	Metadata *TokenMetadata
	Creator  util.Uint160
	Price    *big.Int
	Mintable bool
	Minted   *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	nep11.Invoker
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	nep11.Actor

	Sender() util.Uint160

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	nep11.NonDivisibleReader
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	nep11.BaseWriter
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{*nep11.NewNonDivisibleReader(invoker, hash), invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	var nep11ndt = nep11.NewNonDivisible(actor, hash)
	return &Contract{ContractReader{nep11ndt.NonDivisibleReader, actor, hash}, nep11ndt.BaseWriter, actor, hash}
}

// Name invokes `name` method of contract.
func (c *ContractReader) Name() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "name"))
}

// BaseURI invokes `baseURI` method of contract.
func (c *ContractReader) BaseURI() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "baseURI"))
}

// MintingAuthority invokes `mintingAuthority` method of contract.
func (c *ContractReader) MintingAuthority() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "mintingAuthority"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// ApprovalsEnabled invokes `approvalsEnabled` method of contract.
func (c *ContractReader) ApprovalsEnabled() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "approvalsEnabled"))
}

// IsApproved invokes `isApproved` method of contract.
func (c *ContractReader) IsApproved(tokenID []byte, account util.Uint160, approvalID *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isApproved", tokenID, account, approvalID))
}

// Approvals invokes `approvals` method of contract.
func (c *ContractReader) Approvals(tokenID []byte) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "approvals", tokenID))
}

// ApprovalsExpanded is similar to Approvals (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ApprovalsExpanded(tokenID []byte, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "approvals", _numOfIteratorItems, tokenID))
}

// GetSeries invokes `getSeries` method of contract.
func (c *ContractReader) GetSeries(seriesID string) (*Series, error) {
	return itemToSeries(unwrap.Item(c.invoker.Call(c.hash, "getSeries", seriesID)))
}

// ListSeries invokes `listSeries` method of contract.
func (c *ContractReader) ListSeries() ([]*Series, error) {
	return func(item stackitem.Item, err error) ([]*Series, error) {
		if err != nil {
			return nil, err
		}
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]*Series, len(arr))
		for i := range res {
			res[i], err = itemToSeries(arr[i], nil)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	}(unwrap.Item(c.invoker.Call(c.hash, "listSeries")))
}

// SeriesTokens invokes `seriesTokens` method of contract.
func (c *ContractReader) SeriesTokens(seriesID string) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "seriesTokens", seriesID))
}

// SeriesTokensExpanded is similar to SeriesTokens (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) SeriesTokensExpanded(seriesID string, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "seriesTokens", _numOfIteratorItems, seriesID))
}

// Mint creates a transaction invoking `mint` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Mint(seriesID string, receiver util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "mint", seriesID, receiver)
}

// MintTransaction creates a transaction invoking `mint` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MintTransaction(seriesID string, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "mint", seriesID, receiver)
}

// MintUnsigned creates a transaction invoking `mint` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) MintUnsigned(seriesID string, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "mint", nil, seriesID, receiver)
}

func (c *Contract) scriptForTransferFrom(spender util.Uint160, to util.Uint160, tokenID []byte, approvalID *big.Int, data any) ([]byte, error) {
	return smartcontract.CreateCallWithAssertScript(c.hash, "transferFrom", spender, to, tokenID, approvalID, data)
}

// TransferFrom creates a transaction invoking `transferFrom` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferFrom(spender util.Uint160, to util.Uint160, tokenID []byte, approvalID *big.Int, data any) (util.Uint256, uint32, error) {
	script, err := c.scriptForTransferFrom(spender, to, tokenID, approvalID, data)
	if err != nil {
		return util.Uint256{}, 0, err
	}
	return c.actor.SendRun(script)
}

// TransferFromTransaction creates a transaction invoking `transferFrom` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferFromTransaction(spender util.Uint160, to util.Uint160, tokenID []byte, approvalID *big.Int, data any) (*transaction.Transaction, error) {
	script, err := c.scriptForTransferFrom(spender, to, tokenID, approvalID, data)
	if err != nil {
		return nil, err
	}
	return c.actor.MakeRun(script)
}

// TransferFromUnsigned creates a transaction invoking `transferFrom` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferFromUnsigned(spender util.Uint160, to util.Uint160, tokenID []byte, approvalID *big.Int, data any) (*transaction.Transaction, error) {
	script, err := c.scriptForTransferFrom(spender, to, tokenID, approvalID, data)
	if err != nil {
		return nil, err
	}
	return c.actor.MakeUnsignedRun(script, nil)
}

// SetNonMintable creates a transaction invoking `setNonMintable` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetNonMintable(seriesID string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setNonMintable", seriesID)
}

// SetNonMintableTransaction creates a transaction invoking `setNonMintable` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetNonMintableTransaction(seriesID string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setNonMintable", seriesID)
}

// SetNonMintableUnsigned creates a transaction invoking `setNonMintable` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetNonMintableUnsigned(seriesID string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setNonMintable", nil, seriesID)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nef []byte, manifest string, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nef, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nef []byte, manifest string, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nef, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nef []byte, manifest string, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nef, manifest, data)
}

// itemToSeries converts stack item into *Series.
func itemToSeries(item stackitem.Item, err error) (*Series, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Series)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Series from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Series) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.ID, err = itemToUTF8String(arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Metadata = new(TokenMetadata)
	err = res.Metadata.FromStackItem(arr[index])
	if err != nil {
		return fmt.Errorf("field Metadata: %w", err)
	}

	index++
	res.Creator, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Creator: %w", err)
	}

	index++
	if _, ok := arr[index].(stackitem.Null); !ok {
		res.Price, err = arr[index].TryInteger()
		if err != nil {
			return fmt.Errorf("field Price: %w", err)
		}
	}

	index++
	res.Mintable, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Mintable: %w", err)
	}

	index++
	res.Minted, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Minted: %w", err)
	}

	return nil
}

// FromStackItem retrieves fields of TokenMetadata from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *TokenMetadata) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 8 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	strings := []*string{&res.Title, &res.Description, &res.Media, nil, nil, &res.Extra, &res.Reference, nil}
	for i, dst := range strings {
		if dst == nil {
			continue
		}
		*dst, err = optUTF8String(arr[i])
		if err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}

	res.MediaHash, err = optBytes(arr[3])
	if err != nil {
		return fmt.Errorf("field MediaHash: %w", err)
	}
	res.Copies, err = arr[4].TryInteger()
	if err != nil {
		return fmt.Errorf("field Copies: %w", err)
	}
	res.ReferenceHash, err = optBytes(arr[7])
	if err != nil {
		return fmt.Errorf("field ReferenceHash: %w", err)
	}
	return nil
}

func itemToUTF8String(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}

func optUTF8String(item stackitem.Item) (string, error) {
	if _, ok := item.(stackitem.Null); ok {
		return "", nil
	}
	return itemToUTF8String(item)
}

func optBytes(item stackitem.Item) ([]byte, error) {
	if _, ok := item.(stackitem.Null); ok {
		return nil, nil
	}
	return item.TryBytes()
}
