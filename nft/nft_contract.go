package nft

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/nft-series-contract/common"
)

// Prefixes used for contract data storage.
const (
	// prefixTotalSupply contains total supply of minted tokens.
	prefixTotalSupply byte = 0x00
	// prefixBalance contains map from the owner to their balance.
	prefixBalance byte = 0x01
	// prefixAccountToken contains map from (owner + token key) to token ID,
	// where token key = hash160(token ID).
	prefixAccountToken byte = 0x02
	// prefixToken contains map from token key to TokenState.
	prefixToken byte = 0x03
	// prefixApproval contains map from (token key + approved account) to
	// approval ID.
	prefixApproval byte = 0x10
	// prefixNextApprovalID contains map from token key to the approval ID
	// to be issued next.
	prefixNextApprovalID byte = 0x11
	// prefixSeries contains map from series ID to Series.
	prefixSeries byte = 0x20
	// prefixSeriesToken contains map from (series key + token key) to token ID,
	// where series key = hash160(series ID).
	prefixSeriesToken byte = 0x21
	// prefixSeriesCount contains the number of created series.
	prefixSeriesCount byte = 0x22
	// prefixTransactionFee is reserved for the per-series marketplace
	// transaction fee, nothing is stored there yet.
	prefixTransactionFee byte = 0x23
)

// Configuration keys set on deploy.
const (
	authorityKey = "authority"
	approvalsKey = "approvals"
	nameKey      = "name"
	symbolKey    = "symbol"
	baseURIKey   = "baseURI"
)

// Exception messages.
const (
	ErrTokenNotFound     = "token not found"
	ErrNotTokenOwner     = "caller is not the token owner"
	ErrInvalidReceiver   = "invalid receiver"
	ErrInvalidOwner      = "invalid owner"
	ErrSpenderNotAllowed = "spender is not approved for the token"
)

// TokenState is a type that minted tokens are saved to.
type TokenState struct {
	Owner    interop.Hash160
	ID       []byte
	SeriesID string
}

// _deploy stores contract configuration on deploy. Deploy data must contain
// minting authority, approval management flag, contract name, symbol and base
// URI of the token metadata.
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]any)
	if len(args) != 5 {
		panic("invalid deploy arguments")
	}

	authority := args[0].(interop.Hash160)
	if !common.IsValidHash160(authority) {
		panic("invalid minting authority")
	}

	symbol := args[3].(string)
	if len(symbol) == 0 {
		panic("empty token symbol")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, authorityKey, authority)
	if args[1].(bool) {
		storage.Put(ctx, approvalsKey, 1)
	}
	storage.Put(ctx, nameKey, args[2].(string))
	storage.Put(ctx, symbolKey, symbol)
	storage.Put(ctx, baseURIKey, args[4].(string))
	storage.Put(ctx, []byte{prefixTotalSupply}, 0)
	storage.Put(ctx, []byte{prefixSeriesCount}, 0)

	runtime.Log("nft contract initialized")
}

// Update updates the contract. It must be witnessed by the minting authority.
func Update(nef []byte, manifest string, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAuthorityWitness(getMintingAuthority(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nef, manifest, common.AppendVersion(data))
	runtime.Log("nft contract updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// Symbol returns token symbol set on deploy.
func Symbol() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, symbolKey).(string)
}

// Decimals returns token decimals, tokens are not divisible.
func Decimals() int {
	return 0
}

// Name returns the name of the token collection.
func Name() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, nameKey).(string)
}

// BaseURI returns the prefix of relative media and reference links of the
// token metadata.
func BaseURI() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, baseURIKey).(string)
}

// MintingAuthority returns the account allowed to mint tokens of any series.
func MintingAuthority() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getMintingAuthority(ctx)
}

// TotalSupply returns the overall number of minted tokens.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getTotalSupply(ctx)
}

// OwnerOf returns the owner of the specified token.
func OwnerOf(tokenID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	ts := getTokenState(ctx, tokenID)
	return ts.Owner
}

// Properties returns the metadata of the series the token was minted from.
func Properties(tokenID []byte) map[string]any {
	ctx := storage.GetReadOnlyContext()
	ts := getTokenState(ctx, tokenID)
	s := getSeries(ctx, ts.SeriesID)
	return map[string]any{
		"name":        s.Metadata.Title,
		"description": s.Metadata.Description,
		"image":       s.Metadata.Media,
		"reference":   s.Metadata.Reference,
		"series":      ts.SeriesID,
	}
}

// BalanceOf returns the overall number of tokens owned by the specified owner.
func BalanceOf(owner interop.Hash160) int {
	if !common.IsValidHash160(owner) {
		panic(ErrInvalidOwner)
	}
	ctx := storage.GetReadOnlyContext()
	balance := storage.Get(ctx, append([]byte{prefixBalance}, owner...))
	if balance == nil {
		return 0
	}
	return balance.(int)
}

// Tokens returns iterator over IDs of all minted tokens.
func Tokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixToken}, storage.ValuesOnly|storage.DeserializeValues|storage.PickField1)
}

// TokensOf returns iterator over IDs of tokens owned by the specified owner.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if !common.IsValidHash160(owner) {
		panic(ErrInvalidOwner)
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

// Transfer transfers the token with the specified ID to a new owner. The
// transfer must be witnessed by the current owner. All approvals of the token
// are cleared and their storage is refunded to the previous owner.
func Transfer(to interop.Hash160, tokenID []byte, data any) bool {
	if !common.IsValidHash160(to) {
		panic(ErrInvalidReceiver)
	}
	var (
		tokenKey = getTokenKey(tokenID)
		ctx      = storage.GetContext()
	)
	ts := getTokenStateWithKey(ctx, tokenKey)
	if !runtime.CheckWitness(ts.Owner) {
		return false
	}
	transferToken(ctx, tokenKey, ts, to, data)
	return true
}

// TransferFrom transfers the token on behalf of its owner. Spender must be
// approved for the token, non-zero approvalID additionally pins the transfer
// to that exact approval, so superseded approvals are rejected.
func TransferFrom(spender, to interop.Hash160, tokenID []byte, approvalID int, data any) bool {
	if !common.IsValidHash160(to) {
		panic(ErrInvalidReceiver)
	}
	if !runtime.CheckWitness(spender) {
		return false
	}
	if !IsApproved(tokenID, spender, approvalID) {
		panic(ErrSpenderNotAllowed)
	}
	var (
		tokenKey = getTokenKey(tokenID)
		ctx      = storage.GetContext()
	)
	ts := getTokenStateWithKey(ctx, tokenKey)
	transferToken(ctx, tokenKey, ts, to, data)
	return true
}

// Mint creates a new token of the specified series owned by receiver. Only
// the minting authority set on deploy can mint, series creators can't.
// Token ID is `<series ID>:<number of the token in the series>`.
func Mint(seriesID string, receiver interop.Hash160) []byte {
	if !common.IsValidHash160(receiver) {
		panic(ErrInvalidReceiver)
	}
	ctx := storage.GetContext()
	common.CheckAuthorityWitness(getMintingAuthority(ctx))

	s := getSeries(ctx, seriesID)
	if !s.Mintable {
		panic(ErrSeriesNotMintable)
	}
	s.Minted = s.Minted + 1
	if s.Metadata.Copies > 0 && s.Minted >= s.Metadata.Copies {
		s.Mintable = false
	}
	putSeries(ctx, s)

	tokenID := []byte(seriesID + ":" + std.Itoa10(s.Minted))
	tokenKey := getTokenKey(tokenID)
	if storage.Get(ctx, append([]byte{prefixToken}, tokenKey...)) != nil {
		panic("token already exists")
	}
	putTokenStateWithKey(ctx, tokenKey, TokenState{
		Owner:    receiver,
		ID:       tokenID,
		SeriesID: seriesID,
	})
	storage.Put(ctx, append(getSeriesTokensKey(seriesID), tokenKey...), tokenID)

	updateTotalSupply(ctx, +1)
	updateBalance(ctx, tokenID, receiver, +1)

	var from interop.Hash160
	postTransfer(from, receiver, tokenID, nil)
	return tokenID
}

// transferToken moves the token to a new owner, clearing its approvals.
func transferToken(ctx storage.Context, tokenKey []byte, ts TokenState, to interop.Hash160, data any) {
	from := ts.Owner
	if !common.BytesEqual(from, to) {
		released := clearApprovals(ctx, tokenKey)

		ts.Owner = to
		putTokenStateWithKey(ctx, tokenKey, ts)

		updateBalance(ctx, ts.ID, from, -1)
		updateBalance(ctx, ts.ID, to, +1)

		common.RefundStorage(from, released)
	}
	postTransfer(from, to, ts.ID, data)
}

// updateBalance updates account's balance and account's tokens.
func updateBalance(ctx storage.Context, tokenID []byte, acc interop.Hash160, diff int) {
	balanceKey := append([]byte{prefixBalance}, acc...)
	var balance int
	if b := storage.Get(ctx, balanceKey); b != nil {
		balance = b.(int)
	}
	balance += diff
	if balance == 0 {
		storage.Delete(ctx, balanceKey)
	} else {
		storage.Put(ctx, balanceKey, balance)
	}

	tokenKey := getTokenKey(tokenID)
	accountTokenKey := append(append([]byte{prefixAccountToken}, acc...), tokenKey...)
	if diff < 0 {
		storage.Delete(ctx, accountTokenKey)
	} else {
		storage.Put(ctx, accountTokenKey, tokenID)
	}
}

// postTransfer sends Transfer notification to the network and calls onNEP11Payment
// method.
func postTransfer(from, to interop.Hash160, tokenID []byte, data any) {
	runtime.Notify("Transfer", from, to, 1, tokenID)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP11Payment", contract.All, from, 1, tokenID, data)
	}
}

// getMintingAuthority returns the account set on deploy.
func getMintingAuthority(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, authorityKey).(interop.Hash160)
}

// getTotalSupply returns total supply from storage.
func getTotalSupply(ctx storage.Context) int {
	val := storage.Get(ctx, []byte{prefixTotalSupply})
	return val.(int)
}

// updateTotalSupply adds the specified diff to the total supply.
func updateTotalSupply(ctx storage.Context, diff int) {
	tsKey := []byte{prefixTotalSupply}
	ts := getTotalSupply(ctx)
	storage.Put(ctx, tsKey, ts+diff)
}

// getTokenKey computes hash160 from the given tokenID.
func getTokenKey(tokenID []byte) []byte {
	return crypto.Ripemd160(tokenID)
}

// getTokenState returns token state by the specified tokenID.
func getTokenState(ctx storage.Context, tokenID []byte) TokenState {
	return getTokenStateWithKey(ctx, getTokenKey(tokenID))
}

// getTokenStateWithKey returns token state by the specified token key.
func getTokenStateWithKey(ctx storage.Context, tokenKey []byte) TokenState {
	tsBytes := storage.Get(ctx, append([]byte{prefixToken}, tokenKey...))
	if tsBytes == nil {
		panic(ErrTokenNotFound)
	}
	return std.Deserialize(tsBytes.([]byte)).(TokenState)
}

// putTokenStateWithKey stores token state with the specified token key.
func putTokenStateWithKey(ctx storage.Context, tokenKey []byte, ts TokenState) {
	common.SetSerialized(ctx, append([]byte{prefixToken}, tokenKey...), ts)
}
