package nft

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/nft-series-contract/common"
)

// metadataFields is the number of positional TokenMetadata fields.
const metadataFields = 8

// maxSeriesPrice is an exclusive upper bound of the series price, 10^33.
const maxSeriesPrice = "1000000000000000000000000000000000"

// Exception messages of the series registry.
const (
	ErrSeriesNotFound    = "series not found"
	ErrSeriesNotMintable = "series is not mintable"
	ErrDuplicateSeries   = "duplicate series id"
	ErrTitleRequired     = "token metadata title is required"
	ErrPriceTooHigh      = "price higher than " + maxSeriesPrice
	ErrNegativePrice     = "price must be non-negative"
	ErrInvalidMetadata   = "invalid token metadata"
)

// TokenMetadata describes all tokens of a series. Only Title is mandatory,
// absent fields are nil (zero for Copies).
type TokenMetadata struct {
	Title         []byte
	Description   []byte
	Media         []byte
	MediaHash     []byte
	Copies        int
	Extra         []byte
	Reference     []byte
	ReferenceHash []byte
}

// Series is a template tokens are minted from.
type Series struct {
	ID       string
	Metadata TokenMetadata
	Creator  interop.Hash160
	// Price is nil if the creator didn't set it.
	Price    any
	Mintable bool
	Minted   int
}

// ListSeries returns all created series.
func ListSeries() []Series {
	ctx := storage.GetReadOnlyContext()

	result := []Series{}
	it := storage.Find(ctx, []byte{prefixSeries}, storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		s := iterator.Value(it).(Series)
		result = append(result, s)
	}
	return result
}

// GetSeries returns the series with the specified ID.
func GetSeries(seriesID string) Series {
	ctx := storage.GetReadOnlyContext()
	return getSeries(ctx, seriesID)
}

// SeriesTokens returns iterator over IDs of the tokens minted from the series.
func SeriesTokens(seriesID string) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	_ = getSeries(ctx, seriesID) // ensure series exists

	return storage.Find(ctx, getSeriesTokensKey(seriesID), storage.ValuesOnly)
}

// SetNonMintable stops minting of the series. It must be witnessed by the
// series creator.
func SetNonMintable(seriesID string) {
	ctx := storage.GetContext()
	s := getSeries(ctx, seriesID)
	common.CheckOwnerWitness(s.Creator)

	if !s.Mintable {
		return
	}
	s.Mintable = false
	putSeries(ctx, s)
	runtime.Notify("SetNonMintable", seriesID)
}

// createSeries registers a new series created by payer. Its ID is the number
// of series including the new one. Storage used by the series is paid from
// the deposit, the rest is returned to payer.
func createSeries(payer interop.Hash160, deposit int, metadata []any, price any) {
	md := metadataFromArgs(metadata)
	if md.Title == nil {
		panic(ErrTitleRequired)
	}
	if price != nil {
		p := price.(int)
		if p < 0 {
			panic(ErrNegativePrice)
		}
		if p >= std.Atoi10(maxSeriesPrice) {
			panic(ErrPriceTooHigh)
		}
	}

	ctx := storage.GetContext()
	countKey := []byte{prefixSeriesCount}
	count := 1
	if c := storage.Get(ctx, countKey); c != nil {
		count = c.(int) + 1
	}
	seriesID := std.Itoa10(count)

	key := append([]byte{prefixSeries}, []byte(seriesID)...)
	if storage.Get(ctx, key) != nil {
		panic(ErrDuplicateSeries)
	}

	s := Series{
		ID:       seriesID,
		Metadata: md,
		Creator:  payer,
		Price:    price,
		Mintable: true,
	}
	used := common.PutMetered(ctx, key, std.Serialize(s))
	used += common.PutMetered(ctx, countKey, count)

	runtime.Notify("CreateSeries", seriesID, md, payer, price)
	common.ChargeDeposit(payer, deposit, used)
}

// metadataFromArgs converts positional metadata fields into TokenMetadata.
func metadataFromArgs(args []any) TokenMetadata {
	if len(args) != metadataFields {
		panic(ErrInvalidMetadata)
	}
	return TokenMetadata{
		Title:         optBytes(args[0]),
		Description:   optBytes(args[1]),
		Media:         optBytes(args[2]),
		MediaHash:     optBytes(args[3]),
		Copies:        optInt(args[4]),
		Extra:         optBytes(args[5]),
		Reference:     optBytes(args[6]),
		ReferenceHash: optBytes(args[7]),
	}
}

func optBytes(v any) []byte {
	if v == nil {
		return nil
	}
	return v.([]byte)
}

func optInt(v any) int {
	if v == nil {
		return 0
	}
	n := v.(int)
	if n < 0 {
		panic(ErrInvalidMetadata)
	}
	return n
}

func getSeries(ctx storage.Context, seriesID string) Series {
	data := storage.Get(ctx, append([]byte{prefixSeries}, []byte(seriesID)...))
	if data == nil {
		panic(ErrSeriesNotFound)
	}
	return std.Deserialize(data.([]byte)).(Series)
}

func putSeries(ctx storage.Context, s Series) {
	common.SetSerialized(ctx, append([]byte{prefixSeries}, []byte(s.ID)...), s)
}

// getSeriesTokensKey returns the prefix of the series member tokens, series
// ID is hashed to keep the keys prefix-free.
func getSeriesTokensKey(seriesID string) []byte {
	return append([]byte{prefixSeriesToken}, crypto.Ripemd160([]byte(seriesID))...)
}
