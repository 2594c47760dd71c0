package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/nft-series-contract/rpc/nft"
)

// wrapper over rpcNeo providing blockchain services needed for current command.
type remoteBlockchain struct {
	rpc *rpcclient.Client
	inv *invoker.Invoker
}

// newRemoteBlockChain dials Neo RPC server and returns remoteBlockchain based
// on the opened connection. Connection and all requests are done within 15
// timeout.
func newRemoteBlockChain(blockChainRPCEndpoint string) (*remoteBlockchain, error) {
	c, err := rpcclient.New(context.Background(), blockChainRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return &remoteBlockchain{
		rpc: c,
		inv: invoker.New(c, nil),
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// listSeries reads all series of the NFT contract referenced by given address.
func (x *remoteBlockchain) listSeries(contract util.Uint160) ([]*nft.Series, error) {
	list, err := nft.NewReader(x.inv, contract).ListSeries()
	if err != nil {
		return nil, fmt.Errorf("list series of the contract '%s': %w", contract.StringLE(), err)
	}
	return list, nil
}

// formatSeries returns one-line human-readable series description. Media and
// reference hashes are printed in base58.
func formatSeries(s *nft.Series) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %q by %s", s.ID, s.Metadata.Title, address.Uint160ToString(s.Creator))
	if s.Price != nil {
		fmt.Fprintf(&sb, ", price %s", s.Price)
	}
	fmt.Fprintf(&sb, ", minted %s", s.Minted)
	if s.Metadata.Copies != nil && s.Metadata.Copies.Sign() > 0 {
		fmt.Fprintf(&sb, "/%s", s.Metadata.Copies)
	}
	if !s.Mintable {
		sb.WriteString(" (closed)")
	}
	if s.Metadata.Media != "" {
		fmt.Fprintf(&sb, ", media %s", s.Metadata.Media)
		if len(s.Metadata.MediaHash) != 0 {
			fmt.Fprintf(&sb, " [%s]", base58.Encode(s.Metadata.MediaHash))
		}
	}
	if s.Metadata.Reference != "" {
		fmt.Fprintf(&sb, ", reference %s", s.Metadata.Reference)
		if len(s.Metadata.ReferenceHash) != 0 {
			fmt.Fprintf(&sb, " [%s]", base58.Encode(s.Metadata.ReferenceHash))
		}
	}
	return sb.String()
}
