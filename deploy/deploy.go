package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// NFTContractPrm groups deployment parameters of the NFT contract.
type NFTContractPrm struct {
	Common CommonDeployPrm

	// Account allowed to mint tokens and update the contract. Zero value
	// means the local account.
	MintingAuthority util.Uint160

	// Enables approval management of the contract.
	ApprovalsEnabled bool

	// Name, symbol and base URI of the token collection. Symbol must not be
	// empty.
	Name    string
	Symbol  string
	BaseURI string
}

// Prm groups all parameters of the deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance the contract is deployed to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It pays for the deployment and determines contract address.
	LocalAccount *wallet.Account

	NFTContract NFTContractPrm
}

// ContractAddress returns the address the NFT contract gets after deployment
// by the sender.
func ContractAddress(sender util.Uint160, prm CommonDeployPrm) util.Uint160 {
	return state.CreateContractHash(sender, prm.NEF.Checksum, prm.Manifest.Name)
}

// Deploy deploys the NFT contract to the blockchain and returns its address.
// If the contract is already deployed by the local account, Deploy does
// nothing and returns its address.
//
// Deploy waits for the deployment transaction to be accepted. It aborts by
// context or when the transaction fails.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	// wrap the parent context into the context of the current function so that
	// transaction wait routine does not leak
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if prm.NFTContract.Symbol == "" {
		return util.Uint160{}, errors.New("empty token symbol")
	}

	sender := prm.LocalAccount.ScriptHash()
	addr := ContractAddress(sender, prm.NFTContract.Common)
	l := prm.Logger.With(zap.Stringer("address", addr))

	_, err := prm.Blockchain.GetContractStateByHash(addr)
	if err == nil {
		l.Info("NFT contract is already deployed, skip")
		return addr, nil
	} else if !isErrContractNotFound(err) {
		return util.Uint160{}, fmt.Errorf("get state of the NFT contract by address: %w", err)
	}

	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	l.Info("NFT contract is missing on the chain, deploying...")

	txHash, vub, err := management.New(localActor).Deploy(&prm.NFTContract.Common.NEF,
		&prm.NFTContract.Common.Manifest, deployData(sender, prm.NFTContract))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send transaction deploying NFT contract: %w", err)
	}

	l.Info("transaction deploying NFT contract has been sent, waiting...",
		zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	err = awaitHalt(ctx, localActor, txHash, vub)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("deploy NFT contract: %w", err)
	}

	l.Info("NFT contract successfully deployed")

	return addr, nil
}

// deployData returns arguments of the contract '_deploy' method.
func deployData(sender util.Uint160, prm NFTContractPrm) []any {
	authority := prm.MintingAuthority
	if authority.Equals(util.Uint160{}) {
		authority = sender
	}
	return []any{authority, prm.ApprovalsEnabled, prm.Name, prm.Symbol, prm.BaseURI}
}

// txWaiter is implemented by *actor.Actor.
type txWaiter interface {
	Wait(h util.Uint256, vub uint32, err error) (*state.AppExecResult, error)
}

// awaitHalt waits for the transaction to be accepted and checks it
// finished with 'HALT' state. Actor.Wait doesn't accept a context, so after
// ctx is done the waiting goroutine keeps polling until the transaction is
// accepted or its valid-until block passes.
func awaitHalt(ctx context.Context, a txWaiter, txHash util.Uint256, vub uint32) error {
	type waitResult struct {
		res *state.AppExecResult
		err error
	}

	ch := make(chan waitResult, 1)
	go func() {
		res, err := a.Wait(txHash, vub, nil)
		ch <- waitResult{res, err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), r.err)
		}
		if r.res.VMState != vmstate.Halt {
			return fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), r.res.FaultException)
		}
		return nil
	}
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}
