package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/nft-series-contract/deploy"
	"go.uber.org/zap"
)

const usage = `Usage: nftctl <command> [flags]

Commands:
  deploy  deploy NFT contract from compiled NEF and manifest files
  series  print all series of the deployed NFT contract
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "deploy":
		err = deployCmd(os.Args[2:])
	case "series":
		err = seriesCmd(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func deployCmd(args []string) error {
	fs := flag.NewFlagSet("deploy", flag.ExitOnError)
	neoRPCEndpoint := fs.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := fs.String("wallet", "", "Path to the wallet with the account paying for deployment")
	password := fs.String("password", "", "Password of the wallet account")
	nefPath := fs.String("nef", "", "Path to the compiled contract NEF file")
	manifestPath := fs.String("manifest", "", "Path to the contract manifest file")
	configPath := fs.String("config", "", "Path to the YAML file with the collection parameters")
	fs.String("authority", "", "Address of the minting authority (wallet account by default)")
	fs.Bool("approvals", true, "Enable approval management")
	fs.String("name", "", "Name of the token collection")
	fs.String("symbol", "", "Token symbol")
	fs.String("base-uri", "", "Base URI of the token metadata links")
	timeout := fs.Duration("timeout", time.Minute, "Deployment timeout")

	_ = fs.Parse(args)

	var (
		cfg deployConfig
		err error
	)
	if *configPath != "" {
		cfg, err = loadDeployConfig(*configPath)
		if err != nil {
			return err
		}
	}
	set := make(map[string]string)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
	err = cfg.merge(set)
	if err != nil {
		return err
	}

	switch {
	case *neoRPCEndpoint == "":
		return fmt.Errorf("missing Neo RPC endpoint")
	case *walletPath == "":
		return fmt.Errorf("missing wallet")
	case *nefPath == "" || *manifestPath == "":
		return fmt.Errorf("missing contract files")
	case cfg.Symbol == "":
		return fmt.Errorf("missing token symbol")
	}

	acc, err := openAccount(*walletPath, *password)
	if err != nil {
		return err
	}

	var prm deploy.NFTContractPrm
	prm.Common, err = readContract(*nefPath, *manifestPath)
	if err != nil {
		return err
	}
	if cfg.Authority != "" {
		prm.MintingAuthority, err = address.StringToUint160(cfg.Authority)
		if err != nil {
			return fmt.Errorf("invalid minting authority address: %w", err)
		}
	}
	prm.ApprovalsEnabled = cfg.approvalsEnabled()
	prm.Name = cfg.Name
	prm.Symbol = cfg.Symbol
	prm.BaseURI = cfg.BaseURI

	b, err := newRemoteBlockChain(*neoRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}
	defer b.close()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	addr, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:       logger,
		Blockchain:   b.rpc,
		LocalAccount: acc,
		NFTContract:  prm,
	})
	if err != nil {
		return err
	}

	log.Printf("NFT contract is deployed at %s (%s)\n", address.Uint160ToString(addr), addr.StringLE())
	return nil
}

func seriesCmd(args []string) error {
	fs := flag.NewFlagSet("series", flag.ExitOnError)
	neoRPCEndpoint := fs.String("rpc", "", "Network address of the Neo RPC server")
	contract := fs.String("contract", "", "Address or LE hash of the NFT contract")

	_ = fs.Parse(args)

	switch {
	case *neoRPCEndpoint == "":
		return fmt.Errorf("missing Neo RPC endpoint")
	case *contract == "":
		return fmt.Errorf("missing NFT contract")
	}

	h, err := parseContract(*contract)
	if err != nil {
		return err
	}

	b, err := newRemoteBlockChain(*neoRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}
	defer b.close()

	list, err := b.listSeries(h)
	if err != nil {
		return err
	}

	for i := range list {
		fmt.Println(formatSeries(list[i]))
	}
	return nil
}

func openAccount(path, password string) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	if len(w.Accounts) == 0 {
		return nil, fmt.Errorf("wallet %s has no accounts", path)
	}

	acc := w.Accounts[0]
	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}
	return acc, nil
}

func readContract(nefPath, manifestPath string) (deploy.CommonDeployPrm, error) {
	var res deploy.CommonDeployPrm

	data, err := os.ReadFile(nefPath)
	if err != nil {
		return res, fmt.Errorf("read NEF file: %w", err)
	}
	res.NEF, err = nef.FileFromBytes(data)
	if err != nil {
		return res, fmt.Errorf("decode NEF file: %w", err)
	}

	data, err = os.ReadFile(manifestPath)
	if err != nil {
		return res, fmt.Errorf("read manifest file: %w", err)
	}
	err = json.Unmarshal(data, &res.Manifest)
	if err != nil {
		return res, fmt.Errorf("decode manifest file: %w", err)
	}

	return res, nil
}

// parseContract accepts both Neo address and LE hex string of the hash.
func parseContract(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}
	h, err = util.Uint160DecodeStringLE(s)
	if err != nil {
		return h, fmt.Errorf("invalid contract '%s': neither address nor hash", s)
	}
	return h, nil
}
