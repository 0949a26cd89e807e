package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/tdex-network/hd-keyring/internal/config"
	"github.com/urfave/cli/v2"
)

const (
	txFlagName      = "tx"
	chainIDFlagName = "chain_id"
)

var signtx = cli.Command{
	Name:  "sign-tx",
	Usage: "sign a transaction with an account of the keyring",
	Flags: []cli.Flag{
		idFlag,
		passwordFlag,
		addressFlag,
		&cli.StringFlag{
			Name:     txFlagName,
			Usage:    "the 0x prefixed hex of the binary encoded unsigned transaction",
			Required: true,
		},
		&cli.Int64Flag{
			Name:  chainIDFlagName,
			Usage: "the chain id to sign for, overrides the configured one",
		},
	},
	Action: signTxAction,
}

func signTxAction(ctx *cli.Context) error {
	buf, err := hexutil.Decode(ctx.String(txFlagName))
	if err != nil {
		return fmt.Errorf("invalid hex transaction: %w", err)
	}
	tx := &types.Transaction{}
	if err := tx.UnmarshalBinary(buf); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	chainID := config.GetInt64(config.ChainIDKey)
	if ctx.IsSet(chainIDFlagName) {
		chainID = ctx.Int64(chainIDFlagName)
	}

	svc, id, cleanup, err := getUnlockedKeyringService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	signedTx, err := svc.SignTransaction(
		context.Background(),
		id,
		ctx.String(addressFlagName),
		tx,
		big.NewInt(chainID),
	)
	if err != nil {
		return err
	}

	signedBuf, err := signedTx.MarshalBinary()
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(signedBuf))
	return nil
}
