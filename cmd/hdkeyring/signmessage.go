package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

const (
	addressFlagName = "address"
	messageFlagName = "message"
	hexFlagName     = "hex"
)

var addressFlag = &cli.StringFlag{
	Name:     addressFlagName,
	Usage:    "the account of the keyring that signs",
	Required: true,
}

var signmessage = cli.Command{
	Name:  "sign-message",
	Usage: "sign a personal message (EIP-191) with an account of the keyring",
	Flags: []cli.Flag{
		idFlag,
		passwordFlag,
		addressFlag,
		&cli.StringFlag{
			Name:     messageFlagName,
			Usage:    "the message to sign",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  hexFlagName,
			Usage: "whether the message is a 0x prefixed hex string",
		},
	},
	Action: signMessageAction,
}

func signMessageAction(ctx *cli.Context) error {
	msg := []byte(ctx.String(messageFlagName))
	if ctx.Bool(hexFlagName) {
		buf, err := hexutil.Decode(string(msg))
		if err != nil {
			return fmt.Errorf("invalid hex message: %w", err)
		}
		msg = buf
	}

	svc, id, cleanup, err := getUnlockedKeyringService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	sig, err := svc.SignPersonalMessage(
		context.Background(), id, ctx.String(addressFlagName), msg,
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(sig))
	return nil
}
