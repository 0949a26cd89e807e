package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var export = cli.Command{
	Name: "export",
	Usage: "print the serialized state of the keyring, mnemonic included. " +
		"Keep it secret",
	Flags:  []cli.Flag{idFlag, passwordFlag},
	Action: exportAction,
}

func exportAction(ctx *cli.Context) error {
	svc, id, cleanup, err := getUnlockedKeyringService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	state, err := svc.ExportKeyring(context.Background(), id)
	if err != nil {
		return err
	}

	return printRespJSON(ctx, state)
}
