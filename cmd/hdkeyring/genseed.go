package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var genseed = cli.Command{
	Name:   "genseed",
	Usage:  "generate a mnemonic seed",
	Action: genSeedAction,
}

func genSeedAction(ctx *cli.Context) error {
	svc, cleanup, err := getKeyringService()
	if err != nil {
		return err
	}
	defer cleanup()

	seed, err := svc.GenSeed(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, seed)
	return nil
}
