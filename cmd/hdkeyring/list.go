package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var list = cli.Command{
	Name:   "list",
	Usage:  "list all stored keyrings",
	Action: listAction,
}

func listAction(ctx *cli.Context) error {
	svc, cleanup, err := getKeyringService()
	if err != nil {
		return err
	}
	defer cleanup()

	keyrings, err := svc.ListKeyrings(context.Background())
	if err != nil {
		return err
	}

	return printRespJSON(ctx, keyrings)
}
