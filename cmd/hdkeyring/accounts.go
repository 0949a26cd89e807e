package main

import (
	"context"
	"strings"

	"github.com/tdex-network/hd-keyring/pkg/hdkeyring"
	"github.com/urfave/cli/v2"
)

var accounts = cli.Command{
	Name:   "accounts",
	Usage:  "list the accounts of a keyring",
	Flags:  []cli.Flag{idFlag, passwordFlag},
	Action: accountsAction,
}

var add = cli.Command{
	Name:  "add",
	Usage: "derive the next accounts of a keyring",
	Flags: []cli.Flag{
		idFlag,
		passwordFlag,
		&cli.IntFlag{
			Name:  numAccountsFlagName,
			Usage: "the number of accounts to derive",
			Value: 1,
		},
	},
	Action: addAction,
}

var addprefixes = cli.Command{
	Name: "add-prefixes",
	Usage: "derive accounts until every given leading byte is found, all " +
		"derived accounts are added to the keyring",
	Flags: []cli.Flag{
		idFlag,
		passwordFlag,
		&cli.StringFlag{
			Name:  prefixesFlagName,
			Usage: "comma separated leading bytes, ie. 00,0a. Defaults to " +
				strings.Join(hdkeyring.DefaultBytePrefixes(), ","),
		},
	},
	Action: addPrefixesAction,
}

var addrange = cli.Command{
	Name: "add-range",
	Usage: "derive accounts until the last one has its leading byte in the " +
		"given range, all derived accounts are added to the keyring",
	Flags: []cli.Flag{
		idFlag,
		passwordFlag,
		&cli.StringFlag{
			Name:  rangeStartFlagName,
			Usage: "the inclusive lower bound of the range",
			Value: hdkeyring.DefaultByteRange().Start,
		},
		&cli.StringFlag{
			Name:  rangeEndFlagName,
			Usage: "the inclusive upper bound of the range",
			Value: hdkeyring.DefaultByteRange().End,
		},
	},
	Action: addRangeAction,
}

func accountsAction(ctx *cli.Context) error {
	svc, id, cleanup, err := getUnlockedKeyringService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := svc.GetAccounts(context.Background(), id)
	if err != nil {
		return err
	}

	return printRespJSON(ctx, accounts)
}

func addAction(ctx *cli.Context) error {
	svc, id, cleanup, err := getUnlockedKeyringService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := svc.AddAccounts(
		context.Background(), id, ctx.Int(numAccountsFlagName),
	)
	if err != nil {
		return err
	}

	return printRespJSON(ctx, accounts)
}

func addPrefixesAction(ctx *cli.Context) error {
	svc, id, cleanup, err := getUnlockedKeyringService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := svc.AddAccountsWithPrefixes(
		context.Background(), id, parseList(ctx.String(prefixesFlagName)),
	)
	if err != nil {
		return err
	}

	return printRespJSON(ctx, accounts)
}

func addRangeAction(ctx *cli.Context) error {
	svc, id, cleanup, err := getUnlockedKeyringService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := svc.AddAccountsWithByteRange(
		context.Background(),
		id,
		hdkeyring.ByteRange{
			Start: ctx.String(rangeStartFlagName),
			End:   ctx.String(rangeEndFlagName),
		},
	)
	if err != nil {
		return err
	}

	return printRespJSON(ctx, accounts)
}
