package main

import (
	"context"

	"github.com/tdex-network/hd-keyring/internal/core/application"
	"github.com/tdex-network/hd-keyring/pkg/hdkeyring"
	"github.com/urfave/cli/v2"
)

const (
	numAccountsFlagName = "num_accounts"
	prefixesFlagName    = "prefixes"
	rangeStartFlagName  = "range_start"
	rangeEndFlagName    = "range_end"
)

var create = cli.Command{
	Name:  "create",
	Usage: "create a new keyring, optionally deriving its first accounts",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "a label for the keyring",
		},
		&cli.StringFlag{
			Name:  "seed",
			Usage: "the mnemonic of the keyring, a new one is generated if omitted",
		},
		passwordFlag,
		&cli.StringFlag{
			Name:  "hd_path",
			Usage: "the derivation path accounts are children of",
		},
		&cli.IntFlag{
			Name:  numAccountsFlagName,
			Usage: "the number of accounts to derive",
		},
		&cli.StringFlag{
			Name:  prefixesFlagName,
			Usage: "comma separated leading bytes to derive accounts for, ie. 00,0a",
		},
		&cli.StringFlag{
			Name:  rangeStartFlagName,
			Usage: "derive accounts until one has its leading byte in the range",
		},
		&cli.StringFlag{
			Name:  rangeEndFlagName,
			Usage: "the inclusive upper bound of the leading byte range",
			Value: hdkeyring.DefaultByteRange().End,
		},
	},
	Action: createAction,
}

type createReply struct {
	Keyring  application.KeyringInfo `json:"keyring"`
	Accounts []string                `json:"accounts"`
}

func createAction(ctx *cli.Context) error {
	numOfCriteria := 0
	for _, name := range []string{
		numAccountsFlagName, prefixesFlagName, rangeStartFlagName,
	} {
		if ctx.IsSet(name) {
			numOfCriteria++
		}
	}
	if numOfCriteria > 1 || (ctx.IsSet(rangeEndFlagName) && !ctx.IsSet(rangeStartFlagName)) {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	svc, cleanup, err := getKeyringService()
	if err != nil {
		return err
	}
	defer cleanup()

	opts := application.CreateKeyringOpts{
		Name:             ctx.String("name"),
		Mnemonic:         ctx.String("seed"),
		Passphrase:       ctx.String(passwordFlagName),
		HDPath:           ctx.String("hd_path"),
		NumberOfAccounts: ctx.Int(numAccountsFlagName),
	}
	if ctx.IsSet(prefixesFlagName) {
		opts.BytePrefixes = parseList(ctx.String(prefixesFlagName))
	}
	if ctx.IsSet(rangeStartFlagName) {
		opts.ByteRange = &hdkeyring.ByteRange{
			Start: ctx.String(rangeStartFlagName),
			End:   ctx.String(rangeEndFlagName),
		}
	}

	info, accounts, err := svc.CreateKeyring(context.Background(), opts)
	if err != nil {
		return err
	}

	return printRespJSON(ctx, createReply{*info, accounts})
}
