package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

const (
	curPwdFlagName = "current_password"
	newPwdFlagName = "new_password"
)

var changepassword = cli.Command{
	Name:  "changepassword",
	Usage: "change the password used to encrypt the mnemonic of a keyring",
	Flags: []cli.Flag{
		idFlag,
		&cli.StringFlag{
			Name:     curPwdFlagName,
			Usage:    "the current password",
			Required: true,
		},
		&cli.StringFlag{
			Name:     newPwdFlagName,
			Usage:    "the new password",
			Required: true,
		},
	},
	Action: changePasswordAction,
}

func changePasswordAction(ctx *cli.Context) error {
	svc, cleanup, err := getKeyringService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.ChangePassphrase(
		context.Background(),
		ctx.String(idFlagName),
		ctx.String(curPwdFlagName),
		ctx.String(newPwdFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "password changed")
	return nil
}
