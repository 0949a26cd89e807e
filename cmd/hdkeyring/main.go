package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hd-keyring/internal/config"
	"github.com/tdex-network/hd-keyring/internal/core/application"
	"github.com/tdex-network/hd-keyring/internal/core/ports"
	dbbadger "github.com/tdex-network/hd-keyring/internal/infrastructure/storage/db/badger"
	postgresdb "github.com/tdex-network/hd-keyring/internal/infrastructure/storage/db/pg"
	"github.com/urfave/cli/v2"
)

const (
	idFlagName       = "id"
	passwordFlagName = "password"
)

var (
	idFlag = &cli.StringFlag{
		Name:     idFlagName,
		Usage:    "the id of the keyring",
		Required: true,
	}
	passwordFlag = &cli.StringFlag{
		Name:     passwordFlagName,
		Usage:    "the password used to encrypt the mnemonic of the keyring",
		Required: true,
	}
)

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "hdkeyring"
	app.Usage = "Command line interface to manage HD Ethereum keyrings"
	app.Before = func(*cli.Context) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
		return nil
	}
	app.Commands = append(
		app.Commands,
		&genseed,
		&create,
		&list,
		&accounts,
		&add,
		&addprefixes,
		&addrange,
		&signmessage,
		&signtx,
		&export,
		&changepassword,
	)
	return app
}

func getKeyringService() (application.KeyringService, func(), error) {
	repoManager, err := newRepoManager()
	if err != nil {
		return nil, nil, err
	}

	svc := application.NewKeyringService(repoManager, config.GetKeyringConfig())
	return svc, repoManager.Close, nil
}

// getUnlockedKeyringService unlocks the keyring selected with the id and
// password flags before returning the service.
func getUnlockedKeyringService(
	ctx *cli.Context,
) (application.KeyringService, string, func(), error) {
	svc, cleanup, err := getKeyringService()
	if err != nil {
		return nil, "", nil, err
	}

	id := ctx.String(idFlagName)
	if err := svc.UnlockKeyring(
		context.Background(), id, ctx.String(passwordFlagName),
	); err != nil {
		cleanup()
		return nil, "", nil, err
	}
	return svc, id, cleanup, nil
}

func newRepoManager() (ports.RepoManager, error) {
	switch config.GetString(config.DBTypeKey) {
	case application.DBPostgres:
		return postgresdb.NewRepoManager(postgresdb.DbConfig{
			DataSourceURL: config.GetString(config.PgConnectAddrKey),
		})
	default:
		return dbbadger.NewRepoManager(
			config.GetDbDir(), log.WithField("db", application.DBBadger),
		)
	}
}

// parseList splits a comma separated flag value, ignoring blanks.
func parseList(str string) []string {
	list := make([]string, 0)
	for _, s := range strings.Split(str, ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}
	return list
}

func printRespJSON(ctx *cli.Context, resp interface{}) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to decode response: %w", err)
	}

	fmt.Fprintln(ctx.App.Writer, string(jsonBytes))
	return nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[hdkeyring] %v\n", err)
	}
	os.Exit(1)
}
