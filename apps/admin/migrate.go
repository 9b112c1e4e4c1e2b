package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/storage/database"
)

var (
	gooseRunFunc = database.RunMigrations // mockable
	openDBFunc   = database.Open          // mockable

	errNotPostgres = errors.New("migrations only apply to the postgres engine; sqlite and memory stores migrate on open")
)

func (cli *commandLine) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS]",
		Short: "Run a goose migration command (up, up-by-one, up-to, down, down-to, redo, reset, status, version, fix)",
		Args:  requireArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.migrate(args)
		},
	}
}

func (cli *commandLine) migrate(args []string) error {
	if cli.conf.Database.Engine != core.EnginePostgres {
		return errNotPostgres
	}
	db, err := openDBFunc(cli.conf)
	if err != nil {
		return err
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()
	return gooseRunFunc(db, args[0], args[1:]...)
}
