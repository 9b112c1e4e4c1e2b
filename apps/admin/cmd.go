package main

import (
	"fmt"
	"io"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/views"
	"github.com/trezcool/darasa/storage"
)

var (
	isTerminalFunc = isTerminal   // mockable
	openStoreFunc  = storage.Open // mockable

	errHelp = errors.New("help provided")
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type commandLine struct {
	conf       *core.Config
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer

	store *storage.Store // opened on first use
}

// services opens the configured store and wires the page services on top of it.
func (cli *commandLine) services() (views.Services, error) {
	if cli.store == nil {
		store, err := openStoreFunc(cli.conf)
		if err != nil {
			return views.Services{}, errors.Wrap(err, "opening store")
		}
		cli.store = store
	}
	return views.Services{
		Students:   student.NewService(cli.store.Students, cli.validate),
		Grades:     grade.NewService(cli.store.Grades, cli.store.Students, cli.validate),
		Attendance: attendance.NewService(cli.store.Attendance, cli.store.Students, cli.validate),
		Logger:     cli.logger,
		Translator: cli.translator,
	}, nil
}

func (cli *commandLine) close() error {
	if cli.store == nil {
		return nil
	}
	return cli.store.Close()
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, a...)
}

// requireArgs prints the usage and stops when fewer than n args are given.
func requireArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			_ = cmd.Usage()
			return errHelp
		}
		return nil
	}
}

func (cli *commandLine) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "Darasa administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	cmd.SetOut(cli.out)
	cmd.SetErr(cli.out)

	cmd.AddCommand(cli.migrateCommand())
	cmd.AddCommand(cli.seedCommand())
	cmd.AddCommand(cli.importCommand())
	cmd.AddCommand(cli.exportCommand())
	return cmd
}

// run executes args, program name included.
func (cli *commandLine) run(args []string) error {
	cmd := cli.rootCommand()
	if len(args) > 0 {
		args = args[1:]
	}
	cmd.SetArgs(args)
	return cmd.Execute()
}
