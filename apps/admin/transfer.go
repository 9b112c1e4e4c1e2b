package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/views"
)

var errBinaryToTerminal = errors.New("refusing to write a binary report to the terminal; use --out or redirect the output")

func (cli *commandLine) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Create students from a roster spreadsheet",
		Args:  requireArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.importStudents(cmd.Context(), args[0])
		},
	}
}

func (cli *commandLine) importStudents(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	rows, err := report.ReadStudents(f)
	if err != nil {
		return err
	}

	svcs, err := cli.services()
	if err != nil {
		return err
	}
	page := views.NewStudents(svcs)
	if err := page.Load(ctx); err != nil {
		return err
	}
	res, err := page.Import(ctx, rows)
	for _, rowErr := range res.Errors {
		cli.printf("row %d: %s\n", rowErr.Row, rowErr.Error)
	}
	cli.printf("imported %d of %d students\n", len(res.Created), len(rows))
	return err
}

type exportOptions struct {
	format   string
	out      string
	date     string
	search   string
	category string
}

func (cli *commandLine) exportCommand() *cobra.Command {
	var opts exportOptions
	cmd := &cobra.Command{
		Use:       "export grades|attendance",
		Short:     "Write a grade or attendance report",
		Args:      requireArgs(1),
		ValidArgs: []string{string(report.KindGrades), string(report.KindAttendance)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.export(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", string(report.FormatCSV), "report format (csv|pdf|xlsx)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.date, "date", "", "attendance day as YYYY-MM-DD (default: every day)")
	cmd.Flags().StringVar(&opts.search, "search", "", "grades: student or assignment name")
	cmd.Flags().StringVar(&opts.category, "category", "", "grades: assignment category")
	return cmd
}

func (cli *commandLine) export(ctx context.Context, rawKind string, opts exportOptions) (err error) {
	kind, err := report.ParseKind(rawKind)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	var w io.Writer = cli.out
	if opts.out == "" {
		if format != report.FormatCSV && isTerminalFunc(w) {
			return errBinaryToTerminal
		}
	} else {
		var f *os.File
		if f, err = os.Create(opts.out); err != nil {
			return err
		}
		defer func() {
			if cErr := f.Close(); err == nil {
				err = cErr
			}
		}()
		w = f
	}

	svcs, err := cli.services()
	if err != nil {
		return err
	}

	var rep report.Report
	switch kind {
	case report.KindGrades:
		page := views.NewGrades(svcs)
		if err := page.Load(ctx); err != nil {
			return err
		}
		page.SetFilter(grade.QueryFilter{Search: opts.search, Category: grade.Category(opts.category)})
		rep = page.Report()
	default:
		var day time.Time
		if opts.date != "" {
			if day, err = core.ParseDay(opts.date); err != nil {
				return errors.Wrap(err, "parsing --date")
			}
		}
		page := views.NewAttendance(svcs)
		if err := page.Load(ctx); err != nil {
			return err
		}
		rep = page.Report(day)
	}

	if err := report.Write(w, rep, format); err != nil {
		return err
	}
	if opts.out != "" {
		cli.printf("wrote %s (%d rows) to %s\n", rep.Title, len(rep.Rows), opts.out)
	}
	return nil
}
