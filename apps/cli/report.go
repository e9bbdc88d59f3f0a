package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/samvidha/core"
	"github.com/trezcool/samvidha/core/dashboard"
	"github.com/trezcool/samvidha/services/export"
)

type reportOptions struct {
	attendance string
	biometric  string
	register   string
	target     float64
	xlsx       string
}

func (cli *commandLine) report(opts reportOptions) error {
	var pages dashboard.Pages
	var err error
	if pages.Attendance, err = readPage(opts.attendance); err != nil {
		return err
	}
	if pages.Biometric, err = readPage(opts.biometric); err != nil {
		return err
	}
	if pages.Register, err = readPage(opts.register); err != nil {
		return err
	}

	rep, err := cli.dashSvc.Import(pages, opts.target)
	if err != nil {
		return err
	}

	if opts.xlsx != "" {
		if err = writeWorkbook(opts.xlsx, rep); err != nil {
			return err
		}
		var args []interface{}
		if rep.Student != nil {
			args = append(args, core.Person{ID: rep.Student.RollNo, Username: rep.Student.Name})
		}
		cli.logger.Info(fmt.Sprintf("workbook written to %s", opts.xlsx), args...)
	}

	return cli.print(rep, func(w io.Writer) {
		printReport(w, rep)
	})
}

// readPage returns "" for an empty path.
func readPage(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading portal page")
	}
	return string(data), nil
}

func writeWorkbook(path string, rep dashboard.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating workbook")
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrap(cErr, "closing workbook")
		}
	}()
	return export.WriteWorkbook(f, rep)
}

func printReport(w io.Writer, rep dashboard.Report) {
	if rep.Student != nil {
		fmt.Fprintf(w, "%s (%s)\n", rep.Student.Name, rep.Student.RollNo)
	}
	fmt.Fprintf(w, "Target: %v%%  Overall: %.2f%%\n\n", rep.TargetPercent, rep.OverallAverage)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tCOURSE\tATTENDED\tPERCENT\tSTATUS\tMARGIN")
	for _, c := range rep.Courses {
		margin := c.Error
		if c.Margin != nil {
			margin = describeMargin(*c.Margin, rep.TargetPercent)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\t%s\n",
			c.Code, c.Name, c.Attended, c.Conducted, formatPercent(c.Percentage), c.Status, margin)
	}
	_ = tw.Flush()

	if len(rep.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped: %v\n", rep.Skipped)
	}
	if b := rep.Biometric; b != nil {
		fmt.Fprintf(w, "\nBiometric: %d/%d days present (%.2f%%)\n", b.Present, b.Adjusted, b.Percentage)
	}
	if len(rep.Register) > 0 {
		fmt.Fprintln(w, "\nRegister:")
		printRegister(w, rep.Register)
	}
}

func formatPercent(p dashboard.Percent) string {
	data, _ := p.MarshalJSON()
	if string(data) == "null" {
		return "-"
	}
	return string(data) + "%"
}
