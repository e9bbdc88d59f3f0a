package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/samvidha/core"
	"github.com/trezcool/samvidha/core/dashboard"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out     io.Writer
	outFd   int
	logger  core.Logger
	dashSvc *dashboard.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  margin -conducted N -attended N [-target P]          - classes that can be missed / must be attended")
	fmt.Fprintln(cli.out, "  status -percentage P [-label LABEL]                  - attendance status category")
	fmt.Fprintln(cli.out, "  normalize -input FILE [-year Y]                      - normalize a JSON register (array of rows)")
	fmt.Fprintln(cli.out, "  report -attendance FILE [-biometric FILE] [-register FILE] [-target P] [-xlsx OUT]")
	fmt.Fprintln(cli.out, "                                                       - dashboard out of saved portal pages")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	marginCmd := cli.newFlagSet("margin")
	marginConducted := marginCmd.Int("conducted", -1, "Classes conducted so far.")
	marginAttended := marginCmd.Int("attended", -1, "Classes attended so far.")
	marginTarget := marginCmd.Float64("target", 0, "Target percentage (default: configured target).")

	statusCmd := cli.newFlagSet("status")
	statusPercentage := statusCmd.Float64("percentage", -1, "Attendance percentage.")
	statusLabel := statusCmd.String("label", "", "Status label as reported by the portal.")

	normalizeCmd := cli.newFlagSet("normalize")
	normalizeInput := normalizeCmd.String("input", "", "JSON file holding the register rows.")
	normalizeYear := normalizeCmd.Int("year", 0, "Reference year (default: configured year, else the current one).")

	reportCmd := cli.newFlagSet("report")
	reportAttendance := reportCmd.String("attendance", "", "Saved attendance page (HTML).")
	reportBiometric := reportCmd.String("biometric", "", "Saved biometric page (HTML).")
	reportRegister := reportCmd.String("register", "", "Saved register page (HTML).")
	reportTarget := reportCmd.Float64("target", 0, "Target percentage (default: configured target).")
	reportXlsx := reportCmd.String("xlsx", "", "Also write the report to this spreadsheet.")

	switch args[1] {
	case "margin":
		if err := parseFlags(marginCmd, args[2:]); err != nil {
			return err
		}
		if *marginConducted < 0 || *marginAttended < 0 {
			marginCmd.Usage()
			return errHelp
		}
		return cli.margin(*marginConducted, *marginAttended, *marginTarget)
	case "status":
		if err := parseFlags(statusCmd, args[2:]); err != nil {
			return err
		}
		if *statusPercentage < 0 {
			statusCmd.Usage()
			return errHelp
		}
		return cli.status(*statusPercentage, *statusLabel)
	case "normalize":
		if err := parseFlags(normalizeCmd, args[2:]); err != nil {
			return err
		}
		if *normalizeInput == "" {
			normalizeCmd.Usage()
			return errHelp
		}
		return cli.normalize(*normalizeInput, *normalizeYear)
	case "report":
		if err := parseFlags(reportCmd, args[2:]); err != nil {
			return err
		}
		if *reportAttendance == "" {
			reportCmd.Usage()
			return errHelp
		}
		return cli.report(reportOptions{
			attendance: *reportAttendance,
			biometric:  *reportBiometric,
			register:   *reportRegister,
			target:     *reportTarget,
			xlsx:       *reportXlsx,
		})
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// interactive reports whether the output is a terminal, in which case results are printed as text.
func (cli *commandLine) interactive() bool {
	return isTerminalFunc(cli.outFd)
}

// print writes `v` as indented JSON, or calls `text` when the output is a terminal.
func (cli *commandLine) print(v interface{}, text func(w io.Writer)) error {
	if cli.interactive() {
		text(cli.out)
		return nil
	}
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding result")
}
