package main

import (
	"fmt"
	"io"

	"github.com/trezcool/samvidha/core/attendance"
)

func (cli *commandLine) margin(conducted, attended int, targetPercent float64) error {
	target := cli.dashSvc.Target(targetPercent)
	res, err := attendance.ComputeMargin(conducted, attended, target)
	if err != nil {
		return err
	}

	return cli.print(res, func(w io.Writer) {
		fmt.Fprintln(w, describeMargin(res, target))
	})
}

func (cli *commandLine) status(percentage float64, label string) error {
	st := attendance.Classify(percentage, label)
	return cli.print(struct {
		Status attendance.StatusCategory `json:"status"`
	}{st}, func(w io.Writer) {
		fmt.Fprintln(w, st)
	})
}

func describeMargin(res attendance.MarginResult, target float64) string {
	if res.Safe {
		return fmt.Sprintf("Safe: %d class(es) can be missed while staying at or above %v%%.", res.Count, target)
	}
	return fmt.Sprintf("Unsafe: attend the next %d class(es) to reach %v%%.", res.Count, target)
}
