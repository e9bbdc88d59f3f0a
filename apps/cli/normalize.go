package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/samvidha/core/attendance"
)

func (cli *commandLine) normalize(input string, year int) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, "reading register")
	}
	var rows []attendance.RegisterRow
	if err = json.Unmarshal(data, &rows); err != nil {
		return errors.Wrapf(err, "decoding register %s", input)
	}

	if year == 0 {
		year = cli.dashSvc.ReferenceYear()
	}
	rows = attendance.NewNormalizer(year).Normalize(rows)
	if rows == nil {
		rows = []attendance.RegisterRow{}
	}

	return cli.print(rows, func(w io.Writer) {
		printRegister(w, rows)
	})
}

func printRegister(w io.Writer, rows []attendance.RegisterRow) {
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, c.Label+": "+c.Value)
		}
		fmt.Fprintln(w, strings.Join(cells, " | "))
	}
}
