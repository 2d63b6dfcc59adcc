package calc

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/klauspost/readahead"
)

// ReadData parses delimited numeric data after skipping skip leading lines.
// sep "*" splits on whitespace; "" and "," split on commas; anything else is
// used verbatim. Blank and "#" lines are ignored.
//
// A single row or a single column yields a 1-D array, anything else a 2-D
// array. Rows must all have the same number of fields.
func ReadData(r io.Reader, sep string, skip int) (Array, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	split := func(s string) []string { return strings.Split(s, sep) }

	switch sep {
	case "*":
		split = strings.Fields
	case "":
		sep = ","
	}

	var rows [][]float64

	scanner := bufio.NewScanner(ra)

	for num := 1; scanner.Scan(); num++ {
		if num <= skip {
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := split(line)
		row := make([]float64, 0, len(fields))

		for _, f := range fields {
			if f = strings.TrimSpace(f); f == "" {
				continue
			}

			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Array{}, ErrData.Wrap(err).With(slog.Int("line", num))
			}

			row = append(row, v)
		}

		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return Array{}, ErrData.Wrap(err)
	}

	switch {
	case len(rows) == 0:
		return Vector(), nil

	case len(rows) == 1:
		return Vector(rows[0]...), nil

	case allWidth(rows, 1):
		col := make([]float64, len(rows))
		for i, r := range rows {
			col[i] = r[0]
		}

		return Vector(col...), nil
	}

	return Matrix(rows...)
}

func allWidth(rows [][]float64, n int) bool {
	for _, r := range rows {
		if len(r) != n {
			return false
		}
	}

	return true
}
