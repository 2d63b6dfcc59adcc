package format

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/calcrst/unit"
)

// Decimals is a decimal spec: the precision of values substituted into
// equations and of results.
type Decimals struct {
	Eq, Result int
}

// DefaultDecimals is used when no spec is given or a spec does not parse.
var DefaultDecimals = Decimals{Eq: 3, Result: 3}

// String returns the spec in "e,r" form.
func (d Decimals) String() string {
	return strconv.Itoa(d.Eq) + "," + strconv.Itoa(d.Result)
}

// ParseDecimals parses "e,r" or a single "n" meaning "n,n". An empty spec
// yields [DefaultDecimals] without error.
//
// Any other input also yields [DefaultDecimals], resets the ambient quantity
// precision to its default, and returns an error for the caller to record.
func ParseDecimals(spec string) (Decimals, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return DefaultDecimals, nil
	}

	e, r, pair := strings.Cut(spec, ",")

	eq, err := ParsePrecision(e)
	if err != nil {
		return fallback(spec, err)
	}

	res := eq

	if pair {
		if res, err = ParsePrecision(r); err != nil {
			return fallback(spec, err)
		}
	}

	return Decimals{Eq: eq, Result: res}, nil
}

func fallback(spec string, err error) (Decimals, error) {
	unit.ResetPrecision()

	return DefaultDecimals, ErrDecimals.Wrap(err).With(slog.String("spec", spec))
}

// ParsePrecision parses a non-negative decimal count.
func ParsePrecision(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}

	if n < 0 || n > 15 {
		return 0, ErrDecimals.With(slog.Int("precision", n))
	}

	return n, nil
}
