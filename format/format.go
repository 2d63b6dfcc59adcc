package format

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/log"
	"github.com/ardnew/calcrst/unit"
)

// DefaultLocale determines digit grouping when no locale is configured.
var DefaultLocale = language.AmericanEnglish

// Formatter converts values to display strings.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	logger  log.Logger
}

// Option configures a [Formatter].
type Option func(*Formatter)

// WithLocale sets the locale used for digit grouping and the decimal mark.
func WithLocale(tag language.Tag) Option {
	return func(f *Formatter) { f.tag = tag }
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(f *Formatter) { f.logger = logger }
}

// New returns a Formatter.
func New(opts ...Option) *Formatter {
	f := &Formatter{tag: DefaultLocale}
	for _, opt := range opts {
		opt(f)
	}

	f.printer = message.NewPrinter(f.tag)

	return f
}

// ParseLocale parses a BCP 47 tag such as "en-US" or "de-DE".
func ParseLocale(s string) (language.Tag, error) {
	return language.Parse(s)
}

// Locale returns the configured locale.
func (f *Formatter) Locale() language.Tag { return f.tag }

// Number formats v with prec decimals and locale digit grouping.
func (f *Formatter) Number(v float64, prec int) string {
	return f.printer.Sprintf("%."+strconv.Itoa(max(prec, 0))+"f", v)
}

// Int formats v with locale digit grouping.
func (f *Formatter) Int(v int) string {
	return f.printer.Sprintf("%d", v)
}

// Quantity formats the magnitude of q at prec decimals followed by its unit.
// A non-empty target converts q first. A unitless quantity has no suffix.
func (f *Formatter) Quantity(q unit.Quantity, prec int, target string) (string, error) {
	if target = strings.TrimSpace(target); target != "" {
		u, err := unit.Parse(target)
		if err != nil {
			return "", err
		}

		if q, err = q.AsUnit(u); err != nil {
			return "", err
		}
	}

	s := f.Number(q.AsNumber(), prec)
	if u := q.StrUnit(); u != "" {
		s += " " + u
	}

	return s, nil
}

// Value formats v according to its shape:
//
//   - arrays are printed at prec with bracket markers
//   - lists are printed with bracket markers and one row per line
//   - quantities as by [Formatter.Quantity] without conversion
//   - floats as by [Formatter.Number], ints with grouping
//   - anything else as "name = value"
func (f *Formatter) Value(name string, v any, prec int) string {
	switch v := v.(type) {
	case calc.Array:
		return Mark(v.Format(prec), false)

	case []any:
		return Mark(Repr(v), true)

	case unit.Quantity:
		s, _ := f.Quantity(v, prec, "")

		return s

	case float64:
		return f.Number(v, prec)

	case int:
		return f.Int(v)
	}

	f.logger.Trace("format fallback",
		slog.String("name", name),
		slog.String("type", fmt.Sprintf("%T", v)),
	)

	return name + " = " + Repr(v)
}

// Mark inserts readability markers before opening brackets so nested rows
// stay aligned in a literal block: "[[" becomes ". [[" and each " [" becomes
// ".  [" in a 2-D form, and "[" becomes ". [" in a 1-D form. For lists, a
// line break follows every "],".
func Mark(s string, list bool) string {
	if strings.Contains(s, "[[") {
		s = strings.ReplaceAll(s, " [", ".  [")
		s = strings.ReplaceAll(s, "[[", ". [[")
	} else {
		s = strings.ReplaceAll(s, "[", ". [")
	}

	if list {
		s = strings.ReplaceAll(s, "],", "],\n")
	}

	return s
}

// Repr returns the plain string form of v: floats in shortest form with a
// decimal point, lists as "[a, b]", booleans as True or False and nil as
// None.
func Repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"

	case bool:
		if v {
			return "True"
		}

		return "False"

	case int:
		return strconv.Itoa(v)

	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}

		return s

	case string:
		return v

	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = Repr(e)
		}

		return "[" + strings.Join(parts, ", ") + "]"

	case fmt.Stringer:
		return v.String()
	}

	return fmt.Sprint(v)
}
