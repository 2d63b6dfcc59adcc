package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/calcrst/log"
)

// resolve is a [kong.ConfigurationLoader] that reads a YAML configuration
// file, such as the one written by the init command.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The document is flattened into flag names:
//   - Keys may use hyphens or underscores ("log-level" or "log_level")
//   - Nested mappings join their keys with a hyphen, so "log: {level: debug}"
//     sets --log-level
//   - Sequences become comma-separated lists
//   - Numbers are passed to Kong as strings
//
// Example configuration file:
//
//	log:
//	  level: debug
//	  pretty: false
//	locale: de-DE
//	path: [lib, data]
//
// Command-line flags override configuration values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return config{}, nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}

// flatten stores every leaf of m under its hyphen-joined key path.
func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := value.(map[string]any); ok {
			c.flatten(name, sub)

			continue
		}

		c[name] = scalar(value)
	}
}

// scalar converts a decoded YAML value to a form Kong maps onto flags.
func scalar(v any) any {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case int:
		return strconv.Itoa(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(scalar(e))
		}

		return strings.Join(parts, ",")

	case nil, bool, string:
		return v
	}

	log.Debug("unsupported configuration value", slog.Any("value", v))

	return fmt.Sprint(v)
}
