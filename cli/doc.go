// Package cli contains the command line interface for calcrst.
//
// # Usage
//
// The default command renders a model next to itself:
//
//	calcrst beam.yaml            # writes beam.rst
//	calcrst render beam.yaml -o - --decimals 2,2
//	calcrst eval beam.yaml 'M / S'
//	calcrst fmt json beam.yaml
//	calcrst repl beam.yaml
//
// # Configuration
//
// Flags may also be set in a YAML file in the user configuration directory
// (see [pkg.ConfigDir]), which the init command writes from the current flag
// values. A JSON file of the same base name is read as well. Command-line
// flags override both.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o calcrst .
//
// The profiling flags are then:
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
