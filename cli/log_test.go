package cli

import "testing"

func TestLogScan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		pretty bool
		caller bool
	}{
		{
			name:   "separate values",
			args:   []string{"--log-level", "debug", "render", "--log-format", "json"},
			level:  "debug",
			format: "json",
			pretty: true,
		},
		{
			name:   "assigned values",
			args:   []string{"--log-level=warn", "--log-caller", "--no-log-pretty"},
			level:  "warn",
			format: "text",
			caller: true,
		},
		{
			name:   "assigned booleans",
			args:   []string{"--log-pretty=false", "--no-log-caller=false"},
			level:  "info",
			format: "text",
			caller: true,
		},
		{
			name:   "after terminator",
			args:   []string{"--", "--log-level", "error"},
			level:  "info",
			format: "text",
			pretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Level: "info", Format: "text", Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format ||
				f.Pretty != tt.pretty || f.Caller != tt.caller {
				t.Errorf("scan(%q) = %+v", tt.args, f)
			}
		})
	}
}
