package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		log   func(l *Logger, format string, v ...interface{})
	}{
		{"[INFO]", (*Logger).Info},
		{"[DEBUG]", (*Logger).Debug},
		{"[WARN]", (*Logger).Warn},
		{"[ERROR]", (*Logger).Error},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		l := NewLogger("placematch ")
		l.SetOutput(&buf)

		test.log(l, "count=%d", 7)

		out := buf.String()
		if !strings.Contains(out, test.level+" count=7") {
			t.Errorf("output %q missing %q with message", out, test.level)
		}
		if !strings.Contains(out, "placematch ") {
			t.Errorf("output %q missing prefix", out)
		}
	}
}
