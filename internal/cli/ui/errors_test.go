package ui

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestMessageFormat(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		contains []string
		excludes []string
	}{
		{
			name: "context and detail",
			msg: Message{
				Level:   LevelError,
				Context: "resource not found",
				Problem: "SIGNR",
				Detail:  "No resource named 'SIGNR' is loaded.",
			},
			contains: []string{"✗ RESOURCE NOT FOUND: SIGNR", "   No resource named 'SIGNR' is loaded."},
			excludes: []string{"Did you mean"},
		},
		{
			name: "suggestions",
			msg: Message{
				Problem:     "SIGNR",
				Suggestions: []string{"SIGNOR", "SIGNOR2"},
			},
			contains: []string{"Did you mean: SIGNOR, SIGNOR2?"},
		},
		{
			name: "hints",
			msg: Message{
				Problem: "broken",
				Hints:   []string{"See registered kinds: resctl kinds"},
			},
			contains: []string{"   → See registered kinds: resctl kinds"},
		},
		{
			name:     "warning",
			msg:      Message{Level: LevelWarning, Problem: "no resources loaded"},
			contains: []string{"! no resources loaded"},
		},
		{
			name:     "info",
			msg:      Message{Level: LevelInfo, Problem: "watching"},
			contains: []string{"i watching"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.msg.NoColor = true
			output := tt.msg.Format()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(output, unwanted) {
					t.Errorf("output unexpectedly contains %q:\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestMessageNoColor(t *testing.T) {
	if os.Getenv("NO_COLOR") != "" {
		t.Skip("NO_COLOR is set")
	}
	color.NoColor = false
	defer func() { color.NoColor = true }()

	output := ResourceNotFound("X", []string{"Y"}, true).Format()
	if strings.Contains(output, "\x1b[") {
		t.Errorf("expected no escape sequences, got %q", output)
	}

	output = ResourceNotFound("X", nil, false).Format()
	if !strings.Contains(output, "\x1b[") {
		t.Errorf("expected escape sequences, got %q", output)
	}
}

func TestMessageWrite(t *testing.T) {
	var buf bytes.Buffer
	Warning("registry is empty", true).Write(&buf)
	if buf.String() != "! registry is empty\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDomainMessages(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		contains []string
	}{
		{
			name:     "resource not found",
			msg:      ResourceNotFound("SIGNR", []string{"SIGNOR"}, true),
			contains: []string{"RESOURCE NOT FOUND: SIGNR", "Did you mean: SIGNOR?", "resctl resources"},
		},
		{
			name:     "unknown category",
			msg:      UnknownCategory("enzyme_substrat", "EnzymeSubstratResource", []string{"enzyme_substrate"}, true),
			contains: []string{"UNKNOWN CATEGORY: enzyme_substrat", "EnzymeSubstratResource", "resctl kinds"},
		},
		{
			name:     "construction failed",
			msg:      ConstructionFailed("SIGNOR", "complex", errors.New("input_method is required"), true),
			contains: []string{"CONSTRUCTION FAILED: SIGNOR (complex)", "input_method is required", "resctl resource SIGNOR"},
		},
		{
			name:     "malformed source",
			msg:      MalformedSource("resources.json", errors.New("unexpected EOF"), true),
			contains: []string{"MALFORMED RESOURCE INFORMATION: resources.json", "unexpected EOF"},
		},
		{
			name:     "config",
			msg:      ConfigError("log.level: invalid", true),
			contains: []string{"CONFIGURATION ERROR: log.level: invalid", "resctl.yml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.msg.Format()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestFormatSuccess(t *testing.T) {
	if got := FormatSuccess("loaded 3 resources", true); got != "✓ loaded 3 resources" {
		t.Errorf("FormatSuccess() = %q", got)
	}

	var buf bytes.Buffer
	WriteSuccess(&buf, "done", true)
	if buf.String() != "✓ done\n" {
		t.Errorf("WriteSuccess() wrote %q", buf.String())
	}
}
