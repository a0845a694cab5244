package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Level is the severity of a console message
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Message describes a console message: a headline, optional detail and
// the follow-up hints printed below it.
type Message struct {
	Level       Level
	Context     string
	Problem     string
	Detail      string
	Suggestions []string
	Hints       []string
	NoColor     bool
}

func paint(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

func (m Message) palette() (header, body *color.Color, symbol string) {
	switch m.Level {
	case LevelWarning:
		return paint(m.NoColor, color.FgYellow, color.Bold), paint(m.NoColor, color.FgYellow), "!"
	case LevelInfo:
		return paint(m.NoColor, color.FgCyan, color.Bold), paint(m.NoColor, color.FgCyan), "i"
	default:
		return paint(m.NoColor, color.FgRed, color.Bold), paint(m.NoColor, color.FgRed), "✗"
	}
}

// Format renders the message.
//
// Example output:
//
//	✗ UNKNOWN CATEGORY: enzyme_substrat
//	   No descriptor kind EnzymeSubstratResource is registered.
//
//	   Did you mean: enzyme_substrate?
//
//	   → See registered kinds: resctl kinds
func (m Message) Format() string {
	var b strings.Builder
	header, body, symbol := m.palette()

	if m.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(m.Context), m.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, m.Problem)
	}

	if m.Detail != "" {
		body.Fprintf(&b, "   %s\n", m.Detail)
	}

	if len(m.Suggestions) > 0 {
		b.WriteString("\n")
		paint(m.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(m.Suggestions, ", "))
	}

	if len(m.Hints) > 0 {
		b.WriteString("\n")
		cyan := paint(m.NoColor, color.FgCyan)
		for _, hint := range m.Hints {
			cyan.Fprintf(&b, "   → %s\n", hint)
		}
	}

	return b.String()
}

// Write writes the formatted message to w.
func (m Message) Write(w io.Writer) {
	fmt.Fprint(w, m.Format())
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return paint(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// ResourceNotFound reports a resource name missing from the registry.
func ResourceNotFound(name string, suggestions []string, noColor bool) Message {
	return Message{
		Level:       LevelError,
		Context:     "resource not found",
		Problem:     name,
		Detail:      fmt.Sprintf("No resource named '%s' is loaded.", name),
		Suggestions: suggestions,
		Hints: []string{
			"See all resources: resctl resources",
			"Add a source: resctl --registry <file> resources",
		},
		NoColor: noColor,
	}
}

// UnknownCategory reports a category with no registered descriptor kind.
func UnknownCategory(category, typeName string, suggestions []string, noColor bool) Message {
	return Message{
		Level:       LevelError,
		Context:     "unknown category",
		Problem:     category,
		Detail:      fmt.Sprintf("No descriptor kind %s is registered.", typeName),
		Suggestions: suggestions,
		Hints: []string{
			"See registered kinds: resctl kinds",
		},
		NoColor: noColor,
	}
}

// ConstructionFailed reports a descriptor that could not be built.
func ConstructionFailed(resource, category string, err error, noColor bool) Message {
	return Message{
		Level:   LevelError,
		Context: "construction failed",
		Problem: fmt.Sprintf("%s (%s)", resource, category),
		Detail:  err.Error(),
		Hints: []string{
			fmt.Sprintf("Inspect the record: resctl resource %s", resource),
		},
		NoColor: noColor,
	}
}

// MalformedSource reports a resource information file that cannot be decoded.
func MalformedSource(path string, err error, noColor bool) Message {
	return Message{
		Level:   LevelError,
		Context: "malformed resource information",
		Problem: path,
		Detail:  err.Error(),
		Hints: []string{
			"The file must hold one object mapping resource names to records",
		},
		NoColor: noColor,
	}
}

// ConfigError reports an invalid configuration.
func ConfigError(message string, noColor bool) Message {
	return Message{
		Level:   LevelError,
		Context: "configuration error",
		Problem: message,
		Hints: []string{
			"View config: cat resctl.yml",
			"Get help: resctl --help",
		},
		NoColor: noColor,
	}
}

// Warning creates a warning message
func Warning(message string, noColor bool) Message {
	return Message{Level: LevelWarning, Problem: message, NoColor: noColor}
}

// Info creates an info message
func Info(message string, noColor bool) Message {
	return Message{Level: LevelInfo, Problem: message, NoColor: noColor}
}
