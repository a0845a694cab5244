package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// printer writes command output in the format selected by --format.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	f := strings.ToLower(format)
	switch f {
	case formatTable, formatJSON:
		return &printer{format: f, w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, table)", format)
	}
}

func (p *printer) json() bool {
	return p.format == formatJSON
}

// encode writes v as indented JSON.
func (p *printer) encode(v any) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// compact renders a record value on one line for table output.
func compact(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
