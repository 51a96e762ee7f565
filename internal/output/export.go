package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Format represents the JSON layout of exported documents
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatCompact Format = "compact"
)

// indent is the indentation used for pretty printed documents and bodies
const indent = "    "

// FormatFor returns the pretty format when pretty is set and compact otherwise
func FormatFor(pretty bool) Format {
	if pretty {
		return FormatPretty
	}
	return FormatCompact
}

// Marshal serializes v as JSON without HTML escaping. Pretty output uses a
// four space indent.
func Marshal(v interface{}, format Format) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	switch format {
	case FormatPretty:
		enc.SetIndent("", indent)
	case FormatCompact:
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteDocument writes already serialized JSON to filePath, or stdout when empty
func WriteDocument(data []byte, filePath string) error {
	w, closer, err := getWriter(filePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if filePath == "" {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// getWriter returns an io.Writer for output (stdout or file)
func getWriter(filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return os.Stdout, nil, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

// ParseFormat parses a string into a Format, returning error if invalid
func ParseFormat(s string) (Format, error) {
	switch s {
	case "pretty":
		return FormatPretty, nil
	case "compact":
		return FormatCompact, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'pretty' or 'compact'", s)
	}
}
