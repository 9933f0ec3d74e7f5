package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output file format.
type Format int

const (
	FormatSVG Format = iota
	FormatDXF
	FormatPNG
)

var formatNames = [...]string{
	FormatSVG: "svg",
	FormatDXF: "dxf",
	FormatPNG: "png",
}

func (f Format) String() string {
	if int(f) >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ErrUnknownFormat is returned when a format name or extension is not
// recognized.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format name, case-insensitively and with or without
// a leading dot.
func ParseFormat(s string) (Format, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}
