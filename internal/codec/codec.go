package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/nestdict/internal/ir"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
	FormatCBOR  Format = "cbor"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatJSONC, FormatYAML, FormatCBOR}

// ParseFormat resolves a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return "", fmt.Errorf("unknown format %q (expected json, jsonc, yaml or cbor)", name)
}

// FormatFromPath picks a format from a file extension. Unknown extensions
// fall back to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonc":
		return FormatJSONC
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	default:
		return FormatJSON
	}
}

// Decode parses data in format f into a value tree.
func Decode(data []byte, f Format) (ir.Value, error) {
	var (
		raw any
		err error
	)
	switch f {
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatJSONC:
		raw, err = decodeJSONC(data)
	case FormatYAML:
		raw, err = decodeYAML(data)
	case FormatCBOR:
		raw, err = decodeCBOR(data)
	default:
		return nil, fmt.Errorf("decode: unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}

	v, err := ir.FromGo(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	return v, nil
}

// Encode renders v in format f. JSON and JSONC output is RFC 8785
// canonical JSON.
func Encode(v ir.Value, f Format) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch f {
	case FormatJSON, FormatJSONC:
		out, err = ir.MarshalCanonical(v)
	case FormatYAML:
		out, err = encodeYAML(v)
	case FormatCBOR:
		out, err = encodeCBOR(v)
	default:
		return nil, fmt.Errorf("encode: unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	return out, nil
}

// ReadFile decodes the file at path. An empty format is inferred from the
// extension.
func ReadFile(path string, f Format) (ir.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if f == "" {
		f = FormatFromPath(path)
	}
	return Decode(data, f)
}
