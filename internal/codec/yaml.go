package codec

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/nestdict/internal/ir"
)

func decodeYAML(data []byte) (any, error) {
	var out any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyDocument
		}
		return nil, err
	}
	return out, nil
}

// encodeYAML writes mapping keys in sorted order. Whole floats are written
// without a fraction and read back as ints.
func encodeYAML(v ir.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ir.ToGo(v)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
