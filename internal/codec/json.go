package codec

import (
	"bytes"
	"errors"

	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/jsonc"
)

var errEmptyDocument = errors.New("empty document")

func decodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyDocument
	}
	return oj.Parse(data)
}

// decodeJSONC strips comments and trailing commas, then parses as JSON.
func decodeJSONC(data []byte) (any, error) {
	return decodeJSON(jsonc.ToJSON(data))
}
