package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/roach88/nestdict/internal/ir"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

// decMode decodes untyped maps as map[string]any so the result converts
// directly into a value tree.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

func decodeCBOR(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, errEmptyDocument
	}
	var out any
	if err := decMode.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeCBOR(v ir.Value) ([]byte, error) {
	return encMode.Marshal(ir.ToGo(v))
}
