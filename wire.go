package nftjson

import (
	"bytes"
	"encoding/json"
)

// wrapObject emits the single-key-object dispatch shape {"key": value}.
func wrapObject(key string, v any) ([]byte, error) {
	inner, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return wrapRaw(key, inner), nil
}

// wrapNull emits a bare dispatch key with an explicit no-payload marker.
func wrapNull(key string) []byte {
	return wrapRaw(key, []byte("null"))
}

func wrapRaw(key string, inner []byte) []byte {
	k, _ := json.Marshal(key)
	var buf bytes.Buffer
	buf.Grow(len(k) + len(inner) + 3)
	buf.WriteByte('{')
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(inner)
	buf.WriteByte('}')
	return buf.Bytes()
}

// wrapPair emits {"key": [a, b]}, the fixed-position 2-tuple shape used by
// binary operations and ranges.
func wrapPair(key string, a, b Expr) ([]byte, error) {
	inner, err := json.Marshal([2]Expr{a, b})
	if err != nil {
		return nil, err
	}
	return wrapRaw(key, inner), nil
}
