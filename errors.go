package nftjson

import (
	"fmt"
	"strconv"
)

// DecodeError reports wire JSON that does not match any expected shape.
// Path names every intermediate key and index down to the offending node,
// e.g. `.nftables[0].rule.expr[2].match.left`. Decoding never guesses on
// ambiguous input; a DecodeError is always surfaced to the caller.
type DecodeError struct {
	Path string
	Msg  string
	Err  error
}

func (e *DecodeError) Error() string {
	p := e.Path
	if p == "" {
		p = "."
	}
	if e.Err != nil {
		return fmt.Sprintf("nftjson: %s: %s: %v", p, e.Msg, e.Err)
	}
	return fmt.Sprintf("nftjson: %s: %s", p, e.Msg)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// path is the JSON location of the node currently being decoded.
type path string

func (p path) field(name string) path {
	if isIdent(name) {
		return p + path("."+name)
	}
	return p + path(`["`+name+`"]`)
}

func (p path) index(i int) path {
	return p + path("["+strconv.Itoa(i)+"]")
}

func isIdent(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

func errAt(p path, format string, args ...any) *DecodeError {
	return &DecodeError{Path: string(p), Msg: fmt.Sprintf(format, args...)}
}
