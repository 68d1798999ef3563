package nftjson

import "encoding/json"

// decodeExpr probes the untagged expression union in a fixed precedence
// order: scalar immediates first, then arrays, then the single-key object
// kinds. The dispatch key of an object form decides the variant outright;
// a payload that does not fit that variant is an error, never a fallthrough.
func decodeExpr(p path, raw json.RawMessage) (Expr, error) {
	switch jsonKind(raw) {
	case '"':
		s, err := decodeString(p, raw)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case 't', 'f':
		b, err := decodeBool(p, raw)
		if err != nil {
			return nil, err
		}
		return Boolean(b), nil
	case '[':
		list, err := decodeExprList(p, raw)
		if err != nil {
			return nil, err
		}
		return ListExpr(list), nil
	case '{':
		return decodeExprObject(p, raw)
	case 'n':
		return nil, errAt(p, "expected expression, got null")
	default:
		n, err := decodeUint[uint32](p, raw)
		if err != nil {
			return nil, err
		}
		return Number(n), nil
	}
}

func decodeExprObject(p path, raw json.RawMessage) (Expr, error) {
	key, val, err := singleKey(p, raw)
	if err != nil {
		return nil, err
	}
	kp := p.field(key)
	if _, ok := binaryOpSet[BinaryOp(key)]; ok {
		left, right, err := decodePair(kp, val)
		if err != nil {
			return nil, err
		}
		return Binary{Op: BinaryOp(key), Left: left, Right: right}, nil
	}
	switch key {
	case "range":
		from, to, err := decodePair(kp, val)
		if err != nil {
			return nil, err
		}
		return Range{From: from, To: to}, nil
	case "concat":
		list, err := decodeExprList(kp, val)
		if err != nil {
			return nil, err
		}
		return Concat(list), nil
	case "set":
		return decodeSetExpr(kp, val)
	case "map":
		return decodeMapExpr(kp, val)
	case "prefix":
		return decodePrefix(kp, val)
	case "payload":
		return decodePayload(kp, val)
	case "exthdr":
		return decodeExthdr(kp, val)
	case "tcp option":
		name, field, err := decodeNameField(kp, val)
		if err != nil {
			return nil, err
		}
		return TCPOption{Name: name, Field: field}, nil
	case "sctp chunk":
		name, field, err := decodeNameField(kp, val)
		if err != nil {
			return nil, err
		}
		return SCTPChunk{Name: name, Field: field}, nil
	case "meta":
		return decodeMeta(kp, val)
	case "rt":
		return decodeRT(kp, val)
	case "ct":
		return decodeCT(kp, val)
	case "numgen":
		return decodeNumgen(kp, val)
	case "jhash":
		return decodeJHash(kp, val)
	case "symhash":
		return decodeSymHash(kp, val)
	case "fib":
		return decodeFib(kp, val)
	case "elem":
		return decodeElemExpr(kp, val)
	case "socket":
		f, err := objectFields(kp, val)
		if err != nil {
			return nil, err
		}
		k, err := reqString(f, "key")
		if err != nil {
			return nil, err
		}
		return Socket{Key: k}, nil
	case "osf":
		return decodeOsf(kp, val)
	case "accept", "drop", "continue", "return", "jump", "goto":
		return decodeVerdictExpr(p, key, val)
	}
	return nil, errAt(p, "unknown expression %q", key)
}

// decodeVerdictExpr returns the verdict as an Expr. Verdicts accept a null
// or empty payload; jump and goto require a target.
func decodeVerdictExpr(p path, key string, val json.RawMessage) (Expr, error) {
	s, err := decodeVerdictStmt(p, key, val)
	if err != nil {
		return nil, err
	}
	return s.(Expr), nil
}

func decodeVerdictStmt(p path, key string, val json.RawMessage) (Stmt, error) {
	kp := p.field(key)
	bare := func() error {
		if isNull(val) {
			return nil
		}
		f, err := objectFields(kp, val)
		if err != nil {
			return err
		}
		if len(f.m) != 0 {
			return errAt(kp, "expected null or empty object")
		}
		return nil
	}
	switch key {
	case "accept":
		return Accept{}, bare()
	case "drop":
		return Drop{}, bare()
	case "continue":
		return Continue{}, bare()
	case "return":
		return Return{}, bare()
	}
	f, err := objectFields(kp, val)
	if err != nil {
		return nil, err
	}
	target, err := reqString(f, "target")
	if err != nil {
		return nil, err
	}
	if key == "jump" {
		return Jump{Target: target}, nil
	}
	return Goto{Target: target}, nil
}

// decodePair enforces the exact 2-tuple arity of binary operations and
// ranges.
func decodePair(p path, raw json.RawMessage) (Expr, Expr, error) {
	if jsonKind(raw) != '[' {
		return nil, nil, errAt(p, "expected 2-element array, got %s", jsonKindName(raw))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, &DecodeError{Path: string(p), Msg: "malformed array", Err: err}
	}
	if len(items) != 2 {
		return nil, nil, errAt(p, "expected exactly 2 elements, got %d", len(items))
	}
	left, err := decodeExpr(p.index(0), items[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := decodeExpr(p.index(1), items[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func decodeSetExpr(p path, raw json.RawMessage) (SetExpr, error) {
	items, err := decodeSetItems(p, raw)
	if err != nil {
		return nil, err
	}
	out := make(SetExpr, len(items))
	for i, e := range items {
		if si, ok := e.(SetItem); ok {
			out[i] = si
		} else {
			out[i] = SetItem{Elem: e}
		}
	}
	return out, nil
}

// decodeSetItems reads an element list. A 2-element array is a mapping: its
// right side is a statement when its dispatch key names one, a value
// expression otherwise. Any other array is a plain list expression element.
func decodeSetItems(p path, raw json.RawMessage) ([]Expr, error) {
	if jsonKind(raw) != '[' {
		return nil, errAt(p, "expected array, got %s", jsonKindName(raw))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Path: string(p), Msg: "malformed array", Err: err}
	}
	out := make([]Expr, len(items))
	for i, item := range items {
		ip := p.index(i)
		if jsonKind(item) == '[' {
			var pair []json.RawMessage
			if err := json.Unmarshal(item, &pair); err != nil {
				return nil, &DecodeError{Path: string(ip), Msg: "malformed array", Err: err}
			}
			if len(pair) == 2 {
				si, err := decodeSetMapping(ip, pair)
				if err != nil {
					return nil, err
				}
				out[i] = si
				continue
			}
		}
		e, err := decodeExpr(ip, item)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeSetMapping(p path, pair []json.RawMessage) (SetItem, error) {
	var si SetItem
	elem, err := decodeExpr(p.index(0), pair[0])
	if err != nil {
		return si, err
	}
	si.Elem = elem
	rp := p.index(1)
	if jsonKind(pair[1]) == '{' {
		if key, val, err := singleKey(rp, pair[1]); err == nil && isStmtOnlyKey(key) {
			stmt, err := decodeStmtObject(rp, key, val)
			if err != nil {
				return si, err
			}
			si.Stmt = stmt
			return si, nil
		}
	}
	val, err := decodeExpr(rp, pair[1])
	if err != nil {
		return si, err
	}
	si.Value = val
	return si, nil
}

func decodeMapExpr(p path, raw json.RawMessage) (MapExpr, error) {
	var m MapExpr
	f, err := objectFields(p, raw)
	if err != nil {
		return m, err
	}
	if m.Key, err = reqExpr(f, "key"); err != nil {
		return m, err
	}
	if m.Data, err = reqExpr(f, "data"); err != nil {
		return m, err
	}
	return m, nil
}

func decodePrefix(p path, raw json.RawMessage) (Prefix, error) {
	var pf Prefix
	f, err := objectFields(p, raw)
	if err != nil {
		return pf, err
	}
	if pf.Addr, err = reqExpr(f, "addr"); err != nil {
		return pf, err
	}
	lenRaw, err := f.require("len")
	if err != nil {
		return pf, err
	}
	if pf.Len, err = decodeUint[uint32](f.at("len"), lenRaw); err != nil {
		return pf, err
	}
	return pf, nil
}

// decodePayload disambiguates the two payload forms by their field sets:
// protocol/field names a header field, base/offset/len a raw window. A
// payload mixing properties from both sets is rejected outright.
func decodePayload(p path, raw json.RawMessage) (Expr, error) {
	f, err := objectFields(p, raw)
	if err != nil {
		return nil, err
	}
	_, hasProtocol := f.get("protocol")
	_, hasField := f.get("field")
	_, hasBase := f.get("base")
	_, hasOffset := f.get("offset")
	_, hasLen := f.get("len")
	named := hasProtocol || hasField
	rawForm := hasBase || hasOffset || hasLen
	switch {
	case named && rawForm:
		return nil, errAt(p, "payload mixes named-field and raw properties")
	case named:
		var pf PayloadField
		if pf.Protocol, err = reqString(f, "protocol"); err != nil {
			return nil, err
		}
		if pf.Field, err = reqString(f, "field"); err != nil {
			return nil, err
		}
		return pf, nil
	case rawForm:
		var pr PayloadRaw
		if pr.Base, err = reqToken(f, "base", payloadBaseSet); err != nil {
			return nil, err
		}
		offsetRaw, err := f.require("offset")
		if err != nil {
			return nil, err
		}
		if pr.Offset, err = decodeUint[uint32](f.at("offset"), offsetRaw); err != nil {
			return nil, err
		}
		lenRaw, err := f.require("len")
		if err != nil {
			return nil, err
		}
		if pr.Len, err = decodeUint[uint32](f.at("len"), lenRaw); err != nil {
			return nil, err
		}
		return pr, nil
	default:
		return nil, errAt(p, "payload requires protocol/field or base/offset/len")
	}
}

func decodeExthdr(p path, raw json.RawMessage) (Exthdr, error) {
	var e Exthdr
	f, err := objectFields(p, raw)
	if err != nil {
		return e, err
	}
	if e.Name, err = reqString(f, "name"); err != nil {
		return e, err
	}
	if e.Field, err = optString(f, "field"); err != nil {
		return e, err
	}
	if e.Offset, err = optUintPtr[uint32](f, "offset"); err != nil {
		return e, err
	}
	return e, nil
}

func decodeNameField(p path, raw json.RawMessage) (string, string, error) {
	f, err := objectFields(p, raw)
	if err != nil {
		return "", "", err
	}
	name, err := reqString(f, "name")
	if err != nil {
		return "", "", err
	}
	field, err := optString(f, "field")
	if err != nil {
		return "", "", err
	}
	return name, field, nil
}

func decodeMeta(p path, raw json.RawMessage) (Meta, error) {
	var m Meta
	f, err := objectFields(p, raw)
	if err != nil {
		return m, err
	}
	if m.Key, err = reqToken(f, "key", metaKeySet); err != nil {
		return m, err
	}
	return m, nil
}

func decodeRT(p path, raw json.RawMessage) (RT, error) {
	var r RT
	f, err := objectFields(p, raw)
	if err != nil {
		return r, err
	}
	if r.Key, err = reqToken(f, "key", rtKeySet); err != nil {
		return r, err
	}
	if r.Family, err = optToken(f, "family", rtFamilySet); err != nil {
		return r, err
	}
	return r, nil
}

func decodeCT(p path, raw json.RawMessage) (CT, error) {
	var c CT
	f, err := objectFields(p, raw)
	if err != nil {
		return c, err
	}
	if c.Key, err = reqString(f, "key"); err != nil {
		return c, err
	}
	if c.Family, err = optToken(f, "family", ctFamilySet); err != nil {
		return c, err
	}
	if c.Dir, err = optToken(f, "dir", ctDirSet); err != nil {
		return c, err
	}
	return c, nil
}

func decodeNumgen(p path, raw json.RawMessage) (Numgen, error) {
	var n Numgen
	f, err := objectFields(p, raw)
	if err != nil {
		return n, err
	}
	if n.Mode, err = reqToken(f, "mode", numgenModeSet); err != nil {
		return n, err
	}
	modRaw, err := f.require("mod")
	if err != nil {
		return n, err
	}
	if n.Mod, err = decodeUint[uint32](f.at("mod"), modRaw); err != nil {
		return n, err
	}
	if n.Offset, err = optUintPtr[uint32](f, "offset"); err != nil {
		return n, err
	}
	return n, nil
}

func decodeJHash(p path, raw json.RawMessage) (JHash, error) {
	var h JHash
	f, err := objectFields(p, raw)
	if err != nil {
		return h, err
	}
	modRaw, err := f.require("mod")
	if err != nil {
		return h, err
	}
	if h.Mod, err = decodeUint[uint32](f.at("mod"), modRaw); err != nil {
		return h, err
	}
	if h.Offset, err = optUintPtr[uint32](f, "offset"); err != nil {
		return h, err
	}
	if h.Expr, err = reqExpr(f, "expr"); err != nil {
		return h, err
	}
	if h.Seed, err = optUintPtr[uint32](f, "seed"); err != nil {
		return h, err
	}
	return h, nil
}

func decodeSymHash(p path, raw json.RawMessage) (SymHash, error) {
	var h SymHash
	f, err := objectFields(p, raw)
	if err != nil {
		return h, err
	}
	modRaw, err := f.require("mod")
	if err != nil {
		return h, err
	}
	if h.Mod, err = decodeUint[uint32](f.at("mod"), modRaw); err != nil {
		return h, err
	}
	if h.Offset, err = optUintPtr[uint32](f, "offset"); err != nil {
		return h, err
	}
	return h, nil
}

func decodeFib(p path, raw json.RawMessage) (Fib, error) {
	var fib Fib
	f, err := objectFields(p, raw)
	if err != nil {
		return fib, err
	}
	if fib.Result, err = reqToken(f, "result", fibResultSet); err != nil {
		return fib, err
	}
	flagsRaw, err := f.require("flags")
	if err != nil {
		return fib, err
	}
	if fib.Flags, err = decodeFlags(f.at("flags"), flagsRaw, fibFlagSet, false); err != nil {
		return fib, err
	}
	return fib, nil
}

func decodeElemExpr(p path, raw json.RawMessage) (Elem, error) {
	var e Elem
	f, err := objectFields(p, raw)
	if err != nil {
		return e, err
	}
	if e.Val, err = reqExpr(f, "val"); err != nil {
		return e, err
	}
	if e.Timeout, err = optUintPtr[uint32](f, "timeout"); err != nil {
		return e, err
	}
	if e.Expires, err = optUintPtr[uint32](f, "expires"); err != nil {
		return e, err
	}
	if e.Comment, err = optString(f, "comment"); err != nil {
		return e, err
	}
	if counterRaw, ok := f.get("counter"); ok {
		cf, err := objectFields(f.at("counter"), counterRaw)
		if err != nil {
			return e, err
		}
		var c CounterStmt
		if c.Packets, err = optUintPtr[uint64](cf, "packets"); err != nil {
			return e, err
		}
		if c.Bytes, err = optUintPtr[uint64](cf, "bytes"); err != nil {
			return e, err
		}
		e.Counter = &c
	}
	return e, nil
}

func decodeOsf(p path, raw json.RawMessage) (Osf, error) {
	var o Osf
	f, err := objectFields(p, raw)
	if err != nil {
		return o, err
	}
	if o.Key, err = reqString(f, "key"); err != nil {
		return o, err
	}
	if o.TTL, err = reqToken(f, "ttl", osfTTLSet); err != nil {
		return o, err
	}
	return o, nil
}
