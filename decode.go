package nftjson

import (
	"bytes"
	"encoding/json"
)

// Unmarshal parses a wire document, the {"nftables": [...]} envelope.
// Malformed or ambiguous input yields a *DecodeError naming the exact JSON
// path of the offending node; the decoder never guesses.
func Unmarshal(data []byte) (*Ruleset, error) {
	top, err := objectFields("", data)
	if err != nil {
		return nil, err
	}
	raw, ok := top.get("nftables")
	if !ok {
		return nil, errAt("", `missing required property "nftables"`)
	}
	p := path("").field("nftables")
	var items []json.RawMessage
	if jsonKind(raw) != '[' {
		return nil, errAt(p, "expected array, got %s", jsonKindName(raw))
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Path: string(p), Msg: "malformed array", Err: err}
	}
	rs := &Ruleset{Items: make([]Item, len(items))}
	for i, itemRaw := range items {
		item, err := decodeItem(p.index(i), itemRaw)
		if err != nil {
			return nil, err
		}
		rs.Items[i] = item
	}
	return rs, nil
}

// jsonKind returns the first significant byte of a raw value: '{', '[', '"',
// 't'/'f', 'n' or a digit/'-' for numbers.
func jsonKind(raw json.RawMessage) byte {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}

func jsonKindName(raw json.RawMessage) string {
	switch c := jsonKind(raw); {
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == '"':
		return "string"
	case c == 't' || c == 'f':
		return "boolean"
	case c == 'n':
		return "null"
	case c == '-' || (c >= '0' && c <= '9'):
		return "number"
	default:
		return "invalid JSON"
	}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// singleKey splits the single-property dispatch shape {"key": value}.
func singleKey(p path, raw json.RawMessage) (string, json.RawMessage, error) {
	if jsonKind(raw) != '{' {
		return "", nil, errAt(p, "expected object, got %s", jsonKindName(raw))
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", nil, &DecodeError{Path: string(p), Msg: "malformed object", Err: err}
	}
	if len(m) != 1 {
		return "", nil, errAt(p, "expected object with exactly one property, got %d", len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	panic("unreachable")
}

// fields provides keyed access to an object's raw properties. Unknown
// properties are ignored; a property set to null counts as absent.
type fields struct {
	p path
	m map[string]json.RawMessage
}

func objectFields(p path, raw json.RawMessage) (*fields, error) {
	if jsonKind(raw) != '{' {
		return nil, errAt(p, "expected object, got %s", jsonKindName(raw))
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &DecodeError{Path: string(p), Msg: "malformed object", Err: err}
	}
	return &fields{p: p, m: m}, nil
}

func (f *fields) get(name string) (json.RawMessage, bool) {
	raw, ok := f.m[name]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

func (f *fields) at(name string) path { return f.p.field(name) }

func (f *fields) require(name string) (json.RawMessage, error) {
	raw, ok := f.get(name)
	if !ok {
		return nil, errAt(f.p, "missing required property %q", name)
	}
	return raw, nil
}

// Scalar decoders.

func decodeString(p path, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errAt(p, "expected string, got %s", jsonKindName(raw))
	}
	return s, nil
}

func decodeUint[T uint8 | uint16 | uint32 | uint64](p path, raw json.RawMessage) (T, error) {
	var n T
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, errAt(p, "expected unsigned integer, got %s", string(raw))
	}
	return n, nil
}

func decodeInt32(p path, raw json.RawMessage) (int32, error) {
	var n int32
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, errAt(p, "expected integer, got %s", string(raw))
	}
	return n, nil
}

func decodeBool(p path, raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, errAt(p, "expected boolean, got %s", jsonKindName(raw))
	}
	return b, nil
}

func decodeToken[T ~string](p path, raw json.RawMessage, set map[T]struct{}) (T, error) {
	s, err := decodeString(p, raw)
	if err != nil {
		return "", err
	}
	t := T(s)
	if _, ok := set[t]; !ok {
		return "", errAt(p, "unknown value %q", s)
	}
	return t, nil
}

// Field accessors. req* fail on a missing property; opt* return the zero
// value (or nil pointer) when absent.

func reqString(f *fields, name string) (string, error) {
	raw, err := f.require(name)
	if err != nil {
		return "", err
	}
	return decodeString(f.at(name), raw)
}

func optString(f *fields, name string) (string, error) {
	raw, ok := f.get(name)
	if !ok {
		return "", nil
	}
	return decodeString(f.at(name), raw)
}

func optUintPtr[T uint8 | uint16 | uint32 | uint64](f *fields, name string) (*T, error) {
	raw, ok := f.get(name)
	if !ok {
		return nil, nil
	}
	n, err := decodeUint[T](f.at(name), raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optInt32Ptr(f *fields, name string) (*int32, error) {
	raw, ok := f.get(name)
	if !ok {
		return nil, nil
	}
	n, err := decodeInt32(f.at(name), raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optBoolPtr(f *fields, name string) (*bool, error) {
	raw, ok := f.get(name)
	if !ok {
		return nil, nil
	}
	b, err := decodeBool(f.at(name), raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func reqToken[T ~string](f *fields, name string, set map[T]struct{}) (T, error) {
	raw, err := f.require(name)
	if err != nil {
		return "", err
	}
	return decodeToken(f.at(name), raw, set)
}

func optToken[T ~string](f *fields, name string, set map[T]struct{}) (T, error) {
	raw, ok := f.get(name)
	if !ok {
		return "", nil
	}
	return decodeToken(f.at(name), raw, set)
}

// decodeFlags reads an array of tokens. With coerce, a single bare token is
// also accepted and promoted to a one-element slice; re-encoding always
// produces the array form.
func decodeFlags[T ~string](p path, raw json.RawMessage, set map[T]struct{}, coerce bool) ([]T, error) {
	if jsonKind(raw) == '"' {
		if !coerce {
			return nil, errAt(p, "expected array, got string")
		}
		t, err := decodeToken(p, raw, set)
		if err != nil {
			return nil, err
		}
		return []T{t}, nil
	}
	if jsonKind(raw) != '[' {
		return nil, errAt(p, "expected array, got %s", jsonKindName(raw))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Path: string(p), Msg: "malformed array", Err: err}
	}
	out := make([]T, len(items))
	for i, item := range items {
		t, err := decodeToken(p.index(i), item, set)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func optFlags[T ~string](f *fields, name string, set map[T]struct{}, coerce bool) ([]T, error) {
	raw, ok := f.get(name)
	if !ok {
		return nil, nil
	}
	return decodeFlags(f.at(name), raw, set, coerce)
}

func reqExpr(f *fields, name string) (Expr, error) {
	raw, err := f.require(name)
	if err != nil {
		return nil, err
	}
	return decodeExpr(f.at(name), raw)
}

func optExpr(f *fields, name string) (Expr, error) {
	raw, ok := f.get(name)
	if !ok {
		return nil, nil
	}
	return decodeExpr(f.at(name), raw)
}

func optExprList(f *fields, name string) ([]Expr, error) {
	raw, ok := f.get(name)
	if !ok {
		return nil, nil
	}
	return decodeExprList(f.at(name), raw)
}

func decodeExprList(p path, raw json.RawMessage) ([]Expr, error) {
	if jsonKind(raw) != '[' {
		return nil, errAt(p, "expected array, got %s", jsonKindName(raw))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Path: string(p), Msg: "malformed array", Err: err}
	}
	out := make([]Expr, len(items))
	for i, item := range items {
		e, err := decodeExpr(p.index(i), item)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// Item dispatch. Command verbs and object kinds share one namespace; a
// single-key object is a command if its key is a verb, an output element
// otherwise.

var commandVerbs = map[string]struct{}{
	"add": {}, "replace": {}, "create": {}, "insert": {}, "delete": {},
	"list": {}, "reset": {}, "flush": {}, "rename": {},
}

func decodeItem(p path, raw json.RawMessage) (Item, error) {
	key, val, err := singleKey(p, raw)
	if err != nil {
		return nil, err
	}
	if _, ok := commandVerbs[key]; ok {
		return decodeCommand(p, key, val)
	}
	return decodeListObject(p.field(key), key, val)
}

func decodeCommand(p path, verb string, raw json.RawMessage) (Command, error) {
	vp := p.field(verb)
	switch verb {
	case "add", "create", "insert", "delete", "list":
		kind, val, err := singleKey(vp, raw)
		if err != nil {
			return nil, err
		}
		obj, err := decodeListObject(vp.field(kind), kind, val)
		if err != nil {
			return nil, err
		}
		switch verb {
		case "add":
			return Add{Object: obj}, nil
		case "create":
			return Create{Object: obj}, nil
		case "insert":
			return Insert{Object: obj}, nil
		case "delete":
			return Delete{Object: obj}, nil
		default:
			return List{Object: obj}, nil
		}
	case "replace":
		rule, err := decodeRule(vp, raw)
		if err != nil {
			return nil, err
		}
		return Replace{Rule: rule}, nil
	case "rename":
		chain, err := decodeChain(vp, raw)
		if err != nil {
			return nil, err
		}
		return Rename{Chain: chain}, nil
	case "reset":
		return decodeReset(vp, raw)
	case "flush":
		return decodeFlush(vp, raw)
	}
	return nil, errAt(p, "unknown command %q", verb)
}

func decodeReset(p path, raw json.RawMessage) (Command, error) {
	kind, val, err := singleKey(p, raw)
	if err != nil {
		return nil, err
	}
	kp := p.field(kind)
	switch kind {
	case "counter":
		c, err := decodeCounter(kp, val)
		if err != nil {
			return nil, err
		}
		return Reset{Object: c}, nil
	case "counters":
		cs, err := decodeObjectList(kp, val, decodeCounter)
		if err != nil {
			return nil, err
		}
		return Reset{Object: Counters(cs)}, nil
	case "quota":
		q, err := decodeQuota(kp, val)
		if err != nil {
			return nil, err
		}
		return Reset{Object: q}, nil
	case "quotas":
		qs, err := decodeObjectList(kp, val, decodeQuota)
		if err != nil {
			return nil, err
		}
		return Reset{Object: Quotas(qs)}, nil
	}
	return nil, errAt(p, "unknown reset target %q", kind)
}

func decodeObjectList[T any](p path, raw json.RawMessage, dec func(path, json.RawMessage) (T, error)) ([]T, error) {
	if jsonKind(raw) != '[' {
		return nil, errAt(p, "expected array, got %s", jsonKindName(raw))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Path: string(p), Msg: "malformed array", Err: err}
	}
	out := make([]T, len(items))
	for i, item := range items {
		v, err := dec(p.index(i), item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeFlush(p path, raw json.RawMessage) (Command, error) {
	kind, val, err := singleKey(p, raw)
	if err != nil {
		return nil, err
	}
	kp := p.field(kind)
	switch kind {
	case "table":
		t, err := decodeTable(kp, val)
		if err != nil {
			return nil, err
		}
		return Flush{Object: t}, nil
	case "chain":
		c, err := decodeChain(kp, val)
		if err != nil {
			return nil, err
		}
		return Flush{Object: c}, nil
	case "set":
		s, err := decodeSet(kp, val)
		if err != nil {
			return nil, err
		}
		return Flush{Object: s}, nil
	case "map":
		m, err := decodeMap(kp, val)
		if err != nil {
			return nil, err
		}
		return Flush{Object: m}, nil
	case "meter":
		m, err := decodeMeter(kp, val)
		if err != nil {
			return nil, err
		}
		return Flush{Object: m}, nil
	case "ruleset":
		// Accepts null or an empty object.
		if !isNull(val) {
			if _, err := objectFields(kp, val); err != nil {
				return nil, err
			}
		}
		return Flush{Object: LiveRuleset{}}, nil
	}
	return nil, errAt(p, "unknown flush target %q", kind)
}

func decodeListObject(p path, kind string, raw json.RawMessage) (ListObject, error) {
	switch kind {
	case "table":
		return decodeTable(p, raw)
	case "chain":
		return decodeChain(p, raw)
	case "rule":
		return decodeRule(p, raw)
	case "set":
		return decodeSet(p, raw)
	case "map":
		return decodeMap(p, raw)
	case "element":
		return decodeElement(p, raw)
	case "flowtable":
		return decodeFlowTable(p, raw)
	case "counter":
		return decodeCounter(p, raw)
	case "quota":
		return decodeQuota(p, raw)
	case "ct helper":
		return decodeCTHelper(p, raw)
	case "limit":
		return decodeLimit(p, raw)
	case "metainfo":
		return decodeMetainfo(p, raw)
	case "ct timeout":
		return decodeCTTimeout(p, raw)
	case "ct expectation":
		return decodeCTExpectation(p, raw)
	case "synproxy":
		return decodeSynProxy(p, raw)
	}
	return nil, errAt(p, "unknown object kind %q", kind)
}

// Per-kind object decoders. Family, table and name style identification
// fields are required; everything else is optional.

func decodeTable(p path, raw json.RawMessage) (Table, error) {
	var t Table
	f, err := objectFields(p, raw)
	if err != nil {
		return t, err
	}
	if t.Family, err = reqToken(f, "family", familySet); err != nil {
		return t, err
	}
	if t.Name, err = reqString(f, "name"); err != nil {
		return t, err
	}
	if t.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return t, err
	}
	return t, nil
}

func decodeChain(p path, raw json.RawMessage) (Chain, error) {
	var c Chain
	f, err := objectFields(p, raw)
	if err != nil {
		return c, err
	}
	if c.Family, err = reqToken(f, "family", familySet); err != nil {
		return c, err
	}
	if c.Table, err = reqString(f, "table"); err != nil {
		return c, err
	}
	if c.Name, err = reqString(f, "name"); err != nil {
		return c, err
	}
	if c.Newname, err = optString(f, "newname"); err != nil {
		return c, err
	}
	if c.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return c, err
	}
	if c.Type, err = optToken(f, "type", chainTypeSet); err != nil {
		return c, err
	}
	if c.Hook, err = optToken(f, "hook", hookSet); err != nil {
		return c, err
	}
	if c.Prio, err = optInt32Ptr(f, "prio"); err != nil {
		return c, err
	}
	if c.Dev, err = optString(f, "dev"); err != nil {
		return c, err
	}
	if c.Policy, err = optToken(f, "policy", chainPolicySet); err != nil {
		return c, err
	}
	return c, nil
}

func decodeRule(p path, raw json.RawMessage) (Rule, error) {
	var r Rule
	f, err := objectFields(p, raw)
	if err != nil {
		return r, err
	}
	if r.Family, err = reqToken(f, "family", familySet); err != nil {
		return r, err
	}
	if r.Table, err = reqString(f, "table"); err != nil {
		return r, err
	}
	if r.Chain, err = reqString(f, "chain"); err != nil {
		return r, err
	}
	exprRaw, err := f.require("expr")
	if err != nil {
		return r, err
	}
	if r.Expr, err = decodeStmtList(f.at("expr"), exprRaw); err != nil {
		return r, err
	}
	if r.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return r, err
	}
	if r.Index, err = optUintPtr[uint32](f, "index"); err != nil {
		return r, err
	}
	if r.Comment, err = optString(f, "comment"); err != nil {
		return r, err
	}
	return r, nil
}

func decodeSetTypeValue(p path, raw json.RawMessage) (SetTypeValue, error) {
	if jsonKind(raw) == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &DecodeError{Path: string(p), Msg: "malformed array", Err: err}
		}
		out := make(ConcatTypes, len(items))
		for i, item := range items {
			t, err := decodeToken(p.index(i), item, setTypeSet)
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		return out, nil
	}
	return decodeToken(p, raw, setTypeSet)
}

// setCommon covers the properties Set and Map share.
func setCommon(f *fields, dst *Set) error {
	var err error
	if dst.Family, err = reqToken(f, "family", familySet); err != nil {
		return err
	}
	if dst.Table, err = reqString(f, "table"); err != nil {
		return err
	}
	if dst.Name, err = reqString(f, "name"); err != nil {
		return err
	}
	if dst.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return err
	}
	typeRaw, err := f.require("type")
	if err != nil {
		return err
	}
	if dst.Type, err = decodeSetTypeValue(f.at("type"), typeRaw); err != nil {
		return err
	}
	if dst.Policy, err = optToken(f, "policy", setPolicySet); err != nil {
		return err
	}
	if dst.Flags, err = optFlags(f, "flags", setFlagSet, false); err != nil {
		return err
	}
	if elemRaw, ok := f.get("elem"); ok {
		if dst.Elem, err = decodeSetItems(f.at("elem"), elemRaw); err != nil {
			return err
		}
	}
	if dst.Timeout, err = optUintPtr[uint32](f, "timeout"); err != nil {
		return err
	}
	if dst.GCInterval, err = optUintPtr[uint32](f, "gc-interval"); err != nil {
		return err
	}
	if dst.Size, err = optUintPtr[uint32](f, "size"); err != nil {
		return err
	}
	if dst.Comment, err = optString(f, "comment"); err != nil {
		return err
	}
	return nil
}

func decodeSet(p path, raw json.RawMessage) (Set, error) {
	var s Set
	f, err := objectFields(p, raw)
	if err != nil {
		return s, err
	}
	if err := setCommon(f, &s); err != nil {
		return s, err
	}
	return s, nil
}

func decodeMap(p path, raw json.RawMessage) (Map, error) {
	var m Map
	f, err := objectFields(p, raw)
	if err != nil {
		return m, err
	}
	var s Set
	if err := setCommon(f, &s); err != nil {
		return m, err
	}
	m = Map{
		Family: s.Family, Table: s.Table, Name: s.Name, Handle: s.Handle,
		Type: s.Type, Policy: s.Policy, Flags: s.Flags, Elem: s.Elem,
		Timeout: s.Timeout, GCInterval: s.GCInterval, Size: s.Size, Comment: s.Comment,
	}
	mapRaw, err := f.require("map")
	if err != nil {
		return m, err
	}
	if m.Map, err = decodeSetTypeValue(f.at("map"), mapRaw); err != nil {
		return m, err
	}
	return m, nil
}

func decodeElement(p path, raw json.RawMessage) (Element, error) {
	var e Element
	f, err := objectFields(p, raw)
	if err != nil {
		return e, err
	}
	if e.Family, err = reqToken(f, "family", familySet); err != nil {
		return e, err
	}
	if e.Table, err = reqString(f, "table"); err != nil {
		return e, err
	}
	if e.Name, err = reqString(f, "name"); err != nil {
		return e, err
	}
	elemRaw, err := f.require("elem")
	if err != nil {
		return e, err
	}
	if e.Elem, err = decodeSetItems(f.at("elem"), elemRaw); err != nil {
		return e, err
	}
	return e, nil
}

func decodeFlowTable(p path, raw json.RawMessage) (FlowTable, error) {
	var ft FlowTable
	f, err := objectFields(p, raw)
	if err != nil {
		return ft, err
	}
	if ft.Family, err = reqToken(f, "family", familySet); err != nil {
		return ft, err
	}
	if ft.Table, err = reqString(f, "table"); err != nil {
		return ft, err
	}
	if ft.Name, err = reqString(f, "name"); err != nil {
		return ft, err
	}
	if ft.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return ft, err
	}
	if ft.Hook, err = optToken(f, "hook", hookSet); err != nil {
		return ft, err
	}
	if ft.Prio, err = optUintPtr[uint32](f, "prio"); err != nil {
		return ft, err
	}
	// A single device name coerces to a one-element list.
	if devRaw, ok := f.get("dev"); ok {
		dp := f.at("dev")
		if jsonKind(devRaw) == '"' {
			s, err := decodeString(dp, devRaw)
			if err != nil {
				return ft, err
			}
			ft.Dev = []string{s}
		} else {
			if jsonKind(devRaw) != '[' {
				return ft, errAt(dp, "expected string or array, got %s", jsonKindName(devRaw))
			}
			var devs []json.RawMessage
			if err := json.Unmarshal(devRaw, &devs); err != nil {
				return ft, &DecodeError{Path: string(dp), Msg: "malformed array", Err: err}
			}
			ft.Dev = make([]string, len(devs))
			for i, d := range devs {
				if ft.Dev[i], err = decodeString(dp.index(i), d); err != nil {
					return ft, err
				}
			}
		}
	}
	return ft, nil
}

func decodeCounter(p path, raw json.RawMessage) (Counter, error) {
	var c Counter
	f, err := objectFields(p, raw)
	if err != nil {
		return c, err
	}
	if c.Family, err = reqToken(f, "family", familySet); err != nil {
		return c, err
	}
	if c.Table, err = reqString(f, "table"); err != nil {
		return c, err
	}
	if c.Name, err = reqString(f, "name"); err != nil {
		return c, err
	}
	if c.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return c, err
	}
	if c.Packets, err = optUintPtr[uint64](f, "packets"); err != nil {
		return c, err
	}
	if c.Bytes, err = optUintPtr[uint64](f, "bytes"); err != nil {
		return c, err
	}
	return c, nil
}

func decodeQuota(p path, raw json.RawMessage) (Quota, error) {
	var q Quota
	f, err := objectFields(p, raw)
	if err != nil {
		return q, err
	}
	if q.Family, err = reqToken(f, "family", familySet); err != nil {
		return q, err
	}
	if q.Table, err = reqString(f, "table"); err != nil {
		return q, err
	}
	if q.Name, err = reqString(f, "name"); err != nil {
		return q, err
	}
	if q.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return q, err
	}
	if q.Bytes, err = optUintPtr[uint64](f, "bytes"); err != nil {
		return q, err
	}
	if q.Used, err = optUintPtr[uint64](f, "used"); err != nil {
		return q, err
	}
	if q.Inv, err = optBoolPtr(f, "inv"); err != nil {
		return q, err
	}
	return q, nil
}

func decodeCTHelper(p path, raw json.RawMessage) (CTHelper, error) {
	var h CTHelper
	f, err := objectFields(p, raw)
	if err != nil {
		return h, err
	}
	if h.Family, err = reqToken(f, "family", familySet); err != nil {
		return h, err
	}
	if h.Table, err = reqString(f, "table"); err != nil {
		return h, err
	}
	if h.Name, err = reqString(f, "name"); err != nil {
		return h, err
	}
	if h.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return h, err
	}
	if h.Type, err = reqString(f, "type"); err != nil {
		return h, err
	}
	if h.Protocol, err = optToken(f, "protocol", ctProtoSet); err != nil {
		return h, err
	}
	if h.L3Proto, err = optString(f, "l3proto"); err != nil {
		return h, err
	}
	return h, nil
}

func decodeLimit(p path, raw json.RawMessage) (Limit, error) {
	var l Limit
	f, err := objectFields(p, raw)
	if err != nil {
		return l, err
	}
	if l.Family, err = reqToken(f, "family", familySet); err != nil {
		return l, err
	}
	if l.Table, err = reqString(f, "table"); err != nil {
		return l, err
	}
	if l.Name, err = reqString(f, "name"); err != nil {
		return l, err
	}
	if l.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return l, err
	}
	if l.Rate, err = optUintPtr[uint32](f, "rate"); err != nil {
		return l, err
	}
	if l.Per, err = optToken(f, "per", timeUnitSet); err != nil {
		return l, err
	}
	if l.Burst, err = optUintPtr[uint32](f, "burst"); err != nil {
		return l, err
	}
	if l.Unit, err = optToken(f, "unit", limitUnitSet); err != nil {
		return l, err
	}
	if l.Inv, err = optBoolPtr(f, "inv"); err != nil {
		return l, err
	}
	return l, nil
}

func decodeMetainfo(p path, raw json.RawMessage) (Metainfo, error) {
	var mi Metainfo
	f, err := objectFields(p, raw)
	if err != nil {
		return mi, err
	}
	if mi.Version, err = optString(f, "version"); err != nil {
		return mi, err
	}
	if mi.ReleaseName, err = optString(f, "release_name"); err != nil {
		return mi, err
	}
	if mi.JSONSchemaVersion, err = optUintPtr[uint32](f, "json_schema_version"); err != nil {
		return mi, err
	}
	return mi, nil
}

func decodeCTTimeout(p path, raw json.RawMessage) (CTTimeout, error) {
	var ct CTTimeout
	f, err := objectFields(p, raw)
	if err != nil {
		return ct, err
	}
	if ct.Family, err = reqToken(f, "family", familySet); err != nil {
		return ct, err
	}
	if ct.Table, err = reqString(f, "table"); err != nil {
		return ct, err
	}
	if ct.Name, err = reqString(f, "name"); err != nil {
		return ct, err
	}
	if ct.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return ct, err
	}
	if ct.Protocol, err = optToken(f, "protocol", ctProtoSet); err != nil {
		return ct, err
	}
	if ct.State, err = optString(f, "state"); err != nil {
		return ct, err
	}
	if ct.Value, err = optUintPtr[uint32](f, "value"); err != nil {
		return ct, err
	}
	if ct.L3Proto, err = optString(f, "l3proto"); err != nil {
		return ct, err
	}
	return ct, nil
}

func decodeCTExpectation(p path, raw json.RawMessage) (CTExpectation, error) {
	var ce CTExpectation
	f, err := objectFields(p, raw)
	if err != nil {
		return ce, err
	}
	if ce.Family, err = reqToken(f, "family", familySet); err != nil {
		return ce, err
	}
	if ce.Table, err = reqString(f, "table"); err != nil {
		return ce, err
	}
	if ce.Name, err = reqString(f, "name"); err != nil {
		return ce, err
	}
	if ce.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return ce, err
	}
	if ce.L3Proto, err = optString(f, "l3proto"); err != nil {
		return ce, err
	}
	if ce.Protocol, err = optToken(f, "protocol", ctProtoSet); err != nil {
		return ce, err
	}
	if ce.DPort, err = optUintPtr[uint32](f, "dport"); err != nil {
		return ce, err
	}
	if ce.Timeout, err = optUintPtr[uint32](f, "timeout"); err != nil {
		return ce, err
	}
	if ce.Size, err = optUintPtr[uint32](f, "size"); err != nil {
		return ce, err
	}
	return ce, nil
}

func decodeSynProxy(p path, raw json.RawMessage) (SynProxy, error) {
	var sp SynProxy
	f, err := objectFields(p, raw)
	if err != nil {
		return sp, err
	}
	if sp.Family, err = reqToken(f, "family", familySet); err != nil {
		return sp, err
	}
	if sp.Table, err = reqString(f, "table"); err != nil {
		return sp, err
	}
	if sp.Name, err = reqString(f, "name"); err != nil {
		return sp, err
	}
	if sp.Handle, err = optUintPtr[uint32](f, "handle"); err != nil {
		return sp, err
	}
	if sp.MSS, err = optUintPtr[uint16](f, "mss"); err != nil {
		return sp, err
	}
	if sp.Wscale, err = optUintPtr[uint8](f, "wscale"); err != nil {
		return sp, err
	}
	if sp.Flags, err = optFlags(f, "flags", synProxyFlagSet, false); err != nil {
		return sp, err
	}
	return sp, nil
}
