package nftjson

import "encoding/json"

func decodeStmtList(p path, raw json.RawMessage) ([]Stmt, error) {
	if jsonKind(raw) != '[' {
		return nil, errAt(p, "expected array, got %s", jsonKindName(raw))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Path: string(p), Msg: "malformed array", Err: err}
	}
	out := make([]Stmt, len(items))
	for i, item := range items {
		s, err := decodeStmt(p.index(i), item)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func decodeStmt(p path, raw json.RawMessage) (Stmt, error) {
	key, val, err := singleKey(p, raw)
	if err != nil {
		return nil, err
	}
	return decodeStmtObject(p, key, val)
}

// stmtOnlyKeys are dispatch keys that unambiguously name a statement. Keys
// shared with the expression union (verdicts, "set", "map") are absent so
// that mapping values inside set literals stay expressions.
var stmtOnlyKeys = map[string]struct{}{
	"match": {}, "counter": {}, "mangle": {}, "quota": {}, "limit": {},
	"flow": {}, "fwd": {}, "notrack": {}, "dup": {},
	"snat": {}, "dnat": {}, "masquerade": {}, "redirect": {},
	"reject": {}, "log": {}, "ct helper": {}, "meter": {}, "queue": {},
	"vmap": {}, "ct count": {}, "ct timeout": {}, "ct expectation": {},
	"xt": {}, "synproxy": {}, "tproxy": {},
}

func isStmtOnlyKey(key string) bool {
	_, ok := stmtOnlyKeys[key]
	return ok
}

func decodeStmtObject(p path, key string, val json.RawMessage) (Stmt, error) {
	kp := p.field(key)
	switch key {
	case "accept", "drop", "continue", "return", "jump", "goto":
		return decodeVerdictStmt(p, key, val)
	case "match":
		return decodeMatch(kp, val)
	case "counter":
		if jsonKind(val) == '"' {
			name, err := decodeString(kp, val)
			if err != nil {
				return nil, err
			}
			return CounterRef(name), nil
		}
		return decodeCounterStmt(kp, val)
	case "mangle":
		return decodeMangle(kp, val)
	case "quota":
		if jsonKind(val) == '"' {
			name, err := decodeString(kp, val)
			if err != nil {
				return nil, err
			}
			return QuotaRef(name), nil
		}
		return decodeQuotaStmt(kp, val)
	case "limit":
		return decodeLimitStmt(kp, val)
	case "flow":
		return decodeFlow(kp, val)
	case "fwd":
		return decodeFwd(kp, val)
	case "notrack":
		if !isNull(val) {
			return nil, errAt(kp, "expected null")
		}
		return Notrack{}, nil
	case "dup":
		return decodeDup(kp, val)
	case "snat", "dnat", "masquerade", "redirect":
		return decodeNAT(kp, NATKind(key), val)
	case "reject":
		return decodeReject(kp, val)
	case "set":
		return decodeSetStmt(kp, val)
	case "map":
		return decodeMapStmt(kp, val)
	case "log":
		return decodeLog(kp, val)
	case "ct helper":
		name, err := decodeString(kp, val)
		if err != nil {
			return nil, err
		}
		return CTHelperRef(name), nil
	case "meter":
		return decodeMeter(kp, val)
	case "queue":
		return decodeQueue(kp, val)
	case "vmap":
		return decodeVerdictMap(kp, val)
	case "ct count":
		return decodeCTCount(kp, val)
	case "ct timeout":
		ref, err := decodeExpr(kp, val)
		if err != nil {
			return nil, err
		}
		return CTTimeoutRef{Ref: ref}, nil
	case "ct expectation":
		ref, err := decodeExpr(kp, val)
		if err != nil {
			return nil, err
		}
		return CTExpectationRef{Ref: ref}, nil
	case "xt":
		if isNull(val) {
			return XT{}, nil
		}
		cp := make(json.RawMessage, len(val))
		copy(cp, val)
		return XT{Value: cp}, nil
	case "synproxy":
		return decodeSynProxyStmt(kp, val)
	case "tproxy":
		return decodeTProxy(kp, val)
	}
	return nil, errAt(p, "unknown statement %q", key)
}

func decodeMatch(p path, raw json.RawMessage) (Match, error) {
	var m Match
	f, err := objectFields(p, raw)
	if err != nil {
		return m, err
	}
	if m.Left, err = reqExpr(f, "left"); err != nil {
		return m, err
	}
	if m.Right, err = reqExpr(f, "right"); err != nil {
		return m, err
	}
	if m.Op, err = reqToken(f, "op", matchOpSet); err != nil {
		return m, err
	}
	return m, nil
}

func decodeCounterStmt(p path, raw json.RawMessage) (CounterStmt, error) {
	var c CounterStmt
	if isNull(raw) {
		return c, nil
	}
	f, err := objectFields(p, raw)
	if err != nil {
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

func decodeMangle(p path, raw json.RawMessage) (Mangle, error) {
	var m Mangle
	f, err := objectFields(p, raw)
	if err != nil {
		return m, err
	}
	if m.Key, err = reqExpr(f, "key"); err != nil {
		return m, err
	}
	if m.Value, err = reqExpr(f, "value"); err != nil {
		return m, err
	}
	return m, nil
}

func decodeQuotaStmt(p path, raw json.RawMessage) (QuotaStmt, error) {
	var q QuotaStmt
	f, err := objectFields(p, raw)
	if err != nil {
		return q, err
	}
	valRaw, err := f.require("val")
	if err != nil {
		return q, err
	}
	if q.Val, err = decodeUint[uint32](f.at("val"), valRaw); err != nil {
		return q, err
	}
	if q.ValUnit, err = reqString(f, "val_unit"); err != nil {
		return q, err
	}
	if q.Used, err = optUintPtr[uint32](f, "used"); err != nil {
		return q, err
	}
	if q.UsedUnit, err = optString(f, "used_unit"); err != nil {
		return q, err
	}
	if q.Inv, err = optBoolPtr(f, "inv"); err != nil {
		return q, err
	}
	return q, nil
}

func decodeLimitStmt(p path, raw json.RawMessage) (LimitStmt, error) {
	var l LimitStmt
	f, err := objectFields(p, raw)
	if err != nil {
		return l, err
	}
	rateRaw, err := f.require("rate")
	if err != nil {
		return l, err
	}
	if l.Rate, err = decodeUint[uint32](f.at("rate"), rateRaw); err != nil {
		return l, err
	}
	if l.RateUnit, err = optString(f, "rate_unit"); err != nil {
		return l, err
	}
	if l.Per, err = optToken(f, "per", timeUnitSet); err != nil {
		return l, err
	}
	if l.Burst, err = optUintPtr[uint32](f, "burst"); err != nil {
		return l, err
	}
	if l.BurstUnit, err = optString(f, "burst_unit"); err != nil {
		return l, err
	}
	if l.Inv, err = optBoolPtr(f, "inv"); err != nil {
		return l, err
	}
	return l, nil
}

func decodeFlow(p path, raw json.RawMessage) (Flow, error) {
	var fl Flow
	f, err := objectFields(p, raw)
	if err != nil {
		return fl, err
	}
	if fl.Op, err = reqToken(f, "op", setOpSet); err != nil {
		return fl, err
	}
	if fl.Flowtable, err = reqString(f, "flowtable"); err != nil {
		return fl, err
	}
	return fl, nil
}

func decodeFwd(p path, raw json.RawMessage) (Fwd, error) {
	var fw Fwd
	if isNull(raw) {
		return fw, nil
	}
	f, err := objectFields(p, raw)
	if err != nil {
		return fw, err
	}
	if fw.Dev, err = optExpr(f, "dev"); err != nil {
		return fw, err
	}
	if fw.Family, err = optToken(f, "family", fwdFamilySet); err != nil {
		return fw, err
	}
	if fw.Addr, err = optExpr(f, "addr"); err != nil {
		return fw, err
	}
	return fw, nil
}

func decodeDup(p path, raw json.RawMessage) (Dup, error) {
	var d Dup
	f, err := objectFields(p, raw)
	if err != nil {
		return d, err
	}
	if d.Addr, err = reqExpr(f, "addr"); err != nil {
		return d, err
	}
	if d.Dev, err = optExpr(f, "dev"); err != nil {
		return d, err
	}
	return d, nil
}

func decodeNAT(p path, kind NATKind, raw json.RawMessage) (NAT, error) {
	n := NAT{Kind: kind}
	if isNull(raw) {
		return n, nil
	}
	f, err := objectFields(p, raw)
	if err != nil {
		return n, err
	}
	if n.Addr, err = optExpr(f, "addr"); err != nil {
		return n, err
	}
	if n.Family, err = optToken(f, "family", natFamilySet); err != nil {
		return n, err
	}
	if n.Port, err = optUintPtr[uint32](f, "port"); err != nil {
		return n, err
	}
	if n.Flags, err = optFlags(f, "flags", natFlagSet, false); err != nil {
		return n, err
	}
	return n, nil
}

func decodeReject(p path, raw json.RawMessage) (Reject, error) {
	var r Reject
	if isNull(raw) {
		return r, nil
	}
	f, err := objectFields(p, raw)
	if err != nil {
		return r, err
	}
	if r.Type, err = optToken(f, "type", rejectTypeSet); err != nil {
		return r, err
	}
	if r.Expr, err = optToken(f, "expr", rejectCodeSet); err != nil {
		return r, err
	}
	return r, nil
}

func decodeSetStmt(p path, raw json.RawMessage) (SetStmt, error) {
	var s SetStmt
	f, err := objectFields(p, raw)
	if err != nil {
		return s, err
	}
	if s.Op, err = reqToken(f, "op", setOpSet); err != nil {
		return s, err
	}
	if s.Elem, err = reqExpr(f, "elem"); err != nil {
		return s, err
	}
	if s.Set, err = reqString(f, "set"); err != nil {
		return s, err
	}
	return s, nil
}

func decodeMapStmt(p path, raw json.RawMessage) (MapStmt, error) {
	var m MapStmt
	f, err := objectFields(p, raw)
	if err != nil {
		return m, err
	}
	if m.Op, err = reqToken(f, "op", setOpSet); err != nil {
		return m, err
	}
	if m.Elem, err = reqExpr(f, "elem"); err != nil {
		return m, err
	}
	if m.Data, err = reqExpr(f, "data"); err != nil {
		return m, err
	}
	if m.Map, err = reqString(f, "map"); err != nil {
		return m, err
	}
	return m, nil
}

func decodeLog(p path, raw json.RawMessage) (Log, error) {
	var l Log
	if isNull(raw) {
		return l, nil
	}
	f, err := objectFields(p, raw)
	if err != nil {
		return l, err
	}
	if l.Prefix, err = optString(f, "prefix"); err != nil {
		return l, err
	}
	if l.Group, err = optUintPtr[uint32](f, "group"); err != nil {
		return l, err
	}
	if l.Snaplen, err = optUintPtr[uint32](f, "snaplen"); err != nil {
		return l, err
	}
	if l.QueueThreshold, err = optUintPtr[uint32](f, "queue-threshold"); err != nil {
		return l, err
	}
	if l.Level, err = optToken(f, "level", logLevelSet); err != nil {
		return l, err
	}
	// A single flag string coerces to a one-element list.
	if l.Flags, err = optFlags(f, "flags", logFlagSet, true); err != nil {
		return l, err
	}
	return l, nil
}

func decodeMeter(p path, raw json.RawMessage) (Meter, error) {
	var m Meter
	f, err := objectFields(p, raw)
	if err != nil {
		return m, err
	}
	if m.Name, err = reqString(f, "name"); err != nil {
		return m, err
	}
	if m.Key, err = reqExpr(f, "key"); err != nil {
		return m, err
	}
	stmtRaw, err := f.require("stmt")
	if err != nil {
		return m, err
	}
	if m.Stmt, err = decodeStmt(f.at("stmt"), stmtRaw); err != nil {
		return m, err
	}
	return m, nil
}

func decodeQueue(p path, raw json.RawMessage) (Queue, error) {
	var q Queue
	f, err := objectFields(p, raw)
	if err != nil {
		return q, err
	}
	if q.Num, err = reqExpr(f, "num"); err != nil {
		return q, err
	}
	if q.Flags, err = optFlags(f, "flags", queueFlagSet, false); err != nil {
		return q, err
	}
	return q, nil
}

func decodeVerdictMap(p path, raw json.RawMessage) (VerdictMap, error) {
	var v VerdictMap
	f, err := objectFields(p, raw)
	if err != nil {
		return v, err
	}
	if v.Key, err = reqExpr(f, "key"); err != nil {
		return v, err
	}
	if v.Data, err = reqExpr(f, "data"); err != nil {
		return v, err
	}
	return v, nil
}

func decodeCTCount(p path, raw json.RawMessage) (CTCount, error) {
	var c CTCount
	f, err := objectFields(p, raw)
	if err != nil {
		return c, err
	}
	if c.Val, err = reqExpr(f, "val"); err != nil {
		return c, err
	}
	if c.Inv, err = optBoolPtr(f, "inv"); err != nil {
		return c, err
	}
	return c, nil
}

func decodeSynProxyStmt(p path, raw json.RawMessage) (SynProxyStmt, error) {
	var s SynProxyStmt
	if isNull(raw) {
		return s, nil
	}
	f, err := objectFields(p, raw)
	if err != nil {
		return s, err
	}
	if s.MSS, err = optUintPtr[uint32](f, "mss"); err != nil {
		return s, err
	}
	if s.Wscale, err = optUintPtr[uint32](f, "wscale"); err != nil {
		return s, err
	}
	if s.Flags, err = optFlags(f, "flags", synProxyFlagSet, false); err != nil {
		return s, err
	}
	return s, nil
}

func decodeTProxy(p path, raw json.RawMessage) (TProxy, error) {
	var t TProxy
	f, err := objectFields(p, raw)
	if err != nil {
		return t, err
	}
	if t.Family, err = optString(f, "family"); err != nil {
		return t, err
	}
	portRaw, err := f.require("port")
	if err != nil {
		return t, err
	}
	if t.Port, err = decodeUint[uint16](f.at("port"), portRaw); err != nil {
		return t, err
	}
	if t.Addr, err = optString(f, "addr"); err != nil {
		return t, err
	}
	return t, nil
}
