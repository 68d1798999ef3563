package nftjson

import "encoding/json"

// Stmt is one operation in a rule body. Statements execute left to right;
// their order inside Rule.Expr is semantically significant.
//
// On the wire every statement is an object with exactly one property naming
// the variant. Verdict-like statements allow a null (or empty) payload,
// which encodes as an explicit {"accept": null} marker.
type Stmt interface {
	stmtNode()
}

// Verdict statements double as expressions inside verdict maps.

// Accept terminates rule evaluation and accepts the packet.
type Accept struct{}

// Drop terminates rule evaluation and drops the packet.
type Drop struct{}

// Continue continues with the next rule.
type Continue struct{}

// Return returns from the current chain.
type Return struct{}

// Jump continues in the target chain and returns afterwards.
type Jump struct {
	Target string `json:"target"`
}

// Goto continues in the target chain without returning.
type Goto struct {
	Target string `json:"target"`
}

func (Accept) stmtNode()   {}
func (Drop) stmtNode()     {}
func (Continue) stmtNode() {}
func (Return) stmtNode()   {}
func (Jump) stmtNode()     {}
func (Goto) stmtNode()     {}

func (Accept) exprNode()   {}
func (Drop) exprNode()     {}
func (Continue) exprNode() {}
func (Return) exprNode()   {}
func (Jump) exprNode()     {}
func (Goto) exprNode()     {}

func (Accept) MarshalJSON() ([]byte, error)   { return wrapNull("accept"), nil }
func (Drop) MarshalJSON() ([]byte, error)     { return wrapNull("drop"), nil }
func (Continue) MarshalJSON() ([]byte, error) { return wrapNull("continue"), nil }
func (Return) MarshalJSON() ([]byte, error)   { return wrapNull("return"), nil }

func (j Jump) MarshalJSON() ([]byte, error) {
	type alias Jump
	return wrapObject("jump", alias(j))
}

func (g Goto) MarshalJSON() ([]byte, error) {
	type alias Goto
	return wrapObject("goto", alias(g))
}

// Match compares the left expression (typically a packet field) against the
// right one (typically a constant) and stops the rule on mismatch.
type Match struct {
	Left  Expr    `json:"left"`
	Right Expr    `json:"right"`
	Op    MatchOp `json:"op"`
}

func (Match) stmtNode() {}

func (m Match) MarshalJSON() ([]byte, error) {
	type alias Match
	return wrapObject("match", alias(m))
}

// CounterStmt is an anonymous byte/packet counter. Values, if given, act as
// initial counts. Both nil encodes the bare {"counter": null} form.
type CounterStmt struct {
	Packets *uint64 `json:"packets,omitempty"`
	Bytes   *uint64 `json:"bytes,omitempty"`
}

func (CounterStmt) stmtNode() {}

func (c CounterStmt) MarshalJSON() ([]byte, error) {
	if c.Packets == nil && c.Bytes == nil {
		return wrapNull("counter"), nil
	}
	type alias CounterStmt
	return wrapObject("counter", alias(c))
}

// CounterRef references a named counter object.
type CounterRef string

func (CounterRef) stmtNode() {}

func (c CounterRef) MarshalJSON() ([]byte, error) {
	return wrapObject("counter", string(c))
}

// Mangle writes Value into the packet data or meta info named by Key
// (an exthdr, payload, meta, ct or ct helper expression).
type Mangle struct {
	Key   Expr `json:"key"`
	Value Expr `json:"value"`
}

func (Mangle) stmtNode() {}

func (m Mangle) MarshalJSON() ([]byte, error) {
	type alias Mangle
	return wrapObject("mangle", alias(m))
}

// QuotaStmt is an anonymous quota living in the rule it appears in.
type QuotaStmt struct {
	Val      uint32  `json:"val"`
	ValUnit  string  `json:"val_unit"`
	Used     *uint32 `json:"used,omitempty"`
	UsedUnit string  `json:"used_unit,omitempty"`
	Inv      *bool   `json:"inv,omitempty"`
}

func (QuotaStmt) stmtNode() {}

func (q QuotaStmt) MarshalJSON() ([]byte, error) {
	type alias QuotaStmt
	return wrapObject("quota", alias(q))
}

// QuotaRef references a named quota object.
type QuotaRef string

func (QuotaRef) stmtNode() {}

func (q QuotaRef) MarshalJSON() ([]byte, error) {
	return wrapObject("quota", string(q))
}

// LimitStmt is an anonymous limit living in the rule it appears in.
// RateUnit and BurstUnit default to "packets" and "bytes" on the wire.
type LimitStmt struct {
	Rate      uint32   `json:"rate"`
	RateUnit  string   `json:"rate_unit,omitempty"`
	Per       TimeUnit `json:"per,omitempty"`
	Burst     *uint32  `json:"burst,omitempty"`
	BurstUnit string   `json:"burst_unit,omitempty"`
	Inv       *bool    `json:"inv,omitempty"`
}

func (LimitStmt) stmtNode() {}

func (l LimitStmt) MarshalJSON() ([]byte, error) {
	type alias LimitStmt
	return wrapObject("limit", alias(l))
}

// Flow offloads matching traffic to a flowtable.
type Flow struct {
	Op        SetOp  `json:"op"`
	Flowtable string `json:"flowtable"`
}

func (Flow) stmtNode() {}

func (f Flow) MarshalJSON() ([]byte, error) {
	type alias Flow
	return wrapObject("flow", alias(f))
}

// Fwd forwards the packet to a different destination. All properties are
// optional; the empty value encodes as {"fwd": null}.
type Fwd struct {
	Dev    Expr      `json:"dev,omitempty"`
	Family FWDFamily `json:"family,omitempty"`
	Addr   Expr      `json:"addr,omitempty"`
}

func (Fwd) stmtNode() {}

func (f Fwd) MarshalJSON() ([]byte, error) {
	if f.Dev == nil && f.Family == "" && f.Addr == nil {
		return wrapNull("fwd"), nil
	}
	type alias Fwd
	return wrapObject("fwd", alias(f))
}

// Notrack disables connection tracking for the packet.
type Notrack struct{}

func (Notrack) stmtNode() {}

func (Notrack) MarshalJSON() ([]byte, error) { return wrapNull("notrack"), nil }

// Dup duplicates the packet to a different destination.
type Dup struct {
	Addr Expr `json:"addr"`
	Dev  Expr `json:"dev,omitempty"`
}

func (Dup) stmtNode() {}

func (d Dup) MarshalJSON() ([]byte, error) {
	type alias Dup
	return wrapObject("dup", alias(d))
}

// NAT performs network address translation. Kind selects the wire variant
// (snat, dnat, masquerade, redirect); all payload properties are optional
// and an empty payload encodes as null.
type NAT struct {
	Kind   NATKind
	Addr   Expr
	Family NATFamily
	Port   *uint32
	Flags  []NATFlag
}

func (NAT) stmtNode() {}

func (n NAT) MarshalJSON() ([]byte, error) {
	if n.Addr == nil && n.Family == "" && n.Port == nil && len(n.Flags) == 0 {
		return wrapNull(string(n.Kind)), nil
	}
	type payload struct {
		Addr   Expr      `json:"addr,omitempty"`
		Family NATFamily `json:"family,omitempty"`
		Port   *uint32   `json:"port,omitempty"`
		Flags  []NATFlag `json:"flags,omitempty"`
	}
	return wrapObject(string(n.Kind), payload{n.Addr, n.Family, n.Port, n.Flags})
}

// Reject rejects the packet with the given error reply. Both properties are
// optional; the empty value encodes as {"reject": null}.
type Reject struct {
	Type RejectType `json:"type,omitempty"`
	Expr RejectCode `json:"expr,omitempty"`
}

func (Reject) stmtNode() {}

func (r Reject) MarshalJSON() ([]byte, error) {
	if r.Type == "" && r.Expr == "" {
		return wrapNull("reject"), nil
	}
	type alias Reject
	return wrapObject("reject", alias(r))
}

// SetStmt dynamically adds or updates an element in the referenced set.
type SetStmt struct {
	Op   SetOp  `json:"op"`
	Elem Expr   `json:"elem"`
	Set  string `json:"set"`
}

func (SetStmt) stmtNode() {}

func (s SetStmt) MarshalJSON() ([]byte, error) {
	type alias SetStmt
	return wrapObject("set", alias(s))
}

// MapStmt dynamically adds or updates a key/value pair in the referenced map.
type MapStmt struct {
	Op   SetOp  `json:"op"`
	Elem Expr   `json:"elem"`
	Data Expr   `json:"data"`
	Map  string `json:"map"`
}

func (MapStmt) stmtNode() {}

func (m MapStmt) MarshalJSON() ([]byte, error) {
	type alias MapStmt
	return wrapObject("map", alias(m))
}

// Log logs the packet. All properties are optional; the empty value encodes
// as {"log": null}. Flags accepts a single string or an array on decode and
// always re-encodes as an array.
type Log struct {
	Prefix         string    `json:"prefix,omitempty"`
	Group          *uint32   `json:"group,omitempty"`
	Snaplen        *uint32   `json:"snaplen,omitempty"`
	QueueThreshold *uint32   `json:"queue-threshold,omitempty"`
	Level          LogLevel  `json:"level,omitempty"`
	Flags          []LogFlag `json:"flags,omitempty"`
}

func (Log) stmtNode() {}

func (l Log) MarshalJSON() ([]byte, error) {
	if l.Prefix == "" && l.Group == nil && l.Snaplen == nil && l.QueueThreshold == nil &&
		l.Level == "" && len(l.Flags) == 0 {
		return wrapNull("log"), nil
	}
	type alias Log
	return wrapObject("log", alias(l))
}

// CTHelperRef enables the referenced conntrack helper for this packet.
type CTHelperRef string

func (CTHelperRef) stmtNode() {}

func (c CTHelperRef) MarshalJSON() ([]byte, error) {
	return wrapObject("ct helper", string(c))
}

// Meter applies the nested statement per distinct key value. A meter is also
// a valid flush target.
type Meter struct {
	Name string `json:"name"`
	Key  Expr   `json:"key"`
	Stmt Stmt   `json:"stmt"`
}

func (Meter) stmtNode() {}

func (m Meter) MarshalJSON() ([]byte, error) {
	type alias Meter
	return wrapObject("meter", alias(m))
}

// Queue queues the packet to userspace.
type Queue struct {
	Num   Expr        `json:"num"`
	Flags []QueueFlag `json:"flags,omitempty"`
}

func (Queue) stmtNode() {}

func (q Queue) MarshalJSON() ([]byte, error) {
	type alias Queue
	return wrapObject("queue", alias(q))
}

// VerdictMap applies a verdict selected by Key from the value/verdict pairs
// in Data. Wire key: "vmap".
type VerdictMap struct {
	Key  Expr `json:"key"`
	Data Expr `json:"data"`
}

func (VerdictMap) stmtNode() {}

func (v VerdictMap) MarshalJSON() ([]byte, error) {
	type alias VerdictMap
	return wrapObject("vmap", alias(v))
}

// CTCount limits the number of tracked connections.
type CTCount struct {
	Val Expr  `json:"val"`
	Inv *bool `json:"inv,omitempty"`
}

func (CTCount) stmtNode() {}

func (c CTCount) MarshalJSON() ([]byte, error) {
	type alias CTCount
	return wrapObject("ct count", alias(c))
}

// CTTimeoutRef assigns the referenced conntrack timeout policy.
type CTTimeoutRef struct {
	Ref Expr
}

func (CTTimeoutRef) stmtNode() {}

func (c CTTimeoutRef) MarshalJSON() ([]byte, error) {
	return wrapObject("ct timeout", c.Ref)
}

// CTExpectationRef assigns the referenced conntrack expectation.
type CTExpectationRef struct {
	Ref Expr
}

func (CTExpectationRef) stmtNode() {}

func (c CTExpectationRef) MarshalJSON() ([]byte, error) {
	return wrapObject("ct expectation", c.Ref)
}

// XT is an opaque xtables-compat statement. The payload round-trips
// verbatim; its content cannot be interpreted further.
type XT struct {
	Value json.RawMessage
}

func (XT) stmtNode() {}

func (x XT) MarshalJSON() ([]byte, error) {
	if len(x.Value) == 0 {
		return wrapNull("xt"), nil
	}
	return wrapRaw("xt", x.Value), nil
}

// SynProxyStmt answers the initial TCP handshake with syncookies instead of
// conntrack. All properties are optional.
type SynProxyStmt struct {
	MSS    *uint32        `json:"mss,omitempty"`
	Wscale *uint32        `json:"wscale,omitempty"`
	Flags  []SynProxyFlag `json:"flags,omitempty"`
}

func (SynProxyStmt) stmtNode() {}

func (s SynProxyStmt) MarshalJSON() ([]byte, error) {
	if s.MSS == nil && s.Wscale == nil && len(s.Flags) == 0 {
		return wrapNull("synproxy"), nil
	}
	type alias SynProxyStmt
	return wrapObject("synproxy", alias(s))
}

// TProxy redirects the packet to a local socket without altering headers.
type TProxy struct {
	Family string `json:"family,omitempty"`
	Port   uint16 `json:"port"`
	Addr   string `json:"addr,omitempty"`
}

func (TProxy) stmtNode() {}

func (t TProxy) MarshalJSON() ([]byte, error) {
	type alias TProxy
	return wrapObject("tproxy", alias(t))
}
