package nftjson

import "encoding/json"

// Expr is a value or packet-field reference usable inside a statement.
//
// Immediate values (strings, integers, booleans) appear on the wire as bare
// JSON scalars; everything else is an object whose single property names the
// expression kind. The union is untagged, so decoding probes candidate
// shapes in a fixed precedence order (see decodeExpr).
//
// Two string conventions carry extra meaning: a leading '@' references a
// named set, and "*" is the wildcard.
type Expr interface {
	exprNode()
}

// String is an immediate string expression.
type String string

// Number is an immediate integer expression.
type Number uint32

// Boolean is an immediate boolean expression.
type Boolean bool

// ListExpr is a plain array of expressions. The name carries the Expr
// suffix because the document grammar also has a `list` command.
type ListExpr []Expr

// Wildcard matches anything.
const Wildcard String = "*"

// SetRef builds a reference to the named set, the `@name` string convention.
func SetRef(name string) String { return String("@" + name) }

func (String) exprNode()   {}
func (Number) exprNode()   {}
func (Boolean) exprNode()  {}
func (ListExpr) exprNode() {}

// Binary applies a bitwise or shift operator to two sub-expressions.
// Wire shape: {"&": [left, right]} and so on for each operator symbol.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (Binary) exprNode() {}

func (b Binary) MarshalJSON() ([]byte, error) {
	return wrapPair(string(b.Op), b.Left, b.Right)
}

// Range is a value range. Wire shape: {"range": [from, to]}; exactly two
// boundaries, lower first.
type Range struct {
	From Expr
	To   Expr
}

func (Range) exprNode() {}

func (r Range) MarshalJSON() ([]byte, error) {
	return wrapPair("range", r.From, r.To)
}

// Concat concatenates several expressions.
type Concat []Expr

func (Concat) exprNode() {}

func (c Concat) MarshalJSON() ([]byte, error) {
	return wrapObject("concat", []Expr(c))
}

// SetExpr is an anonymous set of items, possibly mappings.
type SetExpr []SetItem

func (SetExpr) exprNode() {}

func (s SetExpr) MarshalJSON() ([]byte, error) {
	return wrapObject("set", []SetItem(s))
}

// SetItem is one entry in an anonymous set or a named element list: a bare
// element, a [key, value] mapping, or a [key, statement] mapping. Value and
// Stmt are mutually exclusive; both nil means a bare element. Decoded
// mappings in named elem lists appear as SetItem values directly.
type SetItem struct {
	Elem  Expr
	Value Expr
	Stmt  Stmt
}

func (SetItem) exprNode() {}

func (it SetItem) MarshalJSON() ([]byte, error) {
	switch {
	case it.Stmt != nil:
		return json.Marshal([2]any{it.Elem, it.Stmt})
	case it.Value != nil:
		return json.Marshal([2]any{it.Elem, it.Value})
	default:
		return json.Marshal(it.Elem)
	}
}

// MapExpr maps a key expression to a value through value/target pairs.
type MapExpr struct {
	Key  Expr `json:"key"`
	Data Expr `json:"data"`
}

func (MapExpr) exprNode() {}

func (m MapExpr) MarshalJSON() ([]byte, error) {
	type alias MapExpr
	return wrapObject("map", alias(m))
}

// Prefix is an IPv4 or IPv6 prefix: address part plus prefix length.
type Prefix struct {
	Addr Expr   `json:"addr"`
	Len  uint32 `json:"len"`
}

func (Prefix) exprNode() {}

func (p Prefix) MarshalJSON() ([]byte, error) {
	type alias Prefix
	return wrapObject("prefix", alias(p))
}

// PayloadField references a header field by name in a named protocol header.
type PayloadField struct {
	Protocol string `json:"protocol"`
	Field    string `json:"field"`
}

func (PayloadField) exprNode() {}

func (p PayloadField) MarshalJSON() ([]byte, error) {
	type alias PayloadField
	return wrapObject("payload", alias(p))
}

// PayloadRaw references a raw byte window at an offset from a protocol-layer
// base. It shares the "payload" wire key with PayloadField; the two are told
// apart by probing which field set is fully present.
type PayloadRaw struct {
	Base   PayloadBase `json:"base"`
	Offset uint32      `json:"offset"`
	Len    uint32      `json:"len"`
}

func (PayloadRaw) exprNode() {}

func (p PayloadRaw) MarshalJSON() ([]byte, error) {
	type alias PayloadRaw
	return wrapObject("payload", alias(p))
}

// Exthdr references a field in an IPv6 extension header. With no Field it
// acts as a header existence check. Offset applies to rt0 only.
type Exthdr struct {
	Name   string  `json:"name"`
	Field  string  `json:"field,omitempty"`
	Offset *uint32 `json:"offset,omitempty"`
}

func (Exthdr) exprNode() {}

func (e Exthdr) MarshalJSON() ([]byte, error) {
	type alias Exthdr
	return wrapObject("exthdr", alias(e))
}

// TCPOption references a field of a TCP option header. With no Field it acts
// as an option existence check.
type TCPOption struct {
	Name  string `json:"name"`
	Field string `json:"field,omitempty"`
}

func (TCPOption) exprNode() {}

func (o TCPOption) MarshalJSON() ([]byte, error) {
	type alias TCPOption
	return wrapObject("tcp option", alias(o))
}

// SCTPChunk references a field of an SCTP chunk.
type SCTPChunk struct {
	Name  string `json:"name"`
	Field string `json:"field,omitempty"`
}

func (SCTPChunk) exprNode() {}

func (c SCTPChunk) MarshalJSON() ([]byte, error) {
	type alias SCTPChunk
	return wrapObject("sctp chunk", alias(c))
}

// Meta references packet meta data.
type Meta struct {
	Key MetaKey `json:"key"`
}

func (Meta) exprNode() {}

func (m Meta) MarshalJSON() ([]byte, error) {
	type alias Meta
	return wrapObject("meta", alias(m))
}

// RT references packet routing data.
type RT struct {
	Key    RTKey    `json:"key"`
	Family RTFamily `json:"family,omitempty"`
}

func (RT) exprNode() {}

func (r RT) MarshalJSON() ([]byte, error) {
	type alias RT
	return wrapObject("rt", alias(r))
}

// CT references packet conntrack data. Key is an open vocabulary (see the
// conntrack expressions in nft(8)). Dir must be empty for keys that do not
// support a direction.
type CT struct {
	Key    string   `json:"key"`
	Family CTFamily `json:"family,omitempty"`
	Dir    CTDir    `json:"dir,omitempty"`
}

func (CT) exprNode() {}

func (c CT) MarshalJSON() ([]byte, error) {
	type alias CT
	return wrapObject("ct", alias(c))
}

// Numgen generates numbers below Mod, optionally offset.
type Numgen struct {
	Mode   NumgenMode `json:"mode"`
	Mod    uint32     `json:"mod"`
	Offset *uint32    `json:"offset,omitempty"`
}

func (Numgen) exprNode() {}

func (n Numgen) MarshalJSON() ([]byte, error) {
	type alias Numgen
	return wrapObject("numgen", alias(n))
}

// JHash hashes packet data with the Jenkins hash.
type JHash struct {
	Mod    uint32  `json:"mod"`
	Offset *uint32 `json:"offset,omitempty"`
	Expr   Expr    `json:"expr"`
	Seed   *uint32 `json:"seed,omitempty"`
}

func (JHash) exprNode() {}

func (h JHash) MarshalJSON() ([]byte, error) {
	type alias JHash
	return wrapObject("jhash", alias(h))
}

// SymHash hashes packet data symmetrically.
type SymHash struct {
	Mod    uint32  `json:"mod"`
	Offset *uint32 `json:"offset,omitempty"`
}

func (SymHash) exprNode() {}

func (h SymHash) MarshalJSON() ([]byte, error) {
	type alias SymHash
	return wrapObject("symhash", alias(h))
}

// Fib performs a forwarding information base lookup.
type Fib struct {
	Result FibResult `json:"result"`
	Flags  []FibFlag `json:"flags"`
}

func (Fib) exprNode() {}

func (f Fib) MarshalJSON() ([]byte, error) {
	type alias Fib
	return wrapObject("fib", alias(f))
}

// Elem is an explicit set element carrying per-element attributes.
type Elem struct {
	Val     Expr         `json:"val"`
	Timeout *uint32      `json:"timeout,omitempty"`
	Expires *uint32      `json:"expires,omitempty"`
	Comment string       `json:"comment,omitempty"`
	Counter *CounterStmt `json:"counter,omitempty"`
}

func (Elem) exprNode() {}

func (e Elem) MarshalJSON() ([]byte, error) {
	type elem struct {
		Val     Expr    `json:"val"`
		Timeout *uint32 `json:"timeout,omitempty"`
		Expires *uint32 `json:"expires,omitempty"`
		Comment string  `json:"comment,omitempty"`
		Counter any     `json:"counter,omitempty"`
	}
	v := elem{Val: e.Val, Timeout: e.Timeout, Expires: e.Expires, Comment: e.Comment}
	if e.Counter != nil {
		// Inner payload only; the counter here is not a statement.
		type counter struct {
			Packets *uint64 `json:"packets,omitempty"`
			Bytes   *uint64 `json:"bytes,omitempty"`
		}
		v.Counter = counter{Packets: e.Counter.Packets, Bytes: e.Counter.Bytes}
	}
	return wrapObject("elem", v)
}

// Socket references the packet's socket.
type Socket struct {
	Key string `json:"key"`
}

func (Socket) exprNode() {}

func (s Socket) MarshalJSON() ([]byte, error) {
	type alias Socket
	return wrapObject("socket", alias(s))
}

// Osf fingerprints the sender's operating system.
type Osf struct {
	Key string `json:"key"`
	TTL OsfTTL `json:"ttl"`
}

func (Osf) exprNode() {}

func (o Osf) MarshalJSON() ([]byte, error) {
	type alias Osf
	return wrapObject("osf", alias(o))
}
