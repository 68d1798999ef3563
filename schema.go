package nftjson

import (
	"encoding/json"
	"fmt"
)

// Defaults used by the convenience constructors.
const (
	DefaultFamily = FamilyINet
	DefaultTable  = "filter"
	DefaultChain  = "forward"
)

// Item is an entry of the top-level nftables array: either a Command (input)
// or a bare ListObject (as emitted by `nft -j list ruleset`).
type Item interface {
	itemNode()
}

// Command is an action to be performed on the ruleset. On the wire a command
// is an object with a single property naming the verb.
type Command interface {
	Item
	commandNode()
}

// ListObject is a ruleset element: a table, chain, rule, named object or the
// metainfo header. Inside a command the element is wrapped in an object keyed
// by its kind, e.g. {"add": {"table": {...}}}.
type ListObject interface {
	Item
	kind() string
}

// Ruleset is a whole nftables document, the {"nftables": [...]} envelope.
type Ruleset struct {
	Items []Item
}

func (r *Ruleset) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, len(r.Items))
	for i, it := range r.Items {
		var (
			b   []byte
			err error
		)
		switch v := it.(type) {
		case ListObject:
			b, err = wrapObject(v.kind(), v)
		default:
			b, err = json.Marshal(it)
		}
		if err != nil {
			return nil, err
		}
		items[i] = b
	}
	return wrapObject("nftables", items)
}

// Marshal encodes a ruleset document to wire JSON.
func Marshal(r *Ruleset) ([]byte, error) {
	return json.Marshal(r)
}

// Ruleset elements.

// Table describes a table. In a delete command the handle may identify the
// table instead of its name.
type Table struct {
	Family Family  `json:"family"`
	Name   string  `json:"name"`
	Handle *uint32 `json:"handle,omitempty"`
}

// Chain describes a chain. Type, Hook, Prio and Policy are given for base
// chains only; Newname is used by the rename command; Dev binds a netdev
// family chain to an interface.
type Chain struct {
	Family  Family      `json:"family"`
	Table   string      `json:"table"`
	Name    string      `json:"name"`
	Newname string      `json:"newname,omitempty"`
	Handle  *uint32     `json:"handle,omitempty"`
	Type    ChainType   `json:"type,omitempty"`
	Hook    Hook        `json:"hook,omitempty"`
	Prio    *int32      `json:"prio,omitempty"`
	Dev     string      `json:"dev,omitempty"`
	Policy  ChainPolicy `json:"policy,omitempty"`
}

// Rule describes a rule. Expr is the ordered statement list; order is
// semantically significant. Handle identifies an existing rule in
// delete/replace commands and an anchor rule in add/insert; Index is the
// positional alternative to Handle.
type Rule struct {
	Family  Family  `json:"family"`
	Table   string  `json:"table"`
	Chain   string  `json:"chain"`
	Expr    []Stmt  `json:"expr"`
	Handle  *uint32 `json:"handle,omitempty"`
	Index   *uint32 `json:"index,omitempty"`
	Comment string  `json:"comment,omitempty"`
}

// The expr property is always present on the wire, as an empty array when
// the rule carries no statements (delete/replace by handle).
func (r Rule) MarshalJSON() ([]byte, error) {
	if r.Expr == nil {
		r.Expr = []Stmt{}
	}
	type alias Rule
	return json.Marshal(alias(r))
}

// SetTypeValue is the datatype of a set or map side: a single SetType or a
// concatenation of several.
type SetTypeValue interface {
	setTypeValue()
}

func (SetType) setTypeValue() {}

// ConcatTypes is a concatenated set datatype, e.g. ipv4_addr . inet_service.
type ConcatTypes []SetType

func (ConcatTypes) setTypeValue() {}

// Set describes a named set.
type Set struct {
	Family     Family       `json:"family"`
	Table      string       `json:"table"`
	Name       string       `json:"name"`
	Handle     *uint32      `json:"handle,omitempty"`
	Type       SetTypeValue `json:"type"`
	Policy     SetPolicy    `json:"policy,omitempty"`
	Flags      []SetFlag    `json:"flags,omitempty"`
	Elem       []Expr       `json:"elem,omitempty"`
	Timeout    *uint32      `json:"timeout,omitempty"`
	GCInterval *uint32      `json:"gc-interval,omitempty"`
	Size       *uint32      `json:"size,omitempty"`
	Comment    string       `json:"comment,omitempty"`
}

// Map describes a named map. A map is a set whose elements additionally
// carry a value of the Map datatype.
type Map struct {
	Family     Family       `json:"family"`
	Table      string       `json:"table"`
	Name       string       `json:"name"`
	Handle     *uint32      `json:"handle,omitempty"`
	Type       SetTypeValue `json:"type"`
	Map        SetTypeValue `json:"map"`
	Policy     SetPolicy    `json:"policy,omitempty"`
	Flags      []SetFlag    `json:"flags,omitempty"`
	Elem       []Expr       `json:"elem,omitempty"`
	Timeout    *uint32      `json:"timeout,omitempty"`
	GCInterval *uint32      `json:"gc-interval,omitempty"`
	Size       *uint32      `json:"size,omitempty"`
	Comment    string       `json:"comment,omitempty"`
}

// Element manipulates elements in an existing named set or map.
type Element struct {
	Family Family `json:"family"`
	Table  string `json:"table"`
	Name   string `json:"name"`
	Elem   []Expr `json:"elem"`
}

// FlowTable describes a flowtable. Dev accepts a single interface name or an
// array of names on decode and always re-encodes as an array.
type FlowTable struct {
	Family Family   `json:"family"`
	Table  string   `json:"table"`
	Name   string   `json:"name"`
	Handle *uint32  `json:"handle,omitempty"`
	Hook   Hook     `json:"hook,omitempty"`
	Prio   *uint32  `json:"prio,omitempty"`
	Dev    []string `json:"dev,omitempty"`
}

// Counter describes a named counter.
type Counter struct {
	Family  Family  `json:"family"`
	Table   string  `json:"table"`
	Name    string  `json:"name"`
	Handle  *uint32 `json:"handle,omitempty"`
	Packets *uint64 `json:"packets,omitempty"`
	Bytes   *uint64 `json:"bytes,omitempty"`
}

// Quota describes a named quota.
type Quota struct {
	Family Family  `json:"family"`
	Table  string  `json:"table"`
	Name   string  `json:"name"`
	Handle *uint32 `json:"handle,omitempty"`
	Bytes  *uint64 `json:"bytes,omitempty"`
	Used   *uint64 `json:"used,omitempty"`
	Inv    *bool   `json:"inv,omitempty"`
}

// CTHelper describes a named conntrack helper. Wire kind: "ct helper".
type CTHelper struct {
	Family   Family  `json:"family"`
	Table    string  `json:"table"`
	Name     string  `json:"name"`
	Handle   *uint32 `json:"handle,omitempty"`
	Type     string  `json:"type"`
	Protocol CTProto `json:"protocol,omitempty"`
	L3Proto  string  `json:"l3proto,omitempty"`
}

// Limit describes a named limit.
type Limit struct {
	Family Family    `json:"family"`
	Table  string    `json:"table"`
	Name   string    `json:"name"`
	Handle *uint32   `json:"handle,omitempty"`
	Rate   *uint32   `json:"rate,omitempty"`
	Per    TimeUnit  `json:"per,omitempty"`
	Burst  *uint32   `json:"burst,omitempty"`
	Unit   LimitUnit `json:"unit,omitempty"`
	Inv    *bool     `json:"inv,omitempty"`
}

// Metainfo is the library information header, the first element of `nft -j`
// output.
type Metainfo struct {
	Version           string  `json:"version,omitempty"`
	ReleaseName       string  `json:"release_name,omitempty"`
	JSONSchemaVersion *uint32 `json:"json_schema_version,omitempty"`
}

// CTTimeout describes a named conntrack timeout policy. Wire kind:
// "ct timeout".
type CTTimeout struct {
	Family   Family  `json:"family"`
	Table    string  `json:"table"`
	Name     string  `json:"name"`
	Handle   *uint32 `json:"handle,omitempty"`
	Protocol CTProto `json:"protocol,omitempty"`
	State    string  `json:"state,omitempty"`
	Value    *uint32 `json:"value,omitempty"`
	L3Proto  string  `json:"l3proto,omitempty"`
}

// CTExpectation describes a named conntrack expectation. Wire kind:
// "ct expectation".
type CTExpectation struct {
	Family   Family  `json:"family"`
	Table    string  `json:"table"`
	Name     string  `json:"name"`
	Handle   *uint32 `json:"handle,omitempty"`
	L3Proto  string  `json:"l3proto,omitempty"`
	Protocol CTProto `json:"protocol,omitempty"`
	DPort    *uint32 `json:"dport,omitempty"`
	Timeout  *uint32 `json:"timeout,omitempty"`
	Size     *uint32 `json:"size,omitempty"`
}

// SynProxy describes a named synproxy object.
type SynProxy struct {
	Family Family         `json:"family"`
	Table  string         `json:"table"`
	Name   string         `json:"name"`
	Handle *uint32        `json:"handle,omitempty"`
	MSS    *uint16        `json:"mss,omitempty"`
	Wscale *uint8         `json:"wscale,omitempty"`
	Flags  []SynProxyFlag `json:"flags,omitempty"`
}

func (Table) itemNode()         {}
func (Chain) itemNode()         {}
func (Rule) itemNode()          {}
func (Set) itemNode()           {}
func (Map) itemNode()           {}
func (Element) itemNode()       {}
func (FlowTable) itemNode()     {}
func (Counter) itemNode()       {}
func (Quota) itemNode()         {}
func (CTHelper) itemNode()      {}
func (Limit) itemNode()         {}
func (Metainfo) itemNode()      {}
func (CTTimeout) itemNode()     {}
func (CTExpectation) itemNode() {}
func (SynProxy) itemNode()      {}

func (Table) kind() string         { return "table" }
func (Chain) kind() string         { return "chain" }
func (Rule) kind() string          { return "rule" }
func (Set) kind() string           { return "set" }
func (Map) kind() string           { return "map" }
func (Element) kind() string       { return "element" }
func (FlowTable) kind() string     { return "flowtable" }
func (Counter) kind() string       { return "counter" }
func (Quota) kind() string         { return "quota" }
func (CTHelper) kind() string      { return "ct helper" }
func (Limit) kind() string         { return "limit" }
func (Metainfo) kind() string      { return "metainfo" }
func (CTTimeout) kind() string     { return "ct timeout" }
func (CTExpectation) kind() string { return "ct expectation" }
func (SynProxy) kind() string      { return "synproxy" }

// NewTable returns a table in the default family with the default name.
func NewTable() Table {
	return Table{Family: DefaultFamily, Name: DefaultTable}
}

// NewChain returns a chain on the default table.
func NewChain() Chain {
	return Chain{Family: DefaultFamily, Table: DefaultTable, Name: DefaultChain}
}

// NewRule returns an empty rule on the default chain.
func NewRule() Rule {
	return Rule{Family: DefaultFamily, Table: DefaultTable, Chain: DefaultChain}
}

// Commands.

// Add adds a ruleset element to the kernel.
type Add struct {
	Object ListObject
}

// Create is identical to Add but fails if the object already exists.
type Create struct {
	Object ListObject
}

// Insert prepends a rule instead of appending it.
type Insert struct {
	Object ListObject
}

// Delete removes an object from the ruleset. Only the properties needed to
// identify the object are required.
type Delete struct {
	Object ListObject
}

// List queries ruleset elements. Plural kinds list all objects of that kind.
type List struct {
	Object ListObject
}

// Replace replaces the rule identified by its mandatory handle. The rule's
// properties appear directly under the verb, without a nested kind key.
type Replace struct {
	Rule Rule
}

// Rename renames a chain; the new name is given in the chain's Newname. Like
// Replace, the chain's properties appear directly under the verb.
type Rename struct {
	Chain Chain
}

// Reset zeroes internal state of suitable objects.
type Reset struct {
	Object ResetObject
}

// Flush empties the given object, e.g. removes all rules from a chain.
type Flush struct {
	Object FlushObject
}

func (Add) itemNode()     {}
func (Create) itemNode()  {}
func (Insert) itemNode()  {}
func (Delete) itemNode()  {}
func (List) itemNode()    {}
func (Replace) itemNode() {}
func (Rename) itemNode()  {}
func (Reset) itemNode()   {}
func (Flush) itemNode()   {}

func (Add) commandNode()     {}
func (Create) commandNode()  {}
func (Insert) commandNode()  {}
func (Delete) commandNode()  {}
func (List) commandNode()    {}
func (Replace) commandNode() {}
func (Rename) commandNode()  {}
func (Reset) commandNode()   {}
func (Flush) commandNode()   {}

func marshalVerb(verb string, obj ListObject) ([]byte, error) {
	inner, err := wrapObject(obj.kind(), obj)
	if err != nil {
		return nil, err
	}
	return wrapRaw(verb, inner), nil
}

func (c Add) MarshalJSON() ([]byte, error)    { return marshalVerb("add", c.Object) }
func (c Create) MarshalJSON() ([]byte, error) { return marshalVerb("create", c.Object) }
func (c Insert) MarshalJSON() ([]byte, error) { return marshalVerb("insert", c.Object) }
func (c Delete) MarshalJSON() ([]byte, error) { return marshalVerb("delete", c.Object) }
func (c List) MarshalJSON() ([]byte, error)   { return marshalVerb("list", c.Object) }

func (c Replace) MarshalJSON() ([]byte, error) {
	return wrapObject("replace", c.Rule)
}

func (c Rename) MarshalJSON() ([]byte, error) {
	return wrapObject("rename", c.Chain)
}

func (c Reset) MarshalJSON() ([]byte, error) {
	var (
		inner []byte
		err   error
	)
	switch v := c.Object.(type) {
	case Counter:
		inner, err = wrapObject("counter", v)
	case Counters:
		inner, err = wrapObject("counters", []Counter(v))
	case Quota:
		inner, err = wrapObject("quota", v)
	case Quotas:
		inner, err = wrapObject("quotas", []Quota(v))
	default:
		return nil, fmt.Errorf("nftjson: unsupported reset target %T", c.Object)
	}
	if err != nil {
		return nil, err
	}
	return wrapRaw("reset", inner), nil
}

func (c Flush) MarshalJSON() ([]byte, error) {
	var (
		inner []byte
		err   error
	)
	switch v := c.Object.(type) {
	case Table, Chain, Set, Map:
		obj := c.Object.(ListObject)
		inner, err = wrapObject(obj.kind(), obj)
	case Meter:
		inner, err = json.Marshal(v)
	case LiveRuleset:
		inner = wrapNull("ruleset")
	default:
		return nil, fmt.Errorf("nftjson: unsupported flush target %T", c.Object)
	}
	if err != nil {
		return nil, err
	}
	return wrapRaw("flush", inner), nil
}

// ResetObject is a target of the reset command.
type ResetObject interface {
	resetTarget()
}

// Counters resets a list of counters at once.
type Counters []Counter

// Quotas resets a list of quotas at once.
type Quotas []Quota

func (Counter) resetTarget()  {}
func (Counters) resetTarget() {}
func (Quota) resetTarget()    {}
func (Quotas) resetTarget()   {}

// FlushObject is a target of the flush command.
type FlushObject interface {
	flushTarget()
}

// LiveRuleset is the whole live ruleset, flushed with {"flush":{"ruleset":null}}.
type LiveRuleset struct{}

func (Table) flushTarget()       {}
func (Chain) flushTarget()       {}
func (Set) flushTarget()         {}
func (Map) flushTarget()         {}
func (Meter) flushTarget()       {}
func (LiveRuleset) flushTarget() {}
