package nftjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u32(v uint32) *uint32 { return &v }
func u64(v uint64) *uint64 { return &v }
func i32(v int32) *int32   { return &v }

func TestMarshalAddTable(t *testing.T) {
	rs := &Ruleset{Items: []Item{
		Add{Object: Table{Family: FamilyIP, Name: "filter"}},
	}}
	out, err := Marshal(rs)
	require.NoError(t, err)

	// Stable field order makes the add-table document byte-reproducible.
	want := `{"nftables":[{"add":{"table":{"family":"ip","name":"filter"}}}]}`
	assert.Equal(t, want, string(out))

	back, err := Unmarshal(out)
	require.NoError(t, err)
	require.Len(t, back.Items, 1)
	cmd, ok := back.Items[0].(Add)
	require.True(t, ok, "expected add command, got %T", back.Items[0])
	assert.Equal(t, Table{Family: FamilyIP, Name: "filter"}, cmd.Object)
}

func TestMarshalBaseChain(t *testing.T) {
	rs := &Ruleset{Items: []Item{
		Add{Object: Chain{
			Family: FamilyINet,
			Table:  "filter",
			Name:   "input",
			Type:   ChainTypeFilter,
			Hook:   HookInput,
			Prio:   i32(0),
			Policy: ChainPolicyAccept,
		}},
	}}
	out, err := Marshal(rs)
	require.NoError(t, err)
	want := `{"nftables":[{"add":{"chain":{` +
		`"family":"inet","table":"filter","name":"input",` +
		`"type":"filter","hook":"input","prio":0,"policy":"accept"}}}]}`
	assert.Equal(t, want, string(out))
}

func TestUnmarshalRulesetOutput(t *testing.T) {
	// Trimmed nft -j list ruleset output.
	input := `{"nftables":[
		{"metainfo":{"version":"1.0.9","release_name":"Old Doc Yak #3","json_schema_version":1}},
		{"table":{"family":"inet","name":"filter","handle":1}},
		{"chain":{"family":"inet","table":"filter","name":"forward","handle":2,"type":"filter","hook":"forward","prio":0,"policy":"drop"}},
		{"rule":{"family":"inet","table":"filter","chain":"forward","handle":3,"expr":[{"match":{"op":"==","left":{"meta":{"key":"iifname"}},"right":"lan0"}},{"accept":null}]}}
	]}`
	rs, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	require.Len(t, rs.Items, 4)

	mi, ok := rs.Items[0].(Metainfo)
	require.True(t, ok)
	assert.Equal(t, "1.0.9", mi.Version)
	require.NotNil(t, mi.JSONSchemaVersion)
	assert.Equal(t, uint32(1), *mi.JSONSchemaVersion)

	chain, ok := rs.Items[2].(Chain)
	require.True(t, ok)
	assert.Equal(t, HookForward, chain.Hook)
	assert.Equal(t, ChainPolicyDrop, chain.Policy)
	require.NotNil(t, chain.Prio)
	assert.Equal(t, int32(0), *chain.Prio)

	rule, ok := rs.Items[3].(Rule)
	require.True(t, ok)
	require.Len(t, rule.Expr, 2)
	match, ok := rule.Expr[0].(Match)
	require.True(t, ok)
	assert.Equal(t, OpEQ, match.Op)
	assert.Equal(t, Meta{Key: MetaKeyIifname}, match.Left)
	assert.Equal(t, String("lan0"), match.Right)
	assert.Equal(t, Accept{}, rule.Expr[1])
}

func TestMarshalRuleStatements(t *testing.T) {
	rule := Rule{
		Family: FamilyIP,
		Table:  "filter",
		Chain:  "forward",
		Expr: []Stmt{
			Match{
				Left:  PayloadField{Protocol: "tcp", Field: "dport"},
				Right: Number(22),
				Op:    OpEQ,
			},
			CounterStmt{},
			Drop{},
		},
		Comment: "no ssh forwarding",
	}
	out, err := Marshal(&Ruleset{Items: []Item{Add{Object: rule}}})
	require.NoError(t, err)
	want := `{"nftables":[{"add":{"rule":{"family":"ip","table":"filter","chain":"forward",` +
		`"expr":[{"match":{"left":{"payload":{"protocol":"tcp","field":"dport"}},"right":22,"op":"=="}},` +
		`{"counter":null},{"drop":null}],"comment":"no ssh forwarding"}}}]}`
	assert.Equal(t, want, string(out))

	back, err := Unmarshal(out)
	require.NoError(t, err)
	got := back.Items[0].(Add).Object.(Rule)
	assert.Equal(t, rule, got)
}

func TestDeleteRuleByHandleEmitsEmptyExprArray(t *testing.T) {
	b := NewBatch()
	b.Delete(Rule{Family: FamilyIP, Table: "filter", Chain: "forward", Handle: u32(5)})
	out, err := Marshal(b.ToRuleset())
	require.NoError(t, err)
	want := `{"nftables":[{"delete":{"rule":{"family":"ip","table":"filter","chain":"forward",` +
		`"expr":[],"handle":5}}}]}`
	assert.Equal(t, want, string(out))

	back, err := Unmarshal(out)
	require.NoError(t, err)
	rule := back.Items[0].(Delete).Object.(Rule)
	require.NotNil(t, rule.Expr)
	assert.Empty(t, rule.Expr)
}

func TestRuleWithoutExprFailsToDecode(t *testing.T) {
	de := decodeErr(t, `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c"}}}]}`)
	assert.Equal(t, ".nftables[0].add.rule", de.Path)
	assert.Contains(t, de.Msg, `"expr"`)
}

func TestMarshalNamedSet(t *testing.T) {
	set := Set{
		Family: FamilyINet,
		Table:  "filter",
		Name:   "blocklist",
		Type:   TypeIPv4Addr,
		Flags:  []SetFlag{SetFlagInterval},
		Elem: []Expr{
			String("10.0.0.0"),
			Prefix{Addr: String("192.168.0.0"), Len: 16},
		},
	}
	out, err := Marshal(&Ruleset{Items: []Item{Add{Object: set}}})
	require.NoError(t, err)
	want := `{"nftables":[{"add":{"set":{"family":"inet","table":"filter","name":"blocklist",` +
		`"type":"ipv4_addr","flags":["interval"],` +
		`"elem":["10.0.0.0",{"prefix":{"addr":"192.168.0.0","len":16}}]}}}]}`
	assert.Equal(t, want, string(out))

	back, err := Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, set, back.Items[0].(Add).Object)
}

func TestMarshalMapWithConcatType(t *testing.T) {
	m := Map{
		Family: FamilyIP,
		Table:  "nat",
		Name:   "portmap",
		Type:   ConcatTypes{TypeIPv4Addr, TypeInetService},
		Map:    TypeInetService,
	}
	out, err := Marshal(&Ruleset{Items: []Item{Add{Object: m}}})
	require.NoError(t, err)
	want := `{"nftables":[{"add":{"map":{"family":"ip","table":"nat","name":"portmap",` +
		`"type":["ipv4_addr","inet_service"],"map":"inet_service"}}}]}`
	assert.Equal(t, want, string(out))

	back, err := Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, m, back.Items[0].(Add).Object)
}

func TestMarshalElementWithAttributes(t *testing.T) {
	el := Element{
		Family: FamilyINet,
		Table:  "filter",
		Name:   "throttled",
		Elem: []Expr{
			Elem{
				Val:     String("10.1.2.3"),
				Timeout: u32(600),
				Counter: &CounterStmt{Packets: u64(0), Bytes: u64(0)},
			},
		},
	}
	out, err := Marshal(&Ruleset{Items: []Item{Add{Object: el}}})
	require.NoError(t, err)
	want := `{"nftables":[{"add":{"element":{"family":"inet","table":"filter","name":"throttled",` +
		`"elem":[{"elem":{"val":"10.1.2.3","timeout":600,"counter":{"packets":0,"bytes":0}}}]}}}]}`
	assert.Equal(t, want, string(out))

	back, err := Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, el, back.Items[0].(Add).Object)
}

func TestReplaceAndRenameUseFlatPayload(t *testing.T) {
	replace := Replace{Rule: Rule{
		Family: FamilyIP,
		Table:  "filter",
		Chain:  "forward",
		Expr:   []Stmt{Accept{}},
		Handle: u32(7),
	}}
	out, err := Marshal(&Ruleset{Items: []Item{replace}})
	require.NoError(t, err)
	// The rule's properties sit directly under the verb, no "rule" key.
	want := `{"nftables":[{"replace":{"family":"ip","table":"filter","chain":"forward",` +
		`"expr":[{"accept":null}],"handle":7}}]}`
	assert.Equal(t, want, string(out))

	rename := Rename{Chain: Chain{
		Family:  FamilyIP,
		Table:   "filter",
		Name:    "old",
		Newname: "new",
	}}
	out, err = Marshal(&Ruleset{Items: []Item{rename}})
	require.NoError(t, err)
	want = `{"nftables":[{"rename":{"family":"ip","table":"filter","name":"old","newname":"new"}}]}`
	assert.Equal(t, want, string(out))

	back, err := Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, rename, back.Items[0])
}

func TestResetCommands(t *testing.T) {
	single := Reset{Object: Counter{Family: FamilyIP, Table: "filter", Name: "c1"}}
	out, err := Marshal(&Ruleset{Items: []Item{single}})
	require.NoError(t, err)
	want := `{"nftables":[{"reset":{"counter":{"family":"ip","table":"filter","name":"c1"}}}]}`
	assert.Equal(t, want, string(out))

	many := Reset{Object: Quotas{
		{Family: FamilyIP, Table: "filter", Name: "q1"},
		{Family: FamilyIP, Table: "filter", Name: "q2"},
	}}
	out, err = Marshal(&Ruleset{Items: []Item{many}})
	require.NoError(t, err)
	want = `{"nftables":[{"reset":{"quotas":[` +
		`{"family":"ip","table":"filter","name":"q1"},` +
		`{"family":"ip","table":"filter","name":"q2"}]}}]}`
	assert.Equal(t, want, string(out))

	back, err := Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, many, back.Items[0])
}

func TestFlushCommands(t *testing.T) {
	tests := []struct {
		name string
		cmd  Flush
		want string
	}{
		{
			name: "chain",
			cmd:  Flush{Object: Chain{Family: FamilyIP, Table: "filter", Name: "forward"}},
			want: `{"nftables":[{"flush":{"chain":{"family":"ip","table":"filter","name":"forward"}}}]}`,
		},
		{
			name: "meter",
			cmd: Flush{Object: Meter{
				Name: "ssh-meter",
				Key:  Meta{Key: MetaKeyIifname},
				Stmt: CounterStmt{},
			}},
			want: `{"nftables":[{"flush":{"meter":{"name":"ssh-meter","key":{"meta":{"key":"iifname"}},"stmt":{"counter":null}}}}]}`,
		},
		{
			name: "live ruleset",
			cmd:  Flush{Object: LiveRuleset{}},
			want: `{"nftables":[{"flush":{"ruleset":null}}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(&Ruleset{Items: []Item{tt.cmd}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))

			back, err := Unmarshal(out)
			require.NoError(t, err)
			assert.Equal(t, tt.cmd, back.Items[0])
		})
	}
}

func TestNamedObjectsRoundTrip(t *testing.T) {
	objects := []ListObject{
		Counter{Family: FamilyIP, Table: "filter", Name: "pkts", Packets: u64(100), Bytes: u64(64000)},
		Quota{Family: FamilyIP, Table: "filter", Name: "monthly", Bytes: u64(500000000), Used: u64(0)},
		CTHelper{Family: FamilyINet, Table: "filter", Name: "ftp-helper", Type: "ftp", Protocol: CTProtoTCP},
		Limit{Family: FamilyIP, Table: "filter", Name: "rate", Rate: u32(10), Per: UnitMinute, Unit: LimitUnitPackets},
		CTTimeout{Family: FamilyIP, Table: "filter", Name: "agg", Protocol: CTProtoTCP, State: "established", Value: u32(100)},
		CTExpectation{Family: FamilyIP, Table: "filter", Name: "exp", Protocol: CTProtoTCP, DPort: u32(21), Timeout: u32(100), Size: u32(8)},
		SynProxy{Family: FamilyINet, Table: "filter", Name: "sp", MSS: func() *uint16 { v := uint16(1460); return &v }(), Flags: []SynProxyFlag{SynProxyFlagTimestamp}},
		FlowTable{Family: FamilyINet, Table: "filter", Name: "ft", Hook: HookIngress, Prio: u32(0), Dev: []string{"eth0", "eth1"}},
	}
	for _, obj := range objects {
		t.Run(obj.kind(), func(t *testing.T) {
			out, err := Marshal(&Ruleset{Items: []Item{Add{Object: obj}}})
			require.NoError(t, err)
			back, err := Unmarshal(out)
			require.NoError(t, err)
			assert.Equal(t, obj, back.Items[0].(Add).Object)
		})
	}
}

func TestConstructorDefaults(t *testing.T) {
	assert.Equal(t, Table{Family: FamilyINet, Name: "filter"}, NewTable())
	assert.Equal(t, Chain{Family: FamilyINet, Table: "filter", Name: "forward"}, NewChain())
	assert.Equal(t, Rule{Family: FamilyINet, Table: "filter", Chain: "forward"}, NewRule())
}

func TestSetRefAndWildcard(t *testing.T) {
	assert.Equal(t, String("@blocklist"), SetRef("blocklist"))
	assert.Equal(t, String("*"), Wildcard)
}
