package nftjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeErr unmarshals input expected to fail and returns the typed error.
func decodeErr(t *testing.T, input string) *DecodeError {
	t.Helper()
	_, err := Unmarshal([]byte(input))
	require.Error(t, err)
	var de *DecodeError
	require.True(t, errors.As(err, &de), "expected *DecodeError, got %T: %v", err, err)
	return de
}

func TestUnmarshalRejectsMissingEnvelope(t *testing.T) {
	de := decodeErr(t, `{"rules":[]}`)
	assert.Contains(t, de.Error(), `"nftables"`)
}

func TestUnmarshalRejectsMultiKeyItem(t *testing.T) {
	de := decodeErr(t, `{"nftables":[{"add":{"table":{"family":"ip","name":"t"}},"flush":{"ruleset":null}}]}`)
	assert.Equal(t, ".nftables[0]", de.Path)
	assert.Contains(t, de.Msg, "exactly one property")
}

func TestUnmarshalRejectsEmptyObjectItem(t *testing.T) {
	de := decodeErr(t, `{"nftables":[{}]}`)
	assert.Equal(t, ".nftables[0]", de.Path)
	assert.Contains(t, de.Msg, "exactly one property")
}

func TestUnmarshalRejectsEmptyStatementObject(t *testing.T) {
	de := decodeErr(t, `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c","expr":[{}]}}}]}`)
	assert.Equal(t, ".nftables[0].add.rule.expr[0]", de.Path)
	assert.Contains(t, de.Msg, "exactly one property")
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	de := decodeErr(t, `{"nftables":[{"add":{"widget":{"family":"ip"}}}]}`)
	assert.Equal(t, ".nftables[0].add.widget", de.Path)
	assert.Contains(t, de.Msg, "unknown object kind")
}

func TestUnmarshalRejectsUnknownEnumToken(t *testing.T) {
	de := decodeErr(t, `{"nftables":[{"add":{"table":{"family":"ipx","name":"t"}}}]}`)
	assert.Equal(t, ".nftables[0].add.table.family", de.Path)
	assert.Contains(t, de.Msg, `"ipx"`)
}

func TestErrorPathReachesNestedExpression(t *testing.T) {
	input := `{"nftables":[{"add":{"rule":{
		"family":"ip","table":"t","chain":"c",
		"expr":[
			{"counter":null},
			{"match":{"left":{"meta":{"key":"bogus"}},"right":1,"op":"=="}}
		]}}}]}`
	de := decodeErr(t, input)
	assert.Equal(t, ".nftables[0].add.rule.expr[1].match.left.meta.key", de.Path)
}

func TestErrorPathQuotesNonIdentifierKeys(t *testing.T) {
	input := `{"nftables":[{"add":{"rule":{
		"family":"ip","table":"t","chain":"c",
		"expr":[{"tcp option":{"field":"kind"}}]}}}]}`
	de := decodeErr(t, input)
	assert.Equal(t, `.nftables[0].add.rule.expr[0]["tcp option"]`, de.Path)
	assert.Contains(t, de.Msg, `"name"`)
}

func TestRangeArityIsExact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
	}{
		{
			name:  "one element range",
			input: `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c","expr":[{"match":{"left":1,"right":{"range":[1]},"op":"=="}}]}}}]}`,
			path:  ".nftables[0].add.rule.expr[0].match.right.range",
		},
		{
			name:  "three element binary op",
			input: `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c","expr":[{"match":{"left":{"&":[1,2,3]},"right":1,"op":"=="}}]}}}]}`,
			path:  `.nftables[0].add.rule.expr[0].match.left["&"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := decodeErr(t, tt.input)
			assert.Equal(t, tt.path, de.Path)
			assert.Contains(t, de.Msg, "exactly 2")
		})
	}
}

func TestPayloadFieldSetProbing(t *testing.T) {
	rule := func(payload string) string {
		return `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c",` +
			`"expr":[{"match":{"left":{"payload":` + payload + `},"right":1,"op":"=="}}]}}}]}`
	}

	t.Run("named form", func(t *testing.T) {
		rs, err := Unmarshal([]byte(rule(`{"protocol":"tcp","field":"dport"}`)))
		require.NoError(t, err)
		match := rs.Items[0].(Add).Object.(Rule).Expr[0].(Match)
		assert.Equal(t, PayloadField{Protocol: "tcp", Field: "dport"}, match.Left)
	})

	t.Run("raw form", func(t *testing.T) {
		rs, err := Unmarshal([]byte(rule(`{"base":"nh","offset":64,"len":8}`)))
		require.NoError(t, err)
		match := rs.Items[0].(Add).Object.(Rule).Expr[0].(Match)
		assert.Equal(t, PayloadRaw{Base: PayloadBaseNH, Offset: 64, Len: 8}, match.Left)
	})

	t.Run("mixed forms rejected", func(t *testing.T) {
		de := decodeErr(t, rule(`{"protocol":"tcp","base":"nh","offset":0,"len":8}`))
		assert.Equal(t, ".nftables[0].add.rule.expr[0].match.left.payload", de.Path)
		assert.Contains(t, de.Msg, "mixes")
	})

	t.Run("partial named form rejected", func(t *testing.T) {
		de := decodeErr(t, rule(`{"protocol":"tcp"}`))
		assert.Equal(t, ".nftables[0].add.rule.expr[0].match.left.payload", de.Path)
		assert.Contains(t, de.Msg, `"field"`)
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		de := decodeErr(t, rule(`{}`))
		assert.Contains(t, de.Msg, "payload requires")
	})
}

func TestFlowtableDevCoercion(t *testing.T) {
	input := `{"nftables":[{"add":{"flowtable":{"family":"inet","table":"filter","name":"ft",` +
		`"hook":"ingress","prio":0,"dev":"eth0"}}}]}`
	rs, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	ft := rs.Items[0].(Add).Object.(FlowTable)
	assert.Equal(t, []string{"eth0"}, ft.Dev)

	// Re-encoding always produces the array form.
	out, err := Marshal(rs)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"dev":["eth0"]`)
}

func TestLogFlagsCoercion(t *testing.T) {
	input := `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c",` +
		`"expr":[{"log":{"prefix":"fw: ","flags":"all"}}]}}}]}`
	rs, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	log := rs.Items[0].(Add).Object.(Rule).Expr[0].(Log)
	assert.Equal(t, []LogFlag{LogFlagAll}, log.Flags)

	out, err := Marshal(rs)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"flags":["all"]`)
}

func TestQueueFlagsDoNotCoerce(t *testing.T) {
	input := `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c",` +
		`"expr":[{"queue":{"num":0,"flags":"bypass"}}]}}}]}`
	de := decodeErr(t, input)
	assert.Equal(t, ".nftables[0].add.rule.expr[0].queue.flags", de.Path)
	assert.Contains(t, de.Msg, "expected array")
}

func TestQueueWithoutFlagsOmitsProperty(t *testing.T) {
	input := `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c",` +
		`"expr":[{"queue":{"num":2}}]}}}]}`
	rs, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	out, err := Marshal(rs)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "flags")
	assert.Contains(t, string(out), `{"queue":{"num":2}}`)
}

func TestSetItemShapes(t *testing.T) {
	input := `{"nftables":[{"add":{"element":{"family":"ip","table":"t","name":"m","elem":[
		"bare",
		["key","value"],
		["10.0.0.1",{"counter":{"packets":5,"bytes":300}}]
	]}}}]}`
	rs, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	el := rs.Items[0].(Add).Object.(Element)
	require.Len(t, el.Elem, 3)

	assert.Equal(t, String("bare"), el.Elem[0])

	mapping, ok := el.Elem[1].(SetItem)
	require.True(t, ok, "expected mapping, got %T", el.Elem[1])
	assert.Equal(t, String("key"), mapping.Elem)
	assert.Equal(t, String("value"), mapping.Value)
	assert.Nil(t, mapping.Stmt)

	withStmt, ok := el.Elem[2].(SetItem)
	require.True(t, ok)
	assert.Equal(t, String("10.0.0.1"), withStmt.Elem)
	assert.Equal(t, CounterStmt{Packets: u64(5), Bytes: u64(300)}, withStmt.Stmt)

	// Mappings re-encode as 2-element arrays.
	out, err := Marshal(rs)
	require.NoError(t, err)
	assert.Contains(t, string(out), `["key","value"]`)
	assert.Contains(t, string(out), `["10.0.0.1",{"counter":{"packets":5,"bytes":300}}]`)
}

func TestVerdictPayloadMustBeEmpty(t *testing.T) {
	for _, payload := range []string{"null", "{}"} {
		input := `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c",` +
			`"expr":[{"accept":` + payload + `}]}}}]}`
		rs, err := Unmarshal([]byte(input))
		require.NoError(t, err, "payload %s", payload)
		assert.Equal(t, Accept{}, rs.Items[0].(Add).Object.(Rule).Expr[0])
	}

	de := decodeErr(t, `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c",`+
		`"expr":[{"accept":{"code":1}}]}}}]}`)
	assert.Equal(t, ".nftables[0].add.rule.expr[0].accept", de.Path)
}

func TestCounterAndQuotaReferences(t *testing.T) {
	input := `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c","expr":[
		{"counter":"mycounter"},
		{"quota":"myquota"}
	]}}}]}`
	rs, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	expr := rs.Items[0].(Add).Object.(Rule).Expr
	assert.Equal(t, CounterRef("mycounter"), expr[0])
	assert.Equal(t, QuotaRef("myquota"), expr[1])

	out, err := Marshal(rs)
	require.NoError(t, err)
	assert.Contains(t, string(out), `{"counter":"mycounter"}`)
	assert.Contains(t, string(out), `{"quota":"myquota"}`)
}

func TestNATStatements(t *testing.T) {
	input := `{"nftables":[{"add":{"rule":{"family":"ip","table":"nat","chain":"postrouting","expr":[
		{"masquerade":null},
		{"snat":{"addr":"10.0.0.1","port":1024,"flags":["persistent"]}}
	]}}}]}`
	rs, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	expr := rs.Items[0].(Add).Object.(Rule).Expr

	assert.Equal(t, NAT{Kind: NATKindMasquerade}, expr[0])
	assert.Equal(t, NAT{
		Kind:  NATKindSNAT,
		Addr:  String("10.0.0.1"),
		Port:  u32(1024),
		Flags: []NATFlag{NATFlagPersistent},
	}, expr[1])

	out, err := Marshal(rs)
	require.NoError(t, err)
	assert.Contains(t, string(out), `{"masquerade":null}`)
	assert.Contains(t, string(out), `{"snat":{"addr":"10.0.0.1","port":1024,"flags":["persistent"]}}`)
}

func TestVerdictMapDecodes(t *testing.T) {
	input := `{"nftables":[{"add":{"rule":{"family":"inet","table":"filter","chain":"input","expr":[
		{"vmap":{"key":{"meta":{"key":"iifname"}},"data":{"set":[["lo",{"accept":null}],["wan0",{"drop":null}]]}}}
	]}}}]}`
	rs, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	vmap := rs.Items[0].(Add).Object.(Rule).Expr[0].(VerdictMap)
	set, ok := vmap.Data.(SetExpr)
	require.True(t, ok, "expected set expression, got %T", vmap.Data)
	require.Len(t, set, 2)
	assert.Equal(t, String("lo"), set[0].Elem)
	assert.Equal(t, Accept{}, set[0].Value)
	assert.Equal(t, Drop{}, set[1].Value)
}

func TestXTRoundTripsVerbatim(t *testing.T) {
	input := `{"nftables":[{"add":{"rule":{"family":"ip","table":"t","chain":"c",` +
		`"expr":[{"xt":{"type":"match","name":"conntrack"}}]}}}]}`
	rs, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	out, err := Marshal(rs)
	require.NoError(t, err)
	assert.Contains(t, string(out), `{"xt":{"type":"match","name":"conntrack"}}`)
}

func TestDecodeErrorFormatting(t *testing.T) {
	de := &DecodeError{Path: ".nftables[0].add.table.family", Msg: `unknown value "ipx"`}
	assert.Equal(t, `nftjson: .nftables[0].add.table.family: unknown value "ipx"`, de.Error())

	wrapped := errors.New("boom")
	de = &DecodeError{Path: "", Msg: "malformed object", Err: wrapped}
	assert.ErrorIs(t, de, wrapped)
	assert.Contains(t, de.Error(), "nftjson: .: malformed object")
}
