// Package nftjson models the JSON documents exchanged with nftables over
// libnftables-json, the line protocol spoken by `nft -j`.
//
// # Overview
//
// A ruleset document is an ordered list of items: commands (add, delete,
// flush, ...) on input, or bare ruleset elements (table, chain, rule, set,
// ...) on output. This package represents the full document grammar as
// native value types and converts them losslessly to and from the wire
// format, reporting decode failures with the exact JSON path of the
// offending node.
//
// # Key Types
//
//   - [Ruleset]: a whole document, the `{"nftables":[...]}` envelope
//   - [Item]: one document entry, either a command or a bare [ListObject]
//   - [Stmt]: one operation in a rule body (match, verdict, counter, NAT, ...)
//   - [Expr]: a value or packet-field reference inside a statement
//   - [Batch]: ordered command accumulator producing a Ruleset
//
// # Example
//
//	b := nftjson.NewBatch()
//	b.Add(nftjson.Table{Family: nftjson.FamilyINet, Name: "filter"})
//	b.Add(nftjson.Chain{
//		Family: nftjson.FamilyINet,
//		Table:  "filter",
//		Name:   "input",
//		Type:   nftjson.ChainTypeFilter,
//		Hook:   nftjson.HookInput,
//		Policy: nftjson.ChainPolicyDrop,
//	})
//	payload, err := nftjson.Marshal(b.ToRuleset())
//
// The model is pure and allocation-only; encoding and decoding unrelated
// documents may run concurrently without coordination. Talking to the nft
// binary itself is the job of the nftexec subpackage.
package nftjson
