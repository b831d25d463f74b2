// Package queryir provides the typed query representation behind data
// specification queries.
//
// A query is a tree of rules produced by the visual query builder in the
// portal and persisted with a data specification as an opaque JSON blob.
// queryir turns that blob into a closed set of Go types so that renderers
// (MEQL) and the store can walk it with exhaustive type switches.
//
// TREE SHAPE:
//
//	Condition{and, entity: "people"}
//	├── Expression{"Age" >= 18}
//	├── Expression{"Gender" = "F"}
//	└── Condition{or}
//	    ├── Expression{"Region" in ["North", "South"]}
//	    └── Expression{"Postcode" startswith "NE"}
//
// A JSON object is a Condition when it has a "rules" key and an Expression
// when it has any of "field", "operator" or "value". Anything else is a
// foreign shape and decodes to nil rather than an error, because callers
// treat "nothing to render" and "malformed" the same way.
//
// SEALED INTERFACES:
//
// Rule and Value are sealed with marker methods. Only types in this package
// implement them, which keeps the renderers' type switches exhaustive:
//
//	switch r := rule.(type) {
//	case *Condition:
//	    // parenthesised block
//	case *Expression:
//	    // "field" op value
//	}
//
// VALUES:
//
// Literal values keep the shape the query builder sent. Dates are NOT
// recognised at decode time: a date picker sends an ISO string and the
// renderer decides how to display it. Autocomplete and multi-select controls
// send arrays of {name, value} objects; those decode to Options and only the
// names are ever rendered.
//
// IDENTITY:
//
// Hash computes a content address for a rule tree over canonical JSON
// (sorted keys, NFC strings, no HTML escaping) so that an unchanged query is
// detected on save regardless of key order in the builder's output.
package queryir
