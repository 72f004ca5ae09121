// Package graphfile loads resolved graphs described in files.
//
// A graph document lists namespaces, aggregate declarations with their
// members, locals and queries. It is written as TOML (the project's usual
// configuration format) or YAML, and may be frozen into a msgpack snapshot
// (".symg") carrying a schema version.
//
// Type references use C# surface notation:
//
//	System.Collections.Generic.List<int>   dotted path with arguments
//	Outer<int>.Inner<string>                nested instantiation
//	T, !0, !!1                              named, type-owned, method-owned parameter
//	int[] int[*] int[,,] int* int?          array, pointer and nullable suffixes
//	out int, ref string                     parameter modifiers
//	null void ? <error> lambda anonymous-method method-group arglist
//
// Array suffixes are written outermost layer first, as the renderer prints
// them. Names resolve against the type parameters in scope, then registered
// nice names, then aggregates relative to the enclosing declarations, the
// global namespace and the document's using list. A name that does not
// resolve becomes an Error type carrying the written text, parented to the
// longest prefix that does.
//
// Nested aggregates are declared with a '+' separator ("N.Outer+Inner") and
// referenced with dots everywhere else.
package graphfile
