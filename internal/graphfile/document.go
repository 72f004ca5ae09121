package graphfile

import (
	"errors"
	"fmt"
	"strings"
)

// Document is the on-disk description of a resolved graph and the queries to
// run against it. The same structure is decoded from TOML, YAML and msgpack
// snapshots.
type Document struct {
	// Using lists namespaces searched when a type reference is not found by
	// its full path.
	Using      []string    `toml:"using" yaml:"using" msgpack:"using"`
	Namespaces []string    `toml:"namespaces" yaml:"namespaces" msgpack:"namespaces"`
	Types      []TypeDecl  `toml:"type" yaml:"type" msgpack:"type"`
	Locals     []LocalDecl `toml:"local" yaml:"local" msgpack:"local"`
	Queries    []Query     `toml:"query" yaml:"query" msgpack:"query"`
}

// TypeDecl declares an aggregate. Path is dotted; a '+' separates a nested
// type from its enclosing type ("N.Outer+Inner").
type TypeDecl struct {
	Path       string         `toml:"path" yaml:"path" msgpack:"path"`
	Kind       string         `toml:"kind" yaml:"kind" msgpack:"kind"`
	TypeParams []string       `toml:"type_params" yaml:"type_params" msgpack:"type_params"`
	Nice       string         `toml:"nice" yaml:"nice" msgpack:"nice"`
	Methods    []MethodDecl   `toml:"method" yaml:"method" msgpack:"method"`
	Properties []PropertyDecl `toml:"property" yaml:"property" msgpack:"property"`
	Fields     []FieldDecl    `toml:"field" yaml:"field" msgpack:"field"`
	Events     []EventDecl    `toml:"event" yaml:"event" msgpack:"event"`
}

// MethodDecl declares a method. Kind is one of "", "method", "constructor",
// "destructor"; operators and conversions are recognised by their metadata
// names (op_Addition, op_Implicit, ...). Params entries are type references;
// a "params " prefix on the last entry marks a params array, a trailing "..."
// entry marks unchecked varargs and an empty entry is an unresolved type.
type MethodDecl struct {
	Name       string   `toml:"name" yaml:"name" msgpack:"name"`
	Kind       string   `toml:"kind" yaml:"kind" msgpack:"kind"`
	TypeParams []string `toml:"type_params" yaml:"type_params" msgpack:"type_params"`
	Params     []string `toml:"params" yaml:"params" msgpack:"params"`
	Returns    string   `toml:"returns" yaml:"returns" msgpack:"returns"`
	Explicit   string   `toml:"explicit" yaml:"explicit" msgpack:"explicit"`
	Broken     bool     `toml:"broken" yaml:"broken" msgpack:"broken"`
}

// PropertyDecl declares a property or, with Indexer set, an indexer.
type PropertyDecl struct {
	Name      string   `toml:"name" yaml:"name" msgpack:"name"`
	Type      string   `toml:"type" yaml:"type" msgpack:"type"`
	Indexer   bool     `toml:"indexer" yaml:"indexer" msgpack:"indexer"`
	Params    []string `toml:"params" yaml:"params" msgpack:"params"`
	Explicit  string   `toml:"explicit" yaml:"explicit" msgpack:"explicit"`
	Synthetic string   `toml:"synthetic" yaml:"synthetic" msgpack:"synthetic"`
	Accessors []string `toml:"accessors" yaml:"accessors" msgpack:"accessors"`
}

// FieldDecl declares a field.
type FieldDecl struct {
	Name string `toml:"name" yaml:"name" msgpack:"name"`
	Type string `toml:"type" yaml:"type" msgpack:"type"`
}

// EventDecl declares an event and its accessors.
type EventDecl struct {
	Name      string   `toml:"name" yaml:"name" msgpack:"name"`
	Type      string   `toml:"type" yaml:"type" msgpack:"type"`
	Accessors []string `toml:"accessors" yaml:"accessors" msgpack:"accessors"`
}

// LocalDecl declares a local variable of the method named by In.
type LocalDecl struct {
	Name string `toml:"name" yaml:"name" msgpack:"name"`
	In   string `toml:"in" yaml:"in" msgpack:"in"`
	Type string `toml:"type" yaml:"type" msgpack:"type"`
}

// Query asks for one rendering. Exactly one of Symbol and Type is set.
//
// Symbol is a dotted path with an optional "#n" overload index; "global::"
// names the root namespace and "Method/x" a local of Method. Type is a type
// reference resolved in the scope of the Scope symbol. In is an aggregate
// instantiation supplying type-level substitutions and MethodArgs the
// method-level ones. Expect, when present, is the required output.
type Query struct {
	Name       string   `toml:"name" yaml:"name" msgpack:"name"`
	Symbol     string   `toml:"symbol" yaml:"symbol" msgpack:"symbol"`
	Type       string   `toml:"type" yaml:"type" msgpack:"type"`
	Scope      string   `toml:"scope" yaml:"scope" msgpack:"scope"`
	In         string   `toml:"in" yaml:"in" msgpack:"in"`
	MethodArgs []string `toml:"method_args" yaml:"method_args" msgpack:"method_args"`
	Args       bool     `toml:"args" yaml:"args" msgpack:"args"`
	Expect     *string  `toml:"expect" yaml:"expect" msgpack:"expect"`
}

var aggregateKinds = map[string]bool{"": true, "class": true, "struct": true, "interface": true, "enum": true}

var methodKinds = map[string]bool{"": true, "method": true, "constructor": true, "destructor": true}

// Validate checks the structural rules that do not need a graph.
func (d *Document) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(d.Types))
	for i := range d.Types {
		t := &d.Types[i]
		switch {
		case strings.TrimSpace(t.Path) == "":
			errs = append(errs, fmt.Errorf("type %d: missing path", i))
			continue
		case !aggregateKinds[t.Kind]:
			errs = append(errs, fmt.Errorf("type %q: unknown kind %q", t.Path, t.Kind))
		case seen[t.Path]:
			errs = append(errs, fmt.Errorf("type %q: declared twice", t.Path))
		}
		seen[t.Path] = true
		for _, m := range t.Methods {
			if m.Name == "" && m.Kind != "constructor" && m.Kind != "destructor" {
				errs = append(errs, fmt.Errorf("type %q: method without name", t.Path))
			}
			if !methodKinds[m.Kind] {
				errs = append(errs, fmt.Errorf("type %q: method %q: unknown kind %q", t.Path, m.Name, m.Kind))
			}
		}
		for _, p := range t.Properties {
			if p.Name == "" && !p.Indexer {
				errs = append(errs, fmt.Errorf("type %q: property without name", t.Path))
			}
			for _, acc := range p.Accessors {
				if acc != "get" && acc != "set" {
					errs = append(errs, fmt.Errorf("type %q: property %q: unknown accessor %q", t.Path, p.Name, acc))
				}
			}
		}
		for _, e := range t.Events {
			for _, acc := range e.Accessors {
				if acc != "add" && acc != "remove" {
					errs = append(errs, fmt.Errorf("type %q: event %q: unknown accessor %q", t.Path, e.Name, acc))
				}
			}
		}
	}
	for i, l := range d.Locals {
		if l.Name == "" || l.In == "" {
			errs = append(errs, fmt.Errorf("local %d: name and in are required", i))
		}
	}
	for i, q := range d.Queries {
		if (q.Symbol == "") == (q.Type == "") {
			errs = append(errs, fmt.Errorf("query %d (%s): exactly one of symbol and type is required", i, q.Name))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
