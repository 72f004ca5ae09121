package resolved

import (
	"slices"
	"testing"
)

func TestGraphArenaAndLookup(t *testing.T) {
	g := NewGraph()
	if !g.Root().IsRoot() || g.Root().ID() != 1 {
		t.Fatalf("root must be the first arena entry, got id %d", g.Root().ID())
	}
	ns := g.Namespace("System.Collections")
	if again := g.Namespace("System.Collections"); again != ns {
		t.Fatalf("namespace segments must be reused")
	}
	list := g.Aggregate(ns, AggregateClass, "List", "T")
	if got := g.Lookup("System.Collections.List"); len(got) != 1 || got[0] != list {
		t.Fatalf("lookup returned %v", got)
	}
	a := g.Method(list, "Add")
	b := g.Method(list, "Add")
	if got := g.Lookup("System.Collections.List.Add"); !slices.Equal(got, []*Symbol{a, b}) {
		t.Fatalf("overloads must share a path in declaration order")
	}
	if g.Get(list.ID()) != list {
		t.Fatalf("Get(%d) mismatch", list.ID())
	}
	if g.Get(NoSymbolID) != nil || g.Get(SymbolID(g.Len()+5)) != nil {
		t.Fatalf("invalid IDs must yield nil")
	}
	if len(g.Lookup("System.Collections.List.T")) != 0 {
		t.Fatalf("type parameters are not path-indexed")
	}
	if g.Len() != len(g.Symbols()) {
		t.Fatalf("Len %d != len(Symbols) %d", g.Len(), len(g.Symbols()))
	}
}

func TestTypeParameterOrdinals(t *testing.T) {
	g := NewGraph()
	outer := g.Aggregate(nil, AggregateClass, "Outer", "K", "V")
	inner := g.Aggregate(outer, AggregateClass, "Inner", "U")
	m := g.Method(inner, "Map", "A", "B")

	if got := inner.TypeParams()[0].TypeParam; got.Index != 2 || got.MethodOwned {
		t.Fatalf("nested ordinal = %+v", got)
	}
	if got := m.Method.TypeParams[1].TypeParam; got.Index != 1 || !got.MethodOwned {
		t.Fatalf("method ordinal = %+v", got)
	}

	self := inner.SelfType()
	if self.Outer == nil || self.Outer.Decl != outer || len(self.Outer.Args) != 2 {
		t.Fatalf("SelfType must nest inside the enclosing instantiation")
	}
	if p := self.Args[0]; p.Kind != TypeParam || p.Index != 2 || p.Name != "U" {
		t.Fatalf("unexpected self argument %+v", p)
	}
}

func TestAccessorShapes(t *testing.T) {
	g := NewGraph()
	c := g.Aggregate(nil, AggregateClass, "C")
	intT := MakeAggregate(g.Aggregate(nil, AggregateStruct, "Int"), nil)
	idx := g.Indexer(c, intT, Param{Name: "i", Type: intT})

	get := g.Accessor(idx, AccessorGet)
	if get.Name != "get_Item" || get.Method.Return != intT || len(get.Method.Params) != 1 {
		t.Fatalf("getter shape %q %+v", get.Name, get.Method)
	}
	set := g.Accessor(idx, AccessorSet)
	if len(set.Method.Params) != 2 || set.Method.Params[1].Name != "value" || set.Method.Return != Void() {
		t.Fatalf("setter shape %+v", set.Method)
	}
	if len(idx.Property.Params) != 1 {
		t.Fatalf("accessor must not alias the indexer parameters")
	}
}

func TestCompletableIsMemoized(t *testing.T) {
	m := &MethodDecl{Params: []Param{{Type: Void()}}}
	if !m.Completable() {
		t.Fatalf("expected completable")
	}
	m.Params[0].Type = nil
	if !m.Completable() {
		t.Fatalf("answer must be computed once")
	}
	broken := &MethodDecl{Flags: MethodBroken}
	if broken.Completable() {
		t.Fatalf("broken declaration must not be completable")
	}
}

func TestSubstApply(t *testing.T) {
	g := NewGraph()
	list := g.Aggregate(nil, AggregateClass, "List", "T")
	str := MakeAggregate(g.Aggregate(nil, AggregateClass, "String"), nil)
	tp := list.TypeParams()[0].ParamType()

	s := NewSubst([]*Type{str}, nil)
	arr := MakeVector(MakePointer(tp))
	got := s.Apply(arr)
	if got == arr {
		t.Fatalf("array not rebuilt")
	}
	if e := got.ElementOf(); e.Kind != TypePointer || e.Elem != str {
		t.Fatalf("pointer referent not replaced: %+v", e)
	}

	unrelated := MakeVector(str)
	if s.Apply(unrelated) != unrelated {
		t.Fatalf("unchanged trees must be shared")
	}
	if NoSubst.Apply(arr) != arr {
		t.Fatalf("no-op substitution must return its input")
	}

	method := MakeTypeParam(0, true, "M")
	if s.Apply(method) != method {
		t.Fatalf("method-owned parameter replaced by type-level list")
	}
	if s.WithMethodArgs(str).Apply(method) != str {
		t.Fatalf("method-level replacement missing")
	}

	self := NewSubst([]*Type{list.SelfType()}, nil)
	once := self.Apply(tp)
	if once.Kind != TypeAggregate || once.Args[0] != tp {
		t.Fatalf("replacement must be inserted without re-substitution")
	}
}

func TestSubstForNestedInstantiation(t *testing.T) {
	g := NewGraph()
	outer := g.Aggregate(nil, AggregateClass, "Outer", "T")
	inner := g.Aggregate(outer, AggregateClass, "Inner", "U")
	a := MakeAggregate(g.Aggregate(nil, AggregateClass, "A"), nil)
	b := MakeAggregate(g.Aggregate(nil, AggregateClass, "B"), nil)

	s := SubstFor(MakeAggregate(inner, MakeAggregate(outer, nil, a), b))
	if got := s.TypeArgs(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("outer arguments must come first, got %v", got)
	}
	if !SubstFor(Null()).IsNoOp() || !SubstFor(nil).IsNoOp() {
		t.Fatalf("non-aggregate instantiation yields NoSubst")
	}
}

func TestSubstCompose(t *testing.T) {
	g := NewGraph()
	pair := g.Aggregate(nil, AggregateClass, "Pair", "X", "Y")
	str := MakeAggregate(g.Aggregate(nil, AggregateClass, "String"), nil)
	x := pair.TypeParams()[0].ParamType()
	y := pair.TypeParams()[1].ParamType()

	inner := NewSubst([]*Type{MakeVector(y)}, nil)
	outer := NewSubst([]*Type{nil, str}, nil)
	composed := inner.Compose(outer)

	direct := outer.Apply(inner.Apply(x))
	viaCompose := composed.Apply(x)
	if viaCompose.Kind != TypeArray || viaCompose.Elem != direct.Elem || direct.Elem != str {
		t.Fatalf("compose mismatch: %+v vs %+v", viaCompose, direct)
	}
	if composed.Apply(y) != str {
		t.Fatalf("outer-only ordinal must carry through")
	}
	if inner.Compose(NoSubst).Apply(x) != inner.Apply(x) {
		t.Fatalf("composing with NoSubst must be identity")
	}
}

func TestOperatorNameTables(t *testing.T) {
	if op, ok := OperatorByName("op_Addition"); !ok || op != OpAddition {
		t.Fatalf("op_Addition -> %v %v", op, ok)
	}
	if op, ok := OperatorByName("op_Equals"); !ok || op != OpEqualsHook {
		t.Fatalf("op_Equals -> %v %v", op, ok)
	}
	if _, ok := OperatorByName("Equals"); ok {
		t.Fatalf("plain method names are not operators")
	}
	if k, ok := ConversionByName("op_Explicit"); !ok || k != ConversionExplicit {
		t.Fatalf("op_Explicit -> %v %v", k, ok)
	}
}

func TestMethodFlagStrings(t *testing.T) {
	got := (MethodParamArray | MethodBroken).Strings()
	if !slices.Equal(got, []string{"params", "broken"}) {
		t.Fatalf("got %v", got)
	}
	if MethodFlags(0).Strings() != nil {
		t.Fatalf("empty flags must yield nil")
	}
}
