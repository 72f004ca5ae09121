package diag

import (
	"context"
	"errors"
	"testing"

	"symname/internal/locale"
	"symname/internal/render"
	"symname/internal/resolved"
	"symname/internal/trace"
)

type strayArg struct{}

func (strayArg) isArg() {}

type fixture struct {
	g     *resolved.Graph
	list  *resolved.Symbol
	add   *resolved.Symbol
	conv  *resolved.Symbol
	intT  *resolved.Type
	strT  *resolved.Type
	adapt *Adapter
}

func newFixture(t *testing.T, tracer trace.Tracer) *fixture {
	t.Helper()
	g := resolved.NewGraph()
	system := g.Namespace("System")
	i32 := g.Aggregate(system, resolved.AggregateStruct, "Int32")
	str := g.Aggregate(system, resolved.AggregateClass, "String")
	g.SetNiceName(i32, "int")
	g.SetNiceName(str, "string")

	list := g.Aggregate(g.Namespace("Coll"), resolved.AggregateClass, "List", "T")
	add := g.Method(list, "Add")
	add.Method.Params = []resolved.Param{{Type: list.TypeParams()[0].ParamType()}}
	conv := g.Method(list, "ConvertAll", "TOut")
	conv.Method.Params = []resolved.Param{{Type: conv.Method.TypeParams[0].ParamType()}}

	r := render.New(render.Options{NiceNames: g.NiceNames()})
	return &fixture{
		g:     g,
		list:  list,
		add:   add,
		conv:  conv,
		intT:  resolved.MakeAggregate(i32, nil),
		strT:  resolved.MakeAggregate(str, nil),
		adapt: NewAdapter(r, nil, tracer),
	}
}

func TestFormatPhrases(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	cases := []struct {
		arg  Arg
		want string
	}{
		{MessageArg{ID: locale.MsgNull}, "<null>"},
		{MessageArg{ID: locale.MsgMethodGroup}, "method group"},
		{KindArg{Kind: resolved.SymbolAggregate, Aggregate: resolved.AggregateInterface}, "interface"},
		{KindArg{Kind: resolved.SymbolLocal}, "local variable"},
		{NameArg{Name: "Frob"}, "Frob"},
		{TextArg{Text: "as written"}, "as written"},
	}
	for _, tc := range cases {
		got, err := f.adapt.Format(ctx, tc.arg)
		if err != nil {
			t.Fatalf("%T: %v", tc.arg, err)
		}
		if got.Text != tc.want || got.Origin != OriginPhrase {
			t.Fatalf("%T: got %+v, want %q phrase", tc.arg, got, tc.want)
		}
		if got.Quoted() != tc.want {
			t.Fatalf("phrases must not be quoted: %q", got.Quoted())
		}
	}
}

func TestFormatResolvedReferences(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	listInt := resolved.MakeAggregate(f.list, nil, f.intT)
	cases := []struct {
		arg  Arg
		want string
	}{
		{TypeArg{Type: resolved.MakeVector(f.list.TypeParams()[0].ParamType()), Subst: resolved.SubstFor(listInt)}, "int[]"},
		{SymbolArg{Symbol: f.add, Signature: true}, "Coll.List<T>.Add(T)"},
		{SymbolArg{Symbol: f.add}, "Coll.List<T>.Add"},
		{BoundSymbolArg{Symbol: f.add, Instantiation: listInt}, "Coll.List<int>.Add(int)"},
		{BoundSymbolArg{Symbol: f.list, Instantiation: listInt}, "Coll.List<int>"},
		{BoundMethodArg{Method: f.conv, Container: listInt, MethodArgs: []*resolved.Type{f.strT}}, "Coll.List<int>.ConvertAll<string>(string)"},
	}
	for _, tc := range cases {
		got, err := f.adapt.Format(ctx, tc.arg)
		if err != nil {
			t.Fatalf("%T: %v", tc.arg, err)
		}
		if got.Text != tc.want || got.Origin != OriginResolved {
			t.Fatalf("%T: got %+v, want %q resolved", tc.arg, got, tc.want)
		}
		if got.Quoted() != "'"+tc.want+"'" {
			t.Fatalf("resolved text must be quoted: %q", got.Quoted())
		}
	}
}

func TestFormatUnknownArgument(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for _, arg := range []Arg{nil, strayArg{}, MessageArg{}, KindArg{Kind: resolved.SymbolInvalid}} {
		if _, err := f.adapt.Format(ctx, arg); !errors.Is(err, ErrUnknownArg) {
			t.Fatalf("%T: expected ErrUnknownArg, got %v", arg, err)
		}
	}
}

func TestFormatAllStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	got, err := f.adapt.FormatAll(ctx, NameArg{Name: "a"}, SymbolArg{Symbol: f.list})
	if err != nil {
		t.Fatalf("FormatAll: %v", err)
	}
	if len(got) != 2 || got[1].Text != "Coll.List<T>" {
		t.Fatalf("unexpected result %+v", got)
	}
	if _, err := f.adapt.FormatAll(ctx, NameArg{Name: "a"}, strayArg{}); !errors.Is(err, ErrUnknownArg) {
		t.Fatalf("expected ErrUnknownArg, got %v", err)
	}
}

func TestFormatLocalizedPhrases(t *testing.T) {
	ru, err := locale.Match("ru-RU")
	if err != nil {
		t.Fatalf("locale: %v", err)
	}
	a := NewAdapter(nil, ru, nil)
	got, err := a.Format(context.Background(), KindArg{Kind: resolved.SymbolProperty})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got.Text != "свойство" {
		t.Fatalf("got %q", got.Text)
	}
}

func TestFormatEmitsPointEvents(t *testing.T) {
	ring := trace.NewRingTracer(8, trace.LevelDebug)
	f := newFixture(t, nil)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := f.adapt.Format(ctx, NameArg{Name: "x"}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	events := ring.Snapshot()
	if len(events) != 1 || events[0].Kind != trace.KindPoint || events[0].Detail != "x" {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestKindMessageCoversEveryKind(t *testing.T) {
	for k := resolved.SymbolNamespace; k <= resolved.SymbolLocal; k++ {
		if _, ok := KindMessage(k, resolved.AggregateClass); !ok {
			t.Fatalf("no message for %s", k)
		}
	}
}
