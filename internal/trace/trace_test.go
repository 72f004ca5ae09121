package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"off": LevelOff, "STAGE": LevelStage, "query": LevelQuery, "debug": LevelDebug}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if !LevelStage.ShouldEmit(ScopeCommand) || LevelStage.ShouldEmit(ScopeQuery) {
		t.Fatalf("stage level must admit only command and stage scopes")
	}
	if !LevelQuery.ShouldEmit(ScopeQuery) || LevelQuery.ShouldEmit(ScopeRender) {
		t.Fatalf("query level must stop before render scope")
	}
	if LevelOff.ShouldEmit(ScopeCommand) {
		t.Fatalf("off level must not emit")
	}
}

func TestStreamTracerWritesSpan(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	span := Begin(tr, ScopeRender, "render.symbol", 0)
	span.WithExtra("kind", "method").End("Foo.Bar()")

	out := buf.String()
	if !strings.Contains(out, "→ render.symbol") || !strings.Contains(out, "← render.symbol (Foo.Bar()) {kind=method}") {
		t.Fatalf("unexpected trace output:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelQuery, FormatNDJSON)
	Point(tr, ScopeQuery, "query", "List<int>", 0)
	Point(tr, ScopeRender, "hidden", "", 0)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one event, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"name":"query"`) || !strings.Contains(lines[0], `"kind":"point"`) {
		t.Fatalf("unexpected json: %s", lines[0])
	}
}

func TestRingTracerWrapsInOrder(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeStage, name, "", 0)
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected ring contents: %+v", events)
	}
}

func TestNewOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer must be disabled")
	}
	if span := Begin(tr, ScopeCommand, "x", 0); span.ID() != 0 {
		t.Fatalf("disabled span must have zero id")
	}
}

func TestRingLookupThroughMulti(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelStage, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	Point(tr, ScopeStage, "load", "", 0)
	ring, ok := Ring(tr)
	if !ok {
		t.Fatalf("expected ring tracer inside multi tracer")
	}
	if len(ring.Snapshot()) != 1 || buf.Len() == 0 {
		t.Fatalf("event must reach both stream and ring")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("missing tracer must fall back to Nop")
	}
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	span := Begin(FromContext(ctx), ScopeStage, "load", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatalf("span id not propagated")
	}
}
