package graphfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFor(t *testing.T) {
	cases := map[string]Format{
		"g.toml":    FormatTOML,
		"g.YAML":    FormatYAML,
		"dir/g.yml": FormatYAML,
		"out.symg":  FormatSnapshot,
	}
	for path, want := range cases {
		got, err := FormatFor(path)
		if err != nil || got != want {
			t.Fatalf("%s: got %v, %v", path, got, err)
		}
	}
	if _, err := FormatFor("graph.json"); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := Decode([]byte("namespaces = [\"A\"]\nbogus = 1\n"), FormatTOML); err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("TOML: expected unknown key error, got %v", err)
	}
	if _, err := Decode([]byte("namespaces: [A]\nbogus: 1\n"), FormatYAML); err == nil {
		t.Fatalf("YAML: expected unknown field error")
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	doc, err := Decode(nil, FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Types) != 0 {
		t.Fatalf("expected empty document")
	}
}

func TestLoadReportsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(path, []byte("[[type]\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error mentioning %s, got %v", path, err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "sample.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sample"+SnapshotExt)
	if err := WriteSnapshot(path, doc); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(back.Types) != len(doc.Types) || len(back.Queries) != len(doc.Queries) {
		t.Fatalf("snapshot lost entries: %d/%d types, %d/%d queries",
			len(back.Types), len(doc.Types), len(back.Queries), len(doc.Queries))
	}
	for i, q := range back.Queries {
		orig := doc.Queries[i]
		if (q.Expect == nil) != (orig.Expect == nil) || q.Expect != nil && *q.Expect != *orig.Expect {
			t.Fatalf("query %d expectation changed", i)
		}
	}
	checkExpectations(t, mustBuild(t, back))

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}
}

func TestSnapshotSchemaMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, &Document{Namespaces: []string{"A"}}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data := buf.Bytes()
	var foreign bytes.Buffer
	if err := encodeWithSchema(&foreign, SnapshotSchema+1, &Document{}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeSnapshot(bytes.NewReader(foreign.Bytes())); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
	doc, err := DecodeSnapshot(bytes.NewReader(data))
	if err != nil || len(doc.Namespaces) != 1 {
		t.Fatalf("decode: %v %+v", err, doc)
	}
	if _, err := DecodeSnapshot(strings.NewReader("not msgpack")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func mustBuild(t *testing.T, doc *Document) *Program {
	t.Helper()
	prog, err := Build(doc)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return prog
}
