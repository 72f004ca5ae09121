package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"symname/internal/render"
)

var sampleGraph = filepath.Join("..", "..", "internal", "graphfile", "testdata", "sample.toml")

func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	code = execute(root, append([]string{"--color", "off"}, args...))
	return out.String(), errOut.String(), code
}

func TestRenderAdHocSymbol(t *testing.T) {
	out, errOut, code := runCLI(t, "render", sampleGraph, "--args", "Coll.List.Add")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "'Coll.List<T>.Add(T)'\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderAdHocTypes(t *testing.T) {
	out, errOut, code := runCLI(t, "render", sampleGraph, "--type", "Coll.List<int>[]", "Coll.List<Coll.List<string>>")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	want := "'Coll.List<int>[]'\n'Coll.List<Coll.List<string>>'\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRenderInstantiatedMethod(t *testing.T) {
	out, errOut, code := runCLI(t, "render", sampleGraph, "--args", "--in", "Coll.List<string>", "Coll.List.Add")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "'Coll.List<string>.Add(string)'\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderDocumentQueries(t *testing.T) {
	out, errOut, code := runCLI(t, "render", sampleGraph)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "'Coll.List<T>.List(int)'") {
		t.Fatalf("document queries not rendered:\n%s", out)
	}
}

func TestRenderUnknownSymbolFails(t *testing.T) {
	_, errOut, code := runCLI(t, "render", sampleGraph, "Coll.Absent")
	if code != 1 || !strings.Contains(errOut, "Coll.Absent") {
		t.Fatalf("exit %d: %s", code, errOut)
	}
}

func TestCheckSample(t *testing.T) {
	out, errOut, code := runCLI(t, "check", "--jobs", "3", sampleGraph)
	if code != 0 {
		t.Fatalf("exit %d: %s\n%s", code, errOut, out)
	}
	if strings.Contains(out, "FAIL") || !strings.Contains(out, "passed") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestCheckMismatchExitsNonZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	doc := "[[query]]\ntype = \"void\"\nexpect = \"nothing\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, errOut, code := runCLI(t, "check", path)
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(errOut, "1 of 1 expectations failed") {
		t.Fatalf("unexpected output:\n%s\n%s", out, errOut)
	}
}

func TestSnapshotThenCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.symg")
	out, errOut, code := runCLI(t, "snapshot", sampleGraph, "-o", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.HasPrefix(out, "wrote "+path) {
		t.Fatalf("got %q", out)
	}
	if _, errOut, code := runCLI(t, "check", path); code != 0 {
		t.Fatalf("check on snapshot: exit %d: %s", code, errOut)
	}
}

func TestVersionJSON(t *testing.T) {
	out, errOut, code := runCLI(t, "version", "--format", "json", "--full")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "symname" || payload.GitCommit == "" || payload.Fingerprint == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if _, _, code := runCLI(t, "version", "--format", "xml"); code != 1 {
		t.Fatalf("unsupported format must fail")
	}
}

func TestTraceToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.ndjson")
	if _, errOut, code := runCLI(t, "--trace", path, "--trace-level", "stage", "render", sampleGraph, "Coll.List"); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	for _, want := range []string{"cmd.render", "load", "build"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Fatalf("trace lacks %q:\n%s", want, data)
		}
	}
}

func TestTimingsSummary(t *testing.T) {
	_, errOut, code := runCLI(t, "--timings", "render", sampleGraph, "Coll.List")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.HasPrefix(errOut, "timings:\n") || !strings.Contains(errOut, "render") {
		t.Fatalf("got %q", errOut)
	}
}

func TestInvalidSettingsFail(t *testing.T) {
	if _, errOut, code := runCLI(t, "--locale", "??", "render", sampleGraph, "Coll.List"); code != 1 {
		t.Fatalf("bad locale: exit %d: %s", code, errOut)
	}
	if _, _, code := runCLI(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "version"); code != 1 {
		t.Fatalf("missing explicit config must fail")
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	cases := map[string]bool{"on": true, "ON": true, "off": false, "auto": false}
	for mode, want := range cases {
		if got := colorEnabled(mode, &buf); got != want {
			t.Fatalf("%s: got %v", mode, got)
		}
	}
}

func TestSnapshotPath(t *testing.T) {
	cases := map[string]string{
		"g.toml":         "g.symg",
		"dir/graph.yaml": "dir/graph.symg",
		"noext":          "noext.symg",
	}
	for in, want := range cases {
		if got := snapshotPath(in); got != want {
			t.Fatalf("%s: got %q, want %q", in, got, want)
		}
	}
}

func TestFatalRenderErrorExitsTwo(t *testing.T) {
	root := newRootCmd()
	root.AddCommand(&cobra.Command{
		Use: "explode",
		RunE: func(*cobra.Command, []string) error {
			return fmt.Errorf("shard 0: %w", fmt.Errorf("render: nil symbol: %w", render.ErrUnknownKind))
		},
	})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	if code := execute(root, []string{"explode"}); code != 2 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	if !strings.HasPrefix(errOut.String(), "fatal: ") {
		t.Fatalf("got %q", errOut.String())
	}
}
