package observ

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTimerMeasure(t *testing.T) {
	tm := NewTimer()
	if err := tm.Measure("load", func() error { return nil }); err != nil {
		t.Fatalf("measure: %v", err)
	}
	boom := errors.New("boom")
	if err := tm.Measure("build", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("measure must return fn's error, got %v", err)
	}
	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(rep.Phases))
	}
	if rep.Phases[0].Note != "" || rep.Phases[1].Note != "failed: boom" {
		t.Fatalf("unexpected notes %+v", rep.Phases)
	}
}

func TestTimerEndIgnoresUnknownIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "nothing")
	if len(tm.Report().Phases) != 0 {
		t.Fatalf("phantom phase recorded")
	}
}

func TestSummaryAlignsWideNames(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("загрузка"), "")
	tm.End(tm.Begin("render"), "26 queries")
	lines := strings.Split(strings.TrimSuffix(tm.Summary(), "\n"), "\n")
	if len(lines) != 4 || lines[0] != "timings:" {
		t.Fatalf("unexpected summary %q", lines)
	}
	col := -1
	for _, line := range lines[1:] {
		idx := strings.Index(line, " ms")
		width := len([]rune(line[:idx]))
		if col >= 0 && width != col {
			t.Fatalf("misaligned line %q", line)
		}
		col = width
	}
	if !strings.Contains(lines[2], "// 26 queries") {
		t.Fatalf("note missing: %q", lines[2])
	}
}

func TestWriteSummarySkipsEmptyTimer(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTimer().WriteSummary(&buf); err != nil || buf.Len() != 0 {
		t.Fatalf("empty timer wrote %q (%v)", buf.String(), err)
	}
}
