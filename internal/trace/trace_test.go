package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{"phase", LevelPhase, false},
		{"Detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeStage, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDebug, ScopeFile, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTextSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	run := Begin(tr, ScopeDriver, "run", 0)
	stage := run.Child(ScopeStage, "read")
	file := stage.Child(ScopeFile, "file:A.cs")
	file.End("")
	stage.Attr("files", "1").Attr("bytes", "10").End("ok")
	run.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines at phase level, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ run") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "  → read") {
		t.Errorf("stage begin not indented: %q", lines[1])
	}
	if !strings.Contains(lines[2], "← read (ok) {files=1, bytes=10}") {
		t.Errorf("stage end = %q", lines[2])
	}
	if strings.Contains(out, "file:A.cs") {
		t.Errorf("file scope leaked at phase level:\n%s", out)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	Point(tr, ScopeFile, "skip", "no classes", 7)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "file" || got["name"] != "skip" {
		t.Errorf("unexpected event: %v", got)
	}
	if got["detail"] != "no classes" {
		t.Errorf("detail = %v", got["detail"])
	}
	if got["parent_id"] != float64(7) {
		t.Errorf("parent_id = %v", got["parent_id"])
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeFile, name, "", 0)
	}

	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
	for i := 1; i < len(snap); i++ {
		if snap[i].Seq <= snap[i-1].Seq {
			t.Errorf("sequence not increasing: %d then %d", snap[i-1].Seq, snap[i].Seq)
		}
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Errorf("dump wrote %d lines, want 3", n)
	}
}

func TestMultiFansOut(t *testing.T) {
	var buf bytes.Buffer
	stream := NewStreamTracer(&buf, LevelDetail, FormatText)
	ring := NewRingTracer(16, LevelDetail)
	multi := NewMultiTracer(LevelDetail, stream, ring)

	Begin(multi, ScopeStage, "generate", 0).End("")

	if got := len(ring.Snapshot()); got != 2 {
		t.Errorf("ring got %d events, want 2", got)
	}
	if !strings.Contains(buf.String(), "generate") {
		t.Errorf("stream missing event:\n%s", buf.String())
	}
	if multi.Ring() != ring {
		t.Errorf("Ring() did not return the ring tracer")
	}
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level: tracer enabled=%v err=%v", tr.Enabled(), err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("ModeBoth produced %T", tr)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(42)}); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestDisabledSpansAreInert(t *testing.T) {
	span := Begin(Nop, ScopeDriver, "run", 0)
	if span.ID() != 0 {
		t.Errorf("nop span has id %d", span.ID())
	}
	if d := span.Attr("k", "v").End(""); d != 0 {
		t.Errorf("nop span duration = %v", d)
	}
	var nilSpan *Span
	if nilSpan.End("") != 0 || nilSpan.ID() != 0 || nilSpan.Child(ScopeFile, "x").ID() != 0 {
		t.Errorf("nil span should be inert")
	}
}

func TestChildOfFilteredSpanKeepsTracer(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	phase := NewRingTracer(16, LevelPhase)

	for _, tr := range []*RingTracer{ring, phase} {
		run := Begin(tr, ScopeDriver, "run", 0)
		file := run.Child(ScopeStage, "read").Child(ScopeFile, "read:A.cs")
		file.End("")
		if tr == phase && file.ID() != 0 {
			t.Errorf("file span emitted at phase level")
		}
		if tr == ring && file.ID() == 0 {
			t.Errorf("file span not emitted at detail level")
		}
	}

	var begins []Event
	for _, ev := range ring.Snapshot() {
		if ev.Kind == KindSpanBegin && ev.Name == "read:A.cs" {
			begins = append(begins, ev)
		}
	}
	if len(begins) != 1 || begins[0].ParentID == 0 {
		t.Fatalf("file span begin = %+v, want one with a parent", begins)
	}
}

func TestStorageModeFlagValue(t *testing.T) {
	var m StorageMode
	if err := m.Set(" Both "); err != nil || m != ModeBoth {
		t.Fatalf("Set(both) = %v, %v", m, err)
	}
	if err := m.Set("disk"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
	var l Level
	if err := l.Set("detail"); err != nil || l != LevelDetail {
		t.Errorf("Level.Set = %v, %v", l, err)
	}
	var f Format
	if err := f.Set("jsonl"); err != nil || f != FormatNDJSON || f.String() != "ndjson" {
		t.Errorf("Format.Set = %v, %v", f, err)
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
	ring := NewRingTracer(8, LevelDebug)
	ctx = WithTracer(ctx, ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer not propagated")
	}

	if SpanFromContext(ctx) != nil {
		t.Fatalf("no span expected before StartSpan")
	}
	ctx, run := StartSpan(ctx, ScopeDriver, "run")
	if SpanFromContext(ctx) != run {
		t.Fatalf("span not propagated")
	}
	_, stage := StartSpan(ctx, ScopeStage, "read")
	stage.End("")
	run.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("events = %d, want 4", len(snap))
	}
	if snap[1].Name != "read" || snap[1].ParentID != run.ID() {
		t.Errorf("stage begin = %+v, want parent %d", snap[1], run.ID())
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("heartbeat started on disabled tracer")
	}

	ring := NewRingTracer(64, LevelPhase)
	hb := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	hb.Stop()

	snap := ring.Snapshot()
	if len(snap) == 0 {
		t.Fatalf("no heartbeats recorded")
	}
	if snap[0].Kind != KindHeartbeat || snap[0].Detail != "#1" {
		t.Errorf("first event = %+v", snap[0])
	}
}
