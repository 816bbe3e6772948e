package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"testgen/internal/manifest"
)

// workspace copies the testdata sources into a fresh directory and makes it
// the working directory.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"Order.cs", "Broken.cs"} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	return dir
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(append(args, "--color=off"), &out, &errOut)
	return code, out.String(), errOut.String()
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatal(err)
	}
	return abs
}

func TestGenerateWritesTests(t *testing.T) {
	workspace(t)

	code, stdout, stderr := runCLI(t, "Order.cs", "-d", "out", "--ui", "off")
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "pipeline configuration: read=5 generate=5 write=5 output=out body=empty") {
		t.Errorf("missing configuration line:\n%s", stdout)
	}
	want := "Tests generated in '" + mustAbs(t, "out") + "'."
	if !strings.Contains(stdout, want) {
		t.Errorf("stdout missing %q:\n%s", want, stdout)
	}

	content, err := os.ReadFile(filepath.Join("out", "Shop.OrderTests.cs"))
	if err != nil {
		t.Fatalf("test file not written: %v", err)
	}
	for _, s := range []string{"namespace Shop.Tests", "public class OrderTests", "[Fact]", `Assert.True(false, "autogenerated");`} {
		if !strings.Contains(string(content), s) {
			t.Errorf("generated file missing %q:\n%s", s, content)
		}
	}

	m, err := manifest.Load("out")
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Files(); !slices.Equal(got, []string{"Shop.OrderTests.cs"}) {
		t.Errorf("manifest files = %v", got)
	}
}

func TestGenerateNothing(t *testing.T) {
	workspace(t)

	code, stdout, _ := runCLI(t, "Broken.cs", "Missing.cs", "-d", "out", "--ui=off", "-q")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if strings.TrimSpace(stdout) != "No tests were generated." {
		t.Errorf("stdout = %q", stdout)
	}
	entries, err := os.ReadDir("out")
	if err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("unexpected files: %v", entries)
	}
}

func TestGenerateOutputDirContents(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "with manifest",
			args: nil,
			want: []string{manifest.FileName, manifest.LockFileName, "Shop.OrderTests.cs"},
		},
		{
			name: "no manifest",
			args: []string{"--no-manifest"},
			want: []string{"Shop.OrderTests.cs"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace(t)
			args := append([]string{"Order.cs", "Broken.cs", "Missing.cs", "Order.cs", "-d", "out", "--ui=off", "-q"}, tt.args...)
			if code, _, stderr := runCLI(t, args...); code != 0 {
				t.Fatalf("exit %d, stderr:\n%s", code, stderr)
			}
			entries, err := os.ReadDir("out")
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.Name())
			}
			slices.Sort(got)
			want := slices.Sorted(slices.Values(tt.want))
			if !slices.Equal(got, want) {
				t.Fatalf("output dir = %v, want %v", got, want)
			}
		})
	}
}

func TestGenerateVerboseListsSkippedFiles(t *testing.T) {
	workspace(t)

	code, _, stderr := runCLI(t, "Order.cs", "Broken.cs", "Missing.cs", "-d", "out", "--ui=off", "-q", "-v")
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	wantPrefixes := []string{
		"skipped Broken.cs: generate: source unit has syntax errors",
		"skipped Missing.cs: read: ",
		"skipped Missing.cs: generate: no classes found",
	}
	if len(lines) != len(wantPrefixes) {
		t.Fatalf("stderr lines = %q", lines)
	}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
	if strings.Contains(stderr, "Order.cs") {
		t.Errorf("valid source reported as skipped:\n%s", stderr)
	}
}

func TestGenerateRequiresSources(t *testing.T) {
	workspace(t)
	code, _, stderr := runCLI(t, "-d", "out")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, errNoSources.Error()) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestUnknownOptionWarns(t *testing.T) {
	workspace(t)
	code, stdout, stderr := runCLI(t, "--frobnicate", "Order.cs", "-x", "--ui=off")
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	for _, opt := range []string{"--frobnicate", "-x"} {
		if !strings.Contains(stderr, "warning: unknown option "+opt+" ignored") {
			t.Errorf("no warning for %s:\n%s", opt, stderr)
		}
	}
	if !strings.Contains(stdout, "Tests generated in") {
		t.Errorf("run did not continue:\n%s", stdout)
	}
}

func TestBadBoundsFallBack(t *testing.T) {
	workspace(t)
	code, stdout, stderr := runCLI(t, "Order.cs", "-r", "abc", "-p", "0", "--max-write=-3", "--ui=off")
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "read=5 generate=5 write=5") {
		t.Errorf("bounds not defaulted:\n%s", stdout)
	}
	if stderr != "" {
		t.Errorf("fallback should be silent, stderr:\n%s", stderr)
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := workspace(t)
	config := `[pipeline]
output = "gen"
read = 2
generate = 3

[generator]
body = "template"
usings = ["Xunit"]
colour = "blue"
`
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCLI(t, "Order.cs", "-r", "7", "--ui=off")
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	gen := filepath.Join(mustAbs(t, "."), "gen")
	if !strings.Contains(stdout, "read=7 generate=3 write=5 output="+gen+" body=template") {
		t.Errorf("flags and file not merged:\n%s", stdout)
	}
	if !strings.Contains(stderr, "unknown key generator.colour ignored") {
		t.Errorf("no warning for unknown key:\n%s", stderr)
	}

	content, err := os.ReadFile(filepath.Join("gen", "Shop.OrderTests.cs"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(content)
	if !strings.HasPrefix(text, "using Xunit;\nusing System;\nusing Shop;\n") {
		t.Errorf("usings not taken from config:\n%s", text)
	}
	if !strings.Contains(text, "// Act") || !strings.Contains(text, "var actual = sut.Total(quantity, price);") {
		t.Errorf("template body missing:\n%s", text)
	}
}

func TestInvalidBodyIsUsageError(t *testing.T) {
	workspace(t)
	code, _, stderr := runCLI(t, "Order.cs", "--body", "fancy", "--ui=off")
	if code != 1 || !strings.Contains(stderr, "--body") {
		t.Errorf("exit %d, stderr:\n%s", code, stderr)
	}
}

func TestInitAndClean(t *testing.T) {
	dir := workspace(t)

	code, stdout, stderr := runCLI(t, "init", "proj")
	if code != 0 {
		t.Fatalf("init exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, configFileName) {
		t.Errorf("init stdout = %q", stdout)
	}
	if _, err := decodeConfigFile(filepath.Join(dir, "proj", configFileName)); err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}
	if code, _, _ := runCLI(t, "init", "proj"); code != 1 {
		t.Errorf("second init exit %d, want 1", code)
	}
	if code, _, _ := runCLI(t, "init", "proj", "--force"); code != 0 {
		t.Errorf("forced init exit %d, want 0", code)
	}

	if code, _, stderr := runCLI(t, "Order.cs", "-d", "out", "--ui=off"); code != 0 {
		t.Fatalf("generate exit %d: %s", code, stderr)
	}
	keep := filepath.Join("out", "Handwritten.cs")
	if err := os.WriteFile(keep, []byte("// mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr = runCLI(t, "clean", "-d", "out")
	if code != 0 {
		t.Fatalf("clean exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Removed 1 test files") {
		t.Errorf("clean stdout = %q", stdout)
	}
	entries, _ := os.ReadDir("out")
	if len(entries) != 1 || entries[0].Name() != "Handwritten.cs" {
		t.Errorf("out after clean = %v", entries)
	}

	_, stdout, _ = runCLI(t, "clean", "-d", "out")
	if !strings.Contains(stdout, "Nothing to clean") {
		t.Errorf("second clean stdout = %q", stdout)
	}
}

func decodeConfigFile(path string) (fileConfig, error) {
	cfg, _, err := decodeConfig(path)
	return cfg, err
}

func TestVersionJSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "version", "--format", "json", "--full")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("bad json %q: %v", stdout, err)
	}
	if payload.Tool != "testgen" || payload.Version == "" || payload.GitCommit == "" {
		t.Errorf("payload = %+v", payload)
	}

	code, stdout, _ = runCLI(t, "version")
	if code != 0 || !strings.HasPrefix(stdout, "testgen ") {
		t.Errorf("pretty version: exit %d, %q", code, stdout)
	}
	if code, _, _ := runCLI(t, "version", "--format", "xml"); code != 1 {
		t.Errorf("xml format exit %d, want 1", code)
	}
}

func TestProfilingFlags(t *testing.T) {
	workspace(t)
	code, _, stderr := runCLI(t, "Order.cs", "--ui=off", "-q", "--cpu-profile", "cpu.pprof", "--mem-profile", "mem.pprof")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, name := range []string{"cpu.pprof", "mem.pprof"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestTraceFlag(t *testing.T) {
	workspace(t)
	code, _, stderr := runCLI(t, "Order.cs", "--ui=off", "-q", "--trace", "run.ndjson", "--trace-level", "detail")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile("run.ndjson")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var sawFile bool
	for _, line := range lines {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad trace line %q: %v", line, err)
		}
		if ev["name"] == "read:Order.cs" {
			sawFile = true
		}
	}
	if !sawFile {
		t.Errorf("no per-file span in trace:\n%s", data)
	}
}
