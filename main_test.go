package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "visistat.toml")
	content := `
main_title = "${hostname} 状态"

[canvas_config]
width = 400
height = 500

[sensor_config]
monitor_cpu_temp = true
monitor_gpu_temp = false
monitor_battery_status = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderSample(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	output := filepath.Join(dir, "out", "status.png")
	debug := filepath.Join(dir, "layout.json")

	out, err := runCLI(t, "render", "--sample", "-c", cfg, "-o", output, "--debug", debug)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, output) {
		t.Fatalf("output should mention the file, got %q", out)
	}
	img, err := imaging.Open(output)
	if err != nil {
		t.Fatalf("rendered file unreadable: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 500 {
		t.Fatalf("expected 400x500, got %v", b)
	}
	if _, err := os.Stat(debug); err != nil {
		t.Fatalf("debug JSON missing: %v", err)
	}
}

func TestLayoutSample(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "layout", "--sample", "-c", writeTestConfig(t, dir))
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	for _, want := range []string{"400x500", "vertical", "chart", "CPU"} {
		if !strings.Contains(out, want) {
			t.Fatalf("layout output missing %q:\n%s", want, out)
		}
	}
}

func TestCacheShowAndClear(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)

	out, err := runCLI(t, "cache", "show", "-c", cfg)
	if err != nil {
		t.Fatalf("cache show failed: %v", err)
	}
	if !strings.Contains(out, "缓存为空") {
		t.Fatalf("empty cache expected, got %q", out)
	}
	if _, err := runCLI(t, "cache", "clear", "-c", cfg); err != nil {
		t.Fatalf("cache clear on empty cache failed: %v", err)
	}
}

func TestRenderRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ini")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "render", "--sample", "-c", path); err == nil {
		t.Fatalf("unsupported config should fail")
	}
}
