package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Window.FallbackWidth != 200 || cfg.Window.FallbackHeight != 200 {
		t.Errorf("fallback = %dx%d, want 200x200", cfg.Window.FallbackWidth, cfg.Window.FallbackHeight)
	}
	bc := cfg.BlinkParams()
	if bc.MinWait != 2*time.Second || bc.MaxWait != 5*time.Second {
		t.Errorf("blink wait = [%s, %s], want [2s, 5s]", bc.MinWait, bc.MaxWait)
	}
	seq, intervals := cfg.IdleTables()
	if len(seq) != 8 || intervals[0] != 900*time.Millisecond || intervals[7] != 1200*time.Millisecond {
		t.Errorf("idle tables = %v / %v", seq, intervals)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/config.yml")
	if err != nil {
		t.Fatalf("missing file should not error, got: %v", err)
	}
	if cfg.Assets.FrameCount != 4 {
		t.Errorf("missing file should use defaults, got frame_count = %d", cfg.Assets.FrameCount)
	}
}

func TestLoadFrom_EmptyPath(t *testing.T) {
	if _, err := LoadFrom(""); err != nil {
		t.Errorf("empty path should give defaults, got %v", err)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	path := writeConfig(t, `
assets:
  frame_count: 2
idle:
  sequence: [0, 1]
  intervals: ["500ms", "250ms"]
blink:
  enabled: false
render:
  style: ascii
  ascii_width: 30
monitor:
  enabled: true
  interval: "5s"
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("valid file should not error, got: %v", err)
	}
	seq, intervals := cfg.IdleTables()
	if len(seq) != 2 || intervals[1] != 250*time.Millisecond {
		t.Errorf("idle = %v / %v", seq, intervals)
	}
	if cfg.Blink.Enabled {
		t.Error("blink should be disabled")
	}
	if cfg.Render.Style != StyleASCII || cfg.Render.ASCIIWidth != 30 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if !cfg.Monitor.Enabled || cfg.Monitor.Interval.Duration != 5*time.Second {
		t.Errorf("monitor = %+v", cfg.Monitor)
	}
	// 没写的字段保持默认
	if cfg.Window.ActiveTPS != 60 {
		t.Errorf("active_tps = %d, want default 60", cfg.Window.ActiveTPS)
	}
}

func TestLoadFrom_BobOffsets(t *testing.T) {
	tests := []struct {
		name string
		data string
		want map[int]int
	}{
		{"absent keeps defaults", "idle:\n  enabled: true\n", map[int]int{0: 0, 1: -1, 2: -2, 3: -3}},
		{"empty disables bobbing", "idle:\n  bob_offsets: {}\n", map[int]int{}},
		{"replaces defaults", "idle:\n  bob_offsets: {1: 2}\n", map[int]int{1: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(writeConfig(t, tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := cfg.Idle.BobOffsets
			if len(got) != len(tt.want) {
				t.Fatalf("bob_offsets = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("bob_offsets[%d] = %d, want %d", k, got[k], v)
				}
			}
		})
	}
	// 上一次加载不能改到默认值
	if def := Defaults().Idle.BobOffsets; def[1] != -1 {
		t.Errorf("defaults mutated: %v", def)
	}
}

func TestLoadFrom_IntegerMillis(t *testing.T) {
	path := writeConfig(t, "idle:\n  sequence: [0, 1]\n  intervals: [900, \"120ms\"]\nblink:\n  min_pause: 80\n")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("integer intervals should load, got: %v", err)
	}
	_, intervals := cfg.IdleTables()
	if intervals[0] != 900*time.Millisecond || intervals[1] != 120*time.Millisecond {
		t.Errorf("intervals = %v, want [900ms 120ms]", intervals)
	}
	if cfg.Blink.MinPause.Duration != 80*time.Millisecond {
		t.Errorf("min_pause = %s, want 80ms", cfg.Blink.MinPause)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "idle: [", "parse config"},
		{"bad duration", "blink:\n  min_wait: soon\n", "invalid duration"},
		{"length mismatch", "idle:\n  sequence: [0, 1]\n  intervals: [\"1s\"]\n", "idle"},
		{"frame out of range", "idle:\n  sequence: [0, 9]\n  intervals: [\"1s\", \"1s\"]\n", "out of range"},
		{"blink wait inverted", "blink:\n  min_wait: \"5s\"\n  max_wait: \"1s\"\n", "max_wait"},
		{"unknown style", "render:\n  style: vector\n", "render.style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(writeConfig(t, tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
			if cfg.Assets.FrameCount != 4 {
				t.Error("invalid file should fall back to defaults")
			}
		})
	}
}

func TestPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := Path(); got != filepath.Join("/tmp/xdg", "wanwan", "config.yml") {
		t.Errorf("path = %s", got)
	}
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
