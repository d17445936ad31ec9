package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// memFS is an in-memory FileSystem.
type memFS struct {
	files map[string][]byte
	err   error
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) add(path, content string) {
	m.files[path] = []byte(content)
}

func (m *memFS) Open(string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

const tomlConfig = `
[scroll]
lerp = 0.2
smoothWheel = true
easing = "out-quad"

[snap]
type = "proximity"
debounce = "300ms"
`

const yamlConfig = `
scroll:
  lerp: 0.2
  smoothWheel: true
  easing: out-quad
snap:
  type: proximity
  debounce: 300ms
  threshold: 2
`

func TestFileLoaders(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/glide.toml", tomlConfig)
	memfs.add("/glide.yaml", yamlConfig)

	tests := []struct {
		path   string
		format Format
	}{
		{"/glide.toml", FormatTOML},
		{"/glide.yaml", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := FormatFor(tt.path); got != tt.format {
				t.Fatalf("expected format %s, got %s", tt.format, got)
			}
			config, err := ForPath(memfs, tt.path).Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if v, ok := GetPath(config, "scroll.lerp"); !ok || v != 0.2 {
				t.Errorf("expected scroll.lerp 0.2, got %v", v)
			}
			if v, ok := GetPath(config, "scroll.smoothWheel"); !ok || v != true {
				t.Errorf("expected scroll.smoothWheel true, got %v", v)
			}
			if v, ok := GetPath(config, "snap.type"); !ok || v != "proximity" {
				t.Errorf("expected snap.type proximity, got %v", v)
			}
			if v, ok := GetPath(config, "snap.debounce"); !ok || v != "300ms" {
				t.Errorf("expected snap.debounce 300ms, got %v", v)
			}
		})
	}
}

func TestYAMLIntegersAreInt64(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/glide.yml", yamlConfig)

	config, err := NewYAMLLoaderWithFS(memfs, "/glide.yml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := GetPath(config, "snap.threshold"); v != int64(2) {
		t.Errorf("expected int64 2, got %v (%T)", v, v)
	}
}

func TestMissingFile(t *testing.T) {
	memfs := newMemFS()
	for _, l := range []Loader{
		NewTOMLLoaderWithFS(memfs, "/missing.toml"),
		NewYAMLLoaderWithFS(memfs, "/missing.yaml"),
	} {
		config, err := l.Load()
		if err != nil {
			t.Errorf("expected no error for a missing file, got %v", err)
		}
		if config != nil {
			t.Errorf("expected nil config for a missing file, got %v", config)
		}
	}
}

func TestUnreadableFile(t *testing.T) {
	memfs := newMemFS()
	memfs.err = fs.ErrPermission

	_, err := NewTOMLLoaderWithFS(memfs, "/glide.toml").Load()
	var rerr *ReadError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ReadError, got %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected wrapped permission error, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/bad.toml", "[scroll\nlerp = 1\n")
	memfs.add("/bad.yaml", "scroll:\n  lerp: [1,\n")

	for _, path := range []string{"/bad.toml", "/bad.yaml"} {
		_, err := ForPath(memfs, path).Load()
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected ParseError, got %v", path, err)
			continue
		}
		if perr.Path != path {
			t.Errorf("%s: expected path in error, got %q", path, perr.Path)
		}
		if perr.Line == 0 {
			t.Errorf("%s: expected a line number", path)
		}
		if perr.Unwrap() == nil {
			t.Errorf("%s: expected an underlying error", path)
		}
	}
}

func TestLoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[log]\nlevel = \"debug\"\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if v, _ := GetPath(config, "log.level"); v != "debug" {
		t.Errorf("expected debug, got %v", v)
	}

	config, err = NewYAMLLoader("").LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("expected an empty map, got %v", config)
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a", Message: "bad"}, "parse error in a: bad"},
		{ParseError{Path: "a", Line: 3, Message: "bad"}, "parse error in a at line 3: bad"},
		{ParseError{Path: "a", Line: 3, Column: 7, Message: "bad"}, "parse error in a at line 3, column 7: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string {
		return []string{
			"GLIDE_SCROLL_WHEEL_MULTIPLIER=1.5",
			"GLIDE_SCROLL_SMOOTH_WHEEL=off",
			"GLIDE_SCROLL_DURATION=1200ms",
			"GLIDE_SNAP_TYPE=proximity",
			"GLIDE_LOG_LEVEL=debug",
			"GLIDE_SNAP=true",
			"GLIDE_ORPHAN=1",
			"HOME=/root",
		}
	}

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"scroll.wheelMultiplier", 1.5},
		{"scroll.smoothWheel", false},
		{"scroll.duration", 1200 * time.Millisecond},
		{"snap.type", "proximity"},
		{"log.level", "debug"},
		{"snap.enabled", true},
	}
	for _, tt := range tests {
		if got, ok := GetPath(config, tt.path); !ok || got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.path, tt.want, got)
		}
	}
	if _, ok := config["orphan"]; ok {
		t.Error("expected variables without a setting name to be skipped")
	}
	if _, ok := config["home"]; ok {
		t.Error("expected unprefixed variables to be skipped")
	}
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader("GLIDE_")
	tests := []struct {
		env  string
		want string
	}{
		{"GLIDE_SCROLL_LERP", "scroll.lerp"},
		{"GLIDE_SCROLL_SYNC_TOUCH_LERP", "scroll.syncTouchLerp"},
		{"GLIDE_SNAP_VELOCITY_THRESHOLD", "snap.velocityThreshold"},
		{"GLIDE_SCROLL", ""},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.env, tt.want, got)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"scroll": map[string]any{"lerp": 0.1, "infinite": false},
		"log":    map[string]any{"level": "info"},
	}
	src := map[string]any{
		"scroll": map[string]any{"lerp": 0.3},
		"log":    "flat",
	}

	got := DeepMerge(dst, src)

	if v, _ := GetPath(got, "scroll.lerp"); v != 0.3 {
		t.Errorf("expected lerp override 0.3, got %v", v)
	}
	if v, _ := GetPath(got, "scroll.infinite"); v != false {
		t.Errorf("expected infinite kept, got %v", v)
	}
	if got["log"] != "flat" {
		t.Errorf("expected non-map value to replace, got %v", got["log"])
	}
	if DeepMerge(nil, nil) == nil {
		t.Error("expected a map from nil inputs")
	}
}

func TestSetPath(t *testing.T) {
	m := map[string]any{"scroll": "scalar"}
	SetPath(m, "scroll.lerp", 0.5)
	if v, ok := GetPath(m, "scroll.lerp"); !ok || v != 0.5 {
		t.Errorf("expected scalar replaced by a section, got %v", m)
	}
	if _, ok := GetPath(m, "snap.type"); ok {
		t.Error("expected missing path")
	}
}
