package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fosdem/glstage/lib/rendering"
	"github.com/fosdem/glstage/lib/rendering/shaders"
	"github.com/fosdem/glstage/lib/test"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "glstage.yaml")
	test.DemandSuccess(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	test.DemandSuccess(t, cfg.Validate())
	test.ExpectEquality(t, cfg.Window.Title, "Game")
	test.ExpectEquality(t, cfg.Window.Width, 900)
	test.ExpectEquality(t, cfg.Window.Height, 700)
	test.ExpectEquality(t, cfg.Shaders.VertexName(), shaders.DefaultVertex)
	test.ExpectEquality(t, cfg.Shaders.FragmentName(), shaders.DefaultFragment)
	test.ExpectSuccess(t, cfg.Api == nil)
}

func TestParseKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  title: Demo
  backend: sdl
mesh: quad
`)
	cfg, err := Parse(path)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Window.Title, "Demo")
	test.ExpectEquality(t, cfg.Window.Backend, "sdl")
	test.ExpectEquality(t, cfg.Window.Width, 900)
	test.ExpectEquality(t, cfg.Mesh, rendering.Quad)
	test.ExpectEquality(t, cfg.GL.Major, 4)
	test.ExpectEquality(t, cfg.ClearColour, "#4d4d80ff")
}

func TestParseRelativePaths(t *testing.T) {
	path := writeConfig(t, `
shaders:
  vertex: shaders/wobble.vert
  fragment: /opt/glstage/flat.frag
  dump_dir: dump
log:
  file: logs/glstage.%Y%m%d.log
api:
  bind: 127.0.0.1:8000
`)
	cfg, err := Parse(path)
	test.DemandSuccess(t, err)

	dir := filepath.Dir(path)
	test.ExpectEquality(t, string(cfg.Shaders.Vertex), filepath.Join(dir, "shaders/wobble.vert"))
	test.ExpectEquality(t, string(cfg.Shaders.Fragment), "/opt/glstage/flat.frag")
	test.ExpectEquality(t, string(cfg.Shaders.DumpDir), filepath.Join(dir, "dump"))
	test.ExpectEquality(t, string(cfg.Log.File), filepath.Join(dir, "logs/glstage.%Y%m%d.log"))
	test.DemandSuccess(t, cfg.Api != nil)
	test.ExpectEquality(t, cfg.Api.Bind, "127.0.0.1:8000")
	test.ExpectSuccess(t, !cfg.Api.EnableProfiler)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
window:
  titel: typo
`)
	_, err := Parse(path)
	test.ExpectFailure(t, err)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	test.ExpectFailure(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"backend", func(c *Config) { c.Window.Backend = "wayland" }},
		{"old gl", func(c *Config) { c.GL = GLCfg{Major: 3, Minor: 2} }},
		{"clear colour", func(c *Config) { c.ClearColour = "blue" }},
		{"mesh", func(c *Config) { c.Mesh = "cube" }},
		{"shader colour", func(c *Config) { c.Shaders.Colour = "#12" }},
		{"swapped stages", func(c *Config) { c.Shaders.Vertex = "flat.frag" }},
		{"shader extension", func(c *Config) { c.Shaders.Fragment = "flat.glsl" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"api bind", func(c *Config) { c.Api = &ApiCfg{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			test.ExpectFailure(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.GL = GLCfg{Major: 3, Minor: 3}
	test.ExpectSuccess(t, cfg.Validate())
}

func TestString(t *testing.T) {
	cfg := Default()
	cfg.Api = &ApiCfg{Bind: ":8000"}
	s := cfg.String()
	test.ExpectSubstring(t, s, `"Game" 900x700 (glfw)`)
	test.ExpectSubstring(t, s, "OpenGL 4.1 core")
	test.ExpectSubstring(t, s, ":8000")
}
