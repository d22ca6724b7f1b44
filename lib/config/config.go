package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fosdem/glstage/lib/log"
	"github.com/fosdem/glstage/lib/rendering"
	"github.com/fosdem/glstage/lib/rendering/shaders"
	"github.com/fosdem/glstage/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

var Backends = []string{"glfw", "sdl"}

type Config struct {
	Window        WindowCfg
	GL            GLCfg `yaml:"gl"`
	ClearColour   string `yaml:"clear_colour"`
	Mesh          rendering.Shape
	Shaders       ShadersCfg
	CheckGLErrors bool `yaml:"check_gl_errors"`
	Log           LogCfg
	Api           *ApiCfg
}

type WindowCfg struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	VSync     bool `yaml:"vsync"`
	Backend   string
}

type GLCfg struct {
	Major int
	Minor int
}

type ShadersCfg struct {
	Vertex   CfgPath
	Fragment CfgPath
	Colour   string
	DumpDir  CfgPath `yaml:"dump_dir"`
}

type LogCfg struct {
	Level string
	File  CfgPath
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

// Default matches the window the tutorial has always opened: a 900x700
// "Game" window on a 4.1 core context, cleared to (0.3, 0.3, 0.5).
func Default() *Config {
	return &Config{
		Window: WindowCfg{
			Title:     "Game",
			Width:     900,
			Height:    700,
			Resizable: true,
			VSync:     true,
			Backend:   "glfw",
		},
		GL: GLCfg{
			Major: 4,
			Minor: 1,
		},
		ClearColour: "#4d4d80ff",
		Mesh:        rendering.Triangle,
		Shaders: ShadersCfg{
			Colour: "#ff8000ff",
		},
		CheckGLErrors: true,
		Log: LogCfg{
			Level: "info",
		},
	}
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	m := yaml.NewDecoder(f, yaml.DisallowUnknownField())
	cfg := Default()
	err = m.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("%s is invalid: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if !slices.Contains(Backends, c.Window.Backend) {
		return fmt.Errorf("window backend %q is not one of %v", c.Window.Backend, Backends)
	}

	if c.GL.Major < 3 || (c.GL.Major == 3 && c.GL.Minor < 3) {
		return fmt.Errorf("OpenGL %d.%d has no core profile, at least 3.3 is needed", c.GL.Major, c.GL.Minor)
	}

	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("clear_colour %s is not a valid RGBA hex colour", c.ClearColour)
	}
	if _, err := rendering.ShapeGeometry(c.Mesh); err != nil {
		return err
	}

	if err := c.Shaders.Validate(); err != nil {
		return fmt.Errorf("invalid shaders config: %w", err)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	if c.Api != nil && c.Api.Bind == "" {
		return fmt.Errorf("api.bind must be set when the api is enabled")
	}
	return nil
}

func (s *ShadersCfg) Validate() error {
	if !utils.ColourValidate(s.Colour) {
		return fmt.Errorf("colour %s is not a valid RGBA hex colour", s.Colour)
	}
	for _, p := range []struct {
		path CfgPath
		kind shaders.Kind
	}{
		{s.Vertex, shaders.Vertex},
		{s.Fragment, shaders.Fragment},
	} {
		if p.path == "" {
			continue
		}
		kind, err := shaders.KindFromName(string(p.path))
		if err != nil {
			return err
		}
		if kind != p.kind {
			return fmt.Errorf("%s is a %s shader, expected a %s shader", p.path, kind, p.kind)
		}
	}
	return nil
}

// VertexName is the shader to load for the vertex stage.
func (s *ShadersCfg) VertexName() string {
	if s.Vertex == "" {
		return shaders.DefaultVertex
	}
	return string(s.Vertex)
}

func (s *ShadersCfg) FragmentName() string {
	if s.Fragment == "" {
		return shaders.DefaultFragment
	}
	return string(s.Fragment)
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %q %dx%d (%s)\n", c.Window.Title, c.Window.Width, c.Window.Height, c.Window.Backend))
	b.WriteString(fmt.Sprintf("  OpenGL %d.%d core\n", c.GL.Major, c.GL.Minor))

	b.WriteString("\nDrawing:\n")
	b.WriteString(fmt.Sprintf("  %s on %s\n", c.Mesh, c.ClearColour))
	b.WriteString(fmt.Sprintf("  vertex shader   %s\n", c.Shaders.VertexName()))
	b.WriteString(fmt.Sprintf("  fragment shader %s\n", c.Shaders.FragmentName()))

	if c.Api != nil {
		b.WriteString("\nApi:\n")
		b.WriteString(fmt.Sprintf("  %s\n", c.Api.Bind))
	}

	return b.String()
}
