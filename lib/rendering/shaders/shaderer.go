package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/fosdem/glstage/lib/resources"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	DefaultVertex   = "triangle.vert"
	DefaultFragment = "triangle.frag"
)

// Shaderer renders shader templates. Built-in templates come from the
// binary; any other name is read through the resource loader.
type Shaderer struct {
	templates *template.Template
	loader    *resources.Loader

	// DumpDir, when set, receives a copy of every rendered source.
	DumpDir string
}

func NewShaderer(loader *resources.Loader) (*Shaderer, error) {
	s := &Shaderer{loader: loader}

	var err error
	s.templates, err = template.ParseFS(templateDir, "*.frag", "*.vert")
	if err != nil {
		return nil, fmt.Errorf("could not parse built-in shaders: %w", err)
	}
	return s, nil
}

// ShaderData contains stuff that gets passed to the shader templates
type ShaderData struct {
	// Version is the text after #version, e.g. "410 core".
	Version string
	Colour  mgl32.Vec4
}

func NewShaderData(glMajor, glMinor int, colour mgl32.Vec4) *ShaderData {
	return &ShaderData{
		Version: fmt.Sprintf("%d%d0 core", glMajor, glMinor),
		Colour:  colour,
	}
}

// ColourLiteral renders Colour as a GLSL vec4 constructor.
func (d *ShaderData) ColourLiteral() string {
	return fmt.Sprintf("vec4(%.3f, %.3f, %.3f, %.3f)", d.Colour[0], d.Colour[1], d.Colour[2], d.Colour[3])
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (Source, error) {
	kind, err := KindFromName(name)
	if err != nil {
		return Source{}, err
	}

	tmpl := s.templates.Lookup(name)
	if tmpl == nil {
		if s.loader == nil {
			return Source{}, fmt.Errorf("no built-in shader named %s", name)
		}
		text, err := s.loader.Load(name)
		if err != nil {
			return Source{}, fmt.Errorf("could not load shader %s: %w", name, err)
		}
		tmpl, err = template.New(name).Parse(text)
		if err != nil {
			return Source{}, fmt.Errorf("could not parse shader template %s: %w", name, err)
		}
	}

	var b bytes.Buffer
	err = tmpl.Execute(&b, data)
	if err != nil {
		return Source{}, fmt.Errorf("error while rendering template %s: %w", name, err)
	}

	src := Source{Name: filepath.Base(name), Kind: kind, Text: b.String()}
	if s.DumpDir != "" {
		s.dump(src)
	}
	return src, nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	return names
}

func (s *Shaderer) dump(src Source) {
	filename := filepath.Join(s.DumpDir, src.Name)
	err := os.WriteFile(filename, []byte(src.Text), 0o644)
	if err != nil {
		slog.Warn(fmt.Sprintf("could not write shader dump %s: %s", filename, err), "module", "shaders")
	}
}
