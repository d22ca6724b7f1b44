package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fosdem/glstage/lib/api"
	"github.com/fosdem/glstage/lib/config"
	"github.com/fosdem/glstage/lib/failure"
	glog "github.com/fosdem/glstage/lib/log"
	"github.com/fosdem/glstage/lib/loop"
	"github.com/fosdem/glstage/lib/rendering"
	"github.com/fosdem/glstage/lib/rendering/glctx"
	"github.com/fosdem/glstage/lib/rendering/shaders"
	"github.com/fosdem/glstage/lib/resources"
	"github.com/fosdem/glstage/lib/stats"
	"github.com/fosdem/glstage/lib/utils"
	"github.com/fosdem/glstage/lib/window"
	_ "github.com/fosdem/glstage/lib/window/glfwwindow"
	_ "github.com/fosdem/glstage/lib/window/sdlwindow"
)

const logMaxAge = 7 * 24 * time.Hour

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	titlePtr := flag.String("title", "", "Window title, overrides the config")
	widthPtr := flag.Uint("width", 0, "Window width, overrides the config")
	heightPtr := flag.Uint("height", 0, "Window height, overrides the config")
	backendPtr := flag.String("backend", "", "Window backend (glfw or sdl), overrides the config")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [config file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(flag.Arg(0))
	if err == nil {
		if *titlePtr != "" {
			cfg.Window.Title = *titlePtr
		}
		if *widthPtr != 0 {
			cfg.Window.Width = int(*widthPtr)
		}
		if *heightPtr != 0 {
			cfg.Window.Height = int(*heightPtr)
		}
		if *backendPtr != "" {
			cfg.Window.Backend = *backendPtr
		}
		err = cfg.Validate()
	}
	if err == nil {
		err = setupLogging(&cfg.Log)
	}
	if err == nil {
		err = run(cfg)
	}
	if err != nil {
		fmt.Fprint(os.Stderr, failure.Report(err))
		os.Exit(1)
	}
}

func loadConfig(filename string) (*config.Config, error) {
	if filename == "" {
		return config.Default(), nil
	}
	return config.Parse(filename)
}

func setupLogging(cfg *config.LogCfg) error {
	level, err := glog.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	opts := &glog.Options{}
	opts.Level = level
	if cfg.File != "" {
		opts.Mirror, err = glog.OpenRotating(string(cfg.File), logMaxAge)
		if err != nil {
			return fmt.Errorf("could not set up logging: %w", err)
		}
	}
	slog.SetDefault(slog.New(glog.NewHandler(os.Stderr, opts)))
	return nil
}

func buildProgram(gl *glctx.Context, cfg *config.Config) (*shaders.Program, error) {
	loader, err := resources.FromExecutable()
	if err != nil {
		return nil, err
	}
	shaderer, err := shaders.NewShaderer(loader)
	if err != nil {
		return nil, err
	}
	shaderer.DumpDir = string(cfg.Shaders.DumpDir)

	colour, err := utils.ColourParse(cfg.Shaders.Colour)
	if err != nil {
		return nil, err
	}
	data := shaders.NewShaderData(cfg.GL.Major, cfg.GL.Minor, colour)

	vertex, err := shaderer.GetShaderSource(cfg.Shaders.VertexName(), data)
	if err != nil {
		return nil, err
	}
	fragment, err := shaderer.GetShaderSource(cfg.Shaders.FragmentName(), data)
	if err != nil {
		return nil, err
	}
	return shaders.BuildProgram(gl, vertex, fragment)
}

func run(cfg *config.Config) error {
	host, err := window.Open(cfg.Window.Backend, window.Options{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
		GLMajor:   cfg.GL.Major,
		GLMinor:   cfg.GL.Minor,
	})
	if err != nil {
		return fmt.Errorf("could not open window: %w", err)
	}
	defer host.Destroy()

	gl, err := glctx.New(host.ProcAddr)
	if err != nil {
		return fmt.Errorf("could not initialise renderer: %w", err)
	}

	program, err := buildProgram(gl, cfg)
	if err != nil {
		return fmt.Errorf("could not init GL program: %w", err)
	}

	geom, err := rendering.ShapeGeometry(cfg.Mesh)
	if err != nil {
		return err
	}
	mesh, err := rendering.NewMesh(gl, geom)
	if err != nil {
		return fmt.Errorf("could not upload %s: %w", cfg.Mesh, err)
	}

	bg, err := utils.ColourParse(cfg.ClearColour)
	if err != nil {
		return err
	}
	renderer := rendering.NewRenderer(gl, program, mesh, bg)
	renderer.CheckErrors = cfg.CheckGLErrors
	renderer.Start(host.FramebufferSize())

	st := stats.New()
	l := loop.New(host, renderer, st)

	theApi := api.ServeInBackground(cfg.Api, st, gl.Info(), l.RequestQuit)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			l.RequestQuit()
		}
	}()

	l.Run()

	if theApi != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = theApi.Shutdown(ctx)
	}
	return nil
}
