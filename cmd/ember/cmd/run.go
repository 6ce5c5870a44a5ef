package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-ember/ember/cmd/ember/internal/config"
	"github.com/go-ember/ember/cmd/ember/internal/scenefile"
	"github.com/go-ember/ember/pkg/components"
	"github.com/go-ember/ember/pkg/content"
	"github.com/go-ember/ember/pkg/engine"
	"github.com/go-ember/ember/pkg/scene"
	"github.com/go-ember/ember/pkg/template"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Step a scene headlessly and print frame stats",
		Long: `Load the project scene file, build its component tree, and step it
for a fixed number of frames without a renderer attached.

The scene file and frame settings come from ember.yaml (run.scene,
run.frames, run.fps) and can be overridden with flags:

  --scene PATH    Scene file to load (default from ember.yaml)
  --frames N      Number of frames to step
  --fps N         Fixed step rate; each frame advances 1/N seconds
  --draw          Log sprite draws to stdout while stepping

Examples:
  ember run
  ember run --frames 600 --fps 120
  ember run --scene scenes/title.yaml --draw`,
		Usage: "ember run [--scene PATH] [--frames N] [--fps N] [--draw]",
		Run:   runRun,
	})
}

type runOptions struct {
	scene  string
	frames int
	fps    int
	draw   bool
}

func runRun(args []string) error {
	opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}

	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}
	if opts.scene == "" {
		opts.scene = cfg.Scene
	}
	if opts.frames == 0 {
		opts.frames = cfg.Frames
	}
	if opts.fps == 0 {
		opts.fps = cfg.FPS
	}

	scenePath := opts.scene
	if !filepath.IsAbs(scenePath) {
		scenePath = filepath.Join(root, scenePath)
	}
	tmpl, err := scenefile.Load(scenePath)
	if err != nil {
		return err
	}

	fmt.Printf("Running %s: %s (%d frames at %d fps)\n", cfg.AppName, opts.scene, opts.frames, opts.fps)
	return runScene(tmpl, opts)
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func(name string) (string, error) {
			if eq := strings.IndexByte(arg, '='); eq >= 0 {
				return arg[eq+1:], nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", name)
			}
			i++
			return args[i], nil
		}
		switch {
		case arg == "--draw":
			opts.draw = true
		case arg == "--scene" || strings.HasPrefix(arg, "--scene="):
			v, err := value("--scene")
			if err != nil {
				return opts, err
			}
			opts.scene = v
		case arg == "--frames" || strings.HasPrefix(arg, "--frames="):
			v, err := value("--frames")
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("--frames must be a positive integer (got %q)", v)
			}
			opts.frames = n
		case arg == "--fps" || strings.HasPrefix(arg, "--fps="):
			v, err := value("--fps")
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("--fps must be a positive integer (got %q)", v)
			}
			opts.fps = n
		default:
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
	}
	return opts, nil
}

// consolePainter is the headless stand-in for a renderer binding: it
// logs draws instead of drawing.
type consolePainter struct {
	enabled bool
	draws   int
}

func (p *consolePainter) Paint(n *scene.Node, s *components.Sprite) {
	p.draws++
	if p.enabled {
		fmt.Printf("  draw %s texture=%s opacity=%.2f\n", n.Path(), s.Texture(), s.Opacity.Value())
	}
}

// runScene builds tmpl into a fresh scene, steps it opts.frames times
// at a fixed rate, and prints the resulting frame stats.
func runScene(tmpl *template.Template, opts runOptions) error {
	registry := scene.NewRegistry()
	components.RegisterBuiltins(registry)

	painter := &consolePainter{enabled: opts.draw}
	sc := scene.NewScene()
	factory := scene.NewFactory(sc, registry, scene.StaticResolver{
		"painter": painter,
	})
	manager := content.NewManager(factory)

	if err := sc.Root().Activate(); err != nil {
		return err
	}
	_, report, err := manager.Attach(sc.Root(), tmpl)
	if err != nil {
		if !report.Empty() {
			fmt.Println(report)
		}
		return err
	}
	for _, d := range report.Diagnostics {
		fmt.Printf("  %s\n", d)
	}

	eng := engine.New(sc)
	delta := time.Second / time.Duration(opts.fps)
	for i := 0; i < opts.frames; i++ {
		ctx := eng.Step(delta)
		eng.RenderFrame(ctx)
	}

	fmt.Printf("Stepped %d frames, %d nodes, %d sprite draws\n",
		eng.Frame(), sc.NodeCount(), painter.draws)
	if last, ok := eng.Stats().Last(); ok {
		fmt.Printf("Last frame: %v update, average %v over %d samples\n",
			last.Duration, eng.Stats().AverageDuration(), eng.Stats().Len())
	}
	return nil
}
