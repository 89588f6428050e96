// meshgen builds procedural meshes from primitives, transforms and plugin
// recipes, and exports them as OBJ, STL or GLB.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshcraft/internal/config"
	"github.com/Faultbox/meshcraft/internal/export"
	"github.com/Faultbox/meshcraft/internal/logger"
	"github.com/Faultbox/meshcraft/internal/mesh"
	"github.com/Faultbox/meshcraft/internal/plugin"
	"github.com/Faultbox/meshcraft/internal/recipe"
)

func main() {
	// Parse global flags first; the subcommand follows them
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	command := args[0]
	args = args[1:]

	switch command {
	case "shape":
		err = cmdShape(cfg, args)
	case "build":
		err = cmdBuild(cfg, args)
	case "plugins", "ls":
		cmdPlugins()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		logger.Sync()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func printUsage() {
	fmt.Println(`meshgen - procedural mesh generator

Usage:
  meshgen [global options] <command> [options]

Global options:
  -config <file>    Config file (YAML, or TOML by extension)
  -debug            Enable debug logging
  -format <fmt>     Default output format: obj, stl or glb
  -out <dir>        Output directory for default file names
  -log-file <file>  Also write logs to this file

Commands:
  shape <cube|sphere|cylinder|plane> [options] [output]  Build a primitive
  build <recipe> [output]                                Run a recipe file
  plugins                                                List built-in plugins

Examples:
  meshgen shape cube -size 2 -rotate y,45 cube.obj
  meshgen shape sphere -radius 1.5 -segments 64 sphere.glb
  meshgen -format stl build examples/snowman.yaml
  meshgen plugins`)
}

func cmdShape(cfg *config.Config, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: meshgen shape <cube|sphere|cylinder|plane> [options] [output]")
	}
	kind := args[0]

	fs := flag.NewFlagSet("shape", flag.ExitOnError)
	size := fs.Float64("size", 1, "Cube edge length")
	radius := fs.Float64("radius", 1, "Sphere or cylinder radius")
	height := fs.Float64("height", 2, "Cylinder height")
	width := fs.Float64("width", 1, "Plane width (X)")
	depth := fs.Float64("depth", 1, "Plane depth (Z)")
	segments := fs.Int("segments", cfg.Mesh.Segments, "Segments around curved shapes, or plane subdivisions")
	rings := fs.Int("rings", cfg.Mesh.Rings, "Sphere rings")
	noCaps := fs.Bool("no-caps", false, "Leave cylinder ends open")
	center := fs.String("center", "", "Center as x,y,z")
	scale := fs.Float64("scale", 1, "Uniform scale applied after building")
	rotate := fs.String("rotate", "", "Rotation as axis,degrees")
	translate := fs.String("translate", "", "Translation as x,y,z")
	smooth := fs.Bool("smooth", false, "Recompute smooth normals")
	fs.Parse(args[1:])

	prim := recipe.Primitive{
		Type:     kind,
		Size:     *size,
		Radius:   *radius,
		Height:   *height,
		Width:    *width,
		Depth:    *depth,
		Segments: *segments,
		Rings:    *rings,
		NoCaps:   *noCaps,
	}
	if kind == "plane" {
		// Plane segments are subdivisions, not tessellation of a curve
		prim.Segments = 1
		if isSet(fs, "segments") {
			prim.Segments = *segments
		}
	}
	if *center != "" {
		c, err := recipe.ParseVec3(*center)
		if err != nil {
			return fmt.Errorf("-center: %w", err)
		}
		prim.Center = c[:]
	}

	r := &recipe.Recipe{Name: kind, Primitive: prim}
	if *scale != 1 {
		r.Steps = append(r.Steps, recipe.Step{Transform: "scale", Factor: scale})
	}
	if *rotate != "" {
		axis, deg, err := recipe.ParseAxisAngle(*rotate)
		if err != nil {
			return fmt.Errorf("-rotate: %w", err)
		}
		r.Steps = append(r.Steps, recipe.Step{
			Transform: "rotate",
			Axis:      fmt.Sprintf("%g,%g,%g", axis[0], axis[1], axis[2]),
			Degrees:   deg,
		})
	}
	if *translate != "" {
		d, err := recipe.ParseVec3(*translate)
		if err != nil {
			return fmt.Errorf("-translate: %w", err)
		}
		r.Steps = append(r.Steps, recipe.Step{Transform: "translate", Vector: d[:]})
	}
	if *smooth {
		r.Steps = append(r.Steps, recipe.Step{Plugin: plugin.NewSmoothNormals().Name()})
	}

	m, err := r.Run(plugin.DefaultRegistry())
	if err != nil {
		return err
	}
	return write(cfg, m, fs.Arg(0))
}

func cmdBuild(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	center := fs.Bool("center", false, "Center the result on the origin")
	ground := fs.Bool("ground", false, "Rest the result on the XZ plane")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: meshgen build <recipe> [output]")
	}

	r, err := recipe.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	m, err := r.Run(plugin.DefaultRegistry())
	if err != nil {
		return err
	}

	finish := plugin.NewComposite("finish", "post-recipe placement")
	if *center {
		finish.Add(plugin.CenterPlugin{KeepY: *ground})
	}
	if *ground {
		finish.Add(plugin.GroundPlugin{})
	}
	if err := finish.Process(m); err != nil {
		return err
	}
	return write(cfg, m, fs.Arg(1))
}

func cmdPlugins() {
	fmt.Println("Plugins:")
	for _, info := range plugin.DefaultRegistry().List() {
		fmt.Printf("  %-16s %s\n", info.Name, info.Description)
	}
}

// write exports m to output, or to <out dir>/<model name>.<format> when
// output is empty.
func write(cfg *config.Config, m *mesh.Model, output string) error {
	if output == "" {
		format, err := export.ParseFormat(cfg.Output.Format)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			return err
		}
		output = filepath.Join(cfg.Output.Dir, m.Name+format.Ext())
	}

	opts := export.Options{STLASCII: cfg.Output.STLASCII}
	if err := export.WriteFileWith(output, m, opts); err != nil {
		return err
	}

	logger.Info("model written",
		zap.String("path", output),
		zap.String("model", m.Name),
		zap.Int("vertices", len(m.Mesh.Vertices)),
		zap.Int("faces", len(m.Mesh.Faces)),
		zap.Int("triangles", m.Mesh.TriangleCount()))
	return nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
