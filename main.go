/*
shellforge generates hollow shells and casting molds around solid meshes by
planning the host application's modifier stack: solidify, voxel remesh and
boolean stages, with an adaptive voxel-size estimator at the core.
*/
package main

import (
	gocontext "context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ruakij/shellforge/forge/config"
	"github.com/ruakij/shellforge/forge/core"
	"github.com/ruakij/shellforge/forge/estimate"
	"github.com/ruakij/shellforge/forge/mesh"
	"github.com/ruakij/shellforge/forge/modifiers"
	"github.com/ruakij/shellforge/forge/pipeline"
	"github.com/ruakij/shellforge/forge/preview"
	"github.com/ruakij/shellforge/forge/store"
	"github.com/ruakij/shellforge/forge/units"
)

func main() {
	app := &cli.App{
		Name:  "shellforge",
		Usage: "generate hollow shells and casting molds from solid meshes",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
			&cli.StringFlag{Name: "config", Usage: "preferences file (TOML)"},
			&cli.StringFlag{Name: "unit-system", Value: "none", Usage: "unit system: none, metric or imperial"},
			&cli.StringFlag{Name: "length-unit", Value: "adaptive", Usage: "display length unit (mm, cm, m, in, ...)"},
			&cli.Float64Flag{Name: "unit-scale", Value: 1.0, Usage: "scene unit scale length"},
		},
		Before: func(c *cli.Context) error {
			core.SetLogVerbose(c.Bool("verbose"))
			core.EventInitialize()
			preferences = openPreferences(c.String("config"))
			return core.MetricsInitialize()
		},
		After: func(c *cli.Context) error {
			if preferences != nil {
				preferences.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			estimateCommand(),
			planCommand(),
			generateCommand(),
			historyCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(gocontext.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		core.LogFatal("%s", err)
	}
}

func paramFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: "offset", Value: 10.0, Usage: "gap between object and start of shell"},
		&cli.Float64Flag{Name: "thickness", Value: 5.0, Usage: "shell thickness"},
		&cli.BoolFlag{Name: "open-bottom", Value: true, Usage: "remove all geometry below Z=0"},
		&cli.BoolFlag{Name: "fast", Usage: "use the faster but less precise boolean solver"},
		&cli.BoolFlag{Name: "auto-voxel", Value: true, Usage: "estimate the remesh voxel size automatically"},
		&cli.Float64Flag{Name: "voxel-size", Value: 1.0, Usage: "remesh voxel size when --auto-voxel=false"},
		&cli.Float64Flag{Name: "detail", Value: 1.0, Usage: "detail level for auto voxel size (lower = finer)"},
		&cli.BoolFlag{Name: "even-thickness", Usage: "enable even thickness on solidify (experimental)"},
		&cli.BoolFlag{Name: "combine-proxy", Usage: "join all input meshes into a single boolean source"},
		&cli.BoolFlag{Name: "keep-modifiers", Usage: "keep modifiers visible instead of applying them"},
	}
}

func unitSettings(c *cli.Context) (units.Settings, error) {
	system, err := units.ParseSystem(c.String("unit-system"))
	if err != nil {
		return units.Settings{}, err
	}
	lengthUnit, err := units.ParseLengthUnit(c.String("length-unit"))
	if err != nil {
		return units.Settings{}, err
	}
	return units.Settings{
		System:      system,
		LengthUnit:  lengthUnit,
		ScaleLength: float32(c.Float64("unit-scale")),
	}, nil
}

// preferences is the app-wide preference source, opened in Before and closed
// in After.
var preferences *prefSource

// prefSource hands out the active preferences. When the config location is
// watchable it is backed by a config.Watcher, so batch runs pick up edits to
// the preferences file between generations without a restart.
type prefSource struct {
	watcher  *config.Watcher
	fallback config.Preferences
}

func openPreferences(path string) *prefSource {
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return &prefSource{fallback: config.DefaultPreferences()}
		}
	}
	w, err := config.NewWatcher(path, func(p config.Preferences) {
		core.LogInfo("preferences reloaded from %s", path)
	})
	if err != nil {
		// No watchable directory. Fall back to a one-shot load.
		prefs, loadErr := config.Load(path)
		if loadErr != nil {
			core.LogWarn("%s", loadErr)
		}
		return &prefSource{fallback: prefs}
	}
	return &prefSource{watcher: w}
}

// Current returns the preferences as of now, re-read on file changes.
func (ps *prefSource) Current() config.Preferences {
	if ps.watcher != nil {
		return ps.watcher.Preferences()
	}
	return ps.fallback
}

func (ps *prefSource) Close() {
	if ps.watcher != nil {
		_ = ps.watcher.Close()
	}
}

func paramsFromFlags(c *cli.Context, prefs config.Preferences) pipeline.Params {
	params := pipeline.NewParams()
	params.Offset = float32(c.Float64("offset"))
	params.Thickness = float32(c.Float64("thickness"))
	params.OpenBottom = c.Bool("open-bottom")
	params.FastMode = c.Bool("fast")
	params.AutoVoxelSize = c.Bool("auto-voxel")
	params.RemeshVoxelSize = float32(c.Float64("voxel-size"))
	params.DetailLevel = float32(c.Float64("detail"))
	params.EvenThickness = c.Bool("even-thickness")
	params.CombineSelectedForProxy = c.Bool("combine-proxy")
	params.KeepModifiers = c.Bool("keep-modifiers") || prefs.KeepModifiers
	params.ShowDebugInfo = prefs.ShowDebugInfo
	if !c.IsSet("offset") {
		params.Offset = prefs.DefaultOffset
	}
	if !c.IsSet("thickness") {
		params.Thickness = prefs.DefaultThickness
	}
	return params
}

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:      "estimate",
		Usage:     "print mesh metrics and the estimated remesh voxel size",
		ArgsUsage: "MESH.obj [MESH.obj ...]",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "detail", Value: 1.0, Usage: "detail level (lower = finer)"},
			&cli.IntFlag{Name: "workers", Value: 4, Usage: "worker pool size for batches"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("at least one mesh file is required")
			}
			u, err := unitSettings(c)
			if err != nil {
				return err
			}
			detail := float32(c.Float64("detail"))

			js, err := pipeline.NewJobSystem(c.Int("workers"), c.NArg())
			if err != nil {
				return err
			}
			for _, path := range c.Args().Slice() {
				js.Submit(pipeline.JobTask{
					InputParams: path,
					OnStart: func(params interface{}, results chan interface{}) error {
						p := params.(string)
						m, err := mesh.LoadOBJ(p)
						if err != nil {
							return fmt.Errorf("%s: %w", p, err)
						}
						if err := mesh.Validate(m); err != nil {
							return fmt.Errorf("%s: %w", p, err)
						}
						metrics := m.Measure()
						res := estimate.OptimalVoxelSize(estimate.Request{
							Metrics:     metrics,
							DetailLevel: detail,
							UnitScale:   u.ScaleLength,
						})
						fmt.Printf("%s: %d vertices, %d faces, diagonal %.3f, voxel size %s\n",
							m.Name, metrics.VertexCount, metrics.FaceCount,
							metrics.Extents.Diagonal(), u.FormatLength(res.VoxelSize))
						return nil
					},
				})
			}
			if err := js.Shutdown(); err != nil {
				return err
			}
			if n := js.Failures(); n > 0 {
				return fmt.Errorf("%d of %d meshes failed", n, c.NArg())
			}
			return nil
		},
	}
}

func runShellPipeline(c *cli.Context, paths []string, applier modifiers.Applier) (*pipeline.Pipeline, time.Duration, error) {
	if len(paths) == 0 {
		return nil, 0, fmt.Errorf("a mesh file is required")
	}
	u, err := unitSettings(c)
	if err != nil {
		return nil, 0, err
	}
	params := paramsFromFlags(c, preferences.Current())

	var selected []*mesh.Mesh
	for _, path := range paths {
		m, err := mesh.LoadOBJ(path)
		if err != nil {
			return nil, 0, err
		}
		selected = append(selected, m)
	}
	source := selected[0]

	ctx := pipeline.NewContext(source, selected, params, u, applier)
	p := pipeline.New(pipeline.ShellStages(), ctx)

	started := time.Now()
	if err := p.Run(c.Context); err != nil {
		return nil, 0, err
	}
	return p, time.Since(started), nil
}

func printPlan(rec *modifiers.Recorder) {
	for _, a := range rec.Log() {
		m := a.Modifier
		switch m.Kind {
		case modifiers.KindSolidify:
			fmt.Printf("%-20s %-18s %s thickness=%g offset=%g rim=%t even=%t\n",
				a.ObjectName, m.Name, m.Kind, m.Solidify.Thickness, m.Solidify.Offset,
				m.Solidify.UseRim, m.Solidify.UseEvenOffset)
		case modifiers.KindRemesh:
			fmt.Printf("%-20s %-18s %s voxel_size=%g\n",
				a.ObjectName, m.Name, m.Kind, m.Remesh.VoxelSize)
		case modifiers.KindBoolean:
			fmt.Printf("%-20s %-18s %s %s solver=%s target=%s\n",
				a.ObjectName, m.Name, m.Kind, m.Boolean.Operation, m.Boolean.Solver,
				m.Boolean.Target.Name)
		}
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "print the modifier stacks a generation run would execute",
		ArgsUsage: "MESH.obj [MESH.obj ...]",
		Flags:     paramFlags(),
		Action: func(c *cli.Context) error {
			rec := modifiers.NewRecorder(true)
			p, _, err := runShellPipeline(c, c.Args().Slice(), rec)
			if err != nil {
				return err
			}
			rc := p.Context()
			fmt.Printf("voxel size: %g (display) %g (generator units)\n", rc.VoxelSize, rc.VoxelSizeGU)
			printPlan(rec)
			return nil
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "run the shell/mold pipeline and write the results",
		ArgsUsage: "MESH.obj [MESH.obj ...]",
		Flags: append(paramFlags(),
			&cli.StringFlag{Name: "out-dir", Value: ".", Usage: "directory for generated OBJ files"},
			&cli.StringFlag{Name: "preview", Usage: "write a voxel-grid preview PNG to this path"},
			&cli.StringFlag{Name: "history-db", Usage: "SQLite file for the run history (empty = skip)"},
			&cli.BoolFlag{Name: "batch", Usage: "generate per mesh file instead of treating the args as one selection"},
		),
		Action: func(c *cli.Context) error {
			// In batch mode each file is an independent run; preferences are
			// re-read before each one so edits apply mid-batch.
			batches := [][]string{c.Args().Slice()}
			if c.Bool("batch") {
				batches = nil
				for _, path := range c.Args().Slice() {
					batches = append(batches, []string{path})
				}
			}
			for _, paths := range batches {
				if err := generateRun(c, paths); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func generateRun(c *cli.Context, paths []string) error {
	rec := modifiers.NewRecorder(c.Bool("keep-modifiers"))
	p, elapsed, err := runShellPipeline(c, paths, rec)
	if err != nil {
		return err
	}
	rc := p.Context()

	outDir := c.String("out-dir")
	for _, m := range []*mesh.Mesh{rc.Mold, rc.Shell} {
		if m == nil {
			continue
		}
		out := filepath.Join(outDir, m.Name+".obj")
		if err := mesh.SaveOBJ(m, out); err != nil {
			return err
		}
		core.LogInfo("wrote %s", out)
	}
	printPlan(rec)

	if previewPath := c.String("preview"); previewPath != "" {
		if err := preview.WritePNG(rc.Source, rc.VoxelSize, previewPath); err != nil {
			return err
		}
		core.LogInfo("wrote %s", previewPath)
	}

	if dbPath := c.String("history-db"); dbPath != "" {
		if err := recordRun(dbPath, rc, p.StageCount(), elapsed); err != nil {
			return err
		}
	}
	return nil
}

func recordRun(dbPath string, rc *pipeline.Context, stageCount int, elapsed time.Duration) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	metrics := rc.Source.Measure()
	return db.InsertRun(store.Run{
		RunID:       core.NewRunID(),
		SourceName:  rc.Source.Name,
		VertexCount: int64(metrics.VertexCount),
		FaceCount:   int64(metrics.FaceCount),
		DetailLevel: float64(rc.Params.DetailLevel),
		VoxelSize:   float64(rc.VoxelSize),
		Offset:      float64(rc.Params.Offset),
		Thickness:   float64(rc.Params.Thickness),
		OpenBottom:  rc.Params.OpenBottom,
		FastMode:    rc.Params.FastMode,
		StageCount:  int64(stageCount),
		DurationMS:  float64(elapsed) / float64(time.Millisecond),
	})
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list recorded generation runs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "history-db", Value: store.DefaultDBName, Usage: "SQLite file with the run history"},
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to list"},
		},
		Action: func(c *cli.Context) error {
			db, err := store.Open(c.String("history-db"))
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.ListRuns(c.Int("limit"))
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Printf("%s  %-20s verts=%d voxel=%.3f offset=%.2f thickness=%.2f %.0fms\n",
					r.CreatedAt.Format(time.DateTime), r.SourceName, r.VertexCount,
					r.VoxelSize, r.Offset, r.Thickness, r.DurationMS)
			}
			return nil
		},
	}
}
