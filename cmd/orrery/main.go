package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/gui"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	seed       int64
	ticks      int
	delta      float64
	every      int
	tickRate   float64
	liveFPS    int
	guiFPS     int
	body       string
	axis       string
	exportOut  string
	initOut    string
	realtime   bool
	theme      string
	format     string
	svgSize    int

	logger *slog.Logger
)

// main runs the root command, exiting with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every orrery command. Each flag owns its variable,
// so registering a command resets its defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orrery",
		Short: "orbital scene model and viewers",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(logLevel)
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the window view when no command given
			return runGUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orrery", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	sceneFlags(rootCmd)
	rootCmd.Flags().IntVar(&guiFPS, "fps", 60, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "advance a scene headless and save the recording",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	sceneFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "ticks to simulate (default from config)")
	runCmd.Flags().Float64Var(&delta, "delta", 1, "ticks per step")
	runCmd.Flags().IntVar(&every, "every", 10, "keep every n-th step")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace steps with the wall clock")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	sceneFlags(liveCmd)
	liveCmd.Flags().IntVar(&liveFPS, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "night", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "3D window view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	sceneFlags(guiCmd)
	guiCmd.Flags().IntVar(&guiFPS, "fps", 60, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a body's recorded track",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&body, "body", "", "body to plot (default: every recorded body)")
	plotCmd.Flags().StringVar(&axis, "axis", "x", "series to plot (x, z, rotation)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to JSON or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default <run_id>.<format>)")
	exportCmd.Flags().StringVar(&format, "format", "json", "output format (json, svg)")
	exportCmd.Flags().IntVar(&svgSize, "size", 800, "svg width and height in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list bundled scene presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [preset]",
		Short: "write a preset as an editable yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&initOut, "out", "orrery.yaml", "output path")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, exportCmd, presetsCmd, initCmd)
	return rootCmd
}

func sceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for initial angles (default from config, else time based)")
	cmd.Flags().Float64Var(&tickRate, "tick-rate", 0, "ticks per second (default from config)")
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}

// loadConfig resolves the scene config: a preset by name, or the config
// file, with explicitly set flags overriding both.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("seed") {
		cfg.SetSeed(seed)
	}
	if _, ok := cfg.SeedValue(); !ok {
		cfg.SetSeed(time.Now().UnixNano())
	}
	if cmd.Flags().Changed("tick-rate") {
		cfg.TickRate = tickRate
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildScene(cmd *cobra.Command, args []string) (*config.Config, *orbit.Scene, *scene.Starfield, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, nil, err
	}
	sd, _ := cfg.SeedValue()
	src := config.NewSource(sd)
	sc, err := config.Build(cfg, src)
	if err != nil {
		return nil, nil, nil, err
	}
	stars := scene.NewStarfield(cfg.Stars.Count, cfg.Stars.Spread, src)
	logger.Debug("scene built", "name", cfg.Name, "bodies", sc.Registry().Len(), "stars", len(stars.Points), "seed", sd)
	return cfg, sc, stars, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, sc, _, err := buildScene(cmd, args)
	if err != nil {
		return err
	}
	if delta <= 0 {
		return fmt.Errorf("delta must be positive, got %f", delta)
	}
	if every < 1 {
		every = 1
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s for %d ticks...\n", cfg.Name, cfg.Ticks)
	start := time.Now()

	var rec *storage.Recording
	if realtime {
		rec, err = runRealtime(cmd.Context(), sc, cfg)
		if err != nil {
			return err
		}
	} else {
		rec = storage.Record(sc, int(float64(cfg.Ticks)/delta), delta, every)
	}

	elapsed := time.Since(start)

	sd, _ := cfg.SeedValue()
	runID, err := st.Save(cfg.Name, sd, cfg.TickRate, sc, rec)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n\n", len(rec.Samples))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPARENT\tANGLE\tX\tZ\tSPIN")
	for _, b := range sc.Bodies() {
		p := b.Position()
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.3f\t%.3f\t%.4f\n", b.ID, b.ParentID, b.Angle, p.X, p.Z, b.Rotation)
	}
	return w.Flush()
}

// runRealtime drives the scene from a ticker scheduler until cfg.Ticks
// have elapsed or the process is interrupted.
func runRealtime(ctx context.Context, sc *orbit.Scene, cfg *config.Config) (*storage.Recording, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rec := &storage.Recording{}
	for _, b := range sc.Bodies() {
		rec.Bodies = append(rec.Bodies, b.ID)
	}
	sched := scene.NewTickerScheduler(int(cfg.TickRate))
	loop := scene.NewLoop(sc, orbit.NewClock(cfg.TickRate), nil, sched)
	loop.Logger = logger
	loop.OnFrame = func(updates []orbit.Update, t float64) {
		if loop.Frames()%every == 0 {
			cp := make([]orbit.Update, len(updates))
			copy(cp, updates)
			rec.Samples = append(rec.Samples, storage.Sample{Tick: t, Updates: cp})
		}
		if t >= float64(cfg.Ticks) {
			loop.Stop()
			cancel()
		}
	}
	loop.Start()

	err := sched.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return rec, err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, sc, stars, err := buildScene(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(sc, stars, viz.Options{
		Name:           cfg.Name,
		TickRate:       cfg.TickRate,
		FPS:            liveFPS,
		CameraDistance: cfg.Camera.Distance,
		CameraHeight:   cfg.Camera.Height,
		Theme:          theme,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, sc, stars, err := buildScene(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(sc, stars, gui.Options{
		Title:          "orrery: " + cfg.Name,
		TickRate:       cfg.TickRate,
		FPS:            guiFPS,
		CameraDistance: cfg.Camera.Distance,
		CameraHeight:   cfg.Camera.Height,
		Logger:         logger,
	})
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tTICKS\tSAMPLES\tBODIES\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%d\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Samples,
			len(run.Bodies),
			run.Seed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	bodies := meta.Bodies
	if body != "" {
		bodies = []string{body}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", meta.Samples)

	for _, b := range bodies {
		tr, err := st.LoadTrack(runID, b)
		if err != nil {
			return err
		}
		var data []float64
		switch axis {
		case "x":
			data = tr.X
		case "z":
			data = tr.Z
		case "rotation":
			data = tr.Rotation
		default:
			return fmt.Errorf("unknown axis: %s (x, z, rotation)", axis)
		}
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s %s vs tick", b, axis)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := exportOut
	if path == "" {
		path = runID + "." + format
	}

	st := storage.New(dataDir)
	var err error
	switch format {
	case "json":
		err = st.ExportJSON(runID, path)
	case "svg":
		err = st.ExportSVG(runID, path, svgSize)
	default:
		return fmt.Errorf("unknown format: %s (json, svg)", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tBODIES\tSTARS\tTICKS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, len(cfg.Bodies), cfg.Stars.Count, cfg.Ticks)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	name := config.DefaultPresetName
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %s)", name, strings.Join(config.ListPresets(), ", "))
	}
	if err := config.Save(initOut, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s preset to %s\n", name, initOut)
	return nil
}
