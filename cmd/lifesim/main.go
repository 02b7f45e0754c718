package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lifesim/internal/analysis"
	"github.com/san-kum/lifesim/internal/automation"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/experiment"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/gui"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/logging"
	"github.com/san-kum/lifesim/internal/optim"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/storage"
	"github.com/san-kum/lifesim/internal/tui"
	"github.com/san-kum/lifesim/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	patternDir string
	// Board settings, shared by every command that builds a board
	preset   string
	size     string
	cols     int
	rows     int
	density  float64
	slider   int
	history  bool
	workers  int
	theme    string
	seed     uint64
	// Per-command settings
	runGens    int
	stopStill  bool
	stopEmpty  bool
	live       bool
	fps        int
	menu       bool
	benchGens  int
	guiCell    int
	plotSVG    string
	csvBoard   bool
	svgOut     string
	svgCell    int
	gifOut     string
	gifCell    int
	gifGens    int
	sweepGens  int
	trialGens  int
	damageGens int
	// Sweeps and trials
	minDensity float64
	maxDensity float64
	numSteps   int
	numTrials  int
	plotSweep  bool
	flipX      int
	flipY      int
	delay      int

	// Search
	searchGens   int
	searchLo     float64
	searchHi     float64
	searchSteps  int
	searchMetric string
	searchSeeds  int
	searchMin    bool
)

// main registers commands and flags, runs the terminal editor when no
// subcommand is given, and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lifesim",
		Short:         "conway's game of life lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&patternDir, "patterns", "", "directory overriding the built-in pattern files")
	boardFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal editor",
		RunE:  runTUI,
	}
	boardFlags(tuiCmd)
	tuiCmd.Flags().BoolVar(&menu, "menu", false, "pick the pattern and settings before opening the editor")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "desktop editor (needs -tags raylib)",
		RunE:  runGUI,
	}
	boardFlags(guiCmd)
	guiCmd.Flags().IntVar(&guiCell, "cell", 0, "cell size in pixels")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a board headlessly and store the result",
		RunE:  runSimulation,
	}
	boardFlags(runCmd)
	runCmd.Flags().IntVar(&runGens, "generations", 500, "number of generations")
	runCmd.Flags().BoolVar(&stopStill, "stop-still", false, "stop when a generation changes nothing")
	runCmd.Flags().BoolVar(&stopEmpty, "stop-empty", false, "stop when every cell is dead")
	runCmd.Flags().BoolVar(&live, "live", false, "draw the board in the terminal while running")
	runCmd.Flags().IntVar(&fps, "fps", 30, "frame rate for --live")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list board patterns and config presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("patterns:")
			for _, p := range pattern.Names() {
				fmt.Printf("  %s\n", p)
			}
			fmt.Println("\nconfig presets (--size):")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s %dx%d\n", name, p.Cols(), p.Rows())
			}
			fmt.Println("\nthemes:")
			fmt.Printf("  %s\n", strings.Join(viz.ThemeNames(), ", "))
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the population of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the chart as SVG")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the population series (or final board) as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().BoolVar(&csvBoard, "board", false, "export the final board instead")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final board of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgCell, "cell", 8, "cell size in pixels")
	exportSVGCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	gifCmd := &cobra.Command{
		Use:   "gif",
		Short: "record a board as an animated GIF",
		RunE:  recordGIF,
	}
	boardFlags(gifCmd)
	gifCmd.Flags().IntVar(&gifGens, "generations", 100, "number of frames after the first")
	gifCmd.Flags().StringVarP(&gifOut, "out", "o", "life.gif", "output file")
	gifCmd.Flags().IntVar(&gifCell, "cell", 4, "cell size in pixels")
	gifCmd.Flags().IntVar(&delay, "delay", 8, "frame delay in 1/100s")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "period analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark generation throughput",
		RunE:  benchBoard,
	}
	benchCmd.Flags().IntVar(&benchGens, "generations", 200, "generations per measurement")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "worker goroutines per generation")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the initial density of random boards",
		RunE:  runSweep,
	}
	boardFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&minDensity, "min", 0.05, "lowest density")
	sweepCmd.Flags().Float64Var(&maxDensity, "max", 0.8, "highest density")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 16, "number of densities")
	sweepCmd.Flags().IntVar(&sweepGens, "generations", 300, "generations per board")
	sweepCmd.Flags().BoolVar(&plotSweep, "plot", false, "plot settled populations per density")

	trialsCmd := &cobra.Command{
		Use:   "trials",
		Short: "run repeated random boards and count extinctions",
		RunE:  runTrials,
	}
	boardFlags(trialsCmd)
	trialsCmd.Flags().IntVar(&numTrials, "trials", 50, "number of boards")
	trialsCmd.Flags().IntVar(&trialGens, "generations", 500, "generations per board")

	damageCmd := &cobra.Command{
		Use:   "damage",
		Short: "track how a single flipped cell spreads",
		RunE:  runDamage,
	}
	boardFlags(damageCmd)
	damageCmd.Flags().IntVar(&flipX, "x", -1, "column to flip (default center)")
	damageCmd.Flags().IntVar(&flipY, "y", -1, "row to flip (default center)")
	damageCmd.Flags().IntVar(&damageGens, "generations", 200, "generations to follow")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search random boards over density and seed",
		RunE:  runSearch,
	}
	boardFlags(searchCmd)
	searchCmd.Flags().Float64Var(&searchLo, "min", 0.1, "lowest density")
	searchCmd.Flags().Float64Var(&searchHi, "max", 0.6, "highest density")
	searchCmd.Flags().IntVar(&searchSteps, "steps", 6, "number of densities")
	searchCmd.Flags().IntVar(&searchSeeds, "seeds", 3, "seeds per density")
	searchCmd.Flags().IntVar(&searchGens, "generations", 300, "generations per board")
	searchCmd.Flags().StringVar(&searchMetric, "metric", optim.Generations, "metric to score (population, turnover, stability, generations)")
	searchCmd.Flags().BoolVar(&searchMin, "minimize", false, "keep the lowest score instead of the highest")

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, presetsCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		exportSVGCmd, exportJSONCmd, gifCmd, analyzeCmd, benchCmd, scenarioCmd, sweepCmd, trialsCmd, damageCmd,
		searchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func boardFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", pattern.Random, "starting pattern")
	f.StringVar(&size, "size", "", "config preset for the board geometry")
	f.IntVar(&cols, "cols", 0, "board columns (overrides the geometry)")
	f.IntVar(&rows, "rows", 0, "board rows (overrides the geometry)")
	f.Float64Var(&density, "density", config.DefaultDensity, "random fill density")
	f.IntVar(&slider, "speed", config.DefaultSlider, "speed slider (400-2000)")
	f.BoolVar(&history, "history", false, "show history trails")
	f.IntVar(&workers, "workers", config.DefaultWorkers, "worker goroutines per generation")
	f.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	f.Uint64Var(&seed, "seed", 0, "seed for the random pattern (0 = unseeded)")
}

// loadSettings starts from the defaults or the --size preset, replaces them
// with the --config file when one is given, then applies any flag the user
// set.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if size != "" {
		cfg = config.GetPreset(size)
		if cfg == nil {
			return nil, fmt.Errorf("unknown size preset: %s (available: %v)", size, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("density") {
		cfg.Density = density
	}
	if changed("speed") {
		cfg.Speed.Slider = slider
	}
	if changed("history") {
		cfg.HistoryTrail = history
	}
	if changed("workers") {
		cfg.Workers = workers
	}
	if changed("theme") {
		cfg.Theme = theme
	}
	if changed("data") || configFile == "" {
		cfg.DataDir = dataDir
	}
	if patternDir != "" {
		cfg.PatternDir = patternDir
	}
	if changed("log-level") || configFile == "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// dimensions applies --cols/--rows over the configured geometry.
func dimensions(cfg *config.Config) (int, int) {
	c, r := cfg.Cols(), cfg.Rows()
	if cols > 0 {
		c = cols
	}
	if rows > 0 {
		r = rows
	}
	return c, r
}

func newLogger(cfg *config.Config) log.Logger {
	return logging.New(os.Stderr, cfg.LogLevel)
}

func newStore(cfg *config.Config) (*storage.Store, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

// seededBoard builds a board for the current flags through an experiment,
// so seeded random boards come out the same everywhere.
func seededBoard(cfg *config.Config, lib *pattern.Library) (*life.Board, error) {
	c, r := dimensions(cfg)
	e := experiment.New(experiment.Config{
		Preset:       preset,
		Cols:         c,
		Rows:         r,
		Density:      cfg.Density,
		Seed:         seed,
		Workers:      cfg.Workers,
		HistoryTrail: cfg.HistoryTrail,
	})
	if err := e.Setup(lib, nil); err != nil {
		return nil, err
	}
	return e.Board(), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	// The terminal belongs to the editor; logs go to a file.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(cfg.DataDir, "lifesim.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	logger := logging.New(f, cfg.LogLevel)

	if menu {
		c, r := dimensions(cfg)
		picked, ok, err := tui.Launch(tui.Settings{
			Preset:       preset,
			Density:      cfg.Density,
			Slider:       cfg.Speed.Slider,
			HistoryTrail: cfg.HistoryTrail,
			Theme:        cfg.Theme,
			Cols:         c,
			Rows:         r,
		})
		if err != nil || !ok {
			return err
		}
		preset, cols, rows = picked.Preset, picked.Cols, picked.Rows
		cfg.Density, cfg.Speed.Slider = picked.Density, picked.Slider
		cfg.HistoryTrail, cfg.Theme = picked.HistoryTrail, picked.Theme
	}

	lib := pattern.NewLibrary(cfg.PatternDir, logger)
	b, err := seededBoard(cfg, lib)
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "starting editor", "cols", b.Cols(), "rows", b.Rows(), "preset", preset)
	return viz.Run(viz.Options{
		Board:        b,
		Library:      lib,
		Density:      cfg.Density,
		Slider:       cfg.Speed.Slider,
		HistoryTrail: cfg.HistoryTrail,
		Theme:        cfg.Theme,
		AutosaveDir:  cfg.AutosaveDir,
		DataDir:      cfg.DataDir,
		Logger:       logger,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	lib := pattern.NewLibrary(cfg.PatternDir, logger)
	b, err := seededBoard(cfg, lib)
	if err != nil {
		return err
	}
	px := guiCell
	if px <= 0 {
		px = cfg.Board.CellSize / cfg.Board.Scale
	}
	err = gui.Run(gui.Options{
		Board:        b,
		Library:      lib,
		Density:      cfg.Density,
		Slider:       cfg.Speed.Slider,
		HistoryTrail: cfg.HistoryTrail,
		CellPixels:   px,
		Palette:      viz.GetTheme(cfg.Theme).Cells,
		AutosaveDir:  cfg.AutosaveDir,
		Logger:       logger,
		Menu:         !cmd.Flags().Changed("preset"),
	})
	if errors.Is(err, gui.ErrUnavailable) {
		return fmt.Errorf("%w; try `lifesim tui`", err)
	}
	return err
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	st, err := newStore(cfg)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry(pattern.NewLibrary(cfg.PatternDir, logger))
	c, r := dimensions(cfg)
	exp, err := registry.NewExperiment(experiment.Config{
		Preset:       preset,
		Cols:         c,
		Rows:         r,
		Density:      cfg.Density,
		Seed:         seed,
		Generations:  runGens,
		Workers:      cfg.Workers,
		HistoryTrail: cfg.HistoryTrail,
		StopOnStill:  stopStill,
		StopOnEmpty:  stopEmpty,
	})
	if err != nil {
		return err
	}

	level.Info(logger).Log("msg", "running", "preset", preset, "cols", c, "rows", r, "generations", runGens)
	start := time.Now()

	if live {
		renderer := tui.NewLiveRenderer(exp.Board(), os.Stdout, fps)
		exp.GetSimulator().AddObserver(renderer)
		renderer.Start()
		defer renderer.Stop()
	}

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunInfo{
		Preset:       preset,
		Seed:         seed,
		Density:      cfg.Density,
		HistoryTrail: cfg.HistoryTrail,
	}, exp.Board(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("generations: %d (%s)\n", result.Generations(), result.Stop)
	fmt.Printf("population: %d -> %d\n", result.Initial, exp.Board().Population())
	fmt.Println("\nmetrics:")
	for _, name := range registry.ListMetrics() {
		if val, ok := result.Metrics[name]; ok {
			fmt.Printf("  %s: %.4f\n", name, val)
		}
	}
	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tGENS\tPOP\tSTOP")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d->%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Cols, run.Rows,
			run.Generations,
			run.Initial, run.Final,
			run.Stop,
		)
	}

	return w.Flush()
}

func populationSeries(st *storage.Store, runID string) ([]float64, error) {
	steps, err := st.LoadPopulation(runID)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("no data to plot")
	}
	series := make([]float64, len(steps))
	for i, s := range steps {
		series[i] = float64(s.Population)
	}
	return series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := populationSeries(st, runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("generations: %d\n\n", len(series)-1)

	graph := asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("population"),
	)
	fmt.Println(graph)

	if plotSVG != "" {
		svg := export.PopulationToSVG(series, 800, 300, export.Hex(export.Classic.Alive))
		if err := os.WriteFile(plotSVG, []byte(svg), 0o644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", plotSVG)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if csvBoard {
		b, err := st.LoadBoard(runID, logging.New(os.Stderr, logLevel))
		if err != nil {
			return err
		}
		return pattern.Write(os.Stdout, b)
	}

	steps, err := st.LoadPopulation(runID)
	if err != nil {
		return err
	}
	return writePopulationCSV(os.Stdout, steps)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	b, err := st.LoadBoard(args[0], logging.New(os.Stderr, logLevel))
	if err != nil {
		return err
	}
	svg := export.BoardToSVG(b, viz.GetTheme(theme).Cells, svgCell, meta.HistoryTrail)
	if svgOut == "" {
		_, err = fmt.Print(svg)
		return err
	}
	return os.WriteFile(svgOut, []byte(svg), 0o644)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func recordGIF(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	b, err := seededBoard(cfg, pattern.NewLibrary(cfg.PatternDir, logger))
	if err != nil {
		return err
	}

	rec := export.NewRecorder(viz.GetTheme(cfg.Theme).Cells, gifCell, cfg.HistoryTrail)
	rec.Capture(b)
	for i := 0; i < gifGens; i++ {
		b.AdvanceGeneration()
		rec.Capture(b)
	}

	f, err := os.Create(gifOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rec.WriteGIF(f, delay); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "wrote gif", "path", gifOut, "frames", rec.Len())
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := populationSeries(st, runID)
	if err != nil {
		return err
	}

	fmt.Printf("period analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	n := 1
	for n < len(series) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, series)
	ps := analysis.PowerSpectrum(padded)
	if len(ps) > 2 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (population)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if period, ok := analysis.DominantPeriod(series); ok {
		fmt.Printf("dominant population period: %.2f generations\n", period)
	} else {
		fmt.Println("dominant population period: none")
	}

	b, err := st.LoadBoard(runID, logging.New(os.Stderr, logLevel))
	if err != nil {
		return err
	}
	if c, ok := analysis.DetectCycle(b, 512); ok {
		fmt.Printf("final board repeats: period %d, entered after %d generations\n", c.Period, c.Start)
	} else {
		fmt.Println("final board does not repeat within 512 generations")
	}
	return nil
}

func benchBoard(cmd *cobra.Command, args []string) error {
	sizes := [][2]int{{80, 60}, {200, 150}, {500, 400}}
	pools := []int{1, 2, 4, 8}

	fmt.Printf("benchmarking %d generations at density %.2f\n\n", benchGens, config.DefaultDensity)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tWORKERS\tTIME\tGENS/SEC\tCELLS/SEC")

	for _, sz := range sizes {
		for _, n := range pools {
			exp := experiment.New(experiment.Config{
				Preset:      pattern.Random,
				Cols:        sz[0],
				Rows:        sz[1],
				Density:     config.DefaultDensity,
				Seed:        42,
				Generations: benchGens,
				Workers:     n,
			})
			if err := exp.Setup(pattern.NewLibrary("", logging.Nop()), nil); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			gens := float64(result.Generations()) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.0f\t%.0f\n",
				sz[0], sz[1], n, elapsed.Round(time.Microsecond), gens, gens*float64(sz[0]*sz[1]))
		}
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, logLevel)
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := &automation.Runner{
		Registry: experiment.NewRegistry(pattern.NewLibrary(patternDir, logger)),
		Store:    st,
		Logger:   logger,
		Workers:  workers,
	}
	results, err := runner.RunScenario(cmd.Context(), sc)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tGENS\tPOP\tSTOP\tRUN")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d->%d\t%s\t%s\n",
			i+1, r.Step.Preset, r.Result.Generations(), r.Result.Initial, r.Board.Population(), r.Result.Stop, r.RunID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	c, r := dimensions(cfg)

	if plotSweep {
		points := analysis.DensitySweep(analysis.SweepConfig{
			Cols: c, Rows: r,
			Min: minDensity, Max: maxDensity,
			Steps:     numSteps,
			Transient: sweepGens,
			Record:    sweepGens / 4,
			Seed:      seed,
			Workers:   cfg.Workers,
		})
		fmt.Println(analysis.SweepToASCII(points, 80, 20))
		return nil
	}

	runner := &automation.Runner{
		Registry: experiment.NewRegistry(pattern.NewLibrary(cfg.PatternDir, logger)),
		Logger:   logger,
		Workers:  cfg.Workers,
	}
	results, err := runner.RunSweep(cmd.Context(), &automation.DensitySweep{
		Cols: c, Rows: r,
		Min: minDensity, Max: maxDensity,
		NumSteps:    numSteps,
		Generations: sweepGens,
		Seed:        seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DENSITY\tINITIAL\tFINAL\tPEAK\tTURNOVER\tPERIOD")
	for _, s := range results {
		period := "-"
		if s.Period > 0 {
			period = fmt.Sprint(s.Period)
		}
		fmt.Fprintf(w, "%.3f\t%d\t%d\t%d\t%.2f\t%s\n", s.Density, s.Initial, s.Final, s.Peak, s.Turnover, period)
	}
	return w.Flush()
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	c, r := dimensions(cfg)

	runner := &automation.Runner{
		Registry: experiment.NewRegistry(pattern.NewLibrary(cfg.PatternDir, logger)),
		Logger:   logger,
		Workers:  cfg.Workers,
	}
	results, err := runner.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Cols: c, Rows: r,
		Density:     cfg.Density,
		NumTrials:   numTrials,
		Generations: trialGens,
		Seed:        seed,
	})
	if err != nil {
		return err
	}

	survived, extinct := automation.MonteCarloStats(results)
	finals := make([]float64, len(results))
	for i, res := range results {
		finals[i] = float64(res.Final)
	}
	if len(finals) > 1 {
		fmt.Println(asciigraph.Plot(finals, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("final population per trial")))
		fmt.Println()
	}
	fmt.Printf("trials: %d  survived: %d  extinct: %d\n", len(results), survived, extinct)
	return nil
}

func runDamage(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	b, err := seededBoard(cfg, pattern.NewLibrary(cfg.PatternDir, newLogger(cfg)))
	if err != nil {
		return err
	}
	flip := life.Coord{X: flipX, Y: flipY}
	if flip.X < 0 {
		flip.X = b.Cols() / 2
	}
	if flip.Y < 0 {
		flip.Y = b.Rows() / 2
	}

	dist := analysis.Damage(b, flip, damageGens)
	series := make([]float64, len(dist))
	for i, d := range dist {
		series[i] = float64(d)
	}
	if len(series) > 1 {
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("cells differing from the unflipped board")))
		fmt.Println()
	}
	if len(dist) > 0 {
		fmt.Printf("flip (%d, %d): %d cells differ after %d generations\n", flip.X, flip.Y, dist[len(dist)-1], len(dist))
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if searchSteps < 1 || searchSeeds < 1 {
		return fmt.Errorf("--steps and --seeds must be at least 1")
	}
	logger := newLogger(cfg)
	registry := experiment.NewRegistry(pattern.NewLibrary(cfg.PatternDir, logger))
	c, r := dimensions(cfg)

	densities := make([]float64, searchSteps)
	for i := range densities {
		densities[i] = searchLo
		if searchSteps > 1 {
			densities[i] += (searchHi - searchLo) * float64(i) / float64(searchSteps-1)
		}
	}
	base := max(seed, 1)
	seeds := make([]float64, searchSeeds)
	for i := range seeds {
		seeds[i] = float64(base + uint64(i))
	}

	gs := optim.NewGridSearch([]string{"density", "seed"}, [][]float64{densities, seeds})
	if !searchMin {
		gs.Maximize()
	}
	level.Info(logger).Log("msg", "searching", "metric", searchMetric, "points", len(densities)*len(seeds))

	trials, err := gs.Trials(cmd.Context(), func(p map[string]float64) (*experiment.Experiment, error) {
		return registry.NewExperiment(experiment.Config{
			Preset:      pattern.Random,
			Cols:        c,
			Rows:        r,
			Density:     p["density"],
			Seed:        uint64(p["seed"]),
			Generations: searchGens,
			Workers:     cfg.Workers,
			StopOnStill: true,
			StopOnEmpty: true,
		})
	}, searchMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "density\tseed\t%s\n", searchMetric)
	for _, t := range trials {
		fmt.Fprintf(w, "%.3f\t%d\t%.4f\n", t.Params["density"], uint64(t.Params["seed"]), t.Score)
	}
	w.Flush()
	if len(trials) > 0 {
		best := trials[0]
		fmt.Printf("\nbest: density %.3f seed %d (%s %.4f)\n", best.Params["density"], uint64(best.Params["seed"]), searchMetric, best.Score)
	}
	return nil
}
