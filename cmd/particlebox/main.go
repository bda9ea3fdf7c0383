package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particlebox/internal/analysis"
	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/export"
	"github.com/san-kum/particlebox/internal/gas"
	"github.com/san-kum/particlebox/internal/metrics"
	"github.com/san-kum/particlebox/internal/sim"
	"github.com/san-kum/particlebox/internal/storage"
	"github.com/san-kum/particlebox/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	bodies     int
	radius     float64
	speed      float64
	width      float64
	height     float64
	margin     float64
	dt         float64
	duration   float64
	seed       int64
	frameRate  int
	trail      float64
	configFile string
	preset     string
	numRuns    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "particlebox",
		Short: "elastic gas-particle simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no subcommand is given.
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".particlebox", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and persist the result",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run time series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "speed distribution analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export final state snapshot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping throughput",
		RunE:  benchSteps,
	}
	addScenarioFlags(benchCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run seed-varied simulations in parallel",
		RunE:  runEnsemble,
	}
	addScenarioFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of parallel runs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, benchCmd, ensembleCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&bodies, "bodies", config.DefaultBodies, "number of bodies")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "body radius")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "initial speed (px/s)")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "arena width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "arena height")
	cmd.Flags().Float64Var(&margin, "margin", config.DefaultMargin, "arena margin")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate (live)")
	cmd.Flags().Float64Var(&trail, "trail", 0, "trail window in seconds (0 = off)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig merges preset, config file, and explicit flags, in increasing
// precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.Bodies = bodies
	}
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("margin") {
		cfg.Margin = margin
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("trail") {
		cfg.TrailWindow = trail
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func gasParams(cfg *config.Config) gas.Params {
	return gas.Params{
		Bodies:      cfg.Bodies,
		Radius:      cfg.Radius,
		Speed:       cfg.Speed,
		Arena:       gas.Arena{Width: cfg.Width, Height: cfg.Height, Margin: cfg.Margin},
		TrailWindow: cfg.TrailWindow,
	}
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:            cfg.Dt,
		MaxDt:         cfg.MaxDt,
		Duration:      cfg.Duration,
		Seed:          cfg.Seed,
		ValidateState: true,
	}
}

func defaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewMeanSpeed(),
		metrics.NewWallPressure(),
		metrics.NewCollisionRate(),
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	cloud, err := gas.NewCloud(gasParams(cfg), rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}

	r := sim.New(cloud)
	for _, m := range defaultMetrics() {
		r.AddMetric(m)
	}

	fmt.Printf("running %d bodies for %.1fs...\n", cfg.Bodies, cfg.Duration)
	start := time.Now()

	result, err := r.Run(context.Background(), simConfig(cfg))
	if err != nil {
		return err
	}
	for _, stepErr := range result.Errors {
		log.Printf("warning: %v", stepErr)
	}

	runID, err := st.Save(storage.RunMetadata{
		Seed:     cfg.Seed,
		Bodies:   cfg.Bodies,
		Radius:   cfg.Radius,
		Speed:    cfg.Speed,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Margin:   cfg.Margin,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("wall hits: %d, collisions: %d\n", result.WallHits, result.PairHits)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	stepDt := cfg.Dt
	if cfg.MaxDt > 0 && stepDt > cfg.MaxDt {
		stepDt = cfg.MaxDt
	}

	m, err := viz.NewModel(gasParams(cfg), cfg.Seed, stepDt, cfg.FPS)
	if err != nil {
		return err
	}
	return viz.Run(m)
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tDURATION\tDT\tCOLLISIONS\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%.4fs\t%d\t%.2e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Duration,
			run.Dt,
			run.PairHits,
			run.EnergyDrift,
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

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d\n", meta.Bodies)
	fmt.Printf("samples: %d\n\n", len(states))

	ke := analysis.KineticEnergySeries(states)
	fmt.Println(asciigraph.Plot(ke,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total kinetic energy"),
	))
	fmt.Println()

	// First body's coordinates show the bounce pattern directly.
	xs := make([]float64, len(states))
	ys := make([]float64, len(states))
	for i, s := range states {
		if len(s) >= 2 {
			xs[i], ys[i] = s[0], s[1]
		}
	}
	fmt.Println(asciigraph.Plot(xs,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("body 0 x position"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(ys,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("body 0 y position"),
	))

	_ = times
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("speed distribution: %s\n", meta.ID)
	fmt.Printf("bodies: %d\n\n", meta.Bodies)

	speeds := analysis.Speeds(states[len(states)-1])
	h := analysis.NewHistogram(speeds, 12)

	fmt.Println(asciigraph.Plot(h.Counts,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("bodies per speed bin (bin width %.1f px/s)", h.BinWidth)),
	))
	fmt.Println()

	mean, rms := 0.0, 0.0
	for _, s := range speeds {
		mean += s
		rms += s * s
	}
	mean /= float64(len(speeds))
	rms = math.Sqrt(rms / float64(len(speeds)))

	fmt.Printf("mean speed: %.2f px/s\n", mean)
	fmt.Printf("rms speed:  %.2f px/s\n", rms)
	fmt.Printf("max speed:  %.2f px/s\n", h.Max)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < len(states[0])/4; i++ {
		header = append(header,
			fmt.Sprintf("b%d_x", i), fmt.Sprintf("b%d_y", i),
			fmt.Sprintf("b%d_vx", i), fmt.Sprintf("b%d_vy", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, times, states)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	// Older runs predate arena dimensions in metadata.
	w, h, m := meta.Width, meta.Height, meta.Margin
	if w == 0 || h == 0 {
		w, h, m = config.DefaultWidth, config.DefaultHeight, config.DefaultMargin
	}

	outFile := runID + ".svg"
	svg := export.ArenaSVG(states, w, h, m, meta.Radius)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func benchSteps(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	counts := []int{10, 25, 50, 100}
	dts := []float64{0.001, 1.0 / 120.0, 0.01}

	fmt.Printf("benchmarking stepping throughput\n\n")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		for _, benchDt := range dts {
			params := gasParams(cfg)
			params.Bodies = n

			cloud, err := gas.NewCloud(params, rand.New(rand.NewSource(42)))
			if err != nil {
				return err
			}

			benchCfg := sim.Config{Dt: benchDt, MaxDt: cfg.MaxDt, Duration: 2.0}
			steps := 0

			start := time.Now()
			err = sim.New(cloud).RunWithCallback(context.Background(), benchCfg,
				func(c *gas.Cloud, st gas.StepStats, t float64) bool {
					steps++
					return true
				})
			elapsed := time.Since(start)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "%d\t%.4fs\t%d\t%v\t%.0f\n",
				n, benchDt, steps, elapsed, float64(steps)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	e := sim.NewEnsemble(gasParams(cfg), numRuns, cfg.Seed, defaultMetrics)

	fmt.Printf("running %d seed-varied simulations...\n", numRuns)
	start := time.Now()

	results, err := e.Run(context.Background(), simConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	names := make([]string, 0, len(results[0].Metrics))
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV")
	for _, name := range names {
		mean := 0.0
		for _, res := range results {
			mean += res.Metrics[name]
		}
		mean /= float64(len(results))

		variance := 0.0
		for _, res := range results {
			d := res.Metrics[name] - mean
			variance += d * d
		}
		variance /= float64(len(results))

		fmt.Fprintf(w, "%s\t%.6f\t%.6f\n", name, mean, math.Sqrt(variance))
	}
	return w.Flush()
}
