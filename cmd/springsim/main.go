package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/experiment"
	"github.com/san-kum/springsim/internal/pendulum"
	"github.com/san-kum/springsim/internal/report"
)

var (
	logLevel   string
	verbose    bool
	configFile string
	preset     string
	engineName string
	dt         float64
	duration   float64
	k          float64
	l          float64
	x          float64
	y          float64
	vx         float64
	vy         float64
	legacyRK4  bool
	switchAt   float64
	switchTo   string
	plot       bool
	plotWidth  int
	plotHeight int
	jsonOut    bool
	saveConfig string
	trace      int
	overrides  []string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "springsim",
})

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "springsim",
		Short:         "2D spring pendulum integrator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.SetLevel(log.DebugLevel)
				return nil
			}
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print a report",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addStateFlags(runCmd)
	runCmd.Flags().Float64Var(&switchAt, "switch-at", 0, "time at which to switch engines (with --switch-to)")
	runCmd.Flags().StringVar(&switchTo, "switch-to", "", "engine to switch to at --switch-at")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot distance and position")
	runCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	runCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the trajectory as JSON to stdout")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the effective config to a yaml file")
	runCmd.Flags().IntVar(&trace, "trace", 0, "print every Nth state to stderr while running")

	compareCmd := &cobra.Command{
		Use:   "compare [engine...]",
		Short: "run the same initial state under several engines",
		RunE:  compareEngines,
	}
	addStateFlags(compareCmd)

	reachCmd := &cobra.Command{
		Use:   "reach <distance>",
		Short: "report when the mass first gets a distance away from the anchor",
		Args:  cobra.ExactArgs(1),
		RunE:  reachDistance,
	}
	addStateFlags(reachCmd)

	showCmd := &cobra.Command{
		Use:   "show <file.json>",
		Short: "print the report of a run exported with run --json",
		Args:  cobra.ExactArgs(1),
		RunE:  showExport,
	}
	showCmd.Flags().BoolVar(&plot, "plot", false, "plot distance and position")
	showCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	showCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s engine=%-8s k=%-5g l=%-4g pos=(%g, %g) vel=(%g, %g)\n",
					name, p.Engine, p.SpringConstant, p.RestLength,
					p.InitState.X, p.InitState.Y, p.InitState.VX, p.InitState.VY)
			}
		},
	}

	enginesCmd := &cobra.Command{
		Use:   "engines",
		Short: "list integration engines",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, e := range pendulum.Engines() {
				fmt.Printf("  %-9s %d force evaluation(s) per step\n", e, e.Evaluations())
			}
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, reachCmd, showCmd, presetsCmd, enginesCmd)
	return rootCmd
}

func addStateFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVarP(&engineName, "engine", "e", d.Engine.String(), "integration engine (euler, midpoint, rk4)")
	cmd.Flags().Float64Var(&dt, "dt", d.Dt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", d.Duration, "duration")
	cmd.Flags().Float64Var(&k, "k", d.SpringConstant, "spring constant")
	cmd.Flags().Float64Var(&l, "l", d.RestLength, "spring rest length")
	cmd.Flags().Float64Var(&x, "x", d.InitState.X, "initial x position")
	cmd.Flags().Float64Var(&y, "y", d.InitState.Y, "initial y position")
	cmd.Flags().Float64Var(&vx, "vx", d.InitState.VX, "initial x velocity")
	cmd.Flags().Float64Var(&vy, "vy", d.InitState.VY, "initial y velocity")
	cmd.Flags().BoolVar(&legacyRK4, "legacy-rk4", false, "reproduce the old RK4 y-average")
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "override a parameter as name=value (k, l, init_x, init_y, init_vx, init_vy); repeatable")
}

// loadConfig resolves the effective configuration: preset, then config
// file, then any flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		logger.Debug("loaded preset", "name", preset)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Debug("loaded config", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("engine") {
		e, err := pendulum.ParseEngine(engineName)
		if err != nil {
			return nil, err
		}
		cfg.Engine = e
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("k") {
		cfg.SpringConstant = k
	}
	if flags.Changed("l") {
		cfg.RestLength = l
	}
	if flags.Changed("x") {
		cfg.InitState.X = x
	}
	if flags.Changed("y") {
		cfg.InitState.Y = y
	}
	if flags.Changed("vx") {
		cfg.InitState.VX = vx
	}
	if flags.Changed("vy") {
		cfg.InitState.VY = vy
	}
	if flags.Changed("legacy-rk4") {
		cfg.LegacyRK4 = legacyRK4
	}
	if flags.Lookup("switch-to") != nil {
		if flags.Changed("switch-at") && switchTo == "" {
			return nil, fmt.Errorf("--switch-at needs --switch-to")
		}
		if switchTo != "" {
			e, err := pendulum.ParseEngine(switchTo)
			if err != nil {
				return nil, err
			}
			cfg.Switches = append(cfg.Switches, config.SwitchConfig{At: switchAt, Engine: e})
		}
	}

	for _, kv := range overrides {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: want name=value", kv)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("--set %q: %w", kv, err)
		}
		if err := cfg.SetParam(strings.TrimSpace(name), value); err != nil {
			return nil, err
		}
		logger.Debug("override", "param", name, "value", value)
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
		logger.Info("saved config", "path", saveConfig)
	}

	if trace > 0 {
		exp.Observe(report.NewTracer(os.Stderr, trace))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running simulation", "engine", cfg.Engine, "dt", cfg.Dt, "duration", cfg.Duration, "legacy_rk4", cfg.LegacyRK4)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		if result == nil {
			return err
		}
		logger.Warn("simulation stopped early", "steps", result.StepsTaken, "err", err)
	}

	logger.Debug("simulation finished", "elapsed", time.Since(start), "steps", result.StepsTaken, "evaluations", result.Evaluations)

	if jsonOut {
		if werr := report.WriteJSON(os.Stdout, cfg.Dt, result); werr != nil {
			return werr
		}
		return err
	}

	fmt.Println(report.Summary("spring pendulum", result))
	if plot {
		fmt.Println()
		fmt.Println(report.PlotDistance(result, plotWidth, plotHeight))
		fmt.Println()
		fmt.Println(report.PlotPosition(result, plotWidth, plotHeight))
	}

	return err
}

func compareEngines(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engines := pendulum.Engines()
	if len(args) > 0 {
		engines = nil
		for _, name := range args {
			e, err := pendulum.ParseEngine(name)
			if err != nil {
				return err
			}
			engines = append(engines, e)
		}
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("comparing engines", "engines", engines, "dt", cfg.Dt, "duration", cfg.Duration)

	results, err := exp.Compare(ctx, engines)
	if err != nil {
		return err
	}

	return report.Comparison(os.Stdout, results)
}

func reachDistance(cmd *cobra.Command, args []string) error {
	distance, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("distance: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hit, err := exp.Reach(ctx, distance)
	if err != nil {
		return err
	}
	if hit == nil {
		fmt.Printf("distance %g not reached within %gs\n", distance, cfg.Duration)
		return nil
	}
	fmt.Printf("t=%.4f pos=%s vel=%s d=%.4f\n", hit.Time, hit.State.Pos, hit.State.Vel, hit.State.Distance())
	return nil
}

func showExport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	result, dt, err := report.ReadJSON(f)
	if err != nil {
		return err
	}
	logger.Debug("loaded export", "path", args[0], "dt", dt, "samples", len(result.Samples))

	fmt.Println(report.Summary(args[0], result))
	if plot {
		fmt.Println()
		fmt.Println(report.PlotDistance(result, plotWidth, plotHeight))
		fmt.Println()
		fmt.Println(report.PlotPosition(result, plotWidth, plotHeight))
	}
	return nil
}
