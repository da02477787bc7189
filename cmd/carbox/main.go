package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/jakecoffman/cp/v2"
	"github.com/spf13/cobra"

	"github.com/Ali3noid/car-box-2d/internal/config"
	"github.com/Ali3noid/car-box-2d/internal/engine"
	"github.com/Ali3noid/car-box-2d/internal/storage"
	"github.com/Ali3noid/car-box-2d/internal/telemetry"
	"github.com/Ali3noid/car-box-2d/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	duration   float64
	fps        int
	series     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "carbox",
		Short: "2d car over sine hills, rigid-body physics in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".carbox", "data directory")

	driveCmd := &cobra.Command{
		Use:   "drive",
		Short: "interactive drive mode",
		RunE:  runDrive,
	}
	driveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	driveCmd.Flags().StringVar(&preset, "preset", "", "use preset scene")
	driveCmd.Flags().IntVar(&fps, "fps", 0, "display frame rate override")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless simulation, recorded as a run",
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scene")
	runCmd.Flags().Float64Var(&duration, "time", 30.0, "simulated seconds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "y", "series to plot (x, y, speed, vy)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print a run's samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scene presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(driveCmd, runCmd, listCmd, plotCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves precedence: explicit file, then preset, then defaults.
// A bad file or unknown preset is a hard failure; the program is useless
// without a valid scene.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		return config.Preset(preset)
	}
	return config.Default(), nil
}

func runDrive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fps > 0 {
		cfg.Loop.FPS = fps
	}
	return tui.Run(cfg)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rec := telemetry.NewRecording(
		telemetry.NewDistance(),
		telemetry.NewTopSpeed(),
		telemetry.NewAvgSpeed(),
		telemetry.NewAirTime(0),
	)

	session := engine.NewSession(cfg)
	session.OnStep(func(t float64, chassis *cp.Body) {
		rec.Add(telemetry.Sample{T: t, Pos: chassis.Position(), Vel: chassis.Velocity()})
	})
	if err := session.RunFor(duration); err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(preset, cfg.Loop.FixedStep, duration, rec)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d steps over %.1fs\n\n", runID, session.Steps(), duration)

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	for name, value := range rec.Metrics() {
		fmt.Fprintf(w, "%s\t%.3f\n", name, value)
	}
	w.Flush()

	if heights := rec.Series("y"); len(heights) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(heights, asciigraph.Height(12), asciigraph.Caption("chassis height over time")))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDISTANCE")
	for _, run := range runs {
		name := run.Preset
		if name == "" {
			name = "default"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%.1f\n",
			run.ID, name, run.Timestamp.Format("2006-01-02 15:04"), run.Duration, run.Metrics["distance"])
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, rec, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	data := rec.Series(series)
	if len(data) < 2 {
		return fmt.Errorf("no data for series %q (want one of %v)", series, telemetry.SeriesNames())
	}
	fmt.Println(asciigraph.Plot(data, asciigraph.Height(15), asciigraph.Caption(series)))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	path, err := storage.New(dataDir).CSVPath(args[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
