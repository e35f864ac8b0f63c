package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/gitwars/tankbot/agent"
	"github.com/gitwars/tankbot/config"
	"github.com/gitwars/tankbot/ipc"
	"github.com/gitwars/tankbot/model"
	"github.com/gitwars/tankbot/rules"
)

const banner = `
 ______          __    __        __
/_  __/__ ____  / /__ / /  ___  / /_
 / / / _ ` + "`" + `/ _ \/  '_// _ \/ _ \/ __/
/_/  \_,_/_//_/_/\_\/_.__/\___/\__/

Doctrine-Driven Tank Tactics`

var cfg = config.Default()

var framePath string

var rootCmd = &cobra.Command{
	Use:   "tankbot",
	Short: "Tactical decision policy for arena tanks",
	Long: `tankbot turns one frame of arena state into one action for the tank
it controls. The engine launches it as a subprocess and exchanges frames
and actions over stdin/stdout.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer engine frames on stdin/stdout",
	RunE:  runServe,
}

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Decide a single frame read from a JSON file",
	RunE:  runDecide,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.String("doctrine", cfg.DoctrinePath, "YAML doctrine file (default: built-in reference tuning)")
	flags.Duration("budget", cfg.Budget, "Time allowed per decision")
	flags.Uint64("seed", cfg.Seed, "Random seed (0 seeds from the clock)")
	flags.Bool("synthesize-sensors", cfg.SynthesizeSensors, "Cast sensor rays against walls when the engine sends none")
	flags.Float64("sensor-range", cfg.SensorRange, "Maximum synthesized sensor distance")

	serveCmd.Flags().Duration("reload-delay", cfg.ReloadDelay, "Settle time after the doctrine file changes before reloading")
	decideCmd.Flags().StringVar(&framePath, "frame", "", "Snapshot JSON file")
	_ = decideCmd.MarkFlagRequired("frame")

	// Bind flags to viper for environment variable support (TANKBOT_LOG_LEVEL etc.)
	bindings := map[string]string{
		"log_level":          "log-level",
		"doctrine":           "doctrine",
		"budget":             "budget",
		"seed":               "seed",
		"synthesize_sensors": "synthesize-sensors",
		"sensor_range":       "sensor-range",
	}
	for key, name := range bindings {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
	_ = viper.BindPFlag("reload_delay", serveCmd.Flags().Lookup("reload-delay"))
	viper.SetEnvPrefix("TANKBOT")
	viper.AutomaticEnv()

	rootCmd.AddCommand(serveCmd, decideCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.Level()
	// stdout carries frames; logs must never go there.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

func newEngine() (*rules.Engine, error) {
	d := rules.DefaultDoctrine()
	if cfg.DoctrinePath != "" {
		var err error
		if d, err = rules.LoadDoctrine(cfg.DoctrinePath); err != nil {
			return nil, err
		}
	}
	engine, err := rules.NewEngine(d)
	if err != nil {
		return nil, fmt.Errorf("compile doctrine %q: %w", d.Name, err)
	}
	slog.Info("doctrine loaded", "name", d.Name, "rules", engine.RuleNames())
	return engine, nil
}

func newAgent(engine *rules.Engine) *agent.Agent {
	policy := rules.NewTactical(engine, rules.NewRand(cfg.Seed))
	return agent.New(policy, agent.Options{
		Budget:            cfg.Budget,
		SynthesizeSensors: cfg.SynthesizeSensors,
		SensorRange:       cfg.SensorRange,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stderr, banner)

	engine, err := newEngine()
	if err != nil {
		return err
	}
	a := newAgent(engine)

	var reloader *agent.Reloader
	if cfg.DoctrinePath != "" {
		if reloader, err = agent.NewReloader(engine, cfg.DoctrinePath, cfg.ReloadDelay); err != nil {
			return err
		}
	}
	slog.Info("starting tankbot", "session", a.Session, "budget", cfg.Budget)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	conn := ipc.NewConnection(os.Stdin, os.Stdout, nil)
	g.Go(func() error {
		// End of stream ends the session; stop the reloader with it.
		defer stop()
		err := a.Serve(ctx, conn)
		if errors.Is(err, os.ErrClosed) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	// A blocked stdin read only returns once the file is closed.
	g.Go(func() error {
		<-ctx.Done()
		os.Stdin.Close()
		return nil
	})

	if reloader != nil {
		g.Go(func() error { return reloader.Start(ctx) })
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("session %s: %w", a.Session, err)
	}
	slog.Info("shutting down")
	return nil
}

func runDecide(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(framePath)
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}
	var s model.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	action := newAgent(engine).Decide(cmd.Context(), 0, s)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(ipc.EncodeAction(0, action))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
