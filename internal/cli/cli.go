// Package cli is the command line front end.
//
//	luminar                 open the window (same as "luminar run")
//	├── run                 open the window
//	│   ├── --chime         ring a tone on every boundary of the chime cycle
//	│   ├── --chime-sound   play this wav, mp3 or flac file instead of the tone
//	│   ├── --metrics-addr  serve Prometheus metrics on this address
//	│   ├── --seed          fix the starfield
//	│   └── --fullscreen
//	├── print               print every dial once and exit
//	│   ├── --at            instant to print instead of now
//	│   └── --format        text or yaml
//	├── --config, -c        YAML config file
//	└── --verbose, -v       debug logging
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
	"github.com/iburimskiy/luminar-weave/internal/chime"
	"github.com/iburimskiy/luminar-weave/internal/clock"
	"github.com/iburimskiy/luminar-weave/internal/config"
	"github.com/iburimskiy/luminar-weave/internal/dial"
	"github.com/iburimskiy/luminar-weave/internal/game"
	"github.com/iburimskiy/luminar-weave/internal/metrics"
)

const version = "0.3.0"

// instantLayouts are tried in order by --at. Layouts without a zone are
// read in the local zone.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

type globalFlags struct {
	configPath string
	verbose    bool
}

// BuildCLI returns the root command.
func BuildCLI() *cobra.Command {
	gf := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:          "luminar",
		Short:        "Nested dials showing how far through each cycle of time you are",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), gf.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(gf.configPath)
			if err != nil {
				return err
			}
			return runWindow(cmd.Context(), cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&gf.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&gf.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(buildRunCommand(gf))
	rootCmd.AddCommand(buildPrintCommand())

	return rootCmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func buildRunCommand(gf *globalFlags) *cobra.Command {
	var (
		chimeOn     bool
		chimeSound  string
		metricsAddr string
		seed        uint64
		fullscreen  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the dials window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(gf.configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("chime") {
				cfg.Chime.Enabled = chimeOn
			}
			if flags.Changed("chime-sound") {
				cfg.Chime.Sound = chimeSound
			}
			if flags.Changed("metrics-addr") {
				cfg.Metrics.Enabled = metricsAddr != ""
				cfg.Metrics.Addr = metricsAddr
			}
			if flags.Changed("seed") {
				cfg.Starfield.Seed = seed
			}
			if flags.Changed("fullscreen") {
				cfg.Window.Fullscreen = fullscreen
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runWindow(cmd.Context(), cfg)
		},
	}

	cmd.Flags().BoolVar(&chimeOn, "chime", false, "ring a tone on every boundary of the chime cycle")
	cmd.Flags().StringVar(&chimeSound, "chime-sound", "", "wav, mp3 or flac file to play instead of the tone")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, empty to disable")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "starfield seed, 0 for a random sky")
	cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "start in fullscreen")

	return cmd
}

// runWindow starts the sampler with its observers and blocks until the
// window is closed. The metrics server is shut down before it returns.
func runWindow(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := slog.With("component", "cli")
	clk := clock.NewAdjustable(clock.System{})

	var observers []clock.Observer
	var player *chime.Player
	if cfg.Chime.Enabled {
		settings := chime.Settings{
			Cycle:     cfg.ChimeCycleValue(),
			Frequency: cfg.Chime.Frequency,
			Duration:  cfg.Chime.Duration,
			Volume:    cfg.Chime.Volume,
		}
		if cfg.Chime.Sound != "" {
			sound, err := chime.LoadSound(cfg.Chime.Sound)
			if err != nil {
				return err
			}
			settings.Sound = sound
		}
		player = chime.NewPlayer(settings)
		if err := player.Start(); err != nil {
			// The dials are still worth showing without sound.
			logger.Warn("chime disabled", "err", err)
			player = nil
		} else {
			defer player.Close()
			observers = append(observers, player)
		}
	}

	var servers errgroup.Group
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		observers = append(observers, metrics.NewCollector(reg))
		servers.Go(func() error {
			err := metrics.Serve(ctx, cfg.Metrics.Addr, reg)
			if err != nil {
				logger.Error("metrics server failed", "err", err)
			}
			return err
		})
	}

	sampler := clock.NewSampler(clk, cfg.Sampler.Interval, observers...)
	if err := sampler.Start(ctx); err != nil {
		return fmt.Errorf("start sampler: %w", err)
	}
	defer sampler.Stop()

	var rng *rand.Rand
	if seed := cfg.Starfield.Seed; seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	g := game.New(game.Options{
		Config:  cfg,
		Clock:   clk,
		Sampler: sampler,
		Chime:   player,
		Rand:    rng,
	})
	runErr := game.Run(g)

	cancel()
	return errors.Join(runErr, servers.Wait())
}

func buildPrintCommand() *cobra.Command {
	var (
		at     string
		format string
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print every dial once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := time.Now()
			if at != "" {
				var err error
				if t, err = parseInstant(at, time.Local); err != nil {
					return err
				}
			}

			p := calendar.Compute(t)
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				return writeText(out, p)
			case "yaml":
				return writeYAML(out, p)
			}
			return fmt.Errorf("unknown format %q, want text or yaml", format)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", `instant to print, RFC 3339 or "2006-01-02 15:04:05" in the local zone`)
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")

	return cmd
}

func parseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse instant %q", s)
}

func writeText(w io.Writer, p calendar.Progress) error {
	fmt.Fprintf(w, "%s %s\n", p.Instant.Format("Monday, 2 January 2006"), dial.LiveTime(p.Instant))
	fmt.Fprintf(w, "%d%s century (%s), day %d of %d\n\n",
		p.Century, calendar.OrdinalSuffix(p.Century), p.CenturyNumeral, p.DayOfYear, p.DaysInYear)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIAL\tVALUE\tPROGRESS")
	for _, r := range dial.Readings(p) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Label, r.Value, r.Percent)
	}
	return tw.Flush()
}

type report struct {
	Instant time.Time     `yaml:"instant"`
	Century string        `yaml:"century"`
	Dials   []reportEntry `yaml:"dials"`
}

type reportEntry struct {
	Cycle    string  `yaml:"cycle"`
	Value    string  `yaml:"value"`
	Percent  string  `yaml:"percent"`
	Progress float64 `yaml:"progress"`
}

func writeYAML(w io.Writer, p calendar.Progress) error {
	r := report{
		Instant: p.Instant,
		Century: fmt.Sprintf("%d%s", p.Century, calendar.OrdinalSuffix(p.Century)),
	}
	for _, rd := range dial.Readings(p) {
		r.Dials = append(r.Dials, reportEntry{
			Cycle:    rd.Cycle.String(),
			Value:    rd.Value,
			Percent:  rd.Percent,
			Progress: rd.Progress,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
