package main

import (
	"context"
	"fmt"
	"io"
	"nebula/backend/feed"
	"nebula/backend/types"
	"nebula/backend/view"
	"nebula/backend/view/impl"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"
)

var logIO = zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}

func main() {
	app := &cli.App{
		Name:  "nebula",
		Usage: "replay edit batches into a sorted view and print the index batches",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "zerolog level (debug, info, warn, error)",
				EnvVars: []string{"NEBULA_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			replayCommand(),
			feedCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger := newLogger(logIO, zerolog.InfoLevel)
		logger.Fatal().Err(err).Msg("nebula failed")
	}
}

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "apply every batch of a YAML script and print the resulting positions",
		ArgsUsage: "<script.yaml>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return xerrors.Errorf("expected one script, got %d arguments", c.NArg())
			}

			logger, err := loggerFromFlag(c, zerolog.WarnLevel.String())
			if err != nil {
				return err
			}

			script, err := feed.LoadScript(c.Args().First())
			if err != nil {
				return err
			}
			deltas, err := script.Deltas()
			if err != nil {
				return err
			}

			v, err := newStringView(script.GroupBy, &logger)
			if err != nil {
				return err
			}

			driver := feed.NewDriver(v, feed.DriverConfig[string]{
				Sinks:  []feed.Sink{&printSink{out: c.App.Writer, view: v}, feed.NewMirror(v)},
				Logger: &logger,
			})
			for _, delta := range deltas {
				driver.Submit(delta)
			}

			for {
				_, ok, err := driver.Step()
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
		},
	}
}

func feedCommand() *cli.Command {
	return &cli.Command{
		Name:  "feed",
		Usage: "drive a view with a random, timer-driven edit feed",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "config", Usage: "YAML configuration file", EnvVars: []string{"NEBULA_CONFIG"}},
			&cli.DurationFlag{Name: "interval", Usage: "time between two batches", EnvVars: []string{"NEBULA_INTERVAL"}},
			&cli.IntFlag{Name: "ticks", Usage: "number of batches, 0 for no bound", EnvVars: []string{"NEBULA_TICKS"}},
			&cli.StringFlag{Name: "mode", Usage: "list or element", EnvVars: []string{"NEBULA_MODE"}},
			&cli.Uint64Flag{Name: "seed", Usage: "random seed", EnvVars: []string{"NEBULA_SEED"}},
			&cli.IntFlag{Name: "batch-size", Usage: "draws per batch", EnvVars: []string{"NEBULA_BATCH_SIZE"}},
			&cli.StringFlag{Name: "group-by", Usage: "none or first-letter", EnvVars: []string{"NEBULA_GROUP_BY"}},
		},
		Action: func(c *cli.Context) error {
			conf, err := feedConfig(c)
			if err != nil {
				return err
			}

			logger, err := loggerFromFlag(c, conf.LogLevel)
			if err != nil {
				return err
			}

			v, err := newStringView(conf.GroupBy, &logger)
			if err != nil {
				return err
			}

			generator := feed.NewGenerator(conf.Seed, conf.BatchSize)
			driver := feed.NewDriver(v, feed.DriverConfig[string]{
				Mode:     types.Mode(conf.Mode),
				Interval: conf.Interval,
				Ticks:    conf.Ticks,
				Source:   generator,
				Sinks:    []feed.Sink{feed.NewLogSink(logger), feed.NewMirror(v)},
				Logger:   &logger,
			})
			driver.Submit(generator.Next(types.InitialMode, nil))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return driver.Run(ctx)
		},
	}
}

// feedConfig loads the configuration file, if any, then applies the flags
// that were set explicitly.
func feedConfig(c *cli.Context) (feed.Config, error) {
	conf := feed.DefaultConfig()
	if path := c.Path("config"); path != "" {
		loaded, err := feed.LoadConfig(path)
		if err != nil {
			return feed.Config{}, err
		}
		conf = loaded
	}

	if c.IsSet("interval") {
		conf.Interval = c.Duration("interval")
	}
	if c.IsSet("ticks") {
		conf.Ticks = c.Int("ticks")
	}
	if c.IsSet("mode") {
		conf.Mode = c.String("mode")
	}
	if c.IsSet("seed") {
		conf.Seed = c.Uint64("seed")
	}
	if c.IsSet("batch-size") {
		conf.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("group-by") {
		conf.GroupBy = c.String("group-by")
	}
	if c.IsSet("log-level") {
		conf.LogLevel = c.String("log-level")
	}

	return conf, conf.Validate()
}

// Helper functions

func newLogger(io io.Writer, level zerolog.Level) zerolog.Logger {
	logger := zerolog.New(io).With().Timestamp().Logger()
	return logger.Level(level)
}

func loggerFromFlag(c *cli.Context, fallback string) (zerolog.Logger, error) {
	name := fallback
	if c.IsSet("log-level") {
		name = c.String("log-level")
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.Logger{}, xerrors.Errorf("invalid log level: %w", err)
	}
	return newLogger(logIO, level), nil
}

func newStringView(groupBy string, logger *zerolog.Logger) (view.View[string], error) {
	classify, err := feed.GroupByName(groupBy)
	if err != nil {
		return nil, err
	}

	conf := view.Ordered[string]()
	conf.GroupBy = classify
	conf.Logger = logger

	return impl.NewView(conf), nil
}

// printSink writes every batch in a human readable form.
//
// - implements feed.Sink
type printSink struct {
	out  io.Writer
	view view.View[string]
}

// Deliver implements feed.Sink
func (p *printSink) Deliver(batch feed.Batch) error {
	ix := batch.Indexes
	co := batch.Coordinates

	_, err := fmt.Fprintf(p.out, "#%d %s -> %s\n", batch.Seq, batch.Delta, ix)
	if err != nil {
		return err
	}

	lines := []string{}
	switch ix.Mode {
	case types.InitialMode:
		lines = append(lines, fmt.Sprintf("  all     %v %v", ix.All, co.All))
	case types.ListMode, types.ElementMode:
		lines = append(lines,
			fmt.Sprintf("  added   %v %v", ix.Added, co.Added),
			fmt.Sprintf("  removed %v %v", ix.Removed, co.Removed),
		)
		if ix.Mode == types.ElementMode {
			lines = append(lines,
				fmt.Sprintf("  changed %v %v", ix.Changed, co.Changed),
				fmt.Sprintf("  moved   %v %v", ix.Moved, co.Moved),
			)
		}
	}
	lines = append(lines, fmt.Sprintf("  view    %v in %d groups", p.view.Items(), p.view.NumberOfGroups()))

	_, err = fmt.Fprintln(p.out, strings.Join(lines, "\n"))
	return err
}
