package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/Black-And-White-Club/tenpin/app"
	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/charts"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/sheets"
	"github.com/Black-And-White-Club/tenpin/config"
	"github.com/urfave/cli/v2"
)

// errRejected is returned when at least one game could not be scored.
var errRejected = errors.New("one or more games were rejected")

func main() {
	if err := newCLI(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "tenpin",
		Usage:     "score ten-pin bowling games",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"TENPIN_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every scoring operation to stderr",
			},
		},
		Commands: []*cli.Command{
			newScoreCommand(),
			newBatchCommand(),
			newChartCommand(),
			newServeCommand(),
		},
	}
}

func strategyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "validation", Usage: "validation strategy: full or none"},
		&cli.StringFlag{Name: "calculator", Usage: "calculator: classic or rules"},
	}
}

// scoringService loads the configuration and returns the service named by
// the strategy flags, falling back to the configured default.
func scoringService(c *cli.Context) (bowlingservice.Service, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if c.Bool("verbose") {
		logger = app.NewLogger(cfg.Observability, c.App.ErrWriter)
	}

	catalog, err := bowlingservice.NewCatalog(
		bowlingservice.Strategy{Validation: cfg.Scoring.Validation, Calculator: cfg.Scoring.Calculator},
		bowlingservice.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return catalog.Get(bowlingservice.Strategy{
		Validation: c.String("validation"),
		Calculator: c.String("calculator"),
	})
}

func newScoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "score one or more games",
		ArgsUsage: "NOTATION...",
		Flags: append(strategyFlags(),
			&cli.BoolFlag{Name: "frames", Usage: "print the running total of every frame"},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one notation is required")
			}
			svc, err := scoringService(c)
			if err != nil {
				return err
			}

			rejected := 0
			for _, notation := range c.Args().Slice() {
				if c.Bool("frames") {
					card, err := svc.ScoreCard(c.Context, notation)
					if err != nil {
						rejected++
						fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", notation, err)
						continue
					}
					if err := printScoreCard(c.App.Writer, card); err != nil {
						return err
					}
					continue
				}

				score, err := svc.CalculateScore(c.Context, notation)
				if err != nil {
					rejected++
					fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", notation, err)
					continue
				}
				fmt.Fprintf(c.App.Writer, "%s\t%d\n", notation, score)
			}

			if rejected > 0 {
				return errRejected
			}
			return nil
		},
	}
}

func printScoreCard(w io.Writer, card bowlingtypes.ScoreCard) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t(%s)\n", card.Notation, card.Strategy)
	fmt.Fprintln(tw, "frame\tmarks\ttotal")
	for _, f := range card.Frames {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", f.Number, f.Marks, f.Cumulative)
	}
	if card.Bonus != "" {
		fmt.Fprintf(tw, "bonus\t%s\t\n", card.Bonus)
	}
	fmt.Fprintf(tw, "score\t\t%d\n", card.Score)
	return tw.Flush()
}

func newBatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "score every game in a CSV, XLSX or text file",
		Flags: append(strategyFlags(),
			&cli.StringFlag{Name: "file", Required: true, Usage: "input file (.csv, .tsv, .xlsx or .txt)"},
			&cli.StringFlag{Name: "out", Usage: "report file (.csv or .xlsx); CSV on stdout when empty"},
		),
		Action: func(c *cli.Context) error {
			input := c.String("file")
			reader, err := sheets.NewFactory().GetReader(input)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", input, err)
			}
			entries, err := reader.Read(data)
			if err != nil {
				return err
			}

			svc, err := scoringService(c)
			if err != nil {
				return err
			}
			results := sheets.ScoreEntries(c.Context, svc, svc.Strategy().String(), entries)

			out := c.String("out")
			if out == "" {
				if err := sheets.WriteResults(c.App.Writer, "report.csv", results); err != nil {
					return err
				}
			} else {
				if err := writeFile(out, func(w io.Writer) error {
					return sheets.WriteResults(w, out, results)
				}); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "scored %d games, %d rejected, report written to %s\n",
					len(results), sheets.Failed(results), out)
			}

			if sheets.Failed(results) > 0 {
				return errRejected
			}
			return nil
		},
	}
}

func newChartCommand() *cli.Command {
	return &cli.Command{
		Name:      "chart",
		Usage:     "render the running total of a game as a PNG",
		ArgsUsage: "NOTATION",
		Flags: append(strategyFlags(),
			&cli.StringFlag{Name: "out", Required: true, Usage: "PNG file to write"},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("exactly one notation is required")
			}
			svc, err := scoringService(c)
			if err != nil {
				return err
			}
			card, err := svc.ScoreCard(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			png, err := charts.RenderScoreCard(card, charts.DefaultPalette)
			if err != nil {
				return err
			}
			out := c.String("out")
			if err := writeFile(out, func(w io.Writer) error {
				_, err := w.Write(png)
				return err
			}); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "score %d, chart written to %s\n", card.Score, out)
			return nil
		},
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := app.ShutdownContext(c.Context)
			defer stop()

			application, err := app.NewApp(ctx, cfg, c.App.ErrWriter)
			if err != nil {
				return err
			}
			return application.Start(ctx)
		},
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

