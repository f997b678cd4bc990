// Command markerfield runs the marker claiming simulation headless, in the
// terminal, or behind the browser viz server.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"

	"github.com/borkshop/markerfield/internal/grid"
	"github.com/borkshop/markerfield/internal/scenario"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func failWith(err error) {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, chalk.Red.Color("=== ❌ "+err.Error()))
	if st, ok := errors.Cause(err).(stackTracer); ok {
		fmt.Fprintf(os.Stderr, "%+v\n", st.StackTrace())
	}
	os.Exit(1)
}

func warnWith(err error) {
	fmt.Fprintln(os.Stderr, chalk.Yellow.Color("=== warning: "+err.Error()))
}

var commonFlags = []cli.Flag{
	cli.StringFlag{Name: "scenario", Value: "duel", Usage: "Preset name or path to a scenario .json file"},
	cli.Int64Flag{Name: "seed", Value: 0, Usage: "Random seed; 0 picks one from the clock"},
	cli.BoolFlag{Name: "debug", Usage: "Start with claim ranges and the marker field shown"},
	cli.BoolFlag{Name: "profile", Usage: "Write pprof profiles of the run"},
	cli.StringFlag{Name: "log", Value: "", Usage: "Log file; defaults to stderr, or discarded for term"},
}

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		failWith(err)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "markerfield"
	app.Usage = "agents claiming a field of markers as they steer toward their goals"

	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "Run headless for a number of ticks and print a summary",
			Flags: append([]cli.Flag{
				cli.IntFlag{Name: "ticks", Value: 500, Usage: "Number of ticks to run"},
				cli.StringFlag{Name: "geojson", Value: "", Usage: "Write the final frame as GeoJSON to this file"},
			}, commonFlags...),
			Action: func(c *cli.Context) error {
				opts, err := loadOptions(c, os.Stderr)
				if err != nil {
					return err
				}
				defer opts.close()
				return runAction(opts, c.Int("ticks"), c.String("geojson"), os.Stdout)
			},
		},
		{
			Name:  "term",
			Usage: "Run in the terminal",
			Flags: append([]cli.Flag{
				cli.IntFlag{Name: "tps", Value: 10, Usage: "Number of ticks per second"},
			}, commonFlags...),
			Action: func(c *cli.Context) error {
				opts, err := loadOptions(c, io.Discard)
				if err != nil {
					return err
				}
				defer opts.close()
				return termAction(opts, c.Int("tps"))
			},
		},
		{
			Name:  "serve",
			Usage: "Serve the simulation to browsers",
			Flags: append([]cli.Flag{
				cli.IntFlag{Name: "tps", Value: 10, Usage: "Number of ticks per second"},
				cli.StringFlag{Name: "addr", Value: ":8080", Usage: "Address to listen on"},
			}, commonFlags...),
			Action: func(c *cli.Context) error {
				opts, err := loadOptions(c, os.Stderr)
				if err != nil {
					return err
				}
				defer opts.close()
				return serveAction(opts, c.Int("tps"), c.String("addr"))
			},
		},
	}

	return app
}

type options struct {
	cfg     scenario.Config
	seed    int64
	profile bool
	logger  *log.Logger
	logOut  io.Writer
	logFile *os.File
}

func loadOptions(c *cli.Context, defaultLog io.Writer) (*options, error) {
	cfg, err := scenario.Lookup(c.String("scenario"))
	if err != nil {
		return nil, err
	}
	opts := &options{
		cfg:     cfg,
		seed:    c.Int64("seed"),
		profile: c.Bool("profile"),
		logOut:  defaultLog,
	}
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}
	if name := c.String("log"); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return nil, errors.Wrap(err, "opening log file")
		}
		opts.logFile = f
		opts.logOut = f
	}
	opts.logger = log.New(opts.logOut, "", log.LstdFlags)
	grid.SetDebug(c.Bool("debug"))
	return opts, nil
}

func (opts *options) close() {
	if opts.logFile != nil {
		if err := opts.logFile.Close(); err != nil {
			warnWith(err)
		}
	}
}
