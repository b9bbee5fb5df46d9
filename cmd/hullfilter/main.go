package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytearena/hullfilter/common/assert"
	"github.com/bytearena/hullfilter/common/hullio"
	"github.com/bytearena/hullfilter/common/influxdb"
	"github.com/bytearena/hullfilter/common/utils"
	"github.com/bytearena/hullfilter/config"
	"github.com/bytearena/hullfilter/filter"
	"github.com/bytearena/hullfilter/indexserver"
	"github.com/cheggaaa/pb"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
	bettererrors "github.com/xtuc/better-errors"
)

func main() {
	app := makeapp()

	if err := app.Run(os.Args); err != nil {
		utils.FailWith(err)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "hullfilter"
	app.Usage = "Remove the convex hulls mostly covered by another hull"
	app.UsageText = "hullfilter [options] <convex_hulls.json>"
	app.Version = utils.GetVersion()

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Value: "", Usage: "Config file; defaults to " + config.DefaultFilename + " next to the executable"},
		cli.StringFlag{Name: "output", Value: "", Usage: "Destination file; defaults to <input>.filtered.json"},
		cli.IntFlag{Name: "m", Usage: "Minimum number of children per R-tree node"},
		cli.IntFlag{Name: "M", Usage: "Maximum number of children per R-tree node"},
		cli.Float64Flag{Name: "ratio", Usage: "Share of a hull's area that must be covered for it to be removed"},
		cli.StringFlag{Name: "engine", Usage: "Candidate search: " + filter.EngineRTree + " or " + filter.EngineRTreego},
		cli.BoolFlag{Name: "verify", Usage: "Cross-check every intersection area with the polygon clipper"},
		cli.BoolFlag{Name: "progress", Usage: "Show a progress bar"},
		cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
	}

	app.Action = filterAction

	app.Commands = []cli.Command{
		{
			Name:  "serve",
			Usage: "Serve the hull and index operations over HTTP",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "config", Value: "", Usage: "Config file"},
				cli.StringFlag{Name: "listen", Value: "", Usage: "Listen address, overrides the config"},
				cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
			},
			Action: serveAction,
		},
	}

	return app
}

func setupDebug(c *cli.Context) {
	if c.Bool("debug") {
		utils.SetDebugOutput(os.Stderr)
	} else {
		utils.SetDebugOutput(nil)
	}
}

// loadConfig applies the command line flags over the config file.
func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.GetConfig(c.String("config"))
	if err != nil {
		return conf, err
	}

	if c.IsSet("m") {
		conf.MinFanout = c.Int("m")
	}

	if c.IsSet("M") {
		conf.MaxFanout = c.Int("M")
	}

	if c.IsSet("ratio") {
		conf.ContainmentRatio = c.Float64("ratio")
	}

	if c.IsSet("engine") {
		conf.Engine = c.String("engine")
	}

	if c.IsSet("listen") {
		conf.Listen = c.String("listen")
	}

	return conf, conf.Validate()
}

func outputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".filtered.json"
}

func filterAction(c *cli.Context) (err error) {
	if c.NArg() != 1 {
		cli.ShowAppHelp(c)
		return cli.NewExitError(chalk.Red.Color("Expected exactly one input file"), 2)
	}

	setupDebug(c)
	defer assert.Recover(&err)

	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	input := c.Args().First()
	output := c.String("output")
	if output == "" {
		output = outputPath(input)
	}

	hulls, err := hullio.LoadFile(input)
	if err != nil {
		return bettererrors.
			NewFromString("Could not load convex hulls").
			With(bettererrors.NewFromErr(err))
	}

	metrics, err := influxdb.NewClient("hullfilter")
	if err != nil {
		utils.WarnWith(err)
	}
	defer metrics.TearDown()

	options := conf.FilterOptions()
	options.Verify = c.Bool("verify")

	var bar *pb.ProgressBar
	if c.Bool("progress") {
		options.Progress = func(done, total int) {
			if bar == nil {
				bar = pb.New(total)
				bar.Output = os.Stderr
				bar.SetWidth(80)
				bar.Start()
			}
			bar.Set(done)
		}
	}

	f, err := filter.NewFilter(options, metrics)
	if err != nil {
		return err
	}

	report, err := f.Run(hulls)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	if err := hullio.WriteFile(output, report.Kept); err != nil {
		return bettererrors.
			NewFromString("Could not write filtered convex hulls").
			With(bettererrors.NewFromErr(err))
	}

	fmt.Println("Removed " + strconv.Itoa(len(report.Removed)) + " of " + strconv.Itoa(report.Hulls) + " convex hulls, written to " + output)

	if report.Mismatches > 0 {
		fmt.Println(chalk.Yellow.Color(strconv.Itoa(report.Mismatches) + " intersection areas differ from the polygon clipper"))
	}

	return nil
}

func serveAction(c *cli.Context) (err error) {
	setupDebug(c)
	defer assert.Recover(&err)

	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	service := indexserver.NewIndexService(conf.Listen)
	utils.Check(service.ListenAndServe(), "Index service stopped")

	return nil
}
