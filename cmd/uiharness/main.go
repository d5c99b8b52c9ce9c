// Command uiharness is the operational entry point for the test harness:
// installing browsers, inspecting resolved configuration, and summarizing
// run reports. The suites themselves run through go test ./tests/e2e/...
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/probelab/uiharness/internal/browser"
	"github.com/probelab/uiharness/internal/config"
	"github.com/probelab/uiharness/internal/obs"
	"github.com/probelab/uiharness/internal/report"
)

// Version is set at build time.
var Version = "dev"

func main() {
	obs.Init()

	app := &cli.App{
		Name:    "uiharness",
		Usage:   "UI test harness for the practice site",
		Version: Version,
		Description: `Operational companion to the e2e suites.

Examples:
  uiharness install
  uiharness env --config-dir environments
  uiharness report reports/2026-03-14_10-30-00_qa
  uiharness report --html reports/2026-03-14_10-30-00_qa`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "Directory holding per-environment YAML files",
				Value:   "environments",
				EnvVars: []string{"UIHARNESS_CONFIG_DIR"},
			},
		},
		Commands: []*cli.Command{
			installCommand,
			envCommand,
			reportCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var installCommand = &cli.Command{
	Name:  "install",
	Usage: "Download the browser binaries the harness drives",
	Action: func(c *cli.Context) error {
		return browser.Install()
	},
}

var envCommand = &cli.Command{
	Name:  "env",
	Usage: "Print the resolved configuration for the active environment",
	Action: func(c *cli.Context) error {
		cfg, err := config.Load(c.String("config-dir"))
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

var reportCommand = &cli.Command{
	Name:      "report",
	Usage:     "Summarize a run report and optionally render it as HTML",
	ArgsUsage: "<report-dir>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "html",
			Usage: "Write report.html next to report.json",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the full index as JSON instead of a summary",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("usage: uiharness report <report-dir>", 1)
		}
		dir := c.Args().First()
		index, _, err := report.Read(dir)
		if err != nil {
			return err
		}

		if c.Bool("html") {
			target, err := report.GenerateHTML(dir)
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", target)
		}

		if c.Bool("json") {
			out, err := json.MarshalIndent(index, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("run %s (%s) on %s\n", index.RunID, index.Environment, index.BaseURL)
		fmt.Printf("status: %s\n", index.Status)
		fmt.Printf("cases: %d passed, %d failed, %d skipped of %d\n",
			index.Summary.Passed, index.Summary.Failed, index.Summary.Skipped, index.Summary.Total)
		for _, entry := range index.Cases {
			marker := " "
			if entry.Status == report.StatusFailed {
				marker = "x"
			}
			fmt.Printf("  [%s] %-50s %s\n", marker, entry.Name, entry.Status)
		}
		return nil
	},
}
