// Package main provides the navsim CLI, which replays navigation scenarios
// against a flow router on the in-memory platform.
package main

import (
	"fmt"
	"os"

	"github.com/BrandonKowalski/ribs/internal/navsim"
	"github.com/BrandonKowalski/ribs/pkg/ribs"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// Global flags
var (
	lang       string
	logLevel   string
	logPath    string
	configPath string
	forceColor bool
	noColor    bool
)

// Styles for output
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	})
	stepStyle   = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	})
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	})
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	})
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	})
)

var rootCmd = &cobra.Command{
	Use:   "navsim",
	Short: "Replay navigation scenarios against a ribs flow router",
	Long: `navsim replays scripted navigation scenarios against a flow router running
on the in-memory platform and prints how the router tree followed the
visible stack after every step.

Scenarios are TOML files:

  name = "detail"
  root = "Root"

  [[step]]
  op = "push"
  id = "Detail1"

  [[step]]
  op = "pop_to"
  id = "Detail1"
  expect_visible = ["Root"]

Examples:
  navsim run scenarios/detail.toml          # Replay a scenario
  navsim run --lang de scenarios/*.toml     # German report
  navsim validate scenarios/gesture.toml    # Check a scenario without running it`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		options := ribs.Options{}
		if configPath != "" {
			loaded, err := ribs.LoadOptions(configPath)
			if err != nil {
				return err
			}
			options = loaded
		}
		if logLevel != "" {
			options.LogLevel = logLevel
		}
		if logPath != "" {
			options.LogPath = logPath
		}
		ribs.Init(options)

		switch {
		case noColor:
			lipgloss.SetColorProfile(termenv.Ascii)
		case forceColor:
			lipgloss.SetColorProfile(termenv.TrueColor)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ribs.Close()
	},
}

var runCmd = &cobra.Command{
	Use:   "run <scenario>...",
	Short: "Replay scenarios and print a report for each",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printer, err := navsim.NewPrinter(cmd.OutOrStdout(), lang, navsim.WithStyles(navsim.Styles{
			Heading: headingStyle.Render,
			Step:    stepStyle.Render,
			Detail:  detailStyle.Render,
			Warning: warnStyle.Render,
			Success: passStyle.Render,
			Failure: failStyle.Render,
		}))
		if err != nil {
			return err
		}

		runner := navsim.NewRunner(navsim.WithLogger(ribs.GetLogger()))

		failed := 0
		for i, path := range args {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}

			scenario, err := navsim.LoadScenario(path)
			if err != nil {
				printer.PrintError(err)
				failed++
				continue
			}

			report, err := runner.Run(scenario)
			if err != nil {
				if report != nil {
					for _, s := range report.Snapshots {
						printer.PrintSnapshot(s)
					}
				}
				printer.PrintError(err)
				failed++
				continue
			}
			printer.PrintReport(report)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <scenario>...",
	Short: "Check scenarios without running them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if _, err := navsim.LoadScenario(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), passStyle.Render("✓ "+path))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the navsim version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "navsim "+Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Application log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "Write logs to this file in addition to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a ribs options file (TOML)")
	rootCmd.PersistentFlags().BoolVar(&forceColor, "color", false, "Force color output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")

	runCmd.Flags().StringVar(&lang, "lang", "en", "Report language (BCP 47 tag, e.g. en or de)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
