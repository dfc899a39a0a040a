package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"distviz/adapters/catalog"
	"distviz/domain/distribution"
	"distviz/internal/chart"
	"distviz/internal/engine"
	"distviz/internal/errors"
	"distviz/internal/logger"
	"distviz/internal/schema"
	"distviz/internal/tui"
	"distviz/internal/view"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "distviz-cli",
		Short: "Browse, sample and explore probability distributions from the terminal",
	}

	rootCmd.AddCommand(
		newListCmd(),
		newDescribeCmd(),
		newSampleCmd(),
		newExploreCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [class]",
		Short: "List the distribution families of one or both classes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.New()
			if err != nil {
				return err
			}

			classes := distribution.Classes
			if len(args) == 1 {
				class, err := parseClass(args[0])
				if err != nil {
					return err
				}
				classes = []distribution.Class{class}
			}

			out := cmd.OutOrStdout()
			for _, class := range classes {
				fmt.Fprintf(out, "%s (%d)\n", class, len(cat.Names(class)))
				for _, d := range cat.All(class) {
					fmt.Fprintf(out, "  %-24s %s\n", d.Name, strings.Join(d.ParamNames(), ", "))
				}
			}
			return nil
		},
	}
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [class] [name]",
		Short: "Show the header, parameter widgets and notes of a family",
		Long: `Show how a family is presented: its support, one line per parameter with
input domain, slider range, default and step, and the documentation notes.

Example: distviz-cli describe continuous gamma`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := lookup(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.Describe(d, schema.Derive(d)))
			return nil
		},
	}
}

func newSampleCmd() *cobra.Command {
	var params []string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "sample [class] [name]",
		Short: "Draw a sample and print its histogram and quantiles",
		Long: `Draw 5000 values from a family and print an ascii histogram with the
quantile summary. Parameters not given keep their default values.

Example: distviz-cli sample continuous norm --param loc=2 --param scale=0.5 --seed 42`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := lookup(args[0], args[1])
			if err != nil {
				return err
			}

			assigned, err := tui.ParseAssignments(params)
			if err != nil {
				return err
			}
			values, err := tui.ResolveValues(d, schema.Derive(d).Widgets, assigned)
			if err != nil {
				return err
			}

			res := newEngine(seed).Evaluate(d, values)
			hist, _ := chart.Build(res, d, values)
			fmt.Fprint(cmd.OutOrStdout(), tui.Report(hist, res))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "Parameter assignment name=value (repeatable)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed; 0 draws a fresh one")

	return cmd
}

func newExploreCmd() *cobra.Command {
	var seed uint64
	var logLevel string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Open the interactive terminal explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.New()
			if err != nil {
				return err
			}
			// the explorer owns the terminal; keep the coordinator's log lines out of it by default
			coord := view.NewCoordinator(cat, newEngine(seed), logger.NewLogger(logLevel, "Explore"))

			p := tea.NewProgram(tui.NewExplorer(coord), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "explorer stopped")
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed; 0 draws a fresh one")
	cmd.Flags().StringVar(&logLevel, "log-level", "ERROR", "Log level written to stderr")

	return cmd
}

func parseClass(s string) (distribution.Class, error) {
	class, ok := distribution.ParseClass(s)
	if !ok {
		return "", errors.InvalidInput(fmt.Sprintf("class must be continuous or discrete, got %q", s))
	}
	return class, nil
}

func lookup(classArg, name string) (*distribution.Descriptor, error) {
	class, err := parseClass(classArg)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New()
	if err != nil {
		return nil, err
	}
	return cat.Lookup(class, name)
}

func newEngine(seed uint64) *engine.Engine {
	if seed == 0 {
		return engine.New(nil)
	}
	return engine.New(rand.NewPCG(seed, seed))
}
