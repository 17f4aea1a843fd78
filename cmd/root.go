package cmd

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/minimum-LaytonC/rddlsim/domains"
	"github.com/minimum-LaytonC/rddlsim/policies"
	"github.com/minimum-LaytonC/rddlsim/sim"
	"github.com/minimum-LaytonC/rddlsim/viz"
)

var logLevel string

var registerOnce sync.Once

// registerBuiltins wires the bundled models, policies and visualizers
// into the registries. Selection by name replaces any dynamic loading.
func registerBuiltins() {
	registerOnce.Do(func() {
		domains.Register()

		sim.RegisterPolicy("noop", policies.NewNoop)
		sim.RegisterPolicy("random", policies.NewRandom)
		sim.RegisterPolicy("weighted", policies.NewWeighted)

		sim.RegisterVisualizer("none", viz.NewNoop)
		sim.RegisterVisualizer("display", viz.NewDisplay)
	})
}

// GetRootCommand builds the command line interface.
func GetRootCommand() *cobra.Command {
	registerBuiltins()

	rootCommand := &cobra.Command{
		Use:   "rddlsim",
		Short: "Episodic simulator for stochastic sequential decision processes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", logLevel)
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log verbosity level")

	rootCommand.AddCommand(RunCommand())
	rootCommand.AddCommand(ListCommand())
	return rootCommand
}

// Execute runs the CLI, exiting non-zero on error.
func Execute() error {
	return GetRootCommand().Execute()
}
