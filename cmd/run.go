package cmd

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/minimum-LaytonC/rddlsim/sim"
	"github.com/minimum-LaytonC/rddlsim/util"
)

// RunCommand builds the `run` subcommand: the batch invocation surface.
// All wiring failures (unknown instance, policy or visualizer, unreadable
// scenario) abort here, before any trial runs.
func RunCommand() *cobra.Command {
	var (
		scenarioFile string
		instance     string
		policy       string
		visualizer   string
		trials       int
		seed         uint64
		output       string
		flushEvery   int
		plotDir      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch of trials against a decision process instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := DefaultScenario()
			if scenarioFile != "" {
				var err error
				if scenario, err = LoadScenario(scenarioFile); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("instance") {
				scenario.Instance = instance
			}
			if cmd.Flags().Changed("policy") {
				scenario.Policy = policy
			}
			if cmd.Flags().Changed("viz") {
				scenario.Visualizer = visualizer
			}
			if cmd.Flags().Changed("trials") {
				scenario.Trials = trials
			}
			if cmd.Flags().Changed("seed") {
				scenario.Seed = seed
			}
			if cmd.Flags().Changed("output") {
				scenario.Output = output
			}
			if cmd.Flags().Changed("flush-every") {
				scenario.FlushEvery = flushEvery
			}
			if cmd.Flags().Changed("plot") {
				scenario.PlotDir = plotDir
			}
			if scenario.Instance == "" {
				return fmt.Errorf("no instance given, choices are %v", sim.RegisteredModels())
			}

			summary, err := runScenario(scenario)
			if summary != nil {
				printSummary(scenario, summary)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&scenarioFile, "scenario", "f", "", "YAML scenario file")
	cmd.Flags().StringVarP(&instance, "instance", "i", "", "Decision process instance to simulate")
	cmd.Flags().StringVarP(&policy, "policy", "p", "random", "Policy selecting the actions")
	cmd.Flags().StringVar(&visualizer, "viz", "none", "Visualizer notified at episode end")
	cmd.Flags().IntVarP(&trials, "trials", "n", 1, "Number of trials to run")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Base seed (0 = derive from time, not reproducible)")
	cmd.Flags().StringVarP(&output, "output", "o", "data_output.tsv", "Trajectory output file")
	cmd.Flags().IntVar(&flushEvery, "flush-every", sim.DefaultFlushEvery, "Trials buffered between trajectory flushes")
	cmd.Flags().StringVar(&plotDir, "plot", "", "Directory for the return plot and summary (empty = none)")

	return cmd
}

func runScenario(scenario Scenario) (*sim.Summary, error) {
	model, err := sim.NewModel(scenario.Instance)
	if err != nil {
		return nil, err
	}
	policyFactory, err := sim.LookupPolicy(scenario.Policy)
	if err != nil {
		return nil, err
	}
	vizFactory, err := sim.LookupVisualizer(scenario.Visualizer)
	if err != nil {
		return nil, err
	}

	seeder := sim.NewTimeSeeder()
	if scenario.Seed != 0 {
		seeder = sim.NewSeeder(scenario.Seed)
	}

	return sim.RunBatch(model, sim.BatchConfig{
		Trials:        scenario.Trials,
		Seeder:        seeder,
		Logger:        sim.NewTrajectoryLogger(scenario.Output, scenario.FlushEvery),
		NewPolicy:     policyFactory,
		NewVisualizer: vizFactory,
	})
}

func printSummary(scenario Scenario, summary *sim.Summary) {
	lines := []string{
		fmt.Sprintf("instance: %s", scenario.Instance),
		fmt.Sprintf("policy: %s", scenario.Policy),
		fmt.Sprintf("trials: %d (completed %d, failed %d)", summary.Trials, summary.Completed, summary.Failed),
		fmt.Sprintf("mean return: %g (stddev %g, stderr %g)", summary.MeanReturn, summary.StdDev, summary.StdErr),
	}
	for _, l := range lines {
		fmt.Println(l)
	}

	if scenario.PlotDir == "" || summary.Completed == 0 {
		return
	}
	name := scenario.Instance + "/" + scenario.Policy
	if err := sim.PlotReturns(scenario.PlotDir, []string{name}, [][]float64{summary.Returns}); err != nil {
		fmt.Printf("could not plot returns: %v\n", err)
	}
	if err := util.WriteToFile(path.Join(scenario.PlotDir, "summary.txt"), lines...); err != nil {
		fmt.Printf("could not write summary: %v\n", err)
	}
}
