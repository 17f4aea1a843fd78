package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minimum-LaytonC/rddlsim/sim"
)

// ListCommand prints the registered instances, policies and visualizers.
func ListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered instances, policies and visualizers",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("instances:")
			for _, name := range sim.RegisteredModels() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("policies:")
			for _, name := range sim.RegisteredPolicies() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("visualizers:")
			for _, name := range sim.RegisteredVisualizers() {
				fmt.Printf("  %s\n", name)
			}
		},
	}
}
