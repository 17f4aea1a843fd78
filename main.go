package main

import (
	"fmt"
	"os"

	"github.com/minimum-LaytonC/rddlsim/cmd"
)

// main entry point to all the simulations
func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
