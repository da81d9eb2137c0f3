package main

import (
	"os"

	"github.com/decisionlab/benders/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
