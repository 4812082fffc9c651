package main

import (
	"os"

	"github.com/backpork/backpork-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
