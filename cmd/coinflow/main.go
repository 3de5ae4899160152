package main

import (
	"os"

	"github.com/coinflow-dev/coinflow/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
