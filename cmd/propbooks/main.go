package main

import (
	"os"

	"github.com/propbooks-dev/propbooks/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
