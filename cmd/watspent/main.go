package main

import (
	"os"

	"github.com/watspent/watspent/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
