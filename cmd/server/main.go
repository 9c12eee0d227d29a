package main

import (
	"os"

	"github.com/carlosfiori/conversor-clima/cmd/server/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
