package main

import (
	"os"

	"interactsh/cmd/interactsh-client/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
