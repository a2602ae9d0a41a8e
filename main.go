package main

import (
	"os"

	"github.com/mkowalik/fridgekeep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
