package main

import (
	"os"

	"github.com/fairhire/biasprobe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
