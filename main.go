package main

import (
	"os"

	"github.com/puchicavos/website/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
