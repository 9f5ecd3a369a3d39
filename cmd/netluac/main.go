package main

import (
	"os"

	"github.com/netlua/netlua/cmd/netluac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(-1)
	}
}
