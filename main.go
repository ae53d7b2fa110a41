package main

import (
	"os"

	"github.com/spacedmonkey/blockpress/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
