package main

import (
	"os"

	"github.com/semrekkers/rowmap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
