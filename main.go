package main

import (
	"os"

	"github.com/cinelist/cinelist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
