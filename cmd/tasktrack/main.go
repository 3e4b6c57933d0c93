package main

import (
	"os"

	"github.com/jthomas/tasktrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
