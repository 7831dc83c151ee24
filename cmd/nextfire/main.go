package main

import (
	"os"
	_ "time/tzdata"

	"github.com/quintans/go-trigger/internal/cli"
	"github.com/quintans/go-trigger/trigger"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr, trigger.SystemClock{}))
}
