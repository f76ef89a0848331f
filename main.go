package main

import (
	"os"

	"github.com/secmon-lab/barrage/pkg/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.New().Run(os.Args)))
}
