package main

import (
	"os"

	"github.com/pterm/pterm"

	"finvault/internal/cli"
)

var version = "dev"

func main() {
	app := cli.NewApp(version, os.Stdout)
	if err := app.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
