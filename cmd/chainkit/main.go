package main

import (
	"os"

	"github.com/chainkitlabs/chainkit/internal/app"
)

func main() {
	runner := app.NewRunner()
	os.Exit(runner.Run(os.Args[1:]))
}
