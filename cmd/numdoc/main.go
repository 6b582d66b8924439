package main

import (
	"os"

	"github.com/numdoc/numdoc/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
