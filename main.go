package main

import (
	"os"

	"github.com/samuelfneumann/gridmdp/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
