package main

import (
	"fmt"
	"os"

	"github.com/patriciastocker/intranet/internal/interfaces/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.Options{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
