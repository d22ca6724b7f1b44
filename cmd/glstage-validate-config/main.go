package main

import (
	"fmt"
	"os"

	"github.com/fosdem/glstage/lib/config"
	"github.com/fosdem/glstage/lib/failure"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <config file>\n", os.Args[0])
		os.Exit(2)
	}
	cfg, err := config.Parse(os.Args[1])
	if err != nil {
		fmt.Print("Config invalid:\n\n")
		fmt.Print(failure.Report(err))
		os.Exit(1)
	}

	fmt.Print("Config valid!\n\n")

	fmt.Print(cfg)
}
