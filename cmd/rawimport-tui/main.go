package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/rawimport/internal/config"
	"github.com/handiism/rawimport/internal/tui"
)

func main() {
	var (
		outDirFlag = flag.String("out-dir", "", "Directory to write converted DNGs")
		configFlag = flag.String("config", "", "Path to config file")
	)
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *outDirFlag != "" {
		settings.OutputDir = *outDirFlag
	}
	if settings.OutputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no output directory; pass -out-dir or set it in the config")
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
