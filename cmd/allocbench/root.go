package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "allocbench",
	Short: "Replay allocation traces against the segalloc allocator",
	Long: `allocbench drives the segalloc allocator through a trace of
allocate/free/reallocate operations and reports throughput and peak heap
utilization, in the spirit of a CS:APP-style allocator driver.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "run heap invariant checks after every op")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "report as JSON instead of text")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printErrorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
