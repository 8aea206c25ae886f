// Command plutofcg drives the Fusion Conflict Graph scheduler over a
// synthetic program (a benchmark name from internal/scenario, since
// parsing a real input program is outside this module's scope) and
// reports the resulting schedule, SCC parallelism flags, and
// satisfaction state.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "plutofcg",
	Short: "FCG-based polyhedral loop-nest scheduler",
	Long: `plutofcg runs the Fusion Conflict Graph scheduling algorithm
(colouring & scaling driver, optional skew post-pass) over a synthetic
benchmark program and prints the discovered schedule.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .plutofcg.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
