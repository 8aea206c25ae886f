package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/plutofcg/config"
	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/internal/metrics"
	"github.com/katalvlaran/plutofcg/internal/plog"
	"github.com/katalvlaran/plutofcg/internal/scenario"
	"github.com/katalvlaran/plutofcg/lp"
	"github.com/katalvlaran/plutofcg/prog"
	"github.com/katalvlaran/plutofcg/schedule"
	"github.com/katalvlaran/plutofcg/skew"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <scenario>",
	Short: "run the FCG scheduler over a named synthetic benchmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedule,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list the available synthetic benchmark scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, n := range scenario.All {
			fmt.Println(n)
		}
		return nil
	},
}

var applySkew bool

func init() {
	scheduleCmd.Flags().BoolVar(&applySkew, "skew", false, "run the introduce_skew post-pass after scheduling")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(cfgFile)
	policy, err := loader.Load()
	if err != nil {
		return err
	}
	opts, err := policy.ToOptions()
	if err != nil {
		return err
	}

	level := plog.LevelInfo
	if verbose {
		level = plog.LevelDebug
	}
	log := plog.New(plog.Config{Level: level, Pretty: true})
	reg := metrics.NewRegistry(prometheus.NewRegistry())

	p, err := scenario.Build(scenario.Name(args[0]))
	if err != nil {
		return err
	}
	p.Options = opts

	oracle := lp.NewSimplexOracle()
	d := ddg.New(p)

	driver, err := schedule.NewDriver(p, d, oracle)
	if err != nil {
		return err
	}
	if err := driver.FindPermutableDimensionsSCCBased(); err != nil {
		log.Bug("scheduling failed", err)
		return err
	}

	if applySkew {
		if err := skew.IntroduceSkew(p, driver.Engine.Builder, oracle); err != nil {
			log.Error("skew post-pass failed", err)
			return err
		}
	}

	reg.Observe(p.Timing)
	printSchedule(p, driver.DDG)
	return nil
}

func printSchedule(p *prog.Prog, d *ddg.Graph) {
	for _, s := range p.Stmts {
		fmt.Printf("stmt %d:\n", s.ID)
		for level, row := range s.Schedule {
			fmt.Printf("  h%d [%s] %v\n", level, p.HProps[level], row)
		}
	}
	for _, scc := range d.SCCs {
		fmt.Printf("scc %d: vertices=%v is_parallel=%v\n", scc.ID, scc.Vertices, scc.IsParallel)
	}
	fmt.Printf("coloured_dims=%d unsatisfied_deps=%d\n", p.ColouredDims, p.NumUnsatisfiedDeps())
}
