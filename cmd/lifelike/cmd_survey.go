package main

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"lifelike/internal/config"
	"lifelike/internal/sims/lifelike"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type surveyResult struct {
	seed       int64
	reseeds    int
	population int
	peak       int
	generation int
}

func newSurveyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Run many seeds in parallel and compare how often they settle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			runs, _ := cmd.Flags().GetInt("runs")
			steps, _ := cmd.Flags().GetInt("steps")
			workers, _ := cmd.Flags().GetInt("workers")
			top, _ := cmd.Flags().GetInt("top")
			if runs <= 0 || steps <= 0 {
				return fmt.Errorf("runs and steps must be positive")
			}

			logger := newLogger(cmd, cfg)
			logger.Info("starting survey", "runs", runs, "steps", steps, "workers", workers,
				"rule", cfg.Lifelike().Rule, "first_seed", cfg.Sim.Seed)

			start := time.Now()
			results, err := survey(cmd.Context(), cfg, runs, steps, workers)
			if err != nil {
				return err
			}
			sort.SliceStable(results, func(i, j int) bool {
				if results[i].reseeds != results[j].reseeds {
					return results[i].reseeds > results[j].reseeds
				}
				return results[i].seed < results[j].seed
			})
			logger.Info("survey finished", "elapsed", time.Since(start).Round(time.Millisecond))

			if top > 0 && top < len(results) {
				results = results[:top]
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SEED\tRESEEDS\tGENERATION\tPOPULATION\tPEAK")
			for _, r := range results {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\n", r.seed, r.reseeds, r.generation, r.population, r.peak)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int("runs", 16, "Number of independent runs (consecutive seeds)")
	cmd.Flags().Int("steps", 1000, "Steps per run")
	cmd.Flags().Int("workers", runtime.NumCPU(), "Number of parallel runs")
	cmd.Flags().Int("top", 0, "Only print the first N rows (0 prints all)")
	return cmd
}

// survey runs independent simulators for seeds cfg.Sim.Seed+i. Each run owns
// its simulator, so runs share nothing.
func survey(ctx context.Context, cfg *config.Config, runs, steps, workers int) ([]surveyResult, error) {
	results := make([]surveyResult, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	base := cfg.Lifelike()
	for i := range runs {
		g.Go(func() error {
			simCfg := base
			simCfg.Seed = base.Seed + int64(i)
			sim := lifelike.NewWithConfig(simCfg)
			res := surveyResult{seed: simCfg.Seed, peak: sim.Population()}
			for step := 1; step <= steps; step++ {
				if step%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				sim.Step()
				res.peak = max(res.peak, sim.Population())
			}
			res.reseeds = sim.Reseeds()
			res.population = sim.Population()
			res.generation = sim.Generation()
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
