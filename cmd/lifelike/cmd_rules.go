package main

import (
	"fmt"
	"text/tabwriter"

	"lifelike/internal/sims/lifelike"

	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [rule]",
		Short: "List rule presets, or validate a rule string",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				rule, err := lifelike.ParseRule(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  birth %v  survival %v\n", rule, rule.Birth.Counts(), rule.Survival.Counts())
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PRESET\tRULE")
			for _, p := range lifelike.Presets {
				fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Rule)
			}
			return tw.Flush()
		},
	}
}
