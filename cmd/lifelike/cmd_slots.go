package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"lifelike/internal/sims/lifelike"
	"lifelike/internal/store"

	"github.com/spf13/cobra"
)

func newSlotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Inspect the stored selection slots",
	}
	cmd.AddCommand(newSlotsListCmd(), newSlotsShowCmd(), newSlotsDeleteCmd())
	return cmd
}

// withStore loads the configuration, opens the slot store and runs fn.
func withStore(cmd *cobra.Command, fn func(s store.SlotStore) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func parseSlot(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", store.ErrInvalidSlot, arg)
	}
	return n, store.ValidateIndex(n)
}

func decodeSlot(slot store.Slot) (lifelike.Selection, error) {
	var sel lifelike.Selection
	if err := json.Unmarshal(slot.Data, &sel); err != nil {
		return sel, fmt.Errorf("slot %d: %w", slot.Index, err)
	}
	return sel, nil
}

func newSlotsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List occupied slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(s store.SlotStore) error {
				slots, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(slots) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No slots stored.")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "SLOT\tSIZE\tLIVE\tUPDATED")
				for _, slot := range slots {
					sel, err := decodeSlot(slot)
					if err != nil {
						fmt.Fprintf(tw, "%d\t?\t?\t%s\n", slot.Index, slot.UpdatedAt.Format(time.DateTime))
						continue
					}
					fmt.Fprintf(tw, "%d\t%dx%d\t%d\t%s\n", slot.Index, sel.W, sel.H, len(sel.Offsets), slot.UpdatedAt.Format(time.DateTime))
				}
				return tw.Flush()
			})
		},
	}
}

func newSlotsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <slot>",
		Short: "Print a slot as a picture, or as stored JSON with --raw",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetBool("raw")
			return withStore(cmd, func(s store.SlotStore) error {
				slot, err := s.Get(cmd.Context(), n)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if raw {
					fmt.Fprintln(out, string(slot.Data))
					return nil
				}
				sel, err := decodeSlot(slot)
				if err != nil {
					return err
				}
				fmt.Fprint(out, renderSelection(sel))
				return nil
			})
		},
	}
	cmd.Flags().Bool("raw", false, "Print the stored JSON")
	return cmd
}

func newSlotsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Empty a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, func(s store.SlotStore) error {
				if err := s.Delete(cmd.Context(), n); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted slot %d\n", n)
				return nil
			})
		},
	}
}

// renderSelection draws sel with '#' for live and '.' for dead cells.
func renderSelection(sel lifelike.Selection) string {
	rows := make([][]byte, sel.H)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", sel.W))
	}
	for _, p := range sel.Offsets {
		rows[p.Y][p.X] = '#'
	}
	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
