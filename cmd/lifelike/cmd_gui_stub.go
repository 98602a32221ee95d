//go:build !ebiten

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Run the simulator in a window (requires the ebiten build tag)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("the GUI build of lifelike requires the ebiten build tag; " +
				"re-run with `go run -tags ebiten ./cmd/lifelike gui`")
		},
	}
}
