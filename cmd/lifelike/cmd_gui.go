//go:build ebiten

package main

import (
	"errors"

	"lifelike/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Run the simulator in a window",
		Long: `Run the simulator in a resizable window with a parameter panel.

Keys match the terminal shell; u cycles the rule presets, g toggles grid
lines and +/- change the cell size (with shift: the speed).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg)
			slots, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer slots.Close()

			ed := newEditor(cfg, slots, logger)
			game := app.New(ed, app.Options{CellSize: cfg.Display.CellSize, HUDWidth: cfg.Display.HUDWidth})
			w, h := game.WindowSize()

			ebiten.SetWindowTitle("lifelike: " + ed.Sim().Rule().String())
			ebiten.SetWindowSize(w*cfg.Display.Scale, h*cfg.Display.Scale)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetTPS(60)

			logger.Info("starting window", "w", w, "h", h, "rule", ed.Sim().Rule().String())
			if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}
}
