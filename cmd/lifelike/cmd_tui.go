package main

import (
	"errors"
	"fmt"
	"os"

	"lifelike/internal/logging"
	"lifelike/internal/tui"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the simulator in the terminal",
		Long: `Run the simulator full-screen in the terminal. The grid fills the window
above a status line.

Keys:
  esc        pause / resume          s      single step
  arrows     move cursor             space  toggle cell
  v          start / end selection   p      paste selection at cursor
  0-9        load slot and paste     shift+0-9  store selection in slot
  n          new pattern             c      clear
  r          reap now                a      toggle auto reap
  u          edit rule               + / -  faster / slower
  q          quit
Left mouse sets cells, right mouse clears them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// The terminal belongs to the shell; logs go to a file or nowhere.
			logger := logging.Discard()
			if path, _ := cmd.Flags().GetString("log-file"); path != "" {
				f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				logger = logging.NewLogger(cfg.Logging.Level, f)
			}

			ctx := cmd.Context()
			slots, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer slots.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			ed := newEditor(cfg, slots, logger)
			logger.Info("starting terminal shell", "rule", ed.Sim().Rule().String(), "store", cfg.Store.Path)
			err = tui.New(screen, ed, logger).Run(ctx)
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().String("log-file", "", "Write logs to this file while the terminal is in use")
	return cmd
}
