package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/mandelterm/engine"
	"github.com/lixenwraith/mandelterm/input"
	"github.com/lixenwraith/mandelterm/render"
)

// renderCmd draws a single frame without a terminal and writes it to stdout
func renderCmd(flags *Flags) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame as text to stdout",
		Example: `  mandelterm render --width 120 --height 40
  mandelterm render --center=-0.745,0.1 --span 0.05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width < 1 || height < 1 {
				return errors.Errorf("invalid size %dx%d", width, height)
			}
			cfg, _, err := loadConfig(cmd, *flags)
			if err != nil {
				return err
			}

			sink := render.NewMemorySink(width, height)
			explorer := engine.New(width, height, idle{}, sink, engineOptions(cfg))
			if err := explorer.Frame(); err != nil {
				return err
			}

			inside, outside := cfg.Glyphs()
			out := cmd.OutOrStdout()
			for _, line := range sink.Lines(inside, outside) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "Frame width in cells")
	cmd.Flags().IntVar(&height, "height", 24, "Frame height in cells")
	return cmd
}

// idle is an input source with no events
type idle struct{}

func (idle) Poll() (input.Event, bool) { return input.Event{}, false }
