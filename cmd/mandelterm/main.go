package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/mandelterm/audio"
	"github.com/lixenwraith/mandelterm/config"
	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/engine"
	"github.com/lixenwraith/mandelterm/parameter"
	"github.com/lixenwraith/mandelterm/salvage"
	"github.com/lixenwraith/mandelterm/terminal"
)

// Flags holds the command line overrides
type Flags struct {
	Config   string
	Debug    bool
	Chunks   int
	Sound    bool
	NoStatus bool
	Center   string
	Span     float64
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "mandelterm [flags]",
		Short: "Explore the Mandelbrot set in the terminal",
		Long: `mandelterm renders the Mandelbrot set as text and lets you pan and zoom
with the keyboard. Cells already computed are reused across pans and zooms.`,
		Example: `  # Start at the default view
  mandelterm

  # Start on the seahorse valley with sound
  mandelterm --center=-0.745,0.1 --span 0.05 --sound

  # Log to logs/mandelterm.log
  mandelterm --debug`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Config, "config", "", "Path to config file (default $XDG_CONFIG_HOME/"+config.DefaultFile+")")
	pf.IntVar(&flags.Chunks, "chunks", parameter.RenderChunks, "Render worker partitions per frame")
	pf.StringVar(&flags.Center, "center", "", "Initial center as re,im")
	pf.Float64Var(&flags.Span, "span", parameter.DefaultSpan, "Initial plane width across the screen")

	cmd.Flags().BoolVarP(&flags.Debug, "debug", "d", false, "Enable debug logging to "+logDir+"/"+logFileName)
	cmd.Flags().BoolVar(&flags.Sound, "sound", false, "Enable audio cues")
	cmd.Flags().BoolVar(&flags.NoStatus, "no-status", false, "Hide the status box")

	cmd.AddCommand(keysCmd(&flags))
	cmd.AddCommand(renderCmd(&flags))
	return cmd
}

// loadConfig reads the config file and applies flags the user set explicitly
func loadConfig(cmd *cobra.Command, flags Flags) (*config.Config, string, error) {
	cfg, path, err := config.Find(flags.Config)
	if err != nil {
		return nil, path, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("chunks") {
		cfg.Render.Chunks = flags.Chunks
	}
	if changed("sound") {
		cfg.Audio.Enabled = flags.Sound
	}
	if changed("no-status") {
		cfg.Display.Status = !flags.NoStatus
	}
	if changed("span") {
		cfg.View.Span = flags.Span
	}
	if changed("center") {
		c, err := parseCenter(flags.Center)
		if err != nil {
			return nil, path, err
		}
		cfg.View.CenterRe, cfg.View.CenterIm = real(c), imag(c)
	}

	if err := cfg.Validate(); err != nil {
		return nil, path, errors.Wrap(err, "flags")
	}
	return cfg, path, nil
}

// parseCenter reads "re,im"
func parseCenter(s string) (complex128, error) {
	re, im, ok := strings.Cut(s, ",")
	if !ok {
		return 0, errors.Errorf("center %q: expected re,im", s)
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(re), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "center %q", s)
	}
	i, err := strconv.ParseFloat(strings.TrimSpace(im), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "center %q", s)
	}
	return complex(r, i), nil
}

// engineOptions translates the config into loop options
func engineOptions(cfg *config.Config) engine.Options {
	return engine.Options{
		Center:       complex(cfg.View.CenterRe, cfg.View.CenterIm),
		Span:         cfg.View.Span,
		Aspect:       cfg.View.Aspect,
		Tolerance:    cfg.Zoom.Tolerance,
		Hood:         salvage.Square(cfg.Zoom.SalvageRadius),
		ZoomFactor:   cfg.Zoom.Factor,
		PanCellsX:    cfg.Pan.CellsX,
		PanCellsY:    cfg.Pan.CellsY,
		Budget:       cfg.Budget(),
		IterStep:     cfg.Iterations.Step,
		Chunks:       cfg.Render.Chunks,
		PollInterval: cfg.Render.PollInterval,
		MaxFailures:  cfg.Render.MaxFailures,
	}
}

// cuePlayer is the audio sink the loop plays into
type cuePlayer interface {
	Play(audio.Cue)
	Close()
}

// newCue opens the speaker when sound is enabled, falling back to silence
func newCue(cfg *config.Config, logger *slog.Logger) cuePlayer {
	if !cfg.Audio.Enabled {
		return audio.Silent{}
	}
	ac := audio.DefaultConfig()
	ac.Enabled = true
	ac.Volume = cfg.Audio.Volume
	player, err := audio.NewPlayer(ac)
	if err != nil {
		logger.Warn("audio unavailable", "error", err)
		return audio.Silent{}
	}
	return player
}

func run(ctx context.Context, cmd *cobra.Command, flags Flags) error {
	logger, logFile := setupLogging(flags.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, path, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	logger.Info("starting", "config", path, "chunks", cfg.Render.Chunks)

	keys, err := cfg.KeyTable()
	if err != nil {
		return err
	}
	inside, outside := cfg.Glyphs()

	screen, err := terminal.New(terminal.Options{Keys: keys, Inside: inside, Outside: outside})
	if err != nil {
		return err
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before printing the crash
	core.SetCrashTerminal(screen)
	defer core.SetCrashTerminal(nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("crashed", "panic", r)
			core.HandleCrash(r)
		}
	}()

	cue := newCue(cfg, logger)
	defer cue.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	options := []engine.Option{engine.WithCue(cue), engine.WithLogger(logger)}
	if cfg.Display.Status {
		options = append(options, engine.WithOverlay(screen))
	}
	opts := engineOptions(cfg)
	if flags.Debug {
		opts.StatsInterval = parameter.StatsLogInterval
	}

	width, height := screen.Size()
	explorer := engine.New(width, height, screen, screen, opts, options...)
	if err := explorer.Run(ctx); err != nil {
		logger.Error("session ended", "error", err)
		return err
	}
	logger.Info("exit", "frames", explorer.Registry().Snapshot().Frames)
	return nil
}
