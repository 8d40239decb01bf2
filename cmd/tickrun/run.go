package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tickrun/internal/engine"
	"github.com/vovakirdan/tickrun/internal/platform/console"
)

var flagClear bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run headless, printing frames to stdout",
	Long: `Run the tick loop without a UI. Every tick prints one frame followed
by the status line; audio notices are printed as [SND] lines.

When stdin is a terminal it is switched to raw mode, so keys act
immediately:
  W/A/S/D  - Move
  P        - Pause/resume
  Q        - Quit

The run ends after --ticks ticks, on Q, or on Ctrl+C.

Examples:
  tickrun run
  tickrun run --ticks 0 --config ./worlds/config.toml
  tickrun run --audio-log sounds.log --clear`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().BoolVar(&flagClear, "clear", false, "Clear the terminal before each frame")
}

func runHeadless(cmd *cobra.Command, _ []string) error {
	var cl closers
	defer cl.close()

	var out, errOut io.Writer = os.Stdout, os.Stderr

	var input engine.InputSource
	if console.IsTerminal(os.Stdin) {
		keys, err := console.OpenTerminal(os.Stdin)
		if err != nil {
			return err
		}
		//nolint:errcheck // Best-effort terminal restore
		cl.add(func() { keys.Close() })
		input = keys
		if console.IsTerminal(os.Stdout) {
			out = console.CRLFWriter{W: os.Stdout}
			errOut = console.CRLFWriter{W: os.Stderr}
		}
	}

	logger, err := newLogger(errOut, &cl)
	if err != nil {
		return err
	}
	sink, err := newSink(out, logger, &cl)
	if err != nil {
		return err
	}
	scores, err := newScores(logger, &cl)
	if err != nil {
		return err
	}

	renderer := console.NewRenderer(out)
	renderer.Clear = flagClear

	ticks := flagTicks
	if ticks <= 0 {
		ticks = -1
	}

	e := engine.New(engine.Options{
		ConfigPath: flagConfig,
		LocaleDir:  localeDir(),
		Sink:       sink,
		Renderer:   renderer,
		Input:      input,
		Scores:     scores,
		Sleep:      time.Sleep,
		Logger:     logger,
		MaxTicks:   ticks,
		TargetFPS:  flagFPS,
		Version:    version,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.Run(ctx)
	return nil
}
