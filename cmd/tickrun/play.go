package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tickrun/internal/engine"
	"github.com/vovakirdan/tickrun/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Run the tick loop in a full-screen terminal UI.

Controls:
  W/A/S/D or arrows  - Move
  P/Esc              - Pause/resume
  Q/Ctrl+C           - Quit

The run only ends on Q unless --ticks is given explicitly. Logs and
audio notices are discarded unless --log-file or --audio-log is set.

Examples:
  tickrun play
  tickrun play --config ./worlds/config.toml --beep
  tickrun play --db ~/.tickrun/scores.db --log-file tickrun.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	var cl closers
	defer cl.close()

	// The UI owns the terminal; nothing else may write to it.
	logger, err := newLogger(io.Discard, &cl)
	if err != nil {
		return err
	}
	sink, err := newSink(nil, logger, &cl)
	if err != nil {
		return err
	}
	scores, err := newScores(logger, &cl)
	if err != nil {
		return err
	}

	ticks := -1
	if cmd.Flags().Changed("ticks") && flagTicks > 0 {
		ticks = flagTicks
	}

	e := engine.New(engine.Options{
		ConfigPath: flagConfig,
		LocaleDir:  localeDir(),
		Sink:       sink,
		Scores:     scores,
		Logger:     logger,
		MaxTicks:   ticks,
		TargetFPS:  flagFPS,
		Version:    version,
	})

	return tui.Run(e)
}
