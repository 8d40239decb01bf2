package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tickrun/internal/audio"
	"github.com/vovakirdan/tickrun/internal/config"
	"github.com/vovakirdan/tickrun/internal/storage"
)

// closers collects resources opened while wiring a run.
type closers []func()

func (c *closers) add(f func()) { *c = append(*c, f) }

func (c closers) close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// newLogger builds the process logger. console is used unless --log-file is set.
func newLogger(console io.Writer, cl *closers) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := console
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		cl.add(func() { f.Close() })
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tickrun",
	})
	logger.SetLevel(level)
	return logger, nil
}

// newSink builds the audio sink: console lines to out (or --audio-log), plus
// speaker tones with --beep.
func newSink(out io.Writer, logger *log.Logger, cl *closers) (audio.Sink, error) {
	var sinks audio.MultiSink

	switch {
	case flagAudioLog != "":
		f, err := os.OpenFile(flagAudioLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open audio log: %w", err)
		}
		cl.add(func() { f.Close() })
		sinks = append(sinks, audio.NewConsoleSink(f))
	case out != nil:
		sinks = append(sinks, audio.NewConsoleSink(out))
	}

	if flagBeep {
		tone := audio.NewToneSink(logger)
		// Init logs its own failure; the run continues without tones.
		if err := tone.Init(); err == nil {
			cl.add(tone.Close)
			sinks = append(sinks, tone)
		}
	}

	if len(sinks) == 0 {
		return audio.Discard, nil
	}
	return sinks, nil
}

// newScores picks the high score backend: the database when --db is set,
// otherwise the plain file.
func newScores(logger *log.Logger, cl *closers) (storage.HighScoreStore, error) {
	if flagDBPath == "" {
		return storage.NewFileStore(flagHighScore), nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	cl.add(func() { store.Close() })

	profile := config.Load(flagConfig).Profile
	logger.Debug("using scores database", "path", flagDBPath, "profile", profile)
	return store.Board(profile), nil
}

func localeDir() string {
	if flagLocaleDir != "" {
		return flagLocaleDir
	}
	return filepath.Dir(flagConfig)
}
