// tickrun is a terminal tick-loop runtime: a player moves on a grid of
// obstacles, collisions score, and the key=value config reloads live.
//
// Usage:
//
//	tickrun run              - Headless run: frames and audio notices on stdout
//	tickrun play             - Interactive run in a Bubble Tea UI
//	tickrun validate [path]  - Check a config file
//	tickrun config show      - Print the resolved config as YAML
//	tickrun config init      - Write a starter config.toml
//	tickrun scores           - Show the high score and run history
//
// Global flags:
//
//	--config <path>     - Base config file (default: config.toml)
//	--locale-dir <dir>  - Directory of strings_<lang>.txt (default: config dir)
//	--highscore <path>  - High score file (default: highscore.txt)
//	--db <path>         - SQLite database for high score and run history
//	--fps <rate>        - Tick rate (default: 60)
//	--ticks <n>         - Tick bound for run (default: 300)
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	flagConfig    string
	flagLocaleDir string
	flagHighScore string
	flagDBPath    string
	flagFPS       int
	flagTicks     int
	flagLogLevel  string
	flagLogFile   string
	flagBeep      bool
	flagAudioLog  string
)

func main() {
	os.Exit(execute())
}

// execute runs the root command. Panics are reported like errors.
func execute() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Error: unexpected failure: %v\n", r)
			code = 1
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if !errors.As(err, &exit) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// exitError ends the process with status 1 after the command has already
// reported the problem itself.
type exitError struct{ err error }

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error  { return e.err }

var rootCmd = &cobra.Command{
	Use:   "tickrun",
	Short: "tickrun - a tick-loop runtime with live config reload",
	Long: `tickrun drives a small world: a player on a grid of obstacles.
Every collision scores, the best score survives between runs, and
edits to the config file are picked up while the loop is running.

Available commands:
  run       - Headless run (frames on stdout)
  play      - Interactive run
  validate  - Check a config file
  config    - Show or create the config
  scores    - High score and run history

Examples:
  tickrun config init
  tickrun run --ticks 600
  tickrun play --db ~/.tickrun/scores.db
  tickrun scores --db ~/.tickrun/scores.db`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "config.toml", "Path to the base config file")
	pf.StringVar(&flagLocaleDir, "locale-dir", "", "Directory of strings_<lang>.txt files (default: config directory)")
	pf.StringVar(&flagHighScore, "highscore", "highscore.txt", "Path to the high score file")
	pf.StringVar(&flagDBPath, "db", "", "Path to a scores database (replaces the high score file)")
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.IntVar(&flagTicks, "ticks", 300, "Number of ticks before the run ends")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	pf.BoolVar(&flagBeep, "beep", false, "Play audio notices as tones on the speaker")
	pf.StringVar(&flagAudioLog, "audio-log", "", "Write audio notices to this file instead of stdout")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(scoresCmd)
}
