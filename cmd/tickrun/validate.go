package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tickrun/internal/audio"
	"github.com/vovakirdan/tickrun/internal/config"
	"github.com/vovakirdan/tickrun/internal/locale"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a config file",
	Long: `Resolve a config file (with its profile overlay) and check that the
world it describes is playable. Exits with status 1 when it is not.

Examples:
  tickrun validate
  tickrun validate ./worlds/config.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if len(args) == 1 {
		path = args[0]
	}

	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "%s: not found, built-in defaults apply\n", path)
	}

	var notices audio.Recorder
	cfg := config.NewLoader(&notices, nil).Load(path)
	for _, c := range notices.Calls() {
		fmt.Fprintf(out, "notice: %s\n", c.Message)
	}

	if cfg.Profile != "" {
		overlay := config.OverlayPath(path, cfg.Profile)
		if _, err := os.Stat(overlay); err != nil {
			fmt.Fprintf(out, "profile %q: overlay %s missing\n", cfg.Profile, overlay)
		}
	}

	dir := flagLocaleDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	if _, err := os.Stat(filepath.Join(dir, locale.FileName(cfg.Lang))); err != nil {
		fmt.Fprintf(out, "lang %q: no %s, fallback strings apply\n", cfg.Lang, locale.FileName(cfg.Lang))
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		return exitError{err}
	}

	status := "ok"
	if notices.Count("config") > 0 {
		status = "ok, normalized"
	}
	fmt.Fprintf(out, "%s: %s (%dx%d, start %d,%d, %d obstacles)\n",
		path, status, cfg.Width, cfg.Height, cfg.StartX, cfg.StartY, len(cfg.Obstacles))
	return nil
}
