package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tickrun/internal/config"
	"github.com/vovakirdan/tickrun/internal/platform/tui"
	"github.com/vovakirdan/tickrun/internal/storage"
)

var (
	flagProfile     string
	flagLimit       int
	flagInteractive bool
	flagClearScores bool
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and run history",
	Long: `Display the best score. With --db, also list the top runs of a
profile (default: the profile named in --config).

Examples:
  tickrun scores
  tickrun scores --db ~/.tickrun/scores.db
  tickrun scores --db ~/.tickrun/scores.db --profile hard --limit 20
  tickrun scores --db ~/.tickrun/scores.db --interactive`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagProfile, "profile", "", "Profile to show (default: from config)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to list")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse all profiles in a UI")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the history and best score of the profile")
}

func runScores(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagDBPath == "" {
		if flagInteractive || flagClearScores {
			return fmt.Errorf("--interactive and --clear need --db")
		}
		fs := storage.NewFileStore(flagHighScore)
		high, err := fs.LoadHighScore()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, headerStyle.Render("High Score"))
		fmt.Fprintf(out, "Best: %d (%s)\n", high, fs.Path())
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	profile := flagProfile
	if profile == "" {
		profile = config.Load(flagConfig).Profile
	}

	if flagClearScores {
		if err := store.ClearScores(profile); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s\n", displayProfile(profile))
		return nil
	}

	return printRuns(out, store, profile, flagLimit)
}

func printRuns(out io.Writer, store *storage.Store, profile string, limit int) error {
	scores, err := store.TopScores(profile, limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, headerStyle.Render("Runs - "+displayProfile(profile)))
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'tickrun run --db <path>' to record one.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(profile)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d  Runs: %d  Average: %.1f\n", stats.HighScore, stats.RunsCount, stats.AvgScore)
	return nil
}

func displayProfile(profile string) string {
	if profile == "" {
		return storage.DefaultProfile
	}
	return profile
}
