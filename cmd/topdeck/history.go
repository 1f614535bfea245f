package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/topdeck/internal/platform/tui"
	"github.com/vovakirdan/topdeck/internal/storage"
)

var (
	flagHistoryPlain  bool
	flagHistoryLimit  int
	flagHistoryDelete bool
)

var historyCmd = &cobra.Command{
	Use:   "history [session]",
	Short: "Browse stored sessions and waves",
	Long: `Show the sessions stored in the database and the waves played in them.

On a terminal this opens an interactive browser; with --plain or when the
output is piped, the most recent sessions are printed instead, followed by
the waves of the given session (or the newest one).

Sessions may be named by a unique id prefix.

Examples:
  topdeck history
  topdeck history 3f2a --plain
  topdeck history 3f2a --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print instead of opening the browser")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to list")
	historyCmd.Flags().BoolVar(&flagHistoryDelete, "delete", false, "Delete the given session")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	focus := ""
	if len(args) == 1 {
		rec, err := store.Session(args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no session matches %q", args[0])
		}
		focus = rec.ID
	}

	if flagHistoryDelete {
		if focus == "" {
			return fmt.Errorf("--delete needs a session")
		}
		if err := store.DeleteSession(focus); err != nil {
			return err
		}
		fmt.Printf("Deleted session %s\n", focus)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagHistoryPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, focus, width, height)
	}
	return printHistory(store, focus)
}

func printHistory(store *storage.Store, focus string) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if stats.Sessions == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'topdeck play' or 'topdeck simulate' to start one.")
		return nil
	}

	fmt.Printf("%d sessions, %d waves, highest wave %d, avg health lost %.0f%%, avg combat %.1fs\n",
		stats.Sessions, stats.Waves, stats.HighestWave, stats.AvgHealthLoss*100, stats.AvgDuration)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	sessions, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Session\tSource\tPreset\tNext\tDef\tTower\tMoney\tUpdated")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			s.ID, s.Source, s.Preset, s.NextWave, s.DefenderLevel, s.TowerLevel, s.Money,
			s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if focus == "" && len(sessions) > 0 {
		focus = sessions[0].ID
	}
	if focus == "" {
		return nil
	}

	waves, err := store.WaveRecords(focus)
	if err != nil {
		return err
	}
	fmt.Printf("\nWaves of %s\n\n", focus)
	if len(waves) == 0 {
		fmt.Println("  none")
		return nil
	}

	tw = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Wave\tPattern\tScore\tDelay\tEnemies\tElite/Boss\tHP lost\tTime\tKills")
	for _, row := range tui.WaveRows(waves) {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
