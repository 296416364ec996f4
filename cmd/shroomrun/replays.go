package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shroom-run/internal/platform/tui"
	"github.com/vovakirdan/shroom-run/internal/replay"
	"github.com/vovakirdan/shroom-run/internal/storage"
)

var (
	flagListLimit int
	flagOut       string
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Manage recorded replays",
	Long: `List, inspect, verify, export and delete replays stored in the
replay database.

A replay holds the seed, tuning profile and input trace of a run. Verify
re-simulates it and compares the final state checksum.

Examples:
  shroomrun replays list
  shroomrun replays show 3
  shroomrun replays verify 3
  shroomrun replays export 3 --out run.yaml
  shroomrun replays verify --file run.yaml
  shroomrun replays delete 3
  shroomrun replays browse`,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent replays",
	Args:  cobra.NoArgs,
	Run:   runReplaysList,
}

var replaysShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a replay document as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysShow,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify [id]",
	Short: "Re-simulate a replay and check its checksum",
	Args:  cobra.MaximumNArgs(1),
	Run:   runReplaysVerify,
}

var replaysExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a replay document to a file",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysExport,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

var replaysBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and watch replays interactively",
	Args:  cobra.NoArgs,
	Run:   runReplaysBrowse,
}

var flagReplayFile string

func init() {
	replaysListCmd.Flags().IntVar(&flagListLimit, "limit", 20, "Maximum number of replays to list")
	replaysExportCmd.Flags().StringVar(&flagOut, "out", "", "Output file (required)")
	_ = replaysExportCmd.MarkFlagRequired("out")
	replaysVerifyCmd.Flags().StringVar(&flagReplayFile, "file", "", "Verify a replay document file instead of a stored replay")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysShowCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysExportCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
	replaysCmd.AddCommand(replaysBrowseCmd)
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr(fmt.Errorf("could not open replay database: %w", err))
	}
	return store
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		exitErr(fmt.Errorf("invalid replay id %q", arg))
	}
	return id
}

// loadStored fetches a replay or exits with a readable message.
func loadStored(store *storage.Store, id int64) *replay.Replay {
	r, err := store.Replay(id)
	if errors.Is(err, storage.ErrNotFound) {
		store.Close()
		exitErr(fmt.Errorf("no replay with id %d", id))
	}
	if err != nil {
		store.Close()
		exitErr(err)
	}
	return r
}

func runReplaysList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	entries, err := store.RecentReplays(flagListLimit)
	if err != nil {
		store.Close()
		exitErr(err)
	}

	fmt.Println("Replays")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Run 'shroomrun play --record <name>' to record one!")
		return
	}

	fmt.Printf("  %-5s  %-16s  %-8s  %-20s  %-7s  %s\n", "ID", "Name", "Ticks", "Seed", "Preset", "Date")
	fmt.Printf("  %-5s  %-16s  %-8s  %-20s  %-7s  %s\n", "--", "----", "-----", "----", "------", "----")
	for _, e := range entries {
		preset := e.Preset
		if preset == "" {
			preset = "-"
		}
		fmt.Printf("  %-5d  %-16s  %-8d  %-20d  %-7s  %s\n",
			e.ID, e.Name, e.Ticks, e.Seed, preset, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplaysShow(_ *cobra.Command, args []string) {
	id := parseID(args[0])
	store := openStore()
	defer store.Close()

	r := loadStored(store, id)
	if err := replay.Encode(os.Stdout, r); err != nil {
		store.Close()
		exitErr(err)
	}
}

func runReplaysVerify(_ *cobra.Command, args []string) {
	var r *replay.Replay
	switch {
	case flagReplayFile != "":
		f, err := os.Open(flagReplayFile)
		if err != nil {
			exitErr(err)
		}
		r, err = replay.Decode(f)
		f.Close()
		if err != nil {
			exitErr(err)
		}
	case len(args) == 1:
		store := openStore()
		r = loadStored(store, parseID(args[0]))
		store.Close()
	default:
		exitErr(fmt.Errorf("need a replay id or --file"))
	}

	snap, err := replay.Verify(r)
	if err != nil {
		exitErr(err)
	}
	fmt.Printf("OK  %s  ticks=%d score=%d level=%d status=%s\n",
		r.Checksum[:min(12, len(r.Checksum))], r.Ticks, snap.Score, snap.Level, snap.Status)
}

func runReplaysExport(_ *cobra.Command, args []string) {
	id := parseID(args[0])
	store := openStore()
	r := loadStored(store, id)
	store.Close()

	data, err := replay.Marshal(r)
	if err != nil {
		exitErr(err)
	}
	if err := os.WriteFile(flagOut, data, 0o644); err != nil {
		exitErr(err)
	}
	fmt.Printf("Exported replay #%d to %s\n", id, flagOut)
}

func runReplaysDelete(_ *cobra.Command, args []string) {
	id := parseID(args[0])
	store := openStore()
	defer store.Close()

	if err := store.DeleteReplay(id); err != nil {
		store.Close()
		if errors.Is(err, storage.ErrNotFound) {
			exitErr(fmt.Errorf("no replay with id %d", id))
		}
		exitErr(err)
	}
	fmt.Printf("Deleted replay #%d\n", id)
}

func runReplaysBrowse(_ *cobra.Command, _ []string) {
	logger, closeLog, err := sessionLogger()
	if err != nil {
		exitErr(err)
	}
	defer closeLog()

	store := openStore()
	defer store.Close()

	rt := runtimeConfig()
	browseReplays(store, rt.ScreenW, rt.ScreenH, logger)
}

// browseReplays runs the browser until the user leaves it, playing back
// each replay they pick. It returns false when the user asked to quit.
func browseReplays(store *storage.Store, width, height int, logger *log.Logger) bool {
	for {
		res, err := tui.RunBrowser(store, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		if res.PlayID == 0 {
			return res.Back
		}

		r, err := store.Replay(res.PlayID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		rt := runtimeConfig()
		if _, err := tui.Run(tui.Options{Runtime: rt, Replay: r, Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error playing replay: %v\n", err)
		}
	}
}
