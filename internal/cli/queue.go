package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/trackshelf/internal/errmsg"
	"github.com/llehouerou/trackshelf/internal/icons"
	"github.com/llehouerou/trackshelf/internal/queue"
	"github.com/llehouerou/trackshelf/internal/stderr"
	"github.com/llehouerou/trackshelf/internal/track"
	"github.com/llehouerou/trackshelf/internal/ui/queueview"
	"github.com/llehouerou/trackshelf/internal/ui/render"
)

func (a *Application) createQueueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Control the playback queue",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "library",
		Short: "Queue the whole library, resuming a saved library queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.QueueFromLibrary(); err != nil {
				return fail(errmsg.OpQueueLoad, err)
			}
			a.printQueueSummary(cmd.OutOrStdout())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "playlist <name>",
		Short: "Queue a playlist, resuming a saved queue of the same playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.QueueFromPlaylist(args[0]); err != nil {
				return failWith(errmsg.OpQueueLoad, args[0], err)
			}
			a.printQueueSummary(cmd.OutOrStdout())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <title> <artist>",
		Short: "Append a library track to the queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.session.QueueTrack(args[0], args[1])
			if err != nil {
				return fail(errmsg.OpQueueAdd, err)
			}
			printf(cmd.OutOrStdout(), "Queued: %s\n", t)
			return nil
		},
	})
	cmd.AddCommand(a.createQueueShowCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Show recently played tracks, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.printHistory(cmd.OutOrStdout())
			return nil
		},
	})
	cmd.AddCommand(a.transportCommand("play", "Start playback", func() (bool, error) {
		return a.session.Play()
	}, "Queue is empty"))
	cmd.AddCommand(a.transportCommand("pause", "Pause playback", func() (bool, error) {
		return a.session.Pause()
	}, "Not playing"))
	cmd.AddCommand(a.transportCommand("next", "Skip to the next track", func() (bool, error) {
		return a.session.Next()
	}, "End of queue"))
	cmd.AddCommand(a.transportCommand("prev", "Go back to the previous track", func() (bool, error) {
		return a.session.Previous()
	}, "No previous track"))
	cmd.AddCommand(a.modeCommand("shuffle", "Turn shuffle on or off", func(on bool) error {
		return a.session.SetShuffle(on)
	}))
	cmd.AddCommand(a.modeCommand("repeat", "Turn repeat on or off", func(on bool) error {
		return a.session.SetRepeat(on)
	}))
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the queue and its history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.ClearQueue(); err != nil {
				return fail(errmsg.OpQueueSave, err)
			}
			printLine(cmd.OutOrStdout(), "Queue cleared")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "ui",
		Short: "Open the interactive queue screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runQueueScreen()
		},
	})
	return cmd
}

// runQueueScreen runs the interactive screen with stderr captured, so log
// lines land in its status line.
func (a *Application) runQueueScreen() error {
	a.session.DeferSaves()
	view := queueview.New(a.session)
	capture, err := stderr.Start()
	if err != nil {
		a.log.Warn("Stderr capture unavailable", zap.Error(err))
	} else {
		defer capture.Stop()
		view = view.WithLogLines(capture.Lines())
	}
	_, err = tea.NewProgram(view, tea.WithAltScreen()).Run()
	return err
}

// transportCommand builds a command running op. refused is printed when op
// changes nothing.
func (a *Application) transportCommand(use, short string, op func() (bool, error), refused string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ok, err := op()
			if err != nil {
				return fail(errmsg.OpQueueSave, err)
			}
			out := cmd.OutOrStdout()
			if !ok {
				printLine(out, refused)
			}
			a.printNowPlaying(out)
			return nil
		},
	}
}

// modeCommand builds "shuffle on|off" style commands.
func (a *Application) modeCommand(use, short string, set func(on bool) error) *cobra.Command {
	return &cobra.Command{
		Use:       use + " on|off",
		Short:     short,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := set(args[0] == "on"); err != nil {
				return fail(errmsg.OpQueueSave, err)
			}
			printf(cmd.OutOrStdout(), "%s %s\n", strings.ToUpper(use[:1])+use[1:], args[0])
			return nil
		},
	}
}

func (a *Application) createQueueShowCommand() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current track and one page of upcoming tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.showQueue(cmd.OutOrStdout(), page)
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page of upcoming tracks")
	return cmd
}

func (a *Application) showQueue(out io.Writer, page int) {
	q := a.session.Queue()
	a.printQueueSummary(out)
	if q.IsEmpty() {
		return
	}
	_, pages := a.session.Upcoming(1)
	page = min(max(page, 1), pages)
	upcoming, _ := a.session.Upcoming(page)
	if len(upcoming) == 0 {
		printLine(out, "Nothing up next")
		return
	}
	printf(out, "Up next (page %d/%d):\n", page, pages)
	first := (page-1)*a.cfg.PageSize + 1
	printLine(out, render.TrackTable(upcoming, tableWidth, first))
}

func (a *Application) printQueueSummary(out io.Writer) {
	q := a.session.Queue()
	modes := icons.Modes(q.Shuffle(), q.Repeat())
	if modes != "" {
		modes = "  " + modes
	}
	printf(out, "%s: %s, %s left%s\n",
		sourceName(q.Source()),
		pluralTracks(q.Len()),
		track.FormatDuration(q.RemainingDuration()),
		modes)
	a.printNowPlaying(out)
}

func (a *Application) printNowPlaying(out io.Writer) {
	q := a.session.Queue()
	t, ok := q.Current()
	if !ok {
		printLine(out, "Queue is empty")
		return
	}
	printf(out, "%s %s [%d/%d]\n", icons.PlayState(q.Playing()), t, q.CurrentIndex()+1, q.Len())
}

func (a *Application) printHistory(out io.Writer) {
	entries := a.session.Queue().History().Entries()
	if len(entries) == 0 {
		printLine(out, "No history")
		return
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		printf(out, "%s  %s\n", render.Pad(fmt.Sprintf("#%s", humanize.Comma(int64(e.Seq))), 7), e.Track)
	}
}

func sourceName(src queue.Source) string {
	if name, ok := src.Playlist(); ok {
		return icons.FormatPlaylist(name)
	}
	return icons.FormatLibrary("Library")
}
