package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/trackshelf/internal/errmsg"
	"github.com/llehouerou/trackshelf/internal/icons"
	"github.com/llehouerou/trackshelf/internal/tags"
	"github.com/llehouerou/trackshelf/internal/track"
	"github.com/llehouerou/trackshelf/internal/ui/render"
)

func (a *Application) createLibraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the track library",
	}
	cmd.AddCommand(a.createLibraryAddCommand())
	cmd.AddCommand(a.createLibraryImportCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every track in title order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.listLibrary(cmd)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "search <title> [artist]",
		Short: "Find a track by title, and artist when given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			artist := ""
			if len(args) == 2 {
				artist = args[1]
			}
			a.searchLibrary(cmd, args[0], artist)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "dupes <title>",
		Short: "List every track sharing a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.listDuplicates(cmd, args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <title> <artist>",
		Short: "Remove a track from the library and from every playlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.removeTrack(cmd, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "total",
		Short: "Show the total duration of the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.session
			printf(cmd.OutOrStdout(), "%s (%s tracks)\n", s.TotalDuration(), humanize.Comma(int64(s.LibraryLen())))
			return nil
		},
	})
	return cmd
}

func (a *Application) createLibraryAddCommand() *cobra.Command {
	var with []string
	cmd := &cobra.Command{
		Use:   "add <title> <artist> <album> <MM:SS>",
		Short: "Add a track to the library",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := track.New(args[0], args[1], args[2], args[3], with...)
			if err != nil {
				return fail(errmsg.OpLibraryAdd, err)
			}
			added, err := a.session.AddTrack(t)
			if err != nil {
				return fail(errmsg.OpLibraryAdd, err)
			}
			if !added {
				printf(cmd.OutOrStdout(), "Already in library: %s - %s\n", t.Title, t.Artist)
				return nil
			}
			printf(cmd.OutOrStdout(), "Added: %s\n", t)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&with, "with", nil, "additional artist (repeatable)")
	return cmd
}

func (a *Application) createLibraryImportCommand() *cobra.Command {
	var duration string
	cmd := &cobra.Command{
		Use:   "import <file or directory>...",
		Short: "Add tracks from the tags of music files",
		Long: `Reads title, artist and album from the tags of each music file, and the
duration from its stream headers. Directories are walked recursively.
--duration overrides the duration of every imported file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.importFiles(cmd, args, duration)
		},
	}
	cmd.Flags().StringVar(&duration, "duration", "", "duration to use for every file (MM:SS)")
	return cmd
}

type importStats struct {
	files, added, duplicates, failed int
}

func (a *Application) importFiles(cmd *cobra.Command, paths []string, duration string) error {
	var override *time.Duration
	if duration != "" {
		d, err := track.ParseDuration(duration)
		if err != nil {
			return fail(errmsg.OpImportFile, err)
		}
		override = &d
	}

	files, err := collectMusicFiles(paths)
	if err != nil {
		return fail(errmsg.OpImportFile, err)
	}

	out := cmd.OutOrStdout()
	var stats importStats
	for _, path := range files {
		stats.files++
		t, err := readTrack(path, override)
		if err != nil {
			stats.failed++
			a.log.Warn("Import failed", zap.String("path", path), zap.Error(err))
			printLine(out, errmsg.FormatWith(errmsg.OpImportFile, path, err))
			continue
		}
		added, err := a.session.AddTrack(t)
		switch {
		case err != nil:
			stats.failed++
			printLine(out, errmsg.FormatWith(errmsg.OpLibraryAdd, path, err))
		case added:
			stats.added++
			printf(out, "Added: %s\n", icons.FormatTrack(t.String()))
		default:
			stats.duplicates++
			printf(out, "Already in library: %s - %s\n", t.Title, t.Artist)
		}
	}

	printf(out, "Imported %s of %s (%s already present, %s failed)\n",
		humanize.Comma(int64(stats.added)),
		pluralFiles(stats.files),
		humanize.Comma(int64(stats.duplicates)),
		humanize.Comma(int64(stats.failed)))
	if stats.files > 0 && stats.failed == stats.files {
		return errors.New("no file could be imported")
	}
	return nil
}

// readTrack builds a track from the tags of path. The duration comes from
// override when set, otherwise from the stream headers.
func readTrack(path string, override *time.Duration) (track.Track, error) {
	tag, err := tags.Read(path)
	if err != nil {
		return track.Track{}, fmt.Errorf("%s: %w", errmsg.OpImportTags, err)
	}
	if override != nil {
		return tag.Track(*override)
	}
	d, err := tags.ReadDuration(path)
	if err != nil {
		return track.Track{}, err
	}
	return tag.Track(d)
}

// collectMusicFiles expands directories into the music files they contain,
// in lexical order. Files named explicitly are kept whatever their extension.
func collectMusicFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && tags.IsMusicFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return humanize.Comma(int64(n)) + " files"
}

func (a *Application) listLibrary(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	tracks := a.session.SortedTracks()
	if len(tracks) == 0 {
		printLine(out, "Library is empty. Add tracks with 'trackshelf library add' or 'library import'.")
		return
	}
	printLine(out, render.TrackTable(tracks, tableWidth, 1))
	printf(out, "%s tracks, %s\n", humanize.Comma(int64(len(tracks))), a.session.TotalDuration())
}

func (a *Application) searchLibrary(cmd *cobra.Command, title, artist string) {
	out := cmd.OutOrStdout()
	t, ok := a.session.SearchTrack(title, artist)
	if !ok {
		printf(out, "No track matches %q\n", title)
		return
	}
	printLine(out, render.TrackTable([]track.Track{t}, tableWidth, 0))
}

func (a *Application) listDuplicates(cmd *cobra.Command, title string) {
	out := cmd.OutOrStdout()
	tracks := a.session.Duplicates(title)
	if len(tracks) == 0 {
		printf(out, "No track titled %q\n", title)
		return
	}
	printLine(out, render.TrackTable(tracks, tableWidth, 1))
}

func (a *Application) removeTrack(cmd *cobra.Command, title, artist string) error {
	out := cmd.OutOrStdout()
	report, err := a.session.RemoveTrack(title, artist)
	if err != nil {
		return fail(errmsg.OpLibraryDelete, err)
	}
	printf(out, "Removed: %s\n", report.Track)
	if report.SweepErr != nil {
		printLine(out, errmsg.Format(errmsg.OpLibrarySweep, report.SweepErr))
		return nil
	}
	if report.PlaylistEntries > 0 {
		printf(out, "Also removed from %s\n", pluralEntries(report.PlaylistEntries))
	}
	return nil
}

func pluralEntries(n int) string {
	if n == 1 {
		return "1 playlist entry"
	}
	return humanize.Comma(int64(n)) + " playlist entries"
}
