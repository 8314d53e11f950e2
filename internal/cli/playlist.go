package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/trackshelf/internal/errmsg"
	"github.com/llehouerou/trackshelf/internal/icons"
	"github.com/llehouerou/trackshelf/internal/track"
	"github.com/llehouerou/trackshelf/internal/ui/render"
)

func (a *Application) createPlaylistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Manage playlists",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session.Playlists().Create(args[0]); err != nil {
				return failWith(errmsg.OpPlaylistCreate, args[0], err)
			}
			printf(cmd.OutOrStdout(), "Created playlist %s\n", icons.FormatPlaylist(args[0]))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Playlists().Delete(args[0]); err != nil {
				return failWith(errmsg.OpPlaylistDelete, args[0], err)
			}
			printf(cmd.OutOrStdout(), "Deleted playlist %s\n", args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a playlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Playlists().Rename(args[0], args[1]); err != nil {
				return failWith(errmsg.OpPlaylistRename, args[0], err)
			}
			printf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], args[1])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List playlists with their size and last use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listPlaylists(cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show the tracks of a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showPlaylist(cmd, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <title> <artist>",
		Short: "Append a library track to a playlist",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := a.session.AddToPlaylist(args[0], args[1], args[2])
			if err != nil {
				return failWith(errmsg.OpPlaylistAddTrack, args[0], err)
			}
			if !added {
				printf(cmd.OutOrStdout(), "Already in %s: %s - %s\n", args[0], args[1], args[2])
				return nil
			}
			printf(cmd.OutOrStdout(), "Added %s - %s to %s\n", args[1], args[2], args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name> <position>",
		Short: "Remove the track at a position (1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return failWith(errmsg.OpPlaylistRemove, args[0], err)
			}
			if err := a.session.Playlists().RemoveAt(args[0], pos-1); err != nil {
				return failWith(errmsg.OpPlaylistRemove, args[0], err)
			}
			printf(cmd.OutOrStdout(), "Removed position %d from %s\n", pos, args[0])
			return nil
		},
	})
	cmd.AddCommand(a.createPlaylistMoveCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "export <name> [file]",
		Short: "Write a playlist file (stdout when no file is given)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 2 {
				file = args[1]
			}
			return a.exportPlaylist(cmd, args[0], file)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Create a playlist from a playlist file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.importPlaylist(cmd, args[0])
		},
	})
	return cmd
}

func (a *Application) createPlaylistMoveCommand() *cobra.Command {
	var delta int
	cmd := &cobra.Command{
		Use:   "move <name> <position>... --by <delta>",
		Short: "Move tracks up (negative delta) or down",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			positions := make([]int, 0, len(args)-1)
			for _, arg := range args[1:] {
				pos, err := parsePosition(arg)
				if err != nil {
					return failWith(errmsg.OpPlaylistMove, args[0], err)
				}
				positions = append(positions, pos-1)
			}
			before := slices.Clone(positions)
			moved, err := a.session.Playlists().Move(args[0], positions, delta)
			if err != nil {
				return failWith(errmsg.OpPlaylistMove, args[0], err)
			}
			if slices.Equal(moved, before) {
				printLine(cmd.OutOrStdout(), "Nothing moved")
				return nil
			}
			for i := range moved {
				moved[i]++
			}
			printf(cmd.OutOrStdout(), "Moved to %v\n", moved)
			return nil
		},
	}
	cmd.Flags().IntVar(&delta, "by", 1, "number of positions to move (negative moves up)")
	return cmd
}

func parsePosition(s string) (int, error) {
	pos, err := strconv.Atoi(s)
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return pos, nil
}

func (a *Application) listPlaylists(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	summaries, err := a.session.Playlists().List()
	if err != nil {
		return fail(errmsg.OpPlaylistList, err)
	}
	if len(summaries) == 0 {
		printLine(out, "No playlists. Create one with 'trackshelf playlist create <name>'.")
		return nil
	}
	for _, s := range summaries {
		lastUsed := "never used"
		if s.Used() {
			lastUsed = "used " + humanize.Time(s.LastUsed())
		}
		left := icons.FormatPlaylist(s.Name)
		right := fmt.Sprintf("%s  %s  %s", pluralTracks(s.TrackCount), track.FormatDuration(s.TotalDuration), lastUsed)
		printLine(out, render.Row(render.Truncate(left, tableWidth/2), right, tableWidth))
	}
	return nil
}

func pluralTracks(n int) string {
	if n == 1 {
		return "1 track"
	}
	return humanize.Comma(int64(n)) + " tracks"
}

func (a *Application) showPlaylist(cmd *cobra.Command, name string) error {
	out := cmd.OutOrStdout()
	tracks, err := a.session.Playlists().Tracks(name)
	if err != nil {
		return failWith(errmsg.OpPlaylistShow, name, err)
	}
	rec := track.NewPlaylistRecord(name, tracks)
	printf(out, "%s (%s, %s)\n", icons.FormatPlaylist(name), pluralTracks(len(tracks)), rec.TotalDuration)
	if len(tracks) == 0 {
		return nil
	}
	printLine(out, render.TrackTable(tracks, tableWidth, 1))
	return nil
}

func (a *Application) exportPlaylist(cmd *cobra.Command, name, file string) error {
	rec, err := a.session.Playlists().Export(name)
	if err != nil {
		return failWith(errmsg.OpPlaylistExport, name, err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return failWith(errmsg.OpPlaylistExport, name, err)
	}
	data = append(data, '\n')
	if file == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return failWith(errmsg.OpPlaylistExport, name, err)
	}
	printf(cmd.OutOrStdout(), "Exported %s (%s) to %s\n", name, pluralTracks(len(rec.Tracks)), file)
	return nil
}

func (a *Application) importPlaylist(cmd *cobra.Command, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return failWith(errmsg.OpPlaylistImport, file, err)
	}
	var rec track.PlaylistRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return failWith(errmsg.OpPlaylistImport, file, err)
	}
	n, err := a.session.Playlists().Import(rec)
	if err != nil {
		return failWith(errmsg.OpPlaylistImport, file, err)
	}
	printf(cmd.OutOrStdout(), "Imported playlist %s (%s)\n", rec.Name, pluralTracks(n))
	return nil
}
