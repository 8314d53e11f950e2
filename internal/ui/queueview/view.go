package queueview

import (
	"fmt"
	"strings"

	"github.com/llehouerou/trackshelf/internal/icons"
	"github.com/llehouerou/trackshelf/internal/keymap"
	"github.com/llehouerou/trackshelf/internal/queue"
	"github.com/llehouerou/trackshelf/internal/track"
	"github.com/llehouerou/trackshelf/internal/ui"
	"github.com/llehouerou/trackshelf/internal/ui/render"
	"github.com/llehouerou/trackshelf/internal/ui/styles"
)

// indent is the width of the state icon column in front of track lines.
const indent = 4

// View implements tea.Model.
func (m Model) View() string {
	width := m.Width()
	if width == 0 {
		width = ui.DefaultWidth
	}
	inner := max(width, ui.MinWidth) - ui.BorderWidth
	s := styles.T().S()

	lines := []string{
		m.renderHeader(inner),
		s.Subtle.Render(render.Separator(inner)),
		m.renderCurrent(inner),
		s.Subtle.Render(render.Separator(inner)),
	}
	lines = append(lines, m.renderUpcoming(inner)...)
	lines = append(lines, s.Subtle.Render(render.Separator(inner)), m.renderFooter(inner))

	out := s.Panel.Width(inner).Render(strings.Join(lines, "\n"))
	if m.confirm.Active() {
		return out + "\n" + m.confirm.View()
	}
	if m.status != "" {
		style := s.Success
		if m.failed {
			style = s.Error
		}
		out += "\n" + style.Render(m.status)
	}
	return out + "\n" + m.help.View(m.keys)
}

func (m Model) renderHeader(width int) string {
	q := m.session.Queue()
	title := styles.T().Title("trackshelf") + "  " + sourceLabel(q.Source())
	right := fmt.Sprintf("(%d/%d)", q.CurrentIndex()+1, q.Len())
	if modes := icons.Modes(q.Shuffle(), q.Repeat()); modes != "" {
		right = modes + "  " + right
	}
	return render.Row(title, right, width)
}

func (m Model) renderCurrent(width int) string {
	s := styles.T().S()
	q := m.session.Queue()
	t, ok := q.Current()
	if !ok {
		hint := "Queue is empty"
		if keys := m.keys.KeysFor(keymap.ActionQueueLibrary); len(keys) > 0 {
			hint += ". Press " + keys[0] + " to queue the library"
		}
		return s.Subtle.Render(render.Fit(hint, width))
	}
	style := s.Paused
	if q.Playing() {
		style = s.Playing
	}
	return style.Render(render.Pad(icons.PlayState(q.Playing()), indent) + trackLine(t, width))
}

func (m Model) renderUpcoming(width int) []string {
	s := styles.T().S()
	tracks, _ := m.session.Upcoming(m.page)
	if len(tracks) == 0 {
		return []string{s.Subtle.Render(render.Fit("Nothing up next", width))}
	}
	first := (m.page-1)*m.session.Config().PageSize + 1
	lines := make([]string, len(tracks))
	for i, t := range tracks {
		num := render.Pad(fmt.Sprintf("%d.", first+i), indent)
		lines[i] = s.Base.Render(num + trackLine(t, width))
	}
	return lines
}

func (m Model) renderFooter(width int) string {
	s := styles.T().S()
	q := m.session.Queue()
	_, pages := m.session.Upcoming(m.page)
	left := fmt.Sprintf("Page %d/%d", m.page, pages)
	right := track.FormatDuration(q.RemainingDuration()) + " left of " + track.FormatDuration(q.TotalDuration())
	return s.Muted.Render(render.Row(left, right, width))
}

func trackLine(t track.Track, width int) string {
	return render.TrackLine(t, render.ColumnsFor(width-indent))
}

func sourceLabel(src queue.Source) string {
	if name, ok := src.Playlist(); ok {
		return icons.FormatPlaylist(name)
	}
	return icons.FormatLibrary("Library")
}
