package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	playerv1 "github.com/osa030/negativespace/internal/api/playerv1"
)

const (
	cardsPerRow = 3
	cardWidth   = 26
	barWidth    = 32
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth)
	activeCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("255")).
			Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	artistStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 4).
			Align(lipgloss.Center)
)

// renderTable writes the catalog as a table, marking the current track.
func renderTable(w io.Writer, tracks []*playerv1.Track, currentID int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "ID", "Title", "Artist", "Note"})
	for _, tr := range tracks {
		mark := ""
		if tr.Id == currentID {
			mark = "*"
		}
		t.AppendRow(table.Row{mark, tr.Id, tr.Title, tr.Artist, tr.Desc})
	}
	t.Render()
}

// renderCards lays the catalog out as a grid of cards. The current track's
// card is highlighted.
func renderCards(tracks []*playerv1.Track, currentID int) string {
	var rows []string
	var row []string
	for _, tr := range tracks {
		style := cardStyle
		if tr.Id == currentID {
			style = activeCardStyle
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(tr.Title),
			artistStyle.Render(tr.Artist),
			dimStyle.Render(tr.Desc),
		)
		row = append(row, style.Render(body))
		if len(row) == cardsPerRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// progressLine draws a bar of the given width filled to percent.
func progressLine(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

// playIcon shows the action the toggle would perform.
func playIcon(s *playerv1.Status) string {
	if s.State == "playing" {
		return "⏸"
	}
	return "▶"
}

// renderBar renders the now-playing bar. It is empty until a track has
// been loaded.
func renderBar(s *playerv1.Status) string {
	if s == nil || !s.BarVisible || s.Current == nil {
		return ""
	}
	header := fmt.Sprintf("%s  %s  %s",
		playIcon(s),
		titleStyle.Render(s.Current.Title),
		artistStyle.Render(s.Current.Artist),
	)
	progress := fmt.Sprintf("%s %s %s",
		dimStyle.Render(s.Elapsed),
		progressLine(s.Percent, barWidth),
		dimStyle.Render(s.Total),
	)
	lines := []string{header, progress}
	if s.Switching {
		lines = append(lines, dimStyle.Render("switching ("+s.Phase+")"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderImmersive renders the full-screen view of the current track.
func renderImmersive(s *playerv1.Status) string {
	if s == nil || s.Current == nil {
		return ""
	}
	lines := []string{
		titleStyle.Render(s.Current.Title),
		artistStyle.Render(s.Current.Artist),
	}
	if s.Current.Desc != "" {
		lines = append(lines, "", dimStyle.Render(s.Current.Desc))
	}
	if s.Current.Cover != "" {
		lines = append(lines, "", dimStyle.Render(s.Current.Cover))
	}
	if s.Grayscale {
		lines = append(lines, "", dimStyle.Render("(paused)"))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// renderStatus combines the bar and, when open, the immersive view.
func renderStatus(s *playerv1.Status) string {
	if s == nil || s.Current == nil {
		return dimStyle.Render("nothing loaded")
	}
	out := renderBar(s)
	if s.Immersive {
		out = lipgloss.JoinVertical(lipgloss.Left, renderImmersive(s), out)
	}
	return out
}

func currentID(s *playerv1.Status) int {
	if s == nil || s.Current == nil {
		return 0
	}
	return s.Current.Id
}
