package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	chordStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newTable(w io.Writer, header ...interface{}) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}

// printLines writes rendered lines. Chord lines are highlighted only in
// chords mode.
func printLines(w io.Writer, lines []chords.Line, mode chords.Mode) {
	for _, l := range lines {
		if highlightLine(l, mode) {
			fmt.Fprintln(w, chordStyle.Render(l.Text))
			continue
		}
		fmt.Fprintln(w, l.Text)
	}
}

func highlightLine(l chords.Line, mode chords.Mode) bool {
	return mode == chords.ModeChords && l.IsChord
}

func renderSongs(w io.Writer, songs []models.Song) {
	if len(songs) == 0 {
		fmt.Fprintln(w, "No songs found")
		return
	}
	t := newTable(w, "ID", "Title", "Key", "Moments", "Chords")
	for _, s := range songs {
		hasChords := ""
		if strings.TrimSpace(s.Chords) != "" {
			hasChords = "yes"
		}
		t.AppendRow(table.Row{s.ID, s.Title, s.Key, joinMoments(s.Moments), hasChords})
	}
	t.Render()
	fmt.Fprintf(w, "(%d songs)\n", len(songs))
}

func renderSong(w io.Writer, s *models.Song) {
	fmt.Fprintln(w, titleStyle.Render(s.Title))
	fmt.Fprintf(w, "ID:      %s\n", s.ID)
	if s.Key != "" {
		fmt.Fprintf(w, "Key:     %s\n", s.Key)
	}
	if len(s.Moments) > 0 {
		fmt.Fprintf(w, "Moments: %s\n", joinMoments(s.Moments))
	}
	if len(s.Seasons) > 0 {
		seasons := make([]string, len(s.Seasons))
		for i, season := range s.Seasons {
			seasons[i] = string(season)
		}
		fmt.Fprintf(w, "Seasons: %s\n", strings.Join(seasons, ", "))
	}
	if s.YouTubeLink != "" {
		fmt.Fprintf(w, "Link:    %s\n", s.YouTubeLink)
	}
	if s.Lyrics != "" {
		fmt.Fprintln(w, mutedStyle.Render("\n-- lyrics --"))
		fmt.Fprintln(w, s.Lyrics)
	}
	if s.Chords != "" {
		fmt.Fprintln(w, mutedStyle.Render("\n-- chords --"))
		printLines(w, chords.TransposeBlock(s.Chords, chords.ModeChords, 0), chords.ModeChords)
	}
}

func renderSetlists(w io.Writer, setlists []models.Setlist) {
	if len(setlists) == 0 {
		fmt.Fprintln(w, "No setlists found")
		return
	}
	t := newTable(w, "ID", "Name", "Date", "Category", "Songs")
	for _, sl := range setlists {
		t.AppendRow(table.Row{sl.ID, sl.Name, sl.Date, string(sl.Category), len(sl.SongIDs())})
	}
	t.Render()
}

func renderSchedules(w io.Writer, entries []models.ScheduleEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No schedules found")
		return
	}
	t := newTable(w, "Date", "Time", "Title", "Color", "Musicians")
	for _, e := range entries {
		t.AppendRow(table.Row{e.Date, e.Time, e.Title, string(e.LiturgicalColor), len(e.Assignments)})
	}
	t.Render()
}

func joinMoments(moments []models.MassMoment) string {
	names := make([]string, len(moments))
	for i, m := range moments {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
