package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
	"gopkg.in/yaml.v3"
)

const librarySample = `songs:
  - id: song-1
    title: Cordeiro de Deus
    key: Am
    moments: [Cordeiro]
    lyrics: Cordeiro de Deus
    chords: |-
      Am      F
      Cordeiro de Deus
  - id: song-2
    title: Aleluia
    seasons: [Páscoa]
`

// runCLI executes the command tree against db and returns stdout.
func runCLI(t *testing.T, db, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", db, "--log-level", "error"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func setupLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	db := filepath.Join(dir, "cli.sqlite3")
	file := filepath.Join(dir, "songs.yaml")
	require.NoError(t, os.WriteFile(file, []byte(librarySample), 0o644))

	out, err := runCLI(t, db, "", "songs", "import", file, "--created-by", "cli")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 songs")
	return db
}

func TestTransposeStdin(t *testing.T) {
	db := filepath.Join(t.TempDir(), "unused.sqlite3")

	out, err := runCLI(t, db, "Am  F\nla la\n", "transpose", "-s", "-2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Gm  D#")
	assert.Equal(t, "la la", lines[1])

	_, err = os.Stat(db)
	assert.True(t, os.IsNotExist(err), "transpose must not open the database")
}

func TestTransposeKeepsExtraTrailingBlankLine(t *testing.T) {
	db := filepath.Join(t.TempDir(), "unused.sqlite3")

	out, err := runCLI(t, db, "C  G\nGlória\n\n", "transpose", "-s", "2")
	require.NoError(t, err)
	assert.Equal(t, "D  A\nGlória\n\n", out)
}

func TestHighlightLineOnlyInChordsMode(t *testing.T) {
	chordRow := chords.Line{Text: "Am  F", IsChord: true}
	lyricRow := chords.Line{Text: "la la"}

	assert.True(t, highlightLine(chordRow, chords.ModeChords))
	assert.False(t, highlightLine(lyricRow, chords.ModeChords))
	assert.False(t, highlightLine(chordRow, chords.ModeLyrics))
	assert.False(t, highlightLine(chordRow, ""))
}

func TestTransposeFileLyricsMode(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cifra.txt")
	require.NoError(t, os.WriteFile(file, []byte("C   G\nGlória"), 0o644))

	out, err := runCLI(t, filepath.Join(dir, "db.sqlite3"), "", "transpose", "--mode", "lyrics", "-s", "3", file)
	require.NoError(t, err)
	assert.Contains(t, out, "C   G")

	_, err = runCLI(t, filepath.Join(dir, "db.sqlite3"), "", "transpose", "--mode", "karaoke")
	assert.Error(t, err)
}

func TestSongsCommands(t *testing.T) {
	db := setupLibrary(t)

	out, err := runCLI(t, db, "", "songs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Aleluia")
	assert.Contains(t, out, "Cordeiro de Deus")
	assert.Less(t, strings.Index(out, "Aleluia"), strings.Index(out, "Cordeiro de Deus"))
	assert.Contains(t, out, "(2 songs)")

	out, err = runCLI(t, db, "", "songs", "list", "--search", "páscoa")
	require.NoError(t, err)
	assert.Contains(t, out, "Aleluia")
	assert.NotContains(t, out, "Cordeiro de Deus")

	out, err = runCLI(t, db, "", "songs", "show", "song-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Key:     Am")
	assert.Contains(t, out, "Am      F")

	out, err = runCLI(t, db, "", "songs", "export")
	require.NoError(t, err)
	var exported songFile
	require.NoError(t, yaml.Unmarshal([]byte(out), &exported))
	require.Len(t, exported.Songs, 2)
	assert.Equal(t, "cli", exported.Songs[0].CreatedBy)

	out, err = runCLI(t, db, "", "songs", "delete", "song-2")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "Aleluia"`)

	_, err = runCLI(t, db, "", "songs", "show", "song-2")
	assert.Error(t, err)
}

func TestSongsImportRejectsUntitled(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("songs:\n  - key: C\n"), 0o644))

	_, err := runCLI(t, filepath.Join(dir, "db.sqlite3"), "", "songs", "import", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no title")
}

func TestPerformCommand(t *testing.T) {
	db := setupLibrary(t)

	out, err := runCLI(t, db, "", "perform", "song-1", "--transpose", "-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Cordeiro de Deus [Gm]")
	assert.Contains(t, out, "mode: chords  transpose: -2")
	assert.Contains(t, out, "Gm      D#")

	out, err = runCLI(t, db, "", "perform", "song-1", "--mode", "lyrics")
	require.NoError(t, err)
	assert.NotContains(t, out, "Am      F")

	_, err = runCLI(t, db, "", "perform", "missing")
	assert.Error(t, err)
}

func TestMinistryAndListings(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.sqlite3")

	out, err := runCLI(t, db, "", "ministry", "create", "Coral", "--owner", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, `Created ministry "Coral"`)
	assert.Contains(t, out, "Invite code:")

	_, err = runCLI(t, db, "", "ministry", "create", "Coral")
	assert.Error(t, err, "--owner is required")

	_, err = runCLI(t, db, "", "ministry", "join", "ZZZZZZ", "--user", "u2")
	assert.Error(t, err)

	out, err = runCLI(t, db, "", "setlists", "list", "--ministry", "m-1")
	require.NoError(t, err)
	assert.Contains(t, out, "No setlists found")

	out, err = runCLI(t, db, "", "schedules", "list", "--ministry", "m-1", "--musician", "x")
	require.NoError(t, err)
	assert.Contains(t, out, "No schedules found")

	_, err = runCLI(t, db, "", "setlists", "list")
	assert.Error(t, err)
}
