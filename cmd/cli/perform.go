package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/himanishpuri/SacraMusic/pkg/sacramusic"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
	"github.com/spf13/cobra"
)

func parseMode(s string) (chords.Mode, error) {
	if s == "" {
		return "", nil
	}
	mode, ok := chords.ParseMode(s)
	if !ok {
		return "", fmt.Errorf("mode must be lyrics or chords, got %q", s)
	}
	return mode, nil
}

func newPerformCmd() *cobra.Command {
	var (
		mode       string
		offset     int
		setlistID  string
		ministryID string
		idx        int
	)

	cmd := &cobra.Command{
		Use:   "perform <songID>",
		Short: "Print a song the way it is shown on stage",
		Long: `Print a song's lyrics or chord sheet, transposed by --transpose semitones.

The song opens in chords mode when it has a chord sheet. With --setlist the
previous and next songs of that setlist are shown as well.`,
		Example: `  sacramusic perform 5f0c... --transpose -2
  sacramusic perform 5f0c... --setlist 81a2... --ministry 77b1...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMode(mode)
			if err != nil {
				return err
			}

			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := svc.Perform(cmd.Context(), sacramusic.PerformRequest{
				SongID:     args[0],
				MinistryID: ministryID,
				SetlistID:  setlistID,
				Index:      idx,
				Mode:       m,
				Offset:     offset,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			header := view.Title
			if view.Key != "" {
				header += " [" + view.Key + "]"
			}
			fmt.Fprintln(w, titleStyle.Render(header))
			fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("mode: %s  transpose: %+d", view.Mode, view.Offset)))
			fmt.Fprintln(w)
			printLines(w, view.Lines, view.Mode)

			if nav := view.Nav; nav != nil {
				fmt.Fprintln(w)
				fmt.Fprintln(w, mutedStyle.Render("setlist: "+nav.SetlistName))
				if nav.Prev != nil {
					fmt.Fprintf(w, "prev: %s\n", nav.Prev.SongID)
				}
				if nav.Next != nil {
					fmt.Fprintf(w, "next: %s\n", nav.Next.SongID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "lyrics or chords (default: chords when the song has a chord sheet)")
	cmd.Flags().IntVarP(&offset, "transpose", "t", 0, "Semitones to transpose")
	cmd.Flags().StringVar(&setlistID, "setlist", "", "Setlist to navigate")
	cmd.Flags().StringVar(&ministryID, "ministry", "", "Ministry that owns the setlist")
	cmd.Flags().IntVar(&idx, "idx", -1, "Position in a custom setlist")
	return cmd
}

func newTransposeCmd() *cobra.Command {
	var (
		mode  string
		steps int
	)

	cmd := &cobra.Command{
		Use:   "transpose [file|-]",
		Short: "Transpose the chord lines of a text file or stdin",
		Long: `Run the chord engine over a text block. Lines detected as chord lines are
transposed and keep their spacing; every other line is printed unchanged.

A single trailing newline at the end of the input is treated as the end of
the last line, so it does not produce an extra empty output line. Any further
blank lines are kept.`,
		Example: `  sacramusic transpose --steps 2 cifra.txt
  cat cifra.txt | sacramusic transpose -s -1`,
		Args: cobra.MaximumNArgs(1),
		// The engine needs no database or config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMode(mode)
			if err != nil {
				return err
			}
			if m == "" {
				m = chords.ModeChords
			}

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			printLines(cmd.OutOrStdout(), chords.TransposeBlock(strings.TrimSuffix(string(data), "\n"), m, steps), m)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "chords", "lyrics or chords")
	cmd.Flags().IntVarP(&steps, "steps", "s", 0, "Semitones to transpose")
	return cmd
}
