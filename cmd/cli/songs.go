package main

import (
	"fmt"
	"io"
	"os"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// songFile is the YAML layout read by `songs import` and written by
// `songs export`.
type songFile struct {
	Songs []models.Song `yaml:"songs"`
}

func newSongsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "songs",
		Short: "Manage the shared song library",
	}
	cmd.AddCommand(newSongsListCmd())
	cmd.AddCommand(newSongsShowCmd())
	cmd.AddCommand(newSongsDeleteCmd())
	cmd.AddCommand(newSongsImportCmd())
	cmd.AddCommand(newSongsExportCmd())
	cmd.AddCommand(newSongsImportCifraClubCmd())
	return cmd
}

func newSongsListCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List songs sorted by title",
		Example: `  sacramusic songs list
  sacramusic songs list --search "santo"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var songs []models.Song
			if search != "" {
				songs, err = svc.SearchSongs(cmd.Context(), search)
			} else {
				songs, err = svc.ListSongs(cmd.Context())
			}
			if err != nil {
				return err
			}
			renderSongs(cmd.OutOrStdout(), songs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title, lyrics, moment or season")
	return cmd
}

func newSongsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a song with its lyrics and chords",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			song, err := svc.GetSong(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderSong(cmd.OutOrStdout(), song)
			return nil
		},
	}
}

func newSongsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			song, err := svc.GetSong(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := svc.DeleteSong(cmd.Context(), song.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q (%s)\n", song.Title, song.ID)
			return nil
		},
	}
}

func newSongsImportCmd() *cobra.Command {
	var createdBy string
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import songs from a YAML file",
		Long: `Import songs from a YAML file with a top-level "songs" list.

Songs with an id replace the stored song with that id; songs without one are
created. The whole file is validated before anything is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var file songFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			for i, s := range file.Songs {
				if s.Title == "" {
					return fmt.Errorf("song #%d has no title", i+1)
				}
			}

			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			for i := range file.Songs {
				song := file.Songs[i]
				if song.CreatedBy == "" {
					song.CreatedBy = createdBy
				}
				if _, err := svc.SaveSong(cmd.Context(), &song); err != nil {
					return fmt.Errorf("song %q: %w", song.Title, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d songs\n", len(file.Songs))
			return nil
		},
	}
	cmd.Flags().StringVar(&createdBy, "created-by", "", "Author recorded on songs that have none")
	return cmd
}

func newSongsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.yaml]",
		Short: "Export every song as YAML (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			songs, err := svc.ListSongs(cmd.Context())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", args[0], err)
				}
				defer f.Close()
				w = f
			}

			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(songFile{Songs: songs}); err != nil {
				return fmt.Errorf("failed to write songs: %w", err)
			}
			return enc.Close()
		},
	}
}

func newSongsImportCifraClubCmd() *cobra.Command {
	var createdBy string
	cmd := &cobra.Command{
		Use:     "import-cifraclub <url>",
		Short:   "Import a song from a CifraClub page",
		Example: `  sacramusic songs import-cifraclub https://www.cifraclub.com.br/padre-zezinho/oracao-pela-familia/`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			song, err := svc.ImportSong(cmd.Context(), args[0], createdBy)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%s)\n", song.Title, song.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&createdBy, "created-by", "", "Author recorded on the song")
	return cmd
}
