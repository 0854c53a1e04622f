package sacramusic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/himanishpuri/SacraMusic/pkg/logger"
	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/importer"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/perform"
	"github.com/himanishpuri/SacraMusic/pkg/utils"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sacraService is the default implementation of the Service interface.
type sacraService struct {
	storage  Storage
	log      Logger
	renderer *perform.Renderer
	client   *http.Client
	config   *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &sacraService{
		storage:  stor,
		log:      cfg.Logger,
		renderer: perform.NewRenderer(cfg.RenderCacheSize),
		client:   cfg.HTTPClient,
		config:   cfg,
	}, nil
}

// ---- songs ----

// ListSongs returns the whole library ordered by title using Brazilian
// Portuguese collation, so "Ó Senhor" sorts next to "O Senhor".
func (s *sacraService) ListSongs(ctx context.Context) ([]models.Song, error) {
	songs, err := s.storage.ListSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	sortByTitle(songs)
	return songs, nil
}

func sortByTitle(songs []models.Song) {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(songs, func(i, j int) bool {
		return c.CompareString(songs[i].Title, songs[j].Title) < 0
	})
}

// SearchSongs filters the library by a case-insensitive substring of the
// title, lyrics, moments or seasons. An empty term lists everything.
func (s *sacraService) SearchSongs(ctx context.Context, term string) ([]models.Song, error) {
	songs, err := s.ListSongs(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return songs, nil
	}

	matched := songs[:0]
	for _, song := range songs {
		if songMatches(&song, term) {
			matched = append(matched, song)
		}
	}
	return matched, nil
}

func songMatches(song *models.Song, term string) bool {
	if strings.Contains(strings.ToLower(song.Title), term) ||
		strings.Contains(strings.ToLower(song.Lyrics), term) {
		return true
	}
	for _, m := range song.Moments {
		if strings.Contains(strings.ToLower(string(m)), term) {
			return true
		}
	}
	for _, season := range song.Seasons {
		if strings.Contains(strings.ToLower(string(season)), term) {
			return true
		}
	}
	return false
}

func (s *sacraService) GetSong(ctx context.Context, id string) (*models.Song, error) {
	song, err := s.storage.GetSong(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	return song, nil
}

// SaveSong validates and stores a song, assigning an id to new songs.
func (s *sacraService) SaveSong(ctx context.Context, song *models.Song) (*models.Song, error) {
	if err := validateSong(song); err != nil {
		return nil, err
	}
	if song.ID == "" {
		song.ID = utils.GenerateUUID()
	}
	if err := s.storage.PutSong(ctx, song); err != nil {
		return nil, fmt.Errorf("failed to save song: %w", err)
	}
	s.log.Infof("Saved song %s (%s)", song.ID, song.Title)
	return song, nil
}

func validateSong(song *models.Song) error {
	if song == nil {
		return fmt.Errorf("%w: song is required", ErrInvalidRecord)
	}
	song.Title = strings.TrimSpace(song.Title)
	if song.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidRecord)
	}
	if song.YouTubeLink != "" && !isHTTPURL(song.YouTubeLink) {
		return fmt.Errorf("%w: link must be an http(s) URL", ErrInvalidRecord)
	}
	for _, m := range song.Moments {
		if !knownMoment(m) {
			return fmt.Errorf("%w: unknown mass moment %q", ErrInvalidRecord, m)
		}
	}
	for _, season := range song.Seasons {
		if !knownSeason(season) {
			return fmt.Errorf("%w: unknown liturgical season %q", ErrInvalidRecord, season)
		}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func knownMoment(m models.MassMoment) bool {
	for _, known := range models.MassMoments {
		if m == known {
			return true
		}
	}
	return false
}

func knownSeason(season models.LiturgicalSeason) bool {
	for _, known := range models.LiturgicalSeasons {
		if season == known {
			return true
		}
	}
	return false
}

func (s *sacraService) DeleteSong(ctx context.Context, id string) error {
	if err := s.storage.DeleteSong(ctx, id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	s.log.Infof("Deleted song %s", id)
	return nil
}

// ImportSong fetches a CifraClub page and stores it as a new song.
func (s *sacraService) ImportSong(ctx context.Context, pageURL, createdBy string) (*models.Song, error) {
	s.log.Infof("Importing song from %s", pageURL)

	draft, err := importer.FetchCifraClub(ctx, s.client, pageURL)
	if err != nil {
		if errors.Is(err, importer.ErrNotCifraClub) || errors.Is(err, importer.ErrNothingExtracted) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		return nil, fmt.Errorf("import failed: %w", err)
	}
	draft.CreatedBy = createdBy
	return s.SaveSong(ctx, draft)
}

// ---- performance view ----

// Perform renders a song for live use. When a setlist is given, the view
// also carries the setlist name and the neighbouring songs; a setlist that
// no longer exists only drops the navigation.
func (s *sacraService) Perform(ctx context.Context, req PerformRequest) (*perform.View, error) {
	defer logger.Elapsed(s.log, "perform "+req.SongID, time.Now())

	song, err := s.GetSong(ctx, req.SongID)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = perform.DefaultMode(song)
	}
	view := s.renderer.Render(song, mode, req.Offset)

	if req.SetlistID == "" {
		return view, nil
	}

	setlist, err := s.storage.GetSetlist(ctx, req.SetlistID)
	switch {
	case errors.Is(err, ErrNotFound):
		s.log.Warnf("Setlist %s not found for song %s", req.SetlistID, req.SongID)
		return view, nil
	case err != nil:
		return nil, fmt.Errorf("failed to get setlist: %w", err)
	}
	if err := checkTenant(req.MinistryID, setlist.MinistryID); err != nil {
		return nil, err
	}

	view.Nav = perform.Navigation(setlist, song.ID, req.Index)
	return view, nil
}

// Transpose runs the chord engine over a raw text block through the render
// cache.
func (s *sacraService) Transpose(text string, mode chords.Mode, offset int) []chords.Line {
	return s.renderer.Lines(text, mode, offset)
}

func (s *sacraService) Close() error {
	return s.storage.Close()
}

// checkTenant rejects access to a record owned by another ministry.
func checkTenant(callerMinistry, recordMinistry string) error {
	if callerMinistry == "" || callerMinistry != recordMinistry {
		return ErrForbidden
	}
	return nil
}
