//go:build !js && !wasm
// +build !js,!wasm

package sacramusic

import (
	"context"
	"errors"
	"fmt"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/storage"
)

// storageAdapter adapts storage.DBClient to the Storage interface, mapping
// the store's missing-row error onto ErrNotFound.
type storageAdapter struct {
	db *storage.DBClient
}

// NewSQLiteStorage creates a new SQLite storage backend.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	db, err := storage.NewDBClientWithPath(dbPath)
	if err != nil {
		return nil, err
	}
	return &storageAdapter{db: db}, nil
}

func translate(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

func (s *storageAdapter) GetSong(ctx context.Context, id string) (*models.Song, error) {
	song, err := s.db.GetSong(ctx, id)
	return song, translate(err)
}

func (s *storageAdapter) ListSongs(ctx context.Context) ([]models.Song, error) {
	return s.db.ListSongs(ctx)
}

func (s *storageAdapter) PutSong(ctx context.Context, song *models.Song) error {
	return s.db.PutSong(ctx, song)
}

func (s *storageAdapter) DeleteSong(ctx context.Context, id string) error {
	return translate(s.db.DeleteSong(ctx, id))
}

func (s *storageAdapter) GetSetlist(ctx context.Context, id string) (*models.Setlist, error) {
	setlist, err := s.db.GetSetlist(ctx, id)
	return setlist, translate(err)
}

func (s *storageAdapter) ListSetlists(ctx context.Context, ministryID string) ([]models.Setlist, error) {
	return s.db.ListSetlists(ctx, ministryID)
}

func (s *storageAdapter) PutSetlist(ctx context.Context, setlist *models.Setlist) error {
	return s.db.PutSetlist(ctx, setlist)
}

func (s *storageAdapter) DeleteSetlist(ctx context.Context, id string) error {
	return translate(s.db.DeleteSetlist(ctx, id))
}

func (s *storageAdapter) GetMusician(ctx context.Context, id string) (*models.Musician, error) {
	m, err := s.db.GetMusician(ctx, id)
	return m, translate(err)
}

func (s *storageAdapter) ListMusicians(ctx context.Context, ministryID string) ([]models.Musician, error) {
	return s.db.ListMusicians(ctx, ministryID)
}

func (s *storageAdapter) PutMusician(ctx context.Context, musician *models.Musician) error {
	return s.db.PutMusician(ctx, musician)
}

func (s *storageAdapter) DeleteMusician(ctx context.Context, id string) error {
	return translate(s.db.DeleteMusician(ctx, id))
}

func (s *storageAdapter) GetSchedule(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	e, err := s.db.GetSchedule(ctx, id)
	return e, translate(err)
}

func (s *storageAdapter) ListSchedules(ctx context.Context, ministryID string) ([]models.ScheduleEntry, error) {
	return s.db.ListSchedules(ctx, ministryID)
}

func (s *storageAdapter) PutSchedule(ctx context.Context, entry *models.ScheduleEntry) error {
	return s.db.PutSchedule(ctx, entry)
}

func (s *storageAdapter) DeleteSchedule(ctx context.Context, id string) error {
	return translate(s.db.DeleteSchedule(ctx, id))
}

func (s *storageAdapter) GetUser(ctx context.Context, uid string) (*models.UserProfile, error) {
	u, err := s.db.GetUser(ctx, uid)
	return u, translate(err)
}

func (s *storageAdapter) GetUsers(ctx context.Context, uids []string) ([]models.UserProfile, error) {
	return s.db.GetUsers(ctx, uids)
}

func (s *storageAdapter) PutUser(ctx context.Context, profile *models.UserProfile) error {
	return s.db.PutUser(ctx, profile)
}

func (s *storageAdapter) GetMinistry(ctx context.Context, id string) (*models.Ministry, error) {
	m, err := s.db.GetMinistry(ctx, id)
	return m, translate(err)
}

func (s *storageAdapter) FindMinistryByInviteCode(ctx context.Context, code string) (*models.Ministry, error) {
	m, err := s.db.FindMinistryByInviteCode(ctx, code)
	return m, translate(err)
}

func (s *storageAdapter) CreateMinistry(ctx context.Context, ministry *models.Ministry) error {
	return s.db.CreateMinistry(ctx, ministry)
}

func (s *storageAdapter) AddMember(ctx context.Context, ministryID, uid string) error {
	return translate(s.db.AddMember(ctx, ministryID, uid))
}

func (s *storageAdapter) RemoveMember(ctx context.Context, ministryID, uid string) error {
	return translate(s.db.RemoveMember(ctx, ministryID, uid))
}

func (s *storageAdapter) Close() error {
	return s.db.Close()
}
