package sacramusic

import (
	"context"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/perform"
)

// Service is the application API used by the HTTP server and the CLI.
// Every ministry-scoped call takes the caller's ministry id and fails with
// ErrForbidden when the record belongs to another ministry.
type Service interface {
	ListSongs(ctx context.Context) ([]models.Song, error)
	SearchSongs(ctx context.Context, term string) ([]models.Song, error)
	GetSong(ctx context.Context, id string) (*models.Song, error)
	SaveSong(ctx context.Context, song *models.Song) (*models.Song, error)
	DeleteSong(ctx context.Context, id string) error
	ImportSong(ctx context.Context, pageURL, createdBy string) (*models.Song, error)

	Perform(ctx context.Context, req PerformRequest) (*perform.View, error)
	Transpose(text string, mode chords.Mode, offset int) []chords.Line

	ListSetlists(ctx context.Context, ministryID string) ([]models.Setlist, error)
	GetSetlist(ctx context.Context, ministryID, id string) (*models.Setlist, error)
	SaveSetlist(ctx context.Context, ministryID string, setlist *models.Setlist) (*models.Setlist, error)
	DeleteSetlist(ctx context.Context, ministryID, id string) error
	ResolveSetlist(ctx context.Context, ministryID, id string) (*ResolvedSetlist, error)
	AddCustomItem(ctx context.Context, ministryID, setlistID, songID string) (*models.Setlist, error)
	RemoveCustomItem(ctx context.Context, ministryID, setlistID, itemUUID string) (*models.Setlist, error)

	ListMusicians(ctx context.Context, ministryID, instrument string) ([]models.Musician, error)
	SaveMusician(ctx context.Context, ministryID string, musician *models.Musician) (*models.Musician, error)
	DeleteMusician(ctx context.Context, ministryID, id string) error
	Instruments(ctx context.Context, ministryID string) ([]string, error)

	ListSchedules(ctx context.Context, ministryID, musicianID string) ([]models.ScheduleEntry, error)
	GetSchedule(ctx context.Context, ministryID, id string) (*models.ScheduleEntry, error)
	SaveSchedule(ctx context.Context, ministryID string, entry *models.ScheduleEntry) (*models.ScheduleEntry, error)
	DeleteSchedule(ctx context.Context, ministryID, id string) error

	CreateMinistry(ctx context.Context, name, ownerUID string) (*models.Ministry, error)
	JoinMinistryByCode(ctx context.Context, code, uid string) (*models.Ministry, error)
	GetMinistry(ctx context.Context, id string) (*models.Ministry, error)
	MinistryMembers(ctx context.Context, ministryID string) ([]models.UserProfile, error)
	RemoveMember(ctx context.Context, ministryID, actorUID, memberUID string) error

	GetUserProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	SaveUserProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)

	Close() error
}

// Storage is the record store behind the service. Songs are global; setlists,
// musicians and schedules carry the owning ministry id. Get and Delete
// return ErrNotFound for missing records.
type Storage interface {
	GetSong(ctx context.Context, id string) (*models.Song, error)
	ListSongs(ctx context.Context) ([]models.Song, error)
	PutSong(ctx context.Context, song *models.Song) error
	DeleteSong(ctx context.Context, id string) error

	GetSetlist(ctx context.Context, id string) (*models.Setlist, error)
	ListSetlists(ctx context.Context, ministryID string) ([]models.Setlist, error)
	PutSetlist(ctx context.Context, setlist *models.Setlist) error
	DeleteSetlist(ctx context.Context, id string) error

	GetMusician(ctx context.Context, id string) (*models.Musician, error)
	ListMusicians(ctx context.Context, ministryID string) ([]models.Musician, error)
	PutMusician(ctx context.Context, musician *models.Musician) error
	DeleteMusician(ctx context.Context, id string) error

	GetSchedule(ctx context.Context, id string) (*models.ScheduleEntry, error)
	ListSchedules(ctx context.Context, ministryID string) ([]models.ScheduleEntry, error)
	PutSchedule(ctx context.Context, entry *models.ScheduleEntry) error
	DeleteSchedule(ctx context.Context, id string) error

	GetUser(ctx context.Context, uid string) (*models.UserProfile, error)
	GetUsers(ctx context.Context, uids []string) ([]models.UserProfile, error)
	PutUser(ctx context.Context, profile *models.UserProfile) error

	GetMinistry(ctx context.Context, id string) (*models.Ministry, error)
	FindMinistryByInviteCode(ctx context.Context, code string) (*models.Ministry, error)
	CreateMinistry(ctx context.Context, ministry *models.Ministry) error
	AddMember(ctx context.Context, ministryID, uid string) error
	RemoveMember(ctx context.Context, ministryID, uid string) error

	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
