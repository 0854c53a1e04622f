//go:build !js && !wasm
// +build !js,!wasm

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const DefaultDBFile = "sacramusic.sqlite3"
const errDBClientNil = "db client is nil"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

// NewDBClient opens the database named by SACRAMUSIC_DB_PATH, or
// DefaultDBFile in the working directory.
func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("SACRAMUSIC_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if err := utils.EnsureParentDir(dbPath); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	inMemory := dbPath == ":memory:"
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if !inMemory {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	if inMemory {
		// every connection would otherwise get its own empty database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Song{}, &Setlist{}, &Musician{}, &Schedule{}, &Ministry{}, &User{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *DBClient) ready() error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	return nil
}

// first loads one row by primary key, translating a missing row to ErrNotFound.
func (c *DBClient) first(ctx context.Context, dest any, column, id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	err := c.DB.WithContext(ctx).Where(column+" = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// upsert inserts the row or replaces every column of the existing one.
func (c *DBClient) upsert(ctx context.Context, row any) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

func (c *DBClient) remove(ctx context.Context, row any, column, id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	res := c.DB.WithContext(ctx).Where(column+" = ?", id).Delete(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- songs (global) ----

func (c *DBClient) GetSong(ctx context.Context, id string) (*models.Song, error) {
	var row Song
	if err := c.first(ctx, &row, "id", id); err != nil {
		return nil, fmt.Errorf("getting song %s: %w", id, err)
	}
	return row.toModel(), nil
}

// ListSongs returns every song ordered by title. Callers that need
// locale-aware ordering re-sort.
func (c *DBClient) ListSongs(ctx context.Context) ([]models.Song, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var rows []Song
	if err := c.DB.WithContext(ctx).Order("title").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	out := make([]models.Song, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toModel())
	}
	return out, nil
}

func (c *DBClient) PutSong(ctx context.Context, song *models.Song) error {
	if err := c.upsert(ctx, songRow(song)); err != nil {
		return fmt.Errorf("saving song %s: %w", song.ID, err)
	}
	return nil
}

func (c *DBClient) DeleteSong(ctx context.Context, id string) error {
	if err := c.remove(ctx, &Song{}, "id", id); err != nil {
		return fmt.Errorf("deleting song %s: %w", id, err)
	}
	return nil
}

// ---- setlists (per ministry) ----

func (c *DBClient) GetSetlist(ctx context.Context, id string) (*models.Setlist, error) {
	var row Setlist
	if err := c.first(ctx, &row, "id", id); err != nil {
		return nil, fmt.Errorf("getting setlist %s: %w", id, err)
	}
	return row.toModel(), nil
}

// ListSetlists returns a ministry's setlists, newest date first.
func (c *DBClient) ListSetlists(ctx context.Context, ministryID string) ([]models.Setlist, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var rows []Setlist
	if err := c.DB.WithContext(ctx).Where("ministry_id = ?", ministryID).Order("date DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing setlists: %w", err)
	}
	out := make([]models.Setlist, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toModel())
	}
	return out, nil
}

func (c *DBClient) PutSetlist(ctx context.Context, setlist *models.Setlist) error {
	if err := c.upsert(ctx, setlistRow(setlist)); err != nil {
		return fmt.Errorf("saving setlist %s: %w", setlist.ID, err)
	}
	return nil
}

func (c *DBClient) DeleteSetlist(ctx context.Context, id string) error {
	if err := c.remove(ctx, &Setlist{}, "id", id); err != nil {
		return fmt.Errorf("deleting setlist %s: %w", id, err)
	}
	return nil
}

// ---- musicians (per ministry) ----

func (c *DBClient) GetMusician(ctx context.Context, id string) (*models.Musician, error) {
	var row Musician
	if err := c.first(ctx, &row, "id", id); err != nil {
		return nil, fmt.Errorf("getting musician %s: %w", id, err)
	}
	return row.toModel(), nil
}

func (c *DBClient) ListMusicians(ctx context.Context, ministryID string) ([]models.Musician, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var rows []Musician
	if err := c.DB.WithContext(ctx).Where("ministry_id = ?", ministryID).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing musicians: %w", err)
	}
	out := make([]models.Musician, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toModel())
	}
	return out, nil
}

func (c *DBClient) PutMusician(ctx context.Context, musician *models.Musician) error {
	if err := c.upsert(ctx, musicianRow(musician)); err != nil {
		return fmt.Errorf("saving musician %s: %w", musician.ID, err)
	}
	return nil
}

func (c *DBClient) DeleteMusician(ctx context.Context, id string) error {
	if err := c.remove(ctx, &Musician{}, "id", id); err != nil {
		return fmt.Errorf("deleting musician %s: %w", id, err)
	}
	return nil
}

// ---- schedules (per ministry) ----

func (c *DBClient) GetSchedule(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	var row Schedule
	if err := c.first(ctx, &row, "id", id); err != nil {
		return nil, fmt.Errorf("getting schedule %s: %w", id, err)
	}
	return row.toModel(), nil
}

// ListSchedules returns a ministry's schedule entries, earliest first.
func (c *DBClient) ListSchedules(ctx context.Context, ministryID string) ([]models.ScheduleEntry, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var rows []Schedule
	if err := c.DB.WithContext(ctx).Where("ministry_id = ?", ministryID).Order("date ASC, time ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	out := make([]models.ScheduleEntry, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toModel())
	}
	return out, nil
}

func (c *DBClient) PutSchedule(ctx context.Context, entry *models.ScheduleEntry) error {
	if err := c.upsert(ctx, scheduleRow(entry)); err != nil {
		return fmt.Errorf("saving schedule %s: %w", entry.ID, err)
	}
	return nil
}

func (c *DBClient) DeleteSchedule(ctx context.Context, id string) error {
	if err := c.remove(ctx, &Schedule{}, "id", id); err != nil {
		return fmt.Errorf("deleting schedule %s: %w", id, err)
	}
	return nil
}

// ---- users ----

func (c *DBClient) GetUser(ctx context.Context, uid string) (*models.UserProfile, error) {
	var row User
	if err := c.first(ctx, &row, "uid", uid); err != nil {
		return nil, fmt.Errorf("getting user %s: %w", uid, err)
	}
	return row.toModel(), nil
}

// GetUsers returns the profiles that exist among uids, in no particular order.
func (c *DBClient) GetUsers(ctx context.Context, uids []string) ([]models.UserProfile, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if len(uids) == 0 {
		return nil, nil
	}
	var rows []User
	if err := c.DB.WithContext(ctx).Where("uid IN ?", uids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("batch querying users: %w", err)
	}
	out := make([]models.UserProfile, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toModel())
	}
	return out, nil
}

func (c *DBClient) PutUser(ctx context.Context, profile *models.UserProfile) error {
	if err := c.upsert(ctx, userRow(profile)); err != nil {
		return fmt.Errorf("saving user %s: %w", profile.UID, err)
	}
	return nil
}

// ---- ministries ----

func (c *DBClient) GetMinistry(ctx context.Context, id string) (*models.Ministry, error) {
	var row Ministry
	if err := c.first(ctx, &row, "id", id); err != nil {
		return nil, fmt.Errorf("getting ministry %s: %w", id, err)
	}
	return row.toModel(), nil
}

func (c *DBClient) FindMinistryByInviteCode(ctx context.Context, code string) (*models.Ministry, error) {
	var row Ministry
	if err := c.first(ctx, &row, "invite_code", code); err != nil {
		return nil, fmt.Errorf("finding ministry by invite code: %w", err)
	}
	return row.toModel(), nil
}

// CreateMinistry stores a new ministry and makes it the owner's current and
// owned ministry, atomically.
func (c *DBClient) CreateMinistry(ctx context.Context, ministry *models.Ministry) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ministryRow(ministry)).Error; err != nil {
			return fmt.Errorf("creating ministry: %w", err)
		}

		owner, err := lockUser(tx, ministry.OwnerID)
		if err != nil {
			return err
		}
		owner.CurrentMinistryID = ministry.ID
		owner.OwnedMinistries = appendUnique(owner.OwnedMinistries, ministry.ID)
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(owner).Error
	})
}

// AddMember adds uid to the ministry's members and selects the ministry as
// the user's current one, atomically.
func (c *DBClient) AddMember(ctx context.Context, ministryID, uid string) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m Ministry
		if err := tx.Where("id = ?", ministryID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		m.Members = appendUnique(m.Members, uid)
		if err := tx.Save(&m).Error; err != nil {
			return fmt.Errorf("updating members: %w", err)
		}

		user, err := lockUser(tx, uid)
		if err != nil {
			return err
		}
		user.CurrentMinistryID = ministryID
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(user).Error
	})
}

// RemoveMember removes uid from the ministry and clears the user's current
// ministry, atomically.
func (c *DBClient) RemoveMember(ctx context.Context, ministryID, uid string) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m Ministry
		if err := tx.Where("id = ?", ministryID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		members := make([]string, 0, len(m.Members))
		for _, id := range m.Members {
			if id != uid {
				members = append(members, id)
			}
		}
		m.Members = members
		if err := tx.Save(&m).Error; err != nil {
			return fmt.Errorf("updating members: %w", err)
		}
		return tx.Model(&User{}).Where("uid = ?", uid).Update("current_ministry_id", "").Error
	})
}

// lockUser loads a user inside a transaction, or starts a fresh profile
// when the user has never been saved.
func lockUser(tx *gorm.DB, uid string) (*User, error) {
	var u User
	err := tx.Where("uid = ?", uid).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &User{UID: uid}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", uid, err)
	}
	return &u, nil
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
