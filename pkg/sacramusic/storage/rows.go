//go:build !js && !wasm
// +build !js,!wasm

package storage

import (
	"time"

	"github.com/himanishpuri/SacraMusic/pkg/models"
)

type Song struct {
	ID          string                    `gorm:"primaryKey;type:varchar(36)"`
	Title       string                    `gorm:"index:idx_song_title"`
	Key         string                    `gorm:"column:song_key"`
	Moments     []models.MassMoment       `gorm:"serializer:json"`
	Seasons     []models.LiturgicalSeason `gorm:"serializer:json"`
	Lyrics      string
	Chords      string
	YouTubeLink string
	CreatedBy   string
	UpdatedAt   time.Time
}

func (Song) TableName() string { return models.SongsCollection }

type Setlist struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	MinistryID  string `gorm:"index:idx_setlist_ministry"`
	Name        string
	Date        string
	Category    models.SetlistCategory
	Type        string
	Items       map[models.MassMoment]string `gorm:"serializer:json"`
	CustomItems []models.CustomSetlistItem   `gorm:"serializer:json"`
	Notes       string
	UpdatedAt   time.Time
}

func (Setlist) TableName() string { return models.SetlistsCollection }

type Musician struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	MinistryID  string `gorm:"index:idx_musician_ministry"`
	Name        string
	Instruments []string `gorm:"serializer:json"`
	Phone       string
	UpdatedAt   time.Time
}

func (Musician) TableName() string { return models.MusiciansCollection }

type Schedule struct {
	ID              string `gorm:"primaryKey;type:varchar(36)"`
	MinistryID      string `gorm:"index:idx_schedule_ministry"`
	Date            string `gorm:"index:idx_schedule_date"`
	Time            string
	Title           string
	Assignments     []models.ScheduleAssignment `gorm:"serializer:json"`
	SetlistID       string
	LiturgicalColor models.LiturgicalColor
	Notes           string
	UpdatedAt       time.Time
}

func (Schedule) TableName() string { return models.SchedulesCollection }

type Ministry struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Name       string
	OwnerID    string   `gorm:"index:idx_ministry_owner"`
	InviteCode string   `gorm:"uniqueIndex:idx_ministry_invite"`
	Members    []string `gorm:"serializer:json"`
	CreatedAt  string
}

func (Ministry) TableName() string { return models.MinistriesCollection }

type User struct {
	UID               string `gorm:"primaryKey"`
	Email             string
	DisplayName       string
	PhotoURL          string
	CurrentMinistryID string
	OwnedMinistries   []string `gorm:"serializer:json"`
	UpdatedAt         time.Time
}

func (User) TableName() string { return models.UsersCollection }

// ---- row <-> record conversion ----

func songRow(s *models.Song) *Song {
	return &Song{
		ID:          s.ID,
		Title:       s.Title,
		Key:         s.Key,
		Moments:     s.Moments,
		Seasons:     s.Seasons,
		Lyrics:      s.Lyrics,
		Chords:      s.Chords,
		YouTubeLink: s.YouTubeLink,
		CreatedBy:   s.CreatedBy,
	}
}

func (r *Song) toModel() *models.Song {
	return &models.Song{
		ID:          r.ID,
		Title:       r.Title,
		Key:         r.Key,
		Moments:     r.Moments,
		Seasons:     r.Seasons,
		Lyrics:      r.Lyrics,
		Chords:      r.Chords,
		YouTubeLink: r.YouTubeLink,
		CreatedBy:   r.CreatedBy,
	}
}

func setlistRow(s *models.Setlist) *Setlist {
	return &Setlist{
		ID:          s.ID,
		MinistryID:  s.MinistryID,
		Name:        s.Name,
		Date:        s.Date,
		Category:    s.Category,
		Type:        s.Type,
		Items:       s.Items,
		CustomItems: s.CustomItems,
		Notes:       s.Notes,
	}
}

func (r *Setlist) toModel() *models.Setlist {
	items := r.Items
	if items == nil {
		items = make(map[models.MassMoment]string)
	}
	return &models.Setlist{
		ID:          r.ID,
		MinistryID:  r.MinistryID,
		Name:        r.Name,
		Date:        r.Date,
		Category:    r.Category,
		Type:        r.Type,
		Items:       items,
		CustomItems: r.CustomItems,
		Notes:       r.Notes,
	}
}

func musicianRow(m *models.Musician) *Musician {
	return &Musician{
		ID:          m.ID,
		MinistryID:  m.MinistryID,
		Name:        m.Name,
		Instruments: m.Instruments,
		Phone:       m.Phone,
	}
}

func (r *Musician) toModel() *models.Musician {
	return &models.Musician{
		ID:          r.ID,
		MinistryID:  r.MinistryID,
		Name:        r.Name,
		Instruments: r.Instruments,
		Phone:       r.Phone,
	}
}

func scheduleRow(e *models.ScheduleEntry) *Schedule {
	return &Schedule{
		ID:              e.ID,
		MinistryID:      e.MinistryID,
		Date:            e.Date,
		Time:            e.Time,
		Title:           e.Title,
		Assignments:     e.Assignments,
		SetlistID:       e.SetlistID,
		LiturgicalColor: e.LiturgicalColor,
		Notes:           e.Notes,
	}
}

func (r *Schedule) toModel() *models.ScheduleEntry {
	return &models.ScheduleEntry{
		ID:              r.ID,
		MinistryID:      r.MinistryID,
		Date:            r.Date,
		Time:            r.Time,
		Title:           r.Title,
		Assignments:     r.Assignments,
		SetlistID:       r.SetlistID,
		LiturgicalColor: r.LiturgicalColor,
		Notes:           r.Notes,
	}
}

func ministryRow(m *models.Ministry) *Ministry {
	return &Ministry{
		ID:         m.ID,
		Name:       m.Name,
		OwnerID:    m.OwnerID,
		InviteCode: m.InviteCode,
		Members:    m.Members,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *Ministry) toModel() *models.Ministry {
	return &models.Ministry{
		ID:         r.ID,
		Name:       r.Name,
		OwnerID:    r.OwnerID,
		InviteCode: r.InviteCode,
		Members:    r.Members,
		CreatedAt:  r.CreatedAt,
	}
}

func userRow(u *models.UserProfile) *User {
	return &User{
		UID:               u.UID,
		Email:             u.Email,
		DisplayName:       u.DisplayName,
		PhotoURL:          u.PhotoURL,
		CurrentMinistryID: u.CurrentMinistryID,
		OwnedMinistries:   u.OwnedMinistries,
	}
}

func (r *User) toModel() *models.UserProfile {
	return &models.UserProfile{
		UID:               r.UID,
		Email:             r.Email,
		DisplayName:       r.DisplayName,
		PhotoURL:          r.PhotoURL,
		CurrentMinistryID: r.CurrentMinistryID,
		OwnedMinistries:   r.OwnedMinistries,
	}
}
