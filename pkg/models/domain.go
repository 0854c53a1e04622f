package models

// Song is an entry of the shared song library. Songs are global: they are
// not owned by a ministry.
type Song struct {
	ID          string             `json:"id" yaml:"id,omitempty"`
	Title       string             `json:"title" yaml:"title"`
	Key         string             `json:"key" yaml:"key,omitempty"`
	Moments     []MassMoment       `json:"moments" yaml:"moments,omitempty"`
	Seasons     []LiturgicalSeason `json:"seasons" yaml:"seasons,omitempty"`
	Lyrics      string             `json:"lyrics" yaml:"lyrics,omitempty"`
	Chords      string             `json:"chords" yaml:"chords,omitempty"`
	YouTubeLink string             `json:"youtubeLink,omitempty" yaml:"youtube_link,omitempty"`
	CreatedBy   string             `json:"createdBy,omitempty" yaml:"created_by,omitempty"`
}

// CustomSetlistItem is one slot of a free-form (non-Mass) setlist.
type CustomSetlistItem struct {
	UUID   string `json:"uuid"`
	SongID string `json:"songId"`
}

// Setlist is the song plan of one celebration, private to a ministry.
// Mass setlists use Items keyed by moment; other categories use CustomItems.
type Setlist struct {
	ID          string                `json:"id"`
	MinistryID  string                `json:"ministryId"`
	Name        string                `json:"name"`
	Date        string                `json:"date"`
	Category    SetlistCategory       `json:"category"`
	Type        string                `json:"type,omitempty"`
	Items       map[MassMoment]string `json:"items"`
	CustomItems []CustomSetlistItem   `json:"customItems,omitempty"`
	Notes       string                `json:"notes,omitempty"`
}

// SongIDs returns every referenced song id, Mass slots first in moment
// order, then custom items. Empty slots and duplicates are dropped.
func (s *Setlist) SongIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for _, m := range MassMoments {
		add(s.Items[m])
	}
	for _, item := range s.CustomItems {
		add(item.SongID)
	}
	return ids
}

// Musician is a member of a ministry's roster.
type Musician struct {
	ID          string   `json:"id"`
	MinistryID  string   `json:"ministryId"`
	Name        string   `json:"name"`
	Instruments []string `json:"instruments"`
	Phone       string   `json:"phone,omitempty"`
}

type ScheduleAssignment struct {
	MusicianID string `json:"musicianId"`
	Role       string `json:"role"`
}

// ScheduleEntry assigns musicians to a celebration.
type ScheduleEntry struct {
	ID              string               `json:"id"`
	MinistryID      string               `json:"ministryId"`
	Date            string               `json:"date"`
	Time            string               `json:"time"`
	Title           string               `json:"title"`
	Assignments     []ScheduleAssignment `json:"assignments"`
	SetlistID       string               `json:"setlistId,omitempty"`
	LiturgicalColor LiturgicalColor      `json:"liturgicalColor,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

// HasMusician reports whether the musician is assigned to the entry.
func (e *ScheduleEntry) HasMusician(musicianID string) bool {
	for _, a := range e.Assignments {
		if a.MusicianID == musicianID {
			return true
		}
	}
	return false
}

// Ministry is a music team. It is the tenant boundary for setlists,
// musicians and schedules.
type Ministry struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	OwnerID    string   `json:"ownerId"`
	InviteCode string   `json:"inviteCode"`
	Members    []string `json:"members"`
	CreatedAt  string   `json:"createdAt"`
}

// IsMember reports whether uid belongs to the ministry.
func (m *Ministry) IsMember(uid string) bool {
	for _, id := range m.Members {
		if id == uid {
			return true
		}
	}
	return false
}

// UserProfile is the application-side profile of an authenticated user.
type UserProfile struct {
	UID               string   `json:"uid"`
	Email             string   `json:"email,omitempty"`
	DisplayName       string   `json:"displayName,omitempty"`
	PhotoURL          string   `json:"photoURL,omitempty"`
	CurrentMinistryID string   `json:"currentMinistryId,omitempty"`
	OwnedMinistries   []string `json:"ownedMinistries,omitempty"`
}
