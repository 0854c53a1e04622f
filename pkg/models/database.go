package models

// Collection names. They double as the SQLite table names.
const (
	SongsCollection      = "sacramusic_songs"
	SetlistsCollection   = "sacramusic_setlists"
	MusiciansCollection  = "sacramusic_musicians"
	SchedulesCollection  = "sacramusic_schedules"
	UsersCollection      = "sacramusic_users"
	MinistriesCollection = "sacramusic_ministries"
)
