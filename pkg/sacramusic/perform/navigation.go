package perform

import "github.com/himanishpuri/SacraMusic/pkg/models"

// Step points at a neighbouring song of a setlist. Index is the position in
// the setlist's custom items, or -1 for Mass setlists where the song id alone
// identifies the slot.
type Step struct {
	SongID string `json:"songId"`
	Index  int    `json:"index"`
}

// Nav is the position of the current song inside a setlist.
type Nav struct {
	SetlistID   string `json:"setlistId"`
	SetlistName string `json:"setlistName"`
	Prev        *Step  `json:"prev,omitempty"`
	Next        *Step  `json:"next,omitempty"`
}

// Navigation finds the songs before and after songID in the setlist.
//
// Mass setlists (and setlists without a category) are walked in liturgical
// moment order, skipping empty slots; a song used at two moments resolves to
// its first one. Other categories are walked through CustomItems, starting
// at idx when idx >= 0 and at the first item holding songID otherwise.
func Navigation(setlist *models.Setlist, songID string, idx int) *Nav {
	if setlist == nil {
		return nil
	}
	nav := &Nav{SetlistID: setlist.ID, SetlistName: setlist.Name}

	if setlist.Category.IsMass() {
		var ordered []string
		for _, m := range models.MassMoments {
			if id := setlist.Items[m]; id != "" {
				ordered = append(ordered, id)
			}
		}
		cur := indexOf(ordered, songID)
		if cur > 0 {
			nav.Prev = &Step{SongID: ordered[cur-1], Index: -1}
		}
		if cur >= 0 && cur < len(ordered)-1 {
			nav.Next = &Step{SongID: ordered[cur+1], Index: -1}
		}
		return nav
	}

	items := setlist.CustomItems
	cur := idx
	if cur < 0 {
		cur = -1
		for i, item := range items {
			if item.SongID == songID {
				cur = i
				break
			}
		}
	}
	if cur < 0 || cur >= len(items) {
		return nav
	}
	if cur > 0 {
		nav.Prev = &Step{SongID: items[cur-1].SongID, Index: cur - 1}
	}
	if cur < len(items)-1 {
		nav.Next = &Step{SongID: items[cur+1].SongID, Index: cur + 1}
	}
	return nav
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
