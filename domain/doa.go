package domain

import "time"

const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
	VisibilityPrivate = "private"

	FeedTabAll       = "all"
	FeedTabFollowing = "following"
)

type User struct {
	ID        string
	Name      string
	PhotoURL  string
	Following []string
}

// Follows reports whether u follows the user with the given id.
func (u User) Follows(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}

type Doa struct {
	ID                 string
	UserID             string
	Text               string
	Visibility         string
	TemplateID         string
	TemplateBackground string
	AmeenCount         int
	AmeenBy            map[string]bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Clone returns a copy that does not share the ameen set.
func (d Doa) Clone() Doa {
	ameen := make(map[string]bool, len(d.AmeenBy))
	for k, v := range d.AmeenBy {
		ameen[k] = v
	}
	d.AmeenBy = ameen
	return d
}

type DoaInput struct {
	Text       string
	Visibility string
	TemplateID string
}

type DoaFilter struct {
	Query string
	Tab   string
}

// DoaView is a doa as seen by one viewer.
type DoaView struct {
	Doa
	Author    User
	IsAmeen   bool
	PostedAgo string
}

type MyDoas struct {
	Regular   []DoaView
	Templates []DoaView
}

type Template struct {
	ID         string
	Background string
}

type Report struct {
	ID         string
	DoaID      string
	ReporterID string
	Reason     string
	CreatedAt  time.Time
}

type ShareContent struct {
	DoaID string
	Text  string
}
