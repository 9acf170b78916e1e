package models

// Document is the whole persisted dataset. It is read and written as one
// JSON file, so every entity below carries the on-disk field names.
type Document struct {
	Years       []Year       `json:"years"`
	Admins      []AdminUser  `json:"admins"`
	SocialPosts []SocialPost `json:"socialPosts"`
}

// EmptyDocument returns a document with non-nil slices so it marshals to
// `[]` instead of `null`.
func EmptyDocument() *Document {
	return &Document{
		Years:       []Year{},
		Admins:      []AdminUser{},
		SocialPosts: []SocialPost{},
	}
}

// FindYear returns the year entry or nil.
func (d *Document) FindYear(year int) *Year {
	for i := range d.Years {
		if d.Years[i].Year == year {
			return &d.Years[i]
		}
	}
	return nil
}

type Year struct {
	Year   int     `json:"year"`
	Events []Event `json:"events"`
}

// FindEvent returns the event with the given slug or nil.
func (y *Year) FindEvent(slug string) *Event {
	for i := range y.Events {
		if y.Events[i].Slug == slug {
			return &y.Events[i]
		}
	}
	return nil
}

const (
	EventTypeBirthday = "birthday"
	EventTypeEvent    = "event"
)

type Event struct {
	Slug   string      `json:"slug"`
	Name   string      `json:"name"`
	Date   string      `json:"date"`
	Type   string      `json:"type"`
	Media  []MediaItem `json:"media"`
	Wishes []Wish      `json:"wishes"`
}

// EventSummary is an event without its media and wishes, used by listings.
type EventSummary struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	Date string `json:"date"`
	Type string `json:"type"`
}

func (e *Event) Summary() EventSummary {
	return EventSummary{Slug: e.Slug, Name: e.Name, Date: e.Date, Type: e.Type}
}

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type MediaItem struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Hint string `json:"hint"`
}

type Wish struct {
	ID            string `json:"id"`
	Author        string `json:"author"`
	Message       string `json:"message"`
	ImageURL      string `json:"imageUrl,omitempty"`
	CreatedAt     string `json:"createdAt"`
	IsAppropriate bool   `json:"isAppropriate"`
}

type AdminUser struct {
	Username string `json:"username"`
	// Stored as-is; listings strip it before responding.
	Password string `json:"password,omitempty"`
}

type SocialPost struct {
	ID          string `json:"id"`
	Platform    string `json:"platform"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
	IsActive    bool   `json:"isActive"`
}
