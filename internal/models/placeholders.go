package models

// Placeholder describes a stock image substituted for media entries whose
// url field does not resolve to an uploaded or remote file.
type Placeholder struct {
	ID       string
	ImageURL string
	Hint     string
}

var placeholders = []Placeholder{
	{ID: "gallery-1", ImageURL: "https://picsum.photos/seed/gallery-1/800/600", Hint: "party balloons"},
	{ID: "gallery-2", ImageURL: "https://picsum.photos/seed/gallery-2/800/600", Hint: "birthday cake"},
	{ID: "gallery-3", ImageURL: "https://picsum.photos/seed/gallery-3/800/600", Hint: "family gathering"},
	{ID: "gallery-4", ImageURL: "https://picsum.photos/seed/gallery-4/800/600", Hint: "candle wish"},
	{ID: "gallery-5", ImageURL: "https://picsum.photos/seed/gallery-5/800/600", Hint: "gift boxes"},
	{ID: "gallery-6", ImageURL: "https://picsum.photos/seed/gallery-6/800/600", Hint: "confetti celebration"},
	{ID: "hero-1", ImageURL: "https://picsum.photos/seed/hero-1/1200/800", Hint: "festive table"},
	{ID: "hero-2", ImageURL: "https://picsum.photos/seed/hero-2/1200/800", Hint: "outdoor party"},
}

// FindPlaceholder looks a placeholder up by media id.
func FindPlaceholder(id string) (Placeholder, bool) {
	for _, p := range placeholders {
		if p.ID == id {
			return p, true
		}
	}
	return Placeholder{}, false
}
