package models

const (
	// MinRating and MaxRating bound the star rating of an item
	MinRating = 0
	MaxRating = 5
)

// MediaItem represents one cataloged media record.
// JSON keys follow the browser storage blob so collections can be exchanged as is.
type MediaItem struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Tags      string `json:"tags"`
	Date      string `json:"date"`
	Rating    int    `json:"rating"`
	Image     string `json:"image"`     // JPEG data URL, empty when no thumbnail
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
}

// HasImage reports whether the item carries a thumbnail
func (m MediaItem) HasImage() bool {
	return m.Image != ""
}

// Draft holds the editable fields of an item as submitted by a form
type Draft struct {
	Type   string
	Title  string
	Tags   string
	Date   string
	Rating int
	Image  string
}

// Draft returns the editable fields of the item
func (m MediaItem) Draft() Draft {
	return Draft{
		Type:   m.Type,
		Title:  m.Title,
		Tags:   m.Tags,
		Date:   m.Date,
		Rating: m.Rating,
		Image:  m.Image,
	}
}

// EditPolicy decides what happens to CreatedAt when an existing item is edited
type EditPolicy string

const (
	// EditPreserveCreatedAt keeps the original creation time on edit
	EditPreserveCreatedAt EditPolicy = "preserve"
	// EditRefreshCreatedAt stamps the edit time as the new creation time
	EditRefreshCreatedAt EditPolicy = "refresh"
)

// ParseEditPolicy maps a config value to an EditPolicy, defaulting to preserve
func ParseEditPolicy(s string) EditPolicy {
	if EditPolicy(s) == EditRefreshCreatedAt {
		return EditRefreshCreatedAt
	}
	return EditPreserveCreatedAt
}
