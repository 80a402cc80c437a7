package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/dastanaron/mediacat/internal/models"
	"github.com/dastanaron/mediacat/internal/service"
	"github.com/dastanaron/mediacat/internal/thumbnail"
)

// ErrSuperseded is returned by AttachImage when a later selection replaced this one
var ErrSuperseded = errors.New("image selection superseded")

// FormMode tells whether the form creates a new item or edits an existing one
type FormMode int

const (
	ModeCreate FormMode = iota
	ModeEdit
)

// StarControl is one selector of the rating widget
type StarControl struct {
	Value    int
	Filled   bool
	Selected bool
}

// FormController collects the fields of one item and commits it to the catalog.
// It is UI independent; App binds it to tview widgets.
type FormController struct {
	catalog *service.CatalogService
	load    func(ctx context.Context, path string) (string, error)

	editID string

	Type  string
	Title string
	Tags  string
	Date  string

	rating int

	mu      sync.Mutex
	image   string
	pending uint64
}

// NewFormController loads a fresh copy of the catalog and enters edit mode
// when editID names a stored item, create mode otherwise.
func NewFormController(catalog *service.CatalogService, thumbs *thumbnail.Processor, editID string) *FormController {
	catalog.Reload()
	f := &FormController{catalog: catalog, load: thumbs.Load}
	if editID == "" {
		return f
	}
	it := catalog.GetByID(editID)
	if it == nil {
		return f
	}
	f.editID = it.ID
	f.Type = it.Type
	f.Title = it.Title
	f.Tags = it.Tags
	f.Date = it.Date
	f.rating = it.Rating
	f.image = it.Image
	return f
}

// Mode reports create or edit mode
func (f *FormController) Mode() FormMode {
	if f.editID != "" {
		return ModeEdit
	}
	return ModeCreate
}

// EditID returns the id being edited, empty in create mode
func (f *FormController) EditID() string {
	return f.editID
}

// SubmitLabel returns the label of the submit button
func (f *FormController) SubmitLabel() string {
	if f.Mode() == ModeEdit {
		return UpdateLabel
	}
	return SaveLabel
}

// Rating returns the pending rating
func (f *FormController) Rating() int {
	return f.rating
}

// SetRating selects one of the star controls; out of range values are ignored
func (f *FormController) SetRating(n int) {
	if n < models.MinRating || n > models.MaxRating {
		return
	}
	f.rating = n
}

// RatingControls returns the five star controls from 5 down to 1
func (f *FormController) RatingControls() []StarControl {
	controls := make([]StarControl, 0, models.MaxRating)
	for i := models.MaxRating; i >= 1; i-- {
		controls = append(controls, StarControl{
			Value:    i,
			Filled:   f.rating >= i,
			Selected: f.rating == i,
		})
	}
	return controls
}

// Image returns the pending thumbnail data URL
func (f *FormController) Image() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.image
}

// ClearImage drops the pending thumbnail
func (f *FormController) ClearImage() {
	f.mu.Lock()
	f.image = ""
	f.pending++
	f.mu.Unlock()
}

// AttachImage validates, reads and shrinks the file at path and makes it the
// pending thumbnail. It blocks while reading and decoding, so the UI calls it
// off the event loop. On any error the previous thumbnail is kept; when a
// later call started meanwhile, the result is dropped with ErrSuperseded.
func (f *FormController) AttachImage(ctx context.Context, path string) error {
	if err := thumbnail.ValidateName(path); err != nil {
		return err
	}

	f.mu.Lock()
	f.pending++
	ticket := f.pending
	f.mu.Unlock()

	dataURL, err := f.load(ctx, path)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if ticket != f.pending {
		return ErrSuperseded
	}
	f.image = dataURL
	return nil
}

// Draft returns the current field values
func (f *FormController) Draft() models.Draft {
	return models.Draft{
		Type:   f.Type,
		Title:  f.Title,
		Tags:   f.Tags,
		Date:   f.Date,
		Rating: f.rating,
		Image:  f.Image(),
	}
}

// Submit validates the fields and creates or updates the item.
// A missing title returns service.ErrTitleRequired and leaves everything as is.
func (f *FormController) Submit() (models.MediaItem, error) {
	return f.catalog.Submit(f.editID, f.Draft())
}

// Reset clears every field and returns to create mode
func (f *FormController) Reset() {
	f.editID = ""
	f.Type = ""
	f.Title = ""
	f.Tags = ""
	f.Date = ""
	f.rating = 0
	f.ClearImage()
}
