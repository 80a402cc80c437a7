package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dastanaron/mediacat/internal/models"
	"github.com/dastanaron/mediacat/internal/repository"

	"golang.org/x/text/language"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
	ErrNotFound      = errors.New("item not found")
)

// CatalogService holds one working copy of the media collection.
// The copy is loaded by Reload and written back in full on every mutation;
// nothing is shared between services, so the last writer wins.
type CatalogService struct {
	repo   repository.Repository
	items  []models.MediaItem
	policy models.EditPolicy
	now    func() time.Time
	newID  func() string
	locale language.Tag
}

// Option customises a CatalogService
type Option func(*CatalogService)

// WithEditPolicy selects how edits treat CreatedAt
func WithEditPolicy(p models.EditPolicy) Option {
	return func(s *CatalogService) { s.policy = p }
}

// WithLocale sets the collation locale used by title sorts
func WithLocale(tag language.Tag) Option {
	return func(s *CatalogService) { s.locale = tag }
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *CatalogService) { s.now = now }
}

// WithIDGenerator replaces the id source
func WithIDGenerator(newID func() string) Option {
	return func(s *CatalogService) { s.newID = newID }
}

// NewCatalogService creates a catalog service and loads the stored collection
func NewCatalogService(repo repository.Repository, opts ...Option) *CatalogService {
	s := &CatalogService{
		repo:   repo,
		policy: models.EditPreserveCreatedAt,
		now:    time.Now,
		newID:  repository.UID,
		locale: language.English,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reload()
	return s
}

// Reload replaces the working copy with the stored collection
func (s *CatalogService) Reload() {
	s.items = s.repo.Items().LoadAll()
}

// Save writes the working copy back to storage
func (s *CatalogService) Save() error {
	return s.repo.Items().SaveAll(s.items)
}

// Policy returns the edit policy in effect
func (s *CatalogService) Policy() models.EditPolicy {
	return s.policy
}

// ListAll returns a copy of the working collection in storage order
func (s *CatalogService) ListAll() []models.MediaItem {
	out := make([]models.MediaItem, len(s.items))
	copy(out, s.items)
	return out
}

// GetByID returns the item with id, or nil
func (s *CatalogService) GetByID(id string) *models.MediaItem {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	it := s.items[i]
	return &it
}

// Create validates d, prepends a new item and persists the collection
func (s *CatalogService) Create(d models.Draft) (models.MediaItem, error) {
	d, err := normalize(d)
	if err != nil {
		return models.MediaItem{}, err
	}

	item := models.MediaItem{
		ID:        s.newID(),
		Type:      d.Type,
		Title:     d.Title,
		Tags:      d.Tags,
		Date:      d.Date,
		Rating:    d.Rating,
		Image:     d.Image,
		CreatedAt: s.now().UnixMilli(),
	}
	s.items = append([]models.MediaItem{item}, s.items...)
	if err := s.Save(); err != nil {
		s.items = s.items[1:]
		return models.MediaItem{}, fmt.Errorf("save new item: %w", err)
	}
	return item, nil
}

// Update replaces the editable fields of item id with d and persists the collection.
// The id never changes; CreatedAt follows the service's EditPolicy.
func (s *CatalogService) Update(id string, d models.Draft) (models.MediaItem, error) {
	d, err := normalize(d)
	if err != nil {
		return models.MediaItem{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return models.MediaItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	prev := s.items[i]
	item := prev
	item.Type = d.Type
	item.Title = d.Title
	item.Tags = d.Tags
	item.Date = d.Date
	item.Rating = d.Rating
	item.Image = d.Image
	if s.policy == models.EditRefreshCreatedAt {
		item.CreatedAt = s.now().UnixMilli()
	}

	s.items[i] = item
	if err := s.Save(); err != nil {
		s.items[i] = prev
		return models.MediaItem{}, fmt.Errorf("save item %s: %w", id, err)
	}
	return item, nil
}

// Submit creates an item when editID is empty or unknown, otherwise updates it
func (s *CatalogService) Submit(editID string, d models.Draft) (models.MediaItem, error) {
	if editID != "" && s.indexOf(editID) >= 0 {
		return s.Update(editID, d)
	}
	return s.Create(d)
}

// Delete removes item id and persists the collection. Unknown ids are a no-op.
func (s *CatalogService) Delete(id string) error {
	kept := make([]models.MediaItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(s.items) {
		return nil
	}
	prev := s.items
	s.items = kept
	if err := s.Save(); err != nil {
		s.items = prev
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// Replace swaps the whole working copy and persists it. Used by bulk commands.
func (s *CatalogService) Replace(items []models.MediaItem) error {
	prev := s.items
	s.items = items
	if err := s.Save(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// Search returns the filtered and sorted view of the working copy
func (s *CatalogService) Search(q Query) []models.MediaItem {
	if q.Locale == language.Und {
		q.Locale = s.locale
	}
	return q.Apply(s.items)
}

// Types returns the distinct non-empty item types, sorted
func (s *CatalogService) Types() []string {
	seen := make(map[string]bool)
	var types []string
	for _, it := range s.items {
		if it.Type == "" || seen[it.Type] {
			continue
		}
		seen[it.Type] = true
		types = append(types, it.Type)
	}
	slices.Sort(types)
	return types
}

func (s *CatalogService) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// normalize trims the free text fields and checks the invariants of a saved item
func normalize(d models.Draft) (models.Draft, error) {
	d.Type = strings.TrimSpace(d.Type)
	d.Title = strings.TrimSpace(d.Title)
	d.Tags = strings.TrimSpace(d.Tags)
	if d.Title == "" {
		return d, ErrTitleRequired
	}
	if d.Rating < models.MinRating || d.Rating > models.MaxRating {
		return d, fmt.Errorf("%w: got %d", ErrInvalidRating, d.Rating)
	}
	return d, nil
}
