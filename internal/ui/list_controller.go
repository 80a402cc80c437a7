package ui

import (
	"github.com/dastanaron/mediacat/internal/service"
	"github.com/dastanaron/mediacat/internal/view"
)

// AnyTypeLabel is the type filter option matching every item
const AnyTypeLabel = "any"

// Confirmer asks the user prompt and calls onConfirm only when accepted
type Confirmer func(prompt string, onConfirm func())

// ListController derives the filtered and sorted card list from the catalog.
// Every Render recomputes the whole view from the working copy.
type ListController struct {
	catalog *service.CatalogService
	Query   service.Query
}

// NewListController loads a fresh copy of the catalog
func NewListController(catalog *service.CatalogService) *ListController {
	catalog.Reload()
	return &ListController{catalog: catalog}
}

// Reload re-reads the stored collection, keeping the current query
func (l *ListController) Reload() {
	l.catalog.Reload()
}

// Render runs filter, sort and card rendering
func (l *ListController) Render() view.ListView {
	return view.NewListView(l.catalog.Search(l.Query))
}

// SetTypeFilter selects a type; AnyTypeLabel or empty matches all
func (l *ListController) SetTypeFilter(t string) {
	if t == AnyTypeLabel {
		t = service.AnyType
	}
	l.Query.Type = t
}

// TypeOptions lists the type filter choices, "any" first
func (l *ListController) TypeOptions() []string {
	return append([]string{AnyTypeLabel}, l.catalog.Types()...)
}

// RequestDelete asks for confirmation and then removes id from the catalog.
// done receives the result of a confirmed delete; a cancel changes nothing.
func (l *ListController) RequestDelete(id string, confirm Confirmer, done func(err error)) {
	confirm(MsgDeleteConfirm, func() {
		err := l.catalog.Delete(id)
		if done != nil {
			done(err)
		}
	})
}
