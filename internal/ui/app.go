package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dastanaron/mediacat/internal/log"
	"github.com/dastanaron/mediacat/internal/service"
	"github.com/dastanaron/mediacat/internal/thumbnail"
	"github.com/dastanaron/mediacat/internal/view"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	ModeList   = 1
	ModeFilter = 2
	ModeForm   = 3
	ModeModal  = 4
)

const (
	pageList    = "list"
	pageForm    = "form"
	pageAlert   = "alert"
	pageConfirm = "confirm"

	labelType  = "Type"
	labelTitle = "Title"
	labelTags  = "Tags"
	labelDate  = "Date"
	labelImage = "Image file"
)

var sortLabels = map[service.SortOrder]string{
	service.SortCreatedDesc: "Newest first",
	service.SortCreatedAsc:  "Oldest first",
	service.SortRatingDesc:  "Rating high-low",
	service.SortRatingAsc:   "Rating low-high",
	service.SortTitleAsc:    "Title A-Z",
	service.SortTitleDesc:   "Title Z-A",
}

// App represents the TUI application: a list page and a form page over one catalog
type App struct {
	app     *tview.Application
	pages   *tview.Pages
	mode    uint8
	ctx     context.Context
	cancel  context.CancelFunc
	catalog *service.CatalogService
	thumbs  *thumbnail.Processor

	// list page
	listCtl      *ListController
	search       *tview.InputField
	typeFilter   *tview.DropDown
	ratingFilter *tview.DropDown
	sortSelect   *tview.DropDown
	list         *tview.List
	detail       *tview.TextView
	status       *tview.TextView
	cards        []view.Card
	filterRing   []tview.Primitive
	filterFocus  int

	// form page
	formCtl    *FormController
	form       *tview.Form
	ratingView *tview.TextView
	preview    *tview.TextView

	startInForm bool
	startEditID string
}

// NewApp creates a new application instance
func NewApp(catalog *service.CatalogService, thumbs *thumbnail.Processor) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		app:          tview.NewApplication(),
		pages:        tview.NewPages(),
		mode:         ModeList,
		ctx:          ctx,
		cancel:       cancel,
		catalog:      catalog,
		thumbs:       thumbs,
		search:       tview.NewInputField().SetLabel("Search: "),
		typeFilter:   tview.NewDropDown().SetLabel(" Type: "),
		ratingFilter: tview.NewDropDown().SetLabel(" Min rating: "),
		sortSelect:   tview.NewDropDown().SetLabel(" Sort: "),
		list:         tview.NewList(),
		detail:       tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		status:       tview.NewTextView().SetDynamicColors(true),
	}
}

// StartInForm opens the form page first; an empty editID starts in create mode
func (a *App) StartInForm(editID string) *App {
	a.startInForm = true
	a.startEditID = editID
	return a
}

// Run starts the application
func (a *App) Run() error {
	defer a.cancel()

	a.list.SetBorder(true).SetTitle("Items")
	a.detail.SetBorder(true).SetTitle("Details")

	a.listCtl = NewListController(a.catalog)

	filters := tview.NewFlex().
		AddItem(a.search, 0, 2, false).
		AddItem(a.typeFilter, 0, 1, false).
		AddItem(a.ratingFilter, 0, 1, false).
		AddItem(a.sortSelect, 0, 1, false)

	cols := tview.NewFlex().
		AddItem(a.list, 0, 3, true).
		AddItem(a.detail, 0, 2, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(filters, 1, 0, false).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages.AddPage(pageList, main, true, true)
	a.filterRing = []tview.Primitive{a.search, a.typeFilter, a.ratingFilter, a.sortSelect}

	a.search.SetChangedFunc(func(text string) {
		a.listCtl.Query.Search = text
		a.refreshList()
	})
	a.search.SetDoneFunc(a.onSearchDone)
	a.ratingFilter.SetOptions(ratingFilterOptions(), func(_ string, index int) {
		if index < 0 || a.listCtl == nil {
			return
		}
		a.listCtl.Query.MinRating = index
		a.refreshList()
	})
	a.ratingFilter.SetCurrentOption(0)
	a.sortSelect.SetOptions(sortOptions(), func(_ string, index int) {
		if index < 0 || index >= len(service.SortOrders) {
			return
		}
		a.listCtl.Query.Sort = service.SortOrders[index]
		a.refreshList()
	})
	a.sortSelect.SetCurrentOption(0)
	a.list.SetChangedFunc(func(int, string, string, rune) { a.showDetails() })

	a.rebuildTypeOptions()
	a.refreshList()

	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(a.globalInput)

	if a.startInForm {
		a.openForm(a.startEditID)
	} else {
		a.setMode(ModeList)
	}
	return a.app.Run()
}

func (a *App) updateStatus() {
	countText := fmt.Sprintf(" [::b]%d[::r] shown", len(a.cards))
	statusText := "[::b]Tab[::r] filters  [::b]/[::r] search  [::b]a[::r] add  [::b]e[::r]/[::b]Enter[::r] edit  [::b]d[::r] del  [::b]q[::r] quit" + countText
	switch a.mode {
	case ModeFilter:
		statusText = "[::b]Tab[::r] next filter  [::b]Esc[::r] back to list" + countText
	case ModeForm:
		statusText = "[::b]Tab[::r] next field  [::b]Ctrl-S[::r] save  [::b]Esc[::r] cancel"
	}
	a.status.SetText(statusText)
}

// reloadList re-reads the catalog, refreshes the type choices and re-renders
func (a *App) reloadList() {
	a.listCtl.Reload()
	a.rebuildTypeOptions()
	a.refreshList()
}

func (a *App) rebuildTypeOptions() {
	options := a.listCtl.TypeOptions()
	current := 0
	for i, opt := range options {
		if opt == a.listCtl.Query.Type {
			current = i
		}
	}
	a.typeFilter.SetOptions(options, func(text string, index int) {
		if index < 0 {
			return
		}
		a.listCtl.SetTypeFilter(text)
		a.refreshList()
	})
	a.typeFilter.SetCurrentOption(current)
}

// refreshList runs the full filter, sort and render pass
func (a *App) refreshList() {
	if a.listCtl == nil {
		return
	}
	selectedID := ""
	if c := a.currentCard(); c != nil {
		selectedID = c.ID
	}

	lv := a.listCtl.Render()
	a.cards = lv.Cards
	a.list.Clear()

	if lv.Empty {
		a.list.AddItem("[::d]"+view.NoResults+"[::-]", "", 0, nil)
		a.list.SetTitle("Items")
		a.showDetails()
		a.updateStatus()
		return
	}

	selected := 0
	for i, c := range lv.Cards {
		if c.ID == selectedID {
			selected = i
		}
		a.list.AddItem(tview.Escape(c.Title)+"  [yellow]"+c.Stars+"[-]", tview.Escape(c.Meta()), 0, nil)
	}
	a.list.SetTitle(fmt.Sprintf("Items (%d)", len(lv.Cards)))
	a.list.SetCurrentItem(selected)
	a.showDetails()
	a.updateStatus()
}

func (a *App) currentCard() *view.Card {
	index := a.list.GetCurrentItem()
	if index < 0 || index >= len(a.cards) {
		return nil
	}
	return &a.cards[index]
}

func (a *App) showDetails() {
	c := a.currentCard()
	if c == nil {
		a.detail.SetText("")
		return
	}

	image := c.Caption
	if c.HasImage {
		image = thumbnail.Describe(c.Image)
	}
	a.detail.SetText(fmt.Sprintf(
		"[::b]Type:[::-]\n%s\n\n[::b]Title:[::-]\n%s\n\n[::b]Tags:[::-]\n%s\n\n[::b]Date:[::-]\n%s\n\n[::b]Rating:[::-]\n%s\n\n[::b]Image:[::-]\n%s",
		tview.Escape(c.Type), tview.Escape(c.Title), tview.Escape(c.Tags),
		tview.Escape(c.Date), c.Stars, tview.Escape(image)))
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case ModeList:
		a.app.SetFocus(a.list)
	case ModeFilter:
		a.app.SetFocus(a.filterRing[a.filterFocus])
	}
	a.updateStatus()
}

func (a *App) onSearchDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		a.setMode(ModeList)
	case tcell.KeyEscape:
		a.search.SetText("")
		a.setMode(ModeList)
	}
}

func (a *App) globalInput(event *tcell.EventKey) *tcell.EventKey {
	// Modals handle their own keys
	if a.pages.HasPage(pageAlert) || a.pages.HasPage(pageConfirm) {
		return event
	}

	switch a.mode {
	case ModeList:
		switch event.Key() {
		case tcell.KeyTab:
			a.filterFocus = 0
			a.setMode(ModeFilter)
			return nil
		case tcell.KeyEnter:
			if c := a.currentCard(); c != nil {
				a.openForm(c.ID)
			}
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case '/':
				a.filterFocus = 0
				a.setMode(ModeFilter)
				return nil
			case 'a':
				a.openForm("")
				return nil
			case 'e':
				if c := a.currentCard(); c != nil {
					a.openForm(c.ID)
				}
				return nil
			case 'd':
				if c := a.currentCard(); c != nil {
					a.deleteItem(c.ID)
				}
				return nil
			case 'q':
				a.app.Stop()
				return nil
			}
		}
	case ModeFilter:
		switch event.Key() {
		case tcell.KeyTab:
			a.filterFocus++
			if a.filterFocus >= len(a.filterRing) {
				a.filterFocus = 0
				a.setMode(ModeList)
				return nil
			}
			a.setMode(ModeFilter)
			return nil
		case tcell.KeyEscape:
			// the search field handles its own Escape
			if a.filterFocus != 0 {
				a.setMode(ModeList)
				return nil
			}
		}
	case ModeForm:
		switch event.Key() {
		case tcell.KeyEscape:
			a.closeForm()
			return nil
		case tcell.KeyCtrlS:
			a.submitForm()
			return nil
		}
	}
	return event
}

func (a *App) deleteItem(id string) {
	a.listCtl.RequestDelete(id, a.showConfirm, func(err error) {
		if err != nil {
			a.showAlert(AlertMessage(err))
			return
		}
		lg := log.WithComponent("ui")
		lg.Info().Str("id", id).Msg("item deleted")
		a.reloadList()
	})
}

// openForm shows the form page; editID selects edit mode when it names a stored item
func (a *App) openForm(editID string) {
	a.formCtl = NewFormController(a.catalog, a.thumbs, editID)
	a.buildForm()
	a.mode = ModeForm
	a.updateStatus()
}

func (a *App) buildForm() {
	f := a.formCtl

	a.ratingView = tview.NewTextView().SetDynamicColors(true)
	a.preview = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	a.ratingView.SetBorder(true).SetTitle("Rating")
	a.preview.SetBorder(true).SetTitle("Thumbnail")

	controls := f.RatingControls()
	ratingOptions := make([]string, len(controls))
	initial := -1
	for i, c := range controls {
		ratingOptions[i] = view.StarsText(c.Value)
		if c.Selected {
			initial = i
		}
	}

	form := tview.NewForm()
	form.AddInputField(labelType, f.Type, 40, nil, func(t string) { f.Type = t })
	form.AddInputField(labelTitle, f.Title, 60, nil, func(t string) { f.Title = t })
	form.AddInputField(labelTags, f.Tags, 60, nil, func(t string) { f.Tags = t })
	form.AddInputField(labelDate, f.Date, 12, nil, func(t string) { f.Date = t })
	if field, ok := form.GetFormItemByLabel(labelDate).(*tview.InputField); ok {
		field.SetPlaceholder("YYYY-MM-DD")
	}
	form.AddDropDown("Rating", ratingOptions, initial, func(_ string, index int) {
		if index < 0 || index >= len(controls) {
			return
		}
		f.SetRating(controls[index].Value)
		a.renderRating()
	})
	form.AddInputField(labelImage, "", 60, nil, nil)
	if field, ok := form.GetFormItemByLabel(labelImage).(*tview.InputField); ok {
		field.SetPlaceholder("path to .jpg/.jpeg, or drop a file here")
	}

	form.AddButton("Attach", a.attachImage)
	form.AddButton(f.SubmitLabel(), a.submitForm)
	form.AddButton("Reset", func() {
		a.formCtl.Reset()
		a.buildForm()
	})
	form.AddButton("Cancel", a.closeForm)

	title := "New item"
	if f.Mode() == ModeEdit {
		title = "Edit item"
	}
	form.SetBorder(true).SetTitle(title)
	a.form = form

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.ratingView, 3, 0, false).
		AddItem(a.preview, 0, 1, false)
	layout := tview.NewFlex().
		AddItem(form, 0, 3, true).
		AddItem(side, 0, 1, false)

	a.renderRating()
	a.renderPreview()

	a.pages.AddAndSwitchToPage(pageForm, layout, true)
	a.app.SetFocus(form)
}

// renderRating draws the 5 star controls, numbered 5 down to 1
func (a *App) renderRating() {
	if a.ratingView == nil || a.formCtl == nil {
		return
	}
	var b strings.Builder
	for _, c := range a.formCtl.RatingControls() {
		glyph := "[gray]" + view.EmptyStar
		if c.Filled {
			glyph = "[gold]" + view.FilledStar
		}
		fmt.Fprintf(&b, "%s[-]%d ", glyph, c.Value)
	}
	a.ratingView.SetText(b.String())
}

func (a *App) renderPreview() {
	if a.preview == nil || a.formCtl == nil {
		return
	}
	img := a.formCtl.Image()
	if img == "" {
		a.preview.SetText("[gray]" + view.NoImageCaption + "[-]")
		return
	}
	a.preview.SetText(tview.Escape(thumbnail.Describe(img)))
}

// attachImage reads the selected file off the event loop and shows the result when done
func (a *App) attachImage() {
	field, ok := a.form.GetFormItemByLabel(labelImage).(*tview.InputField)
	if !ok {
		return
	}
	// terminals paste dropped files as a quoted path
	path := strings.Trim(strings.TrimSpace(field.GetText()), `'"`)
	if path == "" {
		return
	}
	if err := thumbnail.ValidateName(path); err != nil {
		field.SetText("")
		a.showAlert(AlertMessage(err))
		return
	}

	ctl := a.formCtl
	a.preview.SetText("Loading image...")
	go func() {
		err := ctl.AttachImage(a.ctx, path)
		a.app.QueueUpdateDraw(func() {
			if ctl != a.formCtl || errors.Is(err, ErrSuperseded) {
				return
			}
			if err != nil {
				lg := log.WithComponent("ui")
				lg.Warn().Err(err).Str("path", path).Msg("attach image failed")
				a.showAlert(AlertMessage(err))
			}
			a.renderPreview()
		})
	}()
}

func (a *App) submitForm() {
	item, err := a.formCtl.Submit()
	if err != nil {
		// stay on the form so the user can fix it
		a.showAlert(AlertMessage(err))
		return
	}
	lg := log.WithComponent("ui")
	lg.Info().
		Str("id", item.ID).
		Bool("edit", a.formCtl.Mode() == ModeEdit).
		Msg("item saved")

	a.closeForm()
	for i, c := range a.cards {
		if c.ID == item.ID {
			a.list.SetCurrentItem(i)
			break
		}
	}
}

// closeForm returns to the list page, which loads a fresh copy of the catalog
func (a *App) closeForm() {
	a.pages.RemovePage(pageForm)
	a.formCtl = nil
	a.form = nil
	a.ratingView = nil
	a.preview = nil
	a.pages.SwitchToPage(pageList)
	a.reloadList()
	a.setMode(ModeList)
}

func (a *App) restoreFocus() {
	if a.pages.HasPage(pageForm) && a.form != nil {
		a.mode = ModeForm
		a.app.SetFocus(a.form)
		return
	}
	a.setMode(ModeList)
}

// showAlert shows a modal with a single OK button
func (a *App) showAlert(message string) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			a.pages.RemovePage(pageAlert)
			a.restoreFocus()
		})

	modal.SetBorder(true).SetTitle("Notice")
	a.pages.AddPage(pageAlert, modal, true, true)
	a.mode = ModeModal
	a.app.SetFocus(modal)
}

func (a *App) showConfirm(message string, onConfirm func()) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Cancel", "OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			a.pages.RemovePage(pageConfirm)
			if buttonIndex == 1 && onConfirm != nil {
				onConfirm()
			}
			if !a.pages.HasPage(pageAlert) {
				a.restoreFocus()
			}
		})

	modal.SetBorder(true).SetTitle("Confirm")
	a.pages.AddPage(pageConfirm, modal, true, true)
	a.mode = ModeModal
	a.app.SetFocus(modal)
}

func ratingFilterOptions() []string {
	options := []string{AnyTypeLabel}
	for i := 1; i <= 5; i++ {
		options = append(options, view.StarsText(i)+" +")
	}
	return options
}

func sortOptions() []string {
	options := make([]string, len(service.SortOrders))
	for i, o := range service.SortOrders {
		options[i] = sortLabels[o]
	}
	return options
}
