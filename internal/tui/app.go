package tui

import (
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lnk/internal/linkeditor"
	"github.com/nikbrunner/lnk/internal/model"
	"github.com/nikbrunner/lnk/internal/pagination"
	"github.com/nikbrunner/lnk/internal/preview"
	"github.com/nikbrunner/lnk/internal/storage"
	"github.com/nikbrunner/lnk/internal/suggest"
	"github.com/nikbrunner/lnk/internal/tui/layout"
	"github.com/sirupsen/logrus"
)

// Messages produced by the editor callbacks and list actions.
type (
	linkChangedMsg struct {
		id    string
		value model.LinkValue
	}
	linkRemovedMsg struct {
		id string
	}
	editorClosedMsg struct{}
	yankedMsg       struct {
		url string
		err error
	}
)

// App is the main bubbletea model: a paginated list of stored links with
// the link editor in a modal.
type App struct {
	store        *model.Store
	storage      storage.Storage
	suggestions  suggest.Provider
	previews     preview.Fetcher
	config       storage.Config
	log          logrus.FieldLogger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode    Mode
	items   []Item
	cursor  int
	editor  EditorState
	confirm ConfirmState

	// For gg command
	lastKeyWasG bool

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store        *model.Store
	Storage      storage.Storage    // optional, changes are kept in memory without it
	Suggestions  suggest.Provider   // optional
	Previews     preview.Fetcher    // optional
	Config       *storage.Config    // optional, uses default if nil
	Logger       logrus.FieldLogger // optional
	Keys         *KeyMap            // optional, uses default if nil
	Styles       *Styles            // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	config := storage.DefaultConfig()
	if params.Config != nil {
		config = *params.Config
	}
	if config.PerPage < 1 {
		config.PerPage = 1
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	logger := params.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	store := params.Store
	if store == nil {
		store = model.NewStore()
	}

	app := App{
		store:        store,
		storage:      params.Storage,
		suggestions:  params.Suggestions,
		previews:     params.Previews,
		config:       config,
		log:          logger.WithField("component", "tui"),
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutConfig,
		width:        80,
		height:       24,
	}

	app.refreshItems()
	return app
}

// refreshItems rebuilds the items slice from the store.
func (a *App) refreshItems() {
	a.items = make([]Item, 0, len(a.store.Links))
	for i := range a.store.Links {
		a.items = append(a.items, Item{Link: &a.store.Links[i]})
	}

	if a.cursor >= len(a.items) {
		a.cursor = len(a.items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Items returns the current list of items.
func (a App) Items() []Item {
	return a.items
}

// Editor returns the editor of the open modal.
func (a App) Editor() linkeditor.Editor {
	return a.editor.Editor
}

// Message returns the message line text.
func (a App) Message() string {
	return a.messageText
}

// CurrentPage returns the 1-based page the cursor is on.
func (a App) CurrentPage() int {
	return a.cursor/a.config.PerPage + 1
}

// PageCount returns the number of list pages.
func (a App) PageCount() int {
	return pagination.Pages(len(a.items), a.config.PerPage)
}

// Summary returns the pagination summary shown in the footer.
func (a App) Summary() string {
	return pagination.Format(pagination.Params{
		CurrentPage: a.CurrentPage(),
		PerPage:     a.config.PerPage,
		FoundPosts:  len(a.items),
		DisplayType: pagination.ParseDisplayType(a.config.PaginationDisplay),
	})
}

// WithDimensions returns a copy of the App sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	a.editor.Editor.SetWidth(a.editorWidth())
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.editor.Editor.SetWidth(a.editorWidth())
		return a, nil

	case linkChangedMsg:
		a.applyChange(msg)
		return a, nil

	case linkRemovedMsg:
		a.removeLink(msg.id)
		a.closeEditor()
		return a, nil

	case editorClosedMsg:
		a.closeEditor()
		return a, nil

	case yankedMsg:
		if msg.err != nil {
			a.setMessage(MessageError, "Copy failed: "+msg.err.Error())
		} else {
			a.setMessage(MessageSuccess, "Copied "+msg.url)
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeEditor:
			if msg.Type == tea.KeyCtrlC {
				return a, tea.Quit
			}
		case ModeConfirmDelete:
			return a.updateConfirm(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	// Everything else belongs to the editor (keys, creation results,
	// previews, cursor blink)
	if a.mode == ModeEditor {
		var cmd tea.Cmd
		a.editor.Editor, cmd = a.editor.Editor.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false
	a.messageText = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.items) > 0 && a.cursor < len(a.items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.items) > 0 {
			a.cursor = len(a.items) - 1
		}

	case key.Matches(msg, a.keys.NextPage):
		if page := a.CurrentPage(); page < a.PageCount() {
			a.cursor = page * a.config.PerPage
		}

	case key.Matches(msg, a.keys.PrevPage):
		if page := a.CurrentPage(); page > 1 {
			a.cursor = (page - 2) * a.config.PerPage
		}

	case key.Matches(msg, a.keys.Add):
		cmd := a.openEditor(nil)
		return a, cmd

	case key.Matches(msg, a.keys.Edit):
		if item, ok := a.selected(); ok {
			cmd := a.openEditor(item.Link)
			return a, cmd
		}

	case key.Matches(msg, a.keys.Delete):
		if item, ok := a.selected(); ok {
			a.confirm = ConfirmState{LinkID: item.ID(), Title: item.Title(), URL: item.URL()}
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.YankURL):
		if item, ok := a.selected(); ok {
			url := item.URL()
			return a, func() tea.Msg {
				return yankedMsg{url: url, err: clipboard.WriteAll(url)}
			}
		}

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.removeLink(a.confirm.LinkID)
		a.confirm.Reset()
		a.mode = ModeNormal
	case key.Matches(msg, a.keys.Cancel):
		a.confirm.Reset()
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Help), key.Matches(msg, a.keys.Quit), msg.Type == tea.KeyEsc:
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) selected() (Item, bool) {
	if len(a.items) == 0 || a.cursor >= len(a.items) {
		return Item{}, false
	}
	return a.items[a.cursor], true
}

// openEditor opens the editor modal on link, or on a new link when nil.
func (a *App) openEditor(link *model.Link) tea.Cmd {
	id := model.GenerateUUID()
	var value *model.LinkValue
	var slots []linkeditor.Slot

	if link != nil {
		id = link.ID
		v := link.Value.Clone()
		value = &v
		saved := link.UpdatedAt.Format("2006-01-02 15:04")
		slots = append(slots, linkeditor.Slot{
			Name: linkeditor.SlotPreviewAfter,
			Render: func(ctx linkeditor.Context) string {
				return ctx.Styles.Muted.Render("Saved " + saved)
			},
		})
	}

	editor := linkeditor.New(linkeditor.Params{
		Value:    value,
		Settings: a.config.Settings,
		OnChange: func(v model.LinkValue) tea.Cmd {
			return func() tea.Msg { return linkChangedMsg{id: id, value: v} }
		},
		OnRemove: func() tea.Cmd {
			return func() tea.Msg { return linkRemovedMsg{id: id} }
		},
		OnCancel: func() tea.Cmd {
			return func() tea.Msg { return editorClosedMsg{} }
		},
		ShowSuggestions:            true,
		ShowInitialSuggestions:     a.config.ShowInitialSuggestions,
		WithCreateSuggestion:       a.config.WithCreateSuggestion,
		HasTextControl:             a.config.HasTextControl,
		HasRichPreviews:            a.config.HasRichPreviews,
		CreateSuggestionButtonText: a.config.CreateSuggestionButtonText,
		Suggestions:                a.suggestions,
		Previews:                   a.previews,
		Slots:                      slots,
		Width:                      a.editorWidth(),
	})

	a.editor = EditorState{Editor: editor, LinkID: id, IsNew: link == nil}
	a.mode = ModeEditor
	a.messageText = ""

	initCmd := a.editor.Editor.Init()
	focusCmd := a.editor.Editor.Focus()
	return tea.Batch(initCmd, focusCmd)
}

func (a *App) closeEditor() {
	if a.mode != ModeEditor {
		return
	}
	a.editor.Reset()
	a.mode = ModeNormal
}

func (a *App) editorWidth() int {
	w := layout.ModalWidth(a.width, layout.ModalEditor, a.layoutConfig.Modal)
	// Modal border and padding
	return w - 6
}

func (a *App) applyChange(msg linkChangedMsg) {
	isNew := a.store.GetLinkByID(msg.id) == nil
	a.store.UpsertLink(msg.id, msg.value)
	a.refreshItems()

	if isNew {
		a.cursor = len(a.items) - 1
	}

	if err := a.save(); err != nil {
		a.setMessage(MessageError, "Save failed: "+err.Error())
		return
	}
	a.log.WithFields(logrus.Fields{"id": msg.id, "url": msg.value.URL}).Info("link saved")
	a.setMessage(MessageSuccess, "Link saved")
}

func (a *App) removeLink(id string) {
	if !a.store.RemoveLink(id) {
		return
	}
	a.refreshItems()

	if err := a.save(); err != nil {
		a.setMessage(MessageError, "Save failed: "+err.Error())
		return
	}
	a.log.WithField("id", id).Info("link removed")
	a.setMessage(MessageSuccess, "Link removed")
}

func (a *App) save() error {
	if a.storage == nil {
		return nil
	}
	if err := a.storage.Save(a.store); err != nil {
		a.log.WithError(err).Error("save store")
		return err
	}
	return nil
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
