package linkeditor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lnk/internal/focus"
	"github.com/nikbrunner/lnk/internal/model"
	"github.com/nikbrunner/lnk/internal/preview"
	"github.com/nikbrunner/lnk/internal/suggest"
	"gotest.tools/v3/assert"
)

func boolPtr(b bool) *bool { return &b }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

// countingManager records how often focus descendants are looked up.
type countingManager struct {
	calls int
}

func (m *countingManager) FindFocusableDescendants(c focus.Container) []focus.Focusable {
	m.calls++
	return focus.Tabbable{}.FindFocusableDescendants(c)
}

// recordingManager notes whether editing ended with focus each time the
// focus effect looks up descendants.
type recordingManager struct {
	seen []bool
}

func (m *recordingManager) FindFocusableDescendants(c focus.Container) []focus.Focusable {
	if e, ok := c.(*Editor); ok {
		m.seen = append(m.seen, e.endingEditWithFocus)
	}
	return focus.Tabbable{}.FindFocusableDescendants(c)
}

type stubProvider struct {
	results []suggest.Suggestion
	page    model.Page
	err     error
	created []string
}

func (p *stubProvider) Search(string, suggest.Query) []suggest.Suggestion {
	return p.results
}

func (p *stubProvider) CreatePage(_ context.Context, title string) (model.Page, error) {
	p.created = append(p.created, title)
	return p.page, p.err
}

type stubFetcher struct {
	meta preview.Metadata
}

func (f stubFetcher) Fetch(_ context.Context, url string) (preview.Metadata, error) {
	m := f.meta
	m.URL = url
	return m, nil
}

// recorder collects OnChange and OnRemove calls.
type recorder struct {
	changes []model.LinkValue
	removes int
}

func (r *recorder) onChange(v model.LinkValue) tea.Cmd {
	r.changes = append(r.changes, v)
	return nil
}

func (r *recorder) onRemove() tea.Cmd {
	r.removes++
	return nil
}

func update(t *testing.T, e Editor, msgs ...tea.Msg) Editor {
	t.Helper()
	for _, msg := range msgs {
		e, _ = e.Update(msg)
	}
	return e
}

func TestNew_InitialMode(t *testing.T) {
	tests := []struct {
		name  string
		value *model.LinkValue
		force *bool
		want  Mode
	}{
		{name: "no value", value: nil, want: ModeEditing},
		{name: "empty url", value: &model.LinkValue{URL: ""}, want: ModeEditing},
		{name: "blank url", value: &model.LinkValue{URL: "  ", Title: "x"}, want: ModeEditing},
		{name: "url", value: &model.LinkValue{URL: "https://example.com"}, want: ModeViewing},
		{name: "forced editing", value: &model.LinkValue{URL: "https://example.com"}, force: boolPtr(true), want: ModeEditing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Params{Value: tt.value, ForceIsEditingLink: tt.force})
			assert.Equal(t, e.Mode(), tt.want)
		})
	}
}

func TestSubmit_UnchangedDoesNotNotify(t *testing.T) {
	tests := []struct {
		name  string
		value model.LinkValue
	}{
		{"normalized", model.LinkValue{URL: "https://example.com", Title: "Example"}},
		{"bare domain", model.LinkValue{URL: "example.com", Title: "Ex"}},
		{"padded title", model.LinkValue{URL: "https://x.dev", Title: "Padded "}},
		{"padded url", model.LinkValue{URL: " https://x.dev ", Title: "X"}},
		{"settings kept out of the comparison", model.LinkValue{URL: "https://x.dev"}.WithSetting(model.SettingOpensInNewTab, true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			value := tt.value
			e := New(Params{Value: &value, HasTextControl: true, OnChange: rec.onChange})

			e = update(t, e, runes("e"))
			assert.Assert(t, e.IsEditingLink())
			e = update(t, e, enter)

			if len(rec.changes) != 0 {
				t.Errorf("unchanged submit notified OnChange with %+v", rec.changes[0])
			}
			assert.Assert(t, !e.IsEditingLink())
			assert.Equal(t, e.Mode(), ModeViewing)
			assert.DeepEqual(t, *e.Value(), tt.value)
		})
	}
}

func TestSubmit_TitleOnlyChangeNotifies(t *testing.T) {
	rec := &recorder{}
	e := New(Params{
		Value:          &model.LinkValue{URL: "example.com", Title: "Ex"},
		HasTextControl: true,
		OnChange:       rec.onChange,
	})

	e = update(t, e, runes("e"))
	e.textInput.SetValue("Example")
	e = update(t, e, enter)

	assert.Equal(t, len(rec.changes), 1)
	assert.Equal(t, rec.changes[0].URL, "https://example.com")
	assert.Equal(t, rec.changes[0].Title, "Example")
}

func TestSubmit_ChangedNotifies(t *testing.T) {
	rec := &recorder{}
	e := New(Params{OnChange: rec.onChange})
	e.Focus()

	e = update(t, e, runes("example.com"), enter)

	assert.Equal(t, len(rec.changes), 1)
	assert.Equal(t, rec.changes[0].URL, "https://example.com")
	assert.Equal(t, e.Value().URL, "https://example.com")
	assert.Equal(t, e.Mode(), ModeViewing)
}

func TestSubmit_KeepsSettings(t *testing.T) {
	rec := &recorder{}
	value := model.LinkValue{URL: "https://old.example.com"}.WithSetting(model.SettingOpensInNewTab, true)
	e := New(Params{Value: &value, ForceIsEditingLink: boolPtr(true), OnChange: rec.onChange})

	e.urlInput.SetValue("https://new.example.com")
	e = update(t, e, enter)

	assert.Equal(t, len(rec.changes), 1)
	assert.Assert(t, rec.changes[0].OpensInNewTab())
}

func TestSubmit_EmptyInputIsIgnored(t *testing.T) {
	rec := &recorder{}
	e := New(Params{OnChange: rec.onChange})
	e.Focus()

	e = update(t, e, runes("   "), enter)

	assert.Equal(t, len(rec.changes), 0)
	assert.Equal(t, e.Mode(), ModeEditing)
}

func TestShowTextControl_RequiresCommittedURL(t *testing.T) {
	for _, url := range []string{"", "   ", "\t"} {
		flags := DeriveFlags(State{
			Value:          &model.LinkValue{URL: url, Title: "t"},
			IsEditingLink:  true,
			HasTextControl: true,
		})
		if flags.ShowTextControl {
			t.Errorf("ShowTextControl for url %q should be false", url)
		}
	}

	flags := DeriveFlags(State{Value: &model.LinkValue{URL: "https://x.dev"}, HasTextControl: true})
	assert.Assert(t, flags.ShowTextControl)

	flags = DeriveFlags(State{Value: &model.LinkValue{URL: "https://x.dev"}, HasTextControl: false})
	assert.Assert(t, !flags.ShowTextControl)
}

func TestDeriveFlags(t *testing.T) {
	value := &model.LinkValue{URL: "https://x.dev"}

	viewing := DeriveFlags(State{Value: value, HasRemoveHandler: true, SettingsCount: 1})
	assert.Assert(t, viewing.ShownUnlinkControl)
	assert.Assert(t, viewing.ShouldShowLinkPreview)
	assert.Assert(t, !viewing.ShouldShowEditControls)
	assert.Assert(t, viewing.ShowSettingsDrawer)

	creating := DeriveFlags(State{Value: value, HasRemoveHandler: true, IsCreatingPage: true})
	assert.Assert(t, !creating.ShownUnlinkControl)
	assert.Assert(t, !creating.ShouldShowLinkPreview)
	assert.Assert(t, !creating.ShouldShowEditControls)

	empty := DeriveFlags(State{DraftURL: "  "})
	assert.Assert(t, empty.CurrentInputIsEmpty)
	assert.Assert(t, empty.ShouldShowEditControls)
	assert.Assert(t, !empty.ShownUnlinkControl)
	assert.Assert(t, !empty.ShowSettingsDrawer)
}

func TestFocusEffect_NotRunOnMount(t *testing.T) {
	mgr := &countingManager{}
	e := New(Params{Value: &model.LinkValue{URL: "https://example.com"}, Focus: mgr})
	e.Init()

	assert.Equal(t, mgr.calls, 0)
	for _, f := range e.Focusables() {
		assert.Assert(t, !f.Focused())
	}
}

func TestFocusEffect_RunsOncePerTransition(t *testing.T) {
	mgr := &countingManager{}
	e := New(Params{
		Value:          &model.LinkValue{URL: "https://example.com", Title: "Example"},
		HasTextControl: true,
		Focus:          mgr,
	})

	// Viewing -> editing: title input present, so the URL input (second) gets focus
	e = update(t, e, runes("e"))
	assert.Equal(t, mgr.calls, 1)
	assert.Assert(t, e.urlInput.Focused())
	assert.Assert(t, !e.textInput.Focused())

	// Editing -> viewing: first descendant is the edit action
	e = update(t, e, esc)
	assert.Equal(t, mgr.calls, 2)
	assert.Assert(t, e.editButton.Focused())

	// A new upstream value is not a mode transition
	e.SetValue(&model.LinkValue{URL: "https://other.example.com"})
	assert.Equal(t, mgr.calls, 2)

	e.SetForceIsEditingLink(boolPtr(true))
	assert.Equal(t, mgr.calls, 3)

	// Unchanged override does nothing
	e.SetForceIsEditingLink(boolPtr(true))
	assert.Equal(t, mgr.calls, 3)
}

func TestFocusEffect_EndingEditWithFocus(t *testing.T) {
	mgr := &recordingManager{}
	e := New(Params{Value: &model.LinkValue{URL: "https://example.com"}, Focus: mgr})

	// Start editing and submit while the URL input holds focus
	e = update(t, e, runes("e"))
	assert.Assert(t, e.urlInput.Focused())
	e = update(t, e, enter)
	assert.DeepEqual(t, mgr.seen, []bool{false, true})
	assert.Assert(t, !e.endingEditWithFocus)

	// Leaving edit mode after the widget lost focus records false
	e = update(t, e, runes("e"))
	e.Blur()
	e = update(t, e, enter)
	assert.DeepEqual(t, mgr.seen, []bool{false, true, false, false})
}

func TestFocusEffect_FallsBackToRoot(t *testing.T) {
	provider := &stubProvider{}
	e := New(Params{
		ShowSuggestions:      true,
		WithCreateSuggestion: true,
		Suggestions:          provider,
	})
	e.Focus()
	e = update(t, e, runes("Fresh"), down, enter)

	// Nothing is focusable while creating
	assert.Equal(t, e.Mode(), ModeCreatingSuggestion)
	assert.Assert(t, e.root.Focused())
	assert.Assert(t, !e.urlInput.Focused())
}

func TestSelectSuggestion_CommitsEntity(t *testing.T) {
	rec := &recorder{}
	provider := &stubProvider{results: []suggest.Suggestion{
		{Kind: suggest.KindEntity, ID: "p1", Title: "Docs", URL: "https://docs.example.com/"},
	}}
	e := New(Params{
		ShowSuggestions: true,
		Suggestions:     provider,
		OnChange:        rec.onChange,
	})
	e.Focus()

	e = update(t, e, runes("doc"))
	assert.Equal(t, len(e.Suggestions()), 1)
	assert.Equal(t, e.SuggestionIndex(), -1)

	e = update(t, e, down, enter)

	assert.Equal(t, len(rec.changes), 1)
	assert.Equal(t, rec.changes[0].URL, "https://docs.example.com/")
	assert.Equal(t, rec.changes[0].Title, "Docs")
	assert.Equal(t, e.Mode(), ModeViewing)
}

func TestSelectSuggestion_DraftTitleWins(t *testing.T) {
	rec := &recorder{}
	provider := &stubProvider{results: []suggest.Suggestion{
		{Kind: suggest.KindEntity, Title: "Docs", URL: "https://docs.example.com/"},
	}}
	e := New(Params{
		Value:              &model.LinkValue{URL: "https://old.example.com", Title: "Read the docs"},
		ForceIsEditingLink: boolPtr(true),
		HasTextControl:     true,
		ShowSuggestions:    true,
		Suggestions:        provider,
		OnChange:           rec.onChange,
	})

	e.urlInput.SetValue("doc")
	e.refreshSuggestions()
	e = update(t, e, down, enter)

	assert.Equal(t, len(rec.changes), 1)
	assert.Equal(t, rec.changes[0].URL, "https://docs.example.com/")
	assert.Equal(t, rec.changes[0].Title, "Read the docs")
}

func TestSuggestions_URLEntry(t *testing.T) {
	e := New(Params{ShowSuggestions: true, Suggestions: &stubProvider{}})
	e.urlInput.SetValue("example.com")
	e.refreshSuggestions()

	assert.Equal(t, len(e.Suggestions()), 1)
	assert.Equal(t, e.Suggestions()[0].Kind, suggest.KindURL)
	assert.Equal(t, e.Suggestions()[0].URL, "https://example.com")

	e = New(Params{ShowSuggestions: true, NoURLSuggestion: true})
	e.urlInput.SetValue("example.com")
	e.refreshSuggestions()
	assert.Equal(t, len(e.Suggestions()), 0)
}

func TestSuggestions_InitialOnlyWhenEnabled(t *testing.T) {
	provider := &stubProvider{results: []suggest.Suggestion{{Title: "Recent", URL: "https://r.dev"}}}

	e := New(Params{ShowSuggestions: true, Suggestions: provider})
	assert.Equal(t, len(e.Suggestions()), 0)

	e = New(Params{ShowSuggestions: true, ShowInitialSuggestions: true, Suggestions: provider})
	assert.Equal(t, len(e.Suggestions()), 1)
}

func TestNoDirectEntry_BlocksFreeSubmit(t *testing.T) {
	rec := &recorder{}
	e := New(Params{NoDirectEntry: true, ShowSuggestions: true, OnChange: rec.onChange})
	e.Focus()

	e = update(t, e, runes("example.com"))
	assert.Equal(t, len(e.Suggestions()), 0)

	e = update(t, e, enter)
	assert.Equal(t, len(rec.changes), 0)
	assert.Equal(t, e.Mode(), ModeEditing)
}

func TestCreateSuggestion_Success(t *testing.T) {
	rec := &recorder{}
	page := model.Page{ID: "p1", Title: "Fresh", URL: "https://example.com/fresh/"}
	provider := &stubProvider{page: page}
	mgr := &countingManager{}
	e := New(Params{
		ShowSuggestions:      true,
		WithCreateSuggestion: true,
		Suggestions:          provider,
		OnChange:             rec.onChange,
		Focus:                mgr,
	})
	e.Focus()
	before := mgr.calls

	e = update(t, e, runes("Fresh"))
	assert.Equal(t, e.Suggestions()[len(e.Suggestions())-1].Kind, suggest.KindCreate)
	assert.Equal(t, mgr.calls, before)

	e = update(t, e, down, enter)
	assert.Equal(t, mgr.calls, before+1)
	assert.Assert(t, e.IsCreatingPage())
	assert.Equal(t, e.Mode(), ModeCreatingSuggestion)
	assert.Assert(t, strings.Contains(e.View(), "Creating page"))

	// Keys are ignored while creating
	e = update(t, e, runes("x"))
	assert.Equal(t, e.DraftURL(), "Fresh")

	e = update(t, e, suggest.CreateResultMsg{Seq: 1, Page: page})

	// Creating -> viewing is one transition
	assert.Equal(t, mgr.calls, before+2)
	assert.Assert(t, !e.IsCreatingPage())
	assert.Equal(t, e.Mode(), ModeViewing)
	assert.Equal(t, len(rec.changes), 1)
	assert.Equal(t, rec.changes[0].URL, "https://example.com/fresh/")
	assert.Equal(t, rec.changes[0].Title, "Fresh")
}

func TestCreateSuggestion_FailureSurfacesMessage(t *testing.T) {
	rec := &recorder{}
	mgr := &countingManager{}
	e := New(Params{
		ShowSuggestions:      true,
		WithCreateSuggestion: true,
		Suggestions:          &stubProvider{},
		OnChange:             rec.onChange,
		Focus:                mgr,
	})
	e.Focus()
	before := mgr.calls
	e = update(t, e, runes("Fresh"), down, enter)
	assert.Equal(t, mgr.calls, before+1)

	e = update(t, e, suggest.CreateResultMsg{Seq: 1, Err: errors.New("disk full")})
	assert.Equal(t, mgr.calls, before+2)

	// A stale result is not a transition
	e = update(t, e, suggest.CreateResultMsg{Seq: 1, Err: errors.New("late")})
	assert.Equal(t, mgr.calls, before+2)

	assert.Assert(t, !e.IsCreatingPage())
	assert.Equal(t, e.CreatePageErrorMessage(), "disk full")
	assert.Equal(t, e.Mode(), ModeEditing)
	assert.Equal(t, len(rec.changes), 0)
	assert.Assert(t, strings.Contains(e.View(), "disk full"))
}

func TestCreateSuggestion_CustomButtonText(t *testing.T) {
	e := New(Params{
		ShowSuggestions:            true,
		WithCreateSuggestion:       true,
		Suggestions:                &stubProvider{},
		CreateSuggestionButtonText: "New page: ",
	})
	e.urlInput.SetValue("Fresh")
	e.refreshSuggestions()

	assert.Assert(t, strings.Contains(e.View(), "New page: Fresh"))
}

func TestUnlink(t *testing.T) {
	rec := &recorder{}
	value := &model.LinkValue{URL: "https://example.com"}

	e := New(Params{Value: value, OnRemove: rec.onRemove})
	assert.Assert(t, e.Flags().ShownUnlinkControl)
	assert.Assert(t, strings.Contains(e.View(), "Unlink"))

	update(t, e, runes("u"))
	assert.Equal(t, rec.removes, 1)

	e = New(Params{Value: value})
	assert.Assert(t, !e.Flags().ShownUnlinkControl)
	assert.Assert(t, !strings.Contains(e.View(), "Unlink"))
}

func TestToggleSetting(t *testing.T) {
	rec := &recorder{}
	e := New(Params{
		Value:    &model.LinkValue{URL: "https://example.com"},
		Settings: model.DefaultSettings(),
		OnChange: rec.onChange,
	})
	assert.Assert(t, strings.Contains(e.View(), "[ ] Open in new tab"))

	e = update(t, e, runes("1"))
	assert.Equal(t, len(rec.changes), 1)
	assert.Assert(t, rec.changes[0].OpensInNewTab())
	assert.Assert(t, strings.Contains(e.View(), "[x] Open in new tab"))
	assert.Assert(t, strings.Contains(e.View(), "↗"))

	e = update(t, e, runes("1"))
	assert.Equal(t, len(rec.changes), 2)
	assert.Assert(t, !rec.changes[1].OpensInNewTab())

	// Out of range
	update(t, e, runes("5"))
	assert.Equal(t, len(rec.changes), 2)
}

func TestCancel_RestoresDrafts(t *testing.T) {
	e := New(Params{Value: &model.LinkValue{URL: "https://example.com", Title: "Example"}})
	e = update(t, e, runes("e"))
	assert.Equal(t, e.Mode(), ModeEditing)

	e.urlInput.SetValue("https://typo")
	e = update(t, e, esc)

	assert.Equal(t, e.Mode(), ModeViewing)
	assert.Equal(t, e.DraftURL(), "https://example.com")
}

func TestSlots(t *testing.T) {
	e := New(Params{
		Value:    &model.LinkValue{URL: "https://example.com"},
		Settings: model.DefaultSettings(),
		Slots: []Slot{
			{Name: SlotPreviewAfter, Render: func(c Context) string { return "after preview " + c.Mode.String() }},
			{Name: SlotFormAfter, Render: func(Context) string { return "after form" }},
			{Name: SlotDrawerAfter, Render: func(c Context) string { return "after drawer" }},
		},
	})

	view := e.View()
	assert.Assert(t, strings.Contains(view, "after preview viewing"))
	assert.Assert(t, strings.Contains(view, "after drawer"))
	assert.Assert(t, !strings.Contains(view, "after form"))
}

func TestRichPreview(t *testing.T) {
	fetcher := stubFetcher{meta: preview.Metadata{
		Title:       "Example Domain",
		Description: "Illustrative examples",
		Status:      preview.Healthy,
	}}
	e := New(Params{
		Value:           &model.LinkValue{URL: "https://example.com"},
		HasRichPreviews: true,
		Previews:        fetcher,
	})

	cmd := e.Init()
	if cmd == nil {
		t.Fatal("expected a preview fetch command")
	}
	e = update(t, e, cmd())

	view := e.View()
	assert.Assert(t, strings.Contains(view, "Illustrative examples"))
	assert.Assert(t, strings.Contains(view, "Example Domain"))
}

func TestRichPreview_DisabledByDefault(t *testing.T) {
	e := New(Params{
		Value:    &model.LinkValue{URL: "https://example.com"},
		Previews: stubFetcher{},
	})
	assert.Assert(t, e.Init() == nil)
}

func TestCopy_DisabledWithoutClipboard(t *testing.T) {
	prev := clipboard.Unsupported
	t.Cleanup(func() { clipboard.Unsupported = prev })

	rec := &recorder{}
	value := &model.LinkValue{URL: "https://example.com"}

	clipboard.Unsupported = true
	e := New(Params{Value: value, OnRemove: rec.onRemove})
	e.Focus()
	assert.Assert(t, e.editButton.Focused())

	// Tab skips the disabled copy action
	e = update(t, e, tea.KeyMsg{Type: tea.KeyTab})
	assert.Assert(t, e.unlinkButton.Focused())
	assert.Assert(t, !e.copyButton.Focused())

	_, cmd := e.Update(runes("y"))
	assert.Assert(t, cmd == nil)

	clipboard.Unsupported = false
	e = New(Params{Value: value, OnRemove: rec.onRemove})
	e.Focus()
	e = update(t, e, tea.KeyMsg{Type: tea.KeyTab})
	assert.Assert(t, e.copyButton.Focused())
}
