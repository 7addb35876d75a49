package model

import (
	"encoding/json"
	"strings"
	"time"
)

// SettingOpensInNewTab is the id of the built-in "open in new tab" setting.
const SettingOpensInNewTab = "opensInNewTab"

// Setting describes a named behaviour toggle offered for a link.
type Setting struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// DefaultSettings returns the settings offered when none are configured.
func DefaultSettings() []Setting {
	return []Setting{
		{ID: SettingOpensInNewTab, Title: "Open in new tab"},
	}
}

// LinkValue is a link as seen by the editor: a URL, an optional title and
// its behaviour settings. Behaviour flags only ever live in Settings.
type LinkValue struct {
	URL      string         `json:"url"`
	Title    string         `json:"title,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

// HasURL reports whether the value carries a non-blank URL.
func (v LinkValue) HasURL() bool {
	return strings.TrimSpace(v.URL) != ""
}

// SettingEnabled reports whether the setting with the given id is truthy.
func (v LinkValue) SettingEnabled(id string) bool {
	raw, ok := v.Settings[id]
	if !ok {
		return false
	}
	switch val := raw.(type) {
	case bool:
		return val
	case string:
		return val != "" && val != "false" && val != "0"
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return raw != nil
	}
}

// OpensInNewTab reports whether the link should open in a new tab.
func (v LinkValue) OpensInNewTab() bool {
	return v.SettingEnabled(SettingOpensInNewTab)
}

// WithSetting returns a copy of v with the setting id set to val.
// The receiver's settings map is never mutated.
func (v LinkValue) WithSetting(id string, val any) LinkValue {
	out := v.Clone()
	if out.Settings == nil {
		out.Settings = make(map[string]any, 1)
	}
	out.Settings[id] = val
	return out
}

// Clone returns a deep copy of the settings map alongside the scalar fields.
func (v LinkValue) Clone() LinkValue {
	out := v
	if v.Settings != nil {
		out.Settings = make(map[string]any, len(v.Settings))
		for k, val := range v.Settings {
			out.Settings[k] = val
		}
	}
	return out
}

// UnmarshalJSON accepts the legacy top-level opensInNewTab field and folds
// it into Settings, so a decoded value never carries both schemas.
func (v *LinkValue) UnmarshalJSON(data []byte) error {
	type plain LinkValue
	var aux struct {
		plain
		OpensInNewTab *bool `json:"opensInNewTab"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*v = LinkValue(aux.plain)
	if aux.OpensInNewTab != nil {
		if _, ok := v.Settings[SettingOpensInNewTab]; !ok {
			if v.Settings == nil {
				v.Settings = make(map[string]any, 1)
			}
			v.Settings[SettingOpensInNewTab] = *aux.OpensInNewTab
		}
	}
	return nil
}

// Link is a stored link record.
type Link struct {
	ID        string    `json:"id"`
	Value     LinkValue `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewLink creates a Link with generated UUID and timestamps.
func NewLink(value LinkValue) Link {
	now := time.Now()
	return Link{
		ID:        GenerateUUID(),
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
