package editable

import "github.com/iliyamo/fest-booking/internal/editing"

// Modal describes the edit dialog for a draft: its title, the tabs in order
// and the option lists the tabs draw from.
type Modal struct {
	Title   string                 `json:"title"`
	Tabs    []string               `json:"tabs"`
	Draft   Draft                  `json:"draft"`
	Palette *editing.Palette       `json:"palette,omitempty"`
	Buttons *editing.ButtonPalette `json:"button_palette,omitempty"`
	Gallery []string               `json:"gallery,omitempty"`
}

// ModalFor builds the dialog description for d.
func ModalFor(d Draft) Modal {
	m := Modal{Draft: d}
	switch d.Element.Kind {
	case Image:
		m.Title = "Edit Image"
		m.Tabs = []string{"select", "url"}
		m.Gallery = editing.Gallery
	case Button:
		m.Title = "Edit Button"
		m.Tabs = []string{"content", "link", "style", "typography", "border", "layout"}
		m.Buttons = &editing.ButtonOptions
	default:
		m.Title = "Edit Content"
		m.Tabs = []string{"content", "typography", "styling", "spacing"}
		m.Palette = &editing.TextPalette
	}
	return m
}
