// Package editable renders content units that an operator can override in
// edit mode.  An Element resolves its value from the session's editing
// store, falling back to the default supplied by the section that placed
// it, and renders it according to its kind.
package editable

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/iliyamo/fest-booking/internal/editing"
)

// Kind selects how an element is presented and which style record it owns.
type Kind string

const (
	Text     Kind = "text"
	Textarea Kind = "textarea"
	Image    Kind = "image"
	Button   Kind = "button"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Text, Textarea, Image, Button:
		return k, nil
	}
	return "", fmt.Errorf("editable: unknown element kind %q", s)
}

// HasTypography reports whether the kind carries a typography record.
func (k Kind) HasTypography() bool { return k == Text || k == Textarea }

// ImagePlaceholder is shown when an image element resolves to nothing.
const ImagePlaceholder = "/placeholder.svg"

// Element is one editable unit on the page.
type Element struct {
	Kind    Kind   `json:"type"`
	ID      string `json:"element_id"`
	Class   string `json:"class,omitempty"`
	Default string `json:"default_value"`
	Alt     string `json:"alt,omitempty"`
}

// New is shorthand for an Element without extra classes.
func New(kind Kind, id, def string) Element {
	return Element{Kind: kind, ID: id, Default: def}
}

// WithClass returns a copy carrying extra caller classes.
func (e Element) WithClass(class string) Element {
	e.Class = class
	return e
}

// Resolve returns the stored override or the default.  An empty override
// counts as absent.
func (e Element) Resolve(s *editing.Store) string {
	if s != nil {
		if v, ok := s.Text(e.ID); ok && v != "" {
			return v
		}
	}
	return e.Default
}

// Classes returns the class attribute the element renders with.
func (e Element) Classes(s *editing.Store) string {
	caller := strings.Fields(e.Class)
	if s == nil {
		s = editing.NewStore()
	}
	switch {
	case e.Kind.HasTypography():
		return editing.ClassString(caller, editing.TypographyClasses(s.Typography(e.ID)))
	case e.Kind == Button:
		return editing.ClassString(caller, editing.ButtonClasses(s.ButtonStyle(e.ID)))
	}
	return editing.ClassString(caller)
}

type displayData struct {
	Element
	Value   string
	Lines   []string
	Classes string
	Href    string
	Target  string
	Wrap    string
	Editing bool
}

var displayTmpl = template.Must(template.New("display").Parse(`
{{- define "text"}}<div class="{{.Classes}}">{{.Value}}</div>{{end}}
{{- define "textarea"}}<div class="{{.Classes}}">{{range .Lines}}<div>{{.}}</div>{{end}}</div>{{end}}
{{- define "image"}}<img src="{{.Value}}" alt="{{.Alt}}" class="{{.Classes}}">{{end}}
{{- define "button"}}{{if .Href}}<a href="{{.Href}}" target="{{.Target}}" class="{{.Wrap}}"><button type="button" class="{{.Classes}}">{{.Value}}</button></a>{{else}}<button type="button" class="{{.Classes}}">{{.Value}}</button>{{end}}{{end}}
{{- define "surface"}}<div class="editable-surface cursor-pointer outline-dashed outline-1 outline-amber-500/60" data-element-id="{{.ID}}" data-element-kind="{{.Kind}}" data-default="{{.Default}}">{{template "body" .}}</div>{{end}}
{{- define "body"}}{{if eq .Kind "textarea"}}{{template "textarea" .}}{{else if eq .Kind "image"}}{{template "image" .}}{{else if eq .Kind "button"}}{{template "button" .}}{{else}}{{template "text" .}}{{end}}{{end}}
{{- if .Editing}}{{template "surface" .}}{{else}}{{template "body" .}}{{end}}`))

// Render produces the Display-state markup.  In edit mode the markup is
// wrapped in a surface the page script turns into a modal trigger.
func (e Element) Render(s *editing.Store) template.HTML {
	d := displayData{
		Element: e,
		Value:   e.Resolve(s),
		Classes: e.Classes(s),
		Editing: s != nil && s.EditMode(),
	}
	switch e.Kind {
	case Textarea:
		d.Lines = strings.Split(d.Value, "\n")
	case Image:
		if d.Value == "" {
			d.Value = ImagePlaceholder
		}
	case Button:
		if s != nil {
			bs := s.ButtonStyle(e.ID)
			d.Href = bs.Href
			d.Target = bs.LinkTarget()
			d.Wrap = "inline-block"
			if bs.Alignment == "full" {
				d.Wrap = "block"
			}
		}
	}
	var buf bytes.Buffer
	if err := displayTmpl.Execute(&buf, d); err != nil {
		return template.HTML(template.HTMLEscapeString(d.Value))
	}
	return template.HTML(buf.String())
}
