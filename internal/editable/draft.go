package editable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/fest-booking/internal/editing"
)

// ErrEditModeOff is returned when an element is opened for editing while
// the store is not in edit mode.
var ErrEditModeOff = errors.New("editable: edit mode is off")

var validate = validator.New()

// Draft is the scratch state of an open edit modal.  It is a copy of the
// store's current state for one element; nothing reaches the store until
// Save.
type Draft struct {
	Element      Element                  `json:"element"`
	Value        string                   `json:"value"`
	Image        string                   `json:"image,omitempty"`
	Styles       *editing.TypographyStyle `json:"styles,omitempty"`
	ButtonStyles *editing.ButtonStyle     `json:"button_styles,omitempty"`
}

// Open moves an element from Display to Editing and seeds a draft from the
// store.
func Open(s *editing.Store, e Element) (Draft, error) {
	if s == nil || !s.EditMode() {
		return Draft{}, ErrEditModeOff
	}
	d := Draft{Element: e, Value: e.Resolve(s)}
	switch {
	case e.Kind.HasTypography():
		st := s.Typography(e.ID)
		d.Styles = &st
	case e.Kind == Button:
		bs := s.ButtonStyle(e.ID)
		d.ButtonStyles = &bs
	case e.Kind == Image:
		d.Image = d.Value
	}
	return d, nil
}

// SelectImage picks a gallery entry or a custom URL.
func (d *Draft) SelectImage(url string) {
	d.Value = url
	d.Image = url
}

// ClearBrokenPreview empties the preview after the browser reported a load
// error.  The typed URL is kept.
func (d *Draft) ClearBrokenPreview() { d.Image = "" }

// Validate checks the style records against the modal palettes.
func (d Draft) Validate() error {
	if d.Styles != nil {
		if err := validate.Struct(d.Styles); err != nil {
			return paletteError(err)
		}
	}
	if d.ButtonStyles != nil {
		if err := validate.Struct(d.ButtonStyles); err != nil {
			return paletteError(err)
		}
	}
	return nil
}

// Save commits the draft: the value under the element id and, depending on
// kind, the typography record under id_styles or the button record under
// id_button_styles.  Editing must still be on.
func (d Draft) Save(s *editing.Store) error {
	if s == nil || !s.EditMode() {
		return ErrEditModeOff
	}
	if err := d.Validate(); err != nil {
		return err
	}
	values := map[string]editing.Value{d.Element.ID: editing.TextValue(d.Value)}
	switch {
	case d.Element.Kind.HasTypography():
		st := editing.TypographyStyle{}
		if d.Styles != nil {
			st = *d.Styles
		}
		values[editing.StylesKey(d.Element.ID)] = editing.TypographyValue(st)
	case d.Element.Kind == Button:
		bs := editing.ButtonStyle{}
		if d.ButtonStyles != nil {
			bs = *d.ButtonStyles
		}
		values[editing.ButtonStylesKey(d.Element.ID)] = editing.ButtonValue(bs)
	}
	s.SetMany(values)
	return nil
}

// Cancel discards the draft.  The store is not touched.
func (d *Draft) Cancel() { *d = Draft{} }

// PaletteError lists the style fields whose value is not a palette entry.
type PaletteError struct {
	Fields []string
}

func (e *PaletteError) Error() string {
	return "editable: value not in palette: " + strings.Join(e.Fields, ", ")
}

func paletteError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &PaletteError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fmt.Sprintf("%s=%v", fe.Field(), fe.Value()))
	}
	return out
}
