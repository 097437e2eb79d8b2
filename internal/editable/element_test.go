package editable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fest-booking/internal/editing"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Button ")
	require.NoError(t, err)
	assert.Equal(t, Button, k)
	_, err = ParseKind("video")
	assert.Error(t, err)
}

func TestResolve_UnwrittenIDsUseDefault(t *testing.T) {
	s := editing.NewStore()
	s.Set("other", editing.TextValue("x"))
	for _, id := range []string{"hero-title", "venue-title", "artist-name-3"} {
		e := New(Text, id, "default for "+id)
		assert.Equal(t, "default for "+id, e.Resolve(s))
	}
	assert.Equal(t, "d", New(Text, "a", "d").Resolve(nil))
}

func TestResolve_EmptyOverrideFallsBack(t *testing.T) {
	s := editing.NewStore()
	s.Set("hero-title", editing.TextValue(""))
	assert.Equal(t, "JAKARTA FEST", New(Text, "hero-title", "JAKARTA FEST").Resolve(s))
}

func TestRender_Text(t *testing.T) {
	s := editing.NewStore()
	s.Set(editing.StylesKey("t"), editing.TypographyValue(editing.TypographyStyle{FontSize: "text-lg"}))
	out := string(New(Text, "t", "Halo <b>").WithClass("mb-2").Render(s))
	assert.Equal(t, `<div class="mb-2 text-lg">Halo &lt;b&gt;</div>`, out)
}

func TestRender_TextareaSplitsLines(t *testing.T) {
	out := string(New(Textarea, "addr", "JIExpo\nKelapa Gading\nJakarta").Render(editing.NewStore()))
	assert.Equal(t, 3, strings.Count(out, "<div>"))
	assert.Contains(t, out, "<div>Kelapa Gading</div>")
}

func TestRender_ImagePlaceholder(t *testing.T) {
	out := string(Element{Kind: Image, ID: "img", Alt: "venue"}.Render(editing.NewStore()))
	assert.Contains(t, out, `src="/placeholder.svg"`)
	assert.Contains(t, out, `alt="venue"`)
}

func TestRender_ButtonLink(t *testing.T) {
	s := editing.NewStore()
	plain := string(New(Button, "cta", "Beli").Render(s))
	assert.NotContains(t, plain, "<a ")

	s.Set(editing.ButtonStylesKey("cta"), editing.ButtonValue(editing.ButtonStyle{
		Href: "https://example.com/tiket", Target: "_blank", Alignment: "full",
	}))
	linked := string(New(Button, "cta", "Beli").Render(s))
	assert.Contains(t, linked, `href="https://example.com/tiket"`)
	assert.Contains(t, linked, `target="_blank"`)
	assert.Contains(t, linked, `class="block"`)
	assert.Contains(t, linked, "w-full")
}

func TestRender_EditModeSurface(t *testing.T) {
	s := editing.NewStore()
	assert.NotContains(t, string(New(Text, "t", "x").Render(s)), "data-element-id")
	s.SetEditMode(true)
	out := string(New(Text, "t", "x").Render(s))
	assert.Contains(t, out, `data-element-id="t"`)
	assert.Contains(t, out, `data-element-kind="text"`)
}
