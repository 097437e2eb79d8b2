package editing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetLastWriteWins(t *testing.T) {
	s := NewStore()
	_, ok := s.Get("hero-title")
	assert.False(t, ok)

	s.Set("hero-title", TextValue("JAKARTA FEST"))
	s.Set("hero-title", TextValue("BANDUNG FEST"))

	got, ok := s.Text("hero-title")
	require.True(t, ok)
	assert.Equal(t, "BANDUNG FEST", got)
	assert.Equal(t, 1, s.Len())
}

func TestStore_TextIgnoresOtherKinds(t *testing.T) {
	s := NewStore()
	s.Set("x", TypographyValue(TypographyStyle{FontSize: "text-lg"}))
	_, ok := s.Text("x")
	assert.False(t, ok)
}

func TestStore_StyleRecordsAreCopies(t *testing.T) {
	s := NewStore()
	s.Set(StylesKey("hero-title"), TypographyValue(TypographyStyle{
		FontSize:        "text-lg",
		ResponsiveSizes: &ResponsiveSizes{Mobile: "text-sm"},
	}))

	got := s.Typography("hero-title")
	got.FontSize = "text-xl"
	got.ResponsiveSizes.Mobile = "text-xs"

	again := s.Typography("hero-title")
	assert.Equal(t, "text-lg", again.FontSize)
	assert.Equal(t, "text-sm", again.ResponsiveSizes.Mobile)
	assert.Equal(t, ButtonStyle{}, s.ButtonStyle("hero-title"))
}

func TestStore_SubscribeNotifiesWrites(t *testing.T) {
	s := NewStore()
	var seen []string
	cancel := s.Subscribe(func(id string) { seen = append(seen, id) })

	s.Set("a", TextValue("1"))
	s.SetEditMode(true)
	cancel()
	s.Set("b", TextValue("2"))

	assert.Equal(t, []string{"a", ""}, seen)
	assert.True(t, s.EditMode())
}

func TestStore_SetMany(t *testing.T) {
	s := NewStore()
	n := 0
	s.Subscribe(func(string) { n++ })
	s.SetMany(map[string]Value{
		"hero-title": TextValue("A"),
		"hero-year":  TextValue("2025"),
	})
	assert.Equal(t, 2, n)
	v, _ := s.Text("hero-year")
	assert.Equal(t, "2025", v)
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := NewStore()
	s.SetEditMode(true)
	s.Set("a", TextValue("1"))

	r := NewStore()
	r.Restore(s.Snapshot())
	assert.True(t, r.EditMode())
	v, ok := r.Text("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestFromContext_FailsOutsideScope(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoStore)
	assert.PanicsWithError(t, ErrNoStore.Error(), func() { MustFromContext(context.Background()) })

	s := NewStore()
	got, err := FromContext(WithStore(context.Background(), s))
	require.NoError(t, err)
	assert.Same(t, s, got)
}
