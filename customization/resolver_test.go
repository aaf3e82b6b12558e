package customization

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
)

func defaultResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(DefaultRules())
	require.NoError(t, err)
	return r
}

func TestPizzaPreselectsFirstSize(t *testing.T) {
	r := defaultResolver(t)

	sel, ok := r.Begin(models.Food{ID: 1, Name: "Margherita Pizza"})
	require.True(t, ok)
	assert.Equal(t, models.SelectionSingle, sel.Spec.Mode)
	assert.Equal(t, []string{"9 Inch"}, sel.Selected())

	tags, err := sel.Confirm()
	require.NoError(t, err)
	assert.Equal(t, []string{"9 Inch"}, tags)
}

func TestPlainItemSkipsResolution(t *testing.T) {
	r := defaultResolver(t)

	sel, ok := r.Begin(models.Food{ID: 2, Name: "Iced Tea"})
	assert.False(t, ok)
	assert.Nil(t, sel)
}

func TestMatchIsCaseInsensitiveFirstWins(t *testing.T) {
	r, err := NewResolver([]Rule{
		{Pattern: "Burger", Spec: models.CustomizationSpec{Mode: models.SelectionMultiple, Options: []string{"Extra Cheese"}}},
		{Pattern: "pizza", Spec: models.CustomizationSpec{Mode: models.SelectionSingle, Options: []string{"Small"}}},
	})
	require.NoError(t, err)

	spec, ok := r.Match("PIZZA BURGER COMBO")
	require.True(t, ok)
	assert.Equal(t, models.SelectionMultiple, spec.Mode)
}

func TestSingleModeToggle(t *testing.T) {
	r := defaultResolver(t)
	sel, _ := r.Begin(models.Food{Name: "Pepperoni Pizza"})

	require.NoError(t, sel.Toggle("16 Inch"))
	assert.Equal(t, []string{"16 Inch"}, sel.Selected())

	require.NoError(t, sel.Toggle("16 Inch"))
	assert.Empty(t, sel.Selected())

	_, err := sel.Confirm()
	assert.ErrorIs(t, err, ErrSelectionRequired)

	require.NoError(t, sel.Toggle("12 Inch"))
	tags, err := sel.Confirm()
	require.NoError(t, err)
	assert.Equal(t, []string{"12 Inch"}, tags)
}

func TestMultipleModeToggle(t *testing.T) {
	r := defaultResolver(t)
	sel, _ := r.Begin(models.Food{Name: "Cheese Burger"})
	assert.Empty(t, sel.Selected())

	tags, err := sel.Confirm()
	require.NoError(t, err)
	assert.Empty(t, tags)

	require.NoError(t, sel.Toggle("Extra Spicy"))
	require.NoError(t, sel.Toggle("Extra Patty"))
	require.NoError(t, sel.Toggle("Extra Sauce"))
	require.NoError(t, sel.Toggle("Extra Patty"))

	tags, err = sel.Confirm()
	require.NoError(t, err)
	assert.Equal(t, []string{"Extra Spicy", "Extra Sauce"}, tags)
}

func TestToggleUnknownOption(t *testing.T) {
	r := defaultResolver(t)
	sel, _ := r.Begin(models.Food{Name: "Cheese Burger"})

	assert.ErrorIs(t, sel.Toggle("Gold Leaf"), ErrUnknownOption)
	assert.Empty(t, sel.Selected())
}

func TestFormatNotes(t *testing.T) {
	tests := []struct {
		name  string
		tags  []string
		notes string
		want  string
	}{
		{"both", []string{"Extra Patty", "Extra Sauce"}, "  no onion ", "Options: Extra Patty, Extra Sauce | no onion"},
		{"tags only", []string{"9 Inch"}, "", "Options: 9 Inch"},
		{"notes only", nil, "well done", "well done"},
		{"blank notes", nil, "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNotes(tt.tags, tt.notes))
		})
	}
}

func TestNewResolverRejectsBadRules(t *testing.T) {
	tests := []Rule{
		{Pattern: " ", Spec: models.CustomizationSpec{Mode: models.SelectionSingle, Options: []string{"a"}}},
		{Pattern: "soup", Spec: models.CustomizationSpec{Mode: "some", Options: []string{"a"}}},
		{Pattern: "soup", Spec: models.CustomizationSpec{Mode: models.SelectionSingle}},
		{Pattern: "soup", Spec: models.CustomizationSpec{Mode: models.SelectionMultiple, Options: []string{"a", "a"}}},
	}
	for _, rule := range tests {
		_, err := NewResolver([]Rule{rule})
		assert.ErrorIs(t, err, ErrInvalidRule)
	}
}

func TestLoadRulesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
- pattern: noodle
  mode: single
  options: ["Mild", "Hot"]
- pattern: salad
  mode: multiple
  options: ["Extra Egg"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := NewResolverFromFile(path)
	require.NoError(t, err)
	require.Len(t, r.Rules(), 2)

	sel, ok := r.Begin(models.Food{Name: "Spicy Noodle"})
	require.True(t, ok)
	assert.Equal(t, []string{"Mild"}, sel.Selected())

	_, ok = r.Begin(models.Food{Name: "Margherita Pizza"})
	assert.False(t, ok)
}

func TestNewResolverFromFileDefaults(t *testing.T) {
	r, err := NewResolverFromFile("")
	require.NoError(t, err)
	assert.Len(t, r.Rules(), 2)

	_, err = NewResolverFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
