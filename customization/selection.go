package customization

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
)

// Selection is one open customization dialog. It is not safe for concurrent
// use; the owner serialises access.
type Selection struct {
	Food   models.Food
	Spec   models.CustomizationSpec
	chosen []string
}

// Toggle flips option. In single mode picking a different option replaces the
// current one and picking the active one clears it.
func (s *Selection) Toggle(option string) error {
	if !s.Spec.Has(option) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}

	idx := s.index(option)
	if s.Spec.Mode == models.SelectionSingle {
		if idx >= 0 {
			s.chosen = nil
		} else {
			s.chosen = []string{option}
		}
		return nil
	}

	if idx >= 0 {
		s.chosen = append(s.chosen[:idx], s.chosen[idx+1:]...)
	} else {
		s.chosen = append(s.chosen, option)
	}
	return nil
}

func (s *Selection) index(option string) int {
	for i, c := range s.chosen {
		if c == option {
			return i
		}
	}
	return -1
}

// Selected returns the current choice in selection order.
func (s *Selection) Selected() []string {
	out := make([]string, len(s.chosen))
	copy(out, s.chosen)
	return out
}

// Confirm returns the tags for the cart line. A single-mode dialog with
// nothing chosen stays open.
func (s *Selection) Confirm() ([]string, error) {
	if s.Spec.Mode == models.SelectionSingle && len(s.chosen) == 0 {
		return nil, ErrSelectionRequired
	}
	return s.Selected(), nil
}

// FormatNotes builds the order line notes sent to the kitchen:
// "Options: a, b | free text". Either part is dropped when empty.
func FormatNotes(tags []string, notes string) string {
	var parts []string
	if len(tags) > 0 {
		parts = append(parts, "Options: "+strings.Join(tags, ", "))
	}
	if n := strings.TrimSpace(notes); n != "" {
		parts = append(parts, n)
	}
	return strings.Join(parts, " | ")
}
