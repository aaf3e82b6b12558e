package models

type SelectionMode string

const (
	// SelectionSingle needs exactly one option; the first is pre-selected.
	SelectionSingle SelectionMode = "single"
	// SelectionMultiple accepts any subset; nothing is pre-selected.
	SelectionMultiple SelectionMode = "multiple"
)

type CustomizationSpec struct {
	Mode    SelectionMode `json:"mode" yaml:"mode"`
	Options []string      `json:"options" yaml:"options"`
}

// Has reports whether option is one of the spec's labels.
func (s CustomizationSpec) Has(option string) bool {
	for _, o := range s.Options {
		if o == option {
			return true
		}
	}
	return false
}
