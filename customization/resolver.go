// Package customization decides which menu items need a size or extras choice
// before they can enter a cart, and formats the choice into order notes.
package customization

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yeremiapane/restaurant-pos/models"
)

var (
	ErrSelectionRequired = errors.New("please choose one option before adding this item")
	ErrUnknownOption     = errors.New("option is not offered for this item")
	ErrInvalidRule       = errors.New("invalid customization rule")
)

// Rule maps a case-insensitive name fragment to the choice it requires.
type Rule struct {
	Pattern string                   `yaml:"pattern" json:"pattern"`
	Spec    models.CustomizationSpec `yaml:",inline" json:"spec"`
}

// DefaultRules are the special items the floor has always offered.
func DefaultRules() []Rule {
	return []Rule{
		{
			Pattern: "pizza",
			Spec: models.CustomizationSpec{
				Mode:    models.SelectionSingle,
				Options: []string{"9 Inch", "12 Inch", "16 Inch"},
			},
		},
		{
			Pattern: "burger",
			Spec: models.CustomizationSpec{
				Mode:    models.SelectionMultiple,
				Options: []string{"Extra Patty", "Extra Sauce", "Extra Spicy"},
			},
		},
	}
}

type Resolver struct {
	rules []Rule
}

// NewResolver validates and lower-cases the rule patterns. Order is kept:
// the first matching rule wins.
func NewResolver(rules []Rule) (*Resolver, error) {
	out := make([]Rule, 0, len(rules))
	for i, r := range rules {
		p := strings.ToLower(strings.TrimSpace(r.Pattern))
		if p == "" {
			return nil, fmt.Errorf("%w: rule %d has no pattern", ErrInvalidRule, i)
		}
		if r.Spec.Mode != models.SelectionSingle && r.Spec.Mode != models.SelectionMultiple {
			return nil, fmt.Errorf("%w: rule %q has mode %q", ErrInvalidRule, p, r.Spec.Mode)
		}
		if len(r.Spec.Options) == 0 {
			return nil, fmt.Errorf("%w: rule %q has no options", ErrInvalidRule, p)
		}
		seen := map[string]bool{}
		for _, o := range r.Spec.Options {
			if seen[o] {
				return nil, fmt.Errorf("%w: rule %q repeats option %q", ErrInvalidRule, p, o)
			}
			seen[o] = true
		}
		r.Pattern = p
		out = append(out, r)
	}
	return &Resolver{rules: out}, nil
}

// LoadRules reads a YAML list of rules:
//
//	- pattern: pizza
//	  mode: single
//	  options: ["9 Inch", "12 Inch", "16 Inch"]
func LoadRules(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read customization rules: %w", err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parse customization rules %s: %w", path, err)
	}
	return rules, nil
}

// NewResolverFromFile falls back to DefaultRules when path is empty.
func NewResolverFromFile(path string) (*Resolver, error) {
	if path == "" {
		return NewResolver(DefaultRules())
	}
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	return NewResolver(rules)
}

func (r *Resolver) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Match returns the spec of the first rule whose pattern occurs in name.
func (r *Resolver) Match(name string) (models.CustomizationSpec, bool) {
	lower := strings.ToLower(name)
	for _, rule := range r.rules {
		if strings.Contains(lower, rule.Pattern) {
			return rule.Spec, true
		}
	}
	return models.CustomizationSpec{}, false
}

// Begin opens a pending selection for food. ok is false when the item needs
// no customization and can go straight into the cart.
func (r *Resolver) Begin(food models.Food) (*Selection, bool) {
	spec, ok := r.Match(food.Name)
	if !ok {
		return nil, false
	}
	s := &Selection{Food: food, Spec: spec}
	if spec.Mode == models.SelectionSingle {
		s.chosen = []string{spec.Options[0]}
	}
	return s, true
}
