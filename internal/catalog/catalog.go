// Package catalog holds the static activity, category and tier tables.
//
// The default catalog is embedded; a YAML file with the same shape can
// replace it. Sections missing from the file fall back to the defaults.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"muscu/internal/core"
)

// FallbackEmoji is shown for activities the catalog does not know.
const FallbackEmoji = "💪"

//go:embed default.yaml
var defaultYAML []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

type Catalog struct {
	categories []core.Category
	activities []core.Activity
	tiers      []core.Tier

	byLabel    map[string]core.Activity
	byCategory map[string]core.Category
}

type fileCatalog struct {
	Categories []fileCategory `yaml:"categories"`
	Activities []fileActivity `yaml:"activities"`
	Tiers      []fileTier     `yaml:"tiers"`
}

type fileCategory struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Free bool   `yaml:"free"`
}

type fileActivity struct {
	Label    string `yaml:"label"`
	Emoji    string `yaml:"emoji"`
	Category string `yaml:"category"`
}

type fileTier struct {
	Rank        int    `yaml:"rank"`
	Name        string `yaml:"name"`
	Emoji       string `yaml:"emoji"`
	Min         int    `yaml:"min"`
	Max         *int   `yaml:"max"` // omitted on the last tier
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
	MonthlyPace string `yaml:"monthly_pace"`
	WeeklyPace  string `yaml:"weekly_pace"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path yields the default catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if len(fc.Categories) == 0 && len(fc.Activities) == 0 {
		// Tier-only override: keep the default activities.
		var def fileCatalog
		if err := yaml.Unmarshal(defaultYAML, &def); err != nil {
			return nil, fmt.Errorf("decode default yaml: %w", err)
		}
		fc.Categories, fc.Activities = def.Categories, def.Activities
	}

	categories := make([]core.Category, 0, len(fc.Categories))
	for _, fcat := range fc.Categories {
		categories = append(categories, core.Category{
			ID:   strings.TrimSpace(fcat.ID),
			Name: strings.TrimSpace(fcat.Name),
			Free: fcat.Free,
		})
	}
	activities := make([]core.Activity, 0, len(fc.Activities))
	for _, fa := range fc.Activities {
		activities = append(activities, core.Activity{
			Label:    strings.TrimSpace(fa.Label),
			Emoji:    fa.Emoji,
			Category: strings.TrimSpace(fa.Category),
		})
	}

	tiers := core.DefaultTiers()
	if len(fc.Tiers) > 0 {
		tiers = make([]core.Tier, 0, len(fc.Tiers))
		for _, ft := range fc.Tiers {
			upper := core.Unbounded
			if ft.Max != nil {
				upper = *ft.Max
			}
			tiers = append(tiers, core.Tier{
				Rank:        ft.Rank,
				Name:        ft.Name,
				Emoji:       ft.Emoji,
				MinSessions: ft.Min,
				MaxSessions: upper,
				Description: ft.Description,
				Color:       ft.Color,
				MonthlyPace: ft.MonthlyPace,
				WeeklyPace:  ft.WeeklyPace,
			})
		}
	}

	return New(categories, activities, tiers)
}

// New builds a catalog from in-memory tables and validates it.
func New(categories []core.Category, activities []core.Activity, tiers []core.Tier) (*Catalog, error) {
	c := &Catalog{
		categories: categories,
		activities: activities,
		tiers:      tiers,
		byLabel:    make(map[string]core.Activity, len(activities)),
		byCategory: make(map[string]core.Category, len(categories)),
	}

	for _, cat := range categories {
		if err := cat.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if _, dup := c.byCategory[cat.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, cat.ID)
		}
		c.byCategory[cat.ID] = cat
	}
	for _, a := range activities {
		if a.Label == "" {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, core.ErrEmptyActivity)
		}
		if _, dup := c.byLabel[a.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate activity %q", ErrInvalidCatalog, a.Label)
		}
		if _, ok := c.byCategory[a.Category]; !ok {
			return nil, fmt.Errorf("%w: activity %q: %v %q", ErrInvalidCatalog, a.Label, core.ErrUnknownCategory, a.Category)
		}
		c.byLabel[a.Label] = a
	}
	if err := core.ValidateTiers(tiers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return c, nil
}

// Categories returns every category in catalog order.
func (c *Catalog) Categories() []core.Category {
	return append([]core.Category(nil), c.categories...)
}

// PricedCategories returns the categories that can carry a price.
func (c *Catalog) PricedCategories() []core.Category {
	var out []core.Category
	for _, cat := range c.categories {
		if !cat.Free {
			out = append(out, cat)
		}
	}
	return out
}

// Activities returns every activity in catalog order.
func (c *Catalog) Activities() []core.Activity {
	return append([]core.Activity(nil), c.activities...)
}

func (c *Catalog) Tiers() []core.Tier {
	return append([]core.Tier(nil), c.tiers...)
}

// Category looks a category up by ID.
func (c *Catalog) Category(id string) (core.Category, bool) {
	cat, ok := c.byCategory[id]
	return cat, ok
}

// CategoryOf returns the category an activity label belongs to.
func (c *Catalog) CategoryOf(label string) (core.Category, bool) {
	a, ok := c.byLabel[label]
	if !ok {
		return core.Category{}, false
	}
	return c.Category(a.Category)
}

// InCategory reports whether label is one of the category's activities.
func (c *Catalog) InCategory(categoryID string) func(label string) bool {
	return func(label string) bool {
		a, ok := c.byLabel[label]
		return ok && a.Category == categoryID
	}
}

// Known reports whether label is a catalog activity.
func (c *Catalog) Known(label string) bool {
	_, ok := c.byLabel[label]
	return ok
}

// Emoji returns the activity's emoji or FallbackEmoji.
func (c *Catalog) Emoji(label string) string {
	if a, ok := c.byLabel[label]; ok && a.Emoji != "" {
		return a.Emoji
	}
	return FallbackEmoji
}
