//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Category is the coarse role grouping encoded in a card URL.
type Category string

// Card categories.
const (
	CategoryDirector Category = "director"
	CategoryManager  Category = "manager"
	CategoryCleaner  Category = "cleaner"
)

// Categories lists every valid category.
var Categories = []Category{CategoryDirector, CategoryManager, CategoryCleaner}

// ParseCategory converts s to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Identity names one employee card.
type Identity struct {
	Slug     string   `json:"slug"`
	Category Category `json:"category"`
}

func (id Identity) String() string {
	return string(id.Category) + "/" + id.Slug
}
