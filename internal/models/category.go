// internal/models/category.go
package models

import "fmt"

// Category identifies one of the fixed dish groups.
type Category string

const (
	CategoryMeat      Category = "meat"
	CategoryFish      Category = "fish"
	CategoryVegetable Category = "vegetable"
	CategorySide      Category = "side"
	CategorySoup      Category = "soup"
	CategoryFruit     Category = "fruit"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryMeat,
	CategoryFish,
	CategoryVegetable,
	CategorySide,
	CategorySoup,
	CategoryFruit,
}

var categoryLabels = map[Category]string{
	CategoryMeat:      "Món thịt",
	CategoryFish:      "Món cá",
	CategoryVegetable: "Món rau",
	CategorySide:      "Món phụ",
	CategorySoup:      "Món canh",
	CategoryFruit:     "Hoa quả",
}

type UnknownCategoryError struct {
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q", e.Value)
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", &UnknownCategoryError{Value: s}
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human readable name, or the raw identifier for unknown values.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}

// Catalog maps each category to its ordered dish names.
type Catalog map[Category][]string

// Clone returns a deep copy so callers can mutate lists freely.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = append([]string(nil), v...)
		if v != nil && out[k] == nil {
			out[k] = []string{}
		}
	}
	return out
}
