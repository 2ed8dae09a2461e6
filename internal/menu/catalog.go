// Package menu holds the dish catalog, the menu history window and the
// planner that generates a day's lunch and dinner from them.
package menu

import (
	"strings"

	"menu-planner/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var defaultCatalog = models.Catalog{
	models.CategoryMeat:      {"Nem", "Sườn xào chua ngọt", "Thịt viên sốt cà chua", "Bò xào mướp đắng", "Trứng thịt", "Thịt kho", "Gà"},
	models.CategoryFish:      {"Cá kho", "Mực luộc", "Cá sốt cà chua"},
	models.CategoryVegetable: {"Rau muống xào tỏi", "Cải chíp xào tỏi", "Khoai tây hầm xương"},
	models.CategorySide:      {"Đậu rán", "Cà", "Dưa góp (Dưa chuột)"},
	models.CategorySoup:      {"Canh mùng tơi", "Canh cải ngọt", "Canh rau dền", "Canh bắp cải cà chua"},
	models.CategoryFruit:     {"Dưa hấu", "Bưởi", "Lựu"},
}

// DefaultCatalog returns a fresh copy of the built-in dish lists.
func DefaultCatalog() models.Catalog {
	return defaultCatalog.Clone()
}

// NormalizeDishName trims surrounding whitespace from a dish name.
func NormalizeDishName(name string) string {
	return strings.TrimSpace(name)
}

// dishKey is the comparison key for a dish name. A Caser keeps state, so
// one is built per call.
func dishKey(name string) string {
	return cases.Lower(language.Und).String(name)
}

// UniqueDishes trims every name, drops empty ones and drops later
// case-insensitive duplicates. The first spelling seen is kept.
func UniqueDishes(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		norm := NormalizeDishName(name)
		if norm == "" {
			continue
		}
		key := dishKey(norm)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, norm)
	}
	return result
}

// MergeCatalog fills every category missing from partial (nil list) with
// its default list and deduplicates all lists. A present but empty list
// stays empty.
func MergeCatalog(partial models.Catalog) models.Catalog {
	merged := make(models.Catalog, len(models.AllCategories))
	for _, c := range models.AllCategories {
		list := partial[c]
		if list == nil {
			list = defaultCatalog[c]
		}
		merged[c] = UniqueDishes(list)
	}
	return merged
}

// CleanCatalog deduplicates every known category and drops unknown keys.
// Categories absent from c come back as empty lists.
func CleanCatalog(c models.Catalog) models.Catalog {
	clean := make(models.Catalog, len(models.AllCategories))
	for _, cat := range models.AllCategories {
		clean[cat] = UniqueDishes(c[cat])
	}
	return clean
}

// ParseDishLines turns editor text, one dish per line, into a clean list.
func ParseDishLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return UniqueDishes(lines)
}
