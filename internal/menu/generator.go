package menu

import (
	"math/rand/v2"

	"menu-planner/internal/models"
)

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// exclusions holds the lowercased dish keys served per category in the
// recent window.
type exclusions map[models.Category]map[string]struct{}

func buildExclusions(window []models.HistoryEntry) exclusions {
	ex := make(exclusions, len(models.AllCategories))
	for _, c := range models.AllCategories {
		ex[c] = make(map[string]struct{})
	}
	for _, entry := range window {
		for _, slot := range models.AllMealSlots {
			meal := entry.Menu.Slot(slot)
			for _, c := range models.AllCategories {
				if dish := meal[c]; dish != "" {
					ex[c][dishKey(dish)] = struct{}{}
				}
			}
		}
	}
	return ex
}

// pickDish prefers dishes outside excluded. When every dish is excluded it
// falls back to the whole pool; an empty pool yields "".
func pickDish(pool []string, excluded map[string]struct{}, p Picker) string {
	if len(pool) == 0 {
		return ""
	}
	filtered := make([]string, 0, len(pool))
	for _, dish := range pool {
		if _, ok := excluded[dishKey(dish)]; !ok {
			filtered = append(filtered, dish)
		}
	}
	if len(filtered) == 0 {
		filtered = pool
	}
	return filtered[p.IntN(len(filtered))]
}

func generateMeal(catalog models.Catalog, ex exclusions, p Picker) models.Meal {
	meal := make(models.Meal, len(models.AllCategories))
	for _, c := range models.AllCategories {
		meal[c] = pickDish(UniqueDishes(catalog[c]), ex[c], p)
	}
	return meal
}

// GenerateMeal picks one dish per category, avoiding dishes served in window.
func GenerateMeal(catalog models.Catalog, window []models.HistoryEntry, p Picker) models.Meal {
	return generateMeal(catalog, buildExclusions(window), p)
}

// GenerateDay builds lunch and dinner independently against the same
// window, so the two meals of one day may share a dish.
func GenerateDay(catalog models.Catalog, window []models.HistoryEntry, p Picker) models.DayMenu {
	ex := buildExclusions(window)
	return models.DayMenu{
		Lunch:  generateMeal(catalog, ex, p),
		Dinner: generateMeal(catalog, ex, p),
	}
}
