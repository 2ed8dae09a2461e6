// internal/models/menu.go
package models

import (
	"fmt"
	"time"
)

// DateKeyLayout is the calendar-day format used for history entries.
const DateKeyLayout = "2006-01-02"

// MealSlot is one of the two daily meals.
type MealSlot string

const (
	Lunch  MealSlot = "lunch"
	Dinner MealSlot = "dinner"
)

var AllMealSlots = []MealSlot{Lunch, Dinner}

var mealSlotLabels = map[MealSlot]string{
	Lunch:  "Bữa trưa",
	Dinner: "Bữa tối",
}

type UnknownMealSlotError struct {
	Value string
}

func (e *UnknownMealSlotError) Error() string {
	return fmt.Sprintf("unknown meal slot %q", e.Value)
}

func ParseMealSlot(s string) (MealSlot, error) {
	slot := MealSlot(s)
	if _, ok := mealSlotLabels[slot]; !ok {
		return "", &UnknownMealSlotError{Value: s}
	}
	return slot, nil
}

func (s MealSlot) Label() string {
	if label, ok := mealSlotLabels[s]; ok {
		return label
	}
	return string(s)
}

// Meal holds exactly one chosen dish per category. An empty string means
// the category had nothing to offer.
type Meal map[Category]string

func (m Meal) Clone() Meal {
	out := make(Meal, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type DayMenu struct {
	Lunch  Meal `json:"lunch"`
	Dinner Meal `json:"dinner"`
}

func (d DayMenu) Slot(slot MealSlot) Meal {
	if slot == Dinner {
		return d.Dinner
	}
	return d.Lunch
}

// WithSlot returns a copy of d with only the given slot replaced.
func (d DayMenu) WithSlot(slot MealSlot, meal Meal) DayMenu {
	out := DayMenu{Lunch: d.Lunch.Clone(), Dinner: d.Dinner.Clone()}
	switch slot {
	case Lunch:
		out.Lunch = meal
	case Dinner:
		out.Dinner = meal
	}
	return out
}

type HistoryEntry struct {
	Date string  `json:"date"`
	Menu DayMenu `json:"menu"`
}

// DateKey formats t as a calendar day in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateKeyLayout)
}

func ValidDateKey(s string) bool {
	_, err := time.Parse(DateKeyLayout, s)
	return err == nil
}
