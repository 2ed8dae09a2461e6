package menu

import "menu-planner/internal/models"

const (
	// MaxHistoryEntries covers today plus the two prior days.
	MaxHistoryEntries = 3
	// RecentWindowSize is how many prior days are avoided when picking dishes.
	RecentWindowSize = 2
)

// TrimHistory keeps the first MaxHistoryEntries entries in their existing
// order. The returned slice never aliases h.
func TrimHistory(h []models.HistoryEntry) []models.HistoryEntry {
	n := min(len(h), MaxHistoryEntries)
	out := make([]models.HistoryEntry, n)
	copy(out, h[:n])
	return out
}

// RecentEntries returns up to RecentWindowSize entries whose date differs
// from excludeDate, newest first.
func RecentEntries(h []models.HistoryEntry, excludeDate string) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, RecentWindowSize)
	for _, entry := range h {
		if entry.Date == excludeDate {
			continue
		}
		out = append(out, entry)
		if len(out) == RecentWindowSize {
			break
		}
	}
	return out
}

// FindEntry returns the entry stored for date, if any.
func FindEntry(h []models.HistoryEntry, date string) (models.HistoryEntry, bool) {
	for _, entry := range h {
		if entry.Date == date {
			return entry, true
		}
	}
	return models.HistoryEntry{}, false
}

// WithoutDate returns a copy of h without the entry for date.
func WithoutDate(h []models.HistoryEntry, date string) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(h))
	for _, entry := range h {
		if entry.Date != date {
			out = append(out, entry)
		}
	}
	return out
}

// prependEntry puts entry first, removes any other entry for the same date
// and trims the result.
func prependEntry(entry models.HistoryEntry, h []models.HistoryEntry) []models.HistoryEntry {
	next := append([]models.HistoryEntry{entry}, WithoutDate(h, entry.Date)...)
	return TrimHistory(next)
}
