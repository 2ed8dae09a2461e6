package menu

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"menu-planner/internal/models"

	"go.uber.org/zap"
)

// ErrPersist marks a failed write. The value returned alongside it is still
// the current state for the caller.
var ErrPersist = errors.New("persist menu state")

// CatalogStore loads and saves the dish catalog.
type CatalogStore interface {
	LoadCatalog(ctx context.Context) (models.Catalog, error)
	SaveCatalog(ctx context.Context, catalog models.Catalog) error
}

// HistoryStore loads and saves the history log, newest first.
type HistoryStore interface {
	LoadHistory(ctx context.Context) ([]models.HistoryEntry, error)
	SaveHistory(ctx context.Context, history []models.HistoryEntry) error
}

// Planner keeps today's entry of the history in sync with the catalog.
// Every operation is a read-modify-write of the stored state, serialized by mu.
type Planner struct {
	catalog CatalogStore
	history HistoryStore
	picker  Picker
	now     func() time.Time
	loc     *time.Location
	logger  *zap.Logger

	mu sync.Mutex
	// unsaved state from a failed write; it wins over the store until a
	// later write succeeds.
	unsavedHistory []models.HistoryEntry
	unsavedCatalog models.Catalog
}

// Option configures a Planner.
type Option func(*Planner)

// WithPicker sets the source of random dish choices.
func WithPicker(p Picker) Option {
	return func(pl *Planner) { pl.picker = p }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(pl *Planner) { pl.now = now }
}

// WithLocation sets the timezone that decides which calendar day is today.
func WithLocation(loc *time.Location) Option {
	return func(pl *Planner) { pl.loc = loc }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(pl *Planner) { pl.logger = logger }
}

func NewPlanner(catalog CatalogStore, history HistoryStore, opts ...Option) *Planner {
	p := &Planner{
		catalog: catalog,
		history: history,
		picker:  globalPicker{},
		now:     time.Now,
		loc:     time.Local,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TodayKey is the date key of the current local day.
func (p *Planner) TodayKey() string {
	return models.DateKey(p.now(), p.loc)
}

func (p *Planner) loadHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	if p.unsavedHistory != nil {
		p.logger.Debug("Serving unsaved history", zap.Int("entries", len(p.unsavedHistory)))
		return TrimHistory(p.unsavedHistory), nil
	}
	h, err := p.history.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return TrimHistory(h), nil
}

func (p *Planner) loadCatalog(ctx context.Context) (models.Catalog, error) {
	if p.unsavedCatalog != nil {
		p.logger.Debug("Serving unsaved catalog")
		return p.unsavedCatalog.Clone(), nil
	}
	c, err := p.catalog.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

func (p *Planner) saveHistory(ctx context.Context, h []models.HistoryEntry) error {
	if err := p.history.SaveHistory(ctx, h); err != nil {
		p.logger.Warn("Failed to save history", zap.Error(err))
		p.unsavedHistory = h
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	p.unsavedHistory = nil
	return nil
}

// Today returns today's entry, generating and storing it on the first call
// of the day. Later calls return the stored entry unchanged.
func (p *Planner) Today(ctx context.Context) (models.HistoryEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	history, err := p.loadHistory(ctx)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	today := p.TodayKey()
	if entry, ok := FindEntry(history, today); ok {
		return entry, nil
	}

	catalog, err := p.loadCatalog(ctx)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	entry := models.HistoryEntry{
		Date: today,
		Menu: GenerateDay(catalog, RecentEntries(history, today), p.picker),
	}
	p.logger.Info("Generated menu", zap.String("date", today))
	return entry, p.saveHistory(ctx, prependEntry(entry, history))
}

// RefreshDay discards today's entry and generates a new one.
func (p *Planner) RefreshDay(ctx context.Context) (models.HistoryEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	history, err := p.loadHistory(ctx)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	catalog, err := p.loadCatalog(ctx)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	today := p.TodayKey()
	rest := WithoutDate(history, today)
	entry := models.HistoryEntry{
		Date: today,
		Menu: GenerateDay(catalog, RecentEntries(rest, today), p.picker),
	}
	p.logger.Info("Refreshed menu", zap.String("date", today))
	return entry, p.saveHistory(ctx, prependEntry(entry, rest))
}

// RefreshMeal regenerates one meal of today and leaves the other untouched.
// Without an entry for today, the other meal comes from a fresh baseline.
func (p *Planner) RefreshMeal(ctx context.Context, slot models.MealSlot) (models.HistoryEntry, error) {
	if _, err := models.ParseMealSlot(string(slot)); err != nil {
		return models.HistoryEntry{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	history, err := p.loadHistory(ctx)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	catalog, err := p.loadCatalog(ctx)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	today := p.TodayKey()
	window := RecentEntries(history, today)
	meal := GenerateMeal(catalog, window, p.picker)

	base, ok := FindEntry(history, today)
	if !ok {
		base = models.HistoryEntry{Date: today, Menu: GenerateDay(catalog, window, p.picker)}
	}
	entry := models.HistoryEntry{Date: today, Menu: base.Menu.WithSlot(slot, meal)}
	p.logger.Info("Refreshed meal", zap.String("date", today), zap.String("meal", string(slot)))
	return entry, p.saveHistory(ctx, prependEntry(entry, history))
}

// History returns the stored entries, newest first.
func (p *Planner) History(ctx context.Context) ([]models.HistoryEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadHistory(ctx)
}

func (p *Planner) Catalog(ctx context.Context) (models.Catalog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadCatalog(ctx)
}

// SaveCatalog replaces the lists of every category present in updates.
// Categories missing from updates keep their current lists.
func (p *Planner) SaveCatalog(ctx context.Context, updates models.Catalog) (models.Catalog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, err := p.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	for c, list := range updates {
		if !c.Valid() {
			return nil, &models.UnknownCategoryError{Value: string(c)}
		}
		if list == nil {
			list = []string{}
		}
		next[c] = list
	}
	return p.storeCatalog(ctx, next)
}

// UpdateCategory replaces one category from editor text, one dish per line.
func (p *Planner) UpdateCategory(ctx context.Context, c models.Category, text string) (models.Catalog, error) {
	if !c.Valid() {
		return nil, &models.UnknownCategoryError{Value: string(c)}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	current, err := p.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	next[c] = ParseDishLines(text)
	return p.storeCatalog(ctx, next)
}

func (p *Planner) storeCatalog(ctx context.Context, c models.Catalog) (models.Catalog, error) {
	clean := CleanCatalog(c)
	if err := p.catalog.SaveCatalog(ctx, clean); err != nil {
		p.logger.Warn("Failed to save catalog", zap.Error(err))
		p.unsavedCatalog = clean
		return clean.Clone(), fmt.Errorf("%w: %w", ErrPersist, err)
	}
	p.unsavedCatalog = nil
	p.logger.Info("Saved catalog")
	return clean, nil
}
