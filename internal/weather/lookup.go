package weather

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/carlosfiori/conversor-clima/internal/fetch"
	"github.com/carlosfiori/conversor-clima/internal/prefs"
)

type Query struct {
	City string `json:"city"`
}

type State = fetch.State[Snapshot]

// Lookup is the fetch controller of the weather widget. It remembers the
// last successful city in the preference store.
type Lookup struct {
	client Client
	store  prefs.Store
	logger *zap.Logger
	ctrl   *fetch.Controller[Query, Snapshot]

	mu    sync.RWMutex
	query string
}

func NewLookup(client Client, store prefs.Store, logger *zap.Logger) *Lookup {
	l := &Lookup{client: client, store: store, logger: logger}
	l.ctrl = fetch.New("weather", l.current,
		fetch.WithValidator[Query, Snapshot](func(q Query) error {
			if q.City == "" {
				return fetch.ErrSkip
			}
			return nil
		}),
		fetch.WithOnSuccess[Query, Snapshot](l.remember),
		fetch.WithLogger[Query, Snapshot](logger),
	)
	return l
}

// Search looks up city. An empty city is ignored.
func (l *Lookup) Search(ctx context.Context, city string) State {
	q := Query{City: strings.TrimSpace(city)}
	if q.City != "" {
		l.setQuery(q.City)
	}
	return l.ctrl.Execute(ctx, q)
}

// Restore pre-populates the query with the stored city and searches it.
// It reports false when nothing was stored or a search already set the query.
func (l *Lookup) Restore(ctx context.Context) (State, bool) {
	city, err := l.store.Get(ctx, prefs.LastCityKey)
	if err != nil {
		if !errors.Is(err, prefs.ErrNotFound) {
			l.logger.Warn("Could not read last city", zap.Error(err))
		}
		return l.State(), false
	}
	city = strings.TrimSpace(city)
	if city == "" || !l.claimQuery(city) {
		return l.State(), false
	}

	l.logger.Info("Restoring last city", zap.String("city", city))
	return l.Search(ctx, city), true
}

// Query is the current value of the city input.
func (l *Lookup) Query() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.query
}

func (l *Lookup) State() State {
	return l.ctrl.Snapshot()
}

func (l *Lookup) setQuery(city string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = city
}

// claimQuery sets the query only while it is still empty.
func (l *Lookup) claimQuery(city string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.query != "" {
		return false
	}
	l.query = city
	return true
}

func (l *Lookup) current(ctx context.Context, q Query) (Snapshot, error) {
	return l.client.Current(ctx, q.City)
}

func (l *Lookup) remember(ctx context.Context, q Query, _ Snapshot) {
	if err := l.store.Set(ctx, prefs.LastCityKey, q.City); err != nil {
		l.logger.Warn("Could not persist last city", zap.String("city", q.City), zap.Error(err))
	}
}
