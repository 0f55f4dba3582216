package stockwatch

import (
	"fmt"
	"iter"
	"slices"

	"github.com/dipwatch/stockwatch/date"
)

// Observation is one recorded closing price. ChangePct is measured against
// the record's fixed baseline, not a rolling window, and is rounded to two
// decimals at the time the observation is recorded.
type Observation struct {
	On        date.Date
	Price     float64
	ChangePct Percent
}

// Record holds the tracking state of one symbol: the reference data copied
// from the watch list at creation time, the baseline price fixed by the first
// observation ever recorded, and the observations in date-ascending order
// with at most one per date.
//
// Records are owned by a Store; the Store is the sole mutator.
type Record struct {
	symbol     string
	name       string
	category   string
	currency   string
	targetDrop Percent

	baseline    float64
	hasBaseline bool

	observations []Observation
}

func newRecord(e Entry) *Record {
	return &Record{
		symbol:     e.Symbol,
		name:       e.Name,
		category:   e.Category,
		currency:   e.Currency,
		targetDrop: e.TargetDrop,
	}
}

// Symbol returns the symbol identifier.
func (r *Record) Symbol() string { return r.symbol }

// Name returns the display name.
func (r *Record) Name() string { return r.name }

// Category returns the watch-list category label.
func (r *Record) Category() string { return r.category }

// Currency returns the ISO currency code prices are quoted in.
func (r *Record) Currency() string { return r.currency }

// TargetDrop returns the configured target-drop percentage (positive).
func (r *Record) TargetDrop() Percent { return r.targetDrop }

// Baseline returns the baseline price and whether it has been set. It is
// false only before the first observation is recorded.
func (r *Record) Baseline() (float64, bool) { return r.baseline, r.hasBaseline }

// Len returns the number of observations.
func (r *Record) Len() int { return len(r.observations) }

// Latest returns the most recent observation, or false if there is none.
func (r *Record) Latest() (Observation, bool) {
	if len(r.observations) == 0 {
		return Observation{}, false
	}
	return r.observations[len(r.observations)-1], true
}

// Observations iterates over all observations in date-ascending order.
func (r *Record) Observations() iter.Seq[Observation] {
	return func(yield func(Observation) bool) {
		for _, o := range r.observations {
			if !yield(o) {
				return
			}
		}
	}
}

// upsert records a closing price for a date. A re-observation for an already
// recorded date replaces the previous one; a new date is inserted in sorted
// position, so out-of-order backfills keep the series ordered.
func (r *Record) upsert(price float64, on date.Date) (Observation, error) {
	if price <= 0 {
		return Observation{}, fmt.Errorf("invalid price %v for %q on %s: price must be positive", price, r.symbol, on)
	}
	// The baseline is fixed by the first observation ever recorded and never
	// changes afterwards, whatever later prices do.
	if !r.hasBaseline {
		r.baseline, r.hasBaseline = price, true
	}
	if r.baseline == 0 {
		// Unreachable while the price positivity invariant holds. Treated as
		// corruption, never coerced to a zero change.
		return Observation{}, fmt.Errorf("%w: baseline price for %q is zero", ErrDivisionUndefined, r.symbol)
	}

	obs := Observation{On: on, Price: price, ChangePct: pctChange(price, r.baseline)}

	i, found := slices.BinarySearchFunc(r.observations, on, func(o Observation, day date.Date) int {
		return o.On.Compare(day)
	})
	if found {
		r.observations[i] = obs
	} else {
		r.observations = slices.Insert(r.observations, i, obs)
	}
	return obs, nil
}

// Store owns the tracking records, one per symbol. It is seeded from a watch
// list so every configured symbol has a record from the start, and grows a
// placeholder record when an unknown symbol is observed.
//
// A Store expects a single writer: one tracking run at a time. Multi-process
// concurrent runs are not a supported use case and there is no file locking.
type Store struct {
	watchlist *Watchlist
	records   map[string]*Record
	order     []string // symbols in creation order, for stable iteration and persistence
}

// NewStore returns a Store seeded with one empty record per watch-list entry.
func NewStore(w *Watchlist) *Store {
	s := &Store{
		watchlist: w,
		records:   make(map[string]*Record, w.Len()),
	}
	for e := range w.Entries() {
		s.records[e.Symbol] = newRecord(e)
		s.order = append(s.order, e.Symbol)
	}
	return s
}

// Watchlist returns the registry the store was created with.
func (s *Store) Watchlist() *Watchlist { return s.watchlist }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.order) }

// Get returns the record for a symbol, or false if none exists yet.
func (s *Store) Get(symbol string) (*Record, bool) {
	r, ok := s.records[symbol]
	return r, ok
}

// Latest returns the most recent observation for a symbol, or false when the
// symbol has no data.
func (s *Store) Latest(symbol string) (Observation, bool) {
	r, ok := s.records[symbol]
	if !ok {
		return Observation{}, false
	}
	return r.Latest()
}

// Records iterates over all records in creation order: watch-list order for
// seeded symbols, then unknown symbols in the order they were observed. The
// sequence is re-iterable.
func (s *Store) Records() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, symbol := range s.order {
			if !yield(s.records[symbol]) {
				return
			}
		}
	}
}

// Upsert records a closing price for a symbol on a date, creating the record
// on first sight. Unknown symbols get placeholder reference data rather than
// an error. Re-running the same date replaces the observation in place, so a
// whole daily batch is safe to re-run.
func (s *Store) Upsert(symbol string, price float64, on date.Date) (Observation, error) {
	r, ok := s.records[symbol]
	if !ok {
		e, known := s.watchlist.Describe(symbol)
		if !known {
			e = placeholder(symbol)
		}
		r = newRecord(e)
		s.records[symbol] = r
		s.order = append(s.order, symbol)
	}
	return r.upsert(price, on)
}

// seed adds empty records for watch-list entries that are not in the store
// yet. Used after loading persisted state, so symbols added to the
// configuration between runs are picked up.
func (s *Store) seed() {
	for e := range s.watchlist.Entries() {
		if _, ok := s.records[e.Symbol]; !ok {
			s.records[e.Symbol] = newRecord(e)
			s.order = append(s.order, e.Symbol)
		}
	}
}

// Series is the data handed to a chart exporter: the ordered price series of
// one symbol plus its baseline and target price levels. It is exactly what a
// trend chart needs, nothing more.
type Series struct {
	Symbol      string
	Name        string
	Currency    string
	Dates       []date.Date
	Prices      []float64
	Baseline    float64 // zero when the record has no baseline yet
	TargetPrice float64 // zero when the record has no baseline yet
}

// Series builds the chart-exporter view of the record.
func (r *Record) Series() Series {
	s := Series{
		Symbol:   r.symbol,
		Name:     r.name,
		Currency: r.currency,
	}
	for _, o := range r.observations {
		s.Dates = append(s.Dates, o.On)
		s.Prices = append(s.Prices, o.Price)
	}
	if r.hasBaseline {
		s.Baseline = r.baseline
		s.TargetPrice = targetPrice(r.baseline, r.targetDrop)
	}
	return s
}
