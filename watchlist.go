package stockwatch

import (
	"fmt"
	"io"
	"iter"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCurrency is used for entries that do not name one. The default
// watch list is Hong Kong listed, hence HKD.
const DefaultCurrency = "HKD"

// DefaultTargetDrop is the target-drop percentage applied to symbols that are
// observed without being in the watch list.
const DefaultTargetDrop = Percent(10)

// CategoryUnknown is the placeholder category for symbols outside the watch
// list. Observing an unknown symbol is not an error: it degrades to this.
const CategoryUnknown = "Unknown"

// Categories is the fixed label set a watch-list entry may use.
var Categories = []string{
	"Banks",
	"Energy",
	"Utilities",
	"Infrastructure",
	"Property",
	"Cigar Butt",
	CategoryUnknown,
}

func validCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Entry is the immutable reference data for one watched symbol. Entries are
// created from configuration at startup and never mutated afterwards; records
// copy their metadata at creation time.
type Entry struct {
	Symbol     string  `yaml:"symbol"`
	Name       string  `yaml:"name"`
	Category   string  `yaml:"category"`
	TargetDrop Percent `yaml:"target_drop_pct"`
	Currency   string  `yaml:"currency,omitempty"`
}

func (e Entry) validate() error {
	if e.Symbol == "" {
		return fmt.Errorf("entry has an empty symbol")
	}
	if e.Name == "" {
		return fmt.Errorf("entry %q has an empty name", e.Symbol)
	}
	if !validCategory(e.Category) {
		return fmt.Errorf("entry %q has unknown category %q", e.Symbol, e.Category)
	}
	// A target drop of 100% or more would put the target price at or below
	// zero and make distance-to-target undefined. Rejected here so that the
	// evaluator can treat a zero target price as corruption.
	if e.TargetDrop <= 0 || e.TargetDrop >= 100 {
		return fmt.Errorf("entry %q has target_drop_pct %v, want a value in (0,100)", e.Symbol, float64(e.TargetDrop))
	}
	return nil
}

// Watchlist is a read-only registry of watched symbols, in configuration
// order.
type Watchlist struct {
	entries []Entry
	index   map[string]Entry
}

// NewWatchlist builds a registry from the given entries, validating each one.
// Configuration errors are fatal: a malformed target drop would otherwise
// surface much later as a wrong signal.
func NewWatchlist(entries []Entry) (*Watchlist, error) {
	w := &Watchlist{index: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("invalid watch list: %w", err)
		}
		if _, dup := w.index[e.Symbol]; dup {
			return nil, fmt.Errorf("invalid watch list: symbol %q is defined twice", e.Symbol)
		}
		if e.Currency == "" {
			e.Currency = DefaultCurrency
		}
		w.entries = append(w.entries, e)
		w.index[e.Symbol] = e
	}
	return w, nil
}

// Describe returns the reference data for a symbol, or false if the symbol is
// not on the watch list.
func (w *Watchlist) Describe(symbol string) (Entry, bool) {
	e, ok := w.index[symbol]
	return e, ok
}

// Has reports whether the symbol is on the watch list.
func (w *Watchlist) Has(symbol string) bool {
	_, ok := w.index[symbol]
	return ok
}

// Len returns the number of entries.
func (w *Watchlist) Len() int { return len(w.entries) }

// Entries iterates over all entries in configuration order.
func (w *Watchlist) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range w.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// placeholder returns the reference data used when an unknown symbol is
// observed.
func placeholder(symbol string) Entry {
	return Entry{
		Symbol:     symbol,
		Name:       "Unknown",
		Category:   CategoryUnknown,
		TargetDrop: DefaultTargetDrop,
		Currency:   DefaultCurrency,
	}
}

// DecodeWatchlist reads a YAML watch list: a document with a single
// "watchlist" key holding the list of entries. Unknown fields are rejected.
func DecodeWatchlist(r io.Reader) (*Watchlist, error) {
	var doc struct {
		Watchlist []Entry `yaml:"watchlist"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse watch list: %w", err)
	}
	if len(doc.Watchlist) == 0 {
		return nil, fmt.Errorf("watch list is empty")
	}
	return NewWatchlist(doc.Watchlist)
}

// LoadWatchlist loads a watch list from a YAML file. An empty path returns
// the built-in default list.
func LoadWatchlist(path string) (*Watchlist, error) {
	if path == "" {
		return DefaultWatchlist(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open watch list %q: %w", path, err)
	}
	defer f.Close()
	w, err := DecodeWatchlist(f)
	if err != nil {
		return nil, fmt.Errorf("watch list %q: %w", path, err)
	}
	return w, nil
}

// DefaultWatchlist returns the built-in Hong Kong watch list used when no
// configuration file is given.
func DefaultWatchlist() *Watchlist {
	w, err := NewWatchlist([]Entry{
		{Symbol: "1398.HK", Name: "ICBC", Category: "Banks", TargetDrop: 10},
		{Symbol: "3988.HK", Name: "Bank of China", Category: "Banks", TargetDrop: 10},
		{Symbol: "0939.HK", Name: "CCB", Category: "Banks", TargetDrop: 10},
		{Symbol: "1288.HK", Name: "Agricultural Bank of China", Category: "Banks", TargetDrop: 10},

		{Symbol: "1088.HK", Name: "China Shenhua", Category: "Energy", TargetDrop: 15},
		{Symbol: "1898.HK", Name: "China Coal Energy", Category: "Energy", TargetDrop: 15},
		{Symbol: "0386.HK", Name: "Sinopec", Category: "Energy", TargetDrop: 15},
		{Symbol: "0857.HK", Name: "PetroChina", Category: "Energy", TargetDrop: 15},

		{Symbol: "0836.HK", Name: "China Resources Power", Category: "Utilities", TargetDrop: 15},
		{Symbol: "0902.HK", Name: "Huaneng Power", Category: "Utilities", TargetDrop: 15},
		{Symbol: "2380.HK", Name: "China Power", Category: "Utilities", TargetDrop: 15},

		{Symbol: "3311.HK", Name: "China State Construction Intl", Category: "Infrastructure", TargetDrop: 15},
		{Symbol: "0960.HK", Name: "Longfor Group", Category: "Property", TargetDrop: 20},

		{Symbol: "0882.HK", Name: "Tianjin Development", Category: "Cigar Butt", TargetDrop: 5},
		{Symbol: "3320.HK", Name: "China Resources Pharma", Category: "Cigar Butt", TargetDrop: 10},
		{Symbol: "0363.HK", Name: "Tong Ren Tang Technologies", Category: "Cigar Butt", TargetDrop: 15},
	})
	if err != nil {
		// The default list is a compile-time constant; it cannot be invalid.
		panic(err)
	}
	return w
}
