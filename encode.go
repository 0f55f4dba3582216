package stockwatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dipwatch/stockwatch/date"
)

// This file persists the tracking store as a single JSON document mapping
// each symbol to its record. The document is human-readable and diff-friendly
// so the data can live in a private git repository. Symbols keep their store
// order and observations their date order, so load→save round-trips without
// any reordering.
//
// Decoding trusts nothing: every field is validated and the first violation
// fails the whole load with ErrPersistenceCorrupt. A store that half-parses
// would silently produce a wrong report, which is worse than not starting.

// jobservation is the persisted form of one observation.
type jobservation struct {
	Date      date.Date `json:"date"`
	Price     float64   `json:"price"`
	ChangePct float64   `json:"change_pct"`
}

// jrecord is the persisted form of one symbol record. Baseline is a pointer
// so that "no baseline yet" persists as an explicit null.
type jrecord struct {
	Name         string         `json:"display_name"`
	Category     string         `json:"category"`
	Currency     string         `json:"currency,omitempty"`
	TargetDrop   float64        `json:"target_drop_pct"`
	Baseline     *float64       `json:"baseline_price"`
	Observations []jobservation `json:"observations"`
}

// corrupt builds the ErrPersistenceCorrupt error for one symbol.
func corrupt(symbol, format string, args ...any) error {
	return fmt.Errorf("%w: symbol %q: %s", ErrPersistenceCorrupt, symbol, fmt.Sprintf(format, args...))
}

// buildRecord validates a decoded jrecord and turns it into a Record.
func buildRecord(symbol string, jr jrecord) (*Record, error) {
	if jr.Name == "" {
		return nil, corrupt(symbol, "display_name is empty")
	}
	if jr.Category == "" {
		return nil, corrupt(symbol, "category is empty")
	}
	if jr.TargetDrop <= 0 || jr.TargetDrop >= 100 {
		return nil, corrupt(symbol, "target_drop_pct %v outside (0,100)", jr.TargetDrop)
	}
	if jr.Baseline == nil && len(jr.Observations) > 0 {
		return nil, corrupt(symbol, "baseline_price is null but %d observations exist", len(jr.Observations))
	}
	if jr.Baseline != nil && *jr.Baseline <= 0 {
		return nil, corrupt(symbol, "baseline_price %v is not positive", *jr.Baseline)
	}

	r := &Record{
		symbol:     symbol,
		name:       jr.Name,
		category:   jr.Category,
		currency:   jr.Currency,
		targetDrop: Percent(jr.TargetDrop),
	}
	if r.currency == "" {
		r.currency = DefaultCurrency
	}
	if jr.Baseline != nil {
		r.baseline, r.hasBaseline = *jr.Baseline, true
	}

	var prev date.Date
	for i, jo := range jr.Observations {
		if jo.Date.IsZero() {
			return nil, corrupt(symbol, "observation %d has no date", i)
		}
		if jo.Price <= 0 {
			return nil, corrupt(symbol, "observation on %s has price %v, want positive", jo.Date, jo.Price)
		}
		if i > 0 && jo.Date.Compare(prev) <= 0 {
			return nil, corrupt(symbol, "observation dates not strictly ascending at %s", jo.Date)
		}
		prev = jo.Date
		r.observations = append(r.observations, Observation{
			On:        jo.Date,
			Price:     jo.Price,
			ChangePct: Percent(jo.ChangePct),
		})
	}
	return r, nil
}

// DecodeStore parses a persisted store document and seeds records for any
// watch-list entries the document does not know yet. It fails with
// ErrPersistenceCorrupt on the first shape violation.
func DecodeStore(r io.Reader, w *Watchlist) (*Store, error) {
	s := &Store{
		watchlist: w,
		records:   make(map[string]*Record, w.Len()),
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceCorrupt, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: document is not a JSON object", ErrPersistenceCorrupt)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceCorrupt, err)
		}
		symbol, ok := keyTok.(string)
		if !ok || symbol == "" {
			return nil, fmt.Errorf("%w: invalid symbol key %v", ErrPersistenceCorrupt, keyTok)
		}
		if _, dup := s.records[symbol]; dup {
			return nil, corrupt(symbol, "defined twice")
		}

		var jr jrecord
		if err := dec.Decode(&jr); err != nil {
			return nil, corrupt(symbol, "%v", err)
		}
		rec, err := buildRecord(symbol, jr)
		if err != nil {
			return nil, err
		}
		s.records[symbol] = rec
		s.order = append(s.order, symbol)
	}

	// Consume the closing brace; anything after it is garbage.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceCorrupt, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", ErrPersistenceCorrupt)
	}

	s.seed()
	return s, nil
}

// EncodeStore writes the store as an indented JSON document, symbols in
// store order.
func EncodeStore(w io.Writer, s *Store) error {
	var doc jsonObjectWriter
	for rec := range s.Records() {
		jr := jrecord{
			Name:       rec.name,
			Category:   rec.category,
			Currency:   rec.currency,
			TargetDrop: float64(rec.targetDrop),
		}
		if rec.hasBaseline {
			baseline := rec.baseline
			jr.Baseline = &baseline
		}
		// Persist an empty list, not null, so the shape stays uniform.
		jr.Observations = make([]jobservation, 0, len(rec.observations))
		for _, o := range rec.observations {
			jr.Observations = append(jr.Observations, jobservation{
				Date:      o.On,
				Price:     o.Price,
				ChangePct: float64(o.ChangePct),
			})
		}

		raw, err := json.Marshal(jr)
		if err != nil {
			return fmt.Errorf("persist error: cannot marshal record %q: %w", rec.symbol, err)
		}
		doc.AppendRaw(rec.symbol, raw)
	}

	compact, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, compact, "", "  "); err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	indented.WriteByte('\n')
	if _, err := w.Write(indented.Bytes()); err != nil {
		return fmt.Errorf("persist error: cannot write document: %w", err)
	}
	return nil
}

// LoadStore reads the store document from disk. A missing file is not an
// error: it returns a fresh store seeded from the watch list, which is the
// first-run behavior.
func LoadStore(path string, w *Watchlist) (*Store, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStore(w), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open tracking data %q: %w", path, err)
	}
	defer f.Close()

	s, err := DecodeStore(f, w)
	if err != nil {
		return nil, fmt.Errorf("tracking data %q: %w", path, err)
	}
	return s, nil
}

// SaveStore atomically writes the store document: the content goes to a
// temporary file in the same directory, is flushed to disk, and only then
// renamed over the target. A crash mid-save leaves the previous file intact,
// never a truncated one.
func SaveStore(path string, s *Store) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("persist error: cannot create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tracking-*.json")
	if err != nil {
		return fmt.Errorf("persist error: cannot create temporary file in %q: %w", dir, err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := EncodeStore(tmp, s); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("persist error: cannot flush %q: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("persist error: cannot chmod %q: %w", tmp.Name(), err)
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist error: cannot close %q: %w", name, err)
	}
	tmp = nil // disarm the cleanup

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("persist error: cannot rename %q to %q: %w", name, path, err)
	}
	return nil
}
