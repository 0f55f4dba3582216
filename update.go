package stockwatch

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dipwatch/stockwatch/date"
)

// This file contains the daily batch update against a price provider.

// Quoter supplies a closing price for a symbol on a given date, or fails.
// Concrete providers live outside the core (see the yahoo package); the
// batch update only needs this capability.
type Quoter interface {
	Quote(symbol string, on date.Date) (float64, error)
}

// UpdateResult summarizes one batch update cycle.
type UpdateResult struct {
	On      date.Date
	Updated []string         // symbols upserted this cycle, in store order
	Failed  map[string]error // per-symbol fetch failures
}

// FailedSymbols returns the failed symbols sorted, ready for the report.
func (u *UpdateResult) FailedSymbols() []string {
	if len(u.Failed) == 0 {
		return nil
	}
	symbols := make([]string, 0, len(u.Failed))
	for s := range u.Failed {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Err returns all per-symbol failures joined, or nil when every symbol
// updated cleanly.
func (u *UpdateResult) Err() error {
	var errs error
	for _, s := range u.FailedSymbols() {
		errs = errors.Join(errs, fmt.Errorf("%s: %w", s, u.Failed[s]))
	}
	return errs
}

// UpdateAll fetches today's closing price for every watch-list symbol and
// upserts it into the store. Each symbol is an independent unit: a fetch
// failure is recorded in the result and the remaining symbols still update,
// with the failed symbol's record left untouched for this cycle. Re-running
// the whole batch for the same date is idempotent.
//
// The returned error is non-nil only for invariant violations
// (ErrDivisionUndefined); those abort the batch immediately instead of being
// filed as one more per-symbol failure.
func (s *Store) UpdateAll(q Quoter, on date.Date) (*UpdateResult, error) {
	result := &UpdateResult{On: on, Failed: make(map[string]error)}

	for e := range s.watchlist.Entries() {
		price, err := q.Quote(e.Symbol, on)
		if err != nil {
			result.Failed[e.Symbol] = err
			continue
		}
		if _, err := s.Upsert(e.Symbol, price, on); err != nil {
			if errors.Is(err, ErrDivisionUndefined) {
				return result, err
			}
			// A non-positive quote is a provider problem, not corruption:
			// treat it like a fetch failure and keep going.
			result.Failed[e.Symbol] = err
			continue
		}
		result.Updated = append(result.Updated, e.Symbol)
	}
	return result, nil
}
