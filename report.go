package stockwatch

import (
	"time"
)

// OverviewRow is one line of the report's overview table.
type OverviewRow struct {
	Symbol      string
	Name        string
	Category    string
	Baseline    float64
	Price       float64
	ChangePct   Percent
	TargetDrop  Percent
	TargetPrice float64
	DistancePct Percent
	Status      Status
}

// BuySignal is a triggered signal called out in the report. DrawdownPct is
// the positive magnitude of the drop from baseline.
type BuySignal struct {
	Symbol      string
	Name        string
	Currency    string
	Price       float64
	DrawdownPct Percent
	TargetPrice float64
}

// TrackingReport is the report model: everything the renderer needs, already
// computed and ordered. Generating it has no side effects; writing the
// rendered text anywhere is the caller's business.
type TrackingReport struct {
	// Time is the generation timestamp. It is an explicit parameter of
	// Report, never read from a clock here, so identical store state and
	// timestamp always produce an identical report.
	Time time.Time

	// Rows holds one entry per symbol with at least one observation, in
	// store order. Symbols without data are excluded, not zero-filled.
	Rows []OverviewRow

	// Signals holds the symbols currently classified Buy, in store order.
	// An empty slice means "no signals today", and the renderer says so
	// explicitly: a reader must never confuse it with "not evaluated".
	Signals []BuySignal

	// Failed lists symbols whose price fetch failed this cycle. Their
	// records kept the previous observation as latest.
	Failed []string
}

// HasSignals reports whether any symbol triggered a buy signal.
func (r *TrackingReport) HasSignals() bool { return len(r.Signals) > 0 }

// Report evaluates every record and assembles the report model. The failed
// list is carried through verbatim so the report can note which symbols were
// not updated this cycle (pass nil when all fetches succeeded).
//
// An evaluation error aborts the report: it only happens on corrupted state,
// and a loud failure beats a wrong report.
func (s *Store) Report(now time.Time, failed []string) (*TrackingReport, error) {
	report := &TrackingReport{Time: now, Failed: failed}

	for rec := range s.Records() {
		if rec.Len() == 0 {
			continue
		}
		ev, err := rec.Evaluate()
		if err != nil {
			return nil, err
		}

		baseline, _ := rec.Baseline()
		report.Rows = append(report.Rows, OverviewRow{
			Symbol:      rec.Symbol(),
			Name:        rec.Name(),
			Category:    rec.Category(),
			Baseline:    baseline,
			Price:       ev.Price,
			ChangePct:   ev.ChangePct,
			TargetDrop:  rec.TargetDrop(),
			TargetPrice: ev.TargetPrice,
			DistancePct: ev.DistancePct,
			Status:      ev.Status,
		})

		if ev.Status == Buy {
			report.Signals = append(report.Signals, BuySignal{
				Symbol:      rec.Symbol(),
				Name:        rec.Name(),
				Currency:    rec.Currency(),
				Price:       ev.Price,
				DrawdownPct: ev.ChangePct.Abs(),
				TargetPrice: ev.TargetPrice,
			})
		}
	}
	return report, nil
}
