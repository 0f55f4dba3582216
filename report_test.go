package stockwatch

import (
	"reflect"
	"testing"
	"time"
)

func reportTime(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2024, 1, 3, 18, 30, 0, 0, time.UTC)
}

func TestReportExcludesEmptyRecords(t *testing.T) {
	s := NewStore(newTestWatchlist(t))
	mustUpsert(t, s, "1398.HK", 4.61, "2024-01-02")
	// 0857.HK has no data yet.

	report, err := s.Report(reportTime(t), nil)
	if err != nil {
		t.Fatalf("Report() = %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("Rows = %d, want only the observed symbol", len(report.Rows))
	}
	if report.Rows[0].Symbol != "1398.HK" {
		t.Errorf("Rows[0].Symbol = %q", report.Rows[0].Symbol)
	}
}

func TestReportRow(t *testing.T) {
	w := newTestWatchlist(t, Entry{Symbol: "X.HK", Name: "X Corp", Category: "Banks", TargetDrop: 10})
	s := NewStore(w)
	mustUpsert(t, s, "X.HK", 100, "2024-01-02")
	mustUpsert(t, s, "X.HK", 95, "2024-01-03")

	report, err := s.Report(reportTime(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := OverviewRow{
		Symbol:      "X.HK",
		Name:        "X Corp",
		Category:    "Banks",
		Baseline:    100,
		Price:       95,
		ChangePct:   -5,
		TargetDrop:  10,
		TargetPrice: 90,
		DistancePct: 5.6,
		Status:      Observing,
	}
	if got := report.Rows[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("Rows[0] = %+v\nwant      %+v", got, want)
	}
	if report.HasSignals() {
		t.Error("HasSignals() = true with every symbol observing")
	}
}

func TestReportBuySignals(t *testing.T) {
	s := NewStore(newTestWatchlist(t))
	mustUpsert(t, s, "1398.HK", 4.61, "2024-01-02")
	mustUpsert(t, s, "1398.HK", 4.00, "2024-01-03") // -13.23%, beyond the 10% target
	mustUpsert(t, s, "0857.HK", 6.20, "2024-01-02")
	mustUpsert(t, s, "0857.HK", 6.00, "2024-01-03") // -3.23%, observing

	report, err := s.Report(reportTime(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !report.HasSignals() || len(report.Signals) != 1 {
		t.Fatalf("Signals = %+v, want exactly one", report.Signals)
	}
	sig := report.Signals[0]
	if sig.Symbol != "1398.HK" || sig.Name != "ICBC" {
		t.Errorf("signal identity = %q/%q", sig.Symbol, sig.Name)
	}
	if !sig.DrawdownPct.Equal(13.23) {
		t.Errorf("DrawdownPct = %v, want the positive magnitude 13.23", sig.DrawdownPct)
	}
	if sig.TargetPrice != 4.15 {
		t.Errorf("TargetPrice = %v, want 4.15", sig.TargetPrice)
	}
	if sig.Currency != DefaultCurrency {
		t.Errorf("Currency = %q", sig.Currency)
	}
}

func TestReportCarriesFailedSymbols(t *testing.T) {
	s := NewStore(newTestWatchlist(t))
	mustUpsert(t, s, "1398.HK", 4.61, "2024-01-02")

	report, err := s.Report(reportTime(t), []string{"0857.HK"})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Failed) != 1 || report.Failed[0] != "0857.HK" {
		t.Errorf("Failed = %v", report.Failed)
	}
}

func TestReportIsDeterministic(t *testing.T) {
	s := NewStore(newTestWatchlist(t))
	mustUpsert(t, s, "1398.HK", 4.61, "2024-01-02")
	mustUpsert(t, s, "0857.HK", 6.20, "2024-01-02")

	now := reportTime(t)
	a, err := s.Report(now, []string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Report(now, []string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical store state and timestamp produced different reports")
	}
}
