package stockwatch

import (
	"strings"
	"testing"
)

func TestNewWatchlistValidation(t *testing.T) {
	valid := Entry{Symbol: "1398.HK", Name: "ICBC", Category: "Banks", TargetDrop: 10}
	tests := []struct {
		name    string
		mutate  func(e *Entry)
		wantErr bool
	}{
		{"valid", func(e *Entry) {}, false},
		{"empty symbol", func(e *Entry) { e.Symbol = "" }, true},
		{"empty name", func(e *Entry) { e.Name = "" }, true},
		{"unknown category", func(e *Entry) { e.Category = "Tech" }, true},
		{"zero target drop", func(e *Entry) { e.TargetDrop = 0 }, true},
		{"negative target drop", func(e *Entry) { e.TargetDrop = -5 }, true},
		{"hundred percent target drop", func(e *Entry) { e.TargetDrop = 100 }, true},
		{"above hundred", func(e *Entry) { e.TargetDrop = 150 }, true},
		{"just below hundred", func(e *Entry) { e.TargetDrop = 99.9 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			_, err := NewWatchlist([]Entry{e})
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("NewWatchlist() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewWatchlistRejectsDuplicates(t *testing.T) {
	_, err := NewWatchlist([]Entry{
		{Symbol: "1398.HK", Name: "ICBC", Category: "Banks", TargetDrop: 10},
		{Symbol: "1398.HK", Name: "ICBC again", Category: "Banks", TargetDrop: 20},
	})
	if err == nil {
		t.Fatal("duplicate symbol accepted")
	}
}

func TestNewWatchlistDefaultsCurrency(t *testing.T) {
	w := newTestWatchlist(t, Entry{Symbol: "1398.HK", Name: "ICBC", Category: "Banks", TargetDrop: 10})
	e, _ := w.Describe("1398.HK")
	if e.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", e.Currency, DefaultCurrency)
	}
}

func TestDescribeUnknownSymbol(t *testing.T) {
	w := newTestWatchlist(t)
	if _, ok := w.Describe("0005.HK"); ok {
		t.Error("Describe() found a symbol that is not on the list")
	}
	if w.Has("0005.HK") {
		t.Error("Has() = true for a symbol that is not on the list")
	}
}

func TestDecodeWatchlist(t *testing.T) {
	doc := `
watchlist:
  - symbol: 1398.HK
    name: ICBC
    category: Banks
    target_drop_pct: 10
  - symbol: 0857.HK
    name: PetroChina
    category: Energy
    target_drop_pct: 15
    currency: HKD
`
	w, err := DecodeWatchlist(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeWatchlist() = %v", err)
	}
	if w.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", w.Len())
	}
	e, _ := w.Describe("0857.HK")
	if e.Name != "PetroChina" || e.TargetDrop != 15 {
		t.Errorf("Describe(0857.HK) = %+v", e)
	}
}

func TestDecodeWatchlistRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ``},
		{"empty list", `watchlist: []`},
		{"unknown field", "watchlist:\n  - symbol: 1398.HK\n    name: ICBC\n    category: Banks\n    target_drop_pct: 10\n    note: hello\n"},
		{"invalid entry", "watchlist:\n  - symbol: 1398.HK\n    name: ICBC\n    category: Banks\n    target_drop_pct: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeWatchlist(strings.NewReader(tt.doc)); err == nil {
				t.Error("DecodeWatchlist() succeeded, want error")
			}
		})
	}
}

func TestDefaultWatchlist(t *testing.T) {
	w := DefaultWatchlist()
	if w.Len() == 0 {
		t.Fatal("default watch list is empty")
	}
	for e := range w.Entries() {
		if e.Currency != DefaultCurrency {
			t.Errorf("%s: Currency = %q, want %q", e.Symbol, e.Currency, DefaultCurrency)
		}
	}
	if !w.Has("1398.HK") {
		t.Error("default list is missing 1398.HK")
	}
}

func TestLoadWatchlistEmptyPath(t *testing.T) {
	w, err := LoadWatchlist("")
	if err != nil {
		t.Fatalf("LoadWatchlist(\"\") = %v", err)
	}
	if w.Len() != DefaultWatchlist().Len() {
		t.Errorf("Len() = %d, want the default list", w.Len())
	}
}
