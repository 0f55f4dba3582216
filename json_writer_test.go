package stockwatch

import "testing"

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps append order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("zulu", 1)
		w.Append("alpha", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"zulu":1,"alpha":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("raw values", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 1)
		w.AppendRaw("b", []byte(`{"c":3}`))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":1,"b":{"c":3}}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("marshal error is sticky", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("bad", func() {}) // functions cannot marshal
		w.Append("good", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("expected the marshal error to surface")
		}
	})
}
