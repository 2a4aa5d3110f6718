package fontface

import (
	"testing"

	"github.com/ByLCY/vellum/typeset"
)

func TestWidthFallsBackWithoutFonts(t *testing.T) {
	m, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.Err(); got != nil {
		t.Fatalf("expected no load error before first measurement, got %v", got)
	}

	got := m.Width("Hello", 24)
	want := typeset.Metrics{}.Width("Hello", 24)
	if got != want {
		t.Fatalf("expected heuristic fallback width %g, got %g", want, got)
	}
	if m.Err() == nil {
		t.Fatalf("expected load error after fallback measurement")
	}
}

func TestWidthEmptyTextSkipsLoading(t *testing.T) {
	m, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.Width("", 24); got != 0 {
		t.Fatalf("empty text width should be 0, got %g", got)
	}
	// 空文本直接短路，不应触发字体加载。
	if m.Err() != nil {
		t.Fatalf("empty text should not trigger font loading: %v", m.Err())
	}
}

func TestWidthCachesMeasurements(t *testing.T) {
	m, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first := m.Width("cache me", 18)
	second := m.Width("cache me", 18)
	if first != second {
		t.Fatalf("repeated measurement differs: %g vs %g", first, second)
	}
	if m.widths.Len() != 1 {
		t.Fatalf("expected 1 cached width, got %d", m.widths.Len())
	}

	// 同文本不同字号是另一个缓存键。
	m.Width("cache me", 36)
	if m.widths.Len() != 2 {
		t.Fatalf("expected 2 cached widths, got %d", m.widths.Len())
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		opts Options
	}{
		{"no fonts", Options{}},
		{"missing family", Options{
			Fonts:  map[string]Resource{"Body": {Bytes: []byte{0}}},
			Family: "Missing",
		}},
		{"empty resource", Options{
			Fonts: map[string]Resource{"Body": {}},
		}},
		{"absent path", Options{
			Fonts: map[string]Resource{"Body": {Path: "testdata/absent.ttf"}},
		}},
		{"garbage bytes", Options{
			Fonts: map[string]Resource{"Body": {Bytes: []byte("not a font")}},
		}},
	}
	for _, tc := range cases {
		m, err := New(tc.opts)
		if err != nil {
			t.Fatalf("%s: New: %v", tc.name, err)
		}
		got := m.Width("Hello", 24)
		want := typeset.Metrics{}.Width("Hello", 24)
		if got != want {
			t.Fatalf("%s: expected fallback width %g, got %g", tc.name, want, got)
		}
		if m.Err() == nil {
			t.Fatalf("%s: expected load error", tc.name)
		}
	}
}
