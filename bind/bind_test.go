package bind

import "testing"

func sampleData() map[string]any {
	return map[string]any{
		"metrics": map[string]any{"q3": "$4.2M", "growth": 18.5},
		"wins":    []any{"latency down 40%", "zero sev-1s"},
		"teams": []any{
			[]any{"core", "infra"},
			[]any{"data"},
		},
		"release": map[string]any{
			"tags": []any{map[string]any{"name": "v2.1"}},
		},
		"ok": true,
	}
}

// TestLookupPaths 覆盖点路径、下标、多重下标与各类未命中情况。
func TestLookupPaths(t *testing.T) {
	data := sampleData()
	hits := []struct {
		path string
		want any
	}{
		{"metrics.q3", "$4.2M"},
		{"metrics.growth", 18.5},
		{"wins[1]", "zero sev-1s"},
		{"teams[0][1]", "infra"},
		{"release.tags[0].name", "v2.1"},
		{"ok", true},
	}
	for _, tc := range hits {
		got, ok := Lookup(data, tc.path)
		if !ok {
			t.Fatalf("Lookup(%s) 未命中", tc.path)
		}
		if got != tc.want {
			t.Fatalf("Lookup(%s) = %v, 期望 %v", tc.path, got, tc.want)
		}
	}

	misses := []string{
		"metrics.q9",
		"wins[5]",
		"wins[-1]",
		"wins[x]",
		"metrics.q3.deep",
		"absent",
	}
	for _, path := range misses {
		if _, ok := Lookup(data, path); ok {
			t.Fatalf("Lookup(%s) 不应命中", path)
		}
	}
}

// TestLookupBareIndex 根节点是数组时允许省略名字直接写下标。
func TestLookupBareIndex(t *testing.T) {
	got, ok := Lookup(sampleData()["wins"], "[0]")
	if !ok || got != "latency down 40%" {
		t.Fatalf("Lookup([0]) = %v (%v)", got, ok)
	}
}

// TestInterpolate 覆盖替换、fallback 与未命中时的占位符保留。
func TestInterpolate(t *testing.T) {
	data := sampleData()
	cases := []struct {
		text string
		want string
	}{
		{"Q3 revenue hit ${metrics.q3}", "Q3 revenue hit $4.2M"},
		{"growth ${metrics.growth}%", "growth 18.5%"},
		{"healthy: ${ok}", "healthy: true"},
		{"${wins[0]} and ${wins[1]}", "latency down 40% and zero sev-1s"},
		{"missing ${metrics.q9} stays", "missing ${metrics.q9} stays"},
		{"${metrics.q9|n/a}", "n/a"},
		{"${ metrics.q9 | n/a }", "n/a"},
		{"${metrics.q3|n/a}", "$4.2M"},
		{"${metrics.q9|}", ""},
		{"${|x}", "${|x}"},
		{"no placeholder", "no placeholder"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.text, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, 期望 %q", tc.text, got, tc.want)
		}
	}
}

// TestInterpolateNilData 没有数据时原样返回，占位符留给下游。
func TestInterpolateNilData(t *testing.T) {
	text := "keep ${metrics.q3} as is"
	if got := Interpolate(text, nil); got != text {
		t.Fatalf("nil 数据应原样返回: %q", got)
	}
}
