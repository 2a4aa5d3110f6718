package typeset

import (
	"math"
	"testing"
)

func eq(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// TestWidthAdvanceClasses 逐字符类核对步进：窄字母、宽字母、大写、
// 空格与东亚全宽字符。72pt 下英寸值等于 em 值，便于手算。
func TestWidthAdvanceClasses(t *testing.T) {
	m := Metrics{}
	cases := []struct {
		text string
		want float64
	}{
		{"", 0},
		{" ", 0.30},
		{"i", 0.40},
		{"t", 0.40},
		{".", 0.40},
		{"a", 0.55},
		{"m", 0.85},
		{"w", 0.85},
		{"M", 0.95},
		{"W", 0.95},
		{"A", 0.70},
		{"中", 1.0},
		{"排版", 2.0},
		{"ab", 1.10},
		{"Hello", 2.60}, // H0.70 e0.55 l0.40 l0.40 o0.55
	}
	for _, tc := range cases {
		if got := m.Width(tc.text, 72); !eq(got, tc.want) {
			t.Fatalf("Width(%q)=%g, 期望 %g", tc.text, got, tc.want)
		}
	}
}

// TestWidthScalesLinearly 宽度与字号成正比。
func TestWidthScalesLinearly(t *testing.T) {
	m := Metrics{}
	full := m.Width("Deck Composition", 72)
	half := m.Width("Deck Composition", 36)
	if !eq(full/2, half) {
		t.Fatalf("宽度未按字号线性缩放: %g vs %g", full, half)
	}
	if got := m.Width("abc", 12); !eq(got, m.Width("a", 12)+m.Width("b", 12)+m.Width("c", 12)) {
		t.Fatalf("宽度应逐字符可加: %g", got)
	}
}

// TestWrapLinesGreedy 贪心换行：能塞则塞，塞不下另起一行。
func TestWrapLinesGreedy(t *testing.T) {
	m := Metrics{}
	// 72pt 下 "aa" 宽 1.10，"aa aa" 宽约 2.50，限宽留出浮点余量。
	lines := WrapLines(m, "aa aa aa", 72, 1.15)
	if len(lines) != 3 {
		t.Fatalf("限宽 1.15 应折成 3 行, got %v", lines)
	}
	lines = WrapLines(m, "aa aa aa", 72, 2.55)
	if len(lines) != 2 || lines[0] != "aa aa" || lines[1] != "aa" {
		t.Fatalf("限宽 2.55 应折成 [aa aa, aa], got %v", lines)
	}
	// 不限宽时一段一行。
	lines = WrapLines(m, "aa aa aa", 72, 0)
	if len(lines) != 1 || lines[0] != "aa aa aa" {
		t.Fatalf("不限宽应单行, got %v", lines)
	}
}

// TestWrapLinesForcedBreaks 显式换行强制分行，空段保留为空行，\r 被剥除。
func TestWrapLinesForcedBreaks(t *testing.T) {
	m := Metrics{}
	lines := WrapLines(m, "foo\n\nbar", 12, 100)
	if len(lines) != 3 || lines[0] != "foo" || lines[1] != "" || lines[2] != "bar" {
		t.Fatalf("强制换行不符: %v", lines)
	}
	lines = WrapLines(m, "foo\r\nbar", 12, 100)
	if len(lines) != 2 || lines[0] != "foo" || lines[1] != "bar" {
		t.Fatalf("\\r 应被剥除: %v", lines)
	}
	if got := WrapLines(m, "", 12, 100); got != nil {
		t.Fatalf("空文本应返回 nil, got %v", got)
	}
}

// TestWrapLinesOverwideWord 超宽单词独占一行，绝不从中间拆开。
func TestWrapLinesOverwideWord(t *testing.T) {
	m := Metrics{}
	lines := WrapLines(m, "a Supercalifragilisticexpialidocious b", 72, 1.0)
	if len(lines) != 3 {
		t.Fatalf("应折成 3 行, got %v", lines)
	}
	if lines[1] != "Supercalifragilisticexpialidocious" {
		t.Fatalf("超宽单词应独占一行且保持完整: %q", lines[1])
	}
	if w := m.Width(lines[1], 72); w <= 1.0 {
		t.Fatalf("测试前提不成立：该词在 72pt 下应超宽, got %g", w)
	}
}

// TestEstimateHeight 高度 = 行数 × 字号 × 行距 / 72。
func TestEstimateHeight(t *testing.T) {
	m := Metrics{}
	if got := EstimateHeight(m, "", 24, 10, 1.5); got != 0 {
		t.Fatalf("空文本高度应为 0, got %g", got)
	}
	// 一行：24pt × 1.5 行距。
	if got := EstimateHeight(m, "foo bar", 24, 100, 1.5); !eq(got, 0.5) {
		t.Fatalf("单行高度应为 0.5in, got %g", got)
	}
	// 两行强制换行。
	if got := EstimateHeight(m, "foo\nbar", 24, 100, 1.5); !eq(got, 1.0) {
		t.Fatalf("双行高度应为 1.0in, got %g", got)
	}
	// 行距非法时退回默认 1.2。
	if got := EstimateHeight(m, "foo", 24, 100, 0); !eq(got, 24*1.2/72) {
		t.Fatalf("默认行距高度不符: %g", got)
	}
}

// TestMaxLineWidth 返回各行宽度的最大值。
func TestMaxLineWidth(t *testing.T) {
	m := Metrics{}
	if got := MaxLineWidth(m, []string{"aa", "aaa"}, 72); !eq(got, 1.65) {
		t.Fatalf("最宽行应为 1.65, got %g", got)
	}
	if got := MaxLineWidth(m, nil, 72); got != 0 {
		t.Fatalf("无行时应为 0, got %g", got)
	}
}

// TestLineCount 行数与 WrapLines 一致。
func TestLineCount(t *testing.T) {
	m := Metrics{}
	if got := LineCount(m, "", 12, 10); got != 0 {
		t.Fatalf("空文本行数应为 0, got %d", got)
	}
	if got := LineCount(m, "one two three", 72, 1.2); got != 3 {
		t.Fatalf("窄盒行数应为 3, got %d", got)
	}
}
