package deck

import (
	"strings"
	"testing"
)

// 测试统一使用一个中间档配置，便于手算插值结果。
var sizingCfg = LayoutConfig{
	TitleFont:         FontRange{Min: 24, Max: 40},
	BodyFont:          FontRange{Min: 14, Max: 20},
	MaxBullets:        5,
	MaxWordsPerBullet: 12,
}

func repeatWords(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func pointsOf(items, wordsEach int) []BodyPoint {
	points := make([]BodyPoint, 0, items)
	for i := 0; i < items; i++ {
		points = append(points, BodyPoint{Text: repeatWords(wordsEach)})
	}
	return points
}

// TestTitleSizeInterpolation 验证标题字号在 30/50 字符两个阈值间线性插值，
// 且按字符数而不是字节数计。
func TestTitleSizeInterpolation(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  int
	}{
		{"空标题用上限", "", 40},
		{"29 字符用上限", strings.Repeat("a", 29), 40},
		{"30 字符落在插值起点", strings.Repeat("a", 30), 40},
		{"35 字符", strings.Repeat("a", 35), 36},
		{"40 字符取中点", strings.Repeat("a", 40), 32},
		{"49 字符向下取整", strings.Repeat("a", 49), 24},
		{"50 字符用下限", strings.Repeat("a", 50), 24},
		{"超长标题用下限", strings.Repeat("a", 200), 24},
		{"多字节字符按字符数计", strings.Repeat("排", 29), 40},
	}
	for _, tc := range cases {
		if got := TitleSize(tc.title, sizingCfg); got != tc.want {
			t.Fatalf("%s: TitleSize=%d, 期望 %d", tc.name, got, tc.want)
		}
	}
}

// TestBodySizeFactors 覆盖条数因子与词数因子的组合插值。
func TestBodySizeFactors(t *testing.T) {
	cases := []struct {
		name   string
		points []BodyPoint
		want   int
	}{
		{"无要点用上限", nil, 20},
		{"两条短句", pointsOf(2, 3), 20},
		{"四条短句", pointsOf(4, 4), 19},
		{"三条中句", pointsOf(3, 8), 18},
		{"五条中句", pointsOf(5, 8), 17},
		{"五条长句", pointsOf(5, 12), 17},
	}
	for _, tc := range cases {
		if got := BodySize(tc.points, sizingCfg); got != tc.want {
			t.Fatalf("%s: BodySize=%d, 期望 %d", tc.name, got, tc.want)
		}
	}
}

// TestDensityThresholds 验证密度按条数占上限比例分档：≤50% 稀疏、≤80% 均衡。
func TestDensityThresholds(t *testing.T) {
	cases := []struct {
		items int
		want  Density
	}{
		{0, DensitySparse},
		{1, DensitySparse},
		{2, DensitySparse},
		{3, DensityBalanced},
		{4, DensityBalanced},
		{5, DensityDense},
		{7, DensityDense},
	}
	for _, tc := range cases {
		if got := DensityOf(pointsOf(tc.items, 2), sizingCfg); got != tc.want {
			t.Fatalf("%d 条要点: Density=%s, 期望 %s", tc.items, got, tc.want)
		}
	}
}

// TestShouldSplit 验证拆页建议的两个触发条件：条数超限与总词数超限。
func TestShouldSplit(t *testing.T) {
	if ShouldSplit(nil, sizingCfg) {
		t.Fatalf("空内容不应建议拆页")
	}
	// 7 条 = max_bullets+2，恰好不超限；每条 1 词远低于词数阈值。
	if ShouldSplit(pointsOf(7, 1), sizingCfg) {
		t.Fatalf("7 条短句不应建议拆页")
	}
	if !ShouldSplit(pointsOf(8, 1), sizingCfg) {
		t.Fatalf("8 条超过 max_bullets+2，应建议拆页")
	}
	// 5×20=100 词 > 1.5×5×12=90。
	if !ShouldSplit(pointsOf(5, 20), sizingCfg) {
		t.Fatalf("总词数超限时应建议拆页")
	}
	// 5×18=90 词恰好等于阈值，不拆。
	if ShouldSplit(pointsOf(5, 18), sizingCfg) {
		t.Fatalf("总词数等于阈值时不应建议拆页")
	}
}

// TestSpeakingTime 验证讲述时长估算及其 30 秒下限。
func TestSpeakingTime(t *testing.T) {
	if got := SpeakingTime("", nil); got != 30 {
		t.Fatalf("空页讲述时长应为下限 30 秒, got %d", got)
	}
	// 2+10=12 词 → int(12/2.5×2)=9，低于下限。
	if got := SpeakingTime("Hello world", pointsOf(2, 5)); got != 30 {
		t.Fatalf("短内容应取下限 30 秒, got %d", got)
	}
	// 38 词 → int(30.4)=30，恰在下限上。
	if got := SpeakingTime(repeatWords(38), nil); got != 30 {
		t.Fatalf("38 词应得 30 秒, got %d", got)
	}
	// 39 词 → int(31.2)=31。
	if got := SpeakingTime(repeatWords(39), nil); got != 31 {
		t.Fatalf("39 词应得 31 秒, got %d", got)
	}
	// 100 词 → 80 秒。
	if got := SpeakingTime("", pointsOf(5, 20)); got != 80 {
		t.Fatalf("100 词应得 80 秒, got %d", got)
	}
}
