package deck

import (
	"strings"
	"unicode/utf8"
)

// 该文件实现字号推导：根据内容形态（字符数、条数、平均词数）在
// 意图给定的字号区间内做闭式插值。不测量真实宽度，精确适配由
// typeset 包负责。

// TitleSize 计算标题字号。30 字符以内用区间上限，50 及以上用下限，
// 之间做线性插值。
func TitleSize(title string, cfg LayoutConfig) int {
	min, max := cfg.TitleFont.Min, cfg.TitleFont.Max
	n := utf8.RuneCountInString(title)
	switch {
	case n < 30:
		return max
	case n < 50:
		ratio := float64(n-30) / 20
		return int(float64(max) - ratio*float64(max-min))
	default:
		return min
	}
}

// BodySize 计算正文字号。条数因子（≤2 条 1.0，3~4 条 0.7，≥5 条 0.4）
// 与平均词数因子（≤6 词 1.0，≤10 词 0.8，更多 0.6）取平均后，
// 在区间内线性插值。没有要点时直接用上限。
func BodySize(points []BodyPoint, cfg LayoutConfig) int {
	min, max := cfg.BodyFont.Min, cfg.BodyFont.Max
	if len(points) == 0 {
		return max
	}

	total := 0
	for _, p := range points {
		total += len(strings.Fields(p.Text))
	}
	avgWords := float64(total) / float64(len(points))

	var itemFactor float64
	switch {
	case len(points) <= 2:
		itemFactor = 1.0
	case len(points) <= 4:
		itemFactor = 0.7
	default:
		itemFactor = 0.4
	}

	var wordFactor float64
	switch {
	case avgWords <= 6:
		wordFactor = 1.0
	case avgWords <= 10:
		wordFactor = 0.8
	default:
		wordFactor = 0.6
	}

	combined := (itemFactor + wordFactor) / 2
	return int(float64(min) + combined*float64(max-min))
}

// DensityOf 按条数占意图允许上限的比例分类：≤50% 稀疏，≤80% 均衡，
// 其余稠密。
func DensityOf(points []BodyPoint, cfg LayoutConfig) Density {
	if len(points) == 0 {
		return DensitySparse
	}
	n := float64(len(points))
	allowed := float64(cfg.MaxBullets)
	switch {
	case n <= allowed*0.5:
		return DensitySparse
	case n <= allowed*0.8:
		return DensityBalanced
	default:
		return DensityDense
	}
}

// ShouldSplit 判断内容是否多到应该拆页：条数超出 max_bullets+2，
// 或总词数超出 1.5×max_bullets×max_words_per_bullet。本核心只给
// 建议，拆页本身由外部的版式选择器完成。
func ShouldSplit(points []BodyPoint, cfg LayoutConfig) bool {
	if len(points) == 0 {
		return false
	}
	if len(points) > cfg.MaxBullets+2 {
		return true
	}
	total := 0
	for _, p := range points {
		total += len(strings.Fields(p.Text))
	}
	return float64(total) > float64(cfg.MaxBullets)*float64(cfg.MaxWordsPerBullet)*1.5
}

// SpeakingTime 估算讲述这一页所需的秒数。按约 150 词/分钟计，
// 再翻倍留出展开讲解的余量，下限 30 秒。
func SpeakingTime(title string, points []BodyPoint) int {
	words := len(strings.Fields(title))
	for _, p := range points {
		words += len(strings.Fields(p.Text))
	}
	t := int(float64(words) / 2.5 * 2)
	if t < 30 {
		return 30
	}
	return t
}
