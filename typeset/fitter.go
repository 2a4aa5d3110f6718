package typeset

import (
	"strings"
	"unicode"
)

// 该文件实现矩形内的文字适配：先试首选字号，放不下就在区间内
// 二分找最大可用字号，连下限都放不下时截断加省略号。适配从不
// 失败，调用方通过 Strategy 识别降级输出。

const ellipsis = "…"

// Box 是目标矩形，单位英寸。
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Strategy 标记一次适配是如何达成的。
type Strategy string

const (
	StrategyEmpty     Strategy = "empty"
	StrategyPreferred Strategy = "preferred_fit"
	StrategySized     Strategy = "size_adjusted"
	StrategyTruncated Strategy = "truncated"
)

// FitResult 是一次适配的产物。FontSize 恒落在调用方给定的区间内；
// Text 仅在截断策略下与输入不同。
type FitResult struct {
	Text     string   `json:"text"`
	FontSize float64  `json:"font_size"`
	Lines    int      `json:"lines"`
	Strategy Strategy `json:"strategy"`
}

// Preset 是常用元素的字号区间与行距。
type Preset struct {
	MinSize     float64
	MaxSize     float64
	BaseSize    float64
	LineSpacing float64
}

// Presets 按元素类型给出的预设，键名与下游渲染器的元素类型一致。
var Presets = map[string]Preset{
	"hero_title":  {MinSize: 32, MaxSize: 56, BaseSize: 48, LineSpacing: 1.1},
	"slide_title": {MinSize: 22, MaxSize: 36, BaseSize: 28, LineSpacing: 1.15},
	"subtitle":    {MinSize: 16, MaxSize: 26, BaseSize: 20, LineSpacing: 1.2},
	"body":        {MinSize: 14, MaxSize: 22, BaseSize: 18, LineSpacing: 1.4},
	"caption":     {MinSize: 10, MaxSize: 14, BaseSize: 12, LineSpacing: 1.3},
}

// Fitter 在固定矩形里为文本选字号。零状态除注入的度量外，
// 可被并发调用。
type Fitter struct {
	m           Measurer
	lineSpacing float64
}

// NewFitter 创建适配器，使用缺省行距。m 为 nil 时用内置启发式度量。
func NewFitter(m Measurer) *Fitter { return NewFitterWithSpacing(m, DefaultLineSpacing) }

// NewFitterWithSpacing 创建指定行距的适配器。
func NewFitterWithSpacing(m Measurer, lineSpacing float64) *Fitter {
	if m == nil {
		m = Metrics{}
	}
	if lineSpacing <= 0 {
		lineSpacing = DefaultLineSpacing
	}
	return &Fitter{m: m, lineSpacing: lineSpacing}
}

// Fit 把 text 适配进 box。base 先收进 [min,max]；文本在 base 下
// 放得下就原样返回，否则在 [min,base] 内二分（半点步长）找最大
// 可用字号；连 min 都放不下时按 min 截断。
func (f *Fitter) Fit(text string, box Box, base, min, max float64) FitResult {
	if max < min {
		max = min
	}
	size := clamp(base, min, max)

	if text == "" {
		return FitResult{Text: "", FontSize: size, Lines: 0, Strategy: StrategyEmpty}
	}

	if f.fits(text, box, size) {
		return FitResult{
			Text:     text,
			FontSize: size,
			Lines:    LineCount(f.m, text, size, box.Width),
			Strategy: StrategyPreferred,
		}
	}

	if f.fits(text, box, min) {
		best := f.searchSize(text, box, min, size)
		return FitResult{
			Text:     text,
			FontSize: best,
			Lines:    LineCount(f.m, text, best, box.Width),
			Strategy: StrategySized,
		}
	}

	truncated := f.truncate(text, box, min)
	return FitResult{
		Text:     truncated,
		FontSize: min,
		Lines:    LineCount(f.m, truncated, min, box.Width),
		Strategy: StrategyTruncated,
	}
}

// FitPreset 按预设适配。未知键名退回 body 预设。
func (f *Fitter) FitPreset(text string, box Box, preset string) FitResult {
	p, ok := Presets[preset]
	if !ok {
		p = Presets["body"]
	}
	sub := &Fitter{m: f.m, lineSpacing: p.LineSpacing}
	return sub.Fit(text, box, p.BaseSize, p.MinSize, p.MaxSize)
}

// FitBullets 为一组要点选统一字号：条目越多，区间越小、行距越紧。
// 条目合并成多行文本整体适配，保证同页要点字号一致。
func (f *Fitter) FitBullets(items []string, box Box) FitResult {
	if len(items) == 0 {
		return FitResult{Text: "", FontSize: 18, Lines: 0, Strategy: StrategyEmpty}
	}
	var p Preset
	switch {
	case len(items) <= 3:
		p = Preset{MinSize: 16, MaxSize: 24, BaseSize: 20, LineSpacing: 1.6}
	case len(items) <= 5:
		p = Preset{MinSize: 14, MaxSize: 20, BaseSize: 18, LineSpacing: 1.5}
	default:
		p = Preset{MinSize: 12, MaxSize: 18, BaseSize: 16, LineSpacing: 1.4}
	}
	sub := &Fitter{m: f.m, lineSpacing: p.LineSpacing}
	return sub.Fit(strings.Join(items, "\n"), box, p.BaseSize, p.MinSize, p.MaxSize)
}

// Fit 用默认度量与行距做一次独立适配，供下游渲染器单独调用。
func Fit(text string, box Box, base, min, max float64) FitResult {
	return NewFitter(nil).Fit(text, box, base, min, max)
}

// fits 要求逐行宽度与总高度都不超界。超宽的不可拆单词会让所有
// 字号都判定为不适配，从而走截断路径。
func (f *Fitter) fits(text string, box Box, size float64) bool {
	lines := WrapLines(f.m, text, size, box.Width)
	if MaxLineWidth(f.m, lines, size) > box.Width {
		return false
	}
	height := float64(len(lines)) * size * f.lineSpacing / PointsPerInch
	return height <= box.Height
}

// searchSize 在 [low,high] 内二分找最大可用字号，步长半点。
// 调用前提：low 已确认可用。
func (f *Fitter) searchSize(text string, box Box, low, high float64) float64 {
	best := low
	for low <= high {
		mid := (low + high) / 2
		if f.fits(text, box, mid) {
			best = mid
			low = mid + 0.5
		} else {
			high = mid - 0.5
		}
	}
	return best
}

// truncate 二分找最长的、补上省略号后仍放得下的前缀。所有可用
// 前缀都不超过 3 个字符时，退回固定的前 20 字符加省略号，此时
// 允许残余溢出而不是无限收缩。
func (f *Fitter) truncate(text string, box Box, size float64) string {
	runes := []rune(text)
	left, right := 0, len(runes)
	for left < right {
		mid := (left + right + 1) / 2
		candidate := strings.TrimRightFunc(string(runes[:mid]), unicode.IsSpace) + ellipsis
		if f.fits(candidate, box, size) {
			left = mid
		} else {
			right = mid - 1
		}
	}
	if left > 3 {
		return strings.TrimRightFunc(string(runes[:left]), unicode.IsSpace) + ellipsis
	}
	if len(runes) > 20 {
		runes = runes[:20]
	}
	return string(runes) + ellipsis
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
