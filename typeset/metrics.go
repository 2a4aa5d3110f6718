package typeset

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// 该文件实现文本度量：按字符类的平均步进估算宽度，并模拟贪心换行。
// 度量不做真实栅格化，是输入的纯函数；盒子尺寸用英寸，字号用点。

// 单位换算与缺省行距。
const (
	PointsPerInch      = 72.0
	DefaultLineSpacing = 1.2
)

// Measurer 估算一段文本在给定字号下的渲染宽度（英寸）。
// 实现必须是确定性的纯函数，换行模拟会反复调用它。
type Measurer interface {
	Width(text string, fontSize float64) float64
}

// Metrics 是默认的启发式度量：逐字符累加平均步进。
// 零值即可使用，任意并发安全。
type Metrics struct{}

var _ Measurer = Metrics{}

// Width 返回估算宽度（英寸）。空文本为 0。
func (Metrics) Width(text string, fontSize float64) float64 {
	if text == "" {
		return 0
	}
	total := 0.0
	for _, r := range text {
		total += runeAdvance(r)
	}
	return total * fontSize / PointsPerInch
}

// runeAdvance 返回单个字符的平均步进（单位 em）。窄字母与标点偏窄，
// 大写偏宽，东亚全宽字符按一个 em 计。
func runeAdvance(r rune) float64 {
	if r < 0x80 {
		switch {
		case r == ' ':
			return 0.30
		case strings.ContainsRune("filjrt", r) || strings.ContainsRune(".,;:!'|`", r):
			return 0.40
		case r == 'm' || r == 'w':
			return 0.85
		case r == 'M' || r == 'W':
			return 0.95
		case unicode.IsUpper(r):
			return 0.70
		default:
			return 0.55
		}
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 1.0
	}
	return 0.55
}

// WrapLines 模拟贪心换行：逐词累加，放不下就另起一行；显式 '\n'
// 强制换行；比 maxWidth 还宽的单词独占一行，绝不从词中间拆开。
// maxWidth <= 0 视为不限宽。空文本返回 nil。
func WrapLines(m Measurer, text string, fontSize, maxWidth float64) []string {
	if text == "" {
		return nil
	}
	if maxWidth <= 0 {
		maxWidth = math.MaxFloat64
	}
	text = strings.ReplaceAll(text, "\r", "")

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			test := word
			if current != "" {
				test = current + " " + word
			}
			if m.Width(test, fontSize) <= maxWidth {
				current = test
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// LineCount 返回文本折行后的行数。空文本为 0。
func LineCount(m Measurer, text string, fontSize, maxWidth float64) int {
	return len(WrapLines(m, text, fontSize, maxWidth))
}

// MaxLineWidth 返回各行中最大的估算宽度（英寸）。
func MaxLineWidth(m Measurer, lines []string, fontSize float64) float64 {
	widest := 0.0
	for _, line := range lines {
		if w := m.Width(line, fontSize); w > widest {
			widest = w
		}
	}
	return widest
}

// EstimateHeight 返回折行后的总高度（英寸）：行数 × 字号 × 行距 / 72。
func EstimateHeight(m Measurer, text string, fontSize, maxWidth, lineSpacing float64) float64 {
	if text == "" {
		return 0
	}
	if lineSpacing <= 0 {
		lineSpacing = DefaultLineSpacing
	}
	n := LineCount(m, text, fontSize, maxWidth)
	return float64(n) * fontSize * lineSpacing / PointsPerInch
}
