package fontface

import (
	"fmt"
	"image/color"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/vellum/typeset"
)

// 该包用真实字体文件度量文本宽度，供需要精确排版的下游渲染器
// 替换内置的启发式度量。只做度量，不做任何绘制。

const widthCacheSize = 4096

// Resource 通过字节或文件路径二选一提供字体数据。
type Resource struct {
	Bytes []byte
	Path  string
}

// Options 注入字体资源。Fonts 的键是字体名；Family 指定用哪个字体
// 度量，省略时优先取名为 Body 的，否则任取其一。
type Options struct {
	Fonts  map[string]Resource
	Family string
}

// Measurer 实现 typeset.Measurer。适配的二分搜索会反复度量相近的
// 文本，结果放进 LRU 缓存；字体加载失败时退回启发式度量，度量
// 调用本身永不报错。
type Measurer struct {
	opts Options

	mu      sync.Mutex
	family  *canvas.FontFamily
	style   canvas.FontStyle
	loaded  bool
	loadErr error

	widths   *lru.Cache[widthKey, float64]
	fallback typeset.Metrics
}

type widthKey struct {
	size float64
	text string
}

var _ typeset.Measurer = (*Measurer)(nil)

// New 创建度量器。字体到首次度量时才加载。
func New(opts Options) (*Measurer, error) {
	widths, err := lru.New[widthKey, float64](widthCacheSize)
	if err != nil {
		return nil, err
	}
	return &Measurer{opts: opts, widths: widths}, nil
}

// Width 返回文本在给定字号下的宽度（英寸）。
func (m *Measurer) Width(text string, fontSize float64) float64 {
	if text == "" {
		return 0
	}
	key := widthKey{size: fontSize, text: text}
	if w, ok := m.widths.Get(key); ok {
		return w
	}

	var w float64
	if face, ok := m.face(fontSize); ok {
		// Face 以 pt 建立，TextWidth 返回同单位，再换算为英寸。
		w = face.TextWidth(text) / typeset.PointsPerInch
	} else {
		w = m.fallback.Width(text, fontSize)
	}
	m.widths.Add(key, w)
	return w
}

// Err 返回字体加载错误，尚未尝试加载时为 nil。调用方可据此
// 区分精确度量与启发式回退。
func (m *Measurer) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		return nil
	}
	return m.loadErr
}

func (m *Measurer) face(size float64) (*canvas.FontFace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		m.loaded = true
		m.family, m.style, m.loadErr = loadFamily(m.opts)
	}
	if m.loadErr != nil {
		return nil, false
	}
	return m.family.Face(size, color.Black, m.style, canvas.FontNormal), true
}

func loadFamily(opts Options) (*canvas.FontFamily, canvas.FontStyle, error) {
	name, res, err := pickResource(opts)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	data, err := resourceBytes(name, res)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	return family, canvas.FontRegular, nil
}

// pickResource 选出用于度量的字体：显式 Family 优先，其次 Body，
// 最后任取一个。
func pickResource(opts Options) (string, Resource, error) {
	if len(opts.Fonts) == 0 {
		return "", Resource{}, fmt.Errorf("未注入任何字体资源")
	}
	if opts.Family != "" {
		res, ok := opts.Fonts[opts.Family]
		if !ok {
			return "", Resource{}, fmt.Errorf("找不到字体资源 %s", opts.Family)
		}
		return opts.Family, res, nil
	}
	if res, ok := opts.Fonts["Body"]; ok {
		return "Body", res, nil
	}
	for name, res := range opts.Fonts {
		return name, res, nil
	}
	return "", Resource{}, fmt.Errorf("未注入任何字体资源")
}

func resourceBytes(name string, res Resource) ([]byte, error) {
	if len(res.Bytes) > 0 {
		return res.Bytes, nil
	}
	if res.Path != "" {
		data, err := os.ReadFile(res.Path)
		if err != nil {
			return nil, fmt.Errorf("读取字体 %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("字体 %s 既没有字节也没有路径", name)
}
