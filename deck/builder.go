package deck

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ByLCY/vellum/bind"
)

// Builder 把上游生成的原始记录规整为带校验结果的 DeckSpec：
// 解析意图、丢弃重复单例、裁剪正文、推导字号与密度、补全缺失的
// 封面与致谢页，最后统一编号并跑校验。对畸形输入从不报错，
// 所有异常都落为返回值里的数据（错误/警告列表、默认值）。

// 构建期默认值。
const (
	defaultDeckTitle        = "Presentation"
	defaultTheme            = "corporate_blue"
	defaultPrimaryColor     = "#1e3a5f"
	defaultSecondaryColor   = "#2d5a87"
	defaultAccentColor      = "#e07b39"
	defaultPresentationType = "explanatory"
	defaultAudience         = "general"
	defaultPriority         = "normal"
)

// Builder 持有只读结构表，可被并发的 Build 调用共享；
// 单次构建的可变状态都在调用内部。
type Builder struct {
	structure *Structure
	validator *Validator
}

// NewBuilder 创建构建器。structure 传 nil 时使用默认结构表。
func NewBuilder(structure *Structure) *Builder {
	if structure == nil {
		structure = DefaultStructure()
	}
	return &Builder{structure: structure, validator: NewValidator(structure)}
}

// buildState 是单次 Build 的私有状态：已占用的页 id 与各意图计数。
type buildState struct {
	ids          map[string]bool
	intentCounts map[Intent]int
}

// Build 从原始记录构建完整的 DeckSpec。永不返回错误：
// 调用方通过返回值的 Valid 与 Errors 判断结果是否可用。
// data 非空时先对各文本字段做 ${path} 插值，再套用内容规则。
func (b *Builder) Build(records []RawSlide, meta Metadata, data any) *DeckSpec {
	st := &buildState{
		ids:          make(map[string]bool, len(records)+2),
		intentCounts: make(map[Intent]int, len(records)+2),
	}

	slides := make([]*SlideSpec, 0, len(records)+2)

	// 前两条记录里没有首屏写法时补一页封面，并占用 cover 单例名额。
	if !hasOpening(records) {
		slides = append(slides, b.newCoverSlide(meta, st))
	}

	for i, rec := range records {
		if data != nil {
			rec = interpolateRecord(rec, data)
		}
		if s := b.buildSlide(rec, i, st); s != nil {
			slides = append(slides, s)
		}
	}

	// 致谢页后者优先：保留最后一页 closing，丢弃更早的。
	slides = keepLastClosing(slides)

	if !hasClosing(slides) {
		slides = append(slides, b.newClosingSlide(len(slides), st))
	} else {
		// 出现在中间的 closing 挪到末尾，保证输出以致谢页收尾。
		slides = moveClosingLast(slides)
	}

	for i, s := range slides {
		s.Ordinal = i + 1
	}

	rep := b.validator.Validate(slides)

	title := meta.Title
	if title == "" {
		title = defaultDeckTitle
	}
	return &DeckSpec{
		DeckID:           uuid.NewString(),
		Title:            title,
		Subtitle:         meta.Subtitle,
		Author:           meta.Author,
		CreatedAt:        time.Now().Format(time.RFC3339),
		Theme:            themeFrom(meta),
		CoreMessage:      meta.CoreMessage,
		PresentationType: orDefault(meta.PresentationType, defaultPresentationType),
		TargetAudience:   orDefault(meta.TargetAudience, defaultAudience),
		Slides:           slides,
		Valid:            rep.Valid(),
		Errors:           rep.Errors,
		Warnings:         rep.Warnings,
	}
}

// buildSlide 把一条原始记录转成 SlideSpec。重复单例返回 nil 表示丢弃。
func (b *Builder) buildSlide(rec RawSlide, index int, st *buildState) *SlideSpec {
	// 意图回退只发生在这里：缺失按 concept，写了但不认识按 key_points。
	var intent Intent
	if strings.TrimSpace(rec.Intent) == "" {
		intent = IntentConcept
	} else if in, ok := ParseIntent(rec.Intent); ok {
		intent = in
	} else {
		intent = IntentKeyPoints
	}

	// 单例去重对 closing 例外：致谢页的去重策略是后者优先，
	// 由构建尾声的 keepLastClosing 统一处理；其余单例先到先得。
	if intent != IntentClosing && b.structure.IsSingleton(intent) && st.intentCounts[intent] > 0 {
		return nil
	}
	st.intentCounts[intent]++

	cfg := b.structure.ConfigFor(intent)

	title := rec.Title
	if title == "" {
		title = rec.Claim
	}
	if title == "" {
		title = fmt.Sprintf("Slide %d", index+1)
	}
	claim := rec.Claim
	if claim == "" {
		claim = title
	}

	points := clampPoints(rec.BodyPoints, cfg)

	return &SlideSpec{
		ID:             b.newSlideID(intent, st),
		Ordinal:        index + 1, // 末尾统一重编号
		Section:        b.structure.SectionOf(intent),
		Intent:         intent,
		Claim:          claim,
		Title:          clipRunes(title, 100),
		Subtitle:       clipRunes(rec.Subtitle, 150),
		BodyPoints:     points,
		SpeakerNotes:   rec.SpeakerNotes,
		LayoutType:     cfg.LayoutType,
		TitleFontSize:  TitleSize(title, cfg),
		BodyFontSize:   BodySize(points, cfg),
		Density:        DensityOf(points, cfg),
		ImageRole:      cfg.ImageRole,
		ImagePosition:  cfg.ImagePosition,
		TransitionHint: rec.TransitionHint,
		SpeakingTime:   SpeakingTime(title, points),
		Extra:          rec.Extra,
	}
}

// clampPoints 先裁条数（最多 max_bullets+2），再裁每条词数，
// 并补齐优先级默认值、限制嵌套层级。
func clampPoints(raw []RawPoint, cfg LayoutConfig) []BodyPoint {
	if len(raw) > cfg.MaxBullets+2 {
		raw = raw[:cfg.MaxBullets+2]
	}
	points := make([]BodyPoint, 0, len(raw))
	for _, rp := range raw {
		text := rp.Text
		if words := strings.Fields(text); len(words) > cfg.MaxWordsPerBullet {
			text = strings.Join(words[:cfg.MaxWordsPerBullet], " ")
		}
		level := rp.Level
		if level > 1 {
			level = 1
		}
		if level < 0 {
			level = 0
		}
		points = append(points, BodyPoint{
			Text:     text,
			Level:    level,
			Priority: orDefault(rp.Priority, defaultPriority),
		})
	}
	return points
}

// newSlideID 生成 slide_<intent>_<count> 形式的页 id，
// 撞号时追加随机 4 位十六进制后缀直到唯一。
func (b *Builder) newSlideID(intent Intent, st *buildState) string {
	id := fmt.Sprintf("slide_%s_%d", intent, st.intentCounts[intent])
	for st.ids[id] {
		id += "_" + uuid.NewString()[:4]
	}
	st.ids[id] = true
	return id
}

func (b *Builder) newCoverSlide(meta Metadata, st *buildState) *SlideSpec {
	cfg := b.structure.ConfigFor(IntentCover)
	st.intentCounts[IntentCover] = 1
	st.ids["slide_cover_1"] = true

	title := orDefault(meta.Title, defaultDeckTitle)
	return &SlideSpec{
		ID:             "slide_cover_1",
		Ordinal:        1,
		Section:        SectionOpening,
		Intent:         IntentCover,
		Claim:          title,
		Title:          title,
		Subtitle:       meta.Subtitle,
		BodyPoints:     []BodyPoint{},
		SpeakerNotes:   "Welcome and introduce the topic.",
		LayoutType:     cfg.LayoutType,
		TitleFontSize:  cfg.TitleFont.Max,
		BodyFontSize:   cfg.BodyFont.Max,
		Density:        DensitySparse,
		ImageRole:      cfg.ImageRole,
		ImagePosition:  cfg.ImagePosition,
		TransitionHint: "Begin with impact",
		SpeakingTime:   30,
	}
}

func (b *Builder) newClosingSlide(count int, st *buildState) *SlideSpec {
	cfg := b.structure.ConfigFor(IntentClosing)
	st.intentCounts[IntentClosing]++

	id := fmt.Sprintf("slide_closing_%d", count+1)
	for st.ids[id] {
		id += "_" + uuid.NewString()[:4]
	}
	st.ids[id] = true

	return &SlideSpec{
		ID:             id,
		Ordinal:        count + 1,
		Section:        SectionClosing,
		Intent:         IntentClosing,
		Claim:          "Thank You",
		Title:          "Thank You",
		Subtitle:       "Questions & Discussion",
		BodyPoints:     []BodyPoint{},
		SpeakerNotes:   "Thank the audience and invite questions.",
		LayoutType:     cfg.LayoutType,
		TitleFontSize:  cfg.TitleFont.Max,
		BodyFontSize:   cfg.BodyFont.Max,
		Density:        DensitySparse,
		ImageRole:      cfg.ImageRole,
		ImagePosition:  cfg.ImagePosition,
		TransitionHint: "End with appreciation",
		SpeakingTime:   30,
	}
}

// interpolateRecord 在内容规则生效前解析文本字段里的 ${path} 占位符。
// Extra 里的自由负载保持原样，由渲染端按需 Lookup。
func interpolateRecord(rec RawSlide, data any) RawSlide {
	rec.Claim = bind.Interpolate(rec.Claim, data)
	rec.Title = bind.Interpolate(rec.Title, data)
	rec.Subtitle = bind.Interpolate(rec.Subtitle, data)
	rec.SpeakerNotes = bind.Interpolate(rec.SpeakerNotes, data)
	rec.TransitionHint = bind.Interpolate(rec.TransitionHint, data)
	if len(rec.BodyPoints) > 0 {
		points := make([]RawPoint, len(rec.BodyPoints))
		copy(points, rec.BodyPoints)
		for i := range points {
			points[i].Text = bind.Interpolate(points[i].Text, data)
		}
		rec.BodyPoints = points
	}
	return rec
}

// hasOpening 只看前两条记录的原始意图写法。
func hasOpening(records []RawSlide) bool {
	limit := len(records)
	if limit > 2 {
		limit = 2
	}
	for _, rec := range records[:limit] {
		if IsOpeningAlias(rec.Intent) {
			return true
		}
	}
	return false
}

func hasClosing(slides []*SlideSpec) bool {
	for _, s := range slides {
		if s.Intent == IntentClosing {
			return true
		}
	}
	return false
}

// keepLastClosing 保留最后一页 closing，丢弃更早出现的。
func keepLastClosing(slides []*SlideSpec) []*SlideSpec {
	last := -1
	for i, s := range slides {
		if s.Intent == IntentClosing {
			last = i
		}
	}
	if last < 0 {
		return slides
	}
	out := slides[:0]
	for i, s := range slides {
		if s.Intent == IntentClosing && i != last {
			continue
		}
		out = append(out, s)
	}
	return out
}

// moveClosingLast 把唯一的 closing 页挪到末尾；已在末尾则原样返回。
func moveClosingLast(slides []*SlideSpec) []*SlideSpec {
	for i, s := range slides {
		if s.Intent != IntentClosing || i == len(slides)-1 {
			continue
		}
		out := append(slides[:i], slides[i+1:]...)
		return append(out, s)
	}
	return slides
}

func themeFrom(meta Metadata) Theme {
	return Theme{
		Name:           orDefault(meta.ThemeName, defaultTheme),
		PrimaryColor:   orDefault(meta.PrimaryColor, defaultPrimaryColor),
		SecondaryColor: orDefault(meta.SecondaryColor, defaultSecondaryColor),
		AccentColor:    orDefault(meta.AccentColor, defaultAccentColor),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// clipRunes 以字符而不是字节为单位截断，避免切坏多字节字符。
func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
