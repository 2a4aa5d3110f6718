package deck

// 该文件定义演示文稿的结构语法：章节划分、单例/禁连续约束与
// 每种意图的布局参数。所有表在进程启动时构建一次，之后只读，
// 因此可以被并发的 Builder/Validator 直接共享，无需加锁。

// Section 标识幻灯片所属的章节。
type Section string

const (
	SectionOpening        Section = "opening"
	SectionFraming        Section = "framing"
	SectionCoreContent    Section = "core_content"
	SectionAnalysis       Section = "analysis"
	SectionForwardLooking Section = "forward_looking"
	SectionClosing        Section = "closing"
)

// SectionDef 描述一个章节：是否必选、允许的意图集合与张数范围。
// 章节全序排列，且允许集两两不相交（每个意图恰好属于一个章节）。
type SectionDef struct {
	Key       Section  `json:"key"`
	Title     string   `json:"title"`
	Required  bool     `json:"required"`
	Allowed   []Intent `json:"allowed"`
	MinSlides int      `json:"min_slides"`
	MaxSlides int      `json:"max_slides"`
	Order     int      `json:"order"`
}

// ImageRole 描述该页配图的语义角色，仅作为给渲染器的提示。
type ImageRole string

const (
	ImageHero         ImageRole = "hero"
	ImageIllustrative ImageRole = "illustrative"
	ImageDecorative   ImageRole = "decorative"
	ImageIcon         ImageRole = "icon"
	ImageDataViz      ImageRole = "data_visualization"
	ImageNone         ImageRole = "none"
)

// FontRange 表示字号的闭区间，单位 pt。
type FontRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// LayoutConfig 是每种意图的布局参数。字号由 FontRange 约束，
// 正文受最大条数与每条最大词数限制；超出部分由 Builder 裁剪。
type LayoutConfig struct {
	LayoutType        string    `json:"layout_type"`
	TitleFont         FontRange `json:"title_font"`
	BodyFont          FontRange `json:"body_font"`
	MaxBullets        int       `json:"max_bullets"`
	MaxWordsPerBullet int       `json:"max_words_per_bullet"`
	ImageRole         ImageRole `json:"image_role"`
	ImagePosition     string    `json:"image_position,omitempty"` // left/right/background，空表示无固定位置
	Emphasis          string    `json:"emphasis"`                 // title/content/visual
}

// Structure 汇总全部只读语法表。
type Structure struct {
	sections      []SectionDef
	sectionOf     map[Intent]Section
	layouts       map[Intent]LayoutConfig
	singletons    map[Intent]bool
	noConsecutive map[Intent]bool
	transitions   map[Intent][]Intent
}

var defaultStructure = newDefaultStructure()

// DefaultStructure 返回进程级共享的结构表。
func DefaultStructure() *Structure { return defaultStructure }

// Sections 按章节顺序返回全部章节定义。返回值为内部切片，调用方不得修改。
func (s *Structure) Sections() []SectionDef { return s.sections }

// SectionOf 返回意图所属章节；未登记的意图归入 core_content。
func (s *Structure) SectionOf(in Intent) Section {
	if sec, ok := s.sectionOf[in]; ok {
		return sec
	}
	return SectionCoreContent
}

// ConfigFor 返回意图的布局参数；未登记的意图使用 concept 的参数。
func (s *Structure) ConfigFor(in Intent) LayoutConfig {
	if cfg, ok := s.layouts[in]; ok {
		return cfg
	}
	return s.layouts[IntentConcept]
}

// IsSingleton 判断意图在整副文稿中是否至多出现一次。
func (s *Structure) IsSingleton(in Intent) bool { return s.singletons[in] }

// NoConsecutive 判断意图是否禁止连续出现在相邻两页。
func (s *Structure) NoConsecutive(in Intent) bool { return s.noConsecutive[in] }

// RecommendedNext 返回意图的推荐后继列表，供外部大纲生成方参考；
// 校验器不使用该表。未登记的意图返回 nil。
func (s *Structure) RecommendedNext(in Intent) []Intent { return s.transitions[in] }

func newDefaultStructure() *Structure {
	s := &Structure{
		sections: []SectionDef{
			{Key: SectionOpening, Title: "Opening", Required: true, Allowed: []Intent{IntentCover}, MinSlides: 1, MaxSlides: 1, Order: 0},
			// framing 不设必选：只有 concept 一页的最小输入在补齐封面
			// 与致谢页后就应当是合法文稿。
			{Key: SectionFraming, Title: "Framing", Required: false, Allowed: []Intent{IntentAgenda, IntentVision, IntentContext}, MinSlides: 1, MaxSlides: 2, Order: 1},
			{Key: SectionCoreContent, Title: "Core Content", Required: true, Allowed: []Intent{IntentConcept, IntentFramework, IntentComparison, IntentCaseStudy, IntentDataInsight, IntentKeyPoints}, MinSlides: 2, MaxSlides: 8, Order: 2},
			{Key: SectionAnalysis, Title: "Analysis", Required: false, Allowed: []Intent{IntentImplications, IntentBenefits, IntentRisks}, MinSlides: 0, MaxSlides: 3, Order: 3},
			{Key: SectionForwardLooking, Title: "Forward Looking", Required: false, Allowed: []Intent{IntentFuture, IntentRecommendations}, MinSlides: 0, MaxSlides: 2, Order: 4},
			{Key: SectionClosing, Title: "Closing", Required: true, Allowed: []Intent{IntentSummary, IntentCallToAction, IntentClosing}, MinSlides: 1, MaxSlides: 2, Order: 5},
		},
		singletons: map[Intent]bool{
			IntentCover:        true,
			IntentAgenda:       true,
			IntentSummary:      true,
			IntentCallToAction: true,
			IntentClosing:      true,
		},
		noConsecutive: map[Intent]bool{
			IntentDataInsight: true, // 数据页之间需要缓冲
			IntentCaseStudy:   true, // 案例页应当穿插呈现
			IntentComparison:  true, // 对比页需要铺垫
		},
		transitions: map[Intent][]Intent{
			IntentCover:        {IntentAgenda, IntentVision},
			IntentAgenda:       {IntentVision, IntentContext, IntentConcept},
			IntentVision:       {IntentAgenda, IntentContext, IntentConcept},
			IntentConcept:      {IntentFramework, IntentKeyPoints, IntentComparison},
			IntentFramework:    {IntentCaseStudy, IntentDataInsight, IntentBenefits},
			IntentCaseStudy:    {IntentImplications, IntentDataInsight, IntentKeyPoints},
			IntentDataInsight:  {IntentImplications, IntentComparison, IntentRecommendations},
			IntentRisks:        {IntentFuture, IntentRecommendations, IntentSummary},
			IntentFuture:       {IntentRecommendations, IntentCallToAction, IntentSummary},
			IntentSummary:      {IntentCallToAction, IntentClosing},
			IntentCallToAction: {IntentClosing},
		},
		layouts: map[Intent]LayoutConfig{
			IntentCover: {
				LayoutType: "hero", TitleFont: FontRange{40, 56}, BodyFont: FontRange{18, 24},
				MaxBullets: 0, MaxWordsPerBullet: 0,
				ImageRole: ImageHero, ImagePosition: "background", Emphasis: "title",
			},
			IntentAgenda: {
				LayoutType: "agenda", TitleFont: FontRange{24, 32}, BodyFont: FontRange{16, 20},
				MaxBullets: 6, MaxWordsPerBullet: 6,
				ImageRole: ImageDecorative, Emphasis: "content",
			},
			IntentVision: {
				LayoutType: "hero", TitleFont: FontRange{36, 48}, BodyFont: FontRange{18, 24},
				MaxBullets: 2, MaxWordsPerBullet: 12,
				ImageRole: ImageHero, ImagePosition: "background", Emphasis: "title",
			},
			IntentConcept: {
				LayoutType: "standard", TitleFont: FontRange{24, 32}, BodyFont: FontRange{16, 20},
				MaxBullets: 4, MaxWordsPerBullet: 12,
				ImageRole: ImageIllustrative, ImagePosition: "right", Emphasis: "content",
			},
			IntentFramework: {
				LayoutType: "process", TitleFont: FontRange{22, 28}, BodyFont: FontRange{14, 18},
				MaxBullets: 5, MaxWordsPerBullet: 10,
				ImageRole: ImageIcon, Emphasis: "content",
			},
			IntentComparison: {
				LayoutType: "comparison", TitleFont: FontRange{22, 28}, BodyFont: FontRange{14, 18},
				MaxBullets: 4, MaxWordsPerBullet: 8,
				ImageRole: ImageIcon, Emphasis: "content",
			},
			IntentCaseStudy: {
				LayoutType: "case_study", TitleFont: FontRange{24, 30}, BodyFont: FontRange{16, 20},
				MaxBullets: 4, MaxWordsPerBullet: 12,
				ImageRole: ImageIllustrative, ImagePosition: "left", Emphasis: "visual",
			},
			IntentDataInsight: {
				LayoutType: "metrics", TitleFont: FontRange{22, 28}, BodyFont: FontRange{14, 18},
				MaxBullets: 3, MaxWordsPerBullet: 8,
				ImageRole: ImageDataViz, Emphasis: "visual",
			},
			IntentKeyPoints: {
				LayoutType: "cards", TitleFont: FontRange{24, 30}, BodyFont: FontRange{14, 18},
				MaxBullets: 4, MaxWordsPerBullet: 10,
				ImageRole: ImageIcon, Emphasis: "content",
			},
			IntentContext: {
				LayoutType: "standard", TitleFont: FontRange{24, 30}, BodyFont: FontRange{16, 20},
				MaxBullets: 4, MaxWordsPerBullet: 12,
				ImageRole: ImageIllustrative, ImagePosition: "right", Emphasis: "content",
			},
			IntentImplications: {
				LayoutType: "standard", TitleFont: FontRange{24, 30}, BodyFont: FontRange{16, 20},
				MaxBullets: 4, MaxWordsPerBullet: 10,
				ImageRole: ImageDecorative, Emphasis: "content",
			},
			IntentBenefits: {
				LayoutType: "cards", TitleFont: FontRange{24, 30}, BodyFont: FontRange{14, 18},
				MaxBullets: 4, MaxWordsPerBullet: 10,
				ImageRole: ImageIcon, Emphasis: "content",
			},
			IntentRisks: {
				LayoutType: "standard", TitleFont: FontRange{24, 30}, BodyFont: FontRange{16, 20},
				MaxBullets: 4, MaxWordsPerBullet: 10,
				ImageRole: ImageIcon, Emphasis: "content",
			},
			IntentRecommendations: {
				LayoutType: "standard", TitleFont: FontRange{24, 30}, BodyFont: FontRange{16, 20},
				MaxBullets: 4, MaxWordsPerBullet: 10,
				ImageRole: ImageIcon, Emphasis: "content",
			},
			IntentFuture: {
				LayoutType: "hero", TitleFont: FontRange{32, 44}, BodyFont: FontRange{18, 22},
				MaxBullets: 3, MaxWordsPerBullet: 10,
				ImageRole: ImageHero, ImagePosition: "background", Emphasis: "title",
			},
			IntentSummary: {
				LayoutType: "standard", TitleFont: FontRange{24, 30}, BodyFont: FontRange{16, 20},
				MaxBullets: 5, MaxWordsPerBullet: 8,
				ImageRole: ImageDecorative, Emphasis: "content",
			},
			IntentCallToAction: {
				LayoutType: "hero", TitleFont: FontRange{32, 44}, BodyFont: FontRange{18, 24},
				MaxBullets: 3, MaxWordsPerBullet: 8,
				ImageRole: ImageHero, ImagePosition: "background", Emphasis: "title",
			},
			IntentClosing: {
				LayoutType: "closing", TitleFont: FontRange{36, 48}, BodyFont: FontRange{18, 24},
				MaxBullets: 0, MaxWordsPerBullet: 0,
				ImageRole: ImageDecorative, Emphasis: "title",
			},
		},
	}

	s.sectionOf = make(map[Intent]Section, len(AllIntents))
	for _, sec := range s.sections {
		for _, in := range sec.Allowed {
			s.sectionOf[in] = sec.Key
		}
	}
	return s
}
