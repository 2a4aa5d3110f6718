package deck

import "strings"

// 该文件定义幻灯片意图(Intent)这一核心枚举。结构校验、布局参数与
// 字号计算都以 Intent 为键。

// Intent 表示一张幻灯片的叙事职责（封面、议程、对比、收尾……）。
type Intent string

const (
	IntentCover           Intent = "cover"
	IntentAgenda          Intent = "agenda"
	IntentVision          Intent = "vision"
	IntentContext         Intent = "context"
	IntentConcept         Intent = "concept"
	IntentFramework       Intent = "framework"
	IntentComparison      Intent = "comparison"
	IntentCaseStudy       Intent = "case_study"
	IntentDataInsight     Intent = "data_insight"
	IntentKeyPoints       Intent = "key_points"
	IntentImplications    Intent = "implications"
	IntentBenefits        Intent = "benefits"
	IntentRisks           Intent = "risks"
	IntentFuture          Intent = "future"
	IntentRecommendations Intent = "recommendations"
	IntentSummary         Intent = "summary"
	IntentCallToAction    Intent = "call_to_action"
	IntentClosing         Intent = "closing"
)

// AllIntents 按惯用的叙事顺序列出全部意图。
var AllIntents = []Intent{
	IntentCover,
	IntentAgenda,
	IntentVision,
	IntentContext,
	IntentConcept,
	IntentFramework,
	IntentComparison,
	IntentCaseStudy,
	IntentDataInsight,
	IntentKeyPoints,
	IntentImplications,
	IntentBenefits,
	IntentRisks,
	IntentFuture,
	IntentRecommendations,
	IntentSummary,
	IntentCallToAction,
	IntentClosing,
}

// ParseIntent 将原始字符串解析为 Intent（大小写与首尾空白不敏感）。
// 未知字符串返回 false；缺失/未知时各自的回退策略由 Builder 决定，
// 保证"未知意图 → 默认值"只在入口处发生一次。
func ParseIntent(s string) (Intent, bool) {
	norm := Intent(strings.ToLower(strings.TrimSpace(s)))
	for _, in := range AllIntents {
		if in == norm {
			return in, true
		}
	}
	return "", false
}

// IsOpeningAlias 判断原始意图字符串是否为首屏写法。
// 上游生成方可能用 "title" 或 "hero" 表示封面，三者都算。
func IsOpeningAlias(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cover", "title", "hero":
		return true
	}
	return false
}

// IsClosingFamily 判断意图是否属于收尾家族。
// summary 与 call_to_action 是内容页，closing 才是致谢页；
// 三者一起用于"结尾附近必须有收尾页"的软校验。
func (i Intent) IsClosingFamily() bool {
	switch i {
	case IntentSummary, IntentCallToAction, IntentClosing:
		return true
	}
	return false
}

func (i Intent) String() string { return string(i) }
