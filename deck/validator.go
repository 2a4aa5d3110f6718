package deck

import (
	"fmt"
	"strings"
)

// 校验器对一段既成的幻灯片序列跑一组相互独立的谓词检查，分别产出
// 硬错误（语法违例）与软警告（风格问题）。它从不修改序列本身，
// 结构修复是 Builder 的职责。

// Report 汇总一次校验的结果。Valid 只取决于 Errors。
type Report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Valid 报告序列是否通过全部硬检查。
func (r Report) Valid() bool { return len(r.Errors) == 0 }

// Validator 持有只读的结构表。可安全地被多个 goroutine 共用。
type Validator struct {
	structure *Structure
}

// NewValidator 创建校验器。structure 传 nil 时使用默认结构表。
func NewValidator(structure *Structure) *Validator {
	if structure == nil {
		structure = DefaultStructure()
	}
	return &Validator{structure: structure}
}

// Validate 对序列执行全部检查。空序列只报告一条错误，不再做其余检查。
func (v *Validator) Validate(slides []*SlideSpec) Report {
	var rep Report
	if len(slides) == 0 {
		rep.Errors = append(rep.Errors, "Deck has no slides")
		return rep
	}
	v.checkSingletons(slides, &rep)
	v.checkRequiredSections(slides, &rep)
	v.checkConsecutive(slides, &rep)
	v.checkBoundaries(slides, &rep)
	v.checkDuplicateTitles(slides, &rep)
	return rep
}

// checkSingletons 统计单例意图的出现次数，超过一次记错误。
// 按 AllIntents 顺序遍历，保证报告顺序稳定。
func (v *Validator) checkSingletons(slides []*SlideSpec, rep *Report) {
	counts := make(map[Intent]int, len(slides))
	for _, s := range slides {
		counts[s.Intent]++
	}
	for _, in := range AllIntents {
		if !v.structure.IsSingleton(in) {
			continue
		}
		if n := counts[in]; n > 1 {
			rep.Errors = append(rep.Errors,
				fmt.Sprintf("Intent '%s' appears %d times but should appear at most once", in, n))
		}
	}
}

// checkRequiredSections 要求每个必选章节至少有一页其意图落在
// 该章节的允许集内。
func (v *Validator) checkRequiredSections(slides []*SlideSpec, rep *Report) {
	present := make(map[Intent]bool, len(slides))
	for _, s := range slides {
		present[s.Intent] = true
	}
	for _, sec := range v.structure.Sections() {
		if !sec.Required {
			continue
		}
		found := false
		for _, in := range sec.Allowed {
			if present[in] {
				found = true
				break
			}
		}
		if !found {
			rep.Errors = append(rep.Errors,
				fmt.Sprintf("Required section '%s' is missing or has no valid slides", sec.Key))
		}
	}
}

// checkConsecutive 对禁连续集合内的意图检查相邻重复，记警告。
func (v *Validator) checkConsecutive(slides []*SlideSpec, rep *Report) {
	for i := 0; i+1 < len(slides); i++ {
		cur := slides[i].Intent
		if v.structure.NoConsecutive(cur) && cur == slides[i+1].Intent {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("Intent '%s' appears consecutively at slides %d and %d. Consider adding variety.", cur, i+1, i+2))
		}
	}
}

// checkBoundaries 检查首页必须是封面（错误），以及最后两页里
// 至少有一页属于收尾家族（警告）。
func (v *Validator) checkBoundaries(slides []*SlideSpec, rep *Report) {
	if slides[0].Intent != IntentCover {
		rep.Errors = append(rep.Errors, "First slide must be a COVER slide")
	}

	lastTwo := slides
	if len(lastTwo) > 2 {
		lastTwo = lastTwo[len(lastTwo)-2:]
	}
	for _, s := range lastTwo {
		if s.Intent.IsClosingFamily() {
			return
		}
	}
	rep.Warnings = append(rep.Warnings, "No summary, call-to-action, or closing slide near the end")
}

// checkDuplicateTitles 对标题做大小写折叠与空白归一后找重复，
// 警告指向后出现的那一页。
func (v *Validator) checkDuplicateTitles(slides []*SlideSpec, rep *Report) {
	seen := make(map[string]bool, len(slides))
	for i, s := range slides {
		lower := strings.TrimSpace(strings.ToLower(s.Title))
		norm := strings.Join(strings.Fields(lower), " ")
		if seen[norm] {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("Slide %d has a title similar to a previous slide: '%s...'", i+1, clipRunes(lower, 50)))
		}
		seen[norm] = true
	}
}
