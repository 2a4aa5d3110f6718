package deck

import "encoding/json"

// 该文件定义核心数据模型：原始记录(RawSlide)、成品页(SlideSpec)
// 与整副文稿(DeckSpec)。RawSlide 面向不可信输入，解码时尽量宽容；
// SlideSpec 只在构建期间被 Builder 修改，返回后视为只读。

// BodyPoint 是一条正文要点。Level 至多一层嵌套，Priority 默认 normal。
type BodyPoint struct {
	Text     string `json:"text"`
	Level    int    `json:"level"`
	Priority string `json:"priority"`
}

// Density 描述一页内容相对其意图允许量的充实程度。
type Density string

const (
	DensitySparse   Density = "sparse"
	DensityBalanced Density = "balanced"
	DensityDense    Density = "dense"
)

// SlideSpec 是单页的完整规格，交给渲染器后无需再做任何尺寸决策。
// Extra 是意图相关的自由字段（如对比页的左右栏），本核心不解释其内容。
type SlideSpec struct {
	ID             string         `json:"slide_id"`
	Ordinal        int            `json:"slide_number"`
	Section        Section        `json:"section"`
	Intent         Intent         `json:"intent"`
	Claim          string         `json:"claim,omitempty"`
	Title          string         `json:"title"`
	Subtitle       string         `json:"subtitle,omitempty"`
	BodyPoints     []BodyPoint    `json:"body_points"`
	SpeakerNotes   string         `json:"speaker_notes,omitempty"`
	LayoutType     string         `json:"layout_type"`
	TitleFontSize  int            `json:"title_font_size"`
	BodyFontSize   int            `json:"body_font_size"`
	Density        Density        `json:"density"`
	ImageRole      ImageRole      `json:"image_role"`
	ImagePosition  string         `json:"image_position,omitempty"`
	TransitionHint string         `json:"transition_hint,omitempty"`
	SpeakingTime   int            `json:"estimated_speaking_time"`
	Extra          map[string]any `json:"extra,omitempty"`
}

// Theme 记录主题标识与三个主色。对本核心而言全部是不透明字符串。
type Theme struct {
	Name           string `json:"name"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color"`
}

// Metadata 是构建时随内容一起传入的全局信息，全部可选，
// 缺省值由 Builder 填充。
type Metadata struct {
	Title            string   `json:"title,omitempty"`
	Subtitle         string   `json:"subtitle,omitempty"`
	Author           string   `json:"author,omitempty"`
	CoreMessage      string   `json:"core_message,omitempty"`
	PresentationType string   `json:"presentation_type,omitempty"` // explanatory/persuasive/analytical/pitch
	TargetAudience   string   `json:"target_audience,omitempty"`
	ThemeName        string   `json:"theme_name,omitempty"`
	PrimaryColor     string   `json:"primary_color,omitempty"`
	SecondaryColor   string   `json:"secondary_color,omitempty"`
	AccentColor      string   `json:"accent_color,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
}

// DeckSpec 是一次构建的完整输出。Valid 只看 Errors 是否为空，
// Warnings 不影响有效性。每次 Build 返回独立实例，互不共享。
type DeckSpec struct {
	DeckID           string       `json:"deck_id"`
	Title            string       `json:"title"`
	Subtitle         string       `json:"subtitle,omitempty"`
	Author           string       `json:"author,omitempty"`
	CreatedAt        string       `json:"created_at"`
	Theme            Theme        `json:"theme"`
	CoreMessage      string       `json:"core_message"`
	PresentationType string       `json:"presentation_type"`
	TargetAudience   string       `json:"target_audience"`
	Slides           []*SlideSpec `json:"slides"`
	Valid            bool         `json:"is_valid"`
	Errors           []string     `json:"errors"`
	Warnings         []string     `json:"warnings"`
}

// RawPoint 是输入里的一条要点，可以是裸字符串或对象两种写法。
type RawPoint struct {
	Text     string `json:"text"`
	Level    int    `json:"level,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// UnmarshalJSON 同时接受 "some text" 与 {"text": ..., "level": ..., "priority": ...}。
func (p *RawPoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Text = s
		p.Level = 0
		p.Priority = ""
		return nil
	}
	type plain RawPoint
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = RawPoint(obj)
	return nil
}

// RawSlide 是上游生成方给出的一页原始描述。除少数已知键外，
// 其余字段原样进入 Extra，供渲染器自行解释。
type RawSlide struct {
	Intent         string
	Claim          string
	Title          string
	Subtitle       string
	BodyPoints     []RawPoint
	SpeakerNotes   string
	TransitionHint string
	Extra          map[string]any
}

// UnmarshalJSON 拆出已知键，未识别的键全部收进 Extra。
// 已知键里的 null 视为缺省，不报错。
func (r *RawSlide) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	take := func(key string, dst any) error {
		raw, ok := fields[key]
		if !ok {
			return nil
		}
		delete(fields, key)
		return json.Unmarshal(raw, dst)
	}
	if err := take("intent", &r.Intent); err != nil {
		return err
	}
	if err := take("claim", &r.Claim); err != nil {
		return err
	}
	if err := take("title", &r.Title); err != nil {
		return err
	}
	if err := take("subtitle", &r.Subtitle); err != nil {
		return err
	}
	if err := take("body_points", &r.BodyPoints); err != nil {
		return err
	}
	if err := take("speaker_notes", &r.SpeakerNotes); err != nil {
		return err
	}
	// 部分生成方用单数键名
	var notesAlias string
	if err := take("speaker_note", &notesAlias); err != nil {
		return err
	}
	if r.SpeakerNotes == "" {
		r.SpeakerNotes = notesAlias
	}
	if err := take("transition_to_next", &r.TransitionHint); err != nil {
		return err
	}
	var hintAlias string
	if err := take("transition_hint", &hintAlias); err != nil {
		return err
	}
	if r.TransitionHint == "" {
		r.TransitionHint = hintAlias
	}
	if len(fields) > 0 {
		r.Extra = make(map[string]any, len(fields))
		for key, raw := range fields {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			r.Extra[key] = v
		}
	}
	return nil
}
