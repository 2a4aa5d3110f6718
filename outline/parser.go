package outline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/vellum/deck"
)

// The outline DSL is a compact text format for hand-written or
// machine-generated deck outlines:
//
//	deck "Go Service Patterns" v1 {
//	  meta {
//	    core-message: "Own your goroutines"
//	    keywords: ["concurrency", "channels"]
//	  }
//	  slide vision "Why concurrency discipline matters" {
//	    subtitle: "The cost of leaks"
//	    point "Leaked goroutines accumulate" priority high
//	    point "Backpressure beats buffering" level 1
//	  }
//	  slide comparison "Channels vs mutexes" {
//	    left "Channels" { item "ownership transfer" }
//	    right "Mutexes" { item "shared state" }
//	  }
//	}
//
// Parsing produces an AST only; lowering to raw slide records happens
// in (*Outline).Records so the builder stays the single place where
// content rules are applied.

var (
	outlineLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][{}(),:;]`},
	})

	outlineParser = participle.MustBuild[Outline](
		participle.Lexer(outlineLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// Outline is the root AST node for a deck outline file.
type Outline struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Title   StringLiteral  `parser:"Newline* 'deck' @String"`
	Version string         `parser:"@Ident?"`
	Blocks  []*TopBlock    `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// TopBlock is either the meta block or one slide.
type TopBlock struct {
	Meta  *MetaBlock  `parser:"  @@"`
	Slide *SlideBlock `parser:"| @@"`
}

// MetaBlock carries deck-level assignments (author, colors, keywords...).
type MetaBlock struct {
	Entries []*Assign `parser:"'meta' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// SlideBlock describes one slide: intent keyword, quoted claim, body items.
type SlideBlock struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Intent string         `parser:"'slide' @Ident"`
	Claim  StringLiteral  `parser:"@String?"`
	Items  []*SlideItem   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// SlideItem is one statement inside a slide block. Keyword-anchored
// forms come first so plain assignments never shadow them.
type SlideItem struct {
	Point  *PointCmd  `parser:"  @@"`
	Column *ColumnCmd `parser:"| @@"`
	Assign *Assign    `parser:"| @@"`
}

// PointCmd adds one body point, with optional level/priority attributes.
type PointCmd struct {
	Text  StringLiteral `parser:"'point' @String"`
	Attrs []*PointAttr  `parser:"@@*"`
}

// PointAttr is a trailing `level N` or `priority IDENT` attribute.
type PointAttr struct {
	Level    *int    `parser:"  'level' @Number"`
	Priority *string `parser:"| 'priority' @Ident"`
}

// ColumnCmd fills one side of a two-column payload (comparison slides).
type ColumnCmd struct {
	Side   string          `parser:"@('left' | 'right')"`
	Header StringLiteral   `parser:"@String?"`
	Items  []StringLiteral `parser:"'{' Newline* ( 'item' @String ( ';' | Newline )* )* '}'"`
}

// Assign uses colon syntax (key: value).
type Assign struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Value is a string, bare word, number, or string list.
type Value struct {
	Str    *StringLiteral  `parser:"  @String"`
	Number *string         `parser:"| @Number"`
	Word   *string         `parser:"| @Ident"`
	List   []StringLiteral `parser:"| '[' Newline* ( @String ( ',' | Newline )* )* ']'"`
}

// Text returns the scalar string form of the value; lists yield "".
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.Str != nil:
		return string(*v.Str)
	case v.Number != nil:
		return *v.Number
	case v.Word != nil:
		return *v.Word
	}
	return ""
}

// Dynamic returns the value as a free-form payload for SlideSpec extras.
func (v *Value) Dynamic() any {
	switch {
	case v == nil:
		return nil
	case v.Str != nil:
		return string(*v.Str)
	case v.Number != nil:
		if f, err := strconv.ParseFloat(*v.Number, 64); err == nil {
			return f
		}
		return *v.Number
	case v.Word != nil:
		return *v.Word
	case v.List != nil:
		out := make([]any, 0, len(v.List))
		for _, s := range v.List {
			out = append(out, string(s))
		}
		return out
	}
	return nil
}

func (v *Value) stringList() []string {
	if v == nil || v.List == nil {
		return nil
	}
	out := make([]string, 0, len(v.List))
	for _, s := range v.List {
		out = append(out, string(s))
	}
	return out
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses an outline from an io.Reader.
func Parse(r io.Reader) (*Outline, error) {
	return outlineParser.Parse("", r)
}

// ParseString parses an outline from a string.
func ParseString(input string) (*Outline, error) {
	return outlineParser.ParseString("", input)
}

// Records lowers the AST into raw slide records plus deck metadata.
// Intent strings pass through verbatim; resolving them (including the
// unknown-intent fallback) is the builder's job.
func (o *Outline) Records() ([]deck.RawSlide, deck.Metadata) {
	meta := deck.Metadata{Title: string(o.Title)}
	var records []deck.RawSlide
	for _, b := range o.Blocks {
		switch {
		case b.Meta != nil:
			applyMeta(&meta, b.Meta.Entries)
		case b.Slide != nil:
			records = append(records, lowerSlide(b.Slide))
		}
	}
	return records, meta
}

func applyMeta(meta *deck.Metadata, entries []*Assign) {
	for _, e := range entries {
		switch normalizeKey(e.Key) {
		case "title":
			meta.Title = e.Value.Text()
		case "subtitle":
			meta.Subtitle = e.Value.Text()
		case "author":
			meta.Author = e.Value.Text()
		case "core_message":
			meta.CoreMessage = e.Value.Text()
		case "presentation_type":
			meta.PresentationType = e.Value.Text()
		case "target_audience":
			meta.TargetAudience = e.Value.Text()
		case "theme", "theme_name":
			meta.ThemeName = e.Value.Text()
		case "primary_color":
			meta.PrimaryColor = e.Value.Text()
		case "secondary_color":
			meta.SecondaryColor = e.Value.Text()
		case "accent_color":
			meta.AccentColor = e.Value.Text()
		case "keywords":
			meta.Keywords = e.Value.stringList()
		}
	}
}

func lowerSlide(s *SlideBlock) deck.RawSlide {
	rec := deck.RawSlide{Intent: s.Intent, Claim: string(s.Claim)}
	for _, item := range s.Items {
		switch {
		case item.Point != nil:
			p := deck.RawPoint{Text: string(item.Point.Text)}
			for _, attr := range item.Point.Attrs {
				if attr.Level != nil {
					p.Level = *attr.Level
				}
				if attr.Priority != nil {
					p.Priority = *attr.Priority
				}
			}
			rec.BodyPoints = append(rec.BodyPoints, p)
		case item.Column != nil:
			if rec.Extra == nil {
				rec.Extra = map[string]any{}
			}
			if h := string(item.Column.Header); h != "" {
				rec.Extra[item.Column.Side+"_header"] = h
			}
			items := make([]any, 0, len(item.Column.Items))
			for _, it := range item.Column.Items {
				items = append(items, string(it))
			}
			rec.Extra[item.Column.Side+"_column"] = items
		case item.Assign != nil:
			applySlideAssign(&rec, item.Assign)
		}
	}
	return rec
}

func applySlideAssign(rec *deck.RawSlide, a *Assign) {
	switch normalizeKey(a.Key) {
	case "title":
		rec.Title = a.Value.Text()
	case "subtitle":
		rec.Subtitle = a.Value.Text()
	case "notes", "speaker_notes":
		rec.SpeakerNotes = a.Value.Text()
	case "transition", "transition_to_next":
		rec.TransitionHint = a.Value.Text()
	default:
		if rec.Extra == nil {
			rec.Extra = map[string]any{}
		}
		rec.Extra[normalizeKey(a.Key)] = a.Value.Dynamic()
	}
}

// normalizeKey folds dashed keys onto the snake_case names used in
// raw records ("core-message" and "core_message" are the same key).
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "-", "_")
}
