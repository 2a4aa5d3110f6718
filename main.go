package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/vellum/deck"
	"github.com/ByLCY/vellum/outline"
)

func main() {
	input := flag.String("in", "examples/demo.deck", "大纲文件路径（.deck 大纲或 .json 原始记录）")
	output := flag.String("out", "output/deck.json", "演示框架 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 ${path} 占位符的 JSON 数据")
	metaJSON := flag.String("meta", "", "覆盖大纲元数据的 JSON 对象")
	pretty := flag.Bool("pretty", true, "缩进输出 JSON")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	var metaOverride deck.Metadata
	if *metaJSON != "" {
		if err := json.Unmarshal([]byte(*metaJSON), &metaOverride); err != nil {
			log.Fatalf("解析 meta JSON 失败: %v", err)
		}
	}

	spec, err := run(*input, *output, metaOverride, inputData, *pretty)
	if err != nil {
		log.Fatalf("生成演示框架失败: %v", err)
	}

	// 校验结果是数据而不是错误：无效的框架照常写出，进程仍以 0 退出。
	for _, e := range spec.Errors {
		log.Printf("校验错误: %s", e)
	}
	for _, w := range spec.Warnings {
		log.Printf("校验警告: %s", w)
	}
	fmt.Printf("已生成演示框架：%s（%d 页）\n", *output, len(spec.Slides))
}

// run 串联解析、插值与构建，并把结果写成 JSON。
func run(inputPath, outputPath string, metaOverride deck.Metadata, data any, pretty bool) (*deck.DeckSpec, error) {
	records, meta, err := readRecords(inputPath)
	if err != nil {
		return nil, err
	}
	meta = mergeMeta(meta, metaOverride)

	spec := deck.NewBuilder(nil).Build(records, meta, data)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	if pretty {
		if err := deck.WriteDeckJSON(spec, outputPath); err != nil {
			return nil, fmt.Errorf("写入框架 JSON 失败: %w", err)
		}
		return spec, nil
	}
	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("序列化框架失败: %w", err)
	}
	if err := os.WriteFile(outputPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("写入框架 JSON 失败: %w", err)
	}
	return spec, nil
}

// recordsFile 是 .json 输入的外层形状。
type recordsFile struct {
	Metadata deck.Metadata   `json:"metadata"`
	Slides   []deck.RawSlide `json:"slides"`
}

// readRecords 按扩展名选择输入格式：.json 走原始记录，其余按大纲 DSL 解析。
func readRecords(inputPath string) ([]deck.RawSlide, deck.Metadata, error) {
	if strings.EqualFold(filepath.Ext(inputPath), ".json") {
		raw, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, deck.Metadata{}, fmt.Errorf("无法读取记录文件 %s: %w", inputPath, err)
		}
		var file recordsFile
		if err := json.Unmarshal(raw, &file); err != nil {
			return nil, deck.Metadata{}, fmt.Errorf("解析记录 JSON 失败: %w", err)
		}
		return file.Slides, file.Metadata, nil
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return nil, deck.Metadata{}, fmt.Errorf("无法打开大纲文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := outline.Parse(file)
	if err != nil {
		return nil, deck.Metadata{}, fmt.Errorf("解析大纲失败: %w", err)
	}
	records, meta := doc.Records()
	return records, meta, nil
}

// mergeMeta 用 -meta 里的非空字段覆盖大纲元数据。
func mergeMeta(base, o deck.Metadata) deck.Metadata {
	if o.Title != "" {
		base.Title = o.Title
	}
	if o.Subtitle != "" {
		base.Subtitle = o.Subtitle
	}
	if o.Author != "" {
		base.Author = o.Author
	}
	if o.CoreMessage != "" {
		base.CoreMessage = o.CoreMessage
	}
	if o.PresentationType != "" {
		base.PresentationType = o.PresentationType
	}
	if o.TargetAudience != "" {
		base.TargetAudience = o.TargetAudience
	}
	if o.ThemeName != "" {
		base.ThemeName = o.ThemeName
	}
	if o.PrimaryColor != "" {
		base.PrimaryColor = o.PrimaryColor
	}
	if o.SecondaryColor != "" {
		base.SecondaryColor = o.SecondaryColor
	}
	if o.AccentColor != "" {
		base.AccentColor = o.AccentColor
	}
	if len(o.Keywords) > 0 {
		base.Keywords = o.Keywords
	}
	return base
}
