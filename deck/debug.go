package deck

import (
	"encoding/json"
	"os"
)

// WriteDeckJSON 将构建结果输出为缩进 JSON，交给下游渲染器或用于调试。
func WriteDeckJSON(spec *DeckSpec, path string) error {
	if spec == nil {
		return nil
	}
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
