package render

import (
	"encoding/json"
	"regexp"
)

// Choice 是持久化的模板/主题选择。Accent 只是样式提示，
// 核心逻辑从不依据它分支。
type Choice struct {
	Template string `json:"template"`
	Accent   string `json:"accent"`
}

// defaultAccent 与前端默认主题保持一致。
const defaultAccent = "#3388ff"

var accentPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// DefaultChoice 返回默认模板选择。
func DefaultChoice() Choice {
	return Choice{Template: TemplateClassic, Accent: defaultAccent}
}

// NormalizeChoice 从持久化 blob 恢复模板选择。
// 坏 JSON、未知模板、非法色值都回落到默认值，永不失败。
func NormalizeChoice(raw []byte) Choice {
	choice := DefaultChoice()
	if len(raw) == 0 {
		return choice
	}

	var stored Choice
	if err := json.Unmarshal(raw, &stored); err != nil {
		return choice
	}

	choice.Template = NormalizeTemplateID(stored.Template)
	if accentPattern.MatchString(stored.Accent) {
		choice.Accent = stored.Accent
	}
	return choice
}
