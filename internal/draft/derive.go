package draft

import "strings"

// 判定"量化描述"的强动词词表。集中在这里调参，评分与导出都只读它。
var actionVerbs = []string{
	"built",
	"developed",
	"designed",
	"implemented",
	"led",
	"improved",
	"created",
	"optimized",
	"automated",
	"launched",
	"reduced",
	"increased",
	"delivered",
	"migrated",
}

// IsFilled 判断教育条目是否有任何非空白字段。
func (e EducationEntry) IsFilled() bool {
	return anyFilled(e.School, e.Degree, e.Year)
}

// IsFilled 判断工作经历条目是否有任何非空白字段。
func (e ExperienceEntry) IsFilled() bool {
	return anyFilled(e.Company, e.Role, e.Duration, e.Bullet)
}

// IsFilled 判断项目条目是否有内容：任一文本字段非空白，或技术栈非空。
func (p ProjectEntry) IsFilled() bool {
	return anyFilled(p.Title, p.Description, p.LiveURL, p.GitHubURL) || len(p.TechStack) > 0
}

// NonEmptyEducation 返回有内容的教育条目。空白条目只是不参与
// 评分/渲染/导出，底层列表不会被修改。
func NonEmptyEducation(d Draft) []EducationEntry {
	out := make([]EducationEntry, 0, len(d.Education))
	for _, entry := range d.Education {
		if entry.IsFilled() {
			out = append(out, entry)
		}
	}
	return out
}

// NonEmptyExperience 返回有内容的工作经历条目。
func NonEmptyExperience(d Draft) []ExperienceEntry {
	out := make([]ExperienceEntry, 0, len(d.Experience))
	for _, entry := range d.Experience {
		if entry.IsFilled() {
			out = append(out, entry)
		}
	}
	return out
}

// NonEmptyProjects 返回有内容的项目条目。
func NonEmptyProjects(d Draft) []ProjectEntry {
	out := make([]ProjectEntry, 0, len(d.Projects))
	for _, entry := range d.Projects {
		if entry.IsFilled() {
			out = append(out, entry)
		}
	}
	return out
}

// FlattenedSkills 按固定类别顺序（technical、soft、tools）拼接技能列表。
// 顺序与重复都保留，这一层不做去重。
func FlattenedSkills(d Draft) []string {
	out := make([]string, 0, len(d.TechnicalSkills)+len(d.SoftSkills)+len(d.ToolsTech))
	out = append(out, d.TechnicalSkills...)
	out = append(out, d.SoftSkills...)
	out = append(out, d.ToolsTech...)
	return out
}

// HasNumericImpact 判断文本是否带有量化信号：数字、百分号、
// 倍数习语 x、千位习语 k（大小写均可）。只用于提示，不做门控。
func HasNumericImpact(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			return true
		case r == '%':
			return true
		case r == 'x' || r == 'X':
			return true
		case r == 'k' || r == 'K':
			return true
		}
	}
	return false
}

// StartsWithActionVerb 判断文本是否以强动词开头（不区分大小写）。
// 空白文本返回 true：未填写的字段不应触发"动词开头"类提示。
func StartsWithActionVerb(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return true
	}
	for _, verb := range actionVerbs {
		if strings.HasPrefix(text, verb) {
			return true
		}
	}
	return false
}

func anyFilled(fields ...string) bool {
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			return true
		}
	}
	return false
}
