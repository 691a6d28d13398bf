package render

import (
	"strings"

	"stepResume/internal/draft"
)

// 模板标识。模板只决定分节的摆放（主栏/侧栏），永远不影响包含哪些内容。
const (
	TemplateClassic = "classic"
	TemplateModern  = "modern"
	TemplateSplit   = "split"
)

// 分节摆放位置。
const (
	PlacementMain    = "main"
	PlacementSidebar = "sidebar"
)

// Section 是供展示层消费的结构化分节描述。
type Section struct {
	Kind      string   `json:"kind"`
	Title     string   `json:"title"`
	Placement string   `json:"placement"`
	Lines     []string `json:"lines"`
}

// NormalizeTemplateID 把未知/空模板标识归一到 classic。
func NormalizeTemplateID(id string) string {
	switch strings.TrimSpace(id) {
	case TemplateModern:
		return TemplateModern
	case TemplateSplit:
		return TemplateSplit
	default:
		return TemplateClassic
	}
}

// Sections 按与 PlainText 完全一致的包含规则产出结构化分节。
// templateID 仅决定 Placement：split 模板把联系方式、技能、链接放进侧栏。
func Sections(d draft.Draft, templateID string) []Section {
	templateID = NormalizeTemplateID(templateID)

	sidebar := func(kind string) string {
		if templateID == TemplateSplit {
			switch kind {
			case "contact", "skills", "links":
				return PlacementSidebar
			}
		}
		return PlacementMain
	}

	sections := make([]Section, 0, 8)

	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = namePlaceholder
	}
	sections = append(sections, Section{
		Kind:      "name",
		Title:     "Name",
		Placement: PlacementMain,
		Lines:     []string{name},
	})

	contactLines := []string{}
	if line := joinFields(d.Email, d.Phone, d.Location); line != "" {
		contactLines = append(contactLines, line)
	}
	sections = append(sections, Section{
		Kind:      "contact",
		Title:     "Contact",
		Placement: sidebar("contact"),
		Lines:     contactLines,
	})

	if summary := strings.TrimSpace(d.Summary); summary != "" {
		sections = append(sections, Section{
			Kind:      "summary",
			Title:     "Summary",
			Placement: PlacementMain,
			Lines:     []string{summary},
		})
	}

	if lines := educationLines(d); len(lines) > 0 {
		sections = append(sections, Section{
			Kind:      "education",
			Title:     "Education",
			Placement: PlacementMain,
			Lines:     lines,
		})
	}
	if lines := experienceLines(d); len(lines) > 0 {
		sections = append(sections, Section{
			Kind:      "experience",
			Title:     "Experience",
			Placement: PlacementMain,
			Lines:     lines,
		})
	}
	if lines := projectLines(d); len(lines) > 0 {
		sections = append(sections, Section{
			Kind:      "projects",
			Title:     "Projects",
			Placement: PlacementMain,
			Lines:     lines,
		})
	}

	if skills := draft.FlattenedSkills(d); len(skills) > 0 {
		sections = append(sections, Section{
			Kind:      "skills",
			Title:     "Skills",
			Placement: sidebar("skills"),
			Lines:     []string{strings.Join(skills, ", ")},
		})
	}

	if lines := linkLines(d); len(lines) > 0 {
		sections = append(sections, Section{
			Kind:      "links",
			Title:     "Links",
			Placement: sidebar("links"),
			Lines:     lines,
		})
	}

	return sections
}
