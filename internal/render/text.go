package render

import (
	"strings"

	"stepResume/internal/draft"
)

// namePlaceholder 在姓名缺失时占位，保证导出文本顶部永远不退化为空行。
const namePlaceholder = "-"

// PlainText 把草稿渲染成纯文本导出。这是对外的逐字节契约：
// 同一草稿必须产生完全相同的输出。分节顺序固定，内容为空的
// 可选分节整节省略（不输出空标题）。
func PlainText(d draft.Draft) string {
	blocks := make([][]string, 0, 8)

	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = namePlaceholder
	}
	blocks = append(blocks, []string{"NAME", name})

	contact := []string{"CONTACT"}
	if line := joinFields(d.Email, d.Phone, d.Location); line != "" {
		contact = append(contact, line)
	}
	blocks = append(blocks, contact)

	if summary := strings.TrimSpace(d.Summary); summary != "" {
		blocks = append(blocks, []string{"SUMMARY", summary})
	}

	if lines := educationLines(d); len(lines) > 0 {
		blocks = append(blocks, append([]string{"EDUCATION"}, lines...))
	}
	if lines := experienceLines(d); len(lines) > 0 {
		blocks = append(blocks, append([]string{"EXPERIENCE"}, lines...))
	}
	if lines := projectLines(d); len(lines) > 0 {
		blocks = append(blocks, append([]string{"PROJECTS"}, lines...))
	}

	if skills := draft.FlattenedSkills(d); len(skills) > 0 {
		blocks = append(blocks, []string{"SKILLS", strings.Join(skills, ", ")})
	}

	if lines := linkLines(d); len(lines) > 0 {
		blocks = append(blocks, append([]string{"LINKS"}, lines...))
	}

	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, strings.Join(block, "\n"))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func educationLines(d draft.Draft) []string {
	entries := draft.NonEmptyEducation(d)
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, joinFields(entry.School, entry.Degree, entry.Year))
	}
	return lines
}

func experienceLines(d draft.Draft) []string {
	entries := draft.NonEmptyExperience(d)
	lines := make([]string, 0, len(entries)*2)
	for _, entry := range entries {
		lines = append(lines, joinFields(entry.Role, entry.Company, entry.Duration))
		if bullet := strings.TrimSpace(entry.Bullet); bullet != "" {
			lines = append(lines, "- "+bullet)
		}
	}
	return lines
}

func projectLines(d draft.Draft) []string {
	entries := draft.NonEmptyProjects(d)
	lines := make([]string, 0, len(entries)*3)
	for _, entry := range entries {
		if title := strings.TrimSpace(entry.Title); title != "" {
			lines = append(lines, title)
		}
		if description := strings.TrimSpace(entry.Description); description != "" {
			lines = append(lines, description)
		}
		if len(entry.TechStack) > 0 {
			lines = append(lines, "Tech: "+strings.Join(entry.TechStack, ", "))
		}
		if line := joinFields(entry.LiveURL, entry.GitHubURL); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func linkLines(d draft.Draft) []string {
	lines := make([]string, 0, 2)
	if linkedin := strings.TrimSpace(d.LinkedIn); linkedin != "" {
		lines = append(lines, "LinkedIn: "+linkedin)
	}
	if github := strings.TrimSpace(d.GitHub); github != "" {
		lines = append(lines, "GitHub: "+github)
	}
	return lines
}

// joinFields 用固定的 " | " 连接非空白字段，用于复合行。
func joinFields(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, " | ")
}
