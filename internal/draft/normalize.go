package draft

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Normalize 把任意持久化 blob 解析成规范 Draft。
// 永不失败：坏 JSON、非对象、字段类型不符都退回到对应的默认值。
// 读路径同时完成两类旧形状的迁移：
//   - skills：三个分类数组（规范） vs 单个逗号分隔字符串（旧）
//   - experience/projects：带 bullet/techStack 的富形状（规范） vs 精简形状（旧）
func Normalize(raw []byte) Draft {
	var value any
	if len(raw) > 0 {
		// Unmarshal 失败时 value 保持 nil，走全默认路径。
		_ = json.Unmarshal(raw, &value)
	}
	return normalizeValue(value)
}

func normalizeValue(value any) Draft {
	obj, _ := value.(map[string]any)

	d := Draft{
		Name:     stringField(obj, "name"),
		Email:    stringField(obj, "email"),
		Phone:    stringField(obj, "phone"),
		Location: stringField(obj, "location"),
		Summary:  stringField(obj, "summary"),
		GitHub:   stringField(obj, "github"),
		LinkedIn: stringField(obj, "linkedin"),
	}

	d.Education = normalizeEducation(listField(obj, "education"))
	d.Experience = normalizeExperience(listField(obj, "experience"))
	d.Projects = normalizeProjects(listField(obj, "projects"))

	d.TechnicalSkills = stringList(obj, "technicalSkills")
	d.SoftSkills = stringList(obj, "softSkills")
	d.ToolsTech = stringList(obj, "toolsTechnologies")

	// 旧形状：skills 为单个逗号分隔字符串。仅当三个分类数组全空时回填，
	// 避免两份来源同时可见。
	if len(d.TechnicalSkills) == 0 && len(d.SoftSkills) == 0 && len(d.ToolsTech) == 0 {
		if legacy := strings.TrimSpace(stringField(obj, "skills")); legacy != "" {
			d.TechnicalSkills = splitSkills(legacy)
		}
	}
	if d.TechnicalSkills == nil {
		d.TechnicalSkills = []string{}
	}
	if d.SoftSkills == nil {
		d.SoftSkills = []string{}
	}
	if d.ToolsTech == nil {
		d.ToolsTech = []string{}
	}

	return d
}

// NewBlank 返回空草稿：标量全空串，每个列表一条空白条目。
func NewBlank() Draft {
	return normalizeValue(nil)
}

func normalizeEducation(items []map[string]any) []EducationEntry {
	out := make([]EducationEntry, 0, len(items))
	for _, item := range items {
		out = append(out, EducationEntry{
			ID:     entryID(item),
			School: stringField(item, "school"),
			Degree: stringField(item, "degree"),
			Year:   stringField(item, "year"),
		})
	}
	if len(out) == 0 {
		out = append(out, EducationEntry{ID: uuid.NewString()})
	}
	return out
}

func normalizeExperience(items []map[string]any) []ExperienceEntry {
	out := make([]ExperienceEntry, 0, len(items))
	for _, item := range items {
		out = append(out, ExperienceEntry{
			ID:       entryID(item),
			Company:  stringField(item, "company"),
			Role:     stringField(item, "role"),
			Duration: stringField(item, "duration"),
			Bullet:   stringField(item, "bullet"),
		})
	}
	if len(out) == 0 {
		out = append(out, ExperienceEntry{ID: uuid.NewString()})
	}
	return out
}

func normalizeProjects(items []map[string]any) []ProjectEntry {
	out := make([]ProjectEntry, 0, len(items))
	for _, item := range items {
		out = append(out, ProjectEntry{
			ID:          entryID(item),
			Title:       stringField(item, "title"),
			Description: stringField(item, "description"),
			TechStack:   normalizeStringSlice(item["techStack"]),
			LiveURL:     stringField(item, "liveUrl"),
			GitHubURL:   stringField(item, "githubUrl"),
		})
	}
	if len(out) == 0 {
		out = append(out, ProjectEntry{ID: uuid.NewString(), TechStack: []string{}})
	}
	return out
}

// entryID 取出条目既有的 id，缺失或非字符串时在归一化现场生成新的。
func entryID(item map[string]any) string {
	if id := strings.TrimSpace(stringField(item, "id")); id != "" {
		return id
	}
	return uuid.NewString()
}

// stringField 对标量做防御性取值：非字符串一律视为空串。
func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

// listField 只接受数组形状，且只保留对象型元素。
func listField(obj map[string]any, key string) []map[string]any {
	if obj == nil {
		return nil
	}
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, element := range raw {
		if item, ok := element.(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items
}

func stringList(obj map[string]any, key string) []string {
	if obj == nil {
		return []string{}
	}
	return normalizeStringSlice(obj[key])
}

func normalizeStringSlice(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, element := range raw {
		s, ok := element.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func splitSkills(legacy string) []string {
	parts := strings.Split(legacy, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
