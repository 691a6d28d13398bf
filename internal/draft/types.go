package draft

// Draft 是简历文档的规范结构。持久化 blob 与 API 响应都使用这一形状；
// 历史快照里的旧字段形状由 Normalize 在读路径上统一迁移到这里。
type Draft struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`

	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`

	TechnicalSkills  []string `json:"technicalSkills"`
	SoftSkills       []string `json:"softSkills"`
	ToolsTech        []string `json:"toolsTechnologies"`

	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

// EducationEntry 表示一条教育经历。
type EducationEntry struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

// ExperienceEntry 表示一条工作经历。
// Bullet 是量化成果描述；旧快照（无 bullet 的变体）迁移后该字段为空串。
type ExperienceEntry struct {
	ID       string `json:"id"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Duration string `json:"duration"`
	Bullet   string `json:"bullet"`
}

// ProjectEntry 表示一条项目经历。
// 简化变体（仅 id/title/description）迁移后其余字段为零值。
type ProjectEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	LiveURL     string   `json:"liveUrl"`
	GitHubURL   string   `json:"githubUrl"`
}
