package draft

import "github.com/google/uuid"

// Sample 返回一份填写完整的示例草稿，供"加载示例"操作整体覆盖当前草稿。
func Sample() Draft {
	return Draft{
		Name:     "Ada Lovelace",
		Email:    "ada@example.io",
		Phone:    "+44 20 7946 0958",
		Location: "London, UK",
		Summary: "Built and shipped data-heavy web applications for six years, " +
			"most recently leading a three-person platform team. Improved API " +
			"latency by 40% through query tuning and caching, and automated the " +
			"release pipeline down from two days to twenty minutes. Comfortable " +
			"owning a feature from rough idea to production monitoring, and " +
			"happiest when deleting code.",
		Education: []EducationEntry{
			{
				ID:     uuid.NewString(),
				School: "University of London",
				Degree: "BSc Computer Science",
				Year:   "2018",
			},
		},
		Experience: []ExperienceEntry{
			{
				ID:       uuid.NewString(),
				Company:  "Analytical Engines Ltd",
				Role:     "Senior Software Engineer",
				Duration: "2021 - Present",
				Bullet:   "Improved p95 API latency by 40% and cut infra spend by 18k/year",
			},
			{
				ID:       uuid.NewString(),
				Company:  "Difference Works",
				Role:     "Software Engineer",
				Duration: "2018 - 2021",
				Bullet:   "Automated nightly reconciliation, replacing 6 hours of manual checks",
			},
		},
		Projects: []ProjectEntry{
			{
				ID:          uuid.NewString(),
				Title:       "notelang",
				Description: "A tiny language for musical notation with a live web playground",
				TechStack:   []string{"Go", "WebAssembly", "TypeScript"},
				LiveURL:     "https://notelang.example.io",
				GitHubURL:   "https://github.com/ada/notelang",
			},
		},
		TechnicalSkills: []string{"Go", "PostgreSQL", "TypeScript", "Redis"},
		SoftSkills:      []string{"Mentoring", "Technical writing"},
		ToolsTech:       []string{"Docker", "Grafana"},
		GitHub:          "https://github.com/ada",
		LinkedIn:        "https://linkedin.com/in/ada-lovelace",
	}
}
