package ats

import (
	"fmt"
	"strings"

	"stepResume/internal/draft"
)

// Result 是草稿的就绪度评估，纯投影，不落盘。
type Result struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// 可调阈值。
const (
	// summaryMinWords 是概述达标的最小词数。
	summaryMinWords = 30
	// skillsMinCount 是扁平化技能数达标的最小数量。
	skillsMinCount = 5
	// topImprovementCount 是"优先改进"视图保留的条数。
	topImprovementCount = 3
)

// check 是一条加权布尔断言。suggestion 在断言失败时原样进入结果，
// 文案里直接写明分值，避免前端再拼接。
type check struct {
	weight     int
	suggestion string
	passed     func(d draft.Draft) bool
}

// checklist 是固定顺序的评分表，满分恰好 100。
// 排序即优先级：建议列表按这里的顺序输出，不按分值重排。
var checklist = []check{
	{
		weight:     10,
		suggestion: "Add your full name (+10)",
		passed: func(d draft.Draft) bool {
			return strings.TrimSpace(d.Name) != ""
		},
	},
	{
		weight:     10,
		suggestion: "Add an email address (+10)",
		passed: func(d draft.Draft) bool {
			return strings.TrimSpace(d.Email) != ""
		},
	},
	{
		weight:     15,
		suggestion: fmt.Sprintf("Write a summary of at least %d words (+15)", summaryMinWords),
		passed: func(d draft.Draft) bool {
			return len(strings.Fields(d.Summary)) >= summaryMinWords
		},
	},
	{
		weight:     15,
		suggestion: "Add a work experience entry with an impact bullet (+15)",
		passed: func(d draft.Draft) bool {
			for _, entry := range draft.NonEmptyExperience(d) {
				if strings.TrimSpace(entry.Bullet) != "" {
					return true
				}
			}
			return false
		},
	},
	{
		weight:     10,
		suggestion: "Add an education entry (+10)",
		passed: func(d draft.Draft) bool {
			return len(draft.NonEmptyEducation(d)) > 0
		},
	},
	{
		weight:     10,
		suggestion: fmt.Sprintf("List at least %d skills (+10)", skillsMinCount),
		passed: func(d draft.Draft) bool {
			return len(draft.FlattenedSkills(d)) >= skillsMinCount
		},
	},
	{
		weight:     10,
		suggestion: "Add a project (+10)",
		passed: func(d draft.Draft) bool {
			return len(draft.NonEmptyProjects(d)) > 0
		},
	},
	{
		weight:     5,
		suggestion: "Add a phone number (+5)",
		passed: func(d draft.Draft) bool {
			return strings.TrimSpace(d.Phone) != ""
		},
	},
	{
		weight:     10,
		suggestion: "Link your LinkedIn and GitHub profiles (+10)",
		passed: func(d draft.Draft) bool {
			return strings.TrimSpace(d.LinkedIn) != "" && strings.TrimSpace(d.GitHub) != ""
		},
	},
	{
		weight:     5,
		suggestion: "Start your summary with an action verb like \"Built\" or \"Led\" (+5)",
		passed: func(d draft.Draft) bool {
			summary := strings.TrimSpace(d.Summary)
			return summary != "" && draft.StartsWithActionVerb(summary)
		},
	},
}

// Score 对草稿执行固定评分表，返回 [0,100] 的分数与按表序排列的建议。
// 纯函数：同一草稿永远得到同一结果。
func Score(d draft.Draft) Result {
	score := 0
	suggestions := make([]string, 0, len(checklist))

	for _, item := range checklist {
		if item.passed(d) {
			score += item.weight
			continue
		}
		suggestions = append(suggestions, item.suggestion)
	}

	// 对外契约是 [0,100]，权重表变动不得破坏它。
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{Score: score, Suggestions: suggestions}
}

// TopImprovements 返回建议列表的前 3 条。保持评分表顺序：
// 表里靠前的条目约定上优先级更高，不按分值重新排序。
func TopImprovements(r Result) []string {
	if len(r.Suggestions) <= topImprovementCount {
		return r.Suggestions
	}
	return r.Suggestions[:topImprovementCount]
}
