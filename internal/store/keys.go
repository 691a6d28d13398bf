package store

import "fmt"

// 持久化键约定。前端早期版本直接往 localStorage 写这些键，
// 后端沿用同一命名以保证老快照可以被无损读回。
const (
	KeyDraft           = "stepresume_resume_draft"
	KeySubmissionLinks = "stepresume_submission_links"
	KeyTemplate        = "stepresume_template"
	KeyLastExport      = "stepresume_last_export"
)

// ArtifactKey 返回第 ordinal 个阶段的证据记录所在的键。
func ArtifactKey(ordinal int) string {
	return fmt.Sprintf("stepresume_%d_artifact", ordinal)
}
