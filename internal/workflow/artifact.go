package workflow

import (
	"encoding/json"
	"strings"
	"time"
)

// Outcome 是阶段证据里的结果标记。
type Outcome string

const (
	OutcomeUnset    Outcome = "unset"
	OutcomePositive Outcome = "positive"
	OutcomeNegative Outcome = "negative"
)

// ValidOutcome 判断取值是否在枚举内。
func ValidOutcome(o Outcome) bool {
	switch o {
	case OutcomeUnset, OutcomePositive, OutcomeNegative:
		return true
	}
	return false
}

// Artifact 是某个阶段的证据记录。CommittedAt 为 nil 表示该阶段
// 尚未提交——无论其它字段填了什么，都按未完成处理。
type Artifact struct {
	Notes          string     `json:"notes"`
	Outcome        Outcome    `json:"outcome"`
	AttachmentName string     `json:"attachmentName"`
	CommittedAt    *time.Time `json:"committedAt,omitempty"`
}

// Committed 判断该阶段是否已提交。
func (a Artifact) Committed() bool {
	return a.CommittedAt != nil
}

// Empty 判断三个证据字段是否全为空/默认值。全空的提交会被拒绝。
func (a Artifact) Empty() bool {
	return strings.TrimSpace(a.Notes) == "" &&
		(a.Outcome == OutcomeUnset || a.Outcome == "") &&
		strings.TrimSpace(a.AttachmentName) == ""
}

// normalizeArtifact 从持久化 blob 恢复证据记录。
// 坏 JSON、非法 outcome 都回落到零值记录（未提交），永不失败。
func normalizeArtifact(raw []byte) Artifact {
	artifact := Artifact{Outcome: OutcomeUnset}
	if len(raw) == 0 {
		return artifact
	}

	var stored Artifact
	if err := json.Unmarshal(raw, &stored); err != nil {
		return artifact
	}
	if !ValidOutcome(stored.Outcome) {
		stored.Outcome = OutcomeUnset
	}
	return stored
}
