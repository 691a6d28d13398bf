package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stepResume/internal/store"
)

// SubmissionOrdinal 表示终态（提交页）。它不是阶段表的一员：
// 只有全部阶段提交后才可达。
const SubmissionOrdinal = 0

var (
	ErrUnknownStep    = errors.New("workflow: unknown step ordinal")
	ErrEmptyArtifact  = errors.New("workflow: artifact has no content")
	ErrInvalidOutcome = errors.New("workflow: invalid outcome value")
	ErrStepLocked     = errors.New("workflow: step is locked")
)

// Engine 在注入的 Store 之上实现阶段门控状态机与证据存取。
// 所有读取都对键缺失/坏数据容错；Store 本身的故障原样上抛。
type Engine struct {
	store store.Store
	now   func() time.Time
}

// NewEngine 构造状态机。
func NewEngine(s store.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// Artifact 读取指定阶段的证据记录；未提交/数据损坏时返回零值记录。
func (e *Engine) Artifact(ctx context.Context, ordinal int) (Artifact, error) {
	if _, ok := StepByOrdinal(ordinal); !ok {
		return Artifact{}, ErrUnknownStep
	}
	raw, err := e.store.Get(ctx, store.ArtifactKey(ordinal))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return normalizeArtifact(nil), nil
		}
		return Artifact{}, fmt.Errorf("load artifact %d: %w", ordinal, err)
	}
	return normalizeArtifact(raw), nil
}

// Artifacts 按阶段序返回全部证据记录，下标 i 对应序号 i+1。
func (e *Engine) Artifacts(ctx context.Context) ([]Artifact, error) {
	out := make([]Artifact, 0, StepCount)
	for ordinal := 1; ordinal <= StepCount; ordinal++ {
		artifact, err := e.Artifact(ctx, ordinal)
		if err != nil {
			return nil, err
		}
		out = append(out, artifact)
	}
	return out, nil
}

// FirstIncomplete 返回最小的未提交阶段序号；全部提交时返回
// SubmissionOrdinal（0）。
func (e *Engine) FirstIncomplete(ctx context.Context) (int, error) {
	artifacts, err := e.Artifacts(ctx)
	if err != nil {
		return 0, err
	}
	return firstIncomplete(artifacts), nil
}

func firstIncomplete(artifacts []Artifact) int {
	for i, artifact := range artifacts {
		if !artifact.Committed() {
			return i + 1
		}
	}
	return SubmissionOrdinal
}

// Unlocked 判断阶段 ordinal 是否可进入：它之前的所有阶段都已提交。
// 解锁集合因此永远是阶段序号的一个前缀。
func (e *Engine) Unlocked(ctx context.Context, ordinal int) (bool, error) {
	if _, ok := StepByOrdinal(ordinal); !ok {
		return false, ErrUnknownStep
	}
	frontier, err := e.FirstIncomplete(ctx)
	if err != nil {
		return false, err
	}
	return unlocked(ordinal, frontier), nil
}

func unlocked(ordinal, frontier int) bool {
	if frontier == SubmissionOrdinal {
		return true
	}
	return ordinal <= frontier
}

// ResolveActive 把请求的阶段归位到合法的活动阶段：
//   - 请求阶段已解锁（k ≤ f）：原样放行，包括回看已完成阶段；
//   - 请求越过前沿（k > f）：重定向到第一个未完成阶段 f；
//   - 请求终态但仍有未完成阶段：同样重定向到 f。
func (e *Engine) ResolveActive(ctx context.Context, requested int) (int, error) {
	if requested != SubmissionOrdinal {
		if _, ok := StepByOrdinal(requested); !ok {
			return 0, ErrUnknownStep
		}
	}
	frontier, err := e.FirstIncomplete(ctx)
	if err != nil {
		return 0, err
	}
	if frontier == SubmissionOrdinal {
		return requested, nil
	}
	if requested == SubmissionOrdinal || requested > frontier {
		return frontier, nil
	}
	return requested, nil
}

// Commit 提交阶段证据：三个字段至少一个非空/非默认，阶段必须已解锁。
// 提交整体覆盖旧记录并盖上当前时间戳；不会影响后续阶段的完成状态。
func (e *Engine) Commit(ctx context.Context, ordinal int, notes string, outcome Outcome, attachmentName string) (Artifact, error) {
	if _, ok := StepByOrdinal(ordinal); !ok {
		return Artifact{}, ErrUnknownStep
	}
	if outcome == "" {
		outcome = OutcomeUnset
	}
	if !ValidOutcome(outcome) {
		return Artifact{}, ErrInvalidOutcome
	}

	artifact := Artifact{
		Notes:          notes,
		Outcome:        outcome,
		AttachmentName: attachmentName,
	}
	if artifact.Empty() {
		return Artifact{}, ErrEmptyArtifact
	}

	isUnlocked, err := e.Unlocked(ctx, ordinal)
	if err != nil {
		return Artifact{}, err
	}
	if !isUnlocked {
		return Artifact{}, ErrStepLocked
	}

	committedAt := e.now().UTC()
	artifact.CommittedAt = &committedAt

	raw, err := json.Marshal(artifact)
	if err != nil {
		return Artifact{}, fmt.Errorf("marshal artifact %d: %w", ordinal, err)
	}
	if err := e.store.Set(ctx, store.ArtifactKey(ordinal), raw); err != nil {
		return Artifact{}, fmt.Errorf("persist artifact %d: %w", ordinal, err)
	}
	return artifact, nil
}
