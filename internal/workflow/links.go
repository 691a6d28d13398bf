package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stepResume/internal/store"
)

// SubmissionLinks 是最终提交的三个链接。与阶段证据不同，
// 它们逐字段编辑、逐字段原子落盘。
type SubmissionLinks struct {
	PrimaryBuildLink string `json:"primaryBuildLink"`
	SourceRepoLink   string `json:"sourceRepoLink"`
	DeployedLink     string `json:"deployedLink"`
}

// LinksPatch 表示一次部分更新：nil 字段保持原值。
type LinksPatch struct {
	PrimaryBuildLink *string `json:"primaryBuildLink"`
	SourceRepoLink   *string `json:"sourceRepoLink"`
	DeployedLink     *string `json:"deployedLink"`
}

// Links 读取提交链接；键缺失或数据损坏时返回零值。
func (e *Engine) Links(ctx context.Context) (SubmissionLinks, error) {
	raw, err := e.store.Get(ctx, store.KeySubmissionLinks)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SubmissionLinks{}, nil
		}
		return SubmissionLinks{}, fmt.Errorf("load submission links: %w", err)
	}

	var links SubmissionLinks
	if err := json.Unmarshal(raw, &links); err != nil {
		return SubmissionLinks{}, nil
	}
	return links, nil
}

// UpdateLinks 应用部分更新并落盘，返回更新后的完整记录。
func (e *Engine) UpdateLinks(ctx context.Context, patch LinksPatch) (SubmissionLinks, error) {
	links, err := e.Links(ctx)
	if err != nil {
		return SubmissionLinks{}, err
	}

	if patch.PrimaryBuildLink != nil {
		links.PrimaryBuildLink = *patch.PrimaryBuildLink
	}
	if patch.SourceRepoLink != nil {
		links.SourceRepoLink = *patch.SourceRepoLink
	}
	if patch.DeployedLink != nil {
		links.DeployedLink = *patch.DeployedLink
	}

	raw, err := json.Marshal(links)
	if err != nil {
		return SubmissionLinks{}, fmt.Errorf("marshal submission links: %w", err)
	}
	if err := e.store.Set(ctx, store.KeySubmissionLinks, raw); err != nil {
		return SubmissionLinks{}, fmt.Errorf("persist submission links: %w", err)
	}
	return links, nil
}
