package workflow

import (
	"context"
	"fmt"
	"strings"
)

// Summary 生成固定格式的提交摘要文本，交给外部剪贴板/导出能力。
// 每个阶段一行 "Stage <n> (<title>): Complete|Pending"，随后是
// 三行带标签的链接，空链接显示 N/A。
func (e *Engine) Summary(ctx context.Context) (string, error) {
	artifacts, err := e.Artifacts(ctx)
	if err != nil {
		return "", err
	}
	links, err := e.Links(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, step := range Steps() {
		status := "Pending"
		if artifacts[i].Committed() {
			status = "Complete"
		}
		fmt.Fprintf(&b, "Stage %d (%s): %s\n", step.Ordinal, step.Title, status)
	}

	fmt.Fprintf(&b, "Primary Build Link: %s\n", valueOrNA(links.PrimaryBuildLink))
	fmt.Fprintf(&b, "Source Repo Link: %s\n", valueOrNA(links.SourceRepoLink))
	fmt.Fprintf(&b, "Deployed Link: %s\n", valueOrNA(links.DeployedLink))

	return b.String(), nil
}

func valueOrNA(value string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return "N/A"
}
