package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stepResume/internal/workflow"
)

// WorkflowHandler 暴露阶段门控状态机：阶段表、活动阶段归位、
// 证据提交与最终提交链接。
type WorkflowHandler struct {
	engine *workflow.Engine
}

// NewWorkflowHandler 构造 WorkflowHandler。
func NewWorkflowHandler(engine *workflow.Engine) *WorkflowHandler {
	return &WorkflowHandler{engine: engine}
}

type stepView struct {
	Ordinal   int                `json:"ordinal"`
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Subtitle  string             `json:"subtitle"`
	Prompt    string             `json:"prompt"`
	Completed bool               `json:"completed"`
	Unlocked  bool               `json:"unlocked"`
	Artifact  *workflow.Artifact `json:"artifact,omitempty"`
}

type commitArtifactRequest struct {
	Notes          string `json:"notes"`
	Outcome        string `json:"outcome"`
	AttachmentName string `json:"attachmentName"`
}

// ListSteps 返回全部阶段及其完成/解锁状态。解锁集合是序号前缀。
func (h *WorkflowHandler) ListSteps(c *gin.Context) {
	ctx := c.Request.Context()
	artifacts, err := h.engine.Artifacts(ctx)
	if err != nil {
		Internal(c, "failed to load workflow state")
		return
	}

	frontier := firstIncompleteOf(artifacts)
	views := make([]stepView, 0, workflow.StepCount)
	for _, step := range workflow.Steps() {
		artifact := artifacts[step.Ordinal-1]
		views = append(views, stepView{
			Ordinal:   step.Ordinal,
			ID:        step.ID,
			Title:     step.Title,
			Subtitle:  step.Subtitle,
			Prompt:    step.Prompt,
			Completed: artifact.Committed(),
			Unlocked:  frontier == workflow.SubmissionOrdinal || step.Ordinal <= frontier,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"steps":           views,
		"firstIncomplete": frontier,
	})
}

// GetActive 把 ?requested= 的阶段归位到合法活动阶段。
// requested=0 表示终态（提交页），缺省按终态处理：
// 未全部完成时得到第一个未完成阶段，全部完成时得到终态。
func (h *WorkflowHandler) GetActive(c *gin.Context) {
	requested := workflow.SubmissionOrdinal
	if rawRequested := c.Query("requested"); rawRequested != "" {
		parsed, err := strconv.Atoi(rawRequested)
		if err != nil {
			BadRequest(c, "requested must be an integer ordinal")
			return
		}
		requested = parsed
	}

	active, err := h.engine.ResolveActive(c.Request.Context(), requested)
	if err != nil {
		if errors.Is(err, workflow.ErrUnknownStep) {
			BadRequest(c, "unknown step ordinal")
			return
		}
		Internal(c, "failed to resolve active step")
		return
	}

	view := gin.H{"active": active}
	if active == workflow.SubmissionOrdinal {
		view["id"] = "submission"
	} else if step, ok := workflow.StepByOrdinal(active); ok {
		view["id"] = step.ID
	}
	c.JSON(http.StatusOK, view)
}

// GetStep 返回单个阶段的定义与已存证据。
func (h *WorkflowHandler) GetStep(c *gin.Context) {
	ordinal, ok := h.parseOrdinal(c)
	if !ok {
		return
	}
	step, ok := workflow.StepByOrdinal(ordinal)
	if !ok {
		NotFound(c, "unknown step ordinal")
		return
	}

	ctx := c.Request.Context()
	artifact, err := h.engine.Artifact(ctx, ordinal)
	if err != nil {
		Internal(c, "failed to load artifact")
		return
	}
	isUnlocked, err := h.engine.Unlocked(ctx, ordinal)
	if err != nil {
		Internal(c, "failed to load workflow state")
		return
	}

	c.JSON(http.StatusOK, stepView{
		Ordinal:   step.Ordinal,
		ID:        step.ID,
		Title:     step.Title,
		Subtitle:  step.Subtitle,
		Prompt:    step.Prompt,
		Completed: artifact.Committed(),
		Unlocked:  isUnlocked,
		Artifact:  &artifact,
	})
}

// CommitArtifact 提交阶段证据。空提交与未解锁阶段返回 400，
// 重复提交整体覆盖旧记录。
func (h *WorkflowHandler) CommitArtifact(c *gin.Context) {
	ordinal, ok := h.parseOrdinal(c)
	if !ok {
		return
	}

	var req commitArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	artifact, err := h.engine.Commit(c.Request.Context(), ordinal, req.Notes, workflow.Outcome(req.Outcome), req.AttachmentName)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrUnknownStep):
			NotFound(c, "unknown step ordinal")
		case errors.Is(err, workflow.ErrEmptyArtifact):
			BadRequest(c, "artifact must carry notes, an outcome, or an attachment")
		case errors.Is(err, workflow.ErrInvalidOutcome):
			BadRequest(c, "invalid outcome value")
		case errors.Is(err, workflow.ErrStepLocked):
			BadRequest(c, "step is locked; complete earlier stages first")
		default:
			Internal(c, "failed to persist artifact")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ordinal": ordinal, "artifact": artifact})
}

// GetLinks 返回最终提交链接。
func (h *WorkflowHandler) GetLinks(c *gin.Context) {
	links, err := h.engine.Links(c.Request.Context())
	if err != nil {
		Internal(c, "failed to load submission links")
		return
	}
	c.JSON(http.StatusOK, links)
}

// PatchLinks 逐字段更新提交链接，请求体里缺失的字段保持原值。
func (h *WorkflowHandler) PatchLinks(c *gin.Context) {
	var patch workflow.LinksPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	links, err := h.engine.UpdateLinks(c.Request.Context(), patch)
	if err != nil {
		Internal(c, "failed to persist submission links")
		return
	}
	c.JSON(http.StatusOK, links)
}

// GetSummary 以 text/plain 返回固定格式的提交摘要。
func (h *WorkflowHandler) GetSummary(c *gin.Context) {
	summary, err := h.engine.Summary(c.Request.Context())
	if err != nil {
		Internal(c, "failed to build summary")
		return
	}
	c.String(http.StatusOK, summary)
}

func (h *WorkflowHandler) parseOrdinal(c *gin.Context) (int, bool) {
	ordinal, err := strconv.Atoi(c.Param("ordinal"))
	if err != nil {
		BadRequest(c, "ordinal must be an integer")
		return 0, false
	}
	return ordinal, true
}

func firstIncompleteOf(artifacts []workflow.Artifact) int {
	for i, artifact := range artifacts {
		if !artifact.Committed() {
			return i + 1
		}
	}
	return workflow.SubmissionOrdinal
}
