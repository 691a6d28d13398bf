package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"stepResume/internal/api/middleware"
	"stepResume/internal/ats"
	"stepResume/internal/draft"
	"stepResume/internal/render"
	"stepResume/internal/storage"
	"stepResume/internal/store"
	"stepResume/internal/tasks"
)

// DraftHandler 负责简历草稿的读写、评分、渲染与导出入队。
type DraftHandler struct {
	blobs       store.Store
	asynqClient *asynq.Client
	storage     ExportStorage
}

// NewDraftHandler 构造 DraftHandler。
func NewDraftHandler(blobs store.Store, asynqClient *asynq.Client, storageClient ExportStorage) *DraftHandler {
	return &DraftHandler{
		blobs:       blobs,
		asynqClient: asynqClient,
		storage:     storageClient,
	}
}

type draftResponse struct {
	Draft draft.Draft `json:"draft"`
	Score ats.Result  `json:"score"`
}

type scoreResponse struct {
	Score           int      `json:"score"`
	Suggestions     []string `json:"suggestions"`
	TopImprovements []string `json:"topImprovements"`
}

// printDataResponse 是内部打印接口的载荷，与 worker 解析保持一致。
type printDataResponse struct {
	Draft    draft.Draft   `json:"draft"`
	Template render.Choice `json:"template"`
}

// GetDraft 返回规范化后的当前草稿。键缺失或 blob 损坏时返回默认
// 空草稿，并把默认草稿回写存储（首次加载即建立持久化镜像）。
func (h *DraftHandler) GetDraft(c *gin.Context) {
	ctx := c.Request.Context()
	d, stored, err := h.loadDraft(ctx)
	if err != nil {
		Internal(c, "failed to load draft")
		return
	}

	if !stored {
		if err := h.persistDraft(ctx, d); err != nil {
			// 内存草稿始终是事实来源，落盘失败只记日志不阻塞读取。
			middleware.LoggerFromContext(c).Warn("persist default draft failed", slog.Any("error", err))
		}
	}

	c.JSON(http.StatusOK, draftResponse{Draft: d, Score: ats.Score(d)})
}

// PutDraft 整体覆盖草稿。请求体按任意 JSON 接收，经 Normalize 修复后
// 持久化规范形状——老客户端提交的旧字段形状在这里完成迁移。
func (h *DraftHandler) PutDraft(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		BadRequest(c, "failed to read request body")
		return
	}

	d := draft.Normalize(raw)
	if err := h.persistDraft(c.Request.Context(), d); err != nil {
		Internal(c, "failed to persist draft")
		return
	}

	c.JSON(http.StatusOK, draftResponse{Draft: d, Score: ats.Score(d)})
}

// LoadSample 用示例草稿整体覆盖当前草稿（显式销毁路径）。
func (h *DraftHandler) LoadSample(c *gin.Context) {
	d := draft.Sample()
	if err := h.persistDraft(c.Request.Context(), d); err != nil {
		Internal(c, "failed to persist sample draft")
		return
	}
	c.JSON(http.StatusOK, draftResponse{Draft: d, Score: ats.Score(d)})
}

// GetScore 返回当前草稿的就绪度评估。?top= 调整优先改进条数，默认 3。
func (h *DraftHandler) GetScore(c *gin.Context) {
	d, _, err := h.loadDraft(c.Request.Context())
	if err != nil {
		Internal(c, "failed to load draft")
		return
	}

	result := ats.Score(d)
	top := ats.TopImprovements(result)
	if rawTop := c.Query("top"); rawTop != "" {
		n, err := strconv.Atoi(rawTop)
		if err != nil || n < 0 {
			BadRequest(c, "top must be a non-negative integer")
			return
		}
		if n < len(result.Suggestions) {
			top = result.Suggestions[:n]
		} else {
			top = result.Suggestions
		}
	}

	c.JSON(http.StatusOK, scoreResponse{
		Score:           result.Score,
		Suggestions:     result.Suggestions,
		TopImprovements: top,
	})
}

// ExportText 返回纯文本导出。输出是逐字节确定的导出契约。
func (h *DraftHandler) ExportText(c *gin.Context) {
	d, _, err := h.loadDraft(c.Request.Context())
	if err != nil {
		Internal(c, "failed to load draft")
		return
	}
	c.String(http.StatusOK, render.PlainText(d))
}

// GetSections 返回结构化渲染分节。?template= 缺省时使用存储的模板选择。
func (h *DraftHandler) GetSections(c *gin.Context) {
	ctx := c.Request.Context()
	d, _, err := h.loadDraft(ctx)
	if err != nil {
		Internal(c, "failed to load draft")
		return
	}

	templateID := c.Query("template")
	if templateID == "" {
		templateID = h.loadChoice(ctx).Template
	}
	templateID = render.NormalizeTemplateID(templateID)

	c.JSON(http.StatusOK, gin.H{
		"template": templateID,
		"sections": render.Sections(d, templateID),
	})
}

// GetTemplate 返回持久化的模板/主题选择。
func (h *DraftHandler) GetTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, h.loadChoice(c.Request.Context()))
}

// PutTemplate 覆盖模板/主题选择。未知模板与非法色值归一到默认值。
func (h *DraftHandler) PutTemplate(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		BadRequest(c, "failed to read request body")
		return
	}

	choice := render.NormalizeChoice(raw)
	stored, err := json.Marshal(choice)
	if err != nil {
		Internal(c, "failed to encode template choice")
		return
	}
	if err := h.blobs.Set(c.Request.Context(), store.KeyTemplate, stored); err != nil {
		Internal(c, "failed to persist template choice")
		return
	}
	c.JSON(http.StatusOK, choice)
}

// EnqueueExport 将打印版面导出任务入队并立即返回 202。
func (h *DraftHandler) EnqueueExport(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewExportRenderTask(correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成最近一次导出 PDF 的预签名下载链接。
func (h *DraftHandler) GetDownloadLink(c *gin.Context) {
	ctx := c.Request.Context()
	record, ok := h.lastExportRecord(c)
	if !ok {
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(ctx, record.ObjectKey, 5*time.Minute)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL, "generated_at": record.GeneratedAt})
}

// DownloadExport 直接透传最近一次导出的 PDF。
func (h *DraftHandler) DownloadExport(c *gin.Context) {
	record, ok := h.lastExportRecord(c)
	if !ok {
		return
	}

	reader, size, contentType, err := h.storage.DownloadObject(c.Request.Context(), record.ObjectKey)
	if err != nil {
		if storage.IsNoSuchKey(err) || storage.IsNoSuchBucket(err) {
			NotFound(c, "export file is gone")
			return
		}
		Internal(c, "failed to open export file")
		return
	}
	defer reader.Close()

	if contentType == "" {
		contentType = "application/pdf"
	}
	c.DataFromReader(http.StatusOK, size, contentType, reader, map[string]string{
		"Content-Disposition": `attachment; filename="resume.pdf"`,
	})
}

// lastExportRecord 读取最近一次导出记录；没有可用记录时响应 409 并返回 false。
func (h *DraftHandler) lastExportRecord(c *gin.Context) (tasks.ExportRecord, bool) {
	raw, err := h.blobs.Get(c.Request.Context(), store.KeyLastExport)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			Conflict(c, "export not ready")
			return tasks.ExportRecord{}, false
		}
		Internal(c, "failed to load export record")
		return tasks.ExportRecord{}, false
	}

	var record tasks.ExportRecord
	if err := json.Unmarshal(raw, &record); err != nil || record.ObjectKey == "" {
		Conflict(c, "export not ready")
		return tasks.ExportRecord{}, false
	}
	return record, true
}

// InternalPrintData 返回 worker 渲染打印版面所需的数据。
// 由 InternalSecretMiddleware 保护，普通客户端不可达。
func (h *DraftHandler) InternalPrintData(c *gin.Context) {
	ctx := c.Request.Context()
	d, _, err := h.loadDraft(ctx)
	if err != nil {
		Internal(c, "failed to load draft")
		return
	}

	c.JSON(http.StatusOK, printDataResponse{
		Draft:    d,
		Template: h.loadChoice(ctx),
	})
}

// loadDraft 读取并规范化草稿。第二个返回值指示存储中是否已有可解析的记录。
func (h *DraftHandler) loadDraft(ctx context.Context) (draft.Draft, bool, error) {
	raw, err := h.blobs.Get(ctx, store.KeyDraft)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return draft.NewBlank(), false, nil
		}
		return draft.Draft{}, false, err
	}
	return draft.Normalize(raw), true, nil
}

func (h *DraftHandler) persistDraft(ctx context.Context, d draft.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return h.blobs.Set(ctx, store.KeyDraft, raw)
}

// loadChoice 读取模板选择；任何异常都回落到默认模板。
func (h *DraftHandler) loadChoice(ctx context.Context) render.Choice {
	raw, err := h.blobs.Get(ctx, store.KeyTemplate)
	if err != nil {
		return render.DefaultChoice()
	}
	return render.NormalizeChoice(raw)
}
