package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"stepResume/internal/draft"
	"stepResume/internal/errcode"
	"stepResume/internal/pdf"
	"stepResume/internal/render"
	"stepResume/internal/storage"
	"stepResume/internal/store"
	"stepResume/internal/tasks"
)

// ExportTaskHandler 负责消费打印版面导出任务。
type ExportTaskHandler struct {
	blobs              store.Store
	storage            *storage.Client
	redisClient        *redis.Client
	logger             *slog.Logger
	internalSecret     string
	internalAPIBaseURL string
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	blobs store.Store,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	internalSecret string,
	internalAPIBaseURL string,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		blobs:              blobs,
		storage:            storageClient,
		redisClient:        redisClient,
		logger:             logger,
		internalSecret:     internalSecret,
		internalAPIBaseURL: strings.TrimRight(strings.TrimSpace(internalAPIBaseURL), "/"),
	}
}

// printData 与 API 内部打印接口返回的 JSON 对齐。
type printData struct {
	Draft    draft.Draft   `json:"draft"`
	Template render.Choice `json:"template"`
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.ExportRenderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.String("correlation_id", payload.CorrelationID))
	log.Info("Starting print layout export task...")

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := ExportNotifyMessage{
			Status:        "error",
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	raw, err := fetchPrintData(ctx, h.internalAPIBaseURL, h.internalSecret, payload.CorrelationID)
	if err != nil {
		log.Error("fetch print data failed", slog.Any("error", err))
		return err
	}

	var data printData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Error("decode print data failed", slog.Any("error", err))
		return fmt.Errorf("decode print data: %w", err)
	}

	htmlContent, err := render.PrintHTML(data.Draft, data.Template)
	if err != nil {
		log.Error("render print html failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := pdf.GeneratePDFFromHTML(htmlContent)
	if err != nil {
		log.Error("generate pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("exports/%s.pdf", uuid.NewString())
	pdfReader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, pdfReader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	record := tasks.ExportRecord{
		ObjectKey:     objectName,
		CorrelationID: payload.CorrelationID,
		GeneratedAt:   h.nowUTC(),
	}
	recordRaw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal export record: %w", err)
	}
	if err := h.blobs.Set(ctx, store.KeyLastExport, recordRaw); err != nil {
		log.Error("persist export record failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		CorrelationID: payload.CorrelationID,
		ObjectKey:     objectName,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishExportNotify(ctx, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("Print layout export task completed successfully.", slog.String("object_key", objectName))
	return nil
}

func (h *ExportTaskHandler) publishExportNotify(ctx context.Context, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	if err := h.redisClient.Publish(ctx, tasks.NotifyChannel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", tasks.NotifyChannel, err)
	}
	return nil
}

func (h *ExportTaskHandler) nowUTC() time.Time {
	return time.Now().UTC()
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
