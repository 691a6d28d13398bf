package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeExportRender = "export:render"
)

// ExportRenderPayload 描述渲染打印版面所需的最小信息。
// 草稿本身不进队列：worker 处理时从存储读取最新版本。
type ExportRenderPayload struct {
	CorrelationID string `json:"correlation_id"`
}

// NewExportRenderTask 构造一个新的打印版面导出任务。
func NewExportRenderTask(correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportRenderPayload{
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExportRender, payload), nil
}
