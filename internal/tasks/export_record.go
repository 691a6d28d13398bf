package tasks

import "time"

// NotifyChannel 是导出结果通知使用的 Redis Pub/Sub 频道。
// 单会话产品，无需按用户分频道。
const NotifyChannel = "stepresume:notify"

// ExportRecord 是最近一次导出的落盘记录（存储键 stepresume_last_export）。
// API 依据它签发下载链接。
type ExportRecord struct {
	ObjectKey     string    `json:"object_key"`
	CorrelationID string    `json:"correlation_id"`
	GeneratedAt   time.Time `json:"generated_at"`
}
