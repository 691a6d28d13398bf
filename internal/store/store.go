package store

import (
	"context"
	"errors"
)

// ErrNotFound 表示指定 key 不存在。
// 调用方通常把它当作"使用默认值"的信号，而不是错误。
var ErrNotFound = errors.New("store: key not found")

// Store 是核心依赖的字符串键值持久化能力。
// 所有值都是 JSON 编码的 blob；实现必须把"键不存在"报告为 ErrNotFound，
// 且不得对值内容做任何校验——坏 JSON 的容错由读取方（normalizer 等）负责。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
