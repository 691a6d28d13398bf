package api

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"

	"stepResume/internal/storage"
)

// PresignStorage 是签发限时下载链接所需的最小对象存储能力。
type PresignStorage interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
}

// ExportStorage 是导出 PDF 下载相关的对象存储能力，便于测试替换。
type ExportStorage interface {
	PresignStorage
	DownloadObject(ctx context.Context, objectKey string) (io.ReadCloser, int64, string, error)
}

// AttachmentStorage 是附件上传/罗列/预览所需的对象存储能力。
type AttachmentStorage interface {
	PresignStorage
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	ListObjects(ctx context.Context, prefix string, limit int) ([]storage.ObjectMeta, error)
}
