package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxAttachmentSize    = 10 << 20 // 10 MiB
	uploadRateKey        = "stepresume:rate:attachment-upload"
	uploadRateLimit      = 30
	uploadRateWindow     = time.Minute
	attachmentURLTimeout = 15 * time.Minute
)

var attachmentExtByContentType = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// AttachmentHandler 负责阶段证据附件的上传与访问。
// 上传前先做 clamd 病毒扫描，再落到对象存储。
type AttachmentHandler struct {
	Storage     AttachmentStorage
	RateLimiter redisRateCounter
	Logger      *slog.Logger
	ClamdAddr   string
}

// NewAttachmentHandler 返回 AttachmentHandler 实例。
func NewAttachmentHandler(storageClient AttachmentStorage, rateLimiter redisRateCounter, logger *slog.Logger, clamdAddr string) *AttachmentHandler {
	return &AttachmentHandler{
		Storage:     storageClient,
		RateLimiter: rateLimiter,
		Logger:      logger,
		ClamdAddr:   clamdAddr,
	}
}

// UploadAttachment 处理附件上传：限流、类型与大小校验、病毒扫描、入桶。
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	if h.RateLimiter != nil {
		count, err := incrWithTTL(c.Request.Context(), h.RateLimiter, uploadRateKey, uploadRateWindow)
		if err != nil {
			h.Logger.Warn("rate counter unavailable", slog.String("error", err.Error()))
		} else if count > uploadRateLimit {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many uploads, slow down"})
			return
		}
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > maxAttachmentSize {
		BadRequest(c, "file too large")
		return
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := attachmentExtByContentType[contentType]
	if !ok {
		BadRequest(c, "unsupported content type")
		return
	}

	clamdClient := clamd.NewClamd(h.ClamdAddr)

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}

	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(fileReader, abortChan)
	fileReader.Close()
	if err != nil {
		h.Logger.Error("scan file", slog.String("error", err.Error()))
		Internal(c, "failed to scan file")
		return
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			BadRequest(c, "malicious file detected")
			return
		}
	}

	fileReader, err = file.Open()
	if err != nil {
		Internal(c, "failed to reopen file")
		return
	}
	defer fileReader.Close()

	objectKey := fmt.Sprintf("%s%s%s", attachmentKeyPrefix, uuid.NewString(), ext)
	if _, err := h.Storage.UploadFile(c.Request.Context(), objectKey, fileReader, file.Size, contentType); err != nil {
		h.Logger.Error("upload file", slog.String("error", err.Error()))
		Internal(c, "failed to upload file")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"objectKey": objectKey,
		"fileName":  sanitizedFileName(file.Filename),
	})
}

// ListAttachments 按最近上传在前罗列已有附件及其预览链接。
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "60")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 60
	}
	if limit > 200 {
		limit = 200
	}

	objects, err := h.Storage.ListObjects(c.Request.Context(), attachmentKeyPrefix, limit)
	if err != nil {
		h.Logger.Error("list attachments", slog.String("error", err.Error()))
		Internal(c, "failed to list attachments")
		return
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})

	items := make([]gin.H, 0, len(objects))
	for _, obj := range objects {
		url, err := h.Storage.GeneratePresignedURL(c.Request.Context(), obj.Key, 10*time.Minute)
		if err != nil {
			h.Logger.Error("generate attachment url", slog.String("objectKey", obj.Key), slog.String("error", err.Error()))
			continue
		}
		items = append(items, gin.H{
			"objectKey":    obj.Key,
			"previewUrl":   url,
			"size":         obj.Size,
			"lastModified": obj.LastModified,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetAttachmentURL 返回附件的临时预签名 URL。
func (h *AttachmentHandler) GetAttachmentURL(c *gin.Context) {
	objectKey := c.Query("key")
	if objectKey == "" {
		BadRequest(c, "missing key")
		return
	}
	if !isValidAttachmentObjectKey(objectKey) {
		Forbidden(c, "access denied")
		return
	}

	signedURL, err := h.Storage.GeneratePresignedURL(c.Request.Context(), objectKey, attachmentURLTimeout)
	if err != nil {
		h.Logger.Error("generate presigned url", slog.String("error", err.Error()))
		Internal(c, "failed to generate url")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

// sanitizedFileName 去掉客户端文件名里的路径成分，只留基名。
func sanitizedFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return path.Base(strings.TrimSpace(name))
}
