package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"stepResume/internal/config"
	"stepResume/internal/draft"
	"stepResume/internal/storage"
	"stepResume/internal/store"
	"stepResume/internal/tasks"
	"stepResume/internal/workflow"
)

// admin 是运维用的存储检查工具：导出全部已知键、
// 写入示例草稿、清理单个键或整库。
func main() {
	var (
		action = flag.String("action", "", "操作：dump | seed-sample | clear（必填）")
		key    = flag.String("key", "", "clear 时指定单个键；为空则清理全部已知键")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer redisClient.Close()

	blobs, err := store.Open(cfg, redisClient)
	if err != nil {
		log.Fatalf("open blob store: %v", err)
	}

	ctx := context.Background()
	switch strings.TrimSpace(*action) {
	case "dump":
		dump(ctx, blobs)
	case "seed-sample":
		seedSample(ctx, blobs)
	case "clear":
		storageClient, err := storage.NewClient(cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		clearKeys(ctx, blobs, storageClient, strings.TrimSpace(*key))
	default:
		log.Fatal("missing or unknown --action (expected dump | seed-sample | clear)")
	}
}

// knownKeys 返回引擎使用的全部存储键。
func knownKeys() []string {
	keys := []string{
		store.KeyDraft,
		store.KeyTemplate,
		store.KeySubmissionLinks,
		store.KeyLastExport,
	}
	for ordinal := 1; ordinal <= workflow.StepCount; ordinal++ {
		keys = append(keys, store.ArtifactKey(ordinal))
	}
	return keys
}

func dump(ctx context.Context, blobs store.Store) {
	for _, key := range knownKeys() {
		raw, err := blobs.Get(ctx, key)
		switch {
		case errors.Is(err, store.ErrNotFound):
			fmt.Printf("%s: (absent)\n", key)
		case err != nil:
			log.Fatalf("get %s: %v", key, err)
		default:
			fmt.Printf("%s: %s\n", key, string(raw))
		}
	}
}

func seedSample(ctx context.Context, blobs store.Store) {
	raw, err := json.Marshal(draft.Sample())
	if err != nil {
		log.Fatalf("marshal sample draft: %v", err)
	}
	if err := blobs.Set(ctx, store.KeyDraft, raw); err != nil {
		log.Fatalf("persist sample draft: %v", err)
	}
	fmt.Printf("sample draft written to %s\n", store.KeyDraft)
}

func clearKeys(ctx context.Context, blobs store.Store, storageClient *storage.Client, key string) {
	keys := knownKeys()
	if key != "" {
		keys = []string{key}
	}
	for _, k := range keys {
		if k == store.KeyLastExport {
			removeExportObject(ctx, blobs, storageClient)
		}
		if err := blobs.Delete(ctx, k); err != nil {
			log.Fatalf("delete %s: %v", k, err)
		}
		fmt.Printf("deleted %s\n", k)
	}
}

// removeExportObject 随导出记录一并清掉桶里的 PDF，避免悬空对象。
func removeExportObject(ctx context.Context, blobs store.Store, storageClient *storage.Client) {
	raw, err := blobs.Get(ctx, store.KeyLastExport)
	if err != nil {
		return
	}
	var record tasks.ExportRecord
	if err := json.Unmarshal(raw, &record); err != nil || record.ObjectKey == "" {
		return
	}
	if err := storageClient.DeleteObject(ctx, record.ObjectKey); err != nil {
		log.Fatalf("delete export object %s: %v", record.ObjectKey, err)
	}
	fmt.Printf("deleted object %s\n", record.ObjectKey)
}
