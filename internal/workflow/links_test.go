package workflow

import (
	"context"
	"testing"

	"stepResume/internal/store"
)

func strPtr(s string) *string { return &s }

func TestLinksDefaultToEmpty(t *testing.T) {
	engine, _ := newTestEngine(t)

	links, err := engine.Links(context.Background())
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	if links != (SubmissionLinks{}) {
		t.Fatalf("fresh store must yield zero links, got %+v", links)
	}
}

func TestUpdateLinksPatchesSingleField(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.UpdateLinks(ctx, LinksPatch{PrimaryBuildLink: strPtr("https://build.example")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if first.PrimaryBuildLink != "https://build.example" || first.SourceRepoLink != "" {
		t.Fatalf("unexpected links after first patch: %+v", first)
	}

	second, err := engine.UpdateLinks(ctx, LinksPatch{SourceRepoLink: strPtr("https://repo.example")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if second.PrimaryBuildLink != "https://build.example" {
		t.Fatalf("patch must not clobber untouched fields, got %+v", second)
	}
	if second.SourceRepoLink != "https://repo.example" {
		t.Fatalf("patched field missing: %+v", second)
	}

	// 显式置空也是合法的 patch。
	third, err := engine.UpdateLinks(ctx, LinksPatch{PrimaryBuildLink: strPtr("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if third.PrimaryBuildLink != "" || third.SourceRepoLink != "https://repo.example" {
		t.Fatalf("unexpected links after clearing: %+v", third)
	}
}

func TestLinksTolerateCorruptBlob(t *testing.T) {
	engine, blobs := newTestEngine(t)
	ctx := context.Background()

	if err := blobs.Set(ctx, store.KeySubmissionLinks, []byte("][")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	links, err := engine.Links(ctx)
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	if links != (SubmissionLinks{}) {
		t.Fatalf("corrupt blob must read back as zero links, got %+v", links)
	}
}
