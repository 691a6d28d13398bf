package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"stepResume/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.MemoryStore) {
	t.Helper()
	blobs := store.NewMemoryStore()
	engine := NewEngine(blobs)
	engine.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	return engine, blobs
}

func commitStep(t *testing.T, engine *Engine, ordinal int) {
	t.Helper()
	if _, err := engine.Commit(context.Background(), ordinal, "done", OutcomePositive, ""); err != nil {
		t.Fatalf("commit step %d: %v", ordinal, err)
	}
}

func TestFreshWorkflowStartsAtStageOne(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	frontier, err := engine.FirstIncomplete(ctx)
	if err != nil {
		t.Fatalf("first incomplete: %v", err)
	}
	if frontier != 1 {
		t.Fatalf("fresh workflow frontier = %d, want 1", frontier)
	}

	for ordinal := 1; ordinal <= StepCount; ordinal++ {
		isUnlocked, err := engine.Unlocked(ctx, ordinal)
		if err != nil {
			t.Fatalf("unlocked %d: %v", ordinal, err)
		}
		if want := ordinal == 1; isUnlocked != want {
			t.Fatalf("fresh workflow: step %d unlocked = %v, want %v", ordinal, isUnlocked, want)
		}
	}
}

func TestUnlockedSetIsAlwaysAPrefix(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	commitStep(t, engine, 1)
	commitStep(t, engine, 2)

	sawLocked := false
	for ordinal := 1; ordinal <= StepCount; ordinal++ {
		isUnlocked, err := engine.Unlocked(ctx, ordinal)
		if err != nil {
			t.Fatalf("unlocked %d: %v", ordinal, err)
		}
		if sawLocked && isUnlocked {
			t.Fatalf("unlocked set is not a prefix: step %d unlocked after a locked step", ordinal)
		}
		if !isUnlocked {
			sawLocked = true
		}
	}

	if isUnlocked, _ := engine.Unlocked(ctx, 3); !isUnlocked {
		t.Fatalf("frontier step 3 must be unlocked after committing 1 and 2")
	}
	if isUnlocked, _ := engine.Unlocked(ctx, 4); isUnlocked {
		t.Fatalf("step 4 must stay locked while 3 is pending")
	}
}

func TestCommitRejectsEmptyArtifact(t *testing.T) {
	engine, blobs := newTestEngine(t)

	_, err := engine.Commit(context.Background(), 1, "   ", OutcomeUnset, "")
	if !errors.Is(err, ErrEmptyArtifact) {
		t.Fatalf("expected ErrEmptyArtifact, got %v", err)
	}
	if blobs.Len() != 0 {
		t.Fatalf("rejected commit must not write anything, store has %d keys", blobs.Len())
	}
}

func TestCommitRejectsLockedStep(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Commit(context.Background(), 3, "jumping ahead", OutcomePositive, "")
	if !errors.Is(err, ErrStepLocked) {
		t.Fatalf("expected ErrStepLocked, got %v", err)
	}
}

func TestCommitRejectsInvalidOutcome(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Commit(context.Background(), 1, "notes", Outcome("maybe"), "")
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected ErrInvalidOutcome, got %v", err)
	}
}

func TestCommitUnknownOrdinal(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, ordinal := range []int{-1, 0, StepCount + 1} {
		if _, err := engine.Commit(context.Background(), ordinal, "notes", OutcomePositive, ""); !errors.Is(err, ErrUnknownStep) {
			t.Fatalf("ordinal %d: expected ErrUnknownStep, got %v", ordinal, err)
		}
	}
}

func TestCommitStampsUTCTimestamp(t *testing.T) {
	engine, _ := newTestEngine(t)

	artifact, err := engine.Commit(context.Background(), 1, "kickoff notes", OutcomeUnset, "")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if artifact.CommittedAt == nil {
		t.Fatalf("committed artifact must carry a timestamp")
	}
	if artifact.CommittedAt.Location() != time.UTC {
		t.Fatalf("timestamp must be UTC, got %v", artifact.CommittedAt.Location())
	}
	if artifact.Outcome != OutcomeUnset {
		t.Fatalf("empty outcome defaults to unset, got %q", artifact.Outcome)
	}
}

func TestCommitAdvancesFrontier(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	commitStep(t, engine, 1)
	frontier, _ := engine.FirstIncomplete(ctx)
	if frontier != 2 {
		t.Fatalf("frontier after committing 1 = %d, want 2", frontier)
	}

	for ordinal := 2; ordinal <= StepCount; ordinal++ {
		commitStep(t, engine, ordinal)
	}
	frontier, _ = engine.FirstIncomplete(ctx)
	if frontier != SubmissionOrdinal {
		t.Fatalf("completed workflow frontier = %d, want submission (%d)", frontier, SubmissionOrdinal)
	}
}

func TestRecommitOverwritesWithoutInvalidatingLaterStages(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	commitStep(t, engine, 1)
	commitStep(t, engine, 2)
	commitStep(t, engine, 3)

	if _, err := engine.Commit(ctx, 1, "revised kickoff", OutcomeNegative, "plan.png"); err != nil {
		t.Fatalf("recommit: %v", err)
	}

	artifact, err := engine.Artifact(ctx, 1)
	if err != nil {
		t.Fatalf("artifact: %v", err)
	}
	if artifact.Notes != "revised kickoff" || artifact.Outcome != OutcomeNegative || artifact.AttachmentName != "plan.png" {
		t.Fatalf("recommit must fully overwrite the record, got %+v", artifact)
	}

	frontier, _ := engine.FirstIncomplete(ctx)
	if frontier != 4 {
		t.Fatalf("recommitting stage 1 must not reset later stages: frontier = %d, want 4", frontier)
	}
}

func TestResolveActiveRedirectsPastFrontier(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	commitStep(t, engine, 1)

	// 前沿是 2：越过前沿与请求终态都被归位到 2，回看 1 放行。
	cases := map[int]int{
		1:                 1,
		2:                 2,
		3:                 2,
		StepCount:         2,
		SubmissionOrdinal: 2,
	}
	for requested, want := range cases {
		active, err := engine.ResolveActive(ctx, requested)
		if err != nil {
			t.Fatalf("resolve %d: %v", requested, err)
		}
		if active != want {
			t.Fatalf("resolve(%d) = %d, want %d", requested, active, want)
		}
	}

	if _, err := engine.ResolveActive(ctx, StepCount+1); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep for out-of-range request, got %v", err)
	}
}

func TestResolveActiveAfterCompletion(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	for ordinal := 1; ordinal <= StepCount; ordinal++ {
		commitStep(t, engine, ordinal)
	}

	active, err := engine.ResolveActive(ctx, SubmissionOrdinal)
	if err != nil {
		t.Fatalf("resolve submission: %v", err)
	}
	if active != SubmissionOrdinal {
		t.Fatalf("completed workflow must allow the submission view, got %d", active)
	}

	// 终态下回看任意阶段也放行。
	active, err = engine.ResolveActive(ctx, 5)
	if err != nil {
		t.Fatalf("resolve 5: %v", err)
	}
	if active != 5 {
		t.Fatalf("revisiting a completed stage must be allowed, got %d", active)
	}
}

func TestArtifactToleratesCorruptBlob(t *testing.T) {
	engine, blobs := newTestEngine(t)
	ctx := context.Background()

	if err := blobs.Set(ctx, store.ArtifactKey(1), []byte("{corrupt")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	artifact, err := engine.Artifact(ctx, 1)
	if err != nil {
		t.Fatalf("artifact: %v", err)
	}
	if artifact.Committed() {
		t.Fatalf("corrupt blob must read back as an uncommitted record")
	}
	if artifact.Outcome != OutcomeUnset {
		t.Fatalf("corrupt blob outcome = %q, want unset", artifact.Outcome)
	}
}
