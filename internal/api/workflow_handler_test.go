package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"stepResume/internal/store"
	"stepResume/internal/workflow"
)

func newWorkflowHandler(t *testing.T) (*WorkflowHandler, *workflow.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := workflow.NewEngine(store.NewMemoryStore())
	return NewWorkflowHandler(engine), engine
}

func mustCommit(t *testing.T, engine *workflow.Engine, ordinal int) {
	t.Helper()
	if _, err := engine.Commit(context.Background(), ordinal, "done", workflow.OutcomePositive, ""); err != nil {
		t.Fatalf("commit step %d: %v", ordinal, err)
	}
}

func TestListStepsFreshWorkflow(t *testing.T) {
	h, _ := newWorkflowHandler(t)
	c, w := testContext(t, http.MethodGet, "/v1/steps", nil)

	h.ListSteps(c)

	var resp struct {
		Steps           []stepView `json:"steps"`
		FirstIncomplete int        `json:"firstIncomplete"`
	}
	decodeBody(t, w, &resp)

	if len(resp.Steps) != workflow.StepCount {
		t.Fatalf("expected %d steps, got %d", workflow.StepCount, len(resp.Steps))
	}
	if resp.FirstIncomplete != 1 {
		t.Fatalf("fresh workflow firstIncomplete = %d, want 1", resp.FirstIncomplete)
	}
	for i, step := range resp.Steps {
		wantUnlocked := i == 0
		if step.Unlocked != wantUnlocked {
			t.Fatalf("step %d unlocked = %v, want %v", step.Ordinal, step.Unlocked, wantUnlocked)
		}
		if step.Completed {
			t.Fatalf("fresh workflow must have no completed steps, step %d is", step.Ordinal)
		}
	}
	if resp.Steps[0].ID != "kickoff" || resp.Steps[workflow.StepCount-1].ID != "final-export" {
		t.Fatalf("unexpected step table boundaries: %+v", resp.Steps)
	}
}

func TestGetActiveRedirectsPastFrontier(t *testing.T) {
	h, engine := newWorkflowHandler(t)
	mustCommit(t, engine, 1)

	c, w := testContext(t, http.MethodGet, "/v1/steps/active?requested=5", nil)
	h.GetActive(c)

	var resp struct {
		Active int    `json:"active"`
		ID     string `json:"id"`
	}
	decodeBody(t, w, &resp)
	if resp.Active != 2 || resp.ID != "summary-draft" {
		t.Fatalf("requesting past the frontier must land on it, got %+v", resp)
	}
}

func TestGetActiveRejectsMalformedQuery(t *testing.T) {
	h, _ := newWorkflowHandler(t)

	c, w := testContext(t, http.MethodGet, "/v1/steps/active?requested=banana", nil)
	h.GetActive(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer, got %d", w.Code)
	}

	c, w = testContext(t, http.MethodGet, "/v1/steps/active?requested=99", nil)
	h.GetActive(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range ordinal, got %d", w.Code)
	}
}

func TestGetStepIncludesArtifact(t *testing.T) {
	h, engine := newWorkflowHandler(t)
	mustCommit(t, engine, 1)

	c, w := testContext(t, http.MethodGet, "/v1/steps/1", nil)
	c.Params = gin.Params{{Key: "ordinal", Value: "1"}}
	h.GetStep(c)

	var resp stepView
	decodeBody(t, w, &resp)
	if !resp.Completed || resp.Artifact == nil || resp.Artifact.Notes != "done" {
		t.Fatalf("unexpected step view: %+v", resp)
	}
}

func TestCommitArtifactValidation(t *testing.T) {
	h, _ := newWorkflowHandler(t)

	cases := []struct {
		name    string
		ordinal string
		body    string
		want    int
	}{
		{"empty artifact", "1", `{"notes": "", "outcome": "unset"}`, http.StatusBadRequest},
		{"locked step", "3", `{"notes": "jumping ahead"}`, http.StatusBadRequest},
		{"invalid outcome", "1", `{"notes": "x", "outcome": "maybe"}`, http.StatusBadRequest},
		{"unknown ordinal", "42", `{"notes": "x"}`, http.StatusNotFound},
		{"valid commit", "1", `{"notes": "kickoff plan", "outcome": "positive"}`, http.StatusOK},
	}

	for _, tc := range cases {
		c, w := testContext(t, http.MethodPut, "/v1/steps/"+tc.ordinal+"/artifact", strings.NewReader(tc.body))
		c.Params = gin.Params{{Key: "ordinal", Value: tc.ordinal}}
		h.CommitArtifact(c)
		if w.Code != tc.want {
			t.Fatalf("%s: expected %d got %d body=%s", tc.name, tc.want, w.Code, w.Body.String())
		}
	}
}

func TestCommitArtifactPersistsRecord(t *testing.T) {
	h, engine := newWorkflowHandler(t)

	body := strings.NewReader(`{"notes": "target roles listed", "outcome": "positive", "attachmentName": "plan.png"}`)
	c, w := testContext(t, http.MethodPut, "/v1/steps/1/artifact", body)
	c.Params = gin.Params{{Key: "ordinal", Value: "1"}}
	h.CommitArtifact(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	artifact, err := engine.Artifact(context.Background(), 1)
	if err != nil {
		t.Fatalf("artifact: %v", err)
	}
	if !artifact.Committed() || artifact.AttachmentName != "plan.png" {
		t.Fatalf("artifact not persisted as committed: %+v", artifact)
	}
}

func TestPatchLinksRoundTrip(t *testing.T) {
	h, _ := newWorkflowHandler(t)

	c, w := testContext(t, http.MethodPatch, "/v1/submission/links", strings.NewReader(`{"sourceRepoLink": "https://repo.example"}`))
	h.PatchLinks(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	c, w = testContext(t, http.MethodGet, "/v1/submission/links", nil)
	h.GetLinks(c)

	var links workflow.SubmissionLinks
	if err := json.Unmarshal(w.Body.Bytes(), &links); err != nil {
		t.Fatalf("decode links: %v", err)
	}
	if links.SourceRepoLink != "https://repo.example" || links.PrimaryBuildLink != "" {
		t.Fatalf("unexpected links: %+v", links)
	}
}

func TestGetSummaryIsPlainText(t *testing.T) {
	h, engine := newWorkflowHandler(t)
	mustCommit(t, engine, 1)

	c, w := testContext(t, http.MethodGet, "/v1/submission/summary", nil)
	h.GetSummary(c)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Stage 1 (Kickoff): Complete") {
		t.Fatalf("summary missing completed stage line:\n%s", body)
	}
	if !strings.Contains(body, "Primary Build Link: N/A") {
		t.Fatalf("summary missing N/A link line:\n%s", body)
	}
}
